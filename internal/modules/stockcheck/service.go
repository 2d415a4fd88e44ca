package stockcheck

import (
	"context"
	"database/sql"
	"log"

	"github.com/google/uuid"

	"github.com/apoteket/stocktake-backend/internal/apperr"
	"github.com/apoteket/stocktake-backend/internal/platform/config"
)

// maxCountedQty bounds a single count entry.
const maxCountedQty = 999999

// Service records physical counts against expected quantities. It is the
// sole writer of counted quantities and variances.
type Service interface {
	// RecordCheck upserts the check for the input's (product, session)
	// pair, recomputing variance from the stored baseline.
	RecordCheck(ctx context.Context, input CheckInput) (*StockCheck, error)
	// RecordBatch applies each submission independently; one failure does
	// not roll back prior successes. The result carries totals only.
	RecordBatch(ctx context.Context, inputs []CheckInput) (*BatchResult, error)
	// RecordBatchAtomic applies the whole batch in one transaction.
	RecordBatchAtomic(ctx context.Context, inputs []CheckInput) error
	// StockData returns the count-grid products for an optional location
	// and/or session filter.
	StockData(ctx context.Context, location, sessionID string) (*StockData, error)
}

type service struct {
	repo Repository
}

// NewService creates a new stock check service.
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func parseInput(input CheckInput) (upsertInput, error) {
	productID, err := uuid.Parse(input.ProductID)
	if err != nil {
		return upsertInput{}, apperr.Validationf("invalid product id: %s", input.ProductID)
	}
	sessionID, err := uuid.Parse(input.SessionID)
	if err != nil {
		return upsertInput{}, apperr.Validationf("invalid session id: %s", input.SessionID)
	}
	if input.CountedQty < 0 {
		return upsertInput{}, apperr.Validationf("counted quantity cannot be negative")
	}
	if input.CountedQty > maxCountedQty {
		return upsertInput{}, apperr.Validationf("counted quantity is too large")
	}
	if len(input.CheckedBy) > 50 {
		return upsertInput{}, apperr.Validationf("checker name must be less than 50 characters")
	}
	return upsertInput{
		productID:  productID,
		sessionID:  sessionID,
		countedQty: input.CountedQty,
		checkedBy:  input.CheckedBy,
	}, nil
}

func (s *service) RecordCheck(ctx context.Context, input CheckInput) (*StockCheck, error) {
	in, err := parseInput(input)
	if err != nil {
		return nil, err
	}
	check, err := s.repo.Upsert(ctx, in.productID, in.sessionID, in.countedQty, in.checkedBy)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperr.NotFoundf("product %s not found", input.ProductID)
		}
		return nil, apperr.Persistence("failed to save stock check", err)
	}
	return check, nil
}

func (s *service) RecordBatch(ctx context.Context, inputs []CheckInput) (*BatchResult, error) {
	if len(inputs) == 0 {
		return nil, apperr.Validationf("no stock checks submitted")
	}
	result := &BatchResult{}
	for _, input := range inputs {
		if _, err := s.RecordCheck(ctx, input); err != nil {
			log.Printf("WARN: stock check for product %s failed: %v", input.ProductID, err)
			result.Failed++
			continue
		}
		result.Saved++
	}
	return result, nil
}

func (s *service) RecordBatchAtomic(ctx context.Context, inputs []CheckInput) error {
	if len(inputs) == 0 {
		return apperr.Validationf("no stock checks submitted")
	}
	parsed := make([]upsertInput, 0, len(inputs))
	for _, input := range inputs {
		in, err := parseInput(input)
		if err != nil {
			return err
		}
		parsed = append(parsed, in)
	}
	if err := s.repo.UpsertAll(ctx, parsed); err != nil {
		if err == sql.ErrNoRows {
			return apperr.NotFoundf("a submitted product does not exist")
		}
		return apperr.Persistence("failed to save stock checks", err)
	}
	return nil
}

func (s *service) StockData(ctx context.Context, location, sessionID string) (*StockData, error) {
	var sid *uuid.UUID
	if sessionID != "" {
		parsed, err := uuid.Parse(sessionID)
		if err != nil {
			return nil, apperr.Validationf("invalid session id: %s", sessionID)
		}
		sid = &parsed
	}
	products, err := s.repo.ProductsForCount(ctx, location, sid)
	if err != nil {
		return nil, apperr.Persistence("failed to load stock data", err)
	}

	seen := make(map[string]bool)
	var locations []LocationRef
	for _, p := range products {
		if p.Location == "" || seen[p.Location] {
			continue
		}
		seen[p.Location] = true
		locations = append(locations, LocationRef{ID: p.Location, Name: config.LocationName(p.Location)})
	}
	return &StockData{
		Products:      products,
		Locations:     locations,
		TotalProducts: len(products),
	}, nil
}
