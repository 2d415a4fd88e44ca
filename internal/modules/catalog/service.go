package catalog

import (
	"bytes"
	"context"
	"database/sql"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/apoteket/stocktake-backend/internal/apperr"
	"github.com/apoteket/stocktake-backend/internal/parsers"
	"github.com/apoteket/stocktake-backend/internal/platform/config"
)

// Service defines catalog business logic: stock file ingestion and the
// uploaded-file inventory.
type Service interface {
	// IngestUpload parses and persists one stock export. The file and all
	// of its products commit together or not at all.
	IngestUpload(ctx context.Context, filename string, content []byte) (*IngestResult, error)
	// IngestBatch ingests several files. Any file with an unsupported
	// extension rejects the whole batch before anything is written.
	IngestBatch(ctx context.Context, uploads []UploadInput) ([]*IngestResult, error)
	ListFiles(ctx context.Context) ([]*UploadedFile, error)
	GetFile(ctx context.Context, id string) (*UploadedFile, error)
	DeleteFile(ctx context.Context, id string) error
	// Locations lists every location that has products, with display names.
	Locations(ctx context.Context) ([]Location, error)
}

type service struct {
	repo Repository
}

// NewService creates a new catalog service.
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func parseByExtension(filename string, content []byte) ([]parsers.ProductRow, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv":
		return parsers.ParseStockCSV(bytes.NewReader(content))
	case ".xlsx":
		return parsers.ParseStockXLSX(bytes.NewReader(content))
	default:
		return nil, apperr.Validationf("file %s is not a CSV or Excel file", filename)
	}
}

func (s *service) IngestUpload(ctx context.Context, filename string, content []byte) (*IngestResult, error) {
	if filename == "" {
		return nil, apperr.Validationf("filename is required")
	}
	rows, err := parseByExtension(filename, content)
	if err != nil {
		if apperr.KindOf(err) == apperr.KindValidation {
			return nil, err
		}
		return nil, apperr.Validationf("failed to parse %s: %v", filename, err)
	}

	file := &UploadedFile{
		ID:           uuid.New(),
		Filename:     strings.TrimSuffix(filename, filepath.Ext(filename)),
		UploadDate:   time.Now().UTC(),
		Location:     parsers.FileLocation(rows),
		ProductCount: len(rows),
	}
	products := make([]*Product, 0, len(rows))
	for _, row := range rows {
		products = append(products, &Product{
			ID:          uuid.New(),
			FileID:      file.ID,
			StockNo:     row.StockNo,
			SKU:         row.SKU,
			Name:        row.Name,
			Quantity:    row.Quantity,
			Price:       row.UnitCost,
			StockValue:  row.StockValue,
			Location:    row.Location,
			ExpectedQty: row.Quantity,
		})
	}

	if err := s.repo.CreateFileWithProducts(ctx, file, products); err != nil {
		return nil, apperr.Persistence("failed to store uploaded file", err)
	}
	return &IngestResult{
		FileID:       file.ID,
		Filename:     file.Filename,
		Location:     file.Location,
		ProductCount: file.ProductCount,
	}, nil
}

func (s *service) IngestBatch(ctx context.Context, uploads []UploadInput) ([]*IngestResult, error) {
	if len(uploads) == 0 {
		return nil, apperr.Validationf("no files submitted")
	}
	for _, u := range uploads {
		ext := strings.ToLower(filepath.Ext(u.Filename))
		if ext != ".csv" && ext != ".xlsx" {
			return nil, apperr.Validationf("file %s is not a CSV or Excel file", u.Filename)
		}
	}
	results := make([]*IngestResult, 0, len(uploads))
	for _, u := range uploads {
		res, err := s.IngestUpload(ctx, u.Filename, u.Content)
		if err != nil {
			return nil, err
		}
		results = append(results, res)
	}
	return results, nil
}

func (s *service) ListFiles(ctx context.Context) ([]*UploadedFile, error) {
	files, err := s.repo.ListFiles(ctx)
	if err != nil {
		return nil, apperr.Persistence("failed to list uploaded files", err)
	}
	return files, nil
}

func (s *service) GetFile(ctx context.Context, id string) (*UploadedFile, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, apperr.Validationf("invalid file id: %s", id)
	}
	file, err := s.repo.GetFile(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperr.NotFoundf("uploaded file %s not found", id)
		}
		return nil, apperr.Persistence("failed to load uploaded file", err)
	}
	return file, nil
}

func (s *service) DeleteFile(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return apperr.Validationf("invalid file id: %s", id)
	}
	n, err := s.repo.DeleteFile(ctx, id)
	if err != nil {
		return apperr.Persistence("failed to delete uploaded file", err)
	}
	if n == 0 {
		return apperr.NotFoundf("uploaded file %s not found", id)
	}
	return nil
}

func (s *service) Locations(ctx context.Context) ([]Location, error) {
	codes, err := s.repo.DistinctLocations(ctx)
	if err != nil {
		return nil, apperr.Persistence("failed to list locations", err)
	}
	locations := make([]Location, 0, len(codes))
	for _, code := range codes {
		locations = append(locations, Location{ID: code, Name: config.LocationName(code)})
	}
	return locations, nil
}
