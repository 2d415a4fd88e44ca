package review

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/apoteket/stocktake-backend/internal/apperr"
	"github.com/apoteket/stocktake-backend/internal/modules/session"
	"github.com/apoteket/stocktake-backend/internal/platform/config"
)

// Service builds discrepancy reports for stocktake sessions.
type Service interface {
	// BuildReview reports on the given session, or with an empty id on the
	// most recently created session in Review or Completed.
	BuildReview(ctx context.Context, sessionID string) (*Report, error)
}

type service struct {
	repo Repository
}

// NewService creates a new review service.
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) BuildReview(ctx context.Context, sessionID string) (*Report, error) {
	var (
		sc  *SessionChecks
		err error
	)
	if sessionID != "" {
		if _, parseErr := uuid.Parse(sessionID); parseErr != nil {
			return nil, apperr.Validationf("invalid session id: %s", sessionID)
		}
		sc, err = s.repo.GetSessionChecks(ctx, sessionID)
		if err == sql.ErrNoRows {
			return nil, apperr.NotFoundf("stocktake session %s not found", sessionID)
		}
	} else {
		sc, err = s.repo.LatestEligible(ctx)
		if err == sql.ErrNoRows {
			return nil, apperr.NotFoundf("no stocktake session found for review")
		}
	}
	if err != nil {
		return nil, apperr.Persistence("failed to load review data", err)
	}
	return buildReport(sc), nil
}

// buildReport computes the discrepancy rows and summary. Zero-variance
// checks are not discrepancies and are excluded from the body; missing
// items are the rows counted short.
func buildReport(sc *SessionChecks) *Report {
	var (
		results    []*CheckResult
		missing    int
		totalValue float64
	)
	for _, check := range sc.Checks {
		variance := check.CountedQty - check.ExpectedQty
		if variance == 0 {
			continue
		}
		value := float64(variance) * check.Price
		results = append(results, &CheckResult{
			ID:          check.ID,
			Article:     check.SKU,
			Name:        check.ProductName,
			ExpectedQty: check.ExpectedQty,
			CountedQty:  check.CountedQty,
			Variance:    variance,
			Value:       value,
		})
		if variance < 0 {
			missing++
		}
		totalValue += value
	}

	location := "Unknown"
	display := "Unknown"
	if len(sc.FileLocations) > 0 {
		location = sc.FileLocations[0]
		display = config.LocationName(location)
	}

	return &Report{
		Session: ReportSession{
			ID:         sc.ID,
			Name:       sc.Name,
			Date:       sc.CreatedAt.Format("2006-01-02"),
			Location:   display,
			LocationID: location,
			Status:     string(session.NormalizeStatus(sc.Status)),
		},
		Summary: ReportSummary{
			MissingItems:       missing,
			TotalValueVariance: totalValue,
			TotalDiscrepancies: len(results),
		},
		CheckResults: results,
	}
}
