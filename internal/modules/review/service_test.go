package review

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/apoteket/stocktake-backend/internal/apperr"
)

type fakeRepo struct {
	sessions map[string]*SessionChecks
	latest   *SessionChecks
}

func (r *fakeRepo) GetSessionChecks(ctx context.Context, sessionID string) (*SessionChecks, error) {
	sc, ok := r.sessions[sessionID]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return sc, nil
}

func (r *fakeRepo) LatestEligible(ctx context.Context) (*SessionChecks, error) {
	if r.latest == nil {
		return nil, sql.ErrNoRows
	}
	return r.latest, nil
}

func row(sku string, expected, counted int, price float64) *CheckRow {
	return &CheckRow{
		ID:          uuid.New(),
		SKU:         sku,
		ProductName: "Product " + sku,
		ExpectedQty: expected,
		CountedQty:  counted,
		Price:       price,
	}
}

func TestBuildReviewSummary(t *testing.T) {
	sc := &SessionChecks{
		ID:        uuid.New(),
		Name:      "Stocktake - August",
		Status:    "review",
		CreatedAt: time.Date(2026, 8, 15, 10, 30, 0, 0, time.UTC),
		Checks: []*CheckRow{
			row("1001", 10, 7, 10.0), // variance -3, value -30
			row("1002", 5, 5, 5.0),   // variance 0, excluded
			row("1003", 3, 5, 4.0),   // variance +2, value +8
		},
		FileLocations: []string{"101"},
	}
	repo := &fakeRepo{sessions: map[string]*SessionChecks{sc.ID.String(): sc}}
	svc := NewService(repo)

	report, err := svc.BuildReview(context.Background(), sc.ID.String())
	if err != nil {
		t.Fatalf("BuildReview: %v", err)
	}

	if got := len(report.CheckResults); got != 2 {
		t.Fatalf("discrepancy rows = %d, want 2 (zero variance excluded)", got)
	}
	if report.Summary.TotalDiscrepancies != 2 {
		t.Errorf("total discrepancies = %d, want 2", report.Summary.TotalDiscrepancies)
	}
	if report.Summary.MissingItems != 1 {
		t.Errorf("missing items = %d, want 1", report.Summary.MissingItems)
	}
	if report.Summary.TotalValueVariance != -22.0 {
		t.Errorf("total value variance = %v, want -22 (signed sum)", report.Summary.TotalValueVariance)
	}

	first := report.CheckResults[0]
	if first.Variance != -3 || first.Value != -30.0 {
		t.Errorf("first row = variance %d value %v, want -3 and -30", first.Variance, first.Value)
	}

	if report.Session.Date != "2026-08-15" {
		t.Errorf("session date = %q, want 2026-08-15", report.Session.Date)
	}
	if report.Session.Status != "Review" {
		t.Errorf("session status = %q, want Review", report.Session.Status)
	}
	if report.Session.Location != "Main Floor" {
		t.Errorf("location = %q, want Main Floor", report.Session.Location)
	}
	if report.Session.LocationID != "101" {
		t.Errorf("location id = %q, want 101", report.Session.LocationID)
	}
}

func TestBuildReviewNoLinkedFiles(t *testing.T) {
	sc := &SessionChecks{ID: uuid.New(), Name: "Stocktake - Empty", Status: "Review", CreatedAt: time.Now()}
	repo := &fakeRepo{sessions: map[string]*SessionChecks{sc.ID.String(): sc}}
	svc := NewService(repo)

	report, err := svc.BuildReview(context.Background(), sc.ID.String())
	if err != nil {
		t.Fatalf("BuildReview: %v", err)
	}
	if report.Session.Location != "Unknown" {
		t.Errorf("location = %q, want Unknown", report.Session.Location)
	}
	if len(report.CheckResults) != 0 {
		t.Errorf("expected no discrepancy rows, got %d", len(report.CheckResults))
	}
}

func TestBuildReviewLatestFallback(t *testing.T) {
	latest := &SessionChecks{
		ID:        uuid.New(),
		Name:      "Stocktake - Latest",
		Status:    "completed",
		CreatedAt: time.Now(),
		Checks:    []*CheckRow{row("2001", 1, 0, 2.5)},
	}
	svc := NewService(&fakeRepo{latest: latest})

	report, err := svc.BuildReview(context.Background(), "")
	if err != nil {
		t.Fatalf("BuildReview: %v", err)
	}
	if report.Session.ID != latest.ID {
		t.Errorf("reviewed session = %s, want the latest eligible %s", report.Session.ID, latest.ID)
	}
	if report.Session.Status != "Completed" {
		t.Errorf("session status = %q, want Completed", report.Session.Status)
	}
}

func TestBuildReviewErrors(t *testing.T) {
	svc := NewService(&fakeRepo{sessions: map[string]*SessionChecks{}})

	if _, err := svc.BuildReview(context.Background(), "not-a-uuid"); apperr.KindOf(err) != apperr.KindValidation {
		t.Errorf("expected validation error for malformed id, got %v", err)
	}
	if _, err := svc.BuildReview(context.Background(), uuid.NewString()); apperr.KindOf(err) != apperr.KindNotFound {
		t.Errorf("expected not-found error for unknown session, got %v", err)
	}
	if _, err := svc.BuildReview(context.Background(), ""); apperr.KindOf(err) != apperr.KindNotFound {
		t.Errorf("expected not-found error when no eligible session exists, got %v", err)
	}
}
