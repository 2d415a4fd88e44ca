package review

import (
	"time"

	"github.com/google/uuid"
)

// SessionChecks is everything the review engine needs for one session: the
// session row, its checks joined to their products, and the locations of
// its linked files.
type SessionChecks struct {
	ID            uuid.UUID
	Name          string
	Status        string
	CreatedAt     time.Time
	Checks        []*CheckRow
	FileLocations []string
}

// CheckRow is one stock check joined to its product.
type CheckRow struct {
	ID          uuid.UUID
	SKU         string
	ProductName string
	ExpectedQty int
	CountedQty  int
	Price       float64
}

// Report is the discrepancy report for a session.
type Report struct {
	Session      ReportSession  `json:"session"`
	Summary      ReportSummary  `json:"summary"`
	CheckResults []*CheckResult `json:"check_results"`
}

// ReportSession describes the reviewed session.
type ReportSession struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	Date       string    `json:"date"`
	Location   string    `json:"location"`
	LocationID string    `json:"location_id"`
	Status     string    `json:"status"`
}

// ReportSummary aggregates the discrepancy rows. TotalValueVariance is a
// signed sum: overages and shortages net against each other.
type ReportSummary struct {
	MissingItems       int     `json:"missing_items"`
	TotalValueVariance float64 `json:"total_value_variance"`
	TotalDiscrepancies int     `json:"total_discrepancies"`
}

// CheckResult is one discrepancy row (variance != 0).
type CheckResult struct {
	ID          uuid.UUID `json:"id"`
	Article     string    `json:"article"`
	Name        string    `json:"name"`
	ExpectedQty int       `json:"expected_qty"`
	CountedQty  int       `json:"counted_qty"`
	Variance    int       `json:"variance"`
	Value       float64   `json:"value"`
}
