package dashboard

import (
	"time"

	"github.com/google/uuid"
)

// SessionRow is the listing projection of a session: summary fields plus
// linked locations and check count, never full child collections.
type SessionRow struct {
	ID         uuid.UUID
	Name       string
	CreatedBy  string
	Status     string
	CreatedAt  time.Time
	Locations  []string
	CheckCount int
}

// SessionSummary is one row of the dashboard listing.
type SessionSummary struct {
	ID               uuid.UUID `json:"id"`
	Name             string    `json:"name"`
	Date             string    `json:"date"`
	Status           string    `json:"status"`
	Locations        []string  `json:"locations"`
	StockChecksCount int       `json:"stock_checks_count"`
}

// Stats are the cross-session rollup counts. NeedsReview is an alias of
// ReviewSessions, not a distinct concept.
type Stats struct {
	TotalSessions     int `json:"total_sessions"`
	CompletedSessions int `json:"completed_sessions"`
	ReviewSessions    int `json:"review_sessions"`
	NeedsReview       int `json:"needs_review"`
}

// Dashboard is the full dashboard payload.
type Dashboard struct {
	Sessions []*SessionSummary `json:"sessions"`
	Stats    Stats             `json:"stats"`
}
