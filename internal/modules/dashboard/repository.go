package dashboard

import "context"

// Repository defines the dashboard's aggregation reads.
type Repository interface {
	// StatusCounts returns session counts grouped by lower-cased status,
	// so legacy rows with either casing are counted together.
	StatusCounts(ctx context.Context) (map[string]int, error)
	// LatestSessions returns the n most recently created sessions with
	// their linked locations and stock-check counts.
	LatestSessions(ctx context.Context, n int) ([]*SessionRow, error)
}
