package dashboard

import (
	"context"
	"time"

	"github.com/apoteket/stocktake-backend/internal/apperr"
	"github.com/apoteket/stocktake-backend/internal/modules/session"
	"github.com/apoteket/stocktake-backend/internal/platform/cache"
)

const (
	latestSessionsLimit = 10
	cacheKey            = "dashboard-data"
	cacheTTL            = 5 * time.Minute
)

// Service assembles the cross-session dashboard.
type Service interface {
	GetDashboard(ctx context.Context) (*Dashboard, error)
}

type service struct {
	repo Repository
	memo *cache.RedisClient // nil disables memoization
}

// NewService creates a new dashboard service. memo may be nil.
func NewService(repo Repository, memo *cache.RedisClient) Service {
	return &service{repo: repo, memo: memo}
}

func (s *service) GetDashboard(ctx context.Context) (*Dashboard, error) {
	var cached Dashboard
	if s.memo.GetJSON(ctx, cacheKey, &cached) {
		return &cached, nil
	}

	dash, err := s.loadDashboard(ctx)
	if err != nil {
		return nil, err
	}

	// Repopulate the memo off the request path.
	if s.memo != nil {
		go func(d Dashboard) {
			bg, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			s.memo.SetJSON(bg, cacheKey, &d, cacheTTL)
		}(*dash)
	}
	return dash, nil
}

func (s *service) loadDashboard(ctx context.Context) (*Dashboard, error) {
	counts, err := s.repo.StatusCounts(ctx)
	if err != nil {
		return nil, apperr.Persistence("failed to load session stats", err)
	}
	rows, err := s.repo.LatestSessions(ctx, latestSessionsLimit)
	if err != nil {
		return nil, apperr.Persistence("failed to load latest sessions", err)
	}

	total := 0
	for _, n := range counts {
		total += n
	}
	stats := Stats{
		TotalSessions:     total,
		CompletedSessions: counts["completed"],
		ReviewSessions:    counts["review"],
		NeedsReview:       counts["review"],
	}

	sessions := make([]*SessionSummary, 0, len(rows))
	for _, row := range rows {
		name := row.CreatedBy
		if name == "" {
			name = "Unknown"
		}
		locations := row.Locations
		if locations == nil {
			locations = []string{}
		}
		sessions = append(sessions, &SessionSummary{
			ID:               row.ID,
			Name:             name,
			Date:             row.CreatedAt.Format("2006-01-02"),
			Status:           string(session.NormalizeStatus(row.Status)),
			Locations:        locations,
			StockChecksCount: row.CheckCount,
		})
	}

	return &Dashboard{Sessions: sessions, Stats: stats}, nil
}
