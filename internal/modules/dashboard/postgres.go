package dashboard

import (
	"context"
	"database/sql"

	"github.com/lib/pq"
)

type postgres struct{ db *sql.DB }

// NewPostgresRepository creates a Postgres-backed dashboard repository.
func NewPostgresRepository(db *sql.DB) Repository { return &postgres{db: db} }

func (r *postgres) StatusCounts(ctx context.Context) (map[string]int, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT LOWER(status), COUNT(*) FROM stocktake_sessions GROUP BY LOWER(status)`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	counts := make(map[string]int)
	for rows.Next() {
		var (
			status string
			n      int
		)
		if err := rows.Scan(&status, &n); err != nil {
			return nil, err
		}
		counts[status] = n
	}
	return counts, rows.Err()
}

func (r *postgres) LatestSessions(ctx context.Context, n int) ([]*SessionRow, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT s.id, s.name, COALESCE(s.created_by,''), s.status, s.created_at,
	COALESCE((SELECT array_agg(f.location ORDER BY f.upload_date) FROM uploaded_files f WHERE f.session_id = s.id), '{}'),
	(SELECT COUNT(*) FROM stock_checks c WHERE c.session_id = s.id)
FROM stocktake_sessions s
ORDER BY s.created_at DESC
LIMIT $1`, n)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var sessions []*SessionRow
	for rows.Next() {
		row := &SessionRow{}
		if err := rows.Scan(&row.ID, &row.Name, &row.CreatedBy, &row.Status,
			&row.CreatedAt, pq.Array(&row.Locations), &row.CheckCount); err != nil {
			return nil, err
		}
		sessions = append(sessions, row)
	}
	return sessions, rows.Err()
}
