package review

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
)

type postgres struct{ db *sql.DB }

// NewPostgresRepository creates a Postgres-backed review repository.
func NewPostgresRepository(db *sql.DB) Repository { return &postgres{db: db} }

func (r *postgres) GetSessionChecks(ctx context.Context, sessionID string) (*SessionChecks, error) {
	uid, err := uuid.Parse(sessionID)
	if err != nil {
		return nil, err
	}
	sc := &SessionChecks{}
	err = r.db.QueryRowContext(ctx, `
SELECT id,name,status,created_at FROM stocktake_sessions WHERE id=$1`, uid).
		Scan(&sc.ID, &sc.Name, &sc.Status, &sc.CreatedAt)
	if err != nil {
		return nil, err
	}
	if err := r.loadChildren(ctx, sc); err != nil {
		return nil, err
	}
	return sc, nil
}

func (r *postgres) LatestEligible(ctx context.Context) (*SessionChecks, error) {
	sc := &SessionChecks{}
	err := r.db.QueryRowContext(ctx, `
SELECT id,name,status,created_at FROM stocktake_sessions
WHERE LOWER(status) IN ('review','completed')
ORDER BY created_at DESC LIMIT 1`).
		Scan(&sc.ID, &sc.Name, &sc.Status, &sc.CreatedAt)
	if err != nil {
		return nil, err
	}
	if err := r.loadChildren(ctx, sc); err != nil {
		return nil, err
	}
	return sc, nil
}

func (r *postgres) loadChildren(ctx context.Context, sc *SessionChecks) error {
	rows, err := r.db.QueryContext(ctx, `
SELECT c.id, p.sku, p.name, p.expected_qty, c.counted_qty, p.price
FROM stock_checks c
JOIN products p ON p.id = c.product_id
WHERE c.session_id = $1`, sc.ID)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		row := &CheckRow{}
		if err := rows.Scan(&row.ID, &row.SKU, &row.ProductName,
			&row.ExpectedQty, &row.CountedQty, &row.Price); err != nil {
			return err
		}
		sc.Checks = append(sc.Checks, row)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	locRows, err := r.db.QueryContext(ctx, `
SELECT location FROM uploaded_files WHERE session_id = $1 ORDER BY upload_date ASC`, sc.ID)
	if err != nil {
		return err
	}
	defer locRows.Close()
	for locRows.Next() {
		var loc string
		if err := locRows.Scan(&loc); err != nil {
			return err
		}
		sc.FileLocations = append(sc.FileLocations, loc)
	}
	return locRows.Err()
}
