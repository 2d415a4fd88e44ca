package stockcheck

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
)

type postgres struct{ db *sql.DB }

// NewPostgresRepository creates a Postgres-backed stock check repository.
func NewPostgresRepository(db *sql.DB) Repository { return &postgres{db: db} }

// upsertQuery inserts a check seeded from the product's expected quantity,
// or on natural-key conflict updates the counted quantity and recomputes
// variance against the check's stored baseline. The INSERT..SELECT yields
// zero rows when the product id does not exist, which surfaces as
// sql.ErrNoRows.
const upsertQuery = `
INSERT INTO stock_checks (id,product_id,session_id,expected_qty,counted_qty,variance,checked_by,checked_at,status)
SELECT $1, p.id, $2, p.expected_qty, $3, $3 - p.expected_qty, $4, NOW(), $5
FROM products p WHERE p.id = $6
ON CONFLICT (product_id, session_id) DO UPDATE SET
	counted_qty = EXCLUDED.counted_qty,
	variance    = EXCLUDED.counted_qty - stock_checks.expected_qty,
	checked_by  = EXCLUDED.checked_by,
	checked_at  = EXCLUDED.checked_at,
	status      = EXCLUDED.status
RETURNING id,product_id,session_id,expected_qty,counted_qty,variance,COALESCE(checked_by,''),checked_at,status`

func (r *postgres) Upsert(ctx context.Context, productID, sessionID uuid.UUID, countedQty int, checkedBy string) (*StockCheck, error) {
	return scanCheck(r.db.QueryRowContext(ctx, upsertQuery,
		uuid.New(), sessionID, countedQty, checkedBy, checkStatusDefault, productID))
}

func (r *postgres) UpsertAll(ctx context.Context, inputs []upsertInput) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()
	for _, in := range inputs {
		if _, err := scanCheck(tx.QueryRowContext(ctx, upsertQuery,
			uuid.New(), in.sessionID, in.countedQty, in.checkedBy, checkStatusDefault, in.productID)); err != nil {
			return err
		}
	}
	return tx.Commit()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanCheck(row rowScanner) (*StockCheck, error) {
	c := &StockCheck{}
	err := row.Scan(&c.ID, &c.ProductID, &c.SessionID, &c.ExpectedQty,
		&c.CountedQty, &c.Variance, &c.CheckedBy, &c.CheckedAt, &c.Status)
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (r *postgres) ProductsForCount(ctx context.Context, location string, sessionID *uuid.UUID) ([]*CountProduct, error) {
	query := `
SELECT p.id, p.name, p.sku, p.quantity, p.location, p.expected_qty
FROM products p`
	var (
		args  []interface{}
		where []string
	)
	if sessionID != nil {
		query += ` JOIN uploaded_files f ON f.id = p.file_id`
		args = append(args, *sessionID)
		where = append(where, `f.session_id = $1`)
	}
	if location != "" {
		args = append(args, location)
		if len(args) == 2 {
			where = append(where, `p.location = $2`)
		} else {
			where = append(where, `p.location = $1`)
		}
	}
	for i, cond := range where {
		if i == 0 {
			query += ` WHERE ` + cond
		} else {
			query += ` AND ` + cond
		}
	}
	query += ` ORDER BY p.name ASC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var products []*CountProduct
	for rows.Next() {
		p := &CountProduct{}
		if err := rows.Scan(&p.ID, &p.Name, &p.SKU, &p.Quantity, &p.Location, &p.ExpectedQty); err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}
