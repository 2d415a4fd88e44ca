package session

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type postgres struct{ db *sql.DB }

// NewPostgresRepository creates a Postgres-backed session repository.
func NewPostgresRepository(db *sql.DB) Repository { return &postgres{db: db} }

func (r *postgres) Create(ctx context.Context, s *StocktakeSession) error {
	return r.db.QueryRowContext(ctx, `
INSERT INTO stocktake_sessions (id,name,status,created_by)
VALUES ($1,$2,$3,$4)
RETURNING created_at, updated_at`,
		s.ID, s.Name, string(s.Status), s.CreatedBy).
		Scan(&s.CreatedAt, &s.UpdatedAt)
}

func (r *postgres) GetByID(ctx context.Context, id string) (*StocktakeSession, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, err
	}
	s := &StocktakeSession{}
	var rawStatus string
	err = r.db.QueryRowContext(ctx, `
SELECT id,name,status,COALESCE(created_by,''),created_at,updated_at
FROM stocktake_sessions WHERE id=$1`, uid).
		Scan(&s.ID, &s.Name, &rawStatus, &s.CreatedBy, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, err
	}
	s.Status = NormalizeStatus(rawStatus)
	return s, nil
}

func (r *postgres) UpdateStatus(ctx context.Context, id uuid.UUID, from, to Status) error {
	res, err := r.db.ExecContext(ctx, `
UPDATE stocktake_sessions SET status=$1, updated_at=NOW()
WHERE id=$2 AND LOWER(status)=LOWER($3)`,
		string(to), id, string(from))
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *postgres) ClaimFiles(ctx context.Context, sessionID uuid.UUID, locations []string) (int64, error) {
	res, err := r.db.ExecContext(ctx, `
UPDATE uploaded_files SET session_id=$1
WHERE location = ANY($2) AND session_id IS NULL`,
		sessionID, pq.Array(locations))
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
