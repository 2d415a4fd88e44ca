package session

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines stocktake session storage.
type Repository interface {
	Create(ctx context.Context, s *StocktakeSession) error
	GetByID(ctx context.Context, id string) (*StocktakeSession, error)
	// UpdateStatus sets a session's status and touches updated_at, but only
	// while the stored status still equals from (compared case-insensitively,
	// legacy rows carry either casing). Returns sql.ErrNoRows when no row
	// matched, whether the session is gone or was transitioned concurrently.
	UpdateStatus(ctx context.Context, id uuid.UUID, from, to Status) error
	// ClaimFiles links every uploaded file in the given locations that has
	// no session yet to sessionID, and returns the number claimed. Files
	// already claimed by another session are left untouched.
	ClaimFiles(ctx context.Context, sessionID uuid.UUID, locations []string) (int64, error)
}
