package session

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/apoteket/stocktake-backend/internal/apperr"
)

// Service drives the stocktake session lifecycle.
type Service interface {
	// CreateSession starts a session in In Progress and claims every
	// currently-unlinked uploaded file in the selected locations.
	CreateSession(ctx context.Context, req CreateSessionRequest) (*CreateSessionResult, error)
	// CompleteCheck transitions In Progress -> Review.
	CompleteCheck(ctx context.Context, sessionID string) (*StocktakeSession, error)
	// ConfirmReview transitions Review -> Completed.
	ConfirmReview(ctx context.Context, sessionID string) (*StocktakeSession, error)
}

type service struct {
	repo Repository
}

// NewService creates a new session service.
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) CreateSession(ctx context.Context, req CreateSessionRequest) (*CreateSessionResult, error) {
	if req.Name == "" {
		return nil, apperr.Validationf("name is required")
	}
	if len(req.Name) > 100 {
		return nil, apperr.Validationf("name must be less than 100 characters")
	}
	if len(req.Locations) == 0 {
		return nil, apperr.Validationf("at least one location is required")
	}
	if len(req.Locations) > 20 {
		return nil, apperr.Validationf("too many locations selected")
	}
	if req.CreatedBy == "" {
		return nil, apperr.Validationf("created_by is required")
	}
	if len(req.CreatedBy) > 50 {
		return nil, apperr.Validationf("created_by must be less than 50 characters")
	}

	sess := &StocktakeSession{
		ID:        uuid.New(),
		Name:      "Stocktake - " + req.Name,
		Status:    StatusInProgress,
		CreatedBy: req.CreatedBy,
	}
	if err := s.repo.Create(ctx, sess); err != nil {
		return nil, apperr.Persistence("failed to create stocktake session", err)
	}

	linked, err := s.repo.ClaimFiles(ctx, sess.ID, req.Locations)
	if err != nil {
		return nil, apperr.Persistence("failed to link uploaded files", err)
	}
	return &CreateSessionResult{SessionID: sess.ID, LinkedFiles: linked}, nil
}

func (s *service) CompleteCheck(ctx context.Context, sessionID string) (*StocktakeSession, error) {
	return s.transition(ctx, sessionID, StatusReview)
}

func (s *service) ConfirmReview(ctx context.Context, sessionID string) (*StocktakeSession, error) {
	return s.transition(ctx, sessionID, StatusCompleted)
}

// transition applies one forward step of the state machine. Illegal moves
// are rejected with a conflict and leave the row untouched.
func (s *service) transition(ctx context.Context, sessionID string, to Status) (*StocktakeSession, error) {
	sess, err := s.repo.GetByID(ctx, sessionID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperr.NotFoundf("stocktake session %s not found", sessionID)
		}
		if _, parseErr := uuid.Parse(sessionID); parseErr != nil {
			return nil, apperr.Validationf("invalid session id: %s", sessionID)
		}
		return nil, apperr.Persistence("failed to load stocktake session", err)
	}
	if sess.Status == to {
		return nil, apperr.Conflictf("session is already %s", to)
	}
	if !CanTransition(sess.Status, to) {
		return nil, apperr.Conflictf("cannot transition session from %s to %s", sess.Status, to)
	}
	// The write re-checks the status it read, so a concurrent transition
	// matches zero rows instead of being overwritten.
	if err := s.repo.UpdateStatus(ctx, sess.ID, sess.Status, to); err != nil {
		if err == sql.ErrNoRows {
			return nil, apperr.Conflictf("session is no longer %s", sess.Status)
		}
		return nil, apperr.Persistence("failed to update session status", err)
	}
	sess.Status = to
	return sess, nil
}
