package review

import "context"

// Repository loads the review projection of a session.
type Repository interface {
	// GetSessionChecks loads one session with checks and file locations.
	GetSessionChecks(ctx context.Context, sessionID string) (*SessionChecks, error)
	// LatestEligible returns the most recently created session whose
	// status is Review or Completed, or sql.ErrNoRows if none exists.
	LatestEligible(ctx context.Context) (*SessionChecks, error)
}
