package session

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Status is the lifecycle state of a stocktake session. The stored values
// are the canonical casings below; legacy rows may carry other casings and
// are normalized on read.
type Status string

const (
	StatusInProgress Status = "In Progress"
	StatusReview     Status = "Review"
	StatusCompleted  Status = "Completed"
)

// validTransitions defines the forward-only status state machine.
var validTransitions = map[Status][]Status{
	StatusInProgress: {StatusReview},
	StatusReview:     {StatusCompleted},
	StatusCompleted:  {},
}

// CanTransition reports whether moving from to next is a legal step.
func CanTransition(from, to Status) bool {
	for _, s := range validTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// NormalizeStatus maps any stored casing onto the canonical status values.
// Unrecognized values pass through unchanged.
func NormalizeStatus(raw string) Status {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "in progress":
		return StatusInProgress
	case "review":
		return StatusReview
	case "completed":
		return StatusCompleted
	}
	return Status(raw)
}

// StocktakeSession is one bounded counting exercise over a set of locations.
type StocktakeSession struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Status    Status    `json:"status"`
	CreatedBy string    `json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CreateSessionRequest is the payload for starting a stocktake.
type CreateSessionRequest struct {
	Name      string   `json:"name"`
	Locations []string `json:"locations"`
	CreatedBy string   `json:"created_by"`
}

// CreateSessionResult reports the new session and how many uploaded files
// were claimed for it.
type CreateSessionResult struct {
	SessionID   uuid.UUID `json:"session_id"`
	LinkedFiles int64     `json:"linked_files"`
}
