package session

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/apoteket/stocktake-backend/internal/apperr"
)

type fakeFile struct {
	location  string
	sessionID *uuid.UUID
}

type fakeRepo struct {
	sessions      map[uuid.UUID]*StocktakeSession
	files         []*fakeFile
	statusUpdates int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{sessions: make(map[uuid.UUID]*StocktakeSession)}
}

func (r *fakeRepo) Create(ctx context.Context, s *StocktakeSession) error {
	s.CreatedAt = time.Now()
	s.UpdatedAt = s.CreatedAt
	r.sessions[s.ID] = s
	return nil
}

func (r *fakeRepo) GetByID(ctx context.Context, id string) (*StocktakeSession, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, err
	}
	s, ok := r.sessions[uid]
	if !ok {
		return nil, sql.ErrNoRows
	}
	copied := *s
	return &copied, nil
}

func (r *fakeRepo) UpdateStatus(ctx context.Context, id uuid.UUID, from, to Status) error {
	s, ok := r.sessions[id]
	if !ok || NormalizeStatus(string(s.Status)) != NormalizeStatus(string(from)) {
		return sql.ErrNoRows
	}
	s.Status = to
	s.UpdatedAt = time.Now()
	r.statusUpdates++
	return nil
}

func (r *fakeRepo) ClaimFiles(ctx context.Context, sessionID uuid.UUID, locations []string) (int64, error) {
	inSet := make(map[string]bool)
	for _, loc := range locations {
		inSet[loc] = true
	}
	var claimed int64
	for _, f := range r.files {
		if f.sessionID == nil && inSet[f.location] {
			sid := sessionID
			f.sessionID = &sid
			claimed++
		}
	}
	return claimed, nil
}

func (r *fakeRepo) addSession(status Status) uuid.UUID {
	id := uuid.New()
	r.sessions[id] = &StocktakeSession{
		ID:        id,
		Name:      "Stocktake - test",
		Status:    status,
		CreatedAt: time.Now().Add(-time.Hour),
		UpdatedAt: time.Now().Add(-time.Hour),
	}
	return id
}

func TestCreateSessionValidation(t *testing.T) {
	svc := NewService(newFakeRepo())
	tests := []struct {
		name string
		req  CreateSessionRequest
	}{
		{"missing name", CreateSessionRequest{Locations: []string{"101"}, CreatedBy: "SM"}},
		{"missing locations", CreateSessionRequest{Name: "July", CreatedBy: "SM"}},
		{"missing created_by", CreateSessionRequest{Name: "July", Locations: []string{"101"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.CreateSession(context.Background(), tt.req); apperr.KindOf(err) != apperr.KindValidation {
				t.Fatalf("expected validation error, got %v", err)
			}
		})
	}
}

func TestCreateSessionClaimsOnlyUnlinkedFiles(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)

	prior := uuid.New()
	repo.files = []*fakeFile{
		{location: "101", sessionID: &prior}, // already claimed by session A
		{location: "101"},
		{location: "102"},
		{location: "103"}, // not in the requested set
	}

	result, err := svc.CreateSession(context.Background(), CreateSessionRequest{
		Name:      "July count",
		Locations: []string{"101", "102"},
		CreatedBy: "SM",
	})
	if err != nil {
		t.Fatalf("CreateSession: %v", err)
	}
	if result.LinkedFiles != 2 {
		t.Errorf("linked files = %d, want 2 (already-claimed file untouched)", result.LinkedFiles)
	}
	if *repo.files[0].sessionID != prior {
		t.Error("file claimed by a prior session was relinked")
	}

	sess := repo.sessions[result.SessionID]
	if sess == nil {
		t.Fatal("session was not stored")
	}
	if sess.Name != "Stocktake - July count" {
		t.Errorf("name = %q, want Stocktake - prefix", sess.Name)
	}
	if sess.Status != StatusInProgress {
		t.Errorf("status = %q, want %q", sess.Status, StatusInProgress)
	}
}

func TestCompleteCheckTransitionsToReview(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)
	id := repo.addSession(StatusInProgress)

	sess, err := svc.CompleteCheck(context.Background(), id.String())
	if err != nil {
		t.Fatalf("CompleteCheck: %v", err)
	}
	if sess.Status != StatusReview {
		t.Errorf("status = %q, want %q", sess.Status, StatusReview)
	}
}

func TestCompleteCheckNotFound(t *testing.T) {
	svc := NewService(newFakeRepo())
	_, err := svc.CompleteCheck(context.Background(), uuid.NewString())
	if apperr.KindOf(err) != apperr.KindNotFound {
		t.Fatalf("expected not-found error, got %v", err)
	}
}

func TestConfirmReviewOnCompletedConflicts(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)
	id := repo.addSession(StatusCompleted)
	before := repo.sessions[id].UpdatedAt

	_, err := svc.ConfirmReview(context.Background(), id.String())
	if apperr.KindOf(err) != apperr.KindConflict {
		t.Fatalf("expected conflict error, got %v", err)
	}
	if repo.statusUpdates != 0 {
		t.Error("rejected transition must not write")
	}
	if !repo.sessions[id].UpdatedAt.Equal(before) {
		t.Error("rejected transition must not touch updated_at")
	}
}

// staleRepo serves reads that lag behind the stored state, the way a second
// writer racing between the service's read and its write would.
type staleRepo struct {
	*fakeRepo
	staleStatus Status
}

func (r *staleRepo) GetByID(ctx context.Context, id string) (*StocktakeSession, error) {
	s, err := r.fakeRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	s.Status = r.staleStatus
	return s, nil
}

func TestCompleteCheckLosesRaceToConcurrentWriter(t *testing.T) {
	repo := newFakeRepo()
	id := repo.addSession(StatusReview) // another writer already completed the check
	svc := NewService(&staleRepo{fakeRepo: repo, staleStatus: StatusInProgress})

	_, err := svc.CompleteCheck(context.Background(), id.String())
	if apperr.KindOf(err) != apperr.KindConflict {
		t.Fatalf("expected conflict when the stored status moved underneath, got %v", err)
	}
	if repo.sessions[id].Status != StatusReview {
		t.Errorf("status = %q, want %q left untouched", repo.sessions[id].Status, StatusReview)
	}
	if repo.statusUpdates != 0 {
		t.Error("guarded update must not write on a status mismatch")
	}
}

func TestNoSkippingInProgressToCompleted(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)
	id := repo.addSession(StatusInProgress)

	_, err := svc.ConfirmReview(context.Background(), id.String())
	if apperr.KindOf(err) != apperr.KindConflict {
		t.Fatalf("expected conflict for In Progress -> Completed, got %v", err)
	}
}

func TestNoBackwardTransition(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)
	id := repo.addSession(StatusReview)

	// CompleteCheck targets Review; from Review that is not a forward step.
	_, err := svc.CompleteCheck(context.Background(), id.String())
	if apperr.KindOf(err) != apperr.KindConflict {
		t.Fatalf("expected conflict, got %v", err)
	}
}

func TestNormalizeStatus(t *testing.T) {
	tests := []struct {
		raw  string
		want Status
	}{
		{"completed", StatusCompleted},
		{"Completed", StatusCompleted},
		{"review", StatusReview},
		{"Review", StatusReview},
		{"in progress", StatusInProgress},
		{"In Progress", StatusInProgress},
		{" REVIEW ", StatusReview},
		{"weird", Status("weird")},
	}
	for _, tt := range tests {
		if got := NormalizeStatus(tt.raw); got != tt.want {
			t.Errorf("NormalizeStatus(%q) = %q, want %q", tt.raw, got, tt.want)
		}
	}
}

func TestCanTransition(t *testing.T) {
	tests := []struct {
		from, to Status
		want     bool
	}{
		{StatusInProgress, StatusReview, true},
		{StatusReview, StatusCompleted, true},
		{StatusInProgress, StatusCompleted, false},
		{StatusReview, StatusInProgress, false},
		{StatusCompleted, StatusReview, false},
		{StatusCompleted, StatusInProgress, false},
	}
	for _, tt := range tests {
		if got := CanTransition(tt.from, tt.to); got != tt.want {
			t.Errorf("CanTransition(%q, %q) = %v, want %v", tt.from, tt.to, got, tt.want)
		}
	}
}
