package stockcheck

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/apoteket/stocktake-backend/internal/apperr"
)

type checkKey struct {
	productID uuid.UUID
	sessionID uuid.UUID
}

// fakeRepo honours the natural-key contract: one row per (product, session),
// expected qty copied from the product on first insert and kept across
// recounts, variance recomputed from the stored baseline.
type fakeRepo struct {
	expected map[uuid.UUID]int // product id -> expected qty
	checks   map[checkKey]*StockCheck
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		expected: make(map[uuid.UUID]int),
		checks:   make(map[checkKey]*StockCheck),
	}
}

func (r *fakeRepo) Upsert(ctx context.Context, productID, sessionID uuid.UUID, countedQty int, checkedBy string) (*StockCheck, error) {
	expected, ok := r.expected[productID]
	if !ok {
		return nil, sql.ErrNoRows
	}
	key := checkKey{productID, sessionID}
	if existing, ok := r.checks[key]; ok {
		existing.CountedQty = countedQty
		existing.Variance = countedQty - existing.ExpectedQty
		existing.CheckedBy = checkedBy
		existing.CheckedAt = time.Now()
		copied := *existing
		return &copied, nil
	}
	check := &StockCheck{
		ID:          uuid.New(),
		ProductID:   productID,
		SessionID:   sessionID,
		ExpectedQty: expected,
		CountedQty:  countedQty,
		Variance:    countedQty - expected,
		CheckedBy:   checkedBy,
		CheckedAt:   time.Now(),
		Status:      checkStatusDefault,
	}
	r.checks[key] = check
	copied := *check
	return &copied, nil
}

func (r *fakeRepo) UpsertAll(ctx context.Context, inputs []upsertInput) error {
	for _, in := range inputs {
		if _, ok := r.expected[in.productID]; !ok {
			return sql.ErrNoRows
		}
	}
	for _, in := range inputs {
		if _, err := r.Upsert(ctx, in.productID, in.sessionID, in.countedQty, in.checkedBy); err != nil {
			return err
		}
	}
	return nil
}

func (r *fakeRepo) ProductsForCount(ctx context.Context, location string, sessionID *uuid.UUID) ([]*CountProduct, error) {
	return nil, nil
}

func input(productID, sessionID uuid.UUID, counted int) CheckInput {
	return CheckInput{
		ProductID:  productID.String(),
		SessionID:  sessionID.String(),
		CountedQty: counted,
		CheckedBy:  "SM",
	}
}

func TestRecordCheckVariance(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)

	productID := uuid.New()
	sessionID := uuid.New()
	repo.expected[productID] = 10

	check, err := svc.RecordCheck(context.Background(), input(productID, sessionID, 7))
	if err != nil {
		t.Fatalf("RecordCheck: %v", err)
	}
	if check.ExpectedQty != 10 {
		t.Errorf("expected qty = %d, want 10 (copied from product)", check.ExpectedQty)
	}
	if check.Variance != -3 {
		t.Errorf("variance = %d, want -3", check.Variance)
	}
}

func TestRecordCheckUpsertIdempotence(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)

	productID := uuid.New()
	sessionID := uuid.New()
	repo.expected[productID] = 10

	if _, err := svc.RecordCheck(context.Background(), input(productID, sessionID, 7)); err != nil {
		t.Fatalf("first RecordCheck: %v", err)
	}
	check, err := svc.RecordCheck(context.Background(), input(productID, sessionID, 12))
	if err != nil {
		t.Fatalf("second RecordCheck: %v", err)
	}

	if len(repo.checks) != 1 {
		t.Fatalf("expected exactly 1 check row, got %d", len(repo.checks))
	}
	if check.CountedQty != 12 {
		t.Errorf("counted qty = %d, want 12 (second submission wins)", check.CountedQty)
	}
	if check.Variance != 2 {
		t.Errorf("variance = %d, want 2 (recomputed against stored baseline)", check.Variance)
	}
}

func TestRecordCheckUnknownProduct(t *testing.T) {
	svc := NewService(newFakeRepo())
	_, err := svc.RecordCheck(context.Background(), input(uuid.New(), uuid.New(), 1))
	if apperr.KindOf(err) != apperr.KindNotFound {
		t.Fatalf("expected not-found error, got %v", err)
	}
}

func TestRecordCheckValidation(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)
	productID := uuid.New()
	repo.expected[productID] = 1

	tests := []struct {
		name string
		in   CheckInput
	}{
		{"bad product id", CheckInput{ProductID: "nope", SessionID: uuid.NewString(), CountedQty: 1}},
		{"bad session id", CheckInput{ProductID: productID.String(), SessionID: "nope", CountedQty: 1}},
		{"negative count", input(productID, uuid.New(), -1)},
		{"oversized count", input(productID, uuid.New(), maxCountedQty+1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.RecordCheck(context.Background(), tt.in); apperr.KindOf(err) != apperr.KindValidation {
				t.Fatalf("expected validation error, got %v", err)
			}
		})
	}
}

func TestRecordBatchIndependent(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)

	sessionID := uuid.New()
	known := uuid.New()
	repo.expected[known] = 5

	result, err := svc.RecordBatch(context.Background(), []CheckInput{
		input(known, sessionID, 4),
		input(uuid.New(), sessionID, 9), // unknown product
	})
	if err != nil {
		t.Fatalf("RecordBatch: %v", err)
	}
	if result.Saved != 1 || result.Failed != 1 {
		t.Errorf("batch result = %+v, want saved=1 failed=1", result)
	}
	if len(repo.checks) != 1 {
		t.Errorf("expected the good item to stay saved, got %d rows", len(repo.checks))
	}
}

func TestRecordBatchAtomicAllOrNothing(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)

	sessionID := uuid.New()
	known := uuid.New()
	repo.expected[known] = 5

	err := svc.RecordBatchAtomic(context.Background(), []CheckInput{
		input(known, sessionID, 4),
		input(uuid.New(), sessionID, 9), // unknown product
	})
	if apperr.KindOf(err) != apperr.KindNotFound {
		t.Fatalf("expected not-found error, got %v", err)
	}
	if len(repo.checks) != 0 {
		t.Errorf("atomic batch must roll back, got %d rows", len(repo.checks))
	}
}

func TestRecordBatchEmpty(t *testing.T) {
	svc := NewService(newFakeRepo())
	if _, err := svc.RecordBatch(context.Background(), nil); apperr.KindOf(err) != apperr.KindValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
	if err := svc.RecordBatchAtomic(context.Background(), nil); apperr.KindOf(err) != apperr.KindValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}
