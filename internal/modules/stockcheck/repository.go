package stockcheck

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines stock check storage. Upserts are keyed on the
// (product_id, session_id) natural key and must be atomic single
// statements; the unique constraint, not application logic, prevents
// duplicate rows under concurrent submissions.
type Repository interface {
	// Upsert inserts or updates the check for (productID, sessionID),
	// copying the product's expected quantity on first insert and
	// recomputing variance from the stored baseline on every write.
	// Returns sql.ErrNoRows when the product does not exist.
	Upsert(ctx context.Context, productID, sessionID uuid.UUID, countedQty int, checkedBy string) (*StockCheck, error)
	// UpsertAll applies a set of upserts inside one transaction.
	UpsertAll(ctx context.Context, inputs []upsertInput) error
	// ProductsForCount lists count-grid product projections, optionally
	// filtered by location and/or the owning file's session.
	ProductsForCount(ctx context.Context, location string, sessionID *uuid.UUID) ([]*CountProduct, error)
}

// upsertInput is a validated, parsed check submission.
type upsertInput struct {
	productID  uuid.UUID
	sessionID  uuid.UUID
	countedQty int
	checkedBy  string
}
