package stockcheck

import (
	"time"

	"github.com/google/uuid"
)

// StockCheck is the single count record for a (product, session) pair.
// ExpectedQty is copied from the product when the record is first created
// and stays fixed across recounts; variance is always recomputed server-side
// as counted minus expected.
type StockCheck struct {
	ID          uuid.UUID `json:"id"`
	ProductID   uuid.UUID `json:"product_id"`
	SessionID   uuid.UUID `json:"session_id"`
	ExpectedQty int       `json:"expected_qty"`
	CountedQty  int       `json:"counted_qty"`
	Variance    int       `json:"variance"`
	CheckedBy   string    `json:"checked_by"`
	CheckedAt   time.Time `json:"checked_at"`
	Status      string    `json:"status"`
}

// CheckInput is one count submission.
type CheckInput struct {
	ProductID  string `json:"product_id"`
	SessionID  string `json:"session_id"`
	CountedQty int    `json:"counted_qty"`
	CheckedBy  string `json:"checked_by"`
}

// BatchResult aggregates a per-item-independent batch submission. Per the
// count-entry UI's contract there is no per-item detail, only totals.
type BatchResult struct {
	Saved  int `json:"saved"`
	Failed int `json:"failed"`
}

// CountProduct is the count-grid projection of a product.
type CountProduct struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	SKU         string    `json:"sku"`
	Quantity    int       `json:"quantity"`
	Location    string    `json:"location"`
	ExpectedQty int       `json:"expected_qty"`
}

// StockData is the payload backing the count-entry grid.
type StockData struct {
	Products      []*CountProduct `json:"products"`
	Locations     []LocationRef   `json:"locations"`
	TotalProducts int             `json:"total_products"`
}

// LocationRef pairs a location code with its display name.
type LocationRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// checkStatusDefault is the free-text status written on every upsert.
const checkStatusDefault = "checked"
