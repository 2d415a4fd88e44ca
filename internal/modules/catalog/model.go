package catalog

import (
	"time"

	"github.com/google/uuid"
)

// UploadedFile is one ingested stock export, scoped to a single location.
// SessionID is nil until a stocktake session claims the file.
type UploadedFile struct {
	ID           uuid.UUID  `json:"id"`
	Filename     string     `json:"filename"`
	UploadDate   time.Time  `json:"upload_date"`
	Location     string     `json:"location"`
	ProductCount int        `json:"product_count"`
	SessionID    *uuid.UUID `json:"session_id,omitempty"`
	Products     []*Product `json:"products,omitempty"`
}

// Product is one stock line owned by an uploaded file. ExpectedQty is the
// baseline seeded at ingestion; counted quantities live on stock checks.
type Product struct {
	ID          uuid.UUID `json:"id"`
	FileID      uuid.UUID `json:"file_id"`
	StockNo     string    `json:"stock_no"`
	SKU         string    `json:"sku"`
	Name        string    `json:"name"`
	Quantity    int       `json:"quantity"`
	Price       float64   `json:"price"`
	StockValue  float64   `json:"stock_value"`
	Location    string    `json:"location"`
	ExpectedQty int       `json:"expected_qty"`
}

// Location pairs a location code with its display name.
type Location struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// UploadInput is one file submitted for ingestion.
type UploadInput struct {
	Filename string
	Content  []byte
}

// IngestResult summarizes one ingested file.
type IngestResult struct {
	FileID       uuid.UUID `json:"file_id"`
	Filename     string    `json:"filename"`
	Location     string    `json:"location"`
	ProductCount int       `json:"product_count"`
}
