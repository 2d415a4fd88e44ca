package database

import (
	"database/sql"
	"fmt"
)

// schema holds the DDL for the stocktake tables. Statements are idempotent
// so startup can run them unconditionally. The unique index on
// (product_id, session_id) backs the recorder's atomic upsert; application
// code must never fall back to check-then-create.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS stocktake_sessions (
		id         UUID PRIMARY KEY,
		name       TEXT NOT NULL,
		status     TEXT NOT NULL,
		created_by TEXT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS uploaded_files (
		id            UUID PRIMARY KEY,
		filename      TEXT NOT NULL,
		upload_date   TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		location      TEXT NOT NULL,
		product_count INTEGER NOT NULL DEFAULT 0,
		session_id    UUID REFERENCES stocktake_sessions(id)
	)`,
	`CREATE TABLE IF NOT EXISTS products (
		id          UUID PRIMARY KEY,
		file_id     UUID NOT NULL REFERENCES uploaded_files(id) ON DELETE CASCADE,
		stock_no    TEXT NOT NULL DEFAULT '',
		sku         TEXT NOT NULL DEFAULT '',
		name        TEXT NOT NULL,
		quantity    INTEGER NOT NULL DEFAULT 0,
		price       DOUBLE PRECISION NOT NULL DEFAULT 0,
		stock_value DOUBLE PRECISION NOT NULL DEFAULT 0,
		location    TEXT NOT NULL,
		expected_qty INTEGER NOT NULL DEFAULT 0
	)`,
	`CREATE TABLE IF NOT EXISTS stock_checks (
		id           UUID PRIMARY KEY,
		product_id   UUID NOT NULL REFERENCES products(id) ON DELETE CASCADE,
		session_id   UUID NOT NULL REFERENCES stocktake_sessions(id),
		expected_qty INTEGER NOT NULL DEFAULT 0,
		counted_qty  INTEGER NOT NULL DEFAULT 0,
		variance     INTEGER NOT NULL DEFAULT 0,
		checked_by   TEXT,
		checked_at   TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		status       TEXT NOT NULL DEFAULT 'checked',
		UNIQUE (product_id, session_id)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_uploaded_files_location ON uploaded_files(location)`,
	`CREATE INDEX IF NOT EXISTS idx_uploaded_files_session ON uploaded_files(session_id)`,
	`CREATE INDEX IF NOT EXISTS idx_products_file ON products(file_id)`,
	`CREATE INDEX IF NOT EXISTS idx_products_location ON products(location)`,
	`CREATE INDEX IF NOT EXISTS idx_stock_checks_session ON stock_checks(session_id)`,
}

// InitSchema creates the stocktake tables and indexes if they do not exist.
func InitSchema(db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("schema bootstrap failed: %w", err)
		}
	}
	return nil
}
