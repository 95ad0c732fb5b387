// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package ledger

import (
	"database/sql"
	"fmt"
)

// CreateSchema creates the ledger table. Safe to call multiple times - uses
// IF NOT EXISTS. The DDL sticks to the dialect subset SQLite and PostgreSQL
// share, so one schema serves both drivers.
func CreateSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

const schema = `
-- Chain-of-custody event log. Insert-only: rows are never updated or deleted.
CREATE TABLE IF NOT EXISTS event (
    id TEXT PRIMARY KEY,
    seq BIGINT NOT NULL UNIQUE,
    kind TEXT NOT NULL,
    payload TEXT NOT NULL,
    recorded_at TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_event_kind ON event(kind);
`
