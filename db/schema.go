// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"context"
	"database/sql"
	"fmt"
)

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
// The DDL is shared by PostgreSQL and SQLite.
func CreateSchema(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, schema)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

const schema = `
-- Bingo templates (one per edition)
CREATE TABLE IF NOT EXISTS bingo_template (
    year TEXT PRIMARY KEY,
    created_at TIMESTAMP NOT NULL,
    updated_at TIMESTAMP NOT NULL
);

CREATE TABLE IF NOT EXISTS bingo_template_cell (
    year TEXT NOT NULL REFERENCES bingo_template(year) ON DELETE CASCADE,
    cell_id INTEGER NOT NULL CHECK (cell_id BETWEEN 1 AND 25),
    title TEXT NOT NULL,
    position INTEGER NOT NULL CHECK (position BETWEEN 0 AND 24),
    PRIMARY KEY (year, cell_id),
    UNIQUE (year, position)
);

-- Per-user progress
CREATE TABLE IF NOT EXISTS bingo_progress (
    user_id TEXT NOT NULL,
    year TEXT NOT NULL,
    completed_at TIMESTAMP,
    created_at TIMESTAMP NOT NULL,
    updated_at TIMESTAMP NOT NULL,
    PRIMARY KEY (user_id, year)
);

CREATE TABLE IF NOT EXISTS bingo_marked_cell (
    user_id TEXT NOT NULL,
    year TEXT NOT NULL,
    cell_id INTEGER NOT NULL CHECK (cell_id BETWEEN 1 AND 25),
    agrupacion_id TEXT,
    agrupacion_name TEXT NOT NULL,
    agrupacion_tipo TEXT NOT NULL DEFAULT '',
    pase TEXT NOT NULL,
    marked_at TIMESTAMP NOT NULL,
    PRIMARY KEY (user_id, year, cell_id),
    FOREIGN KEY (user_id, year) REFERENCES bingo_progress(user_id, year) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_bingo_marked_cell_progress ON bingo_marked_cell(user_id, year);

-- Catalog
CREATE TABLE IF NOT EXISTS agrupacion (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    tipo TEXT NOT NULL,
    year TEXT NOT NULL DEFAULT ''
);

CREATE INDEX IF NOT EXISTS idx_agrupacion_name ON agrupacion(name);
`
