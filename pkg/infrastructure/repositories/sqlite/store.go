// Package sqlite contains SQLite implementations of the repository
// interfaces. It is the reference persistence collaborator: plans and items
// are saved with whole-plan replace semantics, production records are
// append-only.
package sqlite

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

const schema = `
CREATE TABLE IF NOT EXISTS plans (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT NOT NULL,
	state TEXT NOT NULL DEFAULT 'OPEN',
	created_at DATETIME NOT NULL
);

CREATE TABLE IF NOT EXISTS plan_items (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	plan_id INTEGER NOT NULL REFERENCES plans(id) ON DELETE CASCADE,
	semi_finished_id TEXT NOT NULL,
	name TEXT NOT NULL,
	code TEXT NOT NULL DEFAULT '',
	target INTEGER NOT NULL,
	produced INTEGER NOT NULL DEFAULT 0,
	position INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_plan_items_plan ON plan_items(plan_id, position);

CREATE TABLE IF NOT EXISTS materials (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	code TEXT NOT NULL DEFAULT '',
	stock TEXT NOT NULL DEFAULT '0'
);

CREATE TABLE IF NOT EXISTS recipes (
	semi_finished_id TEXT NOT NULL,
	raw_material_id TEXT NOT NULL,
	qty_per_unit TEXT NOT NULL,
	position INTEGER NOT NULL,
	PRIMARY KEY (semi_finished_id, position)
);

CREATE TABLE IF NOT EXISTS production_records (
	id TEXT PRIMARY KEY,
	plan_id INTEGER NOT NULL,
	operator TEXT NOT NULL,
	semi_finished_id TEXT NOT NULL,
	qty_ok INTEGER NOT NULL,
	qty_scrap INTEGER NOT NULL DEFAULT 0,
	scrap_reason TEXT,
	recorded_at DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_production_records_plan ON production_records(plan_id);
`

// Open opens (or creates) the database at path and applies the schema.
// Use ":memory:" for an ephemeral store.
func Open(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database %s: %w", path, err)
	}

	// A single connection keeps an in-memory store from being a fresh empty
	// database per pooled connection, and serializes writes on file stores.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}
	if err := Migrate(db); err != nil {
		db.Close()
		return nil, err
	}

	return db, nil
}

// Migrate applies the schema to an already-open database
func Migrate(db *sql.DB) error {
	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}
	return nil
}
