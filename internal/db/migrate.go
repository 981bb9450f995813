package db

import (
	"database/sql"
	"fmt"
)

// Migrate creates the answer-key schema. Every statement is idempotent so
// it runs on each open.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS answer_keys (
		id         TEXT PRIMARY KEY,
		name       TEXT NOT NULL UNIQUE,
		created_at TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS answer_key_entries (
		key_id   TEXT NOT NULL REFERENCES answer_keys(id) ON DELETE CASCADE,
		position INTEGER NOT NULL CHECK(position >= 0),
		answer   TEXT NOT NULL CHECK(answer <> ''),
		PRIMARY KEY (key_id, position)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_answer_keys_created ON answer_keys(created_at)`,
}
