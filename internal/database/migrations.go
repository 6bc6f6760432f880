package database

import (
	"context"
	"database/sql"
	"fmt"
)

// schemaVersion is bumped whenever a statement is appended to migrations
const schemaVersion = 1

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS snapshot_items (
		id INTEGER PRIMARY KEY,
		position INTEGER NOT NULL,
		status TEXT NOT NULL,
		data TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS snapshot_columns (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		color TEXT NOT NULL DEFAULT '',
		position INTEGER NOT NULL,
		auto_assign_pattern TEXT
	)`,
	`CREATE TABLE IF NOT EXISTS snapshot_meta (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS move_log (
		id TEXT PRIMARY KEY,
		item_id INTEGER NOT NULL,
		title TEXT NOT NULL DEFAULT '',
		from_status TEXT NOT NULL,
		to_status TEXT NOT NULL,
		outcome TEXT NOT NULL CHECK (outcome IN ('confirmed', 'rolled_back')),
		error TEXT NOT NULL DEFAULT '',
		started_at DATETIME NOT NULL,
		settled_at DATETIME NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_move_log_settled ON move_log(settled_at)`,
	`CREATE INDEX IF NOT EXISTS idx_move_log_item ON move_log(item_id, settled_at)`,
}

// runMigrations creates the database schema if needed
func runMigrations(ctx context.Context, db *sql.DB) error {
	return withTx(ctx, db, func(tx *sql.Tx) error {
		for i, stmt := range migrations {
			if _, err := tx.ExecContext(ctx, stmt); err != nil {
				return fmt.Errorf("migration %d: %w", i, err)
			}
		}
		if _, err := tx.ExecContext(ctx, fmt.Sprintf("PRAGMA user_version = %d", schemaVersion)); err != nil {
			return fmt.Errorf("failed to set schema version: %w", err)
		}
		return nil
	})
}
