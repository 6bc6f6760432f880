package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/thenoetrevino/kodo/internal/models"
)

const metaSavedAt = "saved_at"

// Snapshot is the last board state fetched from the server
type Snapshot struct {
	Items   []*models.Item
	Columns []*models.Column
	SavedAt time.Time
}

// SnapshotRepo caches the board so it can be shown before the server answers
type SnapshotRepo struct {
	db *sql.DB
}

// SaveSnapshot replaces the cached board with items and columns.
// Item order is preserved.
func (r *SnapshotRepo) SaveSnapshot(ctx context.Context, items []*models.Item, columns []*models.Column) error {
	return withTx(ctx, r.db, func(tx *sql.Tx) error {
		for _, stmt := range []string{"DELETE FROM snapshot_items", "DELETE FROM snapshot_columns"} {
			if _, err := tx.ExecContext(ctx, stmt); err != nil {
				return fmt.Errorf("failed to clear snapshot: %w", err)
			}
		}

		for pos, item := range items {
			data, err := json.Marshal(item)
			if err != nil {
				return fmt.Errorf("failed to encode item %d: %w", item.ID, err)
			}
			_, err = tx.ExecContext(ctx,
				`INSERT INTO snapshot_items (id, position, status, data) VALUES (?, ?, ?, ?)`,
				item.ID, pos, string(item.Status), string(data))
			if err != nil {
				return fmt.Errorf("failed to save item %d: %w", item.ID, err)
			}
		}

		for _, col := range columns {
			_, err := tx.ExecContext(ctx,
				`INSERT OR REPLACE INTO snapshot_columns (id, name, color, position, auto_assign_pattern) VALUES (?, ?, ?, ?, ?)`,
				col.ID, col.Name, col.Color, col.Position, nullString(col.AutoAssignPattern))
			if err != nil {
				return fmt.Errorf("failed to save column %s: %w", col.ID, err)
			}
		}

		_, err := tx.ExecContext(ctx,
			`INSERT INTO snapshot_meta (key, value) VALUES (?, ?)
			 ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
			metaSavedAt, time.Now().UTC().Format(time.RFC3339Nano))
		if err != nil {
			return fmt.Errorf("failed to save snapshot time: %w", err)
		}
		return nil
	})
}

// LoadSnapshot returns the cached board, or ErrNoSnapshot when nothing was saved yet
func (r *SnapshotRepo) LoadSnapshot(ctx context.Context) (*Snapshot, error) {
	var savedAt string
	err := r.db.QueryRowContext(ctx, `SELECT value FROM snapshot_meta WHERE key = ?`, metaSavedAt).Scan(&savedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNoSnapshot
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot time: %w", err)
	}

	snap := &Snapshot{Items: []*models.Item{}, Columns: []*models.Column{}}
	if snap.SavedAt, err = time.Parse(time.RFC3339Nano, savedAt); err != nil {
		return nil, fmt.Errorf("invalid snapshot time %q: %w", savedAt, err)
	}

	if snap.Items, err = r.loadItems(ctx); err != nil {
		return nil, err
	}
	if snap.Columns, err = r.loadColumns(ctx); err != nil {
		return nil, err
	}
	return snap, nil
}

func (r *SnapshotRepo) loadItems(ctx context.Context) ([]*models.Item, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT data FROM snapshot_items ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("failed to query snapshot items: %w", err)
	}
	defer func() { _ = rows.Close() }()

	items := []*models.Item{}
	for rows.Next() {
		var data string
		if err := rows.Scan(&data); err != nil {
			return nil, err
		}
		var item models.Item
		if err := json.Unmarshal([]byte(data), &item); err != nil {
			return nil, fmt.Errorf("failed to decode cached item: %w", err)
		}
		items = append(items, &item)
	}
	return items, rows.Err()
}

func (r *SnapshotRepo) loadColumns(ctx context.Context) ([]*models.Column, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, color, position, auto_assign_pattern FROM snapshot_columns ORDER BY position, rowid`)
	if err != nil {
		return nil, fmt.Errorf("failed to query snapshot columns: %w", err)
	}
	defer func() { _ = rows.Close() }()

	columns := []*models.Column{}
	for rows.Next() {
		col := &models.Column{}
		var pattern sql.NullString
		if err := rows.Scan(&col.ID, &col.Name, &col.Color, &col.Position, &pattern); err != nil {
			return nil, err
		}
		col.AutoAssignPattern = stringPtr(pattern)
		columns = append(columns, col)
	}
	return columns, rows.Err()
}
