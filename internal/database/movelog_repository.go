package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/thenoetrevino/kodo/internal/models"
)

// DefaultHistoryLimit caps ListMoves when no limit is given
const DefaultHistoryLimit = 50

// MoveLogRepo stores settled status moves
type MoveLogRepo struct {
	db *sql.DB
}

// RecordMove stores a settled move. A missing ID is filled with a new UUID.
func (r *MoveLogRepo) RecordMove(ctx context.Context, rec *models.MoveRecord) error {
	if rec == nil || rec.ItemID == 0 || rec.To == "" {
		return ErrInvalidMove
	}
	if rec.Outcome != models.OutcomeConfirmed && rec.Outcome != models.OutcomeRolledBack {
		return fmt.Errorf("%w: outcome %q", ErrInvalidMove, rec.Outcome)
	}
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.SettledAt.IsZero() {
		rec.SettledAt = time.Now()
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO move_log (id, item_id, title, from_status, to_status, outcome, error, started_at, settled_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.ItemID, rec.Title, rec.From, rec.To, string(rec.Outcome), rec.Error,
		rec.StartedAt.UTC(), rec.SettledAt.UTC())
	if err != nil {
		return fmt.Errorf("failed to record move %s: %w", rec.ID, err)
	}
	return nil
}

// ListMoves returns the most recent moves first. limit <= 0 means DefaultHistoryLimit.
func (r *MoveLogRepo) ListMoves(ctx context.Context, limit int) ([]*models.MoveRecord, error) {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	return r.query(ctx,
		`SELECT id, item_id, title, from_status, to_status, outcome, error, started_at, settled_at
		 FROM move_log ORDER BY settled_at DESC, rowid DESC LIMIT ?`, limit)
}

// MovesForItem returns the moves of one item, most recent first
func (r *MoveLogRepo) MovesForItem(ctx context.Context, itemID int) ([]*models.MoveRecord, error) {
	return r.query(ctx,
		`SELECT id, item_id, title, from_status, to_status, outcome, error, started_at, settled_at
		 FROM move_log WHERE item_id = ? ORDER BY settled_at DESC, rowid DESC`, itemID)
}

func (r *MoveLogRepo) query(ctx context.Context, query string, args ...any) ([]*models.MoveRecord, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query move log: %w", err)
	}
	defer func() { _ = rows.Close() }()

	records := []*models.MoveRecord{}
	for rows.Next() {
		rec := &models.MoveRecord{}
		var outcome string
		if err := rows.Scan(&rec.ID, &rec.ItemID, &rec.Title, &rec.From, &rec.To, &outcome, &rec.Error,
			&rec.StartedAt, &rec.SettledAt); err != nil {
			return nil, err
		}
		rec.Outcome = models.MoveOutcome(outcome)
		records = append(records, rec)
	}
	return records, rows.Err()
}
