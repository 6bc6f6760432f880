package database

import (
	"context"

	"github.com/thenoetrevino/kodo/internal/models"
)

// SnapshotStore caches the last fetched board
type SnapshotStore interface {
	SaveSnapshot(ctx context.Context, items []*models.Item, columns []*models.Column) error
	LoadSnapshot(ctx context.Context) (*Snapshot, error)
}

// MoveLog records settled status moves
type MoveLog interface {
	RecordMove(ctx context.Context, rec *models.MoveRecord) error
	ListMoves(ctx context.Context, limit int) ([]*models.MoveRecord, error)
	MovesForItem(ctx context.Context, itemID int) ([]*models.MoveRecord, error)
}

// DataStore defines the unified interface for all local data operations.
// Consumers can depend on the smaller interfaces for clearer dependencies.
type DataStore interface {
	SnapshotStore
	MoveLog
}
