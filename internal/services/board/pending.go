package board

import (
	"time"

	"github.com/thenoetrevino/kodo/internal/models"
)

// PendingMove is one cross-column status change waiting for the server
type PendingMove struct {
	ID        string // UUID, also the move log key
	ItemID    int
	Title     string
	From      string
	To        string
	StartedAt time.Time

	// Snapshot is the canonical list as it was before the move
	Snapshot []*models.Item

	seq uint64
	// confirmed collects items confirmed by other moves after Snapshot was taken,
	// so a rollback does not undo them
	confirmed []*models.Item
}

// Clone returns a copy that shares no slices with p
func (p *PendingMove) Clone() *PendingMove {
	c := *p
	c.Snapshot = models.CloneItems(p.Snapshot)
	c.confirmed = models.CloneItems(p.confirmed)
	return &c
}
