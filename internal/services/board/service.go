// Package board coordinates the kanban board: it owns the column projection and
// applies cross-column status moves optimistically, then reconciles them with the
// item server.
package board

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/thenoetrevino/kodo/internal/database"
	"github.com/thenoetrevino/kodo/internal/drag"
	"github.com/thenoetrevino/kodo/internal/itemstore"
	"github.com/thenoetrevino/kodo/internal/models"
	"github.com/thenoetrevino/kodo/internal/projection"
)

// ItemAPI is the part of the kodo server the board depends on
type ItemAPI interface {
	ListItems(ctx context.Context) ([]*models.Item, error)
	GetItem(ctx context.Context, id int) (*models.Item, error)
	UpdateItemStatus(ctx context.Context, id int, status string) (*models.Item, error)
	GetColumns(ctx context.Context) ([]*models.Column, error)
}

// Service defines the board state container: read-only selectors plus the
// named mutations that are allowed to change item status.
type Service interface {
	// Selectors
	Projection() *projection.Projection
	Columns() []*models.Column
	Items() []*models.Item
	Item(itemID int) (*models.Item, bool)
	Orphans() []*models.Item
	Pending() []*PendingMove
	IsPending(itemID int) bool
	Notifications() []Notification
	DrainNotifications() []Notification
	Summary() Summary
	Stale() bool

	// Loading
	LoadCached(ctx context.Context) error
	Refresh(ctx context.Context) error
	Detail(ctx context.Context, itemID int) (*models.Item, error)

	// Local-only mutation
	Reorder(intent drag.Intent) error

	// Status moves
	BeginMove(intent drag.Intent) (*PendingMove, error)
	Commit(ctx context.Context, pending *PendingMove) (*models.Item, error)
	SettleMove(ctx context.Context, pending *PendingMove, confirmed *models.Item, callErr error) (SettleResult, error)
	MoveItem(ctx context.Context, intent drag.Intent) (SettleResult, error)
	MoveTo(ctx context.Context, itemID int, columnID string) (SettleResult, error)
	SetStatus(ctx context.Context, itemID int, status string) (SettleResult, error)
}

// SettleResult reports how a move ended
type SettleResult struct {
	Outcome models.MoveOutcome
	Item    *models.Item // confirmed item, or the restored one after a rollback
	Err     error        // the remote error that caused a rollback
	// Refresh is set when the caller should fetch the full list again.
	// Every settlement sets it.
	Refresh bool
}

// service implements Service interface
type service struct {
	mu sync.Mutex

	api   ItemAPI
	store *itemstore.Store
	repo  database.DataStore // optional: snapshot cache and move log

	columns []*models.Column
	proj    *projection.Projection
	pending map[int]*PendingMove
	seq     uint64
	notes   []Notification

	now func() time.Time
}

// NewService creates a board service over the canonical store.
// repo may be nil, in which case nothing is cached or logged.
func NewService(api ItemAPI, store *itemstore.Store, repo database.DataStore) Service {
	if store == nil {
		store = itemstore.New(nil)
	}
	s := &service{
		api:     api,
		store:   store,
		repo:    repo,
		columns: models.DefaultColumns(),
		pending: make(map[int]*PendingMove),
		now:     time.Now,
	}
	s.proj = s.derive()
	return s
}

// ============================================================================
// SELECTORS
// ============================================================================

// Projection returns a copy of the current column projection
func (s *service) Projection() *projection.Projection {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.proj.Clone()
}

func (s *service) Columns() []*models.Column {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*models.Column, len(s.columns))
	for i, col := range s.columns {
		c := *col
		out[i] = &c
	}
	return models.SortColumns(out)
}

// Items returns the canonical list, including orphans
func (s *service) Items() []*models.Item {
	return s.store.Items()
}

// Item returns the item as currently displayed: the optimistic copy while a move
// is in flight, else the canonical one
func (s *service) Item(itemID int) (*models.Item, bool) {
	s.mu.Lock()
	if item := s.proj.Item(itemID); item != nil {
		c := item.Clone()
		s.mu.Unlock()
		return c, true
	}
	s.mu.Unlock()
	return s.store.Get(itemID)
}

// Orphans returns canonical items whose status matches no column
func (s *service) Orphans() []*models.Item {
	s.mu.Lock()
	columns := s.columns
	s.mu.Unlock()
	return projection.Orphans(columns, s.store.Items())
}

// Pending returns the in-flight moves in the order they started
func (s *service) Pending() []*PendingMove {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*PendingMove, 0, len(s.pending))
	for _, p := range s.sortedPending() {
		out = append(out, p.Clone())
	}
	return out
}

func (s *service) IsPending(itemID int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.pending[itemID]
	return ok
}

// Notifications returns the queued notifications without removing them
func (s *service) Notifications() []Notification {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.notes)
}

// DrainNotifications returns and clears the queued notifications
func (s *service) DrainNotifications() []Notification {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := s.notes
	s.notes = nil
	return out
}

// Stale reports whether the canonical list should be fetched again
func (s *service) Stale() bool {
	return s.store.IsStale()
}

// ============================================================================
// LOADING
// ============================================================================

// LoadCached shows the last cached board until the first fetch completes.
// The store stays stale. Once a fetch has landed the cache is ignored.
func (s *service) LoadCached(ctx context.Context) error {
	if s.repo == nil {
		return database.ErrNoSnapshot
	}
	snap, err := s.repo.LoadSnapshot(ctx)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if fetched := s.store.FetchedAt(); !fetched.IsZero() {
		slog.Debug("skipping cached board, live list already loaded", "fetched_at", fetched, "saved_at", snap.SavedAt)
		return nil
	}
	if len(snap.Columns) > 0 {
		s.columns = snap.Columns
	}
	s.store.Restore(snap.Items)
	s.store.MarkStale()
	s.proj = s.derive()
	slog.Info("loaded cached board", "items", len(snap.Items), "saved_at", snap.SavedAt)
	return nil
}

// Refresh fetches columns and items from the server and rebuilds the projection.
// A failed column fetch keeps the current columns; a failed item fetch is returned.
func (s *service) Refresh(ctx context.Context) error {
	columns, colErr := s.api.GetColumns(ctx)
	if colErr != nil {
		slog.Warn("failed to fetch columns, keeping current layout", "error", colErr)
	}

	if err := s.store.Refresh(ctx, s.api); err != nil {
		return err
	}

	s.mu.Lock()
	if colErr == nil {
		if len(columns) == 0 {
			columns = models.DefaultColumns()
		}
		s.columns = columns
	}
	s.proj = s.derive()
	cols := s.columns
	s.mu.Unlock()

	if s.repo != nil {
		if err := s.repo.SaveSnapshot(ctx, s.store.Items(), cols); err != nil {
			slog.Warn("failed to cache board snapshot", "error", err)
		}
	}
	return nil
}

// Detail fetches the latest copy of one item. When the server cannot be reached
// the canonical copy is returned along with the error.
func (s *service) Detail(ctx context.Context, itemID int) (*models.Item, error) {
	item, err := s.api.GetItem(ctx, itemID)
	if err == nil {
		return item, nil
	}
	if local, ok := s.store.Get(itemID); ok {
		return local, err
	}
	return nil, fmt.Errorf("item %d: %w", itemID, errors.Join(ErrItemNotFound, err))
}

// ============================================================================
// LOCAL REORDER
// ============================================================================

// Reorder applies a within-column reorder to the projection only.
// Nothing is sent to the server and the canonical list does not change.
func (s *service) Reorder(intent drag.Intent) error {
	if intent.Kind != drag.Reorder {
		return ErrNotAMove
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	col, _, ok := s.proj.Locate(intent.ItemID)
	if !ok {
		return fmt.Errorf("item %d: %w", intent.ItemID, ErrItemNotFound)
	}
	if col != intent.To {
		return fmt.Errorf("item %d is in %s, not %s: %w", intent.ItemID, col, intent.To, ErrNotAMove)
	}
	s.proj.Reorder(intent.ItemID, intent.Index)
	return nil
}

// ============================================================================
// HELPERS
// ============================================================================

// derive rebuilds the projection from the canonical list with every pending move
// laid over it. Must be called with s.mu held.
func (s *service) derive() *projection.Projection {
	items := s.store.Items()
	for _, p := range s.sortedPending() {
		item, idx := models.FindItem(items, p.ItemID)
		if item == nil {
			continue
		}
		moved := item.Clone()
		moved.Status = models.ItemStatus(p.To)
		// Moved items go to the end of the list so they land at the end of their column
		items = append(slices.Delete(items, idx, idx+1), moved)
	}
	return projection.Build(s.columns, items)
}

func (s *service) sortedPending() []*PendingMove {
	list := make([]*PendingMove, 0, len(s.pending))
	for _, p := range s.pending {
		list = append(list, p)
	}
	slices.SortFunc(list, func(a, b *PendingMove) int {
		return cmp.Compare(a.seq, b.seq)
	})
	return list
}

func (s *service) columnName(id string) string {
	for _, col := range s.columns {
		if col.ID == id {
			if col.Name != "" {
				return col.Name
			}
			break
		}
	}
	return id
}

func newMoveID() string {
	return uuid.NewString()
}
