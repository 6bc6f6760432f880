// Package itemstore holds the canonical item list fetched from the kodo server.
//
// The store hands out deep copies so callers cannot change canonical items behind
// its back. Every change bumps the version and is broadcast to subscribers.
package itemstore

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/thenoetrevino/kodo/internal/models"
)

// Lister fetches the full item list from the remote source
type Lister interface {
	ListItems(ctx context.Context) ([]*models.Item, error)
}

// Store is the canonical item list. Safe for concurrent use.
type Store struct {
	mu        sync.RWMutex
	items     []*models.Item
	stale     bool
	version   uint64
	fetchedAt time.Time

	subMu       sync.Mutex
	subscribers map[chan Event]struct{}
}

// New creates a store seeded with items. A seeded store is stale until the
// first successful Refresh.
func New(items []*models.Item) *Store {
	return &Store{
		items:       models.CloneItems(items),
		stale:       true,
		subscribers: make(map[chan Event]struct{}),
	}
}

// Items returns a deep copy of the canonical list
func (s *Store) Items() []*models.Item {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return models.CloneItems(s.items)
}

// Snapshot returns a deep copy of the canonical list for later Restore.
// It is the same as Items; the name documents intent at rollback call sites.
func (s *Store) Snapshot() []*models.Item {
	return s.Items()
}

// Get returns a copy of the item with the given ID
func (s *Store) Get(id int) (*models.Item, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	item, _ := models.FindItem(s.items, id)
	if item == nil {
		return nil, false
	}
	return item.Clone(), true
}

// Len returns the number of canonical items
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

// currentVersion increases on every change
func (s *Store) currentVersion() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.version
}

// FetchedAt returns when the list was last replaced from the remote source
func (s *Store) FetchedAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.fetchedAt
}

// IsStale reports whether the list should be fetched again
func (s *Store) IsStale() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.stale
}

// MarkStale flags the list as eligible for a fresh fetch
func (s *Store) MarkStale() {
	s.mu.Lock()
	s.stale = true
	s.version++
	v := s.version
	s.mu.Unlock()

	s.publish(Event{Type: EventStale, SequenceID: v})
}

// Replace swaps in a freshly fetched list and clears the stale flag
func (s *Store) Replace(items []*models.Item) {
	s.mu.Lock()
	s.items = models.CloneItems(items)
	s.stale = false
	s.fetchedAt = time.Now()
	s.version++
	v := s.version
	s.mu.Unlock()

	s.publish(Event{Type: EventReplaced, SequenceID: v})
}

// Patch merges a server-confirmed item into the canonical list.
// Fields the server left empty keep their local values.
// Returns false when no item with that ID exists.
func (s *Store) Patch(confirmed *models.Item) (bool, error) {
	if confirmed == nil || confirmed.ID == 0 {
		return false, ErrInvalidItem
	}

	s.mu.Lock()
	current, idx := models.FindItem(s.items, confirmed.ID)
	if current == nil {
		s.mu.Unlock()
		return false, nil
	}
	items := make([]*models.Item, len(s.items))
	copy(items, s.items)
	items[idx] = current.Merge(confirmed)
	s.items = items
	s.version++
	v := s.version
	s.mu.Unlock()

	s.publish(Event{Type: EventPatched, ItemID: confirmed.ID, SequenceID: v})
	return true, nil
}

// Restore puts back a list captured with Snapshot
func (s *Store) Restore(snapshot []*models.Item) {
	s.mu.Lock()
	s.items = models.CloneItems(snapshot)
	s.version++
	v := s.version
	s.mu.Unlock()

	s.publish(Event{Type: EventRestored, SequenceID: v})
}

// Refresh fetches the list from lister and replaces the canonical list.
// On error the current list and stale flag are kept.
func (s *Store) Refresh(ctx context.Context, lister Lister) error {
	if lister == nil {
		return ErrNoLister
	}
	items, err := lister.ListItems(ctx)
	if err != nil {
		slog.Warn("item refresh failed", "error", err)
		return fmt.Errorf("failed to refresh items: %w", err)
	}
	s.Replace(items)
	slog.Debug("items refreshed", "count", len(items))
	return nil
}

// Subscribe returns a channel of change events that is closed when ctx is done.
// Slow subscribers miss events rather than block writers.
func (s *Store) Subscribe(ctx context.Context) <-chan Event {
	ch := make(chan Event, 10)

	s.subMu.Lock()
	s.subscribers[ch] = struct{}{}
	s.subMu.Unlock()

	go func() {
		<-ctx.Done()
		s.subMu.Lock()
		delete(s.subscribers, ch)
		close(ch)
		s.subMu.Unlock()
	}()

	return ch
}

func (s *Store) publish(ev Event) {
	ev.Timestamp = time.Now()

	s.subMu.Lock()
	defer s.subMu.Unlock()
	for ch := range s.subscribers {
		select {
		case ch <- ev:
		default:
			slog.Debug("dropping store event for slow subscriber", "type", ev.Type)
		}
	}
}
