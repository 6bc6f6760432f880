package board

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/thenoetrevino/kodo/internal/drag"
	"github.com/thenoetrevino/kodo/internal/models"
)

// BeginMove registers a pending move and applies it to the projection.
//
// The item is removed from its column and appended to the destination with its
// status set to the destination. The canonical list is not touched until the move
// settles. BeginMove never talks to the server; call Commit for that.
func (s *service) BeginMove(intent drag.Intent) (*PendingMove, error) {
	if intent.Kind != drag.Move {
		return nil, ErrNotAMove
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, busy := s.pending[intent.ItemID]; busy {
		return nil, fmt.Errorf("item %d: %w", intent.ItemID, ErrMoveInFlight)
	}
	if !s.proj.HasColumn(intent.To) {
		return nil, fmt.Errorf("%w: %s", ErrUnknownColumn, intent.To)
	}

	canonical, ok := s.store.Get(intent.ItemID)
	if !ok {
		return nil, fmt.Errorf("item %d: %w", intent.ItemID, ErrItemNotFound)
	}
	from := string(canonical.Status)
	if from == intent.To {
		return nil, fmt.Errorf("item %d: %w", intent.ItemID, ErrSameColumn)
	}

	s.seq++
	p := &PendingMove{
		ID:        newMoveID(),
		ItemID:    intent.ItemID,
		Title:     canonical.FullTitle(),
		From:      from,
		To:        intent.To,
		StartedAt: s.now(),
		Snapshot:  s.store.Snapshot(),
		seq:       s.seq,
	}
	s.pending[p.ItemID] = p

	if s.proj.MoveToEnd(p.ItemID, p.To) == nil {
		// Orphans are not in the projection; place them through a rebuild
		s.proj = s.derive()
	}

	slog.Info("move started", "move_id", p.ID, "item_id", p.ItemID, "from", p.From, "to", p.To)
	return p.Clone(), nil
}

// Commit sends the status update for a pending move. It does not change any
// local state and is safe to call off the UI goroutine.
func (s *service) Commit(ctx context.Context, pending *PendingMove) (*models.Item, error) {
	return s.api.UpdateItemStatus(ctx, pending.ItemID, pending.To)
}

// SettleMove reconciles a pending move with the server's answer.
//
// On success the confirmed item is merged into the canonical list and the
// projection is re-derived from it. On failure the canonical list is put back to
// the pre-move snapshot and the projection is rebuilt from scratch. Either way the
// list is marked stale, the move leaves the pending set and is written to the
// move log. A remote failure is reported in the result, not as the returned error.
func (s *service) SettleMove(ctx context.Context, pending *PendingMove, confirmed *models.Item, callErr error) (SettleResult, error) {
	if pending == nil {
		return SettleResult{}, ErrUnknownMove
	}

	s.mu.Lock()
	p, ok := s.pending[pending.ItemID]
	if !ok || p.ID != pending.ID {
		s.mu.Unlock()
		return SettleResult{}, fmt.Errorf("move %s: %w", pending.ID, ErrUnknownMove)
	}
	delete(s.pending, p.ItemID)

	var result SettleResult
	if callErr == nil && confirmed == nil {
		callErr = fmt.Errorf("server returned no item for %d", p.ItemID)
	}
	if callErr == nil {
		result = s.confirm(p, confirmed)
	} else {
		result = s.rollback(p, callErr)
	}
	s.store.MarkStale()
	s.proj = s.derive()
	s.mu.Unlock()

	s.record(ctx, p, result)
	return result, nil
}

// confirm must be called with s.mu held
func (s *service) confirm(p *PendingMove, confirmed *models.Item) SettleResult {
	if ok, err := s.store.Patch(confirmed); err != nil || !ok {
		slog.Warn("confirmed item not in canonical list", "item_id", confirmed.ID, "error", err)
	}
	for _, other := range s.pending {
		other.confirmed = append(other.confirmed, confirmed.Clone())
	}

	if string(confirmed.Status) != p.To {
		slog.Warn("server stored a different status than requested",
			"item_id", p.ItemID, "requested", p.To, "stored", confirmed.Status)
	}
	slog.Info("move confirmed", "move_id", p.ID, "item_id", p.ItemID, "to", confirmed.Status)

	item, _ := s.store.Get(p.ItemID)
	return SettleResult{Outcome: models.OutcomeConfirmed, Item: item, Refresh: true}
}

// rollback must be called with s.mu held
func (s *service) rollback(p *PendingMove, callErr error) SettleResult {
	s.store.Restore(p.Snapshot)
	for _, item := range p.confirmed {
		if _, err := s.store.Patch(item); err != nil {
			slog.Warn("failed to reapply confirmed item after rollback", "item_id", item.ID, "error", err)
		}
	}

	slog.Error("move rolled back", "move_id", p.ID, "item_id", p.ItemID, "from", p.From, "to", p.To, "error", callErr)
	s.notify(LevelError, p.ItemID,
		fmt.Sprintf("Could not move %q to %s: %v", p.Title, s.columnName(p.To), callErr))

	item, _ := s.store.Get(p.ItemID)
	return SettleResult{Outcome: models.OutcomeRolledBack, Item: item, Err: callErr, Refresh: true}
}

func (s *service) record(ctx context.Context, p *PendingMove, result SettleResult) {
	if s.repo == nil {
		return
	}
	rec := &models.MoveRecord{
		ID:        p.ID,
		ItemID:    p.ItemID,
		Title:     p.Title,
		From:      p.From,
		To:        p.To,
		Outcome:   result.Outcome,
		StartedAt: p.StartedAt,
		SettledAt: s.now(),
	}
	if result.Err != nil {
		rec.Error = result.Err.Error()
	}
	if err := s.repo.RecordMove(ctx, rec); err != nil {
		slog.Warn("failed to record move", "move_id", p.ID, "error", err)
	}
}

// MoveItem runs a whole move synchronously: begin, commit, settle, then
// refresh. Used by the CLI.
func (s *service) MoveItem(ctx context.Context, intent drag.Intent) (SettleResult, error) {
	pending, err := s.BeginMove(intent)
	if err != nil {
		return SettleResult{}, err
	}

	confirmed, callErr := s.Commit(ctx, pending)
	result, err := s.SettleMove(ctx, pending, confirmed, callErr)
	if err != nil {
		return result, err
	}

	if result.Refresh {
		if err := s.Refresh(ctx); err != nil {
			slog.Warn("refresh after move failed", "item_id", pending.ItemID, "error", err)
		}
	}
	return result, nil
}

// MoveTo moves an item to the end of columnID
func (s *service) MoveTo(ctx context.Context, itemID int, columnID string) (SettleResult, error) {
	intent, err := s.moveIntent(itemID, columnID)
	if err != nil {
		return SettleResult{}, err
	}
	return s.MoveItem(ctx, intent)
}

// SetStatus is a direct edit of an item's status field. It goes through the same
// optimistic path as a drag, so orphaned items can be brought back onto the board.
func (s *service) SetStatus(ctx context.Context, itemID int, status string) (SettleResult, error) {
	return s.MoveTo(ctx, itemID, status)
}

func (s *service) moveIntent(itemID int, columnID string) (drag.Intent, error) {
	item, ok := s.store.Get(itemID)
	if !ok {
		return drag.Intent{}, fmt.Errorf("item %d: %w", itemID, ErrItemNotFound)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.proj.HasColumn(columnID) {
		return drag.Intent{}, fmt.Errorf("%w: %s", ErrUnknownColumn, columnID)
	}
	return drag.Intent{
		Kind:   drag.Move,
		ItemID: itemID,
		From:   string(item.Status),
		To:     columnID,
		Index:  len(s.proj.Items(columnID)),
	}, nil
}
