package tui

import (
	"errors"
	"fmt"
	"log/slog"

	tea "charm.land/bubbletea/v2"
	"github.com/thenoetrevino/kodo/internal/drag"
	"github.com/thenoetrevino/kodo/internal/models"
	"github.com/thenoetrevino/kodo/internal/services/board"
	"github.com/thenoetrevino/kodo/internal/tui/state"
)

// ============================================================================
// NAVIGATION
// ============================================================================

// moveCursor moves the selection by dc columns and di items
func (m Model) moveCursor(dc, di int) {
	items := m.columnItems()
	if len(items) == 0 {
		return
	}
	col := min(max(m.UiState.SelectedColumn()+dc, 0), len(items)-1)
	idx := m.UiState.SelectedItem() + di
	if dc != 0 {
		idx = m.UiState.SelectedItem()
	}
	idx = min(max(idx, 0), max(len(items[col])-1, 0))

	m.UiState.SetSelectedColumn(col)
	m.UiState.SetSelectedItem(idx)
	m.UiState.EnsureVisible(col, len(items))
}

// moveDropTarget walks the drop target. Within a column the target steps over
// the cards and then the empty end slot (-1).
func (m Model) moveDropTarget(dc, di int) {
	items := m.columnItems()
	if len(items) == 0 {
		return
	}
	col, idx := m.UiState.DropTarget()

	if dc != 0 {
		col = min(max(col+dc, 0), len(items)-1)
		idx = -1
		if m.columns()[col].ID == m.drag.Source() {
			idx = m.sourceIndex(items[col])
		}
		m.UiState.SetDropTarget(col, idx)
		m.UiState.EnsureVisible(col, len(items))
		return
	}

	n := len(items[col])
	switch {
	case di > 0 && idx >= 0:
		idx++
		if idx >= n {
			idx = -1
		}
	case di < 0 && idx < 0:
		idx = n - 1
	case di < 0:
		idx = max(idx-1, 0)
	}
	m.UiState.SetDropTarget(col, idx)
}

// sourceIndex returns the carried item's index in its own column
func (m Model) sourceIndex(column []*models.Item) int {
	for i, item := range column {
		if item.ID == m.drag.ItemID() {
			return i
		}
	}
	return -1
}

// ============================================================================
// DRAG AND DROP
// ============================================================================

func (m Model) pickUp() {
	item := m.selectedItem()
	if item == nil {
		return
	}
	if m.board.IsPending(item.ID) {
		m.NotificationState.Add(state.LevelWarning, fmt.Sprintf("%q is still syncing", item.Title))
		return
	}
	if err := m.drag.Begin(m.board.Projection(), item.ID); err != nil {
		slog.Warn("failed to pick up item", "item_id", item.ID, "error", err)
		return
	}
	m.UiState.SetDropTarget(m.UiState.SelectedColumn(), m.UiState.SelectedItem())
	m.UiState.SetMode(state.DragMode)
}

func (m Model) cancelDrag() {
	if err := m.drag.Cancel(); err != nil {
		slog.Debug("cancel without drag", "error", err)
	}
	m.UiState.SetMode(state.NormalMode)
}

// dropTarget converts the UI drop position into a gesture target
func (m Model) dropTarget() drag.Target {
	cols := m.columns()
	col, idx := m.UiState.DropTarget()
	if col < 0 || col >= len(cols) {
		return drag.Target{}
	}
	target := drag.Target{ColumnID: cols[col].ID}
	if items := m.columnItems()[col]; idx >= 0 && idx < len(items) {
		target.ItemID = items[idx].ID
	}
	return target
}

// drop resolves the gesture. Reorders are applied locally; moves are applied
// optimistically and sent to the server in the background.
func (m Model) drop() (tea.Model, tea.Cmd) {
	m.UiState.SetMode(state.NormalMode)

	intent, err := m.drag.Drop(m.board.Projection(), m.dropTarget())
	if err != nil {
		slog.Warn("drop did not resolve", "error", err)
		if errors.Is(err, drag.ErrNoTarget) {
			m.NotificationState.Add(state.LevelWarning, "Nothing to drop onto there")
		}
		return m, nil
	}
	defer func() {
		if err := m.drag.Reset(); err != nil {
			slog.Debug("failed to reset drag", "error", err)
		}
	}()

	if intent.Kind == drag.Reorder {
		if intent.Changed() {
			if err := m.board.Reorder(intent); err != nil {
				m.NotificationState.Add(state.LevelWarning, err.Error())
			}
		}
		m.followItem(intent.ItemID)
		return m, nil
	}
	return m.startMove(intent)
}

// cycleStatus moves the selected item to the next column, wrapping at the end
func (m Model) cycleStatus() (tea.Model, tea.Cmd) {
	item := m.selectedItem()
	cols := m.columns()
	if item == nil || len(cols) < 2 {
		return m, nil
	}
	from := m.UiState.SelectedColumn()
	to := cols[(from+1)%len(cols)].ID
	return m.startMove(drag.Intent{
		Kind:      drag.Move,
		ItemID:    item.ID,
		From:      cols[from].ID,
		To:        to,
		FromIndex: m.UiState.SelectedItem(),
		Index:     len(m.columnItems()[(from+1)%len(cols)]),
	})
}

func (m Model) startMove(intent drag.Intent) (tea.Model, tea.Cmd) {
	pending, err := m.board.BeginMove(intent)
	if err != nil {
		slog.Warn("move not started", "item_id", intent.ItemID, "to", intent.To, "error", err)
		switch {
		case errors.Is(err, board.ErrMoveInFlight):
			m.NotificationState.Add(state.LevelWarning, "That item is still syncing")
		case errors.Is(err, board.ErrSameColumn):
			// dropped back onto its own column
		default:
			m.NotificationState.Add(state.LevelError, err.Error())
		}
		return m, nil
	}
	m.followItem(pending.ItemID)
	return m, m.commitCmd(pending)
}

// ============================================================================
// DETAIL
// ============================================================================

func (m Model) openDetail() (tea.Model, tea.Cmd) {
	item := m.selectedItem()
	if item == nil {
		return m, nil
	}
	m.detailItem = item
	m.detail.SetContent(renderDetail(item, m.detail.Width()))
	m.detail.GotoTop()
	m.UiState.SetMode(state.DetailMode)
	return m, m.detailCmd(item.ID)
}
