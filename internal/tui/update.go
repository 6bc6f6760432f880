package tui

import (
	"errors"
	"fmt"
	"log/slog"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"github.com/thenoetrevino/kodo/internal/database"
	"github.com/thenoetrevino/kodo/internal/drag"
	"github.com/thenoetrevino/kodo/internal/tui/layers"
	"github.com/thenoetrevino/kodo/internal/tui/state"
)

// Update handles all messages and updates the model accordingly
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyPressMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		return m.handleResize(msg)
	case cachedMsg:
		if msg.err != nil && !errors.Is(msg.err, database.ErrNoSnapshot) {
			slog.Warn("failed to load cached board", "error", msg.err)
		}
		m.clampSelection()
		return m, nil
	case refreshedMsg:
		return m.handleRefreshed(msg)
	case committedMsg:
		return m.handleCommitted(msg)
	case tickMsg:
		cmds := []tea.Cmd{tickCmd(m.config.RefreshInterval)}
		if !m.loading {
			m.loading = true
			cmds = append(cmds, m.refreshCmd())
		}
		return m, tea.Batch(cmds...)
	case detailMsg:
		return m.handleDetail(msg)
	case storeChangedMsg:
		slog.Debug("item store changed", "type", msg.Type, "item_id", msg.ItemID, "version", msg.SequenceID)
		if m.UiState.Mode() != state.DragMode {
			m.clampSelection()
		}
		return m, m.listenForChanges()
	}
	return m, nil
}

func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.UiState.SetWidth(msg.Width)
	m.UiState.SetHeight(msg.Height)
	m.NotificationState.SetWindowSize(msg.Width, msg.Height)

	w, h := layers.ContentSize(layers.ModalSize(msg.Width, msg.Height))
	m.help.SetWidth(w)
	m.detail.SetWidth(w)
	m.detail.SetHeight(h)
	if m.detailItem != nil {
		m.detail.SetContent(renderDetail(m.detailItem, w))
	}

	m.clampSelection()
	return m, nil
}

func (m Model) handleRefreshed(msg refreshedMsg) (tea.Model, tea.Cmd) {
	m.loading = false
	if msg.err != nil {
		slog.Warn("board refresh failed", "error", msg.err)
		m.NotificationState.Add(state.LevelWarning, fmt.Sprintf("Refresh failed, showing the last known board: %v", msg.err))
	}
	m.pullNotifications()
	m.clampSelection()

	if m.refetch {
		m.refetch = false
		m.loading = true
		return m, m.refreshCmd()
	}
	return m, nil
}

func (m Model) handleCommitted(msg committedMsg) (tea.Model, tea.Cmd) {
	result, err := m.board.SettleMove(m.ctx, msg.pending, msg.item, msg.err)
	if err != nil {
		// The move was already settled, e.g. replaced by a refresh
		slog.Warn("failed to settle move", "move_id", msg.pending.ID, "error", err)
		return m, nil
	}
	m.pullNotifications()

	if m.drag.State() == drag.Idle {
		m.followItem(msg.pending.ItemID)
	} else {
		m.clampSelection()
	}

	if !result.Refresh {
		return m, nil
	}
	// A refresh that started before settling may have been overwritten by it
	if m.loading {
		m.refetch = true
		return m, nil
	}
	m.loading = true
	return m, m.refreshCmd()
}

func (m Model) handleDetail(msg detailMsg) (tea.Model, tea.Cmd) {
	if m.UiState.Mode() != state.DetailMode {
		return m, nil
	}
	if msg.item == nil {
		m.UiState.SetMode(state.NormalMode)
		m.NotificationState.Add(state.LevelError, fmt.Sprintf("Could not load item: %v", msg.err))
		return m, nil
	}
	if msg.err != nil {
		m.NotificationState.Add(state.LevelWarning, "Server unreachable, showing the cached copy")
	}
	m.detailItem = msg.item
	m.detail.SetContent(renderDetail(msg.item, m.detail.Width()))
	return m, nil
}

// ============================================================================
// KEY DISPATCH
// ============================================================================

func (m Model) handleKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	m.NotificationState.Clear()

	switch m.UiState.Mode() {
	case state.DragMode:
		return m.handleDragMode(msg)
	case state.DetailMode:
		return m.handleDetailMode(msg)
	case state.HelpMode:
		if key.Matches(msg, m.keys.ShowHelp, m.keys.Cancel, m.keys.Quit) {
			m.UiState.SetMode(state.NormalMode)
		}
		return m, nil
	default:
		return m.handleNormalMode(msg)
	}
}

func (m Model) handleNormalMode(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.ShowHelp):
		m.UiState.SetMode(state.HelpMode)
	case key.Matches(msg, m.keys.PrevColumn):
		m.moveCursor(-1, 0)
	case key.Matches(msg, m.keys.NextColumn):
		m.moveCursor(1, 0)
	case key.Matches(msg, m.keys.PrevItem):
		m.moveCursor(0, -1)
	case key.Matches(msg, m.keys.NextItem):
		m.moveCursor(0, 1)
	case key.Matches(msg, m.keys.PickUp):
		m.pickUp()
	case key.Matches(msg, m.keys.CycleStatus):
		return m.cycleStatus()
	case key.Matches(msg, m.keys.ViewItem):
		return m.openDetail()
	case key.Matches(msg, m.keys.Refresh):
		if m.loading {
			return m, nil
		}
		m.loading = true
		return m, m.refreshCmd()
	}
	return m, nil
}

func (m Model) handleDragMode(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Cancel):
		m.cancelDrag()
	case key.Matches(msg, m.keys.Quit):
		m.cancelDrag()
		return m, tea.Quit
	case key.Matches(msg, m.keys.PrevColumn):
		m.moveDropTarget(-1, 0)
	case key.Matches(msg, m.keys.NextColumn):
		m.moveDropTarget(1, 0)
	case key.Matches(msg, m.keys.PrevItem):
		m.moveDropTarget(0, -1)
	case key.Matches(msg, m.keys.NextItem):
		m.moveDropTarget(0, 1)
	case key.Matches(msg, m.keys.Drop, m.keys.PickUp):
		return m.drop()
	}
	return m, nil
}

func (m Model) handleDetailMode(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Cancel, m.keys.ViewItem, m.keys.Quit) {
		m.UiState.SetMode(state.NormalMode)
		m.detailItem = nil
		return m, nil
	}
	var cmd tea.Cmd
	m.detail, cmd = m.detail.Update(msg)
	return m, cmd
}
