// Package tui is the interactive board: columns of item cards that can be picked
// up and dropped into another column with the keyboard.
package tui

import (
	"context"

	"charm.land/bubbles/v2/help"
	"charm.land/bubbles/v2/viewport"
	tea "charm.land/bubbletea/v2"
	"github.com/thenoetrevino/kodo/internal/config"
	"github.com/thenoetrevino/kodo/internal/drag"
	"github.com/thenoetrevino/kodo/internal/itemstore"
	"github.com/thenoetrevino/kodo/internal/models"
	"github.com/thenoetrevino/kodo/internal/services/board"
	"github.com/thenoetrevino/kodo/internal/tui/state"
)

// Model represents the application state for the TUI
type Model struct {
	ctx    context.Context
	config *config.Config
	board  board.Service
	drag   *drag.Controller

	UiState           *state.UIState
	NotificationState *state.NotificationState

	keys keyMap
	help help.Model

	// detail pane
	detail     viewport.Model
	detailItem *models.Item

	// loading is true while a refresh is in flight
	loading bool
	// refetch queues another refresh for when the in-flight one returns
	refetch bool

	// changes delivers canonical list changes; nil when not subscribed
	changes <-chan itemstore.Event
}

// New creates the board model. The board is filled by the commands returned from Init.
func New(ctx context.Context, cfg *config.Config, svc board.Service) Model {
	if cfg == nil {
		cfg = config.Default()
	}
	h := help.New()
	h.ShowAll = true

	return Model{
		ctx:               ctx,
		config:            cfg,
		board:             svc,
		drag:              drag.NewController(),
		UiState:           state.NewUIState(),
		NotificationState: state.NewNotificationState(),
		keys:              newKeyMap(cfg.KeyMappings),
		help:              h,
		detail:            viewport.New(),
		loading:           true,
	}
}

// WithChanges makes the board redraw whenever the canonical item list changes
func (m Model) WithChanges(ch <-chan itemstore.Event) Model {
	m.changes = ch
	return m
}

// Init shows the cached board, starts the first fetch and schedules auto refresh
func (m Model) Init() tea.Cmd {
	// the cached board must land before the live one
	cmds := []tea.Cmd{tea.Sequence(m.loadCachedCmd(), m.refreshCmd())}
	if m.config.RefreshInterval > 0 {
		cmds = append(cmds, tickCmd(m.config.RefreshInterval))
	}
	if m.changes != nil {
		cmds = append(cmds, m.listenForChanges())
	}
	return tea.Batch(cmds...)
}

// columns returns the board columns in display order
func (m Model) columns() []*models.Column {
	return m.board.Columns()
}

// columnItems returns the items of every column in display order
func (m Model) columnItems() [][]*models.Item {
	proj := m.board.Projection()
	cols := m.columns()
	out := make([][]*models.Item, len(cols))
	for i, col := range cols {
		out[i] = proj.Items(col.ID)
	}
	return out
}

// selectedItem returns the item under the cursor, or nil
func (m Model) selectedItem() *models.Item {
	items := m.columnItems()
	col, idx := m.UiState.SelectedColumn(), m.UiState.SelectedItem()
	if col < 0 || col >= len(items) || idx < 0 || idx >= len(items[col]) {
		return nil
	}
	return items[col][idx]
}

// clampSelection keeps the cursor on an existing card after the board changed
func (m Model) clampSelection() {
	items := m.columnItems()
	lengths := make([]int, len(items))
	for i, col := range items {
		lengths[i] = len(col)
	}
	m.UiState.ClampSelection(lengths)
	m.UiState.EnsureVisible(m.UiState.SelectedColumn(), len(items))
}

// followItem moves the cursor to itemID if it is on the board
func (m Model) followItem(itemID int) {
	for c, col := range m.columnItems() {
		for i, item := range col {
			if item.ID == itemID {
				m.UiState.SetSelectedColumn(c)
				m.UiState.SetSelectedItem(i)
				m.UiState.EnsureVisible(c, len(m.columns()))
				return
			}
		}
	}
	m.clampSelection()
}

// pullNotifications moves the board's queued notifications into the banner stack
func (m Model) pullNotifications() {
	for _, n := range m.board.DrainNotifications() {
		m.NotificationState.Add(levelFor(n.Level), n.Message)
	}
}

func levelFor(level board.Level) state.NotificationLevel {
	switch level {
	case board.LevelError:
		return state.LevelError
	case board.LevelWarning:
		return state.LevelWarning
	default:
		return state.LevelInfo
	}
}
