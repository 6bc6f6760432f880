package tui

import (
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/thenoetrevino/kodo/internal/itemstore"
	"github.com/thenoetrevino/kodo/internal/models"
	"github.com/thenoetrevino/kodo/internal/services/board"
)

// cachedMsg reports the outcome of loading the cached snapshot
type cachedMsg struct{ err error }

// refreshedMsg reports the outcome of a fetch of the live board
type refreshedMsg struct{ err error }

// committedMsg carries the server's answer to a pending move
type committedMsg struct {
	pending *board.PendingMove
	item    *models.Item
	err     error
}

// tickMsg fires the periodic refresh
type tickMsg time.Time

// detailMsg carries the item for the detail pane
type detailMsg struct {
	item *models.Item
	err  error
}

// storeChangedMsg reports a change of the canonical item list
type storeChangedMsg itemstore.Event

func (m Model) loadCachedCmd() tea.Cmd {
	return func() tea.Msg {
		return cachedMsg{err: m.board.LoadCached(m.ctx)}
	}
}

func (m Model) refreshCmd() tea.Cmd {
	return func() tea.Msg {
		return refreshedMsg{err: m.board.Refresh(m.ctx)}
	}
}

// commitCmd sends the status update off the UI goroutine; the result is settled
// back on it in Update
func (m Model) commitCmd(p *board.PendingMove) tea.Cmd {
	return func() tea.Msg {
		item, err := m.board.Commit(m.ctx, p)
		return committedMsg{pending: p, item: item, err: err}
	}
}

func (m Model) detailCmd(itemID int) tea.Cmd {
	return func() tea.Msg {
		item, err := m.board.Detail(m.ctx, itemID)
		return detailMsg{item: item, err: err}
	}
}

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// listenForChanges waits for the next store event. It returns nil once the
// subscription is closed, which ends the listening loop.
func (m Model) listenForChanges() tea.Cmd {
	if m.changes == nil {
		return nil
	}
	return func() tea.Msg {
		ev, ok := <-m.changes
		if !ok {
			return nil
		}
		return storeChangedMsg(ev)
	}
}
