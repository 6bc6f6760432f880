package tui

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/thenoetrevino/kodo/internal/models"
	"github.com/thenoetrevino/kodo/internal/tui/components"
	"github.com/thenoetrevino/kodo/internal/tui/layers"
	"github.com/thenoetrevino/kodo/internal/tui/notifications"
	"github.com/thenoetrevino/kodo/internal/tui/state"
	"github.com/thenoetrevino/kodo/internal/tui/theme"
)

// View renders the board with any modal and notification layers on top
func (m Model) View() tea.View {
	var view tea.View
	view.AltScreen = true

	if m.UiState.Width() == 0 {
		view.Content = "Loading..."
		return view
	}

	layerStack := []*lipgloss.Layer{lipgloss.NewLayer(m.viewBoard())}

	var modal string
	switch m.UiState.Mode() {
	case state.HelpMode:
		modal = m.viewHelp()
	case state.DetailMode:
		modal = m.viewDetail()
	}
	if l := layers.CreateCenteredLayer(modal, m.UiState.Width(), m.UiState.Height()); l != nil {
		layerStack = append(layerStack, l)
	}

	layerStack = append(layerStack, m.NotificationState.GetLayers(notifications.RenderFromState)...)

	view.Content = lipgloss.NewCanvas(layerStack...).Render()
	return view
}

// viewBoard renders the visible columns and the status bar
func (m Model) viewBoard() string {
	cols := m.columns()
	items := m.columnItems()
	summary := m.board.Summary()

	statusBar := components.RenderStatusBar(components.StatusBarProps{
		Width:     m.UiState.Width(),
		Mode:      m.UiState.Mode().String(),
		Items:     summary.Total,
		Orphans:   summary.Orphans,
		Pending:   summary.Pending,
		Stale:     summary.Stale,
		FetchedAt: summary.FetchedAt,
		Loading:   m.loading,
		Hint:      m.dragHint(),
	})

	if len(cols) == 0 {
		empty := components.SubtleStyle.Render("No columns yet")
		if m.loading {
			empty = components.SubtleStyle.Render("Loading board…")
		}
		board := lipgloss.Place(m.UiState.Width(), m.UiState.Height()-1, lipgloss.Center, lipgloss.Center, empty)
		return lipgloss.JoinVertical(lipgloss.Left, board, statusBar)
	}

	dragging := m.UiState.Mode() == state.DragMode
	dropCol, dropItem := m.UiState.DropTarget()
	start := m.UiState.ViewportOffset()
	end := min(start+m.UiState.ViewportSize(), len(cols))

	rendered := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		props := components.ColumnProps{
			Column:    cols[i],
			Items:     items[i],
			Selected:  -1,
			DropIndex: -1,
			IsPending: m.board.IsPending,
			Height:    m.UiState.ContentHeight(),
		}
		if i == m.UiState.SelectedColumn() && !dragging {
			props.Selected = m.UiState.SelectedItem()
		}
		if dragging {
			props.CarriedID = m.drag.ItemID()
			if i == dropCol {
				props.DropIndex = dropItem
				if dropItem < 0 {
					props.DropIndex = len(items[i])
				}
			}
		}
		rendered = append(rendered, components.RenderColumn(props))
	}

	header := components.TitleStyle.Render(" kodo")
	if start > 0 {
		header += components.SubtleStyle.Render(fmt.Sprintf("  ◀ %d more", start))
	}
	if end < len(cols) {
		header += components.SubtleStyle.Render(fmt.Sprintf("  %d more ▶", len(cols)-end))
	}

	board := lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
	body := lipgloss.NewStyle().Height(m.UiState.Height() - 2).Render(board)
	return lipgloss.JoinVertical(lipgloss.Left, header, body, statusBar)
}

// dragHint describes the carried item while dragging
func (m Model) dragHint() string {
	if m.UiState.Mode() != state.DragMode {
		return ""
	}
	msg := fmt.Sprintf("carrying #%d  %s drop  %s cancel",
		m.drag.ItemID(), m.keys.Drop.Help().Key, m.keys.Cancel.Help().Key)
	return notifications.RenderInline(notifications.Info, msg, m.UiState.Width()/2)
}

func (m Model) viewHelp() string {
	title := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(theme.Highlight)).Render("Keyboard shortcuts")
	return components.HelpBoxStyle.Render(title + "\n\n" + m.help.View(m.keys))
}

func (m Model) viewDetail() string {
	w, h := layers.ModalSize(m.UiState.Width(), m.UiState.Height())
	return components.DetailBoxStyle.Width(w).Height(h).Render(m.detail.View())
}

// renderDetail lays out one item for the detail pane
func renderDetail(item *models.Item, width int) string {
	width = max(width, 20)
	label := components.SubtleStyle.Width(10)

	var b strings.Builder
	b.WriteString(components.TitleStyle.Render(fmt.Sprintf("#%d %s", item.ID, item.FullTitle())))
	b.WriteString("\n\n")

	row := func(name, value string) {
		if value == "" {
			return
		}
		b.WriteString(label.Render(name))
		b.WriteString(value)
		b.WriteString("\n")
	}
	row("Status", string(item.Status))
	row("Priority", string(item.Priority))
	row("Source", item.Location())
	if item.IsDone && item.DoneAt != nil {
		done := item.DoneAt.Local().Format("2006-01-02 15:04")
		if item.DoneBy != nil {
			done += " by " + *item.DoneBy
		}
		row("Done", done)
	}
	if !item.CreatedAt.IsZero() {
		row("Created", item.CreatedAt.Local().Format("2006-01-02 15:04"))
	}

	b.WriteString("\n")
	b.WriteString(components.RenderDescription(components.DescriptionProps{
		Description: item.Description,
		Width:       width,
	}))

	if len(item.History) > 0 {
		b.WriteString("\n")
		b.WriteString(components.TitleStyle.Render("History"))
		b.WriteString("\n")
		for _, h := range item.History {
			line := fmt.Sprintf("%s  %s", components.SubtleStyle.Render(h.Timestamp.Local().Format("2006-01-02 15:04")), h.Status)
			if h.User != "" {
				line += " by " + h.User
			}
			b.WriteString(line + "\n")
		}
	}
	return b.String()
}
