package components

import (
	"fmt"

	"charm.land/lipgloss/v2"
	"github.com/muesli/reflow/truncate"
	"github.com/thenoetrevino/kodo/internal/config/colors"
	"github.com/thenoetrevino/kodo/internal/models"
	"github.com/thenoetrevino/kodo/internal/tui/theme"
)

// CardProps configures RenderCard
type CardProps struct {
	Item     *models.Item
	Selected bool
	Pending  bool // status move waiting for the server
	Carried  bool // item picked up by the drag gesture
}

// RenderCard renders a single item as a fixed-height card
//
//	╭──────────────────────────────╮
//	│ #12 TODO            [high]   │
//	│ cache the parsed config…     │
//	╰──────────────────────────────╯
func RenderCard(props CardProps) string {
	item := props.Item

	bg := theme.CardBg
	border := theme.CardBorder
	switch {
	case props.Carried:
		border = theme.DragBorder
	case props.Selected:
		bg = theme.SelectedBg
		border = theme.SelectedBorder
	}

	meta := renderMeta(item, bg)
	title := truncate.StringWithTail(item.Title, cardContentWidth, "…")
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(theme.Normal)).
		Background(lipgloss.Color(bg))
	if props.Pending {
		titleStyle = titleStyle.Italic(true).Foreground(lipgloss.Color(theme.Pending))
	}

	style := CardStyle.
		BorderForeground(lipgloss.Color(border)).
		BorderBackground(lipgloss.Color(bg)).
		Background(lipgloss.Color(bg))
	if props.Carried {
		style = style.BorderStyle(lipgloss.DoubleBorder())
	}

	return style.Render(meta + "\n" + titleStyle.Render(title))
}

func renderMeta(item *models.Item, bg string) string {
	base := lipgloss.NewStyle().Background(lipgloss.Color(bg))

	left := base.Foreground(lipgloss.Color(theme.Highlight)).Bold(true).Render(fmt.Sprintf("#%d", item.ID))
	if item.Type != "" {
		left += base.Render(" ") + base.Foreground(lipgloss.Color(theme.Subtle)).Render(string(item.Type))
	}

	right := ""
	if item.Priority != "" {
		right = base.Foreground(lipgloss.Color(priorityColor(item.Priority))).Render("[" + string(item.Priority) + "]")
	}

	gap := max(cardContentWidth-lipgloss.Width(left)-lipgloss.Width(right), 1)
	return left + base.Render(fmt.Sprintf("%*s", gap, "")) + right
}

func priorityColor(p models.ItemPriority) string {
	switch p {
	case models.PriorityHigh:
		return colors.Named("red", theme.ErrorFg)
	case models.PriorityMedium:
		return colors.Named("yellow", theme.WarningFg)
	default:
		return theme.Subtle
	}
}
