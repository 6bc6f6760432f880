package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/thenoetrevino/kodo/internal/config/colors"
	"github.com/thenoetrevino/kodo/internal/models"
	"github.com/thenoetrevino/kodo/internal/tui/theme"
)

// ColumnProps configures RenderColumn
type ColumnProps struct {
	Column *models.Column
	Items  []*models.Item

	// Selected is the index of the selected item, or -1 when the column is not selected
	Selected int

	// DropIndex is where the carried item would land: an item index, len(Items)
	// for the end of the column, or -1 when the column is not the drop target
	DropIndex int

	CarriedID int
	IsPending func(itemID int) bool

	// Height is the total box height (0 for auto)
	Height int
}

// MaxVisibleCards returns how many cards fit in a column of the given height
func MaxVisibleCards(height int) int {
	return max((height-columnOverhead-1)/CardHeight, 1)
}

// ScrollOffset returns the first visible card index so that focus stays visible
func ScrollOffset(focus, total, visible int) int {
	if total <= visible || focus < visible {
		return 0
	}
	return min(focus-visible+1, total-visible)
}

// RenderColumn renders a complete column with its title and cards
//
// Layout:
//
//	{Column Name} ({count})
//	▲ (if scrolled down)
//	{Card 1}
//	{Card 2}
//	...
//	▼ (if more cards below)
func RenderColumn(props ColumnProps) string {
	col := props.Column
	name := col.Name
	if name == "" {
		name = col.ID
	}
	headerColor := colors.Named(col.Color, theme.Title)
	header := TitleStyle.Foreground(lipgloss.Color(headerColor)).
		Render(fmt.Sprintf("%s (%d)", strings.ToUpper(name), len(props.Items)))

	var content strings.Builder
	content.WriteString(header)
	content.WriteString("\n")

	visible := len(props.Items)
	if props.Height > 0 {
		visible = MaxVisibleCards(props.Height)
	}
	focus := max(props.Selected, 0)
	if props.DropIndex >= 0 {
		focus = props.DropIndex
	}
	offset := ScrollOffset(focus, len(props.Items), visible)
	end := min(offset+visible, len(props.Items))

	if offset > 0 {
		content.WriteString(IndicatorStyle.Render("▲ more above"))
	}
	content.WriteString("\n")

	if len(props.Items) == 0 && props.DropIndex < 0 {
		content.WriteString(SubtleStyle.Italic(true).Padding(1, 0).Render("No items"))
	}

	for i := offset; i < end; i++ {
		if i == props.DropIndex {
			content.WriteString(renderDropMarker())
			content.WriteString("\n")
		}
		item := props.Items[i]
		content.WriteString(RenderCard(CardProps{
			Item:     item,
			Selected: i == props.Selected,
			Pending:  props.IsPending != nil && props.IsPending(item.ID),
			Carried:  item.ID == props.CarriedID,
		}))
		content.WriteString("\n")
	}
	if props.DropIndex >= len(props.Items) || (props.DropIndex >= end && props.DropIndex >= 0) {
		content.WriteString(renderDropMarker())
		content.WriteString("\n")
	}

	if end < len(props.Items) {
		content.WriteString(IndicatorStyle.Render("▼ more below"))
	}

	style := ColumnStyle
	switch {
	case props.DropIndex >= 0:
		style = style.BorderForeground(lipgloss.Color(theme.DropTarget))
	case props.Selected >= 0:
		style = style.BorderForeground(lipgloss.Color(theme.SelectedBorder))
	}
	if props.Height > 0 {
		// Height sets the content area; the border takes 2 lines
		style = style.Height(props.Height - 2).MaxHeight(props.Height)
	}

	return style.Render(strings.TrimRight(content.String(), "\n"))
}

func renderDropMarker() string {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(theme.DropTarget)).
		Bold(true).
		Width(columnContentSize).
		Render("▸ drop here")
}
