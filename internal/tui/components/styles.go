// Package components provides reusable UI components and styles.
// Call InitStyles() before use to initialize all style variables.
package components

import (
	"charm.land/lipgloss/v2"
	"github.com/thenoetrevino/kodo/internal/config/colors"
	"github.com/thenoetrevino/kodo/internal/tui/theme"
)

// These are cached to avoid recomputing on every redraw.
var (
	// ColumnStyle defines the appearance of kanban board columns
	ColumnStyle lipgloss.Style

	// CardStyle defines the appearance of items as cards
	CardStyle lipgloss.Style

	// TitleStyle defines the appearance of titles (column names, app header)
	TitleStyle lipgloss.Style

	// SubtleStyle is muted text such as locations and empty states
	SubtleStyle lipgloss.Style

	// HelpBoxStyle defines the base style for help screen
	HelpBoxStyle lipgloss.Style

	// DetailBoxStyle defines the base style for the item detail pane
	DetailBoxStyle lipgloss.Style

	// IndicatorStyle defines the appearance of scroll indicators
	IndicatorStyle lipgloss.Style

	// StatusBarStyle defines the base style for the status bar
	StatusBarStyle lipgloss.Style

	// ModeStyle highlights the mode badge in the status bar
	ModeStyle lipgloss.Style
)

func init() {
	InitStyles(*colors.Default())
}

// InitStyles initializes all styles with the given color scheme
func InitStyles(colors colors.ColorScheme) {
	theme.Init(colors)

	ColumnStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(colors.ColumnBorder)).
		Background(lipgloss.Color(colors.ColumnBackground)).
		PaddingLeft(1).
		PaddingRight(1).
		Width(columnContentSize + 2)

	CardStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(colors.CardBorder)).
		BorderBackground(lipgloss.Color(colors.CardBackground)).
		Background(lipgloss.Color(colors.CardBackground)).
		PaddingLeft(1).
		PaddingRight(1).
		Width(columnContentSize)

	TitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(colors.Title))

	SubtleStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(colors.Subtle))

	HelpBoxStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(colors.Accent)).
		Padding(1, 2)

	DetailBoxStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(colors.Accent)).
		Padding(1, 2)

	IndicatorStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(colors.Subtle)).
		Align(lipgloss.Center).
		Width(columnContentSize)

	StatusBarStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(colors.StatusBarText)).
		Background(lipgloss.Color(colors.StatusBarBg))

	ModeStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(colors.StatusBarBg)).
		Background(lipgloss.Color(colors.Accent)).
		Padding(0, 1)
}
