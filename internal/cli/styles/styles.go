package styles

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/muesli/reflow/truncate"
	"github.com/thenoetrevino/kodo/internal/config"
	"github.com/thenoetrevino/kodo/internal/config/colors"
	"github.com/thenoetrevino/kodo/internal/models"
)

var (
	// Card styles
	CardStyle lipgloss.Style
	CardWidth = 80

	// Longest title printed on one board line
	TitleWidth = 60

	// Text styles
	TitleStyle    lipgloss.Style
	SubtitleStyle lipgloss.Style
	LabelStyle    lipgloss.Style // For field labels like "Type:", "Priority:"
	ValueStyle    lipgloss.Style // For field values
	SectionStyle  lipgloss.Style // For section headers like "History"

	// Status styles
	PendingStyle lipgloss.Style
	SuccessStyle lipgloss.Style
	ErrorStyle   lipgloss.Style
	WarningStyle lipgloss.Style

	scheme config.ColorScheme
)

// Init initializes all CLI styles with the given color scheme
func Init(colors config.ColorScheme) {
	scheme = colors

	CardStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(colors.Accent)).
		Padding(1, 2).
		Width(CardWidth)

	TitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(colors.Title))

	SubtitleStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(colors.Subtle))

	LabelStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(colors.Accent))

	ValueStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(colors.Normal))

	SectionStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(colors.Accent)).
		Bold(true).
		MarginTop(1)

	PendingStyle = lipgloss.NewStyle().
		Italic(true).
		Foreground(lipgloss.Color(colors.Pending))

	SuccessStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(colors.InfoFg)).
		Background(lipgloss.Color(colors.InfoBg)).
		Padding(0, 1)

	ErrorStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(colors.ErrorFg)).
		Background(lipgloss.Color(colors.ErrorBg)).
		Padding(0, 1)

	WarningStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(colors.WarningFg)).
		Background(lipgloss.Color(colors.WarningBg)).
		Padding(0, 1)
}

// ═══════════════════════════════════════════════════════════════════
// HELPER FUNCTIONS
// ═══════════════════════════════════════════════════════════════════

// ColoredText renders text with a hex color
func ColoredText(text, hexColor string) string {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(hexColor)).
		Render(text)
}

// BoldColoredText renders bold text with a hex color
func BoldColoredText(text, hexColor string) string {
	return lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(hexColor)).
		Render(text)
}

// RenderColumnHeader renders "NAME (count)" in the column's own color
func RenderColumnHeader(col *models.Column, count int) string {
	name := col.Name
	if name == "" {
		name = col.ID
	}
	return BoldColoredText(fmt.Sprintf("%s (%d)", strings.ToUpper(name), count), colors.Named(col.Color, scheme.Title))
}

// RenderItemLine renders one board line: "  #12 [high] TODO: title  main.go:10"
func RenderItemLine(item *models.Item) string {
	var b strings.Builder
	b.WriteString("  ")
	b.WriteString(LabelStyle.Render(fmt.Sprintf("#%d", item.ID)))
	if item.Priority != "" {
		b.WriteString(" ")
		b.WriteString(RenderPriority(item.Priority))
	}
	b.WriteString(" ")
	b.WriteString(ValueStyle.Render(truncate.StringWithTail(item.FullTitle(), uint(TitleWidth), "…")))
	if loc := item.Location(); loc != "" {
		b.WriteString("  ")
		b.WriteString(SubtitleStyle.Render(loc))
	}
	return b.String()
}

// RenderPriority renders a priority as "[high]" colored by urgency
func RenderPriority(p models.ItemPriority) string {
	color := scheme.Subtle
	switch p {
	case models.PriorityHigh:
		color = scheme.ErrorFg
	case models.PriorityMedium:
		color = scheme.WarningFg
	}
	return ColoredText("["+string(p)+"]", color)
}

// RenderCard wraps content in a styled card border
func RenderCard(content string) string {
	return CardStyle.Render(content)
}
