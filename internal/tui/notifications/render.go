package notifications

import (
	"charm.land/lipgloss/v2"
	"github.com/muesli/reflow/truncate"
	"github.com/muesli/reflow/wordwrap"
	"github.com/thenoetrevino/kodo/internal/tui/state"
)

// maxBannerWidth is the widest a floating banner's message may get
const maxBannerWidth = 48

// Render renders a notification banner based on severity level
func Render(severity Severity, message string) string {
	style := severity.style()

	message = wordwrap.String(message, maxBannerWidth)
	headerText := style.icon + " " + style.title
	maxWidth := max(lipgloss.Width(headerText), lipgloss.Width(message))

	headerStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(style.foreground)).
		Bold(true).
		Width(maxWidth)

	if severity == Info {
		headerStyle = headerStyle.Background(lipgloss.Color(style.background))
	}

	header := headerStyle.Render(headerText)

	messageContent := lipgloss.NewStyle().
		Foreground(lipgloss.Color(style.foreground)).
		Width(maxWidth).
		Render(message)

	content := lipgloss.JoinVertical(lipgloss.Left, header, messageContent)

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(style.borderForeground)).
		Background(lipgloss.Color(style.background)).
		Padding(0, 1).
		Render(content)
}

// RenderFromState renders a notification banner from a state.Notification
func RenderFromState(n state.Notification) string {
	return Render(FromLevel(n.Level), n.Message)
}

// RenderInline renders a compact one-line notification no wider than width
func RenderInline(severity Severity, message string, width int) string {
	style := severity.style()

	content := style.icon + " " + message
	if width > 2 {
		content = truncate.StringWithTail(content, uint(width-2), "…")
	}

	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(style.foreground)).
		Background(lipgloss.Color(style.background)).
		Padding(0, 1).
		Render(content)
}

// FromLevel maps a notification level to its banner severity
func FromLevel(level state.NotificationLevel) Severity {
	switch level {
	case state.LevelWarning:
		return Warning
	case state.LevelError:
		return Error
	default:
		return Info
	}
}
