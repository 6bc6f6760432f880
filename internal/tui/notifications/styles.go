package notifications

import "github.com/thenoetrevino/kodo/internal/tui/theme"

type style struct {
	icon             string
	title            string
	foreground       string
	background       string
	borderForeground string
}

func (s Severity) style() style {
	switch s {
	case Warning:
		return style{icon: "⚠", title: "Warning", foreground: theme.WarningFg, background: theme.WarningBg, borderForeground: theme.WarningFg}
	case Error:
		return style{icon: "✕", title: "Error", foreground: theme.ErrorFg, background: theme.ErrorBg, borderForeground: theme.ErrorFg}
	default:
		return style{icon: "ℹ", title: "Info", foreground: theme.InfoFg, background: theme.InfoBg, borderForeground: theme.InfoFg}
	}
}
