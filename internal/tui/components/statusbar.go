package components

import (
	"fmt"
	"strings"
	"time"

	"charm.land/lipgloss/v2"
)

// StatusBarProps configures RenderStatusBar
type StatusBarProps struct {
	Width     int
	Mode      string
	Items     int
	Orphans   int
	Pending   int
	Stale     bool
	FetchedAt time.Time
	Loading   bool

	// Hint is pre-rendered text shown after the counts
	Hint string
}

// RenderStatusBar renders the mode badge and board counts on the left and the
// sync state on the right
func RenderStatusBar(props StatusBarProps) string {
	left := ModeStyle.Render(props.Mode) + StatusBarStyle.Render(fmt.Sprintf(" %d items", props.Items))
	if props.Orphans > 0 {
		left += StatusBarStyle.Render(fmt.Sprintf(" • %d on no column", props.Orphans))
	}
	if props.Pending > 0 {
		left += StatusBarStyle.Render(fmt.Sprintf(" • %d syncing", props.Pending))
	}

	if props.Hint != "" {
		left += StatusBarStyle.Render(" ") + props.Hint
	}

	var right string
	switch {
	case props.Loading:
		right = "refreshing…"
	case props.Stale && props.FetchedAt.IsZero():
		right = "cached"
	case props.Stale:
		right = "stale since " + props.FetchedAt.Local().Format(time.TimeOnly)
	case !props.FetchedAt.IsZero():
		right = "updated " + props.FetchedAt.Local().Format(time.TimeOnly)
	}
	right = StatusBarStyle.Render(right + "  ? help ")

	gap := max(props.Width-lipgloss.Width(left)-lipgloss.Width(right), 1)
	return left + StatusBarStyle.Render(strings.Repeat(" ", gap)) + right
}
