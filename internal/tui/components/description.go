package components

import (
	"strings"
	"sync"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/glamour"
	"github.com/thenoetrevino/kodo/internal/tui/theme"
)

// DescriptionProps configures RenderDescription
type DescriptionProps struct {
	Description string
	Width       int
}

// Glamour renderers are expensive to build, so one is kept per width
var rendererCache sync.Map // map[int]*glamour.TermRenderer

func getRenderer(width int) (*glamour.TermRenderer, error) {
	if cached, ok := rendererCache.Load(width); ok {
		return cached.(*glamour.TermRenderer), nil
	}

	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil, err
	}

	rendererCache.Store(width, renderer)
	return renderer, nil
}

// RenderDescription renders an item description as markdown. The raw text is
// returned when rendering fails.
func RenderDescription(props DescriptionProps) string {
	if strings.TrimSpace(props.Description) == "" {
		return lipgloss.NewStyle().
			Foreground(lipgloss.Color(theme.Subtle)).
			Italic(true).
			Render("No description")
	}

	width := props.Width
	if width <= 0 {
		width = 80
	}
	renderer, err := getRenderer(width)
	if err == nil {
		rendered, err := renderer.Render(props.Description)
		if err == nil {
			return strings.TrimSpace(rendered)
		}
	}
	return props.Description
}
