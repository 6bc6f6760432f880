package components

import (
	"strings"
	"testing"
	"time"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/thenoetrevino/kodo/internal/models"
)

func items(n int) []*models.Item {
	out := make([]*models.Item, n)
	for i := range out {
		out[i] = &models.Item{ID: i + 1, Type: "TODO", Title: "item", Status: models.StatusTodo}
	}
	return out
}

// ============================================================================
// CARD
// ============================================================================

func TestRenderCard_FixedHeight(t *testing.T) {
	card := RenderCard(CardProps{Item: &models.Item{ID: 7, Type: "FIXME", Title: "short", Priority: "high"}})

	assert.Equal(t, CardHeight, lipgloss.Height(card))
	plain := ansi.Strip(card)
	assert.Contains(t, plain, "#7")
	assert.Contains(t, plain, "FIXME")
	assert.Contains(t, plain, "[high]")
}

// Edge case: long titles are cut so cards keep the column width.
func TestRenderCard_TruncatesTitle(t *testing.T) {
	card := RenderCard(CardProps{Item: &models.Item{ID: 1, Title: strings.Repeat("word ", 20)}})

	assert.Equal(t, CardHeight, lipgloss.Height(card))
	assert.Contains(t, ansi.Strip(card), "…")
	assert.Equal(t, lipgloss.Width(RenderCard(CardProps{Item: &models.Item{ID: 1}})), lipgloss.Width(card))
}

// ============================================================================
// COLUMN
// ============================================================================

func TestScrollOffset(t *testing.T) {
	assert.Equal(t, 0, ScrollOffset(2, 10, 5))
	assert.Equal(t, 3, ScrollOffset(7, 10, 5))
	assert.Equal(t, 5, ScrollOffset(10, 10, 5), "end slot shows the last cards")
	assert.Equal(t, 0, ScrollOffset(3, 4, 5))
}

func TestRenderColumn_HeaderAndEmpty(t *testing.T) {
	col := &models.Column{ID: models.StatusTodo, Name: "Todo"}

	plain := ansi.Strip(RenderColumn(ColumnProps{Column: col, Selected: -1, DropIndex: -1}))

	assert.Contains(t, plain, "TODO (0)")
	assert.Contains(t, plain, "No items")
}

func TestRenderColumn_DropMarker(t *testing.T) {
	col := &models.Column{ID: models.StatusTodo, Name: "Todo"}

	plain := ansi.Strip(RenderColumn(ColumnProps{Column: col, Items: items(2), Selected: -1, DropIndex: 2}))
	assert.Contains(t, plain, "drop here")
	assert.Less(t, strings.Index(plain, "#2"), strings.Index(plain, "drop here"))

	plain = ansi.Strip(RenderColumn(ColumnProps{Column: col, Items: items(2), Selected: -1, DropIndex: 0}))
	assert.Less(t, strings.Index(plain, "drop here"), strings.Index(plain, "#1"))
}

func TestRenderColumn_ScrollIndicators(t *testing.T) {
	col := &models.Column{ID: models.StatusTodo, Name: "Todo"}
	height := 20

	plain := ansi.Strip(RenderColumn(ColumnProps{Column: col, Items: items(10), Selected: 9, DropIndex: -1, Height: height}))

	assert.Contains(t, plain, "more above")
	assert.NotContains(t, plain, "more below")
	assert.Contains(t, plain, "#10")
	assert.LessOrEqual(t, lipgloss.Height(RenderColumn(ColumnProps{Column: col, Items: items(10), Selected: 0, DropIndex: -1, Height: height})), height)
}

// ============================================================================
// STATUS BAR
// ============================================================================

func TestRenderStatusBar(t *testing.T) {
	fetched := time.Date(2026, 3, 1, 9, 30, 0, 0, time.Local)

	plain := ansi.Strip(RenderStatusBar(StatusBarProps{
		Width: 120, Mode: "NORMAL", Items: 5, Orphans: 1, Pending: 2, FetchedAt: fetched,
	}))

	assert.Contains(t, plain, "NORMAL")
	assert.Contains(t, plain, "5 items")
	assert.Contains(t, plain, "1 on no column")
	assert.Contains(t, plain, "2 syncing")
	assert.Contains(t, plain, "updated 09:30:00")
	assert.Equal(t, 120, lipgloss.Width(plain))
}

func TestRenderStatusBar_Stale(t *testing.T) {
	plain := ansi.Strip(RenderStatusBar(StatusBarProps{Width: 80, Mode: "NORMAL", Stale: true}))
	assert.Contains(t, plain, "cached")

	plain = ansi.Strip(RenderStatusBar(StatusBarProps{Width: 80, Mode: "NORMAL", Loading: true}))
	assert.Contains(t, plain, "refreshing")
}
