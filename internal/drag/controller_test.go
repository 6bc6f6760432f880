package drag

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thenoetrevino/kodo/internal/models"
	"github.com/thenoetrevino/kodo/internal/projection"
)

func board() *projection.Projection {
	columns := []*models.Column{
		{ID: "todo", Position: 0},
		{ID: "in_progress", Position: 1},
		{ID: "done", Position: 2},
	}
	items := []*models.Item{
		{ID: 1, Status: "todo"},
		{ID: 2, Status: "todo"},
		{ID: 3, Status: "todo"},
		{ID: 4, Status: "done"},
	}
	return projection.Build(columns, items)
}

func TestController_StartsIdle(t *testing.T) {
	c := NewController()
	assert.Equal(t, Idle, c.State())
	_, ok := c.Intent()
	assert.False(t, ok)
}

func TestBegin_RecordsSourceColumn(t *testing.T) {
	c := NewController()

	require.NoError(t, c.Begin(board(), 4))

	assert.Equal(t, Dragging, c.State())
	assert.Equal(t, 4, c.ItemID())
	assert.Equal(t, "done", c.Source())
}

func TestBegin_RejectsSecondGesture(t *testing.T) {
	c := NewController()
	require.NoError(t, c.Begin(board(), 1))

	err := c.Begin(board(), 2)

	assert.ErrorIs(t, err, ErrAlreadyDragging)
	assert.Equal(t, 1, c.ItemID())
}

func TestBegin_UnplacedItem(t *testing.T) {
	c := NewController()

	err := c.Begin(board(), 42)

	assert.ErrorIs(t, err, ErrItemNotPlaced)
	assert.Equal(t, Idle, c.State())
}

// Scenario C: dropping item 2 on item 1 reorders within todo.
func TestDrop_OnItemInSameColumnReorders(t *testing.T) {
	p := board()
	c := NewController()
	require.NoError(t, c.Begin(p, 2))

	intent, err := c.Drop(p, Target{ItemID: 1})

	require.NoError(t, err)
	assert.Equal(t, Resolved, c.State())
	assert.Equal(t, Reorder, intent.Kind)
	assert.Equal(t, "todo", intent.From)
	assert.Equal(t, "todo", intent.To)
	assert.Equal(t, 0, intent.Index)
	assert.Equal(t, []int{2, 1, 3}, intent.Order)
	assert.True(t, intent.Changed())
}

func TestDrop_OnOwnColumnAreaMovesToEnd(t *testing.T) {
	p := board()
	c := NewController()
	require.NoError(t, c.Begin(p, 1))

	intent, err := c.Drop(p, Target{ColumnID: "todo"})

	require.NoError(t, err)
	assert.Equal(t, Reorder, intent.Kind)
	assert.Equal(t, []int{2, 3, 1}, intent.Order)
}

func TestDrop_OnItselfIsUnchanged(t *testing.T) {
	p := board()
	c := NewController()
	require.NoError(t, c.Begin(p, 2))

	intent, err := c.Drop(p, Target{ItemID: 2})

	require.NoError(t, err)
	assert.Equal(t, Reorder, intent.Kind)
	assert.False(t, intent.Changed())
	assert.Equal(t, []int{1, 2, 3}, intent.Order)
}

func TestDrop_OnOtherColumnMovesToEnd(t *testing.T) {
	p := board()
	c := NewController()
	require.NoError(t, c.Begin(p, 1))

	intent, err := c.Drop(p, Target{ColumnID: "done"})

	require.NoError(t, err)
	assert.Equal(t, Move, intent.Kind)
	assert.Equal(t, 1, intent.ItemID)
	assert.Equal(t, "todo", intent.From)
	assert.Equal(t, "done", intent.To)
	assert.Equal(t, 1, intent.Index, "moves always land at the end of the destination")
	assert.Nil(t, intent.Order)
}

func TestDrop_OnItemInOtherColumnStillAppends(t *testing.T) {
	p := board()
	c := NewController()
	require.NoError(t, c.Begin(p, 3))

	intent, err := c.Drop(p, Target{ItemID: 4})

	require.NoError(t, err)
	assert.Equal(t, Move, intent.Kind)
	assert.Equal(t, "done", intent.To)
	assert.Equal(t, 1, intent.Index)
}

// Edge case: the target names both a column and an item in a different column.
// The item's containing column wins.
func TestDrop_ItemBeatsColumnOnAmbiguousTarget(t *testing.T) {
	p := board()
	c := NewController()
	require.NoError(t, c.Begin(p, 1))

	intent, err := c.Drop(p, Target{ColumnID: "in_progress", ItemID: 4})

	require.NoError(t, err)
	assert.Equal(t, "done", intent.To)
}

func TestDrop_EmptyColumn(t *testing.T) {
	p := board()
	c := NewController()
	require.NoError(t, c.Begin(p, 1))

	intent, err := c.Drop(p, Target{ColumnID: "in_progress"})

	require.NoError(t, err)
	assert.Equal(t, Move, intent.Kind)
	assert.Equal(t, 0, intent.Index)
}

// Edge case: stale item id in the target falls back to the named column.
func TestDrop_UnknownItemFallsBackToColumn(t *testing.T) {
	p := board()
	c := NewController()
	require.NoError(t, c.Begin(p, 1))

	intent, err := c.Drop(p, Target{ColumnID: "done", ItemID: 99})

	require.NoError(t, err)
	assert.Equal(t, "done", intent.To)
}

func TestDrop_NoValidTargetCancels(t *testing.T) {
	tests := []struct {
		name   string
		target Target
	}{
		{"empty target", Target{}},
		{"unknown column", Target{ColumnID: "archived"}},
		{"unknown item", Target{ItemID: 99}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := board()
			c := NewController()
			require.NoError(t, c.Begin(p, 1))

			_, err := c.Drop(p, tt.target)

			assert.ErrorIs(t, err, ErrNoTarget)
			assert.Equal(t, Idle, c.State())
			assert.Equal(t, 0, c.ItemID())
		})
	}
}

func TestDrop_ItemVanishedDuringGesture(t *testing.T) {
	c := NewController()
	require.NoError(t, c.Begin(board(), 1))

	refreshed := projection.Build([]*models.Column{{ID: "todo"}}, nil)
	_, err := c.Drop(refreshed, Target{ColumnID: "todo"})

	assert.ErrorIs(t, err, ErrItemNotPlaced)
	assert.Equal(t, Idle, c.State())
}

func TestDrop_WithoutBegin(t *testing.T) {
	c := NewController()
	_, err := c.Drop(board(), Target{ColumnID: "todo"})
	assert.ErrorIs(t, err, ErrNotDragging)
}

func TestDrop_DoesNotMutateProjection(t *testing.T) {
	p := board()
	before := p.Clone()
	c := NewController()
	require.NoError(t, c.Begin(p, 1))

	_, err := c.Drop(p, Target{ColumnID: "done"})

	require.NoError(t, err)
	assert.True(t, p.Equal(before))
}

func TestCancel(t *testing.T) {
	c := NewController()
	assert.ErrorIs(t, c.Cancel(), ErrNotDragging)

	require.NoError(t, c.Begin(board(), 1))
	require.NoError(t, c.Cancel())

	assert.Equal(t, Idle, c.State())
	assert.Equal(t, "", c.Source())
}

func TestReset(t *testing.T) {
	p := board()
	c := NewController()
	assert.ErrorIs(t, c.Reset(), ErrNotResolved)

	require.NoError(t, c.Begin(p, 1))
	_, err := c.Drop(p, Target{ColumnID: "done"})
	require.NoError(t, err)

	got, ok := c.Intent()
	require.True(t, ok)
	assert.Equal(t, Move, got.Kind)

	require.NoError(t, c.Reset())
	assert.Equal(t, Idle, c.State())
	require.NoError(t, c.Begin(p, 2), "controller is reusable after reset")
}

func TestStateAndKindStrings(t *testing.T) {
	assert.Equal(t, "idle", Idle.String())
	assert.Equal(t, "dragging", Dragging.String())
	assert.Equal(t, "resolved", Resolved.String())
	assert.Equal(t, "move", Move.String())
	assert.Equal(t, "reorder", Reorder.String())
	assert.Equal(t, "none", Kind(0).String())
}
