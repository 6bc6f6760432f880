package projection

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thenoetrevino/kodo/internal/models"
)

func todoDone() []*models.Column {
	return []*models.Column{
		{ID: "todo", Name: "TODO", Position: 0},
		{ID: "done", Name: "DONE", Position: 1},
	}
}

func ids(items []*models.Item) []int {
	out := make([]int, len(items))
	for i, item := range items {
		out[i] = item.ID
	}
	return out
}

func TestBuild_GroupsByStatusInColumnOrder(t *testing.T) {
	columns := []*models.Column{
		{ID: "done", Position: 2},
		{ID: "todo", Position: 0},
		{ID: "in_progress", Position: 1},
	}
	items := []*models.Item{
		{ID: 1, Status: "todo"},
		{ID: 2, Status: "done"},
		{ID: 3, Status: "todo"},
		{ID: 4, Status: "in_progress"},
	}

	p := Build(columns, items)

	assert.Equal(t, []string{"todo", "in_progress", "done"}, p.ColumnIDs())
	assert.Equal(t, []int{1, 3}, ids(p.Items("todo")))
	assert.Equal(t, []int{4}, ids(p.Items("in_progress")))
	assert.Equal(t, []int{2}, ids(p.Items("done")))
	assert.Equal(t, 4, p.Len())
}

// Scenario D: an item whose status has no column is shown nowhere.
func TestBuild_OrphanExcluded(t *testing.T) {
	items := []*models.Item{{ID: 1, Status: "archived"}}

	p := Build(todoDone(), items)

	assert.Empty(t, p.Items("todo"))
	assert.Empty(t, p.Items("done"))
	_, _, ok := p.Locate(1)
	assert.False(t, ok)
	assert.Equal(t, []int{1}, ids(Orphans(todoDone(), items)))
}

func TestBuild_EmptyColumnsAreNotNil(t *testing.T) {
	p := Build(todoDone(), nil)

	assert.NotNil(t, p.Items("todo"))
	assert.Equal(t, 0, p.Len())
	assert.Equal(t, map[string]int{"todo": 0, "done": 0}, p.Counts())
}

func TestBuild_DuplicateColumnIDsKeepFirst(t *testing.T) {
	columns := []*models.Column{
		{ID: "todo", Name: "first", Position: 0},
		{ID: "todo", Name: "second", Position: 1},
	}
	p := Build(columns, []*models.Item{{ID: 1, Status: "todo"}})

	assert.Equal(t, []string{"todo"}, p.ColumnIDs())
	assert.Equal(t, 1, p.Len())
}

func TestBuild_DoesNotModifyInputs(t *testing.T) {
	columns := []*models.Column{{ID: "done", Position: 1}, {ID: "todo", Position: 0}}
	items := []*models.Item{{ID: 1, Status: "todo"}}

	p := Build(columns, items)
	p.MoveToEnd(1, "done")

	assert.Equal(t, "done", columns[0].ID)
	assert.Equal(t, models.ItemStatus("todo"), items[0].Status)
}

// Projection completeness over randomized inputs: union of all columns equals the
// set of items whose status is a configured column, with no duplicates.
func TestBuild_Completeness(t *testing.T) {
	statuses := []string{"todo", "in_progress", "done", "archived", "blocked"}
	columns := []*models.Column{
		{ID: "todo", Position: 0},
		{ID: "in_progress", Position: 1},
		{ID: "done", Position: 2},
	}
	rng := rand.New(rand.NewSource(42))

	for round := 0; round < 50; round++ {
		var items []*models.Item
		n := rng.Intn(30)
		for i := 0; i < n; i++ {
			items = append(items, &models.Item{ID: i + 1, Status: models.ItemStatus(statuses[rng.Intn(len(statuses))])})
		}

		p := Build(columns, items)

		seen := map[int]int{}
		for _, col := range p.ColumnIDs() {
			for _, item := range p.Items(col) {
				seen[item.ID]++
			}
		}

		expected := map[int]int{}
		for _, item := range items {
			if models.ColumnIndex(columns, string(item.Status)) >= 0 {
				expected[item.ID] = 1
			}
		}
		require.Equal(t, expected, seen, "round %d", round)
	}
}

// Projection stability: identical inputs give identical column orders.
func TestBuild_Deterministic(t *testing.T) {
	var items []*models.Item
	for i := 1; i <= 20; i++ {
		status := "todo"
		if i%3 == 0 {
			status = "done"
		}
		items = append(items, &models.Item{ID: i, Title: fmt.Sprintf("item %d", i), Status: models.ItemStatus(status)})
	}

	first := Build(todoDone(), items)
	second := Build(todoDone(), items)

	assert.True(t, first.Equal(second))
	assert.Equal(t, ids(first.Items("todo")), ids(second.Items("todo")))
}

// Scenario C: reorder within a column.
func TestReorder_WithinColumn(t *testing.T) {
	items := []*models.Item{{ID: 1, Status: "todo"}, {ID: 2, Status: "todo"}}
	p := Build(todoDone(), items)

	ok := p.Reorder(2, 0)

	require.True(t, ok)
	assert.Equal(t, []int{2, 1}, ids(p.Items("todo")))
	assert.Empty(t, p.Items("done"))
}

// Reorder preserves membership and never touches statuses.
func TestReorder_PreservesMembership(t *testing.T) {
	items := []*models.Item{
		{ID: 1, Status: "todo"}, {ID: 2, Status: "todo"}, {ID: 3, Status: "todo"}, {ID: 4, Status: "done"},
	}
	p := Build(todoDone(), items)

	p.Reorder(1, 2)

	assert.ElementsMatch(t, []int{1, 2, 3}, ids(p.Items("todo")))
	assert.Equal(t, []int{2, 3, 1}, ids(p.Items("todo")))
	assert.Equal(t, []int{4}, ids(p.Items("done")))
	for _, item := range items[:3] {
		assert.Equal(t, models.ItemStatus("todo"), item.Status)
	}
}

func TestReorder_UnknownItem(t *testing.T) {
	p := Build(todoDone(), nil)
	assert.False(t, p.Reorder(99, 0))
}

func TestMoveToEnd_AppendsCopyWithNewStatus(t *testing.T) {
	items := []*models.Item{{ID: 1, Status: "todo"}, {ID: 2, Status: "done"}}
	p := Build(todoDone(), items)

	moved := p.MoveToEnd(1, "done")

	require.NotNil(t, moved)
	assert.Equal(t, models.ItemStatus("done"), moved.Status)
	assert.Empty(t, p.Items("todo"))
	assert.Equal(t, []int{2, 1}, ids(p.Items("done")))
	assert.Equal(t, models.ItemStatus("todo"), items[0].Status, "canonical item must not change")
}

func TestMoveToEnd_UnknownDestination(t *testing.T) {
	p := Build(todoDone(), []*models.Item{{ID: 1, Status: "todo"}})

	assert.Nil(t, p.MoveToEnd(1, "archived"))
	assert.Equal(t, []int{1}, ids(p.Items("todo")))
}

func TestClone_IsIndependent(t *testing.T) {
	p := Build(todoDone(), []*models.Item{{ID: 1, Status: "todo"}, {ID: 2, Status: "todo"}})
	c := p.Clone()

	c.Reorder(2, 0)

	assert.Equal(t, []int{1, 2}, ids(p.Items("todo")))
	assert.Equal(t, []int{2, 1}, ids(c.Items("todo")))
	assert.False(t, p.Equal(c))
}

func TestEqual_ComparesItemFields(t *testing.T) {
	a := Build(todoDone(), []*models.Item{{ID: 1, Title: "a", Status: "todo"}})
	b := Build(todoDone(), []*models.Item{{ID: 1, Title: "b", Status: "todo"}})

	assert.False(t, a.Equal(b))
	assert.True(t, a.Equal(a.Clone()))
}

func TestSplice(t *testing.T) {
	tests := []struct {
		name     string
		from, to int
		want     []int
	}{
		{"forward", 0, 2, []int{2, 3, 1, 4}},
		{"backward", 3, 1, []int{1, 4, 2, 3}},
		{"same index", 1, 1, []int{1, 2, 3, 4}},
		{"clamped high", 0, 99, []int{2, 3, 4, 1}},
		{"clamped low", 2, -5, []int{3, 1, 2, 4}},
		{"bad from", 9, 0, []int{1, 2, 3, 4}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := []int{1, 2, 3, 4}
			assert.Equal(t, tt.want, Splice(in, tt.from, tt.to))
			assert.Equal(t, []int{1, 2, 3, 4}, in)
		})
	}
}
