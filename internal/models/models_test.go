package models

import (
	"errors"
	"testing"
	"time"
)

// ============================================================================
// Error Tests
// ============================================================================

func TestErrors_Messages(t *testing.T) {
	tests := []struct {
		err             error
		expectedMessage string
	}{
		{ErrItemNotFound, "item not found"},
		{ErrColumnNotFound, "column not found"},
		{ErrFolderNotFound, "folder not found"},
	}

	for _, tt := range tests {
		if tt.err.Error() != tt.expectedMessage {
			t.Errorf("error message = %q, want %q", tt.err.Error(), tt.expectedMessage)
		}
	}
}

func TestErrors_Wrapping(t *testing.T) {
	wrapped := errors.Join(errors.New("lookup"), ErrItemNotFound)
	if !errors.Is(wrapped, ErrItemNotFound) {
		t.Error("errors.Is should find ErrItemNotFound in a joined error")
	}
}

// ============================================================================
// Item Tests
// ============================================================================

func TestItem_CloneIsDeep(t *testing.T) {
	doneAt := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	doneBy := "alice"
	item := &Item{
		ID:     1,
		Title:  "cache results",
		Status: StatusDone,
		DoneAt: &doneAt,
		DoneBy: &doneBy,
		History: []StatusChange{
			{Status: StatusTodo, User: "alice"},
		},
	}

	clone := item.Clone()
	clone.Status = StatusTodo
	*clone.DoneBy = "bob"
	clone.History[0].User = "bob"

	if item.Status != StatusDone {
		t.Errorf("original Status = %q, want %q", item.Status, StatusDone)
	}
	if *item.DoneBy != "alice" {
		t.Errorf("original DoneBy = %q, want alice", *item.DoneBy)
	}
	if item.History[0].User != "alice" {
		t.Errorf("original History user = %q, want alice", item.History[0].User)
	}
}

func TestItem_CloneNil(t *testing.T) {
	var item *Item
	if item.Clone() != nil {
		t.Error("Clone() of nil item should be nil")
	}
}

func TestItem_MergeKeepsLocalFieldsWhenEmpty(t *testing.T) {
	local := &Item{ID: 7, Title: "local title", File: "main.go", Line: 12, Status: StatusTodo, Priority: PriorityHigh}
	confirmed := &Item{ID: 7, Status: StatusDone}

	merged := local.Merge(confirmed)

	if merged.Status != StatusDone {
		t.Errorf("merged Status = %q, want %q", merged.Status, StatusDone)
	}
	if merged.Title != "local title" {
		t.Errorf("merged Title = %q, want local title", merged.Title)
	}
	if merged.Location() != "main.go:12" {
		t.Errorf("merged Location = %q, want main.go:12", merged.Location())
	}
	if local.Status != StatusTodo {
		t.Error("Merge must not modify the receiver")
	}
}

func TestItem_FullTitle(t *testing.T) {
	item := &Item{Type: ItemTypeFixme, Title: "leaky file handle"}
	if got := item.FullTitle(); got != "FIXME: leaky file handle" {
		t.Errorf("FullTitle() = %q", got)
	}

	item.Type = ""
	if got := item.FullTitle(); got != "leaky file handle" {
		t.Errorf("FullTitle() without type = %q", got)
	}
}

func TestFindItem(t *testing.T) {
	items := []*Item{{ID: 1}, {ID: 5}, {ID: 9}}

	got, idx := FindItem(items, 5)
	if got == nil || idx != 1 {
		t.Errorf("FindItem(5) = %v, %d; want item 5 at index 1", got, idx)
	}

	got, idx = FindItem(items, 42)
	if got != nil || idx != -1 {
		t.Errorf("FindItem(42) = %v, %d; want nil, -1", got, idx)
	}
}

// ============================================================================
// Column Tests
// ============================================================================

func TestSortColumns_StableByPosition(t *testing.T) {
	columns := []*Column{
		{ID: "done", Position: 2},
		{ID: "todo", Position: 0},
		{ID: "review", Position: 1},
		{ID: "doing", Position: 1},
	}

	sorted := SortColumns(columns)

	want := []string{"todo", "review", "doing", "done"}
	for i, col := range sorted {
		if col.ID != want[i] {
			t.Errorf("sorted[%d] = %q, want %q", i, col.ID, want[i])
		}
	}
	if columns[0].ID != "done" {
		t.Error("SortColumns must not reorder its input")
	}
}

func TestDefaultColumns(t *testing.T) {
	columns := DefaultColumns()
	if len(columns) != 3 {
		t.Fatalf("DefaultColumns() returned %d columns, want 3", len(columns))
	}
	if ColumnIndex(columns, StatusInProgress) != 1 {
		t.Errorf("in_progress index = %d, want 1", ColumnIndex(columns, StatusInProgress))
	}
	if columns[0].AutoAssignPattern == nil || *columns[0].AutoAssignPattern != DefaultAutoAssignPattern {
		t.Error("first default column should auto-assign TODO|FIXME items")
	}
}

func TestPriority_Valid(t *testing.T) {
	for _, p := range []ItemPriority{PriorityLow, PriorityMedium, PriorityHigh} {
		if !p.Valid() {
			t.Errorf("%q should be valid", p)
		}
	}
	if ItemPriority("urgent").Valid() {
		t.Error("unknown priority should not be valid")
	}
	if PriorityHigh.Rank() >= PriorityLow.Rank() {
		t.Error("high priority should rank before low")
	}
}
