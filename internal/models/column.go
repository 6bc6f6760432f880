package models

import (
	"cmp"
	"slices"
)

// Column represents a kanban board column (e.g., "TODO", "IN PROGRESS", "DONE").
// The ID is the status value carried by the items that belong to the column.
type Column struct {
	ID                string  `json:"id"`
	Name              string  `json:"name"`
	Color             string  `json:"color"`
	Position          int     `json:"position"`
	AutoAssignPattern *string `json:"auto_assign_pattern,omitempty"`
}

// SortColumns returns a copy of columns ordered by Position.
// Columns sharing a position keep their configured order.
func SortColumns(columns []*Column) []*Column {
	sorted := slices.Clone(columns)
	slices.SortStableFunc(sorted, func(a, b *Column) int {
		return cmp.Compare(a.Position, b.Position)
	})
	return sorted
}

// ColumnIndex returns the index of the column with the given ID, or -1
func ColumnIndex(columns []*Column, id string) int {
	for i, col := range columns {
		if col.ID == id {
			return i
		}
	}
	return -1
}

// DefaultColumns returns the board layout used when the server has no column settings
func DefaultColumns() []*Column {
	autoAssign := DefaultAutoAssignPattern
	return []*Column{
		{ID: StatusTodo, Name: "TODO", Color: "dark", Position: 0, AutoAssignPattern: &autoAssign},
		{ID: StatusInProgress, Name: "IN PROGRESS", Color: "blue", Position: 1},
		{ID: StatusDone, Name: "DONE", Color: "green", Position: 2},
	}
}
