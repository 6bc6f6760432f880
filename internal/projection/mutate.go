package projection

import (
	"reflect"
	"slices"

	"github.com/thenoetrevino/kodo/internal/models"
)

// Reorder moves itemID to index toIndex within its own column.
// toIndex is clamped to the column bounds. Column membership does not change.
// Returns false if the item is not placed in the projection.
func (p *Projection) Reorder(itemID, toIndex int) bool {
	col, from, ok := p.Locate(itemID)
	if !ok {
		return false
	}
	p.columns[col] = Splice(p.columns[col], from, toIndex)
	return true
}

// MoveToEnd removes itemID from its column and appends a copy of it to the end of
// columnID with its status set to columnID. The canonical item is left untouched.
// Returns the moved copy, or nil when the item or destination is unknown.
func (p *Projection) MoveToEnd(itemID int, columnID string) *models.Item {
	dest, ok := p.columns[columnID]
	if !ok {
		return nil
	}
	src, idx, ok := p.Locate(itemID)
	if !ok {
		return nil
	}

	moved := p.columns[src][idx].Clone()
	moved.Status = models.ItemStatus(columnID)

	p.columns[src] = slices.Delete(slices.Clone(p.columns[src]), idx, idx+1)
	if src == columnID {
		dest = p.columns[src]
	}
	p.columns[columnID] = append(slices.Clone(dest), moved)
	return moved
}

// Splice returns a copy of list with the element at from moved to index to.
// Indexes out of range are clamped; the input slice is not modified.
func Splice[T any](list []T, from, to int) []T {
	out := slices.Clone(list)
	if from < 0 || from >= len(out) {
		return out
	}
	to = max(0, min(to, len(out)-1))
	if from == to {
		return out
	}
	elem := out[from]
	out = slices.Delete(out, from, from+1)
	return slices.Insert(out, to, elem)
}

func itemsEqual(a, b *models.Item) bool {
	if a == b {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	return reflect.DeepEqual(a, b)
}
