// Package projection derives the board's column layout from the canonical item list.
//
// A Projection groups items by status into the configured columns. It is rebuilt
// from scratch whenever the items or the column configuration change, and is only
// mutated in place by the status sync coordinator while a move is in flight.
package projection

import (
	"slices"

	"github.com/thenoetrevino/kodo/internal/models"
)

// Projection maps each configured column ID to the ordered items assigned to it
type Projection struct {
	order   []string
	columns map[string][]*models.Item
}

// Build groups items into columns by status.
//
// Columns are ordered by Position. Within a column, items keep the relative order
// they had in items. Items whose status matches no column are left out.
// Build has no side effects and never modifies its inputs.
func Build(columns []*models.Column, items []*models.Item) *Projection {
	sorted := models.SortColumns(columns)

	p := &Projection{
		order:   make([]string, 0, len(sorted)),
		columns: make(map[string][]*models.Item, len(sorted)),
	}
	for _, col := range sorted {
		if _, dup := p.columns[col.ID]; dup {
			continue
		}
		p.order = append(p.order, col.ID)
		p.columns[col.ID] = []*models.Item{}
	}

	for _, item := range items {
		key := string(item.Status)
		if list, ok := p.columns[key]; ok {
			p.columns[key] = append(list, item)
		}
	}

	return p
}

// ColumnIDs returns the column IDs in display order
func (p *Projection) ColumnIDs() []string {
	return slices.Clone(p.order)
}

// HasColumn reports whether columnID is part of the projection
func (p *Projection) HasColumn(columnID string) bool {
	_, ok := p.columns[columnID]
	return ok
}

// Items returns the items of a column in display order.
// The returned slice is a copy; the items themselves are shared.
func (p *Projection) Items(columnID string) []*models.Item {
	return slices.Clone(p.columns[columnID])
}

// Locate returns the column containing itemID and the item's index in it.
// ok is false when the item is not placed in any column.
func (p *Projection) Locate(itemID int) (columnID string, index int, ok bool) {
	for _, id := range p.order {
		for i, item := range p.columns[id] {
			if item.ID == itemID {
				return id, i, true
			}
		}
	}
	return "", -1, false
}

// Item returns the placed item with the given ID, or nil
func (p *Projection) Item(itemID int) *models.Item {
	col, idx, ok := p.Locate(itemID)
	if !ok {
		return nil
	}
	return p.columns[col][idx]
}

// Len returns the number of placed items across all columns
func (p *Projection) Len() int {
	total := 0
	for _, list := range p.columns {
		total += len(list)
	}
	return total
}

// Counts returns the number of items per column
func (p *Projection) Counts() map[string]int {
	counts := make(map[string]int, len(p.columns))
	for id, list := range p.columns {
		counts[id] = len(list)
	}
	return counts
}

// SetColumn replaces the item order of one column.
// It is a no-op for unknown columns.
func (p *Projection) SetColumn(columnID string, items []*models.Item) {
	if _, ok := p.columns[columnID]; !ok {
		return
	}
	p.columns[columnID] = slices.Clone(items)
}

// Clone returns a copy whose column lists can be changed independently.
// Items are shared.
func (p *Projection) Clone() *Projection {
	c := &Projection{
		order:   slices.Clone(p.order),
		columns: make(map[string][]*models.Item, len(p.columns)),
	}
	for id, list := range p.columns {
		c.columns[id] = slices.Clone(list)
	}
	return c
}

// Equal reports whether both projections have the same columns in the same order
// and field-for-field equal items in the same positions.
func (p *Projection) Equal(other *Projection) bool {
	if p == nil || other == nil {
		return p == other
	}
	if !slices.Equal(p.order, other.order) {
		return false
	}
	for _, id := range p.order {
		a, b := p.columns[id], other.columns[id]
		if len(a) != len(b) {
			return false
		}
		for i := range a {
			if !itemsEqual(a[i], b[i]) {
				return false
			}
		}
	}
	return true
}

// Orphans returns the items that Build left out because no column matches their status
func Orphans(columns []*models.Column, items []*models.Item) []*models.Item {
	known := make(map[string]struct{}, len(columns))
	for _, col := range columns {
		known[col.ID] = struct{}{}
	}

	var orphans []*models.Item
	for _, item := range items {
		if _, ok := known[string(item.Status)]; !ok {
			orphans = append(orphans, item)
		}
	}
	return orphans
}
