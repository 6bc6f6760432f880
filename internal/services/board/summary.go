package board

import (
	"time"

	"github.com/thenoetrevino/kodo/internal/models"
)

// ColumnSummary is the item count of one column
type ColumnSummary struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color,omitempty"`
	Count int    `json:"count"`
}

// Summary describes the board at a glance
type Summary struct {
	Columns   []ColumnSummary `json:"columns"`
	Total     int             `json:"total"`
	Orphans   int             `json:"orphans"`
	Pending   int             `json:"pending"`
	Stale     bool            `json:"stale"`
	FetchedAt time.Time       `json:"fetched_at"`
}

// Summary returns per-column counts as currently displayed
func (s *service) Summary() Summary {
	orphans := len(s.Orphans())

	s.mu.Lock()
	defer s.mu.Unlock()

	counts := s.proj.Counts()
	sum := Summary{
		Total:     s.store.Len(),
		Orphans:   orphans,
		Pending:   len(s.pending),
		Stale:     s.store.IsStale(),
		FetchedAt: s.store.FetchedAt(),
	}
	for _, id := range s.proj.ColumnIDs() {
		cs := ColumnSummary{ID: id, Name: s.columnName(id), Count: counts[id]}
		if i := models.ColumnIndex(s.columns, id); i >= 0 {
			cs.Color = s.columns[i].Color
		}
		sum.Columns = append(sum.Columns, cs)
	}
	return sum
}
