package models

import (
	"slices"
	"strconv"
	"time"
)

// ItemType is the comment tag an item was scanned from (TODO, FIXME, BUG, ...)
type ItemType string

// ItemStatus is the id of the column an item belongs to
type ItemStatus string

// StatusChange is one entry of an item's status history as recorded by the server
type StatusChange struct {
	Status    ItemStatus `json:"status"`
	Timestamp time.Time  `json:"timestamp"`
	User      string     `json:"user"`
}

// Item represents one trackable unit of work rendered as a card on the board.
// Items are created by the server's source scan; this client only changes Status.
type Item struct {
	ID          int          `json:"id"`
	Type        ItemType     `json:"type"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	File        string       `json:"file"`
	Line        int          `json:"line"`
	Status      ItemStatus   `json:"status"`
	Priority    ItemPriority `json:"priority"`
	IsDone      bool         `json:"is_done"`
	DoneAt      *time.Time   `json:"done_at"`
	DoneBy      *string      `json:"done_by"`

	History []StatusChange `json:"history,omitempty"`

	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	CurrentUser string    `json:"current_user,omitempty"`
}

// GetID returns the item ID (used by the CLI quiet output mode)
func (i *Item) GetID() int {
	return i.ID
}

// FullTitle returns the title prefixed with the item type, e.g. "TODO: cache results"
func (i *Item) FullTitle() string {
	if i.Type == "" {
		return i.Title
	}
	return string(i.Type) + ": " + i.Title
}

// Location returns "file:line", or an empty string when the item has no source location
func (i *Item) Location() string {
	if i.File == "" {
		return ""
	}
	return i.File + ":" + strconv.Itoa(i.Line)
}

// Clone returns a deep copy of the item.
// Snapshots and optimistic copies must never share History or pointer fields with
// the canonical list.
func (i *Item) Clone() *Item {
	if i == nil {
		return nil
	}
	c := *i
	if i.DoneAt != nil {
		t := *i.DoneAt
		c.DoneAt = &t
	}
	if i.DoneBy != nil {
		s := *i.DoneBy
		c.DoneBy = &s
	}
	c.History = slices.Clone(i.History)
	return &c
}

// Merge copies the server-confirmed fields of other into a copy of i.
// Fields the server leaves empty keep their local value.
func (i *Item) Merge(other *Item) *Item {
	merged := i.Clone()
	if other == nil {
		return merged
	}
	merged.Status = other.Status
	merged.IsDone = other.IsDone
	if other.Title != "" {
		merged.Title = other.Title
	}
	if other.Description != "" {
		merged.Description = other.Description
	}
	if other.Priority != "" {
		merged.Priority = other.Priority
	}
	if other.Type != "" {
		merged.Type = other.Type
	}
	if other.File != "" {
		merged.File = other.File
		merged.Line = other.Line
	}
	if other.DoneAt != nil {
		t := *other.DoneAt
		merged.DoneAt = &t
	}
	if other.DoneBy != nil {
		s := *other.DoneBy
		merged.DoneBy = &s
	}
	if len(other.History) > 0 {
		merged.History = slices.Clone(other.History)
	}
	if !other.UpdatedAt.IsZero() {
		merged.UpdatedAt = other.UpdatedAt
	}
	if other.CurrentUser != "" {
		merged.CurrentUser = other.CurrentUser
	}
	return merged
}

// CloneItems deep-copies a list of items, preserving order
func CloneItems(items []*Item) []*Item {
	if items == nil {
		return nil
	}
	out := make([]*Item, len(items))
	for i, item := range items {
		out[i] = item.Clone()
	}
	return out
}

// FindItem returns the item with the given ID and its index, or nil and -1
func FindItem(items []*Item, id int) (*Item, int) {
	for i, item := range items {
		if item.ID == id {
			return item, i
		}
	}
	return nil, -1
}
