package itemstore

import "errors"

var (
	// ErrNoLister indicates Refresh was called without a source to fetch from
	ErrNoLister = errors.New("item store has no lister")

	// ErrInvalidItem indicates a nil item or an item without an ID
	ErrInvalidItem = errors.New("invalid item")
)
