package drag

import "errors"

// Gesture errors
var (
	// ErrAlreadyDragging indicates Begin was called while a gesture is active
	ErrAlreadyDragging = errors.New("a drag is already in progress")

	// ErrNotDragging indicates Drop or Cancel was called with no active gesture
	ErrNotDragging = errors.New("no drag in progress")

	// ErrNotResolved indicates Reset was called before an intent was produced
	ErrNotResolved = errors.New("no resolved intent to reset")

	// ErrItemNotPlaced indicates the dragged item is not in any column
	ErrItemNotPlaced = errors.New("item is not placed in any column")

	// ErrNoTarget indicates the drop landed on nothing that accepts items
	ErrNoTarget = errors.New("drop target does not resolve to a column")
)
