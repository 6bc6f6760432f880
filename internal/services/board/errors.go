package board

import "errors"

// Move errors. All of them are returned before any state is changed.
var (
	// ErrMoveInFlight indicates the item already has an unsettled status move
	ErrMoveInFlight = errors.New("item already has a move in flight")

	// ErrSameColumn indicates the item is already in the destination column
	ErrSameColumn = errors.New("item is already in the destination column")

	// ErrUnknownColumn indicates the destination is not a configured column
	ErrUnknownColumn = errors.New("unknown column")

	// ErrNotAMove indicates a reorder intent was passed where a move was expected, or the reverse
	ErrNotAMove = errors.New("intent kind does not match the operation")

	// ErrUnknownMove indicates SettleMove was called for a move that is not pending
	ErrUnknownMove = errors.New("move is not pending")

	// ErrItemNotFound indicates no canonical item has the requested ID
	ErrItemNotFound = errors.New("item not found")
)
