package models

import "errors"

// Domain-specific errors for board lookups
var (
	// ErrItemNotFound indicates that no item with the requested ID exists
	ErrItemNotFound = errors.New("item not found")

	// ErrColumnNotFound indicates that no configured column has the requested ID
	ErrColumnNotFound = errors.New("column not found")

	// ErrFolderNotFound indicates that no folder with the requested ID exists
	ErrFolderNotFound = errors.New("folder not found")
)
