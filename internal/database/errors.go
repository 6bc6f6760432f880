package database

import "errors"

var (
	// ErrNoSnapshot indicates no board snapshot has been cached yet
	ErrNoSnapshot = errors.New("no cached snapshot")

	// ErrInvalidMove indicates a move record is missing required fields
	ErrInvalidMove = errors.New("invalid move record")
)
