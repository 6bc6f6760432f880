package database

import "database/sql"

// Repository provides a unified interface to all data operations.
// It composes domain-specific repositories using struct embedding.
type Repository struct {
	*SnapshotRepo
	*MoveLogRepo
}

// Compile-time verification that *Repository implements DataStore
var _ DataStore = (*Repository)(nil)

// NewRepository creates a new Repository instance wrapping the given database connection.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{
		SnapshotRepo: &SnapshotRepo{db: db},
		MoveLogRepo:  &MoveLogRepo{db: db},
	}
}
