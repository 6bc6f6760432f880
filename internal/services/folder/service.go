// Package folder serves the notes folder hierarchy from the kodo server.
package folder

import (
	"cmp"
	"context"
	"fmt"
	"log/slog"
	"slices"

	"github.com/thenoetrevino/kodo/internal/folders"
	"github.com/thenoetrevino/kodo/internal/models"
)

// API is the part of the kodo server the folder service reads
type API interface {
	ListFolders(ctx context.Context) ([]*models.Folder, error)
	ListNotes(ctx context.Context) ([]*models.Note, error)
}

// Service defines the folder read operations
type Service interface {
	Tree(ctx context.Context) (*folders.Tree, error)
	NotesIn(ctx context.Context, folderID int, recursive bool) ([]*models.Note, error)
}

// service implements Service interface
type service struct {
	api API
}

// NewService creates a new folder service
func NewService(api API) Service {
	return &service{api: api}
}

// Tree fetches folders and notes and assembles the hierarchy
func (s *service) Tree(ctx context.Context) (*folders.Tree, error) {
	tree, _, err := s.load(ctx)
	return tree, err
}

// NotesIn returns the notes filed in folderID, newest first. With recursive set,
// notes in every subfolder are included.
func (s *service) NotesIn(ctx context.Context, folderID int, recursive bool) ([]*models.Note, error) {
	if folderID <= 0 {
		return nil, ErrInvalidFolderID
	}

	tree, notes, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	if _, ok := tree.Node(folderID); !ok {
		return nil, fmt.Errorf("folder %d: %w", folderID, ErrFolderNotFound)
	}

	wanted := map[int]bool{folderID: true}
	if recursive {
		for _, id := range tree.Descendants(folderID) {
			wanted[id] = true
		}
	}

	var out []*models.Note
	for _, note := range notes {
		if note.FolderID != nil && wanted[*note.FolderID] {
			out = append(out, note)
		}
	}
	slices.SortStableFunc(out, func(a, b *models.Note) int {
		return cmp.Compare(b.UpdatedAt.UnixNano(), a.UpdatedAt.UnixNano())
	})
	return out, nil
}

func (s *service) load(ctx context.Context) (*folders.Tree, []*models.Note, error) {
	list, err := s.api.ListFolders(ctx)
	if err != nil {
		return nil, nil, err
	}
	notes, err := s.api.ListNotes(ctx)
	if err != nil {
		return nil, nil, err
	}

	tree := folders.Build(list, notes)
	if detached := tree.Detached(); len(detached) > 0 {
		slog.Warn("folder parent cycle broken", "folder_ids", detached)
	}
	return tree, notes, nil
}
