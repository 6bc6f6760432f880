package cli

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thenoetrevino/kodo/internal/api"
	"github.com/thenoetrevino/kodo/internal/models"
	"github.com/thenoetrevino/kodo/internal/services/board"
	"github.com/thenoetrevino/kodo/internal/services/folder"
)

func TestFindColumn(t *testing.T) {
	columns := models.DefaultColumns()

	tests := []struct {
		target string
		want   string
	}{
		{"in_progress", "in_progress"},
		{"IN PROGRESS", "in_progress"},
		{"done", "done"},
		{"Done", "done"},
		{" todo ", "todo"},
	}
	for _, tt := range tests {
		col, err := FindColumn(columns, tt.target)
		require.NoError(t, err, tt.target)
		assert.Equal(t, tt.want, col.ID, tt.target)
	}

	_, err := FindColumn(columns, "blocked")
	assert.ErrorIs(t, err, board.ErrUnknownColumn)
}

func TestFormatAvailableColumns(t *testing.T) {
	columns := []*models.Column{{ID: "todo", Name: "TODO"}, {ID: "review"}}

	assert.Equal(t, "todo (TODO), review", FormatAvailableColumns(columns))
}

func TestClassify(t *testing.T) {
	tests := []struct {
		err  error
		code string
		exit int
	}{
		{fmt.Errorf("item 3: %w", board.ErrItemNotFound), "ITEM_NOT_FOUND", ExitNotFound},
		{&api.RemoteError{StatusCode: http.StatusNotFound}, "ITEM_NOT_FOUND", ExitNotFound},
		{board.ErrUnknownColumn, "COLUMN_NOT_FOUND", ExitNotFound},
		{folder.ErrFolderNotFound, "FOLDER_NOT_FOUND", ExitNotFound},
		{board.ErrSameColumn, "SAME_COLUMN", ExitValidation},
		{board.ErrMoveInFlight, "MOVE_IN_FLIGHT", ExitValidation},
		{&api.RemoteError{Err: errors.New("refused")}, "SERVER_UNREACHABLE", ExitError},
		{&api.RemoteError{StatusCode: http.StatusBadGateway}, "SERVER_ERROR", ExitError},
		{errors.New("boom"), "ERROR", ExitError},
	}
	for _, tt := range tests {
		code, exit := Classify(tt.err)
		assert.Equal(t, tt.code, code, tt.err.Error())
		assert.Equal(t, tt.exit, exit, tt.err.Error())
	}
}

func TestExitCode(t *testing.T) {
	assert.Equal(t, ExitSuccess, ExitCode(nil))
	assert.Equal(t, ExitError, ExitCode(errors.New("plain")))

	wrapped := fmt.Errorf("run: %w", Exit(ExitNotFound, board.ErrItemNotFound))
	assert.Equal(t, ExitNotFound, ExitCode(wrapped))
	assert.ErrorIs(t, wrapped, board.ErrItemNotFound)
	assert.Equal(t, "exit status 2", Exit(ExitUsage, nil).Error())
}
