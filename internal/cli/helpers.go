package cli

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/thenoetrevino/kodo/internal/api"
	"github.com/thenoetrevino/kodo/internal/models"
	"github.com/thenoetrevino/kodo/internal/services/board"
	"github.com/thenoetrevino/kodo/internal/services/folder"
)

// FindColumn finds a column by ID or by name (case-insensitive)
func FindColumn(columns []*models.Column, target string) (*models.Column, error) {
	target = strings.TrimSpace(target)
	for _, col := range columns {
		if col.ID == target {
			return col, nil
		}
	}
	for _, col := range columns {
		if strings.EqualFold(col.Name, target) || strings.EqualFold(col.ID, target) {
			return col, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", board.ErrUnknownColumn, target)
}

// FormatAvailableColumns lists columns as "todo (TODO), done (DONE)"
func FormatAvailableColumns(columns []*models.Column) string {
	parts := make([]string, 0, len(columns))
	for _, col := range columns {
		if col.Name == "" || col.Name == col.ID {
			parts = append(parts, col.ID)
			continue
		}
		parts = append(parts, fmt.Sprintf("%s (%s)", col.ID, col.Name))
	}
	return strings.Join(parts, ", ")
}

// Classify maps a service error to an error code and exit code
func Classify(err error) (string, int) {
	switch {
	case errors.Is(err, board.ErrItemNotFound), api.IsNotFound(err):
		return "ITEM_NOT_FOUND", ExitNotFound
	case errors.Is(err, board.ErrUnknownColumn):
		return "COLUMN_NOT_FOUND", ExitNotFound
	case errors.Is(err, folder.ErrFolderNotFound):
		return "FOLDER_NOT_FOUND", ExitNotFound
	case errors.Is(err, board.ErrSameColumn):
		return "SAME_COLUMN", ExitValidation
	case errors.Is(err, board.ErrMoveInFlight):
		return "MOVE_IN_FLIGHT", ExitValidation
	case errors.Is(err, board.ErrNotAMove), errors.Is(err, folder.ErrInvalidFolderID):
		return "INVALID_REQUEST", ExitValidation
	}

	var remote *api.RemoteError
	if errors.As(err, &remote) {
		if remote.StatusCode == 0 {
			return "SERVER_UNREACHABLE", ExitError
		}
		return "SERVER_ERROR", ExitError
	}
	return "ERROR", ExitError
}

// Fail prints err through the formatter and returns it with its exit code
func Fail(formatter *OutputFormatter, err error) error {
	code, exit := Classify(err)
	return FailWith(formatter, code, err.Error(), "", exit, err)
}

// FailWith prints an error with an explicit code and suggestion
func FailWith(formatter *OutputFormatter, code, message, suggestion string, exit int, err error) error {
	fail := Failure{Code: code, Message: message, Suggestion: suggestion, ExitCode: exit}
	if fmtErr := formatter.Report(fail); fmtErr != nil {
		slog.Error("failed to format error message", "error", fmtErr)
	}
	if err == nil {
		err = errors.New(message)
	}
	return Exit(exit, err)
}
