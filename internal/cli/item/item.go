// Package item holds the commands that act on a single board item.
package item

import (
	"context"
	"fmt"
	"strconv"

	"github.com/thenoetrevino/kodo/internal/cli"
	boardservice "github.com/thenoetrevino/kodo/internal/services/board"
)

// parseID reads an item ID from the first positional argument or the --id flag
func parseID(args []string, flagID int) (int, error) {
	if len(args) > 0 {
		id, err := strconv.Atoi(args[0])
		if err != nil || id <= 0 {
			return 0, fmt.Errorf("invalid item ID %q", args[0])
		}
		return id, nil
	}
	if flagID <= 0 {
		return 0, fmt.Errorf("item ID must be a positive integer")
	}
	return flagID, nil
}

// loadBoard fetches the board. The cached copy is used only to report a useful
// error when the server cannot be reached.
func loadBoard(ctx context.Context, formatter *cli.OutputFormatter, svc boardservice.Service) error {
	if err := svc.Refresh(ctx); err != nil {
		return cli.FailWith(formatter, "BOARD_FETCH_ERROR", err.Error(),
			"Check that the kodo server is running", cli.ExitError, err)
	}
	return nil
}
