package item

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/kodo/internal/cli"
	"github.com/thenoetrevino/kodo/internal/models"
	boardservice "github.com/thenoetrevino/kodo/internal/services/board"
)

// MoveCmd returns the move subcommand
func MoveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "move",
		Short: "Move an item to another column",
		Long: `Move an item to another column by direction or column name.
The item is appended to the end of the destination column and its new status
is sent to the server. If the server refuses, the move is rolled back.

Examples:
  # Move to next column
  kodo move --id 1 next

  # Move to previous column
  kodo move --id 1 prev

  # Move to specific column by id or name (case-insensitive)
  kodo move --id 1 in_progress
  kodo move --id 1 "In Progress"

  # JSON output for agents
  kodo move --id 1 done --json
`,
		RunE: runMove,
		Args: cobra.ExactArgs(1),
	}

	// Required flags
	cmd.Flags().Int("id", 0, "Item ID (required)")
	if err := cmd.MarkFlagRequired("id"); err != nil {
		slog.Error("failed to mark flag as required", "error", err)
	}

	// Agent-friendly flags
	cmd.Flags().Bool("json", false, "Output in JSON format")
	cmd.Flags().Bool("quiet", false, "Minimal output (ID only)")

	return cmd
}

// moveResult is what a finished move prints
type moveResult struct {
	ItemID  int                `json:"item_id"`
	Title   string             `json:"title"`
	From    string             `json:"from"`
	To      string             `json:"to"`
	Outcome models.MoveOutcome `json:"outcome"`
	Item    *models.Item       `json:"item,omitempty"`
}

func (r moveResult) GetID() int {
	return r.ItemID
}

func (r moveResult) Human() string {
	return fmt.Sprintf("✓ Moved #%d %s: %s → %s", r.ItemID, r.Title, r.From, r.To)
}

func runMove(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	itemID, _ := cmd.Flags().GetInt("id")
	jsonOutput, _ := cmd.Flags().GetBool("json")
	quietMode, _ := cmd.Flags().GetBool("quiet")
	target := args[0]

	formatter := &cli.OutputFormatter{JSON: jsonOutput, Quiet: quietMode}

	if itemID <= 0 {
		return cli.FailWith(formatter, "INVALID_ITEM_ID", "item ID must be a positive integer",
			"Usage: kodo move --id <id> <column>", cli.ExitUsage, nil)
	}

	// Initialize CLI
	cliInstance, err := cli.GetCLIFromContext(ctx)
	if err != nil {
		return cli.FailWith(formatter, "INITIALIZATION_ERROR", err.Error(), "", cli.ExitError, err)
	}
	defer func() {
		if err := cliInstance.Close(); err != nil {
			slog.Error("failed to close CLI", "error", err)
		}
	}()

	svc := cliInstance.App.BoardService
	if err := loadBoard(ctx, formatter, svc); err != nil {
		return err
	}

	item, ok := svc.Item(itemID)
	if !ok {
		return cli.FailWith(formatter, "ITEM_NOT_FOUND", fmt.Sprintf("item %d not found", itemID),
			"Run 'kodo board' to list items", cli.ExitNotFound, boardservice.ErrItemNotFound)
	}

	columns := svc.Columns()
	dest, err := resolveTarget(columns, string(item.Status), target)
	if err != nil {
		return cli.FailWith(formatter, "COLUMN_NOT_FOUND", err.Error(),
			"Available columns: "+cli.FormatAvailableColumns(columns), cli.ExitNotFound, err)
	}

	result, err := svc.MoveTo(ctx, itemID, dest.ID)
	if err != nil {
		return cli.Fail(formatter, err)
	}
	if result.Err != nil {
		code, exit := cli.Classify(result.Err)
		if code == "ERROR" {
			code = "MOVE_REJECTED"
		}
		return cli.FailWith(formatter, code,
			fmt.Sprintf("move of item %d was rolled back: %v", itemID, result.Err),
			"The item stays in "+string(item.Status), exit, result.Err)
	}

	return formatter.Success(moveResult{
		ItemID:  itemID,
		Title:   item.FullTitle(),
		From:    string(item.Status),
		To:      dest.ID,
		Outcome: result.Outcome,
		Item:    result.Item,
	})
}

// resolveTarget turns "next", "prev" or a column id or name into a column
func resolveTarget(columns []*models.Column, current, target string) (*models.Column, error) {
	var step int
	switch strings.ToLower(target) {
	case "next":
		step = 1
	case "prev", "previous":
		step = -1
	default:
		return cli.FindColumn(columns, target)
	}

	idx := models.ColumnIndex(columns, current)
	if idx < 0 {
		return nil, fmt.Errorf("%w: item status %q is not a column, name the destination", boardservice.ErrUnknownColumn, current)
	}
	next := idx + step
	if next < 0 || next >= len(columns) {
		return nil, fmt.Errorf("%w: no column %s of %s", boardservice.ErrUnknownColumn, target, current)
	}
	return columns[next], nil
}
