package item

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/kodo/internal/cli"
	"github.com/thenoetrevino/kodo/internal/cli/styles"
	"github.com/thenoetrevino/kodo/internal/drag"
	"github.com/thenoetrevino/kodo/internal/models"
)

// ReorderCmd returns the reorder subcommand
func ReorderCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reorder",
		Short: "Preview an item reorder inside its column",
		Long: `Drop an item over another item of the same column, or on the end of the
column, and print the resulting column order.

The order inside a column is local to the client and is never sent to the
server, so this only previews what the same drag does on the board.

Examples:
  # Take the place of item 7
  kodo reorder --id 3 --over 7

  # Move to the bottom of the column
  kodo reorder --id 3 --end
`,
		Args: cobra.NoArgs,
		RunE: runReorder,
	}

	cmd.Flags().Int("id", 0, "Item ID (required)")
	if err := cmd.MarkFlagRequired("id"); err != nil {
		slog.Error("failed to mark flag as required", "error", err)
	}
	cmd.Flags().Int("over", 0, "Drop over this item")
	cmd.Flags().Bool("end", false, "Drop on the empty end of the column")
	cmd.MarkFlagsMutuallyExclusive("over", "end")
	cmd.MarkFlagsOneRequired("over", "end")

	// Agent-friendly flags
	cmd.Flags().Bool("json", false, "Output in JSON format")
	cmd.Flags().Bool("quiet", false, "Minimal output (item IDs in column order)")

	return cmd
}

// reorderResult is the column after the drop
type reorderResult struct {
	ItemID int    `json:"item_id"`
	Column string `json:"column"`
	From   int    `json:"from_index"`
	To     int    `json:"to_index"`
	Order  []int  `json:"order"`
}

func runReorder(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	itemID, _ := cmd.Flags().GetInt("id")
	overID, _ := cmd.Flags().GetInt("over")
	jsonOutput, _ := cmd.Flags().GetBool("json")
	quietMode, _ := cmd.Flags().GetBool("quiet")

	formatter := &cli.OutputFormatter{JSON: jsonOutput, Quiet: quietMode}

	if itemID <= 0 {
		return cli.FailWith(formatter, "INVALID_ITEM_ID", "item ID must be a positive integer",
			"Usage: kodo reorder --id <id> --over <id>", cli.ExitUsage, nil)
	}
	if overID == itemID {
		return cli.FailWith(formatter, "INVALID_TARGET", "an item cannot be dropped over itself", "", cli.ExitValidation, nil)
	}

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

	p := svc.Projection()
	column, _, ok := p.Locate(itemID)
	if !ok {
		return cli.FailWith(formatter, "ITEM_NOT_FOUND", fmt.Sprintf("item %d is not on the board", itemID),
			"Run 'kodo board' to list items", cli.ExitNotFound, drag.ErrItemNotPlaced)
	}
	if overID > 0 {
		if _, _, ok := p.Locate(overID); !ok {
			return cli.FailWith(formatter, "ITEM_NOT_FOUND", fmt.Sprintf("item %d is not on the board", overID),
				"", cli.ExitNotFound, drag.ErrItemNotPlaced)
		}
	}

	ctrl := drag.NewController()
	if err := ctrl.Begin(p, itemID); err != nil {
		return cli.Fail(formatter, err)
	}
	intent, err := ctrl.Drop(p, drag.Target{ColumnID: column, ItemID: overID})
	if err != nil {
		return cli.Fail(formatter, err)
	}
	if intent.Kind != drag.Reorder {
		return cli.FailWith(formatter, "CROSS_COLUMN", fmt.Sprintf("item %d is in %s, not %s", overID, intent.To, column),
			fmt.Sprintf("Use 'kodo move --id %d %s' to change columns", itemID, intent.To), cli.ExitValidation,
			errors.New("drop target is in another column"))
	}

	if err := svc.Reorder(intent); err != nil {
		return cli.Fail(formatter, err)
	}
	if err := ctrl.Reset(); err != nil {
		slog.Warn("failed to reset drag controller", "error", err)
	}

	items := svc.Projection().Items(column)
	result := reorderResult{ItemID: itemID, Column: column, From: intent.FromIndex, To: intent.Index}
	result.Order = make([]int, len(items))
	for i, item := range items {
		result.Order[i] = item.ID
	}

	if quietMode {
		for _, id := range result.Order {
			fmt.Println(id)
		}
		return nil
	}
	if jsonOutput {
		return formatter.Success(result)
	}

	styles.Init(cliInstance.App.Config.ColorScheme)
	fmt.Print(renderColumn(svc.Columns(), column, items, itemID))
	return nil
}

func renderColumn(columns []*models.Column, columnID string, items []*models.Item, movedID int) string {
	col := &models.Column{ID: columnID}
	if i := models.ColumnIndex(columns, columnID); i >= 0 {
		col = columns[i]
	}

	var b strings.Builder
	b.WriteString(styles.RenderColumnHeader(col, len(items)))
	b.WriteString("\n")
	for _, item := range items {
		b.WriteString(styles.RenderItemLine(item))
		if item.ID == movedID {
			b.WriteString(styles.PendingStyle.Render("  ← moved"))
		}
		b.WriteString("\n")
	}
	return b.String()
}
