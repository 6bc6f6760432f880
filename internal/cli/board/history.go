package board

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/kodo/internal/cli"
	"github.com/thenoetrevino/kodo/internal/cli/styles"
	"github.com/thenoetrevino/kodo/internal/database"
	"github.com/thenoetrevino/kodo/internal/models"
)

// HistoryCmd returns the move history subcommand
func HistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent status moves",
		Long: `Show the status moves made from this machine, newest first.
Every move is listed, including the ones the server refused and that were rolled back.

Examples:
  kodo history
  kodo history --limit 10
  kodo history --item 42 --json
`,
		Args: cobra.NoArgs,
		RunE: runHistory,
	}

	cmd.Flags().Int("limit", database.DefaultHistoryLimit, "Maximum number of moves to show")
	cmd.Flags().Int("item", 0, "Only show moves of this item")

	// Agent-friendly flags
	cmd.Flags().Bool("json", false, "Output in JSON format")
	cmd.Flags().Bool("quiet", false, "Minimal output (move IDs only)")

	return cmd
}

func runHistory(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	limit, _ := cmd.Flags().GetInt("limit")
	itemID, _ := cmd.Flags().GetInt("item")
	jsonOutput, _ := cmd.Flags().GetBool("json")
	quietMode, _ := cmd.Flags().GetBool("quiet")

	formatter := &cli.OutputFormatter{JSON: jsonOutput, Quiet: quietMode}

	if limit <= 0 {
		return cli.FailWith(formatter, "INVALID_LIMIT", "limit must be a positive integer", "", cli.ExitUsage, nil)
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

	repo := cliInstance.Repo()
	if repo == nil {
		return cli.FailWith(formatter, "CACHE_DISABLED", "move history needs the local cache",
			"Set cache.enabled: true in the kodo config", cli.ExitError, nil)
	}

	var moves []*models.MoveRecord
	if itemID > 0 {
		moves, err = repo.MovesForItem(ctx, itemID)
		if len(moves) > limit {
			moves = moves[:limit]
		}
	} else {
		moves, err = repo.ListMoves(ctx, limit)
	}
	if err != nil {
		return cli.FailWith(formatter, "HISTORY_FETCH_ERROR", err.Error(), "", cli.ExitError, err)
	}

	if quietMode {
		for _, m := range moves {
			fmt.Println(m.ID)
		}
		return nil
	}

	if jsonOutput {
		if moves == nil {
			moves = []*models.MoveRecord{}
		}
		return formatter.Success(moves)
	}

	if len(moves) == 0 {
		fmt.Println("No moves recorded")
		return nil
	}

	styles.Init(cliInstance.App.Config.ColorScheme)
	fmt.Print(renderHistory(moves))
	return nil
}

func renderHistory(moves []*models.MoveRecord) string {
	var b strings.Builder
	for _, m := range moves {
		outcome := styles.SuccessStyle.Render("confirmed")
		if m.Outcome == models.OutcomeRolledBack {
			outcome = styles.ErrorStyle.Render("rolled back")
		}
		fmt.Fprintf(&b, "%s %s #%d %s: %s → %s %s\n",
			styles.SubtitleStyle.Render(m.SettledAt.Local().Format(time.DateTime)),
			outcome,
			m.ItemID,
			styles.ValueStyle.Render(m.Title),
			m.From,
			m.To,
			styles.SubtitleStyle.Render(fmt.Sprintf("(%s)", m.Duration().Round(time.Millisecond))),
		)
		if m.Error != "" {
			b.WriteString("    ")
			b.WriteString(styles.SubtitleStyle.Render(m.Error))
			b.WriteString("\n")
		}
	}
	return b.String()
}
