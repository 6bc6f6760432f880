package board

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/kodo/internal/cli"
	"github.com/thenoetrevino/kodo/internal/cli/styles"
	"github.com/thenoetrevino/kodo/internal/models"
	boardservice "github.com/thenoetrevino/kodo/internal/services/board"
)

// BoardCmd returns the board subcommand
func BoardCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "board",
		Short: "Print the board",
		Long: `Print every column of the board with its items, in column order.

Items whose status matches no column are listed separately.

Examples:
  # Human-readable board
  kodo board

  # Last cached board, without contacting the server
  kodo board --cached

  # JSON output for agents
  kodo board --json
`,
		Args: cobra.NoArgs,
		RunE: runBoard,
	}

	cmd.Flags().Bool("cached", false, "Show the last cached board without contacting the server")

	// Agent-friendly flags
	cmd.Flags().Bool("json", false, "Output in JSON format")
	cmd.Flags().Bool("quiet", false, "Minimal output (item IDs, one column per line)")

	return cmd
}

// columnView is one column of the printed board
type columnView struct {
	ID    string         `json:"id"`
	Name  string         `json:"name"`
	Color string         `json:"color,omitempty"`
	Items []*models.Item `json:"items"`
}

// boardView is the printed board
type boardView struct {
	Summary boardservice.Summary `json:"summary"`
	Columns []columnView         `json:"columns"`
	Orphans []*models.Item       `json:"orphans"`
}

func runBoard(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	cached, _ := cmd.Flags().GetBool("cached")
	jsonOutput, _ := cmd.Flags().GetBool("json")
	quietMode, _ := cmd.Flags().GetBool("quiet")

	formatter := &cli.OutputFormatter{JSON: jsonOutput, Quiet: quietMode}

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
	if err := load(ctx, svc, cached); err != nil {
		return cli.FailWith(formatter, "BOARD_FETCH_ERROR", err.Error(),
			"Check that the kodo server is running, or use --cached", cli.ExitError, err)
	}

	view := buildView(svc)

	if quietMode {
		for _, col := range view.Columns {
			ids := make([]string, len(col.Items))
			for i, item := range col.Items {
				ids[i] = fmt.Sprint(item.ID)
			}
			fmt.Printf("%s: %s\n", col.ID, strings.Join(ids, " "))
		}
		return nil
	}

	if jsonOutput {
		return formatter.Success(view)
	}

	styles.Init(cliInstance.App.Config.ColorScheme)
	fmt.Print(renderBoard(view))
	return nil
}

// load fills the board from the server, falling back to the cache when the
// server cannot be reached
func load(ctx context.Context, svc boardservice.Service, cachedOnly bool) error {
	cacheErr := svc.LoadCached(ctx)
	if cachedOnly {
		return cacheErr
	}

	err := svc.Refresh(ctx)
	if err == nil {
		return nil
	}
	if cacheErr != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "⚠ server unavailable, showing cached board: %v\n", err)
	return nil
}

func buildView(svc boardservice.Service) boardView {
	p := svc.Projection()
	view := boardView{
		Summary: svc.Summary(),
		Orphans: svc.Orphans(),
	}
	for _, col := range svc.Columns() {
		items := p.Items(col.ID)
		if items == nil {
			continue
		}
		view.Columns = append(view.Columns, columnView{
			ID:    col.ID,
			Name:  col.Name,
			Color: col.Color,
			Items: items,
		})
	}
	if view.Orphans == nil {
		view.Orphans = []*models.Item{}
	}
	return view
}

func renderBoard(view boardView) string {
	var b strings.Builder
	for i, col := range view.Columns {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(styles.RenderColumnHeader(&models.Column{ID: col.ID, Name: col.Name, Color: col.Color}, len(col.Items)))
		b.WriteString("\n")
		if len(col.Items) == 0 {
			b.WriteString(styles.SubtitleStyle.Render("  (empty)"))
			b.WriteString("\n")
		}
		for _, item := range col.Items {
			b.WriteString(styles.RenderItemLine(item))
			b.WriteString("\n")
		}
	}

	if len(view.Orphans) > 0 {
		b.WriteString("\n")
		b.WriteString(styles.WarningStyle.Render(fmt.Sprintf("%d item(s) on no column", len(view.Orphans))))
		b.WriteString("\n")
		for _, item := range view.Orphans {
			b.WriteString(styles.RenderItemLine(item))
			b.WriteString(styles.SubtitleStyle.Render(fmt.Sprintf("  status: %s", item.Status)))
			b.WriteString("\n")
		}
	}

	if view.Summary.Stale {
		b.WriteString("\n")
		b.WriteString(styles.SubtitleStyle.Render("(cached, may be out of date)"))
		b.WriteString("\n")
	}
	return b.String()
}
