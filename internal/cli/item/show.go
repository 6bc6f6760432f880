package item

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/kodo/internal/cli"
	"github.com/thenoetrevino/kodo/internal/cli/styles"
	"github.com/thenoetrevino/kodo/internal/models"
	"github.com/thenoetrevino/kodo/internal/tui/components"
	"github.com/thenoetrevino/kodo/internal/tui/theme"
)

// ShowCmd returns the show subcommand
func ShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show [id]",
		Short: "Show item details",
		Long: `Display all details of an item: title, type, priority, source location,
status history and the description rendered as markdown.

When the server cannot be reached the last cached copy is shown.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runShow,
	}

	cmd.Flags().Int("id", 0, "Item ID (can also be provided as positional argument)")
	cmd.Flags().Bool("json", false, "Output in JSON format")
	cmd.Flags().Bool("quiet", false, "Minimal output (ID only)")

	return cmd
}

func runShow(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	flagID, _ := cmd.Flags().GetInt("id")
	jsonOutput, _ := cmd.Flags().GetBool("json")
	quietMode, _ := cmd.Flags().GetBool("quiet")

	formatter := &cli.OutputFormatter{JSON: jsonOutput, Quiet: quietMode}

	itemID, err := parseID(args, flagID)
	if err != nil {
		return cli.FailWith(formatter, "INVALID_ITEM_ID", err.Error(),
			"Usage: kodo show <id> or kodo show --id=<id>", cli.ExitUsage, err)
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
	if err := svc.LoadCached(ctx); err != nil {
		slog.Debug("no cached board for item detail", "error", err)
	}

	item, err := svc.Detail(ctx, itemID)
	if item == nil {
		return cli.Fail(formatter, err)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "⚠ server unavailable, showing cached item: %v\n", err)
	}

	if quietMode {
		fmt.Printf("%d\n", item.ID)
		return nil
	}
	if jsonOutput {
		return formatter.Success(item)
	}

	colors := cliInstance.App.Config.ColorScheme
	styles.Init(colors)
	theme.Init(colors)
	fmt.Println(styles.RenderCard(renderDetail(item, columnName(svc.Columns(), string(item.Status)))))
	return nil
}

func columnName(columns []*models.Column, status string) string {
	if i := models.ColumnIndex(columns, status); i >= 0 && columns[i].Name != "" {
		return columns[i].Name
	}
	return status
}

func renderDetail(item *models.Item, column string) string {
	var content strings.Builder

	content.WriteString(styles.TitleStyle.Render(fmt.Sprintf("#%d %s", item.ID, item.FullTitle())))
	content.WriteString("\n\n")

	meta := fmt.Sprintf("%s %s  %s %s",
		styles.LabelStyle.Render("Status:"), styles.ValueStyle.Render(column),
		styles.LabelStyle.Render("Priority:"), styles.RenderPriority(item.Priority))
	content.WriteString(meta)
	content.WriteString("\n")

	if loc := item.Location(); loc != "" {
		content.WriteString(styles.LabelStyle.Render("Source:") + " " + styles.ValueStyle.Render(loc))
		content.WriteString("\n")
	}
	if item.IsDone && item.DoneAt != nil {
		done := item.DoneAt.Local().Format(time.DateTime)
		if item.DoneBy != nil {
			done += " by " + *item.DoneBy
		}
		content.WriteString(styles.LabelStyle.Render("Done:") + " " + styles.ValueStyle.Render(done))
		content.WriteString("\n")
	}

	content.WriteString(styles.SectionStyle.Render("Description"))
	content.WriteString("\n")
	content.WriteString(components.RenderDescription(components.DescriptionProps{
		Description: item.Description,
		Width:       styles.CardWidth - 6,
	}))
	content.WriteString("\n")

	if len(item.History) > 0 {
		content.WriteString(styles.SectionStyle.Render("History"))
		content.WriteString("\n")
		for _, change := range item.History {
			line := fmt.Sprintf("  %s  %s", change.Timestamp.Local().Format(time.DateTime), change.Status)
			if change.User != "" {
				line += "  " + change.User
			}
			content.WriteString(styles.SubtitleStyle.Render(line))
			content.WriteString("\n")
		}
	}

	if !item.CreatedAt.IsZero() {
		content.WriteString("\n")
		content.WriteString(styles.SubtitleStyle.Render(fmt.Sprintf("Created %s  Updated %s",
			item.CreatedAt.Local().Format(time.DateTime), item.UpdatedAt.Local().Format(time.DateTime))))
	}
	return strings.TrimRight(content.String(), "\n")
}
