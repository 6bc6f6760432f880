// Package folder holds the notes folder commands.
package folder

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/kodo/internal/cli"
	"github.com/thenoetrevino/kodo/internal/cli/styles"
	"github.com/thenoetrevino/kodo/internal/config"
	"github.com/thenoetrevino/kodo/internal/folders"
	"github.com/thenoetrevino/kodo/internal/models"
)

// FoldersCmd returns the folders subcommand
func FoldersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "folders",
		Short: "Display the notes folder tree",
		Long: `Display the notes folders as a tree. Each folder shows the notes filed
directly in it and, when different, the total including its subfolders.

With --folder the notes of one folder are listed instead.

Examples:
  kodo folders
  kodo folders --folder 3 --recursive
  kodo folders --json
`,
		Args: cobra.NoArgs,
		RunE: runFolders,
	}

	cmd.Flags().Int("folder", 0, "List the notes of this folder")
	cmd.Flags().Bool("recursive", false, "With --folder, include notes of subfolders")

	// Agent-friendly flags
	cmd.Flags().Bool("json", false, "Output in JSON format")
	cmd.Flags().Bool("quiet", false, "Minimal output (IDs in tree order)")

	return cmd
}

// treeNodeJSON represents a folder in JSON output
type treeNodeJSON struct {
	ID       int             `json:"id"`
	Name     string          `json:"name"`
	Path     string          `json:"path"`
	Notes    int             `json:"notes"`
	Total    int             `json:"total"`
	Children []*treeNodeJSON `json:"children,omitempty"`
}

type treeJSON struct {
	Folders  []*treeNodeJSON `json:"folders"`
	Unfiled  int             `json:"unfiled"`
	Detached []int           `json:"detached,omitempty"`
}

func runFolders(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	folderID, _ := cmd.Flags().GetInt("folder")
	recursive, _ := cmd.Flags().GetBool("recursive")
	jsonOutput, _ := cmd.Flags().GetBool("json")
	quietMode, _ := cmd.Flags().GetBool("quiet")

	formatter := &cli.OutputFormatter{JSON: jsonOutput, Quiet: quietMode}

	if cmd.Flags().Changed("folder") && folderID <= 0 {
		return cli.FailWith(formatter, "INVALID_FOLDER_ID", "folder ID must be a positive integer",
			"Usage: kodo folders --folder <id>", cli.ExitUsage, nil)
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

	svc := cliInstance.App.FolderService

	if folderID > 0 {
		notes, err := svc.NotesIn(ctx, folderID, recursive)
		if err != nil {
			return cli.Fail(formatter, err)
		}
		return outputNotes(formatter, cliInstance.App.Config.ColorScheme, notes)
	}

	tree, err := svc.Tree(ctx)
	if err != nil {
		return cli.FailWith(formatter, "TREE_FETCH_ERROR", err.Error(),
			"Check that the kodo server is running", cli.ExitError, err)
	}

	if quietMode {
		outputQuietTree(tree)
		return nil
	}
	if jsonOutput {
		return formatter.Success(convertToJSONTree(tree))
	}

	if tree.Len() == 0 && tree.Unfiled() == 0 {
		fmt.Println("No folders found")
		return nil
	}
	styles.Init(cliInstance.App.Config.ColorScheme)
	fmt.Print(renderStyledTree(tree))
	return nil
}

func outputQuietTree(tree *folders.Tree) {
	tree.Walk(func(n *folders.Node) bool {
		fmt.Printf("%s%d\n", strings.Repeat("  ", n.Depth), n.Folder.ID)
		return true
	})
}

func convertToJSONTree(tree *folders.Tree) treeJSON {
	var convert func(ids []int) []*treeNodeJSON
	convert = func(ids []int) []*treeNodeJSON {
		out := make([]*treeNodeJSON, 0, len(ids))
		for _, id := range ids {
			n, _ := tree.Node(id)
			out = append(out, &treeNodeJSON{
				ID:       id,
				Name:     n.Folder.Name,
				Path:     strings.Join(tree.Path(id), "/"),
				Notes:    n.Notes,
				Total:    n.Total,
				Children: convert(n.Children),
			})
		}
		return out
	}
	return treeJSON{
		Folders:  convert(tree.Roots()),
		Unfiled:  tree.Unfiled(),
		Detached: tree.Detached(),
	}
}

func renderStyledTree(tree *folders.Tree) string {
	var b strings.Builder
	for _, line := range tree.Lines() {
		b.WriteString(styles.SubtitleStyle.Render(line.Prefix))
		name := styles.ValueStyle.Render(line.Node.Folder.Name)
		if line.Node.Depth == 0 {
			name = styles.TitleStyle.Render(line.Node.Folder.Name)
		}
		b.WriteString(name)
		b.WriteString(" ")
		b.WriteString(styles.SubtitleStyle.Render(folders.Counts(line.Node)))
		b.WriteString("\n")
	}
	if n := tree.Unfiled(); n > 0 {
		b.WriteString(styles.SubtitleStyle.Render(fmt.Sprintf("(unfiled) (%d)", n)))
		b.WriteString("\n")
	}
	return b.String()
}

func outputNotes(formatter *cli.OutputFormatter, scheme config.ColorScheme, notes []*models.Note) error {
	if formatter.Quiet {
		for _, note := range notes {
			fmt.Println(note.ID)
		}
		return nil
	}
	if formatter.JSON {
		if notes == nil {
			notes = []*models.Note{}
		}
		return formatter.Success(notes)
	}

	if len(notes) == 0 {
		fmt.Println("No notes found")
		return nil
	}
	styles.Init(scheme)
	for _, note := range notes {
		line := fmt.Sprintf("  %s %s", styles.LabelStyle.Render(fmt.Sprintf("#%d", note.ID)), styles.ValueStyle.Render(note.Title))
		if note.Pinned {
			line += " 📌"
		}
		if !note.UpdatedAt.IsZero() {
			line += "  " + styles.SubtitleStyle.Render(note.UpdatedAt.Local().Format(time.DateOnly))
		}
		fmt.Println(line)
	}
	return nil
}
