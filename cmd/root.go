package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/kodo/internal/cli/board"
	"github.com/thenoetrevino/kodo/internal/cli/folder"
	"github.com/thenoetrevino/kodo/internal/cli/item"
	"github.com/thenoetrevino/kodo/internal/config"
	"github.com/thenoetrevino/kodo/internal/launcher"
	"github.com/thenoetrevino/kodo/internal/logging"
)

var rootCmd = &cobra.Command{
	Use:   "kodo",
	Short: "kodo - a kanban board for the TODOs in your code",
	Long: `kodo shows the TODO, FIXME and HACK comments collected by a kodo server as a
kanban board. Run it without a subcommand to open the interactive board.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}
		if err := logging.Init(cfg.SlogLevel()); err != nil {
			return fmt.Errorf("failed to initialize logging: %w", err)
		}
		return nil
	},
	RunE: runTUI,
}

func init() {
	rootCmd.AddCommand(
		board.BoardCmd(),
		board.HistoryCmd(),
		item.MoveCmd(),
		item.ReorderCmd(),
		item.ShowCmd(),
		folder.FoldersCmd(),
		&cobra.Command{
			Use:   "tui",
			Short: "Open the interactive board",
			Args:  cobra.NoArgs,
			RunE:  runTUI,
		},
	)
}

func runTUI(cmd *cobra.Command, args []string) error {
	return launcher.Launch(nil)
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}
