package launcher

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/thenoetrevino/kodo/internal/app"
	"github.com/thenoetrevino/kodo/internal/config"
	"github.com/thenoetrevino/kodo/internal/tui"
	"github.com/thenoetrevino/kodo/internal/tui/components"
)

// settleGrace bounds how long shutdown waits for moves still talking to the server
const settleGrace = 2 * time.Second

// Launch starts the TUI application
func Launch(cfg *config.Config) error {
	// Create root context with signal handling for graceful shutdown
	ctx, cancel := signal.NotifyContext(
		context.Background(),
		os.Interrupt,
		syscall.SIGTERM,
	)
	defer cancel()

	if cfg == nil {
		var err error
		if cfg, err = config.Load(); err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}
	}
	components.InitStyles(cfg.ColorScheme)

	application, err := app.New(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize app: %w", err)
	}
	defer func() {
		if err := application.Close(); err != nil {
			slog.Error("error closing local cache", "error", err)
		}
	}()

	model := tui.New(ctx, cfg, application.BoardService).WithChanges(application.Store.Subscribe(ctx))
	p := tea.NewProgram(model, tea.WithContext(ctx))

	// goroutine to monitor cancellation
	errChan := make(chan error, 1)
	go func() {
		_, err := p.Run()
		errChan <- err
	}()

	select {
	case err := <-errChan:
		if err != nil {
			return fmt.Errorf("error running program: %w", err)
		}
	case <-ctx.Done():
		slog.Info("shutdown signal received, cleaning up")
		select {
		case <-errChan:
		case <-time.After(settleGrace):
		}
	}

	if pending := application.BoardService.Pending(); len(pending) > 0 {
		slog.Warn("exiting with unsettled moves", "count", len(pending))
	}
	return nil
}
