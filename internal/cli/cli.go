package cli

import (
	"context"
	"fmt"

	"github.com/thenoetrevino/kodo/internal/app"
	"github.com/thenoetrevino/kodo/internal/config"
	"github.com/thenoetrevino/kodo/internal/database"
)

// CLI represents the CLI application context
type CLI struct {
	App *app.App // Application container with services

	// owned is false when the app came from the context and belongs to the caller
	owned bool
}

// NewCLI loads the config and builds the application container
func NewCLI(ctx context.Context) (*CLI, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	application, err := app.New(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize app: %w", err)
	}

	return &CLI{App: application, owned: true}, nil
}

// Repo returns the local cache repository, or nil when the cache is disabled
func (c *CLI) Repo() database.DataStore {
	return c.App.Repo()
}

// Close cleans up CLI resources
func (c *CLI) Close() error {
	if !c.owned {
		return nil
	}
	return c.App.Close()
}
