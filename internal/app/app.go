package app

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/thenoetrevino/kodo/internal/api"
	"github.com/thenoetrevino/kodo/internal/config"
	"github.com/thenoetrevino/kodo/internal/database"
	"github.com/thenoetrevino/kodo/internal/itemstore"
	"github.com/thenoetrevino/kodo/internal/services/board"
	"github.com/thenoetrevino/kodo/internal/services/folder"
)

// Backend is the kodo server surface the application uses
type Backend interface {
	board.ItemAPI
	folder.API
}

// App holds all application services and provides dependency injection.
// This is the main application container that manages service lifecycles.
type App struct {
	Config *config.Config

	// Repository layer (local cache and move log); nil when the cache is disabled
	repo database.DataStore
	db   *sql.DB

	// Canonical item list shared by the services
	Store *itemstore.Store

	// Service layer (business logic)
	BoardService  board.Service
	FolderService folder.Service

	logger *slog.Logger
}

// New creates a new App with all services initialized.
// This is the single entry point for creating the application container.
func New(ctx context.Context, cfg *config.Config, opts ...Option) (*App, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	ac := &appConfig{logger: slog.Default()}
	for _, opt := range opts {
		opt(ac)
	}

	a := &App{Config: cfg, logger: ac.logger, repo: ac.repo}

	backend := ac.backend
	if backend == nil {
		client, err := api.NewClient(ctx, api.Options{
			BaseURL: cfg.API.BaseURL,
			Token:   cfg.API.Token,
			Timeout: cfg.API.Timeout,
		})
		if err != nil {
			return nil, err
		}
		backend = client
	}

	if a.repo == nil && cfg.CacheEnabled() && !ac.noCache {
		db, err := database.InitDB(ctx, cfg.Cache.Path)
		if err != nil {
			// The board works without the cache; only history and offline start are lost
			a.logger.Warn("local cache unavailable", "path", cfg.Cache.Path, "error", err)
		} else {
			a.db = db
			a.repo = database.NewRepository(db)
		}
	}

	a.Store = itemstore.New(nil)
	a.BoardService = board.NewService(backend, a.Store, a.repo)
	a.FolderService = folder.NewService(backend)
	return a, nil
}

// Repo returns the local repository, or nil when the cache is disabled
func (a *App) Repo() database.DataStore {
	return a.repo
}

// Load shows the cached board, then fetches the live one. A failed fetch is
// returned once the cached board (if any) is in place.
func (a *App) Load(ctx context.Context) error {
	if err := a.BoardService.LoadCached(ctx); err != nil {
		a.logger.Debug("no cached board", "error", err)
	}
	if err := a.BoardService.Refresh(ctx); err != nil {
		return fmt.Errorf("load board: %w", err)
	}
	return nil
}

// Close performs cleanup of application resources.
func (a *App) Close() error {
	if a.db == nil {
		return nil
	}
	err := a.db.Close()
	a.db = nil
	return err
}
