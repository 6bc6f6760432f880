package app

import (
	"log/slog"

	"github.com/thenoetrevino/kodo/internal/database"
)

// Option is a functional option for configuring App initialization
type Option func(*appConfig)

// appConfig holds the configuration for App initialization
type appConfig struct {
	backend Backend
	repo    database.DataStore
	noCache bool
	logger  *slog.Logger
}

// WithBackend replaces the HTTP client built from the config
func WithBackend(b Backend) Option {
	return func(cfg *appConfig) {
		cfg.backend = b
	}
}

// WithRepository supplies an already opened repository instead of the sqlite cache file
func WithRepository(repo database.DataStore) Option {
	return func(cfg *appConfig) {
		cfg.repo = repo
	}
}

// WithoutCache skips opening the sqlite cache even when the config enables it
func WithoutCache() Option {
	return func(cfg *appConfig) {
		cfg.noCache = true
	}
}

// WithLogger sets the logger for the application
func WithLogger(logger *slog.Logger) Option {
	return func(cfg *appConfig) {
		if logger != nil {
			cfg.logger = logger
		}
	}
}
