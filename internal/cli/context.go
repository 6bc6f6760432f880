package cli

import (
	"context"

	"github.com/thenoetrevino/kodo/internal/app"
)

type contextKey string

const appKey contextKey = "kodo.app"

// WithApp returns a context carrying a ready application container.
// Commands run with it use that app instead of building one from the config.
func WithApp(ctx context.Context, a *app.App) context.Context {
	return context.WithValue(ctx, appKey, a)
}

// GetCLIFromContext returns the CLI for a command: the app carried by ctx when
// present, otherwise a fresh one built from the config
func GetCLIFromContext(ctx context.Context) (*CLI, error) {
	if ctx != nil {
		if a, ok := ctx.Value(appKey).(*app.App); ok && a != nil {
			return &CLI{App: a}, nil
		}
	} else {
		ctx = context.Background()
	}
	return NewCLI(ctx)
}
