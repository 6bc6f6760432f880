package cli

import (
	"context"
	"testing"

	"github.com/thenoetrevino/kodo/internal/app"
	"github.com/thenoetrevino/kodo/internal/config"
	"github.com/thenoetrevino/kodo/internal/database"
	"github.com/thenoetrevino/kodo/internal/models"
	"github.com/thenoetrevino/kodo/internal/testutil"
)

// SetupCLITest starts a fake kodo server seeded with items and columns and returns
// it with an App wired to it and to an in-memory cache.
// This function is only for CLI tests and is isolated in a separate package
// to avoid import cycles when service tests import testutil
func SetupCLITest(t *testing.T, items []*models.Item, columns []*models.Column) (*testutil.FakeAPI, *app.App) {
	t.Helper()
	ctx := context.Background()
	fake := testutil.NewFakeAPI(t, items, columns)

	db, err := database.InitDB(ctx, ":memory:")
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	cfg := config.Default()
	cfg.API.BaseURL = fake.URL()

	appInstance, err := app.New(ctx, cfg, app.WithRepository(database.NewRepository(db)))
	if err != nil {
		t.Fatalf("Failed to create app: %v", err)
	}
	return fake, appInstance
}
