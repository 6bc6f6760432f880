package app

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/thenoetrevino/kodo/internal/config"
	"github.com/thenoetrevino/kodo/internal/database"
	"github.com/thenoetrevino/kodo/internal/models"
	"github.com/thenoetrevino/kodo/internal/testutil"
)

func testConfig(baseURL string) *config.Config {
	cfg := config.Default()
	cfg.API.BaseURL = baseURL
	return cfg
}

func TestNew(t *testing.T) {
	fake := testutil.NewFakeAPI(t, nil, nil)

	app, err := New(context.Background(), testConfig(fake.URL()), WithoutCache())
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	defer func() { _ = app.Close() }()

	if app.BoardService == nil {
		t.Error("Expected BoardService to be initialized")
	}
	if app.FolderService == nil {
		t.Error("Expected FolderService to be initialized")
	}
	if app.Repo() != nil {
		t.Error("Expected no repository when the cache is skipped")
	}
}

func TestNew_InvalidBaseURL(t *testing.T) {
	if _, err := New(context.Background(), testConfig("not a url"), WithoutCache()); err == nil {
		t.Fatal("Expected an error for an invalid base URL")
	}
}

func TestNew_OpensCacheFile(t *testing.T) {
	fake := testutil.NewFakeAPI(t, nil, nil)
	cfg := testConfig(fake.URL())
	cfg.Cache.Path = filepath.Join(t.TempDir(), "kodo.db")

	app, err := New(context.Background(), cfg)
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	defer func() { _ = app.Close() }()

	if app.Repo() == nil {
		t.Fatal("Expected the sqlite cache to be opened")
	}
}

func TestLoad(t *testing.T) {
	items := []*models.Item{{ID: 1, Title: "wire it", Status: "todo"}}
	fake := testutil.NewFakeAPI(t, items, nil)

	db, err := database.InitDB(context.Background(), ":memory:")
	if err != nil {
		t.Fatalf("InitDB failed: %v", err)
	}
	defer func() { _ = db.Close() }()

	app, err := New(context.Background(), testConfig(fake.URL()), WithRepository(database.NewRepository(db)))
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}

	if err := app.Load(context.Background()); err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if got := app.BoardService.Projection().Items("todo"); len(got) != 1 {
		t.Errorf("Expected 1 item in todo, got %d", len(got))
	}

	snap, err := app.Repo().LoadSnapshot(context.Background())
	if err != nil {
		t.Fatalf("Expected snapshot to be cached: %v", err)
	}
	if len(snap.Items) != 1 {
		t.Errorf("Expected 1 cached item, got %d", len(snap.Items))
	}
}

func TestClose(t *testing.T) {
	fake := testutil.NewFakeAPI(t, nil, nil)
	cfg := testConfig(fake.URL())
	cfg.Cache.Path = filepath.Join(t.TempDir(), "kodo.db")

	app, err := New(context.Background(), cfg)
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}

	if err := app.Close(); err != nil {
		t.Errorf("Close() failed: %v", err)
	}
	if err := app.Close(); err != nil {
		t.Errorf("second Close() should be a no-op: %v", err)
	}
}
