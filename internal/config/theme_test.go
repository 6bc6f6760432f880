package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/thenoetrevino/kodo/internal/config/colors"
)

func TestThemeFileLoading(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	themeContent := []byte(`theme:
  accent: "#FF0000"
  drag_border: "#00FF00"
  drop_target: "#0000FF"
`)
	themePath := filepath.Join(t.TempDir(), "kodo-theme.yaml")
	if err := os.WriteFile(themePath, themeContent, 0644); err != nil {
		t.Fatalf("Failed to write theme file: %v", err)
	}
	t.Setenv(EnvThemeFile, themePath)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	// Verify theme was merged
	if cfg.ColorScheme.Accent != "#FF0000" {
		t.Errorf("Expected accent to be #FF0000, got %s", cfg.ColorScheme.Accent)
	}
	if cfg.ColorScheme.DragBorder != "#00FF00" {
		t.Errorf("Expected drag border to be #00FF00, got %s", cfg.ColorScheme.DragBorder)
	}
	if cfg.ColorScheme.DropTarget != "#0000FF" {
		t.Errorf("Expected drop target to be #0000FF, got %s", cfg.ColorScheme.DropTarget)
	}

	// Verify other colors still have defaults
	if cfg.ColorScheme.ErrorFg == "" {
		t.Error("Expected error_fg to have default value")
	}
}

func TestThemeFileMissingIsIgnored(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv(EnvThemeFile, filepath.Join(t.TempDir(), "missing.yaml"))

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.ColorScheme.Accent != colors.Default().Accent {
		t.Errorf("Accent = %s, want default", cfg.ColorScheme.Accent)
	}
}

func TestPresetFromConfigFile(t *testing.T) {
	writeConfig(t, `theme:
  preset: wave
  accent: "#123456"
`)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	wave := colors.Wave()
	if cfg.ColorScheme.Accent != "#123456" {
		t.Errorf("custom accent should win over preset, got %s", cfg.ColorScheme.Accent)
	}
	if cfg.ColorScheme.CardBorder != wave.CardBorder {
		t.Errorf("CardBorder = %s, want wave preset %s", cfg.ColorScheme.CardBorder, wave.CardBorder)
	}
}
