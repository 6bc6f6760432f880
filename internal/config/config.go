package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Defaults for the fields the config file may leave out
const (
	DefaultBaseURL         = "http://localhost:8080"
	DefaultTimeout         = 10 * time.Second
	DefaultRefreshInterval = 30 * time.Second
	DefaultLogLevel        = "info"
)

// Environment overrides, applied after the config file
const (
	EnvAPIURL    = "KODO_API_URL"
	EnvAPIToken  = "KODO_API_TOKEN"
	EnvThemeFile = "KODO_THEME_FILE"
)

// Config represents the application configuration
type Config struct {
	API             APIConfig     `yaml:"api"`
	Cache           CacheConfig   `yaml:"cache"`
	RefreshInterval time.Duration `yaml:"refresh_interval"` // negative disables auto refresh
	LogLevel        string        `yaml:"log_level"`
	KeyMappings     KeyMappings   `yaml:"key_mappings"`
	ColorScheme     ColorScheme   `yaml:"theme"`
}

// APIConfig locates the kodo server
type APIConfig struct {
	BaseURL string        `yaml:"base_url"`
	Token   string        `yaml:"token,omitempty"`
	Timeout time.Duration `yaml:"timeout"`
}

// CacheConfig controls the local sqlite snapshot cache and move log
type CacheConfig struct {
	Enabled *bool  `yaml:"enabled,omitempty"` // nil means enabled
	Path    string `yaml:"path,omitempty"`    // empty means ~/.kodo/kodo.db
}

// Default returns the configuration used when no file exists
func Default() *Config {
	config := &Config{}
	config.applyDefaults()
	return config
}

// loadThemeFile loads and merges theme from KODO_THEME_FILE environment variable
func loadThemeFile(config *Config) {
	themeFile := os.Getenv(EnvThemeFile)
	if themeFile == "" {
		return
	}

	themeData, err := os.ReadFile(themeFile)
	if err != nil {
		slog.Warn("failed to read theme file", "path", themeFile, "error", err)
		return
	}

	var themeConfig struct {
		Theme ColorScheme `yaml:"theme"`
	}

	if err := yaml.Unmarshal(themeData, &themeConfig); err != nil {
		slog.Warn("failed to parse theme file", "path", themeFile, "error", err)
		return
	}
	config.ColorScheme.MergeFrom(themeConfig.Theme)
}

// applyEnv applies the server overrides from the environment
func applyEnv(config *Config) {
	if url := os.Getenv(EnvAPIURL); url != "" {
		config.API.BaseURL = url
	}
	if token := os.Getenv(EnvAPIToken); token != "" {
		config.API.Token = token
	}
}

// Load loads config from the user's config directory
// Returns default config if file doesn't exist
func Load() (*Config, error) {
	configPath, err := Path()
	if err != nil {
		// Return default config if we can't determine config path
		config := Default()
		loadThemeFile(config)
		applyEnv(config)
		return config, nil
	}
	return LoadFrom(configPath)
}

// LoadFrom loads config from path. A missing file yields the defaults.
func LoadFrom(configPath string) (*Config, error) {
	var config Config

	data, err := os.ReadFile(configPath)
	switch {
	case os.IsNotExist(err):
		// Defaults only
	case err != nil:
		return nil, err
	default:
		if err := yaml.Unmarshal(data, &config); err != nil {
			return nil, fmt.Errorf("parse %s: %w", configPath, err)
		}
	}

	// Fill in any missing values with defaults
	config.applyDefaults()

	// Load theme from KODO_THEME_FILE if set
	loadThemeFile(&config)
	applyEnv(&config)

	return &config, nil
}

// Save saves the config to the user's config directory
func (c *Config) Save() error {
	configPath, err := Path()
	if err != nil {
		return err
	}

	// Create config directory if it doesn't exist
	configDir := filepath.Dir(configPath)
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return err
	}

	// Marshal to YAML
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	// Token may be present; keep the file private
	return os.WriteFile(configPath, data, 0o600)
}

// Path returns the path to the config file
func Path() (string, error) {
	// Try XDG_CONFIG_HOME first
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, "kodo", "config.yaml"), nil
	}

	// Fall back to ~/.config
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(homeDir, ".config", "kodo", "config.yaml"), nil
}

// CacheEnabled reports whether the sqlite cache should be opened
func (c *Config) CacheEnabled() bool {
	return c.Cache.Enabled == nil || *c.Cache.Enabled
}

// SlogLevel maps log_level to a slog level. Unknown values fall back to info.
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// applyDefaults fills in missing configuration with defaults
func (c *Config) applyDefaults() {
	if c.API.BaseURL == "" {
		c.API.BaseURL = DefaultBaseURL
	}
	if c.API.Timeout <= 0 {
		c.API.Timeout = DefaultTimeout
	}
	if c.RefreshInterval == 0 {
		c.RefreshInterval = DefaultRefreshInterval
	}
	if c.LogLevel == "" {
		c.LogLevel = DefaultLogLevel
	}
	c.KeyMappings.applyDefaults()
	c.ColorScheme.ApplyDefaults()
}
