// Package config handles configuration loading from files, defaults, and environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/pelletier/go-toml/v2"

	"github.com/javiermolinar/weekpulse/internal/llm"
	"github.com/javiermolinar/weekpulse/internal/locale"
	"github.com/javiermolinar/weekpulse/internal/tui/theme"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "WEEKPULSE_"

// Config holds the application configuration.
type Config struct {
	Storage StorageConfig `toml:"storage"`
	UI      UIConfig      `toml:"ui"`
	LLM     LLMConfig     `toml:"llm"`
}

// StorageConfig holds database settings.
type StorageConfig struct {
	DBPath string `toml:"db_path" env:"DB_PATH"`
}

// UIConfig holds TUI settings.
type UIConfig struct {
	Theme  string `toml:"theme" env:"UI_THEME"`   // "mocha", "macchiato", "frappe", "latte", "light"
	Locale string `toml:"locale" env:"UI_LOCALE"` // BCP 47 tag, e.g. "ko-KR"
	Mouse  bool   `toml:"mouse" env:"UI_MOUSE"`
}

// LLMConfig holds LLM provider settings.
type LLMConfig struct {
	Provider string `toml:"provider" env:"LLM_PROVIDER"` // "copilot", "ollama", "lmstudio"
	Model    string `toml:"model" env:"LLM_MODEL"`
	BaseURL  string `toml:"base_url" env:"LLM_BASE_URL"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Storage: StorageConfig{
			DBPath: defaultDBPath(),
		},
		UI: UIConfig{
			Theme:  "frappe",
			Locale: locale.DefaultTag,
			Mouse:  true,
		},
		LLM: LLMConfig{
			Provider: llm.ProviderCopilot,
			Model:    llm.DefaultModel,
		},
	}
}

// defaultDBPath returns the default database path.
func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "weekpulse.db"
	}
	return filepath.Join(home, ".local", "share", "weekpulse", "weekpulse.db")
}

// DefaultConfigPath returns the default config file path.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "config.toml"
	}
	return filepath.Join(home, ".config", "weekpulse", "config.toml")
}

// Load loads configuration from the default path, merging with defaults and env vars.
func Load() (*Config, error) {
	return LoadFrom(DefaultConfigPath())
}

// LoadFrom loads configuration from the specified path.
// It starts with defaults, overlays file config if it exists, then applies env overrides.
func LoadFrom(path string) (*Config, error) {
	cfg := Default()

	if err := loadFromFile(path, cfg); err != nil {
		return nil, err
	}

	if err := applyEnvOverrides(cfg); err != nil {
		return nil, err
	}

	cfg.Storage.DBPath = expandPath(cfg.Storage.DBPath)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// loadFromFile loads config from a file if it exists.
func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("reading config file: %w", err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parsing config file: %w", err)
	}

	return nil
}

// applyEnvOverrides overlays WEEKPULSE_* variables. Unset variables leave the field untouched.
func applyEnvOverrides(cfg *Config) error {
	if err := env.ParseWithOptions(cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// expandPath expands ~ to the user's home directory.
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return path
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Storage.DBPath == "" {
		return errors.New("db_path must be set")
	}
	if !theme.IsAvailable(c.UI.Theme) {
		return fmt.Errorf("unknown theme %q (available: %s)", c.UI.Theme, strings.Join(theme.Available(), ", "))
	}
	if c.UI.Locale != "" && !locale.Valid(c.UI.Locale) {
		return fmt.Errorf("invalid locale %q", c.UI.Locale)
	}
	if _, ok := llm.NormalizeProvider(c.LLM.Provider); !ok {
		return fmt.Errorf("unsupported llm provider %q (available: %s)", c.LLM.Provider, strings.Join(llm.Providers(), ", "))
	}
	return nil
}

// DataDir returns the directory holding the database file.
func (c *Config) DataDir() string {
	return filepath.Dir(c.Storage.DBPath)
}

// Save writes the configuration to the default path.
func (c *Config) Save() error {
	return c.SaveTo(DefaultConfigPath())
}

// SaveTo writes the configuration to the specified path.
func (c *Config) SaveTo(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}
