package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
)

// Config represents the global ~/.plume/config.toml.
type Config struct {
	DefaultProfile string `toml:"default_profile"`
	Theme          string `toml:"theme"` // "dark" or "light"; prefs override wins
	DebounceMs     int    `toml:"debounce_ms"`
	HighlightTTLMs int    `toml:"highlight_ttl_ms"`
}

// Debounce returns the search input quiet window, defaulting to 300ms.
func (c *Config) Debounce() time.Duration {
	if c.DebounceMs <= 0 {
		return 300 * time.Millisecond
	}
	return time.Duration(c.DebounceMs) * time.Millisecond
}

// HighlightTTL returns how long a navigated-to search match stays
// highlighted, defaulting to 3s.
func (c *Config) HighlightTTL() time.Duration {
	if c.HighlightTTLMs <= 0 {
		return 3 * time.Second
	}
	return time.Duration(c.HighlightTTLMs) * time.Millisecond
}

// Load reads config from the given path. Returns an error if the file
// is missing; callers fall back to a zero Config.
func Load(path string) (*Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Save writes config to the given path, creating parent dirs as needed.
func Save(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return err
	}
	encErr := toml.NewEncoder(f).Encode(cfg)
	if closeErr := f.Close(); closeErr != nil && encErr == nil {
		return closeErr
	}
	return encErr
}
