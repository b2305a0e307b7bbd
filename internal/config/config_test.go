package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestSaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")

	cfg := &Config{DefaultProfile: "work", Theme: "light", DebounceMs: 150}
	if err := Save(path, cfg); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if loaded.DefaultProfile != "work" {
		t.Errorf("DefaultProfile = %q, want work", loaded.DefaultProfile)
	}
	if loaded.Theme != "light" {
		t.Errorf("Theme = %q, want light", loaded.Theme)
	}
	if loaded.Debounce() != 150*time.Millisecond {
		t.Errorf("Debounce() = %v, want 150ms", loaded.Debounce())
	}
}

func TestLoadMissing(t *testing.T) {
	// Callers treat a missing file as a zero config, so the error must
	// stay recognizable as not-exist.
	_, err := Load(filepath.Join(t.TempDir(), "config.toml"))
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("Load() error = %v, want fs.ErrNotExist", err)
	}
}

func TestLoadMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("theme = [broken"), 0600); err != nil {
		t.Fatal(err)
	}

	_, err := Load(path)
	if err == nil {
		t.Fatal("Load() expected error for malformed file")
	}
	if errors.Is(err, fs.ErrNotExist) {
		t.Errorf("Load() error = %v, must not look like a missing file", err)
	}
}

func TestDurationDefaults(t *testing.T) {
	var cfg Config
	if cfg.Debounce() != 300*time.Millisecond {
		t.Errorf("default Debounce() = %v, want 300ms", cfg.Debounce())
	}
	if cfg.HighlightTTL() != 3*time.Second {
		t.Errorf("default HighlightTTL() = %v, want 3s", cfg.HighlightTTL())
	}
}

func TestSavePermissions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")

	if err := Save(path, &Config{DefaultProfile: "main"}); err != nil {
		t.Fatal(err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if perm := info.Mode().Perm(); perm != 0600 {
		t.Errorf("file permission = %o, want 0600", perm)
	}
}
