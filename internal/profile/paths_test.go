package profile

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDir(t *testing.T) {
	home, _ := os.UserHomeDir()
	got := Dir("main")
	want := filepath.Join(home, ".plume", "profiles", "main")
	if got != want {
		t.Errorf("Dir(main) = %q, want %q", got, want)
	}
}

func TestPrefsDBPath(t *testing.T) {
	got := PrefsDBPath("test")
	if !strings.HasSuffix(got, filepath.Join("profiles", "test", "prefs.db")) {
		t.Errorf("PrefsDBPath(test) = %q, want suffix profiles/test/prefs.db", got)
	}
}

func TestLogPath(t *testing.T) {
	got := LogPath("test")
	if !strings.HasSuffix(got, filepath.Join("test", "logs", "plume.log")) {
		t.Errorf("LogPath(test) = %q, want suffix test/logs/plume.log", got)
	}
}

func TestConfigPath(t *testing.T) {
	got := ConfigPath()
	if !strings.HasSuffix(got, filepath.Join(".plume", "config.toml")) {
		t.Errorf("ConfigPath() = %q, want suffix .plume/config.toml", got)
	}
}
