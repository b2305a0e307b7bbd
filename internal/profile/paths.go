package profile

import (
	"os"
	"path/filepath"
)

// BaseDir returns ~/.plume.
func BaseDir() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".plume")
}

// Dir returns the profile-specific directory.
func Dir(name string) string {
	return filepath.Join(BaseDir(), "profiles", name)
}

// PrefsDBPath returns the preferences database path for a profile.
func PrefsDBPath(name string) string {
	return filepath.Join(Dir(name), "prefs.db")
}

// LogDir returns the log directory for a profile.
func LogDir(name string) string {
	return filepath.Join(Dir(name), "logs")
}

// LogPath returns the application log file path for a profile.
func LogPath(name string) string {
	return filepath.Join(LogDir(name), "plume.log")
}

// ConfigPath returns the global config file path.
func ConfigPath() string {
	return filepath.Join(BaseDir(), "config.toml")
}

// EnsureDir creates the profile directory tree with owner-only permissions.
func EnsureDir(name string) error {
	for _, d := range []string{Dir(name), LogDir(name)} {
		if err := os.MkdirAll(d, 0700); err != nil {
			return err
		}
	}
	return nil
}
