// Package dirs resolves the per-user directories ytgrab writes to, following
// the XDG base directory spec on Linux and the platform conventions elsewhere.
package dirs

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
)

const appName = "ytgrab"

// AppName returns the canonical application name for directory paths.
func AppName() string {
	return appName
}

// linuxXDG resolves an XDG base dir: the env var when set, otherwise the
// given fallback path segments under $HOME.
func linuxXDG(envVar string, fallback ...string) (string, error) {
	if v := os.Getenv(envVar); v != "" {
		return filepath.Join(v, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	parts := append([]string{home}, fallback...)
	return filepath.Join(append(parts, appName)...), nil
}

func darwinAppSupport(sub ...string) (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	parts := []string{home, "Library", "Application Support", appName}
	return filepath.Join(append(parts, sub...)...), nil
}

// ConfigDir returns the app's configuration directory.
func ConfigDir() (string, error) {
	switch runtime.GOOS {
	case "darwin":
		return darwinAppSupport()
	case "linux":
		return linuxXDG("XDG_CONFIG_HOME", ".config")
	default:
		cfg, err := os.UserConfigDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(cfg, appName), nil
	}
}

// DataDir returns the app's data directory.
func DataDir() (string, error) {
	switch runtime.GOOS {
	case "darwin":
		return darwinAppSupport()
	case "linux":
		return linuxXDG("XDG_DATA_HOME", ".local", "share")
	default:
		cfg, err := os.UserConfigDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(cfg, appName), nil
	}
}

// CacheDir returns the app's cache directory.
func CacheDir() (string, error) {
	switch runtime.GOOS {
	case "darwin":
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, "Library", "Caches", appName), nil
	case "linux":
		return linuxXDG("XDG_CACHE_HOME", ".cache")
	default:
		c, err := os.UserCacheDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(c, appName), nil
	}
}

// StateDir returns the app's state directory, which holds the download
// history database.
func StateDir() (string, error) {
	switch runtime.GOOS {
	case "darwin":
		return darwinAppSupport("state")
	case "linux":
		return linuxXDG("XDG_STATE_HOME", ".local", "state")
	default:
		if la := os.Getenv("LOCALAPPDATA"); la != "" {
			return filepath.Join(la, appName, "state"), nil
		}
		cfg, err := ConfigDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(cfg, "state"), nil
	}
}

// HistoryDBPath returns the path of the download history database.
func HistoryDBPath() (string, error) {
	s, err := StateDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(s, "history.db"), nil
}

// DefaultOutputDir returns the default download directory under the data dir.
func DefaultOutputDir() (string, error) {
	d, err := DataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(d, "downloads"), nil
}

// Ensure creates the directory if it doesn't exist.
func Ensure(path string) error {
	if path == "" {
		return errors.New("empty path")
	}
	return os.MkdirAll(path, 0o755)
}

// EnsureAll ensures config, data, cache, and state dirs exist.
func EnsureAll() error {
	for _, fn := range []func() (string, error){ConfigDir, DataDir, CacheDir, StateDir} {
		p, err := fn()
		if err != nil {
			continue
		}
		if err := Ensure(p); err != nil {
			return err
		}
	}
	return nil
}
