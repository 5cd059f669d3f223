package paths

import (
	"os"
	"path/filepath"
)

const appName = "cuebridge"

func homeDir() string {
	if h := os.Getenv("HOME"); h != "" {
		return h
	}
	h, _ := os.UserHomeDir()
	return h
}

func xdgDir(envVar, fallbackSuffix string) string {
	if v := os.Getenv(envVar); v != "" {
		return filepath.Join(v, appName)
	}
	return filepath.Join(homeDir(), fallbackSuffix, appName)
}

// ConfigDir returns the cuebridge config directory ($XDG_CONFIG_HOME/cuebridge).
func ConfigDir() string {
	return xdgDir("XDG_CONFIG_HOME", ".config")
}

// StateDir returns the cuebridge state directory ($XDG_STATE_HOME/cuebridge).
// The device fingerprint lives here so it survives restarts.
func StateDir() string {
	return xdgDir("XDG_STATE_HOME", filepath.Join(".local", "state"))
}

// ConfigFile returns the path to config.toml.
func ConfigFile() string {
	return filepath.Join(ConfigDir(), "config.toml")
}

// FingerprintFile returns the default path of the persisted device fingerprint.
func FingerprintFile() string {
	return filepath.Join(StateDir(), "fingerprint")
}

// LockPathFor returns the lock file guarding path.
func LockPathFor(path string) string {
	return path + ".lock"
}

// EnsureDir creates a directory and parents if needed.
func EnsureDir(dir string) error {
	return os.MkdirAll(dir, 0700)
}
