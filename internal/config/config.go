// Package config resolves git-profile's configuration directory and loads
// the optional settings file that lives next to the profile store.
package config

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	// DefaultConfigDir is the subdirectory under the per-OS user config directory.
	DefaultConfigDir = "git-profile"

	// EnvConfigDir overrides the configuration directory when set.
	EnvConfigDir = "GIT_PROFILE_CONFIG_DIR"

	storeFile    = "profiles.json"
	settingsFile = "config.yaml"
)

// userConfigDir is swapped in tests that exercise the no-home fallback.
var userConfigDir = os.UserConfigDir

// Dir returns the configuration directory for git-profile.
// It respects GIT_PROFILE_CONFIG_DIR, then the per-OS user config directory.
func Dir() (string, error) {
	if d := os.Getenv(EnvConfigDir); d != "" {
		return d, nil
	}
	base, err := userConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolving user config directory: %w", err)
	}
	return filepath.Join(base, DefaultConfigDir), nil
}

// StorePath returns the path to profiles.json.
func StorePath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, storeFile), nil
}

// SettingsPath returns the path to the optional config.yaml.
func SettingsPath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, settingsFile), nil
}
