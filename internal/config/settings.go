package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix is the prefix for environment overrides of settings keys,
// e.g. GIT_PROFILE_GIT_BINARY.
const EnvPrefix = "GIT_PROFILE"

// Settings holds tunables read from config.yaml and the environment.
type Settings struct {
	GitBinary string `mapstructure:"git_binary"`
	LogLevel  string `mapstructure:"log_level"`
}

// DefaultSettings returns the settings used when no file or env override exists.
func DefaultSettings() Settings {
	return Settings{
		GitBinary: "git",
		LogLevel:  "warn",
	}
}

// LoadSettings reads config.yaml from the config directory.
// A missing file is not an error; defaults and env overrides still apply.
func LoadSettings() (Settings, error) {
	path, err := SettingsPath()
	if err != nil {
		return Settings{}, err
	}
	return LoadSettingsFrom(path)
}

// LoadSettingsFrom reads settings from the given YAML file.
func LoadSettingsFrom(path string) (Settings, error) {
	defaults := DefaultSettings()

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetDefault("git_binary", defaults.GitBinary)
	v.SetDefault("log_level", defaults.LogLevel)

	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	_ = v.BindEnv("git_binary")
	_ = v.BindEnv("log_level")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, os.ErrNotExist) {
			return Settings{}, fmt.Errorf("reading settings %s: %w", path, err)
		}
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return Settings{}, fmt.Errorf("parsing settings: %w", err)
	}
	if strings.TrimSpace(s.GitBinary) == "" {
		s.GitBinary = defaults.GitBinary
	}
	return s, nil
}

// Level maps LogLevel onto a slog level. Unknown values fall back to warn.
func (s Settings) Level() slog.Level {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(s.LogLevel)); err != nil {
		return slog.LevelWarn
	}
	return lvl
}
