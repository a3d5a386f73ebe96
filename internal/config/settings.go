// Package config persists application settings as a JSON document.
package config

import (
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/danielrosehill/voicenote/internal/quality"
)

// Settings is the persisted application state. Malformed or missing files
// silently fall back to defaults; every change is written back immediately.
type Settings struct {
	DefaultSavePath string `mapstructure:"default_save_path" json:"default_save_path" yaml:"default_save_path"`
	PreferredDevice string `mapstructure:"preferred_device" json:"preferred_device" yaml:"preferred_device"`
	QualityPreset   string `mapstructure:"quality_preset" json:"quality_preset" yaml:"quality_preset"`
}

// DefaultPath returns the standard settings file location.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, ".config", "voicenote", "settings.json")
}

// DefaultSettings returns the settings used when nothing is persisted yet.
func DefaultSettings() Settings {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return Settings{
		DefaultSavePath: filepath.Join(home, "Voice Notes"),
		QualityPreset:   string(quality.DefaultPreset),
	}
}

// Load reads settings from path. Any read or parse failure yields defaults.
func Load(path string) Settings {
	settings := DefaultSettings()

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("json")
	if err := v.ReadInConfig(); err != nil {
		slog.Debug("Using default settings", "path", path, "reason", err)
		return DefaultSettings()
	}
	if err := v.Unmarshal(&settings); err != nil {
		slog.Warn("Ignoring malformed settings file", "path", path, "error", err)
		return DefaultSettings()
	}

	if settings.DefaultSavePath == "" {
		settings.DefaultSavePath = DefaultSettings().DefaultSavePath
	}
	settings.QualityPreset = string(quality.ParsePreset(settings.QualityPreset))
	return settings
}

// Save writes the settings document to path, creating parent directories.
func (s Settings) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("json")
	v.Set("default_save_path", s.DefaultSavePath)
	v.Set("preferred_device", s.PreferredDevice)
	v.Set("quality_preset", s.QualityPreset)
	return v.WriteConfigAs(path)
}

// Profile resolves the configured quality preset to its profile.
func (s Settings) Profile() quality.Profile {
	profile, err := quality.ForPreset(quality.ParsePreset(s.QualityPreset))
	if err != nil {
		return quality.Default()
	}
	return profile
}
