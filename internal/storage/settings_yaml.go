package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"pomodoro/internal/platform"
	"pomodoro/internal/ui/preferences"

	"gopkg.in/yaml.v3"
)

const settingsFileName = "settings.yaml"

type yamlSettings struct {
	WorkMinutes       int   `yaml:"work_minutes"`
	ShortBreakMinutes int   `yaml:"short_break_minutes"`
	LongBreakMinutes  int   `yaml:"long_break_minutes"`
	ChimeEnabled      *bool `yaml:"chime_enabled,omitempty"`
}

// LoadSettings reads user preferences from YAML.
// If the config file does not exist, default settings are returned.
func LoadSettings(appName string) (preferences.Settings, error) {
	configPath, err := SettingsPath(appName)
	if err != nil {
		return preferences.DefaultSettings(), err
	}
	return loadSettingsFrom(configPath)
}

// SaveSettings writes user preferences to YAML.
func SaveSettings(appName string, settings preferences.Settings) error {
	configPath, err := SettingsPath(appName)
	if err != nil {
		return err
	}
	return saveSettingsTo(configPath, settings)
}

// SettingsPath returns the location of the settings file.
func SettingsPath(appName string) (string, error) {
	configDir, err := platform.ConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve user config dir: %w", err)
	}
	return filepath.Join(configDir, appName, settingsFileName), nil
}

func loadSettingsFrom(configPath string) (preferences.Settings, error) {
	settings := preferences.DefaultSettings()

	rawData, err := os.ReadFile(configPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return settings, nil
		}
		return settings, fmt.Errorf("read settings file: %w", err)
	}

	var fileData yamlSettings
	if err := yaml.Unmarshal(rawData, &fileData); err != nil {
		return settings, fmt.Errorf("parse settings yaml: %w", err)
	}

	applyYamlSettings(&settings, fileData)
	return settings, nil
}

func saveSettingsTo(configPath string, settings preferences.Settings) error {
	if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	chimeEnabled := settings.ChimeEnabled
	fileData := yamlSettings{
		WorkMinutes:       int(settings.WorkDuration / time.Minute),
		ShortBreakMinutes: int(settings.ShortBreakDuration / time.Minute),
		LongBreakMinutes:  int(settings.LongBreakDuration / time.Minute),
		ChimeEnabled:      &chimeEnabled,
	}

	serialized, err := yaml.Marshal(fileData)
	if err != nil {
		return fmt.Errorf("marshal settings yaml: %w", err)
	}

	if err := os.WriteFile(configPath, serialized, 0o644); err != nil {
		return fmt.Errorf("write settings file: %w", err)
	}

	return nil
}

func applyYamlSettings(settings *preferences.Settings, fileData yamlSettings) {
	if fileData.WorkMinutes > 0 {
		settings.WorkDuration = time.Duration(fileData.WorkMinutes) * time.Minute
	}
	if fileData.ShortBreakMinutes > 0 {
		settings.ShortBreakDuration = time.Duration(fileData.ShortBreakMinutes) * time.Minute
	}
	if fileData.LongBreakMinutes > 0 {
		settings.LongBreakDuration = time.Duration(fileData.LongBreakMinutes) * time.Minute
	}
	if fileData.ChimeEnabled != nil {
		settings.ChimeEnabled = *fileData.ChimeEnabled
	}
}
