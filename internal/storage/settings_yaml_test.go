package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"pomodoro/internal/ui/preferences"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	settings, err := loadSettingsFrom(filepath.Join(t.TempDir(), "absent.yaml"))

	require.NoError(t, err)
	assert.Equal(t, preferences.DefaultSettings(), settings)
}

func TestSaveThenLoad(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "Pomodoro", settingsFileName)
	saved := preferences.Settings{
		WorkDuration:       50 * time.Minute,
		ShortBreakDuration: 10 * time.Minute,
		LongBreakDuration:  30 * time.Minute,
		ChimeEnabled:       false,
	}

	require.NoError(t, saveSettingsTo(configPath, saved))
	loaded, err := loadSettingsFrom(configPath)

	require.NoError(t, err)
	assert.Equal(t, saved, loaded)
}

func TestLoadIgnoresNonPositiveValues(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), settingsFileName)
	content := "work_minutes: 0\nshort_break_minutes: -4\nlong_break_minutes: 20\n"
	require.NoError(t, os.WriteFile(configPath, []byte(content), 0o644))

	settings, err := loadSettingsFrom(configPath)

	require.NoError(t, err)
	defaults := preferences.DefaultSettings()
	assert.Equal(t, defaults.WorkDuration, settings.WorkDuration)
	assert.Equal(t, defaults.ShortBreakDuration, settings.ShortBreakDuration)
	assert.Equal(t, 20*time.Minute, settings.LongBreakDuration)
	assert.True(t, settings.ChimeEnabled)
}

func TestLoadRejectsMalformedYaml(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), settingsFileName)
	require.NoError(t, os.WriteFile(configPath, []byte("work_minutes: [oops"), 0o644))

	settings, err := loadSettingsFrom(configPath)

	assert.ErrorContains(t, err, "parse settings yaml")
	assert.Equal(t, preferences.DefaultSettings(), settings)
}

func TestSettingsPath(t *testing.T) {
	path, err := SettingsPath("Pomodoro")
	if err != nil {
		t.Skipf("no config dir: %v", err)
	}
	assert.Equal(t, settingsFileName, filepath.Base(path))
	assert.Equal(t, "Pomodoro", filepath.Base(filepath.Dir(path)))
}
