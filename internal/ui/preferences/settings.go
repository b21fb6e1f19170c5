package preferences

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"pomodoro/internal/core/model"
)

// maxMinutes caps a single period at one day.
const maxMinutes = 24 * 60

// ErrInvalidDurationInput indicates a duration field is not a whole number
// or exceeds maxMinutes.
var ErrInvalidDurationInput = errors.New("invalid duration input")

// Settings defines editable user preferences.
type Settings struct {
	WorkDuration       time.Duration
	ShortBreakDuration time.Duration
	LongBreakDuration  time.Duration
	ChimeEnabled       bool
}

// DefaultSettings returns default settings for the timer.
func DefaultSettings() Settings {
	durations := model.DefaultDurations()
	return Settings{
		WorkDuration:       durations.Work,
		ShortBreakDuration: durations.ShortBreak,
		LongBreakDuration:  durations.LongBreak,
		ChimeEnabled:       true,
	}
}

// Durations converts settings to controller durations.
func (settings Settings) Durations() model.Durations {
	return model.Durations{
		Work:       settings.WorkDuration,
		ShortBreak: settings.ShortBreakDuration,
		LongBreak:  settings.LongBreakDuration,
	}
}

// DurationInput holds the raw minute fields typed by the user.
type DurationInput struct {
	Work       string
	ShortBreak string
	LongBreak  string
}

// Apply parses the minute fields into settings.
// An empty field falls back to the default and values below one are clamped to one minute.
// On error the returned settings are the unchanged input settings.
func (input DurationInput) Apply(settings Settings) (Settings, error) {
	defaults := DefaultSettings()

	work, err := parseMinutes("work", input.Work, defaults.WorkDuration)
	if err != nil {
		return settings, err
	}
	shortBreak, err := parseMinutes("break", input.ShortBreak, defaults.ShortBreakDuration)
	if err != nil {
		return settings, err
	}
	longBreak, err := parseMinutes("long break", input.LongBreak, defaults.LongBreakDuration)
	if err != nil {
		return settings, err
	}

	settings.WorkDuration = work
	settings.ShortBreakDuration = shortBreak
	settings.LongBreakDuration = longBreak
	return settings, nil
}

// MinutesText renders a duration as a whole number of minutes for an entry field.
func MinutesText(value time.Duration) string {
	return strconv.Itoa(int(value / time.Minute))
}

func parseMinutes(field, value string, fallback time.Duration) (time.Duration, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return fallback, nil
	}
	minutes, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%s minutes %q: %w", field, value, ErrInvalidDurationInput)
	}
	if minutes > maxMinutes {
		return 0, fmt.Errorf("%s minutes %d above %d: %w", field, minutes, maxMinutes, ErrInvalidDurationInput)
	}
	if minutes < 1 {
		minutes = 1
	}
	return time.Duration(minutes) * time.Minute, nil
}
