package model

import "time"

// Durations holds the length of each Pomodoro period.
type Durations struct {
	Work       time.Duration
	ShortBreak time.Duration
	LongBreak  time.Duration
}

// DefaultDurations returns the classic 25/5/15 minute schedule.
func DefaultDurations() Durations {
	return Durations{
		Work:       25 * time.Minute,
		ShortBreak: 5 * time.Minute,
		LongBreak:  15 * time.Minute,
	}
}

// Normalized truncates every duration to whole seconds and raises it to at least one second.
func (durations Durations) Normalized() Durations {
	return Durations{
		Work:       wholeSeconds(durations.Work),
		ShortBreak: wholeSeconds(durations.ShortBreak),
		LongBreak:  wholeSeconds(durations.LongBreak),
	}
}

func wholeSeconds(value time.Duration) time.Duration {
	value = value.Truncate(time.Second)
	if value < time.Second {
		return time.Second
	}
	return value
}
