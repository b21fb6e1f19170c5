package session

import "time"

// State represents the active period of the controller.
type State string

const (
	StateWork       State = "work"
	StateShortBreak State = "short_break"
	StateLongBreak  State = "long_break"
)

// Period is the kind of a history entry.
type Period string

const (
	PeriodWork  Period = "Work"
	PeriodBreak Period = "Break"
)

// Period reports whether the state is a work or break period.
func (state State) Period() Period {
	if state == StateWork {
		return PeriodWork
	}
	return PeriodBreak
}

// EventType defines the type of controller event.
type EventType string

const (
	EventTimeUpdate     EventType = "time_update"
	EventFinish         EventType = "finish"
	EventHistoryChanged EventType = "history_changed"
	EventGoalReset      EventType = "goal_reset"
	EventNotifyUser     EventType = "notify_user"
)

// Event represents a controller update for observers.
//
// Display and Progress are set on time updates; Period is set on history changes.
type Event struct {
	Type      EventType
	State     State
	Period    Period
	Display   string
	Progress  float64
	Remaining time.Duration
	At        time.Time
}

// Entry is one record of a period having started.
type Entry struct {
	Period    Period
	Timestamp time.Time
	Goal      string
}

// Snapshot is a consistent copy of the controller state.
type Snapshot struct {
	State          State
	Remaining      time.Duration
	PeriodDuration time.Duration
	Running        bool
	Started        bool
	SessionCount   int
	CompletedWork  int
	Goal           string
}

// IsWork reports whether the active period is a work period.
func (snapshot Snapshot) IsWork() bool {
	return snapshot.State == StateWork
}
