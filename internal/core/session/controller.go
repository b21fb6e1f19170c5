package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"pomodoro/internal/core/model"
)

// ErrAlreadyRunning is returned by Start when the countdown is already active.
var ErrAlreadyRunning = errors.New("session already running")

// longBreakEvery is the number of completed work periods between long breaks.
const longBreakEvery = 4

// notifyBefore is how long before the end of a break the user is warned.
const notifyBefore = time.Minute

// Player plays the transition chime. Play must not block.
type Player interface {
	Play()
}

// Config contains runtime options for the Controller.
type Config struct {
	TickInterval time.Duration
	Sleep        func(ctx context.Context, duration time.Duration) bool
	Now          func() time.Time
}

// Controller is the Pomodoro period state machine.
type Controller struct {
	mu             sync.Mutex
	durations      model.Durations
	options        Config
	state          State
	remaining      time.Duration
	periodDuration time.Duration
	sessionCount   int
	completedWork  int
	running        bool
	started        bool
	notified       bool
	goal           string
	history        []Entry
	generation     uint64
	player         Player
	subscribers    []*mailbox
	closed         bool

	wake     chan struct{}
	ctx      context.Context
	cancel   context.CancelFunc
	loopDone chan struct{}
}

// New creates a Controller and launches its countdown task.
func New(durations model.Durations, options Config) *Controller {
	if options.TickInterval <= 0 {
		options.TickInterval = time.Second
	}
	if options.Sleep == nil {
		options.Sleep = sleepWithContext
	}
	if options.Now == nil {
		options.Now = time.Now
	}

	ctx, cancel := context.WithCancel(context.Background())
	controller := &Controller{
		durations: durations.Normalized(),
		options:   options,
		wake:      make(chan struct{}, 1),
		ctx:       ctx,
		cancel:    cancel,
		loopDone:  make(chan struct{}),
	}
	controller.resetLocked()

	go controller.run()
	return controller
}

// SetPlayer injects the chime played on every finish.
func (controller *Controller) SetPlayer(player Player) {
	controller.mu.Lock()
	defer controller.mu.Unlock()
	controller.player = player
}

// Subscribe registers a new observer channel.
// Events are never dropped; the channel is closed by Close.
func (controller *Controller) Subscribe(buffer int) <-chan Event {
	if buffer <= 0 {
		buffer = 1
	}
	box := newMailbox(buffer)
	controller.mu.Lock()
	defer controller.mu.Unlock()
	if controller.closed {
		box.close()
		return box.out
	}
	controller.subscribers = append(controller.subscribers, box)
	return box.out
}

// Start begins a work session with the given goal.
func (controller *Controller) Start(goal string) error {
	controller.mu.Lock()
	if controller.running {
		controller.mu.Unlock()
		return ErrAlreadyRunning
	}
	now := controller.options.Now()
	controller.running = true
	controller.started = true
	controller.goal = goal
	controller.history = append(controller.history, Entry{
		Period:    PeriodWork,
		Timestamp: now,
		Goal:      goal,
	})
	controller.emitLocked(Event{
		Type:   EventHistoryChanged,
		State:  controller.state,
		Period: PeriodWork,
		At:     now,
	})
	controller.emitTimeLocked(now)
	controller.mu.Unlock()

	controller.signal()
	return nil
}

// Toggle pauses a running countdown or resumes a paused one.
// It returns the new running state.
func (controller *Controller) Toggle() bool {
	controller.mu.Lock()
	controller.running = !controller.running
	running := controller.running
	if running {
		controller.started = true
	}
	controller.mu.Unlock()

	if running {
		controller.signal()
	}
	return running
}

// Reset returns to the beginning of a work period. History is kept.
func (controller *Controller) Reset() {
	controller.mu.Lock()
	defer controller.mu.Unlock()
	controller.resetLocked()
}

// SetDurations replaces the period durations and resets the timer.
func (controller *Controller) SetDurations(durations model.Durations) {
	controller.mu.Lock()
	defer controller.mu.Unlock()
	controller.durations = durations.Normalized()
	controller.resetLocked()
}

// SetGoal replaces the goal recorded with subsequent history entries.
func (controller *Controller) SetGoal(goal string) {
	controller.mu.Lock()
	defer controller.mu.Unlock()
	controller.goal = goal
}

// Durations returns the active period durations.
func (controller *Controller) Durations() model.Durations {
	controller.mu.Lock()
	defer controller.mu.Unlock()
	return controller.durations
}

// Snapshot returns a copy of the current state.
func (controller *Controller) Snapshot() Snapshot {
	controller.mu.Lock()
	defer controller.mu.Unlock()
	return Snapshot{
		State:          controller.state,
		Remaining:      controller.remaining,
		PeriodDuration: controller.periodDuration,
		Running:        controller.running,
		Started:        controller.started,
		SessionCount:   controller.sessionCount,
		CompletedWork:  controller.completedWork,
		Goal:           controller.goal,
	}
}

// History returns a copy of the session history, oldest first.
func (controller *Controller) History() []Entry {
	controller.mu.Lock()
	defer controller.mu.Unlock()
	return append([]Entry(nil), controller.history...)
}

// Close terminates the countdown task and closes observers.
func (controller *Controller) Close() {
	controller.mu.Lock()
	if controller.closed {
		controller.mu.Unlock()
		return
	}
	controller.closed = true
	controller.running = false
	subscribers := controller.subscribers
	controller.subscribers = nil
	controller.mu.Unlock()

	controller.cancel()
	<-controller.loopDone

	for _, box := range subscribers {
		box.close()
	}
}

func (controller *Controller) signal() {
	select {
	case controller.wake <- struct{}{}:
	default:
	}
}

func (controller *Controller) run() {
	defer close(controller.loopDone)
	for {
		select {
		case <-controller.ctx.Done():
			return
		case <-controller.wake:
		}
		for controller.step() {
		}
	}
}

// step advances the countdown by one tick and reports whether the loop should keep going.
func (controller *Controller) step() bool {
	controller.mu.Lock()
	if !controller.running {
		controller.mu.Unlock()
		return false
	}
	if controller.remaining <= 0 {
		controller.finishLocked(controller.options.Now())
		controller.mu.Unlock()
		return true
	}
	generation := controller.generation
	controller.mu.Unlock()

	if !controller.options.Sleep(controller.ctx, controller.options.TickInterval) {
		return false
	}

	controller.mu.Lock()
	defer controller.mu.Unlock()
	if generation != controller.generation {
		// Reset while sleeping; the tick belongs to the old period.
		return true
	}

	now := controller.options.Now()
	controller.remaining -= time.Second
	if controller.remaining < 0 {
		controller.remaining = 0
	}
	if controller.state != StateWork && controller.remaining == notifyBefore && !controller.notified {
		controller.notified = true
		controller.emitLocked(Event{
			Type:      EventNotifyUser,
			State:     controller.state,
			Remaining: controller.remaining,
			At:        now,
		})
	}
	controller.emitTimeLocked(now)

	if controller.remaining == 0 && controller.running {
		controller.finishLocked(now)
	}
	return true
}

func (controller *Controller) finishLocked(now time.Time) {
	controller.emitLocked(Event{
		Type:  EventFinish,
		State: controller.state,
		At:    now,
	})
	if controller.player != nil {
		controller.player.Play()
	}
	controller.transitionLocked(now)
}

func (controller *Controller) transitionLocked(now time.Time) {
	if controller.state == StateWork {
		controller.completedWork++
		controller.state = controller.nextBreakLocked()
	} else {
		controller.state = StateWork
		controller.goal = ""
	}
	controller.sessionCount++
	controller.notified = false

	period := controller.state.Period()
	controller.history = append(controller.history, Entry{
		Period:    period,
		Timestamp: now,
		Goal:      controller.goal,
	})

	controller.periodDuration = controller.durationLocked(controller.state)
	controller.remaining = controller.periodDuration
	controller.emitTimeLocked(now)

	controller.emitLocked(Event{
		Type:   EventHistoryChanged,
		State:  controller.state,
		Period: period,
		At:     now,
	})
	if controller.state == StateWork {
		controller.emitLocked(Event{
			Type:  EventGoalReset,
			State: controller.state,
			At:    now,
		})
	}
}

func (controller *Controller) resetLocked() {
	controller.generation++
	controller.state = StateWork
	controller.periodDuration = controller.durations.Work
	controller.remaining = controller.periodDuration
	controller.sessionCount = 0
	controller.completedWork = 0
	controller.notified = false
	if !controller.running {
		controller.started = false
	}
	controller.emitTimeLocked(controller.options.Now())
}

func (controller *Controller) nextBreakLocked() State {
	// Counts finished work periods; sessionCount is 7 when the first long break starts.
	if controller.completedWork > 0 && controller.completedWork%longBreakEvery == 0 {
		return StateLongBreak
	}
	return StateShortBreak
}

func (controller *Controller) durationLocked(state State) time.Duration {
	switch state {
	case StateShortBreak:
		return controller.durations.ShortBreak
	case StateLongBreak:
		return controller.durations.LongBreak
	default:
		return controller.durations.Work
	}
}

func (controller *Controller) emitTimeLocked(now time.Time) {
	controller.emitLocked(Event{
		Type:      EventTimeUpdate,
		State:     controller.state,
		Display:   FormatClock(controller.remaining),
		Progress:  controller.progressLocked(),
		Remaining: controller.remaining,
		At:        now,
	})
}

func (controller *Controller) progressLocked() float64 {
	total := controller.periodDuration
	if total <= 0 {
		return 1
	}
	progress := float64(total-controller.remaining) / float64(total)
	if progress < 0 {
		return 0
	}
	if progress > 1 {
		return 1
	}
	return progress
}

func (controller *Controller) emitLocked(event Event) {
	for _, box := range controller.subscribers {
		box.push(event)
	}
}

// FormatClock renders a duration as mm:ss.
func FormatClock(remaining time.Duration) string {
	if remaining < 0 {
		remaining = 0
	}
	seconds := int(remaining / time.Second)
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}

func sleepWithContext(ctx context.Context, duration time.Duration) bool {
	timer := time.NewTimer(duration)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
