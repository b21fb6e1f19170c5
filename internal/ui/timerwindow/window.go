// Package timerwindow builds the main Pomodoro window.
package timerwindow

import (
	"errors"
	"log/slog"

	"pomodoro/internal/core/model"
	"pomodoro/internal/core/session"
	"pomodoro/internal/ui/history"
	"pomodoro/internal/ui/preferences"
	"pomodoro/internal/ui/progress"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

const (
	notifyTitle   = "Ready?"
	notifyMessage = "Your next work session starts in a minute. Please set your new goal."
	invalidTitle  = "Invalid Input"
	invalidText   = "Please enter valid numbers for all time fields."
)

// Controller is the part of the session controller the window drives.
type Controller interface {
	Start(goal string) error
	Toggle() bool
	Reset()
	SetDurations(durations model.Durations)
	SetGoal(goal string)
	Snapshot() session.Snapshot
	History() []session.Entry
}

// Callbacks defines window notifications to the application.
type Callbacks struct {
	OnSettingsChanged func(preferences.Settings)
	OnRunningChanged  func(running bool)
}

// Window manages the main timer UI.
type Window struct {
	window     fyne.Window
	controller Controller
	callbacks  Callbacks
	logger     *slog.Logger

	ring       *progress.Ring
	period     *widget.Label
	startStop  *widget.Button
	reset      *widget.Button
	goal       *widget.Entry
	panel      *preferences.Panel
	historyLog *history.View
}

// New creates the main window.
func New(app fyne.App, controller Controller, settings preferences.Settings, callbacks Callbacks, logger *slog.Logger) *Window {
	if logger == nil {
		logger = slog.Default()
	}
	timer := &Window{
		window:     app.NewWindow("Pomodoro Timer"),
		controller: controller,
		callbacks:  callbacks,
		logger:     logger,
		ring:       progress.NewRing(),
		period:     widget.NewLabelWithStyle("", fyne.TextAlignCenter, fyne.TextStyle{Bold: true}),
		goal:       widget.NewEntry(),
		historyLog: history.NewView(),
	}

	timer.startStop = widget.NewButtonWithIcon("Start", theme.MediaPlayIcon(), timer.ToggleRunning)
	timer.reset = widget.NewButtonWithIcon("Reset", theme.MediaReplayIcon(), timer.ResetTimer)
	timer.goal.SetPlaceHolder("Enter your goal here...")
	timer.goal.OnChanged = timer.handleGoalChanged
	timer.panel = preferences.NewPanel(settings, preferences.PanelCallbacks{
		OnApply:        timer.handleSettings,
		OnChimeChanged: timer.notifySettings,
		OnInvalid:      timer.handleInvalidInput,
	})

	controls := container.NewHBox(timer.startStop, timer.reset)
	top := container.NewVBox(
		timer.period,
		container.NewCenter(timer.ring),
		container.NewCenter(controls),
		timer.panel.Content(),
		timer.goal,
	)
	timer.window.SetContent(container.NewBorder(top, nil, nil, nil, timer.historyLog.Content()))
	timer.window.Resize(fyne.NewSize(500, 650))

	timer.render(controller.Snapshot())
	timer.historyLog.SetEntries(controller.History())
	return timer
}

// Window returns the underlying fyne window.
func (timer *Window) Window() fyne.Window {
	return timer.window
}

// Show displays the window.
func (timer *Window) Show() {
	timer.window.Show()
	timer.window.RequestFocus()
}

// ToggleRunning starts a new session, pauses, or resumes.
func (timer *Window) ToggleRunning() {
	snapshot := timer.controller.Snapshot()
	switch {
	case snapshot.Running:
		timer.controller.Toggle()
		timer.unlockGoal(false)
	case snapshot.Started:
		timer.controller.Toggle()
		timer.lockGoal()
	default:
		if err := timer.controller.Start(timer.goal.Text); err != nil && !errors.Is(err, session.ErrAlreadyRunning) {
			timer.logger.Error("start session", "error", err)
			return
		}
		timer.lockGoal()
	}
	timer.syncControls()
}

// ResetTimer returns the countdown to the start of a work period.
func (timer *Window) ResetTimer() {
	timer.controller.Reset()
	timer.unlockGoal(false)
	timer.render(timer.controller.Snapshot())
}

// HandleEvent applies a controller event. It must run on the fyne main goroutine.
func (timer *Window) HandleEvent(event session.Event) {
	switch event.Type {
	case session.EventTimeUpdate:
		timer.ring.SetProgress(event.Progress)
		timer.ring.SetText(event.Display)
		timer.period.SetText(StateLabel(event.State))
	case session.EventHistoryChanged:
		timer.historyLog.SetEntries(timer.controller.History())
	case session.EventGoalReset:
		timer.unlockGoal(true)
	case session.EventFinish:
		timer.syncControls()
	case session.EventNotifyUser:
		dialog.ShowInformation(notifyTitle, notifyMessage, timer.window)
	}
}

// StateLabel names a period for display.
func StateLabel(state session.State) string {
	switch state {
	case session.StateShortBreak:
		return "Short Break"
	case session.StateLongBreak:
		return "Long Break"
	default:
		return "Work"
	}
}

func (timer *Window) render(snapshot session.Snapshot) {
	timer.ring.SetProgress(progressOf(snapshot))
	timer.ring.SetText(session.FormatClock(snapshot.Remaining))
	timer.period.SetText(StateLabel(snapshot.State))
	timer.syncControls()
}

func (timer *Window) syncControls() {
	running := timer.controller.Snapshot().Running
	if running {
		timer.startStop.SetText("Stop")
		timer.startStop.SetIcon(theme.MediaPauseIcon())
	} else {
		timer.startStop.SetText("Start")
		timer.startStop.SetIcon(theme.MediaPlayIcon())
	}
	if timer.callbacks.OnRunningChanged != nil {
		timer.callbacks.OnRunningChanged(running)
	}
}

func (timer *Window) lockGoal() {
	timer.goal.Disable()
}

func (timer *Window) unlockGoal(clear bool) {
	timer.goal.Enable()
	if clear {
		timer.goal.SetText("")
	}
}

func (timer *Window) handleGoalChanged(goal string) {
	if timer.controller.Snapshot().Started {
		timer.controller.SetGoal(goal)
	}
}

func (timer *Window) handleSettings(settings preferences.Settings) {
	timer.controller.SetDurations(settings.Durations())
	timer.unlockGoal(false)
	timer.render(timer.controller.Snapshot())
	timer.notifySettings(settings)
}

func (timer *Window) notifySettings(settings preferences.Settings) {
	if timer.callbacks.OnSettingsChanged != nil {
		timer.callbacks.OnSettingsChanged(settings)
	}
}

func (timer *Window) handleInvalidInput(err error) {
	timer.logger.Warn("rejected duration input", "error", err)
	dialog.ShowInformation(invalidTitle, invalidText, timer.window)
}

func progressOf(snapshot session.Snapshot) float64 {
	if snapshot.PeriodDuration <= 0 {
		return 0
	}
	return float64(snapshot.PeriodDuration-snapshot.Remaining) / float64(snapshot.PeriodDuration)
}
