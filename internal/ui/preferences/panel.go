package preferences

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

// PanelCallbacks defines settings panel handlers.
type PanelCallbacks struct {
	// OnApply receives validated durations after "Set Time".
	OnApply func(Settings)
	// OnChimeChanged receives the settings after the chime box is toggled.
	OnChimeChanged func(Settings)
	// OnInvalid receives ErrInvalidDurationInput failures.
	OnInvalid func(error)
}

// Panel is the inline duration form of the main window.
type Panel struct {
	settings  Settings
	callbacks PanelCallbacks
	content   fyne.CanvasObject
	work      *widget.Entry
	short     *widget.Entry
	long      *widget.Entry
	chime     *widget.Check
	apply     *widget.Button
}

// NewPanel creates the duration form.
func NewPanel(settings Settings, callbacks PanelCallbacks) *Panel {
	panel := &Panel{
		settings:  settings,
		callbacks: callbacks,
		work:      widget.NewEntry(),
		short:     widget.NewEntry(),
		long:      widget.NewEntry(),
	}

	panel.chime = widget.NewCheck("Chime", nil)
	panel.chime.SetChecked(settings.ChimeEnabled)
	panel.chime.OnChanged = panel.handleChime
	panel.apply = widget.NewButton("Set Time", panel.handleApply)
	panel.fill(settings)

	panel.content = container.NewVBox(
		container.NewGridWithColumns(6,
			widget.NewLabel("Work:"), panel.work,
			widget.NewLabel("Break:"), panel.short,
			widget.NewLabel("Long Break:"), panel.long,
		),
		container.NewHBox(panel.apply, panel.chime),
	)
	return panel
}

// Content returns the canvas object to embed.
func (panel *Panel) Content() fyne.CanvasObject {
	return panel.content
}

func (panel *Panel) fill(settings Settings) {
	panel.work.SetText(MinutesText(settings.WorkDuration))
	panel.short.SetText(MinutesText(settings.ShortBreakDuration))
	panel.long.SetText(MinutesText(settings.LongBreakDuration))
}

func (panel *Panel) handleChime(enabled bool) {
	panel.settings.ChimeEnabled = enabled
	if panel.callbacks.OnChimeChanged != nil {
		panel.callbacks.OnChimeChanged(panel.settings)
	}
}

func (panel *Panel) handleApply() {
	input := DurationInput{
		Work:       panel.work.Text,
		ShortBreak: panel.short.Text,
		LongBreak:  panel.long.Text,
	}
	settings, err := input.Apply(panel.settings)
	if err != nil {
		if panel.callbacks.OnInvalid != nil {
			panel.callbacks.OnInvalid(err)
		}
		return
	}

	panel.settings = settings
	panel.fill(settings)
	if panel.callbacks.OnApply != nil {
		panel.callbacks.OnApply(settings)
	}
}
