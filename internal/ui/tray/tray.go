package tray

import (
	"fmt"

	"fyne.io/fyne/v2"
)

const menuTitle = "Pomodoro"

// App is the tray capability of a desktop.App.
type App interface {
	SetSystemTrayMenu(menu *fyne.Menu)
}

// Callbacks defines tray action handlers.
type Callbacks struct {
	OnShow   func()
	OnToggle func()
	OnReset  func()
	OnQuit   func()
}

// Manager handles system tray state.
type Manager struct {
	app         App
	statusItem  *fyne.MenuItem
	toggleItem  *fyne.MenuItem
	callbacks   Callbacks
	running     bool
	statusLabel string
}

// New creates a tray manager with the provided callbacks.
func New(app App, callbacks Callbacks) *Manager {
	manager := &Manager{
		app:         app,
		callbacks:   callbacks,
		statusLabel: "ready",
	}

	manager.statusItem = fyne.NewMenuItem("", nil)
	manager.statusItem.Disabled = true
	manager.toggleItem = fyne.NewMenuItem("", func() {
		invoke(manager.callbacks.OnToggle)
	})

	manager.refreshStatus()
	manager.refreshToggle()
	manager.refreshMenu()
	return manager
}

// SetStatus updates the status label.
func (manager *Manager) SetStatus(status string) {
	if status == manager.statusLabel {
		return
	}
	manager.statusLabel = status
	manager.refreshStatus()
	manager.refreshMenu()
}

// SetRunning updates the start/stop item.
func (manager *Manager) SetRunning(running bool) {
	if running == manager.running {
		return
	}
	manager.running = running
	manager.refreshToggle()
	manager.refreshStatus()
	manager.refreshMenu()
}

func (manager *Manager) refreshStatus() {
	status := manager.statusLabel
	if !manager.running {
		status = fmt.Sprintf("%s (paused)", status)
	}
	manager.statusItem.Label = fmt.Sprintf("Status: %s", status)
}

func (manager *Manager) refreshToggle() {
	if manager.running {
		manager.toggleItem.Label = "Stop"
	} else {
		manager.toggleItem.Label = "Start"
	}
}

func (manager *Manager) refreshMenu() {
	if manager.app == nil {
		return
	}
	manager.app.SetSystemTrayMenu(fyne.NewMenu(menuTitle,
		manager.statusItem,
		fyne.NewMenuItem("Show Timer", func() {
			invoke(manager.callbacks.OnShow)
		}),
		manager.toggleItem,
		fyne.NewMenuItem("Reset", func() {
			invoke(manager.callbacks.OnReset)
		}),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Quit", func() {
			invoke(manager.callbacks.OnQuit)
		}),
	))
}

func invoke(handler func()) {
	if handler != nil {
		handler()
	}
}
