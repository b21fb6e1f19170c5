package main

import (
	"log/slog"
	"os"

	"pomodoro/internal/audio"
	"pomodoro/internal/core/session"
	"pomodoro/internal/platform"
	"pomodoro/internal/storage"
	"pomodoro/internal/ui/preferences"
	"pomodoro/internal/ui/timerwindow"
	"pomodoro/internal/ui/tray"
	"pomodoro/resources"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/driver/desktop"
)

const appName = "Pomodoro"

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))

	guard, err := platform.AcquireSingleInstance(appName)
	if err != nil {
		logger.Info("handing off to running instance", "error", err)
		return
	}
	defer func() {
		_ = guard.Release()
	}()

	settings, err := storage.LoadSettings(appName)
	if err != nil {
		logger.Warn("load settings, using defaults", "error", err)
	}

	fyneApp := app.NewWithID("com.pomodoro.app")
	fyneApp.SetIcon(resources.StateIcon(true))

	controller := session.New(settings.Durations(), session.Config{})
	defer controller.Close()

	chime := newChime(logger)
	chime.SetEnabled(settings.ChimeEnabled)
	controller.SetPlayer(chime)

	var trayManager *tray.Manager
	desktopApp, hasTray := fyneApp.(desktop.App)

	timerWindow := timerwindow.New(fyneApp, controller, settings, timerwindow.Callbacks{
		OnSettingsChanged: func(updated preferences.Settings) {
			chime.SetEnabled(updated.ChimeEnabled)
			if err := storage.SaveSettings(appName, updated); err != nil {
				logger.Warn("save settings", "error", err)
			}
		},
		OnRunningChanged: func(running bool) {
			if trayManager == nil {
				return
			}
			trayManager.SetRunning(running)
			desktopApp.SetSystemTrayIcon(resources.StateIcon(running))
		},
	}, logger)

	if hasTray {
		trayManager = tray.New(desktopApp, tray.Callbacks{
			OnShow:   timerWindow.Show,
			OnToggle: timerWindow.ToggleRunning,
			OnReset:  timerWindow.ResetTimer,
			OnQuit:   fyneApp.Quit,
		})
		desktopApp.SetSystemTrayIcon(resources.StateIcon(false))
		timerWindow.Window().SetCloseIntercept(func() {
			timerWindow.Window().Hide()
		})
	} else {
		logger.Info("system tray unsupported on this platform")
	}

	guard.OnActivate(func() {
		fyne.Do(timerWindow.Show)
	})

	events := controller.Subscribe(32)
	go func() {
		for event := range events {
			event := event
			fyne.Do(func() {
				timerWindow.HandleEvent(event)
				if trayManager != nil && event.Type == session.EventTimeUpdate {
					trayManager.SetStatus(timerwindow.StateLabel(event.State) + " " + event.Display)
				}
			})
		}
	}()

	timerWindow.Show()
	fyneApp.Run()
}

func newChime(logger *slog.Logger) *audio.Chime {
	clip, err := resources.Sound(resources.Chime)
	if err != nil {
		logger.Error("chime clip missing", "error", err)
		return audio.NewChime(nil, logger)
	}
	chime := audio.NewChime(clip.Content(), logger)
	if err := chime.Load(); err != nil {
		logger.Warn("audio output unavailable", "error", err)
	}
	return chime
}
