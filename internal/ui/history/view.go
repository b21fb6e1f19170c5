// Package history renders the session log.
package history

import (
	"fmt"

	"pomodoro/internal/core/session"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/widget"
)

const timestampLayout = "2006-01-02 15:04:05"

// View is a scrolling list of session entries, oldest first.
type View struct {
	entries []session.Entry
	list    *widget.List
}

// NewView creates an empty history list.
func NewView() *View {
	view := &View{}
	view.list = widget.NewList(
		func() int {
			return len(view.entries)
		},
		func() fyne.CanvasObject {
			return widget.NewLabel("")
		},
		func(id widget.ListItemID, item fyne.CanvasObject) {
			if id < 0 || id >= len(view.entries) {
				return
			}
			item.(*widget.Label).SetText(FormatEntry(view.entries[id]))
		},
	)
	return view
}

// Content returns the canvas object to embed.
func (view *View) Content() fyne.CanvasObject {
	return view.list
}

// SetEntries replaces the displayed history and scrolls to the newest entry.
func (view *View) SetEntries(entries []session.Entry) {
	view.entries = append(view.entries[:0], entries...)
	view.list.Refresh()
	if len(view.entries) > 0 {
		view.list.ScrollToBottom()
	}
}

// FormatEntry renders one history line.
func FormatEntry(entry session.Entry) string {
	icon := "☕"
	if entry.Period == session.PeriodWork {
		icon = "🍅"
	}
	line := fmt.Sprintf("%s %s: %s", icon, entry.Period, entry.Timestamp.Format(timestampLayout))
	if entry.Goal != "" {
		line += " - Goal: " + entry.Goal
	}
	return line
}
