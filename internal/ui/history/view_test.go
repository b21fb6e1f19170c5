package history

import (
	"testing"
	"time"

	"pomodoro/internal/core/session"

	"fyne.io/fyne/v2/test"
	"fyne.io/fyne/v2/widget"
	"github.com/stretchr/testify/assert"
)

var started = time.Date(2024, time.March, 4, 9, 30, 5, 0, time.Local)

func TestFormatEntry(t *testing.T) {
	tests := []struct {
		name  string
		entry session.Entry
		want  string
	}{
		{
			name:  "work with goal",
			entry: session.Entry{Period: session.PeriodWork, Timestamp: started, Goal: "write report"},
			want:  "🍅 Work: 2024-03-04 09:30:05 - Goal: write report",
		},
		{
			name:  "work without goal",
			entry: session.Entry{Period: session.PeriodWork, Timestamp: started},
			want:  "🍅 Work: 2024-03-04 09:30:05",
		},
		{
			name:  "break",
			entry: session.Entry{Period: session.PeriodBreak, Timestamp: started.Add(25 * time.Minute), Goal: "write report"},
			want:  "☕ Break: 2024-03-04 09:55:05 - Goal: write report",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatEntry(tt.entry))
		})
	}
}

func TestViewSetEntries(t *testing.T) {
	test.NewTempApp(t)
	view := NewView()
	assert.Empty(t, renderedLines(view.list))

	entries := []session.Entry{
		{Period: session.PeriodWork, Timestamp: started, Goal: "plan"},
		{Period: session.PeriodBreak, Timestamp: started, Goal: "plan"},
	}
	view.SetEntries(entries)
	entries[0].Goal = "mutated"

	assert.Equal(t, []string{
		"🍅 Work: 2024-03-04 09:30:05 - Goal: plan",
		"☕ Break: 2024-03-04 09:30:05 - Goal: plan",
	}, renderedLines(view.list))
}

func renderedLines(list *widget.List) []string {
	lines := make([]string, 0, list.Length())
	for id := 0; id < list.Length(); id++ {
		item := list.CreateItem()
		list.UpdateItem(id, item)
		lines = append(lines, item.(*widget.Label).Text)
	}
	return lines
}
