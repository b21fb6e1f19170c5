package progress

import (
	"image/color"
	"math"
	"testing"

	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
)

const side = 200

func TestRingPixel(t *testing.T) {
	// Radius is side/2 - 8% of side; these points sit on the ring track.
	radius := side/2 - int(side*0.08)
	right := [2]int{side/2 + radius, side / 2}
	bottom := [2]int{side / 2, side/2 + radius}
	left := [2]int{side/2 - radius - 1, side / 2}

	tests := []struct {
		name     string
		point    [2]int
		progress float64
		want     color.Color
	}{
		{name: "center is empty", point: [2]int{side / 2, side / 2}, progress: 0.5, want: color.Transparent},
		{name: "corner is empty", point: [2]int{0, 0}, progress: 1, want: color.Transparent},
		{name: "unfilled track", point: right, progress: 0.1, want: trackColor},
		{name: "filled track", point: bottom, progress: 0.75, want: progressColor},
		{name: "full circle", point: left, progress: 1, want: progressColor},
		{name: "knob at quarter", point: right, progress: 0.25, want: knobColor},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ringPixel(tt.point[0], tt.point[1], side, side, tt.progress))
		})
	}
}

func TestRingPixelEmptyArea(t *testing.T) {
	assert.Equal(t, color.Transparent, ringPixel(0, 0, 0, 0, 0.5))
}

func TestRingSetProgressClamps(t *testing.T) {
	test.NewTempApp(t)
	ring := NewRing()

	ring.SetProgress(1.5)
	assert.Equal(t, 1.0, ring.Progress())

	ring.SetProgress(-0.2)
	assert.Equal(t, 0.0, ring.Progress())

	ring.SetProgress(math.NaN())
	assert.Equal(t, 0.0, ring.Progress())

	ring.SetProgress(0.4)
	assert.Equal(t, 0.4, ring.Progress())

	ring.SetText("12:00")
	assert.Equal(t, "12:00", ring.Text())
}

func TestRingRenders(t *testing.T) {
	test.NewTempApp(t)
	ring := NewRing()

	renderer := test.WidgetRenderer(ring)
	assert.NotEmpty(t, renderer.Objects())
	assert.GreaterOrEqual(t, ring.MinSize().Width, minRingSize)
}
