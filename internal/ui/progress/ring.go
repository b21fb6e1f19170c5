// Package progress draws the circular countdown indicator.
package progress

import (
	"image/color"
	"math"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

const minRingSize = float32(250)

var (
	trackColor    = color.NRGBA{R: 0xC0, G: 0xC0, B: 0xC0, A: 0xFF}
	progressColor = color.NRGBA{R: 0x00, G: 0x7A, B: 0xFF, A: 0xFF}
	knobColor     = color.NRGBA{R: 0x00, G: 0x9A, B: 0xFF, A: 0xFF}
)

// Ring is a circular progress indicator with a centered caption.
//
// Progress runs clockwise from twelve o'clock; 1 is a full circle.
type Ring struct {
	widget.BaseWidget

	progress float64
	raster   *canvas.Raster
	label    *canvas.Text
}

// NewRing creates an empty ring.
func NewRing() *Ring {
	ring := &Ring{}
	ring.raster = canvas.NewRasterWithPixels(func(x, y, w, h int) color.Color {
		return ringPixel(x, y, w, h, ring.progress)
	})
	ring.raster.SetMinSize(fyne.NewSize(minRingSize, minRingSize))

	ring.label = canvas.NewText("--:--", theme.Color(theme.ColorNameForeground))
	ring.label.Alignment = fyne.TextAlignCenter
	ring.label.TextStyle = fyne.TextStyle{Bold: true}
	ring.label.TextSize = 30

	ring.ExtendBaseWidget(ring)
	return ring
}

// SetProgress updates the filled fraction, clamped to [0, 1].
func (ring *Ring) SetProgress(progress float64) {
	ring.progress = clamp(progress)
	ring.raster.Refresh()
}

// Progress returns the filled fraction.
func (ring *Ring) Progress() float64 {
	return ring.progress
}

// SetText replaces the caption.
func (ring *Ring) SetText(text string) {
	ring.label.Text = text
	ring.label.Refresh()
}

// Text returns the caption.
func (ring *Ring) Text() string {
	return ring.label.Text
}

// CreateRenderer implements fyne.Widget.
func (ring *Ring) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(container.NewStack(ring.raster, container.NewCenter(ring.label)))
}

func ringPixel(x, y, w, h int, progress float64) color.Color {
	size := math.Min(float64(w), float64(h))
	if size <= 0 {
		return color.Transparent
	}
	thickness := size * 0.02
	radius := size/2 - size*0.08
	centerX, centerY := float64(w)/2, float64(h)/2
	dx, dy := float64(x)+0.5-centerX, float64(y)+0.5-centerY

	sweep := progress * 2 * math.Pi
	knobX := centerX + radius*math.Sin(sweep)
	knobY := centerY - radius*math.Cos(sweep)
	if math.Hypot(float64(x)+0.5-knobX, float64(y)+0.5-knobY) <= thickness*1.6 {
		return knobColor
	}

	if math.Abs(math.Hypot(dx, dy)-radius) > thickness {
		return color.Transparent
	}
	angle := math.Atan2(dx, -dy)
	if angle < 0 {
		angle += 2 * math.Pi
	}
	if angle <= sweep {
		return progressColor
	}
	return trackColor
}

func clamp(progress float64) float64 {
	if progress < 0 || math.IsNaN(progress) {
		return 0
	}
	if progress > 1 {
		return 1
	}
	return progress
}
