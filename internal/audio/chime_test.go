package audio

import (
	"errors"
	"testing"
	"time"

	"pomodoro/resources"

	"github.com/gopxl/beep/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func bundledClip(t *testing.T) []byte {
	t.Helper()
	clip, err := resources.Sound(resources.Chime)
	require.NoError(t, err)
	return clip.Content()
}

func countSamples(streamer beep.Streamer) int {
	total := 0
	samples := make([][2]float64, 512)
	for {
		n, ok := streamer.Stream(samples)
		total += n
		if !ok {
			return total
		}
	}
}

func TestChimePlaysBundledClip(t *testing.T) {
	chime := NewChime(bundledClip(t), nil)

	var sampleRate beep.SampleRate
	chime.initOutput = func(rate beep.SampleRate, _ int) error {
		sampleRate = rate
		return nil
	}
	played := make(chan int, 1)
	chime.output = func(streamers ...beep.Streamer) {
		played <- countSamples(streamers[0])
	}

	require.NoError(t, chime.Load())
	assert.Equal(t, beep.SampleRate(22050), sampleRate)

	chime.Play()
	select {
	case samples := <-played:
		assert.Equal(t, chime.buffer.Len(), samples)
		assert.Greater(t, samples, 0)
	case <-time.After(2 * time.Second):
		t.Fatal("chime was not played")
	}
}

func TestChimeDisabled(t *testing.T) {
	chime := NewChime(bundledClip(t), nil)
	chime.initOutput = func(beep.SampleRate, int) error { return nil }
	played := make(chan struct{}, 1)
	chime.output = func(...beep.Streamer) { played <- struct{}{} }

	chime.SetEnabled(false)
	assert.False(t, chime.Enabled())
	chime.Play()

	select {
	case <-played:
		t.Fatal("disabled chime played")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestChimeInvalidClip(t *testing.T) {
	chime := NewChime([]byte("not a wav file"), nil)
	chime.initOutput = func(beep.SampleRate, int) error {
		t.Fatal("speaker initialised for invalid clip")
		return nil
	}

	err := chime.Load()
	assert.ErrorContains(t, err, "decode chime")
	assert.Equal(t, err, chime.Load())
}

func TestChimeSpeakerFailure(t *testing.T) {
	deviceErr := errors.New("no audio device")
	chime := NewChime(bundledClip(t), nil)
	chime.initOutput = func(beep.SampleRate, int) error { return deviceErr }

	assert.ErrorIs(t, chime.Load(), deviceErr)
}
