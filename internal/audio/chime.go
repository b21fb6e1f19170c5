// Package audio plays the bundled transition chime.
package audio

import (
	"bytes"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/speaker"
	"github.com/gopxl/beep/v2/wav"
)

// speakerLatency is the output buffer length handed to the speaker.
const speakerLatency = 100 * time.Millisecond

// Chime decodes a WAV clip once and plays it without blocking the caller.
type Chime struct {
	clip    []byte
	logger  *slog.Logger
	enabled atomic.Bool

	once   sync.Once
	buffer *beep.Buffer
	err    error

	initOutput func(sampleRate beep.SampleRate, bufferSize int) error
	output     func(streamers ...beep.Streamer)
}

// NewChime creates a chime for the given WAV data.
func NewChime(clip []byte, logger *slog.Logger) *Chime {
	if logger == nil {
		logger = slog.Default()
	}
	chime := &Chime{
		clip:       clip,
		logger:     logger,
		initOutput: speaker.Init,
		output:     speaker.Play,
	}
	chime.enabled.Store(true)
	return chime
}

// SetEnabled turns playback on or off.
func (chime *Chime) SetEnabled(enabled bool) {
	chime.enabled.Store(enabled)
}

// Enabled reports whether Play produces sound.
func (chime *Chime) Enabled() bool {
	return chime.enabled.Load()
}

// Load decodes the clip and opens the audio device. It is safe to call repeatedly.
func (chime *Chime) Load() error {
	chime.once.Do(func() {
		chime.buffer, chime.err = chime.decode()
	})
	return chime.err
}

// Play starts the chime in the background. Failures are logged.
func (chime *Chime) Play() {
	if !chime.Enabled() {
		return
	}
	go func() {
		if err := chime.Load(); err != nil {
			chime.logger.Warn("chime unavailable", "error", err)
			return
		}
		chime.output(chime.buffer.Streamer(0, chime.buffer.Len()))
	}()
}

func (chime *Chime) decode() (*beep.Buffer, error) {
	streamer, format, err := wav.Decode(bytes.NewReader(chime.clip))
	if err != nil {
		return nil, fmt.Errorf("decode chime: %w", err)
	}
	defer streamer.Close()

	buffer := beep.NewBuffer(format)
	buffer.Append(streamer)
	if err := streamer.Err(); err != nil {
		return nil, fmt.Errorf("read chime: %w", err)
	}

	if err := chime.initOutput(format.SampleRate, format.SampleRate.N(speakerLatency)); err != nil {
		return nil, fmt.Errorf("init speaker: %w", err)
	}
	chime.logger.Debug("chime loaded", "sample_rate", int(format.SampleRate), "samples", buffer.Len())
	return buffer, nil
}
