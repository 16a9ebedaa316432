// Package sound plays the short tones that accompany a press and a release.
package sound

import (
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/speaker"
)

const sampleRate = beep.SampleRate(44100)

// fadeSamples smooths the start and end of a tone to avoid clicks.
const fadeSamples = 256

// Chime emits press and release tones. The zero value is silent.
type Chime struct {
	pressHz, releaseHz float64
	length             int
	gain               float64
	ready              bool
	log                *slog.Logger
}

// Options describes the tones.
type Options struct {
	PressHz, ReleaseHz float64
	Duration           time.Duration
	Gain               float64
}

// Open initializes the speaker. If the audio device is unavailable the error
// is returned together with a silent Chime so callers can carry on.
func Open(opts Options, logger *slog.Logger) (*Chime, error) {
	if logger == nil {
		logger = slog.Default()
	}
	c := &Chime{
		pressHz:   opts.PressHz,
		releaseHz: opts.ReleaseHz,
		length:    sampleRate.N(opts.Duration),
		gain:      opts.Gain,
		log:       logger,
	}
	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/20)); err != nil {
		return c, fmt.Errorf("init speaker: %w", err)
	}
	c.ready = true
	logger.Debug("speaker ready", "rate", int(sampleRate))
	return c, nil
}

// Press plays the higher tone.
func (c *Chime) Press() { c.play(c.pressHz) }

// Release plays the lower tone.
func (c *Chime) Release() { c.play(c.releaseHz) }

func (c *Chime) play(hz float64) {
	if c == nil || !c.ready {
		return
	}
	speaker.Play(Tone(hz, c.length, c.gain))
}

// Tone is a sine wave of n samples at the given frequency and peak amplitude,
// with short linear fades at both ends.
func Tone(hz float64, n int, gain float64) beep.Streamer {
	step := 2 * math.Pi * hz / float64(sampleRate)
	fade := fadeSamples
	if n < 2*fade {
		fade = n / 2
	}
	pos := 0
	tone := beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		for i := range samples {
			env := 1.0
			if fade > 0 {
				if pos < fade {
					env = float64(pos) / float64(fade)
				} else if rem := n - pos; rem < fade {
					env = float64(rem) / float64(fade)
				}
			}
			v := gain * env * math.Sin(step*float64(pos))
			samples[i][0], samples[i][1] = v, v
			pos++
		}
		return len(samples), true
	})
	return beep.Take(n, tone)
}
