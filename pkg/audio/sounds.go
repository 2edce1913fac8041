// pkg/audio/sounds.go
package audio

import (
	"fmt"
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
)

const sampleRate = beep.SampleRate(44100)

// Sound identifies a cue
type Sound int

const (
	// SoundFire is the chirp played when a projectile is fired
	SoundFire Sound = iota
	// SoundFocus is the blip played when the camera focus changes
	SoundFocus
)

func (s Sound) String() string {
	switch s {
	case SoundFire:
		return "fire"
	case SoundFocus:
		return "focus"
	default:
		return "unknown"
	}
}

const (
	fireDuration  = 120 * time.Millisecond
	focusDuration = 50 * time.Millisecond
)

// chirp is a downward frequency sweep with an exponential decay
type chirp struct {
	from, to float64
	phase    float64
	pos      int
	samples  int
}

func newChirp(from, to float64, d time.Duration) *chirp {
	return &chirp{from: from, to: to, samples: sampleRate.N(d)}
}

func (c *chirp) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if c.pos >= c.samples {
			return i, i > 0
		}
		progress := float64(c.pos) / float64(c.samples)
		freq := c.from + (c.to-c.from)*progress
		val := math.Exp(-progress*4) * math.Sin(2*math.Pi*c.phase)

		samples[i][0] = val
		samples[i][1] = val

		c.phase += freq / float64(sampleRate)
		c.phase -= math.Floor(c.phase)
		c.pos++
	}
	return len(samples), true
}

func (c *chirp) Err() error { return nil }

// newVolume scales s by 2^volume
func newVolume(s beep.Streamer, volume float64) beep.Streamer {
	return &effects.Volume{Streamer: s, Base: 2, Volume: volume, Silent: false}
}

// newSound builds a finite streamer for the cue
func newSound(s Sound, volume float64) (beep.Streamer, error) {
	switch s {
	case SoundFire:
		return newVolume(newChirp(1800, 400, fireDuration), volume), nil
	case SoundFocus:
		low, err := generators.SineTone(sampleRate, 660)
		if err != nil {
			return nil, fmt.Errorf("creating focus tone: %w", err)
		}
		high, err := generators.SineTone(sampleRate, 990)
		if err != nil {
			return nil, fmt.Errorf("creating focus tone: %w", err)
		}
		blip := beep.Seq(
			beep.Take(sampleRate.N(focusDuration), low),
			beep.Take(sampleRate.N(focusDuration), high),
		)
		return newVolume(blip, volume-1), nil
	default:
		return nil, fmt.Errorf("unknown sound %d", int(s))
	}
}
