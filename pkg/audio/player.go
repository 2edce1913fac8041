// pkg/audio/player.go
package audio

import (
	"context"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/opd-ai/go-orrery/pkg/event"
	"github.com/opd-ai/go-orrery/pkg/logging"
)

// Sink plays streamers
type Sink interface {
	Play(s beep.Streamer)
}

// Speaker mixes cues onto the system audio device
type Speaker struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	initialized bool
}

// NewSpeaker creates an uninitialised speaker
func NewSpeaker() *Speaker {
	return &Speaker{mixer: &beep.Mixer{}}
}

// Init opens the audio device. Calling it twice is a no-op.
func (s *Speaker) Init() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
		return logging.WrapError(err, "initializing speaker")
	}
	speaker.Play(s.mixer)
	s.initialized = true
	return nil
}

// Play adds st to the mix. It is dropped when the device is not open.
func (s *Speaker) Play(st beep.Streamer) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.initialized {
		return
	}
	speaker.Lock()
	s.mixer.Add(st)
	speaker.Unlock()
}

// Close silences everything still playing
func (s *Speaker) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.initialized {
		return
	}
	speaker.Lock()
	s.mixer.Clear()
	speaker.Unlock()
	s.initialized = false
}

// Player turns simulation events into sound cues
type Player struct {
	sink   Sink
	volume float64
	logger *logging.Logger
	subs   []*event.Subscription
}

// NewPlayer creates a player writing to sink. volume is a base-2 exponent,
// 0 leaves samples unchanged.
func NewPlayer(sink Sink, volume float64, logger *logging.Logger) *Player {
	if logger == nil {
		logger = logging.NewDiscardLogger()
	}
	return &Player{sink: sink, volume: volume, logger: logger}
}

// Play plays one cue
func (p *Player) Play(s Sound) error {
	st, err := newSound(s, p.volume)
	if err != nil {
		return err
	}
	p.sink.Play(st)
	return nil
}

// Attach subscribes the player to fire and focus events on bus
func (p *Player) Attach(bus *event.Bus) {
	p.subs = append(p.subs,
		bus.Subscribe(event.ProjectileFired, func(event.Event) { p.cue(SoundFire) }),
		bus.Subscribe(event.FocusChanged, func(event.Event) { p.cue(SoundFocus) }),
	)
}

// Detach cancels the subscriptions made by Attach
func (p *Player) Detach() {
	for _, sub := range p.subs {
		sub.Cancel()
	}
	p.subs = nil
}

func (p *Player) cue(s Sound) {
	if err := p.Play(s); err != nil {
		p.logger.Warn(context.Background(), "sound cue failed", "sound", s.String(), "error", err)
	}
}
