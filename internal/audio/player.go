// Package audio turns game events into synthesized sound effects.
package audio

import (
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/tomz197/asteroids-reborn/internal/game"
)

const (
	sampleRate = beep.SampleRate(44100)

	// maxVoices caps simultaneous effects so a big chain reaction does not
	// pile up dozens of explosions in the mixer.
	maxVoices = 12
)

// Sink consumes the events of each simulation step.
type Sink interface {
	Handle(events []game.Event)
	Close()
}

// Nop is a Sink that plays nothing.
type Nop struct{}

// Handle implements Sink.
func (Nop) Handle([]game.Event) {}

// Close implements Sink.
func (Nop) Close() {}

// Player plays a sound per game event through the system speaker.
type Player struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	volume      float64
	logger      *log.Logger
	initialized bool
}

// NewPlayer creates a player. volume is linear, 1 is unchanged.
func NewPlayer(volume float64, logger *log.Logger) *Player {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Player{
		mixer:  &beep.Mixer{},
		volume: volume,
		logger: logger,
	}
}

// Initialize opens the speaker. It fails on machines without an audio
// device; callers then fall back to Nop.
func (p *Player) Initialize() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized {
		return nil
	}

	if err := speaker.Init(sampleRate, sampleRate.N(time.Millisecond*100)); err != nil {
		return err
	}

	speaker.Play(p.mixer)
	p.initialized = true
	return nil
}

// Close stops every sound.
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}
	speaker.Lock()
	p.mixer.Clear()
	speaker.Unlock()
	p.initialized = false
}

// Handle queues one effect per event. Events without a sound are ignored.
func (p *Player) Handle(events []game.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized || len(events) == 0 {
		return
	}

	speaker.Lock()
	defer speaker.Unlock()
	for _, e := range events {
		if p.mixer.Len() >= maxVoices {
			p.logger.Debug("audio voices exhausted", "dropped", e.Kind)
			continue
		}
		if s := EffectFor(e); s != nil {
			p.mixer.Add(newVolume(s, p.volume))
		}
	}
}

// EffectFor returns the streamer for one event, or nil if the event is silent.
func EffectFor(e game.Event) beep.Streamer {
	switch e.Kind {
	case game.EventFire:
		return createFireSound(sampleRate)
	case game.EventHit:
		return createHitSound(sampleRate)
	case game.EventExplosion:
		return createExplosionSound(int(e.Tier), sampleRate)
	case game.EventPickup:
		return createPickupSound(sampleRate)
	case game.EventShipDestroyed:
		return createShipDestroyedSound(sampleRate)
	case game.EventLevelStart:
		return createLevelStartSound(sampleRate)
	case game.EventGameOver:
		return createGameOverSound(sampleRate)
	case game.EventPause:
		return createClickSound(440, sampleRate)
	case game.EventResume:
		return createClickSound(660, sampleRate)
	default:
		return nil
	}
}

var (
	_ Sink = (*Player)(nil)
	_ Sink = Nop{}
)
