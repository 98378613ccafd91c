package audio

import (
	"math"
	"math/rand"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// WaveType defines oscillator wave shapes
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
	WaveSaw
	WaveNoise
)

// oscillator generates a fixed-length raw wave, optionally sweeping its frequency.
type oscillator struct {
	freq     float64
	sweep    float64 // Frequency change per second
	phase    float64
	duration int
	position int
	wave     WaveType
	rate     beep.SampleRate
	noise    *rand.Rand
}

func newSweep(freq, sweep float64, duration time.Duration, wave WaveType, rate beep.SampleRate) *oscillator {
	return &oscillator{
		freq:     freq,
		sweep:    sweep,
		duration: rate.N(duration),
		wave:     wave,
		rate:     rate,
		noise:    rand.New(rand.NewSource(int64(freq*1000) + 1)),
	}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.duration {
			return i, i > 0
		}

		var val float64
		switch o.wave {
		case WaveSine:
			val = math.Sin(2 * math.Pi * o.phase)
		case WaveSquare:
			if o.phase < 0.5 {
				val = 1.0
			} else {
				val = -1.0
			}
		case WaveSaw:
			val = 2.0 * (o.phase - 0.5)
		case WaveNoise:
			val = o.noise.Float64()*2 - 1
		}

		samples[i][0] = val
		samples[i][1] = val

		t := float64(o.position) / float64(o.rate)
		freq := math.Max(20, o.freq+o.sweep*t)
		o.phase += freq / float64(o.rate)
		o.phase -= math.Floor(o.phase)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// envelope applies attack/release shaping to a stream
type envelope struct {
	streamer       beep.Streamer
	position       int
	attackSamples  int
	releaseSamples int
	totalSamples   int
}

// NewEnvelope wraps s with a linear attack and release over duration.
func NewEnvelope(s beep.Streamer, duration, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	return &envelope{
		streamer:       s,
		attackSamples:  rate.N(attack),
		releaseSamples: rate.N(release),
		totalSamples:   rate.N(duration),
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)

	for i := 0; i < n; i++ {
		if e.position >= e.totalSamples {
			return i, i > 0
		}

		vol := 1.0
		if e.position < e.attackSamples {
			vol = float64(e.position) / float64(e.attackSamples)
		}
		if remaining := e.totalSamples - e.position; remaining < e.releaseSamples {
			vol = math.Min(vol, float64(remaining)/float64(e.releaseSamples))
		}

		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// newVolume scales s linearly. math.Log2(0) is -Inf, so zero means silent.
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}

// tone is one shaped oscillator note.
func tone(freq, sweep float64, d time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	release := d / 2
	return NewEnvelope(newSweep(freq, sweep, d, wave, rate), d, 5*time.Millisecond, release, rate)
}

// Sound effect generators

// createFireSound is a short falling square blip.
func createFireSound(rate beep.SampleRate) beep.Streamer {
	return newVolume(tone(880, -2400, 70*time.Millisecond, WaveSquare, rate), 0.25)
}

// createHitSound is a dull knock for an asteroid that survives a hit.
func createHitSound(rate beep.SampleRate) beep.Streamer {
	return newVolume(tone(180, -300, 60*time.Millisecond, WaveSaw, rate), 0.35)
}

// createExplosionSound is a noise burst over a low rumble. Bigger tiers
// last longer and rumble deeper.
func createExplosionSound(tier int, rate beep.SampleRate) beep.Streamer {
	d := time.Duration(120+80*tier) * time.Millisecond
	noise := tone(0, 0, d, WaveNoise, rate)
	rumble := tone(110-float64(tier)*20, -40, d, WaveSine, rate)
	return newVolume(beep.Mix(newVolume(noise, 0.5), newVolume(rumble, 0.6)), 0.5)
}

// createPickupSound is a rising two-note chime.
func createPickupSound(rate beep.SampleRate) beep.Streamer {
	return newVolume(beep.Seq(
		tone(987.77, 0, 60*time.Millisecond, WaveSquare, rate),
		tone(1318.51, 0, 120*time.Millisecond, WaveSquare, rate),
	), 0.2)
}

// createShipDestroyedSound is a long explosion with a falling tone.
func createShipDestroyedSound(rate beep.SampleRate) beep.Streamer {
	d := 700 * time.Millisecond
	return newVolume(beep.Mix(
		newVolume(tone(0, 0, d, WaveNoise, rate), 0.6),
		newVolume(tone(320, -400, d, WaveSaw, rate), 0.4),
	), 0.6)
}

// arpeggio plays freqs in sequence, each for step.
func arpeggio(rate beep.SampleRate, step time.Duration, freqs ...float64) beep.Streamer {
	notes := make([]beep.Streamer, len(freqs))
	for i, f := range freqs {
		notes[i] = tone(f, 0, step, WaveSquare, rate)
	}
	return newVolume(beep.Seq(notes...), 0.2)
}

// createLevelStartSound is a rising arpeggio.
func createLevelStartSound(rate beep.SampleRate) beep.Streamer {
	return arpeggio(rate, 90*time.Millisecond, 523.25, 659.25, 783.99, 1046.5)
}

// createGameOverSound is a slow falling arpeggio.
func createGameOverSound(rate beep.SampleRate) beep.Streamer {
	return arpeggio(rate, 220*time.Millisecond, 392, 329.63, 261.63, 196)
}

// createClickSound marks pause and resume.
func createClickSound(freq float64, rate beep.SampleRate) beep.Streamer {
	return newVolume(tone(freq, 0, 40*time.Millisecond, WaveSine, rate), 0.3)
}
