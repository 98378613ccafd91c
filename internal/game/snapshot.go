package game

import (
	"encoding/binary"
	"hash/fnv"
	"math"

	"github.com/tomz197/asteroids-reborn/internal/object"
)

// Snapshot is the HUD view of a session. It is cheap enough to take every frame.
type Snapshot struct {
	Frame  uint64
	State  State
	Score  int
	Lives  int
	Level  int
	Killed int

	LevelBanner float64 // Seconds left on the "Level N" banner

	ShipAlive    bool
	ShipX, ShipY float64
	ShipAngle    float64
	Shield       float64 // Seconds remaining
	RapidFire    float64
	Invulnerable float64

	Asteroids int
	Bullets   int
	Particles int
	PowerUps  int
}

// Snapshot returns the current session snapshot.
func (s *Session) Snapshot() Snapshot {
	return Snapshot{
		Frame:        s.frame,
		State:        s.state,
		Score:        s.score,
		Lives:        s.lives,
		Level:        s.level,
		Killed:       s.killed,
		LevelBanner:  s.banner,
		ShipAlive:    s.ship.Alive(),
		ShipX:        s.ship.X,
		ShipY:        s.ship.Y,
		ShipAngle:    s.ship.Angle,
		Shield:       s.ship.Shield,
		RapidFire:    s.ship.RapidFire,
		Invulnerable: s.ship.Invulnerable,
		Asteroids:    len(s.asteroids),
		Bullets:      len(s.bullets),
		Particles:    len(s.particles),
		PowerUps:     len(s.powerUps),
	}
}

// StateHash folds the position and velocity of every entity, with score,
// lives and level, into an FNV-1a digest. Two sessions fed the same seed
// and inputs hash equal at every step.
func (s *Session) StateHash() uint64 {
	h := fnv.New64a()
	var buf [8]byte
	putU := func(v uint64) {
		binary.LittleEndian.PutUint64(buf[:], v)
		h.Write(buf[:])
	}
	putF := func(v float64) { putU(math.Float64bits(v)) }
	putBody := func(b *object.Body) {
		putF(b.X)
		putF(b.Y)
		putF(b.VX)
		putF(b.VY)
		putF(b.Angle)
	}

	putU(s.frame)
	putU(uint64(s.state))
	putU(uint64(s.score))
	putU(uint64(s.lives))
	putU(uint64(s.level))
	putBody(&s.ship.Body)
	for _, a := range s.asteroids {
		putBody(&a.Body)
		putU(uint64(a.Tier)<<32 | uint64(a.Type)<<16 | uint64(a.HitsLeft))
	}
	for _, b := range s.bullets {
		putBody(&b.Body)
	}
	for _, p := range s.particles {
		putBody(&p.Body)
	}
	for _, p := range s.powerUps {
		putBody(&p.Body)
		putU(uint64(p.Kind))
	}
	return h.Sum64()
}

// Sprites appends the render view of every alive entity to dst and returns it.
// Draw order is particles, power-ups, asteroids, bullets, ship.
func (s *Session) Sprites(dst []object.Sprite) []object.Sprite {
	for _, p := range s.particles {
		if p.Alive() {
			dst = append(dst, p.Sprite())
		}
	}
	for _, p := range s.powerUps {
		if p.Alive() {
			dst = append(dst, p.Sprite())
		}
	}
	for _, a := range s.asteroids {
		if a.Alive() {
			dst = append(dst, a.Sprite())
		}
	}
	for _, b := range s.bullets {
		if b.Alive() {
			dst = append(dst, b.Sprite())
		}
	}
	if s.ship.Alive() {
		dst = append(dst, s.ship.Sprite())
	}
	return dst
}
