// Package object defines the simulated entities: ship, asteroids, bullets,
// particles and power-ups.
package object

import (
	"math/rand"

	"github.com/tomz197/asteroids-reborn/internal/physics"
)

// Kind identifies the visual and collision category of an entity.
type Kind int

const (
	KindShip Kind = iota
	KindAsteroid
	KindBullet
	KindParticle
	KindPowerUp
)

func (k Kind) String() string {
	switch k {
	case KindShip:
		return "ship"
	case KindAsteroid:
		return "asteroid"
	case KindBullet:
		return "bullet"
	case KindParticle:
		return "particle"
	case KindPowerUp:
		return "powerup"
	default:
		return "unknown"
	}
}

// Spawner allows objects to spawn new objects during update.
// Spawned objects join the simulation when the owner flushes its queue.
type Spawner interface {
	Spawn(obj Object)
}

// UpdateContext provides all the information an object needs during update.
type UpdateContext struct {
	Dt      float64 // Seconds per step
	Bounds  physics.Bounds
	Spawner Spawner
	Rand    *rand.Rand
}

// Object is a simulated game entity.
type Object interface {
	// Update advances the object by one step. Positions are wrapped into ctx.Bounds.
	Update(ctx UpdateContext)

	// Sprite returns the render view of the object.
	Sprite() Sprite

	Destructible
}

// Destructible is implemented by objects that can be destroyed/marked for removal.
type Destructible interface {
	// MarkDestroyed clears the alive flag. The owner prunes the object at the end of the step.
	MarkDestroyed()
	// IsDestroyed returns true once the object is no longer alive.
	IsDestroyed() bool
}

// Transient is implemented by objects with a time-to-live.
type Transient interface {
	// Age decrements the remaining lifetime and marks the object destroyed on expiry.
	Age(dt float64) (expired bool)
}

// Body is the state shared by every entity.
type Body struct {
	X, Y      float64 // Position (center), always wrapped into world bounds
	VX, VY    float64 // Velocity, units per second
	Angle     float64 // Rotation in radians
	Radius    float64 // Collision radius
	destroyed bool
}

// Alive reports whether the entity still takes part in the simulation.
func (b *Body) Alive() bool {
	return !b.destroyed
}

// MarkDestroyed implements Destructible.
func (b *Body) MarkDestroyed() {
	b.destroyed = true
}

// IsDestroyed implements Destructible.
func (b *Body) IsDestroyed() bool {
	return b.destroyed
}

// move integrates velocity over dt and wraps the result.
func (b *Body) move(ctx UpdateContext) {
	b.X, b.Y = physics.Integrate(b.X, b.Y, b.VX, b.VY, ctx.Dt, ctx.Bounds)
}

// ShouldRenderBlink returns true if an object with remaining protection/expiry
// time should be rendered this frame (for blinking effect).
// Returns true always if remainingTime <= 0.
func ShouldRenderBlink(remainingTime float64, frequency float64) bool {
	if remainingTime <= 0 {
		return true
	}
	phase := int(remainingTime * frequency)
	return phase%2 != 0
}
