package object

import (
	"math"
	"sync"

	"github.com/tomz197/asteroids-reborn/internal/physics"
)

// particlePool reuses Particle objects; explosions create many short-lived ones.
var particlePool = sync.Pool{
	New: func() any {
		return &Particle{}
	},
}

// Particle is a short-lived visual effect.
type Particle struct {
	Body
	TTL    float64 // Seconds remaining
	MaxTTL float64 // Initial lifetime (for fade calculation)
	Drag   float64 // Velocity retained per second (1.0 = no drag)
}

// NewParticle takes a particle from the pool and initializes it.
func NewParticle(x, y, vx, vy, lifetime, drag float64) *Particle {
	p := particlePool.Get().(*Particle)
	*p = Particle{
		Body:   Body{X: x, Y: y, VX: vx, VY: vy},
		TTL:    lifetime,
		MaxTTL: lifetime,
		Drag:   drag,
	}
	return p
}

// Release returns the particle to the pool for reuse.
// Must only be called once the particle has left the simulation.
func (p *Particle) Release() {
	particlePool.Put(p)
}

// ExplosionSpec describes a burst of particles.
type ExplosionSpec struct {
	Count    int
	Speed    float64 // Mean speed; each particle gets 50%-150%
	Lifetime float64 // Max lifetime; each particle gets 50%-100%
	Drag     float64
}

// SpawnExplosion creates particles in a circular burst pattern around (x, y).
func SpawnExplosion(x, y float64, spec ExplosionSpec, ctx UpdateContext) {
	if ctx.Spawner == nil || ctx.Rand == nil {
		return
	}
	for i := 0; i < spec.Count; i++ {
		angle := ctx.Rand.Float64() * 2 * math.Pi
		spd := spec.Speed * (0.5 + ctx.Rand.Float64())
		life := spec.Lifetime * (0.5 + ctx.Rand.Float64()*0.5)
		vx, vy := physics.FromAngle(angle, spd)
		ctx.Spawner.Spawn(NewParticle(x, y, vx, vy, life, spec.Drag))
	}
}

// SpawnThrust creates 1-2 exhaust particles behind a thrusting ship.
func SpawnThrust(x, y, angle float64, ctx UpdateContext) {
	if ctx.Spawner == nil || ctx.Rand == nil {
		return
	}
	count := 1 + ctx.Rand.Intn(2)
	for i := 0; i < count; i++ {
		// Opposite the ship's facing, with spread
		thrustAngle := angle + math.Pi + (ctx.Rand.Float64()-0.5)*0.5
		speed := 60 + ctx.Rand.Float64()*40
		lifetime := 0.1 + ctx.Rand.Float64()*0.15
		vx, vy := physics.FromAngle(thrustAngle, speed)
		ctx.Spawner.Spawn(NewParticle(x, y, vx, vy, lifetime, 0.05))
	}
}

// Update applies drag and moves the particle. Particles wrap like everything else.
func (p *Particle) Update(ctx UpdateContext) {
	p.VX, p.VY = physics.Damp(p.VX, p.VY, p.Drag, ctx.Dt)
	p.move(ctx)
}

// Age implements Transient.
func (p *Particle) Age(dt float64) bool {
	p.TTL -= dt
	if p.TTL <= 0 {
		p.MarkDestroyed()
		return true
	}
	return false
}

// Sprite implements Object.
func (p *Particle) Sprite() Sprite {
	fade := 0.0
	if p.MaxTTL > 0 {
		fade = math.Max(0, p.TTL/p.MaxTTL)
	}
	return Sprite{
		Kind:    KindParticle,
		X:       p.X,
		Y:       p.Y,
		Fade:    fade,
		Visible: fade >= 0.25, // Skip nearly faded particles
	}
}
