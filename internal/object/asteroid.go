package object

import (
	"math"
	"math/rand"
)

// Tier represents the size class of an asteroid.
type Tier int

const (
	TierSmall  Tier = 1
	TierMedium Tier = 2
	TierLarge  Tier = 3
)

func (t Tier) String() string {
	switch t {
	case TierSmall:
		return "small"
	case TierMedium:
		return "medium"
	case TierLarge:
		return "large"
	default:
		return "unknown"
	}
}

// Smaller returns the tier produced by splitting t, and false for the smallest tier.
func (t Tier) Smaller() (Tier, bool) {
	if t <= TierSmall {
		return 0, false
	}
	return t - 1, true
}

// AsteroidType is the behavior tag of an asteroid.
type AsteroidType int

const (
	AsteroidNormal AsteroidType = iota
	AsteroidIce
	AsteroidMineral
	AsteroidUnstable
)

// AsteroidTypes lists every type in table order.
var AsteroidTypes = [...]AsteroidType{AsteroidNormal, AsteroidIce, AsteroidMineral, AsteroidUnstable}

func (t AsteroidType) String() string {
	switch t {
	case AsteroidNormal:
		return "normal"
	case AsteroidIce:
		return "ice"
	case AsteroidMineral:
		return "mineral"
	case AsteroidUnstable:
		return "unstable"
	default:
		return "unknown"
	}
}

// Asteroid is a destructible space rock.
type Asteroid struct {
	Body
	Tier          Tier
	Type          AsteroidType
	HitsLeft      int       // Hits still required to destroy it
	RotationSpeed float64   // Radians per second
	Vertices      []float64 // Vertex distances from center (irregular outline)
}

// NewAsteroid creates an asteroid. rng drives the outline and spin only;
// position and velocity are chosen by the caller.
func NewAsteroid(x, y, vx, vy, radius float64, tier Tier, typ AsteroidType, hits int, maxSpin float64, rng *rand.Rand) *Asteroid {
	// 8-12 vertices, radius varied by ±20%
	numVerts := 8 + rng.Intn(5)
	vertices := make([]float64, numVerts)
	for i := range vertices {
		vertices[i] = radius * (0.8 + rng.Float64()*0.4)
	}

	return &Asteroid{
		Body: Body{
			X:      x,
			Y:      y,
			VX:     vx,
			VY:     vy,
			Angle:  rng.Float64() * 2 * math.Pi,
			Radius: radius,
		},
		Tier:          tier,
		Type:          typ,
		HitsLeft:      max(1, hits),
		RotationSpeed: (rng.Float64()*2 - 1) * maxSpin,
		Vertices:      vertices,
	}
}

// Hit applies one hit. It returns true only on the hit that destroys the asteroid;
// hits on an already destroyed asteroid are ignored.
func (a *Asteroid) Hit() (destroyed bool) {
	if a.destroyed {
		return false
	}
	a.HitsLeft--
	if a.HitsLeft > 0 {
		return false
	}
	a.HitsLeft = 0
	a.MarkDestroyed()
	return true
}

// Update moves the asteroid and handles rotation.
func (a *Asteroid) Update(ctx UpdateContext) {
	a.Angle = math.Mod(a.Angle+a.RotationSpeed*ctx.Dt, 2*math.Pi)
	a.move(ctx)
}

// Sprite implements Object.
func (a *Asteroid) Sprite() Sprite {
	return Sprite{
		Kind:    KindAsteroid,
		Variant: int(a.Type),
		Tier:    a.Tier,
		X:       a.X,
		Y:       a.Y,
		Angle:   a.Angle,
		Radius:  a.Radius,
		Outline: a.Vertices,
		Fade:    1,
		Visible: true,
	}
}
