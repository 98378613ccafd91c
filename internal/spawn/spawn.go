// Package spawn generates asteroid waves, split children, power-up drops and
// timed power-ups.
// Every random decision draws from the *rand.Rand handed to New, so a fixed
// seed replays the same game.
package spawn

import (
	"math"
	"math/rand"

	"github.com/tomz197/asteroids-reborn/internal/config"
	"github.com/tomz197/asteroids-reborn/internal/object"
	"github.com/tomz197/asteroids-reborn/internal/physics"
)

// placementAttempts bounds the search for a spawn point outside the safe radius.
const placementAttempts = 64

// Controller decides what enters the world and where.
type Controller struct {
	level     config.LevelConfig
	asteroids config.AsteroidsConfig
	powerUps  config.PowerUpsConfig
	types     config.TypesConfig
	behaviors object.BehaviorTable
	bounds    physics.Bounds
	rng       *rand.Rand
}

// New creates a controller for a validated configuration.
func New(cfg config.Config, rng *rand.Rand) *Controller {
	return &Controller{
		level:     cfg.Level,
		asteroids: cfg.Asteroids,
		powerUps:  cfg.PowerUps,
		types:     cfg.Asteroids.Types,
		behaviors: object.NewBehaviorTable(cfg.Asteroids.Types),
		bounds:    physics.Bounds{W: cfg.World.Width, H: cfg.World.Height},
		rng:       rng,
	}
}

// Behaviors returns the asteroid behavior table.
func (c *Controller) Behaviors() *object.BehaviorTable {
	return &c.behaviors
}

// WaveSize returns the number of large asteroids spawned at the start of level.
func (c *Controller) WaveSize(level int) int {
	return c.level.BaseCount + level*c.level.Increment
}

// WaveSpeed returns the speed of asteroids spawned at the start of level.
func (c *Controller) WaveSpeed(level int) float64 {
	return math.Min(c.level.BaseSpeed+float64(level)*c.level.SpeedPerLevel, c.level.MaxSpeed)
}

// TypeWeights returns the spawn weight of each asteroid type at level.
// Types with a positive per-level weight grow more likely as levels advance.
func (c *Controller) TypeWeights(level int) [len(object.AsteroidTypes)]float64 {
	steps := float64(max(0, level-1))
	weight := func(t config.TypeConfig) float64 {
		return math.Max(0, t.Weight+t.WeightPerLevel*steps)
	}
	var w [len(object.AsteroidTypes)]float64
	w[object.AsteroidNormal] = weight(c.types.Normal)
	w[object.AsteroidIce] = weight(c.types.Ice)
	w[object.AsteroidMineral] = weight(c.types.Mineral)
	w[object.AsteroidUnstable] = weight(c.types.Unstable)
	return w
}

// PickType draws an asteroid type using the weights for level.
func (c *Controller) PickType(level int) object.AsteroidType {
	weights := c.TypeWeights(level)
	total := 0.0
	for _, w := range weights {
		total += w
	}
	if total <= 0 {
		return object.AsteroidNormal
	}
	r := c.rng.Float64() * total
	for i, w := range weights {
		if r < w {
			return object.AsteroidType(i)
		}
		r -= w
	}
	return object.AsteroidTypes[len(object.AsteroidTypes)-1]
}

// TierRadius returns the collision radius of an asteroid of tier and typ.
func (c *Controller) TierRadius(tier object.Tier, typ object.AsteroidType) float64 {
	return c.tier(tier).Radius * c.behaviors.Of(typ).RadiusScale
}

// TierScore returns the base score for destroying an asteroid of tier.
func (c *Controller) TierScore(tier object.Tier) int {
	return c.tier(tier).Score
}

// MaxAsteroidRadius returns the largest possible asteroid radius.
func (c *Controller) MaxAsteroidRadius() float64 {
	r := 0.0
	for _, tier := range []object.Tier{object.TierSmall, object.TierMedium, object.TierLarge} {
		for _, typ := range object.AsteroidTypes {
			r = max(r, c.TierRadius(tier, typ))
		}
	}
	return r
}

func (c *Controller) tier(t object.Tier) config.TierConfig {
	switch t {
	case object.TierSmall:
		return c.asteroids.Small
	case object.TierMedium:
		return c.asteroids.Medium
	default:
		return c.asteroids.Large
	}
}

// NewAsteroid creates an asteroid of tier and typ with the configured radius and hit count.
func (c *Controller) NewAsteroid(x, y, vx, vy float64, tier object.Tier, typ object.AsteroidType) *object.Asteroid {
	return object.NewAsteroid(x, y, vx, vy, c.TierRadius(tier, typ), tier, typ,
		c.behaviors.Of(typ).HitCount, c.asteroids.RotationSpeed, c.rng)
}

// Wave spawns the large asteroids that open level, away from the ship.
func (c *Controller) Wave(level int, shipX, shipY float64) []*object.Asteroid {
	n := c.WaveSize(level)
	speed := c.WaveSpeed(level)
	wave := make([]*object.Asteroid, 0, n)
	for i := 0; i < n; i++ {
		x, y := c.placeAwayFrom(shipX, shipY)
		typ := c.PickType(level)
		vx, vy := physics.FromAngle(c.rng.Float64()*2*math.Pi, speed)
		wave = append(wave, c.NewAsteroid(x, y, vx, vy, object.TierLarge, typ))
	}
	return wave
}

// placeAwayFrom picks a random point outside the safe radius of (x, y).
// When the world is too small for that, the point opposite the ship is used.
func (c *Controller) placeAwayFrom(x, y float64) (float64, float64) {
	for i := 0; i < placementAttempts; i++ {
		px := c.rng.Float64() * c.bounds.W
		py := c.rng.Float64() * c.bounds.H
		if c.bounds.Distance(x, y, px, py) > c.level.SafeRadius {
			return c.bounds.Wrap(px, py)
		}
	}
	return c.bounds.Wrap(x+c.bounds.W/2, y+c.bounds.H/2)
}

// Split returns the children of a destroyed asteroid: two of the next smaller tier
// for types that split, none otherwise. Children keep the parent's type and
// move in independent random directions at speeds within the split range.
func (c *Controller) Split(parent *object.Asteroid) []*object.Asteroid {
	if !c.behaviors.Of(parent.Type).Splits {
		return nil
	}
	tier, ok := parent.Tier.Smaller()
	if !ok {
		return nil
	}
	children := make([]*object.Asteroid, 0, 2)
	for i := 0; i < 2; i++ {
		speed := c.asteroids.SplitSpeedMin + c.rng.Float64()*(c.asteroids.SplitSpeedMax-c.asteroids.SplitSpeedMin)
		vx, vy := physics.FromAngle(c.rng.Float64()*2*math.Pi, speed)
		children = append(children, c.NewAsteroid(parent.X, parent.Y, vx, vy, tier, parent.Type))
	}
	return children
}

// DropChance returns the probability that destroying an asteroid of typ drops a power-up.
func (c *Controller) DropChance(typ object.AsteroidType) float64 {
	return math.Min(1, c.powerUps.DropChance*c.behaviors.Of(typ).DropMultiplier)
}

// Drop rolls for a power-up at (x, y). The kind is uniform among all kinds.
func (c *Controller) Drop(x, y float64, typ object.AsteroidType) (*object.PowerUp, bool) {
	if c.rng.Float64() >= c.DropChance(typ) {
		return nil, false
	}
	return c.newPowerUp(x, y), true
}

// PowerUpInterval returns the delay before the next timed power-up at level,
// or 0 when timed power-ups are disabled. The interval shrinks each level
// down to the configured floor and varies by up to 30% either way.
func (c *Controller) PowerUpInterval(level int) float64 {
	p := c.powerUps
	if p.SpawnInterval <= 0 {
		return 0
	}
	base := math.Max(p.SpawnInterval-float64(level)*p.SpawnIntervalStep, p.SpawnIntervalMin)
	return base * (0.7 + 0.6*c.rng.Float64())
}

// RandomPowerUp places a power-up of a random kind outside the safe radius
// of the ship.
func (c *Controller) RandomPowerUp(shipX, shipY float64) *object.PowerUp {
	x, y := c.placeAwayFrom(shipX, shipY)
	return c.newPowerUp(x, y)
}

func (c *Controller) newPowerUp(x, y float64) *object.PowerUp {
	kind := object.PowerUpKinds[c.rng.Intn(len(object.PowerUpKinds))]
	vx, vy := physics.FromAngle(c.rng.Float64()*2*math.Pi, c.rng.Float64()*c.powerUps.Speed)
	p := c.powerUps
	return object.NewPowerUp(x, y, vx, vy, p.Radius, p.Lifetime, p.Drag, kind)
}
