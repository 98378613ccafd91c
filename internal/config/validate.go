package config

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig is wrapped by every error returned from Validate.
var ErrInvalidConfig = errors.New("invalid config")

// Validate reports every malformed field of cfg. A nil result means the
// configuration describes well-defined geometry and timing.
func (c Config) Validate() error {
	var errs []error
	bad := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalidConfig}, args...)...))
	}
	positive := func(name string, v float64) {
		if !(v > 0) {
			bad("%s must be positive, got %v", name, v)
		}
	}
	nonNegative := func(name string, v float64) {
		if !(v >= 0) {
			bad("%s must not be negative, got %v", name, v)
		}
	}
	probability := func(name string, v float64) {
		if !(v >= 0 && v <= 1) {
			bad("%s must be within [0,1], got %v", name, v)
		}
	}

	positive("world.width", c.World.Width)
	positive("world.height", c.World.Height)
	if c.Tick.Rate <= 0 {
		bad("tick.rate must be positive, got %d", c.Tick.Rate)
	}

	positive("ship.radius", c.Ship.Radius)
	nonNegative("ship.thrust", c.Ship.Thrust)
	nonNegative("ship.rotation_speed", c.Ship.RotationSpeed)
	positive("ship.max_speed", c.Ship.MaxSpeed)
	probability("ship.damping", c.Ship.Damping)
	if c.Ship.Lives < 1 {
		bad("ship.lives must be at least 1, got %d", c.Ship.Lives)
	}
	nonNegative("ship.fire_cooldown", c.Ship.FireCooldown)
	nonNegative("ship.rapid_fire_cooldown", c.Ship.RapidFireCooldown)
	nonNegative("ship.respawn_invulnerability", c.Ship.RespawnInvulnerability)

	positive("bullet.speed", c.Bullet.Speed)
	positive("bullet.radius", c.Bullet.Radius)
	positive("bullet.lifetime", c.Bullet.Lifetime)
	nonNegative("bullet.inherit_velocity", c.Bullet.InheritVelocity)

	a := c.Asteroids
	positive("asteroids.small.radius", a.Small.Radius)
	positive("asteroids.medium.radius", a.Medium.Radius)
	positive("asteroids.large.radius", a.Large.Radius)
	for _, tier := range []struct {
		name string
		t    TierConfig
	}{{"small", a.Small}, {"medium", a.Medium}, {"large", a.Large}} {
		if tier.t.Score < 0 {
			bad("asteroids.%s.score must not be negative, got %d", tier.name, tier.t.Score)
		}
	}
	nonNegative("asteroids.split_speed_min", a.SplitSpeedMin)
	if a.SplitSpeedMax < a.SplitSpeedMin {
		bad("asteroids.split_speed_max (%v) is below split_speed_min (%v)", a.SplitSpeedMax, a.SplitSpeedMin)
	}
	nonNegative("asteroids.rotation_speed", a.RotationSpeed)

	totalWeight := 0.0
	for _, row := range []struct {
		name string
		t    TypeConfig
	}{
		{"normal", a.Types.Normal},
		{"ice", a.Types.Ice},
		{"mineral", a.Types.Mineral},
		{"unstable", a.Types.Unstable},
	} {
		prefix := "asteroids.types." + row.name
		if row.t.HitCount < 1 {
			bad("%s.hit_count must be at least 1, got %d", prefix, row.t.HitCount)
		}
		nonNegative(prefix+".blast_radius", row.t.BlastRadius)
		nonNegative(prefix+".drop_multiplier", row.t.DropMultiplier)
		positive(prefix+".radius_scale", row.t.RadiusScale)
		nonNegative(prefix+".weight", row.t.Weight)
		nonNegative(prefix+".weight_per_level", row.t.WeightPerLevel)
		if row.t.ExtraParticles < 0 {
			bad("%s.extra_particles must not be negative, got %d", prefix, row.t.ExtraParticles)
		}
		totalWeight += row.t.Weight
	}
	if totalWeight <= 0 {
		bad("asteroid type weights must not all be zero")
	}

	l := c.Level
	if l.Start < 0 {
		bad("level.start must not be negative, got %d", l.Start)
	}
	if l.BaseCount < 0 {
		bad("level.base_count must not be negative, got %d", l.BaseCount)
	}
	if l.Increment < 0 {
		bad("level.increment must not be negative, got %d", l.Increment)
	}
	if l.Increment == 0 && l.BaseCount < 1 {
		bad("level.base_count and level.increment yield empty waves")
	}
	nonNegative("level.base_speed", l.BaseSpeed)
	nonNegative("level.speed_per_level", l.SpeedPerLevel)
	positive("level.max_speed", l.MaxSpeed)
	nonNegative("level.safe_radius", l.SafeRadius)
	nonNegative("level.banner", l.Banner)

	p := c.PowerUps
	probability("powerups.drop_chance", p.DropChance)
	positive("powerups.lifetime", p.Lifetime)
	positive("powerups.radius", p.Radius)
	probability("powerups.drag", p.Drag)
	nonNegative("powerups.speed", p.Speed)
	nonNegative("powerups.shield_duration", p.ShieldDuration)
	nonNegative("powerups.rapid_fire_duration", p.RapidFireDuration)
	nonNegative("powerups.spawn_interval", p.SpawnInterval)
	if p.SpawnInterval > 0 {
		nonNegative("powerups.spawn_interval_step", p.SpawnIntervalStep)
		positive("powerups.spawn_interval_min", p.SpawnIntervalMin)
	}

	if c.Particles.ExplosionCount < 0 {
		bad("particles.explosion_count must not be negative, got %d", c.Particles.ExplosionCount)
	}
	nonNegative("particles.speed", c.Particles.Speed)
	nonNegative("particles.lifetime", c.Particles.Lifetime)
	probability("particles.drag", c.Particles.Drag)

	return errors.Join(errs...)
}
