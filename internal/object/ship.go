package object

import (
	"math"

	"github.com/tomz197/asteroids-reborn/internal/config"
	"github.com/tomz197/asteroids-reborn/internal/physics"
)

// Controls is the logical input applied to the ship for one step.
// Thrust persists until released; Turn and Fire are sampled every step.
type Controls struct {
	Thrust bool
	Turn   int // -1 left, +1 right, 0 none
	Fire   bool
}

// Ship is the player-controlled spaceship (Asteroids-style).
type Ship struct {
	Body
	Controls Controls

	// Remaining seconds of each timed effect.
	Shield       float64
	RapidFire    float64
	Invulnerable float64 // Respawn protection

	fireCooldown float64
	cfg          config.ShipConfig
	bullet       config.BulletConfig
	thrustFX     bool
}

// NewShip creates a ship at rest at (x, y), pointing up.
func NewShip(x, y float64, cfg config.ShipConfig, bullet config.BulletConfig, thrustParticles bool) *Ship {
	return &Ship{
		Body: Body{
			X:      x,
			Y:      y,
			Angle:  -math.Pi / 2,
			Radius: cfg.Radius,
		},
		cfg:      cfg,
		bullet:   bullet,
		thrustFX: thrustParticles,
	}
}

// Respawn resets the ship at (x, y) with zero velocity and respawn protection.
// Timed power-up effects are lost with the old ship. Thrust follows the key,
// which may still be held.
func (s *Ship) Respawn(x, y float64) {
	s.X, s.Y = x, y
	s.VX, s.VY = 0, 0
	s.Angle = -math.Pi / 2
	s.Controls.Turn = 0
	s.Controls.Fire = false
	s.Shield = 0
	s.RapidFire = 0
	s.fireCooldown = 0
	s.Invulnerable = s.cfg.RespawnInvulnerability
	s.destroyed = false
}

// Shielded reports whether the shield power-up is active.
func (s *Ship) Shielded() bool {
	return s.Shield > 0
}

// Protected reports whether asteroid collisions are ignored entirely.
func (s *Ship) Protected() bool {
	return s.Invulnerable > 0
}

// FireInterval returns the current minimum time between shots.
func (s *Ship) FireInterval() float64 {
	if s.RapidFire > 0 {
		return s.cfg.RapidFireCooldown
	}
	return s.cfg.FireCooldown
}

// Update handles rotation, thrust, momentum physics, timers and shooting.
func (s *Ship) Update(ctx UpdateContext) {
	dt := ctx.Dt

	if s.Controls.Turn != 0 {
		s.Angle = physics.NormalizeAngle(s.Angle + float64(s.Controls.Turn)*s.cfg.RotationSpeed*dt)
	}

	if s.Controls.Thrust {
		s.VX, s.VY = physics.Thrust(s.VX, s.VY, s.Angle, s.cfg.Thrust, dt)
		if s.thrustFX {
			backX := s.X - math.Cos(s.Angle)*s.Radius*0.8
			backY := s.Y - math.Sin(s.Angle)*s.Radius*0.8
			SpawnThrust(backX, backY, s.Angle, ctx)
		}
	} else {
		s.VX, s.VY = physics.Damp(s.VX, s.VY, s.cfg.Damping, dt)
	}
	s.VX, s.VY = physics.ClampSpeed(s.VX, s.VY, s.cfg.MaxSpeed)
	s.move(ctx)

	s.Shield = math.Max(0, s.Shield-dt)
	s.RapidFire = math.Max(0, s.RapidFire-dt)
	s.Invulnerable = math.Max(0, s.Invulnerable-dt)

	s.fireCooldown -= dt
	if s.Controls.Fire && s.fireCooldown <= 0 && ctx.Spawner != nil {
		s.fireCooldown = s.FireInterval()
		noseX, noseY := ctx.Bounds.Wrap(s.X+math.Cos(s.Angle)*s.Radius, s.Y+math.Sin(s.Angle)*s.Radius)
		vx, vy := physics.FromAngle(s.Angle, s.bullet.Speed)
		vx += s.VX * s.bullet.InheritVelocity
		vy += s.VY * s.bullet.InheritVelocity
		ctx.Spawner.Spawn(NewBullet(noseX, noseY, vx, vy, s.bullet.Radius, s.bullet.Lifetime))
	}
	s.Controls.Fire = false
	s.Controls.Turn = 0
}

// Sprite implements Object. The ship blinks while respawn-protected.
func (s *Ship) Sprite() Sprite {
	return Sprite{
		Kind:      KindShip,
		X:         s.X,
		Y:         s.Y,
		Angle:     s.Angle,
		Radius:    s.Radius,
		Fade:      1,
		Visible:   ShouldRenderBlink(s.Invulnerable, 10),
		Thrusting: s.Controls.Thrust,
		Shielded:  s.Shielded(),
	}
}
