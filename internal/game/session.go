// Package game runs the simulation: one Session owns the ship, asteroids,
// bullets, particles and power-ups, and advances them in fixed steps.
package game

import (
	"fmt"
	"io"
	"math/rand"

	"github.com/charmbracelet/log"

	"github.com/tomz197/asteroids-reborn/internal/config"
	"github.com/tomz197/asteroids-reborn/internal/input"
	"github.com/tomz197/asteroids-reborn/internal/object"
	"github.com/tomz197/asteroids-reborn/internal/physics"
	"github.com/tomz197/asteroids-reborn/internal/spawn"
)

// Session is one game from start to game over and any number of restarts.
// It is not safe for concurrent use; the frontend loop owns it.
type Session struct {
	cfg     config.Config
	bounds  physics.Bounds
	dt      float64
	rng     *rand.Rand
	spawner *spawn.Controller
	logger  *log.Logger

	state  State
	score  int
	lives  int
	level  int
	frame  uint64
	killed int // Asteroids destroyed this game

	banner       float64 // Seconds left on the level banner
	powerUpTimer float64 // Seconds until the next timed power-up, 0 if disabled

	ship      *object.Ship
	asteroids []*object.Asteroid
	bullets   []*object.Bullet
	particles []*object.Particle
	powerUps  []*object.PowerUp

	pending []object.Object // Spawned during the current phase
	events  []Event

	grid       *physics.SpatialGrid
	candidates []int
}

// StepResult reports the outcome of one Step. Events is reused by the next Step.
type StepResult struct {
	State  State
	Events []Event
}

// Option configures a Session.
type Option func(*Session)

// WithLogger routes session logs to l.
func WithLogger(l *log.Logger) Option {
	return func(s *Session) {
		s.logger = l
	}
}

// New validates cfg and starts a session at the configured level.
// All randomness comes from rng. A malformed cfg yields an error
// wrapping config.ErrInvalidConfig and no session.
func New(cfg config.Config, rng *rand.Rand, opts ...Option) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("new session: %w", err)
	}
	if rng == nil {
		return nil, fmt.Errorf("new session: %w: nil random source", config.ErrInvalidConfig)
	}

	s := &Session{
		cfg:     cfg,
		bounds:  physics.Bounds{W: cfg.World.Width, H: cfg.World.Height},
		dt:      1 / float64(cfg.Tick.Rate),
		rng:     rng,
		spawner: spawn.New(cfg, rng),
		logger:  log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(s)
	}

	behaviors := s.spawner.Behaviors()
	reach := s.spawner.MaxAsteroidRadius() + max(cfg.Ship.Radius, cfg.Bullet.Radius)
	s.grid = physics.NewSpatialGrid(s.bounds, max(reach, behaviors.MaxBlastRadius()))

	s.reset()
	return s, nil
}

// reset starts a fresh game: score, lives and level return to their
// configured values and the opening wave is spawned.
func (s *Session) reset() {
	for _, p := range s.particles {
		p.Release()
	}

	s.state = StatePlaying
	s.score = 0
	s.lives = s.cfg.Ship.Lives
	s.level = s.cfg.Level.Start
	s.killed = 0
	s.asteroids = s.asteroids[:0]
	s.bullets = s.bullets[:0]
	s.particles = s.particles[:0]
	s.powerUps = s.powerUps[:0]
	s.pending = s.pending[:0]

	// A thrust key held through a restart keeps thrusting; the mapper only
	// reports the press once.
	thrust := s.ship != nil && s.ship.Controls.Thrust
	cx, cy := s.bounds.Center()
	s.ship = object.NewShip(cx, cy, s.cfg.Ship, s.cfg.Bullet, s.cfg.Particles.Thrust)
	s.ship.Controls.Thrust = thrust
	s.powerUpTimer = s.spawner.PowerUpInterval(s.level)
	s.startLevel()
}

// startLevel spawns the wave for the current level and raises its banner.
func (s *Session) startLevel() {
	s.asteroids = append(s.asteroids, s.spawner.Wave(s.level, s.ship.X, s.ship.Y)...)
	s.banner = s.cfg.Level.Banner
	s.emit(Event{Kind: EventLevelStart, Level: s.level})
	s.logger.Debug("level started", "level", s.level, "asteroids", len(s.asteroids))
}

// Step advances the session by one fixed tick.
// While Playing the order is: input, physics update, collision resolution,
// spawn/difficulty evaluation, lifetime decrement, pruning of dead entities.
// While Paused or GameOver only transition actions are interpreted.
func (s *Session) Step(actions []input.Action) StepResult {
	s.events = s.events[:0]
	s.frame++

	for _, a := range actions {
		s.apply(a)
	}

	if s.state == StatePlaying {
		ctx := s.updateContext()
		s.update(ctx)
		s.resolveCollisions(ctx)
		s.flush()
		if s.state == StatePlaying {
			s.evaluateLevel()
		}
		s.age()
		s.prune()
	}

	return StepResult{State: s.state, Events: s.events}
}

// apply interprets one logical action.
func (s *Session) apply(a input.Action) {
	switch a {
	case input.ActionPause:
		if s.fire(TriggerPause) {
			s.emit(Event{Kind: EventPause})
		} else if s.fire(TriggerResume) {
			s.emit(Event{Kind: EventResume})
		}
	case input.ActionRestart:
		if s.fire(TriggerRestart) {
			s.logger.Info("game restarted")
			s.reset()
			s.emit(Event{Kind: EventRestart})
		}
	case input.ActionThrustOn:
		// Thrust tracks key state even while paused so a release is never lost.
		s.ship.Controls.Thrust = true
	case input.ActionThrustOff:
		s.ship.Controls.Thrust = false
	case input.ActionRotateLeft:
		if s.state == StatePlaying {
			s.ship.Controls.Turn = max(s.ship.Controls.Turn-1, -1)
		}
	case input.ActionRotateRight:
		if s.state == StatePlaying {
			s.ship.Controls.Turn = min(s.ship.Controls.Turn+1, 1)
		}
	case input.ActionFire:
		if s.state == StatePlaying {
			s.ship.Controls.Fire = true
		}
	}
}

// fire feeds a trigger to the state machine and reports whether it applied.
func (s *Session) fire(t Trigger) bool {
	next, ok := Transition(s.state, t)
	if ok {
		s.logger.Debug("state transition", "from", s.state, "to", next, "trigger", t)
		s.state = next
	}
	return ok
}

func (s *Session) updateContext() object.UpdateContext {
	return object.UpdateContext{
		Dt:      s.dt,
		Bounds:  s.bounds,
		Spawner: s,
		Rand:    s.rng,
	}
}

// update moves every alive entity, then admits anything spawned meanwhile.
func (s *Session) update(ctx object.UpdateContext) {
	if s.ship.Alive() {
		s.ship.Update(ctx)
	}
	for _, a := range s.asteroids {
		a.Update(ctx)
	}
	for _, b := range s.bullets {
		b.Update(ctx)
	}
	for _, p := range s.particles {
		p.Update(ctx)
	}
	for _, p := range s.powerUps {
		p.Update(ctx)
	}
	s.flush()
}

// Spawn queues an object to be added after the current phase.
// Implements object.Spawner.
func (s *Session) Spawn(obj object.Object) {
	if b, ok := obj.(*object.Bullet); ok {
		s.emit(Event{Kind: EventFire, X: b.X, Y: b.Y})
	}
	s.pending = append(s.pending, obj)
}

// flush adds all queued objects to the world and clears the queue.
func (s *Session) flush() {
	for _, obj := range s.pending {
		switch o := obj.(type) {
		case *object.Asteroid:
			s.asteroids = append(s.asteroids, o)
		case *object.Bullet:
			s.bullets = append(s.bullets, o)
		case *object.Particle:
			s.particles = append(s.particles, o)
		case *object.PowerUp:
			s.powerUps = append(s.powerUps, o)
		}
	}
	clear(s.pending)
	s.pending = s.pending[:0]
}

// evaluateLevel counts down the level banner, releases timed power-ups once
// it is gone and advances to the next level when no asteroid is left.
func (s *Session) evaluateLevel() {
	if s.banner > 0 {
		s.banner = max(0, s.banner-s.dt)
	} else {
		s.tickPowerUpTimer()
	}
	if s.AsteroidCount() > 0 {
		return
	}
	s.level++
	s.startLevel()
}

// tickPowerUpTimer spawns a power-up away from the ship whenever the timer runs out.
func (s *Session) tickPowerUpTimer() {
	if s.powerUpTimer <= 0 {
		return
	}
	s.powerUpTimer -= s.dt
	if s.powerUpTimer > 0 {
		return
	}
	p := s.spawner.RandomPowerUp(s.ship.X, s.ship.Y)
	s.powerUps = append(s.powerUps, p)
	s.powerUpTimer = s.spawner.PowerUpInterval(s.level)
	s.logger.Debug("power-up spawned", "kind", p.Kind, "next", s.powerUpTimer)
}

// age decrements the lifetime of transient entities.
func (s *Session) age() {
	for _, b := range s.bullets {
		b.Age(s.dt)
	}
	for _, p := range s.particles {
		p.Age(s.dt)
	}
	for _, p := range s.powerUps {
		p.Age(s.dt)
	}
}

// prune removes every entity that is no longer alive.
func (s *Session) prune() {
	s.asteroids = pruneDead(s.asteroids, nil)
	s.bullets = pruneDead(s.bullets, nil)
	s.particles = pruneDead(s.particles, (*object.Particle).Release)
	s.powerUps = pruneDead(s.powerUps, nil)
}

// pruneDead filters objs in place, calling release on each removed element.
func pruneDead[T object.Destructible](objs []T, release func(T)) []T {
	kept := objs[:0]
	for _, o := range objs {
		if o.IsDestroyed() {
			if release != nil {
				release(o)
			}
			continue
		}
		kept = append(kept, o)
	}
	var zero T
	for i := len(kept); i < len(objs); i++ {
		objs[i] = zero
	}
	return kept
}

func (s *Session) emit(e Event) {
	s.events = append(s.events, e)
}

// State returns the current state.
func (s *Session) State() State {
	return s.state
}

// Score returns the current score.
func (s *Session) Score() int {
	return s.score
}

// Lives returns the remaining lives.
func (s *Session) Lives() int {
	return s.lives
}

// Level returns the current level.
func (s *Session) Level() int {
	return s.level
}

// Frame returns the number of steps taken.
func (s *Session) Frame() uint64 {
	return s.frame
}

// AsteroidCount returns the number of alive asteroids, including split
// children that have not joined the world yet.
func (s *Session) AsteroidCount() int {
	n := 0
	for _, a := range s.asteroids {
		if a.Alive() {
			n++
		}
	}
	for _, obj := range s.pending {
		if a, ok := obj.(*object.Asteroid); ok && a.Alive() {
			n++
		}
	}
	return n
}

// Bounds returns the world size.
func (s *Session) Bounds() physics.Bounds {
	return s.bounds
}

// TickRate returns the number of steps per simulated second.
func (s *Session) TickRate() int {
	return s.cfg.Tick.Rate
}
