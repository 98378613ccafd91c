package game

import (
	"github.com/tomz197/asteroids-reborn/internal/object"
)

// resolveCollisions runs the collision passes in priority order:
// bullets first, so a bullet and the ship reaching the same asteroid in one
// step resolve in the bullet's favor, then the ship against asteroids, then
// the ship against power-ups.
func (s *Session) resolveCollisions(ctx object.UpdateContext) {
	s.populateGrid()
	s.checkBulletAsteroidCollisions(ctx)
	s.checkShipAsteroidCollision(ctx)
	s.checkShipPowerUpCollisions()
}

// populateGrid clears and re-inserts all asteroids into the spatial grid.
func (s *Session) populateGrid() {
	s.grid.Clear()
	for i, a := range s.asteroids {
		if a.Alive() {
			s.grid.Insert(a.X, a.Y, i)
		}
	}
}

// nearestAsteroid returns the closest alive asteroid overlapping the circle at
// (x, y) with radius r, or nil.
func (s *Session) nearestAsteroid(x, y, r float64) *object.Asteroid {
	var best *object.Asteroid
	bestDist := 0.0
	s.grid.QueryAround(x, y, func(i int) bool {
		a := s.asteroids[i]
		if !a.Alive() || !s.bounds.CirclesOverlap(x, y, r, a.X, a.Y, a.Radius) {
			return false
		}
		d := s.bounds.DistanceSquared(x, y, a.X, a.Y)
		if best == nil || d < bestDist {
			best, bestDist = a, d
		}
		return false
	})
	return best
}

// checkBulletAsteroidCollisions lets each bullet hit at most one asteroid.
func (s *Session) checkBulletAsteroidCollisions(ctx object.UpdateContext) {
	for _, b := range s.bullets {
		if !b.Alive() {
			continue
		}
		a := s.nearestAsteroid(b.X, b.Y, b.Radius)
		if a == nil {
			continue
		}
		b.MarkDestroyed()
		s.hitAsteroid(a, ctx)
	}
}

// checkShipAsteroidCollision handles the ship touching an asteroid.
// Respawn protection ignores the contact; an active shield absorbs it
// without harming the asteroid. Otherwise the asteroid takes a hit and the
// ship is lost.
func (s *Session) checkShipAsteroidCollision(ctx object.UpdateContext) {
	ship := s.ship
	if !ship.Alive() || ship.Protected() {
		return
	}
	a := s.nearestAsteroid(ship.X, ship.Y, ship.Radius)
	if a == nil || ship.Shielded() {
		return
	}
	s.hitAsteroid(a, ctx)
	s.loseShip(ctx)
}

// checkShipPowerUpCollisions collects every power-up the ship touches.
func (s *Session) checkShipPowerUpCollisions() {
	ship := s.ship
	if !ship.Alive() {
		return
	}
	for _, p := range s.powerUps {
		if !p.Alive() || !s.bounds.CirclesOverlap(ship.X, ship.Y, ship.Radius, p.X, p.Y, p.Radius) {
			continue
		}
		p.MarkDestroyed()
		s.applyPowerUp(p.Kind)
		s.emit(Event{Kind: EventPickup, X: p.X, Y: p.Y, PowerUp: p.Kind})
	}
}

func (s *Session) applyPowerUp(kind object.PowerUpKind) {
	switch kind {
	case object.PowerUpShield:
		s.ship.Shield = s.cfg.PowerUps.ShieldDuration
	case object.PowerUpRapidFire:
		s.ship.RapidFire = s.cfg.PowerUps.RapidFireDuration
	case object.PowerUpExtraLife:
		s.lives++
	}
	s.logger.Debug("power-up collected", "kind", kind, "lives", s.lives)
}

// hitAsteroid applies one hit and resolves destruction.
func (s *Session) hitAsteroid(a *object.Asteroid, ctx object.UpdateContext) {
	if !a.Alive() {
		return
	}
	if !a.Hit() {
		s.emit(Event{Kind: EventHit, X: a.X, Y: a.Y, Tier: a.Tier, Asteroid: a.Type})
		return
	}
	s.destroyAsteroid(a, ctx)
}

// destroyAsteroid scores a destroyed asteroid exactly once and applies its
// type's behavior: split children, extra particles, a power-up roll and, for
// explosive types, a blast that hits every other asteroid in range.
func (s *Session) destroyAsteroid(a *object.Asteroid, ctx object.UpdateContext) {
	behavior := s.spawner.Behaviors().Of(a.Type)
	points := s.spawner.TierScore(a.Tier) + behavior.ScoreBonus
	s.score += points
	s.killed++

	pc := s.cfg.Particles
	object.SpawnExplosion(a.X, a.Y, object.ExplosionSpec{
		Count:    pc.ExplosionCount*int(a.Tier) + behavior.ExtraParticles,
		Speed:    pc.Speed,
		Lifetime: pc.Lifetime,
		Drag:     pc.Drag,
	}, ctx)
	s.emit(Event{Kind: EventExplosion, X: a.X, Y: a.Y, Tier: a.Tier, Asteroid: a.Type, Score: points})

	for _, child := range s.spawner.Split(a) {
		s.Spawn(child)
	}
	if p, ok := s.spawner.Drop(a.X, a.Y, a.Type); ok {
		s.Spawn(p)
	}
	if behavior.BlastRadius > 0 {
		s.blast(a, behavior.BlastRadius, ctx)
	}
}

// blast hits every other alive asteroid whose center lies within radius of
// the exploding one. Asteroids destroyed by the blast may blast in turn.
func (s *Session) blast(origin *object.Asteroid, radius float64, ctx object.UpdateContext) {
	start := len(s.candidates)
	s.grid.QueryAround(origin.X, origin.Y, func(i int) bool {
		a := s.asteroids[i]
		if a != origin && a.Alive() && s.bounds.PointInCircle(a.X, a.Y, origin.X, origin.Y, radius) {
			s.candidates = append(s.candidates, i)
		}
		return false
	})
	hits := s.candidates[start:]
	for _, i := range hits {
		s.hitAsteroid(s.asteroids[i], ctx)
	}
	s.candidates = s.candidates[:start]
}

// loseShip removes one life. The ship respawns at the center unless no
// lives remain, in which case the game ends.
func (s *Session) loseShip(ctx object.UpdateContext) {
	ship := s.ship
	s.lives--

	pc := s.cfg.Particles
	object.SpawnExplosion(ship.X, ship.Y, object.ExplosionSpec{
		Count:    pc.ExplosionCount * 3,
		Speed:    pc.Speed,
		Lifetime: pc.Lifetime * 1.5,
		Drag:     pc.Drag,
	}, ctx)
	s.emit(Event{Kind: EventShipDestroyed, X: ship.X, Y: ship.Y})

	if s.lives > 0 {
		cx, cy := s.bounds.Center()
		ship.Respawn(cx, cy)
		s.logger.Debug("ship lost", "lives", s.lives)
		return
	}

	ship.MarkDestroyed()
	if s.fire(TriggerLivesDepleted) {
		s.emit(Event{Kind: EventGameOver, Score: s.score})
		s.logger.Info("game over", "score", s.score, "level", s.level, "destroyed", s.killed)
	}
}
