package object

import (
	"math"
	"math/rand"
	"testing"

	"github.com/tomz197/asteroids-reborn/internal/config"
	"github.com/tomz197/asteroids-reborn/internal/physics"
)

// queue is a Spawner that records spawned objects.
type queue struct {
	objs []Object
}

func (q *queue) Spawn(obj Object) {
	q.objs = append(q.objs, obj)
}

func testContext(q *queue) UpdateContext {
	return UpdateContext{
		Dt:      1.0 / 60,
		Bounds:  physics.Bounds{W: 800, H: 600},
		Spawner: q,
		Rand:    rand.New(rand.NewSource(1)),
	}
}

func TestAsteroidHitCount(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	a := NewAsteroid(100, 100, 0, 0, 40, TierLarge, AsteroidMineral, 3, 0.3, rng)

	for i := 1; i <= 2; i++ {
		if a.Hit() {
			t.Fatalf("hit %d should not destroy a 3-hit asteroid", i)
		}
		if !a.Alive() {
			t.Fatalf("asteroid should be alive after hit %d", i)
		}
	}
	if !a.Hit() {
		t.Fatal("third hit should destroy the asteroid")
	}
	if a.Alive() {
		t.Error("asteroid should be dead after its last hit")
	}
	if a.Hit() {
		t.Error("hitting a destroyed asteroid must not report a second destruction")
	}
}

func TestEntitiesStayInBounds(t *testing.T) {
	q := &queue{}
	ctx := testContext(q)
	cfg := config.Default()
	rng := rand.New(rand.NewSource(7))

	ship := NewShip(799, 599, cfg.Ship, cfg.Bullet, true)
	ship.VX, ship.VY = 250, 250
	objs := []Object{
		ship,
		NewAsteroid(1, 1, -120, -90, 40, TierLarge, AsteroidNormal, 1, 0.3, rng),
		NewBullet(799.9, 0.1, 400, -400, 3, 3),
		NewParticle(0, 0, -80, -80, 1, 0.9),
		NewPowerUp(400, 599.5, 0, 200, 15, 10, 1, PowerUpShield),
	}

	for step := 0; step < 600; step++ {
		ship.Controls = Controls{Thrust: true, Turn: 1}
		for _, o := range objs {
			o.Update(ctx)
			s := o.Sprite()
			if !ctx.Bounds.Contains(s.X, s.Y) {
				t.Fatalf("step %d: %s at (%v, %v) left the world", step, s.Kind, s.X, s.Y)
			}
		}
	}
	for _, o := range q.objs {
		o.Update(ctx)
		s := o.Sprite()
		if !ctx.Bounds.Contains(s.X, s.Y) {
			t.Fatalf("spawned %s at (%v, %v) left the world", s.Kind, s.X, s.Y)
		}
	}
}

func TestShipFireCooldown(t *testing.T) {
	q := &queue{}
	ctx := testContext(q)
	cfg := config.Default()
	ship := NewShip(400, 300, cfg.Ship, cfg.Bullet, false)

	// Hold fire for one second at 60 steps per second.
	for i := 0; i < 60; i++ {
		ship.Controls.Fire = true
		ship.Update(ctx)
	}
	want := int(math.Ceil(1 / cfg.Ship.FireCooldown))
	if len(q.objs) < want-1 || len(q.objs) > want {
		t.Errorf("expected about %d bullets in one second, got %d", want, len(q.objs))
	}

	q.objs = nil
	ship.RapidFire = 10
	for i := 0; i < 60; i++ {
		ship.Controls.Fire = true
		ship.Update(ctx)
	}
	rapid := int(math.Ceil(1 / cfg.Ship.RapidFireCooldown))
	if len(q.objs) < rapid-1 {
		t.Errorf("rapid fire should allow about %d bullets, got %d", rapid, len(q.objs))
	}
}

func TestBulletInheritsShipVelocity(t *testing.T) {
	q := &queue{}
	ctx := testContext(q)
	cfg := config.Default()
	ship := NewShip(400, 300, cfg.Ship, cfg.Bullet, false)
	ship.Angle = 0
	ship.VX = 100
	ship.Controls.Fire = true
	ship.Update(ctx)

	if len(q.objs) != 1 {
		t.Fatalf("expected one bullet, got %d", len(q.objs))
	}
	b := q.objs[0].(*Bullet)
	wantVX := cfg.Bullet.Speed + ship.VX*cfg.Bullet.InheritVelocity
	if math.Abs(b.VX-wantVX) > 1 {
		t.Errorf("bullet vx: expected about %v, got %v", wantVX, b.VX)
	}
}

func TestShipRotationIsFixedPerStep(t *testing.T) {
	ctx := testContext(&queue{})
	cfg := config.Default()
	ship := NewShip(400, 300, cfg.Ship, cfg.Bullet, false)
	start := ship.Angle

	ship.Controls.Turn = 1
	ship.Update(ctx)
	delta := ship.Angle - start
	want := cfg.Ship.RotationSpeed * ctx.Dt
	if math.Abs(delta-want) > 1e-9 {
		t.Errorf("rotation per step: expected %v, got %v", want, delta)
	}
	if ship.Controls.Turn != 0 {
		t.Error("turn input should be consumed by the step")
	}
}

func TestTransientsExpire(t *testing.T) {
	b := NewBullet(0, 0, 0, 0, 3, 0.05)
	p := NewParticle(0, 0, 0, 0, 0.05, 1)
	defer p.Release()
	u := NewPowerUp(0, 0, 0, 0, 15, 0.05, 1, PowerUpExtraLife)

	for _, tr := range []interface {
		Transient
		Destructible
	}{b, p, u} {
		if tr.Age(0.03) {
			t.Error("should not expire before its lifetime")
		}
		if !tr.Age(0.03) {
			t.Error("should expire after its lifetime")
		}
		if !tr.IsDestroyed() {
			t.Error("expired transient should be marked destroyed")
		}
	}
}

func TestShipRespawn(t *testing.T) {
	cfg := config.Default()
	ship := NewShip(10, 10, cfg.Ship, cfg.Bullet, false)
	ship.VX, ship.VY = 50, 50
	ship.Shield = 4
	ship.Controls = Controls{Thrust: true, Turn: -1, Fire: true}
	ship.MarkDestroyed()

	ship.Respawn(400, 300)
	if !ship.Alive() || ship.X != 400 || ship.Y != 300 || ship.VX != 0 || ship.VY != 0 {
		t.Errorf("respawned ship should be alive at rest at (400, 300), got %+v", ship.Body)
	}
	if !ship.Protected() {
		t.Error("respawned ship should be invulnerable")
	}
	if ship.Shielded() {
		t.Error("respawn should drop the shield")
	}
	if want := (Controls{Thrust: true}); ship.Controls != want {
		t.Errorf("respawn should keep a held thrust and drop turn and fire, got %+v", ship.Controls)
	}
}

func TestTierSmaller(t *testing.T) {
	if next, ok := TierLarge.Smaller(); !ok || next != TierMedium {
		t.Errorf("large should split into medium, got %v %v", next, ok)
	}
	if _, ok := TierSmall.Smaller(); ok {
		t.Error("small asteroids have no smaller tier")
	}
}
