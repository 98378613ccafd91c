package object

import (
	"math"

	"github.com/tomz197/asteroids-reborn/internal/physics"
)

// PowerUpKind is the effect granted on pickup.
type PowerUpKind int

const (
	PowerUpShield PowerUpKind = iota
	PowerUpRapidFire
	PowerUpExtraLife
)

// PowerUpKinds lists every kind; drops choose uniformly among them.
var PowerUpKinds = [...]PowerUpKind{PowerUpShield, PowerUpRapidFire, PowerUpExtraLife}

func (k PowerUpKind) String() string {
	switch k {
	case PowerUpShield:
		return "shield"
	case PowerUpRapidFire:
		return "rapidfire"
	case PowerUpExtraLife:
		return "extralife"
	default:
		return "unknown"
	}
}

// blinkWindow is how long before expiry a power-up starts blinking.
const blinkWindow = 3.0

// PowerUp is a collectible dropped by destroyed asteroids.
type PowerUp struct {
	Body
	Kind   PowerUpKind
	TTL    float64
	MaxTTL float64
	Drag   float64 // Velocity retained per second
}

// NewPowerUp creates a power-up drifting with the given velocity.
func NewPowerUp(x, y, vx, vy, radius, lifetime, drag float64, kind PowerUpKind) *PowerUp {
	return &PowerUp{
		Body:   Body{X: x, Y: y, VX: vx, VY: vy, Radius: radius},
		Kind:   kind,
		TTL:    lifetime,
		MaxTTL: lifetime,
		Drag:   drag,
	}
}

// Update slows and moves the power-up, spinning it slowly.
func (p *PowerUp) Update(ctx UpdateContext) {
	p.VX, p.VY = physics.Damp(p.VX, p.VY, p.Drag, ctx.Dt)
	p.Angle = math.Mod(p.Angle+ctx.Dt, 2*math.Pi)
	p.move(ctx)
}

// Age implements Transient.
func (p *PowerUp) Age(dt float64) bool {
	p.TTL -= dt
	if p.TTL <= 0 {
		p.MarkDestroyed()
		return true
	}
	return false
}

// Sprite implements Object. Power-ups blink during their last seconds.
func (p *PowerUp) Sprite() Sprite {
	visible := true
	if p.TTL < blinkWindow {
		visible = ShouldRenderBlink(p.TTL, 5)
	}
	fade := 1.0
	if p.MaxTTL > 0 {
		fade = math.Max(0, p.TTL/p.MaxTTL)
	}
	return Sprite{
		Kind:    KindPowerUp,
		Variant: int(p.Kind),
		X:       p.X,
		Y:       p.Y,
		Angle:   p.Angle,
		Radius:  p.Radius,
		Fade:    fade,
		Visible: visible,
	}
}
