package object

// Bullet is a projectile fired by the ship.
type Bullet struct {
	Body
	TTL float64 // Seconds remaining before removal
}

// NewBullet creates a bullet at (x, y) with the given velocity.
func NewBullet(x, y, vx, vy, radius, lifetime float64) *Bullet {
	return &Bullet{
		Body: Body{X: x, Y: y, VX: vx, VY: vy, Radius: radius},
		TTL:  lifetime,
	}
}

// Update moves the bullet.
func (b *Bullet) Update(ctx UpdateContext) {
	b.move(ctx)
}

// Age implements Transient.
func (b *Bullet) Age(dt float64) bool {
	b.TTL -= dt
	if b.TTL <= 0 {
		b.MarkDestroyed()
		return true
	}
	return false
}

// Sprite implements Object.
func (b *Bullet) Sprite() Sprite {
	return Sprite{
		Kind:    KindBullet,
		X:       b.X,
		Y:       b.Y,
		Radius:  b.Radius,
		Fade:    1,
		Visible: true,
	}
}
