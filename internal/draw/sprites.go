package draw

import (
	"math"

	"github.com/tomz197/asteroids-reborn/internal/object"
)

// SpriteColor returns the pen color for a sprite.
func SpriteColor(sp object.Sprite) Color {
	switch sp.Kind {
	case object.KindShip:
		return ColorWhite
	case object.KindAsteroid:
		switch object.AsteroidType(sp.Variant) {
		case object.AsteroidIce:
			return ColorCyan
		case object.AsteroidMineral:
			return ColorYellow
		case object.AsteroidUnstable:
			return ColorRed
		default:
			return ColorGray
		}
	case object.KindBullet:
		return ColorOrange
	case object.KindPowerUp:
		switch object.PowerUpKind(sp.Variant) {
		case object.PowerUpShield:
			return ColorBlue
		case object.PowerUpRapidFire:
			return ColorGreen
		default:
			return ColorMagenta
		}
	default:
		if sp.Fade > 0.6 {
			return ColorOrange
		}
		return ColorGray
	}
}

// DrawSprites draws every visible sprite onto c. The canvas logical size is
// the world size; objects crossing an edge are also drawn on the far side.
func DrawSprites(c *Canvas, sprites []object.Sprite) {
	w, h := c.LogicalWidth(), c.LogicalHeight()
	for _, sp := range sprites {
		if !sp.Visible {
			continue
		}
		c.SetPen(SpriteColor(sp))

		reach := sp.Radius
		if sp.Kind == object.KindShip && sp.Shielded {
			reach *= shieldScale
		}
		copies := WrapPositions(sp.X, sp.Y, reach, w, h)
		for i := 0; i < copies.Count; i++ {
			pos := copies.Positions[i]
			drawSpriteAt(c, sp, pos.X, pos.Y)
		}
	}
}

// shieldScale is the shield ring radius relative to the ship radius.
const shieldScale = 1.4

func drawSpriteAt(c *Canvas, sp object.Sprite, x, y float64) {
	switch sp.Kind {
	case object.KindShip:
		drawShip(c, sp, x, y)
	case object.KindAsteroid:
		drawAsteroid(c, sp, x, y)
	case object.KindPowerUp:
		drawPowerUp(c, sp, x, y)
	default:
		c.SetFloat(x, y)
	}
}

// drawShip draws a filled triangle pointing along the ship's angle.
func drawShip(c *Canvas, sp object.Sprite, x, y float64) {
	// Wings sit about 143 degrees either side of the nose
	const wing = 2.5
	r := sp.Radius

	points := c.BorrowPoints(3)
	points[0] = Point{X: x + math.Cos(sp.Angle)*r, Y: y + math.Sin(sp.Angle)*r}
	points[1] = Point{X: x + math.Cos(sp.Angle+wing)*r*0.7, Y: y + math.Sin(sp.Angle+wing)*r*0.7}
	points[2] = Point{X: x + math.Cos(sp.Angle-wing)*r*0.7, Y: y + math.Sin(sp.Angle-wing)*r*0.7}
	c.DrawPolygon(points, true)

	if sp.Thrusting {
		c.SetPen(ColorOrange)
		tail := Point{X: x - math.Cos(sp.Angle)*r*1.1, Y: y - math.Sin(sp.Angle)*r*1.1}
		c.DrawLine(Point{X: x - math.Cos(sp.Angle)*r*0.5, Y: y - math.Sin(sp.Angle)*r*0.5}, tail)
	}
	if sp.Shielded {
		c.SetPen(ColorBlue)
		c.DrawCircle(x, y, r*shieldScale)
	}
}

// drawAsteroid draws the irregular outline, one vertex per outline entry.
func drawAsteroid(c *Canvas, sp object.Sprite, x, y float64) {
	n := len(sp.Outline)
	if n < 3 {
		c.DrawCircle(x, y, sp.Radius)
		return
	}
	points := c.BorrowPoints(n)
	for i, dist := range sp.Outline {
		a := sp.Angle + float64(i)*2*math.Pi/float64(n)
		points[i] = Point{X: x + math.Cos(a)*dist, Y: y + math.Sin(a)*dist}
	}
	c.DrawPolygon(points, false)
}

// drawPowerUp draws a diamond with a dot at its center.
func drawPowerUp(c *Canvas, sp object.Sprite, x, y float64) {
	r := sp.Radius
	points := c.BorrowPoints(4)
	points[0] = Point{X: x, Y: y - r}
	points[1] = Point{X: x + r, Y: y}
	points[2] = Point{X: x, Y: y + r}
	points[3] = Point{X: x - r, Y: y}
	c.DrawPolygon(points, false)
	c.SetFloat(x, y)
}
