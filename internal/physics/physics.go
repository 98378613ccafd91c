// Package physics provides toroidal vector math, collision tests and
// broad-phase spatial indexing for the simulation.
package physics

import "math"

// Bounds is the size of a wrap-around world. Positions live in [0,W) x [0,H).
type Bounds struct {
	W, H float64
}

// Wrap maps any point into [0,W) x [0,H) (Asteroids-style).
func (b Bounds) Wrap(x, y float64) (float64, float64) {
	return wrapAxis(x, b.W), wrapAxis(y, b.H)
}

func wrapAxis(v, size float64) float64 {
	if size <= 0 {
		return v
	}
	v = math.Mod(v, size)
	if v < 0 {
		v += size
	}
	// -tiny + size rounds to size
	if v >= size {
		v = 0
	}
	return v
}

// Contains reports whether the point already lies inside the bounds.
func (b Bounds) Contains(x, y float64) bool {
	return x >= 0 && x < b.W && y >= 0 && y < b.H
}

// Center returns the middle of the world.
func (b Bounds) Center() (float64, float64) {
	return b.W / 2, b.H / 2
}

// Delta returns the shortest displacement from (x1,y1) to (x2,y2),
// crossing world edges when that is shorter.
func (b Bounds) Delta(x1, y1, x2, y2 float64) (dx, dy float64) {
	return deltaAxis(x2-x1, b.W), deltaAxis(y2-y1, b.H)
}

func deltaAxis(d, size float64) float64 {
	if size <= 0 {
		return d
	}
	half := size / 2
	if d > half {
		d -= size
	} else if d < -half {
		d += size
	}
	return d
}

// DistanceSquared is the squared toroidal distance between two points.
func (b Bounds) DistanceSquared(x1, y1, x2, y2 float64) float64 {
	dx, dy := b.Delta(x1, y1, x2, y2)
	return dx*dx + dy*dy
}

// Distance is the toroidal distance between two points.
func (b Bounds) Distance(x1, y1, x2, y2 float64) float64 {
	return math.Sqrt(b.DistanceSquared(x1, y1, x2, y2))
}

// CirclesOverlap checks if two circles overlap across world edges.
// Touching circles do not overlap.
func (b Bounds) CirclesOverlap(x1, y1, r1, x2, y2, r2 float64) bool {
	minDist := r1 + r2
	return b.DistanceSquared(x1, y1, x2, y2) < minDist*minDist
}

// PointInCircle checks if a point is within radius of a center, across world edges.
func (b Bounds) PointInCircle(px, py, cx, cy, radius float64) bool {
	return b.DistanceSquared(px, py, cx, cy) <= radius*radius
}

// Integrate advances a position by velocity over dt and wraps it into b.
func Integrate(x, y, vx, vy, dt float64, b Bounds) (float64, float64) {
	return b.Wrap(x+vx*dt, y+vy*dt)
}

// Thrust accelerates a velocity along angle.
func Thrust(vx, vy, angle, accel, dt float64) (float64, float64) {
	return vx + math.Cos(angle)*accel*dt, vy + math.Sin(angle)*accel*dt
}

// Damp scales a velocity by retain per second. retain = 1 leaves it unchanged.
func Damp(vx, vy, retain, dt float64) (float64, float64) {
	if retain >= 1 {
		return vx, vy
	}
	f := math.Pow(retain, dt)
	return vx * f, vy * f
}

// ClampSpeed limits the magnitude of a velocity to maxSpeed.
func ClampSpeed(vx, vy, maxSpeed float64) (float64, float64) {
	speed := Length(vx, vy)
	if speed > maxSpeed && speed > 0 {
		scale := maxSpeed / speed
		return vx * scale, vy * scale
	}
	return vx, vy
}

// FromAngle returns the vector of length mag pointing along angle.
func FromAngle(angle, mag float64) (float64, float64) {
	return math.Cos(angle) * mag, math.Sin(angle) * mag
}

// Length returns the magnitude of a vector.
func Length(x, y float64) float64 {
	return math.Hypot(x, y)
}

// NormalizeAngle maps an angle into [-π, π].
func NormalizeAngle(a float64) float64 {
	a = math.Mod(a, 2*math.Pi)
	if a > math.Pi {
		a -= 2 * math.Pi
	} else if a < -math.Pi {
		a += 2 * math.Pi
	}
	return a
}
