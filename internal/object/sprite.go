package object

// Sprite is the render view of one alive entity. Renderers draw sprites;
// they never see the entities themselves.
type Sprite struct {
	Kind    Kind
	Variant int // AsteroidType or PowerUpKind, zero otherwise
	Tier    Tier
	X, Y    float64
	Angle   float64
	Radius  float64

	// Outline holds vertex distances from the center, evenly spaced in angle.
	// Only asteroids have one.
	Outline []float64

	Fade      float64 // 1 = fully visible, falls to 0 as a transient expires
	Visible   bool    // false during the off phase of a blink
	Thrusting bool
	Shielded  bool
}
