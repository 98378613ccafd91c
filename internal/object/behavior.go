package object

import "github.com/tomz197/asteroids-reborn/internal/config"

// Behavior describes how an asteroid type reacts to hits and destruction.
type Behavior struct {
	Splits         bool    // Produces two children of the next smaller tier
	HitCount       int     // Hits required to destroy
	BlastRadius    float64 // Secondary explosion radius, 0 for none
	ScoreBonus     int     // Added to the tier score
	DropMultiplier float64 // Scales the power-up drop chance
	ExtraParticles int     // Added to the explosion burst
	RadiusScale    float64 // Scales the tier radius
}

// BehaviorTable maps every AsteroidType to its Behavior.
type BehaviorTable [len(AsteroidTypes)]Behavior

// NewBehaviorTable builds the table from configuration.
func NewBehaviorTable(types config.TypesConfig) BehaviorTable {
	row := func(t config.TypeConfig) Behavior {
		return Behavior{
			Splits:         t.Splits,
			HitCount:       t.HitCount,
			BlastRadius:    t.BlastRadius,
			ScoreBonus:     t.ScoreBonus,
			DropMultiplier: t.DropMultiplier,
			ExtraParticles: t.ExtraParticles,
			RadiusScale:    t.RadiusScale,
		}
	}
	var table BehaviorTable
	table[AsteroidNormal] = row(types.Normal)
	table[AsteroidIce] = row(types.Ice)
	table[AsteroidMineral] = row(types.Mineral)
	table[AsteroidUnstable] = row(types.Unstable)
	return table
}

// Of returns the behavior of t. Unknown types behave like AsteroidNormal.
func (tb *BehaviorTable) Of(t AsteroidType) Behavior {
	if t < 0 || int(t) >= len(tb) {
		return tb[AsteroidNormal]
	}
	return tb[t]
}

// MaxBlastRadius returns the largest secondary explosion radius in the table.
func (tb *BehaviorTable) MaxBlastRadius() float64 {
	r := 0.0
	for _, b := range tb {
		r = max(r, b.BlastRadius)
	}
	return r
}
