// Package config defines the tunable game parameters, their YAML schema,
// embedded defaults and validation.
package config

// Config holds every tunable parameter of a game session.
type Config struct {
	World     WorldConfig     `yaml:"world"`
	Tick      TickConfig      `yaml:"tick"`
	Ship      ShipConfig      `yaml:"ship"`
	Bullet    BulletConfig    `yaml:"bullet"`
	Asteroids AsteroidsConfig `yaml:"asteroids"`
	Level     LevelConfig     `yaml:"level"`
	PowerUps  PowerUpsConfig  `yaml:"powerups"`
	Particles ParticlesConfig `yaml:"particles"`
}

// WorldConfig defines the toroidal play-field in world units.
type WorldConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// TickConfig defines the fixed simulation step.
type TickConfig struct {
	Rate int `yaml:"rate"` // Steps per second
}

// ShipConfig defines the player ship.
type ShipConfig struct {
	Radius                 float64 `yaml:"radius"`
	Thrust                 float64 `yaml:"thrust"`          // Acceleration, units/s²
	RotationSpeed          float64 `yaml:"rotation_speed"`  // Radians per second
	MaxSpeed               float64 `yaml:"max_speed"`       // Velocity cap
	Damping                float64 `yaml:"damping"`         // Velocity retained per second (1 = none)
	Lives                  int     `yaml:"lives"`           // Lives at session start
	FireCooldown           float64 `yaml:"fire_cooldown"`   // Seconds between shots
	RapidFireCooldown      float64 `yaml:"rapid_fire_cooldown"`
	RespawnInvulnerability float64 `yaml:"respawn_invulnerability"` // Seconds after losing a life
}

// BulletConfig defines projectiles fired by the ship.
type BulletConfig struct {
	Speed           float64 `yaml:"speed"`
	Radius          float64 `yaml:"radius"`
	Lifetime        float64 `yaml:"lifetime"`         // Seconds
	InheritVelocity float64 `yaml:"inherit_velocity"` // Share of ship velocity added to the bullet
}

// TierConfig defines one asteroid size class.
type TierConfig struct {
	Radius float64 `yaml:"radius"`
	Score  int     `yaml:"score"`
}

// TypeConfig is one row of the asteroid behavior table.
type TypeConfig struct {
	Splits         bool    `yaml:"splits"`
	HitCount       int     `yaml:"hit_count"`
	BlastRadius    float64 `yaml:"blast_radius"` // 0 = no secondary explosion
	ScoreBonus     int     `yaml:"score_bonus"`
	DropMultiplier float64 `yaml:"drop_multiplier"`
	ExtraParticles int     `yaml:"extra_particles"`
	RadiusScale    float64 `yaml:"radius_scale"`
	Weight         float64 `yaml:"weight"`           // Spawn weight at level 1
	WeightPerLevel float64 `yaml:"weight_per_level"` // Added per level after the first
}

// TypesConfig holds the behavior table keyed by asteroid type.
type TypesConfig struct {
	Normal   TypeConfig `yaml:"normal"`
	Ice      TypeConfig `yaml:"ice"`
	Mineral  TypeConfig `yaml:"mineral"`
	Unstable TypeConfig `yaml:"unstable"`
}

// AsteroidsConfig defines asteroid tiers, split behavior and types.
type AsteroidsConfig struct {
	Small         TierConfig  `yaml:"small"`
	Medium        TierConfig  `yaml:"medium"`
	Large         TierConfig  `yaml:"large"`
	SplitSpeedMin float64     `yaml:"split_speed_min"`
	SplitSpeedMax float64     `yaml:"split_speed_max"`
	RotationSpeed float64     `yaml:"rotation_speed"` // Max spin, radians per second
	Types         TypesConfig `yaml:"types"`
}

// LevelConfig defines wave composition and difficulty scaling.
type LevelConfig struct {
	Start         int     `yaml:"start"`
	BaseCount     int     `yaml:"base_count"`
	Increment     int     `yaml:"increment"`
	BaseSpeed     float64 `yaml:"base_speed"`
	SpeedPerLevel float64 `yaml:"speed_per_level"`
	MaxSpeed      float64 `yaml:"max_speed"`
	SafeRadius    float64 `yaml:"safe_radius"`
	Banner        float64 `yaml:"banner"` // Seconds the "Level N" banner stays up
}

// PowerUpsConfig defines power-up drops and effects.
type PowerUpsConfig struct {
	DropChance        float64 `yaml:"drop_chance"`
	Lifetime          float64 `yaml:"lifetime"`
	Radius            float64 `yaml:"radius"`
	Drag              float64 `yaml:"drag"`  // Velocity retained per second
	Speed             float64 `yaml:"speed"` // Max initial drift speed
	ShieldDuration    float64 `yaml:"shield_duration"`
	RapidFireDuration float64 `yaml:"rapid_fire_duration"`

	// Timed spawns: one power-up every SpawnInterval seconds (0 disables),
	// shrinking by SpawnIntervalStep per level down to SpawnIntervalMin.
	SpawnInterval     float64 `yaml:"spawn_interval"`
	SpawnIntervalStep float64 `yaml:"spawn_interval_step"`
	SpawnIntervalMin  float64 `yaml:"spawn_interval_min"`
}

// ParticlesConfig defines visual particle effects.
type ParticlesConfig struct {
	ExplosionCount int     `yaml:"explosion_count"` // Per asteroid tier step
	Speed          float64 `yaml:"speed"`
	Lifetime       float64 `yaml:"lifetime"`
	Drag           float64 `yaml:"drag"` // Velocity retained per second
	Thrust         bool    `yaml:"thrust"`
}

// Default returns the built-in configuration. It mirrors defaults/asteroids.yaml.
func Default() Config {
	return Config{
		World: WorldConfig{Width: 800, Height: 600},
		Tick:  TickConfig{Rate: 60},
		Ship: ShipConfig{
			Radius:                 20,
			Thrust:                 200,
			RotationSpeed:          3.14159,
			MaxSpeed:               300,
			Damping:                0.9,
			Lives:                  3,
			FireCooldown:           0.2,
			RapidFireCooldown:      0.1,
			RespawnInvulnerability: 3,
		},
		Bullet: BulletConfig{
			Speed:           400,
			Radius:          3,
			Lifetime:        3,
			InheritVelocity: 0.5,
		},
		Asteroids: AsteroidsConfig{
			Small:         TierConfig{Radius: 15, Score: 200},
			Medium:        TierConfig{Radius: 25, Score: 150},
			Large:         TierConfig{Radius: 40, Score: 100},
			SplitSpeedMin: 50,
			SplitSpeedMax: 90,
			RotationSpeed: 0.35,
			Types: TypesConfig{
				Normal: TypeConfig{
					Splits: true, HitCount: 1, DropMultiplier: 1, RadiusScale: 1,
					Weight: 6, WeightPerLevel: 0,
				},
				Ice: TypeConfig{
					HitCount: 1, DropMultiplier: 1, ExtraParticles: 12, RadiusScale: 0.9,
					Weight: 2, WeightPerLevel: 0.25,
				},
				Mineral: TypeConfig{
					Splits: true, HitCount: 3, ScoreBonus: 50, DropMultiplier: 2, RadiusScale: 1,
					Weight: 1, WeightPerLevel: 0.5,
				},
				Unstable: TypeConfig{
					HitCount: 1, BlastRadius: 100, ScoreBonus: 75, DropMultiplier: 1, RadiusScale: 1,
					Weight: 1, WeightPerLevel: 0.5,
				},
			},
		},
		Level: LevelConfig{
			Start:         1,
			BaseCount:     3,
			Increment:     1,
			BaseSpeed:     40,
			SpeedPerLevel: 6,
			MaxSpeed:      120,
			SafeRadius:    200,
			Banner:        2,
		},
		PowerUps: PowerUpsConfig{
			DropChance:        0.2,
			Lifetime:          10,
			Radius:            15,
			Drag:              0.75,
			Speed:             40,
			ShieldDuration:    15,
			RapidFireDuration: 15,
			SpawnInterval:     15,
			SpawnIntervalStep: 0.5,
			SpawnIntervalMin:  5,
		},
		Particles: ParticlesConfig{
			ExplosionCount: 6,
			Speed:          80,
			Lifetime:       0.8,
			Drag:           0.4,
			Thrust:         true,
		},
	}
}
