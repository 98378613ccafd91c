package config

import (
	"fmt"
	"math"
)

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
)

// ParseDifficulty converts a flag value into a preset. Empty means normal.
func ParseDifficulty(s string) (DifficultyPreset, error) {
	switch DifficultyPreset(s) {
	case "", DifficultyNormal:
		return DifficultyNormal, nil
	case DifficultyEasy, DifficultyHard:
		return DifficultyPreset(s), nil
	default:
		return "", fmt.Errorf("unknown difficulty %q (want easy, normal or hard)", s)
	}
}

// ApplyPreset adjusts cfg for the given difficulty. Normal leaves it untouched.
func ApplyPreset(cfg *Config, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		cfg.Ship.Lives += 2
		cfg.Level.SpeedPerLevel *= 0.5
		cfg.Level.MaxSpeed *= 0.75
		cfg.PowerUps.DropChance = math.Min(1, cfg.PowerUps.DropChance*1.5)
	case DifficultyHard:
		cfg.Ship.Lives = max(1, cfg.Ship.Lives-1)
		cfg.Level.Start += 2
		cfg.Level.SpeedPerLevel *= 1.5
		cfg.Level.MaxSpeed *= 1.25
		cfg.PowerUps.DropChance *= 0.5
	}
}
