package config

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("default config should validate, got %v", err)
	}
}

func TestEmbeddedYAMLMatchesDefault(t *testing.T) {
	var cfg Config
	if err := yaml.Unmarshal(DefaultYAML(), &cfg); err != nil {
		t.Fatalf("embedded yaml does not parse: %v", err)
	}
	if !reflect.DeepEqual(cfg, Default()) {
		t.Errorf("embedded yaml and Default() disagree:\nyaml:    %+v\ndefault: %+v", cfg, Default())
	}
}

func TestValidateRejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero world width", func(c *Config) { c.World.Width = 0 }},
		{"negative world height", func(c *Config) { c.World.Height = -600 }},
		{"zero tick rate", func(c *Config) { c.Tick.Rate = 0 }},
		{"negative level increment", func(c *Config) { c.Level.Increment = -1 }},
		{"negative base count", func(c *Config) { c.Level.BaseCount = -3 }},
		{"empty waves", func(c *Config) { c.Level.BaseCount = 0; c.Level.Increment = 0 }},
		{"drop chance above one", func(c *Config) { c.PowerUps.DropChance = 1.5 }},
		{"mineral hit count zero", func(c *Config) { c.Asteroids.Types.Mineral.HitCount = 0 }},
		{"split range inverted", func(c *Config) { c.Asteroids.SplitSpeedMin = 100; c.Asteroids.SplitSpeedMax = 10 }},
		{"no type weights", func(c *Config) {
			c.Asteroids.Types.Normal.Weight = 0
			c.Asteroids.Types.Ice.Weight = 0
			c.Asteroids.Types.Mineral.Weight = 0
			c.Asteroids.Types.Unstable.Weight = 0
		}},
		{"no lives", func(c *Config) { c.Ship.Lives = 0 }},
		{"zero bullet radius", func(c *Config) { c.Bullet.Radius = 0 }},
		{"negative banner", func(c *Config) { c.Level.Banner = -1 }},
		{"timed power-ups without a floor", func(c *Config) { c.PowerUps.SpawnIntervalMin = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error, got nil")
			}
			if !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("error should wrap ErrInvalidConfig, got %v", err)
			}
		})
	}
}

func TestTimedPowerUpsCanBeDisabled(t *testing.T) {
	cfg := Default()
	cfg.PowerUps.SpawnInterval = 0
	cfg.PowerUps.SpawnIntervalMin = 0
	if err := cfg.Validate(); err != nil {
		t.Errorf("a zero spawn interval disables timed power-ups and needs no floor, got %v", err)
	}
}

func TestLoadCustomPathOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	data := []byte("world:\n  width: 1024\nlevel:\n  increment: 2\n")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.World.Width != 1024 {
		t.Errorf("world width: expected 1024, got %v", cfg.World.Width)
	}
	if cfg.World.Height != Default().World.Height {
		t.Errorf("world height should keep default %v, got %v", Default().World.Height, cfg.World.Height)
	}
	if cfg.Level.Increment != 2 {
		t.Errorf("level increment: expected 2, got %d", cfg.Level.Increment)
	}
}

func TestLoadMissingCustomPath(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing custom config")
	}
}

func TestMarshalRoundTripsDefault(t *testing.T) {
	data, err := Marshal(Default())
	if err != nil {
		t.Fatal(err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(cfg, Default()) {
		t.Error("marshalled default config does not decode back to Default()")
	}
}

func TestParseDifficulty(t *testing.T) {
	for _, s := range []string{"", "easy", "normal", "hard"} {
		if _, err := ParseDifficulty(s); err != nil {
			t.Errorf("ParseDifficulty(%q): %v", s, err)
		}
	}
	if _, err := ParseDifficulty("nightmare"); err == nil {
		t.Error("expected error for unknown preset")
	}
}

func TestApplyPreset(t *testing.T) {
	base := Default()

	easy := Default()
	ApplyPreset(&easy, DifficultyEasy)
	if easy.Ship.Lives <= base.Ship.Lives {
		t.Errorf("easy should grant more lives: base %d, easy %d", base.Ship.Lives, easy.Ship.Lives)
	}

	hard := Default()
	ApplyPreset(&hard, DifficultyHard)
	if hard.Level.Start <= base.Level.Start {
		t.Errorf("hard should start at a later level: base %d, hard %d", base.Level.Start, hard.Level.Start)
	}
	if err := hard.Validate(); err != nil {
		t.Errorf("hard preset should stay valid: %v", err)
	}

	normal := Default()
	ApplyPreset(&normal, DifficultyNormal)
	if !reflect.DeepEqual(normal, base) {
		t.Error("normal preset should not change the config")
	}
}

func TestGetEnvInt64(t *testing.T) {
	t.Setenv(EnvSeed, "42")
	if got := GetEnvInt64(EnvSeed, 7); got != 42 {
		t.Errorf("expected 42, got %d", got)
	}
	t.Setenv(EnvSeed, "not-a-number")
	if got := GetEnvInt64(EnvSeed, 7); got != 7 {
		t.Errorf("expected fallback 7, got %d", got)
	}
}
