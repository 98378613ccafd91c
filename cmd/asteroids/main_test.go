package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/tomz197/asteroids-reborn/internal/config"
)

// withFlags resets the global flags for one test.
func withFlags(t *testing.T, cfgPath, difficulty string, seed int64) {
	t.Helper()
	oldCfg, oldDiff, oldSeed := flagConfig, flagDifficulty, flagSeed
	flagConfig, flagDifficulty, flagSeed = cfgPath, difficulty, seed
	t.Cleanup(func() {
		flagConfig, flagDifficulty, flagSeed = oldCfg, oldDiff, oldSeed
	})
}

func TestLoadConfigAppliesDifficulty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "asteroids.yaml")
	if err := os.WriteFile(path, []byte("ship:\n  lives: 5\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	withFlags(t, path, "easy", 0)

	cfg, err := loadConfig()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Ship.Lives != 7 {
		t.Errorf("expected 5 lives from the file plus 2 for easy, got %d", cfg.Ship.Lives)
	}
}

func TestLoadConfigRejectsUnknownDifficulty(t *testing.T) {
	withFlags(t, "", "nightmare", 0)
	if _, err := loadConfig(); err == nil {
		t.Error("expected an error for an unknown difficulty")
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	withFlags(t, filepath.Join(t.TempDir(), "missing.yaml"), "", 0)
	if _, err := loadConfig(); err == nil {
		t.Error("expected an error for a missing config file")
	}
}

func TestBaseSeed(t *testing.T) {
	withFlags(t, "", "", 42)
	t.Setenv(config.EnvSeed, "7")
	if got := baseSeed(); got != 42 {
		t.Errorf("--seed should win, got %d", got)
	}
	flagSeed = 0
	if got := baseSeed(); got != 7 {
		t.Errorf("expected the environment seed, got %d", got)
	}
}

func TestNewSessionRejectsInvalidConfig(t *testing.T) {
	cfg := config.Default()
	cfg.World.Width = 0
	_, err := newSession(cfg, 1, nil)
	if !errors.Is(err, config.ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig, got %v", err)
	}
}

func TestConfigCommandPrintsYAML(t *testing.T) {
	withFlags(t, "", "hard", 0)
	var out bytes.Buffer
	configCmd.SetOut(&out)
	t.Cleanup(func() { configCmd.SetOut(nil) })

	if err := runConfig(configCmd, nil); err != nil {
		t.Fatal(err)
	}
	for _, section := range []string{"world:", "ship:", "asteroids:"} {
		if !strings.Contains(out.String(), section) {
			t.Errorf("output missing %q", section)
		}
	}
}

func TestSizeTracker(t *testing.T) {
	s := newSizeTracker(80, 24)
	s.update(120, 40)
	w, h, err := s.getSize()
	if err != nil || w != 120 || h != 40 {
		t.Errorf("got %dx%d (%v), want 120x40", w, h, err)
	}
}
