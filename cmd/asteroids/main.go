// asteroids is a vector Asteroids game for terminals, SSH and the desktop.
//
// Usage:
//
//	asteroids play           - Play in this terminal
//	asteroids serve          - Start an SSH server, one game per connection
//	asteroids window         - Play in a desktop window
//	asteroids config         - Print the effective configuration
//
// Global flags:
//
//	--config <path>       - Game config YAML (default: search ~/.asteroids, ./configs)
//	--seed <value>        - RNG seed for reproducible games (0 = time based)
//	--difficulty <preset> - easy, normal or hard
//	--log-level <level>   - debug, info, warn or error
package main

import (
	"fmt"
	"io"
	"math/rand"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/tomz197/asteroids-reborn/internal/audio"
	"github.com/tomz197/asteroids-reborn/internal/config"
	"github.com/tomz197/asteroids-reborn/internal/game"
)

var (
	// Global flags
	flagConfig     string
	flagSeed       int64
	flagDifficulty string
	flagLogLevel   string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "asteroids",
	Short: "Asteroids - shoot rocks in your terminal",
	Long: `Asteroids is a vector arcade shooter that runs in a terminal, over SSH
or in a desktop window.

Available commands:
  play     - Play in this terminal
  serve    - Start the SSH server for remote play
  window   - Play in a desktop window
  config   - Print the effective configuration

Examples:
  asteroids play
  asteroids play --difficulty hard --seed 42
  asteroids serve --port 2222
  asteroids window --scale 1.5
  asteroids config > my-asteroids.yaml`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML (env "+config.EnvConfigPath+")")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time, env "+config.EnvSeed+")")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(windowCmd)
	rootCmd.AddCommand(configCmd)
}

// newLogger builds a logger at the --log-level writing to w.
func newLogger(w io.Writer, prefix string) (*log.Logger, error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid --log-level: %w", err)
	}
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
		Level:           level,
	}), nil
}

// loadConfig reads the configuration and applies the difficulty preset.
// Validation happens when a session is created.
func loadConfig() (config.Config, error) {
	preset, err := config.ParseDifficulty(flagDifficulty)
	if err != nil {
		return config.Config{}, err
	}
	path := flagConfig
	if path == "" {
		path = config.GetEnv(config.EnvConfigPath, "")
	}
	cfg, err := config.Load(path)
	if err != nil {
		return config.Config{}, err
	}
	config.ApplyPreset(&cfg, preset)
	return cfg, nil
}

// baseSeed returns the --seed value, falling back to the environment and
// then to the clock.
func baseSeed() int64 {
	if flagSeed != 0 {
		return flagSeed
	}
	return config.GetEnvInt64(config.EnvSeed, time.Now().UnixNano())
}

// newSession creates a session with its own random source.
func newSession(cfg config.Config, seed int64, logger *log.Logger) (*game.Session, error) {
	session, err := game.New(cfg, rand.New(rand.NewSource(seed)), game.WithLogger(logger))
	if err != nil {
		return nil, fmt.Errorf("cannot start game: %w", err)
	}
	return session, nil
}

// newAudio opens the speaker unless muted. Machines without an audio
// device play silently.
func newAudio(mute bool, volume float64, logger *log.Logger) audio.Sink {
	if mute {
		return audio.Nop{}
	}
	p := audio.NewPlayer(volume, logger)
	if err := p.Initialize(); err != nil {
		logger.Warn("audio disabled", "error", err)
		return audio.Nop{}
	}
	return p
}
