package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/tomz197/asteroids-reborn/internal/desktop"
)

var flagScale float64

var windowCmd = &cobra.Command{
	Use:   "window",
	Short: "Play in a desktop window",
	Long: `Open a desktop window and play with the keyboard.

Controls are the same as in the terminal: W/Up to thrust, A/D or arrows to
rotate, Space to fire, P/Esc to pause, R/Enter to restart and Q to quit.

Examples:
  asteroids window
  asteroids window --scale 1.5 --volume 0.5`,
	Args: cobra.NoArgs,
	RunE: runWindow,
}

func init() {
	windowCmd.Flags().Float64Var(&flagScale, "scale", 1, "Window pixels per world unit")
	windowCmd.Flags().BoolVar(&flagMute, "mute", false, "Disable sound effects")
	windowCmd.Flags().Float64Var(&flagVolume, "volume", 1, "Sound effect volume (1 = unchanged)")
}

func runWindow(_ *cobra.Command, _ []string) error {
	logger, err := newLogger(os.Stderr, "asteroids")
	if err != nil {
		return err
	}
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	seed := baseSeed()
	session, err := newSession(cfg, seed, logger)
	if err != nil {
		return err
	}
	logger.Info("starting game", "seed", seed, "difficulty", flagDifficulty)

	err = desktop.Run(session, desktop.Options{
		Title:  "Asteroids",
		Scale:  flagScale,
		Audio:  newAudio(flagMute, flagVolume, logger),
		Logger: logger,
	})
	if err != nil {
		return err
	}
	logger.Info("game ended", "score", session.Score(), "level", session.Level())
	return nil
}
