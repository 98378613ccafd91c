package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/tomz197/asteroids-reborn/internal/loop"
)

var (
	flagMute    bool
	flagVolume  float64
	flagLogFile string
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play in this terminal",
	Long: `Start a game in the current terminal.

Controls:
  W/Up         - Thrust
  A/D, arrows  - Rotate
  Space        - Fire
  P/Esc        - Pause
  R/Enter      - Restart (after game over)
  Q/Ctrl+C     - Quit

Logs would corrupt the screen, so they are discarded unless --log-file is set.

Examples:
  asteroids play
  asteroids play --difficulty easy --mute
  asteroids play --log-level debug --log-file asteroids.log`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().BoolVar(&flagMute, "mute", false, "Disable sound effects")
	playCmd.Flags().Float64Var(&flagVolume, "volume", 1, "Sound effect volume (1 = unchanged)")
	playCmd.Flags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file")
}

func runPlay(cmd *cobra.Command, _ []string) error {
	var logOut io.Writer = io.Discard
	if flagLogFile != "" {
		f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("cannot open log file: %w", err)
		}
		defer f.Close()
		logOut = f
	}
	logger, err := newLogger(logOut, "asteroids")
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

	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return fmt.Errorf("failed to enable raw mode: %w", err)
	}
	defer func() {
		_ = term.Restore(fd, oldState)
	}()

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGTERM, syscall.SIGHUP)
	defer stop()

	err = loop.Run(ctx, bufio.NewReader(os.Stdin), os.Stdout, session, loop.Options{
		Audio:  newAudio(flagMute, flagVolume, logger),
		Logger: logger,
	})
	if err != nil && ctx.Err() == nil {
		return fmt.Errorf("game error: %w", err)
	}
	logger.Info("game ended", "score", session.Score(), "level", session.Level())
	return nil
}
