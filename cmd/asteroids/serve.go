package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"os/signal"
	"sync"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/activeterm"
	"github.com/charmbracelet/wish/logging"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	"github.com/tomz197/asteroids-reborn/internal/config"
	"github.com/tomz197/asteroids-reborn/internal/draw"
	"github.com/tomz197/asteroids-reborn/internal/loop"
)

const (
	defaultHost        = "::"
	defaultPort        = "2222"
	defaultHostKeyPath = "/app/keys/host_key"
)

var (
	flagHost           string
	flagPort           string
	flagHostKey        string
	flagIdleWarn       time.Duration
	flagIdleDisconnect time.Duration
	flagShutdownNotice time.Duration
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the SSH server",
	Long: `Start an SSH server. Every connection plays its own game.

Address and host key fall back to the SSH_HOST, SSH_PORT and SSH_HOST_KEY
environment variables. On SIGTERM connected players see a shutdown notice
before they are disconnected.

Examples:
  asteroids serve
  asteroids serve --port 23234 --host-key ./host_key
  asteroids serve --difficulty hard

Players connect with:
  ssh -t localhost -p 2222`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagHost, "host", config.GetEnv(config.EnvSSHHost, defaultHost), "Listen host")
	serveCmd.Flags().StringVar(&flagPort, "port", config.GetEnv(config.EnvSSHPort, defaultPort), "Listen port")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", config.GetEnv(config.EnvSSHHostKey, defaultHostKeyPath), "Path to host key file (created if missing)")
	serveCmd.Flags().DurationVar(&flagIdleWarn, "idle-warn", loop.DefaultIdleWarn, "Warn players idle for this long")
	serveCmd.Flags().DurationVar(&flagIdleDisconnect, "idle-disconnect", loop.DefaultIdleDisconnect, "Disconnect players idle for this long")
	serveCmd.Flags().DurationVar(&flagShutdownNotice, "shutdown-notice", loop.DefaultShutdownNotice, "How long players see the shutdown notice")
}

// gameServer hands every SSH session its own game.
type gameServer struct {
	cfg      config.Config
	seed     int64
	games    atomic.Int64 // Total started, used to derive seeds
	sessions atomic.Int64 // Currently connected
	logger   *log.Logger

	shutdown chan struct{}
	active   sync.WaitGroup
}

func runServe(_ *cobra.Command, _ []string) error {
	logger, err := newLogger(os.Stderr, "asteroids-ssh")
	if err != nil {
		return err
	}
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	// Fail at startup rather than on the first connection
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("cannot start server: %w", err)
	}

	gs := &gameServer{
		cfg:      cfg,
		seed:     baseSeed(),
		logger:   logger,
		shutdown: make(chan struct{}),
	}

	opts := []ssh.Option{
		wish.WithAddress(net.JoinHostPort(flagHost, flagPort)),
		wish.WithMiddleware(
			gs.middleware,
			activeterm.Middleware(),
			logging.MiddlewareWithLogger(logger),
		),
		// Set TCP_NODELAY to reduce latency for game input
		ssh.WrapConn(func(ctx ssh.Context, conn net.Conn) net.Conn {
			if tcpConn, ok := conn.(*net.TCPConn); ok {
				_ = tcpConn.SetNoDelay(true)
			}
			return conn
		}),
	}
	if flagHostKey != "" {
		opts = append(opts, wish.WithHostKeyPath(flagHostKey))
	}

	s, err := wish.NewServer(opts...)
	if err != nil {
		return fmt.Errorf("cannot create SSH server: %w", err)
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	serveErr := make(chan error, 1)
	logger.Info("starting SSH server", "host", flagHost, "port", flagPort, "hostKey", flagHostKey)
	go func() {
		if err := s.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			serveErr <- err
		}
	}()

	select {
	case err := <-serveErr:
		return fmt.Errorf("server error: %w", err)
	case <-done:
	}

	logger.Info("shutting down, notifying connected players", "players", gs.sessions.Load())
	close(gs.shutdown)
	gs.wait(flagShutdownNotice + 5*time.Second)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown error: %w", err)
	}
	return nil
}

// wait blocks until every game has ended or timeout passes.
func (gs *gameServer) wait(timeout time.Duration) {
	finished := make(chan struct{})
	go func() {
		gs.active.Wait()
		close(finished)
	}()
	select {
	case <-finished:
	case <-time.After(timeout):
		gs.logger.Warn("players still connected after shutdown notice", "players", gs.sessions.Load())
	}
}

// middleware runs a game for the SSH session.
func (gs *gameServer) middleware(next ssh.Handler) ssh.Handler {
	return func(sess ssh.Session) {
		pty, winCh, ok := sess.Pty()
		if !ok {
			fmt.Fprintln(sess, "Error: PTY required. Please connect with: ssh -t user@host")
			return
		}

		gs.active.Add(1)
		defer gs.active.Done()
		gs.sessions.Add(1)
		defer gs.sessions.Add(-1)

		logger := gs.logger.With("user", sess.User(), "remote", sess.RemoteAddr().String())
		seed := gs.seed + gs.games.Add(1)
		logger.Info("new game session", "terminal", pty.Term, "width", pty.Window.Width, "height", pty.Window.Height, "seed", seed)

		session, err := newSession(gs.cfg, seed, logger)
		if err != nil {
			logger.Error("cannot start game", "error", err)
			return
		}

		// Create a terminal size tracker that updates on window changes
		sizeTracker := newSizeTracker(pty.Window.Width, pty.Window.Height)
		go func() {
			for win := range winCh {
				sizeTracker.update(win.Width, win.Height)
			}
		}()

		// Colors are detected per connection, never from the server's terminal
		renderer := lipgloss.NewRenderer(sess)
		renderer.SetColorProfile(termenv.ANSI256)

		err = loop.Run(sess.Context(), bufio.NewReader(sess), sess, session, loop.Options{
			TermSizeFunc:   sizeTracker.getSize,
			Renderer:       renderer,
			Logger:         logger,
			IdleWarn:       flagIdleWarn,
			IdleDisconnect: flagIdleDisconnect,
			Shutdown:       gs.shutdown,
			ShutdownNotice: flagShutdownNotice,
		})
		if err != nil && !errors.Is(err, context.Canceled) {
			logger.Error("game error", "error", err)
		}

		logger.Info("session ended", "score", session.Score(), "level", session.Level())
		next(sess)
	}
}

// sizeTracker tracks terminal size from SSH window change events.
type sizeTracker struct {
	mu     sync.RWMutex
	width  int
	height int
}

func newSizeTracker(width, height int) *sizeTracker {
	return &sizeTracker{width: width, height: height}
}

func (s *sizeTracker) update(width, height int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.width = width
	s.height = height
}

func (s *sizeTracker) getSize() (int, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.width, s.height, nil
}

var _ draw.TermSizeFunc = (*sizeTracker)(nil).getSize
