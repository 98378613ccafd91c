// Package loop drives a game session in a terminal with the standard
// Input → Update → Draw cycle.
package loop

import (
	"bufio"
	"context"
	"io"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/tomz197/asteroids-reborn/internal/audio"
	"github.com/tomz197/asteroids-reborn/internal/draw"
	"github.com/tomz197/asteroids-reborn/internal/game"
	"github.com/tomz197/asteroids-reborn/internal/input"
	"github.com/tomz197/asteroids-reborn/internal/object"
)

// Options configures a terminal run.
type Options struct {
	TermSizeFunc draw.TermSizeFunc // Defaults to the local terminal
	Renderer     *lipgloss.Renderer
	Audio        audio.Sink
	Logger       *log.Logger

	// IdleWarn and IdleDisconnect end sessions without input. Zero disables.
	IdleWarn       time.Duration
	IdleDisconnect time.Duration

	// Shutdown, when closed, shows the shutdown screen for ShutdownNotice
	// and then ends the run.
	Shutdown       <-chan struct{}
	ShutdownNotice time.Duration
}

// Terminal owns one session and renders it to one terminal.
type Terminal struct {
	session  *game.Session
	opts     Options
	stream   *input.Stream
	mapper   input.Mapper
	canvas   *draw.Canvas
	cw       *draw.ChunkWriter
	hud      *hud
	sprites  []object.Sprite
	repeat   []input.Action
	running  bool
	title    bool // Title screen shown, session not started
	now      func() time.Time
	tickTime time.Duration

	accumulator time.Duration
	lastInput   time.Time
	idle        bool
	shutdownAt  time.Time
	needsClear  bool
}

// NewTerminal prepares a terminal run of session reading keys from r and
// writing frames to w.
func NewTerminal(session *game.Session, r *bufio.Reader, w io.Writer, opts Options) *Terminal {
	if opts.TermSizeFunc == nil {
		opts.TermSizeFunc = draw.DefaultTermSizeFunc
	}
	if opts.Audio == nil {
		opts.Audio = audio.Nop{}
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	if opts.ShutdownNotice <= 0 {
		opts.ShutdownNotice = DefaultShutdownNotice
	}

	bounds := session.Bounds()
	termWidth, termHeight, _ := opts.TermSizeFunc()
	renderWidth, renderHeight, offsetCol, offsetRow := draw.FitView(termWidth, termHeight, bounds.W, bounds.H, MaxTermWidth, MaxTermHeight)
	canvas := draw.NewScaledCanvas(renderWidth, renderHeight, bounds.W, bounds.H, draw.NewPalette(opts.Renderer))
	canvas.SetOffset(offsetCol, offsetRow)

	return &Terminal{
		session:    session,
		opts:       opts,
		stream:     input.StartStream(r),
		canvas:     canvas,
		cw:         draw.NewChunkWriter(w, offsetCol, offsetRow),
		hud:        newHUD(opts.Renderer),
		running:    true,
		title:      true,
		now:        time.Now,
		tickTime:   time.Second / time.Duration(session.TickRate()),
		needsClear: true,
	}
}

// Run starts the terminal loop. It returns nil when the player quits, the
// input ends or the session is shut down, and ctx.Err() if ctx is cancelled.
func (t *Terminal) Run(ctx context.Context) error {
	t.cw.HideCursor()
	defer func() {
		t.cw.ClearScreen()
		t.cw.ShowCursor()
		_ = t.cw.Flush()
	}()
	defer t.opts.Audio.Close()

	t.lastInput = t.now()
	lastTime := t.now()

	for t.running {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		frameStart := t.now()
		t.accumulator += frameStart.Sub(lastTime)
		lastTime = frameStart

		// ===== INPUT PHASE =====
		actions := t.processInput()
		t.checkShutdown()

		// ===== UPDATE PHASE =====
		switch {
		case !t.shutdownAt.IsZero():
		case t.title:
			t.updateTitle(actions)
		default:
			t.advance(actions)
		}

		// ===== DRAW PHASE =====
		t.updateScreen()
		if err := t.drawFrame(); err != nil {
			return err
		}

		// ===== FRAME TIMING =====
		elapsed := t.now().Sub(frameStart)
		if elapsed < t.tickTime {
			time.Sleep(t.tickTime - elapsed)
		}
	}

	return nil
}

// Run plays session in a terminal until the player quits.
func Run(ctx context.Context, r *bufio.Reader, w io.Writer, session *game.Session, opts Options) error {
	return NewTerminal(session, r, w, opts).Run(ctx)
}

// processInput samples held keys and maps them to this frame's actions.
func (t *Terminal) processInput() []input.Action {
	held := t.stream.Read()
	now := t.now()

	if held != (input.Held{}) {
		t.lastInput = now
		if t.idle {
			t.idle = false
			t.needsClear = true
		}
	} else if t.opts.IdleDisconnect > 0 && now.Sub(t.lastInput) > t.opts.IdleDisconnect {
		t.opts.Logger.Info("disconnecting idle player", "idle", now.Sub(t.lastInput).Round(time.Second))
		t.running = false
	} else if t.opts.IdleWarn > 0 && now.Sub(t.lastInput) > t.opts.IdleWarn && !t.idle {
		t.idle = true
		t.needsClear = true
	}

	actions := t.mapper.Map(held)
	for _, a := range actions {
		if a == input.ActionQuit {
			t.running = false
		}
	}
	return actions
}

// checkShutdown starts the shutdown countdown once and ends the run when it expires.
func (t *Terminal) checkShutdown() {
	if t.opts.Shutdown == nil {
		return
	}
	if t.shutdownAt.IsZero() {
		select {
		case <-t.opts.Shutdown:
			t.shutdownAt = t.now().Add(t.opts.ShutdownNotice)
			t.needsClear = true
		default:
		}
		return
	}
	if !t.now().Before(t.shutdownAt) {
		t.running = false
	}
}

// updateTitle leaves the title screen on fire or restart. Time spent on the
// title screen is never simulated.
func (t *Terminal) updateTitle(actions []input.Action) {
	t.accumulator = 0
	for _, a := range actions {
		if a == input.ActionFire || a == input.ActionRestart {
			t.title = false
			t.needsClear = true
			t.stream.Reset()
			t.mapper.Reset()
			return
		}
	}
}

// advance runs as many fixed steps as the accumulated time allows. The
// frame's actions go to the first step; catch-up steps only repeat the
// held actions so edges are never applied twice.
func (t *Terminal) advance(actions []input.Action) {
	if limit := maxStepsPerFrame * t.tickTime; t.accumulator > limit {
		t.accumulator = limit
	}
	for t.accumulator >= t.tickTime {
		res := t.session.Step(actions)
		t.opts.Audio.Handle(res.Events)
		t.accumulator -= t.tickTime

		t.repeat = heldOnly(t.repeat[:0], actions)
		actions = t.repeat
	}
}

// heldOnly appends the actions of a that repeat while their key is held.
func heldOnly(dst, a []input.Action) []input.Action {
	for _, action := range a {
		switch action {
		case input.ActionRotateLeft, input.ActionRotateRight, input.ActionFire:
			dst = append(dst, action)
		}
	}
	return dst
}

// updateScreen handles terminal resize, fitting the world into the terminal.
// On actual size changes, the terminal is cleared to remove residual pixels
// outside the new canvas area.
func (t *Terminal) updateScreen() {
	termWidth, termHeight, err := t.opts.TermSizeFunc()
	if err != nil {
		return
	}
	bounds := t.session.Bounds()
	renderWidth, renderHeight, offsetCol, offsetRow := draw.FitView(termWidth, termHeight, bounds.W, bounds.H, MaxTermWidth, MaxTermHeight)

	if renderWidth != t.canvas.TerminalWidth() || renderHeight != t.canvas.TerminalHeight() ||
		offsetCol != t.canvas.OffsetCol() || offsetRow != t.canvas.OffsetRow() {
		t.needsClear = true
	}

	t.canvas.Resize(renderWidth, renderHeight)
	t.canvas.SetOffset(offsetCol, offsetRow)
	t.cw.SetOffset(offsetCol, offsetRow)
}
