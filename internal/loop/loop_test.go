package loop

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"io"
	"math/rand"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/tomz197/asteroids-reborn/internal/config"
	"github.com/tomz197/asteroids-reborn/internal/game"
	"github.com/tomz197/asteroids-reborn/internal/input"
)

func fixedSize() (int, int, error) { return 80, 30, nil }

func newSession(t *testing.T) *game.Session {
	t.Helper()
	s, err := game.New(config.Default(), rand.New(rand.NewSource(7)))
	if err != nil {
		t.Fatal(err)
	}
	return s
}

// syncBuffer is a bytes.Buffer safe for the loop goroutine and the test.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

type recordingSink struct {
	events []game.Event
	closed bool
}

func (r *recordingSink) Handle(events []game.Event) { r.events = append(r.events, events...) }
func (r *recordingSink) Close()                     { r.closed = true }

func runWithTimeout(t *testing.T, fn func() error) error {
	t.Helper()
	done := make(chan error, 1)
	go func() { done <- fn() }()
	select {
	case err := <-done:
		return err
	case <-time.After(5 * time.Second):
		t.Fatal("loop did not stop")
		return nil
	}
}

func TestRunQuitsOnQ(t *testing.T) {
	var out syncBuffer
	sink := &recordingSink{}
	r := bufio.NewReader(strings.NewReader("q"))

	session := newSession(t)
	err := runWithTimeout(t, func() error {
		return Run(context.Background(), r, &out, session, Options{TermSizeFunc: fixedSize, Audio: sink})
	})
	if err != nil {
		t.Fatalf("expected clean exit, got %v", err)
	}
	if !strings.Contains(out.String(), "\033[?25l") || !strings.Contains(out.String(), "\033[?25h") {
		t.Error("cursor should be hidden while running and restored on exit")
	}
	if !sink.closed {
		t.Error("audio sink should be closed on exit")
	}
}

func TestRunStopsOnContextCancel(t *testing.T) {
	pr, pw := io.Pipe()
	defer pw.Close()
	var out syncBuffer
	ctx, cancel := context.WithCancel(context.Background())

	go func() {
		time.Sleep(50 * time.Millisecond)
		cancel()
	}()
	session := newSession(t)
	err := runWithTimeout(t, func() error {
		return Run(ctx, bufio.NewReader(pr), &out, session, Options{TermSizeFunc: fixedSize})
	})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestRunShowsShutdownNotice(t *testing.T) {
	pr, pw := io.Pipe()
	defer pw.Close()
	var out syncBuffer
	shutdown := make(chan struct{})
	close(shutdown)

	session := newSession(t)
	err := runWithTimeout(t, func() error {
		return Run(context.Background(), bufio.NewReader(pr), &out, session, Options{
			TermSizeFunc:   fixedSize,
			Shutdown:       shutdown,
			ShutdownNotice: 50 * time.Millisecond,
		})
	})
	if err != nil {
		t.Fatalf("expected clean exit, got %v", err)
	}
	if !strings.Contains(out.String(), "SERVER SHUTTING DOWN") {
		t.Error("shutdown screen was never drawn")
	}
}

func TestRunDisconnectsIdlePlayer(t *testing.T) {
	pr, pw := io.Pipe()
	defer pw.Close()
	var out syncBuffer

	session := newSession(t)
	err := runWithTimeout(t, func() error {
		return Run(context.Background(), bufio.NewReader(pr), &out, session, Options{
			TermSizeFunc:   fixedSize,
			IdleWarn:       10 * time.Millisecond,
			IdleDisconnect: 100 * time.Millisecond,
		})
	})
	if err != nil {
		t.Fatalf("expected clean exit, got %v", err)
	}
	if !strings.Contains(out.String(), "INACTIVITY WARNING") {
		t.Error("idle warning was never drawn")
	}
}

func TestAdvanceRunsFixedSteps(t *testing.T) {
	pr, pw := io.Pipe()
	defer pw.Close()
	session := newSession(t)
	sink := &recordingSink{}
	term := NewTerminal(session, bufio.NewReader(pr), io.Discard, Options{TermSizeFunc: fixedSize, Audio: sink})

	term.accumulator = 3*term.tickTime + term.tickTime/2
	term.advance([]input.Action{input.ActionFire})
	if session.Frame() != 3 {
		t.Errorf("expected 3 steps, got %d", session.Frame())
	}
	if term.accumulator != term.tickTime/2 {
		t.Errorf("leftover time should carry over, got %v", term.accumulator)
	}
	fired := 0
	for _, e := range sink.events {
		if e.Kind == game.EventFire {
			fired++
		}
	}
	if fired == 0 {
		t.Error("fire events should reach the audio sink")
	}

	term.accumulator = time.Hour
	term.advance(nil)
	if session.Frame() != 3+maxStepsPerFrame {
		t.Errorf("catch-up should be capped at %d steps, got %d", maxStepsPerFrame, session.Frame()-3)
	}
}

func TestAdvanceAppliesEdgesOnce(t *testing.T) {
	pr, pw := io.Pipe()
	defer pw.Close()
	session := newSession(t)
	term := NewTerminal(session, bufio.NewReader(pr), io.Discard, Options{TermSizeFunc: fixedSize})

	term.accumulator = 2 * term.tickTime
	term.advance([]input.Action{input.ActionPause})
	if session.State() != game.StatePaused {
		t.Errorf("a pause edge over two steps should leave the game paused, got %s", session.State())
	}
}

func TestHeldOnly(t *testing.T) {
	got := heldOnly(nil, []input.Action{
		input.ActionThrustOn, input.ActionRotateLeft, input.ActionPause,
		input.ActionFire, input.ActionRestart, input.ActionRotateRight,
	})
	want := []input.Action{input.ActionRotateLeft, input.ActionFire, input.ActionRotateRight}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("got %v, want %v", got, want)
		}
	}
}

func TestDrawFramePausedOverlay(t *testing.T) {
	pr, pw := io.Pipe()
	defer pw.Close()
	var out bytes.Buffer
	session := newSession(t)
	session.Step([]input.Action{input.ActionPause})
	term := NewTerminal(session, bufio.NewReader(pr), &out, Options{TermSizeFunc: fixedSize})
	term.title = false

	if err := term.drawFrame(); err != nil {
		t.Fatal(err)
	}
	frame := out.String()
	if !strings.Contains(frame, "P A U S E D") {
		t.Error("paused overlay missing")
	}
	if !strings.Contains(frame, "Score") || !strings.Contains(frame, "Lives") {
		t.Error("HUD missing")
	}
}

func TestTitleScreen(t *testing.T) {
	pr, pw := io.Pipe()
	defer pw.Close()
	var out bytes.Buffer
	session := newSession(t)
	term := NewTerminal(session, bufio.NewReader(pr), &out, Options{TermSizeFunc: fixedSize})

	if err := term.drawFrame(); err != nil {
		t.Fatal(err)
	}
	frame := out.String()
	for _, want := range []string{"A S T E R O I D S", "CONTROLS", "POWER-UPS", "Rapid fire", "Press SPACE"} {
		if !strings.Contains(frame, want) {
			t.Errorf("title screen missing %q", want)
		}
	}
	if strings.Contains(frame, "Score") {
		t.Error("HUD should wait for the game to start")
	}

	term.accumulator = 3 * term.tickTime
	term.updateTitle([]input.Action{input.ActionRotateLeft, input.ActionPause})
	if !term.title || term.accumulator != 0 {
		t.Error("only fire or restart should leave the title screen, and no time should build up")
	}
	term.updateTitle([]input.Action{input.ActionFire})
	if term.title {
		t.Error("fire should start the game")
	}
	if session.Frame() != 0 {
		t.Errorf("the title screen must not step the session, got %d steps", session.Frame())
	}
}

func TestDrawFrameLevelBanner(t *testing.T) {
	pr, pw := io.Pipe()
	defer pw.Close()
	var out bytes.Buffer
	session := newSession(t)
	term := NewTerminal(session, bufio.NewReader(pr), &out, Options{TermSizeFunc: fixedSize})
	term.title = false

	if err := term.drawFrame(); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "L E V E L  1") {
		t.Error("a fresh level should show its banner")
	}
}
