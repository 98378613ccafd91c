package desktop

import (
	"errors"
	"math/rand"
	"strings"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/tomz197/asteroids-reborn/internal/config"
	"github.com/tomz197/asteroids-reborn/internal/draw"
	"github.com/tomz197/asteroids-reborn/internal/game"
	"github.com/tomz197/asteroids-reborn/internal/input"
	"github.com/tomz197/asteroids-reborn/internal/object"
)

func newGame(t *testing.T, keys ...ebiten.Key) *Game {
	t.Helper()
	s, err := game.New(config.Default(), rand.New(rand.NewSource(3)))
	if err != nil {
		t.Fatal(err)
	}
	g := NewGame(s, Options{})
	g.pressed = pressing(keys...)
	g.title = false
	return g
}

func pressing(keys ...ebiten.Key) func(ebiten.Key) bool {
	return func(k ebiten.Key) bool {
		for _, p := range keys {
			if p == k {
				return true
			}
		}
		return false
	}
}

func TestHeldKeys(t *testing.T) {
	tests := []struct {
		name string
		keys []ebiten.Key
		want input.Held
	}{
		{"none", nil, input.Held{}},
		{"arrows", []ebiten.Key{ebiten.KeyUp, ebiten.KeyLeft}, input.Held{Thrust: true, Left: true}},
		{"wasd", []ebiten.Key{ebiten.KeyW, ebiten.KeyD}, input.Held{Thrust: true, Right: true}},
		{"fire", []ebiten.Key{ebiten.KeySpace}, input.Held{Fire: true}},
		{"escape pauses", []ebiten.Key{ebiten.KeyEscape}, input.Held{Pause: true}},
		{"enter restarts", []ebiten.Key{ebiten.KeyEnter}, input.Held{Restart: true}},
		{"quit", []ebiten.Key{ebiten.KeyQ}, input.Held{Quit: true}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := heldKeys(pressing(tt.keys...)); got != tt.want {
				t.Errorf("got %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestUpdateStepsOncePerTick(t *testing.T) {
	g := newGame(t)
	for i := 0; i < 3; i++ {
		if err := g.Update(); err != nil {
			t.Fatal(err)
		}
	}
	if g.session.Frame() != 3 {
		t.Errorf("expected 3 steps, got %d", g.session.Frame())
	}
}

func TestUpdatePauseIsEdgeTriggered(t *testing.T) {
	g := newGame(t, ebiten.KeyP)
	for i := 0; i < 5; i++ {
		if err := g.Update(); err != nil {
			t.Fatal(err)
		}
	}
	if g.session.State() != game.StatePaused {
		t.Errorf("holding P should pause once, got %s", g.session.State())
	}
}

func TestTitleWaitsForStart(t *testing.T) {
	g := newGame(t, ebiten.KeyP, ebiten.KeyLeft)
	g.title = true
	for i := 0; i < 3; i++ {
		if err := g.Update(); err != nil {
			t.Fatal(err)
		}
	}
	if !g.title || g.session.Frame() != 0 {
		t.Fatalf("title screen should ignore other keys and not step, frame %d", g.session.Frame())
	}

	g.pressed = pressing(ebiten.KeySpace)
	if err := g.Update(); err != nil {
		t.Fatal(err)
	}
	if g.title {
		t.Error("space should leave the title screen")
	}
	if err := g.Update(); err != nil {
		t.Fatal(err)
	}
	if g.session.Frame() != 1 {
		t.Errorf("the game should step once started, got %d steps", g.session.Frame())
	}
}

func TestUpdateQuitTerminates(t *testing.T) {
	g := newGame(t, ebiten.KeyQ)
	if err := g.Update(); !errors.Is(err, ebiten.Termination) {
		t.Errorf("expected ebiten.Termination, got %v", err)
	}
	if g.session.Frame() != 0 {
		t.Error("quitting should not step the session")
	}
}

func TestLayoutIsWorldSize(t *testing.T) {
	g := newGame(t)
	w, h := g.Layout(1920, 1080)
	b := g.session.Bounds()
	if w != int(b.W) || h != int(b.H) {
		t.Errorf("layout %dx%d, want %vx%v", w, h, b.W, b.H)
	}
}

func TestSpriteColor(t *testing.T) {
	ice := spriteColor(object.Sprite{Kind: object.KindAsteroid, Variant: int(object.AsteroidIce)})
	if ice != rgba[draw.ColorCyan] {
		t.Errorf("ice asteroid should be cyan, got %v", ice)
	}
	fading := spriteColor(object.Sprite{Kind: object.KindParticle, Fade: 0.5})
	if fading.A == 0 || fading.A == 0xff {
		t.Errorf("half-faded particle should be translucent, got alpha %d", fading.A)
	}
	gone := spriteColor(object.Sprite{Kind: object.KindParticle, Fade: -1})
	if gone.A != 0 {
		t.Errorf("expired particle should be transparent, got alpha %d", gone.A)
	}
}

func TestHUDLines(t *testing.T) {
	lines := hudLines(game.Snapshot{Score: 1200, Level: 2, Lives: 1, Shield: 4, State: game.StateGameOver, Killed: 9})
	text := strings.Join(lines, "\n")
	for _, want := range []string{"Score 1200", "Level 2", "Lives 1", "Shield 4s", "GAME OVER", "9 asteroids destroyed"} {
		if !strings.Contains(text, want) {
			t.Errorf("HUD missing %q:\n%s", want, text)
		}
	}
	if strings.Contains(text, "Rapid") {
		t.Error("inactive rapid fire should not be shown")
	}

	banner := strings.Join(hudLines(game.Snapshot{Level: 3, LevelBanner: 1, State: game.StatePlaying}), "\n")
	if !strings.Contains(banner, "LEVEL 3") {
		t.Errorf("banner missing:\n%s", banner)
	}
}
