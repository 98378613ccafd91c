// Package desktop runs a game session in a native window using ebiten.
package desktop

import (
	"errors"
	"fmt"
	"image/color"
	"io"
	"math"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/tomz197/asteroids-reborn/internal/audio"
	"github.com/tomz197/asteroids-reborn/internal/draw"
	"github.com/tomz197/asteroids-reborn/internal/game"
	"github.com/tomz197/asteroids-reborn/internal/input"
	"github.com/tomz197/asteroids-reborn/internal/object"
)

// Options configures a window run.
type Options struct {
	Title  string
	Scale  float64 // Window pixels per world unit
	Audio  audio.Sink
	Logger *log.Logger
}

// Game adapts a session to ebiten's Update/Draw/Layout cycle. ebiten calls
// Update at the session tick rate, so every Update is exactly one step.
type Game struct {
	session *game.Session
	mapper  input.Mapper
	audio   audio.Sink
	logger  *log.Logger
	sprites []object.Sprite
	pressed func(ebiten.Key) bool
	title   bool // Title screen shown, session not started
}

// NewGame wraps session for ebiten.
func NewGame(session *game.Session, opts Options) *Game {
	if opts.Audio == nil {
		opts.Audio = audio.Nop{}
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	return &Game{
		session: session,
		audio:   opts.Audio,
		logger:  opts.Logger,
		pressed: ebiten.IsKeyPressed,
		title:   true,
	}
}

// Key bindings. Arrows and WASD both steer.
var (
	thrustKeys  = []ebiten.Key{ebiten.KeyUp, ebiten.KeyW}
	leftKeys    = []ebiten.Key{ebiten.KeyLeft, ebiten.KeyA}
	rightKeys   = []ebiten.Key{ebiten.KeyRight, ebiten.KeyD}
	fireKeys    = []ebiten.Key{ebiten.KeySpace}
	pauseKeys   = []ebiten.Key{ebiten.KeyP, ebiten.KeyEscape}
	restartKeys = []ebiten.Key{ebiten.KeyR, ebiten.KeyEnter}
	quitKeys    = []ebiten.Key{ebiten.KeyQ}
)

// heldKeys samples the keyboard through pressed.
func heldKeys(pressed func(ebiten.Key) bool) input.Held {
	down := func(keys []ebiten.Key) bool {
		for _, k := range keys {
			if pressed(k) {
				return true
			}
		}
		return false
	}
	return input.Held{
		Thrust:  down(thrustKeys),
		Left:    down(leftKeys),
		Right:   down(rightKeys),
		Fire:    down(fireKeys),
		Pause:   down(pauseKeys),
		Restart: down(restartKeys),
		Quit:    down(quitKeys),
	}
}

// Update advances the session by one step. On the title screen it only
// waits for fire or restart.
func (g *Game) Update() error {
	actions := g.mapper.Map(heldKeys(g.pressed))
	for _, a := range actions {
		if a == input.ActionQuit {
			return ebiten.Termination
		}
	}
	if g.title {
		for _, a := range actions {
			if a == input.ActionFire || a == input.ActionRestart {
				g.title = false
			}
		}
		return nil
	}
	res := g.session.Step(actions)
	g.audio.Handle(res.Events)
	return nil
}

// rgba maps pen colors to window colors.
var rgba = map[draw.Color]color.RGBA{
	draw.ColorWhite:   {R: 0xff, G: 0xff, B: 0xff, A: 0xff},
	draw.ColorGray:    {R: 0x8a, G: 0x8a, B: 0x8a, A: 0xff},
	draw.ColorCyan:    {R: 0x7f, G: 0xe0, B: 0xff, A: 0xff},
	draw.ColorYellow:  {R: 0xff, G: 0xd7, B: 0x40, A: 0xff},
	draw.ColorRed:     {R: 0xff, G: 0x50, B: 0x40, A: 0xff},
	draw.ColorGreen:   {R: 0x50, G: 0xff, B: 0x70, A: 0xff},
	draw.ColorBlue:    {R: 0x50, G: 0x80, B: 0xff, A: 0xff},
	draw.ColorMagenta: {R: 0xff, G: 0x60, B: 0xff, A: 0xff},
	draw.ColorOrange:  {R: 0xff, G: 0x87, B: 0x00, A: 0xff},
}

// spriteColor returns the window color for sp, faded for expiring transients.
func spriteColor(sp object.Sprite) color.RGBA {
	c, ok := rgba[draw.SpriteColor(sp)]
	if !ok {
		c = rgba[draw.ColorWhite]
	}
	if sp.Kind == object.KindParticle {
		c.A = uint8(math.Round(255 * math.Max(0, math.Min(1, sp.Fade))))
	}
	return c
}

const strokeWidth = 1.5

// Draw renders the world and the HUD.
func (g *Game) Draw(screen *ebiten.Image) {
	bounds := g.session.Bounds()
	g.sprites = g.session.Sprites(g.sprites[:0])
	for _, sp := range g.sprites {
		if !sp.Visible {
			continue
		}
		reach := sp.Radius
		if sp.Kind == object.KindShip && sp.Shielded {
			reach *= shieldScale
		}
		copies := draw.WrapPositions(sp.X, sp.Y, reach, bounds.W, bounds.H)
		for i := 0; i < copies.Count; i++ {
			p := copies.Positions[i]
			drawSprite(screen, sp, float32(p.X), float32(p.Y))
		}
	}
	if g.title {
		g.drawTitle(screen)
		return
	}
	g.drawHUD(screen)
}

const shieldScale = 1.4

func drawSprite(screen *ebiten.Image, sp object.Sprite, x, y float32) {
	clr := spriteColor(sp)
	r := float32(sp.Radius)
	switch sp.Kind {
	case object.KindShip:
		drawShip(screen, sp, x, y, clr)
	case object.KindAsteroid:
		n := len(sp.Outline)
		if n < 3 {
			vector.StrokeCircle(screen, x, y, r, strokeWidth, clr, true)
			return
		}
		vertex := func(i int) (float32, float32) {
			a := sp.Angle + float64(i%n)*2*math.Pi/float64(n)
			d := sp.Outline[i%n]
			return x + float32(math.Cos(a)*d), y + float32(math.Sin(a)*d)
		}
		for i := 0; i < n; i++ {
			x0, y0 := vertex(i)
			x1, y1 := vertex(i + 1)
			vector.StrokeLine(screen, x0, y0, x1, y1, strokeWidth, clr, true)
		}
	case object.KindPowerUp:
		vector.StrokeLine(screen, x, y-r, x+r, y, strokeWidth, clr, true)
		vector.StrokeLine(screen, x+r, y, x, y+r, strokeWidth, clr, true)
		vector.StrokeLine(screen, x, y+r, x-r, y, strokeWidth, clr, true)
		vector.StrokeLine(screen, x-r, y, x, y-r, strokeWidth, clr, true)
		vector.DrawFilledCircle(screen, x, y, 1, clr, true)
	default:
		vector.DrawFilledCircle(screen, x, y, max(r, 1), clr, true)
	}
}

// drawShip draws the hull outline pointing along the ship's angle.
func drawShip(screen *ebiten.Image, sp object.Sprite, x, y float32, clr color.RGBA) {
	const wing = 2.5
	r := sp.Radius
	at := func(angle, dist float64) (float32, float32) {
		return x + float32(math.Cos(angle)*dist), y + float32(math.Sin(angle)*dist)
	}
	nx, ny := at(sp.Angle, r)
	lx, ly := at(sp.Angle+wing, r*0.7)
	rx, ry := at(sp.Angle-wing, r*0.7)
	vector.StrokeLine(screen, nx, ny, lx, ly, strokeWidth, clr, true)
	vector.StrokeLine(screen, lx, ly, rx, ry, strokeWidth, clr, true)
	vector.StrokeLine(screen, rx, ry, nx, ny, strokeWidth, clr, true)

	if sp.Thrusting {
		fx, fy := at(sp.Angle, -r*0.5)
		tx, ty := at(sp.Angle, -r*1.1)
		vector.StrokeLine(screen, fx, fy, tx, ty, strokeWidth, rgba[draw.ColorOrange], true)
	}
	if sp.Shielded {
		vector.StrokeCircle(screen, x, y, float32(r*shieldScale), 1, rgba[draw.ColorBlue], true)
	}
}

// hudLines returns the status text for snap.
func hudLines(snap game.Snapshot) []string {
	lines := []string{fmt.Sprintf("Score %d   Level %d   Lives %d", snap.Score, snap.Level, snap.Lives)}
	if snap.Shield > 0 {
		lines = append(lines, fmt.Sprintf("Shield %.0fs", snap.Shield))
	}
	if snap.RapidFire > 0 {
		lines = append(lines, fmt.Sprintf("Rapid %.0fs", snap.RapidFire))
	}
	switch snap.State {
	case game.StatePlaying:
		if snap.LevelBanner > 0 {
			lines = append(lines, "", fmt.Sprintf("LEVEL %d", snap.Level))
		}
	case game.StatePaused:
		lines = append(lines, "", "PAUSED - P / Esc to resume")
	case game.StateGameOver:
		lines = append(lines, "",
			"GAME OVER",
			fmt.Sprintf("%d asteroids destroyed", snap.Killed),
			"R / Enter to restart, Q to quit")
	}
	return lines
}

// titleLines is the title screen text.
var titleLines = []string{
	"A S T E R O I D S",
	"",
	"CONTROLS",
	"  W / Up          Thrust",
	"  A D / arrows    Rotate",
	"  Space           Fire",
	"  P / Esc         Pause",
	"  R / Enter       Restart",
	"  Q               Quit",
	"",
	"POWER-UPS",
	"  Shield          absorbs collisions",
	"  Rapid fire      faster shots",
	"  Extra life      one more ship",
	"",
	"Press SPACE or Enter to start",
}

// drawTitle prints the title text with a colored marker beside each power-up.
func (g *Game) drawTitle(screen *ebiten.Image) {
	const top, lineHeight = 60, 16
	left := screen.Bounds().Dx()/2 - 100
	for i, line := range titleLines {
		ebitenutil.DebugPrintAt(screen, line, left, top+i*lineHeight)
	}
	legend := len(titleLines) - 5
	for i, kind := range object.PowerUpKinds {
		clr := spriteColor(object.Sprite{Kind: object.KindPowerUp, Variant: int(kind)})
		y := float32(top + (legend+i)*lineHeight + lineHeight/2)
		vector.DrawFilledCircle(screen, float32(left-4), y, 4, clr, true)
	}
}

func (g *Game) drawHUD(screen *ebiten.Image) {
	for i, line := range hudLines(g.session.Snapshot()) {
		ebitenutil.DebugPrintAt(screen, line, 8, 6+i*16)
	}
}

// Layout keeps the logical screen at the world size; ebiten scales it to
// the window.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	b := g.session.Bounds()
	return int(b.W), int(b.H)
}

// Run opens a window and plays session until the player quits or closes it.
func Run(session *game.Session, opts Options) error {
	if opts.Title == "" {
		opts.Title = "Asteroids"
	}
	if opts.Scale <= 0 {
		opts.Scale = 1
	}
	g := NewGame(session, opts)
	defer g.audio.Close()

	b := session.Bounds()
	ebiten.SetWindowSize(int(b.W*opts.Scale), int(b.H*opts.Scale))
	ebiten.SetWindowTitle(opts.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(session.TickRate())

	g.logger.Debug("opening window", "width", b.W, "height", b.H, "tps", session.TickRate())
	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}
