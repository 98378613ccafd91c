package loop

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/tomz197/asteroids-reborn/internal/draw"
	"github.com/tomz197/asteroids-reborn/internal/game"
	"github.com/tomz197/asteroids-reborn/internal/object"
)

// hud holds the lipgloss styles for text drawn over the canvas.
type hud struct {
	label lipgloss.Style
	value lipgloss.Style
	alert lipgloss.Style
	title lipgloss.Style
	box   lipgloss.Style
	hint  lipgloss.Style
}

func newHUD(r *lipgloss.Renderer) *hud {
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}
	return &hud{
		label: r.NewStyle().Foreground(lipgloss.Color("245")),
		value: r.NewStyle().Foreground(lipgloss.Color("15")).Bold(true),
		alert: r.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		title: r.NewStyle().Foreground(lipgloss.Color("14")).Bold(true),
		box: r.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("14")).
			Padding(0, 2).
			Align(lipgloss.Center),
		hint: r.NewStyle().Foreground(lipgloss.Color("11")),
	}
}

// drawFrame draws the current frame.
func (t *Terminal) drawFrame() error {
	if t.needsClear {
		t.cw.ClearScreen()
		t.needsClear = false
	}

	t.canvas.Clear()
	t.sprites = t.session.Sprites(t.sprites[:0])
	draw.DrawSprites(t.canvas, t.sprites)

	t.canvas.Render(t.cw)
	t.canvas.RenderBorder(t.cw)

	t.drawUI()

	return t.cw.Flush()
}

// drawUI draws the HUD and whichever overlay the session state calls for.
func (t *Terminal) drawUI() {
	width := t.canvas.TerminalWidth()
	height := t.canvas.TerminalHeight()
	snap := t.session.Snapshot()

	if !t.title {
		t.drawPlayingHUD(width, height, snap)
	}

	switch {
	case !t.shutdownAt.IsZero():
		t.drawShutdownScreen(width, height)
	case t.idle:
		t.drawInactivityScreen(width, height)
	case t.title:
		t.drawTitleScreen(width, height)
	case snap.State == game.StatePlaying && snap.LevelBanner > 0:
		t.drawOverlay(width, height, t.hud.title.Render(fmt.Sprintf("L E V E L  %d", snap.Level)))
	case snap.State == game.StatePaused:
		t.drawOverlay(width, height, t.hud.box.Render(strings.Join([]string{
			t.hud.title.Render("P A U S E D"),
			"",
			t.hud.hint.Render("P / Esc to resume"),
			t.hud.label.Render("Q to quit"),
		}, "\n")))
	case snap.State == game.StateGameOver:
		t.drawGameOverScreen(width, height, snap)
	}
}

// drawPlayingHUD draws score, lives, level and active power-up timers.
// Fields are padded to a fixed width so shrinking values leave no residue.
func (t *Terminal) drawPlayingHUD(width, height int, snap game.Snapshot) {
	h := t.hud
	left := h.label.Render("Score ") + h.value.Render(fmt.Sprintf("%-8d", snap.Score)) +
		h.label.Render("Level ") + h.value.Render(fmt.Sprintf("%-3d", snap.Level))
	t.cw.WriteAt(2, 1, left)

	lives := h.label.Render("Lives ") + h.value.Render(fmt.Sprintf("%-3d", snap.Lives))
	t.cw.WriteAt(width-lipgloss.Width(lives)-1, 1, lives)

	var timers []string
	if snap.Shield > 0 {
		timers = append(timers, h.title.Render(fmt.Sprintf("Shield %2.0fs", snap.Shield)))
	}
	if snap.RapidFire > 0 {
		timers = append(timers, h.hint.Render(fmt.Sprintf("Rapid %2.0fs", snap.RapidFire)))
	}
	status := strings.Join(timers, "  ")
	// Pad to the widest possible status so expired timers are overwritten
	t.cw.WriteAt(2, height, status+strings.Repeat(" ", max(0, 24-lipgloss.Width(status))))
}

// drawOverlay centers a multi-line block on the canvas.
func (t *Terminal) drawOverlay(width, height int, block string) {
	lines := strings.Split(block, "\n")
	top := (height-len(lines))/2 + 1
	for i, line := range lines {
		col := (width-lipgloss.Width(line))/2 + 1
		t.cw.WriteAt(max(col, 1), top+i, line)
	}
}

// controls and powerUpLegend are listed on the title screen.
var (
	controls = [][2]string{
		{"W / Up", "Thrust"},
		{"A D / arrows", "Rotate"},
		{"Space", "Fire"},
		{"P / Esc", "Pause"},
		{"R / Enter", "Restart"},
		{"Q", "Quit"},
	}
	powerUpLegend = []struct {
		kind object.PowerUpKind
		name string
		desc string
	}{
		{object.PowerUpShield, "Shield", "absorbs collisions"},
		{object.PowerUpRapidFire, "Rapid fire", "faster shots"},
		{object.PowerUpExtraLife, "Extra life", "one more ship"},
	}
)

// drawTitleScreen lists the controls and power-ups over the frozen opening wave.
func (t *Terminal) drawTitleScreen(width, height int) {
	h := t.hud
	lines := []string{
		h.title.Render("A S T E R O I D S"),
		"",
		h.label.Render("CONTROLS"),
	}
	for _, c := range controls {
		lines = append(lines, h.hint.Render(fmt.Sprintf("%-14s", c[0]))+fmt.Sprintf("%-20s", c[1]))
	}
	lines = append(lines, "", h.label.Render("POWER-UPS"))
	for _, p := range powerUpLegend {
		pen := draw.SpriteColor(object.Sprite{Kind: object.KindPowerUp, Variant: int(p.kind)})
		glyph := t.canvas.Palette().Style(pen).Render("◆")
		lines = append(lines, glyph+" "+fmt.Sprintf("%-12s", p.name)+h.label.Render(fmt.Sprintf("%-20s", p.desc)))
	}
	lines = append(lines, "", h.hint.Render(">>  Press SPACE or Enter to start  <<"))
	t.drawOverlay(width, height, h.box.Render(strings.Join(lines, "\n")))
}

// gameOverArt is the title shown when the last life is lost (figlet "small" font).
var gameOverArt = []string{
	`   ___   _   __  __ ___    _____   _____ ___  `,
	`  / __| /_\ |  \/  | __|  / _ \ \ / / __| _ \ `,
	` | (_ |/ _ \| |\/| | _|  | (_) \ V /| _||   / `,
	`  \___/_/ \_\_|  |_|___|  \___/ \_/ |___|_|_\ `,
}

// drawGameOverScreen draws the final score and the restart prompt.
func (t *Terminal) drawGameOverScreen(width, height int, snap game.Snapshot) {
	h := t.hud
	lines := make([]string, 0, len(gameOverArt)+6)
	if width >= len(gameOverArt[0])+6 {
		for _, l := range gameOverArt {
			lines = append(lines, h.alert.Render(l))
		}
	} else {
		lines = append(lines, h.alert.Render("GAME OVER"))
	}
	lines = append(lines,
		"",
		h.label.Render("Score ")+h.value.Render(fmt.Sprint(snap.Score)),
		h.label.Render(fmt.Sprintf("Level %d  ·  %d asteroids destroyed", snap.Level, snap.Killed)),
		"",
	)
	// Blinking prompt
	if time.Now().UnixMilli()/600%2 == 0 {
		lines = append(lines, h.hint.Render(">>  Press R or Enter to restart  <<"))
	} else {
		lines = append(lines, "")
	}
	t.drawOverlay(width, height, h.box.Render(strings.Join(lines, "\n")))
}

// drawInactivityScreen warns before an idle session is disconnected.
func (t *Terminal) drawInactivityScreen(width, height int) {
	remaining := t.opts.IdleDisconnect - t.now().Sub(t.lastInput)
	h := t.hud
	t.drawOverlay(width, height, h.box.Render(strings.Join([]string{
		h.alert.Render("INACTIVITY WARNING"),
		"",
		fmt.Sprintf("You will be disconnected in %d seconds.", int(remaining.Seconds())),
		h.hint.Render("Press any key to continue"),
	}, "\n")))
}

// drawShutdownScreen draws the server shutdown notification screen.
func (t *Terminal) drawShutdownScreen(width, height int) {
	remaining := int(t.shutdownAt.Sub(t.now()).Seconds()) + 1
	h := t.hud
	t.drawOverlay(width, height, h.box.Render(strings.Join([]string{
		h.alert.Render("SERVER SHUTTING DOWN"),
		"",
		"The server is restarting for maintenance.",
		"Please reconnect in a moment.",
		"",
		fmt.Sprintf("Disconnecting in %d seconds...", remaining),
		h.label.Render("Press Q to disconnect now"),
	}, "\n")))
}
