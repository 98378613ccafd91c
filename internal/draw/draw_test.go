package draw

import (
	"bytes"
	"strings"
	"testing"

	"github.com/tomz197/asteroids-reborn/internal/object"
)

func TestWrapPositions(t *testing.T) {
	tests := []struct {
		name  string
		x, y  float64
		count int
	}{
		{"interior", 400, 300, 1},
		{"left edge", 5, 300, 2},
		{"right edge", 795, 300, 2},
		{"top edge", 400, 5, 2},
		{"bottom-right corner", 795, 595, 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := WrapPositions(tt.x, tt.y, 20, 800, 600)
			if got.Count != tt.count {
				t.Fatalf("expected %d copies, got %d", tt.count, got.Count)
			}
			if got.Positions[0] != (Point{X: tt.x, Y: tt.y}) {
				t.Errorf("first copy should be the original position, got %+v", got.Positions[0])
			}
		})
	}

	got := WrapPositions(5, 300, 20, 800, 600)
	if got.Positions[1].X != 805 {
		t.Errorf("left-edge copy should sit past the right edge, got %v", got.Positions[1].X)
	}
}

func TestFitView(t *testing.T) {
	tests := []struct {
		name                   string
		termW, termH           int
		wantW, wantH           int
		wantOffCol, wantOffRow int
	}{
		{"exact fit", 80, 30, 80, 30, 0, 0},
		{"wide terminal", 200, 30, 80, 30, 60, 0},
		{"tall terminal", 80, 60, 80, 30, 0, 15},
		{"capped", 400, 200, 160, 60, 120, 70},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, h, oc, or := FitView(tt.termW, tt.termH, 800, 600, 160, 60)
			if w != tt.wantW || h != tt.wantH || oc != tt.wantOffCol || or != tt.wantOffRow {
				t.Errorf("FitView = (%d, %d, %d, %d), want (%d, %d, %d, %d)",
					w, h, oc, or, tt.wantW, tt.wantH, tt.wantOffCol, tt.wantOffRow)
			}
		})
	}
}

// pixelAt reads one sub-pixel, ColorNone outside the canvas.
func pixelAt(c *Canvas, x, y int) Color {
	if x < 0 || x >= c.termWidth || y < 0 || y >= c.subPixelHeight {
		return ColorNone
	}
	return c.pixels[y*c.termWidth+x]
}

func TestCanvasSetAndRender(t *testing.T) {
	c := NewScaledCanvas(10, 5, 100, 100, nil)
	c.SetPen(ColorWhite)
	c.SetFloat(0, 0)  // Top half of the first cell
	c.SetFloat(0, 10) // Bottom half of the first cell

	if pixelAt(c, 0, 0) != ColorWhite || pixelAt(c, 0, 1) != ColorWhite {
		t.Fatal("expected both halves of the first cell to be set")
	}

	var buf bytes.Buffer
	cw := NewChunkWriter(&buf, 0, 0)
	c.Render(cw)
	if err := cw.Flush(); err != nil {
		t.Fatal(err)
	}
	if !strings.ContainsRune(buf.String(), BlockFull) {
		t.Error("expected a full block in the output")
	}

	c.Clear()
	if pixelAt(c, 0, 0) != ColorNone {
		t.Error("clear should reset pixels")
	}
}

func TestDrawSpritesWrapsAcrossEdges(t *testing.T) {
	c := NewScaledCanvas(80, 30, 800, 600, nil)
	DrawSprites(c, []object.Sprite{{
		Kind:    object.KindAsteroid,
		X:       2,
		Y:       300,
		Radius:  30,
		Outline: []float64{30, 30, 30, 30, 30, 30, 30, 30},
		Visible: true,
	}})

	left, right := false, false
	for y := 0; y < 60; y++ {
		if pixelAt(c, 0, y) != ColorNone || pixelAt(c, 3, y) != ColorNone {
			left = true
		}
		if pixelAt(c, 78, y) != ColorNone || pixelAt(c, 79, y) != ColorNone {
			right = true
		}
	}
	if !left || !right {
		t.Errorf("asteroid on the left edge should draw on both sides, left=%v right=%v", left, right)
	}
}

func TestDrawSpritesSkipsHidden(t *testing.T) {
	c := NewScaledCanvas(80, 30, 800, 600, nil)
	DrawSprites(c, []object.Sprite{{Kind: object.KindBullet, X: 400, Y: 300, Radius: 3, Visible: false}})
	for y := 0; y < 60; y++ {
		for x := 0; x < 80; x++ {
			if pixelAt(c, x, y) != ColorNone {
				t.Fatalf("hidden sprite drew a pixel at (%d, %d)", x, y)
			}
		}
	}
}

func TestSpriteColor(t *testing.T) {
	tests := []struct {
		sp   object.Sprite
		want Color
	}{
		{object.Sprite{Kind: object.KindAsteroid, Variant: int(object.AsteroidIce)}, ColorCyan},
		{object.Sprite{Kind: object.KindAsteroid, Variant: int(object.AsteroidUnstable)}, ColorRed},
		{object.Sprite{Kind: object.KindAsteroid, Variant: int(object.AsteroidNormal)}, ColorGray},
		{object.Sprite{Kind: object.KindPowerUp, Variant: int(object.PowerUpShield)}, ColorBlue},
		{object.Sprite{Kind: object.KindShip}, ColorWhite},
	}
	for _, tt := range tests {
		if got := SpriteColor(tt.sp); got != tt.want {
			t.Errorf("SpriteColor(%s/%d) = %d, want %d", tt.sp.Kind, tt.sp.Variant, got, tt.want)
		}
	}
}

func TestChunkWriterFlush(t *testing.T) {
	var buf bytes.Buffer
	cw := NewChunkWriter(&buf, 2, 1)
	cw.WriteAt(1, 1, "hi")
	cw.WriteString(strings.Repeat("x", maxChunkSize*2))

	if buf.Len() != 0 {
		t.Fatal("nothing should be written before Flush")
	}
	if err := cw.Flush(); err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(buf.String(), "\033[2;3Hhi") {
		t.Errorf("cursor offset not applied: %q", buf.String()[:12])
	}
	if buf.Len() != len("\033[2;3Hhi")+maxChunkSize*2 {
		t.Errorf("unexpected output length %d", buf.Len())
	}
}

func TestRenderBorder(t *testing.T) {
	tests := []struct {
		name           string
		offCol, offRow int
		corners, sides bool
	}{
		{"no room", 0, 0, false, false},
		{"wide terminal", 5, 0, false, true},
		{"both axes", 5, 3, true, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewScaledCanvas(10, 5, 100, 50, nil)
			c.SetOffset(tt.offCol, tt.offRow)
			var buf bytes.Buffer
			cw := NewChunkWriter(&buf, tt.offCol, tt.offRow)
			c.RenderBorder(cw)
			if err := cw.Flush(); err != nil {
				t.Fatal(err)
			}
			out := buf.String()
			if got := strings.Contains(out, "┌"); got != tt.corners {
				t.Errorf("corners drawn = %v, want %v", got, tt.corners)
			}
			if got := strings.Contains(out, "│"); got != tt.sides {
				t.Errorf("side bars drawn = %v, want %v", got, tt.sides)
			}
			if tt.corners && !strings.Contains(out, "\033[3;5H┌") {
				t.Errorf("top-left corner should sit just outside the canvas: %q", out)
			}
		})
	}
}
