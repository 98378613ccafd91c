// Package draw renders the game into a terminal using half-block characters.
package draw

import (
	"github.com/charmbracelet/lipgloss"
)

// Point represents a 2D coordinate.
type Point struct {
	X, Y float64
}

// Block characters for drawing.
const (
	BlockFull      = '█'
	BlockUpperHalf = '▀'
	BlockLowerHalf = '▄'
)

// Color is a canvas pen color. ColorNone marks an empty pixel.
type Color uint8

const (
	ColorNone Color = iota
	ColorWhite
	ColorGray
	ColorCyan
	ColorYellow
	ColorRed
	ColorGreen
	ColorBlue
	ColorMagenta
	ColorOrange
	numColors
)

// ansiColors maps pen colors to 256-color palette indexes.
var ansiColors = [numColors]string{
	ColorWhite:   "15",
	ColorGray:    "245",
	ColorCyan:    "14",
	ColorYellow:  "11",
	ColorRed:     "9",
	ColorGreen:   "10",
	ColorBlue:    "12",
	ColorMagenta: "13",
	ColorOrange:  "208",
}

// Palette holds one lipgloss style per pen color, bound to a renderer so
// SSH sessions get their own color profile.
type Palette struct {
	styles [numColors]lipgloss.Style
}

// NewPalette builds a palette for r. A nil r uses the default renderer.
func NewPalette(r *lipgloss.Renderer) *Palette {
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}
	p := &Palette{}
	for c := range p.styles {
		p.styles[c] = r.NewStyle()
		if ansiColors[c] != "" {
			p.styles[c] = p.styles[c].Foreground(lipgloss.Color(ansiColors[c]))
		}
	}
	return p
}

// Style returns the style for c.
func (p *Palette) Style(c Color) lipgloss.Style {
	if c >= numColors {
		return p.styles[ColorNone]
	}
	return p.styles[c]
}

// WrapCopies holds up to 4 positions at which a wrapped object is drawn.
// Using a fixed array avoids allocations in the hot rendering path.
type WrapCopies struct {
	Positions [4]Point
	Count     int
}

// WrapPositions returns where an object of radius r at (x, y) must be drawn in
// a toroidal world of size w x h: its own position plus a copy on the far
// side of every edge it overlaps.
func WrapPositions(x, y, r, w, h float64) WrapCopies {
	var result WrapCopies

	dxs := [2]float64{0, 0}
	nx := 1
	switch {
	case x-r < 0:
		dxs[1] = w
		nx = 2
	case x+r > w:
		dxs[1] = -w
		nx = 2
	}
	dys := [2]float64{0, 0}
	ny := 1
	switch {
	case y-r < 0:
		dys[1] = h
		ny = 2
	case y+r > h:
		dys[1] = -h
		ny = 2
	}

	for i := 0; i < nx; i++ {
		for j := 0; j < ny; j++ {
			result.Positions[result.Count] = Point{X: x + dxs[i], Y: y + dys[j]}
			result.Count++
		}
	}
	return result
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
