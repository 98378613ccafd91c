package draw

import (
	"math"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Canvas is a drawing buffer with 2x vertical resolution using half-block characters.
// It scales from logical world coordinates to terminal pixels.
type Canvas struct {
	termWidth      int     // Terminal columns used for rendering
	termHeight     int     // Terminal rows used for rendering
	subPixelHeight int     // termHeight * 2
	pixels         []Color // Flat slice: [y * termWidth + x], ColorNone if unset
	pen            Color

	// Scaling from logical to pixel coordinates
	logicalWidth  float64
	logicalHeight float64
	scaleX        float64 // termWidth / logicalWidth
	scaleY        float64 // (termHeight*2) / logicalHeight

	// Offset for centering the render area inside a larger terminal.
	// These are 0-based terminal offsets (columns/rows to skip).
	offsetCol int
	offsetRow int

	palette *Palette

	// Reusable buffers to reduce allocations
	runBuf          strings.Builder
	scaledBuf       []Point
	intersectionBuf []float64
	polygonBuf      []Point
}

// NewScaledCanvas creates a canvas that maps a logical space of
// logicalWidth x logicalHeight onto termWidth x termHeight cells.
func NewScaledCanvas(termWidth, termHeight int, logicalWidth, logicalHeight float64, palette *Palette) *Canvas {
	if palette == nil {
		palette = NewPalette(nil)
	}
	c := &Canvas{
		logicalWidth:  logicalWidth,
		logicalHeight: logicalHeight,
		palette:       palette,
		pen:           ColorWhite,
	}
	c.Resize(termWidth, termHeight)
	return c
}

// Resize updates the canvas for new terminal dimensions while keeping logical size.
func (c *Canvas) Resize(termWidth, termHeight int) {
	termWidth = max(termWidth, 1)
	termHeight = max(termHeight, 1)
	subPixelHeight := termHeight * 2

	if termWidth != c.termWidth || termHeight != c.termHeight {
		c.pixels = make([]Color, subPixelHeight*termWidth)
		c.termWidth = termWidth
		c.termHeight = termHeight
		c.subPixelHeight = subPixelHeight
	}

	c.scaleX = float64(termWidth) / c.logicalWidth
	c.scaleY = float64(subPixelHeight) / c.logicalHeight
}

// SetOffset sets the column and row offset for centering the canvas.
// Offsets are 0-based terminal positions: the canvas starts at (offsetCol+1, offsetRow+1).
func (c *Canvas) SetOffset(col, row int) {
	c.offsetCol = col
	c.offsetRow = row
}

// OffsetCol returns the column offset used for centering.
func (c *Canvas) OffsetCol() int {
	return c.offsetCol
}

// OffsetRow returns the row offset used for centering.
func (c *Canvas) OffsetRow() int {
	return c.offsetRow
}

// Clear resets all pixels in the canvas.
func (c *Canvas) Clear() {
	clear(c.pixels)
}

// SetPen selects the color used by subsequent drawing calls.
func (c *Canvas) SetPen(color Color) {
	c.pen = color
}

// setPixel sets a pixel at actual terminal coordinates (no scaling).
func (c *Canvas) setPixel(x, y int) {
	if x >= 0 && x < c.termWidth && y >= 0 && y < c.subPixelHeight {
		c.pixels[y*c.termWidth+x] = c.pen
	}
}

// toPixel maps a logical point to sub-pixel coordinates.
func (c *Canvas) toPixel(p Point) (int, int) {
	return int(math.Floor(p.X * c.scaleX)), int(math.Floor(p.Y * c.scaleY))
}

// SetFloat sets a pixel using logical coordinates.
func (c *Canvas) SetFloat(x, y float64) {
	c.setPixel(c.toPixel(Point{X: x, Y: y}))
}

// DrawLine draws a line between two logical points with Bresenham's
// algorithm, stepping in sub-pixel space.
func (c *Canvas) DrawLine(p1, p2 Point) {
	x, y := c.toPixel(p1)
	x2, y2 := c.toPixel(p2)

	dx, dy := abs(x2-x), -abs(y2-y)
	sx, sy := 1, 1
	if x > x2 {
		sx = -1
	}
	if y > y2 {
		sy = -1
	}

	for e := dx + dy; ; {
		c.setPixel(x, y)
		if x == x2 && y == y2 {
			return
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			x += sx
		}
		if e2 <= dx {
			e += dx
			y += sy
		}
	}
}

// DrawPolygon draws a closed polygon. If filled is true, the interior is
// filled using a scanline algorithm.
func (c *Canvas) DrawPolygon(points []Point, filled bool) {
	if len(points) < 3 {
		return
	}

	if filled {
		c.fillPolygon(points)
	}

	n := len(points)
	for i := 0; i < n; i++ {
		c.DrawLine(points[i], points[(i+1)%n])
	}
}

// circleSegments is the polygon resolution used for circles.
const circleSegments = 16

// DrawCircle draws a circle outline of logical radius r around (x, y).
func (c *Canvas) DrawCircle(x, y, r float64) {
	points := c.BorrowPoints(circleSegments)
	for i := range points {
		a := float64(i) * 2 * math.Pi / circleSegments
		points[i] = Point{X: x + math.Cos(a)*r, Y: y + math.Sin(a)*r}
	}
	c.DrawPolygon(points, false)
}

// fillPolygon fills the interior with an even-odd scanline pass in
// sub-pixel space. Each row samples at its vertical center.
func (c *Canvas) fillPolygon(points []Point) {
	if cap(c.scaledBuf) < len(points) {
		c.scaledBuf = make([]Point, len(points))
	}
	scaled := c.scaledBuf[:len(points)]

	top, bottom := math.Inf(1), math.Inf(-1)
	for i, p := range points {
		scaled[i] = Point{X: p.X * c.scaleX, Y: p.Y * c.scaleY}
		top = math.Min(top, scaled[i].Y)
		bottom = math.Max(bottom, scaled[i].Y)
	}

	first := max(int(math.Floor(top)), 0)
	last := min(int(math.Ceil(bottom)), c.subPixelHeight-1)
	for y := first; y <= last; y++ {
		mid := float64(y) + 0.5
		xs := c.intersectionBuf[:0]
		prev := scaled[len(scaled)-1]
		for _, p := range scaled {
			if (prev.Y <= mid) != (p.Y <= mid) {
				xs = append(xs, prev.X+(mid-prev.Y)/(p.Y-prev.Y)*(p.X-prev.X))
			}
			prev = p
		}
		c.intersectionBuf = xs

		sort.Float64s(xs)
		for i := 0; i+1 < len(xs); i += 2 {
			for x := int(math.Ceil(xs[i])); x <= int(math.Floor(xs[i+1])); x++ {
				c.setPixel(x, y)
			}
		}
	}
}

// cell returns the glyph and color for one terminal cell. The upper half's
// color wins when both halves are set.
func (c *Canvas) cell(row, col int) (rune, Color) {
	top := c.pixels[row*2*c.termWidth+col]
	bottom := ColorNone
	if row*2+1 < c.subPixelHeight {
		bottom = c.pixels[(row*2+1)*c.termWidth+col]
	}
	switch {
	case top != ColorNone && bottom != ColorNone:
		return BlockFull, top
	case top != ColorNone:
		return BlockUpperHalf, top
	case bottom != ColorNone:
		return BlockLowerHalf, bottom
	default:
		return ' ', ColorNone
	}
}

// Render queues every canvas row on cw. Whole rows are rewritten so the
// previous frame never needs a screen clear. Consecutive cells with the same
// color share one styled run.
func (c *Canvas) Render(cw *ChunkWriter) {
	for row := 0; row < c.termHeight; row++ {
		cw.MoveCursor(1, row+1)
		for col := 0; col < c.termWidth; {
			_, runColor := c.cell(row, col)
			c.runBuf.Reset()
			for ; col < c.termWidth; col++ {
				ch, color := c.cell(row, col)
				if color != runColor {
					break
				}
				c.runBuf.WriteRune(ch)
			}
			if runColor == ColorNone {
				cw.WriteString(c.runBuf.String())
			} else {
				cw.WriteString(c.palette.Style(runColor).Render(c.runBuf.String()))
			}
		}
	}
}

// frame is the box drawn around a centered canvas.
var frame = lipgloss.NormalBorder()

// RenderBorder frames the canvas when the terminal has spare room around
// it. Bars are drawn only on the axes that have room; corners need both.
func (c *Canvas) RenderBorder(cw *ChunkWriter) {
	sides := c.offsetCol >= 1
	caps := c.offsetRow >= 1
	right := c.termWidth + 1
	bottom := c.termHeight + 1

	if caps {
		bar := strings.Repeat(frame.Top, c.termWidth)
		if sides {
			cw.WriteAt(0, 0, frame.TopLeft+bar+frame.TopRight)
			cw.WriteAt(0, bottom, frame.BottomLeft+bar+frame.BottomRight)
		} else {
			cw.WriteAt(1, 0, bar)
			cw.WriteAt(1, bottom, bar)
		}
	}
	if sides {
		for row := 1; row <= c.termHeight; row++ {
			cw.WriteAt(0, row, frame.Left)
			cw.WriteAt(right, row, frame.Right)
		}
	}
}

// Palette returns the styles the canvas renders with.
func (c *Canvas) Palette() *Palette {
	return c.palette
}

// LogicalWidth returns the logical width.
func (c *Canvas) LogicalWidth() float64 {
	return c.logicalWidth
}

// LogicalHeight returns the logical height.
func (c *Canvas) LogicalHeight() float64 {
	return c.logicalHeight
}

// TerminalWidth returns the rendered column count.
func (c *Canvas) TerminalWidth() int {
	return c.termWidth
}

// TerminalHeight returns the rendered row count.
func (c *Canvas) TerminalHeight() int {
	return c.termHeight
}

// BorrowPoints returns a reusable slice of Points with the given length.
// The returned slice is only valid until the next call to BorrowPoints.
func (c *Canvas) BorrowPoints(n int) []Point {
	if cap(c.polygonBuf) < n {
		c.polygonBuf = make([]Point, n)
	}
	return c.polygonBuf[:n]
}
