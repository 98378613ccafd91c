package physics

import "math"

// SpatialGrid is a uniform grid for broad-phase collision detection in a wrapping world.
// Entities are inserted by position and index; QueryAround then visits the
// 3x3 cell neighborhood of a point, wrapping at world edges.
//
// Cell size must be >= the largest interaction distance (sum of radii, blast radius)
// so that every candidate lies within the neighborhood.
type SpatialGrid struct {
	invCellW float64 // cols / world width
	invCellH float64 // rows / world height
	cols     int
	rows     int
	cells    [][]int
}

// NewSpatialGrid creates a grid covering b. Cells are at least cellSize on each
// axis; the world is divided evenly so edge cells are never narrower.
func NewSpatialGrid(b Bounds, cellSize float64) *SpatialGrid {
	if cellSize <= 0 {
		cellSize = math.Max(b.W, b.H)
	}
	cols := max(1, int(b.W/cellSize))
	rows := max(1, int(b.H/cellSize))

	return &SpatialGrid{
		invCellW: float64(cols) / b.W,
		invCellH: float64(rows) / b.H,
		cols:     cols,
		rows:     rows,
		cells:    make([][]int, cols*rows),
	}
}

// Clear removes all items without releasing cell memory.
func (g *SpatialGrid) Clear() {
	for i := range g.cells {
		g.cells[i] = g.cells[i][:0]
	}
}

// Insert adds the item identified by index at a world position.
func (g *SpatialGrid) Insert(x, y float64, index int) {
	col, row := g.posToCell(x, y)
	idx := row*g.cols + col
	g.cells[idx] = append(g.cells[idx], index)
}

// QueryAround calls fn for each item in the 3x3 neighborhood of (x, y).
// Each cell is visited once. If fn returns true, iteration stops early.
func (g *SpatialGrid) QueryAround(x, y float64, fn func(index int) bool) {
	var colBuf, rowBuf [3]int
	col, row := g.posToCell(x, y)
	cols := neighbors(col, g.cols, colBuf[:0])
	rows := neighbors(row, g.rows, rowBuf[:0])

	for _, r := range rows {
		rowOffset := r * g.cols
		for _, c := range cols {
			for _, itemIdx := range g.cells[rowOffset+c] {
				if fn(itemIdx) {
					return
				}
			}
		}
	}
}

// neighbors returns the distinct wrapped indices around i. Grids narrower
// than 3 cells would otherwise visit a cell twice.
func neighbors(i, n int, buf []int) []int {
	for d := -1; d <= 1; d++ {
		j := (i + d + n) % n
		dup := false
		for _, k := range buf {
			if k == j {
				dup = true
				break
			}
		}
		if !dup {
			buf = append(buf, j)
		}
	}
	return buf
}

// posToCell converts world coordinates to grid cell coordinates.
// Clamps to the valid range to absorb floating point edge cases.
func (g *SpatialGrid) posToCell(x, y float64) (col, row int) {
	col = min(max(int(x*g.invCellW), 0), g.cols-1)
	row = min(max(int(y*g.invCellH), 0), g.rows-1)
	return col, row
}
