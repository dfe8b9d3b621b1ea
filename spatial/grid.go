package spatial

import (
	"errors"
	"math"
)

var (
	// ErrBadCellSize indicates a non-positive or non-finite cell size.
	ErrBadCellSize = errors.New("spatial: cell size must be a positive finite number")
	// ErrBadExtent indicates a non-positive or non-finite canvas extent.
	ErrBadExtent = errors.New("spatial: width and height must be positive finite numbers")
)

// Grid is a uniform bucket grid. Cells are stored row-major: idx = cy*Cols + cx.
type Grid struct {
	Width, Height float64
	CellSize      float64
	Cols, Rows    int
	cells         [][]int
	count         int
}

// NewGrid allocates a grid covering width×height with square cells of cellSize.
// Complexity: O(Cols×Rows) time and memory.
func NewGrid(width, height, cellSize float64) (*Grid, error) {
	if !(cellSize > 0) || math.IsInf(cellSize, 0) {
		return nil, ErrBadCellSize
	}
	if !(width > 0) || !(height > 0) || math.IsInf(width, 0) || math.IsInf(height, 0) {
		return nil, ErrBadExtent
	}
	cols := int(math.Ceil(width / cellSize))
	rows := int(math.Ceil(height / cellSize))

	return &Grid{
		Width:    width,
		Height:   height,
		CellSize: cellSize,
		Cols:     cols,
		Rows:     rows,
		cells:    make([][]int, cols*rows),
	}, nil
}

// InBounds reports whether cell (cx,cy) lies within the grid.
// Complexity: O(1).
func (g *Grid) InBounds(cx, cy int) bool {
	return cx >= 0 && cx < g.Cols && cy >= 0 && cy < g.Rows
}

// Cell maps a canvas point to its clamped cell coordinates.
// Complexity: O(1).
func (g *Grid) Cell(x, y float64) (cx, cy int) {
	return clampInt(int(math.Floor(x/g.CellSize)), 0, g.Cols-1),
		clampInt(int(math.Floor(y/g.CellSize)), 0, g.Rows-1)
}

// Index maps a canvas point to its row-major cell index.
// Complexity: O(1).
func (g *Grid) Index(x, y float64) int {
	cx, cy := g.Cell(x, y)
	return cy*g.Cols + cx
}

// Coordinate converts a row-major cell index back to (cx,cy).
// Complexity: O(1).
func (g *Grid) Coordinate(idx int) (cx, cy int) {
	return idx % g.Cols, idx / g.Cols
}

// Insert records id at (x,y).
// Complexity: O(1) amortized.
func (g *Grid) Insert(id int, x, y float64) {
	i := g.Index(x, y)
	g.cells[i] = append(g.cells[i], id)
	g.count++
}

// Len returns the number of inserted IDs.
func (g *Grid) Len() int {
	return g.count
}

// Query appends to dst every ID stored in cells within ceil(radius/CellSize)
// of the cell containing (x,y), in cell-major then insertion order.
// Complexity: O(k + c).
func (g *Grid) Query(dst []int, x, y, radius float64) []int {
	if radius < 0 || math.IsNaN(radius) {
		return dst
	}
	cx, cy := g.Cell(x, y)
	reach := int(math.Ceil(radius / g.CellSize))
	for dx := -reach; dx <= reach; dx++ {
		for dy := -reach; dy <= reach; dy++ {
			gx, gy := cx+dx, cy+dy
			if !g.InBounds(gx, gy) {
				continue
			}
			dst = append(dst, g.cells[gy*g.Cols+gx]...)
		}
	}

	return dst
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
