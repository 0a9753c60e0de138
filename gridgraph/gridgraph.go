// Package gridgraph provides the square board searched by the pathfinder.
//
// A Grid holds rows×rows cells laid out row-major. Cells are free or blocked,
// and carry a Role the renderer draws (start, end, open, closed, path).
// Movement is orthogonal with unit cost.
package gridgraph

import (
	"fmt"
	"image"
)

// neighborOffsets is the fixed neighbor order as (dRow, dCol): down, up, right, left.
var neighborOffsets = [4][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}

// Grid is a square board of rows×rows cells drawn on a width×width pixel area.
// Grid is not safe for concurrent mutation; callers serialise access.
type Grid struct {
	rows  int
	width int
	size  int
	cells [][]*Cell
	start *Cell
	end   *Cell
}

// NewGrid builds a rows×rows grid of free cells for a board width pixels wide.
// Each cell is width/rows pixels (truncating division).
// Returns ErrEmptyGrid if rows <= 0, ErrBadWidth if width < rows.
// Complexity: O(rows²) time and memory.
func NewGrid(rows, width int) (*Grid, error) {
	if rows <= 0 {
		return nil, ErrEmptyGrid
	}
	if width < rows {
		return nil, fmt.Errorf("%w: width=%d rows=%d", ErrBadWidth, width, rows)
	}
	g := &Grid{rows: rows, width: width, size: width / rows}
	g.build()

	return g, nil
}

// build (re)creates every cell and drops the start/end markers.
func (g *Grid) build() {
	g.cells = make([][]*Cell, g.rows)
	for r := 0; r < g.rows; r++ {
		g.cells[r] = make([]*Cell, g.rows)
		for c := 0; c < g.rows; c++ {
			g.cells[r][c] = newCell(r, c)
		}
	}
	g.start, g.end = nil, nil
}

// Reset rebuilds the grid to its default state: all cells free, no start or
// end. Equivalent to NewGrid with the same dimensions; previously obtained
// *Cell values no longer belong to g.
func (g *Grid) Reset() {
	g.build()
}

// Rows returns the number of rows (and columns).
func (g *Grid) Rows() int { return g.rows }

// Width returns the configured pixel width.
func (g *Grid) Width() int { return g.width }

// Size returns the pixel size of one cell.
func (g *Grid) Size() int { return g.size }

// InBounds reports whether (row, col) lies within the grid.
// Complexity: O(1).
func (g *Grid) InBounds(row, col int) bool {
	return row >= 0 && row < g.rows && col >= 0 && col < g.rows
}

// CellAt returns the cell at (row, col). An index outside [0, rows-1] is a
// caller bug: CellAt panics with an error wrapping ErrOutOfBounds.
func (g *Grid) CellAt(row, col int) *Cell {
	if !g.InBounds(row, col) {
		panic(fmt.Errorf("%w: (%d,%d) on %dx%d grid", ErrOutOfBounds, row, col, g.rows, g.rows))
	}
	return g.cells[row][col]
}

// Lookup is the non-panicking form of CellAt.
func (g *Grid) Lookup(row, col int) (*Cell, bool) {
	if !g.InBounds(row, col) {
		return nil, false
	}
	return g.cells[row][col], true
}

// Owns reports whether c is one of g's current cells.
func (g *Grid) Owns(c *Cell) bool {
	if c == nil || !g.InBounds(c.row, c.col) {
		return false
	}
	return g.cells[c.row][c.col] == c
}

// Cells calls fn for every cell in row-major order.
func (g *Grid) Cells(fn func(c *Cell)) {
	for _, row := range g.cells {
		for _, c := range row {
			fn(c)
		}
	}
}

// NeighborsOf returns the free orthogonal neighbors of c in the order down,
// up, right, left. It reads current blocked state on every call.
// Complexity: O(1).
func (g *Grid) NeighborsOf(c *Cell) []*Cell {
	out := make([]*Cell, 0, len(neighborOffsets))
	for _, d := range neighborOffsets {
		r, col := c.row+d[0], c.col+d[1]
		if !g.InBounds(r, col) {
			continue
		}
		n := g.cells[r][col]
		if n.blocked {
			continue
		}
		out = append(out, n)
	}
	return out
}

// RefreshNeighbors recomputes every cell's neighbor snapshot from the
// current blocked state. Run it after edits and before a search.
// Complexity: O(rows²).
func (g *Grid) RefreshNeighbors() {
	g.Cells(func(c *Cell) {
		c.neighbors = g.NeighborsOf(c)
	})
}

// ClearSearch resets Open, Closed and Path roles left by a previous search.
// Blocked flags and Start/End markers are kept.
func (g *Grid) ClearSearch() {
	g.Cells(func(c *Cell) {
		switch c.role {
		case RoleOpen, RoleClosed, RolePath:
			c.role = RoleNone
		}
	})
}

// Start returns the start cell, or nil if none is set.
func (g *Grid) Start() *Cell {
	if g.start != nil && g.start.role != RoleStart {
		g.start = nil
	}
	return g.start
}

// End returns the end cell, or nil if none is set.
func (g *Grid) End() *Cell {
	if g.end != nil && g.end.role != RoleEnd {
		g.end = nil
	}
	return g.end
}

// SetStart makes c the start cell, dropping any previous start.
// Returns ErrForeignCell or ErrOccupied if c is blocked or is the end.
func (g *Grid) SetStart(c *Cell) error {
	if err := g.checkMarker(c, g.End()); err != nil {
		return err
	}
	if prev := g.Start(); prev != nil && prev != c {
		prev.role = RoleNone
	}
	c.role = RoleStart
	g.start = c
	return nil
}

// SetEnd makes c the end cell, dropping any previous end.
// Returns ErrForeignCell or ErrOccupied if c is blocked or is the start.
func (g *Grid) SetEnd(c *Cell) error {
	if err := g.checkMarker(c, g.Start()); err != nil {
		return err
	}
	if prev := g.End(); prev != nil && prev != c {
		prev.role = RoleNone
	}
	c.role = RoleEnd
	g.end = c
	return nil
}

func (g *Grid) checkMarker(c, other *Cell) error {
	if !g.Owns(c) {
		return ErrForeignCell
	}
	if c.blocked {
		return fmt.Errorf("%w: %v is blocked", ErrOccupied, c)
	}
	if c == other {
		return fmt.Errorf("%w: %v is %v", ErrOccupied, c, other.role)
	}
	return nil
}

// Block marks c as a barrier. Returns ErrOccupied for the start or end cell.
func (g *Grid) Block(c *Cell) error {
	if !g.Owns(c) {
		return ErrForeignCell
	}
	if c.role.Marker() {
		return fmt.Errorf("%w: %v is %v", ErrOccupied, c, c.role)
	}
	c.MarkBlocked()
	return nil
}

// Erase clears c, removing a barrier or a start/end marker.
func (g *Grid) Erase(c *Cell) error {
	if !g.Owns(c) {
		return ErrForeignCell
	}
	switch c {
	case g.start:
		g.start = nil
	case g.end:
		g.end = nil
	}
	c.Clear()
	return nil
}

// CellAtPixel maps a pixel position on the board to a cell.
// Points in the unused margin left by the truncated cell size map to no cell.
func (g *Grid) CellAtPixel(x, y int) (*Cell, bool) {
	if x < 0 || y < 0 {
		return nil, false
	}
	return g.Lookup(y/g.size, x/g.size)
}

// Rect returns the pixel rectangle covered by c.
func (g *Grid) Rect(c *Cell) image.Rectangle {
	x, y := c.col*g.size, c.row*g.size
	return image.Rect(x, y, x+g.size, y+g.size)
}

// Index maps c to its row-major index: row*Rows() + col.
// Complexity: O(1).
func (g *Grid) Index(c *Cell) int {
	return c.row*g.rows + c.col
}

// Coordinate converts a row-major index back to (row, col).
// Complexity: O(1).
func (g *Grid) Coordinate(idx int) (row, col int) {
	return idx / g.rows, idx % g.rows
}
