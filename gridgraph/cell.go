package gridgraph

import "fmt"

// Role is the semantic state of a cell as shown to the user.
// Renderers map a Role to a color; the search engine only sets roles.
type Role int

const (
	// RoleNone is an untouched free (or blocked) cell.
	RoleNone Role = iota
	// RoleStart marks the search origin.
	RoleStart
	// RoleEnd marks the search target.
	RoleEnd
	// RoleOpen marks a cell waiting in the open set.
	RoleOpen
	// RoleClosed marks a cell that has been expanded.
	RoleClosed
	// RolePath marks an intermediate cell of the reconstructed path.
	RolePath
)

// String returns a lower-case name for r.
func (r Role) String() string {
	switch r {
	case RoleNone:
		return "none"
	case RoleStart:
		return "start"
	case RoleEnd:
		return "end"
	case RoleOpen:
		return "open"
	case RoleClosed:
		return "closed"
	case RolePath:
		return "path"
	default:
		return fmt.Sprintf("role(%d)", int(r))
	}
}

// Marker reports whether r is Start or End. Marker roles are never
// overwritten by search annotations.
func (r Role) Marker() bool {
	return r == RoleStart || r == RoleEnd
}

// Pos is a cell position; Row grows downwards, Col grows to the right.
type Pos struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// String formats p as "(row,col)".
func (p Pos) String() string {
	return fmt.Sprintf("(%d,%d)", p.Row, p.Col)
}

// Cell is a single square of the board. Its position is fixed at creation.
type Cell struct {
	row, col  int
	blocked   bool
	role      Role
	neighbors []*Cell // snapshot from the last RefreshNeighbors
}

func newCell(row, col int) *Cell {
	return &Cell{row: row, col: col}
}

// Row returns the cell's row index.
func (c *Cell) Row() int { return c.row }

// Col returns the cell's column index.
func (c *Cell) Col() int { return c.col }

// Pos returns the cell's position.
func (c *Cell) Pos() Pos { return Pos{Row: c.row, Col: c.col} }

// Blocked reports whether the cell is a barrier.
func (c *Cell) Blocked() bool { return c.blocked }

// Role returns the current role annotation.
func (c *Cell) Role() Role { return c.role }

// SetRole sets the role annotation. Setting RoleStart or RoleEnd directly
// bypasses the grid bookkeeping; use Grid.SetStart/SetEnd for that.
func (c *Cell) SetRole(r Role) { c.role = r }

// Annotate sets a search role (Open, Closed, Path) unless the cell carries
// a Start or End marker.
func (c *Cell) Annotate(r Role) {
	if c.role.Marker() {
		return
	}
	c.role = r
}

// MarkBlocked turns the cell into a barrier. It is idempotent and a no-op
// on Start or End cells.
func (c *Cell) MarkBlocked() {
	if c.role.Marker() {
		return
	}
	c.blocked = true
	c.role = RoleNone
}

// Clear makes the cell free with no role. It is idempotent.
func (c *Cell) Clear() {
	c.blocked = false
	c.role = RoleNone
}

// Neighbors returns the snapshot taken by the last Grid.RefreshNeighbors.
// It may be stale if blocked state changed since.
func (c *Cell) Neighbors() []*Cell { return c.neighbors }

// Equal reports positional identity: same row and column.
func (c *Cell) Equal(other *Cell) bool {
	if c == nil || other == nil {
		return c == other
	}
	return c.row == other.row && c.col == other.col
}

// String formats the cell as "(row,col)".
func (c *Cell) String() string { return c.Pos().String() }
