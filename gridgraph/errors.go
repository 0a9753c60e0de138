package gridgraph

import "errors"

var (
	// ErrEmptyGrid indicates a grid with no rows was requested.
	ErrEmptyGrid = errors.New("gridgraph: grid must have at least one row")
	// ErrBadWidth indicates the pixel width is too small to give each cell a pixel.
	ErrBadWidth = errors.New("gridgraph: pixel width must be at least the number of rows")
	// ErrOutOfBounds indicates a row or column outside [0, rows-1].
	ErrOutOfBounds = errors.New("gridgraph: cell index out of bounds")
	// ErrForeignCell indicates a cell that is nil or owned by another grid.
	ErrForeignCell = errors.New("gridgraph: cell does not belong to this grid")
	// ErrOccupied indicates a start/end/blocked marker collision.
	ErrOccupied = errors.New("gridgraph: cell already holds another marker")
)
