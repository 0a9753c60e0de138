package astar

import (
	"context"
	"errors"
	"strings"

	"github.com/peovukea/Pathfinding-visualization/gridgraph"
)

// Sentinel errors returned by Search.
var (
	// ErrNilGrid is returned when a nil *gridgraph.Grid is passed.
	ErrNilGrid = errors.New("astar: grid is nil")

	// ErrBadEndpoint is returned when start or end is nil, belongs to a
	// different grid, or is blocked.
	ErrBadEndpoint = errors.New("astar: invalid start or end cell")

	// ErrSameEndpoints is returned when start and end are the same cell.
	ErrSameEndpoints = errors.New("astar: start and end must differ")

	// ErrNotFound is returned when the end is unreachable from the start.
	ErrNotFound = errors.New("astar: no path found")

	// ErrCancelled is returned when the context is done or ShouldCancel
	// reports true.
	ErrCancelled = errors.New("astar: search cancelled")
)

// Options holds the hooks and cancellation sources of a single search.
type Options struct {
	// Ctx allows cancellation and deadlines.
	Ctx context.Context

	// OnStep is called after each expansion and after each path cell is marked.
	OnStep func()

	// ShouldCancel is polled once per loop iteration.
	ShouldCancel func() bool

	// OnExpand is called with each cell just before its neighbors are relaxed.
	OnExpand func(c *gridgraph.Cell)

	// OnRelax is called whenever a cell's g score improves.
	OnRelax func(c *gridgraph.Cell, g int)
}

// Option configures Search via functional arguments.
type Option func(*Options)

// DefaultOptions returns Options with a background context, no-op hooks and
// a ShouldCancel that never fires.
func DefaultOptions() Options {
	return Options{
		Ctx:          context.Background(),
		OnStep:       func() {},
		ShouldCancel: func() bool { return false },
		OnExpand:     func(*gridgraph.Cell) {},
		OnRelax:      func(*gridgraph.Cell, int) {},
	}
}

// WithContext sets a custom context for cancellation.
func WithContext(ctx context.Context) Option {
	return func(o *Options) {
		if ctx != nil {
			o.Ctx = ctx
		}
	}
}

// WithOnStep registers the per-step callback used to animate the search.
func WithOnStep(fn func()) Option {
	return func(o *Options) {
		if fn != nil {
			o.OnStep = fn
		}
	}
}

// WithShouldCancel registers a cancellation predicate, for example a
// window-close check.
func WithShouldCancel(fn func() bool) Option {
	return func(o *Options) {
		if fn != nil {
			o.ShouldCancel = fn
		}
	}
}

// WithOnExpand registers a hook observing expansion order.
func WithOnExpand(fn func(c *gridgraph.Cell)) Option {
	return func(o *Options) {
		if fn != nil {
			o.OnExpand = fn
		}
	}
}

// WithOnRelax registers a hook observing every g improvement.
func WithOnRelax(fn func(c *gridgraph.Cell, g int)) Option {
	return func(o *Options) {
		if fn != nil {
			o.OnRelax = fn
		}
	}
}

// Path is a route of cells ordered from start to end.
type Path []*gridgraph.Cell

// Len returns the number of moves along the path (cells minus one).
// An empty path has length 0.
func (p Path) Len() int {
	if len(p) == 0 {
		return 0
	}
	return len(p) - 1
}

// Positions returns the grid positions of the path cells, in order.
func (p Path) Positions() []gridgraph.Pos {
	out := make([]gridgraph.Pos, len(p))
	for i, c := range p {
		out[i] = c.Pos()
	}
	return out
}

// String renders the path as "(r,c)->(r,c)->...".
func (p Path) String() string {
	var sb strings.Builder
	for i, c := range p {
		if i > 0 {
			sb.WriteString("->")
		}
		sb.WriteString(c.Pos().String())
	}
	return sb.String()
}

// Result describes a successful search.
type Result struct {
	// Path lists the cells from start to end inclusive.
	Path Path

	// Cost is the g score of the end cell, equal to Path.Len().
	Cost int

	// Expanded counts cells whose neighbors were relaxed, not counting the end.
	Expanded int
}

// Manhattan returns |Δrow| + |Δcol| between two cells.
func Manhattan(a, b *gridgraph.Cell) int {
	return abs(a.Row()-b.Row()) + abs(a.Col()-b.Col())
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
