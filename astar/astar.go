package astar

import (
	"container/heap"
	"fmt"

	"github.com/peovukea/Pathfinding-visualization/gridgraph"
)

// Search runs A* on g from start to end and returns the shortest route.
//
// Validation (in order):
//  1. g must be non-nil (ErrNilGrid).
//  2. start and end must be non-nil cells of g that are not blocked
//     (ErrBadEndpoint).
//  3. start and end must differ (ErrSameEndpoints).
//
// Search refreshes every neighbor snapshot before it starts, so edits made
// since the previous run are always seen. Cells discovered along the way are
// annotated Open, Closed and finally Path; barriers and markers are never
// changed.
//
// ErrNotFound and ErrCancelled are ordinary outcomes; the grid is left in a
// consistent, partially explored state in both cases.
func Search(g *gridgraph.Grid, start, end *gridgraph.Cell, opts ...Option) (*Result, error) {
	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}

	if g == nil {
		return nil, ErrNilGrid
	}
	if err := checkEndpoint(g, "start", start); err != nil {
		return nil, err
	}
	if err := checkEndpoint(g, "end", end); err != nil {
		return nil, err
	}
	if start.Equal(end) {
		return nil, fmt.Errorf("%w: %v", ErrSameEndpoints, start)
	}

	g.RefreshNeighbors()

	r := &runner{
		start:    start,
		end:      end,
		options:  cfg,
		gScore:   make(map[*gridgraph.Cell]int),
		cameFrom: make(map[*gridgraph.Cell]*gridgraph.Cell),
		members:  make(map[*gridgraph.Cell]struct{}),
	}
	r.init()

	return r.process()
}

func checkEndpoint(g *gridgraph.Grid, name string, c *gridgraph.Cell) error {
	switch {
	case c == nil:
		return fmt.Errorf("%w: %s is nil", ErrBadEndpoint, name)
	case !g.Owns(c):
		return fmt.Errorf("%w: %s %v is not on this grid", ErrBadEndpoint, name, c)
	case c.Blocked():
		return fmt.Errorf("%w: %s %v is blocked", ErrBadEndpoint, name, c)
	}
	return nil
}

// runner holds the mutable state of a single search.
type runner struct {
	start, end *gridgraph.Cell
	options    Options

	gScore   map[*gridgraph.Cell]int             // missing key means +∞
	cameFrom map[*gridgraph.Cell]*gridgraph.Cell // predecessor on the best known route
	members  map[*gridgraph.Cell]struct{}        // cells currently in the open set
	open     openSet
	counter  int
	expanded int
}

// init seeds the open set with the start cell at g = 0.
func (r *runner) init() {
	heap.Init(&r.open)
	r.gScore[r.start] = 0
	r.push(r.start, Manhattan(r.start, r.end))
}

// process is the main loop. It pops the lowest (f, counter) entry, stops at
// the end cell, and otherwise expands the cell and reports a step.
func (r *runner) process() (*Result, error) {
	for r.open.Len() > 0 {
		if err := r.cancelled(); err != nil {
			return nil, err
		}

		current := heap.Pop(&r.open).(*entry).cell
		delete(r.members, current)

		if current == r.end {
			path := Reconstruct(r.cameFrom, r.end, r.options.OnStep)
			return &Result{Path: path, Cost: r.gScore[r.end], Expanded: r.expanded}, nil
		}

		r.options.OnExpand(current)
		r.expand(current)
		r.expanded++

		if current != r.start {
			current.Annotate(gridgraph.RoleClosed)
		}
		r.options.OnStep()
	}

	return nil, ErrNotFound
}

// expand relaxes every neighbor of current with tentative g = g(current) + 1.
// A strictly better g updates the predecessor and g score. A neighbor that is
// not open yet is pushed with a fresh counter; one that is already open keeps
// the (f, counter) key it was pushed with.
func (r *runner) expand(current *gridgraph.Cell) {
	tentative := r.gScore[current] + 1
	for _, nb := range current.Neighbors() {
		if old, seen := r.gScore[nb]; seen && tentative >= old {
			continue
		}
		r.cameFrom[nb] = current
		r.gScore[nb] = tentative
		r.options.OnRelax(nb, tentative)

		if _, open := r.members[nb]; open {
			continue
		}
		r.push(nb, tentative+Manhattan(nb, r.end))
		nb.Annotate(gridgraph.RoleOpen)
	}
}

func (r *runner) push(c *gridgraph.Cell, f int) {
	heap.Push(&r.open, &entry{cell: c, f: f, seq: r.counter})
	r.counter++
	r.members[c] = struct{}{}
}

// cancelled polls the context first, then ShouldCancel.
func (r *runner) cancelled() error {
	if err := r.options.Ctx.Err(); err != nil {
		return fmt.Errorf("%w: %w", ErrCancelled, err)
	}
	if r.options.ShouldCancel() {
		return ErrCancelled
	}
	return nil
}
