// Package astar finds shortest paths on a gridgraph.Grid with the A* algorithm,
// annotating cells as it explores so a front-end can animate the search.
//
// What
//
//   - Search expands cells from a start toward an end using unit edge cost
//     and the Manhattan heuristic |Δrow| + |Δcol|.
//   - The open set is a min-heap ordered by (f, insertion counter), with
//     f = g + h. The counter grows on every push and is never reused, so
//     ties on f are broken first-in-first-out and every run is reproducible.
//   - Cells become RoleOpen when first discovered, RoleClosed once expanded
//     and RolePath when the winning route is traced. Start and end keep their
//     roles throughout.
//   - Reconstruct walks predecessor links back from the end and returns the
//     route in start → end order.
//
// Why
//
//   - Manhattan distance never overestimates on 4-connected unit grids.
//   - Each cell has at most one open-set entry. When an open cell is reached
//     more cheaply only its g score and predecessor change; the entry keeps
//     the f and insertion counter it was pushed with, so ties and expansion
//     order depend on discovery order alone.
//
// Hooks
//
//   - OnStep      after every expansion and after every path cell is marked.
//   - OnExpand    with the cell about to be expanded.
//   - OnRelax     with a cell and its improved g value.
//   - ShouldCancel and the option context are polled once per loop
//     iteration; either one stops the search with ErrCancelled.
//
// Hooks run synchronously on the searching goroutine. They may read grid
// state (for drawing), but must not mutate the grid while a search runs.
//
// Complexity (N = rows²)
//
//   - Time:   O(N log N)
//   - Memory: O(N) for g scores, predecessors and the open set.
//
// Errors
//
//   - ErrNilGrid        grid pointer is nil.
//   - ErrBadEndpoint    start or end is nil, foreign to the grid, or blocked.
//   - ErrSameEndpoints  start and end are the same cell.
//   - ErrNotFound       the open set emptied before reaching the end.
//   - ErrCancelled      cancellation was requested; wraps the context error
//     when the context triggered it.
//
// Usage
//
//	res, err := astar.Search(g, g.Start(), g.End(),
//	    astar.WithContext(ctx),
//	    astar.WithOnStep(redraw),
//	)
//	switch {
//	case errors.Is(err, astar.ErrNotFound):
//	    // no route
//	case err != nil:
//	    return err
//	}
//	fmt.Println(res.Path.Len(), "moves")
package astar
