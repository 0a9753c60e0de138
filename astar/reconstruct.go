package astar

import "github.com/peovukea/Pathfinding-visualization/gridgraph"

// Reconstruct follows cameFrom links back from end until it reaches a cell
// with no predecessor, and returns the route in start → end order.
//
// Every intermediate cell (neither the first nor end) is marked RolePath in
// end → start walking order, and onStep, if non-nil, is called after each
// marking so the route lights up one cell at a time. Calling Reconstruct
// again with the same inputs returns an identical route.
//
// A nil end yields a nil Path.
func Reconstruct(cameFrom map[*gridgraph.Cell]*gridgraph.Cell, end *gridgraph.Cell, onStep func()) Path {
	if end == nil {
		return nil
	}

	cells := []*gridgraph.Cell{end}
	// A well-formed predecessor chain has at most len(cameFrom) links.
	for prev, ok := cameFrom[end]; ok && len(cells) <= len(cameFrom); prev, ok = cameFrom[prev] {
		if _, more := cameFrom[prev]; more {
			prev.Annotate(gridgraph.RolePath)
			if onStep != nil {
				onStep()
			}
		}
		cells = append(cells, prev)
	}

	for i, j := 0, len(cells)-1; i < j; i, j = i+1, j-1 {
		cells[i], cells[j] = cells[j], cells[i]
	}
	return Path(cells)
}
