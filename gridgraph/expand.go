package gridgraph

import (
	"container/list"
)

// BarriersToClear finds the fewest blocked cells that must be erased for a
// and b to become 4-connected. Entering a free cell costs 0, entering a
// blocked cell costs 1. Returns the cells along one such route (a and b
// included) and the number of blocked cells on it. A cost of 0 means a and b
// are already connected.
//
// Behavior:
//  1. Validate that a and b belong to g.
//  2. 0-1 BFS from a: cost-0 moves go to the front of the deque,
//     cost-1 moves to the back.
//  3. Stop when b is popped.
//  4. Reconstruct the route via predecessors.
//
// Complexity: O(R²) time, O(R²) memory for distance and predecessor slices.
func (g *Grid) BarriersToClear(a, b *Cell) (route []*Cell, cost int, err error) {
	if !g.Owns(a) || !g.Owns(b) {
		return nil, 0, ErrForeignCell
	}

	n := g.rows * g.rows
	const inf = int(^uint(0) >> 1)
	dist := make([]int, n)
	prev := make([]int, n)
	for i := range dist {
		dist[i] = inf
		prev[i] = -1
	}

	src, dst := g.Index(a), g.Index(b)
	dist[src] = 0
	if a.blocked {
		dist[src] = 1
	}
	dq := list.New()
	dq.PushFront(src)

	for dq.Len() > 0 {
		e := dq.Front()
		dq.Remove(e)
		u := e.Value.(int)
		if u == dst {
			break
		}
		ur, uc := g.Coordinate(u)
		for _, d := range neighborOffsets {
			vr, vc := ur+d[0], uc+d[1]
			if !g.InBounds(vr, vc) {
				continue
			}
			v := g.index(vr, vc)
			step := 0
			if g.cells[vr][vc].blocked {
				step = 1
			}
			nd := dist[u] + step
			if nd < dist[v] {
				dist[v] = nd
				prev[v] = u
				if step == 0 {
					dq.PushFront(v)
				} else {
					dq.PushBack(v)
				}
			}
		}
	}

	for at := dst; at >= 0; at = prev[at] {
		r, c := g.Coordinate(at)
		route = append(route, g.cells[r][c])
	}
	for i, j := 0, len(route)-1; i < j; i, j = i+1, j-1 {
		route[i], route[j] = route[j], route[i]
	}
	return route, dist[dst], nil
}
