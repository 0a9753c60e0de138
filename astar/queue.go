package astar

import "github.com/peovukea/Pathfinding-visualization/gridgraph"

// entry is a cell waiting in the open set.
type entry struct {
	cell *gridgraph.Cell
	f    int // g + h when the cell was pushed
	seq  int // insertion counter, never reused
}

// openSet is a min-heap of *entry ordered by (f, seq).
type openSet []*entry

// Len returns the number of waiting cells.
func (q openSet) Len() int { return len(q) }

// Less orders by f, breaking ties on the insertion counter.
func (q openSet) Less(i, j int) bool {
	if q[i].f != q[j].f {
		return q[i].f < q[j].f
	}
	return q[i].seq < q[j].seq
}

func (q openSet) Swap(i, j int) { q[i], q[j] = q[j], q[i] }

// Push appends x, which must be an *entry. Called by heap.Push.
func (q *openSet) Push(x interface{}) {
	*q = append(*q, x.(*entry))
}

// Pop removes the last entry. Called by heap.Pop.
func (q *openSet) Pop() interface{} {
	old := *q
	n := len(old)
	e := old[n-1]
	old[n-1] = nil
	*q = old[:n-1]

	return e
}
