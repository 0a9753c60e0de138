package astar_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/peovukea/Pathfinding-visualization/astar"
	"github.com/peovukea/Pathfinding-visualization/gridgraph"
)

func TestReconstruct(t *testing.T) {
	g, err := gridgraph.NewGrid(4, 40)
	require.NoError(t, err)
	require.NoError(t, g.SetStart(g.CellAt(0, 0)))
	require.NoError(t, g.SetEnd(g.CellAt(0, 3)))

	cameFrom := map[*gridgraph.Cell]*gridgraph.Cell{
		g.CellAt(0, 1): g.CellAt(0, 0),
		g.CellAt(0, 2): g.CellAt(0, 1),
		g.CellAt(0, 3): g.CellAt(0, 2),
	}

	var marked []gridgraph.Pos
	seen := map[gridgraph.Pos]bool{}
	onStep := func() {
		// Record the cell that picked up the path role since the last step.
		g.Cells(func(c *gridgraph.Cell) {
			if c.Role() == gridgraph.RolePath && !seen[c.Pos()] {
				seen[c.Pos()] = true
				marked = append(marked, c.Pos())
			}
		})
	}

	p1 := astar.Reconstruct(cameFrom, g.CellAt(0, 3), onStep)
	assert.Equal(t, "(0,0)->(0,1)->(0,2)->(0,3)", p1.String())
	assert.Equal(t, 3, p1.Len())
	assert.Equal(t, []gridgraph.Pos{{Row: 0, Col: 2}, {Row: 0, Col: 1}}, marked, "marked end → start")

	assert.Equal(t, gridgraph.RoleStart, g.CellAt(0, 0).Role())
	assert.Equal(t, gridgraph.RoleEnd, g.CellAt(0, 3).Role())

	p2 := astar.Reconstruct(cameFrom, g.CellAt(0, 3), nil)
	assert.Equal(t, p1, p2, "reconstruction is idempotent")
}

func TestReconstruct_Degenerate(t *testing.T) {
	g, err := gridgraph.NewGrid(2, 20)
	require.NoError(t, err)

	assert.Nil(t, astar.Reconstruct(nil, nil, nil))

	single := astar.Reconstruct(map[*gridgraph.Cell]*gridgraph.Cell{}, g.CellAt(1, 1), nil)
	assert.Len(t, single, 1)
	assert.Equal(t, 0, single.Len())

	// A corrupt cycle terminates instead of looping forever.
	a, b := g.CellAt(0, 0), g.CellAt(0, 1)
	loop := astar.Reconstruct(map[*gridgraph.Cell]*gridgraph.Cell{a: b, b: a}, a, nil)
	assert.LessOrEqual(t, len(loop), 3)
}

func TestManhattan(t *testing.T) {
	g, err := gridgraph.NewGrid(6, 60)
	require.NoError(t, err)
	assert.Equal(t, 0, astar.Manhattan(g.CellAt(2, 2), g.CellAt(2, 2)))
	assert.Equal(t, 7, astar.Manhattan(g.CellAt(5, 0), g.CellAt(1, 3)))
	assert.Equal(t, astar.Manhattan(g.CellAt(0, 5), g.CellAt(4, 1)), astar.Manhattan(g.CellAt(4, 1), g.CellAt(0, 5)))
}
