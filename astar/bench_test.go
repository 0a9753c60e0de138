package astar_test

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/peovukea/Pathfinding-visualization/astar"
	"github.com/peovukea/Pathfinding-visualization/gridgraph"
)

// BenchmarkSearch_Open measures corner-to-corner search on empty boards.
func BenchmarkSearch_Open(b *testing.B) {
	for _, n := range []int{50, 200} {
		g, err := gridgraph.NewGrid(n, n)
		if err != nil {
			b.Fatal(err)
		}
		start, end := g.CellAt(0, 0), g.CellAt(n-1, n-1)
		b.Run(fmt.Sprintf("%dx%d", n, n), func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				if _, err := astar.Search(g, start, end); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

// BenchmarkSearch_Random measures search on a 200×200 board with about a
// fifth of the cells blocked. Unreachable outcomes are counted as work too.
func BenchmarkSearch_Random(b *testing.B) {
	const n = 200
	g, err := gridgraph.NewGrid(n, n)
	if err != nil {
		b.Fatal(err)
	}
	rng := rand.New(rand.NewSource(7))
	g.Cells(func(c *gridgraph.Cell) {
		if rng.Intn(5) == 0 {
			c.MarkBlocked()
		}
	})
	start, end := g.CellAt(0, 0), g.CellAt(n-1, n-1)
	start.Clear()
	end.Clear()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = astar.Search(g, start, end)
	}
}

// BenchmarkSearch_HookOverhead compares runs with and without hooks.
func BenchmarkSearch_HookOverhead(b *testing.B) {
	g, err := gridgraph.NewGrid(100, 100)
	if err != nil {
		b.Fatal(err)
	}
	start, end := g.CellAt(0, 0), g.CellAt(99, 99)

	b.Run("NoHook", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			_, _ = astar.Search(g, start, end)
		}
	})
	b.Run("AllHooks", func(b *testing.B) {
		steps := 0
		for i := 0; i < b.N; i++ {
			_, _ = astar.Search(g, start, end,
				astar.WithOnStep(func() { steps++ }),
				astar.WithOnExpand(func(*gridgraph.Cell) {}),
				astar.WithOnRelax(func(*gridgraph.Cell, int) {}),
				astar.WithShouldCancel(func() bool { return false }),
			)
		}
	})
}
