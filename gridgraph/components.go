package gridgraph

// Components finds all 4-connected regions of free cells.
// Returns a slice of components; each component is a slice of row-major
// cell indices in BFS discovery order. Use Coordinate to convert an index
// back to (row, col).
//
// Time:   O(R²·4).
// Memory: O(R²) for visited flags and output.
func (g *Grid) Components() [][]int {
	seen := make([]bool, g.rows*g.rows)
	var comps [][]int

	for r := 0; r < g.rows; r++ {
		for c := 0; c < g.rows; c++ {
			if g.cells[r][c].blocked {
				continue
			}
			i0 := g.index(r, c)
			if seen[i0] {
				continue
			}
			// BFS to collect component
			queue := []int{i0}
			seen[i0] = true
			var comp []int

			for qi := 0; qi < len(queue); qi++ {
				u := queue[qi]
				comp = append(comp, u)
				ur, uc := g.Coordinate(u)
				for _, d := range neighborOffsets {
					vr, vc := ur+d[0], uc+d[1]
					if !g.InBounds(vr, vc) || g.cells[vr][vc].blocked {
						continue
					}
					vi := g.index(vr, vc)
					if !seen[vi] {
						seen[vi] = true
						queue = append(queue, vi)
					}
				}
			}
			comps = append(comps, comp)
		}
	}
	return comps
}

// Connected reports whether a and b are free and lie in the same component.
// Cells that do not belong to g are never connected.
func (g *Grid) Connected(a, b *Cell) bool {
	if !g.Owns(a) || !g.Owns(b) || a.blocked || b.blocked {
		return false
	}
	ia, ib := g.Index(a), g.Index(b)
	for _, comp := range g.Components() {
		hasA, hasB := false, false
		for _, idx := range comp {
			if idx == ia {
				hasA = true
			}
			if idx == ib {
				hasB = true
			}
		}
		if hasA || hasB {
			return hasA && hasB
		}
	}
	return false
}

func (g *Grid) index(row, col int) int {
	return row*g.rows + col
}
