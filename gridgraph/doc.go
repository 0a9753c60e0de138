// Package gridgraph models the square board the pathfinder searches: a
// rows×rows array of cells that are either free or blocked, plus the
// start/end markers and the per-cell role annotations a renderer draws.
//
// What:
//
//   - Grid owns its cells and keeps at most one Start and one End, disjoint
//     from each other and from blocked cells.
//   - Neighbors are orthogonal only (down, up, right, left, in that order)
//     and exclude blocked cells. NeighborsOf computes them on demand;
//     RefreshNeighbors stores a per-cell snapshot for a search run.
//   - Pixel geometry: every cell is Size() = width/rows pixels wide. The
//     division truncates, so a board may leave an unused margin on the right
//     and bottom edges.
//   - Components/Connected report 4-connected regions of free cells.
//   - BarriersToClear finds the fewest blocked cells to erase so two cells
//     become connected (0-1 BFS).
//
// Why:
//
//   - The search engine (package astar) needs a mutable board whose roles it
//     can annotate while exploring.
//   - Front-ends need hit-testing (CellAtPixel) and drawing rectangles (Rect).
//   - After a failed search, connectivity answers "why" and "what to erase".
//
// Complexity:
//
//   - NewGrid, Reset, RefreshNeighbors: O(R²) time and memory.
//   - NeighborsOf, CellAt, CellAtPixel: O(1).
//   - Components, BarriersToClear:       O(R²) time and memory.
//
// Errors:
//
//   - ErrEmptyGrid:   rows must be positive.
//   - ErrBadWidth:    pixel width must give every cell at least one pixel.
//   - ErrOutOfBounds: CellAt was called with an invalid index (panics).
//   - ErrForeignCell: a cell that does not belong to this grid.
//   - ErrOccupied:    start/end/blocked markers would overlap.
package gridgraph
