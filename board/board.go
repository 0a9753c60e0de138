// Package board is the interactive editing session around a grid: placing
// the start, the end and barriers with clicks, erasing cells, running and
// cancelling the search, and clearing the board. Every front-end drives the
// same Board, so desktop and web behave identically.
//
// A Board is safe for concurrent use. While a search runs, edits return
// ErrBusy and Snapshot returns the frame published by the latest step.
package board

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/peovukea/Pathfinding-visualization/astar"
	"github.com/peovukea/Pathfinding-visualization/gridgraph"
	"github.com/peovukea/Pathfinding-visualization/layout"
)

var (
	// ErrBusy is returned by edits attempted while a search runs.
	ErrBusy = errors.New("board: search in progress")

	// ErrNoEndpoints is returned by Run when start or end is missing.
	ErrNoEndpoints = errors.New("board: start and end must both be placed")
)

// Board owns a grid and serialises every mutation of it.
//
// mu guards grid and the transitions of running. While running is set the
// searching goroutine owns the grid without holding mu, so mu is only ever
// held briefly and a blocking onStep cannot stall other callers.
type Board struct {
	mu   sync.Mutex
	grid *gridgraph.Grid
	log  logrus.FieldLogger

	running atomic.Bool        // written with mu held
	cancel  context.CancelFunc // set while running; guarded by frameMu

	frameMu sync.Mutex
	frame   Snapshot
	last    Outcome
}

// New creates a board of rows × rows cells drawn in width pixels.
func New(rows, width int, log logrus.FieldLogger) (*Board, error) {
	g, err := gridgraph.NewGrid(rows, width)
	if err != nil {
		return nil, err
	}
	return FromGrid(g, log), nil
}

// FromGrid wraps an existing grid, for example one parsed from a layout.
func FromGrid(g *gridgraph.Grid, log logrus.FieldLogger) *Board {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Board{grid: g, log: log, last: Outcome{Status: StatusIdle}}
}

// Running reports whether a search is in progress.
func (b *Board) Running() bool { return b.running.Load() }

// edit runs fn on the grid unless a search is running.
func (b *Board) edit(fn func(g *gridgraph.Grid) error) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.running.Load() {
		return ErrBusy
	}
	return fn(b.grid)
}

// Place applies a primary click on (row, col): the first click places the
// start, the next the end, and later clicks place barriers. Clicking the
// start or end again does nothing. A marker placed on a barrier replaces it.
func (b *Board) Place(row, col int) error {
	return b.edit(func(g *gridgraph.Grid) error {
		c, ok := g.Lookup(row, col)
		if !ok {
			return fmt.Errorf("board: place (%d,%d): %w", row, col, gridgraph.ErrOutOfBounds)
		}
		start, end := g.Start(), g.End()
		entry := b.log.WithFields(logrus.Fields{"row": row, "col": col})

		switch {
		case start == nil && c != end:
			c.Clear()
			entry.Debug("start placed")
			return g.SetStart(c)
		case end == nil && c != start:
			c.Clear()
			entry.Debug("end placed")
			return g.SetEnd(c)
		case c != start && c != end:
			entry.Debug("barrier placed")
			return g.Block(c)
		}
		return nil
	})
}

// PlaceAt is Place for a pixel position. Points outside the board or in the
// unused margin are ignored, and so are clicks during a search.
func (b *Board) PlaceAt(x, y int) error {
	c, ok := b.cellAtPixel(x, y)
	if !ok {
		return nil
	}
	return b.Place(c.Row, c.Col)
}

// Erase applies a secondary click: the cell becomes free and loses any
// start or end marker.
func (b *Board) Erase(row, col int) error {
	return b.edit(func(g *gridgraph.Grid) error {
		c, ok := g.Lookup(row, col)
		if !ok {
			return fmt.Errorf("board: erase (%d,%d): %w", row, col, gridgraph.ErrOutOfBounds)
		}
		b.log.WithFields(logrus.Fields{"row": row, "col": col}).Debug("cell erased")
		return g.Erase(c)
	})
}

// EraseAt is Erase for a pixel position, ignored the same way as PlaceAt.
func (b *Board) EraseAt(x, y int) error {
	c, ok := b.cellAtPixel(x, y)
	if !ok {
		return nil
	}
	return b.Erase(c.Row, c.Col)
}

func (b *Board) cellAtPixel(x, y int) (gridgraph.Pos, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.running.Load() {
		return gridgraph.Pos{}, false
	}
	c, ok := b.grid.CellAtPixel(x, y)
	if !ok {
		return gridgraph.Pos{}, false
	}
	return c.Pos(), true
}

// Clear resets the board to all free cells with no start or end.
func (b *Board) Clear() error {
	err := b.edit(func(g *gridgraph.Grid) error {
		g.Reset()
		return nil
	})
	if err == nil {
		b.setOutcome(Outcome{Status: StatusIdle})
		b.log.Info("board cleared")
	}
	return err
}

// Replace swaps in a new grid, typically one loaded from a layout file.
func (b *Board) Replace(g *gridgraph.Grid) error {
	err := b.edit(func(*gridgraph.Grid) error {
		b.grid = g
		return nil
	})
	if err == nil {
		b.setOutcome(Outcome{Status: StatusIdle})
		b.log.WithField("rows", g.Rows()).Info("board replaced")
	}
	return err
}

// Layout returns the current board in layout text form.
func (b *Board) Layout() string {
	return b.Snapshot().Text()
}

// Cancel stops a running search. It reports whether one was running.
func (b *Board) Cancel() bool {
	b.frameMu.Lock()
	cancel := b.cancel
	b.frameMu.Unlock()
	if cancel == nil {
		return false
	}
	cancel()
	return true
}

// Run clears previous search marks and runs A* from start to end. onStep,
// if non-nil, receives a fresh Snapshot after every search step on the
// searching goroutine; it may block to pace the animation.
//
// ErrNotFound and ErrCancelled are reported through Outcome.Status, not as
// errors. Run returns ErrBusy if another search is running and
// ErrNoEndpoints if start or end is missing.
func (b *Board) Run(ctx context.Context, onStep func(Snapshot)) (Outcome, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	g, err := b.begin(cancel)
	if err != nil {
		return Outcome{}, err
	}
	defer b.finish()
	start, end := g.Start(), g.End()

	step := 0
	began := time.Now()
	res, err := astar.Search(g, start, end,
		astar.WithContext(ctx),
		astar.WithOnStep(func() {
			step++
			snap := b.snapshotLocked(step)
			b.publish(snap)
			if onStep != nil {
				onStep(snap)
			}
		}),
	)

	out := Outcome{Steps: step}
	switch {
	case err == nil:
		out.Status = StatusFound
		out.Length = res.Path.Len()
		out.Expanded = res.Expanded
		out.Path = res.Path.Positions()
	case errors.Is(err, astar.ErrNotFound):
		out.Status = StatusNotFound
		if _, cost, herr := g.BarriersToClear(start, end); herr == nil {
			out.Barriers = cost
		}
	case errors.Is(err, astar.ErrCancelled):
		out.Status = StatusCancelled
	default:
		return Outcome{}, err
	}

	b.log.WithFields(logrus.Fields{
		"status":   out.Status,
		"length":   out.Length,
		"expanded": out.Expanded,
		"steps":    out.Steps,
		"elapsed":  time.Since(began),
	}).Info("search finished")

	b.setOutcome(out)
	b.publish(b.snapshotLocked(step))
	return out, nil
}

// begin claims the grid for a search: it marks the board running, clears
// the previous search marks and publishes the first frame.
func (b *Board) begin(cancel context.CancelFunc) (*gridgraph.Grid, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.running.Load() {
		return nil, ErrBusy
	}
	g := b.grid
	if g.Start() == nil || g.End() == nil {
		return nil, ErrNoEndpoints
	}
	b.running.Store(true)

	b.frameMu.Lock()
	b.cancel = cancel
	b.last = Outcome{Status: StatusRunning}
	b.frameMu.Unlock()

	g.ClearSearch()
	b.publish(b.snapshotLocked(0))
	return g, nil
}

// finish hands the grid back to editors.
func (b *Board) finish() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.frameMu.Lock()
	b.cancel = nil
	b.frameMu.Unlock()
	b.running.Store(false)
}

// Outcome returns the result of the latest search.
func (b *Board) Outcome() Outcome {
	b.frameMu.Lock()
	defer b.frameMu.Unlock()
	return b.last
}

func (b *Board) setOutcome(o Outcome) {
	b.frameMu.Lock()
	b.last = o
	b.frameMu.Unlock()
}

// Snapshot returns the current board. While a search runs it returns the
// frame published by the latest step instead of reading the grid.
func (b *Board) Snapshot() Snapshot {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.running.Load() {
		b.frameMu.Lock()
		defer b.frameMu.Unlock()
		return b.frame
	}
	return b.snapshotLocked(b.Outcome().Steps)
}

// snapshotLocked captures the grid. The caller holds b.mu or is the
// goroutine running the search.
func (b *Board) snapshotLocked(step int) Snapshot {
	g := b.grid
	return Snapshot{
		Rows:    g.Rows(),
		Size:    g.Size(),
		Width:   g.Width(),
		Cells:   layout.Rows(g),
		Step:    step,
		Outcome: b.Outcome(),
	}
}

func (b *Board) publish(s Snapshot) {
	b.frameMu.Lock()
	b.frame = s
	b.frameMu.Unlock()
}
