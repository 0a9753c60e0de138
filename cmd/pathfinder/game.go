package main

import (
	"context"
	"errors"
	"fmt"
	"image/color"
	"os"
	"sync"

	textclip "github.com/atotto/clipboard"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/sirupsen/logrus"
	"github.com/sqweek/dialog"
	"golang.design/x/clipboard"
	"golang.org/x/image/font/basicfont"

	"github.com/peovukea/Pathfinding-visualization/board"
	"github.com/peovukea/Pathfinding-visualization/layout"
	"github.com/peovukea/Pathfinding-visualization/render"
)

// statusHeight is the strip below the board used for the status line.
const statusHeight = 24

// game implements ebiten.Game around a board. The search runs on its own
// goroutine and advances one step per frame: onStep blocks until Update
// hands it a tick.
type game struct {
	ctx   context.Context
	board *board.Board
	log   logrus.FieldLogger
	width int

	ticks chan struct{}

	imageClipboard bool

	mu   sync.Mutex
	note string
}

func newGame(ctx context.Context, b *board.Board, width int, log logrus.FieldLogger) *game {
	return &game{
		ctx:   ctx,
		board: b,
		log:   log,
		width: width,
		ticks: make(chan struct{}),
	}
}

func (g *game) Update() error {
	if ebiten.IsWindowBeingClosed() {
		if g.board.Cancel() {
			g.log.Info("search cancelled on close")
		}
		return ebiten.Termination
	}

	// Release the searcher for one step if it is waiting.
	select {
	case g.ticks <- struct{}{}:
	default:
	}

	if g.board.Running() {
		if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
			g.board.Cancel()
		}
		return nil
	}

	x, y := ebiten.CursorPosition()
	switch {
	case ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft):
		g.report(g.board.PlaceAt(x, y))
	case ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight):
		g.report(g.board.EraseAt(x, y))
	}

	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeySpace):
		g.run()
	case inpututil.IsKeyJustPressed(ebiten.KeyC):
		g.report(g.board.Clear())
	case inpututil.IsKeyJustPressed(ebiten.KeyY):
		g.copyLayout()
	case inpututil.IsKeyJustPressed(ebiten.KeyP):
		g.copySnapshot()
	case inpututil.IsKeyJustPressed(ebiten.KeyS):
		g.saveLayout()
	case inpututil.IsKeyJustPressed(ebiten.KeyL):
		g.loadLayout()
	}
	return nil
}

func (g *game) run() {
	g.setNote("")
	go func() {
		out, err := g.board.Run(g.ctx, g.waitTick)
		if err != nil {
			g.report(err)
			return
		}
		g.log.WithField("status", out.Status).Debug("run returned")
	}()
}

// waitTick paces the search to the frame rate.
func (g *game) waitTick(board.Snapshot) {
	select {
	case <-g.ticks:
	case <-g.ctx.Done():
	}
}

func (g *game) copyLayout() {
	if err := textclip.WriteAll(g.board.Layout()); err != nil {
		g.report(fmt.Errorf("copy layout: %w", err))
		return
	}
	g.setNote("layout copied")
}

func (g *game) copySnapshot() {
	if !g.imageClipboard {
		g.setNote("image clipboard unavailable")
		return
	}
	s := g.board.Snapshot()
	data, err := render.PNG(frameOf(s), render.Classic)
	if err != nil {
		g.report(fmt.Errorf("encode snapshot: %w", err))
		return
	}
	clipboard.Write(clipboard.FmtImage, data)
	g.setNote("snapshot copied")
}

func (g *game) saveLayout() {
	path, err := dialog.File().Filter("Layout", "txt").Title("Save layout").Save()
	if err != nil {
		if err != dialog.Cancelled {
			g.report(fmt.Errorf("save dialog: %w", err))
		}
		return
	}
	if err := os.WriteFile(path, []byte(g.board.Layout()), 0o644); err != nil {
		g.report(fmt.Errorf("save layout: %w", err))
		return
	}
	g.log.WithField("path", path).Info("layout saved")
	g.setNote("saved " + path)
}

func (g *game) loadLayout() {
	path, err := dialog.File().Filter("Layout", "txt").Title("Load layout").Load()
	if err != nil {
		if err != dialog.Cancelled {
			g.report(fmt.Errorf("load dialog: %w", err))
		}
		return
	}
	f, err := os.Open(path)
	if err != nil {
		g.report(fmt.Errorf("load layout: %w", err))
		return
	}
	defer f.Close()

	grid, err := layout.Parse(f, g.width)
	if err != nil {
		g.report(fmt.Errorf("load layout %s: %w", path, err))
		return
	}
	if err := g.board.Replace(grid); err != nil {
		g.report(err)
		return
	}
	g.setNote("loaded " + path)
}

// report logs err and shows it in the status line. Nil is ignored.
func (g *game) report(err error) {
	if err == nil {
		return
	}
	if errors.Is(err, board.ErrBusy) {
		return
	}
	g.log.WithError(err).Warn("action failed")
	g.setNote(err.Error())
}

func (g *game) setNote(s string) {
	g.mu.Lock()
	g.note = s
	g.mu.Unlock()
}

func (g *game) currentNote() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.note
}

func (g *game) Draw(screen *ebiten.Image) {
	s := g.board.Snapshot()
	p := render.Classic

	screen.Fill(p.Free)
	for r, row := range s.Cells {
		for c, ch := range []rune(row) {
			if ch == layout.RuneFree {
				continue
			}
			ebitenutil.DrawRect(screen,
				float64(c*s.Size), float64(r*s.Size),
				float64(s.Size), float64(s.Size),
				p.Color(ch))
		}
	}
	for i := 0; i < s.Rows; i++ {
		at := float64(i * s.Size)
		ebitenutil.DrawLine(screen, 0, at, float64(s.Width), at, p.Line)
		ebitenutil.DrawLine(screen, at, 0, at, float64(s.Width), p.Line)
	}

	ebitenutil.DrawRect(screen, 0, float64(g.width), float64(g.width), statusHeight, color.Black)
	text.Draw(screen, statusLine(s, g.currentNote()), basicfont.Face7x13, 6, g.width+16, color.White)
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.width, g.width + statusHeight
}

func frameOf(s board.Snapshot) render.Frame {
	return render.Frame{Cells: s.Cells, Size: s.Size, Width: s.Width}
}

// statusLine summarises the board for the strip under it.
func statusLine(s board.Snapshot, note string) string {
	o := s.Outcome
	var line string
	switch o.Status {
	case board.StatusRunning:
		line = fmt.Sprintf("searching... step %d  (Esc cancels)", s.Step)
	case board.StatusFound:
		line = fmt.Sprintf("path found: %d moves, %d expanded, %d steps", o.Length, o.Expanded, o.Steps)
	case board.StatusNotFound:
		line = fmt.Sprintf("no path: erase %d barrier(s) to connect", o.Barriers)
	case board.StatusCancelled:
		line = fmt.Sprintf("cancelled after %d steps", o.Steps)
	default:
		line = "click: start, end, barriers  Space: run  C: clear"
	}
	if note != "" {
		line += "  | " + note
	}
	return line
}
