// Command pathfinder is the desktop front-end: a window showing the board,
// edited with the mouse and driven from the keyboard.
//
//	left click / drag   place start, then end, then barriers
//	right click / drag  erase
//	Space               run the search
//	Esc                 cancel a running search
//	C                   clear the board
//	Y                   copy the layout text
//	P                   copy a PNG snapshot
//	S / L               save / load a layout file
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/sirupsen/logrus"
	"golang.design/x/clipboard"

	"github.com/peovukea/Pathfinding-visualization/board"
	"github.com/peovukea/Pathfinding-visualization/internal/config"
	"github.com/peovukea/Pathfinding-visualization/internal/logging"
	"github.com/peovukea/Pathfinding-visualization/layout"
)

func main() {
	configPath := flag.String("config", "", "YAML config file")
	layoutPath := flag.String("layout", "", "layout file to open at start-up")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	log, err := logging.New(cfg.Log, nil)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	b, err := openBoard(cfg, *layoutPath, log)
	if err != nil {
		log.WithError(err).Fatal("cannot create board")
	}

	imageClipboard := true
	if err := clipboard.Init(); err != nil {
		log.WithError(err).Warn("image clipboard unavailable")
		imageClipboard = false
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	game := newGame(ctx, b, cfg.Grid.Width, log)
	game.imageClipboard = imageClipboard

	ebiten.SetWindowSize(cfg.Grid.Width, cfg.Grid.Width+statusHeight)
	ebiten.SetWindowTitle("A* Path Finding Algorithm")
	ebiten.SetWindowClosingHandled(true)

	if err := ebiten.RunGame(game); err != nil {
		log.WithError(err).Fatal("window closed with error")
	}
}

func openBoard(cfg *config.Config, path string, log logrus.FieldLogger) (*board.Board, error) {
	if path == "" {
		return board.New(cfg.Grid.Rows, cfg.Grid.Width, log)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	g, err := layout.Parse(f, cfg.Grid.Width)
	if err != nil {
		return nil, fmt.Errorf("load layout %s: %w", path, err)
	}
	return board.FromGrid(g, log), nil
}
