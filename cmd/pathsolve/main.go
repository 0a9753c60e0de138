// Command pathsolve runs A* on a board read from a layout or scenario file
// and prints the searched board.
//
//	pathsolve -layout maze.txt [-png out.png]
//	pathsolve -scenario detour.yaml
//
// The exit status is 0 when a path is found, 2 when none exists and 1 on
// any error, including a scenario whose expectation is not met.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/peovukea/Pathfinding-visualization/astar"
	"github.com/peovukea/Pathfinding-visualization/gridgraph"
	"github.com/peovukea/Pathfinding-visualization/internal/config"
	"github.com/peovukea/Pathfinding-visualization/internal/logging"
	"github.com/peovukea/Pathfinding-visualization/layout"
	"github.com/peovukea/Pathfinding-visualization/render"
)

const (
	exitFound    = 0
	exitError    = 1
	exitNotFound = 2
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("pathsolve", flag.ContinueOnError)
	fs.SetOutput(stderr)
	layoutPath := fs.String("layout", "", "layout text file")
	scenarioPath := fs.String("scenario", "", "YAML scenario file")
	pngPath := fs.String("png", "", "write a PNG snapshot of the searched board")
	width := fs.Int("width", 0, "board width in pixels for -layout (0: 16px cells)")
	configPath := fs.String("config", "", "YAML config file")
	if err := fs.Parse(args); err != nil {
		return exitError
	}
	if (*layoutPath == "") == (*scenarioPath == "") {
		fmt.Fprintln(stderr, "pathsolve: exactly one of -layout or -scenario is required")
		fs.Usage()
		return exitError
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return exitError
	}
	log, err := logging.New(cfg.Log, stderr)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return exitError
	}

	var (
		g        *gridgraph.Grid
		scenario *layout.Scenario
	)
	if *scenarioPath != "" {
		scenario, err = layout.LoadScenario(*scenarioPath)
		if err == nil {
			g, err = scenario.Build()
		}
	} else {
		g, err = loadLayout(*layoutPath, *width)
	}
	if err != nil {
		log.WithError(err).Error("cannot load board")
		return exitError
	}

	res, err := astar.Search(g, g.Start(), g.End())
	found := err == nil
	if err != nil && !errors.Is(err, astar.ErrNotFound) {
		log.WithError(err).Error("search failed")
		return exitError
	}

	if err := layout.Format(stdout, g); err != nil {
		log.WithError(err).Error("cannot write board")
		return exitError
	}

	length := 0
	if found {
		length = res.Path.Len()
		fmt.Fprintf(stdout, "path: %d moves, %d cells expanded\n", length, res.Expanded)
		log.WithFields(logrus.Fields{"length": length, "expanded": res.Expanded}).Debug("path found")
	} else {
		if _, cost, herr := g.BarriersToClear(g.Start(), g.End()); herr == nil {
			fmt.Fprintf(stdout, "no path: erase %d barrier(s) to connect\n", cost)
		} else {
			fmt.Fprintln(stdout, "no path")
		}
	}

	if *pngPath != "" {
		if err := render.SavePNG(*pngPath, render.FrameOf(g), render.Classic); err != nil {
			log.WithError(err).Error("cannot write snapshot")
			return exitError
		}
		log.WithField("path", *pngPath).Info("snapshot written")
	}

	if scenario != nil {
		if err := scenario.Verify(found, length); err != nil {
			log.WithError(err).Error("scenario failed")
			return exitError
		}
	}

	if !found {
		return exitNotFound
	}
	return exitFound
}

func loadLayout(path string, width int) (*gridgraph.Grid, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	g, err := layout.Parse(f, width)
	if err != nil {
		return nil, fmt.Errorf("load layout %s: %w", path, err)
	}
	return g, nil
}
