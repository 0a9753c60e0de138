// Command pathserver serves the board to browsers: open http://localhost:8080
// (or the configured server.addr) to edit the board and watch searches live.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/peovukea/Pathfinding-visualization/board"
	"github.com/peovukea/Pathfinding-visualization/internal/config"
	"github.com/peovukea/Pathfinding-visualization/internal/logging"
	"github.com/peovukea/Pathfinding-visualization/server"
)

func main() {
	configPath := flag.String("config", "", "YAML config file")
	addr := flag.String("addr", "", "listen address, overrides server.addr")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if *addr != "" {
		cfg.Server.Addr = *addr
	}

	log, err := logging.New(cfg.Log, nil)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	b, err := board.New(cfg.Grid.Rows, cfg.Grid.Width, log)
	if err != nil {
		log.WithError(err).Fatal("cannot create board")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := server.New(b, cfg.Animation.StepDelay, log)
	if err := srv.Serve(ctx, cfg.Server.Addr); err != nil {
		log.WithError(err).Fatal("server stopped")
	}
	log.Info("bye")
}
