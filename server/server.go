// Package server is the web front-end: a small REST API that edits and runs
// a shared board.Board, and a websocket stream that pushes a board snapshot
// to every connected page after each edit and each search step.
//
//	GET    /                      the page
//	GET    /api/board             current snapshot (JSON)
//	POST   /api/cells/{row}/{col} primary click: start, end, then barriers
//	DELETE /api/cells/{row}/{col} erase
//	POST   /api/run               start a search (202 once it is running)
//	POST   /api/cancel            cancel the running search
//	POST   /api/clear             reset the board
//	GET    /ws                    snapshot stream
package server

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/peovukea/Pathfinding-visualization/board"
	"github.com/peovukea/Pathfinding-visualization/gridgraph"
)

//go:embed static/index.html
var indexHTML []byte

// shutdownGrace bounds how long Serve waits for in-flight requests.
const shutdownGrace = 5 * time.Second

// Server serves one board to any number of pages.
type Server struct {
	board *board.Board
	log   logrus.FieldLogger
	delay time.Duration
	hub   *hub

	mu   sync.Mutex
	base context.Context // parent of searches and websocket sessions
}

// New returns a server for b. delay pauses each search step so the
// animation is visible in a browser; zero runs at full speed.
func New(b *board.Board, delay time.Duration, log logrus.FieldLogger) *Server {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Server{
		board: b,
		log:   log,
		delay: delay,
		hub:   newHub(),
		base:  context.Background(),
	}
}

// Handler returns the routed HTTP handler.
func (s *Server) Handler() http.Handler {
	r := mux.NewRouter()
	r.Use(s.logRequests)
	r.HandleFunc("/", s.serveIndex).Methods(http.MethodGet)
	r.HandleFunc("/ws", s.serveWebsocket).Methods(http.MethodGet)

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/board", s.getBoard).Methods(http.MethodGet)
	api.HandleFunc("/cells/{row:[0-9]+}/{col:[0-9]+}", s.placeCell).Methods(http.MethodPost)
	api.HandleFunc("/cells/{row:[0-9]+}/{col:[0-9]+}", s.eraseCell).Methods(http.MethodDelete)
	api.HandleFunc("/run", s.run).Methods(http.MethodPost)
	api.HandleFunc("/cancel", s.cancel).Methods(http.MethodPost)
	api.HandleFunc("/clear", s.clear).Methods(http.MethodPost)
	return r
}

// Serve listens on addr until ctx is done, then cancels any running search
// and shuts the HTTP server down.
func (s *Server) Serve(ctx context.Context, addr string) error {
	group, groupCtx := errgroup.WithContext(ctx)
	s.setBase(groupCtx)

	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	group.Go(func() error {
		s.log.WithField("addr", addr).Info("listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serve: %w", err)
		}
		return nil
	})
	group.Go(func() error {
		<-groupCtx.Done()
		s.board.Cancel()
		shutCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
		defer cancel()
		return srv.Shutdown(shutCtx)
	})

	return group.Wait()
}

func (s *Server) setBase(ctx context.Context) {
	s.mu.Lock()
	s.base = ctx
	s.mu.Unlock()
}

func (s *Server) baseContext() context.Context {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.base
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.log.WithFields(logrus.Fields{"method": r.Method, "path": r.URL.Path}).Debug("request")
		next.ServeHTTP(w, r)
	})
}

func (s *Server) serveIndex(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(indexHTML)
}

func (s *Server) getBoard(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, s.board.Snapshot())
}

func (s *Server) placeCell(w http.ResponseWriter, r *http.Request) {
	s.editCell(w, r, s.board.Place)
}

func (s *Server) eraseCell(w http.ResponseWriter, r *http.Request) {
	s.editCell(w, r, s.board.Erase)
}

func (s *Server) editCell(w http.ResponseWriter, r *http.Request, apply func(row, col int) error) {
	vars := mux.Vars(r)
	row, _ := strconv.Atoi(vars["row"])
	col, _ := strconv.Atoi(vars["col"])
	if err := apply(row, col); err != nil {
		s.writeError(w, err)
		return
	}
	s.afterEdit(w)
}

func (s *Server) clear(w http.ResponseWriter, _ *http.Request) {
	if err := s.board.Clear(); err != nil {
		s.writeError(w, err)
		return
	}
	s.afterEdit(w)
}

func (s *Server) afterEdit(w http.ResponseWriter) {
	snap := s.board.Snapshot()
	s.hub.broadcast(snap)
	s.writeJSON(w, http.StatusOK, snap)
}

// run starts a search on its own goroutine and answers once the first step
// has been taken, or with the error if the search could not start.
func (s *Server) run(w http.ResponseWriter, _ *http.Request) {
	started := make(chan error, 1)

	go func() {
		first := true
		out, err := s.board.Run(s.baseContext(), func(snap board.Snapshot) {
			if first {
				first = false
				started <- nil
			}
			s.hub.broadcast(snap)
			s.pause()
		})
		if first {
			started <- err
		}
		if err != nil {
			return
		}
		s.hub.broadcast(s.board.Snapshot())
		s.log.WithField("status", out.Status).Debug("search published")
	}()

	if err := <-started; err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusAccepted, map[string]bool{"running": true})
}

func (s *Server) pause() {
	if s.delay <= 0 {
		return
	}
	t := time.NewTimer(s.delay)
	defer t.Stop()
	select {
	case <-t.C:
	case <-s.baseContext().Done():
	}
}

func (s *Server) cancel(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]bool{"cancelled": s.board.Cancel()})
}

func (s *Server) serveWebsocket(w http.ResponseWriter, r *http.Request) {
	ws, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.WithError(err).Warn("websocket upgrade failed")
		return
	}

	updates, unsubscribe := s.hub.subscribe()
	defer unsubscribe()

	cli := &client{ws: ws, updates: updates, log: s.log}
	defer cli.close()

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()
	go func() {
		select {
		case <-s.baseContext().Done():
			cancel()
		case <-ctx.Done():
		}
	}()

	if err := cli.sync(ctx, s.board.Snapshot()); err != nil {
		s.log.WithError(err).Info("websocket closed")
	}
}

type errorBody struct {
	Error string `json:"error"`
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	code := http.StatusInternalServerError
	switch {
	case errors.Is(err, board.ErrBusy):
		code = http.StatusConflict
	case errors.Is(err, board.ErrNoEndpoints):
		code = http.StatusUnprocessableEntity
	case errors.Is(err, gridgraph.ErrOutOfBounds):
		code = http.StatusNotFound
	}
	if code == http.StatusInternalServerError {
		s.log.WithError(err).Error("request failed")
	}
	s.writeJSON(w, code, errorBody{Error: err.Error()})
}

func (s *Server) writeJSON(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.log.WithError(err).Warn("write response")
	}
}
