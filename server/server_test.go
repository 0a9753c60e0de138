package server_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/peovukea/Pathfinding-visualization/board"
	"github.com/peovukea/Pathfinding-visualization/internal/logging"
	"github.com/peovukea/Pathfinding-visualization/server"
)

func newTestServer(t *testing.T, rows int, delay time.Duration) *httptest.Server {
	t.Helper()
	b, err := board.New(rows, rows*10, logging.Discard())
	require.NoError(t, err)
	ts := httptest.NewServer(server.New(b, delay, logging.Discard()).Handler())
	t.Cleanup(ts.Close)
	return ts
}

func do(t *testing.T, ts *httptest.Server, method, path string) (*http.Response, []byte) {
	t.Helper()
	req, err := http.NewRequest(method, ts.URL+path, nil)
	require.NoError(t, err)
	res, err := ts.Client().Do(req)
	require.NoError(t, err)
	defer res.Body.Close()
	var raw json.RawMessage
	_ = json.NewDecoder(res.Body).Decode(&raw)
	return res, raw
}

func snapshotOf(t *testing.T, raw []byte) board.Snapshot {
	t.Helper()
	var s board.Snapshot
	require.NoError(t, json.Unmarshal(raw, &s))
	return s
}

func TestServer_Editing(t *testing.T) {
	ts := newTestServer(t, 3, 0)

	for _, p := range []string{"/api/cells/0/0", "/api/cells/2/0", "/api/cells/1/0"} {
		res, _ := do(t, ts, http.MethodPost, p)
		require.Equal(t, http.StatusOK, res.StatusCode, p)
	}

	res, raw := do(t, ts, http.MethodGet, "/api/board")
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, []string{"S..", "#..", "E.."}, snapshotOf(t, raw).Cells)

	res, raw = do(t, ts, http.MethodDelete, "/api/cells/1/0")
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, []string{"S..", "...", "E.."}, snapshotOf(t, raw).Cells)

	res, _ = do(t, ts, http.MethodPost, "/api/cells/7/7")
	assert.Equal(t, http.StatusNotFound, res.StatusCode)

	res, raw = do(t, ts, http.MethodPost, "/api/clear")
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, []string{"...", "...", "..."}, snapshotOf(t, raw).Cells)

	res, _ = do(t, ts, http.MethodPost, "/api/run")
	assert.Equal(t, http.StatusUnprocessableEntity, res.StatusCode)
}

func TestServer_Index(t *testing.T) {
	ts := newTestServer(t, 3, 0)
	res, err := ts.Client().Get(ts.URL + "/")
	require.NoError(t, err)
	defer res.Body.Close()
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.True(t, strings.HasPrefix(res.Header.Get("Content-Type"), "text/html"))
}

// TestServer_Stream runs the detour board and follows the websocket until
// the final status frame.
func TestServer_Stream(t *testing.T) {
	ts := newTestServer(t, 3, 0)

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	ws, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer ws.Close()

	read := func() board.Snapshot {
		require.NoError(t, ws.SetReadDeadline(time.Now().Add(2*time.Second)))
		var s board.Snapshot
		require.NoError(t, ws.ReadJSON(&s))
		return s
	}

	first := read()
	assert.Equal(t, 3, first.Rows)
	assert.Equal(t, board.StatusIdle, first.Outcome.Status)

	for _, p := range []string{"/api/cells/0/0", "/api/cells/2/0", "/api/cells/1/0", "/api/cells/1/2"} {
		res, _ := do(t, ts, http.MethodPost, p)
		require.Equal(t, http.StatusOK, res.StatusCode, p)
	}
	res, _ := do(t, ts, http.MethodPost, "/api/run")
	require.Equal(t, http.StatusAccepted, res.StatusCode)

	var last board.Snapshot
	for frames := 0; frames < 50; frames++ {
		last = read()
		if last.Outcome.Status == board.StatusFound {
			break
		}
	}
	require.Equal(t, board.StatusFound, last.Outcome.Status)
	assert.Equal(t, 4, last.Outcome.Length)
	assert.Equal(t, []string{"S*o", "#*#", "E*o"}, last.Cells)
}

// TestServer_BusyAndCancel starts a slow search, checks edits are refused,
// then cancels it.
func TestServer_BusyAndCancel(t *testing.T) {
	ts := newTestServer(t, 10, 50*time.Millisecond)

	for _, p := range []string{"/api/cells/0/0", "/api/cells/9/9"} {
		res, _ := do(t, ts, http.MethodPost, p)
		require.Equal(t, http.StatusOK, res.StatusCode, p)
	}

	res, _ := do(t, ts, http.MethodPost, "/api/run")
	require.Equal(t, http.StatusAccepted, res.StatusCode)

	res, _ = do(t, ts, http.MethodPost, "/api/cells/5/5")
	assert.Equal(t, http.StatusConflict, res.StatusCode)
	res, _ = do(t, ts, http.MethodPost, "/api/run")
	assert.Equal(t, http.StatusConflict, res.StatusCode)
	res, _ = do(t, ts, http.MethodPost, "/api/clear")
	assert.Equal(t, http.StatusConflict, res.StatusCode)

	res, raw := do(t, ts, http.MethodPost, "/api/cancel")
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.JSONEq(t, `{"cancelled":true}`, string(raw))

	require.Eventually(t, func() bool {
		_, raw := do(t, ts, http.MethodGet, "/api/board")
		return snapshotOf(t, raw).Outcome.Status == board.StatusCancelled
	}, 2*time.Second, 20*time.Millisecond)
}

func TestServer_ServeStopsOnCancel(t *testing.T) {
	b, err := board.New(3, 30, logging.Discard())
	require.NoError(t, err)
	s := server.New(b, 0, logging.Discard())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Serve(ctx, "127.0.0.1:0") }()

	time.Sleep(50 * time.Millisecond)
	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("Serve did not return after cancel")
	}
}
