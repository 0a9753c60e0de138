package server

import (
	"sync"

	"github.com/peovukea/Pathfinding-visualization/board"
)

// hub fans board snapshots out to websocket clients. Snapshots are
// idempotent, so a slow subscriber only ever sees the newest one.
type hub struct {
	mu   sync.Mutex
	subs map[chan board.Snapshot]struct{}
}

func newHub() *hub {
	return &hub{subs: make(map[chan board.Snapshot]struct{})}
}

// subscribe registers a new listener. The returned func unregisters it and
// closes the channel.
func (h *hub) subscribe() (<-chan board.Snapshot, func()) {
	ch := make(chan board.Snapshot, 1)
	h.mu.Lock()
	h.subs[ch] = struct{}{}
	h.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			h.mu.Lock()
			delete(h.subs, ch)
			h.mu.Unlock()
			close(ch)
		})
	}
}

// broadcast hands s to every subscriber, replacing any frame still waiting.
func (h *hub) broadcast(s board.Snapshot) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for ch := range h.subs {
		select {
		case ch <- s:
			continue
		default:
		}
		select {
		case <-ch:
		default:
		}
		select {
		case ch <- s:
		default:
		}
	}
}

func (h *hub) size() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}
