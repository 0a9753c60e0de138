package server

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
	channerics "github.com/niceyeti/channerics/channels"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/peovukea/Pathfinding-visualization/board"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 1 * time.Second
	// Maximum message size allowed from peer.
	maxMessageSize = 512
	// Send pings to peer with this period.
	pingPeriod = 5 * time.Second
	// Pings that may go unanswered before the peer is considered gone.
	pongWait = 3 * pingPeriod
)

// ErrPongDeadlineExceeded is returned when a client stops answering pings.
var ErrPongDeadlineExceeded = errors.New("server: client disconnect, pong deadline exceeded")

var upgrader = websocket.Upgrader{}

// client publishes board snapshots to a single websocket peer.
type client struct {
	ws      *websocket.Conn
	writeMu sync.Mutex
	updates <-chan board.Snapshot
	log     logrus.FieldLogger
}

// sync runs the read, ping and publish pumps until the peer leaves, ctx is
// done, or one of them fails. A clean disconnect returns nil.
func (cli *client) sync(ctx context.Context, first board.Snapshot) error {
	cli.log.Debug("websocket client connected")
	if err := cli.write(first); err != nil {
		return err
	}

	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		// Unblock the reader once any pump stops.
		<-groupCtx.Done()
		return cli.ws.SetReadDeadline(time.Now())
	})
	group.Go(func() error {
		return cli.readMessages(groupCtx)
	})
	group.Go(func() error {
		return cli.pingPong(groupCtx)
	})
	group.Go(func() error {
		return cli.publish(groupCtx)
	})

	err := group.Wait()
	if errors.Is(err, errPeerClosed) {
		return nil
	}
	return err
}

var errPeerClosed = errors.New("server: peer closed")

// readMessages drains and discards client messages so control frames are
// processed. Any read error ends the session.
func (cli *client) readMessages(ctx context.Context) error {
	cli.ws.SetReadLimit(maxMessageSize)
	for {
		if _, _, err := cli.ws.ReadMessage(); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			if isUnexpected(err) {
				return fmt.Errorf("read: %w", err)
			}
			return errPeerClosed
		}
	}
}

func (cli *client) pingPong(ctx context.Context) error {
	var lastPong atomic.Int64
	lastPong.Store(time.Now().UnixNano())
	cli.ws.SetPongHandler(func(string) error {
		lastPong.Store(time.Now().UnixNano())
		return nil
	})

	for range channerics.NewTicker(ctx.Done(), pingPeriod) {
		if time.Since(time.Unix(0, lastPong.Load())) > pongWait {
			return ErrPongDeadlineExceeded
		}
		cli.writeMu.Lock()
		err := cli.ws.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait))
		cli.writeMu.Unlock()
		if err != nil {
			return fmt.Errorf("ping: %w", err)
		}
	}
	return nil
}

func (cli *client) publish(ctx context.Context) error {
	for snap := range channerics.OrDone(ctx.Done(), cli.updates) {
		if err := cli.write(snap); err != nil {
			return err
		}
	}
	return nil
}

func (cli *client) write(snap board.Snapshot) error {
	cli.writeMu.Lock()
	defer cli.writeMu.Unlock()
	if err := cli.ws.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return fmt.Errorf("set deadline: %w", err)
	}
	if err := cli.ws.WriteJSON(snap); err != nil {
		return fmt.Errorf("publish: %w", err)
	}
	return nil
}

func (cli *client) close() {
	cli.writeMu.Lock()
	_ = cli.ws.WriteControl(
		websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
		time.Now().Add(writeWait))
	cli.writeMu.Unlock()
	_ = cli.ws.Close()
}

func isUnexpected(err error) bool {
	return websocket.IsUnexpectedCloseError(err,
		websocket.CloseNormalClosure,
		websocket.CloseGoingAway,
		websocket.CloseNoStatusReceived)
}
