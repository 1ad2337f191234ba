// Package tap streams handled-update events to WebSocket clients.
package tap

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/eliseohh/demobot/internal/event"
)

const writeWait = 2 * time.Second

type Tap struct {
	upgrader websocket.Upgrader
	logger   *slog.Logger

	mu      sync.RWMutex
	clients map[*websocket.Conn]struct{}
	// writeMu serializes broadcasts; a websocket.Conn allows one writer.
	writeMu sync.Mutex

	httpServer *http.Server
	listener   net.Listener
	closed     chan struct{}
}

func New(logger *slog.Logger) *Tap {
	return &Tap{
		upgrader: websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }},
		logger:   logger,
		clients:  make(map[*websocket.Conn]struct{}),
		closed:   make(chan struct{}),
	}
}

// Start serves the tap on addr in the background.
func (t *Tap) Start(addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", addr, err)
	}
	t.listener = ln

	mux := http.NewServeMux()
	mux.Handle("/", t)
	t.httpServer = &http.Server{Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		defer close(t.closed)
		t.logger.Info("tap listening", "addr", ln.Addr().String())
		if err := t.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			t.logger.Error("tap server error", "error", err)
		}
	}()
	return nil
}

// Addr is the bound address, useful when Start was given port 0.
func (t *Tap) Addr() string {
	if t.listener == nil {
		return ""
	}
	return t.listener.Addr().String()
}

func (t *Tap) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := t.upgrader.Upgrade(w, r, nil)
	if err != nil {
		t.logger.Warn("tap upgrade failed", "error", err)
		return
	}
	t.mu.Lock()
	t.clients[conn] = struct{}{}
	t.mu.Unlock()
	t.logger.Debug("tap client connected", "remote", conn.RemoteAddr().String())
	go t.readLoop(conn)
}

// readLoop discards client frames and notices disconnects.
func (t *Tap) readLoop(conn *websocket.Conn) {
	defer func() {
		t.remove(conn)
		t.logger.Debug("tap client disconnected", "remote", conn.RemoteAddr().String())
	}()
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (t *Tap) remove(conn *websocket.Conn) {
	t.mu.Lock()
	delete(t.clients, conn)
	t.mu.Unlock()
	_ = conn.Close()
}

// Clients returns the number of connected clients.
func (t *Tap) Clients() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.clients)
}

// Observe sends e to every connected client as one JSON text frame.
func (t *Tap) Observe(e event.Event) {
	t.mu.RLock()
	conns := make([]*websocket.Conn, 0, len(t.clients))
	for c := range t.clients {
		conns = append(conns, c)
	}
	t.mu.RUnlock()

	if len(conns) == 0 {
		return
	}

	data, err := json.Marshal(e)
	if err != nil {
		t.logger.Error("tap encode failed", "error", err)
		return
	}

	t.writeMu.Lock()
	defer t.writeMu.Unlock()
	for _, c := range conns {
		_ = c.SetWriteDeadline(time.Now().Add(writeWait))
		if err := c.WriteMessage(websocket.TextMessage, data); err != nil {
			t.logger.Warn("tap write failed", "remote", c.RemoteAddr().String(), "error", err)
			go t.remove(c)
		}
	}
}

func (t *Tap) Close(ctx context.Context) error {
	var err error
	if t.httpServer != nil {
		err = t.httpServer.Shutdown(ctx)
	}

	t.mu.Lock()
	for c := range t.clients {
		_ = c.Close()
	}
	t.clients = map[*websocket.Conn]struct{}{}
	t.mu.Unlock()

	if t.httpServer != nil {
		select {
		case <-t.closed:
		case <-ctx.Done():
		}
	}
	return err
}
