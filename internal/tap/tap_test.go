package tap

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eliseohh/demobot/internal/event"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// waitClients polls until the tap has registered n clients.
func waitClients(t *testing.T, tp *Tap, n int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if tp.Clients() == n {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("expected %d clients, have %d", n, tp.Clients())
}

func TestObserveBroadcasts(t *testing.T) {
	tp := New(quietLogger())
	srv := httptest.NewServer(tp)
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/"
	a, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer a.Close()
	b, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer b.Close()

	waitClients(t, tp, 2)

	sent := event.New(5, 77, "callback:btn1", "edit_message_text", nil)
	tp.Observe(sent)

	for _, conn := range []*websocket.Conn{a, b} {
		conn.SetReadDeadline(time.Now().Add(2 * time.Second))
		_, raw, err := conn.ReadMessage()
		require.NoError(t, err)

		var got event.Event
		require.NoError(t, json.Unmarshal(raw, &got))
		assert.Equal(t, sent.ID, got.ID)
		assert.Equal(t, int64(77), got.ChatID)
		assert.Equal(t, "callback:btn1", got.Trigger)
	}
}

func TestDisconnectedClientIsDropped(t *testing.T) {
	tp := New(quietLogger())
	srv := httptest.NewServer(tp)
	defer srv.Close()

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http"), nil)
	require.NoError(t, err)
	waitClients(t, tp, 1)

	conn.Close()
	waitClients(t, tp, 0)

	// No clients: nothing to do, must not block.
	tp.Observe(event.New(1, 1, "text", "send_text", nil))
}

func TestStartAndClose(t *testing.T) {
	tp := New(quietLogger())
	require.NoError(t, tp.Start("127.0.0.1:0"))
	require.NotEmpty(t, tp.Addr())

	conn, _, err := websocket.DefaultDialer.Dial("ws://"+tp.Addr()+"/", nil)
	require.NoError(t, err)
	defer conn.Close()
	waitClients(t, tp, 1)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, tp.Close(ctx))
	assert.Zero(t, tp.Clients())
}
