package ws

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestEncodeFrame(t *testing.T) {
	frame, err := encodeFrame("notificacion", map[string]any{"title": "hola"})
	require.NoError(t, err)

	var envelope struct {
		Event string         `json:"event"`
		Data  map[string]any `json:"data"`
	}
	require.NoError(t, json.Unmarshal(frame, &envelope))
	assert.Equal(t, "notificacion", envelope.Event)
	assert.Equal(t, "hola", envelope.Data["title"])
}

func TestEncodeFrame_UnencodablePayload(t *testing.T) {
	_, err := encodeFrame("notificacion", make(chan int))
	require.Error(t, err)
}

func TestBroadcast_NoSubscribersDoesNotBlock(t *testing.T) {
	hub := NewHub(zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go hub.Run(ctx)

	done := make(chan struct{})
	go func() {
		for range 10 {
			hub.Broadcast("notificacion", map[string]any{"n": 1})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("broadcast blocked with zero subscribers")
	}
}

func TestBroadcast_ReachesAllSubscribers(t *testing.T) {
	hub := NewHub(zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go hub.Run(ctx)

	srv := httptest.NewServer(hub.Handler())
	defer srv.Close()
	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http")

	conns := make([]*websocket.Conn, 2)
	for i := range conns {
		conn, resp, err := websocket.DefaultDialer.Dial(wsURL, nil)
		require.NoError(t, err)
		resp.Body.Close()
		defer conn.Close()
		conns[i] = conn
	}

	// Registration is asynchronous; keep publishing until both subscribers
	// have seen a frame or the deadline passes.
	deadline := time.Now().Add(5 * time.Second)
	for _, conn := range conns {
		received := false
		for !received && time.Now().Before(deadline) {
			hub.Broadcast("notificacion", map[string]any{"title": "nuevo pedido"})

			_ = conn.SetReadDeadline(time.Now().Add(100 * time.Millisecond))
			_, frame, err := conn.ReadMessage()
			if err != nil {
				continue
			}

			var envelope struct {
				Event string `json:"event"`
				Data  struct {
					Title string `json:"title"`
				} `json:"data"`
			}
			require.NoError(t, json.Unmarshal(frame, &envelope))
			assert.Equal(t, "notificacion", envelope.Event)
			assert.Equal(t, "nuevo pedido", envelope.Data.Title)
			received = true
		}
		require.True(t, received, "subscriber never received a broadcast frame")
	}
}
