// Package ws implements the subscriber transport: a single shared websocket
// hub that fans broadcast frames out to every attached client. Publishing is
// non-blocking; the hub never reports delivery back to publishers.
package ws

import (
	"context"
	"encoding/json"

	"github.com/go-faster/jx"
	"go.uber.org/zap"
)

// broadcastBuffer bounds the queue between publishers and the fan-out loop.
const broadcastBuffer = 256

// Hub owns the set of live subscribers and the broadcast fan-out. All access
// to the client set happens on the Run goroutine; publishers and connection
// handlers communicate with it through channels only.
type Hub struct {
	lg         *zap.Logger
	register   chan *Client
	unregister chan *Client
	frames     chan []byte
	clients    map[*Client]struct{}
}

// NewHub creates a Hub. Call Run before attaching subscribers.
func NewHub(lg *zap.Logger) *Hub {
	return &Hub{
		lg:         lg,
		register:   make(chan *Client),
		unregister: make(chan *Client),
		frames:     make(chan []byte, broadcastBuffer),
		clients:    make(map[*Client]struct{}),
	}
}

// Run processes subscriber registration and broadcast frames until ctx is
// cancelled. It must run on exactly one goroutine.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			for c := range h.clients {
				delete(h.clients, c)
				close(c.send)
			}
			return

		case c := <-h.register:
			h.clients[c] = struct{}{}
			h.lg.Info("Subscriber attached", zap.Int("subscribers", len(h.clients)))

		case c := <-h.unregister:
			if _, ok := h.clients[c]; ok {
				delete(h.clients, c)
				close(c.send)
			}
			h.lg.Info("Subscriber detached", zap.Int("subscribers", len(h.clients)))

		case frame := <-h.frames:
			for c := range h.clients {
				select {
				case c.send <- frame:
				default:
					// Slow consumer: drop the client rather than stall
					// the fan-out for everyone else.
					delete(h.clients, c)
					close(c.send)
				}
			}
		}
	}
}

// Broadcast publishes a payload to all subscribers on the named channel.
// It never blocks: when the queue is full the event is dropped and logged.
func (h *Hub) Broadcast(channel string, payload any) {
	frame, err := encodeFrame(channel, payload)
	if err != nil {
		h.lg.Warn("Broadcast payload not encodable", zap.String("channel", channel), zap.Error(err))
		return
	}

	select {
	case h.frames <- frame:
	default:
		h.lg.Warn("Broadcast queue full, event dropped", zap.String("channel", channel))
	}
}

// encodeFrame wraps a payload in the wire envelope {"event": ..., "data": ...}.
func encodeFrame(event string, payload any) ([]byte, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	var e jx.Encoder
	e.ObjStart()
	e.FieldStart("event")
	e.Str(event)
	e.FieldStart("data")
	e.Raw(data)
	e.ObjEnd()
	return e.Bytes(), nil
}
