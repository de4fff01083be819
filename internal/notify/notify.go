// Package notify formats and publishes global notification events to every
// currently connected subscriber. Delivery is best-effort: there is no
// targeting, no persistence, and no acknowledgment.
package notify

import (
	"context"
	"time"

	"github.com/go-faster/sdk/zctx"
	"go.uber.org/zap"
)

// Channel is the well-known broadcast channel all notifications go out on.
const Channel = "notificacion"

// Event is the wire shape of a notification. It is transient and never
// persisted.
type Event struct {
	Title     string         `json:"title"`
	Message   string         `json:"message"`
	Timestamp string         `json:"timestamp"`
	Extra     map[string]any `json:"extra"`
}

// Broadcaster delivers a payload to all subscribers attached to a channel.
// The subscriber set belongs to the transport layer; implementations must not
// block on or report delivery.
type Broadcaster interface {
	Broadcast(channel string, payload any)
}

// Service builds notification events and hands them to the transport.
// It is stateless per call.
type Service struct {
	transport Broadcaster
	now       func() time.Time
}

// NewService creates a notification Service publishing through the given
// transport.
func NewService(transport Broadcaster) *Service {
	return &Service{
		transport: transport,
		now:       time.Now,
	}
}

// Notify publishes a global notification. The timestamp is the emission-time
// UTC instant; a nil extra becomes an empty object on the wire. Notify never
// fails from the caller's perspective, whether zero or all subscribers are
// listening.
func (s *Service) Notify(ctx context.Context, title, message string, extra map[string]any) {
	if extra == nil {
		extra = map[string]any{}
	}

	ev := Event{
		Title:     title,
		Message:   message,
		Timestamp: s.now().UTC().Format(time.RFC3339),
		Extra:     extra,
	}
	s.transport.Broadcast(Channel, ev)

	zctx.From(ctx).Info("Notification broadcast",
		zap.String("title", title),
		zap.String("message", message),
	)
}
