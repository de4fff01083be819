package notify

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type captured struct {
	channel string
	payload any
}

type mockBroadcaster struct {
	sent []captured
}

func (m *mockBroadcaster) Broadcast(channel string, payload any) {
	m.sent = append(m.sent, captured{channel: channel, payload: payload})
}

func TestNotify_PublishesOnWellKnownChannel(t *testing.T) {
	tr := &mockBroadcaster{}
	svc := NewService(tr)
	svc.now = func() time.Time {
		return time.Date(2025, 6, 1, 12, 30, 0, 0, time.FixedZone("COT", -5*3600))
	}

	svc.Notify(context.Background(), "Alerta", "Cierre temprano hoy", nil)

	require.Len(t, tr.sent, 1)
	assert.Equal(t, "notificacion", tr.sent[0].channel)

	ev, ok := tr.sent[0].payload.(Event)
	require.True(t, ok, "expected Event payload, got %T", tr.sent[0].payload)
	assert.Equal(t, "Alerta", ev.Title)
	assert.Equal(t, "Cierre temprano hoy", ev.Message)
	assert.Equal(t, "2025-06-01T17:30:00Z", ev.Timestamp, "timestamp must be the UTC emission instant")
}

func TestNotify_NilExtraBecomesEmptyObject(t *testing.T) {
	tr := &mockBroadcaster{}
	svc := NewService(tr)

	svc.Notify(context.Background(), "t", "m", nil)

	require.Len(t, tr.sent, 1)
	ev := tr.sent[0].payload.(Event)
	require.NotNil(t, ev.Extra)
	assert.Empty(t, ev.Extra)
}

func TestNotify_ExtraPassedThrough(t *testing.T) {
	tr := &mockBroadcaster{}
	svc := NewService(tr)

	svc.Notify(context.Background(), "t", "m", map[string]any{"zone": "norte"})

	ev := tr.sent[0].payload.(Event)
	assert.Equal(t, "norte", ev.Extra["zone"])
}
