package tracking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func trackConnection(m *Manager, conn *Connection) {
	m.hub.register <- conn
	m.mu.Lock()
	m.connections[conn.ID] = conn
	m.mu.Unlock()
}

func TestRemoveDropsConnectionFromManager(t *testing.T) {
	m := NewManager(zap.NewNop())

	first := &Connection{ID: "c1", Send: make(chan Event, 1)}
	second := &Connection{ID: "c2", Send: make(chan Event, 1)}
	trackConnection(m, first)
	trackConnection(m, second)
	require.Equal(t, 2, m.GetConnectionCount())

	m.remove(first)

	assert.Equal(t, 1, m.GetConnectionCount())
	m.remove(second)
	assert.Equal(t, 0, m.GetConnectionCount())
}

func TestRemoveDoesNotBlockAfterClose(t *testing.T) {
	m := NewManager(zap.NewNop())
	conn := &Connection{ID: "c1", Send: make(chan Event, 1)}
	trackConnection(m, conn)

	m.Close()

	done := make(chan struct{})
	go func() {
		m.remove(conn)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("remove blocked after manager shutdown")
	}
	assert.Equal(t, 0, m.GetConnectionCount())
}

func TestPublishReachesSubscribedConnectionOnly(t *testing.T) {
	m := NewManager(zap.NewNop())
	defer m.Close()

	subscribed := &Connection{ID: "c1", TripIDs: []string{"trip-1"}, Send: make(chan Event, 4)}
	other := &Connection{ID: "c2", TripIDs: []string{"trip-2"}, Send: make(chan Event, 4)}
	trackConnection(m, subscribed)
	trackConnection(m, other)

	m.Publish(Event{Type: EventTripStarted, TripID: "trip-1"})

	select {
	case event := <-subscribed.Send:
		assert.Equal(t, EventTripStarted, event.Type)
		assert.Equal(t, "trip-1", event.TripID)
		assert.False(t, event.Timestamp.IsZero())
	case <-time.After(time.Second):
		t.Fatal("subscribed connection never received the event")
	}

	select {
	case event := <-other.Send:
		t.Fatalf("unsubscribed connection received %s", event.Type)
	case <-time.After(50 * time.Millisecond):
	}
}
