package tracking

import (
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// Event is a trip tracking update pushed to subscribed clients.
type Event struct {
	Type      string                 `json:"type"`
	TripID    string                 `json:"trip_id"`
	Data      map[string]interface{} `json:"data,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

const (
	EventTripStarted        = "trip_started"
	EventTripInTransit      = "trip_in_transit"
	EventTripCompleted      = "trip_completed"
	EventCheckpointArrived  = "checkpoint_arrived"
	EventCheckpointDeparted = "checkpoint_departed"
)

// Manager handles WebSocket connections for live trip tracking.
type Manager struct {
	connections map[string]*Connection
	mu          sync.RWMutex
	hub         *hub
	upgrader    websocket.Upgrader
	logger      *zap.Logger
}

// Connection represents a tracking client. A client may follow several trips.
type Connection struct {
	ID           string
	TripIDs      []string
	Conn         *websocket.Conn
	Send         chan Event
	LastActivity time.Time
	mu           sync.Mutex
}

type hub struct {
	connections map[*Connection]bool
	broadcast   chan Event
	register    chan *Connection
	unregister  chan *Connection
	stop        chan struct{}
}

func NewManager(logger *zap.Logger) *Manager {
	h := &hub{
		connections: make(map[*Connection]bool),
		broadcast:   make(chan Event, 256),
		register:    make(chan *Connection),
		unregister:  make(chan *Connection),
		stop:        make(chan struct{}),
	}

	go h.run()

	return &Manager{
		connections: make(map[string]*Connection),
		hub:         h,
		logger:      logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				// In production, implement proper origin checking
				return true
			},
		},
	}
}

// HandleConnection upgrades an HTTP request to a tracking WebSocket. Clients
// may pre-subscribe with a ?trip_id= query parameter or send a subscribe
// message after connecting.
func (m *Manager) HandleConnection(w http.ResponseWriter, r *http.Request) (*Connection, error) {
	conn, err := m.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to upgrade connection: %w", err)
	}

	connection := &Connection{
		ID:           uuid.New().String(),
		Conn:         conn,
		Send:         make(chan Event, 256),
		LastActivity: time.Now(),
	}
	if tripID := r.URL.Query().Get("trip_id"); tripID != "" {
		connection.TripIDs = []string{tripID}
	}

	m.hub.register <- connection

	m.mu.Lock()
	m.connections[connection.ID] = connection
	m.mu.Unlock()

	go m.readPump(connection)
	go m.writePump(connection)

	return connection, nil
}

func (m *Manager) readPump(conn *Connection) {
	defer func() {
		m.remove(conn)
		conn.Conn.Close()
	}()

	conn.Conn.SetReadLimit(512)
	conn.Conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	conn.Conn.SetPongHandler(func(string) error {
		conn.Conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		return nil
	})

	for {
		var msg struct {
			Type   string `json:"type"`
			TripID string `json:"trip_id"`
		}
		if err := conn.Conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				m.logger.Warn("tracking connection closed unexpectedly", zap.Error(err))
			}
			break
		}

		conn.mu.Lock()
		conn.LastActivity = time.Now()
		conn.mu.Unlock()

		switch msg.Type {
		case "subscribe":
			m.subscribe(conn, msg.TripID)
		case "unsubscribe":
			m.unsubscribe(conn, msg.TripID)
		default:
			m.logger.Debug("unknown tracking message type", zap.String("type", msg.Type))
		}
	}
}

func (m *Manager) writePump(conn *Connection) {
	ticker := time.NewTicker(54 * time.Second)
	defer func() {
		ticker.Stop()
		conn.Conn.Close()
	}()

	for {
		select {
		case event, ok := <-conn.Send:
			conn.Conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if !ok {
				conn.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := conn.Conn.WriteJSON(event); err != nil {
				return
			}

		case <-ticker.C:
			conn.Conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := conn.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// remove drops a connection from both the manager map and the hub. The hub
// stops receiving unregisters once shut down, so the send races against stop.
func (m *Manager) remove(conn *Connection) {
	m.mu.Lock()
	delete(m.connections, conn.ID)
	m.mu.Unlock()

	select {
	case m.hub.unregister <- conn:
	case <-m.hub.stop:
	}
}

func (m *Manager) subscribe(conn *Connection, tripID string) {
	if tripID == "" {
		return
	}
	conn.mu.Lock()
	for _, id := range conn.TripIDs {
		if id == tripID {
			conn.mu.Unlock()
			return
		}
	}
	conn.TripIDs = append(conn.TripIDs, tripID)
	conn.mu.Unlock()
}

func (m *Manager) unsubscribe(conn *Connection, tripID string) {
	conn.mu.Lock()
	var kept []string
	for _, id := range conn.TripIDs {
		if id != tripID {
			kept = append(kept, id)
		}
	}
	conn.TripIDs = kept
	conn.mu.Unlock()
}

func (h *hub) run() {
	for {
		select {
		case conn := <-h.register:
			h.connections[conn] = true

		case conn := <-h.unregister:
			if _, ok := h.connections[conn]; ok {
				delete(h.connections, conn)
				close(conn.Send)
			}

		case event := <-h.broadcast:
			for conn := range h.connections {
				if !conn.follows(event.TripID) {
					continue
				}
				select {
				case conn.Send <- event:
				default:
					close(conn.Send)
					delete(h.connections, conn)
				}
			}

		case <-h.stop:
			for conn := range h.connections {
				close(conn.Send)
				delete(h.connections, conn)
			}
			return
		}
	}
}

func (c *Connection) follows(tripID string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, id := range c.TripIDs {
		if id == tripID {
			return true
		}
	}
	return false
}

// Publish queues a trip event for delivery to all subscribed connections.
// Events are dropped rather than blocking the caller.
func (m *Manager) Publish(event Event) {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	select {
	case m.hub.broadcast <- event:
	default:
		m.logger.Warn("tracking broadcast channel full, dropping event",
			zap.String("type", event.Type),
			zap.String("trip_id", event.TripID))
	}
}

// GetConnectionCount returns the number of active tracking connections.
func (m *Manager) GetConnectionCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.connections)
}

// Close shuts down the manager and all connections.
func (m *Manager) Close() {
	close(m.hub.stop)

	m.mu.Lock()
	for _, conn := range m.connections {
		if conn.Conn != nil {
			conn.Conn.Close()
		}
	}
	m.connections = make(map[string]*Connection)
	m.mu.Unlock()
}
