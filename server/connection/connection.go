package connection

import (
	"sync"

	"github.com/gorilla/websocket"
)

// Client represents a connected player. The connection ID doubles as the
// player's seat identity at the table.
type Client struct {
	ID   string
	Conn *websocket.Conn
	Send chan []byte
}

// Manager handles all client connections
type Manager struct {
	clients    map[string]*Client
	Register   chan *Client
	Unregister chan *Client
	mutex      sync.RWMutex
}

// NewManager creates a new connection manager
func NewManager() *Manager {
	return &Manager{
		clients:    make(map[string]*Client),
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
	}
}

// Start begins processing connection events
func (m *Manager) Start() {
	for {
		select {
		case client := <-m.Register:
			m.mutex.Lock()
			m.clients[client.ID] = client
			m.mutex.Unlock()
		case client := <-m.Unregister:
			m.mutex.Lock()
			if _, ok := m.clients[client.ID]; ok {
				delete(m.clients, client.ID)
				close(client.Send)
			}
			m.mutex.Unlock()
		}
	}
}

// SendTo queues a message for one client. The send never blocks: a slow
// viewer whose buffer is full misses the message instead of stalling the
// caller.
func (m *Manager) SendTo(clientID string, message []byte) bool {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	client, ok := m.clients[clientID]
	if !ok {
		return false
	}
	select {
	case client.Send <- message:
		return true
	default:
		return false
	}
}

// ClientIDs returns the IDs of all connected clients.
func (m *Manager) ClientIDs() []string {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	ids := make([]string, 0, len(m.clients))
	for id := range m.clients {
		ids = append(ids, id)
	}
	return ids
}

// IsConnected checks whether a client is still registered.
func (m *Manager) IsConnected(clientID string) bool {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	_, ok := m.clients[clientID]
	return ok
}
