package websocket

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/frogleap/server/internal/proto"
)

const (
	writeTimeout = 10 * time.Second
	readTimeout  = 60 * time.Second
	pingInterval = 30 * time.Second
)

// ConnectionManager tracks active sockets by connection id.
type ConnectionManager struct {
	connections map[string]*websocket.Conn

	// writeMu serializes writes per socket; gorilla's WriteJSON is not
	// safe for concurrent use.
	writeMu map[string]*sync.Mutex

	mu sync.RWMutex // Protects the maps themselves
}

func NewConnectionManager() *ConnectionManager {
	return &ConnectionManager{
		connections: make(map[string]*websocket.Conn),
		writeMu:     make(map[string]*sync.Mutex),
	}
}

// AddConnection registers a new connection and initializes its write lock.
func (cm *ConnectionManager) AddConnection(connID string, conn *websocket.Conn) {
	cm.mu.Lock()
	defer cm.mu.Unlock()
	cm.connections[connID] = conn
	cm.writeMu[connID] = &sync.Mutex{}
}

// RemoveConnection closes and forgets a connection.
func (cm *ConnectionManager) RemoveConnection(connID string) {
	cm.mu.Lock()
	defer cm.mu.Unlock()
	if conn, exists := cm.connections[connID]; exists {
		conn.Close()
		delete(cm.connections, connID)
		delete(cm.writeMu, connID)
	}
}

// Send writes a message to one connection. A missing connection is not an
// error; the peer simply left.
func (cm *ConnectionManager) Send(connID string, message proto.ServerMessage) error {
	cm.mu.RLock()
	conn, exists := cm.connections[connID]
	mu, muExists := cm.writeMu[connID]
	cm.mu.RUnlock()

	if !exists || !muExists {
		return nil
	}

	mu.Lock()
	defer mu.Unlock()

	conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	return conn.WriteJSON(message)
}

// SendRaw writes a pre-serialized frame. Used for state snapshots that were
// marshaled while the room lock was held.
func (cm *ConnectionManager) SendRaw(connID string, payload []byte) error {
	cm.mu.RLock()
	conn, exists := cm.connections[connID]
	mu, muExists := cm.writeMu[connID]
	cm.mu.RUnlock()

	if !exists || !muExists {
		return nil
	}

	mu.Lock()
	defer mu.Unlock()

	conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	return conn.WriteMessage(websocket.TextMessage, payload)
}

// Count returns the number of live connections.
func (cm *ConnectionManager) Count() int {
	cm.mu.RLock()
	defer cm.mu.RUnlock()
	return len(cm.connections)
}
