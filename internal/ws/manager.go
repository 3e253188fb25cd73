package ws

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Manager tracks connected gate readers and keeps their connections alive.
type Manager struct {
	mu           sync.RWMutex
	connections  map[uuid.UUID]*Connection
	pingInterval time.Duration
}

// NewManager builds connection manager.
func NewManager(pingInterval time.Duration) *Manager {
	if pingInterval <= 0 {
		pingInterval = 30 * time.Second
	}
	return &Manager{
		connections:  make(map[uuid.UUID]*Connection),
		pingInterval: pingInterval,
	}
}

// Add registers a new reader connection, replacing any stale one.
func (m *Manager) Add(conn *Connection) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.connections[conn.ReaderID()] = conn
}

// Remove drops a reader connection.
func (m *Manager) Remove(readerID uuid.UUID) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.connections, readerID)
}

// Connected returns the number of readers currently attached.
func (m *Manager) Connected() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.connections)
}

// Start begins the ping loop; it returns when ctx is cancelled.
func (m *Manager) Start(ctx context.Context) {
	ticker := time.NewTicker(m.pingInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.mu.RLock()
			for _, conn := range m.connections {
				_ = conn.Ping()
			}
			m.mu.RUnlock()
		}
	}
}
