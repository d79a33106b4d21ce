package realtime

import (
	"sync"
)

// Conn is the connection behavior the registry and the delivery path depend on.
// *Connection satisfies it; tests substitute fakes.
type Conn interface {
	SessionID() string
	Send(payload []byte) error
	Close(code int, reason string)
	IsOpen() bool
}

// Registry maps a user id to their single live connection. Registering a new
// connection for a user supersedes (closes) the previous one; unregistering only
// evicts the entry when it still points at the connection being closed, so a late
// close event never removes a newer session.
//
// State is in-memory only. Losing the process loses all live-connection
// knowledge; clients reconnect and re-register.
type Registry struct {
	mu     sync.RWMutex
	byUser map[string]Conn
}

// NewRegistry constructs an initialized Registry.
func NewRegistry() *Registry {
	return &Registry{byUser: make(map[string]Conn)}
}

// Register installs conn as the live connection for userID. Any previously
// registered connection is closed after the swap.
func (r *Registry) Register(userID string, conn Conn) {
	r.mu.Lock()
	previous := r.byUser[userID]
	r.byUser[userID] = conn
	r.mu.Unlock()

	if previous != nil && previous.SessionID() != conn.SessionID() {
		previous.Close(CloseSuperseded, "session replaced")
	}
}

// Unregister removes the mapping for userID only if conn is still the registered
// connection.
func (r *Registry) Unregister(userID string, conn Conn) {
	r.mu.Lock()
	if current, ok := r.byUser[userID]; ok && current.SessionID() == conn.SessionID() {
		delete(r.byUser, userID)
	}
	r.mu.Unlock()
}

// Lookup returns the live connection for userID, if any.
func (r *Registry) Lookup(userID string) (Conn, bool) {
	r.mu.RLock()
	conn, ok := r.byUser[userID]
	r.mu.RUnlock()
	return conn, ok
}

// Len reports how many users currently have a live connection.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byUser)
}

// Close terminates all tracked connections and clears the registry.
func (r *Registry) Close() {
	r.mu.Lock()
	conns := make([]Conn, 0, len(r.byUser))
	for _, conn := range r.byUser {
		conns = append(conns, conn)
	}
	r.byUser = make(map[string]Conn)
	r.mu.Unlock()

	for _, conn := range conns {
		conn.Close(1001, "server shutdown")
	}
}
