// Package hub routes transfer lifecycle events to the live connections
// of the affected user. It is a purely in-memory routing table: entries
// exist only while a connection is open, and the table starts empty on
// every process restart (clients reconnect and re-register).
package hub

import (
	"log"
	"sync"
)

// Client is one registered live connection. A user may hold several
// (multiple tabs or devices); each receives every event for that user.
type Client struct {
	UserID uint

	conn Conn
	// Socket writes are not safe for concurrent use; every write to
	// this connection goes through mu.
	mu sync.Mutex
}

// Send writes one event envelope to the connection.
func (c *Client) Send(event string, payload interface{}) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.WriteJSON(Envelope{Event: event, Payload: payload})
}

// Hub is the connection registry. It is constructed explicitly and
// injected into whichever component needs to emit; there is no package
// level instance.
type Hub struct {
	mu    sync.RWMutex
	users map[uint]map[*Client]struct{}
}

// NewHub creates an empty hub.
func NewHub() *Hub {
	return &Hub{
		users: make(map[uint]map[*Client]struct{}),
	}
}

// Register adds a connection under the user's group and acks it with a
// connected event. The caller must have authenticated the user first.
func (h *Hub) Register(userID uint, conn Conn) *Client {
	client := &Client{UserID: userID, conn: conn}

	h.mu.Lock()
	group, ok := h.users[userID]
	if !ok {
		group = make(map[*Client]struct{})
		h.users[userID] = group
	}
	group[client] = struct{}{}
	h.mu.Unlock()

	if err := client.Send(EventConnected, nil); err != nil {
		log.Printf("hub: connected ack to user %d failed: %v", userID, err)
	}
	return client
}

// Unregister removes a connection; the user's group goes away with its
// last connection. Unregistering an unknown client is a no-op.
func (h *Hub) Unregister(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	group, ok := h.users[client.UserID]
	if !ok {
		return
	}
	if _, ok := group[client]; !ok {
		return
	}
	delete(group, client)
	if len(group) == 0 {
		delete(h.users, client.UserID)
	}
}

// Emit delivers an event to every live connection of the user. A user
// with no connections is a silent drop: the polling reconciliation path
// is the durability backstop, not this hub. A write failure on one
// connection is logged and does not stop delivery to the others.
func (h *Hub) Emit(userID uint, event string, payload interface{}) {
	for _, client := range h.snapshot(userID) {
		if err := client.Send(event, payload); err != nil {
			log.Printf("hub: delivery of %s to user %d failed: %v", event, userID, err)
		}
	}
}

// Broadcast delivers an event to every connected user. Used for
// system-wide notices only.
func (h *Hub) Broadcast(event string, payload interface{}) {
	h.mu.RLock()
	clients := make([]*Client, 0)
	for _, group := range h.users {
		for client := range group {
			clients = append(clients, client)
		}
	}
	h.mu.RUnlock()

	for _, client := range clients {
		if err := client.Send(event, payload); err != nil {
			log.Printf("hub: broadcast of %s to user %d failed: %v", event, client.UserID, err)
		}
	}
}

// ConnectionCount reports how many live connections the user holds.
func (h *Hub) ConnectionCount(userID uint) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.users[userID])
}

// Shutdown closes every connection and empties the registry.
func (h *Hub) Shutdown() {
	h.mu.Lock()
	users := h.users
	h.users = make(map[uint]map[*Client]struct{})
	h.mu.Unlock()

	for _, group := range users {
		for client := range group {
			if err := client.conn.Close(); err != nil {
				log.Printf("hub: closing connection of user %d: %v", client.UserID, err)
			}
		}
	}
}

func (h *Hub) snapshot(userID uint) []*Client {
	h.mu.RLock()
	defer h.mu.RUnlock()

	group := h.users[userID]
	clients := make([]*Client, 0, len(group))
	for client := range group {
		clients = append(clients, client)
	}
	return clients
}
