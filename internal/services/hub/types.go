package hub

// Events owned by the hub itself. Transfer lifecycle event names are
// chosen by the emitting service; the hub only routes them.
const (
	EventConnected = "connected"
	EventPong      = "pong"
)

// Envelope is the wire shape of every server-to-client event.
type Envelope struct {
	Event   string      `json:"event"`
	Payload interface{} `json:"payload,omitempty"`
}

// Conn is the transport half of a live connection. Implemented by the
// websocket connection in production and by fakes in tests.
type Conn interface {
	WriteJSON(v interface{}) error
	Close() error
}
