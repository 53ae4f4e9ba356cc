package hub

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

// fakeConn records every envelope written to it and can be told to fail.
type fakeConn struct {
	mu       sync.Mutex
	written  []Envelope
	writeErr error
	closed   bool
}

func (f *fakeConn) WriteJSON(v interface{}) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.writeErr != nil {
		return f.writeErr
	}
	f.written = append(f.written, v.(Envelope))
	return nil
}

func (f *fakeConn) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	return nil
}

func (f *fakeConn) envelopes() []Envelope {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]Envelope, len(f.written))
	copy(out, f.written)
	return out
}

func TestHubRegisterSendsConnectedAck(t *testing.T) {
	h := NewHub()
	conn := &fakeConn{}

	h.Register(1, conn)

	got := conn.envelopes()
	assert.Len(t, got, 1)
	assert.Equal(t, EventConnected, got[0].Event)
	assert.Equal(t, 1, h.ConnectionCount(1))
}

func TestHubEmitReachesEveryConnectionOfTheUser(t *testing.T) {
	h := NewHub()
	first := &fakeConn{}
	second := &fakeConn{}
	other := &fakeConn{}

	h.Register(1, first)
	h.Register(1, second)
	h.Register(2, other)

	h.Emit(1, "transfer_update", map[string]interface{}{"id": 7})

	for _, conn := range []*fakeConn{first, second} {
		got := conn.envelopes()
		assert.Len(t, got, 2)
		assert.Equal(t, "transfer_update", got[1].Event)
	}
	// Only the connected ack, no transfer event for user 2.
	assert.Len(t, other.envelopes(), 1)
}

func TestHubEmitWithoutConnectionsIsSilent(t *testing.T) {
	h := NewHub()
	assert.NotPanics(t, func() {
		h.Emit(42, "transfer_update", nil)
	})
}

func TestHubEmitSurvivesFailingConnection(t *testing.T) {
	h := NewHub()
	broken := &fakeConn{writeErr: errors.New("connection reset")}
	healthy := &fakeConn{}

	h.Register(1, broken)
	h.Register(1, healthy)

	h.Emit(1, "transfer_update", nil)

	got := healthy.envelopes()
	assert.Len(t, got, 2)
	assert.Equal(t, "transfer_update", got[1].Event)
}

func TestHubUnregister(t *testing.T) {
	h := NewHub()
	first := h.Register(1, &fakeConn{})
	second := h.Register(1, &fakeConn{})

	h.Unregister(first)
	assert.Equal(t, 1, h.ConnectionCount(1))

	// Second call for the same client is a no-op.
	h.Unregister(first)
	assert.Equal(t, 1, h.ConnectionCount(1))

	// Last connection removes the group entirely.
	h.Unregister(second)
	assert.Equal(t, 0, h.ConnectionCount(1))

	// Emitting after the last disconnect does not panic.
	h.Emit(1, "transfer_update", nil)
}

func TestHubBroadcast(t *testing.T) {
	h := NewHub()
	conns := []*fakeConn{{}, {}, {}}
	for i, conn := range conns {
		h.Register(uint(i+1), conn)
	}

	h.Broadcast("maintenance", "window at midnight")

	for _, conn := range conns {
		got := conn.envelopes()
		assert.Len(t, got, 2)
		assert.Equal(t, "maintenance", got[1].Event)
		assert.Equal(t, "window at midnight", got[1].Payload)
	}
}

func TestHubShutdownClosesEverything(t *testing.T) {
	h := NewHub()
	first := &fakeConn{}
	second := &fakeConn{}
	h.Register(1, first)
	h.Register(2, second)

	h.Shutdown()

	assert.True(t, first.closed)
	assert.True(t, second.closed)
	assert.Equal(t, 0, h.ConnectionCount(1))
	assert.Equal(t, 0, h.ConnectionCount(2))
}

func TestHubConcurrentRegisterAndEmit(t *testing.T) {
	h := NewHub()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(userID uint) {
			defer wg.Done()
			client := h.Register(userID, &fakeConn{})
			h.Emit(userID, "transfer_update", nil)
			h.Unregister(client)
		}(uint(i % 4))
	}
	wg.Wait()

	for userID := uint(0); userID < 4; userID++ {
		assert.Equal(t, 0, h.ConnectionCount(userID))
	}
}
