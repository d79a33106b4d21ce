package realtime

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeConn struct {
	mu        sync.Mutex
	id        string
	sent      [][]byte
	closed    bool
	closeCode int
}

func newFakeConn(id string) *fakeConn { return &fakeConn{id: id} }

func (f *fakeConn) SessionID() string { return f.id }

func (f *fakeConn) Send(payload []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return ErrClosed
	}
	f.sent = append(f.sent, payload)
	return nil
}

func (f *fakeConn) Close(code int, reason string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	f.closeCode = code
}

func (f *fakeConn) IsOpen() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return !f.closed
}

func TestRegisterAndLookup(t *testing.T) {
	r := NewRegistry()
	conn := newFakeConn("s1")

	r.Register("u1", conn)

	got, ok := r.Lookup("u1")
	require.True(t, ok)
	assert.Equal(t, "s1", got.SessionID())
	assert.Equal(t, 1, r.Len())
}

func TestRegisterSupersedesPreviousConnection(t *testing.T) {
	r := NewRegistry()
	first := newFakeConn("s1")
	second := newFakeConn("s2")

	r.Register("u1", first)
	r.Register("u1", second)

	assert.False(t, first.IsOpen())
	assert.Equal(t, CloseSuperseded, first.closeCode)

	got, ok := r.Lookup("u1")
	require.True(t, ok)
	assert.Equal(t, "s2", got.SessionID())
	assert.Equal(t, 1, r.Len())
}

func TestUnregisterRemovesOwnConnectionOnly(t *testing.T) {
	r := NewRegistry()
	stale := newFakeConn("s1")
	current := newFakeConn("s2")

	r.Register("u1", stale)
	r.Register("u1", current)

	// A late close event from the superseded connection must not evict the
	// newer session.
	r.Unregister("u1", stale)
	got, ok := r.Lookup("u1")
	require.True(t, ok)
	assert.Equal(t, "s2", got.SessionID())

	r.Unregister("u1", current)
	_, ok = r.Lookup("u1")
	assert.False(t, ok)
}

func TestCloseClearsRegistry(t *testing.T) {
	r := NewRegistry()
	a := newFakeConn("s1")
	b := newFakeConn("s2")
	r.Register("u1", a)
	r.Register("u2", b)

	r.Close()

	assert.Equal(t, 0, r.Len())
	assert.False(t, a.IsOpen())
	assert.False(t, b.IsOpen())
}
