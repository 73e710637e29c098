package websocket

import (
	"testing"
	"time"
)

// testConnection builds a wrapper with no underlying socket. Safe for
// table operations; tests that queue writes belong in connection_test.
func testConnection(handle string) *Connection {
	return NewConnection(handle, nil, 10, 50*time.Millisecond)
}

func TestGateway_AddAndGet(t *testing.T) {
	gateway := NewGateway()
	conn := testConnection("h1")
	defer func() { _ = conn.Close() }()

	if err := gateway.Add(conn); err != nil {
		t.Fatalf("expected clean add, got %v", err)
	}

	got, ok := gateway.Get("h1")
	if !ok || got != conn {
		t.Error("expected to get back the registered connection")
	}
	if _, ok := gateway.Get("unknown"); ok {
		t.Error("expected miss for unknown handle")
	}
}

func TestGateway_AddNil(t *testing.T) {
	gateway := NewGateway()
	if err := gateway.Add(nil); err != ErrNilConnection {
		t.Errorf("expected ErrNilConnection, got %v", err)
	}
}

func TestGateway_AddCollisionClosesDisplaced(t *testing.T) {
	gateway := NewGateway()
	old := testConnection("h1")
	replacement := testConnection("h1")
	defer func() { _ = replacement.Close() }()

	_ = gateway.Add(old)
	if err := gateway.Add(replacement); err != nil {
		t.Fatalf("expected clean add, got %v", err)
	}

	got, _ := gateway.Get("h1")
	if got != replacement {
		t.Error("collision should keep the newer connection")
	}

	select {
	case <-old.Done():
	case <-time.After(time.Second):
		t.Error("displaced connection was never closed")
	}
}

func TestGateway_RemoveIdempotent(t *testing.T) {
	gateway := NewGateway()
	conn := testConnection("h1")
	defer func() { _ = conn.Close() }()

	_ = gateway.Add(conn)
	gateway.Remove(conn)
	if _, ok := gateway.Get("h1"); ok {
		t.Error("connection should be gone after remove")
	}

	// Second removal and nil removal are no-ops.
	gateway.Remove(conn)
	gateway.Remove(nil)
}

func TestGateway_RemoveOnlyExactInstance(t *testing.T) {
	gateway := NewGateway()
	stale := testConnection("h1")
	current := testConnection("h1")
	defer func() { _ = current.Close() }()

	_ = gateway.Add(stale)
	_ = gateway.Add(current)

	// A late cleanup for the displaced connection must not evict its
	// replacement.
	gateway.Remove(stale)
	if got, ok := gateway.Get("h1"); !ok || got != current {
		t.Error("stale cleanup evicted the replacement connection")
	}
}

func TestGateway_Stats(t *testing.T) {
	gateway := NewGateway()
	if n := gateway.Stats()["total_connections"]; n != 0 {
		t.Errorf("expected 0 connections, got %d", n)
	}

	a := testConnection("h1")
	b := testConnection("h2")
	defer func() { _ = a.Close() }()
	defer func() { _ = b.Close() }()
	_ = gateway.Add(a)
	_ = gateway.Add(b)

	if n := gateway.Stats()["total_connections"]; n != 2 {
		t.Errorf("expected 2 connections, got %d", n)
	}
}
