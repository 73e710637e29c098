package websocket

import (
	"log"
	"sync"

	"livepoll/pkg/types"
)

// Gateway is the fan-out boundary between the coordinator and the
// transport: a handle → connection table plus emit-to-all and
// emit-to-one. Delivery is fire-and-forget; a failed write is this
// layer's problem and never surfaces to the coordinator.
type Gateway struct {
	mu    sync.RWMutex
	conns map[string]*Connection
}

// NewGateway creates an empty gateway.
func NewGateway() *Gateway {
	return &Gateway{
		conns: make(map[string]*Connection),
	}
}

// Add registers a connection under its handle. Handles are unique per
// upgrade, but if one ever collides the previous connection is closed
// asynchronously rather than leaked.
func (g *Gateway) Add(conn *Connection) error {
	if conn == nil {
		return ErrNilConnection
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	if existing, ok := g.conns[conn.Handle()]; ok && existing != conn {
		go func() {
			if err := existing.Close(); err != nil {
				log.Printf("Failed to close displaced connection %s: %v", existing.Handle(), err)
			}
		}()
	}
	g.conns[conn.Handle()] = conn
	return nil
}

// Remove drops a connection from the table. Idempotent, and only removes
// the exact instance that is registered, so a stale cleanup cannot evict
// a replacement.
func (g *Gateway) Remove(conn *Connection) {
	if conn == nil {
		return
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	if registered, ok := g.conns[conn.Handle()]; ok && registered == conn {
		delete(g.conns, conn.Handle())
	}
}

// Get returns the connection for a handle.
func (g *Gateway) Get(handle string) (*Connection, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	conn, ok := g.conns[handle]
	return conn, ok
}

// BroadcastAll sends an envelope to every live connection.
func (g *Gateway) BroadcastAll(env *types.Envelope) {
	g.mu.RLock()
	conns := make([]*Connection, 0, len(g.conns))
	for _, conn := range g.conns {
		conns = append(conns, conn)
	}
	g.mu.RUnlock()

	for _, conn := range conns {
		if err := conn.WriteJSON(env); err != nil {
			log.Printf("Broadcast of %s to %s failed: %v", env.Type, conn.Handle(), err)
		}
	}
}

// SendTo sends an envelope to one connection. Unknown handles are
// ignored: the connection may have closed between intent and reply.
func (g *Gateway) SendTo(handle string, env *types.Envelope) {
	conn, ok := g.Get(handle)
	if !ok {
		return
	}
	if err := conn.WriteJSON(env); err != nil {
		log.Printf("Send of %s to %s failed: %v", env.Type, handle, err)
	}
}

// Stats returns connection counts for the health surface.
func (g *Gateway) Stats() map[string]int {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return map[string]int{
		"total_connections": len(g.conns),
	}
}
