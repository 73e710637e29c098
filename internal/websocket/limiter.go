package websocket

import (
	"sync"
	"time"
)

// RateLimiter caps inbound frames per connection over a fixed window.
// This is a transport guard against flooding clients; the coordinator
// never sees dropped frames.
type RateLimiter struct {
	mu      sync.Mutex
	clients map[string]*clientLimit
	limit   int
	window  time.Duration
}

type clientLimit struct {
	count       int
	windowStart time.Time
}

// NewRateLimiter allows limit frames per window per handle.
func NewRateLimiter(limit int, window time.Duration) *RateLimiter {
	return &RateLimiter{
		clients: make(map[string]*clientLimit),
		limit:   limit,
		window:  window,
	}
}

// Allow reports whether a frame from the handle may proceed.
func (rl *RateLimiter) Allow(handle string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()

	cl, ok := rl.clients[handle]
	if !ok {
		rl.clients[handle] = &clientLimit{count: 1, windowStart: now}
		return true
	}

	if now.Sub(cl.windowStart) >= rl.window {
		cl.count = 1
		cl.windowStart = now
		return true
	}

	if cl.count >= rl.limit {
		return false
	}
	cl.count++
	return true
}

// Forget drops the state for a handle. Called on disconnect so the map
// cannot grow past the live connection count.
func (rl *RateLimiter) Forget(handle string) {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	delete(rl.clients, handle)
}
