package websocket

import (
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"livepoll/internal/poll"
)

// Dispatcher is the handler's view of the session coordinator.
type Dispatcher interface {
	Dispatch(i poll.Intent) error
}

// Options carries the transport tuning the handler needs from config.
type Options struct {
	PingInterval   time.Duration
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	BufferSize     int
	AllowedOrigins []string
}

// Handler upgrades HTTP requests, assigns connection handles and runs
// the read pump that turns wire envelopes into coordinator intents.
type Handler struct {
	gateway    *Gateway
	dispatcher Dispatcher
	limiter    *RateLimiter
	opts       Options
	upgrader   websocket.Upgrader
}

// NewHandler creates a WebSocket handler.
func NewHandler(gateway *Gateway, dispatcher Dispatcher, limiter *RateLimiter, opts Options) *Handler {
	h := &Handler{
		gateway:    gateway,
		dispatcher: dispatcher,
		limiter:    limiter,
		opts:       opts,
	}
	h.upgrader = websocket.Upgrader{
		HandshakeTimeout: 10 * time.Second,
		CheckOrigin:      h.checkOrigin,
	}
	return h
}

// checkOrigin allows any origin when the configured list is empty
// (development), otherwise requires an exact match.
func (h *Handler) checkOrigin(r *http.Request) bool {
	if len(h.opts.AllowedOrigins) == 0 {
		return true
	}
	origin := r.Header.Get("Origin")
	for _, allowed := range h.opts.AllowedOrigins {
		if origin == allowed {
			return true
		}
	}
	return false
}

// HandleWebSocket upgrades the request and starts the connection
// lifecycle. Identity arrives later via a register_participant frame;
// the upgrade itself only assigns the transport handle.
func (h *Handler) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("WebSocket upgrade failed: %v", err)
		return
	}

	handle := uuid.NewString()
	wsConn := NewConnection(handle, conn, h.opts.BufferSize, h.opts.WriteTimeout)

	if err := h.gateway.Add(wsConn); err != nil {
		log.Printf("Failed to register connection %s: %v", handle, err)
		_ = wsConn.Close()
		return
	}
	log.Printf("Connection established: handle=%s remote=%s", handle, r.RemoteAddr)

	go h.handleConnection(wsConn)
}

// handleConnection runs the read pump and heartbeat until the peer goes
// away, then tears down transport state and notifies the coordinator.
func (h *Handler) handleConnection(conn *Connection) {
	defer func() {
		h.gateway.Remove(conn)
		h.limiter.Forget(conn.Handle())
		_ = conn.Close()

		// Disconnects are steady-state events, not errors: the
		// coordinator turns this into a membership change and a
		// possible completion re-check.
		if err := h.dispatcher.Dispatch(poll.Disconnect{Handle: conn.Handle()}); err != nil {
			log.Printf("Disconnect intent for %s not delivered: %v", conn.Handle(), err)
		}
		log.Printf("Connection closed: handle=%s", conn.Handle())
	}()

	if err := conn.conn.SetReadDeadline(time.Now().Add(h.opts.ReadTimeout)); err != nil {
		log.Printf("Failed to set read deadline: %v", err)
		return
	}
	conn.conn.SetPongHandler(func(string) error {
		return conn.conn.SetReadDeadline(time.Now().Add(h.opts.ReadTimeout))
	})

	ticker := time.NewTicker(h.opts.PingInterval)
	defer ticker.Stop()

	go func() {
		for {
			select {
			case <-ticker.C:
				if err := conn.conn.WriteControl(websocket.PingMessage, []byte{}, time.Now().Add(h.opts.WriteTimeout)); err != nil {
					return
				}
			case <-conn.Done():
				return
			}
		}
	}()

	for {
		messageType, data, err := conn.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("WebSocket error on %s: %v", conn.Handle(), err)
			}
			return
		}
		if messageType != websocket.TextMessage {
			continue
		}

		if !h.limiter.Allow(conn.Handle()) {
			log.Printf("Rate limit exceeded for %s, dropping frame", conn.Handle())
			continue
		}

		h.handleFrame(conn.Handle(), data)
	}
}

// handleFrame decodes one envelope and dispatches the matching intent.
// Malformed frames are dropped and logged, never answered.
func (h *Handler) handleFrame(handle string, data []byte) {
	env, err := decodeEnvelope(data)
	if err != nil {
		log.Printf("Dropping malformed frame from %s: %v", handle, err)
		return
	}

	intent, err := decodeIntent(handle, env)
	if err != nil {
		log.Printf("Dropping %s frame from %s: %v", env.Type, handle, err)
		return
	}

	if err := h.dispatcher.Dispatch(intent); err != nil {
		log.Printf("Intent %s from %s not delivered: %v", env.Type, handle, err)
	}
}
