package app

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"livepoll/internal/api"
	"livepoll/internal/config"
	"livepoll/internal/poll"
	"livepoll/internal/websocket"
)

// Application wires the components and owns their lifecycles.
// Initialization order: Store/Registry/Timer → Gateway → Coordinator →
// Handler → API → HTTP.
type Application struct {
	config      *config.Config
	store       *poll.Store
	registry    *poll.Registry
	coordinator *poll.Coordinator
	gateway     *websocket.Gateway
	apiServer   *api.Server
	httpServer  *http.Server
}

// NewApplication builds a fully wired application.
func NewApplication(cfg *config.Config) (*Application, error) {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	store := poll.NewStore()
	registry := poll.NewRegistry()
	timer := poll.NewExpiryTimer()
	gateway := websocket.NewGateway()
	coordinator := poll.NewCoordinator(store, registry, timer, gateway)

	limiter := websocket.NewRateLimiter(cfg.WebSocket.RateLimit, cfg.WebSocket.RateWindow)
	wsHandler := websocket.NewHandler(gateway, coordinator, limiter, websocket.Options{
		PingInterval:   cfg.WebSocket.PingInterval,
		ReadTimeout:    cfg.WebSocket.ReadTimeout,
		WriteTimeout:   cfg.WebSocket.WriteTimeout,
		BufferSize:     cfg.WebSocket.BufferSize,
		AllowedOrigins: cfg.WebSocket.AllowedOrigins,
	})

	apiServer := api.NewServer(gateway)

	router := mux.NewRouter()
	router.HandleFunc("/ws", wsHandler.HandleWebSocket)
	router.PathPrefix("/").Handler(apiServer)

	httpServer := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler:      router,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
	}

	return &Application{
		config:      cfg,
		store:       store,
		registry:    registry,
		coordinator: coordinator,
		gateway:     gateway,
		apiServer:   apiServer,
		httpServer:  httpServer,
	}, nil
}

// Start launches the coordinator, then the HTTP server.
func (app *Application) Start(ctx context.Context) error {
	log.Printf("Starting livepoll on %s", app.httpServer.Addr)

	if err := app.coordinator.Start(ctx); err != nil {
		return fmt.Errorf("failed to start coordinator: %w", err)
	}

	serverErrCh := make(chan error, 1)
	go func() {
		if err := app.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrCh <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	select {
	case err := <-serverErrCh:
		_ = app.coordinator.Stop()
		return err
	case <-time.After(100 * time.Millisecond):
		log.Printf("livepoll started")
		return nil
	case <-ctx.Done():
		_ = app.coordinator.Stop()
		return ctx.Err()
	}
}

// Stop shuts down in reverse order: HTTP first, then the coordinator.
func (app *Application) Stop(ctx context.Context) error {
	log.Printf("Shutting down livepoll")

	if err := app.httpServer.Shutdown(ctx); err != nil {
		log.Printf("HTTP server shutdown error: %v", err)
	}
	if err := app.coordinator.Stop(); err != nil {
		log.Printf("Coordinator shutdown error: %v", err)
	}

	log.Printf("livepoll shutdown complete")
	return nil
}

// Addr returns the listen address.
func (app *Application) Addr() string {
	return app.httpServer.Addr
}
