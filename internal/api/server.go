package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"
)

// Stats is the API's view of the gateway: connection counts only.
type Stats interface {
	Stats() map[string]int
}

// Server is the small HTTP surface around the WebSocket session: a
// liveness probe and a connection-count endpoint. No session state is
// reachable from here.
type Server struct {
	stats  Stats
	router *mux.Router
}

// NewServer creates the HTTP surface.
func NewServer(stats Stats) *Server {
	s := &Server{
		stats:  stats,
		router: mux.NewRouter(),
	}
	s.router.Handle("/health", s.corsMiddleware(http.HandlerFunc(s.healthCheck))).Methods(http.MethodGet, http.MethodOptions)
	s.router.Handle("/stats", s.corsMiddleware(http.HandlerFunc(s.connectionStats))).Methods(http.MethodGet, http.MethodOptions)
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

type StatsResponse struct {
	Connections map[string]int `json:"connections"`
}

// healthCheck implements GET /health. The probe needs no state access;
// if the process answers, it is live.
func (s *Server) healthCheck(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(HealthResponse{
		Status:    "ok",
		Timestamp: time.Now(),
	})
}

// connectionStats implements GET /stats.
func (s *Server) connectionStats(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(StatsResponse{
		Connections: s.stats.Stats(),
	})
}

func (s *Server) corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}
