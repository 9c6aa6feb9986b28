// Package api provides the HTTP surface of the progression engine. The
// routes map 1:1 onto the engine's inbound operations; cooldown
// rejections are ordinary 200 responses, since they are expected
// outcomes, not errors.
package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/meu-mundo/meumundo/internal/app/progression"
	"github.com/meu-mundo/meumundo/internal/infra/sqlite"
)

// Server is the Meu Mundo HTTP API server.
type Server struct {
	db             *sqlite.DB
	game           *progression.Service
	metricsEnabled bool
}

// NewServer creates a new API server.
func NewServer(db *sqlite.DB, game *progression.Service) *Server {
	return &Server{db: db, game: game}
}

// EnableMetrics enables the /metrics Prometheus endpoint.
func (s *Server) EnableMetrics() { s.metricsEnabled = true }

// Handler returns the chi router with all routes mounted.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		if err := s.db.Ping(); err != nil {
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "db unavailable"})
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api/game", func(r chi.Router) {
		r.Post("/tasks/complete", s.handleCompleteTask)
		r.Post("/relax", s.handleRelax)
		r.Post("/work-bonus", s.handleWorkBonus)
		r.Get("/profile", s.handleProfile)
		r.Get("/badges", s.handleBadges)
		r.Get("/missions", s.handleMissions)
	})

	if s.metricsEnabled {
		r.Handle("/metrics", promhttp.Handler())
	}

	return r
}

// writeJSON marshals v with the given status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError reports a hard failure (storage, conflict).
func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]any{"ok": false, "error": err.Error()})
}
