package server

import (
	"log/slog"
	"net/http"

	"github.com/claude/repcoach/internal/ingest/setlog"
	"github.com/claude/repcoach/internal/ingest/wearable"
	"github.com/claude/repcoach/internal/storage"
	"github.com/go-chi/chi/v5"
)

// Server holds dependencies for HTTP handlers.
type Server struct {
	db       *storage.DB
	wearable *wearable.Provider
	setlog   *setlog.Provider
	log      *slog.Logger
	apiKey   string
	router   chi.Router
}

// New creates a new Server with all routes configured.
func New(db *storage.DB, wearableProvider *wearable.Provider, setlogProvider *setlog.Provider, apiKey string, log *slog.Logger) *Server {
	s := &Server{
		db:       db,
		wearable: wearableProvider,
		setlog:   setlogProvider,
		log:      log,
		apiKey:   apiKey,
		router:   chi.NewRouter(),
	}
	s.routes()
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() {
	s.router.Use(RequestLogging(s.log))
	s.router.Use(CORS)
	s.router.Use(DevIdentity)

	// Ingest endpoints (API key required)
	s.router.Route("/api/v1/ingest", func(r chi.Router) {
		r.Use(APIKeyAuth(s.apiKey))
		r.Post("/biometrics", s.handleBiometricsIngest)
		r.Post("/sets", s.handleSetsIngest)
	})

	// App API endpoints (no auth — tsnet handles access)
	s.router.Get("/api/v1/readiness", s.handleReadiness)
	s.router.Get("/api/v1/plan", s.handlePlan)
	s.router.Post("/api/v1/plan/adjust", s.handleAdjustPlan)
	s.router.Post("/api/v1/progression/evaluate", s.handleEvaluate)
	s.router.Post("/api/v1/progression/close", s.handleCloseSession)
	s.router.Get("/api/v1/targets", s.handleGetTargets)
	s.router.Put("/api/v1/targets", s.handlePutTarget)
	s.router.Get("/api/v1/rule", s.handleGetRule)
	s.router.Put("/api/v1/rule", s.handlePutRule)
	s.router.Get("/api/v1/biometrics", s.handleQueryBiometrics)
	s.router.Get("/api/v1/sets", s.handleQuerySets)
}
