package api

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"incident-registry/api/routegroups"
	"incident-registry/config"
	"incident-registry/core/incidents"
	"incident-registry/core/utils"
)

// BackgroundWorker is a component with its own goroutines whose lifetime
// follows the server.
type BackgroundWorker interface {
	StartWithContext(ctx context.Context)
	StopWithContext(ctx context.Context) error
}

type ServerDeps struct {
	IncidentsSvc   *incidents.Service
	MetricsHandler http.Handler
}

type Server struct {
	cfg            *config.AppConfig
	logger         *utils.Logger
	incidentsSvc   *incidents.Service
	metricsHandler http.Handler
	router         chi.Router
	httpServer     *http.Server
}

func NewServer(cfg *config.AppConfig, deps ServerDeps, logger *utils.Logger) *Server {
	s := &Server{
		cfg:            cfg,
		logger:         logger,
		incidentsSvc:   deps.IncidentsSvc,
		metricsHandler: deps.MetricsHandler,
	}
	s.router = s.buildRouter()
	s.httpServer = &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           s.router,
		ReadHeaderTimeout: cfg.HTTP.ReadHeaderTimeout,
	}
	return s
}

func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()
	r.Use(s.requestIDMiddleware)
	r.Use(s.loggingMiddleware)
	r.Use(s.recoverMiddleware)
	r.Use(s.securityHeadersMiddleware)
	r.Use(s.corsMiddleware)
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not found"})
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
	})

	if s.cfg.Metrics.Enabled && s.metricsHandler != nil && strings.HasPrefix(s.cfg.Metrics.Path, "/") {
		r.Method(http.MethodGet, s.cfg.Metrics.Path, s.metricsHandler)
	}

	h := s.newRouteHandlers()
	r.Group(func(apiRouter chi.Router) {
		apiRouter.Use(s.jsonMiddleware)
		apiRouter.Use(s.bodyLimitMiddleware)
		routegroups.RegisterIncidents(apiRouter, h.health, h.incidents)
	})
	return r
}

// ListenAndServe blocks until the server stops. A graceful Shutdown is not
// reported as an error.
func (s *Server) ListenAndServe() error {
	if s.logger != nil {
		s.logger.Printf("HTTP listening on %s", s.httpServer.Addr)
	}
	err := s.httpServer.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
