package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/MrSnakeDoc/clippings/internal/config"
	"github.com/MrSnakeDoc/clippings/internal/domain"
	"github.com/MrSnakeDoc/clippings/internal/httpserver/deps"
	"github.com/MrSnakeDoc/clippings/internal/httpserver/mw"
	"github.com/MrSnakeDoc/clippings/internal/httpserver/routes"
	"github.com/MrSnakeDoc/clippings/internal/logger"
)

// Server wraps the HTTP server and its dependencies.
type Server struct {
	handler http.Handler
	http    *http.Server
	logger  logger.Logger
}

// New builds the router and the listener configuration.
func New(cfg *config.Config, loggerClient logger.Logger, d deps.Deps) *Server {
	r := newRouter(cfg, loggerClient, d)

	// Uploads stream through the handler, so the write deadline follows the
	// request timeout instead of a fixed value.
	writeTimeout := cfg.RequestTimeout + 5*time.Second

	return &Server{
		handler: r,
		logger:  loggerClient,
		http: &http.Server{
			Addr:              cfg.ListenPort,
			Handler:           r,
			ReadHeaderTimeout: 5 * time.Second,
			ReadTimeout:       cfg.RequestTimeout,
			WriteTimeout:      writeTimeout,
			IdleTimeout:       60 * time.Second,
			MaxHeaderBytes:    1 << 20,
		},
	}
}

func newRouter(cfg *config.Config, loggerClient logger.Logger, d deps.Deps) chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.GetHead)
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(cfg.RequestTimeout))
	r.Use(mw.Log(loggerClient, cfg.TrustProxy))
	r.Use(mw.CORS(cfg.CORSOrigin)) // the portal is served from another origin

	r.NotFound(jsonStatus(http.StatusNotFound, "Not found"))
	r.MethodNotAllowed(jsonStatus(http.StatusMethodNotAllowed, "Method not allowed"))

	routes.RegisterAll(r, d)
	return r
}

func jsonStatus(status int, message string) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(domain.StatusResponse{Success: false, Message: message})
	}
}

// Handler exposes the router so tests can serve it without listening.
func (s *Server) Handler() http.Handler { return s.handler }

// Start blocks until the listener fails or Stop is called.
func (s *Server) Start() error {
	s.logger.Infof("HTTP server listening on %s", s.http.Addr)
	if err := s.http.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Stop drains in-flight requests until ctx expires.
func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("HTTP server shutting down...")
	return s.http.Shutdown(ctx)
}
