// internal/server/server.go
package server

import (
	"context"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"mergington-activities/internal/common/config"
	"mergington-activities/internal/common/errors"
	"mergington-activities/internal/common/logger"
	"mergington-activities/internal/common/observability"
	"mergington-activities/pkg/registry"
)

// Server hosts the activities HTTP API.
type Server struct {
	cfg        config.Config
	logger     logger.Logger
	registry   *registry.Registry
	errHandler *errors.ErrorHandler
	obs        *observability.Observability
	httpServer *http.Server
}

// New builds a configured server around an already-seeded registry.
func New(cfg config.Config, reg *registry.Registry, log logger.Logger, obs *observability.Observability) *Server {
	s := &Server{
		cfg:        cfg,
		logger:     log,
		registry:   reg,
		errHandler: errors.NewErrorHandler(log),
		obs:        obs,
	}
	s.httpServer = &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      s.Handler(),
		ReadTimeout:  config.GetDuration(cfg.Server.ReadTimeout),
		WriteTimeout: config.GetDuration(cfg.Server.WriteTimeout),
	}
	return s
}

// Handler builds the full route table. Exposed separately so tests can mount
// it on httptest.Server.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.Handle("GET /{$}", s.instrument("/", http.HandlerFunc(s.handleRoot)))
	mux.Handle("GET /static/", http.StripPrefix("/static/",
		http.FileServer(http.Dir(s.cfg.Server.StaticDir))))

	mux.Handle("GET /activities", s.instrument("/activities",
		http.HandlerFunc(s.handleListActivities)))
	mux.Handle("POST /activities/{activityName}/signup",
		s.instrument("/activities/{activityName}/signup",
			http.HandlerFunc(s.handleSignup)))
	mux.Handle("DELETE /activities/{activityName}/participants",
		s.instrument("/activities/{activityName}/participants",
			http.HandlerFunc(s.handleUnregister)))

	mux.Handle("GET /healthz", s.instrument("/healthz",
		http.HandlerFunc(s.handleHealthz)))

	if s.cfg.Metrics.Enabled {
		mux.Handle("GET "+s.cfg.Metrics.Path, promhttp.Handler())
	}

	return s.withRequestID(mux)
}

// Run serves until ctx is cancelled, then drains connections within the
// configured shutdown timeout.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("http server listening", map[string]interface{}{
			"addr": s.cfg.Server.Addr(),
		})
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
			return
		}
		errCh <- nil
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down http server", nil)
	shutdownCtx, cancel := context.WithTimeout(context.Background(),
		config.GetDuration(s.cfg.Server.ShutdownTimeout))
	defer cancel()
	return s.httpServer.Shutdown(shutdownCtx)
}
