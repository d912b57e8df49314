// Package server exposes the intelligence engine over HTTP. It is a
// thin façade: the engine stays host-agnostic and the server plays the
// external collaborator role, pushing samples in and reading results
// back out.
package server

import (
	"context"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/inferloop/perfintel/internal/intelligence"
	"github.com/inferloop/perfintel/internal/observability/metrics"
)

// Server hosts the intelligence engine behind an HTTP API.
type Server struct {
	config    *Config
	logger    *logrus.Logger
	engine    *intelligence.Engine
	collector *metrics.Collector
	http      *http.Server
}

// New creates a server with its own engine instance and metrics
// collector. A nil config takes defaults; a nil logger falls back to a
// default logrus logger.
func New(config *Config, logger *logrus.Logger) *Server {
	if config == nil {
		config = NewDefaultConfig()
	}
	if logger == nil {
		logger = logrus.New()
	}

	engine := intelligence.New(config.Engine, logger)
	collector := metrics.NewCollector(config.MetricsNamespace)
	engine.SetInstrumentation(collector)

	s := &Server{
		config:    config,
		logger:    logger,
		engine:    engine,
		collector: collector,
	}

	s.http = &http.Server{
		Addr:         config.GetAddress(),
		Handler:      s.setupRoutes(),
		ReadTimeout:  config.Server.ReadTimeout,
		WriteTimeout: config.Server.WriteTimeout,
		IdleTimeout:  config.Server.IdleTimeout,
	}

	return s
}

// Engine returns the hosted engine instance.
func (s *Server) Engine() *intelligence.Engine {
	return s.engine
}

// Start begins serving. It blocks until the listener fails or Shutdown
// is called.
func (s *Server) Start() error {
	s.logger.WithField("address", s.http.Addr).Info("Starting HTTP server")
	if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down HTTP server")
	return s.http.Shutdown(ctx)
}
