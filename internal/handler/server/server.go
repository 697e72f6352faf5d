package server

import (
	"context"
	"net/http"
	"time"

	"github.com/bagdasarian/docspace-access/internal/handler"
	"github.com/bagdasarian/docspace-access/internal/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
)

type Server struct {
	handler *handler.Handler
	server  *http.Server
	log     *logrus.Logger
}

func NewServer(h *handler.Handler, addr string, registry *prometheus.Registry, m *metrics.Metrics, log *logrus.Logger) *Server {
	mux := http.NewServeMux()
	SetupRoutes(mux, h)
	mux.Handle("GET /metrics", metrics.Handler(registry))

	return &Server{
		handler: h,
		log:     log,
		server: &http.Server{
			Addr:              addr,
			Handler:           m.Middleware(mux),
			ReadHeaderTimeout: 10 * time.Second,
		},
	}
}

func (s *Server) Start() error {
	s.log.WithField("addr", s.server.Addr).Info("server starting")
	return s.server.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.log.Info("shutting down")
	if err := s.server.Shutdown(ctx); err != nil {
		return err
	}
	s.log.Info("server stopped")
	return nil
}
