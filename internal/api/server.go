// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package api wires together the HTTP router, middleware chain, and the
health/status handlers into a runnable [http.Server].

Architecture:

  - This package is the topmost Presentation layer boundary for the
    ops-facing surface.
  - It acts as the central composition root for the HTTP transport
    framework (chi router).
  - Only this package and cmd/anonydb are allowed to import net/http
    server primitives.
*/
package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/taibuivan/anonydb/internal/platform/constants"
	"github.com/taibuivan/anonydb/internal/platform/middleware"
)

// # Server Definitions

// Server wraps the chi router and the [http.Server].
type Server struct {
	httpServer *http.Server
	router     *chi.Mux
	log        *slog.Logger
}

// Handlers groups the ops-facing handler set.
type Handlers struct {
	// Liveness is the /healthz handler — always returns 200 if process is alive.
	Liveness http.HandlerFunc

	// Readiness is the /readyz handler — returns 200 when source/target/run-lock
	// dependencies are all reachable.
	Readiness http.HandlerFunc

	// LastRun backs the /status handler, exposing the last completed run's manifest.
	LastRun *LastRun
}

// # Server Initialization

// NewServer constructs the chi router with the ops middleware chain and
// registers the health/status routes. port is the listen port, e.g. "9090".
func NewServer(port string, log *slog.Logger, h Handlers) *Server {
	rte := chi.NewRouter()

	rte.Use(middleware.RequestID())
	rte.Use(middleware.StructuredLogger(log))
	rte.Use(chimw.Timeout(constants.GlobalRequestTimeout))
	rte.Use(middleware.PanicRecovery(log))
	rte.Use(chimw.CleanPath)

	rte.Get("/healthz", h.Liveness)
	rte.Get("/readyz", h.Readiness)
	rte.Get("/status", statusHandler(h.LastRun))

	return &Server{
		router: rte,
		log:    log,
		httpServer: &http.Server{
			Addr:              ":" + port,
			Handler:           rte,
			ReadTimeout:       constants.DefaultReadTimeout,
			WriteTimeout:      constants.DefaultWriteTimeout,
			IdleTimeout:       constants.DefaultIdleTimeout,
			ReadHeaderTimeout: constants.DefaultReadHeaderTimeout,
		},
	}
}

// # Server Lifecycle

// ListenAndServe starts the HTTP server. It blocks until the server is
// closed or an error occurs.
func (s *Server) ListenAndServe() error {
	s.log.Info("ops server starting", slog.String("addr", s.httpServer.Addr))
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the server, waiting for in-flight requests.
func (s *Server) Shutdown(timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return s.httpServer.Shutdown(ctx)
}
