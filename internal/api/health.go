// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package api implements the ops-facing HTTP surface for a copy run: health
probes and a status endpoint exposing the last run's manifest. None of it
sits on the copy's hot path — it exists purely for operational visibility
into a long-running `anonydb` process.

Architecture:

  - Liveness: returns 200 OK as long as the process is running.
  - Readiness: performs a shallow ping of the source and target databases
    (and Redis, when the run lock is configured) to verify connectivity.
*/
package api

import (
	"log/slog"
	"net/http"

	"github.com/taibuivan/anonydb/internal/platform/constants"
	"github.com/taibuivan/anonydb/internal/platform/respond"
)

// # Data Structures

// HealthDependencies holds the injectable dependency checkers for system probes.
type HealthDependencies struct {
	// CheckSource performs a shallow ping of the source PostgreSQL pool.
	CheckSource func() error

	// CheckTarget performs a shallow ping of the target PostgreSQL pool.
	CheckTarget func() error

	// CheckRunLock performs a shallow ping of the run-lock Redis client.
	// Left nil when no Redis URL is configured.
	CheckRunLock func() error
}

// healthHandler orchestrates the execution of connectivity checks.
type healthHandler struct {
	dependencies HealthDependencies
	logger       *slog.Logger
}

// # Constructors

// NewHealthHandlers constructs the liveness and readiness [http.HandlerFunc] pair.
func NewHealthHandlers(deps HealthDependencies, logger *slog.Logger) (liveness, readiness http.HandlerFunc) {
	handler := &healthHandler{
		dependencies: deps,
		logger:       logger,
	}
	return handler.liveness, handler.readiness
}

// # Handlers

// liveness handles GET /healthz.
// It confirms that the HTTP server is alive and accepting connections.
func (handler *healthHandler) liveness(writer http.ResponseWriter, _ *http.Request) {
	respond.OK(writer, map[string]string{
		constants.FieldStatus:  "ok",
		constants.FieldApp:     constants.AppName,
		constants.FieldVersion: constants.AppVersion,
	})
}

// readiness handles GET /readyz.
// It verifies that the configured dependencies (source and target
// databases, and the run-lock Redis when set) are reachable.
func (handler *healthHandler) readiness(writer http.ResponseWriter, _ *http.Request) {

	// Inner type for individual check reporting
	type checkResult struct {
		Name  string `json:"name"`
		IsOK  bool   `json:"ok"`
		Error string `json:"error,omitempty"`
	}

	results := make([]checkResult, 0, 3)
	isSystemReady := true

	check := func(name string, fn func() error) {
		if fn == nil {
			return
		}
		result := checkResult{Name: name, IsOK: true}
		if err := fn(); err != nil {
			result.IsOK = false
			result.Error = err.Error()
			isSystemReady = false
			handler.logger.Error("readiness_check_failed",
				slog.String("dependency", name),
				slog.Any("error", err),
			)
		}
		results = append(results, result)
	}

	check("source", handler.dependencies.CheckSource)
	check("target", handler.dependencies.CheckTarget)
	check("run_lock", handler.dependencies.CheckRunLock)

	// 3. Determine Response State
	responseStatus := "ready"
	httpStatus := http.StatusOK

	if !isSystemReady {
		responseStatus = "degraded"
		httpStatus = http.StatusServiceUnavailable

		// Manual header injection for error states to bypass default respond wrappers
		writer.Header().Set("Content-Type", "application/json; charset=utf-8")
		writer.WriteHeader(httpStatus)
	}

	// 4. Send Response
	respond.OK(writer, map[string]any{
		constants.FieldStatus: responseStatus,
		constants.FieldChecks: results,
	})
}
