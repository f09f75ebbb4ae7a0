// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Health check handlers for liveness and readiness probes.

package api

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/taibuivan/storyhub/internal/platform/constants"
	"github.com/taibuivan/storyhub/internal/platform/respond"
)

// HealthcheckMessage is the body of GET /healthcheck.
const HealthcheckMessage = "Server is up and running"

// Check pings one dependency.
type Check struct {
	// Name is reported in the /ready body (e.g. "postgres", "redis").
	Name string
	Ping func(context.Context) error
}

// HealthDependencies holds the injectable dependency checkers for the /ready endpoint.
type HealthDependencies struct {
	// Store pings the story store (PostgreSQL or SQLite).
	Store *Check

	// Cache pings Redis. Nil when the cache is disabled.
	Cache *Check
}

type healthHandler struct {
	dependencies HealthDependencies
	logger       *slog.Logger
}

// NewHealthHandlers creates the /health, /ready and /healthcheck http.HandlerFuncs.
func NewHealthHandlers(deps HealthDependencies, logger *slog.Logger) (liveness, readiness, healthcheck http.HandlerFunc) {
	handler := &healthHandler{dependencies: deps, logger: logger}
	return handler.liveness, handler.readiness, handler.healthcheck
}

// liveness handles GET /health (Liveness probe).
func (handler *healthHandler) liveness(writer http.ResponseWriter, request *http.Request) {
	respond.OK(writer, map[string]string{constants.FieldStatus: "ok"})
}

// healthcheck handles GET /healthcheck.
func (handler *healthHandler) healthcheck(writer http.ResponseWriter, request *http.Request) {
	respond.Text(writer, http.StatusOK, HealthcheckMessage)
}

// readiness handles GET /ready (Readiness probe).
func (handler *healthHandler) readiness(writer http.ResponseWriter, request *http.Request) {
	type checkResult struct {
		Name  string `json:"name"`
		IsOK  bool   `json:"ok"`
		Error string `json:"error,omitempty"`
	}

	results := make([]checkResult, 0, 2)
	isSystemReady := true

	for _, check := range []*Check{handler.dependencies.Store, handler.dependencies.Cache} {
		if check == nil {
			continue
		}

		result := checkResult{Name: check.Name, IsOK: true}
		if err := check.Ping(request.Context()); err != nil {
			result.IsOK = false
			result.Error = err.Error()
			isSystemReady = false
			handler.logger.Error("readiness_check_failed", slog.String("dependency", check.Name), slog.Any("error", err))
		}
		results = append(results, result)
	}

	responseStatus := "ready"
	httpStatus := http.StatusOK

	if !isSystemReady {
		responseStatus = "degraded"
		httpStatus = http.StatusServiceUnavailable
	}

	respond.JSON(writer, httpStatus, respond.SuccessEnvelope{Data: map[string]any{
		constants.FieldStatus: responseStatus,
		constants.FieldChecks: results,
	}})
}
