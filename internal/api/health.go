// Copyright (c) 2026 TaskFlow. All rights reserved.
// Author: carljohntruya.art@gmail.com

package api

import (
	"log/slog"
	"net/http"

	"github.com/carljohntruya-art/TaskFlow2.0-server/internal/platform/apperr"
	"github.com/carljohntruya-art/TaskFlow2.0-server/internal/platform/constants"
	"github.com/carljohntruya-art/TaskFlow2.0-server/internal/platform/respond"
)

// HealthDependencies holds the injectable dependency checkers for the /ready endpoint.
type HealthDependencies struct {
	// CheckDatabase pings the PostgreSQL pool.
	CheckDatabase func() error

	// CheckCache pings the Redis client.
	CheckCache func() error
}

type healthHandler struct {
	dependencies HealthDependencies
	logger       *slog.Logger
}

// NewHealthHandlers creates the /health and /ready http.HandlerFuncs.
func NewHealthHandlers(deps HealthDependencies, logger *slog.Logger) (liveness, readiness http.HandlerFunc) {
	handler := &healthHandler{dependencies: deps, logger: logger}
	return handler.liveness, handler.readiness
}

// liveness handles GET /health (Liveness probe).
func (handler *healthHandler) liveness(writer http.ResponseWriter, request *http.Request) {
	respond.OK(writer, "Service is alive", map[string]string{
		constants.FieldStatus: "ok",
		"version":             constants.AppVersion,
	})
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

	// Check PostgreSQL
	if handler.dependencies.CheckDatabase != nil {
		result := checkResult{Name: "postgres", IsOK: true}
		if err := handler.dependencies.CheckDatabase(); err != nil {
			result.IsOK = false
			result.Error = err.Error()
			isSystemReady = false
			handler.logger.Error("readiness_check_failed", slog.String("dependency", "postgres"), slog.Any("error", err))
		}
		results = append(results, result)
	}

	// Check Redis
	if handler.dependencies.CheckCache != nil {
		result := checkResult{Name: "redis", IsOK: true}
		if err := handler.dependencies.CheckCache(); err != nil {
			result.IsOK = false
			result.Error = err.Error()
			isSystemReady = false
			handler.logger.Error("readiness_check_failed", slog.String("dependency", "redis"), slog.Any("error", err))
		}
		results = append(results, result)
	}

	// Degraded dependencies surface through the standard error envelope, one
	// detail entry per failing check.
	if !isSystemReady {
		degraded := apperr.ServiceUnavailable("Service not ready")
		for _, result := range results {
			if !result.IsOK {
				degraded.Details = append(degraded.Details, apperr.FieldError{
					Field:   result.Name,
					Message: result.Error,
				})
			}
		}
		respond.Error(writer, request, degraded)
		return
	}

	respond.OK(writer, "Readiness report", map[string]any{
		constants.FieldStatus: "ready",
		constants.FieldChecks: results,
	})
}
