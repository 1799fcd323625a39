// Copyright (c) 2026 TaskFlow. All rights reserved.
// Author: carljohntruya.art@gmail.com

/*
Package api wires together the HTTP router, middleware chain, and all
domain handlers into a runnable [http.Server].

Architecture:

  - This package is the topmost Presentation layer boundary.
  - It acts as the central composition root for the HTTP transport framework (chi router).
  - Only this package and cmd/api are allowed to import net/http server primitives.
*/
package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/carljohntruya-art/TaskFlow2.0-server/internal/auth"
	"github.com/carljohntruya-art/TaskFlow2.0-server/internal/platform/config"
	"github.com/carljohntruya-art/TaskFlow2.0-server/internal/platform/constants"
	"github.com/carljohntruya-art/TaskFlow2.0-server/internal/platform/middleware"
	"github.com/carljohntruya-art/TaskFlow2.0-server/internal/platform/ratelimit"
	"github.com/carljohntruya-art/TaskFlow2.0-server/internal/task"
)

// # Server Definitions

// Server wraps the chi router and the [http.Server].
//
// It is constructed once in main.go with all dependencies injected.
type Server struct {
	httpServer *http.Server
	router     *chi.Mux
	log        *slog.Logger
}

// # Handler Registry

// Handlers groups all domain-specific HTTP handler sets.
//
// # Usage
//
// New domains add a field here — no other change to server.go is required.
type Handlers struct {
	// Liveness is the /health handler — always returns 200 if process is alive.
	Liveness http.HandlerFunc

	// Readiness is the /ready handler — returns 200 when all deps are healthy.
	Readiness http.HandlerFunc

	// Auth handles the credential lifecycle (register, login, logout, me).
	Auth *auth.Handler

	// Task handles the owned task resources.
	Task *task.Handler
}

// # Server Initialization

// NewServer constructs the chi router with the full middleware chain and
// registers all route groups.
//
// The boundary rate-limit policy is applied per route group: the credential
// endpoints get the tight credential-stuffing window, task endpoints the
// wider one.
func NewServer(cfg *config.Config, log *slog.Logger, limiter *ratelimit.Limiter, guard *middleware.BurstGuard, h Handlers) *Server {
	r := chi.NewRouter()

	// # Middleware Chain
	// Global middleware applied in order of execution. CORS runs ahead of the
	// rate-limit layers: a throttled cross-origin client still needs the CORS
	// headers to read the 429 body.
	r.Use(middleware.RequestID())
	r.Use(middleware.StructuredLogger(log))
	r.Use(chimw.Timeout(constants.GlobalRequestTimeout))
	r.Use(middleware.PanicRecovery(log))
	r.Use(middleware.CORS(cfg))
	r.Use(guard.Handler())
	r.Use(chimw.CleanPath)

	// # Infrastructure Endpoints
	// Unauthenticated health probes for container orchestration.
	r.Get("/health", h.Liveness)
	r.Get("/ready", h.Readiness)

	// # Application API
	// The credential window is handed to the auth router, which applies it to
	// /register and /login only. Session endpoints (/me, /logout) must stay
	// reachable for clients that already hold a cookie.
	r.Mount("/auth", h.Auth.Routes(middleware.Throttle(limiter, "auth",
		constants.AuthRateLimitMax, constants.AuthRateLimitWindow)))

	r.Route("/tasks", func(taskRouter chi.Router) {
		taskRouter.Use(middleware.Throttle(limiter, "tasks",
			constants.TaskRateLimitMax, constants.TaskRateLimitWindow))
		taskRouter.Mount("/", h.Task.Routes())
	})

	return &Server{
		router: r,
		log:    log,
		httpServer: &http.Server{
			Addr:              ":" + cfg.ServerPort,
			Handler:           r,
			ReadTimeout:       constants.DefaultReadTimeout,
			WriteTimeout:      constants.DefaultWriteTimeout,
			IdleTimeout:       constants.DefaultIdleTimeout,
			ReadHeaderTimeout: constants.DefaultReadHeaderTimeout,
		},
	}
}

// Router exposes the underlying chi router for tests.
func (s *Server) Router() chi.Router { return s.router }

// # Server Lifecycle

// ListenAndServe starts the HTTP server.
//
// It blocks until the server is closed or an error occurs.
func (s *Server) ListenAndServe() error {
	s.log.Info("server starting", slog.String("addr", s.httpServer.Addr))
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the server, waiting for in-flight requests.
func (s *Server) Shutdown(timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return s.httpServer.Shutdown(ctx)
}
