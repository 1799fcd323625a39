// Copyright (c) 2026 TaskFlow. All rights reserved.
// Author: carljohntruya.art@gmail.com

// HTTP delivery layer for the authentication lifecycle.
//
// # Architecture
//
// The handler acts as a thin mediation layer between the web and the
// [Service]:
//   - Protocol: Standard RESTful JSON interface.
//   - Security: Binds session tokens to the secure cookie transport.
//   - Verification: Enforces strict input validation before passing to [Service].
//
// This layer is strictly responsible for transport concerns (status codes,
// cookies, JSON).
package auth

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/carljohntruya-art/TaskFlow2.0-server/internal/platform/request"
	"github.com/carljohntruya-art/TaskFlow2.0-server/internal/platform/respond"
	"github.com/carljohntruya-art/TaskFlow2.0-server/internal/platform/sec"
	"github.com/carljohntruya-art/TaskFlow2.0-server/internal/platform/validate"
)

// # Definitions & Constructors

// Handler implements authentication-related HTTP endpoints.
type Handler struct {
	authService *Service
	cookie      *sec.SessionCookie
	guard       func(http.Handler) http.Handler
}

// NewHandler constructs a new [Handler].
//
// guard is the authorization pipeline middleware applied to protected routes.
func NewHandler(service *Service, cookie *sec.SessionCookie, guard func(http.Handler) http.Handler) *Handler {
	return &Handler{
		authService: service,
		cookie:      cookie,
		guard:       guard,
	}
}

// Routes returns a [chi.Router] configured with authentication routes.
//
// credentialLimit is the tight anti-credential-stuffing throttle. It wraps
// only /register and /login: /logout and /me serve already-established
// sessions and stay under the global policy, so a client polling /me is
// never locked out of its own session.
//
// # Endpoints
//   - POST /register : Creates a new account and opens a session (throttled).
//   - POST /login    : Authenticates and opens a session (throttled).
//   - POST /logout   : Clears the session cookie.
//   - GET  /me       : Returns the trusted identity (protected).
func (handler *Handler) Routes(credentialLimit func(http.Handler) http.Handler) chi.Router {
	router := chi.NewRouter()

	// Credential endpoints
	router.Group(func(r chi.Router) {
		r.Use(credentialLimit)
		r.Post("/register", handler.register)
		r.Post("/login", handler.login)
	})

	// Session endpoints
	router.Post("/logout", handler.logout)

	// Protected endpoints
	router.Group(func(r chi.Router) {
		r.Use(handler.guard)
		r.Get("/me", handler.me)
	})

	return router
}

// # Request Payloads

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

/*
Register handles the creation of a new user account.

POST /auth/register

Description: Validates input, checks for identity conflicts, persists a new
user profile, and establishes a session cookie.

Request:
  - Body: registerRequest (Name, Email, Password)

Response:
  - 201: Public identity fields, session cookie set
  - 400: Email already registered, or validation failure
*/
func (handler *Handler) register(writer http.ResponseWriter, request *http.Request) {
	var input registerRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldName, input.Name).
		Required(FieldEmail, input.Email).
		Email(FieldEmail, input.Email).
		Required(FieldPassword, input.Password).
		MinLen(FieldPassword, input.Password, 8)

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	session, err := handler.authService.Register(request.Context(), RegisterInput{
		Name:     input.Name,
		Email:    input.Email,
		Password: input.Password,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	handler.cookie.Attach(writer, session.Token)
	respond.Created(writer, "User registered successfully", session.User)
}

/*
Login authenticates a user and establishes a session.

POST /auth/login

Description: Verifies credentials and injects the signed session token into
the secure cookie.

Request:
  - Body: loginRequest (Email, Password)

Response:
  - 200: Public identity fields, session cookie set
  - 401: Invalid credentials (identical for unknown email and wrong password)
*/
func (handler *Handler) login(writer http.ResponseWriter, request *http.Request) {
	var input loginRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldEmail, input.Email)
	validator.Required(FieldPassword, input.Password)

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	session, err := handler.authService.Login(request.Context(), LoginInput{
		Email:    input.Email,
		Password: input.Password,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	handler.cookie.Attach(writer, session.Token)
	respond.OK(writer, "Logged in successfully", session.User)
}

/*
Logout terminates the current session.

POST /auth/logout

Description: Clears the session cookie with flags matching the original
attachment. The token itself stays cryptographically valid until natural
expiry — no server-side revocation list exists, a stated limitation.

Response:
  - 200: Session cookie cleared
*/
func (handler *Handler) logout(writer http.ResponseWriter, request *http.Request) {
	handler.cookie.Clear(writer)
	respond.OK(writer, "User logged out successfully", nil)
}

/*
Me returns the trusted identity attached by the authorization pipeline.

GET /auth/me

Response:
  - 200: Public identity fields
  - 401: Unauthenticated
*/
func (handler *Handler) me(writer http.ResponseWriter, request *http.Request) {
	identity, err := requestutil.RequiredIdentity(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, "User retrieved successfully", identity)
}
