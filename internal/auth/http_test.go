// Copyright (c) 2026 TaskFlow. All rights reserved.
// Author: carljohntruya.art@gmail.com

package auth_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carljohntruya-art/TaskFlow2.0-server/internal/auth"
	"github.com/carljohntruya-art/TaskFlow2.0-server/internal/platform/apperr"
	"github.com/carljohntruya-art/TaskFlow2.0-server/internal/platform/middleware"
	"github.com/carljohntruya-art/TaskFlow2.0-server/internal/platform/respond"
	"github.com/carljohntruya-art/TaskFlow2.0-server/internal/platform/sec"
)

// noThrottle is a passthrough credential limit for tests that are not about
// rate limiting.
func noThrottle(next http.Handler) http.Handler { return next }

// newAuthServer wires the full authentication slice against in-memory
// storage: real token service, real cookie policy, real guard.
func newAuthServer(t *testing.T) *httptest.Server {
	t.Helper()

	repo := newMemoryUserRepository()
	tokens := sec.NewTokenService("integration-test-secret-32-bytes!", "taskflow.test", time.Hour)
	cookie := sec.NewSessionCookie("jwt", "/", time.Hour, false)

	service := auth.NewService(repo, tokens)
	guard := middleware.RequireIdentity(cookie, tokens, service)
	handler := auth.NewHandler(service, cookie, guard)

	server := httptest.NewServer(handler.Routes(noThrottle))
	t.Cleanup(server.Close)
	return server
}

type envelope struct {
	Success    bool            `json:"success"`
	Message    string          `json:"message"`
	Data       json.RawMessage `json:"data"`
	StatusCode int             `json:"statusCode"`
}

func postJSON(t *testing.T, client *http.Client, url, body string) (*http.Response, envelope) {
	t.Helper()
	response, err := client.Post(url, "application/json", strings.NewReader(body))
	require.NoError(t, err)
	t.Cleanup(func() { _ = response.Body.Close() })

	var parsed envelope
	require.NoError(t, json.NewDecoder(response.Body).Decode(&parsed))
	return response, parsed
}

func sessionCookie(response *http.Response) *http.Cookie {
	for _, c := range response.Cookies() {
		if c.Name == "jwt" {
			return c
		}
	}
	return nil
}

/*
TestAuthFlow_RegisterLoginMe walks the full session lifecycle end to end:
register sets a cookie, the cookie authenticates /me, logout clears it.
*/
func TestAuthFlow_RegisterLoginMe(t *testing.T) {
	server := newAuthServer(t)
	client := server.Client()

	// ── Register ─────────────────────────────────────────────────────────
	response, body := postJSON(t, client, server.URL+"/register",
		`{"name":"Carl","email":"carl@taskflow.app","password":"supersecret"}`)

	assert.Equal(t, http.StatusCreated, response.StatusCode)
	assert.True(t, body.Success)
	assert.Equal(t, "User registered successfully", body.Message)

	// The created user is public-shaped: no password material in the body.
	assert.NotContains(t, string(body.Data), "password")
	assert.Contains(t, string(body.Data), "carl@taskflow.app")

	registerCookie := sessionCookie(response)
	require.NotNil(t, registerCookie)
	assert.NotEmpty(t, registerCookie.Value)
	assert.True(t, registerCookie.HttpOnly)

	// ── Me (authenticated by the register cookie) ────────────────────────
	meRequest, err := http.NewRequest(http.MethodGet, server.URL+"/me", nil)
	require.NoError(t, err)
	meRequest.AddCookie(registerCookie)

	meResponse, err := client.Do(meRequest)
	require.NoError(t, err)
	defer meResponse.Body.Close()

	var meBody envelope
	require.NoError(t, json.NewDecoder(meResponse.Body).Decode(&meBody))
	assert.Equal(t, http.StatusOK, meResponse.StatusCode)
	assert.Equal(t, "User retrieved successfully", meBody.Message)
	assert.Contains(t, string(meBody.Data), "carl@taskflow.app")

	// ── Login with the same credentials ──────────────────────────────────
	loginResponse, loginBody := postJSON(t, client, server.URL+"/login",
		`{"email":"carl@taskflow.app","password":"supersecret"}`)

	assert.Equal(t, http.StatusOK, loginResponse.StatusCode)
	assert.Equal(t, "Logged in successfully", loginBody.Message)
	require.NotNil(t, sessionCookie(loginResponse))

	// ── Logout ───────────────────────────────────────────────────────────
	logoutResponse, logoutBody := postJSON(t, client, server.URL+"/logout", ``)

	assert.Equal(t, http.StatusOK, logoutResponse.StatusCode)
	assert.Equal(t, "User logged out successfully", logoutBody.Message)

	cleared := sessionCookie(logoutResponse)
	require.NotNil(t, cleared)
	assert.Empty(t, cleared.Value)
	assert.Negative(t, cleared.MaxAge)
}

/*
TestAuthFlow_MeWithoutSession verifies the protected route rejects
unauthenticated requests with the no-token message.
*/
func TestAuthFlow_MeWithoutSession(t *testing.T) {
	server := newAuthServer(t)

	response, err := server.Client().Get(server.URL + "/me")
	require.NoError(t, err)
	defer response.Body.Close()

	var body envelope
	require.NoError(t, json.NewDecoder(response.Body).Decode(&body))

	assert.Equal(t, http.StatusUnauthorized, response.StatusCode)
	assert.False(t, body.Success)
	assert.Equal(t, "Not authorized, no token", body.Message)
	assert.Equal(t, http.StatusUnauthorized, body.StatusCode)
}

/*
TestAuthFlow_RegisterValidation verifies boundary validation: bad email and
short password are rejected with field details before the service runs.
*/
func TestAuthFlow_RegisterValidation(t *testing.T) {
	server := newAuthServer(t)

	response, body := postJSON(t, server.Client(), server.URL+"/register",
		`{"name":"","email":"not-an-email","password":"short"}`)

	assert.Equal(t, http.StatusBadRequest, response.StatusCode)
	assert.False(t, body.Success)
	assert.Equal(t, "Validation failed", body.Message)
	assert.Nil(t, sessionCookie(response))
}

/*
TestAuthFlow_CredentialThrottleScope verifies that the credential throttle
covers /register and /login only. An established session keeps working even
when the credential window is exhausted: /me and /logout never consume it.
*/
func TestAuthFlow_CredentialThrottleScope(t *testing.T) {
	repo := newMemoryUserRepository()
	tokens := sec.NewTokenService("integration-test-secret-32-bytes!", "taskflow.test", time.Hour)
	cookiePolicy := sec.NewSessionCookie("jwt", "/", time.Hour, false)

	service := auth.NewService(repo, tokens)
	guard := middleware.RequireIdentity(cookiePolicy, tokens, service)
	handler := auth.NewHandler(service, cookiePolicy, guard)

	// A credential window that is already exhausted.
	exhausted := func(http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			respond.Error(writer, request, apperr.RateLimited(60))
		})
	}

	server := httptest.NewServer(handler.Routes(exhausted))
	t.Cleanup(server.Close)
	client := server.Client()

	// Seed an account with an already-issued session, bypassing the
	// throttled credential endpoints.
	user := &auth.User{ID: "user-1", Name: "Carl", Email: "carl@taskflow.app", Role: sec.RoleUser}
	require.NoError(t, repo.Create(context.Background(), user))
	token, err := tokens.Issue(user.ID, user.Email, string(user.Role))
	require.NoError(t, err)

	// Credential endpoints are throttled.
	loginResponse, loginBody := postJSON(t, client, server.URL+"/login",
		`{"email":"carl@taskflow.app","password":"supersecret"}`)
	assert.Equal(t, http.StatusTooManyRequests, loginResponse.StatusCode)
	assert.False(t, loginBody.Success)

	registerResponse, _ := postJSON(t, client, server.URL+"/register",
		`{"name":"Eve","email":"eve@taskflow.app","password":"supersecret"}`)
	assert.Equal(t, http.StatusTooManyRequests, registerResponse.StatusCode)

	// The session endpoints stay reachable, well past the credential budget.
	for i := 0; i < 15; i++ {
		meRequest, err := http.NewRequest(http.MethodGet, server.URL+"/me", nil)
		require.NoError(t, err)
		meRequest.AddCookie(&http.Cookie{Name: "jwt", Value: token})

		meResponse, err := client.Do(meRequest)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, meResponse.StatusCode)
		_ = meResponse.Body.Close()
	}

	logoutResponse, logoutBody := postJSON(t, client, server.URL+"/logout", ``)
	assert.Equal(t, http.StatusOK, logoutResponse.StatusCode)
	assert.Equal(t, "User logged out successfully", logoutBody.Message)
}

/*
TestAuthFlow_DuplicateRegister verifies the taken-email response shape.
*/
func TestAuthFlow_DuplicateRegister(t *testing.T) {
	server := newAuthServer(t)
	client := server.Client()

	first, _ := postJSON(t, client, server.URL+"/register",
		`{"name":"Carl","email":"carl@taskflow.app","password":"supersecret"}`)
	require.Equal(t, http.StatusCreated, first.StatusCode)

	second, body := postJSON(t, client, server.URL+"/register",
		`{"name":"Carl","email":"carl@taskflow.app","password":"supersecret"}`)

	assert.Equal(t, http.StatusBadRequest, second.StatusCode)
	assert.Equal(t, "User already exists", body.Message)
	assert.Nil(t, sessionCookie(second))
}
