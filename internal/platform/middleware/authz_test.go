// Copyright (c) 2026 TaskFlow. All rights reserved.
// Author: carljohntruya.art@gmail.com

package middleware_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carljohntruya-art/TaskFlow2.0-server/internal/platform/apperr"
	"github.com/carljohntruya-art/TaskFlow2.0-server/internal/platform/ctxutil"
	"github.com/carljohntruya-art/TaskFlow2.0-server/internal/platform/middleware"
	"github.com/carljohntruya-art/TaskFlow2.0-server/internal/platform/sec"
)

// fakeVerifier maps token strings to canned claims.
type fakeVerifier struct {
	claims map[string]*sec.SessionClaims
}

func (f *fakeVerifier) Verify(tokenString string) (*sec.SessionClaims, error) {
	if claims, ok := f.claims[tokenString]; ok {
		return claims, nil
	}
	return nil, sec.ErrInvalidToken
}

// fakeResolver maps user IDs to canned identities.
type fakeResolver struct {
	identities map[string]*sec.Identity
}

func (f *fakeResolver) ResolveIdentity(_ context.Context, userID string) (*sec.Identity, error) {
	if identity, ok := f.identities[userID]; ok {
		return identity, nil
	}
	return nil, apperr.NotFound("User")
}

// failingResolver simulates a credential store outage on every lookup.
type failingResolver struct{}

func (failingResolver) ResolveIdentity(context.Context, string) (*sec.Identity, error) {
	return nil, apperr.Internal(errors.New("connection refused"))
}

func testGuard(captured **sec.Identity) http.Handler {
	cookie := sec.NewSessionCookie("jwt", "/", time.Hour, false)
	verifier := &fakeVerifier{claims: map[string]*sec.SessionClaims{
		"valid-token":  {UserID: "user-1", Email: "carl@taskflow.app", Role: "user"},
		"orphan-token": {UserID: "ghost-user"},
	}}
	resolver := &fakeResolver{identities: map[string]*sec.Identity{
		"user-1": {ID: "user-1", Email: "carl@taskflow.app", Role: sec.RoleUser},
	}}

	next := http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		*captured = ctxutil.GetIdentity(request.Context())
		writer.WriteHeader(http.StatusNoContent)
	})

	return middleware.RequireIdentity(cookie, verifier, resolver)(next)
}

func do(t *testing.T, handler http.Handler, sessionToken string) *httptest.ResponseRecorder {
	t.Helper()
	request := httptest.NewRequest(http.MethodGet, "/tasks", nil)
	if sessionToken != "" {
		request.AddCookie(&http.Cookie{Name: "jwt", Value: sessionToken})
	}
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)
	return recorder
}

func decodeMessage(t *testing.T, recorder *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	assert.False(t, body.Success)
	return body.Message
}

/*
TestRequireIdentity_NoToken verifies that requests without a session cookie
are rejected before the handler runs.
*/
func TestRequireIdentity_NoToken(t *testing.T) {
	var captured *sec.Identity
	handler := testGuard(&captured)

	recorder := do(t, handler, "")

	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	assert.Equal(t, "Not authorized, no token", decodeMessage(t, recorder))
	assert.Nil(t, captured)
}

/*
TestRequireIdentity_InvalidToken verifies that verification failures reject
with the generic token message (no failure detail leaks to the client).
*/
func TestRequireIdentity_InvalidToken(t *testing.T) {
	var captured *sec.Identity
	handler := testGuard(&captured)

	recorder := do(t, handler, "forged-token")

	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	assert.Equal(t, "Not authorized, token failed", decodeMessage(t, recorder))
	assert.Nil(t, captured)
}

/*
TestRequireIdentity_DeletedUser verifies that a valid token whose subject no
longer exists in the store is rejected. Deleted accounts lose access before
their tokens expire.
*/
func TestRequireIdentity_DeletedUser(t *testing.T) {
	var captured *sec.Identity
	handler := testGuard(&captured)

	recorder := do(t, handler, "orphan-token")

	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	assert.Equal(t, "User no longer exists", decodeMessage(t, recorder))
	assert.Nil(t, captured)
}

/*
TestRequireIdentity_StoreFailure verifies that a store outage during identity
re-resolution surfaces as 500, not as the deleted-account 401. Only genuine
absence downgrades to an authorization outcome.
*/
func TestRequireIdentity_StoreFailure(t *testing.T) {
	cookie := sec.NewSessionCookie("jwt", "/", time.Hour, false)
	verifier := &fakeVerifier{claims: map[string]*sec.SessionClaims{
		"valid-token": {UserID: "user-1", Email: "carl@taskflow.app", Role: "user"},
	}}

	handlerRan := false
	next := http.HandlerFunc(func(http.ResponseWriter, *http.Request) { handlerRan = true })
	handler := middleware.RequireIdentity(cookie, verifier, failingResolver{})(next)

	recorder := do(t, handler, "valid-token")

	assert.Equal(t, http.StatusInternalServerError, recorder.Code)
	assert.Equal(t, "An unexpected error occurred", decodeMessage(t, recorder))
	assert.False(t, handlerRan)
}

/*
TestRequireIdentity_Authorized verifies the happy path: the handler runs with
the store-resolved identity attached to the request context.
*/
func TestRequireIdentity_Authorized(t *testing.T) {
	var captured *sec.Identity
	handler := testGuard(&captured)

	recorder := do(t, handler, "valid-token")

	assert.Equal(t, http.StatusNoContent, recorder.Code)
	require.NotNil(t, captured)
	assert.Equal(t, "user-1", captured.ID)
	assert.Equal(t, sec.RoleUser, captured.Role)
}
