// Copyright (c) 2026 TaskFlow. All rights reserved.
// Author: carljohntruya.art@gmail.com

// Authorization pipeline for protected routes.
//
// # State Machine
//
// Each request moves through: NoToken → TokenInvalid → IdentityMissing →
// Authorized. The first failing state short-circuits with 401 before the
// handler runs; no partial handler execution is possible.
package middleware

import (
	"context"
	"net/http"

	"github.com/carljohntruya-art/TaskFlow2.0-server/internal/platform/apperr"
	"github.com/carljohntruya-art/TaskFlow2.0-server/internal/platform/ctxutil"
	"github.com/carljohntruya-art/TaskFlow2.0-server/internal/platform/respond"
	"github.com/carljohntruya-art/TaskFlow2.0-server/internal/platform/sec"
)

// TokenVerifier defines the interface needed to verify session tokens.
//
// # Why an interface?
//
// Defining TokenVerifier here decouples the middleware from [sec.TokenService],
// allowing us to easily inject mocks during unit testing.
type TokenVerifier interface {
	Verify(tokenString string) (*sec.SessionClaims, error)
}

// IdentityResolver re-loads the principal behind a claim set from the
// credential store. Implemented by the auth service.
type IdentityResolver interface {
	ResolveIdentity(ctx context.Context, userID string) (*sec.Identity, error)
}

// RequireIdentity is the gate in front of every protected route.
//
// # Flow
//  1. Extract the session token from the cookie. Absent → 401.
//  2. Verify signature and expiry via [TokenVerifier]. Invalid → 401.
//  3. Re-resolve the identity by the claim's user ID against the store.
//     Missing → 401 (deleted accounts lose access before token expiry).
//     A store failure is not an authorization outcome: it propagates as a
//     hard error instead of masquerading as 401.
//  4. Attach the freshly loaded [*sec.Identity] — not the raw claims — to
//     the request context and continue.
//
// Embedded email/role claims are never used for authorization decisions:
// once the store lookup succeeds, store state wins.
func RequireIdentity(cookie *sec.SessionCookie, verifier TokenVerifier, resolver IdentityResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {

			// ── 1. Transport Extraction ───────────────────────────────────────
			token, found := cookie.Extract(request)
			if !found {
				respond.Error(writer, request, apperr.Unauthorized("Not authorized, no token"))
				return
			}

			// ── 2. Token Verification ─────────────────────────────────────────
			claims, err := verifier.Verify(token)
			if err != nil {
				respond.Error(writer, request, apperr.Unauthorized("Not authorized, token failed"))
				return
			}

			// ── 3. Identity Re-resolution ─────────────────────────────────────
			identity, err := resolver.ResolveIdentity(request.Context(), claims.UserID)
			if err != nil {
				if app := apperr.As(err); app != nil && app.HTTPStatus == http.StatusNotFound {
					respond.Error(writer, request, apperr.Unauthorized("User no longer exists"))
					return
				}
				// Store outage, timeout, or any other non-absence failure.
				respond.Error(writer, request, err)
				return
			}
			if identity == nil {
				respond.Error(writer, request, apperr.Unauthorized("User no longer exists"))
				return
			}

			// ── 4. Context Attachment ─────────────────────────────────────────
			ctx := ctxutil.WithIdentity(request.Context(), identity)
			next.ServeHTTP(writer, request.WithContext(ctx))
		})
	}
}
