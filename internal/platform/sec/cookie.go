// Copyright (c) 2026 TaskFlow. All rights reserved.
// Author: carljohntruya.art@gmail.com

package sec

import (
	"net/http"
	"time"
)

// SessionCookie binds session tokens to a browser cookie with a fixed
// lifetime and security flags.
//
// # Flag Rules
//
//   - HttpOnly is always set: the token must never be readable from script.
//   - Secure follows the deployment: true behind TLS, false for local dev.
//   - SameSite=None requires Secure as a precondition; browsers silently drop
//     cross-site cookies otherwise. When Secure is false we fall back to Lax.
//
// The cookie may outlive the embedded token: a stale token is rejected by
// [TokenService.Verify] regardless of cookie validity.
type SessionCookie struct {
	name   string
	path   string
	maxAge time.Duration
	secure bool
}

// NewSessionCookie constructs the session cookie policy.
func NewSessionCookie(name, path string, maxAge time.Duration, secure bool) *SessionCookie {
	return &SessionCookie{
		name:   name,
		path:   path,
		maxAge: maxAge,
		secure: secure,
	}
}

// Attach sets the session cookie on the response.
func (cookie *SessionCookie) Attach(writer http.ResponseWriter, token string) {
	http.SetCookie(writer, &http.Cookie{
		Name:     cookie.name,
		Value:    token,
		Path:     cookie.path,
		MaxAge:   int(cookie.maxAge.Seconds()),
		Secure:   cookie.secure,
		HttpOnly: true,
		SameSite: cookie.sameSite(),
	})
}

// Clear removes the session cookie from the client.
//
// Flags must match the ones used by Attach, or strict browsers refuse the
// removal and the stale cookie lingers.
func (cookie *SessionCookie) Clear(writer http.ResponseWriter) {
	http.SetCookie(writer, &http.Cookie{
		Name:     cookie.name,
		Value:    "",
		Path:     cookie.path,
		MaxAge:   -1,
		Secure:   cookie.secure,
		HttpOnly: true,
		SameSite: cookie.sameSite(),
	})
}

// Extract returns the session token carried by the request, if any.
func (cookie *SessionCookie) Extract(request *http.Request) (string, bool) {
	c, err := request.Cookie(cookie.name)
	if err != nil || c.Value == "" {
		return "", false
	}
	return c.Value, true
}

// Name returns the cookie name. Exposed for tests and logging.
func (cookie *SessionCookie) Name() string { return cookie.name }

func (cookie *SessionCookie) sameSite() http.SameSite {
	// Cross-domain frontends need SameSite=None, which is only legal with
	// the Secure flag.
	if cookie.secure {
		return http.SameSiteNoneMode
	}
	return http.SameSiteLaxMode
}
