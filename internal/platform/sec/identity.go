// Copyright (c) 2026 TaskFlow. All rights reserved.
// Author: carljohntruya.art@gmail.com

package sec

import "time"

// # User Roles

// UserRole represents the authorization level granted to an account.
type UserRole string

const (
	// Unrestricted system access. The role exists in the data model but no
	// code path currently bypasses ownership checks with it.
	RoleAdmin UserRole = "admin"

	// Default role for standard registered users
	RoleUser UserRole = "user"
)

// Valid reports whether the role is a known member of the enumeration.
func (r UserRole) Valid() bool {
	return r == RoleAdmin || r == RoleUser
}

// # Trusted Identity

// Identity is the principal attached to the request context by the
// authorization pipeline.
//
// It is always re-loaded from the credential store, never reconstructed from
// raw token claims, so a deleted account loses access before its token
// expires. Downstream authorization decisions (ownership checks) must use
// this snapshot in preference to anything embedded in the token.
type Identity struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      UserRole  `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}
