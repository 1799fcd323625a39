// Copyright (c) 2026 TaskFlow. All rights reserved.
// Author: carljohntruya.art@gmail.com

/*
Package auth implements the user identity and session lifecycle.

It defines the core domain entity (User) and the logic for registration,
credential verification, and session-token issuance.

# Architecture

This layer is the "Truth" of the system for identity. Entities defined here
have no transport dependencies and encapsulate all business rules related to
accounts and credentials.
*/
package auth

import (
	"time"

	"github.com/carljohntruya-art/TaskFlow2.0-server/internal/platform/sec"
)

// # Domain Entities

// User represents a registered account.
//
// The password hash is write-once at creation: no credential-change path
// exists in the current scope, and the hash is never serialized outward.
type User struct {
	ID           string       `json:"id"`
	Name         string       `json:"name"`
	Email        string       `json:"email"`
	PasswordHash string       `json:"-"` // Explicitly omitted from JSON for security.
	Role         sec.UserRole `json:"role"`
	CreatedAt    time.Time    `json:"createdAt"`
	UpdatedAt    time.Time    `json:"updatedAt"`
}

// Identity returns the trusted-principal snapshot carried in request context.
func (user *User) Identity() *sec.Identity {
	return &sec.Identity{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		Role:      user.Role,
		CreatedAt: user.CreatedAt,
	}
}

// # Field Identifiers

// Global field names for validation in the authentication domain.
const (
	FieldName     = "name"
	FieldEmail    = "email"
	FieldPassword = "password"
)
