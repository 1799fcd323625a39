// Copyright (c) 2026 TaskFlow. All rights reserved.
// Author: carljohntruya.art@gmail.com

package auth

import (
	"context"
	"fmt"
	"strings"

	"github.com/carljohntruya-art/TaskFlow2.0-server/internal/platform/apperr"
	"github.com/carljohntruya-art/TaskFlow2.0-server/internal/platform/sec"
	"github.com/carljohntruya-art/TaskFlow2.0-server/pkg/uuid"
)

// # Contracts & Types

// TokenIssuer defines the contract for generating session tokens.
type TokenIssuer interface {
	// Issue creates a signed session token for the given user. Expiry is
	// derived inside the issuer from its configured TTL.
	Issue(userID, email, role string) (string, error)
}

// Service implements user authentication use cases.
//
// # Review Process
//
// This service is critical for security. Any changes to hashing, registration,
// or login logic must be reviewed before merging.
type Service struct {
	userRepository UserRepository
	tokenIssuer    TokenIssuer
}

// NewService constructs a new [Service] with necessary dependencies.
func NewService(userRepo UserRepository, issuer TokenIssuer) *Service {
	return &Service{
		userRepository: userRepo,
		tokenIssuer:    issuer,
	}
}

// Session is a successfully established authentication result: the signed
// token for the transport layer plus the account it proves.
type Session struct {
	Token string
	User  *User
}

// # Registration Flow

// RegisterInput holds the data required to enroll a new account.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

/*
Register validates, hashes, and persists a brand new user account, then
issues a session token so registration doubles as login.

Parameters:
  - context: context.Context
  - input: RegisterInput

Returns:
  - *Session: Token plus created entity
  - error: BadRequest (if the email is taken) or storage errors
*/
func (service *Service) Register(context context.Context, input RegisterInput) (*Session, error) {
	email := NormalizeEmail(input.Email)

	// Verify email uniqueness. The store enforces this too; checking first
	// gives the common case a clean client-safe error.
	if _, err := service.userRepository.FindByEmail(context, email); err == nil {
		return nil, apperr.BadRequest("User already exists")
	}

	// Prevent storing plain-text passwords. Cost 12 balances brute-force
	// resistance against CPU utilization during registration spikes.
	hashedPassword, err := sec.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("auth_service_hash_failed: %w", err)
	}

	// Construct the new User entity. Time-sortable ID to prevent PG index fragmentation.
	user := &User{
		ID:           uuid.New(),
		Name:         input.Name,
		Email:        email,
		PasswordHash: hashedPassword,
		Role:         sec.RoleUser,
	}

	// Persist the user to the database. A concurrent duplicate registration
	// loses the race here and surfaces the store's Conflict.
	if err := service.userRepository.Create(context, user); err != nil {
		return nil, err
	}

	token, err := service.tokenIssuer.Issue(user.ID, user.Email, string(user.Role))
	if err != nil {
		return nil, fmt.Errorf("auth_service_token_generation_failed: %w", err)
	}

	return &Session{Token: token, User: user}, nil
}

// # Authentication Flow

// LoginInput defines credentials for an authentication attempt.
type LoginInput struct {
	Email    string
	Password string
}

/*
Login validates user credentials and issues a session token.

Description: Verifies identity via bcrypt's constant-time comparison and
returns a transport-ready session.

Parameters:
  - context: context.Context
  - input: LoginInput

Returns:
  - *Session: Token plus account
  - error: Unauthorized or internal failures
*/
func (service *Service) Login(context context.Context, input LoginInput) (*Session, error) {
	user, err := service.userRepository.FindByEmail(context, NormalizeEmail(input.Email))

	// Unknown email. Generic message, identical to the wrong-password case,
	// to prevent account enumeration.
	if err != nil {
		return nil, apperr.Unauthorized("Invalid credentials")
	}

	if !sec.CheckPasswordHash(input.Password, user.PasswordHash) {
		return nil, apperr.Unauthorized("Invalid credentials")
	}

	token, err := service.tokenIssuer.Issue(user.ID, user.Email, string(user.Role))
	if err != nil {
		return nil, fmt.Errorf("auth_service_token_generation_failed: %w", err)
	}

	return &Session{Token: token, User: user}, nil
}

// # Identity Resolution

/*
ResolveIdentity re-loads the principal behind a verified claim set.

Description: Called by the authorization pipeline on every protected request.
Store state wins over anything embedded in the token: a deleted account
resolves to an error even while its token is cryptographically valid.

Parameters:
  - context: context.Context
  - userID: string (the claim's subject)

Returns:
  - *sec.Identity: Trusted principal snapshot
  - error: apperr.NotFound or storage failures
*/
func (service *Service) ResolveIdentity(context context.Context, userID string) (*sec.Identity, error) {
	user, err := service.userRepository.FindByID(context, userID)
	if err != nil {
		return nil, err
	}
	return user.Identity(), nil
}

// NormalizeEmail lowercases an email address so uniqueness is
// case-insensitive at the application boundary.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
