// Copyright (c) 2026 TaskFlow. All rights reserved.
// Author: carljohntruya.art@gmail.com

// Package sec provides cryptographic primitives and session-token management.
//
// # Architecture
//
// This package isolates security-sensitive code (Hashing, JWT Signing, cookie
// transport) from the domain logic. It acts as an Infrastructure service
// injected into the Application layer via small interfaces.
package sec

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken is the single result for every verification failure.
//
// Forged signature, expired claims, wrong algorithm, and malformed structure
// all collapse into this sentinel so that callers cannot be used as an oracle
// against the signing scheme.
var ErrInvalidToken = errors.New("sec: invalid token")

// SessionClaims represents the payload embedded inside a session JWT.
//
// Claims are a snapshot taken at issuance: a later role change does not
// rewrite tokens already in the wild. The authorization pipeline re-resolves
// the identity from the store, so claims are only trusted for the lookup key.
type SessionClaims struct {
	jwt.RegisteredClaims

	// Custom application claims are abbreviated to keep the JWT payload small.
	UserID string `json:"uid"`
	Email  string `json:"eml"`
	Role   string `json:"rol"`
}

// TokenService handles generation and verification of session JWTs using
// HMAC-SHA256 with a symmetric secret.
type TokenService struct {
	secret []byte
	issuer string
	ttl    time.Duration
}

// NewTokenService creates a new TokenService.
//
// The ttl is fixed at construction: expiry is always derived from issuance
// time inside Issue, never accepted from the caller as a claim.
func NewTokenService(secret, issuer string, ttl time.Duration) *TokenService {
	return &TokenService{
		secret: []byte(secret),
		issuer: issuer,
		ttl:    ttl,
	}
}

// Issue creates a new signed session token for a user.
func (service *TokenService) Issue(userID, email, role string) (string, error) {
	currentTime := time.Now()
	claims := SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			Issuer:    service.issuer,
			IssuedAt:  jwt.NewNumericDate(currentTime),
			ExpiresAt: jwt.NewNumericDate(currentTime.Add(service.ttl)),
		},
		UserID: userID,
		Email:  email,
		Role:   role,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString(service.secret)
	if err != nil {
		return "", ErrInvalidToken
	}

	return signedToken, nil
}

// Verify checks the signature, structure, and expiry of a session token.
//
// Any failure returns [ErrInvalidToken] without detail.
func (service *TokenService) Verify(tokenString string) (*SessionClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &SessionClaims{},
		func(token *jwt.Token) (interface{}, error) {
			// Pin the algorithm. Without this an attacker could re-sign the
			// payload under a different scheme.
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, ErrInvalidToken
			}
			return service.secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	)

	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*SessionClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
