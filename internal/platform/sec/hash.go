// Copyright (c) 2026 TaskFlow. All rights reserved.
// Author: carljohntruya.art@gmail.com

package sec

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// PasswordHashCost is the bcrypt work factor. 12 rounds keeps interactive
// logins under a second on commodity hardware while remaining expensive
// enough to resist offline brute force.
const PasswordHashCost = 12

// HashPassword hashes a plain-text password using the bcrypt algorithm.
// The salt is generated internally and embedded in the returned hash.
func HashPassword(plainTextPassword string) (string, error) {
	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(plainTextPassword), PasswordHashCost)
	if err != nil {
		return "", fmt.Errorf("sec: failed to hash password: %w", err)
	}
	return string(hashedBytes), nil
}

// CheckPasswordHash compares a plain-text password with its hashed version.
//
// bcrypt's comparison is constant-time with respect to the password content.
// A malformed stored hash makes this return false rather than error: the
// caller only ever gets a boolean.
func CheckPasswordHash(plainTextPassword, existingHash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(existingHash), []byte(plainTextPassword))
	return err == nil
}
