// Copyright (c) 2026 TaskFlow. All rights reserved.
// Author: carljohntruya.art@gmail.com

// Package pointer provides utilities for working with pointers in Go.
//
// Partial-update payloads lean on optional (pointer) fields, so this helper
// removes a lot of two-line temporaries at the call sites.
package pointer

// To returns a pointer to the provided value.
// It is useful when a struct field expects a pointer to a literal
// (e.g. pointer.To(StatusDone)).
func To[T any](v T) *T {
	return &v
}
