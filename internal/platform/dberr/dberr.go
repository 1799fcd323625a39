// Copyright (c) 2026 TaskFlow. All rights reserved.
// Author: carljohntruya.art@gmail.com

// Package dberr provides a bridge between low-level database errors and
// higher-level application errors.
//
// Repositories call [Wrap] at their return boundary so nothing above the
// storage layer ever sees pgx error types or SQLSTATE codes.
package dberr

import (
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/carljohntruya-art/TaskFlow2.0-server/internal/platform/apperr"
)

// pgUniqueViolation is the PostgreSQL SQLSTATE for unique-constraint violations.
const pgUniqueViolation = "23505"

// Wrap inspects a database error and maps it to a meaningful [apperr.AppError].
//
// pgx.ErrNoRows becomes apperr.NotFound for the named resource; everything
// else is classified as an internal error with the cause preserved for the
// server-side log. An error that is already an [apperr.AppError] passes
// through untouched, so repositories can apply Wrap uniformly at the return
// boundary without re-classifying their own mappings.
func Wrap(err error, resource string) error {
	if err == nil {
		return nil
	}

	if apperr.IsAppError(err) {
		return err
	}

	if errors.Is(err, pgx.ErrNoRows) {
		return apperr.NotFound(resource)
	}

	return apperr.Internal(err)
}

// IsUniqueViolation reports whether err is a PostgreSQL unique-constraint
// violation. Callers translate it to a domain-specific conflict message.
func IsUniqueViolation(err error) bool {
	var pgError *pgconn.PgError
	return errors.As(err, &pgError) && pgError.Code == pgUniqueViolation
}
