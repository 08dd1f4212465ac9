// Package common defines shared constants and sentinel errors used across
// the recordkeeper server layers. Callers should use errors.Is to match
// these values.
package common

import "errors"

var (
	// Repository-level errors.
	// ErrNotFound covers both "does not exist" and "exists but belongs to
	// another account"; the two cases must stay indistinguishable to callers.
	ErrNotFound = errors.New("not found")

	// Service-level errors.
	ErrInternal   = errors.New("internal error")
	ErrValidation = errors.New("validation error")
	ErrConflict   = errors.New("already exists")
	ErrStore      = errors.New("store error")

	// Auth errors.
	ErrUnauthorized = errors.New("unauthorized")
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
)
