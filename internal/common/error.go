// Package common defines shared sentinel errors used across estatekeeper
// components. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Resource errors (missing listing, missing credential key).
	ErrorNotFound = errors.New("not found")

	// Service-level errors (generic/internal flow control).
	ErrorInternal    = errors.New("internal error")
	ErrorUnavailable = errors.New("server unavailable")

	// Auth errors.
	ErrorUnauthorized = errors.New("unauthorized")
	ErrInvalidToken   = errors.New("invalid token")

	// Input errors caught before any network call is made.
	ErrValidation = errors.New("validation error")
)
