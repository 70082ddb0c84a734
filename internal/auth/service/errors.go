package service

import "errors"

var (
	// ErrCodePending is returned when the identity already has a live code.
	ErrCodePending = errors.New("code_pending")

	// ErrUnauthorized covers every code exchange rejection except expiry:
	// unknown code, consumed code and address mismatch look the same.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrCodeExpired is returned for a valid code past its expiry.
	ErrCodeExpired = errors.New("code_expired")

	// ErrUnauthenticated is returned when a carrier fails verification or
	// the token could not be loaded.
	ErrUnauthenticated = errors.New("unauthenticated")

	// ErrInvalidToken is returned for unknown, revoked or non-API tokens.
	ErrInvalidToken = errors.New("invalid token")

	// ErrTokenExpired is returned for a valid token past its expiry.
	ErrTokenExpired = errors.New("token expired")

	ErrForbidden  = errors.New("forbidden")
	ErrValidation = errors.New("validation_error")
	ErrNotFound   = errors.New("not_found")

	// ErrDelivery wraps failures of the code delivery channel.
	ErrDelivery = errors.New("code delivery failed")
)
