package auth

import "errors"

// Common authentication service errors
var (
	// ErrInvalidToken indicates the token format is invalid, its signature does
	// not match the purpose's secret or it was issued for another purpose.
	ErrInvalidToken = errors.New("invalid authentication token")

	// ErrExpiredToken indicates the token has expired
	ErrExpiredToken = errors.New("authentication token has expired")

	// ErrMissingToken indicates a token was expected but not provided
	ErrMissingToken = errors.New("authentication token is missing")

	// ErrUnknownPurpose indicates a token purpose with no configured secret
	ErrUnknownPurpose = errors.New("unknown token purpose")
)
