package domain

import (
	"context"
	"errors"
)

var (
	// ErrInvalidInput is returned when a wallet address does not match the address pattern
	ErrInvalidInput = errors.New("invalid input")

	// ErrProviderUnconfigured is returned when an optional provider has no credentials or endpoint
	ErrProviderUnconfigured = errors.New("provider not configured")

	// ErrProviderTransient is returned when a provider call times out or is rate limited
	ErrProviderTransient = errors.New("provider transient failure")

	// ErrDataIntegrity is returned when a raw feed record fails schema validation
	ErrDataIntegrity = errors.New("data integrity error")

	// ErrUnauthorized is returned when a sync trigger has no valid credential
	ErrUnauthorized = errors.New("unauthorized")

	// ErrUnknownSource is returned when a source id is not registered
	ErrUnknownSource = errors.New("unknown source")

	// ErrNotFound is returned when a record does not exist
	ErrNotFound = errors.New("not found")
)

// IsTransient reports whether err is a timeout or rate-limit style failure
func IsTransient(err error) bool {
	if err == nil {
		return false
	}
	return errors.Is(err, ErrProviderTransient) ||
		errors.Is(err, context.DeadlineExceeded)
}
