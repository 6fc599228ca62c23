package domain

import "errors"

// Error message string constants - single source of truth for error messages
// Use these in assert.Contains() checks when testing error messages
const (
	// State token errors
	ErrMsgInvalidSignature = "invalid state signature"
	ErrMsgStateExpired     = "state token expired"

	// Provider errors
	ErrMsgProviderRejected = "provider rejected the exchange"
	ErrMsgInvalidProvider  = "invalid provider"

	// Transport errors
	ErrMsgNetwork = "network failure"

	// Store errors
	ErrMsgStoreUnavailable = "store unavailable"
	ErrMsgNotLinked        = "account not linked"

	// Input errors
	ErrMsgInvalidInput = "invalid input"
)

// Common domain errors
// These errors should be used consistently across all layers of the application.
// Wrap these errors with fmt.Errorf("%w: %s", domain.ErrXxx, details) for additional context.
var (
	// State token errors
	ErrInvalidSignature = errors.New(ErrMsgInvalidSignature)
	ErrStateExpired     = errors.New(ErrMsgStateExpired)

	// Provider errors
	ErrProviderRejected = errors.New(ErrMsgProviderRejected)
	ErrInvalidProvider  = errors.New(ErrMsgInvalidProvider)

	// Transport errors
	ErrNetwork = errors.New(ErrMsgNetwork)

	// Store errors
	ErrStoreUnavailable = errors.New(ErrMsgStoreUnavailable)
	ErrNotLinked        = errors.New(ErrMsgNotLinked)

	// Input errors
	ErrInvalidInput = errors.New(ErrMsgInvalidInput)
)
