package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/falsedev/TechStruck_Go/internal/domain"
)

// Standard response types for consistent API responses

// SuccessResponse represents a simple successful operation message
type SuccessResponse struct {
	Message string `json:"message"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// Helper functions for responding

// respondJSON sends a JSON response with the given status code and payload
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	// Get a buffer from the pool to reduce allocations
	buf := getBuffer()
	defer putBuffer(buf)

	// Encode to the buffer first
	if err := json.NewEncoder(buf).Encode(payload); err != nil {
		// Log the error - we can't write to response at this point since headers are sent
		slog.Error("Failed to encode JSON response", "error", err)
		return
	}

	if _, err := buf.WriteTo(w); err != nil {
		slog.Error("Failed to write response buffer", "error", err)
	}
}

// respondError sends a JSON error response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, ErrorResponse{Error: message})
}

// User-facing error messages for service errors
// These messages are derived from domain errors and provide helpful guidance to users
const (
	ErrMsgGenericServerError = "Something went wrong"
	ErrMsgUnknownError       = "Unknown error"

	// Linking flow messages
	ErrMsgInvalidStateError     = "Invalid state. Request a fresh link and try again."
	ErrMsgExpiredLinkError      = "Expired link. Request a fresh link and try again."
	ErrMsgProviderRejectedError = "The provider rejected the link request"
	ErrMsgProviderNetworkError  = "Could not reach the provider. Please try again later."
	ErrMsgStoreUnavailableError = "Server is temporarily unavailable. Please try again later."
	ErrMsgNotLinkedError        = "No account is linked for that provider"
	ErrMsgInvalidProviderError  = "Unknown provider"
	ErrMsgInvalidInputError     = "Invalid request. Please check your inputs."
)

// mapServiceErrorToUserMessage maps domain errors to user-friendly HTTP responses.
// This is the single place where internal errors become user-facing text.
func mapServiceErrorToUserMessage(err error) (int, string) {
	if err == nil {
		return http.StatusInternalServerError, ErrMsgUnknownError
	}

	switch {
	case errors.Is(err, domain.ErrInvalidSignature):
		return http.StatusUnauthorized, ErrMsgInvalidStateError
	case errors.Is(err, domain.ErrStateExpired):
		return http.StatusUnauthorized, ErrMsgExpiredLinkError
	case errors.Is(err, domain.ErrProviderRejected):
		return http.StatusBadGateway, ErrMsgProviderRejectedError
	case errors.Is(err, domain.ErrNetwork):
		return http.StatusBadGateway, ErrMsgProviderNetworkError
	case errors.Is(err, domain.ErrStoreUnavailable):
		return http.StatusServiceUnavailable, ErrMsgStoreUnavailableError
	case errors.Is(err, domain.ErrNotLinked):
		return http.StatusNotFound, ErrMsgNotLinkedError
	case errors.Is(err, domain.ErrInvalidProvider):
		return http.StatusBadRequest, ErrMsgInvalidProviderError
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest, ErrMsgInvalidInputError
	default:
		return http.StatusInternalServerError, ErrMsgGenericServerError
	}
}
