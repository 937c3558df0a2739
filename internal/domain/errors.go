package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrStoreNotFound is returned when a store ID is not in the registry
	ErrStoreNotFound = errors.New("store not found")

	// ErrProductNotFound is returned when a product cannot be found in a store
	ErrProductNotFound = errors.New("product not found")

	// ErrOrderNotFound is returned when a tracking ID is unknown
	ErrOrderNotFound = errors.New("order not found")

	// ErrFlightNotFound is returned when a flight ID is not in the dataset
	ErrFlightNotFound = errors.New("flight not found")

	// ErrNoVariants is returned when an order is requested for a product without variants
	ErrNoVariants = errors.New("no variants available")

	// ErrNoStoresConnected is returned when an operation needs at least one store
	ErrNoStoresConnected = errors.New("no stores connected")

	// ErrStoreConnectionFailed is returned when the connection test against a store fails
	ErrStoreConnectionFailed = errors.New("store connection failed")

	// ErrStoreAPIFailure is returned when a store Admin API request fails
	ErrStoreAPIFailure = errors.New("store API request failed")

	// ErrAIProviderFailure is returned when an AI provider request fails
	ErrAIProviderFailure = errors.New("AI provider request failed")

	// ErrAINotConfigured is returned when no AI provider is configured
	ErrAINotConfigured = errors.New("AI provider not configured")

	// ErrUnsupportedProvider is returned for an unknown AI provider name
	ErrUnsupportedProvider = errors.New("unsupported AI provider")

	// ErrCacheMiss is returned when data is not found in cache
	ErrCacheMiss = errors.New("cache miss")
)

// ValidationError is returned when request input is rejected before any outbound call
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// NewValidationError creates a ValidationError for the given field
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// IsValidation reports whether err is (or wraps) a ValidationError
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
