package scryfall

import (
	"errors"
	"fmt"
)

// APIError is a structured error payload returned by the Scryfall API.
// Scryfall marks these with object=="error" and may attach one even to a
// 200 response, so the error shape takes precedence over the HTTP status.
type APIError struct {
	Object   string   `json:"object"`
	Code     string   `json:"code"`
	Status   int      `json:"status"`
	Details  string   `json:"details"`
	Type     string   `json:"type,omitempty"`
	Warnings []string `json:"warnings,omitempty"`
}

func (e *APIError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("scryfall: %s (HTTP %d): %s", e.Code, e.Status, e.Details)
	}
	return fmt.Sprintf("scryfall: %s (HTTP %d)", e.Code, e.Status)
}

// RateLimitError is returned when the API kept answering 429 and no
// retries remain.
type RateLimitError struct {
	Status  int
	Retries int
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("scryfall: rate limited (HTTP %d), gave up after %d retries", e.Status, e.Retries)
}

// TransportError is returned for network failures and for non-2xx
// responses that carry no recognizable error payload.
type TransportError struct {
	Status  int
	Message string
	Err     error
}

func (e *TransportError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("scryfall: request failed: %v", e.Err)
	}
	return fmt.Sprintf("scryfall: unexpected status %d: %s", e.Status, e.Message)
}

func (e *TransportError) Unwrap() error { return e.Err }

// InvalidInputError is raised by endpoint methods before any network call
// when the input could only produce a server-side rejection.
type InvalidInputError struct {
	Reason string
}

func (e *InvalidInputError) Error() string {
	return "scryfall: invalid input: " + e.Reason
}

// IsNotFound reports whether err is an upstream not_found error.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Code == "not_found"
}
