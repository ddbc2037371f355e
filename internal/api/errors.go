package api

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// NetworkError wraps a transport-level failure: DNS, connect, timeout,
// or a response body that could not be read.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string { return fmt.Sprintf("network error: %v", e.Err) }
func (e *NetworkError) Unwrap() error { return e.Err }

// ValidationError is a 422 response carrying per-field messages.
type ValidationError struct {
	Message string
	Fields  map[string][]string
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return e.Message
	}
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var sb strings.Builder
	sb.WriteString(e.Message)
	for _, k := range keys {
		sb.WriteString(fmt.Sprintf("; %s: %s", k, strings.Join(e.Fields[k], ", ")))
	}
	return sb.String()
}

// FieldErrors returns the messages for one field, or nil.
func (e *ValidationError) FieldErrors(field string) []string {
	return e.Fields[field]
}

// PermissionError is a 403 response. The UI treats it as a signal to leave
// the current view rather than to show an inline message.
type PermissionError struct {
	Message string
}

func (e *PermissionError) Error() string {
	if e.Message == "" {
		return "permission denied"
	}
	return e.Message
}

// RateLimitError is a 429/503 throttle response. The server sends a
// dedicated {meta: {title, message}} body for these.
type RateLimitError struct {
	Title   string
	Message string
}

func (e *RateLimitError) Error() string {
	if e.Title == "" && e.Message == "" {
		return "too many requests"
	}
	return strings.TrimSpace(e.Title + ": " + e.Message)
}

// APIError is the fallback for any other non-2xx response.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("request failed with status %d", e.Status)
	}
	return fmt.Sprintf("%s (status %d)", e.Message, e.Status)
}

// IsValidation reports whether err is (or wraps) a validation error.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsPermission reports whether err is (or wraps) a permission error.
func IsPermission(err error) bool {
	var pe *PermissionError
	return errors.As(err, &pe)
}

// IsRateLimit reports whether err is (or wraps) a throttle error.
func IsRateLimit(err error) bool {
	var re *RateLimitError
	return errors.As(err, &re)
}

// IsNetwork reports whether err is (or wraps) a transport failure.
func IsNetwork(err error) bool {
	var ne *NetworkError
	return errors.As(err, &ne)
}
