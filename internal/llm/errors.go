package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// ErrEmptyResult is returned when a backend answered successfully but
// produced no usable command text.
var ErrEmptyResult = errors.New("empty suggestion from model")

// AuthError indicates missing or rejected credentials for a backend.
type AuthError struct {
	Provider string
	Hint     string // Actionable next step, e.g. "set ANTHROPIC_API_KEY"
}

func (e *AuthError) Error() string {
	if e.Hint != "" {
		return fmt.Sprintf("%s: no credentials (%s)", e.Provider, e.Hint)
	}
	return fmt.Sprintf("%s: no credentials", e.Provider)
}

// NetworkError indicates the backend could not be reached, or the request
// timed out before a response arrived.
type NetworkError struct {
	Provider string
	Err      error
}

func (e *NetworkError) Error() string {
	if errors.Is(e.Err, context.DeadlineExceeded) {
		return fmt.Sprintf("%s: request timed out", e.Provider)
	}
	return fmt.Sprintf("%s: network error: %v", e.Provider, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// ProtocolError indicates the backend answered with a payload this client
// could not interpret.
type ProtocolError struct {
	Provider string
	Detail   string
}

func (e *ProtocolError) Error() string {
	return fmt.Sprintf("%s: unexpected response: %s", e.Provider, e.Detail)
}

// ProviderError indicates the backend reported a failure of its own, such as
// a rate limit, quota exhaustion, or a server-side error.
type ProviderError struct {
	Provider   string
	StatusCode int // 0 when unknown
	Message    string
}

func (e *ProviderError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("%s: API error (status %d): %s", e.Provider, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("%s: API error: %s", e.Provider, e.Message)
}

// Classify maps raw SDK and transport errors onto the stable error types
// above. Context cancellation passes through untouched so callers can tell a
// user abort apart from a real failure.
func Classify(provider string, err error) error {
	if err == nil {
		return nil
	}

	// Already classified errors pass through.
	var authErr *AuthError
	var netErr *NetworkError
	var protoErr *ProtocolError
	var provErr *ProviderError
	if errors.As(err, &authErr) || errors.As(err, &netErr) ||
		errors.As(err, &protoErr) || errors.As(err, &provErr) ||
		errors.Is(err, ErrEmptyResult) {
		return err
	}

	if errors.Is(err, context.Canceled) {
		return context.Canceled
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return &NetworkError{Provider: provider, Err: context.DeadlineExceeded}
	}

	errStr := strings.ToLower(err.Error())

	// SDKs don't always wrap context errors in a way errors.Is can see.
	if strings.Contains(errStr, "context canceled") ||
		strings.Contains(errStr, "operation was canceled") {
		return context.Canceled
	}
	if strings.Contains(errStr, "context deadline exceeded") {
		return &NetworkError{Provider: provider, Err: context.DeadlineExceeded}
	}

	// Authentication and authorization failures
	if strings.Contains(errStr, "401") ||
		strings.Contains(errStr, "403") ||
		strings.Contains(errStr, "unauthorized") ||
		strings.Contains(errStr, "authentication") ||
		strings.Contains(errStr, "invalid api key") ||
		strings.Contains(errStr, "invalid x-api-key") ||
		strings.Contains(errStr, "permission denied") {
		return &AuthError{Provider: provider, Hint: "check your API key"}
	}

	// Connection errors
	if strings.Contains(errStr, "connection refused") ||
		strings.Contains(errStr, "connection reset") ||
		strings.Contains(errStr, "no such host") ||
		strings.Contains(errStr, "network is unreachable") ||
		strings.Contains(errStr, "timeout") ||
		strings.Contains(errStr, "temporary failure") ||
		strings.Contains(errStr, "tls handshake") ||
		strings.Contains(errStr, "unexpected eof") {
		return &NetworkError{Provider: provider, Err: err}
	}

	// Server-side failures and rate limits
	if strings.Contains(errStr, "429") ||
		strings.Contains(errStr, "rate limit") ||
		strings.Contains(errStr, "too many requests") ||
		strings.Contains(errStr, "quota") ||
		strings.Contains(errStr, "overloaded") ||
		strings.Contains(errStr, "500") ||
		strings.Contains(errStr, "502") ||
		strings.Contains(errStr, "503") ||
		strings.Contains(errStr, "bad gateway") ||
		strings.Contains(errStr, "service unavailable") {
		return &ProviderError{Provider: provider, Message: err.Error()}
	}

	// Parse and decode failures
	if strings.Contains(errStr, "unmarshal") ||
		strings.Contains(errStr, "invalid character") ||
		strings.Contains(errStr, "unexpected end of json") ||
		strings.Contains(errStr, "parse") {
		return &ProtocolError{Provider: provider, Detail: err.Error()}
	}

	return &ProviderError{Provider: provider, Message: err.Error()}
}

// Describe renders a short single-line message for the editor status area.
func Describe(err error) string {
	if err == nil {
		return ""
	}

	var authErr *AuthError
	if errors.As(err, &authErr) {
		return authErr.Error()
	}
	var netErr *NetworkError
	if errors.As(err, &netErr) {
		return netErr.Error()
	}
	var protoErr *ProtocolError
	if errors.As(err, &protoErr) {
		return protoErr.Error()
	}
	var provErr *ProviderError
	if errors.As(err, &provErr) {
		return provErr.Error()
	}
	if errors.Is(err, ErrEmptyResult) {
		return "no suggestion"
	}

	return err.Error()
}
