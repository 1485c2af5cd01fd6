package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string // error type: "auth", "network", "protocol", "provider", "cancel", "empty"
	}{
		{"unauthorized", fmt.Errorf("API error (status 401): unauthorized"), "auth"},
		{"invalid key", fmt.Errorf("invalid x-api-key header"), "auth"},
		{"connection refused", fmt.Errorf("dial tcp 127.0.0.1:11434: connection refused"), "network"},
		{"no such host", fmt.Errorf("dial tcp: lookup api.example.com: no such host"), "network"},
		{"deadline", context.DeadlineExceeded, "network"},
		{"wrapped deadline", fmt.Errorf("request failed: %w", context.DeadlineExceeded), "network"},
		{"sdk deadline string", fmt.Errorf("Post \"https://x\": context deadline exceeded"), "network"},
		{"canceled", context.Canceled, "cancel"},
		{"wrapped canceled", fmt.Errorf("request failed: %w", context.Canceled), "cancel"},
		{"sdk canceled string", fmt.Errorf("Post \"https://x\": context canceled"), "cancel"},
		{"rate limit", fmt.Errorf("API error (status 429): rate limit exceeded"), "provider"},
		{"server error", fmt.Errorf("API error (status 503): service unavailable"), "provider"},
		{"overloaded", fmt.Errorf("overloaded_error: Overloaded"), "provider"},
		{"bad json", fmt.Errorf("invalid character '<' looking for beginning of value"), "protocol"},
		{"unknown", fmt.Errorf("something odd happened"), "provider"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify("test", tt.err)

			var kind string
			var authErr *AuthError
			var netErr *NetworkError
			var protoErr *ProtocolError
			var provErr *ProviderError
			switch {
			case errors.Is(got, context.Canceled):
				kind = "cancel"
			case errors.As(got, &authErr):
				kind = "auth"
			case errors.As(got, &netErr):
				kind = "network"
			case errors.As(got, &protoErr):
				kind = "protocol"
			case errors.As(got, &provErr):
				kind = "provider"
			default:
				kind = "unclassified"
			}

			if kind != tt.want {
				t.Errorf("Classify(%v) = %v (%s), want %s", tt.err, got, kind, tt.want)
			}
		})
	}
}

func TestClassifyNil(t *testing.T) {
	if got := Classify("test", nil); got != nil {
		t.Errorf("Classify(nil) = %v, want nil", got)
	}
}

func TestClassifyPassesThroughTypedErrors(t *testing.T) {
	orig := &AuthError{Provider: "anthropic", Hint: "set ANTHROPIC_API_KEY"}
	if got := Classify("anthropic", orig); got != error(orig) {
		t.Errorf("Classify changed an already classified error: %v", got)
	}

	if got := Classify("mock", ErrEmptyResult); !errors.Is(got, ErrEmptyResult) {
		t.Errorf("Classify(ErrEmptyResult) = %v, want passthrough", got)
	}
}

func TestDescribe(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		contains string
	}{
		{"auth", &AuthError{Provider: "anthropic", Hint: "set ANTHROPIC_API_KEY"}, "set ANTHROPIC_API_KEY"},
		{"timeout", &NetworkError{Provider: "openai", Err: context.DeadlineExceeded}, "timed out"},
		{"network", &NetworkError{Provider: "ollama", Err: fmt.Errorf("connection refused")}, "connection refused"},
		{"provider", &ProviderError{Provider: "deepseek", StatusCode: 429, Message: "rate limited"}, "429"},
		{"empty", ErrEmptyResult, "no suggestion"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Describe(tt.err)
			if !strings.Contains(got, tt.contains) {
				t.Errorf("Describe(%v) = %q, want substring %q", tt.err, got, tt.contains)
			}
		})
	}
}
