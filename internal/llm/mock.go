package llm

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// MockProvider returns canned suggestions without any network access. It is
// used for UI testing and demos. The input steers the behavior:
//
//	"sleep N <text>"  wait N seconds before answering (cancellable)
//	"fail"            return a provider error
//	"fail-auth"       return an auth error
//	"fail-net"        return a network error
//	"empty"           return no usable output
//
// Anything else echoes a deterministic suggestion derived from the input.
type MockProvider struct{}

func NewMockProvider() *MockProvider {
	return &MockProvider{}
}

func (p *MockProvider) Name() string {
	return "mock"
}

// sleepRegex matches a "sleep N" prefix (e.g. "sleep 5 list files").
var sleepRegex = regexp.MustCompile(`^sleep\s+(\d+)\s*`)

func (p *MockProvider) Suggest(ctx context.Context, req Request) (string, error) {
	input := strings.TrimSpace(req.Input)

	if match := sleepRegex.FindStringSubmatch(input); match != nil {
		if secs, err := strconv.Atoi(match[1]); err == nil && secs > 0 && secs <= 60 {
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(time.Duration(secs) * time.Second):
			}
			input = strings.TrimSpace(input[len(match[0]):])
		}
	}

	switch input {
	case "fail":
		return "", &ProviderError{Provider: "mock", StatusCode: 500, Message: "synthetic failure"}
	case "fail-auth":
		return "", &AuthError{Provider: "mock", Hint: "synthetic auth failure"}
	case "fail-net":
		return "", &NetworkError{Provider: "mock", Err: fmt.Errorf("synthetic connection refused")}
	case "empty", "":
		return "", nil
	}

	return mockSuggestion(input), nil
}

// mockSuggestion maps a handful of common inputs to realistic completions so
// demos look sensible, and falls back to echoing the input.
func mockSuggestion(input string) string {
	known := map[string]string{
		"git st":     "git status",
		"git co":     "git checkout",
		"list files": "ls -la",
		"disk usage": "du -sh *",
	}
	if cmd, ok := known[input]; ok {
		return cmd
	}
	for prefix, cmd := range known {
		if strings.HasPrefix(prefix, input) {
			return cmd
		}
	}
	return input + " --help"
}
