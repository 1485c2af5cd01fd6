package llm

import (
	"strings"
	"testing"
)

func TestLocalProviderBuildArgs(t *testing.T) {
	tests := []struct {
		name  string
		model string
		req   Request
		want  []string
	}{
		{
			"bare",
			"",
			Request{Input: "git st"},
			[]string{"--print"},
		},
		{
			"with model",
			"haiku",
			Request{Input: "git st"},
			[]string{"--print", "--model", "haiku"},
		},
		{
			"with system prompt",
			"haiku",
			Request{System: "suggest a command", Input: "git st"},
			[]string{"--print", "--model", "haiku", "--system-prompt", "suggest a command"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewLocalProvider("claude", tt.model)
			got := p.buildArgs(tt.req)
			if strings.Join(got, "\x00") != strings.Join(tt.want, "\x00") {
				t.Errorf("buildArgs() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNewLocalProviderDefaultCommand(t *testing.T) {
	p := NewLocalProvider("", "")
	if p.command != "claude" {
		t.Errorf("command = %q, want %q", p.command, "claude")
	}
}
