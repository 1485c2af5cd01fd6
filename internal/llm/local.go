package llm

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// LocalProvider implements Provider by shelling out to a local assistant CLI
// (the claude binary by default). The CLI's own authentication is used, so no
// API key is needed here.
type LocalProvider struct {
	command string
	model   string
}

func NewLocalProvider(command, model string) *LocalProvider {
	if command == "" {
		command = "claude"
	}
	return &LocalProvider{
		command: command,
		model:   model,
	}
}

func (p *LocalProvider) Name() string {
	if p.model == "" {
		return fmt.Sprintf("local (%s)", p.command)
	}
	return fmt.Sprintf("local (%s, %s)", p.command, p.model)
}

// buildArgs assembles the CLI arguments for a one-shot invocation.
func (p *LocalProvider) buildArgs(req Request) []string {
	args := []string{"--print"}
	if p.model != "" {
		args = append(args, "--model", p.model)
	}
	if req.System != "" {
		args = append(args, "--system-prompt", req.System)
	}
	return args
}

func (p *LocalProvider) Suggest(ctx context.Context, req Request) (string, error) {
	cmd := exec.CommandContext(ctx, p.command, p.buildArgs(req)...)

	// The prompt goes via stdin rather than argv so long inputs can't hit
	// argument length limits.
	cmd.Stdin = strings.NewReader(req.Input)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		if errors.Is(err, exec.ErrNotFound) {
			return "", &ProviderError{
				Provider: "local",
				Message:  fmt.Sprintf("%s not found in PATH", p.command),
			}
		}
		detail := strings.TrimSpace(stderr.String())
		if detail == "" {
			detail = err.Error()
		}
		return "", &ProviderError{Provider: "local", Message: detail}
	}

	return stdout.String(), nil
}
