package llm

import (
	"context"
)

// Request is a single command suggestion request.
type Request struct {
	System string // System prompt describing the environment and output rules
	Input  string // Raw text from the editor buffer
}

// Provider is the interface for suggestion backends.
// Suggest returns the raw model output for the request; the sanitize
// wrapper applied by NewProvider normalizes it into a single command line.
type Provider interface {
	Name() string
	Suggest(ctx context.Context, req Request) (string, error)
}
