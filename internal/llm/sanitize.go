package llm

import (
	"context"
)

// SanitizeProvider wraps a provider, normalizing its output and classifying
// its errors. Every provider returned by NewProvider is wrapped so callers
// always see a clean single-line command or a classified error.
type SanitizeProvider struct {
	inner Provider
}

// WrapWithSanitize wraps a provider with output normalization.
func WrapWithSanitize(p Provider) Provider {
	return &SanitizeProvider{inner: p}
}

func (s *SanitizeProvider) Name() string {
	return s.inner.Name()
}

func (s *SanitizeProvider) Suggest(ctx context.Context, req Request) (string, error) {
	raw, err := s.inner.Suggest(ctx, req)
	if err != nil {
		return "", Classify(s.inner.Name(), err)
	}

	command := CleanResponse(raw)
	if command == "" {
		return "", ErrEmptyResult
	}
	return command, nil
}
