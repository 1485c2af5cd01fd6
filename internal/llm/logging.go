package llm

import (
	"context"
	"time"
)

// LoggingProvider wraps a provider and records every request and result to a
// DebugLogger. A nil logger disables recording without changing behavior.
type LoggingProvider struct {
	inner  Provider
	logger *DebugLogger
}

// WithLogging wraps a provider with request/result logging.
func WithLogging(p Provider, logger *DebugLogger) Provider {
	if logger == nil {
		return p
	}
	return &LoggingProvider{inner: p, logger: logger}
}

func (l *LoggingProvider) Name() string {
	return l.inner.Name()
}

func (l *LoggingProvider) Suggest(ctx context.Context, req Request) (string, error) {
	l.logger.LogRequest(l.inner.Name(), req)

	start := time.Now()
	command, err := l.inner.Suggest(ctx, req)
	l.logger.LogResult(l.inner.Name(), command, err, time.Since(start))

	return command, err
}
