package shell

import (
	"fmt"

	"github.com/gobwas/glob"
)

// Guard matches commands against destructive-command glob patterns before
// they are executed.
type Guard struct {
	patterns []guardPattern
}

type guardPattern struct {
	raw      string
	compiled glob.Glob
}

// NewGuard compiles the given glob patterns. An invalid pattern is an error,
// not a skip, so a config typo cannot silently disable a guard.
func NewGuard(patterns []string) (*Guard, error) {
	compiled := make([]guardPattern, 0, len(patterns))
	for _, p := range patterns {
		g, err := glob.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("invalid guard pattern %q: %w", p, err)
		}
		compiled = append(compiled, guardPattern{raw: p, compiled: g})
	}
	return &Guard{patterns: compiled}, nil
}

// Match returns the first pattern the command matches, or "" when none do.
func (g *Guard) Match(command string) string {
	for _, p := range g.patterns {
		if p.compiled.Match(command) {
			return p.raw
		}
	}
	return ""
}
