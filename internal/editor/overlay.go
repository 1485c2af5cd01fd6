package editor

import "strings"

// OverlayMode selects how a suggestion is drawn relative to the input line.
type OverlayMode int

const (
	// OverlayNone renders nothing.
	OverlayNone OverlayMode = iota
	// OverlaySuffix renders the remainder of the suggestion as dim ghost
	// text continuing the line.
	OverlaySuffix
	// OverlayDivergence renders the full suggestion after a marker because
	// the line is no longer a prefix of it.
	OverlayDivergence
)

// Overlay is the decorative text derived from the current line and the
// current suggestion. It never carries any of the line itself.
type Overlay struct {
	Mode OverlayMode
	Text string
}

// ComputeOverlay decides what ghost text to show for the given line. With no
// suggestion, or a suggestion identical to the line, nothing is shown. When
// the line is a literal prefix of the suggestion the remaining suffix is
// shown inline; otherwise the whole suggestion is shown in divergence mode.
// The line itself is never modified.
func ComputeOverlay(line string, s *Suggestion) Overlay {
	if s == nil || s.Value == line {
		return Overlay{}
	}
	if strings.HasPrefix(s.Value, line) {
		return Overlay{Mode: OverlaySuffix, Text: s.Value[len(line):]}
	}
	return Overlay{Mode: OverlayDivergence, Text: s.Value}
}
