package llm

import "strings"

// CleanResponse normalizes raw model output into a single command line.
// Markdown fences, a leading "$ " prompt, and surrounding whitespace are
// stripped; the first non-empty line is the command. Returns "" when no
// command remains.
func CleanResponse(s string) string {
	s = stripMarkdownFences(strings.TrimSpace(s))

	for _, line := range strings.Split(s, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		// Some models echo a shell prompt in front of the command.
		line = strings.TrimPrefix(line, "$ ")
		return strings.TrimSpace(line)
	}
	return ""
}

func stripMarkdownFences(s string) string {
	if !strings.HasPrefix(s, "```") {
		return s
	}
	// Drop opening fence line (e.g. "```bash" or "```")
	idx := strings.Index(s, "\n")
	if idx < 0 {
		// Single-line fenced output like "```ls```"
		s = strings.TrimPrefix(s, "```")
		if i := strings.LastIndex(s, "```"); i >= 0 {
			s = s[:i]
		}
		return strings.TrimSpace(s)
	}
	s = s[idx+1:]
	// Drop closing fence
	if i := strings.LastIndex(s, "```"); i >= 0 {
		s = s[:i]
	}
	return strings.TrimSpace(s)
}
