package prompt

import (
	"fmt"
	"strings"
)

// Context carries the environment strings included with every suggestion
// request. All fields are opaque to the backends; they are only interpolated
// into prompt text.
type Context struct {
	Shell   string
	OS      string
	Arch    string
	WorkDir string
	Listing []string
}

// System returns the system prompt for a single-command suggestion.
func System(pc Context) string {
	shell := pc.Shell
	if shell == "" {
		shell = "bash"
	}

	base := fmt.Sprintf(`You are a command line expert. The user is typing a single line at a %s prompt. Reply with exactly one shell command.

Context:
- Operating System: %s
- Architecture: %s
- Shell: %s
- Current Directory: %s`, shell, pc.OS, pc.Arch, shell, pc.WorkDir)

	if len(pc.Listing) > 0 {
		base += fmt.Sprintf(`
- Directory Contents: %s`, strings.Join(pc.Listing, ", "))
	}

	base += `

Rules:
1. If the input already looks like the start of a command, complete that command rather than substituting a different one.
2. If the input describes a task in plain language, reply with one command that performs it.
3. Prefer common tools that are likely to be installed.
4. Output only the command itself: no markdown fences, no explanation, no leading $ or prompt characters.`

	return base
}

// User returns the user prompt. The captured line is sent verbatim so that
// literal prefixes survive for completion.
func User(input string) string {
	return input
}

// ExplainSystem returns the system prompt for explaining a command.
func ExplainSystem(shell string) string {
	if shell == "" {
		shell = "bash"
	}
	return fmt.Sprintf(`You are a command line expert. Explain what the given %s command does in two or three short sentences. Mention anything destructive or surprising. Plain markdown, no headings.`, shell)
}

// ExplainUser formats the command to be explained.
func ExplainUser(command string) string {
	return fmt.Sprintf("Explain this command: %s", command)
}
