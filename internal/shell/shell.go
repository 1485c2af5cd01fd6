package shell

import (
	"os"
	"os/exec"
	"strings"
)

// Detect returns the user's shell name (zsh, bash, fish, ...).
// Falls back to bash when $SHELL is unset.
func Detect() string {
	shell := os.Getenv("SHELL")
	if shell == "" {
		return "bash"
	}
	// Extract shell name from path (e.g., /bin/zsh -> zsh)
	parts := strings.Split(shell, "/")
	return parts[len(parts)-1]
}

// Run executes command via `<shell> -c` with the caller's terminal attached.
// The child's exit code is returned; -1 means the command could not start.
func Run(command, shell string) (int, error) {
	cmd := exec.Command(shell, "-c", command)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			return exitErr.ExitCode(), nil
		}
		return -1, err
	}
	return 0, nil
}
