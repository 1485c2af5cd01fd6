package ui

import (
	"fmt"
	"os"

	"golang.org/x/term"
)

// OpenTTY opens /dev/tty for direct terminal access (bypasses redirections)
func OpenTTY() (*os.File, error) {
	return os.OpenFile("/dev/tty", os.O_RDWR, 0)
}

// IsTerminal reports whether the given file is attached to a terminal.
func IsTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// TerminalWidth returns the terminal width or a default
func TerminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return 80 // default
	}
	return width
}

// ShowCommand displays the command that will be executed (to stderr, keeping stdout clean)
func ShowCommand(styles *Styles, cmd string) {
	fmt.Fprintln(os.Stderr, styles.Command.Render(cmd))
}
