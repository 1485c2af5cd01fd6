package ui

import (
	"fmt"
	"io"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/mattn/go-runewidth"
)

// CommandHighlighter applies shell syntax colors to command previews.
type CommandHighlighter struct {
	lexer chroma.Lexer
	style *chroma.Style
}

// NewCommandHighlighter creates a highlighter for shell commands.
// Returns nil if the shell lexer is unavailable; a nil highlighter
// passes text through unchanged.
func NewCommandHighlighter() *CommandHighlighter {
	lexer := lexers.Get("bash")
	if lexer == nil {
		return nil
	}
	lexer = chroma.Coalesce(lexer)

	// Monokai reads well on dark backgrounds
	style := styles.Get("monokai")
	if style == nil {
		style = styles.Fallback
	}

	return &CommandHighlighter{
		lexer: lexer,
		style: style,
	}
}

// Highlight colors a single command line. The input is returned unchanged
// on any tokenization failure.
func (h *CommandHighlighter) Highlight(command string) string {
	if h == nil {
		return command
	}

	iterator, err := h.lexer.Tokenise(nil, command)
	if err != nil {
		return command
	}

	var buf strings.Builder
	formatter := &fgFormatter{style: h.style}
	if err := formatter.Format(&buf, iterator); err != nil {
		return command
	}

	return buf.String()
}

// fgFormatter is a Chroma formatter that applies only foreground colors, so
// highlighted text composes with whatever background the terminal has.
type fgFormatter struct {
	style *chroma.Style
}

func (f *fgFormatter) Format(w io.Writer, iterator chroma.Iterator) error {
	for token := iterator(); token != chroma.EOF; token = iterator() {
		value := strings.TrimRight(token.Value, "\n")
		if value == "" {
			continue
		}

		entry := f.style.Get(token.Type)

		var codes []string

		if entry.Colour.IsSet() {
			codes = append(codes, fmt.Sprintf("38;2;%d;%d;%d", entry.Colour.Red(), entry.Colour.Green(), entry.Colour.Blue()))
		}
		if entry.Bold == chroma.Yes {
			codes = append(codes, "1")
		}
		if entry.Italic == chroma.Yes {
			codes = append(codes, "3")
		}
		if entry.Underline == chroma.Yes {
			codes = append(codes, "4")
		}

		if len(codes) > 0 {
			fmt.Fprintf(w, "\x1b[%sm%s\x1b[0m", strings.Join(codes, ";"), value)
		} else {
			fmt.Fprint(w, value)
		}
	}
	return nil
}

const tabWidth = 8

func advanceColumn(col int, r rune) int {
	switch r {
	case '\t':
		if tabWidth <= 0 {
			return col
		}
		return col + (tabWidth - (col % tabWidth))
	case '\n':
		return 0
	}

	width := runewidth.RuneWidth(r)
	if width < 0 {
		width = 0
	}
	return col + width
}

func ansiDisplayWidth(s string, startCol int) int {
	col := startCol
	inEscape := false

	for i := 0; i < len(s); {
		b := s[i]
		if b == '\x1b' {
			inEscape = true
			i++
			continue
		}
		if inEscape {
			if (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') {
				inEscape = false
			}
			i++
			continue
		}

		r, size := utf8.DecodeRuneInString(s[i:])
		if r == utf8.RuneError && size == 1 {
			col++
			i++
			continue
		}

		col = advanceColumn(col, r)
		i += size
	}

	if col < startCol {
		return 0
	}
	return col - startCol
}

// ANSI escape code pattern for stripping/measuring
var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*m`)

// StripANSI removes all ANSI escape codes from a string
func StripANSI(s string) string {
	return ansiPattern.ReplaceAllString(s, "")
}

// ANSILen returns the display width of a string, ignoring ANSI codes
func ANSILen(s string) int {
	return ansiDisplayWidth(s, 0)
}

// PadANSI pads s with spaces to the given display width, counting ANSI
// escape codes as zero width.
func PadANSI(s string, width int) string {
	gap := width - ANSILen(s)
	if gap <= 0 {
		return s
	}
	return s + strings.Repeat(" ", gap)
}
