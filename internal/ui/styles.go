package ui

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/kylesnowschwartz/zsh-ai-cmd/internal/config"
)

// Theme defines the color palette for the UI
type Theme struct {
	Primary lipgloss.Color // main accent color (commands, prompt glyph)
	Success lipgloss.Color // success states, accepted commands
	Error   lipgloss.Color // error notices
	Warning lipgloss.Color // warnings, guard matches
	Muted   lipgloss.Color // dimmed text, ghost suggestions
	Text    lipgloss.Color // primary text
	Spinner lipgloss.Color // loading spinner
}

// DefaultTheme returns the default color theme (gruvbox)
func DefaultTheme() *Theme {
	return &Theme{
		Primary: lipgloss.Color("#b8bb26"), // gruvbox green
		Success: lipgloss.Color("#b8bb26"), // gruvbox green
		Error:   lipgloss.Color("#fb4934"), // gruvbox red
		Warning: lipgloss.Color("#fabd2f"), // gruvbox yellow
		Muted:   lipgloss.Color("#928374"), // gruvbox gray
		Text:    lipgloss.Color("#ebdbb2"), // gruvbox foreground
		Spinner: lipgloss.Color("#d3869b"), // gruvbox purple
	}
}

// ThemeFromConfig creates a theme with config overrides applied
func ThemeFromConfig(cfg config.ThemeConfig) *Theme {
	theme := DefaultTheme()

	if cfg.Primary != "" {
		theme.Primary = lipgloss.Color(cfg.Primary)
	}
	if cfg.Success != "" {
		theme.Success = lipgloss.Color(cfg.Success)
	}
	if cfg.Error != "" {
		theme.Error = lipgloss.Color(cfg.Error)
	}
	if cfg.Warning != "" {
		theme.Warning = lipgloss.Color(cfg.Warning)
	}
	if cfg.Muted != "" {
		theme.Muted = lipgloss.Color(cfg.Muted)
	}
	if cfg.Text != "" {
		theme.Text = lipgloss.Color(cfg.Text)
	}
	if cfg.Spinner != "" {
		theme.Spinner = lipgloss.Color(cfg.Spinner)
	}

	return theme
}

// currentTheme is the active theme instance
var currentTheme = DefaultTheme()

// GetTheme returns the current active theme
func GetTheme() *Theme {
	return currentTheme
}

// SetTheme sets the current active theme
func SetTheme(t *Theme) {
	currentTheme = t
}

// InitTheme initializes the theme from config
func InitTheme(cfg config.ThemeConfig) {
	SetTheme(ThemeFromConfig(cfg))
}

// Styles returns styled text helpers bound to a renderer
type Styles struct {
	renderer *lipgloss.Renderer
	theme    *Theme

	Title   lipgloss.Style
	Success lipgloss.Style
	Error   lipgloss.Style
	Warning lipgloss.Style
	Muted   lipgloss.Style
	Bold    lipgloss.Style

	Command lipgloss.Style
	Ghost   lipgloss.Style
	Spinner lipgloss.Style
	Footer  lipgloss.Style
}

// NewStyles creates a new Styles instance for the given output
func NewStyles(output *os.File) *Styles {
	return NewStylesWithTheme(output, currentTheme)
}

// NewStylesWithTheme creates styles with a specific theme
func NewStylesWithTheme(output *os.File, theme *Theme) *Styles {
	r := lipgloss.NewRenderer(output)

	return &Styles{
		renderer: r,
		theme:    theme,

		Title: r.NewStyle().
			Bold(true).
			Foreground(theme.Text),

		Success: r.NewStyle().
			Foreground(theme.Success),

		Error: r.NewStyle().
			Foreground(theme.Error),

		Warning: r.NewStyle().
			Foreground(theme.Warning),

		Muted: r.NewStyle().
			Foreground(theme.Muted),

		Bold: r.NewStyle().
			Bold(true),

		Command: r.NewStyle().
			Bold(true).
			Foreground(theme.Primary),

		Ghost: r.NewStyle().
			Foreground(theme.Muted).
			Faint(true),

		Spinner: r.NewStyle().
			Foreground(theme.Spinner),

		Footer: r.NewStyle().
			Foreground(theme.Muted),
	}
}

// DefaultStyles returns styles for stderr (default TUI output)
func DefaultStyles() *Styles {
	return NewStyles(os.Stderr)
}

// Theme returns the theme used by these styles
func (s *Styles) Theme() *Theme {
	return s.theme
}

// Truncate shortens a string to maxLen with ellipsis
func Truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}
