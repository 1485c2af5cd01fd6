package editor

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/kylesnowschwartz/zsh-ai-cmd/internal/llm"
	"github.com/kylesnowschwartz/zsh-ai-cmd/internal/ui"
)

// Options configures the interactive prompt.
type Options struct {
	// ResolveProvider builds the backend on first use. Errors surface as a
	// one-line notice on trigger instead of aborting the prompt.
	ResolveProvider func() (llm.Provider, error)
	// System is the system prompt sent with every request.
	System string
	// Timeout bounds each backend call. Defaults to 20s.
	Timeout time.Duration
	// Theme overrides the active color theme.
	Theme *ui.Theme
	// History seeds the input's inline completion with past commands.
	History []string
	// Initial pre-fills the input line.
	Initial string
	// Prompt overrides the prompt glyph.
	Prompt string
}

// Result is what the prompt produced.
type Result struct {
	Line      string
	Submitted bool
}

type suggestResultMsg struct {
	id    int
	value string
	err   error
}

type editorStyles struct {
	prompt lipgloss.Style
	ghost  lipgloss.Style
	marker lipgloss.Style
	notice lipgloss.Style
	help   lipgloss.Style
	spin   lipgloss.Style
}

func newEditorStyles(theme *ui.Theme) editorStyles {
	return editorStyles{
		prompt: lipgloss.NewStyle().Foreground(theme.Primary).Bold(true),
		ghost:  lipgloss.NewStyle().Foreground(theme.Muted).Faint(true),
		marker: lipgloss.NewStyle().Foreground(theme.Muted),
		notice: lipgloss.NewStyle().Foreground(theme.Error),
		help:   lipgloss.NewStyle().Foreground(theme.Muted),
		spin:   lipgloss.NewStyle().Foreground(theme.Spinner),
	}
}

// Model is the interactive one-line prompt with ghost-text suggestions.
// Keypresses route through it so the ghost is refined or cleared in step
// with every edit; the input line itself is only ever rewritten on an
// explicit accept.
type Model struct {
	input   textinput.Model
	spinner spinner.Model
	keys    KeyMap
	styles  editorStyles
	opts    Options

	session  Session
	overlay  Overlay
	provider llm.Provider
	timeout  time.Duration

	history []string
	notice  string
	help    string
	width   int

	result    string
	submitted bool
	quitting  bool
}

// New builds the prompt model.
func New(opts Options) Model {
	theme := opts.Theme
	if theme == nil {
		theme = ui.GetTheme()
	}
	glyph := opts.Prompt
	if glyph == "" {
		glyph = "❯ "
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 20 * time.Second
	}

	st := newEditorStyles(theme)

	ti := textinput.New()
	ti.Prompt = glyph
	ti.PromptStyle = st.prompt
	ti.PlaceholderStyle = st.ghost
	ti.CompletionStyle = st.ghost
	ti.ShowSuggestions = true
	ti.SetSuggestions(opts.History)
	ti.Focus()
	if opts.Initial != "" {
		ti.SetValue(opts.Initial)
		ti.CursorEnd()
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = st.spin

	keys := DefaultKeyMap()

	return Model{
		input:   ti,
		spinner: sp,
		keys:    keys,
		styles:  st,
		opts:    opts,
		timeout: timeout,
		history: opts.History,
		help:    helpLine(keys),
		width:   80,
	}
}

func helpLine(k KeyMap) string {
	parts := []string{
		k.Trigger.Help().Key + " " + k.Trigger.Help().Desc,
		k.Accept.Help().Key + " " + k.Accept.Help().Desc,
		k.Submit.Help().Key + " " + k.Submit.Help().Desc,
		k.Quit.Help().Key + " " + k.Quit.Help().Desc,
	}
	return strings.Join(parts, " • ")
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case spinner.TickMsg:
		if !m.session.Pending() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case suggestResultMsg:
		next, cmd := m.applyResult(msg)
		next.syncOverlay()
		return next, cmd

	case tea.KeyMsg:
		next, cmd := m.routeKey(msg)
		next.syncOverlay()
		return next, cmd
	}
	return m, nil
}

// routeKey dispatches one keypress. While a request is in flight only
// cancel and re-trigger are honored; everything else is dropped so the
// line cannot drift out from under the pending snapshot.
func (m Model) routeKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	hadNotice := m.notice != ""
	m.notice = ""

	if m.session.Pending() {
		switch {
		case key.Matches(msg, m.keys.Cancel), key.Matches(msg, m.keys.Reset):
			m.session.Cancel()
			return m, nil
		case key.Matches(msg, m.keys.Trigger):
			return m.startSession()
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		if m.input.Value() == "" {
			m.quitting = true
			return m, tea.Quit
		}
		// ctrl+d deletes forward when the line has content

	case key.Matches(msg, m.keys.Reset):
		m.session.Discard()
		m.input.Reset()
		return m, nil

	case key.Matches(msg, m.keys.Submit):
		m.session.Discard()
		if strings.TrimSpace(m.input.Value()) == "" {
			return m, nil
		}
		m.result = m.input.Value()
		m.submitted = true
		m.input.Blur()
		return m, tea.Quit

	case key.Matches(msg, m.keys.Cancel):
		switch {
		case m.session.Suggestion() != nil:
			m.session.Discard()
		case hadNotice:
			// the keypress already dismissed the notice
		default:
			m.quitting = true
			return m, tea.Quit
		}
		return m, nil

	case key.Matches(msg, m.keys.Trigger):
		return m.startSession()

	case key.Matches(msg, m.keys.Accept):
		if s := m.session.Suggestion(); s != nil {
			m.input.SetValue(s.Value)
			m.input.CursorEnd()
			m.session.Discard()
			return m, nil
		}
		// no ghost: tab falls through to the input's own completion
	}

	// cursor motion means the user is navigating, not completing
	if m.session.Suggestion() != nil && m.isMotion(msg) {
		m.session.Discard()
	}
	return m.delegate(msg)
}

func (m Model) isMotion(msg tea.KeyMsg) bool {
	k := m.input.KeyMap
	return key.Matches(msg,
		k.CharacterForward, k.CharacterBackward,
		k.WordForward, k.WordBackward,
		k.LineStart, k.LineEnd,
	)
}

// delegate hands the keypress to the underlying input, then decides the
// ghost's fate: an edit keeps the suggestion only while the line is still a
// prefix of it, and any position-only change clears it.
func (m Model) delegate(msg tea.Msg) (Model, tea.Cmd) {
	oldValue := m.input.Value()
	oldPos := m.input.Position()

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)

	if s := m.session.Suggestion(); s != nil {
		switch {
		case m.input.Value() != oldValue:
			if !strings.HasPrefix(s.Value, m.input.Value()) {
				m.session.Discard()
			}
		case m.input.Position() != oldPos:
			m.session.Discard()
		}
	}
	return m, cmd
}

// startSession begins a suggestion request for the current line. A blank
// line is a no-op. The provider is resolved lazily so a missing credential
// shows up here as a notice rather than preventing the prompt from starting.
func (m Model) startSession() (Model, tea.Cmd) {
	text := m.input.Value()
	if strings.TrimSpace(text) == "" {
		return m, nil
	}

	if m.provider == nil {
		if m.opts.ResolveProvider == nil {
			m.notice = "no backend configured"
			return m, nil
		}
		p, err := m.opts.ResolveProvider()
		if err != nil {
			m.notice = llm.Describe(err)
			return m, nil
		}
		m.provider = p
	}

	ctx, cancel := context.WithTimeout(context.Background(), m.timeout)
	id := m.session.Begin(text, cancel, time.Now())

	provider := m.provider
	req := llm.Request{System: m.opts.System, Input: text}
	call := func() tea.Msg {
		value, err := provider.Suggest(ctx, req)
		cancel()
		return suggestResultMsg{id: id, value: value, err: err}
	}
	return m, tea.Batch(m.spinner.Tick, call)
}

func (m Model) applyResult(msg suggestResultMsg) (Model, tea.Cmd) {
	if !m.session.Resolve(msg.id, msg.value, msg.err) {
		return m, nil
	}
	if m.session.State() == StateFailed {
		m.notice = llm.Describe(msg.err)
	}
	return m, nil
}

// syncOverlay recomputes the ghost and reconciles the input's inline
// completion feed with it. While the ghost is a plain continuation the input
// renders it natively; in every other state the feed is emptied so no stale
// completion can surface, and with no suggestion at all the feed reverts to
// command history.
func (m *Model) syncOverlay() {
	m.overlay = ComputeOverlay(m.input.Value(), m.session.Suggestion())
	switch {
	case m.session.Pending():
		m.input.SetSuggestions(nil)
	case m.overlay.Mode == OverlaySuffix:
		m.input.SetSuggestions([]string{m.session.Suggestion().Value})
	case m.session.Suggestion() != nil:
		m.input.SetSuggestions(nil)
	default:
		m.input.SetSuggestions(m.history)
	}
}

func (m Model) View() string {
	if m.quitting || m.submitted {
		return ""
	}

	line := m.input.View()
	switch {
	case m.session.Pending():
		line += " " + m.spinner.View() + m.styles.help.Render(m.pendingHint())
	case m.overlay.Mode == OverlayDivergence:
		line += m.styles.marker.Render(" → ") + m.styles.ghost.Render(m.overlay.Text)
	case m.overlay.Mode == OverlaySuffix && m.input.Value() == "":
		// the input draws suffix ghosts itself, but not on an empty line
		line += m.styles.ghost.Render(m.overlay.Text)
	}

	var second string
	switch {
	case m.notice != "":
		second = m.styles.notice.Render(m.notice)
	case m.input.Value() == "" && m.session.Suggestion() == nil:
		second = m.styles.help.Render(m.help)
	}

	if m.width > 0 {
		line = ansi.Truncate(line, m.width, "…")
		if second != "" {
			second = ansi.Truncate(second, m.width, "…")
		}
	}

	if second == "" {
		return line
	}
	return line + "\n" + second
}

func (m Model) pendingHint() string {
	elapsed := time.Since(m.session.StartedAt())
	if elapsed >= 3*time.Second {
		return fmt.Sprintf("Thinking... %ds (esc to cancel)", int(elapsed.Seconds()))
	}
	return "Thinking... (esc to cancel)"
}

// Run starts the prompt on the controlling terminal and blocks until the
// user submits or quits. Rendering goes to the tty so stdout stays clean
// for command substitution.
func Run(opts Options) (Result, error) {
	var progOpts []tea.ProgramOption
	if tty, err := ui.OpenTTY(); err == nil {
		defer tty.Close()
		progOpts = append(progOpts, tea.WithInput(tty), tea.WithOutput(tty))
	} else {
		progOpts = append(progOpts, tea.WithOutput(os.Stderr))
	}

	p := tea.NewProgram(New(opts), progOpts...)
	final, err := p.Run()
	if err != nil {
		return Result{}, err
	}

	m, ok := final.(Model)
	if !ok {
		return Result{}, fmt.Errorf("prompt returned an unexpected model")
	}
	return Result{Line: m.result, Submitted: m.submitted}, nil
}
