package ui

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/kylesnowschwartz/zsh-ai-cmd/internal/llm"
)

// resultMsg carries the backend response into the spinner program.
type resultMsg struct {
	value string
	err   error
}

// spinnerModel renders a loading spinner while a suggestion request is in
// flight. Esc cancels the request.
type spinnerModel struct {
	spinner   spinner.Model
	cancel    context.CancelFunc
	cancelled bool
	result    *resultMsg
	dim       func(string) string
}

func newSpinnerModel(cancel context.CancelFunc, tty *os.File) spinnerModel {
	st := NewStyles(tty)
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = st.Spinner
	return spinnerModel{
		spinner: s,
		cancel:  cancel,
		dim: func(s string) string {
			return st.Muted.Render(s)
		},
	}
}

func (m spinnerModel) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m spinnerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.Type == tea.KeyEscape || msg.Type == tea.KeyCtrlC {
			m.cancelled = true
			m.cancel()
			return m, tea.Quit
		}
	case resultMsg:
		m.result = &msg
		return m, tea.Quit
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m spinnerModel) View() string {
	if m.result != nil || m.cancelled {
		return ""
	}
	return m.spinner.View() + " Thinking... " + m.dim("(esc to cancel)")
}

// RunWithSpinner executes one suggestion request, showing a spinner on the
// controlling terminal while it runs. Without a tty, or in debug mode where
// the spinner would garble log output, the request runs directly.
// A user cancel is reported as context.Canceled.
func RunWithSpinner(ctx context.Context, provider llm.Provider, req llm.Request, debug bool) (string, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	tty, ttyErr := OpenTTY()
	if ttyErr != nil || debug {
		if ttyErr == nil {
			tty.Close()
		}
		return provider.Suggest(ctx, req)
	}
	defer tty.Close()

	model := newSpinnerModel(cancel, tty)
	p := tea.NewProgram(model, tea.WithInput(tty), tea.WithOutput(tty))

	go func() {
		value, err := provider.Suggest(ctx, req)
		p.Send(resultMsg{value: value, err: err})
	}()

	finalModel, err := p.Run()
	if err != nil {
		return "", err
	}

	m, ok := finalModel.(spinnerModel)
	if !ok {
		return "", fmt.Errorf("spinner returned an unexpected model")
	}
	if m.cancelled {
		return "", context.Canceled
	}
	if m.result == nil {
		return "", fmt.Errorf("no result received")
	}
	return m.result.value, m.result.err
}
