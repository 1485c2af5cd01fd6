package ui

import (
	"os"

	"github.com/charmbracelet/huh"
)

// Action is what the user chose to do with a suggested command.
type Action int

const (
	ActionRun Action = iota
	ActionEdit
	ActionCopy
	ActionCancel
)

// PickAction shows the suggested command and asks how to proceed.
// Esc aborts the form; huh reports that as an error.
func PickAction(command string) (Action, error) {
	// Get tty for proper color rendering
	tty, ttyErr := OpenTTY()
	if ttyErr != nil {
		tty = os.Stderr // fallback
	} else {
		defer tty.Close()
	}

	st := NewStyles(tty)
	title := NewCommandHighlighter().Highlight(command)

	var selected Action
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[Action]().
				Title(title).
				Options(
					huh.NewOption("run it", ActionRun),
					huh.NewOption("edit first", ActionEdit),
					huh.NewOption("copy to clipboard", ActionCopy),
					huh.NewOption(st.Muted.Render("cancel"), ActionCancel),
				).
				Value(&selected),
		),
	)

	// Use /dev/tty directly to bypass shell redirections
	if ttyErr == nil {
		tty2, _ := OpenTTY()
		defer tty2.Close()
		form = form.WithInput(tty2).WithOutput(tty2)
	}

	if err := form.Run(); err != nil {
		return ActionCancel, err
	}
	return selected, nil
}

// EditCommand lets the user adjust the command before it runs.
func EditCommand(command string) (string, error) {
	edited := command

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Edit command").
				Value(&edited),
		),
	)

	if tty, err := OpenTTY(); err == nil {
		defer tty.Close()
		form = form.WithInput(tty).WithOutput(tty)
	}

	if err := form.Run(); err != nil {
		return "", err
	}
	return edited, nil
}

// ConfirmRun asks for explicit confirmation before executing a command that
// matched a guard pattern.
func ConfirmRun(command, pattern string) (bool, error) {
	tty, ttyErr := OpenTTY()
	if ttyErr != nil {
		tty = os.Stderr
	} else {
		defer tty.Close()
	}

	st := NewStyles(tty)

	var confirmed bool
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(st.Warning.Render("Command matches guard pattern: ") + pattern).
				Description(command).
				Affirmative("Run it").
				Negative("Abort").
				Value(&confirmed),
		),
	)

	if ttyErr == nil {
		tty2, _ := OpenTTY()
		defer tty2.Close()
		form = form.WithInput(tty2).WithOutput(tty2)
	}

	if err := form.Run(); err != nil {
		return false, err
	}
	return confirmed, nil
}
