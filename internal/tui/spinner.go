package tui

import (
	"context"
	"os"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

// RunWithSpinner runs op while showing a spinner labelled message on stderr.
// In non-interactive mode op is called directly. Pressing the cancel key
// cancels op's context and returns context.Canceled without waiting for op.
func RunWithSpinner[T any](ctx context.Context, message string, op func(ctx context.Context) (T, error)) (T, error) {
	if !IsInteractive() {
		return op(ctx)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	model := newSpinnerModel(ctx, cancel, message, op)
	final, err := tea.NewProgram(model, tea.WithOutput(os.Stderr), tea.WithContext(ctx)).Run()
	if err != nil {
		var zero T
		if ctx.Err() != nil {
			return zero, ctx.Err()
		}
		return zero, err
	}

	m := final.(spinnerModel[T])
	return m.value, m.err
}

type opDoneMsg[T any] struct {
	value T
	err   error
}

// spinnerModel is the bubbletea model displayed while an operation runs.
type spinnerModel[T any] struct {
	spinner spinner.Model
	message string
	keys    KeyMap
	run     tea.Cmd
	cancel  context.CancelFunc

	done  bool
	value T
	err   error
}

func newSpinnerModel[T any](ctx context.Context, cancel context.CancelFunc, message string, op func(context.Context) (T, error)) spinnerModel[T] {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = SpinnerStyle

	return spinnerModel[T]{
		spinner: s,
		message: message,
		keys:    DefaultKeyMap(),
		cancel:  cancel,
		run: func() tea.Msg {
			value, err := op(ctx)
			return opDoneMsg[T]{value: value, err: err}
		},
	}
}

// Init implements tea.Model.
func (m spinnerModel[T]) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.run)
}

// Update implements tea.Model.
func (m spinnerModel[T]) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case opDoneMsg[T]:
		m.done = true
		m.value = msg.value
		m.err = msg.err
		return m, tea.Quit
	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Cancel) {
			m.cancel()
			m.done = true
			m.err = context.Canceled
			return m, tea.Quit
		}
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

// View implements tea.Model.
func (m spinnerModel[T]) View() string {
	if m.done {
		return ""
	}
	return m.spinner.View() + " " + MessageStyle.Render(m.message) + "  " + HelpStyle.Render(m.keys.HelpText()) + "\n"
}
