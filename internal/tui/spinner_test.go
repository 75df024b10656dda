package tui

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunWithSpinner_NonInteractiveCallsDirectly(t *testing.T) {
	t.Setenv("FLASHBOOTH_NON_INTERACTIVE", "1")

	calls := 0
	value, err := RunWithSpinner(context.Background(), "Generating caption", func(ctx context.Context) (string, error) {
		calls++
		return "done", nil
	})

	require.NoError(t, err)
	assert.Equal(t, "done", value)
	assert.Equal(t, 1, calls)
}

func TestRunWithSpinner_NonInteractivePropagatesError(t *testing.T) {
	t.Setenv("FLASHBOOTH_NON_INTERACTIVE", "1")
	want := errors.New("boom")

	_, err := RunWithSpinner(context.Background(), "Working", func(ctx context.Context) (int, error) {
		return 0, want
	})

	assert.Same(t, want, err)
}

func TestSpinnerModel_DoneQuits(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	m := newSpinnerModel(ctx, cancel, "Working", func(context.Context) (string, error) { return "", nil })

	next, cmd := m.Update(opDoneMsg[string]{value: "result"})
	final := next.(spinnerModel[string])

	assert.True(t, final.done)
	assert.Equal(t, "result", final.value)
	assert.Empty(t, final.View())
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestSpinnerModel_CancelKey(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	m := newSpinnerModel(ctx, cancel, "Working", func(context.Context) (string, error) { return "", nil })

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	final := next.(spinnerModel[string])

	assert.True(t, errors.Is(final.err, context.Canceled))
	assert.Error(t, ctx.Err(), "operation context is cancelled")
	require.NotNil(t, cmd)
}

func TestSpinnerModel_ViewShowsMessage(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	m := newSpinnerModel(ctx, cancel, "Analyzing vibe", func(context.Context) (string, error) { return "", nil })

	assert.Contains(t, m.View(), "Analyzing vibe")
	assert.Contains(t, m.View(), "ctrl+c cancel")
}

func TestSpinnerModel_RunInvokesOperation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	m := newSpinnerModel(ctx, cancel, "Working", func(context.Context) (int, error) { return 42, nil })

	msg := m.run()
	done, ok := msg.(opDoneMsg[int])
	require.True(t, ok)
	assert.Equal(t, 42, done.value)
}
