package tui

import (
	"io"
	"os"

	"golang.org/x/term"
)

// Mode represents how output is presented to the user.
type Mode int

const (
	// ModeNonInteractive prints plain lines: CI, scripts, piped output.
	ModeNonInteractive Mode = iota
	// ModeInteractive renders styled toasts and spinners.
	ModeInteractive
)

func (m Mode) String() string {
	if m == ModeInteractive {
		return "interactive"
	}
	return "non-interactive"
}

// DetectMode reports ModeInteractive only when both stdin and stderr are
// terminals and none of FLASHBOOTH_NON_INTERACTIVE=1, CI or NO_COLOR is set.
// Toasts and spinners are drawn on stderr so stdout stays pipeable.
func DetectMode() Mode {
	return detectMode(os.Getenv, isTerminal(os.Stdin), isTerminal(os.Stderr))
}

func detectMode(getenv func(string) string, stdinTTY, stderrTTY bool) Mode {
	if getenv("FLASHBOOTH_NON_INTERACTIVE") == "1" || getenv("CI") != "" || getenv("NO_COLOR") != "" {
		return ModeNonInteractive
	}
	if !stdinTTY || !stderrTTY {
		return ModeNonInteractive
	}
	return ModeInteractive
}

// IsInteractive is a convenience function that returns true if running in interactive mode.
func IsInteractive() bool {
	return DetectMode() == ModeInteractive
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
