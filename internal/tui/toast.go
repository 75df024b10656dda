package tui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

// ToastKind selects the color and label of a notification.
type ToastKind int

const (
	ToastInfo ToastKind = iota
	ToastSuccess
	ToastWarning
	ToastError
)

func (k ToastKind) String() string {
	switch k {
	case ToastSuccess:
		return "success"
	case ToastWarning:
		return "warning"
	case ToastError:
		return "error"
	default:
		return "info"
	}
}

func (k ToastKind) color() lipgloss.Color {
	switch k {
	case ToastSuccess:
		return ColorSuccess
	case ToastWarning:
		return ColorWarning
	case ToastError:
		return ColorError
	default:
		return ColorPrimary
	}
}

func (k ToastKind) symbol() string {
	switch k {
	case ToastSuccess:
		return SymbolCheck
	case ToastWarning:
		return SymbolWarning
	case ToastError:
		return SymbolCross
	default:
		return SymbolInfo
	}
}

// Toast is a short-lived notification for the user.
type Toast struct {
	Kind    ToastKind
	Message string
}

// Error, Success, Info and Warning build toasts of the corresponding kind.
func Error(message string) Toast   { return Toast{Kind: ToastError, Message: message} }
func Success(message string) Toast { return Toast{Kind: ToastSuccess, Message: message} }
func Info(message string) Toast    { return Toast{Kind: ToastInfo, Message: message} }
func Warning(message string) Toast { return Toast{Kind: ToastWarning, Message: message} }

// Render returns the toast as a bordered, colored box in interactive mode and
// as a single "[KIND] message" line otherwise.
func (t Toast) Render(mode Mode) string {
	if mode != ModeInteractive {
		return fmt.Sprintf("[%s] %s", labels[t.Kind], t.Message)
	}
	color := t.Kind.color()
	symbol := lipgloss.NewStyle().Foreground(color).Bold(true).Render(t.Kind.symbol())
	return toastStyle.BorderForeground(color).Render(symbol + " " + t.Message)
}

var labels = map[ToastKind]string{
	ToastInfo:    "INFO",
	ToastSuccess: "SUCCESS",
	ToastWarning: "WARNING",
	ToastError:   "ERROR",
}

// Show writes t to w, styled according to DetectMode.
func Show(w io.Writer, t Toast) {
	fmt.Fprintln(w, t.Render(DetectMode()))
}
