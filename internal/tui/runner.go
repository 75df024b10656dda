package tui

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Confirm asks a yes/no question on w and reads the answer from r. Only an
// explicit "y" or "yes" confirms; the default is no.
func Confirm(r io.Reader, w io.Writer, message string) bool {
	fmt.Fprintf(w, "%s [y/N]: ", message)

	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && line == "" {
		return false
	}

	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	default:
		return false
	}
}
