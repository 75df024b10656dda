package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// RequirePhoto validates that exactly one photo argument is provided.
// Returns a helpful error message with usage and examples if missing or too many.
func RequirePhoto(cmd *cobra.Command, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf(`missing required argument: <photo>

Usage: %s

Examples:
  %s ./strip.jpg
  %s "data:image/jpeg;base64,..."`, cmd.UseLine(), cmd.CommandPath(), cmd.CommandPath())
	}
	if len(args) > 1 {
		return fmt.Errorf("accepts 1 arg(s), received %d", len(args))
	}
	return nil
}

// RequirePrompt validates that at least one prompt word is provided.
func RequirePrompt(cmd *cobra.Command, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf(`missing required argument: <prompt>

Usage: %s

Example:
  %s "a neon-lit 80s arcade" --aspect-ratio 16:9`, cmd.UseLine(), cmd.CommandPath())
	}
	return nil
}

// RequireSessionID validates that exactly one session id argument is provided.
func RequireSessionID(cmd *cobra.Command, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf(`missing required argument: <session_id>

Usage: %s

Example:
  %s session_3f2a...`, cmd.UseLine(), cmd.CommandPath())
	}
	if len(args) > 1 {
		return fmt.Errorf("accepts 1 arg(s), received %d", len(args))
	}
	return nil
}
