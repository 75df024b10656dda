package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/RogelioAlcantarRangel/Cabina-de-Fotograf-a/internal/tui"
)

const banner = `  __ _           _     _                 _   _
 / _| | __ _ ___| |__ | |__   ___   ___ | |_| |__
| |_| |/ _' / __| '_ \| '_ \ / _ \ / _ \| __| '_ \
|  _| | (_| \__ \ | | | |_) | (_) | (_) | |_| | | |
|_| |_|\__,_|___/_| |_|_.__/ \___/ \___/ \__|_| |_|`

var rootCmd = &cobra.Command{
	Use:   "flashbooth",
	Short: "AI enhancements for photo booth strips",
	Long: banner + `

flashbooth generates captions, reads the vibe of a photo and creates
background images with Gemini models. Every remote call is bounded by a
per-attempt timeout and retried with backoff when the failure is transient.

Configuration is read from flashbooth.yaml in the config directory. The API
key comes from GEMINI_API_KEY (or API_KEY), optionally loaded from .env.

Exit Codes:
  0  - Success
  1  - General error
  2  - CLI usage error (invalid arguments or flags)
  3  - Panic or unexpected system error
  10 - Invalid configuration or missing API key
  11 - Remote service unavailable
  12 - Invalid input (photo count, image, prompt, aspect ratio)
  13 - Enhancement failed after all attempts
  14 - Session not found or expired`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command. Failures are reported as an error toast on
// stderr and returned for exit code mapping.
func Execute() error {
	if len(os.Args) > 1 && os.Args[1] == "--version" {
		printVersionInfo(os.Stdout, os.Stderr)
		return nil
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := rootCmd.ExecuteContext(ctx)
	if err != nil {
		tui.Show(os.Stderr, tui.Error(err.Error()))
	}
	return err
}

func init() {
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose output (retry attempts, requests)")
	rootCmd.PersistentFlags().String("config-dir", ".", "Directory containing flashbooth.yaml and .env")
}

// getVerboseFlag safely retrieves the verbose flag value
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Failed to get verbose flag: %v\n", err)
		return false
	}
	return verbose
}

func getConfigDir(cmd *cobra.Command) string {
	dir, err := cmd.Flags().GetString("config-dir")
	if err != nil || dir == "" {
		return "."
	}
	return dir
}
