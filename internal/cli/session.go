package cli

import (
	"fmt"
	"os"
	"time"

	json "github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/RogelioAlcantarRangel/Cabina-de-Fotograf-a/internal/checksum"
	"github.com/RogelioAlcantarRangel/Cabina-de-Fotograf-a/internal/session"
	"github.com/RogelioAlcantarRangel/Cabina-de-Fotograf-a/internal/tui"
	"github.com/RogelioAlcantarRangel/Cabina-de-Fotograf-a/pkg/flashbooth"
)

var sessionFlags struct {
	caption string
	yes     bool
}

var sessionCmd = &cobra.Command{
	Use:   "session",
	Short: "Save, show and delete photo strip sessions",
	Long: `Manage saved photo strip sessions.

Sessions expire after session.ttl (24h by default). These commands require
session.redis_url in flashbooth.yaml so sessions outlive the process.`,
}

var sessionSaveCmd = &cobra.Command{
	Use:               "save <photo>...",
	Short:             "Save photos and a caption as a new session",
	Args:              cobra.MinimumNArgs(1),
	ValidArgsFunction: completeImageFiles,
	RunE:              runSessionSave,
}

var sessionShowCmd = &cobra.Command{
	Use:   "show <session_id>",
	Short: "Print a saved session as JSON",
	Args:  RequireSessionID,
	RunE:  runSessionShow,
}

var sessionDeleteCmd = &cobra.Command{
	Use:   "delete <session_id>",
	Short: "Delete a saved session",
	Args:  RequireSessionID,
	RunE:  runSessionDelete,
}

func init() {
	rootCmd.AddCommand(sessionCmd)
	sessionCmd.AddCommand(sessionSaveCmd, sessionShowCmd, sessionDeleteCmd)

	sessionSaveCmd.Flags().StringVarP(&sessionFlags.caption, "caption", "c", "", "Caption stored with the strip")
	sessionDeleteCmd.Flags().BoolVarP(&sessionFlags.yes, "yes", "y", false, "Delete without asking for confirmation")
}

func openSessionStore(cmd *cobra.Command) (session.Store, func() error, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, nil, err
	}
	if cfg.Session.RedisURL == "" {
		return nil, nil, fmt.Errorf("%w: session.redis_url is required for session commands", flashbooth.ErrInvalidConfig)
	}
	return openStore(cmd.Context(), cfg)
}

func runSessionSave(cmd *cobra.Command, args []string) error {
	photos := make([]flashbooth.Photo, 0, len(args))
	for _, arg := range args {
		dataURL, err := photoDataURL(arg)
		if err != nil {
			return err
		}
		id, err := checksum.PhotoID(dataURL)
		if err != nil {
			return err
		}
		photos = append(photos, flashbooth.Photo{
			ID:        id,
			DataURL:   dataURL,
			Timestamp: time.Now().UTC(),
		})
	}

	store, closeStore, err := openSessionStore(cmd)
	if err != nil {
		return err
	}
	defer closeStore()

	sess, err := store.Save(cmd.Context(), photos, sessionFlags.caption)
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), sess.ID)
	tui.Show(cmd.ErrOrStderr(), tui.Success(fmt.Sprintf("Saved %d photo(s)", len(photos))))
	return nil
}

func runSessionShow(cmd *cobra.Command, args []string) error {
	store, closeStore, err := openSessionStore(cmd)
	if err != nil {
		return err
	}
	defer closeStore()

	sess, err := store.Load(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(sess, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return nil
}

func runSessionDelete(cmd *cobra.Command, args []string) error {
	if !sessionFlags.yes && tui.IsInteractive() {
		if !tui.Confirm(os.Stdin, cmd.ErrOrStderr(), fmt.Sprintf("Delete session %s?", args[0])) {
			tui.Show(cmd.ErrOrStderr(), tui.Info("Nothing deleted"))
			return nil
		}
	}

	store, closeStore, err := openSessionStore(cmd)
	if err != nil {
		return err
	}
	defer closeStore()

	if err := store.Delete(cmd.Context(), args[0]); err != nil {
		return err
	}
	tui.Show(cmd.ErrOrStderr(), tui.Success("Session deleted"))
	return nil
}
