package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/RogelioAlcantarRangel/Cabina-de-Fotograf-a/internal/config"
	"github.com/RogelioAlcantarRangel/Cabina-de-Fotograf-a/internal/tui"
)

var configInitFlags struct {
	force bool
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect or create flashbooth.yaml",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	Long: `Print the configuration after defaults and environment overrides
(FLASHBOOTH_PHOTO_COUNT, FLASHBOOTH_COUNTDOWN_SECONDS, FLASHBOOTH_JPEG_QUALITY)
have been applied.`,
	Args: cobra.NoArgs,
	RunE: runConfigShow,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a flashbooth.yaml with default settings",
	Args:  cobra.NoArgs,
	RunE:  runConfigInit,
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd, configInitCmd)
	configInitCmd.Flags().BoolVar(&configInitFlags.force, "force", false, "Overwrite an existing flashbooth.yaml")
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	fmt.Fprint(cmd.OutOrStdout(), string(data))

	if resolveAPIKey() == "" {
		tui.Show(cmd.ErrOrStderr(), tui.Warning("No API key set: export GEMINI_API_KEY or add it to .env"))
	}
	return nil
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	path, err := config.Write(getConfigDir(cmd), config.Defaults(), configInitFlags.force)
	if err != nil {
		return err
	}
	tui.Show(cmd.ErrOrStderr(), tui.Success("Created "+path))
	return nil
}
