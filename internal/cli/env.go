package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/RogelioAlcantarRangel/Cabina-de-Fotograf-a/internal/config"
	"github.com/RogelioAlcantarRangel/Cabina-de-Fotograf-a/internal/genai"
	"github.com/RogelioAlcantarRangel/Cabina-de-Fotograf-a/internal/logging"
	"github.com/RogelioAlcantarRangel/Cabina-de-Fotograf-a/internal/services"
	"github.com/RogelioAlcantarRangel/Cabina-de-Fotograf-a/pkg/flashbooth"
)

// API key environment variables, in lookup order.
var apiKeyEnvVars = []string{"GEMINI_API_KEY", "API_KEY"}

// loadConfig loads .env and flashbooth.yaml from the config directory,
// applies environment overrides, and validates the result.
// A missing flashbooth.yaml is not an error: defaults are used.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	dir := getConfigDir(cmd)
	_ = godotenv.Load(filepath.Join(dir, ".env"))

	cfg, err := config.Load(dir)
	if err != nil {
		if !errors.Is(err, config.ErrConfigNotFound) {
			return nil, fmt.Errorf("failed to load %s: %w", config.ConfigFileName, err)
		}
		cfg = config.Defaults()
	}

	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// resolveAPIKey returns the first non-empty API key variable.
func resolveAPIKey() string {
	for _, name := range apiKeyEnvVars {
		if v := os.Getenv(name); v != "" {
			return v
		}
	}
	return ""
}

func newLogger(cmd *cobra.Command) *logging.ConsoleLogger {
	return logging.NewConsoleLogger(getVerboseFlag(cmd))
}

// newEnhancer wires the Gemini client, retry policy and models from cfg.
// Returns flashbooth.ErrMissingAPIKey when no key is configured.
func newEnhancer(cfg *config.Config, logger flashbooth.Logger) (*services.Enhancer, error) {
	policy, err := cfg.RetryPolicy()
	if err != nil {
		return nil, err
	}
	requestTimeout, err := cfg.RequestTimeout()
	if err != nil {
		return nil, err
	}

	opts := []genai.ClientOption{genai.WithBaseURL(cfg.API.BaseURL)}
	if requestTimeout > 0 {
		opts = append(opts, genai.WithRequestTimeout(requestTimeout))
	}

	client, err := genai.NewClient(resolveAPIKey(), opts...)
	if err != nil {
		return nil, fmt.Errorf("%w: set %s", err, apiKeyEnvVars[0])
	}

	logger.Verbose("Retry policy: %s", policy)
	return services.NewEnhancer(client,
		services.WithPolicy(policy),
		services.WithModels(services.Models{
			Caption: cfg.Models.Caption,
			Vibe:    cfg.Models.Vibe,
			Image:   cfg.Models.Image,
		}),
		services.WithLogger(logger),
	), nil
}
