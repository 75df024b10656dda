package cli

import (
	"context"
	"errors"
	"log/slog"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/RogelioAlcantarRangel/Cabina-de-Fotograf-a/internal/config"
	"github.com/RogelioAlcantarRangel/Cabina-de-Fotograf-a/internal/server"
	"github.com/RogelioAlcantarRangel/Cabina-de-Fotograf-a/internal/session"
	"github.com/RogelioAlcantarRangel/Cabina-de-Fotograf-a/pkg/flashbooth"
)

var serveFlags struct {
	addr string
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the enhancement and session HTTP API",
	Long: `Start the HTTP API used by the booth front end.

Routes:
  POST   /api/ai/caption     {"numPhotos": 5}
  POST   /api/ai/vibe        {"photo": "data:image/jpeg;base64,..."}
  POST   /api/ai/image       {"prompt": "...", "aspectRatio": "16:9"}
  POST   /api/sessions       {"photos": [...], "caption": "..."}
  GET    /api/sessions/:id
  DELETE /api/sessions/:id
  GET    /healthz
  GET    /metrics

Sessions are kept in Redis when session.redis_url is set, in memory otherwise.
Without an API key the AI routes answer 500 and session routes keep working.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&serveFlags.addr, "addr", "", "Listen address (default: server.addr)")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	logger := newLogger(cmd)
	slog.SetDefault(logger.Slog())

	addr := cfg.Server.Addr
	if serveFlags.addr != "" {
		addr = serveFlags.addr
	}

	var enhancer server.Enhancer
	e, err := newEnhancer(cfg, logger)
	switch {
	case err == nil:
		enhancer = e
	case errors.Is(err, flashbooth.ErrMissingAPIKey):
		logger.Error("No API key configured: AI routes are disabled")
	default:
		return err
	}

	g, ctx := errgroup.WithContext(cmd.Context())

	store, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}

	srv := server.New(enhancer, store, logger)
	g.Go(func() error {
		return srv.Run(ctx, addr)
	})
	g.Go(func() error {
		<-ctx.Done()
		return closeStore()
	})

	return g.Wait()
}

// openStore returns a Redis store when one is configured and an in-memory
// store otherwise.
func openStore(ctx context.Context, cfg *config.Config) (session.Store, func() error, error) {
	ttl, err := cfg.SessionTTL()
	if err != nil {
		return nil, nil, err
	}
	if cfg.Session.RedisURL == "" {
		return session.NewMemoryStore(ttl), func() error { return nil }, nil
	}
	store, closeFn, err := session.NewRedisStore(ctx, cfg.Session.RedisURL, ttl)
	if err != nil {
		return nil, nil, err
	}
	return store, closeFn, nil
}
