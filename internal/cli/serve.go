package cli

import (
	"context"
	"fmt"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/lessonlab/vizboard/internal/config"
	"github.com/lessonlab/vizboard/internal/server"
	"github.com/lessonlab/vizboard/pkg/cache"
	"github.com/lessonlab/vizboard/pkg/pipeline"
	"github.com/lessonlab/vizboard/pkg/store"
)

// serveCommand creates the serve command for running the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the visualization processing API",
		Long: `Run the visualization processing API.

Exposes scene processing over HTTP. With mongo.uri configured, processed
visualizations can be persisted and fetched by id; otherwise an in-memory
store is used. With cache.redis_addr configured, results cache in Redis
instead of on disk.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides config)")
	return cmd
}

func (c *CLI) runServe(ctx context.Context, addr string) error {
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	if addr == "" {
		addr = cfg.Server.Addr
	}

	cch, err := serveCache(ctx, cfg, c)
	if err != nil {
		return fmt.Errorf("initialize cache: %w", err)
	}
	runner := pipeline.NewRunner(cch, nil, c.Logger)
	defer runner.Close()

	st, err := serveStore(ctx, cfg, c)
	if err != nil {
		return fmt.Errorf("initialize store: %w", err)
	}
	defer st.Close(context.Background())

	opts := pipeline.Options{Canvas: cfg.ToCanvas(), Logger: c.Logger}
	srv, err := server.New(addr, runner, st, opts, c.Logger)
	if err != nil {
		return err
	}

	printInfo("Serving on %s", addr)
	if err := srv.ListenAndServe(ctx); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func serveCache(ctx context.Context, cfg config.Config, c *CLI) (cache.Cache, error) {
	if cfg.Cache.RedisAddr != "" {
		c.Logger.Info("using redis cache", "addr", cfg.Cache.RedisAddr)
		return cache.NewRedisCache(ctx, cfg.Cache.RedisAddr)
	}
	return cache.NewFileCache(cfg.Cache.Dir)
}

func serveStore(ctx context.Context, cfg config.Config, c *CLI) (store.Store, error) {
	if cfg.Mongo.URI != "" {
		c.Logger.Info("using mongo store", "database", cfg.Mongo.Database)
		return store.NewMongoStore(ctx, cfg.Mongo.URI, cfg.Mongo.Database)
	}
	c.Logger.Warn("no mongo.uri configured, visualizations are stored in memory only")
	return store.NewMemoryStore(), nil
}
