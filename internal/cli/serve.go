package cli

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/starpath/internal/server"
	spio "github.com/matzehuels/starpath/pkg/io"
)

func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		mapPath string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the route planner over HTTP",
		Long: `Serve the route planner over HTTP.

Cache and history backends come from the config file ([cache] and [store]),
so several instances can share a Redis cache and a MongoDB history.`,
		Example: `  starpath serve --addr :8080 --map solar.json
  STARPATH_REDIS_URL=redis://localhost:6379/0 STARPATH_CACHE_BACKEND=redis starpath serve`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), addr, mapPath)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, :8080)")
	cmd.Flags().StringVar(&mapPath, "map", "", "default star map for requests without one")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, addr, mapPath string) error {
	logger := loggerFromContext(ctx)

	cfg, err := c.config()
	if err != nil {
		return err
	}
	if level := cfg.LogLevel(); level < logger.GetLevel() {
		logger.SetLevel(level)
	}
	if addr != "" {
		cfg.Server.Addr = addr
	}
	if mapPath != "" {
		cfg.Server.Map = mapPath
	}

	runner, err := c.newRunner(ctx, false)
	if err != nil {
		return err
	}
	defer runner.Close()

	deps := server.Dependencies{Runner: runner}
	if cfg.Server.Map != "" {
		doc, err := spio.ImportFile(cfg.Server.Map)
		if err != nil {
			return err
		}
		deps.DefaultMap = &doc
		logger.Info("default map loaded", "path", cfg.Server.Map, "planets", len(doc.Nodes), "routes", len(doc.Edges))
	}

	logger.Debug("backends",
		"cache", cfg.Cache.Backend,
		"store", cfg.Store.Backend,
		"namespace", cfg.Cache.Namespace,
		"shutdown_timeout", cfg.Server.ShutdownTimeout.Round(time.Second))

	srv := server.New(logger, cfg.Server, server.NewRouter(logger, deps))
	return srv.Run(ctx)
}
