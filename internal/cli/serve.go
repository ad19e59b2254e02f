package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kinview/kinview/internal/config"
	"github.com/kinview/kinview/internal/server"
	"github.com/kinview/kinview/pkg/pipeline"
)

// serveCommand starts the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr     string
		redisURL string
		noCache  bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve layouts and relationships over HTTP",
		Long: `Serve layouts and relationships over HTTP.

Endpoints:
  GET /api/people/{id}
  GET /api/search?q=
  GET /api/layout?focus=&style=&to=&generations=&zoom=&format=json|svg|dot|png|pdf
  GET /api/relate?from=&to=
  GET /api/navigate?focus=&current=&dir=
  GET /healthz

Rendered artifacts are cached in the configured backend; --redis shares the
cache between instances.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if addr != "" {
				c.Config.Server.Addr = addr
			}
			if redisURL != "" {
				c.Config.Cache.Backend = config.BackendRedis
				c.Config.Cache.RedisURL = redisURL
			}

			g, err := c.loadGraph(ctx)
			if err != nil {
				return err
			}

			store, err := c.newCache(ctx, noCache)
			if err != nil {
				return fmt.Errorf("open cache: %w", err)
			}
			runner := pipeline.NewRunner(store, c.keyer(), c.Logger)
			defer runner.Close()

			defaults := c.defaultOptions()
			defaults.LinkPrefix = c.Config.Server.LinkPrefix
			if err := c.applyMeasurer(&defaults); err != nil {
				return err
			}

			srv, err := server.New(g, runner,
				server.WithDefaults(defaults),
				server.WithLogger(c.Logger),
				server.WithTimeouts(c.Config.Server.ReadTimeout, c.Config.Server.WriteTimeout),
			)
			if err != nil {
				return err
			}

			printSuccess("Serving %d people", g.Len())
			printKeyValue("Address", c.Config.Server.Addr)
			printKeyValue("Cache", c.Config.Cache.Backend)
			return srv.ListenAndServe(ctx, c.Config.Server.Addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, :8080)")
	cmd.Flags().StringVar(&redisURL, "redis", "", "cache artifacts in Redis at this URL")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}
