package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/bpjson/internal/server"
)

// serveCommand runs the HTTP API until interrupted.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the export API over HTTP",
		Long: `Serve the export API over HTTP.

Routes: GET /healthz, POST /export, POST /tags, GET /catalog,
POST /validate and GET /schema/{kind}. Request bodies are blueprint YAML or
JSON descriptions; see "bpjson export --help" for the query parameters.`,
		Example: `  bpjson serve --addr :9090
  BPJSON_CACHE=redis BPJSON_REDIS_ADDR=redis:6379 bpjson serve`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg := c.settings()
			if addr == "" {
				addr = cfg.Server.Addr
			}

			reg, err := c.loadRegistry()
			if err != nil {
				return err
			}
			store, backend, err := c.newCache(ctx, noCache)
			if err != nil {
				return err
			}
			defer store.Close()

			srv, err := server.New(server.Options{
				Registry:     reg,
				Cache:        store,
				CacheTTL:     cfg.Cache.TTL,
				CacheBackend: backend,
				Logger:       c.Logger,
				Tags:         cfg.SemanticTags,
				Metadata:     cfg.Metadata,
			})
			if err != nil {
				return err
			}

			printInfo("Serving on %s", addr)
			printDetail("cache: %s", backend)
			if cfg.Path != "" {
				printDetail("config: %s", cfg.Path)
			}
			return srv.ListenAndServe(ctx, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, :8080)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable response caching")
	return cmd
}
