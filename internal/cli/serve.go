package cli

import (
	"github.com/spf13/cobra"

	"github.com/skyfold/skyfold/internal/server"
	"github.com/skyfold/skyfold/pkg/cache"
	"github.com/skyfold/skyfold/pkg/pipeline"
)

// serveCommand creates the serve command, which exposes the pipeline over
// HTTP. With --redis the layout cache is shared across instances; otherwise
// the local file cache is used.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr      string
		redisAddr string
		redisDB   int
		noCache   bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the nesting pipeline over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := c.serveCache(cmd, noCache, redisAddr, redisDB)
			if err != nil {
				return err
			}

			runner := pipeline.NewRunner(store, nil, c.Logger)
			defer runner.Close()

			srv := server.New(runner, c.Logger, server.Config{})
			return srv.Run(cmd.Context(), server.Config{Addr: addr})
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	cmd.Flags().StringVar(&redisAddr, "redis", "", "redis address for a shared cache (e.g. localhost:6379)")
	cmd.Flags().IntVar(&redisDB, "redis-db", 0, "redis database number")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the layout cache")

	return cmd
}

func (c *CLI) serveCache(cmd *cobra.Command, noCache bool, redisAddr string, redisDB int) (cache.Cache, error) {
	if redisAddr != "" {
		store, err := cache.NewRedisCache(cmd.Context(), cache.RedisConfig{
			Addr: redisAddr,
			DB:   redisDB,
		})
		if err != nil {
			return nil, err
		}
		c.Logger.Info("using redis cache", "addr", redisAddr)
		return store, nil
	}
	return newCache(noCache)
}
