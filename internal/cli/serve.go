package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/gridflow/pkg/cache"
	"github.com/matzehuels/gridflow/pkg/pipeline"
	"github.com/matzehuels/gridflow/pkg/server"
)

// serveCommand creates the serve command, which runs the HTTP diagram
// service. Caching defaults to the local file cache; --redis switches
// to a shared Redis backend for multi-instance deployments.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr          string
		timeout       time.Duration
		redisAddr     string
		redisPassword string
		redisDB       int
		noCache       bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP diagram service",
		Example: `  gridflow serve
  gridflow serve --addr :9090
  gridflow serve --redis localhost:6379`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := c.serveCache(cmd, noCache, redisAddr, redisPassword, redisDB)
			if err != nil {
				return err
			}
			// On a shared Redis backend, prefix keys so several tools can
			// share one database without colliding.
			var keyer cache.Keyer
			if redisAddr != "" {
				keyer = cache.NewScopedKeyer(nil, appName)
			}
			runner := pipeline.NewRunner(store, keyer, c.Logger)
			defer runner.Close()

			srv := server.New(server.Config{
				Addr:           addr,
				RequestTimeout: timeout,
			}, runner, c.Logger)

			printInfo("Listening on %s", addr)
			ctx := withLogger(cmd.Context(), c.Logger)
			return srv.ListenAndServe(ctx)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	cmd.Flags().DurationVar(&timeout, "timeout", 30*time.Second, "per-request timeout")
	cmd.Flags().StringVar(&redisAddr, "redis", "", "Redis address for a shared cache (e.g. localhost:6379)")
	cmd.Flags().StringVar(&redisPassword, "redis-password", "", "Redis password")
	cmd.Flags().IntVar(&redisDB, "redis-db", 0, "Redis database number")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

// serveCache picks the cache backend for the server: Redis when --redis
// is given, otherwise the same file cache the generate command uses.
func (c *CLI) serveCache(cmd *cobra.Command, noCache bool, redisAddr, redisPassword string, redisDB int) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	if redisAddr != "" {
		store, err := cache.NewRedisCache(cmd.Context(), cache.RedisConfig{
			Addr:     redisAddr,
			Password: redisPassword,
			DB:       redisDB,
		})
		if err != nil {
			return nil, fmt.Errorf("connect to Redis at %s: %w", redisAddr, err)
		}
		c.Logger.Info("Using Redis cache", "addr", redisAddr, "db", redisDB)
		return store, nil
	}
	return newCache(false)
}
