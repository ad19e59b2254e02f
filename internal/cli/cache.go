package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kinview/kinview/internal/config"
	"github.com/kinview/kinview/pkg/cache"
)

// redisKeyPrefix namespaces kinview keys in a shared Redis.
const redisKeyPrefix = appName + ":"

func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the layout and artifact cache",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "clear",
			Short: "Remove all cached layouts and artifacts",
			Args:  cobra.NoArgs,
			RunE:  c.runCacheClear,
		},
		&cobra.Command{
			Use:   "path",
			Short: "Print the cache directory, or the Redis URL",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				if c.Config.Cache.Backend == config.BackendRedis {
					fmt.Fprintln(cmd.OutOrStdout(), c.Config.Cache.RedisURL)
					return nil
				}
				dir, err := c.fileCacheDir()
				if err != nil {
					return fmt.Errorf("cache dir: %w", err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), dir)
				return nil
			},
		},
	)
	return cmd
}

func (c *CLI) runCacheClear(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	var (
		n     int
		where string
	)
	switch c.Config.Cache.Backend {
	case config.BackendNone:
		printInfo("Caching is disabled")
		return nil
	case config.BackendRedis:
		rc, err := cache.NewRedisCache(ctx, c.Config.Cache.RedisURL)
		if err != nil {
			return err
		}
		defer rc.Close()
		if n, err = rc.ClearPrefix(ctx, redisKeyPrefix); err != nil {
			return err
		}
		where = "Keys: " + redisKeyPrefix + "*"
	default:
		dir, err := c.fileCacheDir()
		if err != nil {
			return fmt.Errorf("cache dir: %w", err)
		}
		fc, err := cache.NewFileCache(dir)
		if err != nil {
			return err
		}
		if n, err = fc.Clear(ctx); err != nil {
			return err
		}
		where = "Directory: " + dir
	}
	if n == 0 {
		printInfo("Cache is empty")
		return nil
	}
	printSuccess("Cleared %d cached entries", n)
	printDetail("%s", where)
	return nil
}

func (c *CLI) fileCacheDir() (string, error) {
	if c.Config.Cache.Dir != "" {
		return c.Config.Cache.Dir, nil
	}
	return cacheDir()
}

// keyer scopes keys when the cache is shared through Redis.
func (c *CLI) keyer() cache.Keyer {
	if c.Config.Cache.Backend == config.BackendRedis {
		return cache.NewScopedKeyer(nil, redisKeyPrefix)
	}
	return nil
}
