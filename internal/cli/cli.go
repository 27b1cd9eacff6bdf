// Package cli implements the bpjson command-line interface.
package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/bpjson/pkg/buildinfo"
	"github.com/matzehuels/bpjson/pkg/cache"
	"github.com/matzehuels/bpjson/pkg/config"
	"github.com/matzehuels/bpjson/pkg/registry"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "bpjson"

	// defaultJobs bounds concurrent exports in batch mode.
	defaultJobs = 4
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	configPath string
	cfg        *config.Config
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "bpjson exports Blueprint graphs as JSON",
		Long: `bpjson turns Blueprint graph descriptions into the JSON documents consumed by
search indexes and code assistants: per-graph node lists with pins, links and
kind-specific attributes, optional semantic tags, and a node catalog.`,
		Version:           buildinfo.Version,
		SilenceUsage:      true,
		PersistentPreRunE: c.setup,
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default $BPJSON_CONFIG or ./"+config.FileName+")")

	root.AddCommand(c.exportCommand())
	root.AddCommand(c.nodeCommand())
	root.AddCommand(c.pinCommand())
	root.AddCommand(c.catalogCommand())
	root.AddCommand(c.tagsCommand())
	root.AddCommand(c.propsCommand())
	root.AddCommand(c.validateCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.configCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Shared Resources
// =============================================================================

// settings returns the loaded config, or the defaults before setup ran.
func (c *CLI) settings() *config.Config {
	if c.cfg == nil {
		return config.Default()
	}
	return c.cfg
}

// loadRegistry layers the configured registry file over the built-in one.
func (c *CLI) loadRegistry() (*registry.Registry, error) {
	path := c.settings().Registry
	if path == "" {
		return registry.Default(), nil
	}
	c.Logger.Debug("loading registry", "path", path)
	return registry.LoadWithDefaults(path)
}

// registryHash identifies reg in cache keys.
func registryHash(reg *registry.Registry) (string, error) {
	data, err := yaml.Marshal(reg)
	if err != nil {
		return "", err
	}
	return cache.Hash(data), nil
}

// newCache opens the configured cache backend and returns it with the
// backend name. An unreachable Redis falls back to no caching.
func (c *CLI) newCache(ctx context.Context, noCache bool) (cache.Cache, string, error) {
	cfg := c.settings().Cache
	if noCache || cfg.Backend == config.CacheNone {
		return cache.NewNullCache(), config.CacheNone, nil
	}

	if cfg.Backend == config.CacheRedis {
		rc, err := cache.NewRedisCache(ctx, cache.RedisConfig{URL: cfg.RedisURL, Addr: cfg.RedisAddr})
		if err != nil {
			c.Logger.Warn("redis unavailable, caching disabled", "err", err)
			return cache.NewNullCache(), config.CacheNone, nil
		}
		return cache.Instrument(rc, config.CacheRedis), config.CacheRedis, nil
	}

	dir, err := c.cachePath()
	if err != nil {
		return cache.NewNullCache(), config.CacheNone, nil
	}
	fc, err := cache.NewFileCache(dir)
	if err != nil {
		return nil, "", err
	}
	return cache.Instrument(fc, config.CacheFile), config.CacheFile, nil
}

// =============================================================================
// Paths
// =============================================================================

// cachePath returns the configured cache directory or the XDG default.
func (c *CLI) cachePath() (string, error) {
	if dir := c.settings().Cache.Dir; dir != "" {
		return dir, nil
	}
	return cacheDir()
}

// cacheDir returns the cache directory using XDG standard (~/.cache/bpjson/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}
