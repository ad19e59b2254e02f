package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/kinview/kinview/internal/config"
	"github.com/kinview/kinview/pkg/buildinfo"
	"github.com/kinview/kinview/pkg/cache"
	"github.com/kinview/kinview/pkg/kinship"
	"github.com/kinview/kinview/pkg/pipeline"
)

const appName = "kinview"

// Log levels accepted by New.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI carries the loaded config and persistent flags into every command.
type CLI struct {
	Logger *log.Logger
	Config config.Config

	// Persistent flags.
	configPath string
	dataDir    string
	database   string
	verbose    bool
}

// New returns a CLI logging to w at level, with the built-in config until
// the root command's pre-run loads a file.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Config: config.Default(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand builds the kinview command tree.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "Kinview lays out and explores family trees",
		Long: `Kinview draws genealogical trees around a focus person, names the
relationship between any two people and serves both over HTTP.`,
		Version:           buildinfo.Get().Version,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: c.setup,
	}

	root.SetVersionTemplate(versionTemplate())

	flags := root.PersistentFlags()
	flags.StringVar(&c.configPath, "config", "", "config file (default: $KINVIEW_CONFIG or ./kinview.toml)")
	flags.StringVarP(&c.dataDir, "data", "d", "", "dataset directory or mongodb:// URI")
	flags.StringVar(&c.database, "database", "", "MongoDB database name")
	flags.BoolVarP(&c.verbose, "verbose", "v", false, "enable verbose logging")

	root.AddCommand(
		c.layoutCommand(),
		c.renderCommand(),
		c.relateCommand(),
		c.indexCommand(),
		c.birthdaysCommand(),
		c.lineageCommand(),
		c.browseCommand(),
		c.serveCommand(),
		c.cacheCommand(),
		c.dbCommand(),
		c.configCommand(),
		c.completionCommand(),
	)
	return root
}

// dataLocation returns the dataset location after flag overrides.
func (c *CLI) dataLocation() (location, database string) {
	location, database = c.Config.Data.Dir, c.Config.Data.Database
	if c.dataDir != "" {
		location = c.dataDir
	}
	if c.database != "" {
		database = c.database
	}
	return location, database
}

// loadGraph loads the configured dataset behind a spinner.
func (c *CLI) loadGraph(ctx context.Context) (*kinship.Graph, error) {
	location, database := c.dataLocation()

	prog := newProgress(loggerFromContext(ctx))
	spinner := newSpinnerWithContext(ctx, "Loading "+location+"...")
	spinner.Start()
	g, err := pipeline.Load(ctx, location, database)
	spinner.Stop()
	if err != nil {
		return nil, err
	}
	prog.done(fmt.Sprintf("Loaded %d people from %s", g.Len(), location))
	return g, nil
}

func (c *CLI) newRunner(ctx context.Context, noCache bool) (*pipeline.Runner, error) {
	store, err := c.newCache(ctx, noCache)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(store, c.keyer(), loggerFromContext(ctx)), nil
}

// newCache opens the configured backend. A file cache whose directory
// cannot be determined degrades to no caching.
func (c *CLI) newCache(ctx context.Context, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	cfg := c.Config
	if cfg.Cache.Backend == config.BackendFile && cfg.Cache.Dir == "" {
		dir, err := cacheDir()
		if err != nil {
			return cache.NewNullCache(), nil
		}
		cfg.Cache.Dir = dir
	}
	return cfg.OpenCache(ctx)
}

// cacheDir is $XDG_CACHE_HOME/kinview, else ~/.cache/kinview.
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

// defaultOptions returns pipeline options seeded from the config file.
func (c *CLI) defaultOptions() pipeline.Options {
	return pipeline.Options{
		Style:       c.Config.Layout.Style,
		Generations: c.Config.Layout.Generations,
		Zoom:        c.Config.Layout.Zoom,
		Compact:     c.Config.Layout.Compact,
		Renderer:    pipeline.RendererTree,
		Scale:       pipeline.DefaultScale,
		Logger:      c.Logger,
	}
}

// applyMeasurer sets the configured text measurer on opts.
func (c *CLI) applyMeasurer(opts *pipeline.Options) error {
	m, err := c.Config.Measurer()
	if err != nil {
		return err
	}
	opts.Measurer = m
	return nil
}

// resolvePerson turns a command argument into a person id. An empty ref
// means the dataset's initial person.
func resolvePerson(g *kinship.Graph, ref string) (string, error) {
	if ref == "" {
		ref = g.Meta().InitialPerson
	}
	if id, ok := g.Resolve(ref); ok {
		return id, nil
	}
	if hits := g.Search(ref); len(hits) > 1 {
		names := make([]string, 0, min(len(hits), 5))
		for _, p := range hits[:min(len(hits), 5)] {
			names = append(names, p.ID+" "+p.DisplayName())
		}
		return "", kinshipNotFound(ref, "ambiguous, matches "+strings.Join(names, "; "))
	}
	return "", kinshipNotFound(ref, "no such person")
}

// parseFormats splits a -f value; empty means svg.
func parseFormats(s string) []string {
	if s == "" {
		return []string{pipeline.FormatSVG}
	}
	return strings.Split(s, ",")
}
