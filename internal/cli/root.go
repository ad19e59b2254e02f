package cli

import (
	"github.com/spf13/cobra"

	"github.com/kinview/kinview/internal/config"
	"github.com/kinview/kinview/pkg/buildinfo"
	"github.com/kinview/kinview/pkg/errors"
	"github.com/kinview/kinview/pkg/observability"
)

// SetVersion overrides the build information shown by --version. Empty
// values keep what ldflags injected.
func SetVersion(v, c, d string) {
	if v != "" {
		buildinfo.Version = v
	}
	if c != "" {
		buildinfo.Commit = c
	}
	if d != "" {
		buildinfo.Date = d
	}
}

func versionTemplate() string {
	return appName + " " + buildinfo.Get().String() + "\n"
}

// setup runs before every command: it reads the config file, applies the
// log level and attaches the logger to the command context.
func (c *CLI) setup(cmd *cobra.Command, args []string) error {
	if c.verbose {
		c.SetLogLevel(LogDebug)
		observability.NewLogHooks(c.Logger).Register()
	}

	path := c.configPath
	if path == "" {
		path = config.Find()
	}
	cfg, err := config.Load(path)
	if err != nil {
		return err
	}
	c.Config = cfg
	if path != "" {
		c.Logger.Debug("loaded config", "path", path)
	}

	cmd.SetContext(withLogger(cmd.Context(), c.Logger))
	return nil
}

func kinshipNotFound(ref, reason string) error {
	return errors.New(errors.ErrCodeNotFound, "%q: %s", ref, reason)
}
