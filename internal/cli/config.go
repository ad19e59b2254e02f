package cli

import (
	"github.com/spf13/cobra"
)

// configCommand prints the effective configuration as TOML.
func (c *CLI) configCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration",
		Long: `Print the effective configuration as TOML.

The output merges the config file over the built-in defaults and can be saved
as kinview.toml to start a new configuration.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := c.Config
			if location, database := c.dataLocation(); location != "" {
				cfg.Data.Dir, cfg.Data.Database = location, database
			}
			return cfg.Write(cmd.OutOrStdout())
		},
	}
}
