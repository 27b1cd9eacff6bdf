package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/bpjson/pkg/config"
)

// setup runs before every command. It loads .env into the environment,
// reads the config file and attaches the logger to the command context so
// helpers can reach it through loggerFromContext.
func (c *CLI) setup(cmd *cobra.Command, args []string) error {
	if err := config.LoadEnv(); err != nil {
		return err
	}
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return err
	}
	c.cfg = cfg
	if cfg.Path != "" {
		c.Logger.Debug("loaded config", "path", cfg.Path)
	}

	cmd.SetContext(withLogger(cmd.Context(), c.Logger))
	return nil
}
