package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/bpjson/pkg/config"
)

// configCommand inspects the effective configuration.
func (c *CLI) configCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect the configuration",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration as TOML",
		Long: `Print the effective configuration as TOML: defaults, then the config file,
then BPJSON_* environment variables (including those from .env).`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := c.settings()
			text, err := cfg.TOML()
			if err != nil {
				return err
			}
			source := cfg.Path
			if source == "" {
				source = "defaults (no " + config.FileName + " found)"
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "# %s\n%s", source, text)
			return err
		},
	})

	return cmd
}
