package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/matzehuels/bpjson/pkg/errors"
	"github.com/matzehuels/bpjson/pkg/export"
	bpio "github.com/matzehuels/bpjson/pkg/io"
)

// catalogCommand dumps the node catalog of the active registry.
func (c *CLI) catalogCommand() *cobra.Command {
	var (
		output string
		pretty bool
		stats  bool
	)

	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Export the node catalog of the registry",
		Long: `Export every node kind and callable function of the registry as a JSON
array. The registry is the built-in one, extended by the file named in the
config or $BPJSON_REGISTRY.`,
		Example: `  bpjson catalog --pretty
  bpjson catalog -o catalog.json.zst
  bpjson catalog --stats`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := c.loadRegistry()
			if err != nil {
				return err
			}

			if stats {
				s := reg.Stats()
				printKeyValue("Classes", strconv.Itoa(s.Classes))
				printKeyValue("Structs", strconv.Itoa(s.Structs))
				printKeyValue("Functions", strconv.Itoa(s.Functions))
				printKeyValue("Variables", strconv.Itoa(s.Variables))
				printKeyValue("Node kinds", strconv.Itoa(s.NodeKinds))
				return nil
			}

			indent := c.settings().Indent
			if pretty && indent == "" {
				indent = "  "
			}
			data, err := export.New(reg, export.WithIndent(indent)).Catalog(reg)
			if err != nil {
				return err
			}
			if output == "" {
				_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
				return err
			}
			if err := errors.ValidateOutputPath(output); err != nil {
				return err
			}
			if err := bpio.WriteFile(output, data); err != nil {
				return err
			}
			printSuccess("Wrote %d catalog entries", len(export.CatalogEntries(reg)))
			printFile(output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (.zst compresses)")
	cmd.Flags().BoolVar(&pretty, "pretty", false, "indent JSON output")
	cmd.Flags().BoolVar(&stats, "stats", false, "print registry entry counts instead")

	return cmd
}
