package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/bpjson/pkg/errors"
	bpio "github.com/matzehuels/bpjson/pkg/io"
	"github.com/matzehuels/bpjson/pkg/schema"
)

// validateCommand checks exported documents against the bundled schemas.
func (c *CLI) validateCommand() *cobra.Command {
	var kind string

	cmd := &cobra.Command{
		Use:   "validate <file.json>...",
		Short: "Check exported documents against the JSON schema",
		Long: `Check blueprint or catalog documents against the bundled JSON schemas.

The schema is picked from the document shape unless --kind is given: an
array is a catalog, anything else a blueprint export.`,
		Example: `  bpjson validate out/BP_Door.json
  bpjson validate catalog.json.zst --kind catalog`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			failed := 0
			for _, path := range args {
				data, err := bpio.ReadFile(path)
				if err != nil {
					return err
				}
				k := schema.Kind(kind)
				if k == "" {
					k = schema.Detect(data)
				}
				if err := schema.Validate(k, data); err != nil {
					failed++
					printError("%s (%s)", path, k)
					printDetail("%s", errors.UserMessage(err))
					c.Logger.Debug("validation failed", "path", path, "err", err)
					continue
				}
				printSuccess("%s (%s)", path, k)
			}
			if failed > 0 {
				return errors.New(errors.ErrCodeSchemaViolation, "%d of %d documents failed validation", failed, len(args))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&kind, "kind", "", "schema to use: blueprint or catalog (default: detect)")
	return cmd
}
