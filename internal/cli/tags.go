package cli

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/bpjson/pkg/blueprint"
	"github.com/matzehuels/bpjson/pkg/export"
)

// tagsCommand prints the semantic summary of a blueprint.
func (c *CLI) tagsCommand() *cobra.Command {
	var (
		graphs []string
		kinds  []string
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "tags <blueprint.yaml>",
		Short: "Summarize the semantic tags of a blueprint",
		Long: `Summarize the semantic tags of a blueprint: the blueprint's own tags, and for
each graph its tags and how many nodes carry each node tag.`,
		Example: `  bpjson tags BP_Door.yaml
  bpjson tags BP_Door.yaml --graph 'Open*' --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := c.loadRegistry()
			if err != nil {
				return err
			}
			bp, err := blueprint.Load(args[0])
			if err != nil {
				return err
			}
			settings := export.Settings{GraphFilters: graphs, KindFilters: kinds}
			summary, err := export.New(reg, settings.Options()...).Summarize(bp)
			if err != nil {
				return err
			}

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(summary)
			}
			printSummary(summary)
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&graphs, "graph", nil, "only include graphs whose name matches a glob")
	cmd.Flags().StringSliceVar(&kinds, "kind", nil, "only count nodes whose kind matches a glob")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the summary as JSON")

	return cmd
}

func printSummary(s *export.Summary) {
	fmt.Fprintln(stdout, StyleTitle.Render(s.Blueprint))
	printKeyValue("Tags", joinOrDash(s.Tags.Names()))
	if len(s.Graphs) == 0 {
		printWarning("No graphs matched")
		return
	}

	for _, g := range s.Graphs {
		fmt.Fprintln(stdout)
		fmt.Fprintln(stdout, StyleTitle.Render(g.Name)+" "+StyleDim.Render("("+g.Kind+")"))
		printKeyValue("Nodes", StyleNumber.Render(strconv.Itoa(g.Nodes)))
		printKeyValue("Tags", joinOrDash(g.Tags.Names()))

		counts := g.TagCounts()
		if len(counts) == 0 {
			continue
		}
		rows := make([][]string, 0, len(counts))
		for _, tc := range counts {
			rows = append(rows, []string{tc.Tag, strconv.Itoa(tc.Count)})
		}
		printTable([]string{"Node tag", "Nodes"}, rows)
	}
}

func joinOrDash(names []string) string {
	if len(names) == 0 {
		return "-"
	}
	return strings.Join(names, ", ")
}
