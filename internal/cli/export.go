package cli

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/bpjson/pkg/blueprint"
	"github.com/matzehuels/bpjson/pkg/cache"
	"github.com/matzehuels/bpjson/pkg/errors"
	"github.com/matzehuels/bpjson/pkg/export"
	bpio "github.com/matzehuels/bpjson/pkg/io"
	"github.com/matzehuels/bpjson/pkg/registry"
	"github.com/matzehuels/bpjson/pkg/render/nodelink"
)

// Output formats.
const (
	formatJSON = "json"
	formatDOT  = "dot"
	formatSVG  = "svg"
)

// exportOpts holds the export command flags.
type exportOpts struct {
	output      string
	format      string
	tags        bool
	metadata    bool
	graphs      []string
	kinds       []string
	pretty      bool
	compress    bool
	detailed    bool
	leftToRight bool
	noCache     bool
	jobs        int
}

// exportResult is one finished export.
type exportResult struct {
	input  string
	output string // empty when written to stdout
	graphs int
	nodes  int
	cached bool
}

// exportCommand creates the export command.
func (c *CLI) exportCommand() *cobra.Command {
	var opts exportOpts

	cmd := &cobra.Command{
		Use:   "export <blueprint.yaml>...",
		Short: "Export blueprints as JSON, DOT or SVG",
		Long: `Export one or more blueprint descriptions.

A single input is written to stdout unless -o names a file. With several
inputs, -o names a directory and each output is called after its input
(next to the input when -o is omitted). Paths ending in .zst are
zstd-compressed on both read and write.`,
		Example: `  bpjson export BP_Door.yaml
  bpjson export BP_Door.yaml --tags --metadata -o out/BP_Door.json
  bpjson export blueprints/*.yaml -o out --pretty --zstd
  bpjson export BP_Door.yaml --format svg -o BP_Door.svg`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if c.settings().SemanticTags && !cmd.Flags().Changed("tags") {
				opts.tags = true
			}
			if c.settings().Metadata && !cmd.Flags().Changed("metadata") {
				opts.metadata = true
			}
			return c.runExport(cmd.Context(), cmd.OutOrStdout(), args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file, or directory for several inputs")
	cmd.Flags().StringVarP(&opts.format, "format", "f", formatJSON, "output format: json, dot, svg")
	cmd.Flags().BoolVar(&opts.tags, "tags", false, "add semantic tags to graphs, nodes, pins and connections")
	cmd.Flags().BoolVar(&opts.metadata, "metadata", false, "add a blueprint metadata block")
	cmd.Flags().StringSliceVar(&opts.graphs, "graph", nil, "only export graphs whose name matches a glob (repeatable)")
	cmd.Flags().StringSliceVar(&opts.kinds, "kind", nil, "only export nodes whose kind matches a glob (repeatable)")
	cmd.Flags().BoolVar(&opts.pretty, "pretty", false, "indent JSON output")
	cmd.Flags().BoolVar(&opts.compress, "zstd", false, "compress batch outputs (.zst suffix)")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "list pins in DOT/SVG node labels")
	cmd.Flags().BoolVar(&opts.leftToRight, "lr", false, "lay out DOT/SVG graphs left to right")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "bypass the export cache")
	cmd.Flags().IntVarP(&opts.jobs, "jobs", "j", defaultJobs, "concurrent exports in batch mode")

	return cmd
}

func (c *CLI) runExport(ctx context.Context, w io.Writer, inputs []string, opts exportOpts) error {
	if err := errors.ValidateFormat(opts.format, formatJSON, formatDOT, formatSVG); err != nil {
		return err
	}
	if opts.output != "" {
		if err := errors.ValidateOutputPath(opts.output); err != nil {
			return err
		}
	}
	toStdout := len(inputs) == 1 && opts.output == ""

	x, err := c.newExportJob(ctx, opts)
	if err != nil {
		return err
	}
	defer x.cache.Close()

	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	var spin *Spinner
	if opts.format == formatSVG && !toStdout {
		spin = newSpinnerWithContext(ctx, "Rendering SVG...")
		spin.Start()
	}

	results := make([]exportResult, len(inputs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(opts.jobs, 1))
	for i, in := range inputs {
		g.Go(func() error {
			data, res, err := x.run(gctx, in)
			if err != nil {
				return fmt.Errorf("%s: %w", in, err)
			}
			if toStdout {
				results[i] = res
				_, err := w.Write(data)
				return err
			}
			res.output = outputPath(in, opts, len(inputs) > 1)
			if err := bpio.WriteFile(res.output, data); err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}
	err = g.Wait()
	if spin != nil {
		if err != nil {
			spin.StopWithError("SVG rendering failed")
		} else {
			spin.StopWithSuccess(fmt.Sprintf("Rendered %d SVG file(s)", len(inputs)))
		}
	}
	if err != nil {
		return err
	}

	if toStdout {
		logger.Debug("exported", "input", inputs[0], "cached", results[0].cached)
		return nil
	}
	for _, r := range results {
		printSuccess("Exported %s", r.input)
		printFile(r.output)
		printStats(r.graphs, r.nodes, r.cached)
	}
	prog.done(fmt.Sprintf("Exported %d blueprint(s)", len(inputs)))
	if opts.format == formatJSON && len(results) == 1 && !bpio.Compressed(results[0].output) {
		printNextStep("Check the document", "bpjson validate "+results[0].output)
	}
	return nil
}

// exportJob carries the shared state of one export command run.
type exportJob struct {
	reg      *registry.Registry
	regHash  string
	cache    cache.Cache
	keyer    cache.Keyer
	ttl      time.Duration
	settings export.Settings
	format   string
	dot      nodelink.Options
	logger   *log.Logger
}

func (c *CLI) newExportJob(ctx context.Context, opts exportOpts) (*exportJob, error) {
	reg, err := c.loadRegistry()
	if err != nil {
		return nil, err
	}
	regHash, err := registryHash(reg)
	if err != nil {
		return nil, err
	}
	store, _, err := c.newCache(ctx, opts.noCache)
	if err != nil {
		return nil, err
	}

	settings := export.Settings{
		Tags:         opts.tags,
		Metadata:     opts.metadata,
		GraphFilters: opts.graphs,
		KindFilters:  opts.kinds,
		Indent:       c.settings().Indent,
	}
	if opts.pretty && settings.Indent == "" {
		settings.Indent = "  "
	}

	return &exportJob{
		reg:      reg,
		regHash:  regHash,
		cache:    store,
		keyer:    cache.NewScopedKeyer(nil, "cli:"),
		ttl:      c.settings().Cache.TTL,
		settings: settings,
		format:   opts.format,
		dot:      nodelink.Options{Detailed: opts.detailed, LeftToRight: opts.leftToRight},
		logger:   loggerFromContext(ctx),
	}, nil
}

// run exports one input, serving it from the cache when possible.
func (x *exportJob) run(ctx context.Context, path string) ([]byte, exportResult, error) {
	res := exportResult{input: path}
	source, err := bpio.ReadFile(path)
	if err != nil {
		return nil, res, err
	}

	key := x.keyer.ExportKey(source, x.regHash, cache.ExportKeyOpts(x.settings))
	if x.format != formatJSON {
		key += ":" + x.format + fmt.Sprintf(":%t:%t", x.dot.Detailed, x.dot.LeftToRight)
	}
	if data, ok, err := x.cache.Get(ctx, key); err == nil && ok {
		x.logger.Debug("cache hit", "input", path)
		res.cached = true
		return data, res, nil
	} else if err != nil {
		x.logger.Warn("cache read failed", "err", err)
	}

	bp, err := blueprint.Parse(source)
	if err != nil {
		return nil, res, err
	}
	res.graphs = len(bp.AllGraphs())
	for _, g := range bp.AllGraphs() {
		res.nodes += len(g.Nodes())
	}

	var data []byte
	switch x.format {
	case formatDOT:
		data = []byte(nodelink.BlueprintDOT(bp, x.dot))
	case formatSVG:
		data, err = nodelink.RenderSVG(ctx, nodelink.BlueprintDOT(bp, x.dot))
	default:
		opts := append(x.settings.Options(), export.WithLogger(x.logger))
		data, err = export.New(x.reg, opts...).Blueprint(ctx, bp)
	}
	if err != nil {
		return nil, res, err
	}

	if err := x.cache.Set(ctx, key, data, x.ttl); err != nil {
		x.logger.Warn("cache write failed", "err", err)
	}
	return data, res, nil
}

// outputPath names the file an input is exported to.
func outputPath(input string, opts exportOpts, batch bool) string {
	if !batch {
		return opts.output
	}
	base := filepath.Base(input)
	base = strings.TrimSuffix(base, ".zst")
	base = strings.TrimSuffix(base, filepath.Ext(base)) + "." + opts.format
	if opts.compress {
		base += ".zst"
	}
	dir := opts.output
	if dir == "" {
		dir = filepath.Dir(input)
	}
	return filepath.Join(dir, base)
}
