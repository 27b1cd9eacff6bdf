package export

import (
	"github.com/bmatcuk/doublestar/v4"
	"github.com/charmbracelet/log"

	"github.com/matzehuels/bpjson/pkg/errors"
)

// Option configures an Exporter.
type Option func(*Exporter)

// WithSemanticTags adds a SemanticTags array to every graph, node, pin and
// connection.
func WithSemanticTags() Option {
	return func(e *Exporter) { e.tags = true }
}

// WithMetadata adds BlueprintName, ParentClass, Interfaces, Components and
// the blueprint's SemanticTags ahead of the graph groups.
func WithMetadata() Option {
	return func(e *Exporter) { e.metadata = true }
}

// WithGraphFilter keeps only graphs whose name matches one of patterns.
// Patterns use doublestar syntax.
func WithGraphFilter(patterns ...string) Option {
	return func(e *Exporter) {
		e.graphGlobs = append(e.graphGlobs, validGlobs(e, patterns)...)
	}
}

// WithKindFilter keeps only nodes whose kind tag matches one of patterns,
// for example "K2Node_Call*".
func WithKindFilter(patterns ...string) Option {
	return func(e *Exporter) {
		e.kindGlobs = append(e.kindGlobs, validGlobs(e, patterns)...)
	}
}

// WithIndent pretty-prints documents.
func WithIndent(indent string) Option {
	return func(e *Exporter) { e.indent = indent }
}

// WithLogger sets the logger used for skipped elements.
func WithLogger(l *log.Logger) Option {
	return func(e *Exporter) {
		if l != nil {
			e.logger = l
		}
	}
}

func validGlobs(e *Exporter, patterns []string) []string {
	var out []string
	for _, p := range patterns {
		if p == "" {
			continue
		}
		if !doublestar.ValidatePattern(p) {
			if e.err == nil {
				e.err = errors.New(errors.ErrCodeInvalidInput, "invalid filter pattern %q", p)
			}
			continue
		}
		out = append(out, p)
	}
	return out
}

// matchAny reports whether s matches one of patterns. An empty pattern list
// matches everything.
func matchAny(patterns []string, s string) bool {
	if len(patterns) == 0 {
		return true
	}
	for _, p := range patterns {
		if ok, _ := doublestar.Match(p, s); ok {
			return true
		}
	}
	return false
}

// Settings is the serializable form of the export options, as read from
// flags, query parameters or config files.
type Settings struct {
	Tags         bool
	Metadata     bool
	GraphFilters []string
	KindFilters  []string
	Indent       string
}

// Options converts s to exporter options.
func (s Settings) Options() []Option {
	var opts []Option
	if s.Tags {
		opts = append(opts, WithSemanticTags())
	}
	if s.Metadata {
		opts = append(opts, WithMetadata())
	}
	if len(s.GraphFilters) > 0 {
		opts = append(opts, WithGraphFilter(s.GraphFilters...))
	}
	if len(s.KindFilters) > 0 {
		opts = append(opts, WithKindFilter(s.KindFilters...))
	}
	if s.Indent != "" {
		opts = append(opts, WithIndent(s.Indent))
	}
	return opts
}
