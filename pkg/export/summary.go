package export

import (
	"sort"

	"github.com/matzehuels/bpjson/pkg/errors"
	"github.com/matzehuels/bpjson/pkg/field"
	"github.com/matzehuels/bpjson/pkg/model"
	"github.com/matzehuels/bpjson/pkg/semantic"
)

// Summary is the semantic overview of a blueprint: its own tags, and per
// graph the graph tags plus how many nodes carry each node tag.
type Summary struct {
	Blueprint string         `json:"blueprint"`
	Tags      semantic.Set   `json:"tags"`
	Graphs    []GraphSummary `json:"graphs"`
}

// GraphSummary describes one graph of a Summary.
type GraphSummary struct {
	Name     string         `json:"name"`
	Kind     string         `json:"kind"`
	Nodes    int            `json:"nodes"`
	Tags     semantic.Set   `json:"tags"`
	NodeTags map[string]int `json:"node_tags"`
}

// TagCounts lists NodeTags by descending count, then name.
func (g GraphSummary) TagCounts() []TagCount {
	out := make([]TagCount, 0, len(g.NodeTags))
	for name, n := range g.NodeTags {
		out = append(out, TagCount{Tag: name, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Tag < out[j].Tag
	})
	return out
}

// TagCount pairs a tag name with a node count.
type TagCount struct {
	Tag   string
	Count int
}

// Summarize tags c and every graph and node in it. Graph and kind filters
// apply as they do for Blueprint.
func (e *Exporter) Summarize(c model.Container) (*Summary, error) {
	if e.err != nil {
		return nil, e.err
	}
	if field.IsNil(c) {
		return nil, errors.New(errors.ErrCodeInvalidInput, "nil blueprint")
	}
	s := &Summary{Blueprint: c.Name(), Tags: blueprintTags(c), Graphs: []GraphSummary{}}

	for _, kind := range model.GraphKinds {
		for _, g := range c.Graphs(kind) {
			if field.IsNil(g) || !matchAny(e.graphGlobs, g.Name()) {
				continue
			}
			gs := GraphSummary{Name: g.Name(), Kind: string(kind), NodeTags: map[string]int{}}
			var kinds []string
			for _, n := range g.Nodes() {
				if field.IsNil(n) || !matchAny(e.kindGlobs, n.Kind()) {
					continue
				}
				gs.Nodes++
				kinds = append(kinds, n.Kind())
				for _, name := range e.nodeTags(n).Names() {
					gs.NodeTags[name]++
				}
			}
			gs.Tags = semantic.GraphTags(string(kind), kinds)
			s.Graphs = append(s.Graphs, gs)
		}
	}
	return s, nil
}
