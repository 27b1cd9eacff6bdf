package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/bpjson/pkg/model"
)

// Options configures diagram generation.
type Options struct {
	// Detailed lists every pin under the node title.
	Detailed bool
	// LeftToRight lays execution flow out horizontally, the way the
	// blueprint editor does. The default is top to bottom.
	LeftToRight bool
}

var pinColors = map[string]string{
	"exec":     "black",
	"bool":     "firebrick",
	"int":      "seagreen",
	"int64":    "seagreen",
	"real":     "yellowgreen",
	"float":    "yellowgreen",
	"double":   "yellowgreen",
	"string":   "magenta",
	"name":     "mediumpurple",
	"text":     "hotpink",
	"object":   "dodgerblue",
	"class":    "purple",
	"struct":   "navy",
	"delegate": "red",
}

// GraphDOT converts one graph to DOT source.
func GraphDOT(g model.Graph, opts Options) string {
	var buf bytes.Buffer
	writeHeader(&buf, opts)
	writeGraph(&buf, g, "", "  ", opts)
	buf.WriteString("}\n")
	return buf.String()
}

// BlueprintDOT converts every graph of c to DOT source, one cluster per
// graph, in EventGraph, FunctionGraph, MacroGraph, DelegateGraph order.
func BlueprintDOT(c model.Container, opts Options) string {
	var buf bytes.Buffer
	writeHeader(&buf, opts)
	fmt.Fprintf(&buf, "  label=%q;\n  labelloc=t;\n\n", c.Name())

	i := 0
	for _, kind := range model.GraphKinds {
		for _, g := range c.Graphs(kind) {
			prefix := "g" + strconv.Itoa(i) + ":"
			fmt.Fprintf(&buf, "  subgraph \"cluster_%d\" {\n", i)
			fmt.Fprintf(&buf, "    label=%q;\n    style=\"rounded\";\n    color=grey;\n", g.Name()+" ("+string(kind)+")")
			writeGraph(&buf, g, prefix, "    ", opts)
			buf.WriteString("  }\n")
			i++
		}
	}
	buf.WriteString("}\n")
	return buf.String()
}

func writeHeader(buf *bytes.Buffer, opts Options) {
	rankdir := "TB"
	if opts.LeftToRight {
		rankdir = "LR"
	}
	buf.WriteString("digraph G {\n")
	fmt.Fprintf(buf, "  rankdir=%s;\n", rankdir)
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.5;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")
}

func writeGraph(buf *bytes.Buffer, g model.Graph, prefix, indent string, opts Options) {
	ids := make(map[model.Node]string)
	nodes := g.Nodes()
	for i, n := range nodes {
		id := n.GUID()
		if id == "" {
			id = "n" + strconv.Itoa(i)
		}
		ids[n] = prefix + id
	}

	for _, n := range nodes {
		fmt.Fprintf(buf, "%s%q [%s];\n", indent, ids[n], strings.Join(nodeAttrs(n, opts.Detailed), ", "))
	}

	for _, n := range nodes {
		for _, p := range n.Pins() {
			if p.Direction() != model.Output {
				continue
			}
			for _, l := range p.Links() {
				to, ok := ids[l.Owner()]
				if !ok {
					continue
				}
				fmt.Fprintf(buf, "%s%q -> %q [%s];\n", indent, ids[n], to, strings.Join(edgeAttrs(p, l), ", "))
			}
		}
	}
}

func nodeAttrs(n model.Node, detailed bool) []string {
	attrs := []string{fmt.Sprintf("label=%q", nodeLabel(n, detailed))}
	if n.Comment() != "" {
		attrs = append(attrs, fmt.Sprintf("tooltip=%q", n.Comment()))
	}
	if !n.Enabled() {
		attrs = append(attrs, "style=\"rounded,filled,dashed\"", "fillcolor=lightgrey", "fontcolor=dimgrey")
	} else if strings.Contains(n.Kind(), "Event") {
		attrs = append(attrs, "fillcolor=mistyrose")
	}
	return attrs
}

func nodeLabel(n model.Node, detailed bool) string {
	label := n.Title() + "\n" + n.Kind()
	if !detailed {
		return label
	}
	var lines []string
	for _, p := range n.Pins() {
		dir := "in "
		if p.Direction() == model.Output {
			dir = "out "
		}
		lines = append(lines, dir+p.Name()+": "+p.Type())
	}
	if len(lines) == 0 {
		return label
	}
	return label + "\n\n" + strings.Join(lines, "\n")
}

func edgeAttrs(from, to model.Pin) []string {
	typ := from.Type()
	attrs := []string{fmt.Sprintf("tooltip=%q", from.Name()+" -> "+to.Name())}
	if typ == "exec" {
		return append(attrs, "penwidth=2", "color=black")
	}
	color, ok := pinColors[typ]
	if !ok {
		color = "grey40"
	}
	return append(attrs, "penwidth=1", "color="+color, "arrowsize=0.7")
}

// RenderSVG lays out DOT source and renders it to SVG.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces the point-based size Graphviz emits with a
// pixel size matching the view box, so browsers scale the drawing.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}
	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}
	tag := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`, w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(tag))
}
