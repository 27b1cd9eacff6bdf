// Package render draws blueprint graphs.
//
// The [nodelink] subpackage converts graphs to Graphviz DOT and renders
// them to SVG in-process:
//
//	dot := nodelink.BlueprintDOT(bp, nodelink.Options{})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// [nodelink]: github.com/matzehuels/bpjson/pkg/render/nodelink
package render
