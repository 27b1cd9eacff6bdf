// Package nodelink renders blueprint graphs as node-link diagrams.
//
// Each node becomes a rounded box labelled with its title and kind tag.
// Links are drawn once, from the output pin to the input pin, with
// execution links solid and bold and data links thinner and coloured by
// pin type. Disabled nodes are dashed and greyed out.
//
// [GraphDOT] draws one graph; [BlueprintDOT] draws every graph of a
// blueprint as a labelled cluster. [RenderSVG] lays the DOT source out
// with [github.com/goccy/go-graphviz], so no Graphviz installation is
// needed.
package nodelink
