// Package export builds the JSON documents for blueprints, graphs, nodes
// and pins, and the node catalog.
//
// A blueprint document groups graphs by kind:
//
//	{
//	  "EventGraphs":    [{"GraphName": "EventGraph", "GraphType": "EventGraph", "Nodes": [...]}],
//	  "FunctionGraphs": [],
//	  "MacroGraphs":    [],
//	  "DelegateGraphs": []
//	}
//
// Every group is present even when empty, and a graph without nodes still
// carries "Nodes": []. A node object lists its identity, position, comment
// and flags, then InputPins and OutputPins, then the attributes produced by
// package project. Attributes never replace one of the base keys.
package export

import (
	"context"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/bpjson/pkg/errors"
	"github.com/matzehuels/bpjson/pkg/field"
	"github.com/matzehuels/bpjson/pkg/jsonobj"
	"github.com/matzehuels/bpjson/pkg/model"
	"github.com/matzehuels/bpjson/pkg/observability"
	"github.com/matzehuels/bpjson/pkg/project"
	"github.com/matzehuels/bpjson/pkg/registry"
	"github.com/matzehuels/bpjson/pkg/semantic"
)

// Exporter turns model values into JSON. It holds no per-call state.
type Exporter struct {
	projector  *project.Projector
	logger     *log.Logger
	tags       bool
	metadata   bool
	graphGlobs []string
	kindGlobs  []string
	indent     string
	err        error
}

// New returns an exporter that resolves node references through reg.
func New(reg *registry.Registry, opts ...Option) *Exporter {
	e := &Exporter{
		projector: project.New(reg),
		logger:    log.NewWithOptions(io.Discard, log.Options{}),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Blueprint exports every graph of c grouped by kind.
func (e *Exporter) Blueprint(ctx context.Context, c model.Container) ([]byte, error) {
	if field.IsNil(c) {
		return nil, errors.New(errors.ErrCodeInvalidInput, "nil blueprint")
	}
	start := time.Now()
	observability.Export().OnExportStart(ctx, c.Name())

	doc, nodes, err := e.BlueprintObject(c)
	var data []byte
	if err == nil {
		data, err = e.encode(doc)
	}

	observability.Export().OnExportComplete(ctx, c.Name(), nodes, time.Since(start), err)
	if err != nil {
		return nil, err
	}
	e.logger.Debug("exported blueprint", "name", c.Name(), "nodes", nodes, "bytes", len(data))
	return data, nil
}

// BlueprintObject builds the blueprint document and reports how many nodes
// it contains.
func (e *Exporter) BlueprintObject(c model.Container) (*jsonobj.Object, int, error) {
	if e.err != nil {
		return nil, 0, e.err
	}
	if field.IsNil(c) {
		return nil, 0, errors.New(errors.ErrCodeInvalidInput, "nil blueprint")
	}
	doc := jsonobj.New()
	if e.metadata {
		e.writeMetadata(doc, c)
	}
	total := 0
	for _, kind := range model.GraphKinds {
		graphs := []any{}
		for _, g := range c.Graphs(kind) {
			if field.IsNil(g) {
				continue
			}
			if !matchAny(e.graphGlobs, g.Name()) {
				e.logger.Debug("skipping filtered graph", "graph", g.Name())
				continue
			}
			obj, n := e.graphObject(g)
			graphs = append(graphs, obj)
			total += n
		}
		doc.Set(kind.Group(), graphs)
	}
	return doc, total, nil
}

func (e *Exporter) writeMetadata(doc *jsonobj.Object, c model.Container) {
	interfaces := nonNilSlice(c.Interfaces())
	components := nonNilSlice(c.Components())
	doc.Set("BlueprintName", c.Name())
	doc.Set("ParentClass", c.ParentClass())
	doc.Set("Interfaces", interfaces)
	doc.Set("Components", components)
	doc.Set("SemanticTags", blueprintTags(c))
}

func blueprintTags(c model.Container) semantic.Set {
	var graphTypes []string
	for _, kind := range model.GraphKinds {
		for _, g := range c.Graphs(kind) {
			if !field.IsNil(g) {
				graphTypes = append(graphTypes, string(kind))
			}
		}
	}
	return semantic.BlueprintTags(semantic.Props{
		"ParentClass": c.ParentClass(),
		"Interfaces":  strings.Join(c.Interfaces(), ","),
		"Components":  strings.Join(c.Components(), ","),
	}, graphTypes)
}

// Graph exports one graph.
func (e *Exporter) Graph(g model.Graph) ([]byte, error) {
	obj, err := e.GraphObject(g)
	if err != nil {
		return nil, err
	}
	return e.encode(obj)
}

// GraphObject builds the document for one graph.
func (e *Exporter) GraphObject(g model.Graph) (*jsonobj.Object, error) {
	if e.err != nil {
		return nil, e.err
	}
	if field.IsNil(g) {
		return nil, errors.New(errors.ErrCodeInvalidInput, "nil graph")
	}
	obj, _ := e.graphObject(g)
	return obj, nil
}

func (e *Exporter) graphObject(g model.Graph) (*jsonobj.Object, int) {
	obj := jsonobj.New()
	obj.Set("GraphName", g.Name())
	obj.Set("GraphType", string(g.Kind()))

	nodes := []any{}
	var kinds []string
	for _, n := range g.Nodes() {
		if field.IsNil(n) {
			continue
		}
		if !matchAny(e.kindGlobs, n.Kind()) {
			continue
		}
		nodes = append(nodes, e.nodeObject(n))
		kinds = append(kinds, n.Kind())
	}
	obj.Set("Nodes", nodes)
	if e.tags {
		obj.Set("SemanticTags", semantic.GraphTags(string(g.Kind()), kinds))
	}
	return obj, len(nodes)
}

// Node exports one node.
func (e *Exporter) Node(n model.Node) ([]byte, error) {
	obj, err := e.NodeObject(n)
	if err != nil {
		return nil, err
	}
	return e.encode(obj)
}

// NodeObject builds the document for one node.
func (e *Exporter) NodeObject(n model.Node) (*jsonobj.Object, error) {
	if e.err != nil {
		return nil, e.err
	}
	if field.IsNil(n) {
		return nil, errors.New(errors.ErrCodeInvalidInput, "nil node")
	}
	return e.nodeObject(n), nil
}

func (e *Exporter) nodeObject(n model.Node) *jsonobj.Object {
	x, y := n.Position()
	obj := jsonobj.New()
	obj.Set("NodeName", n.Title())
	obj.Set("NodeType", n.Kind())
	obj.Set("NodeGuid", n.GUID())
	obj.Set("NodeX", x)
	obj.Set("NodeY", y)
	obj.Set("NodeComment", n.Comment())
	obj.Set("AdvancedPinDisplay", strconv.FormatBool(n.AdvancedPins()))
	obj.Set("EnabledState", strconv.FormatBool(n.Enabled()))

	inputs, outputs := []any{}, []any{}
	for _, p := range n.Pins() {
		if field.IsNil(p) {
			continue
		}
		if p.Direction() == model.Input {
			inputs = append(inputs, e.pinObject(p))
		} else {
			outputs = append(outputs, e.pinObject(p))
		}
	}
	obj.Set("InputPins", inputs)
	obj.Set("OutputPins", outputs)

	attrs := e.projector.Project(n)
	for _, k := range attrs.Keys() {
		v, _ := attrs.Get(k)
		if !obj.SetIfAbsent(k, v) {
			e.logger.Warn("attribute collides with a node key", "node", n.Title(), "key", k)
		}
	}

	if e.tags {
		obj.Set("SemanticTags", semantic.NodeTags(n.Kind(), stringProps(obj)))
	}
	return obj
}

// nodeTags tags n the way a tagged export would.
func (e *Exporter) nodeTags(n model.Node) semantic.Set {
	obj := e.nodeObject(n)
	if v, ok := obj.Get("SemanticTags"); ok {
		return v.(semantic.Set)
	}
	return semantic.NodeTags(n.Kind(), stringProps(obj))
}

// Pin exports one pin.
func (e *Exporter) Pin(p model.Pin) ([]byte, error) {
	obj, err := e.PinObject(p)
	if err != nil {
		return nil, err
	}
	return e.encode(obj)
}

// PinObject builds the document for one pin.
func (e *Exporter) PinObject(p model.Pin) (*jsonobj.Object, error) {
	if e.err != nil {
		return nil, e.err
	}
	if field.IsNil(p) {
		return nil, errors.New(errors.ErrCodeInvalidInput, "nil pin")
	}
	return e.pinObject(p), nil
}

func (e *Exporter) pinObject(p model.Pin) *jsonobj.Object {
	obj := jsonobj.New()
	obj.Set("PinName", p.Name())
	obj.Set("PinType", p.Type())
	obj.Set("Direction", p.Direction().String())

	conns := []any{}
	for _, l := range p.Links() {
		if field.IsNil(l) || field.IsNil(l.Owner()) {
			continue
		}
		c := jsonobj.New()
		c.Set("NodeName", l.Owner().Title())
		c.Set("PinName", l.Name())
		c.Set("PinType", l.Type())
		if e.tags {
			c.Set("SemanticTags", semantic.ConnectionTags(p.Type(), l.Type()))
		}
		conns = append(conns, c)
	}
	obj.Set("Connections", conns)

	if e.tags {
		obj.Set("SemanticTags", semantic.PinTags(p.Type(), semantic.Props{"Direction": p.Direction().String()}))
	}
	return obj
}

func (e *Exporter) encode(obj *jsonobj.Object) ([]byte, error) {
	data, err := jsonobj.Encode(obj, e.indent)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode document")
	}
	return data, nil
}

// stringProps collects the string-valued keys of a node object for the
// tagger.
func stringProps(obj *jsonobj.Object) semantic.Props {
	props := make(semantic.Props, obj.Len())
	for _, k := range obj.Keys() {
		if s, ok := obj.String(k); ok {
			props[k] = s
		}
	}
	return props
}
