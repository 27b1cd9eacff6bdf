// Package schema validates exported documents against the JSON schemas
// shipped with the binary.
//
// Two schemas are embedded: [Blueprint] describes the grouped graph document
// written by export.Exporter.Blueprint, and [Catalog] describes the flat
// node palette array. Both are compiled on first use.
package schema

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/matzehuels/bpjson/pkg/errors"
)

// Kind selects a schema.
type Kind string

const (
	Blueprint Kind = "blueprint"
	Catalog   Kind = "catalog"
)

//go:embed blueprint.schema.json
var blueprintSchema string

//go:embed catalog.schema.json
var catalogSchema string

var sources = map[Kind]string{
	Blueprint: blueprintSchema,
	Catalog:   catalogSchema,
}

var (
	mu       sync.Mutex
	compiled = map[Kind]*jsonschema.Schema{}
)

// Source returns the raw schema text for kind.
func Source(kind Kind) (string, bool) {
	s, ok := sources[kind]
	return s, ok
}

func load(kind Kind) (*jsonschema.Schema, error) {
	mu.Lock()
	defer mu.Unlock()
	if s, ok := compiled[kind]; ok {
		return s, nil
	}
	src, ok := sources[kind]
	if !ok {
		return nil, errors.New(errors.ErrCodeInvalidInput, "unknown schema %q", kind)
	}
	s, err := jsonschema.CompileString(string(kind)+".schema.json", src)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "compile %s schema", kind)
	}
	compiled[kind] = s
	return s, nil
}

// Validate checks a JSON document against the schema for kind. Violations
// are reported with ErrCodeSchemaViolation and list every failing location.
func Validate(kind Kind, data []byte) error {
	s, err := load(kind)
	if err != nil {
		return err
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return errors.Wrap(errors.ErrCodeParseFailure, err, "parse %s document", kind)
	}
	if err := s.Validate(v); err != nil {
		return errors.New(errors.ErrCodeSchemaViolation, "%s document: %s", kind, describe(err))
	}
	return nil
}

// Detect guesses the schema of a document from its first token: arrays are
// catalogs, objects are blueprints.
func Detect(data []byte) Kind {
	if strings.HasPrefix(strings.TrimSpace(string(data)), "[") {
		return Catalog
	}
	return Blueprint
}

func describe(err error) string {
	ve, ok := err.(*jsonschema.ValidationError)
	if !ok {
		return err.Error()
	}
	var causes []string
	collect(ve, &causes)
	if len(causes) == 0 {
		return ve.Error()
	}
	return strings.Join(causes, "; ")
}

func collect(ve *jsonschema.ValidationError, out *[]string) {
	if len(ve.Causes) == 0 {
		loc := ve.InstanceLocation
		if loc == "" {
			loc = "/"
		}
		*out = append(*out, loc+": "+ve.Message)
		return
	}
	for _, c := range ve.Causes {
		collect(c, out)
	}
}
