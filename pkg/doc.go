// Package pkg provides the libraries behind bpjson, which exports Blueprint
// graphs as JSON for search indexes and code assistants.
//
// # Overview
//
// The pkg directory is organized into three areas:
//
//  1. Model - [model] interfaces, the YAML-backed [blueprint] reader and the
//     [registry] of engine types the exporter resolves references against.
//  2. Export - [project] attributes, [semantic] tags, the [export] documents
//     built on [jsonobj] ordered objects, and the reflective [object]
//     serializer over [field] accessors.
//  3. Infrastructure - [cache], [config], [io], [schema], [render],
//     [httputil], [observability], [errors] and [buildinfo].
//
// # Data Flow
//
//	blueprint YAML
//	     ↓
//	[blueprint] (model.Container)
//	     ↓
//	[project] + [semantic] (per node attributes and tags)
//	     ↓
//	[export] (ordered JSON via [jsonobj])
//	     ↓
//	[io] (atomic, optionally zstd-compressed files)
//
// The reverse direction, JSON into object fields, is [object.Serializer.Deserialize].
//
// # Quick Start
//
//	bp, err := blueprint.Load("BP_Door.yaml")
//	if err != nil {
//	    return err
//	}
//	e := export.New(registry.Default(), export.WithSemanticTags())
//	data, err := e.Blueprint(ctx, bp)
//	if err != nil {
//	    return err
//	}
//	return io.WriteFile("out/BP_Door.json.zst", data)
//
// # Testing
//
//	go test ./pkg/...           # All tests
//	go test ./pkg/export/...    # Specific package
//	go test -run Example ./...  # Examples only
//
// [model]: https://pkg.go.dev/github.com/matzehuels/bpjson/pkg/model
// [blueprint]: https://pkg.go.dev/github.com/matzehuels/bpjson/pkg/blueprint
// [registry]: https://pkg.go.dev/github.com/matzehuels/bpjson/pkg/registry
// [project]: https://pkg.go.dev/github.com/matzehuels/bpjson/pkg/project
// [semantic]: https://pkg.go.dev/github.com/matzehuels/bpjson/pkg/semantic
// [export]: https://pkg.go.dev/github.com/matzehuels/bpjson/pkg/export
// [object]: https://pkg.go.dev/github.com/matzehuels/bpjson/pkg/object
// [object.Serializer.Deserialize]: https://pkg.go.dev/github.com/matzehuels/bpjson/pkg/object#Serializer.Deserialize
// [field]: https://pkg.go.dev/github.com/matzehuels/bpjson/pkg/field
// [jsonobj]: https://pkg.go.dev/github.com/matzehuels/bpjson/pkg/jsonobj
// [cache]: https://pkg.go.dev/github.com/matzehuels/bpjson/pkg/cache
// [config]: https://pkg.go.dev/github.com/matzehuels/bpjson/pkg/config
// [io]: https://pkg.go.dev/github.com/matzehuels/bpjson/pkg/io
// [schema]: https://pkg.go.dev/github.com/matzehuels/bpjson/pkg/schema
// [render]: https://pkg.go.dev/github.com/matzehuels/bpjson/pkg/render
// [httputil]: https://pkg.go.dev/github.com/matzehuels/bpjson/pkg/httputil
// [observability]: https://pkg.go.dev/github.com/matzehuels/bpjson/pkg/observability
// [errors]: https://pkg.go.dev/github.com/matzehuels/bpjson/pkg/errors
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/bpjson/pkg/buildinfo
package pkg
