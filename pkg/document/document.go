// Package document loads serialized OpenAPI documents into the flat
// operation model the generator consumes. Loading tolerates unknown fields
// and extensions; only structurally broken input or a missing top-level
// paths map is an error.
package document

import (
	"os"
	"sort"

	"github.com/getkin/kin-openapi/openapi3"

	pkgerrors "github.com/agentstation/ssegen/pkg/errors"
)

// Parameter describes a single declared parameter of an operation.
// Locations other than "query" are retained but not specially processed.
type Parameter struct {
	Name     string
	In       string // "query", "path", "header", "cookie"
	Required bool
}

// Descriptor is the parsed, read-only representation of one API operation.
type Descriptor struct {
	Path        string
	Method      string
	OperationID string
	Parameters  []Parameter
	Extensions  map[string]any
}

// Parse loads an OpenAPI document from raw JSON or YAML bytes and returns
// one descriptor per operation, ordered by path then method so that a given
// document always yields the same sequence.
func Parse(data []byte) ([]Descriptor, error) {
	return parse(data, "")
}

// ParseFile reads and parses the OpenAPI document at path.
func ParseFile(path string) ([]Descriptor, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, pkgerrors.NewIOError("read", path, err)
	}
	return parse(data, path)
}

func parse(data []byte, file string) ([]Descriptor, error) {
	loader := openapi3.NewLoader()

	doc, err := loader.LoadFromData(data)
	if err != nil {
		return nil, pkgerrors.NewParseError("openapi", file, err.Error(), err)
	}
	if doc.Paths == nil {
		return nil, pkgerrors.NewParseError("openapi", file, "document has no paths map", nil)
	}

	pathMap := doc.Paths.Map()
	paths := make([]string, 0, len(pathMap))
	for p := range pathMap {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	var descriptors []Descriptor
	for _, path := range paths {
		ops := pathMap[path].Operations()
		methods := make([]string, 0, len(ops))
		for m := range ops {
			methods = append(methods, m)
		}
		sort.Strings(methods)

		for _, method := range methods {
			op := ops[method]
			if op == nil {
				continue
			}
			descriptors = append(descriptors, describe(path, method, op))
		}
	}
	return descriptors, nil
}

func describe(path, method string, op *openapi3.Operation) Descriptor {
	d := Descriptor{
		Path:        path,
		Method:      method,
		OperationID: op.OperationID,
		Extensions:  op.Extensions,
	}

	for _, ref := range op.Parameters {
		if ref.Value == nil {
			continue
		}
		d.Parameters = append(d.Parameters, Parameter{
			Name:     ref.Value.Name,
			In:       ref.Value.In,
			Required: ref.Value.Required,
		})
	}
	return d
}
