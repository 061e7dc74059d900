// Package docbuild assembles in-progress OpenAPI documents for host
// applications. Hosts register their routed operations, run marker
// annotators over the document, and serialize the result; the serialized
// document is the only contract between document production and the
// generation pipeline.
package docbuild

import (
	"encoding/json"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/goccy/go-yaml"

	pkgerrors "github.com/agentstation/ssegen/pkg/errors"
	"github.com/agentstation/ssegen/pkg/markers"
)

// Param declares one query parameter of an operation.
type Param struct {
	Name     string
	Required bool
}

// Operation describes one routed operation to register on the document.
type Operation struct {
	Method      string
	Path        string
	OperationID string
	Summary     string
	QueryParams []Param
}

// Builder accumulates operations into an OpenAPI document.
type Builder struct {
	doc *openapi3.T
}

// New creates a builder for an empty document.
func New(title, version string) *Builder {
	return &Builder{
		doc: &openapi3.T{
			OpenAPI: "3.0.3",
			Info:    &openapi3.Info{Title: title, Version: version},
			Paths:   openapi3.NewPaths(),
		},
	}
}

// Add registers an operation. Registering the same method and path twice is
// an error.
func (b *Builder) Add(op Operation) error {
	if op.Method == "" || op.Path == "" {
		return pkgerrors.NewValidationError("operation", "method and path are required")
	}
	method := strings.ToUpper(op.Method)

	item := b.doc.Paths.Value(op.Path)
	if item == nil {
		item = &openapi3.PathItem{}
		b.doc.Paths.Set(op.Path, item)
	}
	if item.GetOperation(method) != nil {
		return pkgerrors.NewValidationError("operation", "already registered: "+markers.Key(method, op.Path))
	}

	target := &openapi3.Operation{
		OperationID: op.OperationID,
		Summary:     op.Summary,
		Responses:   openapi3.NewResponses(),
	}
	for _, p := range op.QueryParams {
		target.AddParameter(&openapi3.Parameter{
			Name:     p.Name,
			In:       openapi3.ParameterInQuery,
			Required: p.Required,
			Schema:   openapi3.NewStringSchema().NewRef(),
		})
	}
	item.SetOperation(method, target)
	return nil
}

// Annotate runs an annotator over every registered operation.
func (b *Builder) Annotate(a markers.Annotator) error {
	return markers.Apply(a, b.doc)
}

// Document exposes the in-progress document for direct mutation.
func (b *Builder) Document() *openapi3.T {
	return b.doc
}

// JSON serializes the document.
func (b *Builder) JSON() ([]byte, error) {
	data, err := json.MarshalIndent(b.doc, "", "  ")
	if err != nil {
		return nil, pkgerrors.NewParseError("json", "", err.Error(), err)
	}
	return data, nil
}

// YAML serializes the document. The document is round-tripped through its
// JSON form so extension fields keep the exact shape the generator reads.
func (b *Builder) YAML() ([]byte, error) {
	data, err := json.Marshal(b.doc)
	if err != nil {
		return nil, pkgerrors.NewParseError("json", "", err.Error(), err)
	}

	var tree map[string]any
	if err := json.Unmarshal(data, &tree); err != nil {
		return nil, pkgerrors.NewParseError("json", "", err.Error(), err)
	}

	out, err := yaml.Marshal(tree)
	if err != nil {
		return nil, pkgerrors.NewParseError("yaml", "", err.Error(), err)
	}
	return out, nil
}
