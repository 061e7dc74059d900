package markers

import (
	"sort"

	"github.com/getkin/kin-openapi/openapi3"

	pkgerrors "github.com/agentstation/ssegen/pkg/errors"
)

// Annotator determines whether an operation carries a marker and, if so,
// writes the extension pair into the operation's OpenAPI representation.
// Operations without a marker are left unmodified; that is not an error,
// they simply are not streaming endpoints.
//
// Implementations must be idempotent: annotating an already-annotated
// operation produces the same extension values. All implementations must
// produce byte-identical extension output for the same marker.
type Annotator interface {
	// Annotate inspects the operation identified by method and path and
	// records its marker, if declared, in op's extension map.
	Annotate(method, path string, op *openapi3.Operation) error
}

// Apply runs an annotator over every operation of an in-progress document.
// Operations are visited in deterministic path/method order.
func Apply(a Annotator, doc *openapi3.T) error {
	if doc == nil || doc.Paths == nil {
		return nil
	}

	pathMap := doc.Paths.Map()
	paths := make([]string, 0, len(pathMap))
	for p := range pathMap {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	for _, path := range paths {
		ops := pathMap[path].Operations()
		methods := make([]string, 0, len(ops))
		for m := range ops {
			methods = append(methods, m)
		}
		sort.Strings(methods)

		for _, method := range methods {
			if err := a.Annotate(method, path, ops[method]); err != nil {
				return err
			}
		}
	}
	return nil
}

// annotate writes the extension pair for m into op, creating the extension
// map if absent. The event-source key is never written without a non-empty
// event type.
func annotate(method, path string, op *openapi3.Operation, m Marker) error {
	if m.EventType == "" {
		return pkgerrors.NewMissingEventTypeError(method, path)
	}
	if op.Extensions == nil {
		op.Extensions = make(map[string]any)
	}
	op.Extensions[ExtensionEventSource] = true
	op.Extensions[ExtensionEventType] = m.EventType
	return nil
}

// RegistryAnnotator resolves markers by direct lookup in an explicit
// operation-to-marker registry.
type RegistryAnnotator struct {
	Registry *Registry
}

// NewRegistryAnnotator creates an annotator backed by the given registry.
func NewRegistryAnnotator(r *Registry) *RegistryAnnotator {
	return &RegistryAnnotator{Registry: r}
}

// Annotate implements the Annotator interface.
func (a *RegistryAnnotator) Annotate(method, path string, op *openapi3.Operation) error {
	m, ok := a.Registry.Lookup(method, path)
	if !ok {
		return nil
	}
	return annotate(method, path, op, m)
}

// EndpointMeta is one entry of a host framework's endpoint-metadata
// collection: a routed operation plus whatever marker its handler declares.
type EndpointMeta struct {
	Method string
	Path   string
	Marker *Marker
}

// CollectionAnnotator discovers markers by scanning an endpoint-metadata
// collection, for hosts that expose routing metadata as a flat list rather
// than per-operation lookups.
type CollectionAnnotator struct {
	Endpoints []EndpointMeta
}

// NewCollectionAnnotator creates an annotator over an endpoint-metadata collection.
func NewCollectionAnnotator(endpoints []EndpointMeta) *CollectionAnnotator {
	return &CollectionAnnotator{Endpoints: endpoints}
}

// Annotate implements the Annotator interface.
func (a *CollectionAnnotator) Annotate(method, path string, op *openapi3.Operation) error {
	key := Key(method, path)
	for _, ep := range a.Endpoints {
		if ep.Marker == nil || Key(ep.Method, ep.Path) != key {
			continue
		}
		return annotate(method, path, op, *ep.Marker)
	}
	return nil
}
