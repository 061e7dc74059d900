package generate

import (
	"strings"

	"github.com/agentstation/ssegen/pkg/document"
	pkgerrors "github.com/agentstation/ssegen/pkg/errors"
	"github.com/agentstation/ssegen/pkg/markers"
)

// QueryParam pairs a query parameter's declared name with the normalized
// identifier used in the generated function signature. The normalized name
// matches the wire-level query-string key; the original name survives in
// the generated documentation block.
type QueryParam struct {
	Original   string
	Normalized string
}

// Endpoint is an operation confirmed to carry the event-source marker, with
// the metadata the emitter needs. Derived per run, never persisted.
type Endpoint struct {
	FunctionName string
	EventType    string
	Route        string
	Params       []QueryParam
}

// selectEndpoints filters descriptors down to marked operations and derives
// their generation metadata. A marker without an event type indicates an
// annotator bug and is fatal, as is a derived-name collision; silent
// overwrites would make regeneration lossy.
func selectEndpoints(descriptors []document.Descriptor) ([]Endpoint, error) {
	var endpoints []Endpoint
	seen := make(map[string]string) // function name -> route it came from

	for _, d := range descriptors {
		if !isEventSource(d.Extensions) {
			continue
		}

		eventType, ok := d.Extensions[markers.ExtensionEventType].(string)
		if !ok || eventType == "" {
			return nil, pkgerrors.NewMissingEventTypeError(d.Method, d.Path)
		}

		name, err := functionName(d)
		if err != nil {
			return nil, err
		}
		if prior, dup := seen[name]; dup {
			return nil, pkgerrors.NewDuplicateFunctionNameError(name, prior, d.Path)
		}
		seen[name] = d.Path

		ep := Endpoint{
			FunctionName: name,
			EventType:    eventType,
			Route:        d.Path,
		}
		// Declaration order is preserved; no query parameter is dropped.
		for _, p := range d.Parameters {
			if p.In != "query" {
				continue
			}
			ep.Params = append(ep.Params, QueryParam{
				Original:   p.Name,
				Normalized: strings.ToLower(p.Name),
			})
		}
		endpoints = append(endpoints, ep)
	}
	return endpoints, nil
}

func isEventSource(extensions map[string]any) bool {
	v, ok := extensions[markers.ExtensionEventSource].(bool)
	return ok && v
}
