// Package markers defines the declaration that an API operation streams a
// named event type, and the annotators that record such declarations as
// OpenAPI extension fields during document production.
//
// A marker's on-the-wire form is the extension pair
//
//	x-event-source: true
//	x-event-type: <event type name>
//
// written into the operation's extension map. The generator never sees the
// marker itself, only this serialized form.
package markers

import (
	"strings"

	pkgerrors "github.com/agentstation/ssegen/pkg/errors"
)

const (
	// ExtensionEventSource flags an operation as a server-sent-event stream.
	ExtensionEventSource = "x-event-source"

	// ExtensionEventType names the event type the operation streams.
	ExtensionEventType = "x-event-type"
)

// Marker is the author-declared fact that one API operation streams a named
// event type. Immutable once declared.
type Marker struct {
	// EventType is the client-side type name of the streamed events.
	EventType string
}

// Key builds the operation key used to associate markers with operations,
// e.g. "GET /events/round-started".
func Key(method, path string) string {
	return strings.ToUpper(method) + " " + path
}

// Registry is an explicit operation-to-marker mapping built by the host
// application at document-build time. At most one marker may attach to an
// operation.
type Registry struct {
	markers map[string]Marker
}

// NewRegistry creates an empty marker registry.
func NewRegistry() *Registry {
	return &Registry{markers: make(map[string]Marker)}
}

// Declare attaches a marker to the operation identified by method and path.
// Declaring a second marker for the same operation is an error.
func (r *Registry) Declare(method, path string, m Marker) error {
	if m.EventType == "" {
		return pkgerrors.NewValidationError("eventType", "marker requires a non-empty event type")
	}
	key := Key(method, path)
	if _, exists := r.markers[key]; exists {
		return pkgerrors.ErrMarkerExists
	}
	r.markers[key] = m
	return nil
}

// Lookup returns the marker declared for the operation, if any.
func (r *Registry) Lookup(method, path string) (Marker, bool) {
	m, ok := r.markers[Key(method, path)]
	return m, ok
}

// Len returns the number of declared markers.
func (r *Registry) Len() int {
	return len(r.markers)
}
