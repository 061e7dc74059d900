package generate

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/agentstation/ssegen/pkg/document"
	pkgerrors "github.com/agentstation/ssegen/pkg/errors"
)

// titler capitalizes the first letter of a word without lowering the rest,
// so "roundStarted" becomes "RoundStarted" rather than "Roundstarted".
var titler = cases.Title(language.English, cases.NoLower)

const functionPrefix = "stream"

// functionName derives the generated function identifier for one operation.
// An explicit operationId wins over the path, giving authors an escape hatch
// when path-derived names collide; otherwise the last meaningful path
// segment is used.
func functionName(d document.Descriptor) (string, error) {
	source := d.OperationID
	if source == "" {
		source = lastSegment(d.Path)
	}

	name := functionPrefix + camel(source)
	if name == functionPrefix {
		return "", pkgerrors.NewValidationError("route", "no function name can be derived from "+d.Method+" "+d.Path)
	}
	return name, nil
}

// camel converts hyphen/underscore/slash/dot separated words to CamelCase.
func camel(s string) string {
	parts := strings.FieldsFunc(s, func(r rune) bool {
		switch r {
		case '-', '_', '/', '.', ' ':
			return true
		}
		return false
	})

	var b strings.Builder
	for _, part := range parts {
		b.WriteString(titler.String(part))
	}
	return b.String()
}

// lastSegment returns the last concrete segment of a route path, skipping
// trailing slashes and templated segments like {id}.
func lastSegment(path string) string {
	segments := strings.Split(path, "/")
	for i := len(segments) - 1; i >= 0; i-- {
		s := segments[i]
		if s == "" || (strings.HasPrefix(s, "{") && strings.HasSuffix(s, "}")) {
			continue
		}
		return s
	}
	return ""
}
