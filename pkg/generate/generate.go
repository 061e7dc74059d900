// Package generate implements the document-to-code pipeline: parse an
// annotated OpenAPI document, select the operations carrying the
// event-source marker, emit one TypeScript streaming-client function per
// endpoint plus a shared typed helper, and persist the result as a single
// file.
//
// A run is synchronous and all-or-nothing: any parse, selection, or
// rendering failure aborts before anything is written, and identical input
// and configuration always produce byte-identical output.
package generate

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/agentstation/ssegen/pkg/document"
	"github.com/agentstation/ssegen/pkg/logging"
)

// Default module paths for the two imports of the generated file.
const (
	DefaultBaseURLImport = "../utils/baseUrl"
	DefaultClientImport  = "../generated-client"
)

// Generator runs the generation pipeline. One invocation parses one
// document and writes one output file; invocations share no state.
type Generator struct {
	specPath      string
	outputPath    string
	baseURLImport string
	clientImport  string
	logger        *zerolog.Logger
}

// Option is a functional option for configuring the Generator
type Option func(*Generator)

// WithSpecPath sets the source OpenAPI document location
func WithSpecPath(path string) Option {
	return func(g *Generator) {
		g.specPath = path
	}
}

// WithOutputPath sets the destination file for the generated client
func WithOutputPath(path string) Option {
	return func(g *Generator) {
		g.outputPath = path
	}
}

// WithBaseURLImport sets the module path the baseUrl symbol is imported from
func WithBaseURLImport(module string) Option {
	return func(g *Generator) {
		if module != "" {
			g.baseURLImport = module
		}
	}
}

// WithClientImport sets the module path event types are imported from
func WithClientImport(module string) Option {
	return func(g *Generator) {
		if module != "" {
			g.clientImport = module
		}
	}
}

// WithLogger sets the logger used to report run progress
func WithLogger(logger *zerolog.Logger) Option {
	return func(g *Generator) {
		if logger != nil {
			g.logger = logger
		}
	}
}

// New creates a new generator
func New(opts ...Option) *Generator {
	g := &Generator{
		baseURLImport: DefaultBaseURLImport,
		clientImport:  DefaultClientImport,
		logger:        logging.Default(),
	}

	for _, opt := range opts {
		opt(g)
	}

	return g
}

// Run executes the full pipeline against the configured spec and output
// paths. On failure nothing is written and the error names the offending
// file or route.
func (g *Generator) Run(ctx context.Context) error {
	descriptors, err := document.ParseFile(g.specPath)
	if err != nil {
		return err
	}
	g.logger.Debug().
		Str("spec", g.specPath).
		Int("operations", len(descriptors)).
		Msg("Parsed OpenAPI document")

	endpoints, err := selectEndpoints(descriptors)
	if err != nil {
		return err
	}

	artifact, err := g.render(endpoints)
	if err != nil {
		return err
	}

	if err := ctx.Err(); err != nil {
		return err
	}
	if err := writeFile(g.outputPath, artifact); err != nil {
		return err
	}

	g.logger.Info().
		Int("endpoints", len(endpoints)).
		Str("output", g.outputPath).
		Msg("Generated streaming client")
	return nil
}

// Render produces the artifact for already-parsed descriptors without
// touching the filesystem. Run uses the same path; Render exists for hosts
// that manage their own I/O.
func (g *Generator) Render(descriptors []document.Descriptor) ([]byte, error) {
	endpoints, err := selectEndpoints(descriptors)
	if err != nil {
		return nil, err
	}
	return g.render(endpoints)
}
