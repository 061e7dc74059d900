package generate_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/ssegen/pkg/document"
	pkgerrors "github.com/agentstation/ssegen/pkg/errors"
	"github.com/agentstation/ssegen/pkg/generate"
	"github.com/agentstation/ssegen/pkg/logging"
)

func marked(eventType string) map[string]any {
	return map[string]any{
		"x-event-source": true,
		"x-event-type":   eventType,
	}
}

func roundStarted() document.Descriptor {
	return document.Descriptor{
		Path:   "/events/round-started",
		Method: "GET",
		Parameters: []document.Parameter{
			{Name: "gameId", In: "query", Required: true},
			{Name: "X-Trace-Id", In: "header"},
		},
		Extensions: marked("RoundStartedEvent"),
	}
}

func TestRenderEndpointFunction(t *testing.T) {
	g := generate.New(generate.WithLogger(&logging.Nop))

	out, err := g.Render([]document.Descriptor{roundStarted()})
	require.NoError(t, err)
	ts := string(out)

	// Derived name, normalized parameter, literal route path.
	assert.Contains(t, ts, "export function streamRoundStarted(")
	assert.Contains(t, ts, "gameid: string,")
	assert.Contains(t, ts, "/events/round-started")
	assert.Contains(t, ts, "createEventSource<RoundStartedEvent>")

	// Original declared name survives in the documentation block only.
	assert.Contains(t, ts, " *   - gameId")

	// Header parameters never reach the generated signature.
	assert.NotContains(t, ts, "x-trace-id")

	// Import lines use the default module paths.
	assert.Contains(t, ts, "import { baseUrl } from '../utils/baseUrl';")
	assert.Contains(t, ts, "import { RoundStartedEvent } from '../generated-client';")
}

func TestRenderZeroEndpoints(t *testing.T) {
	g := generate.New(generate.WithLogger(&logging.Nop))

	unmarked := document.Descriptor{Path: "/health", Method: "GET"}
	out, err := g.Render([]document.Descriptor{unmarked})
	require.NoError(t, err)
	ts := string(out)

	// Helper is part of the fixed runtime surface, imports are not.
	assert.Contains(t, ts, "export function createEventSource<T>(")
	assert.NotContains(t, ts, "import {")
	assert.NotContains(t, ts, "export function stream")
}

func TestRenderSharedHelperEmittedOnce(t *testing.T) {
	g := generate.New(generate.WithLogger(&logging.Nop))

	second := roundStarted()
	second.Path = "/events/round-ended"
	second.Extensions = marked("RoundEndedEvent")

	out, err := g.Render([]document.Descriptor{roundStarted(), second})
	require.NoError(t, err)

	assert.Equal(t, 1, strings.Count(string(out), "export function createEventSource<T>("))
	assert.Contains(t, string(out), "import { RoundEndedEvent, RoundStartedEvent } from")
}

func TestRenderMissingEventType(t *testing.T) {
	g := generate.New(generate.WithLogger(&logging.Nop))

	broken := document.Descriptor{
		Path:       "/events/round-started",
		Method:     "GET",
		Extensions: map[string]any{"x-event-source": true},
	}
	_, err := g.Render([]document.Descriptor{broken})
	assert.True(t, pkgerrors.IsMissingEventType(err))

	broken.Extensions["x-event-type"] = ""
	_, err = g.Render([]document.Descriptor{broken})
	assert.True(t, pkgerrors.IsMissingEventType(err))
}

func TestRenderDuplicateFunctionName(t *testing.T) {
	g := generate.New(generate.WithLogger(&logging.Nop))

	a := document.Descriptor{Path: "/events/start", Method: "GET", Extensions: marked("StartEvent")}
	b := document.Descriptor{Path: "/game/start", Method: "GET", Extensions: marked("GameStartEvent")}

	_, err := g.Render([]document.Descriptor{a, b})
	require.Error(t, err)
	assert.True(t, pkgerrors.IsDuplicateName(err))

	var dup *pkgerrors.DuplicateFunctionNameError
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, "streamStart", dup.Name)
	assert.Equal(t, []string{"/events/start", "/game/start"}, dup.Routes)
}

func TestRenderDeterministic(t *testing.T) {
	g := generate.New(generate.WithLogger(&logging.Nop))
	descriptors := []document.Descriptor{roundStarted()}

	first, err := g.Render(descriptors)
	require.NoError(t, err)
	second, err := g.Render(descriptors)
	require.NoError(t, err)

	assert.True(t, bytes.Equal(first, second), "repeated runs must produce byte-identical output")
}

// TestRenderImportConfig verifies that import configuration changes only the
// import lines, never the function bodies.
func TestRenderImportConfig(t *testing.T) {
	defaults := generate.New(generate.WithLogger(&logging.Nop))
	custom := generate.New(
		generate.WithLogger(&logging.Nop),
		generate.WithBaseURLImport("@app/config"),
		generate.WithClientImport("@app/api-types"),
	)

	descriptors := []document.Descriptor{roundStarted()}
	defaultOut, err := defaults.Render(descriptors)
	require.NoError(t, err)
	customOut, err := custom.Render(descriptors)
	require.NoError(t, err)

	assert.Contains(t, string(customOut), "import { baseUrl } from '@app/config';")
	assert.Contains(t, string(customOut), "import { RoundStartedEvent } from '@app/api-types';")

	stripImports := func(out []byte) []string {
		var kept []string
		for _, line := range strings.Split(string(out), "\n") {
			if strings.HasPrefix(line, "import ") {
				continue
			}
			kept = append(kept, line)
		}
		return kept
	}
	assert.Equal(t, stripImports(defaultOut), stripImports(customOut))
}

const runSpec = `{
  "openapi": "3.0.3",
  "info": {"title": "game", "version": "1.0.0"},
  "paths": {
    "/events/round-started": {
      "get": {
        "parameters": [
          {"name": "gameId", "in": "query", "required": true, "schema": {"type": "string"}}
        ],
        "x-event-source": true,
        "x-event-type": "RoundStartedEvent",
        "responses": {"200": {"description": "stream"}}
      }
    }
  }
}`

func TestRun(t *testing.T) {
	dir := t.TempDir()
	specPath := filepath.Join(dir, "api.json")
	outputPath := filepath.Join(dir, "client", "streams.ts")
	require.NoError(t, os.WriteFile(specPath, []byte(runSpec), 0o644))

	g := generate.New(
		generate.WithSpecPath(specPath),
		generate.WithOutputPath(outputPath),
		generate.WithLogger(&logging.Nop),
	)
	require.NoError(t, g.Run(context.Background()))

	out, err := os.ReadFile(outputPath)
	require.NoError(t, err)
	assert.Contains(t, string(out), "export function streamRoundStarted(")

	// No leftover temporary files after a successful run.
	entries, err := os.ReadDir(filepath.Dir(outputPath))
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestRunReplacesExistingFile(t *testing.T) {
	dir := t.TempDir()
	specPath := filepath.Join(dir, "api.json")
	outputPath := filepath.Join(dir, "streams.ts")
	require.NoError(t, os.WriteFile(specPath, []byte(runSpec), 0o644))
	require.NoError(t, os.WriteFile(outputPath, []byte("stale content"), 0o644))

	g := generate.New(
		generate.WithSpecPath(specPath),
		generate.WithOutputPath(outputPath),
		generate.WithLogger(&logging.Nop),
	)
	require.NoError(t, g.Run(context.Background()))

	out, err := os.ReadFile(outputPath)
	require.NoError(t, err)
	assert.NotContains(t, string(out), "stale content")
}

func TestRunFailureWritesNothing(t *testing.T) {
	dir := t.TempDir()
	specPath := filepath.Join(dir, "api.json")
	outputPath := filepath.Join(dir, "streams.ts")

	// Two marked operations that derive the same function name.
	spec := `{
  "openapi": "3.0.3",
  "info": {"title": "game", "version": "1.0.0"},
  "paths": {
    "/events/start": {
      "get": {"x-event-source": true, "x-event-type": "StartEvent", "responses": {"200": {"description": "s"}}}
    },
    "/game/start": {
      "get": {"x-event-source": true, "x-event-type": "GameStartEvent", "responses": {"200": {"description": "s"}}}
    }
  }
}`
	require.NoError(t, os.WriteFile(specPath, []byte(spec), 0o644))

	g := generate.New(
		generate.WithSpecPath(specPath),
		generate.WithOutputPath(outputPath),
		generate.WithLogger(&logging.Nop),
	)
	err := g.Run(context.Background())
	assert.True(t, pkgerrors.IsDuplicateName(err))

	_, statErr := os.Stat(outputPath)
	assert.True(t, os.IsNotExist(statErr), "failed run must not write an output file")
}

func TestRunUnwritableDestination(t *testing.T) {
	dir := t.TempDir()
	specPath := filepath.Join(dir, "api.json")
	require.NoError(t, os.WriteFile(specPath, []byte(runSpec), 0o644))

	// The parent of the output path is a regular file, so the destination
	// directory cannot be created.
	blocker := filepath.Join(dir, "blocked")
	require.NoError(t, os.WriteFile(blocker, []byte("file"), 0o644))

	g := generate.New(
		generate.WithSpecPath(specPath),
		generate.WithOutputPath(filepath.Join(blocker, "streams.ts")),
		generate.WithLogger(&logging.Nop),
	)
	err := g.Run(context.Background())

	var ioErr *pkgerrors.IOError
	assert.ErrorAs(t, err, &ioErr)
}
