// Package main provides the entry point for the ssegen CLI tool.
package main

import "github.com/agentstation/ssegen/cmd/ssegen/cmd"

// Version information populated by goreleaser.
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	cmd.Execute(version, commit, date)
}
