// Package mcp exposes hedwig monitoring runs to MCP (Model Context Protocol)
// clients. Tools run a project scan and list the configured projects;
// resources publish the keyword table and project definitions.
package mcp

import "errors"

var (
	// ErrMissingMonitorService is returned when the monitor service is not provided.
	ErrMissingMonitorService = errors.New("mcp: monitor service is required")

	// ErrMissingProjects is returned when no project catalog is provided.
	ErrMissingProjects = errors.New("mcp: project catalog is required")

	// ErrMissingKeywords is returned when no keyword table is provided.
	ErrMissingKeywords = errors.New("mcp: keyword table is required")
)
