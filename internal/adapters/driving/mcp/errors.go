// Package mcp provides an MCP (Model Context Protocol) server adapter for compass.
// It lets AI assistants match community resources to a described situation.
package mcp

import "errors"

// ErrMissingAskService is returned when the ask service is not provided.
var ErrMissingAskService = errors.New("mcp: ask service is required")
