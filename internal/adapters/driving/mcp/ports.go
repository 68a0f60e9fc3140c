package mcp

import (
	"github.com/custodia-labs/compass/internal/core/ports/driven"
	"github.com/custodia-labs/compass/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Ask sends queries to the resource-matching service.
	Ask driving.AskService

	// Admin exposes the record store review counters and records.
	Admin driving.AdminService

	// History lists recent queries.
	History driving.HistoryService

	// Sanitizer filters action plan markup.
	Sanitizer driven.MarkupSanitizer
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Ask == nil {
		return ErrMissingAskService
	}
	// Admin and History are optional
	return nil
}
