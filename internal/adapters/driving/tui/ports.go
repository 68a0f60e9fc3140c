// Package tui provides an interactive terminal user interface for compass.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/custodia-labs/compass/internal/core/ports/driven"
	"github.com/custodia-labs/compass/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the TUI.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Ask sends queries to the resource-matching service.
	Ask driving.AskService

	// Admin drives the record review editor. Optional.
	Admin driving.AdminService

	// History lists recent queries. Optional.
	History driving.HistoryService

	// Settings manages application settings. Optional.
	Settings driving.SettingsService

	// Sanitizer filters action plan markup. Optional.
	Sanitizer driven.MarkupSanitizer
}

// NewPorts creates a new Ports aggregate with the required services.
func NewPorts(ask driving.AskService, settings driving.SettingsService) *Ports {
	return &Ports{
		Ask:      ask,
		Settings: settings,
	}
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Ask == nil {
		return ErrMissingAskService
	}
	return nil
}
