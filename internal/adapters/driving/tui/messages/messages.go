// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/custodia-labs/compass/internal/core/domain"
)

// AskRequested is a command to run a query.
type AskRequested struct {
	Query string
}

// StageReached carries a request lifecycle stage back to the update loop.
type StageReached struct {
	Generation uint64
	Stage      domain.RequestStage
}

// AskCompleted carries a query response back to the model.
// Generation identifies the lifecycle the response belongs to.
type AskCompleted struct {
	Generation uint64
	Response   *domain.AskResponse
	Err        error
}

// TimerFired runs a deferred callback on the update loop. Carousel pulses
// and overlay settles schedule one each.
type TimerFired struct {
	Fire func()
}

// ViewChanged is sent when navigating between views.
type ViewChanged struct {
	View ViewType
}

// ViewType identifies which view is currently active.
type ViewType int

const (
	// ViewMenu is the main navigation menu.
	ViewMenu ViewType = iota
	// ViewAsk is the query input and results carousel.
	ViewAsk
	// ViewAdmin is the resource record editor.
	ViewAdmin
	// ViewHistory lists recent queries.
	ViewHistory
	// ViewHelp is the help/keybindings view.
	ViewHelp
	// ViewSettings is the settings configuration view.
	ViewSettings
)

// String returns the string representation of the view type.
func (v ViewType) String() string {
	switch v {
	case ViewMenu:
		return "menu"
	case ViewAsk:
		return "ask"
	case ViewAdmin:
		return "admin"
	case ViewHistory:
		return "history"
	case ViewHelp:
		return "help"
	case ViewSettings:
		return "settings"
	default:
		return "unknown"
	}
}

// ErrorOccurred is sent when an error needs to be displayed.
type ErrorOccurred struct {
	Err error
}

// Quit is sent to exit the application.
type Quit struct{}

// AdminRecordLoaded carries an admin record back to the editor.
type AdminRecordLoaded struct {
	Record *domain.AdminRecord
	Err    error
}

// AdminSummaryLoaded carries the review counters.
type AdminSummaryLoaded struct {
	Summary *domain.AdminSummary
	Err     error
}

// AdminActionDone reports the outcome of a save or upsert from the editor.
type AdminActionDone struct {
	Status string
	Err    error
}

// HistoryLoaded carries recent queries.
type HistoryLoaded struct {
	Records []domain.QueryRecord
	Err     error
}

// HistorySelected is sent when a recorded query should be asked again.
type HistorySelected struct {
	Query string
}

// SettingsLoaded carries loaded settings.
type SettingsLoaded struct {
	Settings *domain.AppSettings
	Err      error
}

// SettingsSaved signals that a setting was written.
type SettingsSaved struct {
	Key string
	Err error
}
