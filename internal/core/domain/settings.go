package domain

import (
	"strconv"
	"time"
)

// Default settings values.
const (
	DefaultBackendURL     = "http://localhost:8000"
	DefaultBackendTimeout = 120 * time.Second
	DefaultRatePerSecond  = 2.0
	DefaultHistoryLimit   = 50
)

// BackendSettings configures the resource-matching service client.
type BackendSettings struct {
	// URL is the base URL of the service.
	URL string

	// Timeout bounds a single request.
	Timeout time.Duration

	// RatePerSecond is the client-side request rate limit.
	RatePerSecond float64
}

// AskSettings holds the defaults applied to every query.
type AskSettings struct {
	TopK       int
	TopResults int

	// Language is the default language filter. Empty means unset.
	Language string

	// FreeOnly restricts queries to free resources when true.
	FreeOnly bool
}

// AdminSettings holds admin editor configuration.
type AdminSettings struct {
	// Token is sent as X-Admin-Token on mutating admin calls.
	Token string
}

// HasToken reports whether an admin token is configured.
func (a AdminSettings) HasToken() bool {
	return a.Token != ""
}

// HistorySettings configures the local query history.
type HistorySettings struct {
	Enabled bool
	Limit   int
}

// AppSettings holds all application settings.
type AppSettings struct {
	Backend BackendSettings
	Ask     AskSettings
	Admin   AdminSettings
	History HistorySettings
}

// DefaultAppSettings returns settings with sensible defaults.
// The admin token is left unset.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		Backend: BackendSettings{
			URL:           DefaultBackendURL,
			Timeout:       DefaultBackendTimeout,
			RatePerSecond: DefaultRatePerSecond,
		},
		Ask: AskSettings{
			TopK:       DefaultTopK,
			TopResults: DefaultTopResults,
		},
		History: HistorySettings{
			Enabled: true,
			Limit:   DefaultHistoryLimit,
		},
	}
}

// Value returns the string form of the setting stored under key, as
// accepted by the settings service. Unknown keys yield "".
func (s AppSettings) Value(key string) string {
	switch key {
	case "backend.url":
		return s.Backend.URL
	case "backend.timeout":
		return s.Backend.Timeout.String()
	case "backend.rate_per_second":
		return strconv.FormatFloat(s.Backend.RatePerSecond, 'f', -1, 64)
	case "ask.top_k":
		return strconv.Itoa(s.Ask.TopK)
	case "ask.top_results":
		return strconv.Itoa(s.Ask.TopResults)
	case "ask.language":
		return s.Ask.Language
	case "ask.free_only":
		return strconv.FormatBool(s.Ask.FreeOnly)
	case "admin.token":
		return s.Admin.Token
	case "history.enabled":
		return strconv.FormatBool(s.History.Enabled)
	case "history.limit":
		return strconv.Itoa(s.History.Limit)
	}
	return ""
}
