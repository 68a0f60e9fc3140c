package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestDefaultAppSettings tests default settings values
func TestDefaultAppSettings(t *testing.T) {
	s := DefaultAppSettings()

	assert.Equal(t, DefaultBackendURL, s.Backend.URL)
	assert.Equal(t, DefaultBackendTimeout, s.Backend.Timeout)
	assert.InDelta(t, DefaultRatePerSecond, s.Backend.RatePerSecond, 0.0001)
	assert.Equal(t, 8, s.Ask.TopK)
	assert.Equal(t, 5, s.Ask.TopResults)
	assert.False(t, s.Admin.HasToken())
	assert.True(t, s.History.Enabled)
	assert.Equal(t, DefaultHistoryLimit, s.History.Limit)
}

// TestAdminSettings_HasToken tests token detection
func TestAdminSettings_HasToken(t *testing.T) {
	assert.True(t, AdminSettings{Token: "secret"}.HasToken())
	assert.False(t, AdminSettings{}.HasToken())
}

func TestAppSettings_Value(t *testing.T) {
	s := DefaultAppSettings()
	s.Ask.Language = "es"
	s.Admin.Token = "tok"

	tests := map[string]string{
		"backend.url":             DefaultBackendURL,
		"backend.timeout":         "2m0s",
		"backend.rate_per_second": "2",
		"ask.top_k":               "8",
		"ask.top_results":         "5",
		"ask.language":            "es",
		"ask.free_only":           "false",
		"admin.token":             "tok",
		"history.enabled":         "true",
		"history.limit":           "50",
		"unknown":                 "",
	}
	for key, want := range tests {
		assert.Equal(t, want, s.Value(key), key)
	}
}
