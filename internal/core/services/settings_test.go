package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/compass/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/compass/internal/core/domain"
)

func TestNewSettingsService(t *testing.T) {
	store := memory.NewConfigStore()
	service := NewSettingsService(store)

	require.NotNil(t, service)
}

func TestSettingsService_Get_ReturnsDefaults(t *testing.T) {
	service := NewSettingsService(memory.NewConfigStore())

	settings, err := service.Get()

	require.NoError(t, err)
	assert.Equal(t, domain.DefaultAppSettings(), *settings)
}

func TestSettingsService_Get_ReturnsStoredValues(t *testing.T) {
	store := memory.NewConfigStore()
	_ = store.Set("backend.url", "https://resources.example.org/")
	_ = store.Set("backend.timeout", "30s")
	_ = store.Set("backend.rate_per_second", 5.5)
	_ = store.Set("ask.top_results", 3)
	_ = store.Set("admin.token", "secret")
	_ = store.Set("history.enabled", false)

	settings, err := NewSettingsService(store).Get()

	require.NoError(t, err)
	assert.Equal(t, "https://resources.example.org", settings.Backend.URL)
	assert.Equal(t, 30*time.Second, settings.Backend.Timeout)
	assert.InDelta(t, 5.5, settings.Backend.RatePerSecond, 0.0001)
	assert.Equal(t, 3, settings.Ask.TopResults)
	assert.Equal(t, domain.DefaultTopK, settings.Ask.TopK)
	assert.Equal(t, "secret", settings.Admin.Token)
	assert.False(t, settings.History.Enabled)
}

func TestSettingsService_Get_InvalidValuesReturnDefaults(t *testing.T) {
	store := memory.NewConfigStore()
	_ = store.Set("backend.timeout", "soon")
	_ = store.Set("ask.top_k", -3)

	settings, err := NewSettingsService(store).Get()

	require.NoError(t, err)
	assert.Equal(t, domain.DefaultBackendTimeout, settings.Backend.Timeout)
	assert.Equal(t, domain.DefaultTopK, settings.Ask.TopK)
}

func TestSettingsService_SaveRoundTrip(t *testing.T) {
	store := memory.NewConfigStore()
	service := NewSettingsService(store)

	in := domain.DefaultAppSettings()
	in.Backend.URL = "http://10.0.0.2:8000"
	in.Ask.TopK = 15
	in.Admin.Token = "tok"
	in.History.Limit = 10
	require.NoError(t, service.Save(&in))

	out, err := service.Get()
	require.NoError(t, err)
	assert.Equal(t, in, *out)
}

func TestSettingsService_SaveKeepsTokenWhenBlank(t *testing.T) {
	store := memory.NewConfigStore()
	_ = store.Set("admin.token", "keep-me")
	service := NewSettingsService(store)

	in := domain.DefaultAppSettings()
	require.NoError(t, service.Save(&in))

	assert.Equal(t, "keep-me", store.GetString("admin.token"))
}

func TestSettingsService_Set(t *testing.T) {
	store := memory.NewConfigStore()
	service := NewSettingsService(store)

	require.NoError(t, service.Set("ask.top_k", "11"))
	require.NoError(t, service.Set("ask.free_only", "true"))
	require.NoError(t, service.Set("backend.timeout", "1m30s"))
	require.NoError(t, service.Set("backend.rate_per_second", "0.5"))
	require.NoError(t, service.Set("backend.url", " http://x "))

	settings, err := service.Get()
	require.NoError(t, err)
	assert.Equal(t, 11, settings.Ask.TopK)
	assert.True(t, settings.Ask.FreeOnly)
	assert.Equal(t, 90*time.Second, settings.Backend.Timeout)
	assert.InDelta(t, 0.5, settings.Backend.RatePerSecond, 0.0001)
	assert.Equal(t, "http://x", settings.Backend.URL)
}

func TestSettingsService_Set_Invalid(t *testing.T) {
	service := NewSettingsService(memory.NewConfigStore())

	tests := []struct {
		key   string
		value string
	}{
		{"nope", "1"},
		{"ask.top_k", "many"},
		{"ask.top_k", "-1"},
		{"ask.free_only", "maybe"},
		{"backend.timeout", "10 parsecs"},
		{"backend.rate_per_second", "0"},
	}
	for _, tt := range tests {
		t.Run(tt.key+"="+tt.value, func(t *testing.T) {
			assert.ErrorIs(t, service.Set(tt.key, tt.value), domain.ErrInvalidInput)
		})
	}
}

func TestSettingsService_Keys(t *testing.T) {
	keys := NewSettingsService(memory.NewConfigStore()).Keys()
	assert.Contains(t, keys, "backend.url")
	assert.Contains(t, keys, "admin.token")
	assert.Len(t, keys, 10)
}
