package services

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/custodia-labs/compass/internal/core/domain"
	"github.com/custodia-labs/compass/internal/core/ports/driven"
	"github.com/custodia-labs/compass/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
//
//nolint:gosec // G101: These are config key names, not actual credentials.
const (
	keyBackendURL     = "backend.url"
	keyBackendTimeout = "backend.timeout"
	keyBackendRate    = "backend.rate_per_second"
	keyAskTopK        = "ask.top_k"
	keyAskTopResults  = "ask.top_results"
	keyAskLanguage    = "ask.language"
	keyAskFreeOnly    = "ask.free_only"
	keyAdminToken     = "admin.token"
	keyHistoryEnabled = "history.enabled"
	keyHistoryLimit   = "history.limit"
)

type settingKind int

const (
	kindString settingKind = iota
	kindInt
	kindFloat
	kindBool
	kindDuration
)

// settingKinds lists every settable key in display order.
var settingKinds = []struct {
	key  string
	kind settingKind
}{
	{keyBackendURL, kindString},
	{keyBackendTimeout, kindDuration},
	{keyBackendRate, kindFloat},
	{keyAskTopK, kindInt},
	{keyAskTopResults, kindInt},
	{keyAskLanguage, kindString},
	{keyAskFreeOnly, kindBool},
	{keyAdminToken, kindString},
	{keyHistoryEnabled, kindBool},
	{keyHistoryLimit, kindInt},
}

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{configStore: configStore}
}

// Get retrieves current application settings.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	defaults := domain.DefaultAppSettings()

	settings := &domain.AppSettings{
		Backend: domain.BackendSettings{
			URL:           strings.TrimRight(s.getString(keyBackendURL, defaults.Backend.URL), "/"),
			Timeout:       s.getDuration(keyBackendTimeout, defaults.Backend.Timeout),
			RatePerSecond: s.getFloat(keyBackendRate, defaults.Backend.RatePerSecond),
		},
		Ask: domain.AskSettings{
			TopK:       s.getInt(keyAskTopK, defaults.Ask.TopK),
			TopResults: s.getInt(keyAskTopResults, defaults.Ask.TopResults),
			Language:   s.configStore.GetString(keyAskLanguage),
			FreeOnly:   s.getBool(keyAskFreeOnly, defaults.Ask.FreeOnly),
		},
		Admin: domain.AdminSettings{
			Token: s.configStore.GetString(keyAdminToken),
		},
		History: domain.HistorySettings{
			Enabled: s.getBool(keyHistoryEnabled, defaults.History.Enabled),
			Limit:   s.getInt(keyHistoryLimit, defaults.History.Limit),
		},
	}

	return settings, nil
}

// Save persists application settings.
func (s *SettingsService) Save(settings *domain.AppSettings) error {
	values := []struct {
		key   string
		value any
	}{
		{keyBackendURL, settings.Backend.URL},
		{keyBackendTimeout, settings.Backend.Timeout.String()},
		{keyBackendRate, settings.Backend.RatePerSecond},
		{keyAskTopK, settings.Ask.TopK},
		{keyAskTopResults, settings.Ask.TopResults},
		{keyAskLanguage, settings.Ask.Language},
		{keyAskFreeOnly, settings.Ask.FreeOnly},
		{keyHistoryEnabled, settings.History.Enabled},
		{keyHistoryLimit, settings.History.Limit},
	}
	for _, v := range values {
		if err := s.configStore.Set(v.key, v.value); err != nil {
			return fmt.Errorf("save %s: %w", v.key, err)
		}
	}

	// Only overwrite the token when one was supplied
	if settings.Admin.Token != "" {
		if err := s.configStore.Set(keyAdminToken, settings.Admin.Token); err != nil {
			return fmt.Errorf("save %s: %w", keyAdminToken, err)
		}
	}

	return nil
}

// Set updates a single setting from its string form.
func (s *SettingsService) Set(key, value string) error {
	key = strings.TrimSpace(key)
	value = strings.TrimSpace(value)

	for _, sk := range settingKinds {
		if sk.key != key {
			continue
		}
		parsed, err := parseSetting(sk.kind, value)
		if err != nil {
			return fmt.Errorf("%w: %s: %v", domain.ErrInvalidInput, key, err)
		}
		if err := s.configStore.Set(key, parsed); err != nil {
			return fmt.Errorf("save %s: %w", key, err)
		}
		return nil
	}
	return fmt.Errorf("%w: unknown setting %q", domain.ErrInvalidInput, key)
}

// Keys returns every settable key in display order.
func (s *SettingsService) Keys() []string {
	keys := make([]string, len(settingKinds))
	for i, sk := range settingKinds {
		keys[i] = sk.key
	}
	return keys
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

func parseSetting(kind settingKind, value string) (any, error) {
	switch kind {
	case kindInt:
		n, err := strconv.Atoi(value)
		if err != nil {
			return nil, err
		}
		if n < 0 {
			return nil, fmt.Errorf("must not be negative")
		}
		return n, nil
	case kindFloat:
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return nil, err
		}
		if f <= 0 {
			return nil, fmt.Errorf("must be positive")
		}
		return f, nil
	case kindBool:
		return strconv.ParseBool(value)
	case kindDuration:
		d, err := time.ParseDuration(value)
		if err != nil {
			return nil, err
		}
		return d.String(), nil
	default:
		return value, nil
	}
}

func (s *SettingsService) getString(key, defaultVal string) string {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getInt(key string, defaultVal int) int {
	val := s.configStore.GetInt(key)
	if val <= 0 {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getFloat(key string, defaultVal float64) float64 {
	val := s.configStore.GetFloat(key)
	if val <= 0 {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getBool(key string, defaultVal bool) bool {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetBool(key)
}

func (s *SettingsService) getDuration(key string, defaultVal time.Duration) time.Duration {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	d, err := time.ParseDuration(val)
	if err != nil || d <= 0 {
		return defaultVal
	}
	return d
}
