package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/custodia-labs/compass/internal/core/domain"
	"github.com/custodia-labs/compass/internal/core/ports/driven"
	"github.com/custodia-labs/compass/internal/core/ports/driving"
	"github.com/custodia-labs/compass/internal/logger"
)

// Ensure AskService implements the interface.
var _ driving.AskService = (*AskService)(nil)

// AskService submits queries and records them in the local history.
type AskService struct {
	backend  driven.ResourceBackend
	settings driving.SettingsService
	history  driven.HistoryStore
	now      func() time.Time
}

// NewAskService creates a new ask service.
// The settings parameter is optional; without it built-in defaults apply.
func NewAskService(backend driven.ResourceBackend, settings driving.SettingsService) *AskService {
	return &AskService{
		backend:  backend,
		settings: settings,
		now:      time.Now,
	}
}

// SetHistoryStore sets the store completed queries are recorded in.
func (s *AskService) SetHistoryStore(store driven.HistoryStore) {
	s.history = store
}

// NewRequest returns a request for query with the configured defaults.
func (s *AskService) NewRequest(query string) domain.AskRequest {
	cfg := s.currentSettings()
	req := domain.AskRequest{
		Query:      strings.TrimSpace(query),
		TopK:       cfg.Ask.TopK,
		TopResults: cfg.Ask.TopResults,
	}
	if cfg.Ask.Language != "" {
		lang := cfg.Ask.Language
		req.Filters.Language = &lang
	}
	if cfg.Ask.FreeOnly {
		free := true
		req.Filters.FreeOnly = &free
	}
	return req
}

// Ask runs a query against the backend.
func (s *AskService) Ask(
	ctx context.Context, req domain.AskRequest, onStage domain.StageFunc,
) (*domain.AskResponse, error) {
	logger.Section("Ask")

	req.Query = strings.TrimSpace(req.Query)
	if req.Query == "" {
		logger.Debug("Empty query, returning no results")
		return &domain.AskResponse{}, nil
	}

	cfg := s.currentSettings()
	if req.TopK <= 0 {
		req.TopK = cfg.Ask.TopK
	}
	if req.TopResults <= 0 {
		req.TopResults = cfg.Ask.TopResults
	}
	logger.Debug("Query: %q (top_k=%d, top_results=%d)", req.Query, req.TopK, req.TopResults)

	resp, err := s.backend.Ask(ctx, req, onStage)
	if err != nil {
		return nil, fmt.Errorf("ask: %w", err)
	}
	logger.Debug("Received %d hits in %d groups", resp.TotalHits(), len(resp.Groups))

	s.record(ctx, req, resp, cfg.History)
	return resp, nil
}

func (s *AskService) record(
	ctx context.Context, req domain.AskRequest, resp *domain.AskResponse, cfg domain.HistorySettings,
) {
	if s.history == nil || !cfg.Enabled {
		return
	}
	rec := domain.QueryRecord{
		Query:        req.Query,
		Filters:      req.Filters,
		TotalResults: resp.TotalHits(),
		ThemeCount:   resp.NonEmptyGroups(),
		CreatedAt:    s.now(),
	}
	if err := s.history.Save(ctx, rec); err != nil {
		logger.Warn("Failed to record query in history: %v", err)
	}
}

func (s *AskService) currentSettings() domain.AppSettings {
	if s.settings == nil {
		return domain.DefaultAppSettings()
	}
	cfg, err := s.settings.Get()
	if err != nil || cfg == nil {
		logger.Warn("Failed to load settings, using defaults: %v", err)
		return domain.DefaultAppSettings()
	}
	return *cfg
}
