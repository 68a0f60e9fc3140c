package services

import (
	"context"
	"fmt"

	"github.com/custodia-labs/compass/internal/core/domain"
	"github.com/custodia-labs/compass/internal/core/ports/driven"
	"github.com/custodia-labs/compass/internal/core/ports/driving"
)

// Ensure HistoryService implements the interface.
var _ driving.HistoryService = (*HistoryService)(nil)

// HistoryService exposes the local query history.
type HistoryService struct {
	store    driven.HistoryStore
	settings driving.SettingsService
}

// NewHistoryService creates a new history service.
func NewHistoryService(store driven.HistoryStore, settings driving.SettingsService) *HistoryService {
	return &HistoryService{store: store, settings: settings}
}

// Recent returns up to limit queries, newest first.
func (s *HistoryService) Recent(ctx context.Context, limit int) ([]domain.QueryRecord, error) {
	if limit <= 0 {
		limit = domain.DefaultHistoryLimit
		if s.settings != nil {
			if cfg, err := s.settings.Get(); err == nil && cfg.History.Limit > 0 {
				limit = cfg.History.Limit
			}
		}
	}
	records, err := s.store.List(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("list history: %w", err)
	}
	return records, nil
}

// Clear removes every recorded query.
func (s *HistoryService) Clear(ctx context.Context) error {
	if err := s.store.Clear(ctx); err != nil {
		return fmt.Errorf("clear history: %w", err)
	}
	return nil
}
