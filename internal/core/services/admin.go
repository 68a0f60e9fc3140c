package services

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/custodia-labs/compass/internal/core/domain"
	"github.com/custodia-labs/compass/internal/core/ports/driven"
	"github.com/custodia-labs/compass/internal/core/ports/driving"
	"github.com/custodia-labs/compass/internal/logger"
)

// Ensure AdminService implements the interface.
var _ driving.AdminService = (*AdminService)(nil)

// AdminService drives the record review editor. It remembers the record
// count it last saw so navigation can be clamped before calling out.
type AdminService struct {
	backend  driven.AdminBackend
	settings driving.SettingsService

	mu    sync.Mutex
	total int
}

// NewAdminService creates a new admin service.
func NewAdminService(backend driven.AdminBackend, settings driving.SettingsService) *AdminService {
	return &AdminService{backend: backend, settings: settings}
}

// Summary returns the review counters.
func (s *AdminService) Summary(ctx context.Context) (*domain.AdminSummary, error) {
	summary, err := s.backend.Summary(ctx)
	if err != nil {
		return nil, fmt.Errorf("admin summary: %w", err)
	}
	s.setTotal(summary.Total)
	return summary, nil
}

// Record loads the record at index, clamped into [0, total-1].
func (s *AdminService) Record(ctx context.Context, index int) (*domain.AdminRecord, error) {
	if total := s.knownTotal(); total > 0 && index > total-1 {
		index = total - 1
	}
	if index < 0 {
		index = 0
	}
	logger.Debug("Loading admin record %d", index)

	rec, err := s.backend.Record(ctx, index)
	if err != nil {
		return nil, fmt.Errorf("admin record %d: %w", index, err)
	}
	s.setTotal(rec.Total)
	return rec, nil
}

// Next loads the record after current, staying on the last one.
func (s *AdminService) Next(ctx context.Context, current domain.AdminRecord) (*domain.AdminRecord, error) {
	s.setTotal(current.Total)
	return s.Record(ctx, current.Index+1)
}

// Prev loads the record before current, staying on the first one.
func (s *AdminService) Prev(ctx context.Context, current domain.AdminRecord) (*domain.AdminRecord, error) {
	s.setTotal(current.Total)
	return s.Record(ctx, current.Index-1)
}

// Jump loads the record at a 1-based position.
func (s *AdminService) Jump(ctx context.Context, position int) (*domain.AdminRecord, error) {
	return s.Record(ctx, position-1)
}

// Update stores an edited record.
func (s *AdminService) Update(ctx context.Context, edit domain.AdminEdit) (*domain.AdminUpdateResult, error) {
	if strings.TrimSpace(edit.ID) == "" {
		return nil, fmt.Errorf("%w: record id required", domain.ErrInvalidInput)
	}
	token, err := s.token()
	if err != nil {
		return nil, err
	}
	logger.Debug("Updating admin record %s", edit.ID)

	res, err := s.backend.Update(ctx, token, edit)
	if err != nil {
		return nil, fmt.Errorf("admin update %s: %w", edit.ID, err)
	}
	return res, nil
}

// SaveAll writes every record to the service's files.
func (s *AdminService) SaveAll(ctx context.Context) (*domain.SaveResult, error) {
	token, err := s.token()
	if err != nil {
		return nil, err
	}
	res, err := s.backend.Save(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("admin save: %w", err)
	}
	return res, nil
}

// Upsert reindexes records, only dirty ones when onlyDirty is set.
func (s *AdminService) Upsert(ctx context.Context, onlyDirty bool) (*domain.UpsertResult, error) {
	token, err := s.token()
	if err != nil {
		return nil, err
	}
	scope := "all"
	if onlyDirty {
		scope = "dirty"
	}
	logger.Info("Upserting %s records", scope)

	res, err := s.backend.Upsert(ctx, token, onlyDirty)
	if err != nil {
		return nil, fmt.Errorf("admin upsert: %w", err)
	}
	return res, nil
}

// GenerateText builds the embedding text for a record from its fields.
// Lines whose fields are not set are left out.
func (s *AdminService) GenerateText(edit domain.AdminEdit) string {
	return BuildRecordText(edit)
}

// BuildRecordText builds the embedding text for a record from its fields.
func BuildRecordText(edit domain.AdminEdit) string {
	f := edit.Fields
	name := f.Field(domain.AdminFieldName).DisplayOr(domain.Unknown)
	org := f.Field(domain.AdminFieldOrganization).DisplayOr(domain.Unknown)

	lines := []string{
		fmt.Sprintf("Resource: %s — %s", name, org),
		"What it is: Description not provided.",
	}
	if services := f.List(domain.AdminFieldCategories); services.IsPresent() {
		lines = append(lines, "Services: "+services.Display())
	}
	if fees := f.Field(domain.AdminFieldFees); fees.IsPresent() {
		lines = append(lines, "Cost: "+fees.Value())
	}
	if hours := f.Field(domain.AdminFieldHoursNotes); hours.IsPresent() {
		lines = append(lines, "When: "+hours.Value())
	}

	var where []string
	for _, k := range []domain.AdminFieldKey{domain.AdminFieldCity, domain.AdminFieldCounty} {
		if v := f.Field(k); v.IsPresent() {
			where = append(where, v.Value())
		}
	}
	if len(where) > 0 {
		lines = append(lines, "Where it operates: "+strings.Join(where, ", "))
	}
	if langs := f.List(domain.AdminFieldLanguages); langs.IsPresent() {
		lines = append(lines, "Languages: "+langs.Display())
	}

	lines = append(lines,
		"Last updated: "+f.Field(domain.AdminFieldLastUpdated).DisplayOr("unknown"),
		"Source: "+f.Field(domain.AdminFieldSourceFile).DisplayOr("unknown"),
		"ID: "+edit.ID,
	)
	return strings.Join(lines, "\n")
}

func (s *AdminService) token() (string, error) {
	if s.settings == nil {
		return "", domain.ErrAdminTokenRequired
	}
	cfg, err := s.settings.Get()
	if err != nil {
		return "", fmt.Errorf("load settings: %w", err)
	}
	if !cfg.Admin.HasToken() {
		return "", domain.ErrAdminTokenRequired
	}
	return cfg.Admin.Token, nil
}

func (s *AdminService) knownTotal() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.total
}

func (s *AdminService) setTotal(total int) {
	if total <= 0 {
		return
	}
	s.mu.Lock()
	s.total = total
	s.mu.Unlock()
}
