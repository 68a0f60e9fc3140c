package services

import (
	"context"
	"time"

	"github.com/custodia-labs/compass/internal/core/domain"
)

// --- Mock implementations ---

// mockCarouselView implements driven.CarouselView for testing.
type mockCarouselView struct {
	syncs   []domain.CarouselSnapshot
	scrolls int
	pulses  []domain.HighlightPulse
	expires []func()
}

func (m *mockCarouselView) Sync(snapshot domain.CarouselSnapshot) {
	m.syncs = append(m.syncs, snapshot)
}

func (m *mockCarouselView) ScrollToResults() {
	m.scrolls++
}

func (m *mockCarouselView) Pulse(pulse domain.HighlightPulse, expire func()) {
	m.pulses = append(m.pulses, pulse)
	m.expires = append(m.expires, expire)
}

func (m *mockCarouselView) last() domain.CarouselSnapshot {
	if len(m.syncs) == 0 {
		return domain.CarouselSnapshot{}
	}
	return m.syncs[len(m.syncs)-1]
}

// mockOverlayView implements driven.OverlayView for testing.
// Settle callbacks are captured and run explicitly by the test.
type mockOverlayView struct {
	renders []domain.ProgressState
	delays  []time.Duration
	settles []func()
}

func (m *mockOverlayView) Render(state domain.ProgressState) {
	m.renders = append(m.renders, state)
}

func (m *mockOverlayView) Settle(after time.Duration, settle func()) {
	m.delays = append(m.delays, after)
	m.settles = append(m.settles, settle)
}

func (m *mockOverlayView) currents() []int {
	out := make([]int, len(m.renders))
	for i, r := range m.renders {
		out[i] = r.Current
	}
	return out
}

// mockSanitizer implements driven.MarkupSanitizer for testing.
type mockSanitizer struct {
	calls int
}

func (m *mockSanitizer) Sanitize(markup string) string {
	m.calls++
	return markup
}

// mockResourceBackend implements driven.ResourceBackend for testing.
type mockResourceBackend struct {
	resp     *domain.AskResponse
	err      error
	stages   []domain.RequestStage
	requests []domain.AskRequest
}

func (m *mockResourceBackend) Ask(
	_ context.Context, req domain.AskRequest, onStage domain.StageFunc,
) (*domain.AskResponse, error) {
	m.requests = append(m.requests, req)
	for _, st := range m.stages {
		if onStage != nil {
			onStage(st)
		}
	}
	if m.err != nil {
		return nil, m.err
	}
	return m.resp, nil
}

// mockAdminBackend implements driven.AdminBackend for testing.
type mockAdminBackend struct {
	summary  *domain.AdminSummary
	records  []domain.AdminRecord
	err      error
	tokens   []string
	edits    []domain.AdminEdit
	indexes  []int
	upserted []bool
}

func (m *mockAdminBackend) Summary(_ context.Context) (*domain.AdminSummary, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.summary, nil
}

func (m *mockAdminBackend) Record(_ context.Context, index int) (*domain.AdminRecord, error) {
	m.indexes = append(m.indexes, index)
	if m.err != nil {
		return nil, m.err
	}
	if len(m.records) == 0 {
		return nil, domain.ErrNotFound
	}
	if index >= len(m.records) {
		index = len(m.records) - 1
	}
	rec := m.records[index]
	return &rec, nil
}

func (m *mockAdminBackend) Update(
	_ context.Context, token string, edit domain.AdminEdit,
) (*domain.AdminUpdateResult, error) {
	m.tokens = append(m.tokens, token)
	m.edits = append(m.edits, edit)
	if m.err != nil {
		return nil, m.err
	}
	return &domain.AdminUpdateResult{ID: edit.ID, ReviewedCount: 1, DirtyCount: 1}, nil
}

func (m *mockAdminBackend) Save(_ context.Context, token string) (*domain.SaveResult, error) {
	m.tokens = append(m.tokens, token)
	if m.err != nil {
		return nil, m.err
	}
	return &domain.SaveResult{DocsPath: "docs.jsonl", MetaPath: "meta.jsonl"}, nil
}

func (m *mockAdminBackend) Upsert(
	_ context.Context, token string, onlyDirty bool,
) (*domain.UpsertResult, error) {
	m.tokens = append(m.tokens, token)
	m.upserted = append(m.upserted, onlyDirty)
	if m.err != nil {
		return nil, m.err
	}
	return &domain.UpsertResult{Upserted: 3}, nil
}

// --- Fixtures ---

func hit(id, name string) domain.ResourceRecord {
	return domain.ResourceRecord{
		ExplicitID: domain.NewField(id),
		Metadata:   domain.ResourceMetadata{Name: domain.NewField(name)},
	}
}

// scenarioGroups is the two-theme result used across tests:
// food-assistance with resource 1, general with resources 2 and 3.
func scenarioGroups() []domain.ThemeGroup {
	return []domain.ThemeGroup{
		{Slug: "food-assistance", Hits: []domain.ResourceRecord{hit("1", "Food Bank")}},
		{Slug: "general", Hits: []domain.ResourceRecord{hit("2", "Community Center"), hit("3", "Legal Aid")}},
	}
}
