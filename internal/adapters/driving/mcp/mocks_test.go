package mcp

import (
	"context"
	"strings"

	"github.com/custodia-labs/compass/internal/core/domain"
)

// mockAskService is a mock implementation of driving.AskService.
type mockAskService struct {
	resp    *domain.AskResponse
	err     error
	lastReq domain.AskRequest
}

func (m *mockAskService) NewRequest(query string) domain.AskRequest {
	return domain.AskRequest{
		Query:      strings.TrimSpace(query),
		TopK:       domain.DefaultTopK,
		TopResults: domain.DefaultTopResults,
	}
}

func (m *mockAskService) Ask(
	_ context.Context,
	req domain.AskRequest,
	onStage domain.StageFunc,
) (*domain.AskResponse, error) {
	m.lastReq = req
	onStage(domain.StageRequestStart)
	return m.resp, m.err
}

// mockAdminService is a mock implementation of driving.AdminService.
type mockAdminService struct {
	summary *domain.AdminSummary
	record  *domain.AdminRecord
	err     error
	jumped  int
}

func (m *mockAdminService) Summary(_ context.Context) (*domain.AdminSummary, error) {
	return m.summary, m.err
}

func (m *mockAdminService) Record(_ context.Context, _ int) (*domain.AdminRecord, error) {
	return m.record, m.err
}

func (m *mockAdminService) Next(_ context.Context, _ domain.AdminRecord) (*domain.AdminRecord, error) {
	return m.record, m.err
}

func (m *mockAdminService) Prev(_ context.Context, _ domain.AdminRecord) (*domain.AdminRecord, error) {
	return m.record, m.err
}

func (m *mockAdminService) Jump(_ context.Context, position int) (*domain.AdminRecord, error) {
	m.jumped = position
	return m.record, m.err
}

func (m *mockAdminService) Update(_ context.Context, edit domain.AdminEdit) (*domain.AdminUpdateResult, error) {
	return &domain.AdminUpdateResult{ID: edit.ID}, m.err
}

func (m *mockAdminService) SaveAll(_ context.Context) (*domain.SaveResult, error) {
	return &domain.SaveResult{}, m.err
}

func (m *mockAdminService) Upsert(_ context.Context, _ bool) (*domain.UpsertResult, error) {
	return &domain.UpsertResult{}, m.err
}

func (m *mockAdminService) GenerateText(_ domain.AdminEdit) string {
	return ""
}

// mockHistoryService is a mock implementation of driving.HistoryService.
type mockHistoryService struct {
	records []domain.QueryRecord
	err     error
}

func (m *mockHistoryService) Recent(_ context.Context, _ int) ([]domain.QueryRecord, error) {
	return m.records, m.err
}

func (m *mockHistoryService) Clear(_ context.Context) error {
	return m.err
}
