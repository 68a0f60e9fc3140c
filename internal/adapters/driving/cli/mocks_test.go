package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/custodia-labs/compass/internal/core/domain"
)

// mockAskService implements driving.AskService.
type mockAskService struct {
	AskFunc func(ctx context.Context, req domain.AskRequest, onStage domain.StageFunc) (*domain.AskResponse, error)
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
	ctx context.Context, req domain.AskRequest, onStage domain.StageFunc,
) (*domain.AskResponse, error) {
	m.lastReq = req
	if m.AskFunc != nil {
		return m.AskFunc(ctx, req, onStage)
	}
	return &domain.AskResponse{}, nil
}

// mockAdminService implements driving.AdminService over a slice of records.
type mockAdminService struct {
	records  []domain.AdminRecord
	updated  []domain.AdminEdit
	upserted []bool
	err      error
}

func (m *mockAdminService) Summary(_ context.Context) (*domain.AdminSummary, error) {
	if m.err != nil {
		return nil, m.err
	}
	return &domain.AdminSummary{Total: len(m.records), ReviewedCount: 1, DirtyCount: 2}, nil
}

func (m *mockAdminService) Record(_ context.Context, index int) (*domain.AdminRecord, error) {
	if m.err != nil {
		return nil, m.err
	}
	if index < 0 {
		index = 0
	}
	if index >= len(m.records) {
		index = len(m.records) - 1
	}
	rec := m.records[index]
	return &rec, nil
}

func (m *mockAdminService) Next(ctx context.Context, current domain.AdminRecord) (*domain.AdminRecord, error) {
	return m.Record(ctx, current.Index+1)
}

func (m *mockAdminService) Prev(ctx context.Context, current domain.AdminRecord) (*domain.AdminRecord, error) {
	return m.Record(ctx, current.Index-1)
}

func (m *mockAdminService) Jump(ctx context.Context, position int) (*domain.AdminRecord, error) {
	return m.Record(ctx, position-1)
}

func (m *mockAdminService) Update(_ context.Context, edit domain.AdminEdit) (*domain.AdminUpdateResult, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.updated = append(m.updated, edit)
	return &domain.AdminUpdateResult{ID: edit.ID, ReviewedCount: 2, DirtyCount: 3}, nil
}

func (m *mockAdminService) SaveAll(_ context.Context) (*domain.SaveResult, error) {
	if m.err != nil {
		return nil, m.err
	}
	return &domain.SaveResult{DocsPath: "data/docs.jsonl", MetaPath: "data/meta.jsonl"}, nil
}

func (m *mockAdminService) Upsert(_ context.Context, onlyDirty bool) (*domain.UpsertResult, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.upserted = append(m.upserted, onlyDirty)
	return &domain.UpsertResult{Upserted: 4, Errors: 0}, nil
}

func (m *mockAdminService) GenerateText(edit domain.AdminEdit) string {
	return "Resource: " + edit.Fields.Field(domain.AdminFieldName).Display()
}

// mockHistoryService implements driving.HistoryService.
type mockHistoryService struct {
	records   []domain.QueryRecord
	lastLimit int
	cleared   bool
}

func (m *mockHistoryService) Recent(_ context.Context, limit int) ([]domain.QueryRecord, error) {
	m.lastLimit = limit
	return m.records, nil
}

func (m *mockHistoryService) Clear(_ context.Context) error {
	m.cleared = true
	m.records = nil
	return nil
}

// mockSettingsService implements driving.SettingsService.
type mockSettingsService struct {
	settings domain.AppSettings
	set      map[string]string
	saved    *domain.AppSettings
	setErr   error
}

func (m *mockSettingsService) Get() (*domain.AppSettings, error) {
	s := m.settings
	return &s, nil
}

func (m *mockSettingsService) Save(settings *domain.AppSettings) error {
	m.saved = settings
	return nil
}

func (m *mockSettingsService) Set(key, value string) error {
	if m.setErr != nil {
		return m.setErr
	}
	if m.set == nil {
		m.set = make(map[string]string)
	}
	m.set[key] = value
	return nil
}

func (m *mockSettingsService) Keys() []string {
	return []string{"backend.url", "admin.token"}
}

func (m *mockSettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

type testServices struct {
	ask      *mockAskService
	admin    *mockAdminService
	history  *mockHistoryService
	settings *mockSettingsService
}

// setupTestServices swaps the package services for mocks and returns
// them with a cleanup func restoring the previous ones.
func setupTestServices() (*testServices, func()) {
	origAsk, origAdmin, origHistory, origSettings := askService, adminService, historyService, settingsService
	origSanitizer, origWatcher := markupSanitizer, configWatcher

	ts := &testServices{
		ask:      &mockAskService{},
		admin:    &mockAdminService{records: adminFixtures()},
		history:  &mockHistoryService{},
		settings: &mockSettingsService{settings: domain.DefaultAppSettings()},
	}
	askService = ts.ask
	adminService = ts.admin
	historyService = ts.history
	settingsService = ts.settings
	markupSanitizer = nil
	configWatcher = nil

	return ts, func() {
		askService, adminService, historyService, settingsService = origAsk, origAdmin, origHistory, origSettings
		markupSanitizer, configWatcher = origSanitizer, origWatcher
	}
}

func adminFixtures() []domain.AdminRecord {
	first := domain.NewAdminFields()
	first.SetEditorText(domain.AdminFieldName, "Food Bank")
	first.SetEditorText(domain.AdminFieldPhone, "(555) 010-2000")
	first.SetEditorText(domain.AdminFieldLanguages, "English, Spanish")

	second := domain.NewAdminFields()
	second.SetEditorText(domain.AdminFieldName, "Legal Aid")

	return []domain.AdminRecord{
		{Index: 0, Total: 2, ID: "res-1", Fields: first, Text: domain.NewField("Resource: Food Bank")},
		{Index: 1, Total: 2, ID: "res-2", Reviewed: true, Fields: second},
	}
}

// execute runs the root command with args, returning stdout and stderr.
// Flag values are reset afterwards so commands do not leak into each other.
func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetIn(strings.NewReader(""))
	rootCmd.SetArgs(args)
	defer func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetIn(nil)
		resetFlags(rootCmd)
	}()

	err := rootCmd.Execute()
	return stdout.String(), stderr.String(), err
}

func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			_ = sv.Replace(nil)
		} else {
			_ = f.Value.Set(f.DefValue)
		}
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

func fixedTime() time.Time {
	return time.Date(2025, 3, 14, 9, 30, 0, 0, time.Local)
}
