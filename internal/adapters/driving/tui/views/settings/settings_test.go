package settings

import (
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/compass/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/compass/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/compass/internal/core/domain"
)

// MockSettingsService is a mock implementation of driving.SettingsService.
type MockSettingsService struct {
	mock.Mock
}

func (m *MockSettingsService) Get() (*domain.AppSettings, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AppSettings), args.Error(1)
}

func (m *MockSettingsService) Save(settings *domain.AppSettings) error {
	args := m.Called(settings)
	return args.Error(0)
}

func (m *MockSettingsService) Set(key, value string) error {
	args := m.Called(key, value)
	return args.Error(0)
}

func (m *MockSettingsService) Keys() []string {
	return []string{"backend.url", "ask.top_k", "admin.token"}
}

func (m *MockSettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

func testSettings() *domain.AppSettings {
	s := domain.DefaultAppSettings()
	s.Admin.Token = "abcd1234efgh"
	return &s
}

func loadedView(t *testing.T, svc *MockSettingsService) *View {
	t.Helper()
	svc.On("Get").Return(testSettings(), nil)
	v := NewView(styles.DefaultStyles(), svc)
	v.SetDimensions(100, 40)
	v.Update(v.Init()())
	require.NotNil(t, v.Settings())
	return v
}

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestNewView(t *testing.T) {
	v := NewView(nil, &MockSettingsService{})

	require.NotNil(t, v)
	assert.Equal(t, "backend.url", v.SelectedKey())
	assert.False(t, v.Editing())
	assert.Equal(t, "Initialising...", v.View())
}

func TestView_Init_NoService(t *testing.T) {
	v := NewView(nil, nil)

	msg := v.Init()()

	loaded, ok := msg.(messages.SettingsLoaded)
	require.True(t, ok)
	assert.ErrorIs(t, loaded.Err, ErrNoSettingsService)
	assert.Equal(t, "", v.SelectedKey())
}

func TestView_Loaded_RendersValues(t *testing.T) {
	v := loadedView(t, &MockSettingsService{})

	out := v.View()
	assert.Contains(t, out, "backend.url")
	assert.Contains(t, out, domain.DefaultBackendURL)
	assert.Contains(t, out, "ask.top_k")
	assert.Contains(t, out, "abcd...efgh")
	assert.NotContains(t, out, "abcd1234efgh")
}

func TestView_LoadError(t *testing.T) {
	v := NewView(nil, &MockSettingsService{})
	v.SetDimensions(100, 40)

	v.Update(messages.SettingsLoaded{Err: errors.New("broken config")})

	assert.Nil(t, v.Settings())
	assert.Contains(t, v.View(), "broken config")
}

func TestView_Navigate(t *testing.T) {
	v := loadedView(t, &MockSettingsService{})

	v.Update(keyMsg("down"))
	v.Update(keyMsg("j"))
	assert.Equal(t, "admin.token", v.SelectedKey())

	v.Update(keyMsg("j"))
	assert.Equal(t, 2, v.Selected(), "stays at the bottom")

	v.Update(keyMsg("up"))
	v.Update(keyMsg("k"))
	v.Update(keyMsg("k"))
	assert.Equal(t, 0, v.Selected())
}

func TestView_EditAndSave(t *testing.T) {
	svc := &MockSettingsService{}
	v := loadedView(t, svc)
	svc.On("Set", "backend.url", "http://matcher:8000").Return(nil)

	v.Update(keyMsg("enter"))
	require.True(t, v.Editing())
	assert.Equal(t, domain.DefaultBackendURL, v.input.Value(), "edit starts from the current value")

	v.input.SetValue("http://matcher:8000")
	_, cmd := v.Update(keyMsg("enter"))
	require.NotNil(t, cmd)
	assert.False(t, v.Editing())

	saved, ok := cmd().(messages.SettingsSaved)
	require.True(t, ok)
	assert.Equal(t, messages.SettingsSaved{Key: "backend.url"}, saved)

	_, reload := v.Update(saved)
	require.NotNil(t, reload, "a successful save reloads settings")
	assert.Contains(t, v.View(), "Saved backend.url.")
	svc.AssertExpectations(t)
}

func TestView_SaveError(t *testing.T) {
	v := loadedView(t, &MockSettingsService{})

	_, cmd := v.Update(messages.SettingsSaved{Key: "ask.top_k", Err: domain.ErrInvalidInput})

	assert.Nil(t, cmd)
	assert.ErrorIs(t, v.Err(), domain.ErrInvalidInput)
	assert.Contains(t, v.View(), "Error:")
}

func TestView_EditToken_UsesPasswordEcho(t *testing.T) {
	v := loadedView(t, &MockSettingsService{})
	v.selected = 2

	v.Update(keyMsg("enter"))

	require.True(t, v.Editing())
	assert.Equal(t, textinput.EchoPassword, v.input.EchoMode)
	assert.Equal(t, "", v.input.Value(), "the token is never prefilled")
}

func TestView_EditToken_BlankKeepsCurrent(t *testing.T) {
	svc := &MockSettingsService{}
	v := loadedView(t, svc)
	v.selected = 2
	v.Update(keyMsg("enter"))

	_, cmd := v.Update(keyMsg("enter"))

	assert.Nil(t, cmd)
	assert.Contains(t, v.View(), "Token unchanged.")
	svc.AssertNotCalled(t, "Set", mock.Anything, mock.Anything)
}

func TestView_EscCancelsEdit(t *testing.T) {
	v := loadedView(t, &MockSettingsService{})
	v.Update(keyMsg("enter"))

	_, cmd := v.Update(keyMsg("esc"))

	assert.Nil(t, cmd)
	assert.False(t, v.Editing())
}

func TestView_EscReturnsToMenu(t *testing.T) {
	v := loadedView(t, &MockSettingsService{})

	_, cmd := v.Update(keyMsg("esc"))

	require.NotNil(t, cmd)
	assert.Equal(t, messages.ViewChanged{View: messages.ViewMenu}, cmd())
}

func TestView_Reset(t *testing.T) {
	v := loadedView(t, &MockSettingsService{})
	v.Update(keyMsg("enter"))
	v.err = errors.New("x")

	v.Reset()

	assert.False(t, v.Editing())
	assert.NoError(t, v.Err())
}

func TestMaskToken(t *testing.T) {
	assert.Equal(t, "(not set)", maskToken(""))
	assert.Equal(t, "****", maskToken("short"))
	assert.Equal(t, "abcd...wxyz", maskToken("abcdefghijklmnopqrstuvwxyz"))
}
