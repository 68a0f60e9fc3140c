// Package history provides the recent-queries view for the TUI.
package history

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/compass/internal/adapters/driving/tui/components/list"
	"github.com/custodia-labs/compass/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/compass/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/compass/internal/core/ports/driving"
)

// ErrNoHistoryService is returned when the view has no history service.
var ErrNoHistoryService = errors.New("history service not available")

// View lists recent queries and lets the user ask one again.
type View struct {
	styles         *styles.Styles
	historyService driving.HistoryService
	list           *list.QueryList
	ctx            context.Context

	confirmClear bool
	loading      bool
	width        int
	height       int
	ready        bool
	err          error
}

// NewView creates a new history view.
func NewView(s *styles.Styles, historyService driving.HistoryService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &View{
		styles:         s,
		historyService: historyService,
		list:           list.NewQueryList(s),
		ctx:            context.Background(),
	}
}

// WithContext sets the context used for history calls.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init loads recent queries.
func (v *View) Init() tea.Cmd {
	v.loading = true
	return v.loadHistory()
}

func (v *View) loadHistory() tea.Cmd {
	ctx := v.ctx
	return func() tea.Msg {
		if v.historyService == nil {
			return messages.HistoryLoaded{Err: ErrNoHistoryService}
		}
		records, err := v.historyService.Recent(ctx, 0)
		return messages.HistoryLoaded{Records: records, Err: err}
	}
}

func (v *View) clearHistory() tea.Cmd {
	ctx := v.ctx
	return func() tea.Msg {
		if v.historyService == nil {
			return messages.HistoryLoaded{Err: ErrNoHistoryService}
		}
		if err := v.historyService.Clear(ctx); err != nil {
			return messages.HistoryLoaded{Err: fmt.Errorf("clear history: %w", err)}
		}
		return messages.HistoryLoaded{}
	}
}

// Update handles messages for the history view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case messages.HistoryLoaded:
		v.loading = false
		v.err = msg.Err
		if msg.Err == nil {
			v.list.SetRecords(msg.Records)
		}
		return v, nil

	case tea.KeyMsg:
		return v.handleKey(msg)
	}
	return v, nil
}

func (v *View) handleKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	if v.confirmClear {
		v.confirmClear = false
		if msg.String() == "y" {
			v.loading = true
			return v, v.clearHistory()
		}
		return v, nil
	}

	switch msg.String() {
	case "esc":
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewMenu}
		}
	case "enter":
		rec := v.list.SelectedRecord()
		if rec == nil {
			return v, nil
		}
		query := rec.Query
		return v, func() tea.Msg {
			return messages.HistorySelected{Query: query}
		}
	case "c":
		if !v.list.IsEmpty() {
			v.confirmClear = true
		}
		return v, nil
	case "r":
		v.loading = true
		return v, v.loadHistory()
	}

	var cmd tea.Cmd
	v.list, cmd = v.list.Update(msg)
	return v, cmd
}

// View renders the history view.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	var b strings.Builder
	b.WriteString(v.styles.Title.Render("History"))
	b.WriteString("\n\n")

	switch {
	case v.err != nil:
		b.WriteString(v.styles.Error.Render(fmt.Sprintf("Error: %v", v.err)))
	case v.loading:
		b.WriteString(v.styles.Muted.Render("Loading..."))
	default:
		b.WriteString(v.list.View())
	}
	b.WriteString("\n\n")

	if v.confirmClear {
		b.WriteString(v.styles.Warning.Render("Clear all recorded queries? [y/N]"))
	} else {
		b.WriteString(v.styles.Help.Render("[j/k] navigate  [enter] ask again  [c] clear  [r] reload  [esc] back"))
	}
	return b.String()
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
	v.list.SetDimensions(width, height-4)
}

// Reset clears transient state.
func (v *View) Reset() {
	v.confirmClear = false
	v.err = nil
	v.list.SetSelected(0)
}

// List returns the underlying query list.
func (v *View) List() *list.QueryList {
	return v.list
}

// Err returns the last error.
func (v *View) Err() error {
	return v.err
}
