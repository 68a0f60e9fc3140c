// Package overlay renders the request progress overlay.
package overlay

import (
	"time"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/compass/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/compass/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/compass/internal/core/domain"
	"github.com/custodia-labs/compass/internal/core/ports/driven"
)

// Ensure View implements the overlay port.
var _ driven.OverlayView = (*View)(nil)

// View draws a progress bar with a status message while a query runs.
type View struct {
	styles  *styles.Styles
	bar     progress.Model
	state   domain.ProgressState
	pending []tea.Cmd
}

// NewView creates a hidden overlay.
func NewView(s *styles.Styles) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &View{
		styles: s,
		bar:    progress.New(progress.WithDefaultGradient(), progress.WithWidth(40)),
	}
}

// Render stores the state for the next draw.
func (v *View) Render(state domain.ProgressState) {
	v.state = state
}

// Settle schedules settle once after has elapsed.
func (v *View) Settle(after time.Duration, settle func()) {
	v.pending = append(v.pending, tea.Tick(after, func(time.Time) tea.Msg {
		return messages.TimerFired{Fire: settle}
	}))
}

// Cmds returns and clears the commands scheduled since the last call.
func (v *View) Cmds() tea.Cmd {
	if len(v.pending) == 0 {
		return nil
	}
	cmds := v.pending
	v.pending = nil
	return tea.Batch(cmds...)
}

// State returns the last rendered state.
func (v *View) State() domain.ProgressState {
	return v.state
}

// SetWidth sets the bar width.
func (v *View) SetWidth(width int) {
	w := width - 8
	if w > 60 {
		w = 60
	}
	if w < 10 {
		w = 10
	}
	v.bar.Width = w
}

// View draws the overlay, or nothing while it is hidden.
func (v *View) View() string {
	if !v.state.Visible {
		return ""
	}
	msgStyle := v.styles.Muted
	if !v.state.Busy {
		msgStyle = v.styles.Success
		if v.state.Message == domain.CompletionFailed {
			msgStyle = v.styles.Error
		}
	}
	return v.bar.ViewAs(v.state.Ratio()) + "\n" + msgStyle.Render(v.state.Message)
}
