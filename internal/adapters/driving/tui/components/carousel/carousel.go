// Package carousel renders the results carousel: theme chips, one
// resource card at a time and the position caption.
package carousel

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/compass/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/compass/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/compass/internal/core/domain"
	"github.com/custodia-labs/compass/internal/core/ports/driven"
)

// Ensure View implements the carousel port.
var _ driven.CarouselView = (*View)(nil)

// View keeps the latest carousel snapshot and turns pulses into timer
// commands. It is driven by a services.CarouselController on the update
// loop; pending commands are collected with Cmds.
type View struct {
	styles *styles.Styles

	snapshot domain.CarouselSnapshot
	pending  []tea.Cmd
	scroll   bool

	width int
}

// NewView creates an empty carousel view.
func NewView(s *styles.Styles) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &View{
		styles:   s,
		snapshot: domain.CarouselSnapshot{ActiveTheme: -1, Highlighted: -1},
		width:    80,
	}
}

// Sync stores the snapshot for the next render.
func (v *View) Sync(snapshot domain.CarouselSnapshot) {
	v.snapshot = snapshot
}

// ScrollToResults records a request to bring the results into focus.
func (v *View) ScrollToResults() {
	v.scroll = true
}

// Pulse schedules expire after the highlight duration.
func (v *View) Pulse(_ domain.HighlightPulse, expire func()) {
	v.pending = append(v.pending, tea.Tick(domain.HighlightDuration, func(time.Time) tea.Msg {
		return messages.TimerFired{Fire: expire}
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

// TakeScroll reports whether a scroll was requested since the last call.
func (v *View) TakeScroll() bool {
	s := v.scroll
	v.scroll = false
	return s
}

// Snapshot returns the last synced snapshot.
func (v *View) Snapshot() domain.CarouselSnapshot {
	return v.snapshot
}

// SetWidth sets the render width.
func (v *View) SetWidth(width int) {
	v.width = width
}

// Render draws the carousel for state. It renders nothing while the
// snapshot is hidden.
func (v *View) Render(state domain.CarouselState) string {
	snap := v.snapshot
	if !snap.Visible {
		return ""
	}
	if snap.Placeholders > 0 {
		return v.renderSkeleton(snap)
	}
	if snap.ActiveSlide < 0 || snap.ActiveSlide >= len(state.Slides) {
		return ""
	}

	var b strings.Builder
	b.WriteString(v.renderChips(state.Themes, snap.ActiveTheme))
	b.WriteString("\n\n")
	b.WriteString(v.renderCard(state.Slides[snap.ActiveSlide], snap.Highlighted == snap.ActiveSlide))
	b.WriteString("\n")
	b.WriteString(v.renderNav(snap))
	return b.String()
}

func (v *View) renderSkeleton(snap domain.CarouselSnapshot) string {
	cardWidth := v.cardWidth()
	boxes := make([]string, 0, snap.Placeholders)
	for i := 0; i < snap.Placeholders; i++ {
		body := strings.Repeat("░", cardWidth/2) + "\n" + strings.Repeat("░", cardWidth/3)
		boxes = append(boxes, v.styles.Skeleton.Width(cardWidth).Render(body))
	}
	return strings.Join(boxes, "\n") + "\n" + v.styles.Muted.Render(snap.Caption)
}

func (v *View) renderChips(themes []domain.Theme, active int) string {
	chips := make([]string, 0, len(themes))
	for i, t := range themes {
		label := fmt.Sprintf("%d %s (%d)", i+1, t.Label, t.Count)
		if i == active {
			chips = append(chips, v.styles.ChipActive.Render(label))
		} else {
			chips = append(chips, v.styles.Chip.Render(label))
		}
	}
	return lipgloss.NewStyle().Width(v.width).Render(strings.Join(chips, " "))
}

func (v *View) renderCard(slide domain.Slide, highlighted bool) string {
	rec := slide.Content
	m := rec.Metadata

	lines := []string{
		v.styles.Title.Render(rec.DisplayName()) + "  " + v.styles.Muted.Render("score "+rec.ScoreText()),
	}
	if m.Organization.IsPresent() {
		lines = append(lines, v.styles.Subtitle.Render(m.Organization.Value()))
	}
	if rec.Summary.IsPresent() {
		lines = append(lines, "", v.styles.Normal.Render(rec.Summary.Value()))
	}
	lines = append(lines,
		"",
		v.row("Address", m.Address()),
		v.styles.Muted.Render(m.Locality()),
		v.row("Phone", m.Phone.Display()),
		v.row("Website", m.Website.Display()),
		v.row("Email", m.Email.Display()),
		v.row("Hours", m.Hours.Display()),
		v.row("Fees", m.Fees.Display()),
		v.row("Languages", m.Languages.Display()),
		v.row("Categories", m.Categories.Display()),
	)
	if url := m.MapsURL(); url != "" {
		lines = append(lines, v.row("Map", url))
	}

	style := v.styles.Card
	if highlighted {
		style = v.styles.CardHighlight
	}
	return style.Width(v.cardWidth()).Render(strings.Join(lines, "\n"))
}

func (v *View) row(label, value string) string {
	return v.styles.Muted.Render(fmt.Sprintf("%-11s", label+":")) + v.styles.Normal.Render(value)
}

func (v *View) renderNav(snap domain.CarouselSnapshot) string {
	prev, next := "‹ prev", "next ›"
	if snap.PrevEnabled {
		prev = v.styles.Subtitle.Render(prev)
	} else {
		prev = v.styles.Muted.Render(prev)
	}
	if snap.NextEnabled {
		next = v.styles.Subtitle.Render(next)
	} else {
		next = v.styles.Muted.Render(next)
	}
	return prev + "  " + v.styles.Muted.Render(snap.Caption) + "  " + next
}

func (v *View) cardWidth() int {
	w := v.width - 4
	if w < 30 {
		w = 30
	}
	return w
}
