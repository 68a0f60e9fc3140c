// Package ask provides the query view of the TUI: the query input, the
// progress overlay, the results carousel and the action plan.
package ask

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/compass/internal/adapters/driving/tui/components/carousel"
	"github.com/custodia-labs/compass/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/compass/internal/adapters/driving/tui/components/overlay"
	"github.com/custodia-labs/compass/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/compass/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/compass/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/compass/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/compass/internal/core/domain"
	"github.com/custodia-labs/compass/internal/core/ports/driven"
	"github.com/custodia-labs/compass/internal/core/ports/driving"
	"github.com/custodia-labs/compass/internal/core/services"
)

// ErrNoAskService indicates that no ask service was provided.
var ErrNoAskService = errors.New("ask service is required")

// stageBuffer bounds the stages queued between the request goroutine and
// the update loop. Stages beyond it are dropped.
const stageBuffer = 8

// View is the query view. It owns one result session whose carousel and
// overlay render through components of this view.
type View struct {
	styles    *styles.Styles
	keymap    *keymap.KeyMap
	input     *input.QueryInput
	carousel  *carousel.View
	overlay   *overlay.View
	statusbar *status.Bar
	body      viewport.Model

	session    *services.ResultSession
	askService driving.AskService
	ctx        context.Context

	// stages feeds lifecycle stages of the latest request.
	stages <-chan domain.RequestStage

	width      int
	height     int
	ready      bool
	err        error
	focusInput bool // true = typing a query, false = navigating results
	cite       int  // citation cursor, -1 when none is selected
}

// NewView creates a new query view.
func NewView(
	s *styles.Styles,
	km *keymap.KeyMap,
	askService driving.AskService,
	sanitizer driven.MarkupSanitizer,
) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	cv := carousel.NewView(s)
	ov := overlay.NewView(s)
	controller := services.NewCarouselController(cv)
	session := services.NewResultSession(
		controller,
		services.NewCitationResolver(controller, sanitizer),
		services.NewProgressOverlay(ov),
	)

	return &View{
		styles:     s,
		keymap:     km,
		input:      input.NewQueryInput(s),
		carousel:   cv,
		overlay:    ov,
		statusbar:  status.NewBar(s, km),
		body:       viewport.New(80, 12),
		session:    session,
		askService: askService,
		ctx:        context.Background(),
		width:      80,
		height:     24,
		focusInput: true,
		cite:       -1,
	}
}

// WithContext sets the context for the view.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return tea.Batch(v.input.Init(), v.drain())
}

// Update handles messages for the query view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.StageReached:
		v.session.Stage(msg.Generation, msg.Stage)
		if msg.Generation != v.session.Generation() {
			return v, nil
		}
		return v, waitForStage(msg.Generation, v.stages)

	case messages.AskCompleted:
		return v, v.handleAskCompleted(msg)

	case messages.TimerFired:
		if msg.Fire != nil {
			msg.Fire()
		}
		return v, v.drain()

	case messages.ErrorOccurred:
		v.err = msg.Err
		v.statusbar.SetState(status.StateError)
		v.statusbar.SetMessage(msg.Err.Error())
		return v, nil
	}

	if v.focusInput {
		var cmd tea.Cmd
		v.input, cmd = v.input.Update(msg)
		return v, cmd
	}
	return v, nil
}

// handleKeyMsg processes keyboard input.
func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	// Esc always signals to go back to menu
	if msg.Type == tea.KeyEsc {
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewMenu}
		}
	}

	if v.focusInput {
		if msg.Type == tea.KeyEnter {
			return v, v.Ask(v.input.Value())
		}
		var cmd tea.Cmd
		v.input, cmd = v.input.Update(msg)
		return v, cmd
	}

	key := msg.String()
	controller := v.session.Carousel()
	switch {
	case keymap.Matches(key, v.keymap.Prev):
		controller.Move(-1)
	case keymap.Matches(key, v.keymap.Next):
		controller.Move(1)
	case keymap.Matches(key, v.keymap.Theme):
		controller.JumpToTheme(int(key[0]-'1'))
	case keymap.Matches(key, v.keymap.Cite):
		v.moveCite(1)
	case key == "shift+tab":
		v.moveCite(-1)
	case keymap.Matches(key, v.keymap.Open), msg.Type == tea.KeyEnter:
		v.activateCite()
	case keymap.Matches(key, v.keymap.NewQuery), key == "n":
		v.focusInput = true
		v.input.SetValue("")
		return v, v.input.Focus()
	case keymap.Matches(key, v.keymap.Up):
		v.body.SetYOffset(v.body.YOffset - 1)
	case keymap.Matches(key, v.keymap.Down):
		v.body.SetYOffset(v.body.YOffset + 1)
	case key == "pgup":
		v.body.SetYOffset(v.body.YOffset - v.body.Height)
	case key == "pgdown":
		v.body.SetYOffset(v.body.YOffset + v.body.Height)
	}
	return v, v.drain()
}

// Ask starts a query lifecycle for query. Blank queries do nothing.
func (v *View) Ask(query string) tea.Cmd {
	if v.askService == nil {
		return func() tea.Msg {
			return messages.ErrorOccurred{Err: ErrNoAskService}
		}
	}
	req := v.askService.NewRequest(query)
	if req.Query == "" {
		return nil
	}

	v.input.SetValue(req.Query)
	v.input.Blur()
	v.focusInput = false
	v.err = nil
	v.cite = -1

	gen := v.session.Begin()
	v.statusbar.SetState(status.StateSearching)
	v.statusbar.SetMessage(v.session.Status())

	stages := make(chan domain.RequestStage, stageBuffer)
	v.stages = stages

	ctx, svc := v.ctx, v.askService
	run := func() tea.Msg {
		defer close(stages)
		resp, err := svc.Ask(ctx, req, func(stage domain.RequestStage) {
			select {
			case stages <- stage:
			default:
			}
		})
		return messages.AskCompleted{Generation: gen, Response: resp, Err: err}
	}
	return tea.Batch(run, waitForStage(gen, stages), v.drain())
}

// waitForStage relays the next stage of generation gen. It yields no
// message once the request has finished.
func waitForStage(gen uint64, stages <-chan domain.RequestStage) tea.Cmd {
	if stages == nil {
		return nil
	}
	return func() tea.Msg {
		stage, ok := <-stages
		if !ok {
			return nil
		}
		return messages.StageReached{Generation: gen, Stage: stage}
	}
}

// handleAskCompleted renders a response or a failure. Completions of
// superseded requests are dropped.
func (v *View) handleAskCompleted(msg messages.AskCompleted) tea.Cmd {
	var (
		out services.Outcome
		err error
	)
	if msg.Err != nil {
		out, err = v.session.Fail(msg.Generation, msg.Err)
	} else {
		out, err = v.session.Complete(msg.Generation, msg.Response)
	}
	if errors.Is(err, domain.ErrStaleResponse) {
		return nil
	}

	v.cite = -1
	v.body.GotoTop()
	if out.Failed {
		v.err = msg.Err
		v.statusbar.SetState(status.StateError)
	} else {
		v.err = nil
		v.statusbar.SetState(status.StateResults)
	}
	v.statusbar.SetMessage(out.Status)
	return v.drain()
}

func (v *View) moveCite(delta int) {
	cites := v.session.Citations().Narrative().CitationSegments()
	if len(cites) == 0 {
		v.cite = -1
		return
	}
	switch {
	case v.cite < 0 && delta < 0:
		v.cite = len(cites) - 1
	case v.cite < 0:
		v.cite = 0
	default:
		v.cite = (v.cite + delta + len(cites)) % len(cites)
	}
}

func (v *View) activateCite() {
	cites := v.session.Citations().Narrative().CitationSegments()
	if v.cite < 0 || v.cite >= len(cites) {
		return
	}
	seg := cites[v.cite]
	if !v.session.Citations().Activate(seg.CitationID) {
		v.statusbar.SetMessage(seg.Label + " is not among the results")
	}
}

// drain collects the timers scheduled by the carousel and the overlay and
// applies pending scroll requests.
func (v *View) drain() tea.Cmd {
	if v.carousel.TakeScroll() {
		v.body.GotoTop()
		v.focusInput = false
		v.input.Blur()
	}
	return tea.Batch(v.carousel.Cmds(), v.overlay.Cmds())
}

// View renders the query view.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	sections := make([]string, 0, 10)
	sections = append(sections, v.styles.Title.Render("Compass"), "", v.input.View(), "")

	if ov := v.overlay.View(); ov != "" {
		sections = append(sections, ov, "")
	}

	v.body.SetContent(v.renderBody())
	sections = append(sections, v.body.View(), "", v.statusbar.View())

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderBody renders the scrollable results region.
func (v *View) renderBody() string {
	out := v.session.Outcome()
	state := v.session.Carousel().State()

	parts := make([]string, 0, 6)
	if out.ResultCount != "" {
		parts = append(parts, v.styles.Subtitle.Render(out.ResultCount), "")
	}
	if c := v.carousel.Render(state); c != "" {
		parts = append(parts, c)
	} else if out.Empty {
		parts = append(parts, v.styles.Muted.Render(domain.EmptyResultsText))
	}

	if n := v.session.Citations().Narrative(); !n.Empty() {
		parts = append(parts, "", v.styles.Title.Render("Action plan"), v.renderNarrative(n))
	}
	return strings.Join(parts, "\n")
}

// renderNarrative renders the action plan with its citation links. The
// link under the cursor is marked.
func (v *View) renderNarrative(n domain.Narrative) string {
	wrap := lipgloss.NewStyle().Width(v.width - 2)
	paras := make([]string, 0, len(n.Paragraphs))
	idx := 0
	for _, p := range n.Paragraphs {
		var b strings.Builder
		for _, s := range p.Segments {
			switch s.Kind {
			case domain.SegmentText:
				b.WriteString(v.styles.Normal.Render(s.Text))
			case domain.SegmentLineBreak:
				b.WriteString("\n")
			case domain.SegmentCitation:
				b.WriteString(v.renderCitation(s, idx == v.cite))
				idx++
			}
		}
		paras = append(paras, wrap.Render(b.String()))
	}
	return strings.Join(paras, "\n\n")
}

func (v *View) renderCitation(s domain.Segment, active bool) string {
	label := fmt.Sprintf("[%s]", s.Label)
	switch {
	case active:
		return v.styles.CitationActive.Render(label)
	case s.Resolved:
		return v.styles.Citation.Render(label)
	default:
		return v.styles.Muted.Render(label)
	}
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true

	v.input.SetWidth(width)
	v.carousel.SetWidth(width)
	v.overlay.SetWidth(width)
	v.statusbar.SetWidth(width)

	// header, input, overlay and status bar
	bodyHeight := height - 12
	if bodyHeight < 5 {
		bodyHeight = 5
	}
	v.body.Width = width
	v.body.Height = bodyHeight
}

// Ready returns whether the view is ready to render.
func (v *View) Ready() bool {
	return v.ready
}

// Session returns the result session driven by the view.
func (v *View) Session() *services.ResultSession {
	return v.session
}

// Query returns the current query text.
func (v *View) Query() string {
	return v.input.Value()
}

// Err returns the last query error, if any.
func (v *View) Err() error {
	return v.err
}

// InputFocused returns whether the input has focus.
func (v *View) InputFocused() bool {
	return v.focusInput
}

// CiteCursor returns the selected citation, or -1 when none is selected.
func (v *View) CiteCursor() int {
	return v.cite
}

// Reset supersedes any running query and returns to input mode.
func (v *View) Reset() {
	v.session.Reset()
	v.stages = nil
	v.focusInput = true
	v.input.Focus()
	v.input.SetValue("")
	v.err = nil
	v.cite = -1
	v.body.GotoTop()
	v.statusbar.Clear()
}
