package services

import (
	"github.com/custodia-labs/compass/internal/core/domain"
	"github.com/custodia-labs/compass/internal/core/ports/driven"
)

// NavOptions controls the side effects of a navigation.
type NavOptions struct {
	// Scroll brings the results region into view.
	Scroll bool

	// Highlight pulses the slide that becomes active.
	Highlight bool
}

// GoTo returns state with the current slide moved to index, clamped into
// range. An empty carousel is returned unchanged.
func GoTo(state domain.CarouselState, index int) domain.CarouselState {
	n := len(state.Slides)
	if n == 0 {
		state.CurrentSlide = 0
		return state
	}
	state.CurrentSlide = clamp(index, 0, n-1)
	return state
}

// Move returns state moved by delta slides, clamped into range.
func Move(state domain.CarouselState, delta int) domain.CarouselState {
	return GoTo(state, state.CurrentSlide+delta)
}

// JumpToTheme returns state moved to the first slide of a theme. The
// boolean is false, and state unchanged, when themeIndex is out of range.
func JumpToTheme(state domain.CarouselState, themeIndex int) (domain.CarouselState, bool) {
	if themeIndex < 0 || themeIndex >= len(state.Themes) {
		return state, false
	}
	return GoTo(state, state.Themes[themeIndex].SlideStart), true
}

// Snapshot derives the view-sync data for state.
func Snapshot(state domain.CarouselState) domain.CarouselSnapshot {
	if state.Empty() {
		return domain.CarouselSnapshot{ActiveTheme: -1, Highlighted: -1}
	}
	cur := state.CurrentSlide
	total := len(state.Slides)
	snap := domain.CarouselSnapshot{
		Visible:       true,
		SlideCount:    total,
		ActiveSlide:   cur,
		OffsetPercent: cur * -100,
		PrevEnabled:   cur > 0,
		NextEnabled:   cur < total-1,
		ActiveTheme:   state.ActiveThemeIndex(),
		Highlighted:   -1,
	}
	if snap.ActiveTheme >= 0 && snap.ActiveTheme < len(state.Themes) {
		snap.Caption = domain.Caption(state.Themes[snap.ActiveTheme], cur, total)
	}
	return snap
}

// SkeletonSnapshot derives the view-sync data for n placeholder slides.
// Navigation is disabled while placeholders are shown.
func SkeletonSnapshot(n int) domain.CarouselSnapshot {
	if n < 1 {
		n = 1
	}
	return domain.CarouselSnapshot{
		Visible:      true,
		Placeholders: n,
		ActiveTheme:  -1,
		Caption:      domain.LoadingCaption,
		Highlighted:  -1,
	}
}

// CarouselController owns the carousel state and keeps a view in sync
// with it. Out-of-range navigation clamps or does nothing; no operation
// fails.
type CarouselController struct {
	view driven.CarouselView

	state        domain.CarouselState
	placeholders int

	highlight int
	pulse     uint64
}

// NewCarouselController creates a controller rendering to view.
// A nil view renders nothing.
func NewCarouselController(view driven.CarouselView) *CarouselController {
	return &CarouselController{view: view, highlight: -1}
}

// SetView replaces the view and re-syncs it.
func (c *CarouselController) SetView(view driven.CarouselView) {
	c.view = view
	c.sync()
}

// State returns the current carousel state.
func (c *CarouselController) State() domain.CarouselState {
	return c.state
}

// Load replaces the slides and themes wholesale and shows slide 0.
func (c *CarouselController) Load(state domain.CarouselState) {
	c.state = GoTo(state, 0)
	c.placeholders = 0
	c.highlight = -1
	c.sync()
}

// Clear drops every slide and hides the carousel.
func (c *CarouselController) Clear() {
	c.state = domain.CarouselState{}
	c.placeholders = 0
	c.highlight = -1
	c.sync()
}

// ShowSkeleton clears the carousel and shows n placeholder slides.
func (c *CarouselController) ShowSkeleton(n int) {
	if n < 1 {
		n = domain.DefaultPlaceholders
	}
	c.state = domain.CarouselState{}
	c.placeholders = n
	c.highlight = -1
	c.sync()
}

// GoTo activates the slide at index, clamped into range.
func (c *CarouselController) GoTo(index int, opts NavOptions) {
	if c.state.Empty() {
		return
	}
	c.state = GoTo(c.state, index)
	if opts.Highlight {
		c.pulse++
		c.highlight = c.state.CurrentSlide
	}
	c.sync()

	if c.view == nil {
		return
	}
	if opts.Scroll {
		c.view.ScrollToResults()
	}
	if opts.Highlight {
		p := domain.HighlightPulse{SlideIndex: c.highlight, Token: c.pulse}
		c.view.Pulse(p, func() { c.ExpireHighlight(p.Token) })
	}
}

// Move shifts the active slide by delta without scrolling.
func (c *CarouselController) Move(delta int) {
	c.GoTo(c.state.CurrentSlide+delta, NavOptions{})
}

// JumpToTheme activates the first slide of a theme and scrolls to it.
func (c *CarouselController) JumpToTheme(themeIndex int) {
	if themeIndex < 0 || themeIndex >= len(c.state.Themes) {
		return
	}
	c.GoTo(c.state.Themes[themeIndex].SlideStart, NavOptions{Scroll: true})
}

// ExpireHighlight clears the pulse identified by token. Expiries of
// superseded pulses are ignored.
func (c *CarouselController) ExpireHighlight(token uint64) {
	if token != c.pulse || c.highlight < 0 {
		return
	}
	c.highlight = -1
	c.sync()
}

// Snapshot returns the view-sync data for the current state.
func (c *CarouselController) Snapshot() domain.CarouselSnapshot {
	if c.placeholders > 0 {
		return SkeletonSnapshot(c.placeholders)
	}
	snap := Snapshot(c.state)
	if snap.Visible {
		snap.Highlighted = c.highlight
	}
	return snap
}

func (c *CarouselController) sync() {
	if c.view == nil {
		return
	}
	c.view.Sync(c.Snapshot())
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
