package services

import (
	"math"
	"sync"

	"github.com/custodia-labs/compass/internal/core/domain"
	"github.com/custodia-labs/compass/internal/core/ports/driven"
)

// ProgressOverlay owns the request progress state. Within one lifecycle,
// from Show to the settle after Hide, the bar value never decreases.
// It is safe for concurrent use.
type ProgressOverlay struct {
	mu    sync.Mutex
	view  driven.OverlayView
	state domain.ProgressState
}

// NewProgressOverlay creates an overlay rendering to view.
// A nil view renders nothing.
func NewProgressOverlay(view driven.OverlayView) *ProgressOverlay {
	return &ProgressOverlay{view: view}
}

// SetView replaces the view.
func (o *ProgressOverlay) SetView(view driven.OverlayView) {
	o.mu.Lock()
	o.view = view
	o.mu.Unlock()
}

// State returns the current progress state.
func (o *ProgressOverlay) State() domain.ProgressState {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.state
}

// Show starts a new lifecycle: the bar resets to 0 then advances to the
// floor. An empty message uses domain.DefaultProgressMessage.
// Returns the lifecycle number.
func (o *ProgressOverlay) Show(message string) uint64 {
	if message == "" {
		message = domain.DefaultProgressMessage
	}
	o.mu.Lock()
	o.state = domain.ProgressState{
		Current:   domain.ProgressFloor,
		Message:   message,
		Visible:   true,
		Busy:      true,
		Lifecycle: o.state.Lifecycle + 1,
	}
	lifecycle := o.state.Lifecycle
	o.mu.Unlock()

	o.render()
	return lifecycle
}

// Update advances the bar to value, rounded and clamped to 0–100.
// Lower values leave the bar where it is. A non-empty message replaces
// the current one. Updates outside a busy lifecycle are ignored.
func (o *ProgressOverlay) Update(value float64, message string) {
	o.mu.Lock()
	if !o.state.Busy {
		o.mu.Unlock()
		return
	}
	if message != "" {
		o.state.Message = message
	}
	if v := clampPercent(value); v > o.state.Current {
		o.state.Current = v
	}
	o.mu.Unlock()

	o.render()
}

// Advance applies a request milestone.
func (o *ProgressOverlay) Advance(m domain.Milestone) {
	o.Update(float64(m.Percent), m.Message)
}

// Hide completes the lifecycle: the bar jumps to 100 and, after the
// settle delay, the overlay hides and resets.
func (o *ProgressOverlay) Hide(message string) {
	o.mu.Lock()
	if !o.state.Busy {
		o.mu.Unlock()
		return
	}
	if message != "" {
		o.state.Message = message
	}
	o.state.Current = domain.ProgressComplete
	o.state.Busy = false
	lifecycle := o.state.Lifecycle
	view := o.view
	o.mu.Unlock()

	o.render()
	if view != nil {
		view.Settle(domain.ProgressSettleDelay, func() { o.Settle(lifecycle) })
	} else {
		o.Settle(lifecycle)
	}
}

// Settle hides the overlay if lifecycle is still the latest one and it
// has been hidden. A settle from an earlier lifecycle is ignored.
func (o *ProgressOverlay) Settle(lifecycle uint64) {
	o.mu.Lock()
	if lifecycle != o.state.Lifecycle || o.state.Busy || !o.state.Visible {
		o.mu.Unlock()
		return
	}
	o.state = domain.ProgressState{Lifecycle: lifecycle}
	o.mu.Unlock()

	o.render()
}

func (o *ProgressOverlay) render() {
	o.mu.Lock()
	view, state := o.view, o.state
	o.mu.Unlock()
	if view != nil {
		view.Render(state)
	}
}

func clampPercent(v float64) int {
	switch {
	case math.IsNaN(v), v <= 0:
		return 0
	case v >= domain.ProgressComplete:
		return domain.ProgressComplete
	}
	return int(math.Round(v))
}
