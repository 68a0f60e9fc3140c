package driven

import (
	"time"

	"github.com/custodia-labs/compass/internal/core/domain"
)

// CarouselView renders the results carousel.
// Implementations run on the caller's goroutine and must not block.
type CarouselView interface {
	// Sync redraws the carousel from a snapshot.
	Sync(snapshot domain.CarouselSnapshot)

	// ScrollToResults brings the results region into view.
	ScrollToResults()

	// Pulse starts a transient highlight. The view calls expire once
	// domain.HighlightDuration has elapsed.
	Pulse(pulse domain.HighlightPulse, expire func())
}

// OverlayView renders the request progress overlay.
type OverlayView interface {
	// Render redraws the overlay from its state.
	Render(state domain.ProgressState)

	// Settle calls settle once after has elapsed.
	Settle(after time.Duration, settle func())
}
