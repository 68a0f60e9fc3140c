package services

import (
	"errors"
	"fmt"

	"github.com/custodia-labs/compass/internal/core/domain"
	"github.com/custodia-labs/compass/internal/logger"
)

// Outcome summarises how a query lifecycle ended.
type Outcome struct {
	// Status is the status line, e.g. "Done. 3 resource(s)." or "Error 502".
	Status string

	// ResultCount is the summary line above the carousel. Empty when no
	// results are shown.
	ResultCount string

	// Total is the number of slides shown.
	Total int

	// Themes is the number of themes shown.
	Themes int

	// Empty is true when the empty-results view is shown.
	Empty bool

	// Failed is true when the query failed.
	Failed bool

	// Narrative is the resolved action plan.
	Narrative domain.Narrative
}

// ResultSession runs query lifecycles over one carousel, citation
// resolver and progress overlay. Every Begin starts a new generation;
// completions carrying an older generation are discarded so a slow
// response never overwrites a newer one.
type ResultSession struct {
	carousel  *CarouselController
	citations *CitationResolver
	overlay   *ProgressOverlay

	generation uint64
	status     string
	outcome    Outcome
}

// NewResultSession creates a session over the given controllers.
func NewResultSession(
	carousel *CarouselController,
	citations *CitationResolver,
	overlay *ProgressOverlay,
) *ResultSession {
	return &ResultSession{
		carousel:  carousel,
		citations: citations,
		overlay:   overlay,
		status:    domain.StatusReady,
	}
}

// Carousel returns the carousel controller.
func (s *ResultSession) Carousel() *CarouselController {
	return s.carousel
}

// Citations returns the citation resolver.
func (s *ResultSession) Citations() *CitationResolver {
	return s.citations
}

// Overlay returns the progress overlay.
func (s *ResultSession) Overlay() *ProgressOverlay {
	return s.overlay
}

// Generation returns the latest request generation.
func (s *ResultSession) Generation() uint64 {
	return s.generation
}

// Status returns the current status line.
func (s *ResultSession) Status() string {
	return s.status
}

// Outcome returns the outcome of the last finished lifecycle.
func (s *ResultSession) Outcome() Outcome {
	return s.outcome
}

// Begin starts a query lifecycle: the overlay is shown, the previous
// index and narrative are dropped and placeholder slides are displayed.
// Returns the generation the completion must carry.
func (s *ResultSession) Begin() uint64 {
	s.generation++
	s.status = domain.StatusSearching
	s.outcome = Outcome{}

	s.overlay.Show(domain.MilestoneShow.Message)
	s.overlay.Advance(domain.MilestoneAnalyzing)
	s.citations.Reset()
	s.carousel.ShowSkeleton(domain.DefaultPlaceholders)

	logger.Debug("Session generation %d started", s.generation)
	return s.generation
}

// Stage applies a request lifecycle milestone for generation gen.
// Stages of superseded generations are ignored.
func (s *ResultSession) Stage(gen uint64, stage domain.RequestStage) {
	if gen != s.generation {
		return
	}
	s.overlay.Advance(stage.Milestone())
}

// Complete renders a response for generation gen. Returns
// domain.ErrStaleResponse, leaving every state untouched, when gen has
// been superseded.
func (s *ResultSession) Complete(gen uint64, resp *domain.AskResponse) (Outcome, error) {
	if gen != s.generation {
		logger.Debug("Discarding response for generation %d (latest %d)", gen, s.generation)
		return Outcome{}, fmt.Errorf("generation %d: %w", gen, domain.ErrStaleResponse)
	}
	if resp == nil {
		resp = &domain.AskResponse{}
	}

	s.overlay.Advance(domain.MilestoneHeaders)

	var out Outcome
	state, err := BuildCarousel(resp.Groups)
	switch {
	case errors.Is(err, domain.ErrNoResults):
		s.carousel.Clear()
		out.Empty = true
	default:
		s.carousel.Load(state)
		out.Total = len(state.Slides)
		out.Themes = len(state.Themes)
		out.ResultCount = domain.ResultCountText(out.Total, out.Themes)
	}
	s.overlay.Advance(domain.MilestoneParsed)

	out.Narrative = s.citations.Rebuild(state.Slides, resp.ActionPlan)
	s.overlay.Advance(domain.MilestoneNarrative)

	out.Status = domain.DoneStatusText(out.Total)
	s.status = out.Status
	s.outcome = out
	s.overlay.Hide(domain.CompletionSucceeded)
	return out, nil
}

// Fail renders the empty-results view for a failed request of
// generation gen. Stale failures are discarded like stale responses.
func (s *ResultSession) Fail(gen uint64, cause error) (Outcome, error) {
	if gen != s.generation {
		logger.Debug("Discarding failure for generation %d (latest %d)", gen, s.generation)
		return Outcome{}, fmt.Errorf("generation %d: %w", gen, domain.ErrStaleResponse)
	}
	logger.Warn("Query failed: %v", cause)

	s.carousel.Clear()
	s.citations.Reset()

	out := Outcome{
		Status: domain.ErrorStatusText(domain.StatusCodeOf(cause)),
		Empty:  true,
		Failed: true,
	}
	s.status = out.Status
	s.outcome = out
	s.overlay.Hide(domain.CompletionFailed)
	return out, nil
}

// Reset clears every state and supersedes any in-flight request.
func (s *ResultSession) Reset() {
	s.generation++
	s.status = domain.StatusReady
	s.outcome = Outcome{}
	s.carousel.Clear()
	s.citations.Reset()
	s.overlay.Hide("")
}
