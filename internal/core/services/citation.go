package services

import (
	"fmt"
	"html"
	"regexp"
	"strings"

	"github.com/custodia-labs/compass/internal/core/domain"
	"github.com/custodia-labs/compass/internal/core/ports/driven"
	"github.com/custodia-labs/compass/internal/logger"
)

var (
	citationPattern = regexp.MustCompile(`\[cite:\s*([^\]\s]+)\]`)
	paragraphBreak  = regexp.MustCompile(`\n{2,}`)
)

// BuildResourceIndex maps every identified slide to its location.
// Slides without an identifier are not indexed. When two slides share an
// identifier the later one wins.
func BuildResourceIndex(slides []domain.Slide) domain.ResourceIndex {
	idx := make(domain.ResourceIndex, len(slides))
	for _, s := range slides {
		id := s.Content.ID()
		if id == "" {
			continue
		}
		idx[id] = domain.IndexEntry{
			DisplayName: s.Content.CitationLabel(),
			SlideIndex:  s.SlideIndex,
			ThemeIndex:  s.ThemeIndex,
		}
	}
	return idx
}

// ResolveNarrative splits action plan text into paragraphs and resolves
// its citation markers against idx. Blank text yields an empty narrative.
// The result depends only on text and idx.
func ResolveNarrative(text string, idx domain.ResourceIndex) domain.Narrative {
	value := strings.TrimSpace(text)
	if value == "" {
		return domain.Narrative{}
	}

	var (
		n    domain.Narrative
		cur  domain.Paragraph
		seen = make(map[string]bool)
	)

	appendText := func(s string) {
		for i, part := range paragraphBreak.Split(s, -1) {
			if i > 0 {
				n.Paragraphs = append(n.Paragraphs, cur)
				cur = domain.Paragraph{}
			}
			for j, line := range strings.Split(part, "\n") {
				if j > 0 {
					cur.Segments = append(cur.Segments, domain.Segment{Kind: domain.SegmentLineBreak})
				}
				if line != "" {
					cur.Segments = append(cur.Segments, domain.Segment{Kind: domain.SegmentText, Text: line})
				}
			}
		}
	}

	last := 0
	for _, m := range citationPattern.FindAllStringSubmatchIndex(value, -1) {
		appendText(value[last:m[0]])
		last = m[1]

		id := value[m[2]:m[3]]
		seg := domain.Segment{
			Kind:       domain.SegmentCitation,
			CitationID: id,
			Label:      domain.FallbackCitationLabel(id),
		}
		if entry, ok := idx.Lookup(id); ok {
			seg.Label = entry.DisplayName
			seg.Resolved = true
		}
		cur.Segments = append(cur.Segments, seg)

		if !seen[id] {
			seen[id] = true
			n.Citations = append(n.Citations, id)
		}
	}
	appendText(value[last:])
	n.Paragraphs = append(n.Paragraphs, cur)

	n.Markup = RenderNarrative(n)
	return n
}

// RenderNarrative renders a narrative as HTML. Text is escaped; each
// citation becomes a cite-link button carrying its identifier.
func RenderNarrative(n domain.Narrative) string {
	var b strings.Builder
	for _, p := range n.Paragraphs {
		b.WriteString("<p>")
		for _, s := range p.Segments {
			switch s.Kind {
			case domain.SegmentText:
				b.WriteString(html.EscapeString(s.Text))
			case domain.SegmentLineBreak:
				b.WriteString("<br>")
			case domain.SegmentCitation:
				fmt.Fprintf(&b, `<button type="button" class="cite-link" data-id="%s">[%s]</button>`,
					html.EscapeString(s.CitationID), html.EscapeString(s.Label))
			}
		}
		b.WriteString("</p>")
	}
	return b.String()
}

// CitationResolver owns the resource index and the resolved narrative of
// the current result set, and turns citation activations into carousel
// navigation.
type CitationResolver struct {
	carousel  *CarouselController
	sanitizer driven.MarkupSanitizer

	index     domain.ResourceIndex
	narrative domain.Narrative
}

// NewCitationResolver creates a resolver driving carousel.
// The sanitizer is optional; without it markup is used as rendered.
func NewCitationResolver(carousel *CarouselController, sanitizer driven.MarkupSanitizer) *CitationResolver {
	return &CitationResolver{
		carousel:  carousel,
		sanitizer: sanitizer,
	}
}

// Rebuild replaces the index and the narrative for a new result set.
func (r *CitationResolver) Rebuild(slides []domain.Slide, actionPlan string) domain.Narrative {
	r.index = BuildResourceIndex(slides)
	n := ResolveNarrative(actionPlan, r.index)
	if r.sanitizer != nil && n.Markup != "" {
		n.Markup = r.sanitizer.Sanitize(n.Markup)
	}
	r.narrative = n
	logger.Debug("Citation index rebuilt: %d resources, %d citations", len(r.index), len(n.Citations))
	return n
}

// Reset drops the index and the narrative.
func (r *CitationResolver) Reset() {
	r.index = nil
	r.narrative = domain.Narrative{}
}

// Index returns the current resource index.
func (r *CitationResolver) Index() domain.ResourceIndex {
	return r.index
}

// Narrative returns the current resolved narrative.
func (r *CitationResolver) Narrative() domain.Narrative {
	return r.narrative
}

// Activate navigates the carousel to the cited resource with a scroll
// and a highlight. Unknown identifiers are ignored; the return value
// reports whether navigation happened.
func (r *CitationResolver) Activate(id string) bool {
	entry, ok := r.index.Lookup(id)
	if !ok {
		logger.Debug("Citation %q not in index", id)
		return false
	}
	if r.carousel != nil {
		r.carousel.GoTo(entry.SlideIndex, NavOptions{Scroll: true, Highlight: true})
	}
	return true
}
