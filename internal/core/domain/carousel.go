package domain

import (
	"fmt"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"
)

// GeneralThemeSlug is the reserved slug for hits not tied to a specific need.
const GeneralThemeSlug = "general"

// GeneralThemeLabel is the fixed title used for the general theme.
const GeneralThemeLabel = "Recommended Resources"

// ThemeGroup is one entry of the grouped results, in the order the
// service returned it.
type ThemeGroup struct {
	Slug string
	Hits []ResourceRecord
}

// Theme is a contiguous run of carousel slides sharing one need category.
type Theme struct {
	Slug       string
	Label      string
	SlideStart int
	Count      int
}

// End returns the exclusive end index of the theme's slide range.
func (t Theme) End() int {
	return t.SlideStart + t.Count
}

// Slide wraps exactly one result record in the carousel.
type Slide struct {
	SlideIndex int
	ThemeIndex int
	Content    ResourceRecord
}

// ThemeLabel derives the display label for a theme slug.
func ThemeLabel(slug string) string {
	if slug == GeneralThemeSlug || slug == "" {
		return GeneralThemeLabel
	}
	return SlugToTitle(slug)
}

// SlugToTitle title-cases hyphen-separated words: "food-assistance"
// becomes "Food Assistance".
func SlugToTitle(slug string) string {
	parts := strings.Split(slug, "-")
	words := make([]string, 0, len(parts))
	for _, p := range parts {
		if p == "" {
			continue
		}
		r, size := utf8.DecodeRuneInString(p)
		words = append(words, string(unicode.ToUpper(r))+p[size:])
	}
	return strings.Join(words, " ")
}

// CarouselState is the navigation state of the results carousel.
// When Slides is non-empty, 0 <= CurrentSlide < len(Slides).
// When empty, CurrentSlide is 0 and navigation is disabled.
type CarouselState struct {
	Slides       []Slide
	Themes       []Theme
	CurrentSlide int
}

// Empty reports whether the carousel has no slides.
func (s CarouselState) Empty() bool {
	return len(s.Slides) == 0
}

// ActiveSlide returns the current slide, or false when empty.
func (s CarouselState) ActiveSlide() (Slide, bool) {
	if s.CurrentSlide < 0 || s.CurrentSlide >= len(s.Slides) {
		return Slide{}, false
	}
	return s.Slides[s.CurrentSlide], true
}

// ActiveThemeIndex returns the theme of the current slide, or -1 when empty.
func (s CarouselState) ActiveThemeIndex() int {
	slide, ok := s.ActiveSlide()
	if !ok {
		return -1
	}
	return slide.ThemeIndex
}

// LoadingCaption is shown while placeholder slides are displayed.
const LoadingCaption = "Loading results…"

// DefaultPlaceholders is the number of skeleton slides shown while a query
// is pending.
const DefaultPlaceholders = 3

// HighlightDuration is how long a citation pulse stays on a slide.
const HighlightDuration = 1600 * time.Millisecond

// HighlightPulse is one transient highlight of a slide. Token identifies
// the pulse so an expiry only clears the pulse it was scheduled for.
type HighlightPulse struct {
	SlideIndex int
	Token      uint64
}

// CarouselSnapshot is the derived view-sync data for one carousel render.
// It is computed from CarouselState and never stored.
type CarouselSnapshot struct {
	// Visible is false when the carousel section is hidden.
	Visible bool

	// Placeholders is the number of skeleton slides shown while loading.
	Placeholders int

	// SlideCount is the number of real slides.
	SlideCount int

	// ActiveSlide is the index of the slide marked active.
	ActiveSlide int

	// OffsetPercent is the horizontal track offset (-100 per slide).
	OffsetPercent int

	// PrevEnabled and NextEnabled reflect the two navigation boundaries.
	PrevEnabled bool
	NextEnabled bool

	// ActiveTheme is the theme chip marked active, or -1.
	ActiveTheme int

	// Caption is the human-readable position line.
	Caption string

	// Highlighted is the slide carrying a pulse, or -1.
	Highlighted int
}

// Caption formats the position caption for a slide within its theme:
// "<label>: result X of N • Y of T overall".
func Caption(theme Theme, current, total int) string {
	within := current - theme.SlideStart + 1
	return fmt.Sprintf("%s: result %d of %d • %d of %d overall",
		theme.Label, within, theme.Count, current+1, total)
}
