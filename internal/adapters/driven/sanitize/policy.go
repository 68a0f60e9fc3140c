// Package sanitize provides the markup sanitizer for rendered narratives.
package sanitize

import (
	"regexp"

	"github.com/microcosm-cc/bluemonday"

	"github.com/custodia-labs/compass/internal/core/ports/driven"
)

// Ensure Sanitizer implements the interface.
var _ driven.MarkupSanitizer = (*Sanitizer)(nil)

// Sanitizer strips everything from narrative markup except paragraphs,
// line breaks and cite-link buttons.
type Sanitizer struct {
	policy *bluemonday.Policy
}

// NewSanitizer creates a sanitizer with the narrative policy.
func NewSanitizer() *Sanitizer {
	p := bluemonday.NewPolicy()
	p.AllowElements("p", "br", "button")
	p.AllowAttrs("type").Matching(regexp.MustCompile(`^button$`)).OnElements("button")
	p.AllowAttrs("class").Matching(regexp.MustCompile(`^cite-link$`)).OnElements("button")
	// Citation ids are any run without whitespace or "]"; values are
	// re-escaped on output.
	p.AllowAttrs("data-id").Matching(regexp.MustCompile(`^[^\]\s]+$`)).OnElements("button")
	return &Sanitizer{policy: p}
}

// Sanitize returns markup with disallowed elements and attributes removed.
func (s *Sanitizer) Sanitize(markup string) string {
	return s.policy.Sanitize(markup)
}
