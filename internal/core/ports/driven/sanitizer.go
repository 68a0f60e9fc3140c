package driven

// MarkupSanitizer filters rendered markup down to the elements the
// action plan is allowed to contain.
type MarkupSanitizer interface {
	// Sanitize returns markup with every disallowed element and attribute
	// removed.
	Sanitize(markup string) string
}
