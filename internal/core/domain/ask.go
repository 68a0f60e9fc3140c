package domain

import (
	"fmt"
	"strings"
)

// Default result sizes sent with every query unless overridden.
const (
	DefaultTopK       = 8
	DefaultTopResults = 5
)

// AskFilters holds the optional metadata filters of a query.
// A nil pointer means the filter is not applied.
type AskFilters struct {
	City     *string
	County   *string
	ZipCode  *string
	Language *string
	FreeOnly *bool
}

// IsZero reports whether no filter is set.
func (f AskFilters) IsZero() bool {
	return f.City == nil && f.County == nil && f.ZipCode == nil &&
		f.Language == nil && f.FreeOnly == nil
}

// Summary formats the applied filters, e.g. "city=Springfield, free only".
// Blank values and a false free-only flag are left out.
func (f AskFilters) Summary() string {
	var parts []string
	add := func(name string, v *string) {
		if v != nil && *v != "" {
			parts = append(parts, name+"="+*v)
		}
	}
	add("city", f.City)
	add("county", f.County)
	add("zip", f.ZipCode)
	add("language", f.Language)
	if f.FreeOnly != nil && *f.FreeOnly {
		parts = append(parts, "free only")
	}
	return strings.Join(parts, ", ")
}

// AskRequest is a query submitted to the resource-matching service.
type AskRequest struct {
	// Query is the free-text description of the user's situation.
	Query string

	// Filters narrows the matched resources.
	Filters AskFilters

	// TopK is the number of candidates retrieved per need.
	TopK int

	// TopResults is the number of hits shown per theme.
	TopResults int
}

// AskCounts is the summary block returned with a query response.
type AskCounts struct {
	TotalResults int
	Needs        int
}

// AskResponse is the result of a query: the grouped hits in the order
// the service returned them, and the generated action plan.
type AskResponse struct {
	Groups     []ThemeGroup
	ActionPlan string
	Counts     AskCounts
}

// TotalHits returns the number of hits across all groups.
func (r AskResponse) TotalHits() int {
	n := 0
	for _, g := range r.Groups {
		n += len(g.Hits)
	}
	return n
}

// NonEmptyGroups returns the number of groups carrying at least one hit.
func (r AskResponse) NonEmptyGroups() int {
	n := 0
	for _, g := range r.Groups {
		if len(g.Hits) > 0 {
			n++
		}
	}
	return n
}

// EmptyResultsText is shown in place of the carousel when a query
// returned no resources or failed.
const EmptyResultsText = "No matching resources found. Try different wording or fewer filters."

// Status lines shown next to the query input.
const (
	StatusReady     = "Ready"
	StatusSearching = "Searching…"
)

// ResultCountText formats the result summary line shown above the carousel.
func ResultCountText(total, themes int) string {
	noun := "themes"
	if themes == 1 {
		noun = "theme"
	}
	return fmt.Sprintf("%d resources across %d %s", total, themes, noun)
}

// ErrorStatusText formats the status line for a failed query. A zero
// status code means the request never got an HTTP answer.
func ErrorStatusText(statusCode int) string {
	if statusCode == 0 {
		return "Error"
	}
	return fmt.Sprintf("Error %d", statusCode)
}

// DoneStatusText formats the status line shown after a successful query.
func DoneStatusText(total int) string {
	return fmt.Sprintf("Done. %d resource(s).", total)
}
