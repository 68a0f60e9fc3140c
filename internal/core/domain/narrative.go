package domain

import "strings"

// IndexEntry locates one resource in the carousel.
type IndexEntry struct {
	DisplayName string
	SlideIndex  int
	ThemeIndex  int
}

// ResourceIndex maps resource identifiers to their carousel location.
// It is rebuilt every time the slides are rebuilt.
type ResourceIndex map[string]IndexEntry

// Lookup returns the entry for id, if indexed.
func (idx ResourceIndex) Lookup(id string) (IndexEntry, bool) {
	if idx == nil || id == "" {
		return IndexEntry{}, false
	}
	e, ok := idx[id]
	return e, ok
}

// SegmentKind identifies the type of a narrative segment.
type SegmentKind int

const (
	// SegmentText is literal narrative text.
	SegmentText SegmentKind = iota
	// SegmentLineBreak is a single newline inside a paragraph.
	SegmentLineBreak
	// SegmentCitation is a resolved citation marker.
	SegmentCitation
)

// Segment is one piece of a narrative paragraph.
type Segment struct {
	Kind SegmentKind

	// Text is set for SegmentText.
	Text string

	// CitationID, Label and Resolved are set for SegmentCitation.
	CitationID string
	Label      string
	Resolved   bool
}

// Paragraph is a blank-line-separated block of the narrative.
type Paragraph struct {
	Segments []Segment
}

// Narrative is an action plan with its citation markers resolved.
type Narrative struct {
	Paragraphs []Paragraph

	// Citations lists every distinct citation identifier in order of
	// first appearance.
	Citations []string

	// Markup is the sanitized HTML rendering.
	Markup string
}

// Empty reports whether the narrative has nothing to show.
func (n Narrative) Empty() bool {
	return len(n.Paragraphs) == 0
}

// CitationSegments returns the citation segments in order of appearance.
func (n Narrative) CitationSegments() []Segment {
	var out []Segment
	for _, p := range n.Paragraphs {
		for _, s := range p.Segments {
			if s.Kind == SegmentCitation {
				out = append(out, s)
			}
		}
	}
	return out
}

// PlainText renders the narrative for terminals: citations become
// "[label]" and paragraphs are separated by a blank line.
func (n Narrative) PlainText() string {
	paras := make([]string, 0, len(n.Paragraphs))
	for _, p := range n.Paragraphs {
		var b strings.Builder
		for _, s := range p.Segments {
			switch s.Kind {
			case SegmentText:
				b.WriteString(s.Text)
			case SegmentLineBreak:
				b.WriteString("\n")
			case SegmentCitation:
				b.WriteString("[" + s.Label + "]")
			}
		}
		paras = append(paras, b.String())
	}
	return strings.Join(paras, "\n\n")
}
