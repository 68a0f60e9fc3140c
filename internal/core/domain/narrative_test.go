package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResourceIndex_LookupNarrative(t *testing.T) {
	idx := ResourceIndex{"a": {DisplayName: "Pantry", SlideIndex: 2}}

	e, ok := idx.Lookup("a")
	assert.True(t, ok)
	assert.Equal(t, 2, e.SlideIndex)

	_, ok = idx.Lookup("")
	assert.False(t, ok)

	var empty ResourceIndex
	_, ok = empty.Lookup("a")
	assert.False(t, ok)
}

func TestNarrative_PlainText(t *testing.T) {
	n := Narrative{Paragraphs: []Paragraph{
		{Segments: []Segment{
			{Kind: SegmentText, Text: "Call "},
			{Kind: SegmentCitation, CitationID: "a", Label: "Pantry", Resolved: true},
			{Kind: SegmentLineBreak},
			{Kind: SegmentText, Text: "today."},
		}},
		{Segments: []Segment{{Kind: SegmentText, Text: "Then rest."}}},
	}}

	assert.Equal(t, "Call [Pantry]\ntoday.\n\nThen rest.", n.PlainText())
	assert.Len(t, n.CitationSegments(), 1)
	assert.False(t, n.Empty())
	assert.Empty(t, Narrative{}.PlainText())
}
