package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestThemeLabel tests slug to label derivation
func TestThemeLabel(t *testing.T) {
	tests := []struct {
		slug string
		want string
	}{
		{"food-assistance", "Food Assistance"},
		{"housing", "Housing"},
		{"general", "Recommended Resources"},
		{"", "Recommended Resources"},
		{"mental--health", "Mental Health"},
		{"éducation-adulte", "Éducation Adulte"},
	}

	for _, tt := range tests {
		t.Run(tt.slug, func(t *testing.T) {
			assert.Equal(t, tt.want, ThemeLabel(tt.slug))
		})
	}
}

// TestTheme_End tests exclusive theme end
func TestTheme_End(t *testing.T) {
	th := Theme{SlideStart: 1, Count: 2}
	assert.Equal(t, 3, th.End())
}

// TestCarouselState_Empty tests empty state accessors
func TestCarouselState_Empty(t *testing.T) {
	var s CarouselState
	assert.True(t, s.Empty())
	_, ok := s.ActiveSlide()
	assert.False(t, ok)
	assert.Equal(t, -1, s.ActiveThemeIndex())
}

// TestCarouselState_ActiveSlide tests active slide lookup
func TestCarouselState_ActiveSlide(t *testing.T) {
	s := CarouselState{
		Slides: []Slide{
			{SlideIndex: 0, ThemeIndex: 0},
			{SlideIndex: 1, ThemeIndex: 1},
		},
		CurrentSlide: 1,
	}
	slide, ok := s.ActiveSlide()
	assert.True(t, ok)
	assert.Equal(t, 1, slide.SlideIndex)
	assert.Equal(t, 1, s.ActiveThemeIndex())
}

// TestCaption tests caption formatting
func TestCaption(t *testing.T) {
	th := Theme{Label: "Recommended Resources", SlideStart: 1, Count: 2}
	assert.Equal(t, "Recommended Resources: result 2 of 2 • 3 of 3 overall", Caption(th, 2, 3))
}
