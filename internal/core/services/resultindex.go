package services

import "github.com/custodia-labs/compass/internal/core/domain"

// BuildCarousel flattens ordered theme groups into slides and themes.
// Groups are visited in order; groups without hits are dropped. Each
// remaining group becomes one theme whose slides are contiguous and
// follow the previous theme's. The returned state starts at slide 0.
//
// Returns domain.ErrNoResults when no group carries a hit.
func BuildCarousel(groups []domain.ThemeGroup) (domain.CarouselState, error) {
	total := 0
	for _, g := range groups {
		total += len(g.Hits)
	}
	if total == 0 {
		return domain.CarouselState{}, domain.ErrNoResults
	}

	slides := make([]domain.Slide, 0, total)
	themes := make([]domain.Theme, 0, len(groups))
	for _, g := range groups {
		if len(g.Hits) == 0 {
			continue
		}
		themeIndex := len(themes)
		themes = append(themes, domain.Theme{
			Slug:       g.Slug,
			Label:      domain.ThemeLabel(g.Slug),
			SlideStart: len(slides),
			Count:      len(g.Hits),
		})
		for _, hit := range g.Hits {
			slides = append(slides, domain.Slide{
				SlideIndex: len(slides),
				ThemeIndex: themeIndex,
				Content:    hit,
			})
		}
	}

	return domain.CarouselState{Slides: slides, Themes: themes}, nil
}
