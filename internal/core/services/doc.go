// Package services implements the driving port interfaces and the
// presentation state of a result set.
//
// The presentation state is split into pure transition functions over
// domain values (BuildCarousel, GoTo, ResolveNarrative) and controllers
// that own one piece of state and push it to a view port after every
// transition (CarouselController, CitationResolver, ProgressOverlay).
// ResultSession ties the controllers together for one query lifecycle.
//
// Services are pure Go with no external dependencies.
package services
