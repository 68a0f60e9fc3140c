// Package domain defines the core entities for compass.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - ResourceRecord: One hit returned by the resource-matching service
//   - Theme, Slide: The carousel index built from grouped hits
//   - CarouselState: Current-slide state of the results carousel
//   - Narrative: An action plan with citation markers resolved
//   - ProgressState: The request progress overlay
//   - Field, ListField: Tri-state optional values (absent, empty, present)
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
