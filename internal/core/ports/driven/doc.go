// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
//   - ResourceBackend: Submits queries to the resource-matching service
//   - ConfigStore: Application configuration
//   - MarkupSanitizer: Filters rendered action plan markup
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - AdminBackend: Record review endpoints. Without it, admin commands are disabled.
//   - HistoryStore: Local query history. Without it, queries are not recorded.
//   - CarouselView, OverlayView: Rendering surfaces. A nil view renders nothing.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
