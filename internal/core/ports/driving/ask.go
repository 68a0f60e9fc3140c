package driving

import (
	"context"

	"github.com/custodia-labs/compass/internal/core/domain"
)

// AskService submits queries to the resource-matching service.
type AskService interface {
	// NewRequest returns a request for query with the configured defaults
	// applied.
	NewRequest(query string) domain.AskRequest

	// Ask runs a query. onStage, when non-nil, receives request lifecycle
	// stages. An empty query returns an empty response without contacting
	// the service.
	Ask(ctx context.Context, req domain.AskRequest, onStage domain.StageFunc) (*domain.AskResponse, error)
}
