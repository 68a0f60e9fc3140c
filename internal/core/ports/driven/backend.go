package driven

import (
	"context"

	"github.com/custodia-labs/compass/internal/core/domain"
)

// ResourceBackend submits queries to the resource-matching service.
// Ranking and grouping happen on the service; hits arrive ready to render.
type ResourceBackend interface {
	// Ask runs a query. onStage, when non-nil, is called as the request
	// passes each lifecycle stage.
	Ask(ctx context.Context, req domain.AskRequest, onStage domain.StageFunc) (*domain.AskResponse, error)
}

// AdminBackend exposes the record review endpoints of the service.
type AdminBackend interface {
	// Summary returns the review counters.
	Summary(ctx context.Context) (*domain.AdminSummary, error)

	// Record returns the record at index. The service clamps out-of-range
	// indexes.
	Record(ctx context.Context, index int) (*domain.AdminRecord, error)

	// Update stores an edited record.
	Update(ctx context.Context, token string, edit domain.AdminEdit) (*domain.AdminUpdateResult, error)

	// Save writes every record to the service's files.
	Save(ctx context.Context, token string) (*domain.SaveResult, error)

	// Upsert re-embeds and reindexes records, only dirty ones when onlyDirty
	// is set.
	Upsert(ctx context.Context, token string, onlyDirty bool) (*domain.UpsertResult, error)
}
