package driving

import (
	"context"

	"github.com/custodia-labs/compass/internal/core/domain"
)

// HistoryService exposes recently submitted queries.
type HistoryService interface {
	// Recent returns up to limit queries, newest first. A limit of 0 uses
	// the configured default.
	Recent(ctx context.Context, limit int) ([]domain.QueryRecord, error)

	// Clear removes every recorded query.
	Clear(ctx context.Context) error
}
