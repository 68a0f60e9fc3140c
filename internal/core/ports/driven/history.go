package driven

import (
	"context"

	"github.com/custodia-labs/compass/internal/core/domain"
)

// HistoryStore persists recently submitted queries.
type HistoryStore interface {
	// Save stores a query record.
	Save(ctx context.Context, record domain.QueryRecord) error

	// List returns up to limit records, newest first.
	// A limit of 0 or less returns every record.
	List(ctx context.Context, limit int) ([]domain.QueryRecord, error)

	// Clear removes every record.
	Clear(ctx context.Context) error
}
