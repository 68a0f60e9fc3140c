package driving

import (
	"context"

	"github.com/custodia-labs/compass/internal/core/domain"
)

// AdminService drives the record review editor.
type AdminService interface {
	// Summary returns the review counters.
	Summary(ctx context.Context) (*domain.AdminSummary, error)

	// Record loads the record at index, clamped into [0, total-1].
	Record(ctx context.Context, index int) (*domain.AdminRecord, error)

	// Next loads the record after current, staying on the last one.
	Next(ctx context.Context, current domain.AdminRecord) (*domain.AdminRecord, error)

	// Prev loads the record before current, staying on the first one.
	Prev(ctx context.Context, current domain.AdminRecord) (*domain.AdminRecord, error)

	// Jump loads the record at a 1-based position.
	Jump(ctx context.Context, position int) (*domain.AdminRecord, error)

	// Update stores an edited record.
	Update(ctx context.Context, edit domain.AdminEdit) (*domain.AdminUpdateResult, error)

	// SaveAll writes every record to the service's files.
	SaveAll(ctx context.Context) (*domain.SaveResult, error)

	// Upsert reindexes records, only dirty ones when onlyDirty is set.
	Upsert(ctx context.Context, onlyDirty bool) (*domain.UpsertResult, error)

	// GenerateText builds the embedding text from the edited fields.
	GenerateText(edit domain.AdminEdit) string
}
