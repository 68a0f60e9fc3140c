package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/compass/internal/core/domain"
	"github.com/custodia-labs/compass/internal/core/ports/driven"
)

// historyStore implements driven.HistoryStore.
type historyStore struct {
	store *Store
}

var _ driven.HistoryStore = (*historyStore)(nil)

// Save stores or replaces a query record. Records without an ID get one.
func (s *historyStore) Save(ctx context.Context, record domain.QueryRecord) error {
	if record.ID == "" {
		record.ID = uuid.New().String()
	}
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now()
	}

	f := record.Filters
	_, err := s.store.db.ExecContext(ctx, `
		INSERT INTO query_history (id, query, city, county, zip_code, language, free_only,
			total_results, theme_count, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			query = excluded.query,
			city = excluded.city,
			county = excluded.county,
			zip_code = excluded.zip_code,
			language = excluded.language,
			free_only = excluded.free_only,
			total_results = excluded.total_results,
			theme_count = excluded.theme_count,
			created_at = excluded.created_at
	`, record.ID, record.Query,
		nullString(f.City), nullString(f.County), nullString(f.ZipCode), nullString(f.Language),
		nullBool(f.FreeOnly), record.TotalResults, record.ThemeCount, record.CreatedAt.UTC())
	if err != nil {
		return fmt.Errorf("saving query record: %w", err)
	}
	return nil
}

// List returns up to limit records, newest first.
func (s *historyStore) List(ctx context.Context, limit int) ([]domain.QueryRecord, error) {
	if limit <= 0 {
		limit = -1 // SQLite: no limit
	}
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT id, query, city, county, zip_code, language, free_only,
			total_results, theme_count, created_at
		FROM query_history
		ORDER BY created_at DESC, rowid DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying history: %w", err)
	}
	defer rows.Close()

	var records []domain.QueryRecord //nolint:prealloc // size unknown from query
	for rows.Next() {
		var rec domain.QueryRecord
		var city, county, zip, language sql.NullString
		var freeOnly sql.NullBool
		if err := rows.Scan(&rec.ID, &rec.Query, &city, &county, &zip, &language, &freeOnly,
			&rec.TotalResults, &rec.ThemeCount, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning query record: %w", err)
		}
		rec.Filters = domain.AskFilters{
			City:     stringPtr(city),
			County:   stringPtr(county),
			ZipCode:  stringPtr(zip),
			Language: stringPtr(language),
			FreeOnly: boolPtr(freeOnly),
		}
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating history: %w", err)
	}
	return records, nil
}

// Clear removes every record.
func (s *historyStore) Clear(ctx context.Context) error {
	if _, err := s.store.db.ExecContext(ctx, "DELETE FROM query_history"); err != nil {
		return fmt.Errorf("clearing history: %w", err)
	}
	return nil
}

func nullString(v *string) sql.NullString {
	if v == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *v, Valid: true}
}

func nullBool(v *bool) sql.NullBool {
	if v == nil {
		return sql.NullBool{}
	}
	return sql.NullBool{Bool: *v, Valid: true}
}

func stringPtr(v sql.NullString) *string {
	if !v.Valid {
		return nil
	}
	s := v.String
	return &s
}

func boolPtr(v sql.NullBool) *bool {
	if !v.Valid {
		return nil
	}
	b := v.Bool
	return &b
}
