package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/compass/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/compass/internal/core/domain"
)

func seedHistory(t *testing.T, store *memory.HistoryStore, n int) {
	t.Helper()
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < n; i++ {
		require.NoError(t, store.Save(context.Background(), domain.QueryRecord{
			Query:     fmt.Sprintf("q%d", i),
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}))
	}
}

func TestHistoryService_RecentUsesConfiguredLimit(t *testing.T) {
	store := memory.NewHistoryStore()
	seedHistory(t, store, 5)
	cfg := memory.NewConfigStore()
	_ = cfg.Set("history.limit", 2)
	service := NewHistoryService(store, NewSettingsService(cfg))

	records, err := service.Recent(context.Background(), 0)

	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "q4", records[0].Query)
	assert.Equal(t, "q3", records[1].Query)
}

func TestHistoryService_RecentExplicitLimit(t *testing.T) {
	store := memory.NewHistoryStore()
	seedHistory(t, store, 5)
	service := NewHistoryService(store, nil)

	records, err := service.Recent(context.Background(), 4)
	require.NoError(t, err)
	assert.Len(t, records, 4)
}

func TestHistoryService_Clear(t *testing.T) {
	store := memory.NewHistoryStore()
	seedHistory(t, store, 3)
	service := NewHistoryService(store, nil)

	require.NoError(t, service.Clear(context.Background()))

	records, err := service.Recent(context.Background(), 0)
	require.NoError(t, err)
	assert.Empty(t, records)
}
