package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/compass/internal/core/domain"
)

func TestHistoryCmd_Empty(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()

	out, _, err := execute(t, "history")

	require.NoError(t, err)
	assert.Contains(t, out, "No queries recorded.")
}

func TestHistoryCmd_ListsRecords(t *testing.T) {
	ts, cleanup := setupTestServices()
	defer cleanup()
	city := "Springfield"
	ts.history.records = []domain.QueryRecord{
		{ID: "1", Query: "rent help", Filters: domain.AskFilters{City: &city}, TotalResults: 4, ThemeCount: 1, CreatedAt: fixedTime()},
		{ID: "2", Query: "food", TotalResults: 0, CreatedAt: fixedTime()},
	}

	out, _, err := execute(t, "history", "--limit", "5")
	require.NoError(t, err)

	assert.Equal(t, 5, ts.history.lastLimit)
	assert.Contains(t, out, "2025-03-14 09:30  rent help")
	assert.Contains(t, out, "4 resources across 1 theme  (city=Springfield)")
	assert.Contains(t, out, "0 resources across 0 themes")
}

func TestHistoryCmd_Clear(t *testing.T) {
	ts, cleanup := setupTestServices()
	defer cleanup()

	out, _, err := execute(t, "history", "--clear")

	require.NoError(t, err)
	assert.True(t, ts.history.cleared)
	assert.Contains(t, out, "History cleared.")
}

func TestHistoryCmd_ServiceNotConfigured(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()
	historyService = nil

	_, _, err := execute(t, "history")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "history service not configured")
}
