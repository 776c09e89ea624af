package metrics_test

import (
	"testing"

	"github.com/mauv0809/court-draw/internal/database"
	"github.com/mauv0809/court-draw/internal/metrics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestDB(t *testing.T) metrics.Store {
	t.Helper()

	db, teardown, err := database.InitDB(":memory:", "", "")
	require.NoError(t, err)
	t.Cleanup(teardown)

	return metrics.New(db)
}

func TestIncrementAndGetAll(t *testing.T) {
	store := setupTestDB(t)

	totals, err := store.GetAll()
	require.NoError(t, err)
	assert.Empty(t, totals)

	store.Increment(metrics.KeySchedulesGenerated)
	totals, err = store.GetAll()
	require.NoError(t, err)
	assert.Equal(t, map[string]int{metrics.KeySchedulesGenerated: 1}, totals)

	store.Increment(metrics.KeySchedulesGenerated)
	store.Increment(metrics.KeyBracketsGenerated)
	totals, err = store.GetAll()
	require.NoError(t, err)
	assert.Equal(t, map[string]int{
		metrics.KeySchedulesGenerated: 2,
		metrics.KeyBracketsGenerated:  1,
	}, totals)
}
