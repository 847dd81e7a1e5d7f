package history

import (
	"context"
	"path/filepath"
	"testing"

	"finch/internal/db"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStore(t *testing.T) *Store {
	t.Helper()
	database, err := db.Open(filepath.Join(t.TempDir(), "finch.db"))
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })
	require.NoError(t, database.Migrate())
	return NewStore(database)
}

func TestRunLifecycle(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()

	require.NoError(t, store.EnsureRun(ctx, "run-1", "GOOG"))
	require.NoError(t, store.SaveStage(ctx, "run-1", "fundamental_analysis", "strong margins"))
	require.NoError(t, store.SaveStage(ctx, "run-1", "final_report", "# GOOG"))
	require.NoError(t, store.FinishRun(ctx, "run-1", "done"))

	detail, err := store.GetRun(ctx, "run-1")
	require.NoError(t, err)
	assert.Equal(t, "GOOG", detail.Run.Symbol)
	assert.Equal(t, "done", detail.Run.Status)
	require.Len(t, detail.Stages, 2)
	assert.Equal(t, "fundamental_analysis", detail.Stages[0].Name)
	assert.Equal(t, "# GOOG", detail.Stages[1].Content)
}

func TestEnsureRunIdempotent(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()

	require.NoError(t, store.EnsureRun(ctx, "run-1", "MSFT"))
	require.NoError(t, store.EnsureRun(ctx, "run-1", "MSFT"))

	runs, err := store.ListRuns(ctx, 10)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, "running", runs[0].Status)
}

func TestListRunsNewestFirst(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()

	require.NoError(t, store.EnsureRun(ctx, "run-a", "AAPL"))
	require.NoError(t, store.EnsureRun(ctx, "run-b", "NVDA"))

	runs, err := store.ListRuns(ctx, 0)
	require.NoError(t, err)
	require.Len(t, runs, 2)
}

func TestGetRunMissing(t *testing.T) {
	store := newStore(t)

	_, err := store.GetRun(context.Background(), "nope")
	assert.Error(t, err)
}
