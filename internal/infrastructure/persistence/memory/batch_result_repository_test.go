package memory

import (
	"context"
	"testing"
	"time"

	"github.com/sandhi-dev/sandhi/internal/domain/execution"
	"github.com/sandhi-dev/sandhi/internal/domain/values"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBatchResultRepository_SaveAndFind(t *testing.T) {
	repo := NewBatchResultRepository(0)
	ctx := context.Background()

	id := values.NewExecutionID()
	result := execution.NewBatchResultWithID(id, "toy", "1.0.0", 2)

	require.NoError(t, repo.Save(ctx, result))

	found, err := repo.FindByID(ctx, id.UUID())
	require.NoError(t, err)
	assert.Equal(t, "toy", found.GrammarName)
	assert.True(t, found.ExecutionID.Equals(id))

	_, err = repo.FindByID(ctx, values.NewExecutionID().UUID())
	assert.Error(t, err)
}

func TestBatchResultRepository_SaveNil(t *testing.T) {
	repo := NewBatchResultRepository(0)
	assert.Error(t, repo.Save(context.Background(), nil))
}

func TestBatchResultRepository_FindByGrammar(t *testing.T) {
	repo := NewBatchResultRepository(0)
	ctx := context.Background()

	now := time.Now()
	r1 := execution.NewBatchResult("grammar-a", "1.0", 0)
	r1.StartTime = now.Add(-3 * time.Hour)
	r2 := execution.NewBatchResult("grammar-a", "1.0", 0)
	r2.StartTime = now.Add(-2 * time.Hour)
	r3 := execution.NewBatchResult("grammar-a", "1.0", 0)
	r3.StartTime = now.Add(-1 * time.Hour)
	r4 := execution.NewBatchResult("grammar-b", "1.0", 0)

	for _, r := range []*execution.BatchResult{r1, r2, r3, r4} {
		require.NoError(t, repo.Save(ctx, r))
	}

	results, err := repo.FindByGrammar(ctx, "grammar-a", 2)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, r3.ExecutionID, results[0].ExecutionID) // newest first
	assert.Equal(t, r2.ExecutionID, results[1].ExecutionID)

	results, err = repo.FindByGrammar(ctx, "grammar-a", 0)
	require.NoError(t, err)
	assert.Len(t, results, 3)
}

func TestBatchResultRepository_FindBetween(t *testing.T) {
	repo := NewBatchResultRepository(0)
	ctx := context.Background()

	now := time.Now()
	start := now.Add(-2 * time.Hour)
	end := now.Add(-1 * time.Hour)

	before := execution.NewBatchResult("grammar-a", "1.0", 0)
	before.StartTime = now.Add(-3 * time.Hour)
	inside := execution.NewBatchResult("grammar-a", "1.0", 0)
	inside.StartTime = now.Add(-90 * time.Minute)
	after := execution.NewBatchResult("grammar-a", "1.0", 0)
	after.StartTime = now.Add(-30 * time.Minute)

	require.NoError(t, repo.Save(ctx, before))
	require.NoError(t, repo.Save(ctx, inside))
	require.NoError(t, repo.Save(ctx, after))

	results, err := repo.FindBetween(ctx, "grammar-a", start, end)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, inside.ExecutionID, results[0].ExecutionID)
}

func TestBatchResultRepository_EvictsOldest(t *testing.T) {
	repo := NewBatchResultRepository(2)
	ctx := context.Background()

	first := execution.NewBatchResult("toy", "", 0)
	second := execution.NewBatchResult("toy", "", 0)
	third := execution.NewBatchResult("toy", "", 0)
	require.NoError(t, repo.Save(ctx, first))
	require.NoError(t, repo.Save(ctx, second))
	require.NoError(t, repo.Save(ctx, third))

	_, err := repo.FindByID(ctx, first.ExecutionID.UUID())
	assert.Error(t, err)

	results, err := repo.FindByGrammar(ctx, "toy", 0)
	require.NoError(t, err)
	assert.Len(t, results, 2)
}
