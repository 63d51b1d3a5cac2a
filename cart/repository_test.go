package cart

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

func TestApplyDeltaCreatesRow(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository(NewMemoryStore())

	require.NoError(t, repo.ApplyDelta(ctx, "u1", 7, 1))

	items, err := repo.store.ListItems(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "u1", items[0].OwnerKey)
	assert.Equal(t, 7, items[0].ProductId)
	assert.Equal(t, 1, items[0].Quantity)
}

func TestApplyDeltaMergesIntoExistingRow(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository(NewMemoryStore())

	require.NoError(t, repo.ApplyDelta(ctx, "u1", 7, 3))
	require.NoError(t, repo.ApplyDelta(ctx, "u1", 7, 2))

	item, err := repo.store.GetItem(ctx, "u1", 7)
	require.NoError(t, err)
	assert.Equal(t, 5, item.Quantity)
}

func TestApplyDeltaRemovesRowAtZero(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository(NewMemoryStore())

	require.NoError(t, repo.ApplyDelta(ctx, "u1", 7, 1))
	require.NoError(t, repo.ApplyDelta(ctx, "u1", 7, -1))

	_, err := repo.store.GetItem(ctx, "u1", 7)
	assert.ErrorIs(t, err, ErrItemNotFound)
}

func TestApplyDeltaNonPositiveOnMissingRowIsNoop(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository(NewMemoryStore())

	require.NoError(t, repo.ApplyDelta(ctx, "u1", 7, -3))
	require.NoError(t, repo.ApplyDelta(ctx, "u1", 7, 0))

	items, err := repo.store.ListItems(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, items)
}

// The stored quantity after a sequence of deltas equals the running
// sum, with the row deleted whenever the sum dips to zero or below.
func TestApplyDeltaSequences(t *testing.T) {
	tests := []struct {
		name       string
		deltas     []int
		wantQty    int
		wantAbsent bool
	}{
		{name: "single add", deltas: []int{4}, wantQty: 4},
		{name: "adds accumulate", deltas: []int{1, 1, 1}, wantQty: 3},
		{name: "add then partial remove", deltas: []int{5, -2}, wantQty: 3},
		{name: "down to zero deletes", deltas: []int{2, -2}, wantAbsent: true},
		{name: "overshoot delete", deltas: []int{2, -7}, wantAbsent: true},
		{name: "delete then re-add", deltas: []int{2, -2, 6}, wantQty: 6},
		{name: "remove before add is dropped", deltas: []int{-4, 3}, wantQty: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			repo := NewRepository(NewMemoryStore())

			for _, delta := range tt.deltas {
				require.NoError(t, repo.ApplyDelta(ctx, "u1", 7, delta))
			}

			item, err := repo.store.GetItem(ctx, "u1", 7)
			if tt.wantAbsent {
				assert.ErrorIs(t, err, ErrItemNotFound)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantQty, item.Quantity)
			assert.Positive(t, item.Quantity)
		})
	}
}

func TestApplyDeltaOwnersAreIsolated(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository(NewMemoryStore())

	require.NoError(t, repo.ApplyDelta(ctx, "alice", 7, 2))
	require.NoError(t, repo.ApplyDelta(ctx, "bob", 7, 5))
	require.NoError(t, repo.ApplyDelta(ctx, "alice", 7, -2))
	require.NoError(t, repo.Clear(ctx, "alice"))

	item, err := repo.store.GetItem(ctx, "bob", 7)
	require.NoError(t, err)
	assert.Equal(t, 5, item.Quantity)

	items, err := repo.store.ListItems(ctx, "alice")
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestRemoveAbsentRowIsNoError(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository(NewMemoryStore())

	require.NoError(t, repo.ApplyDelta(ctx, "u1", 7, 1))
	require.NoError(t, repo.Remove(ctx, "u1", 42))

	items, err := repo.store.ListItems(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 7, items[0].ProductId)
}

func TestClearIsIdempotent(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository(NewMemoryStore())

	require.NoError(t, repo.Clear(ctx, "u1"))
	require.NoError(t, repo.ApplyDelta(ctx, "u1", 7, 2))
	require.NoError(t, repo.Clear(ctx, "u1"))
	require.NoError(t, repo.Clear(ctx, "u1"))

	items, err := repo.store.ListItems(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, items)
}

// No interleaving of concurrent deltas on the same row may lose an
// update; the per-key lock serializes the read-modify-write.
func TestApplyDeltaConcurrentIncrements(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository(NewMemoryStore())

	const n = 100
	g, ctx := errgroup.WithContext(ctx)
	for i := 0; i < n; i++ {
		g.Go(func() error {
			return repo.ApplyDelta(ctx, "u1", 7, 1)
		})
	}
	require.NoError(t, g.Wait())

	item, err := repo.store.GetItem(ctx, "u1", 7)
	require.NoError(t, err)
	assert.Equal(t, n, item.Quantity)
}

func TestApplyDeltaConcurrentMixedDeltas(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository(NewMemoryStore())

	require.NoError(t, repo.ApplyDelta(ctx, "u1", 7, 50))

	g, ctx := errgroup.WithContext(ctx)
	for i := 0; i < 30; i++ {
		g.Go(func() error { return repo.ApplyDelta(ctx, "u1", 7, 1) })
		g.Go(func() error { return repo.ApplyDelta(ctx, "u1", 7, -1) })
	}
	require.NoError(t, g.Wait())

	item, err := repo.store.GetItem(ctx, "u1", 7)
	require.NoError(t, err)
	assert.Equal(t, 50, item.Quantity)
}
