package backfill

import (
	"context"
	"errors"
	"testing"

	"github.com/poiesic/matchwell/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfileIterator_ForEach(t *testing.T) {
	store := setupTestStore(t)
	added := addProfiles(t, store, "a", "b", "c", "d", "e", "f", "g")

	tests := []struct {
		batchSize int
		want      []int
	}{
		{batchSize: 3, want: []int{3, 3, 1}},
		{batchSize: 7, want: []int{7}},
		{batchSize: 10, want: []int{7}},
		{batchSize: 0, want: []int{7}},
	}
	for _, tt := range tests {
		it := NewProfileIterator(store.Profiles(), tt.batchSize)

		var sizes []int
		var seen []core.ID
		err := it.ForEach(context.Background(), func(batch []*core.Profile) error {
			sizes = append(sizes, len(batch))
			for _, p := range batch {
				seen = append(seen, p.Id)
			}
			return nil
		})
		require.NoError(t, err)
		assert.Equal(t, tt.want, sizes, "batch size %d", tt.batchSize)
		require.Len(t, seen, len(added))
		for i, p := range added {
			assert.Equal(t, p.Id, seen[i])
		}
	}
}

func TestProfileIterator_ExactMultiple(t *testing.T) {
	store := setupTestStore(t)
	addProfiles(t, store, "a", "b", "c", "d")

	var sizes []int
	err := NewProfileIterator(store.Profiles(), 2).ForEach(context.Background(), func(batch []*core.Profile) error {
		sizes = append(sizes, len(batch))
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []int{2, 2}, sizes)
}

func TestProfileIterator_Errors(t *testing.T) {
	store := setupTestStore(t)
	addProfiles(t, store, "a", "b", "c")

	stop := errors.New("stop")
	calls := 0
	err := NewProfileIterator(store.Profiles(), 1).ForEach(context.Background(), func(batch []*core.Profile) error {
		calls++
		return stop
	})
	assert.ErrorIs(t, err, stop)
	assert.Equal(t, 1, calls)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err = NewProfileIterator(store.Profiles(), 1).ForEach(ctx, func(batch []*core.Profile) error {
		t.Fatal("no batch expected after cancellation")
		return nil
	})
	assert.ErrorIs(t, err, context.Canceled)
}
