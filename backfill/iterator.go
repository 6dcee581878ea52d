package backfill

import (
	"context"

	"github.com/poiesic/matchwell/core"
	"github.com/poiesic/matchwell/storage"
)

// DefaultBatchSize is the number of profiles fetched per scan.
const DefaultBatchSize = 100

// profileScanner is the part of storage.ProfileRepository the iterator needs.
type profileScanner interface {
	ScanProfiles(ctx context.Context, afterID core.ID, limit int) ([]*core.Profile, error)
}

var _ profileScanner = (storage.ProfileRepository)(nil)

// ProfileIterator walks every stored profile in ID order using a cursor, so
// profiles added behind the cursor during a run are not revisited.
type ProfileIterator struct {
	repo      profileScanner
	batchSize int
}

// NewProfileIterator creates an iterator fetching batchSize profiles at a
// time. A non-positive batchSize uses DefaultBatchSize.
func NewProfileIterator(repo storage.ProfileRepository, batchSize int) *ProfileIterator {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	return &ProfileIterator{repo: repo, batchSize: batchSize}
}

// ForEach calls fn with each batch. It stops at the first error from fn or
// the store, and checks ctx between batches.
func (it *ProfileIterator) ForEach(ctx context.Context, fn func([]*core.Profile) error) error {
	var after core.ID
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		batch, err := it.repo.ScanProfiles(ctx, after, it.batchSize)
		if err != nil {
			return err
		}
		if len(batch) == 0 {
			return nil
		}

		if err := fn(batch); err != nil {
			return err
		}

		if len(batch) < it.batchSize {
			return nil
		}
		after = batch[len(batch)-1].Id
	}
}
