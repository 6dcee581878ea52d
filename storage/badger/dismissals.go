package badger

import (
	"context"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/matchwell/core"
	"github.com/poiesic/matchwell/storage"
)

// DismissalStore implements storage.DismissalStore. Each dismissal is a
// value-less key under the seeker's prefix.
type DismissalStore struct {
	backend *Backend
}

var _ storage.DismissalStore = (*DismissalStore)(nil)

// NewDismissalStore creates a new DismissalStore.
func NewDismissalStore(backend *Backend) *DismissalStore {
	return &DismissalStore{backend: backend}
}

// Dismiss hides candidate from seeker's future recommendations.
// Dismissing twice is not an error.
func (d *DismissalStore) Dismiss(ctx context.Context, seeker, candidate core.ID) error {
	return d.backend.update(func(tx *badger.Txn) error {
		if err := tx.Set(makeDismissalKey(seeker, candidate), nil); err != nil {
			return err
		}
		return nil
	})
}

// Dismissed returns the set of candidates seeker has dismissed.
func (d *DismissalStore) Dismissed(ctx context.Context, seeker core.ID) (map[core.ID]struct{}, error) {
	result := make(map[core.ID]struct{})
	err := d.backend.view(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = makePartialDismissalKey(seeker)
		opts.PrefetchValues = false
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			result[dismissedIDFromKey(iter.Item().Key())] = struct{}{}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}
