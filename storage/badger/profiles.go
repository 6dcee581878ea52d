package badger

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/matchwell/core"
	"github.com/poiesic/matchwell/storage"
)

// ProfileRepository implements storage.ProfileRepository for BadgerDB.
// Predicates are evaluated in process while iterating the profile keyspace.
type ProfileRepository struct {
	backend *Backend
	idSeq   *badger.Sequence
}

var _ storage.ProfileRepository = (*ProfileRepository)(nil)

// NewProfileRepository creates a new ProfileRepository.
func NewProfileRepository(backend *Backend) (*ProfileRepository, error) {
	idSeq, err := backend.sequence(profileIDSeq)
	if err != nil {
		return nil, err
	}

	return &ProfileRepository{
		backend: backend,
		idSeq:   idSeq,
	}, nil
}

// Close releases the ID sequence.
func (r *ProfileRepository) Close() error {
	return r.idSeq.Release()
}

// AddProfiles validates and stores new profiles. Profiles with a zero ID
// receive one from the sequence; explicit IDs must not already exist.
func (r *ProfileRepository) AddProfiles(ctx context.Context, profiles ...*core.Profile) ([]*core.Profile, error) {
	for _, profile := range profiles {
		if err := core.ValidateProfile(profile); err != nil {
			return nil, err
		}
	}

	err := r.backend.update(func(tx *badger.Txn) error {
		now := time.Now().UTC()
		for _, profile := range profiles {
			if profile.Id == 0 {
				nextID, err := r.nextFreeID(tx)
				if err != nil {
					return err
				}
				profile.Id = nextID
			} else {
				existing, err := r.readProfile(tx, makeProfileKey(profile.Id))
				if err != nil {
					return err
				}
				if existing != nil {
					return fmt.Errorf("%w: profile %d", storage.ErrAlreadyExists, profile.Id)
				}
			}

			if profile.InsertedAt.IsZero() {
				profile.InsertedAt = now
			}
			profile.UpdatedAt = profile.InsertedAt

			if err := r.writeProfile(tx, profile); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return profiles, nil
}

// UpdateProfiles validates and replaces existing profiles.
func (r *ProfileRepository) UpdateProfiles(ctx context.Context, profiles ...*core.Profile) ([]*core.Profile, error) {
	for _, profile := range profiles {
		if err := core.ValidateProfile(profile); err != nil {
			return nil, err
		}
	}

	err := r.backend.update(func(tx *badger.Txn) error {
		for _, profile := range profiles {
			old, err := r.readProfile(tx, makeProfileKey(profile.Id))
			if err != nil {
				return err
			}
			if old == nil {
				return fmt.Errorf("%w: profile %d", storage.ErrNotFound, profile.Id)
			}

			profile.InsertedAt = old.InsertedAt
			profile.UpdatedAt = time.Now().UTC()

			if err := r.writeProfile(tx, profile); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return profiles, nil
}

// DeleteProfiles removes profiles by their IDs.
func (r *ProfileRepository) DeleteProfiles(ctx context.Context, ids ...core.ID) error {
	return r.backend.update(func(tx *badger.Txn) error {
		for _, id := range ids {
			key := makeProfileKey(id)
			if _, err := tx.Get(key); err != nil {
				if errors.Is(err, badger.ErrKeyNotFound) {
					return fmt.Errorf("%w: profile %d", storage.ErrNotFound, id)
				}
				return err
			}
			if err := tx.Delete(key); err != nil {
				return err
			}
		}
		return nil
	})
}

// GetProfile retrieves a single profile by ID.
func (r *ProfileRepository) GetProfile(ctx context.Context, id core.ID) (*core.Profile, error) {
	var result *core.Profile
	err := r.backend.view(func(tx *badger.Txn) error {
		var err error
		result, err = r.readProfile(tx, makeProfileKey(id))
		if err != nil {
			return err
		}
		if result == nil {
			return fmt.Errorf("%w: profile %d", storage.ErrNotFound, id)
		}
		return nil
	})
	return result, err
}

// QueryProfiles returns every profile matching pred, ordered by ID.
func (r *ProfileRepository) QueryProfiles(ctx context.Context, pred storage.Predicate) ([]*core.Profile, error) {
	var results []*core.Profile
	err := r.iterate(ctx, 0, func(profile *core.Profile) bool {
		if pred.Matches(profile) {
			results = append(results, profile)
		}
		return true
	})
	if err != nil {
		return nil, err
	}
	return results, nil
}

// ScanProfiles returns up to limit profiles with ID greater than afterID.
func (r *ProfileRepository) ScanProfiles(ctx context.Context, afterID core.ID, limit int) ([]*core.Profile, error) {
	if limit <= 0 {
		return nil, fmt.Errorf("%w: limit must be positive, got %d", storage.ErrInvalidQuery, limit)
	}
	results := make([]*core.Profile, 0, limit)
	err := r.iterate(ctx, afterID+1, func(profile *core.Profile) bool {
		results = append(results, profile)
		return len(results) < limit
	})
	if err != nil {
		return nil, err
	}
	return results, nil
}

// CountProfiles returns the number of stored profiles.
func (r *ProfileRepository) CountProfiles(ctx context.Context) (int, error) {
	count := 0
	err := r.backend.view(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(profilePrefix)
		opts.PrefetchValues = false
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			count++
		}
		return nil
	})
	return count, err
}

// Helper methods

// nextID draws from the sequence, skipping the zero value badger can hand
// out on first use.
func (r *ProfileRepository) nextID() (core.ID, error) {
	for {
		next, err := r.idSeq.Next()
		if err != nil {
			return 0, err
		}
		if next != 0 {
			return core.ID(next), nil
		}
	}
}

// nextFreeID skips sequence values already taken by explicitly numbered
// profiles.
func (r *ProfileRepository) nextFreeID(tx *badger.Txn) (core.ID, error) {
	for {
		id, err := r.nextID()
		if err != nil {
			return 0, err
		}
		_, err = tx.Get(makeProfileKey(id))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return id, nil
		}
		if err != nil {
			return 0, err
		}
	}
}

// iterate walks profiles in ID order starting at from until fn returns false.
func (r *ProfileRepository) iterate(ctx context.Context, from core.ID, fn func(*core.Profile) bool) error {
	return r.backend.view(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(profilePrefix)
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Seek(makeProfileKey(from)); iter.Valid(); iter.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}
			var profile *core.Profile
			err := iter.Item().Value(func(val []byte) error {
				var err error
				profile, err = storage.UnmarshalProfile(val)
				return err
			})
			if err != nil {
				return fmt.Errorf("profile %d: %w", profileIDFromKey(iter.Item().Key()), err)
			}
			if !fn(profile) {
				return nil
			}
		}
		return nil
	})
}

// readProfile reads a profile from the transaction. Returns nil, nil when
// the key is absent.
func (r *ProfileRepository) readProfile(tx *badger.Txn, key []byte) (*core.Profile, error) {
	item, err := tx.Get(key)
	if err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil, nil
		}
		return nil, err
	}

	var profile *core.Profile
	err = item.Value(func(val []byte) error {
		var unmarshalErr error
		profile, unmarshalErr = storage.UnmarshalProfile(val)
		return unmarshalErr
	})
	return profile, err
}

func (r *ProfileRepository) writeProfile(tx *badger.Txn, profile *core.Profile) error {
	value, err := storage.MarshalProfile(profile)
	if err != nil {
		return err
	}
	return tx.Set(makeProfileKey(profile.Id), value)
}
