package storage

import (
	"context"

	"github.com/poiesic/matchwell/core"
)

// ProfileStore is the read side used by the matching engine.
// Implementations must be thread-safe and support concurrent access.
type ProfileStore interface {
	// GetProfile retrieves a single profile by ID.
	// Returns ErrNotFound if the profile doesn't exist.
	GetProfile(ctx context.Context, id core.ID) (*core.Profile, error)

	// QueryProfiles returns every profile matching pred, ordered by ID.
	QueryProfiles(ctx context.Context, pred Predicate) ([]*core.Profile, error)

	// Close closes the storage backend and releases resources.
	Close() error
}

// ProfileRepository adds the write and scan operations used by seeding and
// backfill tooling. The matching engine never writes.
type ProfileRepository interface {
	ProfileStore

	// AddProfiles validates and stores new profiles.
	// For profiles with ID=0, generates new IDs from sequence.
	// Sets InsertedAt timestamp if not already set.
	// Returns the profiles with generated IDs and timestamps populated.
	AddProfiles(ctx context.Context, profiles ...*core.Profile) ([]*core.Profile, error)

	// UpdateProfiles validates and replaces existing profiles.
	// Updates the UpdatedAt timestamp automatically.
	// Returns ErrNotFound if any profile doesn't exist.
	UpdateProfiles(ctx context.Context, profiles ...*core.Profile) ([]*core.Profile, error)

	// DeleteProfiles removes profiles by their IDs.
	// Returns ErrNotFound if any profile doesn't exist.
	DeleteProfiles(ctx context.Context, ids ...core.ID) error

	// ScanProfiles returns up to limit profiles with ID greater than afterID,
	// ordered by ID. An empty result means the scan is complete.
	ScanProfiles(ctx context.Context, afterID core.ID, limit int) ([]*core.Profile, error)

	// CountProfiles returns the number of stored profiles.
	CountProfiles(ctx context.Context) (int, error)
}

// PresenceTracker reports whether users are currently online.
type PresenceTracker interface {
	// IsOnline reports whether id was seen within the presence window.
	IsOnline(ctx context.Context, id core.ID) (bool, error)

	// MarkOnline records that id was just seen.
	MarkOnline(ctx context.Context, id core.ID) error
}

// DismissalStore remembers recommendations a seeker has dismissed.
type DismissalStore interface {
	// Dismiss hides candidate from seeker's future recommendations.
	Dismiss(ctx context.Context, seeker, candidate core.ID) error

	// Dismissed returns the set of candidates seeker has dismissed.
	Dismissed(ctx context.Context, seeker core.ID) (map[core.ID]struct{}, error)
}
