package badger

import (
	"errors"
	"log/slog"
	"time"

	"github.com/poiesic/matchwell/storage"
)

// Store bundles the badger-backed repositories that share one database.
type Store struct {
	backend    *Backend
	profiles   *ProfileRepository
	presence   *PresenceTracker
	dismissals *DismissalStore
}

type storeConfig struct {
	presenceWindow time.Duration
	logger         *slog.Logger
}

// StoreOption configures a Store.
type StoreOption func(*storeConfig)

// WithPresenceWindow sets how long a ping keeps a user online.
func WithPresenceWindow(d time.Duration) StoreOption {
	return func(c *storeConfig) {
		c.presenceWindow = d
	}
}

// WithLogger sets the logger badger's own output is routed to.
func WithLogger(logger *slog.Logger) StoreOption {
	return func(c *storeConfig) {
		c.logger = logger
	}
}

// OpenStore opens (or creates) a badger database at path.
func OpenStore(path string, opts ...StoreOption) (*Store, error) {
	if path == "" {
		return nil, errors.New("badger store path is required")
	}
	return openStore(path, opts)
}

// openStore opens a store in dir, or in memory when dir is empty.
func openStore(dir string, opts []StoreOption) (*Store, error) {
	cfg := storeConfig{presenceWindow: DefaultPresenceWindow}
	for _, opt := range opts {
		opt(&cfg)
	}

	backend, err := openBackend(dir, cfg.logger)
	if err != nil {
		return nil, err
	}

	profiles, err := NewProfileRepository(backend)
	if err != nil {
		backend.Close()
		return nil, err
	}

	return &Store{
		backend:    backend,
		profiles:   profiles,
		presence:   NewPresenceTracker(backend, cfg.presenceWindow),
		dismissals: NewDismissalStore(backend),
	}, nil
}

// Profiles returns the profile repository.
func (s *Store) Profiles() storage.ProfileRepository {
	return s.profiles
}

// Presence returns the presence tracker.
func (s *Store) Presence() storage.PresenceTracker {
	return s.presence
}

// Dismissals returns the dismissal store.
func (s *Store) Dismissals() storage.DismissalStore {
	return s.dismissals
}

// Close releases the ID sequence and closes the database.
func (s *Store) Close() error {
	if s.backend.IsClosed() {
		return nil
	}
	return errors.Join(s.profiles.Close(), s.backend.Close())
}
