package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	_ "github.com/lib/pq" // PostgreSQL driver
	"github.com/poiesic/matchwell/storage"
)

// DefaultPresenceWindow matches the online window used by the ping endpoint.
const DefaultPresenceWindow = 90 * time.Second

// Store bundles the Postgres-backed repositories sharing one *sql.DB.
type Store struct {
	db         *sql.DB
	logger     *slog.Logger
	profiles   *ProfileRepository
	presence   *PresenceTracker
	dismissals *DismissalStore
}

type config struct {
	logger         *slog.Logger
	presenceWindow time.Duration
	presenceWait   time.Duration
}

// Option configures a Store.
type Option func(*config)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) {
		c.logger = logger
	}
}

// WithPresenceWindow sets how long after last_online a user counts as online.
func WithPresenceWindow(d time.Duration) Option {
	return func(c *config) {
		c.presenceWindow = d
	}
}

// WithPresenceBatchWait sets how long presence lookups wait to be batched.
func WithPresenceBatchWait(d time.Duration) Option {
	return func(c *config) {
		c.presenceWait = d
	}
}

// Open connects to Postgres using dsn and verifies the connection.
func Open(ctx context.Context, dsn string, opts ...Option) (*Store, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return New(db, opts...), nil
}

// New wraps an existing connection pool.
func New(db *sql.DB, opts ...Option) *Store {
	cfg := config{
		logger:         slog.Default(),
		presenceWindow: DefaultPresenceWindow,
		presenceWait:   16 * time.Millisecond,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	logger := cfg.logger.With("component", "postgres")

	return &Store{
		db:         db,
		logger:     logger,
		profiles:   &ProfileRepository{db: db, logger: logger},
		presence:   newPresenceTracker(db, cfg.presenceWindow, cfg.presenceWait),
		dismissals: &DismissalStore{db: db},
	}
}

// EnsureSchema creates the tables if they don't exist.
func (s *Store) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
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

// Close closes the connection pool.
func (s *Store) Close() error {
	return s.db.Close()
}
