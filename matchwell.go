// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package matchwell

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"time"

	"github.com/poiesic/matchwell/ai"
	"github.com/poiesic/matchwell/ai/openai"
	"github.com/poiesic/matchwell/backfill"
	"github.com/poiesic/matchwell/match"
	"github.com/poiesic/matchwell/refdata"
	"github.com/poiesic/matchwell/storage"
	"github.com/poiesic/matchwell/storage/badger"
	"github.com/poiesic/matchwell/storage/postgres"
)

// ErrAIDisabled is returned by operations that need an AI provider when the
// database was opened without one.
var ErrAIDisabled = errors.New("AI provider is disabled")

// backend is what both storage implementations provide.
type backend interface {
	Profiles() storage.ProfileRepository
	Presence() storage.PresenceTracker
	Dismissals() storage.DismissalStore
	Close() error
}

type Database struct {
	store    backend
	provider ai.AIProvider
	ref      *refdata.ReferenceData
	logger   *slog.Logger
}

// DatabaseOption configures a Database.
type DatabaseOption func(*databaseOptions)

type databaseOptions struct {
	aiConfig       *ai.Config
	provider       ai.AIProvider
	disableAI      bool
	ref            *refdata.ReferenceData
	presenceWindow time.Duration
	logger         *slog.Logger
}

// WithAIConfig sets the configuration of the OpenAI-compatible provider.
func WithAIConfig(config *ai.Config) DatabaseOption {
	return func(o *databaseOptions) {
		o.aiConfig = config
	}
}

// WithAIProvider uses provider instead of building one from the AI config.
// The database takes ownership and closes it.
func WithAIProvider(provider ai.AIProvider) DatabaseOption {
	return func(o *databaseOptions) {
		o.provider = provider
	}
}

// WithoutAI opens the database with no AI provider. Searches use the local
// query parser and skip semantic re-ranking.
func WithoutAI() DatabaseOption {
	return func(o *databaseOptions) {
		o.disableAI = true
	}
}

// WithReferenceData replaces the built-in reference tables.
func WithReferenceData(ref *refdata.ReferenceData) DatabaseOption {
	return func(o *databaseOptions) {
		o.ref = ref
	}
}

// WithPresenceWindow sets how long a profile counts as online after a ping.
func WithPresenceWindow(d time.Duration) DatabaseOption {
	return func(o *databaseOptions) {
		o.presenceWindow = d
	}
}

// WithLogger sets the logger handed to the store and engines.
func WithLogger(logger *slog.Logger) DatabaseOption {
	return func(o *databaseOptions) {
		o.logger = logger
	}
}

func applyOptions(opts []DatabaseOption) *databaseOptions {
	options := &databaseOptions{
		aiConfig: ai.DefaultConfig(),
		ref:      refdata.Default(),
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(options)
	}
	return options
}

// NewDatabase opens (or creates) an embedded database at filePath.
func NewDatabase(filePath string, opts ...DatabaseOption) (*Database, error) {
	options := applyOptions(opts)

	storeOpts := []badger.StoreOption{badger.WithLogger(options.logger)}
	if options.presenceWindow > 0 {
		storeOpts = append(storeOpts, badger.WithPresenceWindow(options.presenceWindow))
	}
	store, err := badger.OpenStore(filePath, storeOpts...)
	if err != nil {
		return nil, err
	}
	return newDatabase(store, options)
}

// NewPostgresDatabase connects to PostgreSQL and creates the schema if it
// does not exist yet.
func NewPostgresDatabase(ctx context.Context, dsn string, opts ...DatabaseOption) (*Database, error) {
	options := applyOptions(opts)

	pgOpts := []postgres.Option{postgres.WithLogger(options.logger)}
	if options.presenceWindow > 0 {
		pgOpts = append(pgOpts, postgres.WithPresenceWindow(options.presenceWindow))
	}
	store, err := postgres.Open(ctx, dsn, pgOpts...)
	if err != nil {
		return nil, err
	}
	if err := store.EnsureSchema(ctx); err != nil {
		store.Close()
		return nil, err
	}
	return newDatabase(store, options)
}

func newDatabase(store backend, options *databaseOptions) (*Database, error) {
	provider := options.provider
	if provider == nil && !options.disableAI {
		var err error
		provider, err = openai.NewProvider(options.aiConfig)
		if err != nil {
			store.Close()
			return nil, err
		}
	}

	return &Database{
		store:    store,
		provider: provider,
		ref:      options.ref,
		logger:   options.logger,
	}, nil
}

func (db *Database) Close() error {
	if db.provider != nil {
		if err := db.provider.Close(); err != nil {
			db.logger.Error("error closing AI provider", "err", err)
		}
	}

	if err := db.store.Close(); err != nil {
		db.logger.Error("error closing profile store", "err", err)
		return err
	}
	return nil
}

func (db *Database) Profiles() storage.ProfileRepository {
	return db.store.Profiles()
}

func (db *Database) Presence() storage.PresenceTracker {
	return db.store.Presence()
}

func (db *Database) Dismissals() storage.DismissalStore {
	return db.store.Dismissals()
}

// Provider returns the AI provider, or nil when AI is disabled.
func (db *Database) Provider() ai.AIProvider {
	return db.provider
}

func (db *Database) ReferenceData() *refdata.ReferenceData {
	return db.ref
}

// NewEngine creates a matching engine over this database's profiles,
// presence and dismissals. opts are applied after the database defaults.
func (db *Database) NewEngine(opts ...match.Option) (*match.Engine, error) {
	defaults := []match.Option{
		match.WithLogger(db.logger),
		match.WithReferenceData(db.ref),
		match.WithPresence(db.store.Presence()),
		match.WithDismissals(db.store.Dismissals()),
	}
	return match.NewEngine(db.store.Profiles(), db.provider, append(defaults, opts...)...)
}

// NewBackfiller creates a bio-embedding backfiller. It needs an AI provider.
func (db *Database) NewBackfiller(config *backfill.Config, progress io.Writer) (*backfill.Backfiller, error) {
	if db.provider == nil {
		return nil, ErrAIDisabled
	}
	return backfill.NewBackfiller(db.store.Profiles(), db.provider.Embedder(), config, progress)
}
