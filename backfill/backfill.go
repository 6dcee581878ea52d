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

package backfill

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/poiesic/matchwell/ai"
	"github.com/poiesic/matchwell/core"
	"github.com/poiesic/matchwell/storage"
)

// Config holds configuration for a backfill run.
type Config struct {
	// BatchSize is the number of profiles scanned and embedded together
	BatchSize int

	// ReportInterval is how often to report progress (number of profiles)
	ReportInterval int

	// MaxRetries is the maximum number of attempts per embedding call
	MaxRetries int

	// RetryDelay is the base delay for exponential backoff
	RetryDelay time.Duration

	// Force recomputes vectors that are already current
	Force bool
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		BatchSize:      DefaultBatchSize,
		ReportInterval: 100,
		MaxRetries:     3,
		RetryDelay:     1 * time.Second,
	}
}

// Stats summarizes a completed run.
type Stats struct {
	Scanned  int
	Embedded int
	Elapsed  time.Duration
}

// Backfiller computes bio vectors for every stored profile.
type Backfiller struct {
	repo      storage.ProfileRepository
	config    *Config
	progress  io.Writer
	logger    *slog.Logger
	processor *BatchProcessor
	iterator  *ProfileIterator
}

// NewBackfiller creates a backfiller. progress receives the progress line
// (typically os.Stderr) and may be nil.
func NewBackfiller(repo storage.ProfileRepository, embedder ai.Embedder, config *Config, progress io.Writer) (*Backfiller, error) {
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}
	if config == nil {
		config = DefaultConfig()
	}
	if progress == nil {
		progress = io.Discard
	}

	return &Backfiller{
		repo:      repo,
		config:    config,
		progress:  progress,
		logger:    slog.Default().With("component", "backfill"),
		processor: NewBatchProcessor(repo, embedder, config.Force, config.MaxRetries, config.RetryDelay),
		iterator:  NewProfileIterator(repo, config.BatchSize),
	}, nil
}

// Run embeds every profile that needs a vector. It stops at the first batch
// that cannot be embedded or stored; batches already written stay written.
func (b *Backfiller) Run(ctx context.Context) (*Stats, error) {
	total, err := b.repo.CountProfiles(ctx)
	if err != nil {
		return nil, fmt.Errorf("counting profiles: %w", err)
	}
	stats := &Stats{}
	if total == 0 {
		fmt.Fprintf(b.progress, "No profiles found in database (0 profiles)\n")
		return stats, nil
	}

	fmt.Fprintf(b.progress, "Starting backfill of %d profiles (batch size: %d)\n", total, b.iterator.batchSize)
	tracker := NewProgress(b.progress, total, b.config.ReportInterval)
	tracker.Start()

	err = b.iterator.ForEach(ctx, func(batch []*core.Profile) error {
		n, err := b.processor.Process(ctx, batch)
		if err != nil {
			return fmt.Errorf("processing batch after profile %d: %w", batch[0].Id, err)
		}
		stats.Scanned += len(batch)
		stats.Embedded += n
		tracker.Add(len(batch))
		b.logger.Debug("batch complete", "first", batch[0].Id, "size", len(batch), "embedded", n)
		return nil
	})
	stats.Elapsed = tracker.Elapsed()
	if err != nil {
		b.logger.Error("backfill stopped", "scanned", stats.Scanned, "embedded", stats.Embedded, "err", err)
		return stats, err
	}

	tracker.Finish()
	fmt.Fprintf(b.progress, "Backfill complete. Embedded %d of %d profiles in %v\n",
		stats.Embedded, stats.Scanned, stats.Elapsed.Round(time.Millisecond))
	return stats, nil
}
