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
	"strings"
	"time"

	"github.com/poiesic/matchwell/ai"
	"github.com/poiesic/matchwell/core"
	"github.com/poiesic/matchwell/storage"
)

// BatchProcessor embeds the bios of one batch of profiles and writes the
// vectors back.
type BatchProcessor struct {
	repo           storage.ProfileRepository
	embedder       ai.Embedder
	force          bool
	maxRetries     int
	retryBaseDelay time.Duration
}

// NewBatchProcessor creates a batch processor. With force set, current
// vectors are recomputed too.
func NewBatchProcessor(repo storage.ProfileRepository, embedder ai.Embedder, force bool, maxRetries int, retryBaseDelay time.Duration) *BatchProcessor {
	return &BatchProcessor{
		repo:           repo,
		embedder:       embedder,
		force:          force,
		maxRetries:     maxRetries,
		retryBaseDelay: retryBaseDelay,
	}
}

// Process embeds every profile in batch that needs a vector and returns how
// many were updated. Profiles with a blank bio are never embedded.
func (bp *BatchProcessor) Process(ctx context.Context, batch []*core.Profile) (int, error) {
	pending := make([]*core.Profile, 0, len(batch))
	for _, p := range batch {
		if strings.TrimSpace(p.Bio) == "" {
			continue
		}
		if !bp.force && p.HasCurrentBioVector() {
			continue
		}
		pending = append(pending, p)
	}
	if len(pending) == 0 {
		return 0, nil
	}

	bios := make([]string, len(pending))
	for i, p := range pending {
		bios[i] = p.Bio
	}

	var vectors [][]float32
	err := RetryWithBackoff(ctx, func() error {
		var err error
		vectors, err = bp.embedder.EmbedTexts(ctx, bios)
		return err
	}, bp.maxRetries, bp.retryBaseDelay)
	if err != nil {
		return 0, fmt.Errorf("embedding %d bios: %w", len(bios), err)
	}
	if len(vectors) != len(pending) {
		return 0, fmt.Errorf("%w: expected %d, got %d", ErrEmbeddingMismatch, len(pending), len(vectors))
	}

	for i, p := range pending {
		p.BioVector = NormalizeVector(vectors[i])
		p.BioDigest = core.IDFromContent(p.Bio)
	}

	if _, err := bp.repo.UpdateProfiles(ctx, pending...); err != nil {
		return 0, fmt.Errorf("storing bio vectors: %w", err)
	}
	return len(pending), nil
}
