package match

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/panjf2000/ants/v2"
	"github.com/poiesic/matchwell/ai"
	"github.com/poiesic/matchwell/core"
)

const (
	// similarityThreshold is the cosine similarity a bio must exceed to earn
	// a conceptual match.
	similarityThreshold = 0.3

	// similarityWeight scales similarity into score points.
	similarityWeight = 30
)

// adjustment is the re-rank outcome for one candidate.
type adjustment struct {
	index   int
	delta   int
	reasons []string
}

// reranker adjusts heuristic scores using bio embeddings and sentiment.
// Every provider call is best effort.
type reranker struct {
	embedder     ai.Embedder
	sentiment    ai.SentimentClassifier
	pool         *ants.Pool
	timeout      time.Duration
	minBioLength int
	logger       *slog.Logger
}

// enabled reports whether re-ranking can run at all. Without an embedder
// there is no semantic signal and the stage is skipped.
func (r *reranker) enabled() bool {
	return r.embedder != nil
}

// rerank applies semantic adjustments in place and returns how many
// candidates were adjusted. Failures leave candidates untouched.
func (r *reranker) rerank(ctx context.Context, query string, candidates []*core.ScoredCandidate) int {
	if !r.enabled() || strings.TrimSpace(query) == "" || len(candidates) == 0 {
		return 0
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	queryVector, err := r.embedder.EmbedText(ctx, query)
	if err != nil || len(queryVector) == 0 {
		r.logger.Warn("query embedding failed, skipping re-rank", "err", err)
		return 0
	}

	var eligible []int
	for i, c := range candidates {
		if utf8.RuneCountInString(strings.TrimSpace(c.Profile.Bio)) >= r.minBioLength {
			eligible = append(eligible, i)
		}
	}

	// Every eligible index yields exactly one result, so the buffer never
	// fills and late workers never block after rerank returns.
	results := make(chan adjustment, len(eligible))
	go r.submit(ctx, candidates, eligible, queryVector, results)

	adjusted := 0
	for received := 0; received < len(eligible); received++ {
		select {
		case adj := <-results:
			if adj.delta == 0 && len(adj.reasons) == 0 {
				continue
			}
			c := candidates[adj.index]
			c.Score += adj.delta
			for _, reason := range adj.reasons {
				c.AddReason(reason)
			}
			adjusted++
		case <-ctx.Done():
			r.logger.Warn("re-rank timed out, keeping partial results",
				"received", received, "eligible", len(eligible), "err", ctx.Err())
			return adjusted
		}
	}
	return adjusted
}

// submit dispatches one task per eligible candidate. Submit blocks while the
// pool is saturated, so it runs apart from the collector and stops
// dispatching once ctx is done. Candidates it does not dispatch report an
// empty adjustment.
func (r *reranker) submit(ctx context.Context, candidates []*core.ScoredCandidate, eligible []int, queryVector []float32, results chan<- adjustment) {
	for _, index := range eligible {
		if ctx.Err() != nil {
			results <- adjustment{index: index}
			continue
		}
		profile := &candidates[index].Profile
		err := r.pool.Submit(func() {
			results <- r.adjust(ctx, index, profile, queryVector)
		})
		if err != nil {
			r.logger.Warn("error submitting re-rank task", "candidate", profile.Id, "err", err)
			results <- adjustment{index: index}
		}
	}
}

// adjust computes one candidate's adjustment. It only reads the profile.
func (r *reranker) adjust(ctx context.Context, index int, profile *core.Profile, queryVector []float32) adjustment {
	adj := adjustment{index: index}

	bioVector, err := r.bioVector(ctx, profile, len(queryVector))
	if err != nil {
		r.logger.Debug("bio embedding failed", "candidate", profile.Id, "err", err)
	} else if sim := cosineSimilarity(queryVector, bioVector); sim > similarityThreshold {
		adj.delta += int(math.Round(sim * similarityWeight))
		adj.reasons = append(adj.reasons, fmt.Sprintf("Conceptual Match (%d%%)", int(math.Round(sim*100))))
	}

	if r.sentiment != nil {
		sentiment, err := r.sentiment.Classify(ctx, profile.Bio)
		if err != nil {
			r.logger.Debug("sentiment classification failed", "candidate", profile.Id, "err", err)
		} else {
			adj.delta += sentiment.ScoreDelta()
		}
	}
	return adj
}

// bioVector returns the stored vector when it is current and comparable,
// otherwise embeds the bio.
func (r *reranker) bioVector(ctx context.Context, profile *core.Profile, dim int) ([]float32, error) {
	if profile.HasCurrentBioVector() && len(profile.BioVector) == dim {
		return profile.BioVector, nil
	}
	return r.embedder.EmbedText(ctx, profile.Bio)
}

// cosineSimilarity returns dot(a,b) / (|a| |b|), or 0 when the vectors
// differ in length or either is zero.
func cosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
