package match

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime"
	"strings"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/poiesic/matchwell/ai"
	"github.com/poiesic/matchwell/astro"
	"github.com/poiesic/matchwell/core"
	"github.com/poiesic/matchwell/query"
	"github.com/poiesic/matchwell/refdata"
	"github.com/poiesic/matchwell/storage"
)

const (
	// DefaultSearchLimit is the page size for searches.
	DefaultSearchLimit = 20

	// DefaultRecommendationLimit is the page size for recommendations.
	DefaultRecommendationLimit = 50

	// DefaultRerankTimeout bounds the semantic re-rank batch.
	DefaultRerankTimeout = 5 * time.Second

	// DefaultMinBioLength is the shortest bio the re-ranker embeds.
	DefaultMinBioLength = 20
)

// SearchResult is the outcome of a search.
type SearchResult struct {
	// Candidates in final rank order.
	Candidates []*core.ScoredCandidate

	// UsedRelaxed reports whether the relaxed tier ran for this search.
	UsedRelaxed bool

	// Filters are the structured filters the search ran with.
	Filters *core.SearchFilters
}

// Engine ranks candidate profiles for a seeker. It holds no per-request
// state and is safe for concurrent use.
type Engine struct {
	store       storage.ProfileStore
	interpreter ai.QueryInterpreter
	parser      *query.Parser
	presence    storage.PresenceTracker
	dismissals  storage.DismissalStore
	monitor     Monitor
	ref         *refdata.ReferenceData
	pool        *ants.Pool
	logger      *slog.Logger

	embedder      ai.Embedder
	sentiment     ai.SentimentClassifier
	rerankTimeout time.Duration
	minBioLength  int

	retriever *retriever
	scorer    *scorer
	reranker  *reranker
}

// NewEngine creates an engine reading from store. provider may be nil, in
// which case queries go through the local parser and re-ranking is skipped.
func NewEngine(store storage.ProfileStore, provider ai.AIProvider, opts ...Option) (*Engine, error) {
	if store == nil {
		return nil, ErrProfileStoreRequired
	}

	poolSize := runtime.NumCPU()
	if poolSize < 4 {
		poolSize = 4
	}
	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	e := &Engine{
		store:         store,
		monitor:       noopMonitor{},
		ref:           refdata.Default(),
		pool:          pool,
		logger:        slog.Default(),
		rerankTimeout: DefaultRerankTimeout,
		minBioLength:  DefaultMinBioLength,
	}
	if provider != nil {
		e.interpreter = provider.QueryInterpreter()
		e.embedder = provider.Embedder()
		e.sentiment = provider.SentimentClassifier()
	}

	// Apply options (may override defaults)
	for _, opt := range opts {
		if optErr := opt(e); optErr != nil {
			e.Release()
			return nil, optErr
		}
	}

	e.logger = e.logger.With("component", "match")
	e.parser = query.NewParser(e.ref)
	e.retriever = &retriever{store: store, ref: e.ref, logger: e.logger}
	e.scorer = &scorer{ref: e.ref}
	e.reranker = &reranker{
		embedder:     e.embedder,
		sentiment:    e.sentiment,
		pool:         e.pool,
		timeout:      e.rerankTimeout,
		minBioLength: e.minBioLength,
		logger:       e.logger,
	}
	return e, nil
}

// Release releases the worker pool.
// The engine should not be used after calling Release.
func (e *Engine) Release() {
	if e.pool != nil {
		e.pool.Release()
	}
}

// Recommend returns candidates the seeker might like, without a query.
// Dismissed candidates are excluded. A non-positive limit uses
// DefaultRecommendationLimit.
func (e *Engine) Recommend(ctx context.Context, seekerID core.ID, limit int) ([]*core.ScoredCandidate, error) {
	if limit <= 0 {
		limit = DefaultRecommendationLimit
	}
	e.monitor.Start(seekerID, "")

	seeker, err := e.loadSeeker(ctx, seekerID)
	if err != nil {
		return nil, err
	}

	profiles, err := e.store.QueryProfiles(ctx, basePredicate(seeker))
	if err != nil {
		e.logger.Error("error retrieving recommendation candidates", "seeker", seekerID, "err", err)
		return nil, fmt.Errorf("%w: %w", ErrRetrievalFailed, err)
	}
	e.monitor.AfterRetrieval(len(profiles), 0)

	dismissed := e.dismissed(ctx, seekerID)
	scored := make([]*core.ScoredCandidate, 0, len(profiles))
	for _, p := range profiles {
		if _, gone := dismissed[p.Id]; gone {
			continue
		}
		c := e.scorer.scoreRecommendation(seeker, p)
		c.Kundli = kundli(seeker, p)
		scored = append(scored, c)
	}
	e.monitor.AfterScoring(scored)

	results := e.assemble(ctx, seeker, scored, limit)
	e.monitor.Finish(results)
	return results, nil
}

// Search interprets a free-text query and returns ranked candidates.
// A non-positive limit uses DefaultSearchLimit.
func (e *Engine) Search(ctx context.Context, seekerID core.ID, text string, limit int) (*SearchResult, error) {
	e.monitor.Start(seekerID, text)

	seeker, err := e.loadSeeker(ctx, seekerID)
	if err != nil {
		return nil, err
	}

	filters := e.interpret(ctx, text)
	return e.search(ctx, seeker, filters, text, limit)
}

// SearchWithFilters runs a search with already structured filters. text,
// when not blank, drives semantic re-ranking.
func (e *Engine) SearchWithFilters(ctx context.Context, seekerID core.ID, filters *core.SearchFilters, text string, limit int) (*SearchResult, error) {
	e.monitor.Start(seekerID, text)

	seeker, err := e.loadSeeker(ctx, seekerID)
	if err != nil {
		return nil, err
	}
	e.monitor.AfterInterpretation(filters, false)
	return e.search(ctx, seeker, filters, text, limit)
}

func (e *Engine) search(ctx context.Context, seeker *core.Profile, filters *core.SearchFilters, text string, limit int) (*SearchResult, error) {
	if limit <= 0 {
		limit = DefaultSearchLimit
	}
	filters = normalizeFilters(seeker, filters)

	found, err := e.retriever.retrieve(ctx, seeker, filters)
	if err != nil {
		e.logger.Error("error retrieving candidates", "seeker", seeker.Id, "err", err)
		return nil, fmt.Errorf("%w: %w", ErrRetrievalFailed, err)
	}
	e.monitor.AfterRetrieval(found.strict, found.relaxed)

	scored := make([]*core.ScoredCandidate, len(found.candidates))
	for i, c := range found.candidates {
		scored[i] = e.scorer.scoreSearch(seeker, c.profile, filters, c.tier)
		scored[i].Kundli = kundli(seeker, c.profile)
	}
	e.monitor.AfterScoring(scored)

	adjusted := e.reranker.rerank(ctx, text, scored)
	e.monitor.AfterRerank(adjusted)

	// A cancelled caller gets no partially ranked list.
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	results := e.assemble(ctx, seeker, scored, limit)
	e.monitor.Finish(results)

	return &SearchResult{
		Candidates:  results,
		UsedRelaxed: found.usedRelaxed,
		Filters:     filters,
	}, nil
}

// interpret turns text into filters, preferring the configured interpreter
// and falling back to the local parser when it is absent or fails.
func (e *Engine) interpret(ctx context.Context, text string) *core.SearchFilters {
	if strings.TrimSpace(text) == "" {
		filters := &core.SearchFilters{}
		e.monitor.AfterInterpretation(filters, false)
		return filters
	}

	if e.interpreter != nil {
		filters, err := e.interpreter.Interpret(ctx, text)
		if err == nil && filters != nil {
			e.monitor.AfterInterpretation(filters, false)
			return filters
		}
		e.logger.Warn("query interpreter unavailable, using fallback parser", "err", err)
	}

	filters := e.parser.Parse(text)
	e.monitor.AfterInterpretation(filters, true)
	return filters
}

func (e *Engine) loadSeeker(ctx context.Context, id core.ID) (*core.Profile, error) {
	seeker, err := e.store.GetProfile(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, fmt.Errorf("%w: %d: %w", ErrSeekerNotFound, id, err)
		}
		e.logger.Error("error loading seeker", "seeker", id, "err", err)
		return nil, fmt.Errorf("load seeker %d: %w", id, err)
	}
	return seeker, nil
}

// dismissed returns the seeker's dismissed candidates. Failures are logged
// and treated as no dismissals.
func (e *Engine) dismissed(ctx context.Context, seekerID core.ID) map[core.ID]struct{} {
	if e.dismissals == nil {
		return nil
	}
	dismissed, err := e.dismissals.Dismissed(ctx, seekerID)
	if err != nil {
		e.logger.Warn("error loading dismissed recommendations", "seeker", seekerID, "err", err)
		return nil
	}
	return dismissed
}

// normalizeFilters returns a copy of f with reversed bounds swapped and
// use-my-location resolved against the seeker's city.
func normalizeFilters(seeker *core.Profile, f *core.SearchFilters) *core.SearchFilters {
	if f == nil {
		return &core.SearchFilters{}
	}
	out := *f
	if out.MinAge > 0 && out.MaxAge > 0 && out.MinAge > out.MaxAge {
		out.MinAge, out.MaxAge = out.MaxAge, out.MinAge
	}
	if out.MinHeightInches > 0 && out.MaxHeightInches > 0 && out.MinHeightInches > out.MaxHeightInches {
		out.MinHeightInches, out.MaxHeightInches = out.MaxHeightInches, out.MinHeightInches
	}
	if out.UseMyLocation && strings.TrimSpace(out.Location) == "" {
		out.Location = seeker.Metadata.Location.City
	}
	return &out
}

// kundli computes the pair's astrological compatibility.
func kundli(seeker, candidate *core.Profile) core.KundliResult {
	return astro.Compatibility(seeker.Metadata.Horoscope.Nakshatra, candidate.Metadata.Horoscope.Nakshatra)
}
