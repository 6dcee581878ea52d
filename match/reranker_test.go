package match

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/poiesic/matchwell/ai"
	"github.com/poiesic/matchwell/ai/mock"
	"github.com/poiesic/matchwell/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestReranker(t *testing.T, embedder ai.Embedder, sentiment ai.SentimentClassifier, timeout time.Duration) *reranker {
	t.Helper()
	pool, err := ants.NewPool(4)
	require.NoError(t, err)
	t.Cleanup(pool.Release)
	return &reranker{
		embedder:     embedder,
		sentiment:    sentiment,
		pool:         pool,
		timeout:      timeout,
		minBioLength: DefaultMinBioLength,
		logger:       slog.Default(),
	}
}

func candidateWithBio(id core.ID, bio string) *core.ScoredCandidate {
	return &core.ScoredCandidate{
		Profile: core.Profile{Id: id, Name: "C", Bio: bio},
		Score:   50,
		Reasons: []string{},
	}
}

func TestCosineSimilarity(t *testing.T) {
	tests := []struct {
		name string
		a, b []float32
		want float64
	}{
		{name: "identical", a: []float32{1, 2, 3}, b: []float32{1, 2, 3}, want: 1},
		{name: "orthogonal", a: []float32{1, 0}, b: []float32{0, 1}, want: 0},
		{name: "opposite", a: []float32{1, 0}, b: []float32{-1, 0}, want: -1},
		{name: "scaled", a: []float32{1, 1}, b: []float32{3, 3}, want: 1},
		{name: "length mismatch", a: []float32{1, 0}, b: []float32{1, 0, 0}, want: 0},
		{name: "zero vector", a: []float32{0, 0}, b: []float32{1, 0}, want: 0},
		{name: "empty", want: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, cosineSimilarity(tt.a, tt.b), 1e-9)
		})
	}
}

func TestRerank_Adjustments(t *testing.T) {
	const (
		nearBio    = "Weekend hiker who loves the outdoors"
		farBio     = "Accountant focused on audits and tax"
		unhappyBio = "Tired of city life and long commutes"
	)
	vectors := map[string][]float32{
		"hiking":   {1, 0, 0},
		nearBio:    {0.9, 0.1, 0},
		farBio:     {0, 1, 0},
		unhappyBio: {0.5, 0.5, 0},
	}
	embedder := mock.NewMockEmbedder()
	embedder.EmbedTextFunc = func(ctx context.Context, text string) ([]float32, error) {
		return vectors[text], nil
	}
	sentiment := mock.NewMockSentimentClassifier()
	r := newTestReranker(t, embedder, sentiment, time.Second)

	candidates := []*core.ScoredCandidate{
		candidateWithBio(1, nearBio),
		candidateWithBio(2, farBio),
		candidateWithBio(3, unhappyBio),
		candidateWithBio(4, "Too short"),
	}

	adjusted := r.rerank(context.Background(), "hiking", candidates)
	assert.Equal(t, 2, adjusted)

	// 0.9939 similarity rounds to +30, "loves" adds 5.
	assert.Equal(t, 85, candidates[0].Score)
	assert.Equal(t, []string{"Conceptual Match (99%)"}, candidates[0].Reasons)

	assert.Equal(t, 50, candidates[1].Score)
	assert.Empty(t, candidates[1].Reasons)

	// 0.7071 similarity rounds to +21, "tired of" subtracts 5.
	assert.Equal(t, 66, candidates[2].Score)
	assert.Equal(t, []string{"Conceptual Match (71%)"}, candidates[2].Reasons)

	assert.Equal(t, 50, candidates[3].Score)
	assert.Equal(t, 4, embedder.CallCount(), "query plus three eligible bios")
	assert.Equal(t, 3, sentiment.CallCount())
}

func TestRerank_UsesStoredVector(t *testing.T) {
	const bio = "Weekend hiker who loves the outdoors"
	embedder := mock.NewMockEmbedder()
	embedder.EmbedTextFunc = func(ctx context.Context, text string) ([]float32, error) {
		if text == "hiking" {
			return []float32{1, 0, 0}, nil
		}
		return nil, errors.New("bio should come from the stored vector")
	}
	r := newTestReranker(t, embedder, nil, time.Second)

	current := candidateWithBio(1, bio)
	current.Profile.BioVector = []float32{1, 0, 0}
	current.Profile.BioDigest = core.IDFromContent(bio)

	stale := candidateWithBio(2, bio)
	stale.Profile.BioVector = []float32{1, 0, 0}
	stale.Profile.BioDigest = core.IDFromContent("an older bio")

	wrongDim := candidateWithBio(3, bio)
	wrongDim.Profile.BioVector = []float32{1, 0}
	wrongDim.Profile.BioDigest = core.IDFromContent(bio)

	candidates := []*core.ScoredCandidate{current, stale, wrongDim}
	adjusted := r.rerank(context.Background(), "hiking", candidates)

	assert.Equal(t, 1, adjusted)
	assert.Equal(t, 80, current.Score)
	assert.Equal(t, []string{"Conceptual Match (100%)"}, current.Reasons)
	assert.Equal(t, 50, stale.Score)
	assert.Equal(t, 50, wrongDim.Score)
	assert.Equal(t, 3, embedder.CallCount())
}

func TestRerank_Skipped(t *testing.T) {
	embedder := mock.NewMockEmbedder()
	bio := "Long enough bio about trekking and mountains"

	t.Run("no embedder", func(t *testing.T) {
		r := newTestReranker(t, nil, mock.NewMockSentimentClassifier(), time.Second)
		c := candidateWithBio(1, bio)
		assert.Zero(t, r.rerank(context.Background(), "trekking", []*core.ScoredCandidate{c}))
		assert.Equal(t, 50, c.Score)
	})

	t.Run("blank query", func(t *testing.T) {
		r := newTestReranker(t, embedder, nil, time.Second)
		c := candidateWithBio(1, bio)
		assert.Zero(t, r.rerank(context.Background(), "  ", []*core.ScoredCandidate{c}))
		assert.Zero(t, embedder.CallCount())
	})

	t.Run("no candidates", func(t *testing.T) {
		r := newTestReranker(t, embedder, nil, time.Second)
		assert.Zero(t, r.rerank(context.Background(), "trekking", nil))
		assert.Zero(t, embedder.CallCount())
	})

	t.Run("query embedding fails", func(t *testing.T) {
		failing := mock.NewMockEmbedder()
		failing.EmbedTextFunc = func(ctx context.Context, text string) ([]float32, error) {
			return nil, errors.New("unavailable")
		}
		sentiment := mock.NewMockSentimentClassifier()
		r := newTestReranker(t, failing, sentiment, time.Second)
		c := candidateWithBio(1, "I love trekking in the mountains")

		assert.Zero(t, r.rerank(context.Background(), "trekking", []*core.ScoredCandidate{c}))
		assert.Equal(t, 50, c.Score)
		assert.Zero(t, sentiment.CallCount())
	})
}

func TestRerank_SentimentWithoutSimilarity(t *testing.T) {
	embedder := mock.NewMockEmbedder()
	embedder.EmbedTextFunc = func(ctx context.Context, text string) ([]float32, error) {
		if text == "hiking" {
			return []float32{1, 0}, nil
		}
		return nil, errors.New("bio embedding unavailable")
	}
	r := newTestReranker(t, embedder, mock.NewMockSentimentClassifier(), time.Second)

	c := candidateWithBio(1, "Happy person who enjoys quiet evenings")
	assert.Equal(t, 1, r.rerank(context.Background(), "hiking", []*core.ScoredCandidate{c}))
	assert.Equal(t, 55, c.Score)
	assert.Empty(t, c.Reasons)
}

func TestRerank_Timeout(t *testing.T) {
	embedder := mock.NewMockEmbedder()
	embedder.EmbedTextFunc = func(ctx context.Context, text string) ([]float32, error) {
		if text == "hiking" {
			return []float32{1, 0}, nil
		}
		<-ctx.Done()
		return nil, ctx.Err()
	}
	r := newTestReranker(t, embedder, nil, 50*time.Millisecond)

	candidates := []*core.ScoredCandidate{
		candidateWithBio(1, "Weekend hiker who loves the outdoors"),
		candidateWithBio(2, "Trail runner and amateur astronomer"),
	}

	start := time.Now()
	adjusted := r.rerank(context.Background(), "hiking", candidates)
	assert.Less(t, time.Since(start), 2*time.Second)
	assert.Zero(t, adjusted)
	for _, c := range candidates {
		assert.Equal(t, 50, c.Score)
		assert.Empty(t, c.Reasons)
	}
}

func TestRerank_SaturatedPoolHonorsTimeout(t *testing.T) {
	unblock := make(chan struct{})
	embedder := mock.NewMockEmbedder()
	embedder.EmbedTextFunc = func(ctx context.Context, text string) ([]float32, error) {
		if text == "hiking" {
			return []float32{1, 0}, nil
		}
		// Ignores ctx, holding its worker until the test ends.
		<-unblock
		return []float32{1, 0}, nil
	}

	pool, err := ants.NewPool(1)
	require.NoError(t, err)
	t.Cleanup(pool.Release)
	t.Cleanup(func() { close(unblock) })

	r := &reranker{
		embedder:     embedder,
		pool:         pool,
		timeout:      50 * time.Millisecond,
		minBioLength: DefaultMinBioLength,
		logger:       slog.Default(),
	}
	candidates := []*core.ScoredCandidate{
		candidateWithBio(1, "Weekend hiker who loves the outdoors"),
		candidateWithBio(2, "Trail runner and amateur astronomer"),
		candidateWithBio(3, "Mountain photographer and keen camper"),
	}

	start := time.Now()
	adjusted := r.rerank(context.Background(), "hiking", candidates)
	assert.Less(t, time.Since(start), time.Second)
	assert.Zero(t, adjusted)
	for _, c := range candidates {
		assert.Equal(t, 50, c.Score)
	}
}
