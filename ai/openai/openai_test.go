package openai

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/poiesic/matchwell/ai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tmc/langchaingo/llms"
)

// scriptedModel replays canned completions, one per call.
type scriptedModel struct {
	responses []string
	err       error
	calls     int
}

func (m *scriptedModel) GenerateContent(_ context.Context, _ []llms.MessageContent, _ ...llms.CallOption) (*llms.ContentResponse, error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	if len(m.responses) == 0 {
		return &llms.ContentResponse{}, nil
	}
	i := min(m.calls-1, len(m.responses)-1)
	return &llms.ContentResponse{Choices: []*llms.ContentChoice{{Content: m.responses[i]}}}, nil
}

func (m *scriptedModel) Call(ctx context.Context, prompt string, options ...llms.CallOption) (string, error) {
	return llms.GenerateFromSinglePrompt(ctx, m, prompt, options...)
}

func newTestChat(model llms.Model) *chatJSON {
	return &chatJSON{client: model, maxAttempts: 3, logger: slog.Default()}
}

func TestExtractJSONObject(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", `{"a":1}`, `{"a":1}`},
		{"fenced", "```json\n{\"a\":1}\n```", `{"a":1}`},
		{"chatter", `Sure! Here you go: {"a":1} Hope that helps`, `{"a":1}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, extractJSONObject(tt.in))
		})
	}
}

func TestRepairJSON(t *testing.T) {
	assert.Equal(t, `{"profession":"Doctor"}`, repairJSON(`{profession":"Doctor"}`))
	assert.Equal(t, `{"min_age": 24}`, repairJSON(`{min_age: 24}`))
	assert.Equal(t, `{"a":1}`, repairJSON(`{"a":1,}`))
}

func TestSentimentClassifier_Classify(t *testing.T) {
	model := &scriptedModel{responses: []string{`{"sentiment": "POSITIVE"}`}}
	s := &SentimentClassifier{chat: newTestChat(model), logger: slog.Default()}

	got, err := s.Classify(context.Background(), "I adore my family and love hiking!")
	require.NoError(t, err)
	assert.Equal(t, ai.SentimentPositive, got)
	assert.Equal(t, 1, model.calls)
}

func TestSentimentClassifier_BlankTextSkipsModel(t *testing.T) {
	model := &scriptedModel{}
	s := &SentimentClassifier{chat: newTestChat(model), logger: slog.Default()}

	got, err := s.Classify(context.Background(), "   ")
	require.NoError(t, err)
	assert.Equal(t, ai.SentimentNeutral, got)
	assert.Equal(t, 0, model.calls)
}

func TestSentimentClassifier_RetriesMalformedOutput(t *testing.T) {
	model := &scriptedModel{responses: []string{`not json at all`, `{"sentiment": "NEGATIVE"}`}}
	s := &SentimentClassifier{chat: newTestChat(model), logger: slog.Default()}

	got, err := s.Classify(context.Background(), "everything is terrible")
	require.NoError(t, err)
	assert.Equal(t, ai.SentimentNegative, got)
	assert.Equal(t, 2, model.calls)
}

func TestSentimentClassifier_GivesUpAfterMaxAttempts(t *testing.T) {
	model := &scriptedModel{responses: []string{`garbage`}}
	s := &SentimentClassifier{chat: newTestChat(model), logger: slog.Default()}

	_, err := s.Classify(context.Background(), "hello there")
	require.Error(t, err)
	assert.Equal(t, 3, model.calls)
}

func TestSentimentClassifier_TransportErrorNotRetried(t *testing.T) {
	boom := errors.New("connection refused")
	model := &scriptedModel{err: boom}
	s := &SentimentClassifier{chat: newTestChat(model), logger: slog.Default()}

	_, err := s.Classify(context.Background(), "hello there")
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 1, model.calls)
}

func TestQueryInterpreter_Interpret(t *testing.T) {
	model := &scriptedModel{responses: []string{"```json\n" + `{
		"profession": "Software Engineer",
		"location": "Hyderabad",
		"min_age": "24",
		"max_age": 28,
		"min_income": 1000000.0,
		"min_height": "5'6\"",
		"max_height": "6 ft",
		"smoking": "non-smoker",
		"interests": ["Trekking", "trekking", " music "],
		"use_my_location": false
	}` + "\n```"}}
	q := &QueryInterpreter{chat: newTestChat(model), prompt: buildInterpretationPrompt(), logger: slog.Default()}

	f, err := q.Interpret(context.Background(), "software engineer in hyderabad 24-28")
	require.NoError(t, err)
	assert.Equal(t, "Software Engineer", f.Profession)
	assert.Equal(t, "Hyderabad", f.Location)
	assert.Equal(t, 24, f.MinAge)
	assert.Equal(t, 28, f.MaxAge)
	assert.Equal(t, int64(1000000), f.MinIncome)
	assert.Equal(t, 66, f.MinHeightInches)
	assert.Equal(t, 72, f.MaxHeightInches)
	assert.Equal(t, "No", f.Smoking)
	assert.Equal(t, []string{"trekking", "music"}, f.Interests)
}

func TestQueryInterpreter_BlankQuery(t *testing.T) {
	model := &scriptedModel{}
	q := &QueryInterpreter{chat: newTestChat(model), prompt: buildInterpretationPrompt(), logger: slog.Default()}

	f, err := q.Interpret(context.Background(), "")
	require.NoError(t, err)
	assert.True(t, f.IsEmpty())
	assert.Equal(t, 0, model.calls)
}

func TestQueryInterpreter_NoChoices(t *testing.T) {
	model := &scriptedModel{}
	q := &QueryInterpreter{chat: newTestChat(model), prompt: buildInterpretationPrompt(), logger: slog.Default()}

	_, err := q.Interpret(context.Background(), "doctor")
	assert.ErrorIs(t, err, ErrNoChoices)
}

func TestNormalizeHabit(t *testing.T) {
	assert.Equal(t, "No", normalizeHabit("never"))
	assert.Equal(t, "No", normalizeHabit(" NO "))
	assert.Equal(t, "Yes", normalizeHabit("yes"))
	assert.Equal(t, "Occasionally", normalizeHabit("Occasionally"))
	assert.Equal(t, "", normalizeHabit(""))
}

type fakeLangchainEmbedder struct {
	vectors [][]float32
	err     error
	calls   int
}

func (f *fakeLangchainEmbedder) EmbedDocuments(_ context.Context, texts []string) ([][]float32, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.vectors[:min(len(texts), len(f.vectors))], nil
}

func (f *fakeLangchainEmbedder) EmbedQuery(ctx context.Context, text string) ([]float32, error) {
	v, err := f.EmbedDocuments(ctx, []string{text})
	if err != nil || len(v) == 0 {
		return nil, err
	}
	return v[0], nil
}

func TestEmbedder_EmbedText(t *testing.T) {
	inner := &fakeLangchainEmbedder{vectors: [][]float32{{0.1, 0.2, 0.3}}}
	e := &Embedder{embedder: inner, logger: slog.Default()}

	v, err := e.EmbedText(context.Background(), "enjoys classical music")
	require.NoError(t, err)
	assert.Equal(t, []float32{0.1, 0.2, 0.3}, v)

	_, err = e.EmbedText(context.Background(), "  ")
	assert.ErrorIs(t, err, ErrEmptyEmbedding)
	assert.Equal(t, 1, inner.calls)
}

func TestEmbedder_EmbedTextsCountMismatch(t *testing.T) {
	inner := &fakeLangchainEmbedder{vectors: [][]float32{{1, 0}}}
	e := &Embedder{embedder: inner, logger: slog.Default()}

	_, err := e.EmbedTexts(context.Background(), []string{"a", "b"})
	assert.ErrorIs(t, err, ErrEmptyEmbedding)

	got, err := e.EmbedTexts(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, got)
}
