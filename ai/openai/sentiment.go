package openai

import (
	"context"
	"log/slog"
	"strings"

	"github.com/poiesic/matchwell/ai"
)

// SentimentClassifier implements ai.SentimentClassifier with a chat model.
type SentimentClassifier struct {
	chat   *chatJSON
	logger *slog.Logger
}

type sentimentResponse struct {
	Sentiment string `json:"sentiment"`
}

func newSentimentClassifier(config *ai.Config) (*SentimentClassifier, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	client, err := newChatClient(config)
	if err != nil {
		return nil, err
	}
	logger := slog.Default().With("component", "openai-sentiment")
	return &SentimentClassifier{
		chat:   &chatJSON{client: client, maxAttempts: config.MaxAttempts, logger: logger},
		logger: logger,
	}, nil
}

// NewSentimentClassifier creates a sentiment classifier using the provided configuration.
//
// Returns ai.SentimentClassifier interface to enforce abstraction.
func NewSentimentClassifier(config *ai.Config) (ai.SentimentClassifier, error) {
	return newSentimentClassifier(config)
}

// Classify labels text as POSITIVE, NEGATIVE or NEUTRAL. Blank text is
// neutral without a model call.
func (s *SentimentClassifier) Classify(ctx context.Context, text string) (ai.Sentiment, error) {
	if strings.TrimSpace(text) == "" {
		return ai.SentimentNeutral, nil
	}

	var resp sentimentResponse
	if err := s.chat.complete(ctx, sentimentPrompt, text, &resp); err != nil {
		return ai.SentimentNeutral, err
	}

	sentiment, ok := ai.ParseSentiment(resp.Sentiment)
	if !ok {
		s.logger.Debug("unrecognized sentiment label", "label", resp.Sentiment)
	}
	return sentiment, nil
}
