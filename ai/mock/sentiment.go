package mock

import (
	"context"
	"strings"
	"sync/atomic"

	"github.com/poiesic/matchwell/ai"
)

var (
	positiveWords = []string{"love", "happy", "enjoy", "passionate", "joy", "excited"}
	negativeWords = []string{"hate", "sad", "angry", "annoyed", "tired of", "bitter"}
)

// MockSentimentClassifier is a test double for ai.SentimentClassifier.
type MockSentimentClassifier struct {
	// ClassifyFunc is called by Classify if set.
	// If nil, a small keyword list decides the label.
	ClassifyFunc func(ctx context.Context, text string) (ai.Sentiment, error)

	callCount atomic.Int64
}

// NewMockSentimentClassifier creates a mock classifier with keyword behavior.
func NewMockSentimentClassifier() *MockSentimentClassifier {
	return &MockSentimentClassifier{}
}

// Classify returns the injected result or a keyword-based label.
func (m *MockSentimentClassifier) Classify(ctx context.Context, text string) (ai.Sentiment, error) {
	m.callCount.Add(1)

	if m.ClassifyFunc != nil {
		return m.ClassifyFunc(ctx, text)
	}

	lower := strings.ToLower(text)
	for _, w := range negativeWords {
		if strings.Contains(lower, w) {
			return ai.SentimentNegative, nil
		}
	}
	for _, w := range positiveWords {
		if strings.Contains(lower, w) {
			return ai.SentimentPositive, nil
		}
	}
	return ai.SentimentNeutral, nil
}

// CallCount returns the number of times Classify was called.
func (m *MockSentimentClassifier) CallCount() int {
	return int(m.callCount.Load())
}

// Reset clears the call count and injected behavior.
func (m *MockSentimentClassifier) Reset() {
	m.callCount.Store(0)
	m.ClassifyFunc = nil
}
