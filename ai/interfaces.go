package ai

import (
	"context"

	"github.com/poiesic/matchwell/core"
)

// Embedder generates vector embeddings from text for semantic similarity.
// Implementations must be thread-safe for concurrent use.
type Embedder interface {
	// EmbedText generates a vector embedding for a single text string.
	// The returned vector represents the semantic meaning of the text.
	// Returns an error if the embedding generation fails.
	EmbedText(ctx context.Context, text string) ([]float32, error)

	// EmbedTexts generates vector embeddings for multiple text strings in a batch.
	// The returned slice contains embeddings in the same order as the input texts.
	// Returns an error if any embedding generation fails.
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
}

// SentimentClassifier assigns a coarse sentiment label to text.
// Implementations must be thread-safe for concurrent use.
type SentimentClassifier interface {
	// Classify returns the overall sentiment of text.
	Classify(ctx context.Context, text string) (Sentiment, error)
}

// QueryInterpreter turns a free-text search into structured filters.
// Implementations must be thread-safe for concurrent use.
type QueryInterpreter interface {
	// Interpret returns the filters expressed by text. Fields the text does
	// not mention are left at their zero value.
	Interpret(ctx context.Context, text string) (*core.SearchFilters, error)
}

// AIProvider aggregates AI services for convenient initialization and lifecycle management.
// A provider creates and manages the services so they share configuration and clients.
type AIProvider interface {
	// Embedder returns the text embedding service.
	Embedder() Embedder

	// SentimentClassifier returns the sentiment service.
	SentimentClassifier() SentimentClassifier

	// QueryInterpreter returns the free-text query interpreter.
	QueryInterpreter() QueryInterpreter

	// Close releases resources held by the provider and its services.
	// After Close is called, the provider and its services should not be used.
	Close() error
}
