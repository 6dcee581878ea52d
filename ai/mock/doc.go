// Package mock provides test doubles for the ai package interfaces.
//
// The mocks need no external services and behave deterministically. Each one
// exposes a Func field for injecting behavior and an atomic CallCount, so they
// are safe to share across the goroutines of a concurrent re-rank.
//
// # Usage in Tests
//
//	provider := mock.NewMockProvider()
//	provider.GetMockEmbedder().EmbedTextFunc = func(ctx context.Context, text string) ([]float32, error) {
//	    return nil, errors.New("embedding service down")
//	}
//	engine, err := match.NewEngine(store, provider)
//
// # Default Behavior
//
//   - MockEmbedder: bag-of-words unit vectors, so shared words mean high similarity
//   - MockSentimentClassifier: keyword labels ("love" is POSITIVE, "hate" is NEGATIVE)
//   - MockQueryInterpreter: returns the canned Filters field, or empty filters
package mock
