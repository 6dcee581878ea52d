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

package mock

import "github.com/poiesic/matchwell/ai"

// MockProvider is a test double for ai.AIProvider.
type MockProvider struct {
	embedder    *MockEmbedder
	sentiment   *MockSentimentClassifier
	interpreter *MockQueryInterpreter
	closed      bool
}

// NewMockProvider creates a new mock provider with default mock services.
//
// Returns *MockProvider so tests can reach the concrete services through the
// GetMock accessors.
func NewMockProvider() *MockProvider {
	return &MockProvider{
		embedder:    NewMockEmbedder(),
		sentiment:   NewMockSentimentClassifier(),
		interpreter: NewMockQueryInterpreter(),
	}
}

// NewMockProviderWithServices creates a mock provider with custom mock services.
// Nil arguments are replaced with defaults.
func NewMockProviderWithServices(embedder *MockEmbedder, sentiment *MockSentimentClassifier, interpreter *MockQueryInterpreter) *MockProvider {
	p := NewMockProvider()
	if embedder != nil {
		p.embedder = embedder
	}
	if sentiment != nil {
		p.sentiment = sentiment
	}
	if interpreter != nil {
		p.interpreter = interpreter
	}
	return p
}

// Embedder returns the mock embedder.
func (p *MockProvider) Embedder() ai.Embedder {
	return p.embedder
}

// SentimentClassifier returns the mock sentiment classifier.
func (p *MockProvider) SentimentClassifier() ai.SentimentClassifier {
	return p.sentiment
}

// QueryInterpreter returns the mock query interpreter.
func (p *MockProvider) QueryInterpreter() ai.QueryInterpreter {
	return p.interpreter
}

// Close marks the provider closed.
func (p *MockProvider) Close() error {
	p.closed = true
	return nil
}

// Closed reports whether Close was called.
func (p *MockProvider) Closed() bool {
	return p.closed
}

// GetMockEmbedder returns the underlying mock embedder for test assertions.
func (p *MockProvider) GetMockEmbedder() *MockEmbedder {
	return p.embedder
}

// GetMockSentiment returns the underlying mock sentiment classifier.
func (p *MockProvider) GetMockSentiment() *MockSentimentClassifier {
	return p.sentiment
}

// GetMockInterpreter returns the underlying mock query interpreter.
func (p *MockProvider) GetMockInterpreter() *MockQueryInterpreter {
	return p.interpreter
}
