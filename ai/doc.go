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

// Package ai provides abstractions for the AI services used by matchwell.
//
// The matching engine depends on these interfaces rather than on concrete
// clients, so every AI collaborator can be replaced by a deterministic fake.
//
//   - Embedder: vector embeddings for query and bio text
//   - SentimentClassifier: POSITIVE / NEGATIVE / NEUTRAL labels for bios
//   - QueryInterpreter: free-text search to core.SearchFilters
//   - AIProvider: aggregates the three for initialization and Close
//
// Two implementation sub-packages are included:
//
//   - ai/openai: langchaingo clients for OpenAI-compatible servers
//   - ai/mock: test doubles with injectable behavior and call counts
//
// Public constructors in ai/openai return interface types. Mock constructors
// return concrete types so tests can inject behavior and assert call counts.
//
//	cfg := ai.NewConfig(ai.WithHost("http://localhost:11434"))
//	provider, err := openai.NewProvider(cfg)
//	if err != nil {
//	    return err
//	}
//	defer provider.Close()
//
//	filters, err := provider.QueryInterpreter().Interpret(ctx, "doctor in Pune under 30")
package ai
