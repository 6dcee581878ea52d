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

// Package openai provides AI service implementations using OpenAI-compatible APIs.
//
// This package implements ai.AIProvider with the langchaingo library, talking
// to OpenAI or any OpenAI-compatible server (Ollama, LocalAI, vLLM).
// Embeddings go through the embeddings API; sentiment labels and query
// interpretation use a chat model in JSON mode with bounded decode retries.
//
// # Usage
//
//	config := ai.NewConfig(
//	    ai.WithHost("http://localhost:11434"), // /v1 added automatically
//	    ai.WithClassifierModel("qwen2.5:3b"),
//	)
//
//	provider, err := openai.NewProvider(config)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer provider.Close()
//
//	vector, err := provider.Embedder().EmbedText(ctx, "loves trekking and jazz")
//	label, err := provider.SentimentClassifier().Classify(ctx, bio)
//	filters, err := provider.QueryInterpreter().Interpret(ctx, "doctor in pune under 30")
package openai
