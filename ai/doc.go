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


// Package ai provides abstractions for AI services used in Counselit.
//
// This package defines interfaces for AI operations including text embeddings
// and recommendation generation. It follows the dependency inversion
// principle, allowing the core domain and business logic to depend on
// abstractions rather than concrete implementations.
//
// # Design Principles
//
// The package is designed around three key interfaces:
//
//   - Embedder: Generates vector embeddings from text
//   - Generator: Maps a formatted prompt to unstructured model output
//   - AIProvider: Aggregates AI services for convenient initialization
//
// The Generator is deliberately opaque: prompt construction and output
// parsing belong to the caller, and the pipeline must tolerate malformed
// output rather than trusting the model.
//
// # Implementation Packages
//
// The ai package includes two implementation sub-packages:
//
//   - ai/openai: Production implementation using OpenAI-compatible APIs
//   - ai/mock: Deterministic test/demo backend without external dependencies
//
// The backend is selected once at construction via Config.Backend and never
// re-inspected per call; the mock is a full backend variant, not a
// conditional branch inside business logic.
//
// # Usage Example
//
//	config := ai.NewConfig(ai.WithBackend(ai.BackendOpenAI))
//	provider, err := openai.NewProvider(config)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer provider.Close()
//
//	embedding, err := provider.Embedder().EmbedText(ctx, "engineering colleges in Delhi")
//	output, err := provider.Generator().Generate(ctx, prompt)
package ai
