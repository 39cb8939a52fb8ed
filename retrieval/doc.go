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


// Package retrieval finds candidate college documents for a student profile.
//
// The Engine type implements a three-stage retrieval algorithm:
//   - Query construction from the profile, fixed clause order, empty
//     fields omitted
//   - Semantic search over the document index using vector embeddings
//   - Budget post-filtering on the fee range metadata
//
// Callers can observe each stage through a RetrievalMonitor.
package retrieval
