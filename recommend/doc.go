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


// Package recommend orchestrates the recommendation pipeline.
//
// A request flows retrieve -> generate -> parse -> rank -> verify. The
// generator's output is parsed in two tiers: strict JSON against the
// schema the prompt requests, then a regex fallback over free text with
// neutral defaults. Composite scores proposed by the generator are
// treated as drafts; the scoring engine recomputes them before ranking.
package recommend
