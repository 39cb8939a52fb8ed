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


// Package verify cross-checks generated claims against reference sources.
//
// The Engine type dispatches claims by type:
//   - placement: percentage extracted from the claim, compared against the
//     reference figure with a 5 percentage point tolerance
//   - accreditation: vocabulary tokens from the claim matched against the
//     merged reference accreditation lists
//   - program: "Offers X with N seats" matched by program name with a
//     seat tolerance of 10
//   - general: per-source presence check, highest-confidence match wins
//
// Verification is heuristic plausibility checking, not fact auditing:
// absence of reference data lowers confidence rather than flagging the
// claim as false outright. Every path is fail-soft; a broken source
// yields an unverified result with a note, never a pipeline error.
//
// Results are cached per (subject, claim, claim type) with a configurable
// TTL. The clock is injectable so expiry is testable.
package verify
