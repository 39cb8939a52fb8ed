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


package verify

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"slices"
	"strings"
	"time"

	"github.com/poiesic/counselit/core"
)

const (
	// placementTolerance is the allowed gap, in percentage points,
	// between a claimed and a reference placement figure.
	placementTolerance = 5.0

	// seatTolerance is the allowed gap between claimed and reference
	// seat counts.
	seatTolerance = 10
)

// Engine verifies claims about colleges against reference sources.
//
// Every verification is fail-soft: lookup errors produce an unverified
// result with an explanatory note, never an error that aborts the request.
type Engine struct {
	sources []ReferenceSource
	cache   *Cache
	now     Clock
	logger  *slog.Logger
}

// Option configures an Engine.
type Option func(*engineConfig)

type engineConfig struct {
	sources  []ReferenceSource
	cacheTTL time.Duration
	clock    Clock
	logger   *slog.Logger
}

// WithSources replaces the default reference source set.
func WithSources(sources ...ReferenceSource) Option {
	return func(c *engineConfig) {
		c.sources = sources
	}
}

// WithCacheTTL overrides the verification cache TTL.
// Default is DefaultCacheTTL.
func WithCacheTTL(ttl time.Duration) Option {
	return func(c *engineConfig) {
		c.cacheTTL = ttl
	}
}

// WithClock injects a time source for deterministic tests.
// Default is time.Now.
func WithClock(clock Clock) Option {
	return func(c *engineConfig) {
		if clock != nil {
			c.clock = clock
		}
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(c *engineConfig) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewEngine creates a verification engine.
// Without options it uses the built-in NIRF, UGC and AICTE tables and the
// default cache TTL.
func NewEngine(opts ...Option) (*Engine, error) {
	config := &engineConfig{
		clock:  time.Now,
		logger: slog.Default().With("component", "verify"),
	}
	for _, opt := range opts {
		opt(config)
	}
	if config.sources == nil {
		config.sources = []ReferenceSource{NewNIRFSource(), NewUGCSource(), NewAICTESource()}
	}
	if len(config.sources) == 0 {
		return nil, ErrNoSources
	}

	return &Engine{
		sources: config.sources,
		cache:   NewCache(config.cacheTTL, config.clock),
		now:     config.clock,
		logger:  config.logger,
	}, nil
}

// VerifyClaim checks one claim about a subject college.
// Live cached results are returned unchanged; otherwise the claim is
// dispatched by type, verified, cached, and returned.
func (e *Engine) VerifyClaim(ctx context.Context, claim, subject string, claimType ClaimType) *core.VerificationResult {
	if cached, ok := e.cache.Get(subject, claim, claimType); ok {
		return cached
	}

	var result *core.VerificationResult
	switch claimType {
	case ClaimPlacement:
		result = e.verifyPlacement(ctx, claim, subject)
	case ClaimAccreditation:
		result = e.verifyAccreditation(ctx, claim, subject)
	case ClaimProgram:
		result = e.verifyProgram(ctx, claim, subject)
	default:
		result = e.verifyGeneral(ctx, claim, subject)
	}

	e.cache.Put(subject, claim, claimType, result)
	return result
}

// VerifyRecommendations verifies the checkable claims of each
// recommendation and sets its aggregate verification status.
//
// Three claims are checked per college when present: the latest placement
// percentage, the accreditation list, and the primary program's seat
// count. A one-line confidence summary per checked claim is appended to
// the evidence citations; prior citations are never overwritten.
func (e *Engine) VerifyRecommendations(ctx context.Context, recommendations []*core.Recommendation) []*core.Recommendation {
	for _, rec := range recommendations {
		college := rec.College
		if college == nil {
			rec.VerificationStatus = core.VerificationNoClaims
			continue
		}

		var results []*core.VerificationResult

		if latest := college.LatestPlacement(); latest != nil {
			results = append(results,
				e.VerifyClaim(ctx, PlacementClaim(latest), college.Name, ClaimPlacement))
		}
		if len(college.Accreditation) > 0 {
			results = append(results,
				e.VerifyClaim(ctx, AccreditationClaim(college), college.Name, ClaimAccreditation))
		}
		if len(college.Programs) > 0 {
			results = append(results,
				e.VerifyClaim(ctx, ProgramClaim(&college.Programs[0]), college.Name, ClaimProgram))
		}

		verified := 0
		for _, result := range results {
			if result.Verified {
				verified++
			}
		}

		switch {
		case len(results) == 0:
			rec.VerificationStatus = core.VerificationNoClaims
		case verified == len(results):
			rec.VerificationStatus = core.VerificationVerified
		case verified > len(results)/2:
			rec.VerificationStatus = core.VerificationPartial
		default:
			rec.VerificationStatus = core.VerificationFlagged
		}

		for _, result := range results {
			rec.EvidenceCitations = append(rec.EvidenceCitations,
				fmt.Sprintf("Verification: %t (Confidence: %.2f)", result.Verified, result.Confidence))
		}
	}
	return recommendations
}

func (e *Engine) verifyPlacement(ctx context.Context, claim, subject string) *core.VerificationResult {
	var lookupErr error
	for _, source := range e.sources {
		ref, found, err := source.Lookup(ctx, subject)
		if err != nil {
			e.logger.Warn("reference lookup failed", "source", source.Name(), "college", subject, "err", err)
			lookupErr = err
			continue
		}
		if !found || !ref.hasPlacement() {
			continue
		}

		if claimed, ok := extractPercentage(claim); ok {
			if math.Abs(claimed-ref.Placement) <= placementTolerance {
				return e.result(claim, true, 0.9, source.Name(),
					fmt.Sprintf("Verified against %s data: %v%%", source.Name(), ref.Placement))
			}
		}
		// Reference known but disagrees (or the claim carries no
		// figure). Absence of corroboration, not proof of falsehood.
		return e.result(claim, false, 0.3, source.Name(),
			fmt.Sprintf("Placement data not found in %s records", source.Name()))
	}

	if lookupErr != nil {
		return e.result(claim, false, 0.0, "verification_error",
			fmt.Sprintf("Error during verification: %v", lookupErr))
	}
	name := e.sources[0].Name()
	return e.result(claim, false, 0.3, name,
		fmt.Sprintf("Placement data not found in %s records", name))
}

func (e *Engine) verifyAccreditation(ctx context.Context, claim, subject string) *core.VerificationResult {
	reference, names, lookupErr := e.collectReferences(ctx, subject)
	if reference == nil && lookupErr != nil {
		return e.result(claim, false, 0.0, "verification_error",
			fmt.Sprintf("Error during accreditation verification: %v", lookupErr))
	}

	label := sourceLabel(names, e.sources)
	claimed := extractAccreditationTokens(claim)

	var known []string
	if reference != nil {
		known = reference.Accreditation
	}

	verified := 0
	for _, token := range claimed {
		if slices.Contains(known, token) {
			verified++
		}
	}

	switch {
	case verified == len(claimed):
		return e.result(claim, true, 0.95, label,
			fmt.Sprintf("All accreditations verified: %s", strings.Join(known, ", ")))
	case verified > 0:
		return e.result(claim, true, 0.7, label,
			fmt.Sprintf("Partially verified: %d/%d accreditations found", verified, len(claimed)))
	default:
		return e.result(claim, false, 0.8, label,
			"No matching accreditations found in official records")
	}
}

func (e *Engine) verifyProgram(ctx context.Context, claim, subject string) *core.VerificationResult {
	reference, names, lookupErr := e.collectReferences(ctx, subject)
	if reference == nil && lookupErr != nil {
		return e.result(claim, false, 0.0, "verification_error",
			fmt.Sprintf("Error during program verification: %v", lookupErr))
	}

	label := sourceLabel(names, e.sources)

	if reference != nil {
		if name, seats, ok := extractProgramClaim(claim); ok {
			for _, program := range reference.Programs {
				if !strings.Contains(strings.ToLower(program.Name), strings.ToLower(name)) {
					continue
				}
				if seats-program.Seats <= seatTolerance && program.Seats-seats <= seatTolerance {
					return e.result(claim, true, 0.9, label,
						fmt.Sprintf("Program verified: %s with %d seats", name, program.Seats))
				}
			}
		}
	}

	return e.result(claim, false, 0.6, label,
		"Program not found in official records or seat count mismatch")
}

func (e *Engine) verifyGeneral(ctx context.Context, claim, subject string) *core.VerificationResult {
	var best *core.VerificationResult
	for _, source := range e.sources {
		_, found, err := source.Lookup(ctx, subject)
		if err != nil {
			e.logger.Warn("reference lookup failed", "source", source.Name(), "college", subject, "err", err)
			continue
		}
		if !found {
			continue
		}
		candidate := e.result(claim, true, source.TrustLevel(), source.Name(),
			fmt.Sprintf("Data found in %s records", source.Name()))
		if best == nil || candidate.Confidence > best.Confidence {
			best = candidate
		}
	}
	if best != nil {
		return best
	}
	return e.result(claim, false, 0.0, "verification_failed",
		"Could not verify claim against government sources")
}

// collectReferences merges the reference entries of every source that
// knows the subject. Accreditation lists and program lists concatenate in
// source order. Returns nil when no source knows the subject; the error is
// the last lookup failure, if any.
func (e *Engine) collectReferences(ctx context.Context, subject string) (*Reference, map[string]bool, error) {
	var (
		merged    *Reference
		names     = make(map[string]bool)
		lookupErr error
	)
	for _, source := range e.sources {
		ref, found, err := source.Lookup(ctx, subject)
		if err != nil {
			e.logger.Warn("reference lookup failed", "source", source.Name(), "college", subject, "err", err)
			lookupErr = err
			continue
		}
		if !found {
			continue
		}
		if merged == nil {
			merged = &Reference{}
		}
		names[source.Name()] = true
		merged.Accreditation = append(merged.Accreditation, ref.Accreditation...)
		merged.Programs = append(merged.Programs, ref.Programs...)
		if merged.Placement == 0 {
			merged.Placement = ref.Placement
		}
	}
	return merged, names, lookupErr
}

// sourceLabel joins contributing source names in engine order.
// Falls back to the full source list when nothing matched, so a miss is
// still attributed to the sources that were consulted.
func sourceLabel(names map[string]bool, sources []ReferenceSource) string {
	var parts []string
	for _, source := range sources {
		if len(names) == 0 || names[source.Name()] {
			parts = append(parts, source.Name())
		}
	}
	return strings.Join(parts, "/")
}

func (e *Engine) result(claim string, verified bool, confidence float64, source, notes string) *core.VerificationResult {
	return &core.VerificationResult{
		Claim:      claim,
		Verified:   verified,
		Confidence: confidence,
		Source:     source,
		VerifiedAt: e.now(),
		Notes:      notes,
	}
}
