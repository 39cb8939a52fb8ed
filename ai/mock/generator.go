package mock

import (
	"context"
	"fmt"
	"hash/fnv"
	"strings"
)

// MockGenerator is a test double for ai.Generator.
// By default it scans the prompt for college document lines and
// emits a deterministic JSON recommendation payload the pipeline
// parser understands, so end-to-end tests run without a model.
type MockGenerator struct {
	// GenerateFunc is called by Generate if set.
	// If nil, uses default deterministic behavior.
	GenerateFunc func(ctx context.Context, prompt string) (string, error)

	callCount int
}

// NewMockGenerator creates a mock generator with default deterministic behavior.
func NewMockGenerator() *MockGenerator {
	return &MockGenerator{}
}

// Generate produces a deterministic recommendation payload derived
// from the college names present in the prompt.
func (m *MockGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	m.callCount++

	if m.GenerateFunc != nil {
		return m.GenerateFunc(ctx, prompt)
	}

	names := collegeNamesFromPrompt(prompt)
	if len(names) == 0 {
		return `{"recommendations": []}`, nil
	}

	var b strings.Builder
	b.WriteString(`{"recommendations": [`)
	for i, name := range names {
		if i > 0 {
			b.WriteString(", ")
		}
		oq := scoreFor(name, "official")
		mt := scoreFor(name, "mentor")
		rel := scoreFor(name, "relevance")
		prox := scoreFor(name, "proximity")
		fmt.Fprintf(&b,
			`{"rank": %d, "college_name": %q, "official_quality": %.1f, "mentor_trust": %.1f, "relevance": %.1f, "proximity": %.1f, "confidence": 0.8, "rationale": "Matches the requested streams and budget.", "evidence_citations": [], "source_links": []}`,
			i+1, name, oq, mt, rel, prox)
	}
	b.WriteString(`]}`)
	return b.String(), nil
}

// CallCount returns the number of times Generate was called.
func (m *MockGenerator) CallCount() int {
	return m.callCount
}

// Reset clears the call count and injected behavior.
func (m *MockGenerator) Reset() {
	m.callCount = 0
	m.GenerateFunc = nil
}

// collegeNamesFromPrompt extracts college names from document metadata
// lines of the form "College: <name>" or "- College: <name>". Order of
// appearance is preserved and duplicates are dropped.
func collegeNamesFromPrompt(prompt string) []string {
	seen := make(map[string]struct{})
	var names []string
	for _, line := range strings.Split(prompt, "\n") {
		line = strings.TrimSpace(line)
		line = strings.TrimPrefix(line, "- ")
		rest, ok := strings.CutPrefix(line, "College: ")
		if !ok {
			continue
		}
		name := strings.TrimSpace(rest)
		if name == "" {
			continue
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		names = append(names, name)
	}
	return names
}

// scoreFor derives a stable score in [5.0, 9.5] from a name and dimension.
func scoreFor(name, dimension string) float64 {
	h := fnv.New32a()
	h.Write([]byte(name))
	h.Write([]byte(dimension))
	steps := h.Sum32() % 10 // 0..9 in 0.5 increments
	return 5.0 + float64(steps)*0.5
}
