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
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"time"

	"golang.org/x/time/rate"
	"gopkg.in/yaml.v3"
)

// ReferenceProgram is one program entry in a reference table.
type ReferenceProgram struct {
	Name  string `json:"name" yaml:"name"`
	Seats int    `json:"seats" yaml:"seats"`
}

// Reference is the data a source holds about one college.
type Reference struct {
	Ranking       int                `json:"ranking,omitempty" yaml:"ranking,omitempty"`
	Placement     float64            `json:"placement,omitempty" yaml:"placement,omitempty"`
	Accreditation []string           `json:"accreditation,omitempty" yaml:"accreditation,omitempty"`
	Programs      []ReferenceProgram `json:"programs,omitempty" yaml:"programs,omitempty"`
}

func (r *Reference) hasPlacement() bool {
	return r.Placement > 0
}

// ReferenceSource is an external table of college data used to corroborate
// claims. Lookups are by exact college name; an unmatched name is reported
// as not found, never as an error.
type ReferenceSource interface {
	// Name labels the source in verification results ("NIRF", "UGC", ...).
	Name() string

	// TrustLevel is the confidence assigned to general-claim matches
	// against this source.
	TrustLevel() float64

	// Lookup fetches the reference entry for a college.
	// The bool reports whether the college is known to this source.
	Lookup(ctx context.Context, collegeName string) (*Reference, bool, error)
}

// StaticSource is an in-memory reference table.
type StaticSource struct {
	name    string
	trust   float64
	entries map[string]*Reference
}

var _ ReferenceSource = (*StaticSource)(nil)

// NewStaticSource creates a reference source over a fixed table.
func NewStaticSource(name string, trust float64, entries map[string]*Reference) *StaticSource {
	return &StaticSource{name: name, trust: trust, entries: entries}
}

func (s *StaticSource) Name() string        { return s.name }
func (s *StaticSource) TrustLevel() float64 { return s.trust }

func (s *StaticSource) Lookup(_ context.Context, collegeName string) (*Reference, bool, error) {
	ref, ok := s.entries[collegeName]
	return ref, ok, nil
}

// NewNIRFSource returns the built-in NIRF reference table.
// The seeded entries simulate the official ranking data.
func NewNIRFSource() *StaticSource {
	return NewStaticSource("NIRF", 0.8, map[string]*Reference{
		"Indian Institute of Technology Delhi": {
			Ranking:       2,
			Placement:     98.3,
			Accreditation: []string{"NAAC A++", "NBA"},
		},
		"University of Delhi": {
			Ranking:       15,
			Placement:     84.0,
			Accreditation: []string{"NAAC A++"},
		},
		"Indian Institute of Science Bangalore": {
			Ranking:       1,
			Placement:     95.0,
			Accreditation: []string{"NAAC A++", "NBA"},
		},
	})
}

// NewUGCSource returns the built-in UGC reference table.
func NewUGCSource() *StaticSource {
	return NewStaticSource("UGC", 0.7, map[string]*Reference{
		"Indian Institute of Technology Delhi": {
			Accreditation: []string{"NAAC A++"},
		},
		"University of Delhi": {
			Accreditation: []string{"NAAC A++"},
		},
		"Indian Institute of Science Bangalore": {
			Accreditation: []string{"NAAC A++"},
		},
	})
}

// NewAICTESource returns the built-in AICTE reference table.
func NewAICTESource() *StaticSource {
	return NewStaticSource("AICTE", 0.7, map[string]*Reference{
		"Indian Institute of Technology Delhi": {
			Accreditation: []string{"NBA"},
			Programs: []ReferenceProgram{
				{Name: "Computer Science", Seats: 120},
				{Name: "Electrical Engineering", Seats: 100},
			},
		},
		"University of Delhi": {
			Programs: []ReferenceProgram{
				{Name: "Computer Science", Seats: 200},
				{Name: "Commerce", Seats: 300},
			},
		},
		"Indian Institute of Science Bangalore": {
			Accreditation: []string{"NBA"},
			Programs: []ReferenceProgram{
				{Name: "Research", Seats: 80},
			},
		},
	})
}

// yamlSourceFile is the on-disk shape a YAML reference table.
type yamlSourceFile struct {
	Colleges map[string]*Reference `yaml:"colleges"`
}

// LoadYAMLSource reads a reference table from a YAML file.
// This lets operators supply updated reference data without a rebuild.
func LoadYAMLSource(name string, trust float64, path string) (*StaticSource, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading reference table: %w", err)
	}

	var file yamlSourceFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing reference table %s: %w", path, err)
	}
	if len(file.Colleges) == 0 {
		return nil, fmt.Errorf("reference table %s has no colleges", path)
	}

	return NewStaticSource(name, trust, file.Colleges), nil
}

// HTTPSource fetches reference entries from a remote endpoint.
//
// Requests are rate limited and bounded by the client timeout; a timeout
// or transport failure surfaces as ErrSourceUnavailable, which the engine
// treats as "reference missing" rather than a hard failure.
type HTTPSource struct {
	name    string
	trust   float64
	baseURL string
	client  *http.Client
	limiter *rate.Limiter
}

var _ ReferenceSource = (*HTTPSource)(nil)

// HTTPOption configures an HTTPSource.
type HTTPOption func(*HTTPSource)

// WithHTTPClient overrides the default client (5s timeout).
func WithHTTPClient(client *http.Client) HTTPOption {
	return func(s *HTTPSource) {
		if client != nil {
			s.client = client
		}
	}
}

// WithRateLimit overrides the default request rate of 5/s with burst 1.
func WithRateLimit(limit rate.Limit, burst int) HTTPOption {
	return func(s *HTTPSource) {
		s.limiter = rate.NewLimiter(limit, burst)
	}
}

// NewHTTPSource creates a remote reference source.
// Lookups GET baseURL/colleges?name=<college name>.
func NewHTTPSource(name string, trust float64, baseURL string, opts ...HTTPOption) *HTTPSource {
	s := &HTTPSource{
		name:    name,
		trust:   trust,
		baseURL: baseURL,
		client:  &http.Client{Timeout: 5 * time.Second},
		limiter: rate.NewLimiter(5, 1),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *HTTPSource) Name() string        { return s.name }
func (s *HTTPSource) TrustLevel() float64 { return s.trust }

func (s *HTTPSource) Lookup(ctx context.Context, collegeName string) (*Reference, bool, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return nil, false, err
	}

	endpoint := fmt.Sprintf("%s/colleges?name=%s", s.baseURL, url.QueryEscape(collegeName))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, false, err
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, false, fmt.Errorf("%w: %s: %v", ErrSourceUnavailable, s.name, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return nil, false, nil
	default:
		return nil, false, fmt.Errorf("%w: %s returned status %d", ErrSourceUnavailable, s.name, resp.StatusCode)
	}

	var ref Reference
	if err := json.NewDecoder(resp.Body).Decode(&ref); err != nil {
		return nil, false, fmt.Errorf("%w: %s: %v", ErrSourceUnavailable, s.name, err)
	}
	return &ref, true, nil
}
