// Package evaluate measures recommendation quality against synthetic
// student cases. It generates deterministic case sets from realistic
// profile templates, runs them through a recommender, and reports
// per-case and aggregate metrics: score spread, relevance, budget
// compliance, stream alignment and verification rates.
package evaluate
