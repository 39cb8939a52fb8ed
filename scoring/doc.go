// Package scoring ranks recommendations under user-adjustable factor weights.
//
// The generation step proposes four sub-scores per college; this package
// merges user preference overrides onto the default weight vector,
// normalizes it, recomputes every composite, and reassigns ranks with a
// stable descending sort. It is a pure transformation over the score data
// and can be re-run without touching retrieval or generation.
package scoring
