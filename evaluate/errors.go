package evaluate

import "errors"

var (
	// ErrRecommenderRequired is returned when an evaluator is built
	// without a recommender.
	ErrRecommenderRequired = errors.New("recommender is required")

	// ErrNoCases is returned when Run is called with no cases.
	ErrNoCases = errors.New("no cases to evaluate")

	// ErrInvalidCaseCount is returned when a non-positive case count is
	// requested from the generator.
	ErrInvalidCaseCount = errors.New("case count must be greater than 0")
)
