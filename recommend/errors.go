package recommend

import "errors"

var (
	// ErrCatalogRequired is returned when a service is built without a
	// college catalog.
	ErrCatalogRequired = errors.New("college catalog is required")

	// ErrRetrieverRequired is returned when a service is built without a
	// retrieval engine.
	ErrRetrieverRequired = errors.New("retrieval engine is required")

	// ErrGeneratorRequired is returned when a service is built without a
	// text generator.
	ErrGeneratorRequired = errors.New("text generator is required")
)
