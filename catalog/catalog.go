package catalog

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/poiesic/counselit/core"
)

// Catalog holds the canonical college records for a session.
//
// Records are loaded once at startup and read-only afterwards, so lookups
// need no locking. A corrupt or missing data file fails the load; there is
// no partial catalog.
type Catalog struct {
	records []*core.CollegeRecord
	byID    map[string]*core.CollegeRecord
	logger  *slog.Logger
}

// Load reads college records from a JSON file.
// Every record is validated; the first invalid record fails the whole load.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading college data: %w", err)
	}

	var records []*core.CollegeRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("parsing college data %s: %w", path, err)
	}

	cat, err := FromRecords(records...)
	if err != nil {
		return nil, err
	}
	cat.logger.Info("college catalog loaded", "path", path, "colleges", len(records))
	return cat, nil
}

// FromRecords builds a catalog from already materialized records.
// Used by tests and by callers that source records elsewhere.
func FromRecords(records ...*core.CollegeRecord) (*Catalog, error) {
	if len(records) == 0 {
		return nil, ErrEmptyCatalog
	}

	byID := make(map[string]*core.CollegeRecord, len(records))
	for _, record := range records {
		if err := core.ValidateCollegeRecord(record); err != nil {
			return nil, fmt.Errorf("college %q: %w", record.CollegeID, err)
		}
		if _, exists := byID[record.CollegeID]; exists {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateCollegeID, record.CollegeID)
		}
		byID[record.CollegeID] = record
	}

	return &Catalog{
		records: records,
		byID:    byID,
		logger:  slog.Default().With("component", "catalog"),
	}, nil
}

// Records returns all records in load order.
// The returned slice is shared; callers must not mutate it.
func (c *Catalog) Records() []*core.CollegeRecord {
	return c.records
}

// Get retrieves a record by its college ID.
// Returns ErrNotFound if no such college exists.
func (c *Catalog) Get(collegeID string) (*core.CollegeRecord, error) {
	record, ok := c.byID[collegeID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, collegeID)
	}
	return record, nil
}

// Len reports the number of records in the catalog.
func (c *Catalog) Len() int {
	return len(c.records)
}
