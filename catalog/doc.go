// Package catalog loads and serves the canonical college records.
//
// The catalog is the single source of truth for college data. It is loaded
// from a JSON file once at startup and is immutable for the lifetime of the
// session; the search index and verification reference tables are both
// derived from it. A missing or corrupt data file is a startup failure, not
// a degraded mode.
package catalog
