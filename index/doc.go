// Package index builds the searchable document index from college records.
//
// BuildDocument renders a college record into the text-plus-metadata form
// the search index stores. Pipeline orchestrates a full build: documents are
// embedded concurrently over a worker pool and then installed in the index
// with a single atomic swap, so a build that fails midway never disturbs
// the index that searches are currently served from.
package index
