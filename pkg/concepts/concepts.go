// Package concepts resolves terminology concept references against a remote
// dictionary. The audit hands it the distinct concept references found in a
// form and gets back resolved metadata plus the subset it could not resolve.
package concepts

import "context"

// Concept is the resolved metadata for one terminology reference.
type Concept struct {
	UUID     string `json:"uuid"`
	Display  string `json:"display"`
	Datatype string `json:"datatype"`
}

// BatchResult is the outcome of a batch lookup. Resolved and Unresolved
// partition the requested references: every requested reference appears in
// exactly one of the two.
type BatchResult struct {
	Resolved   []Concept
	Unresolved []string
}

// Resolver answers batch lookups. Implementations must treat the request
// slice as read-only and may return results in any order.
type Resolver interface {
	LookupBatch(ctx context.Context, refs []string) (BatchResult, error)
}

// Searcher supports display-text search, used by the editor's concept
// autocomplete component.
type Searcher interface {
	Search(ctx context.Context, query string, limit int) ([]Concept, error)
}
