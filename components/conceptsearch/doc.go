// Package conceptsearch provides a small net/http handler that answers
// concept autocomplete queries for the form editor with JSON options.
//
// The handler responds to GET and HEAD requests and supports query and limit
// parameters. Results come from any concepts.Searcher; the in-memory resolver
// satisfies it out of the box.
package conceptsearch
