// Package schema defines the clinical form definition tree the builder edits:
// a Form holds ordered Pages, Pages hold Sections, Sections hold Questions.
// The types mirror the JSON form definitions consumed by the forms platform,
// so documents round-trip through encoding/json without translation.
package schema
