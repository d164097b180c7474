// Package validate runs the question audit: it flattens a form document,
// batch-resolves every distinct concept reference, and classifies each
// question's rendering against the datatype compatibility table. Each run
// produces one self-contained Report; nothing is merged across runs, so
// re-running discards all previous resolutions.
package validate

import (
	"context"
	"fmt"

	"github.com/arodidev/openmrs-form-builder/pkg/concepts"
	"github.com/arodidev/openmrs-form-builder/pkg/schema"
	"github.com/arodidev/openmrs-form-builder/pkg/widgets"
)

// Resolution markers. Success and failure carry the rendering and datatype;
// the fixed markers flag questions the lookup could not classify.
const (
	ResolutionNoConcept       = "No UUID"
	ResolutionConceptNotFound = "Concept not found"
)

// Resolution ties one flattened question to its audit outcome.
type Resolution struct {
	Position   schema.Position
	QuestionID string
	Text       string
}

// Report is the atomic outcome of one audit run.
type Report struct {
	questions   []schema.Question
	positions   []schema.Position
	resolutions []Resolution
	conceptRefs []string

	// Err records a failed batch lookup. Questions whose classification
	// depended on the lookup carry no resolution in that case.
	Err error
}

// Questions returns the flattened question list in document order.
func (r *Report) Questions() []schema.Question { return r.questions }

// ConceptRefs returns the distinct concept references in first-encounter
// order.
func (r *Report) ConceptRefs() []string { return r.conceptRefs }

// Resolutions returns every resolution recorded during the run, in document
// order, aligned with the flattened question list.
func (r *Report) Resolutions() []Resolution { return r.resolutions }

// ResolutionFor returns the first resolution recorded for the question id.
// Question ids are not guaranteed unique; with duplicates only the first
// match in document order is reachable this way. ResolutionAt is the
// unambiguous lookup.
func (r *Report) ResolutionFor(questionID string) (Resolution, bool) {
	for _, res := range r.resolutions {
		if res.QuestionID == questionID {
			return res, true
		}
	}
	return Resolution{}, false
}

// ResolutionAt returns the resolution recorded for the structural coordinate.
func (r *Report) ResolutionAt(pos schema.Position) (Resolution, bool) {
	for _, res := range r.resolutions {
		if res.Position == pos {
			return res, true
		}
	}
	return Resolution{}, false
}

// Option configures a run.
type Option func(*runner)

// WithRegistry overrides the compatibility table, e.g. to admit custom
// renderings registered by the host.
func WithRegistry(reg *widgets.Registry) Option {
	return func(r *runner) {
		if reg != nil {
			r.registry = reg
		}
	}
}

type runner struct {
	registry *widgets.Registry
}

// Run audits the form against the resolver. The returned report is complete
// when err is nil; on a lookup failure the report still carries the
// resolutions computed before the lookup (the "No UUID" entries) and Err is
// set, mirroring the silently-incomplete semantics of a failed remote call.
func Run(ctx context.Context, form schema.Form, resolver concepts.Resolver, options ...Option) (*Report, error) {
	r := &runner{registry: widgets.NewRegistry()}
	for _, opt := range options {
		if opt != nil {
			opt(r)
		}
	}

	report := &Report{}

	// Pass 1: flatten and collect distinct concept references.
	seen := make(map[string]bool)
	form.Walk(func(pos schema.Position, q schema.Question) bool {
		report.questions = append(report.questions, q)
		report.positions = append(report.positions, pos)
		if !q.HasConcept() {
			return true
		}
		ref := q.QuestionOptions.Concept
		if !seen[ref] {
			seen[ref] = true
			report.conceptRefs = append(report.conceptRefs, ref)
		}
		return true
	})

	var result concepts.BatchResult
	if len(report.conceptRefs) > 0 {
		var err error
		result, err = resolver.LookupBatch(ctx, report.conceptRefs)
		if err != nil {
			// Questions whose classification does not depend on the lookup
			// still get their resolution, keeping document order.
			for i, q := range report.questions {
				if q.HasConcept() {
					continue
				}
				report.resolutions = append(report.resolutions, Resolution{
					Position:   report.positions[i],
					QuestionID: q.ID,
					Text:       ResolutionNoConcept,
				})
			}
			report.Err = fmt.Errorf("validate: concept lookup: %w", err)
			return report, report.Err
		}
	}

	unresolved := make(map[string]bool, len(result.Unresolved))
	for _, ref := range result.Unresolved {
		unresolved[ref] = true
	}
	resolved := make(map[string]concepts.Concept, len(result.Resolved))
	for _, c := range result.Resolved {
		resolved[c.UUID] = c
	}

	// Pass 2: classify every flattened question. Resolutions are appended in
	// the same order as the flattened question list.
	for i, q := range report.questions {
		pos := report.positions[i]

		if !q.HasConcept() {
			report.resolutions = append(report.resolutions, Resolution{
				Position:   pos,
				QuestionID: q.ID,
				Text:       ResolutionNoConcept,
			})
			continue
		}

		ref := q.QuestionOptions.Concept
		concept, ok := resolved[ref]
		if unresolved[ref] || !ok {
			// The second clause covers a resolver that violated the
			// partition contract; treat the reference as not found.
			report.resolutions = append(report.resolutions, Resolution{
				Position:   pos,
				QuestionID: q.ID,
				Text:       ResolutionConceptNotFound,
			})
			continue
		}

		report.resolutions = append(report.resolutions, Resolution{
			Position:   pos,
			QuestionID: q.ID,
			Text:       classify(r.registry, concept, q.QuestionOptions.Rendering),
		})
	}

	return report, nil
}

func classify(registry *widgets.Registry, concept concepts.Concept, rendering string) string {
	allowed, tracked := registry.Compatible(concept.Datatype, rendering)
	switch {
	case !tracked:
		return fmt.Sprintf("Untracked datatype: %s", concept.Datatype)
	case allowed:
		return fmt.Sprintf("✅ %s matches datatype %s", rendering, concept.Datatype)
	default:
		return fmt.Sprintf("❌ %s doesn't match datatype %s", rendering, concept.Datatype)
	}
}
