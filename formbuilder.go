package formbuilder

import (
	"context"

	"github.com/arodidev/openmrs-form-builder/pkg/builder"
	"github.com/arodidev/openmrs-form-builder/pkg/concepts"
	"github.com/arodidev/openmrs-form-builder/pkg/notify"
	"github.com/arodidev/openmrs-form-builder/pkg/render"
	"github.com/arodidev/openmrs-form-builder/pkg/schema"
	"github.com/arodidev/openmrs-form-builder/pkg/validate"
	"github.com/arodidev/openmrs-form-builder/pkg/widgets"
)

// Form aliases the schema document so hosts can stay on the root package for
// common editing flows.
type Form = schema.Form

// Page aliases a form page.
type Page = schema.Page

// Section aliases a page section.
type Section = schema.Section

// Question aliases a section question.
type Question = schema.Question

// Position aliases a structural coordinate inside the form tree.
type Position = schema.Position

// Notification aliases the outcome payload emitted after each operation.
type Notification = notify.Notification

// Notifier aliases the host notification surface.
type Notifier = notify.Notifier

// Report aliases the audit result produced by a validation run.
type Report = validate.Report

// Resolution aliases a per-question audit outcome.
type Resolution = validate.Resolution

// Concept aliases a resolved terminology entry.
type Concept = concepts.Concept

// Session bundles a form editor with the terminology backend and widget
// compatibility table used by its audit runs.
type Session struct {
	builder  *builder.Builder
	resolver concepts.Resolver
	registry *widgets.Registry
	notifier notify.Notifier
	onChange builder.OnChange
}

// Option configures a Session.
type Option func(*Session)

// WithNotifier routes operation outcomes to the host.
func WithNotifier(n notify.Notifier) Option {
	return func(s *Session) {
		if n != nil {
			s.notifier = n
		}
	}
}

// WithOnChange registers the republish callback fired after every successful
// mutation.
func WithOnChange(fn builder.OnChange) Option {
	return func(s *Session) { s.onChange = fn }
}

// WithResolver installs the terminology backend used by Audit.
func WithResolver(r concepts.Resolver) Option {
	return func(s *Session) {
		if r != nil {
			s.resolver = r
		}
	}
}

// WithRegistry overrides the datatype compatibility table used by Audit.
func WithRegistry(reg *widgets.Registry) Option {
	return func(s *Session) {
		if reg != nil {
			s.registry = reg
		}
	}
}

// New opens an editing session over an existing form document. The document
// is shared by reference; mutations write through it.
func New(form *schema.Form, options ...Option) *Session {
	s := &Session{
		notifier: notify.Nop(),
		registry: widgets.NewRegistry(),
	}
	for _, opt := range options {
		if opt != nil {
			opt(s)
		}
	}
	s.builder = builder.New(form,
		builder.WithNotifier(s.notifier),
		builder.WithOnChange(s.onChange),
	)
	return s
}

// NewForm opens a session over a freshly created empty form.
func NewForm(name string, options ...Option) *Session {
	return New(builder.NewForm(name), options...)
}

// Builder returns the mutation surface.
func (s *Session) Builder() *builder.Builder { return s.builder }

// Form returns the shared document reference.
func (s *Session) Form() *schema.Form { return s.builder.Form() }

// Audit flattens the current document, resolves its concept references, and
// classifies every question's rendering against its concept datatype. The
// returned report is a fresh snapshot; previous reports are unaffected.
func (s *Session) Audit(ctx context.Context) (*validate.Report, error) {
	return validate.Run(ctx, *s.builder.Form(), s.resolver, validate.WithRegistry(s.registry))
}

// Audit runs a one-off validation pass without a session, mirroring the quick
// start flow for read-only callers.
func Audit(ctx context.Context, form schema.Form, resolver concepts.Resolver, options ...validate.Option) (*validate.Report, error) {
	return validate.Run(ctx, form, resolver, options...)
}

// Preview renders the built-in HTML preview for a form document. Hosts that
// need custom templates or themes should construct a render.Engine directly.
func Preview(form schema.Form, options ...render.Option) ([]byte, error) {
	engine, err := render.New(options...)
	if err != nil {
		return nil, err
	}
	return engine.Render(form, render.DefaultTemplate)
}
