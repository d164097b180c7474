// Package builder implements the interactive mutation operations of the form
// editor. A Builder holds the shared form document by reference and runs every
// operation through the same cycle: mutate, republish through OnChange, notify
// the host of the outcome. Faults raised by a mutation (out-of-range indices
// included) are recovered per operation and surfaced as a generic error
// notification; they never escape to the host.
package builder

import (
	"fmt"

	"github.com/arodidev/openmrs-form-builder/pkg/notify"
	"github.com/arodidev/openmrs-form-builder/pkg/schema"
	"github.com/google/uuid"
)

// OnChange is invoked after every successful mutation with the (shared)
// document reference so the host can re-render from it.
type OnChange func(form *schema.Form)

// Builder edits a form document in place.
type Builder struct {
	form     *schema.Form
	onChange OnChange
	notifier notify.Notifier
	pos      schema.Position
}

// Option configures a Builder.
type Option func(*Builder)

// WithNotifier routes operation outcomes to the host's notification surface.
func WithNotifier(n notify.Notifier) Option {
	return func(b *Builder) {
		if n != nil {
			b.notifier = n
		}
	}
}

// WithOnChange registers the republish callback.
func WithOnChange(fn OnChange) Option {
	return func(b *Builder) {
		b.onChange = fn
	}
}

// New wraps an existing form document. The document is not copied; every
// operation mutates it through the supplied pointer.
func New(form *schema.Form, options ...Option) *Builder {
	b := &Builder{
		form:     form,
		notifier: notify.Nop(),
		pos:      schema.NoPosition,
	}
	for _, opt := range options {
		if opt != nil {
			opt(b)
		}
	}
	return b
}

// NewForm constructs an empty form document with a fresh UUID, ready to be
// handed to New.
func NewForm(name string) *schema.Form {
	return &schema.Form{
		Name:      name,
		UUID:      uuid.NewString(),
		Processor: "EncounterFormProcessor",
		Pages:     []schema.Page{},
	}
}

// Form returns the shared document reference.
func (b *Builder) Form() *schema.Form { return b.form }

// Position returns the tracked structural coordinate.
func (b *Builder) Position() schema.Position { return b.pos }

// SetPosition records which coordinate the next modal operation targets.
func (b *Builder) SetPosition(pos schema.Position) { b.pos = pos }

// ResetPosition clears the tracked coordinate. Must be called by any
// collaborator that changes the tree structure.
func (b *Builder) ResetPosition() { b.pos = schema.NoPosition }

// apply runs a mutation through the standard cycle. A recovered fault skips
// the republish and produces the generic error notification carrying the raw
// fault message.
func (b *Builder) apply(success string, fn func()) error {
	if err := b.guard(fn); err != nil {
		b.notifier.Notify(notify.Notification{
			Kind:    notify.KindError,
			Title:   "Error",
			Message: err.Error(),
		})
		return err
	}
	b.publish()
	b.notifier.Notify(notify.Notification{
		Kind:  notify.KindSuccess,
		Title: success,
	})
	return nil
}

func (b *Builder) guard(fn func()) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%v", r)
		}
	}()
	fn()
	return nil
}

func (b *Builder) publish() {
	if b.onChange != nil {
		b.onChange(b.form)
	}
}
