// Package widgets maintains the compatibility table between concept datatypes
// and the rendering widgets a question may use. The audit consults it to
// classify each question; hosts can register custom renderings at runtime.
package widgets

import (
	"sort"
	"strings"
	"sync"
)

// Built-in rendering identifiers used across form definitions.
const (
	RenderingText            = "text"
	RenderingTextarea        = "textarea"
	RenderingNumber          = "number"
	RenderingSelect          = "select"
	RenderingCheckbox        = "checkbox"
	RenderingRadio           = "radio"
	RenderingToggle          = "toggle"
	RenderingContentSwitcher = "content-switcher"
	RenderingFixedValue      = "fixed-value"
	RenderingDate            = "date"
	RenderingDatetime        = "datetime"
	RenderingRepeating       = "repeating"
	RenderingGroup           = "group"
	RenderingUISelectExt     = "ui-select-extended"
)

// Concept datatype classifications reported by the terminology service.
const (
	DatatypeNumeric  = "Numeric"
	DatatypeCoded    = "Coded"
	DatatypeText     = "Text"
	DatatypeDate     = "Date"
	DatatypeDatetime = "Datetime"
	DatatypeBoolean  = "Boolean"
	DatatypeRule     = "Rule"
)

// Registry maps datatype classifications to the renderings allowed for them.
// Lookups are case-insensitive on the datatype; a datatype with no entry is
// "untracked" and reported as such rather than failed.
type Registry struct {
	mu      sync.RWMutex
	allowed map[string]map[string]struct{}
}

// NewRegistry constructs a registry seeded with the built-in compatibility
// table.
func NewRegistry() *Registry {
	reg := &Registry{allowed: make(map[string]map[string]struct{})}
	reg.registerBuiltins()
	return reg
}

// Register marks renderings as allowed for a datatype, creating the datatype
// entry when absent. Blank names are ignored.
func (r *Registry) Register(datatype string, renderings ...string) {
	key := normalize(datatype)
	if r == nil || key == "" {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	set, ok := r.allowed[key]
	if !ok {
		set = make(map[string]struct{}, len(renderings))
		r.allowed[key] = set
	}
	for _, rendering := range renderings {
		trimmed := strings.TrimSpace(rendering)
		if trimmed == "" {
			continue
		}
		set[trimmed] = struct{}{}
	}
}

// Compatible reports whether the rendering is allowed for the datatype. The
// second return distinguishes "not allowed" from "datatype untracked".
func (r *Registry) Compatible(datatype, rendering string) (allowed, tracked bool) {
	if r == nil {
		return false, false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	set, ok := r.allowed[normalize(datatype)]
	if !ok {
		return false, false
	}
	_, allowed = set[strings.TrimSpace(rendering)]
	return allowed, true
}

// Allowed returns the sorted renderings allowed for the datatype.
func (r *Registry) Allowed(datatype string) ([]string, bool) {
	if r == nil {
		return nil, false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	set, ok := r.allowed[normalize(datatype)]
	if !ok {
		return nil, false
	}
	out := make([]string, 0, len(set))
	for rendering := range set {
		out = append(out, rendering)
	}
	sort.Strings(out)
	return out, true
}

func normalize(datatype string) string {
	return strings.ToLower(strings.TrimSpace(datatype))
}

func (r *Registry) registerBuiltins() {
	r.Register(DatatypeNumeric, RenderingNumber, RenderingFixedValue)
	r.Register(DatatypeCoded,
		RenderingSelect, RenderingCheckbox, RenderingRadio, RenderingToggle,
		RenderingContentSwitcher, RenderingFixedValue,
	)
	r.Register(DatatypeText, RenderingText, RenderingTextarea, RenderingFixedValue)
	r.Register(DatatypeDate, RenderingDate, RenderingFixedValue)
	r.Register(DatatypeDatetime, RenderingDatetime, RenderingFixedValue)
	r.Register(DatatypeBoolean,
		RenderingToggle, RenderingRadio, RenderingContentSwitcher, RenderingFixedValue,
	)
	r.Register(DatatypeRule, RenderingRepeating, RenderingGroup)
}
