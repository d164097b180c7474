package builder

import (
	"fmt"
	"strings"

	"github.com/arodidev/openmrs-form-builder/pkg/schema"
)

// RenameForm replaces the form's display name. An empty name leaves the
// document untouched but still reports success; the hosting application
// filters empty submissions upstream and relies on the notification firing
// either way.
func (b *Builder) RenameForm(name string) error {
	return b.apply("Form renamed", func() {
		if strings.TrimSpace(name) != "" {
			b.form.Name = name
		}
	})
}

// RenamePage replaces the label of the page at the index. Out-of-range
// indices fault and surface as the generic error notification.
func (b *Builder) RenamePage(page int, label string) error {
	return b.apply("Page renamed", func() {
		if strings.TrimSpace(label) != "" {
			b.form.Pages[page].Label = label
		}
	})
}

// RenameSection replaces the label of the section at the coordinate.
func (b *Builder) RenameSection(page, section int, label string) error {
	return b.apply("Section renamed", func() {
		if strings.TrimSpace(label) != "" {
			b.form.Pages[page].Sections[section].Label = label
		}
	})
}

// DuplicateQuestion deep-copies the question at the coordinate, suffixes its
// id with "Duplicate", and appends the copy to the same section. Identifier
// uniqueness is not checked; duplicating twice yields two questions with the
// same id and id-based lookups return the first. Clears the tracked position.
func (b *Builder) DuplicateQuestion(page, section, question int) error {
	return b.apply("Question duplicated", func() {
		sec := &b.form.Pages[page].Sections[section]
		copied := sec.Questions[question].Clone()
		copied.ID = copied.ID + "Duplicate"
		sec.Questions = append(sec.Questions, copied)
		b.ResetPosition()
	})
}

// AddPage appends a page with the given label.
func (b *Builder) AddPage(label string) error {
	return b.apply("Page created", func() {
		if strings.TrimSpace(label) == "" {
			panic("page label is required")
		}
		b.form.Pages = append(b.form.Pages, schema.Page{Label: label, Sections: []schema.Section{}})
		b.ResetPosition()
	})
}

// AddSection appends a section to the page at the index.
func (b *Builder) AddSection(page int, label string) error {
	return b.apply("Section created", func() {
		if strings.TrimSpace(label) == "" {
			panic("section label is required")
		}
		p := &b.form.Pages[page]
		p.Sections = append(p.Sections, schema.Section{Label: label, Questions: []schema.Question{}})
		b.ResetPosition()
	})
}

// AddQuestion appends a question to the section at the coordinate. A missing
// id is derived from the label (camel-cased).
func (b *Builder) AddQuestion(page, section int, q schema.Question) error {
	return b.apply("Question created", func() {
		if strings.TrimSpace(q.ID) == "" {
			q.ID = camelCase(q.Label)
		}
		sec := &b.form.Pages[page].Sections[section]
		sec.Questions = append(sec.Questions, q)
		b.ResetPosition()
	})
}

// UpdateQuestion replaces the question at the coordinate wholesale.
func (b *Builder) UpdateQuestion(pos schema.Position, q schema.Question) error {
	return b.apply("Question updated", func() {
		b.form.Pages[pos.Page].Sections[pos.Section].Questions[pos.Question] = q
	})
}

// DeletePage removes the page at the index, preserving the order of the rest.
func (b *Builder) DeletePage(page int) error {
	return b.apply("Page deleted", func() {
		if page < 0 || page >= len(b.form.Pages) {
			panic(fmt.Sprintf("page index %d out of range", page))
		}
		b.form.Pages = append(b.form.Pages[:page], b.form.Pages[page+1:]...)
		b.ResetPosition()
	})
}

// DeleteSection removes the section at the coordinate.
func (b *Builder) DeleteSection(page, section int) error {
	return b.apply("Section deleted", func() {
		p := &b.form.Pages[page]
		if section < 0 || section >= len(p.Sections) {
			panic(fmt.Sprintf("section index %d out of range", section))
		}
		p.Sections = append(p.Sections[:section], p.Sections[section+1:]...)
		b.ResetPosition()
	})
}

// DeleteQuestion removes the question at the coordinate.
func (b *Builder) DeleteQuestion(page, section, question int) error {
	return b.apply("Question deleted", func() {
		sec := &b.form.Pages[page].Sections[section]
		if question < 0 || question >= len(sec.Questions) {
			panic(fmt.Sprintf("question index %d out of range", question))
		}
		sec.Questions = append(sec.Questions[:question], sec.Questions[question+1:]...)
		b.ResetPosition()
	})
}

// camelCase collapses a label into the camel-cased identifier convention the
// platform expects for question ids ("Pain level" -> "painLevel").
func camelCase(label string) string {
	words := strings.Fields(strings.TrimSpace(label))
	if len(words) == 0 {
		return ""
	}
	var sb strings.Builder
	sb.WriteString(strings.ToLower(words[0]))
	for _, word := range words[1:] {
		lower := strings.ToLower(word)
		sb.WriteString(strings.ToUpper(lower[:1]))
		sb.WriteString(lower[1:])
	}
	return sb.String()
}
