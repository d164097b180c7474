// Package export emits machine-readable descriptions of a form's submission
// payload. The editor consumes form definitions; downstream services consume
// the OpenAPI component schema exported here to validate submissions.
package export

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
	"gopkg.in/yaml.v3"

	"github.com/arodidev/openmrs-form-builder/pkg/schema"
	"github.com/arodidev/openmrs-form-builder/pkg/widgets"
)

// SchemaName is the component schema the form payload is exported under.
const SchemaName = "FormSubmission"

// conceptExtension records the terminology binding on each property.
const conceptExtension = "x-openmrs-concept"

// Document builds an OpenAPI 3 document whose components carry one object
// schema describing the form's submission payload: one property per question
// in document order.
func Document(form schema.Form) (*openapi3.T, error) {
	if strings.TrimSpace(form.Name) == "" {
		return nil, fmt.Errorf("export: form name is required")
	}

	payload := openapi3.NewObjectSchema()
	payload.Title = form.Name
	payload.Description = form.Description
	payload.Properties = make(openapi3.Schemas)

	for _, q := range form.FlattenQuestions() {
		if strings.TrimSpace(q.ID) == "" {
			continue
		}
		if _, exists := payload.Properties[q.ID]; exists {
			// Duplicate ids collapse to the first occurrence, matching how
			// the rest of the system resolves id lookups.
			continue
		}
		payload.Properties[q.ID] = openapi3.NewSchemaRef("", questionSchema(q))
		if q.Required {
			payload.Required = append(payload.Required, q.ID)
		}
	}

	version := form.Version
	if version == "" {
		version = "1.0"
	}

	return &openapi3.T{
		OpenAPI: "3.0.3",
		Info: &openapi3.Info{
			Title:   form.Name,
			Version: version,
		},
		Paths: openapi3.NewPaths(),
		Components: &openapi3.Components{
			Schemas: openapi3.Schemas{
				SchemaName: openapi3.NewSchemaRef("", payload),
			},
		},
	}, nil
}

// MarshalJSON exports the form as an indented OpenAPI JSON document.
func MarshalJSON(form schema.Form) ([]byte, error) {
	doc, err := Document(form)
	if err != nil {
		return nil, err
	}
	raw, err := doc.MarshalJSON()
	if err != nil {
		return nil, fmt.Errorf("export: encode document: %w", err)
	}
	var indented map[string]any
	if err := json.Unmarshal(raw, &indented); err != nil {
		return nil, fmt.Errorf("export: reindent document: %w", err)
	}
	return json.MarshalIndent(indented, "", "  ")
}

// MarshalYAML exports the form as an OpenAPI YAML document.
func MarshalYAML(form schema.Form) ([]byte, error) {
	doc, err := Document(form)
	if err != nil {
		return nil, err
	}
	raw, err := doc.MarshalJSON()
	if err != nil {
		return nil, fmt.Errorf("export: encode document: %w", err)
	}
	var bridge map[string]any
	if err := json.Unmarshal(raw, &bridge); err != nil {
		return nil, fmt.Errorf("export: bridge document: %w", err)
	}
	out, err := yaml.Marshal(bridge)
	if err != nil {
		return nil, fmt.Errorf("export: encode yaml: %w", err)
	}
	return out, nil
}

// questionSchema types a property from the question's rendering widget.
func questionSchema(q schema.Question) *openapi3.Schema {
	opts := q.QuestionOptions
	var s *openapi3.Schema

	switch opts.Rendering {
	case widgets.RenderingNumber:
		s = openapi3.NewFloat64Schema()
		if min, ok := parseBound(opts.Min); ok {
			s.Min = &min
		}
		if max, ok := parseBound(opts.Max); ok {
			s.Max = &max
		}
	case widgets.RenderingDate:
		s = openapi3.NewStringSchema().WithFormat("date")
	case widgets.RenderingDatetime:
		s = openapi3.NewStringSchema().WithFormat("date-time")
	case widgets.RenderingToggle:
		s = openapi3.NewBoolSchema()
	case widgets.RenderingCheckbox:
		items := answerSchema(opts.Answers)
		s = openapi3.NewArraySchema()
		s.Items = openapi3.NewSchemaRef("", items)
	case widgets.RenderingSelect, widgets.RenderingRadio, widgets.RenderingContentSwitcher:
		s = answerSchema(opts.Answers)
	default:
		s = openapi3.NewStringSchema()
	}

	s.Description = q.Label
	if opts.Concept != "" {
		if s.Extensions == nil {
			s.Extensions = make(map[string]any, 1)
		}
		s.Extensions[conceptExtension] = opts.Concept
	}
	return s
}

// answerSchema enumerates coded answers by concept reference.
func answerSchema(answers []schema.Answer) *openapi3.Schema {
	s := openapi3.NewStringSchema()
	for _, answer := range answers {
		if answer.Concept == "" {
			continue
		}
		s.Enum = append(s.Enum, answer.Concept)
	}
	return s
}

func parseBound(raw string) (float64, bool) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return 0, false
	}
	value, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		return 0, false
	}
	return value, true
}
