package schema

// Form is the root of a form definition document. The builder receives it by
// reference from the hosting application and republishes the same reference
// after every mutation.
type Form struct {
	Name            string           `json:"name"`
	UUID            string           `json:"uuid,omitempty"`
	Description     string           `json:"description,omitempty"`
	Version         string           `json:"version,omitempty"`
	Published       bool             `json:"published,omitempty"`
	Retired         bool             `json:"retired,omitempty"`
	Processor       string           `json:"processor,omitempty"`
	EncounterType   string           `json:"encounterType,omitempty"`
	ReferencedForms []ReferencedForm `json:"referencedForms,omitempty"`
	Pages           []Page           `json:"pages"`
}

// ReferencedForm points at an external form definition pulled in by alias.
type ReferencedForm struct {
	FormName string `json:"formName"`
	Alias    string `json:"alias,omitempty"`
}

// Page groups sections under a label. Order is significant.
type Page struct {
	Label    string    `json:"label"`
	Sections []Section `json:"sections"`
}

// Section groups questions under a label. Order is significant.
type Section struct {
	Label      string     `json:"label"`
	IsExpanded string     `json:"isExpanded,omitempty"`
	Questions  []Question `json:"questions"`
}

// Question is a single input in a form. IDs are expected to be unique and
// camel-cased; neither expectation is enforced, and consumers that look
// questions up by id get the first match in document order.
type Question struct {
	ID              string          `json:"id"`
	Label           string          `json:"label"`
	Type            string          `json:"type,omitempty"`
	Required        bool            `json:"required,omitempty"`
	QuestionOptions QuestionOptions `json:"questionOptions"`
	Questions       []Question      `json:"questions,omitempty"`
}

// QuestionOptions carries the concept binding and the rendering widget along
// with widget-specific knobs.
type QuestionOptions struct {
	Concept         string           `json:"concept,omitempty"`
	Rendering       string           `json:"rendering"`
	Answers         []Answer         `json:"answers,omitempty"`
	Min             string           `json:"min,omitempty"`
	Max             string           `json:"max,omitempty"`
	Rows            int              `json:"rows,omitempty"`
	WeeksList       []int            `json:"weeksList,omitempty"`
	Orientation     string           `json:"orientation,omitempty"`
	ShowDate        string           `json:"showDate,omitempty"`
	ConceptMappings []ConceptMapping `json:"conceptMappings,omitempty"`
}

// Answer is one selectable option for coded questions.
type Answer struct {
	Concept string `json:"concept"`
	Label   string `json:"label"`
}

// ConceptMapping links a concept to an external terminology code.
type ConceptMapping struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}

// HasConcept reports whether the question carries a concept reference.
func (q Question) HasConcept() bool {
	return q.QuestionOptions.Concept != ""
}
