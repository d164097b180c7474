package schema

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func sampleForm() Form {
	return Form{
		Name:          "Adult Triage",
		Processor:     "EncounterFormProcessor",
		EncounterType: "67a71486-1a54-468f-ac3e-7091a9a79584",
		Pages: []Page{
			{
				Label: "Vitals",
				Sections: []Section{
					{
						Label: "Measurements",
						Questions: []Question{
							{
								ID:    "weight",
								Label: "Weight (kg)",
								Type:  "obs",
								QuestionOptions: QuestionOptions{
									Concept:   "5089AAAAAAAAAAAAAAAAAAAAAAAAAAAA",
									Rendering: "number",
									Min:       "0",
									Max:       "300",
								},
							},
							{
								ID:    "painLevel",
								Label: "Pain level",
								Type:  "obs",
								QuestionOptions: QuestionOptions{
									Concept:   "a8b57f22-1353-11e0-a1f3-0018de54bad0",
									Rendering: "select",
									Answers: []Answer{
										{Concept: "none-uuid", Label: "None"},
										{Concept: "severe-uuid", Label: "Severe"},
									},
								},
							},
						},
					},
				},
			},
			{
				Label: "History",
				Sections: []Section{
					{
						Label: "Notes",
						Questions: []Question{
							{
								ID:    "notes",
								Label: "Clinical notes",
								QuestionOptions: QuestionOptions{
									Rendering: "textarea",
								},
							},
						},
					},
				},
			},
		},
	}
}

func TestClone_IsDeep(t *testing.T) {
	original := sampleForm()
	copied := original.Clone()

	copied.Pages[0].Label = "Changed"
	copied.Pages[0].Sections[0].Questions[0].ID = "changed"
	copied.Pages[0].Sections[0].Questions[1].QuestionOptions.Answers[0].Label = "Changed"

	if original.Pages[0].Label != "Vitals" {
		t.Fatalf("page label mutated through clone: %q", original.Pages[0].Label)
	}
	if original.Pages[0].Sections[0].Questions[0].ID != "weight" {
		t.Fatalf("question id mutated through clone")
	}
	if original.Pages[0].Sections[0].Questions[1].QuestionOptions.Answers[0].Label != "None" {
		t.Fatalf("answer mutated through clone")
	}
}

func TestFlattenQuestions_DocumentOrder(t *testing.T) {
	form := sampleForm()
	flat := form.FlattenQuestions()

	want := []string{"weight", "painLevel", "notes"}
	got := make([]string, 0, len(flat))
	for _, q := range flat {
		got = append(got, q.ID)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("flatten order mismatch (-want +got):\n%s", diff)
	}
}

func TestQuestionAt_OutOfRange(t *testing.T) {
	form := sampleForm()

	cases := []struct {
		name string
		pos  Position
		ok   bool
	}{
		{name: "valid", pos: Position{Page: 0, Section: 0, Question: 1}, ok: true},
		{name: "page out of range", pos: Position{Page: 5, Section: 0, Question: 0}, ok: false},
		{name: "negative question", pos: Position{Page: 0, Section: 0, Question: -1}, ok: false},
		{name: "section out of range", pos: Position{Page: 1, Section: 3, Question: 0}, ok: false},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			if _, ok := form.QuestionAt(tc.pos); ok != tc.ok {
				t.Fatalf("QuestionAt(%+v): ok=%v, want %v", tc.pos, ok, tc.ok)
			}
		})
	}
}

func TestLoad_JSONAndYAML(t *testing.T) {
	jsonDoc := []byte(`{
  "name": "Adult Triage",
  "pages": [
    {"label": "Vitals", "sections": [
      {"label": "Measurements", "questions": [
        {"id": "weight", "label": "Weight", "questionOptions": {"concept": "c1", "rendering": "number"}}
      ]}
    ]}
  ]
}`)
	yamlDoc := []byte(`name: Adult Triage
pages:
  - label: Vitals
    sections:
      - label: Measurements
        questions:
          - id: weight
            label: Weight
            questionOptions:
              concept: c1
              rendering: number
`)

	fromJSON, err := Load(jsonDoc)
	if err != nil {
		t.Fatalf("load json: %v", err)
	}
	fromYAML, err := Load(yamlDoc)
	if err != nil {
		t.Fatalf("load yaml: %v", err)
	}

	if diff := cmp.Diff(fromJSON, fromYAML); diff != "" {
		t.Fatalf("json/yaml loads disagree (-json +yaml):\n%s", diff)
	}
	if fromJSON.Pages[0].Sections[0].Questions[0].QuestionOptions.Concept != "c1" {
		t.Fatalf("concept not decoded")
	}
}

func TestLoad_Empty(t *testing.T) {
	if _, err := Load([]byte("   \n")); err == nil {
		t.Fatal("expected error for empty definition")
	}
}
