package builder

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/arodidev/openmrs-form-builder/pkg/notify"
	"github.com/arodidev/openmrs-form-builder/pkg/schema"
)

func testForm() *schema.Form {
	return &schema.Form{
		Name: "Adult Triage",
		Pages: []schema.Page{
			{
				Label: "Vitals",
				Sections: []schema.Section{
					{
						Label: "Measurements",
						Questions: []schema.Question{
							{
								ID:    "weight",
								Label: "Weight (kg)",
								Type:  "obs",
								QuestionOptions: schema.QuestionOptions{
									Concept:   "weight-uuid",
									Rendering: "number",
									Min:       "0",
									Max:       "300",
								},
							},
						},
					},
				},
			},
			{Label: "History", Sections: []schema.Section{{Label: "Notes"}}},
		},
	}
}

func TestRenamePage_ReplacesOnlyTarget(t *testing.T) {
	form := testForm()
	rec := &notify.Recorder{}

	var published int
	b := New(form,
		WithNotifier(rec),
		WithOnChange(func(*schema.Form) { published++ }),
	)

	if err := b.RenamePage(1, "Past History"); err != nil {
		t.Fatalf("rename: %v", err)
	}

	if form.Pages[1].Label != "Past History" {
		t.Fatalf("target label not replaced: %q", form.Pages[1].Label)
	}
	if form.Pages[0].Label != "Vitals" || form.Pages[0].Sections[0].Label != "Measurements" {
		t.Fatal("unrelated labels changed")
	}
	if published != 1 {
		t.Fatalf("expected one republish, got %d", published)
	}
	if last, ok := rec.Last(); !ok || last.Kind != notify.KindSuccess {
		t.Fatalf("expected success notification, got %+v", last)
	}
}

func TestRename_EmptyValueStillNotifiesSuccess(t *testing.T) {
	form := testForm()
	rec := &notify.Recorder{}
	b := New(form, WithNotifier(rec))

	before := form.Clone()
	if err := b.RenameSection(0, 0, "   "); err != nil {
		t.Fatalf("rename: %v", err)
	}

	if diff := cmp.Diff(before, form.Clone()); diff != "" {
		t.Fatalf("document changed on empty rename:\n%s", diff)
	}
	if last, ok := rec.Last(); !ok || last.Kind != notify.KindSuccess {
		t.Fatalf("success notification should fire even for empty rename, got %+v", last)
	}
}

func TestRename_OutOfRangeSurfacesErrorNotification(t *testing.T) {
	form := testForm()
	rec := &notify.Recorder{}
	b := New(form, WithNotifier(rec))

	err := b.RenamePage(99, "Nope")
	if err == nil {
		t.Fatal("expected fault for out-of-range index")
	}
	last, ok := rec.Last()
	if !ok || last.Kind != notify.KindError {
		t.Fatalf("expected error notification, got %+v", last)
	}
	if last.Message == "" {
		t.Fatal("error notification should carry the fault message")
	}
}

func TestDuplicateQuestion(t *testing.T) {
	form := testForm()
	rec := &notify.Recorder{}
	b := New(form, WithNotifier(rec))
	b.SetPosition(schema.Position{Page: 0, Section: 0, Question: 0})

	if err := b.DuplicateQuestion(0, 0, 0); err != nil {
		t.Fatalf("duplicate: %v", err)
	}

	questions := form.Pages[0].Sections[0].Questions
	if len(questions) != 2 {
		t.Fatalf("expected question list to grow by one, got %d", len(questions))
	}
	copied := questions[1]
	if copied.ID != "weightDuplicate" {
		t.Fatalf("copied id: want weightDuplicate, got %q", copied.ID)
	}

	original := questions[0]
	copied.ID = original.ID
	if diff := cmp.Diff(original, copied); diff != "" {
		t.Fatalf("copy should be identical apart from id:\n%s", diff)
	}

	if b.Position() != schema.NoPosition {
		t.Fatalf("position should be cleared, got %+v", b.Position())
	}
}

func TestDuplicate_IsDeepCopy(t *testing.T) {
	form := testForm()
	b := New(form)

	if err := b.DuplicateQuestion(0, 0, 0); err != nil {
		t.Fatalf("duplicate: %v", err)
	}

	form.Pages[0].Sections[0].Questions[1].QuestionOptions.Min = "10"
	if form.Pages[0].Sections[0].Questions[0].QuestionOptions.Min != "0" {
		t.Fatal("mutating the copy leaked into the original")
	}
}

func TestAddAndDelete_PreserveOrder(t *testing.T) {
	form := testForm()
	b := New(form)

	if err := b.AddPage("Orders"); err != nil {
		t.Fatalf("add page: %v", err)
	}
	if err := b.AddSection(2, "Drug Orders"); err != nil {
		t.Fatalf("add section: %v", err)
	}
	if err := b.AddQuestion(2, 0, schema.Question{Label: "Drug name", QuestionOptions: schema.QuestionOptions{Rendering: "text"}}); err != nil {
		t.Fatalf("add question: %v", err)
	}

	if got := form.Pages[2].Sections[0].Questions[0].ID; got != "drugName" {
		t.Fatalf("derived id: want drugName, got %q", got)
	}

	if err := b.DeletePage(1); err != nil {
		t.Fatalf("delete page: %v", err)
	}
	want := []string{"Vitals", "Orders"}
	got := make([]string, 0, len(form.Pages))
	for _, p := range form.Pages {
		got = append(got, p.Label)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("page order after delete (-want +got):\n%s", diff)
	}
}

func TestDelete_OutOfRange(t *testing.T) {
	form := testForm()
	rec := &notify.Recorder{}
	b := New(form, WithNotifier(rec))

	if err := b.DeleteQuestion(0, 0, 7); err == nil {
		t.Fatal("expected fault")
	}
	if len(form.Pages[0].Sections[0].Questions) != 1 {
		t.Fatal("question list should be untouched after fault")
	}
}

func TestUpdateQuestion(t *testing.T) {
	form := testForm()
	b := New(form)

	updated := form.Pages[0].Sections[0].Questions[0].Clone()
	updated.Label = "Weight in kilograms"
	updated.QuestionOptions.Rendering = "fixed-value"

	if err := b.UpdateQuestion(schema.Position{Page: 0, Section: 0, Question: 0}, updated); err != nil {
		t.Fatalf("update: %v", err)
	}
	got := form.Pages[0].Sections[0].Questions[0]
	if got.Label != "Weight in kilograms" || got.QuestionOptions.Rendering != "fixed-value" {
		t.Fatalf("question not replaced: %+v", got)
	}
}

func TestNewForm(t *testing.T) {
	form := NewForm("Surgical Review")
	if form.Name != "Surgical Review" {
		t.Fatalf("name: %q", form.Name)
	}
	if form.UUID == "" {
		t.Fatal("expected generated uuid")
	}
	if form.Processor != "EncounterFormProcessor" {
		t.Fatalf("processor: %q", form.Processor)
	}
}
