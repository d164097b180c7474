package schema

// Position is a structural coordinate into the tree. A value of -1 means the
// axis is unset. Positions are only valid between mutations; any structural
// change invalidates previously captured positions.
type Position struct {
	Page     int
	Section  int
	Question int
}

// NoPosition is the reset coordinate with every axis unset.
var NoPosition = Position{Page: -1, Section: -1, Question: -1}

// IsSet reports whether the page axis points at anything.
func (p Position) IsSet() bool { return p.Page >= 0 }

// WalkFunc receives each question in document order along with its position.
// Returning false stops the walk.
type WalkFunc func(pos Position, q Question) bool

// Walk visits every question in document order: pages, then sections, then
// questions. Nested group members are not visited; the group question itself
// carries the concept binding the audit cares about.
func (f Form) Walk(fn WalkFunc) {
	if fn == nil {
		return
	}
	for pi, page := range f.Pages {
		for si, section := range page.Sections {
			for qi, question := range section.Questions {
				if !fn(Position{Page: pi, Section: si, Question: qi}, question) {
					return
				}
			}
		}
	}
}

// FlattenQuestions returns every question in document order.
func (f Form) FlattenQuestions() []Question {
	var out []Question
	f.Walk(func(_ Position, q Question) bool {
		out = append(out, q)
		return true
	})
	return out
}

// QuestionAt returns the question at the coordinate, reporting whether the
// coordinate is in range.
func (f Form) QuestionAt(pos Position) (Question, bool) {
	if pos.Page < 0 || pos.Page >= len(f.Pages) {
		return Question{}, false
	}
	page := f.Pages[pos.Page]
	if pos.Section < 0 || pos.Section >= len(page.Sections) {
		return Question{}, false
	}
	section := page.Sections[pos.Section]
	if pos.Question < 0 || pos.Question >= len(section.Questions) {
		return Question{}, false
	}
	return section.Questions[pos.Question], true
}
