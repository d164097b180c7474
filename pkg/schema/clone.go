package schema

// Clone returns a deep copy of the form. Mutating the copy never touches the
// original, which is what duplicate operations rely on.
func (f Form) Clone() Form {
	out := f
	out.ReferencedForms = append([]ReferencedForm(nil), f.ReferencedForms...)
	if f.Pages != nil {
		out.Pages = make([]Page, len(f.Pages))
		for i, page := range f.Pages {
			out.Pages[i] = page.Clone()
		}
	}
	return out
}

// Clone returns a deep copy of the page.
func (p Page) Clone() Page {
	out := p
	if p.Sections != nil {
		out.Sections = make([]Section, len(p.Sections))
		for i, section := range p.Sections {
			out.Sections[i] = section.Clone()
		}
	}
	return out
}

// Clone returns a deep copy of the section.
func (s Section) Clone() Section {
	out := s
	if s.Questions != nil {
		out.Questions = make([]Question, len(s.Questions))
		for i, question := range s.Questions {
			out.Questions[i] = question.Clone()
		}
	}
	return out
}

// Clone returns a deep copy of the question, including nested group members.
func (q Question) Clone() Question {
	out := q
	out.QuestionOptions = q.QuestionOptions.clone()
	if q.Questions != nil {
		out.Questions = make([]Question, len(q.Questions))
		for i, nested := range q.Questions {
			out.Questions[i] = nested.Clone()
		}
	}
	return out
}

func (o QuestionOptions) clone() QuestionOptions {
	out := o
	out.Answers = append([]Answer(nil), o.Answers...)
	out.WeeksList = append([]int(nil), o.WeeksList...)
	out.ConceptMappings = append([]ConceptMapping(nil), o.ConceptMappings...)
	return out
}
