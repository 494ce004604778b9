package engine

import "questionnaire_backend/internal/model"

// IsVisible combines a question's conditions with its AND/OR logic.
// Disabled logic or an empty condition list always shows the question, as
// does a logic value outside AND/OR.
func IsVisible(q model.Question, answers model.Answers) bool {
	cl := q.ConditionalLogic
	if !cl.Enabled || len(cl.Conditions) == 0 {
		return true
	}

	switch cl.Logic {
	case model.LogicAnd:
		for _, c := range cl.Conditions {
			if !Evaluate(c, answers) {
				return false
			}
		}
		return true
	case model.LogicOr:
		for _, c := range cl.Conditions {
			if Evaluate(c, answers) {
				return true
			}
		}
		return false
	default:
		return true
	}
}

// VisibleQuestions filters questions down to the visible ones, keeping the
// input order. Duplicates in the input are kept.
func VisibleQuestions(questions []model.Question, answers model.Answers) []model.Question {
	visible := make([]model.Question, 0, len(questions))
	for _, q := range questions {
		if IsVisible(q, answers) {
			visible = append(visible, q)
		}
	}
	return visible
}

// SectionVisibility lists the visible question ids of one section.
type SectionVisibility struct {
	SectionID          string   `json:"sectionId"`
	VisibleQuestionIDs []string `json:"visibleQuestionIds"`
}

// VisibleByTemplate resolves visibility section by section, in template order.
func VisibleByTemplate(t *model.Template, answers model.Answers) []SectionVisibility {
	if t == nil {
		return nil
	}
	out := make([]SectionVisibility, 0, len(t.Sections))
	for _, s := range t.Sections {
		ids := make([]string, 0, len(s.Questions))
		for _, q := range VisibleQuestions(s.Questions, answers) {
			ids = append(ids, q.ID)
		}
		out = append(out, SectionVisibility{SectionID: s.ID, VisibleQuestionIDs: ids})
	}
	return out
}

// VisibleInTemplate flattens the visible questions of every section.
func VisibleInTemplate(t *model.Template, answers model.Answers) []model.Question {
	if t == nil {
		return nil
	}
	var visible []model.Question
	for _, s := range t.Sections {
		visible = append(visible, VisibleQuestions(s.Questions, answers)...)
	}
	return visible
}
