package engine

import "questionnaire_backend/internal/model"

// ValidateVisible validates the visible questions of one section, or of the
// whole template when sectionID is empty. ok is false for an unknown section.
func ValidateVisible(t *model.Template, answers model.Answers, sectionID string) (FormResult, bool) {
	if sectionID == "" {
		return ValidateForm(VisibleInTemplate(t, answers), answers), true
	}
	s, ok := t.Section(sectionID)
	if !ok {
		return FormResult{}, false
	}
	return ValidateForm(VisibleQuestions(s.Questions, answers), answers), true
}

// ScoreReport is a template score with its category attached.
type ScoreReport struct {
	Score      float64 `json:"score"`
	MaxScore   float64 `json:"maxScore"`
	Percentage float64 `json:"percentage"`
	Category   string  `json:"category"`
	Color      string  `json:"color"`
}

func Report(t *model.Template, answers model.Answers) ScoreReport {
	s := ScoreTemplate(t, answers)
	c := Categorize(s.Percentage)
	return ScoreReport{
		Score:      s.Score,
		MaxScore:   s.MaxScore,
		Percentage: s.Percentage,
		Category:   c.Label,
		Color:      c.Color,
	}
}
