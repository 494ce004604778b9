package engine

import "questionnaire_backend/internal/model"

// TemplateScore is the aggregate over every scoring-enabled question.
type TemplateScore struct {
	Score      float64 `json:"score"`
	MaxScore   float64 `json:"maxScore"`
	Percentage float64 `json:"percentage"`
}

// Category is a presentation band for a percentage.
type Category struct {
	Label string `json:"label"`
	Color string `json:"color"`
}

// ScoreQuestion returns nil when the question is not scored.
func ScoreQuestion(q model.Question, answer model.AnswerValue) *float64 {
	if !q.Scoring.Enabled {
		return nil
	}
	score := scoreEnabled(q.Scoring, answer)
	return &score
}

func scoreEnabled(s model.Scoring, answer model.AnswerValue) float64 {
	switch s.Type {
	case model.ScoringBinary:
		if strictEquals(answer, s.CorrectAnswer) {
			return s.Points
		}
		return 0

	case model.ScoringWeighted:
		switch answer.Kind() {
		case model.KindScalar, model.KindNumeric:
			if pts, ok := s.ScoreMapping[answer.String()]; ok {
				return pts
			}
		}
		return 0

	case model.ScoringPartial:
		given, okGiven := answer.Items()
		correct, okCorrect := s.CorrectAnswer.Items()
		if !okGiven || !okCorrect {
			return 0
		}
		expected := make(map[string]struct{}, len(correct))
		for _, c := range correct {
			expected[c] = struct{}{}
		}
		if len(expected) == 0 {
			return 0
		}
		hits := make(map[string]struct{}, len(given))
		for _, g := range given {
			if _, ok := expected[g]; ok {
				hits[g] = struct{}{}
			}
		}
		return s.Points * float64(len(hits)) / float64(len(expected))

	case model.ScoringRange:
		if n, ok := answer.Num(); ok {
			return n
		}
		return 0

	default:
		return 0
	}
}

// ScoreTemplate sums question scores across all sections. Every enabled
// question adds its points to MaxScore whether or not it is visible or
// answered, so the denominator depends only on the template.
func ScoreTemplate(t *model.Template, answers model.Answers) TemplateScore {
	var total TemplateScore
	if t == nil {
		return total
	}

	for _, s := range t.Sections {
		for _, q := range s.Questions {
			if !q.Scoring.Enabled {
				continue
			}
			if score := ScoreQuestion(q, answers.Get(q.ID)); score != nil {
				total.Score += *score
			}
			total.MaxScore += q.Scoring.Points
		}
	}

	if total.MaxScore > 0 {
		total.Percentage = total.Score / total.MaxScore * 100
	}
	return total
}

// Categorize buckets a percentage into one of five bands.
func Categorize(percentage float64) Category {
	switch {
	case percentage >= 90:
		return Category{Label: "Excellent", Color: "#4caf50"}
	case percentage >= 75:
		return Category{Label: "Good", Color: "#8bc34a"}
	case percentage >= 60:
		return Category{Label: "Satisfactory", Color: "#ffc107"}
	case percentage >= 50:
		return Category{Label: "Needs Improvement", Color: "#ff9800"}
	default:
		return Category{Label: "Poor", Color: "#f44336"}
	}
}
