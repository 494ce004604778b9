package engine

import (
	"testing"

	"questionnaire_backend/internal/model"
)

func reportTemplate() *model.Template {
	follow := gated("q2", model.LogicAnd, model.Condition{QuestionID: "q1", Operator: model.OperatorEquals, Value: model.Scalar("no")})
	follow.Validations = []model.Validation{{Rule: model.RuleRequired}}
	return &model.Template{Sections: model.Sections{
		{ID: "s1", Questions: []model.Question{
			scored("q1", model.Scoring{Type: model.ScoringBinary, Points: 4, CorrectAnswer: model.Scalar("yes")}),
			follow,
		}},
		{ID: "s2", Questions: []model.Question{
			{ID: "q3", Validations: []model.Validation{{Rule: model.RuleRequired}}},
		}},
	}}
}

func TestValidateVisible(t *testing.T) {
	tpl := reportTemplate()

	all, ok := ValidateVisible(tpl, model.Answers{"q1": model.Scalar("yes")}, "")
	if !ok || all.IsValid || len(all.Results) != 2 {
		t.Fatalf("whole template: ok=%v %+v", ok, all)
	}
	if _, hidden := all.Results["q2"]; hidden {
		t.Fatal("hidden q2 should not be validated")
	}

	s1, ok := ValidateVisible(tpl, model.Answers{"q1": model.Scalar("no")}, "s1")
	if !ok || s1.IsValid || s1.Results["q2"].IsValid {
		t.Fatalf("section s1 should flag revealed q2: %+v", s1)
	}

	if _, ok := ValidateVisible(tpl, nil, "s9"); ok {
		t.Fatal("unknown section should report ok=false")
	}
}

func TestReport(t *testing.T) {
	got := Report(reportTemplate(), model.Answers{"q1": model.Scalar("yes")})
	if got.Score != 4 || got.MaxScore != 4 || got.Percentage != 100 || got.Category != "Excellent" || got.Color != "#4caf50" {
		t.Fatalf("unexpected report %+v", got)
	}
}
