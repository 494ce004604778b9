// Package engine evaluates questionnaire templates against an answer map:
// conditional visibility, per-field validation and scoring.
//
// Every function here is pure. Inputs are never mutated, nothing is cached
// across calls except compiled regular expressions, and malformed but
// well-typed input degrades to a defined result instead of an error.
package engine

import (
	"math"
	"strings"

	"questionnaire_backend/internal/model"

	"github.com/spf13/cast"
)

// Evaluate reports whether a single condition holds for the given answers.
//
// A condition without a question id or operator, or with an operator outside
// the closed set, evaluates to false so the gated question stays hidden.
// Numeric operators compare coerced numbers and are false whenever either
// side is not a number.
func Evaluate(c model.Condition, answers model.Answers) bool {
	if c.QuestionID == "" || c.Operator == "" {
		return false
	}

	answer := answers.Get(c.QuestionID)

	switch c.Operator {
	case model.OperatorEquals:
		return strictEquals(answer, c.Value)
	case model.OperatorNotEquals:
		return !strictEquals(answer, c.Value)
	case model.OperatorContains:
		return contains(answer, c.Value)
	case model.OperatorGreaterThan:
		a, okA := toNumber(answer)
		b, okB := toNumber(c.Value)
		return okA && okB && a > b
	case model.OperatorLessThan:
		a, okA := toNumber(answer)
		b, okB := toNumber(c.Value)
		return okA && okB && a < b
	case model.OperatorIsEmpty:
		return answer.IsEmpty()
	case model.OperatorIsNotEmpty:
		return !answer.IsEmpty()
	default:
		return false
	}
}

// strictEquals never matches an absent answer; otherwise both sides must hold
// the same variant with the same content.
func strictEquals(answer, value model.AnswerValue) bool {
	if answer.Kind() == model.KindEmpty {
		return false
	}
	return answer.Equal(value)
}

func contains(answer, value model.AnswerValue) bool {
	needle := value.String()
	if items, ok := answer.Items(); ok {
		for _, item := range items {
			if item == needle {
				return true
			}
		}
		return false
	}
	if answer.Kind() == model.KindBlob {
		return false
	}
	return strings.Contains(answer.String(), needle)
}

// toNumber coerces a value for numeric comparison. ok is false for absent
// values, blank strings, lists, blobs and anything that does not parse.
func toNumber(v model.AnswerValue) (float64, bool) {
	switch v.Kind() {
	case model.KindNumeric:
		n, _ := v.Num()
		return n, !math.IsNaN(n)
	case model.KindScalar:
		s, _ := v.Str()
		s = strings.TrimSpace(s)
		if s == "" {
			return 0, false
		}
		f, err := cast.ToFloat64E(s)
		if err != nil || math.IsNaN(f) {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}
