package engine

import (
	"fmt"
	"regexp"
	"sync"
	"unicode/utf8"

	"questionnaire_backend/internal/model"

	"github.com/go-playground/validator/v10"
)

var (
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phonePattern = regexp.MustCompile(`^[\d\s\-+()]+$`)

	urlValidator = validator.New()

	patternCache sync.Map // string -> *regexp.Regexp, or error for bad patterns
)

// FieldResult is the outcome of running one question's rules.
type FieldResult struct {
	IsValid bool     `json:"isValid"`
	Errors  []string `json:"errors"`
}

// FormResult aggregates FieldResults keyed by question id.
type FormResult struct {
	IsValid bool                   `json:"isValid"`
	Results map[string]FieldResult `json:"results"`
}

// ValidateField runs every rule against value and collects each failing
// rule's message in rule order.
//
// Only required looks at empty values; every other rule is skipped when the
// value is absent, "" or an empty list. Numeric rules whose value or parameter
// is not a number do not fire. Blob answers are only subject to required.
func ValidateField(value model.AnswerValue, rules []model.Validation) FieldResult {
	errs := make([]string, 0)

	for _, rule := range rules {
		if rule.Rule == model.RuleRequired {
			if value.IsEmpty() {
				errs = append(errs, messageOr(rule, "This field is required"))
			}
			continue
		}
		if value.IsEmpty() || value.Kind() == model.KindBlob {
			continue
		}
		if msg, failed := checkRule(rule, value); failed {
			errs = append(errs, msg)
		}
	}

	return FieldResult{IsValid: len(errs) == 0, Errors: errs}
}

func checkRule(rule model.Validation, value model.AnswerValue) (string, bool) {
	text := value.String()

	switch rule.Rule {
	case model.RuleMinLength:
		limit, ok := toNumber(rule.Value)
		if ok && float64(utf8.RuneCountInString(text)) < limit {
			return messageOr(rule, fmt.Sprintf("Minimum length is %s characters", rule.Value.String())), true
		}
	case model.RuleMaxLength:
		limit, ok := toNumber(rule.Value)
		if ok && float64(utf8.RuneCountInString(text)) > limit {
			return messageOr(rule, fmt.Sprintf("Maximum length is %s characters", rule.Value.String())), true
		}
	case model.RuleMinValue:
		n, okN := toNumber(value)
		limit, okL := toNumber(rule.Value)
		if okN && okL && n < limit {
			return messageOr(rule, fmt.Sprintf("Minimum value is %s", rule.Value.String())), true
		}
	case model.RuleMaxValue:
		n, okN := toNumber(value)
		limit, okL := toNumber(rule.Value)
		if okN && okL && n > limit {
			return messageOr(rule, fmt.Sprintf("Maximum value is %s", rule.Value.String())), true
		}
	case model.RulePattern:
		re, err := compilePattern(rule.Value.String())
		if err != nil || !re.MatchString(text) {
			return messageOr(rule, "Invalid format"), true
		}
	case model.RuleEmail:
		if !emailPattern.MatchString(text) {
			return messageOr(rule, "Invalid email address"), true
		}
	case model.RuleURL:
		if urlValidator.Var(text, "url") != nil {
			return messageOr(rule, "Invalid URL"), true
		}
	case model.RulePhone:
		if !phonePattern.MatchString(text) {
			return messageOr(rule, "Invalid phone number"), true
		}
	}
	return "", false
}

// ValidateForm validates each question against its answer. It does not look
// at visibility; pass only the questions currently shown.
func ValidateForm(questions []model.Question, answers model.Answers) FormResult {
	result := FormResult{IsValid: true, Results: make(map[string]FieldResult, len(questions))}
	for _, q := range questions {
		fr := ValidateField(answers.Get(q.ID), q.Validations)
		result.Results[q.ID] = fr
		if !fr.IsValid {
			result.IsValid = false
		}
	}
	return result
}

// FirstErrors keeps the first message of every invalid field.
func (r FormResult) FirstErrors() map[string]string {
	out := make(map[string]string)
	for id, fr := range r.Results {
		if !fr.IsValid && len(fr.Errors) > 0 {
			out[id] = fr.Errors[0]
		}
	}
	return out
}

func messageOr(rule model.Validation, fallback string) string {
	if rule.Message != "" {
		return rule.Message
	}
	return fallback
}

func compilePattern(expr string) (*regexp.Regexp, error) {
	if cached, ok := patternCache.Load(expr); ok {
		switch v := cached.(type) {
		case *regexp.Regexp:
			return v, nil
		case error:
			return nil, v
		}
	}
	re, err := regexp.Compile(expr)
	if err != nil {
		patternCache.Store(expr, err)
		return nil, err
	}
	patternCache.Store(expr, re)
	return re, nil
}
