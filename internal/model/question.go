package model

type QuestionType string

const (
	QuestionText           QuestionType = "text"
	QuestionTextarea       QuestionType = "textarea"
	QuestionMultipleChoice QuestionType = "multiple_choice"
	QuestionCheckboxes     QuestionType = "checkboxes"
	QuestionDropdown       QuestionType = "dropdown"
	QuestionNumber         QuestionType = "number"
	QuestionDate           QuestionType = "date"
	QuestionTime           QuestionType = "time"
	QuestionDatetime       QuestionType = "datetime"
	QuestionSignature      QuestionType = "signature"
	QuestionPhoto          QuestionType = "photo"
	QuestionFileUpload     QuestionType = "file_upload"
	QuestionRating         QuestionType = "rating"
	QuestionYesNo          QuestionType = "yes_no"
)

// HasOptions reports the choice types that render from an option list.
func (t QuestionType) HasOptions() bool {
	switch t {
	case QuestionMultipleChoice, QuestionCheckboxes, QuestionDropdown:
		return true
	}
	return false
}

// Attachable reports the types whose answers are uploaded files.
func (t QuestionType) Attachable() bool {
	switch t {
	case QuestionSignature, QuestionPhoto, QuestionFileUpload:
		return true
	}
	return false
}

type ConditionalOperator string

const (
	OperatorEquals      ConditionalOperator = "equals"
	OperatorNotEquals   ConditionalOperator = "not_equals"
	OperatorContains    ConditionalOperator = "contains"
	OperatorGreaterThan ConditionalOperator = "greater_than"
	OperatorLessThan    ConditionalOperator = "less_than"
	OperatorIsEmpty     ConditionalOperator = "is_empty"
	OperatorIsNotEmpty  ConditionalOperator = "is_not_empty"
)

type ValidationRule string

const (
	RuleRequired  ValidationRule = "required"
	RuleMinLength ValidationRule = "min_length"
	RuleMaxLength ValidationRule = "max_length"
	RuleMinValue  ValidationRule = "min_value"
	RuleMaxValue  ValidationRule = "max_value"
	RulePattern   ValidationRule = "pattern"
	RuleEmail     ValidationRule = "email"
	RuleURL       ValidationRule = "url"
	RulePhone     ValidationRule = "phone"
)

type ScoringType string

const (
	ScoringBinary   ScoringType = "binary"
	ScoringWeighted ScoringType = "weighted"
	ScoringPartial  ScoringType = "partial"
	ScoringRange    ScoringType = "range"
)

type Logic string

const (
	LogicAnd Logic = "AND"
	LogicOr  Logic = "OR"
)

type Option struct {
	Value string `json:"value" validate:"required"`
	Label string `json:"label"`
}

type Validation struct {
	Rule    ValidationRule `json:"rule" validate:"required,oneof=required min_length max_length min_value max_value pattern email url phone"`
	Value   AnswerValue    `json:"value"`
	Message string         `json:"message,omitempty"`
}

type Condition struct {
	QuestionID string              `json:"questionId"`
	Operator   ConditionalOperator `json:"operator"`
	Value      AnswerValue         `json:"value"`
}

type ConditionalLogic struct {
	Enabled    bool        `json:"enabled"`
	Logic      Logic       `json:"logic"`
	Conditions []Condition `json:"conditions"`
}

type Scoring struct {
	Enabled       bool               `json:"enabled"`
	Type          ScoringType        `json:"type,omitempty" validate:"omitempty,oneof=binary weighted partial range"`
	Points        float64            `json:"points"`
	CorrectAnswer AnswerValue        `json:"correctAnswer"`
	ScoreMapping  map[string]float64 `json:"scoreMapping,omitempty"`
}

// Question is one form field. Type-specific fields are only meaningful for
// the types named beside them.
type Question struct {
	ID       string       `json:"id" validate:"required"`
	Type     QuestionType `json:"type" validate:"required,oneof=text textarea multiple_choice checkboxes dropdown number date time datetime signature photo file_upload rating yes_no"`
	Label    string       `json:"label" validate:"required"`
	HelpText string       `json:"helpText,omitempty"`

	Options      []Option `json:"options,omitempty" validate:"dive"` // multiple_choice, checkboxes, dropdown
	MaxRating    int      `json:"maxRating,omitempty"`               // rating
	AllowNA      bool     `json:"allowNA,omitempty"`                 // yes_no
	Min          *float64 `json:"min,omitempty"`                     // number
	Max          *float64 `json:"max,omitempty"`                     // number
	Step         *float64 `json:"step,omitempty"`                    // number
	DateTimeType string   `json:"dateTimeType,omitempty"`            // date, time, datetime
	Multiline    bool     `json:"multiline,omitempty"`               // textarea
	Accept       string   `json:"accept,omitempty"`                  // file_upload
	MaxFiles     int      `json:"maxFiles,omitempty"`                // file_upload

	Validations      []Validation     `json:"validations" validate:"dive"`
	ConditionalLogic ConditionalLogic `json:"conditionalLogic"`
	Scoring          Scoring          `json:"scoring"`
}
