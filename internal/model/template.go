package model

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
)

var structValidator = validator.New()

// swagger:model Template
type Template struct {
	UUIDBase
	Name        string     `gorm:"size:255;not null" json:"name" validate:"required"`
	Description string     `gorm:"type:text" json:"description"`
	Category    string     `gorm:"size:100;index" json:"category"`
	Tags        StringList `gorm:"type:text" json:"tags"`
	Version     int        `gorm:"default:1" json:"version"`
	Sections    Sections   `gorm:"type:json" json:"sections" validate:"min=1,dive"`
}

func (Template) TableName() string {
	return "questionnaire_templates"
}

type Section struct {
	ID          string     `json:"id" validate:"required"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Questions   []Question `json:"questions" validate:"dive"`
}

// Section returns the section with the given id.
func (t *Template) Section(id string) (*Section, bool) {
	for i := range t.Sections {
		if t.Sections[i].ID == id {
			return &t.Sections[i], true
		}
	}
	return nil, false
}

// Question looks a question up across every section.
func (t *Template) Question(id string) (*Question, bool) {
	for i := range t.Sections {
		for j := range t.Sections[i].Questions {
			if t.Sections[i].Questions[j].ID == id {
				return &t.Sections[i].Questions[j], true
			}
		}
	}
	return nil, false
}

// Validate checks the structural invariants: at least one section, section ids
// unique in the template, question ids unique across all sections, choice
// questions carrying options. Condition references are not checked.
func (t *Template) Validate() error {
	if err := structValidator.Struct(t); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return fmt.Errorf("%s failed on %q", fe.Namespace(), fe.Tag())
		}
		return err
	}

	sectionIDs := make(map[string]struct{}, len(t.Sections))
	questionIDs := make(map[string]struct{})
	for _, s := range t.Sections {
		if _, dup := sectionIDs[s.ID]; dup {
			return fmt.Errorf("duplicate section id %q", s.ID)
		}
		sectionIDs[s.ID] = struct{}{}

		for _, q := range s.Questions {
			if _, dup := questionIDs[q.ID]; dup {
				return fmt.Errorf("duplicate question id %q", q.ID)
			}
			questionIDs[q.ID] = struct{}{}

			if q.Type.HasOptions() && len(q.Options) == 0 {
				return fmt.Errorf("question %q of type %s needs at least one option", q.ID, q.Type)
			}
		}
	}
	return nil
}

type Sections []Section

func (s Sections) Value() (driver.Value, error) {
	if s == nil {
		return "[]", nil
	}
	b, err := json.Marshal(s)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (s *Sections) Scan(src any) error {
	return scanJSON(src, s)
}

type StringList []string

func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	b, err := json.Marshal(l)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (l *StringList) Scan(src any) error {
	return scanJSON(src, l)
}

// TemplateRevision records the state a template had before an update.
type TemplateRevision struct {
	UUIDBase
	TemplateID        string          `gorm:"index;type:varchar(36)" json:"templateId"`
	Version           int             `json:"version"`
	PreviousUpdatedAt time.Time       `json:"previousUpdatedAt"`
	Changes           json.RawMessage `gorm:"type:json" json:"changes"`
}

func (TemplateRevision) TableName() string {
	return "questionnaire_template_revisions"
}
