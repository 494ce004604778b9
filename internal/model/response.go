package model

import (
	"time"

	"gorm.io/gorm"
)

type ResponseStatus string

const (
	StatusInProgress ResponseStatus = "in_progress"
	StatusDraft      ResponseStatus = "draft"
	StatusCompleted  ResponseStatus = "completed"
)

// swagger:model Response
type Response struct {
	UUIDBase
	TemplateID      string         `gorm:"index;type:varchar(36)" json:"templateId"`
	TemplateVersion int            `json:"templateVersion"`
	RespondentID    string         `gorm:"size:100;index" json:"respondentId"`
	Answers         Answers        `gorm:"type:json" json:"answers"`
	Status          ResponseStatus `gorm:"size:20;default:'in_progress';index" json:"status"`
	Score           *ScoreResult   `gorm:"embedded;embeddedPrefix:score_" json:"score"`
	CompletedAt     *time.Time     `json:"completedAt"`
	Revision        int            `gorm:"not null;default:0" json:"revision"`
}

func (Response) TableName() string {
	return "questionnaire_responses"
}

// AfterFind 未计分的答卷读出时 Score 为 nil
func (r *Response) AfterFind(tx *gorm.DB) error {
	if r.Score != nil && r.Score.Category == "" {
		r.Score = nil
	}
	return nil
}

// ScoreResult is the stored outcome of scoring a completed response.
type ScoreResult struct {
	Score      float64 `json:"score"`
	MaxScore   float64 `json:"maxScore"`
	Percentage float64 `json:"percentage"`
	Category   string  `gorm:"size:50" json:"category"`
	Color      string  `gorm:"size:20" json:"color"`
}
