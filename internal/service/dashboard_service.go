package service

import (
	"context"
	"questionnaire_backend/internal/model"
)

type DashboardService struct {
	templates TemplateStore
	responses ResponseStore
}

func NewDashboardService(templates TemplateStore, responses ResponseStore) *DashboardService {
	return &DashboardService{templates: templates, responses: responses}
}

type DashboardStats struct {
	TotalTemplates    int64            `json:"totalTemplates"`
	TotalResponses    int64            `json:"totalResponses"`
	ByStatus          map[string]int64 `json:"byStatus"`
	AveragePercentage float64          `json:"averagePercentage"`
}

func (s *DashboardService) Stats(ctx context.Context) (*DashboardStats, error) {
	templates, err := s.templates.Count(ctx)
	if err != nil {
		return nil, err
	}

	counts, err := s.responses.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}

	avg, err := s.responses.AverageCompletedPercentage(ctx)
	if err != nil {
		return nil, err
	}

	// 三种状态始终返回，便于前端直接渲染
	byStatus := map[string]int64{
		string(model.StatusInProgress): 0,
		string(model.StatusDraft):      0,
		string(model.StatusCompleted):  0,
	}
	var total int64
	for status, n := range counts {
		byStatus[string(status)] = n
		total += n
	}

	return &DashboardStats{
		TotalTemplates:    templates,
		TotalResponses:    total,
		ByStatus:          byStatus,
		AveragePercentage: avg,
	}, nil
}
