package repository

import (
	"context"
	"questionnaire_backend/internal/model"
	"questionnaire_backend/internal/util"

	"gorm.io/gorm"
)

type ResponseFilter struct {
	TemplateID   string
	RespondentID string
	Status       model.ResponseStatus
	Page         int
	Limit        int
}

type ResponseRepository struct {
	DB *gorm.DB
}

func NewResponseRepository(db *gorm.DB) *ResponseRepository {
	return &ResponseRepository{DB: db}
}

func (r *ResponseRepository) Create(ctx context.Context, response *model.Response) error {
	return r.DB.WithContext(ctx).Create(response).Error
}

// Update 写回答卷；仅当库中 revision 与读出时一致且答卷未完成时生效，否则返回 util.ErrStaleResponse
func (r *ResponseRepository) Update(ctx context.Context, response *model.Response) error {
	expected := response.Revision
	response.Revision++

	result := r.DB.WithContext(ctx).Model(response).
		Where("revision = ? AND status <> ?", expected, model.StatusCompleted).
		Select("*").
		Omit("id", "created_at").
		Updates(response)
	if result.Error != nil {
		response.Revision = expected
		return result.Error
	}
	if result.RowsAffected == 0 {
		response.Revision = expected
		return util.ErrStaleResponse
	}
	return nil
}

func (r *ResponseRepository) FindByID(ctx context.Context, id string) (*model.Response, error) {
	var response model.Response
	err := r.DB.WithContext(ctx).Where("id = ?", id).First(&response).Error
	if err != nil {
		return nil, err
	}
	return &response, nil
}

func (r *ResponseRepository) Delete(ctx context.Context, id string) error {
	result := r.DB.WithContext(ctx).Where("id = ?", id).Delete(&model.Response{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *ResponseRepository) List(ctx context.Context, filter ResponseFilter) ([]model.Response, int64, error) {
	var responses []model.Response
	var total int64

	query := r.DB.WithContext(ctx).Model(&model.Response{})
	if filter.TemplateID != "" {
		query = query.Where("template_id = ?", filter.TemplateID)
	}
	if filter.RespondentID != "" {
		query = query.Where("respondent_id = ?", filter.RespondentID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	err := query.Order("updated_at DESC").Offset(offset).Limit(filter.Limit).Find(&responses).Error
	return responses, total, err
}

// CountByStatus 按状态统计答卷数量
func (r *ResponseRepository) CountByStatus(ctx context.Context) (map[model.ResponseStatus]int64, error) {
	var rows []struct {
		Status model.ResponseStatus
		Total  int64
	}
	err := r.DB.WithContext(ctx).Model(&model.Response{}).
		Select("status, COUNT(*) AS total").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[model.ResponseStatus]int64, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Total
	}
	return counts, nil
}

// AverageCompletedPercentage 已完成答卷的平均得分率，没有已完成答卷时为 0
func (r *ResponseRepository) AverageCompletedPercentage(ctx context.Context) (float64, error) {
	var avg *float64
	err := r.DB.WithContext(ctx).Model(&model.Response{}).
		Where("status = ?", model.StatusCompleted).
		Select("AVG(score_percentage)").
		Scan(&avg).Error
	if err != nil || avg == nil {
		return 0, err
	}
	return *avg, nil
}
