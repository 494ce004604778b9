package repository

import (
	"context"
	"questionnaire_backend/internal/model"
	"strings"

	"gorm.io/gorm"
)

type TemplateFilter struct {
	Category string
	Query    string
	Page     int
	Limit    int
}

type TemplateRepository struct {
	DB *gorm.DB
}

func NewTemplateRepository(db *gorm.DB) *TemplateRepository {
	return &TemplateRepository{DB: db}
}

func (r *TemplateRepository) Create(ctx context.Context, template *model.Template) error {
	return r.DB.WithContext(ctx).Create(template).Error
}

func (r *TemplateRepository) FindByID(ctx context.Context, id string) (*model.Template, error) {
	var template model.Template
	err := r.DB.WithContext(ctx).Where("id = ?", id).First(&template).Error
	if err != nil {
		return nil, err
	}
	return &template, nil
}

// LookupIDs 返回 ids 中已存在的模板 ID，包含软删除的记录；值为 true 表示已软删除
func (r *TemplateRepository) LookupIDs(ctx context.Context, ids []string) (map[string]bool, error) {
	var rows []struct {
		ID        string
		DeletedAt gorm.DeletedAt
	}
	if len(ids) > 0 {
		err := r.DB.WithContext(ctx).Unscoped().Model(&model.Template{}).
			Select("id", "deleted_at").
			Where("id IN ?", ids).
			Scan(&rows).Error
		if err != nil {
			return nil, err
		}
	}
	found := make(map[string]bool, len(rows))
	for _, row := range rows {
		found[row.ID] = row.DeletedAt.Valid
	}
	return found, nil
}

// Restore 恢复软删除的模板，并以 template 的内容整体覆盖
func (r *TemplateRepository) Restore(ctx context.Context, template *model.Template) error {
	template.DeletedAt = gorm.DeletedAt{}
	result := r.DB.WithContext(ctx).Unscoped().Model(template).
		Select("*").
		Omit("created_at").
		Updates(template)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *TemplateRepository) List(ctx context.Context, filter TemplateFilter) ([]model.Template, int64, error) {
	var templates []model.Template
	var total int64

	query := r.DB.WithContext(ctx).Model(&model.Template{})
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if q := strings.TrimSpace(filter.Query); q != "" {
		like := "%" + strings.ToLower(q) + "%"
		query = query.Where("(LOWER(name) LIKE ? OR LOWER(description) LIKE ? OR LOWER(tags) LIKE ?)", like, like, like)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	err := query.Order("updated_at DESC").Offset(offset).Limit(filter.Limit).Find(&templates).Error
	return templates, total, err
}

// Update 在同一事务内保存模板并写入修订记录
func (r *TemplateRepository) Update(ctx context.Context, template *model.Template, revision *model.TemplateRevision) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(template).Error; err != nil {
			return err
		}
		if revision != nil {
			return tx.Create(revision).Error
		}
		return nil
	})
}

func (r *TemplateRepository) Delete(ctx context.Context, id string) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Where("id = ?", id).Delete(&model.Template{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return tx.Where("template_id = ?", id).Delete(&model.TemplateRevision{}).Error
	})
}

func (r *TemplateRepository) ListRevisions(ctx context.Context, templateID string) ([]model.TemplateRevision, error) {
	var revisions []model.TemplateRevision
	err := r.DB.WithContext(ctx).Where("template_id = ?", templateID).Order("version DESC").Find(&revisions).Error
	return revisions, err
}

func (r *TemplateRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	err := r.DB.WithContext(ctx).Model(&model.Template{}).Count(&total).Error
	return total, err
}
