package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"questionnaire_backend/internal/model"
	"questionnaire_backend/internal/repository"
	"questionnaire_backend/internal/util"
	"questionnaire_backend/pkg/logger"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type TemplateService struct {
	repo  TemplateStore
	cache TemplateCache

	now   func() time.Time
	newID func() string
}

// NewTemplateService cache 可为 nil
func NewTemplateService(repo TemplateStore, cache TemplateCache) *TemplateService {
	return &TemplateService{
		repo:  repo,
		cache: cache,
		now:   time.Now,
		newID: model.GenerateUUID,
	}
}

// TemplateRequest 创建和更新模板的请求体
type TemplateRequest struct {
	Name        string         `json:"name" binding:"required"`
	Description string         `json:"description"`
	Category    string         `json:"category"`
	Tags        []string       `json:"tags"`
	Sections    model.Sections `json:"sections" binding:"required"`
}

func (r *TemplateRequest) apply(t *model.Template) {
	t.Name = r.Name
	t.Description = r.Description
	t.Category = r.Category
	t.Tags = model.StringList(r.Tags)
	t.Sections = r.Sections
}

func (s *TemplateService) CreateTemplate(ctx context.Context, req *TemplateRequest) (*model.Template, error) {
	template := &model.Template{Version: 1}
	req.apply(template)
	if err := template.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", util.ErrInvalidTemplate, err)
	}

	template.ID = s.newID()
	if err := s.repo.Create(ctx, template); err != nil {
		return nil, err
	}

	logger.Log.Info("Template created", zap.String("templateId", template.ID), zap.String("name", template.Name))
	return template, nil
}

// GetTemplate 优先读缓存
func (s *TemplateService) GetTemplate(ctx context.Context, id string) (*model.Template, error) {
	if s.cache != nil {
		if template, ok := s.cache.Get(ctx, id); ok {
			return template, nil
		}
	}

	template, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrTemplateNotFound
		}
		return nil, err
	}

	if s.cache != nil {
		s.cache.Set(ctx, template)
	}
	return template, nil
}

func (s *TemplateService) ListTemplates(ctx context.Context, page, limit int, category, query string) ([]model.Template, int64, error) {
	return s.repo.List(ctx, repository.TemplateFilter{
		Category: category,
		Query:    query,
		Page:     page,
		Limit:    limit,
	})
}

// UpdateTemplate 覆盖模板内容，版本号加一，并记录更新前的版本
func (s *TemplateService) UpdateTemplate(ctx context.Context, id string, req *TemplateRequest) (*model.Template, error) {
	template, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrTemplateNotFound
		}
		return nil, err
	}

	changes, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}
	revision := &model.TemplateRevision{
		TemplateID:        template.ID,
		Version:           template.Version,
		PreviousUpdatedAt: template.UpdatedAt,
		Changes:           changes,
	}
	revision.ID = s.newID()

	req.apply(template)
	if err := template.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", util.ErrInvalidTemplate, err)
	}
	template.Version++
	template.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, template, revision); err != nil {
		return nil, err
	}
	s.invalidate(ctx, id)

	logger.Log.Info("Template updated", zap.String("templateId", id), zap.Int("version", template.Version))
	return template, nil
}

func (s *TemplateService) DeleteTemplate(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrTemplateNotFound
		}
		return err
	}
	s.invalidate(ctx, id)

	logger.Log.Info("Template deleted", zap.String("templateId", id))
	return nil
}

// DuplicateTemplate 复制为新的模板，版本从 1 开始，不继承修订记录
func (s *TemplateService) DuplicateTemplate(ctx context.Context, id string) (*model.Template, error) {
	source, err := s.GetTemplate(ctx, id)
	if err != nil {
		return nil, err
	}

	sections, err := cloneSections(source.Sections)
	if err != nil {
		return nil, err
	}

	copied := &model.Template{
		Name:        source.Name + " (Copy)",
		Description: source.Description,
		Category:    source.Category,
		Tags:        append(model.StringList(nil), source.Tags...),
		Version:     1,
		Sections:    sections,
	}
	copied.ID = s.newID()

	if err := s.repo.Create(ctx, copied); err != nil {
		return nil, err
	}
	return copied, nil
}

func (s *TemplateService) ListRevisions(ctx context.Context, id string) ([]model.TemplateRevision, error) {
	if _, err := s.GetTemplate(ctx, id); err != nil {
		return nil, err
	}
	return s.repo.ListRevisions(ctx, id)
}

// SyncSampleTemplates 写入缺失的内置示例模板，已软删除的示例会被恢复；返回新增与恢复的数量
func (s *TemplateService) SyncSampleTemplates(ctx context.Context) (int, error) {
	samples := SampleTemplates()
	ids := make([]string, len(samples))
	for i, t := range samples {
		ids[i] = t.ID
	}

	found, err := s.repo.LookupIDs(ctx, ids)
	if err != nil {
		return 0, err
	}

	created, restored := 0, 0
	for i := range samples {
		deleted, exists := found[samples[i].ID]
		switch {
		case !exists:
			if err := s.repo.Create(ctx, &samples[i]); err != nil {
				return created + restored, fmt.Errorf("sync sample %q: %w", samples[i].Name, err)
			}
			created++
		case deleted:
			if err := s.repo.Restore(ctx, &samples[i]); err != nil {
				return created + restored, fmt.Errorf("restore sample %q: %w", samples[i].Name, err)
			}
			s.invalidate(ctx, samples[i].ID)
			restored++
		}
	}

	logger.Log.Info("Sample templates synced",
		zap.Int("created", created),
		zap.Int("restored", restored),
		zap.Int("total", len(samples)),
	)
	return created + restored, nil
}

func (s *TemplateService) CountTemplates(ctx context.Context) (int64, error) {
	return s.repo.Count(ctx)
}

func (s *TemplateService) invalidate(ctx context.Context, id string) {
	if s.cache != nil {
		s.cache.Invalidate(ctx, id)
	}
}

func cloneSections(in model.Sections) (model.Sections, error) {
	data, err := json.Marshal(in)
	if err != nil {
		return nil, err
	}
	var out model.Sections
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	return out, nil
}
