package service

import (
	"context"
	"io"
	"questionnaire_backend/internal/model"
	"questionnaire_backend/internal/repository"
)

// TemplateStore 由 repository.TemplateRepository 实现，测试中替换为内存实现
type TemplateStore interface {
	Create(ctx context.Context, template *model.Template) error
	FindByID(ctx context.Context, id string) (*model.Template, error)
	LookupIDs(ctx context.Context, ids []string) (map[string]bool, error)
	Restore(ctx context.Context, template *model.Template) error
	List(ctx context.Context, filter repository.TemplateFilter) ([]model.Template, int64, error)
	Update(ctx context.Context, template *model.Template, revision *model.TemplateRevision) error
	Delete(ctx context.Context, id string) error
	ListRevisions(ctx context.Context, templateID string) ([]model.TemplateRevision, error)
	Count(ctx context.Context) (int64, error)
}

type ResponseStore interface {
	Create(ctx context.Context, response *model.Response) error
	Update(ctx context.Context, response *model.Response) error
	FindByID(ctx context.Context, id string) (*model.Response, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter repository.ResponseFilter) ([]model.Response, int64, error)
	CountByStatus(ctx context.Context) (map[model.ResponseStatus]int64, error)
	AverageCompletedPercentage(ctx context.Context) (float64, error)
}

// TemplateCache 模板读缓存，未配置 Redis 时为 nil
type TemplateCache interface {
	Get(ctx context.Context, id string) (*model.Template, bool)
	Set(ctx context.Context, template *model.Template)
	Invalidate(ctx context.Context, id string)
}

// AttachmentStorage 附件上传，由 StorageService 实现
type AttachmentStorage interface {
	Upload(ctx context.Context, filename string, reader io.Reader, size int64, contentType string) (string, error)
}

var (
	_ TemplateStore     = (*repository.TemplateRepository)(nil)
	_ ResponseStore     = (*repository.ResponseRepository)(nil)
	_ TemplateCache     = (*RedisTemplateCache)(nil)
	_ AttachmentStorage = (*StorageService)(nil)
)
