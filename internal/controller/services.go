package controller

import (
	"context"
	"errors"
	"io"
	"net/http"
	"questionnaire_backend/internal/engine"
	"questionnaire_backend/internal/model"
	"questionnaire_backend/internal/service"
	"questionnaire_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// TemplateAPI 由 *service.TemplateService 实现
type TemplateAPI interface {
	CreateTemplate(ctx context.Context, req *service.TemplateRequest) (*model.Template, error)
	GetTemplate(ctx context.Context, id string) (*model.Template, error)
	ListTemplates(ctx context.Context, page, limit int, category, query string) ([]model.Template, int64, error)
	UpdateTemplate(ctx context.Context, id string, req *service.TemplateRequest) (*model.Template, error)
	DeleteTemplate(ctx context.Context, id string) error
	DuplicateTemplate(ctx context.Context, id string) (*model.Template, error)
	ListRevisions(ctx context.Context, id string) ([]model.TemplateRevision, error)
	SyncSampleTemplates(ctx context.Context) (int, error)
}

// ResponseAPI 由 *service.ResponseService 实现
type ResponseAPI interface {
	StartResponse(ctx context.Context, templateID, respondentID string) (*model.Response, error)
	GetResponse(ctx context.Context, id string) (*model.Response, error)
	ListResponses(ctx context.Context, templateID, respondentID string, status model.ResponseStatus, page, limit int) ([]model.Response, int64, error)
	DeleteResponse(ctx context.Context, id string) error
	SetAnswer(ctx context.Context, id, questionID string, value model.AnswerValue) (*model.Response, error)
	SaveDraft(ctx context.Context, id string) (*model.Response, error)
	VisibleQuestions(ctx context.Context, id, sectionID string) ([]model.Question, error)
	ValidateSection(ctx context.Context, id, sectionID string) (engine.FormResult, error)
	Submit(ctx context.Context, id string) (*model.Response, error)
	AttachFile(ctx context.Context, id, questionID, filename string, reader io.Reader, size int64) (*model.Response, error)
}

type DashboardAPI interface {
	Stats(ctx context.Context) (*service.DashboardStats, error)
}

var (
	_ TemplateAPI  = (*service.TemplateService)(nil)
	_ ResponseAPI  = (*service.ResponseService)(nil)
	_ DashboardAPI = (*service.DashboardService)(nil)
)

// ValidationErrorData 422 响应的 data 部分
type ValidationErrorData struct {
	Errors  map[string]string             `json:"errors"`
	Results map[string]engine.FieldResult `json:"results"`
}

// renderError 将业务错误映射为统一响应
func renderError(ctx *gin.Context, err error) {
	var vErr *service.ValidationFailedError
	switch {
	case errors.As(err, &vErr):
		util.UnprocessableEntity(ctx, "Validation failed", ValidationErrorData{
			Errors:  vErr.Result.FirstErrors(),
			Results: vErr.Result.Results,
		})
	case errors.Is(err, util.ErrTemplateNotFound),
		errors.Is(err, util.ErrResponseNotFound),
		errors.Is(err, util.ErrSectionNotFound),
		errors.Is(err, util.ErrQuestionNotFound):
		util.Error(ctx, http.StatusNotFound, err.Error())
	case errors.Is(err, util.ErrInvalidTemplate),
		errors.Is(err, util.ErrNotAttachable),
		errors.Is(err, util.ErrInvalidAttachment):
		util.BadRequest(ctx, err.Error())
	case errors.Is(err, util.ErrResponseCompleted),
		errors.Is(err, util.ErrStaleResponse):
		util.Conflict(ctx, err.Error())
	case errors.Is(err, util.ErrPermissionDenied):
		util.Forbidden(ctx)
	default:
		util.LogInternalError(ctx, err)
	}
}

func pageList(list interface{}, total int64, page, limit int) util.PageResponse {
	return util.PageResponse{List: list, Total: total, Page: page, Limit: limit}
}
