package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"questionnaire_backend/internal/engine"
	"questionnaire_backend/internal/model"
	"questionnaire_backend/internal/repository"
	"questionnaire_backend/internal/util"
	"questionnaire_backend/pkg/logger"
	"questionnaire_backend/pkg/monitoring"
	"questionnaire_backend/pkg/tracing"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ValidationFailedError 提交时可见题目未通过校验
type ValidationFailedError struct {
	Result engine.FormResult
}

func (e *ValidationFailedError) Error() string {
	invalid := 0
	for _, r := range e.Result.Results {
		if !r.IsValid {
			invalid++
		}
	}
	return fmt.Sprintf("response failed validation: %d question(s) invalid", invalid)
}

// maxUpdateAttempts 并发冲突时的最大写回次数
const maxUpdateAttempts = 3

type ResponseService struct {
	repo      ResponseStore
	templates *TemplateService
	storage   AttachmentStorage

	now func() time.Time
}

func NewResponseService(repo ResponseStore, templates *TemplateService, storage AttachmentStorage) *ResponseService {
	return &ResponseService{
		repo:      repo,
		templates: templates,
		storage:   storage,
		now:       time.Now,
	}
}

func (s *ResponseService) StartResponse(ctx context.Context, templateID, respondentID string) (*model.Response, error) {
	template, err := s.templates.GetTemplate(ctx, templateID)
	if err != nil {
		return nil, err
	}

	response := &model.Response{
		TemplateID:      template.ID,
		TemplateVersion: template.Version,
		RespondentID:    respondentID,
		Answers:         model.Answers{},
		Status:          model.StatusInProgress,
	}
	response.ID = model.GenerateUUID()

	if err := s.repo.Create(ctx, response); err != nil {
		return nil, err
	}

	logger.Log.Info("Response started",
		zap.String("responseId", response.ID),
		zap.String("templateId", template.ID),
		zap.Int("templateVersion", template.Version),
	)
	return response, nil
}

func (s *ResponseService) GetResponse(ctx context.Context, id string) (*model.Response, error) {
	response, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrResponseNotFound
		}
		return nil, err
	}
	if response.Answers == nil {
		response.Answers = model.Answers{}
	}
	return response, nil
}

// ListResponses respondentID 为空时不按答题人过滤
func (s *ResponseService) ListResponses(ctx context.Context, templateID, respondentID string, status model.ResponseStatus, page, limit int) ([]model.Response, int64, error) {
	return s.repo.List(ctx, repository.ResponseFilter{
		TemplateID:   templateID,
		RespondentID: respondentID,
		Status:       status,
		Page:         page,
		Limit:        limit,
	})
}

func (s *ResponseService) DeleteResponse(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrResponseNotFound
		}
		return err
	}
	logger.Log.Info("Response deleted", zap.String("responseId", id))
	return nil
}

// load 返回答卷及其模板
func (s *ResponseService) load(ctx context.Context, id string) (*model.Response, *model.Template, error) {
	response, err := s.GetResponse(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	template, err := s.templates.GetTemplate(ctx, response.TemplateID)
	if err != nil {
		return nil, nil, err
	}
	return response, template, nil
}

// mutate 读取答卷、应用 apply 后条件写回；写回时答卷已被并发修改则重新读取重试
func (s *ResponseService) mutate(ctx context.Context, id string, apply func(*model.Response) error) (*model.Response, error) {
	for attempt := 1; ; attempt++ {
		response, err := s.GetResponse(ctx, id)
		if err != nil {
			return nil, err
		}
		if response.Status == model.StatusCompleted {
			return nil, util.ErrResponseCompleted
		}
		if err := apply(response); err != nil {
			return nil, err
		}

		err = s.repo.Update(ctx, response)
		if err == nil {
			return response, nil
		}
		if !errors.Is(err, util.ErrStaleResponse) || attempt >= maxUpdateAttempts {
			return nil, err
		}
		logger.Log.Debug("Response changed concurrently, retrying",
			zap.String("responseId", id),
			zap.Int("attempt", attempt),
		)
	}
}

// SetAnswer 写入单题答案；Empty 值表示清除该题答案
func (s *ResponseService) SetAnswer(ctx context.Context, id, questionID string, value model.AnswerValue) (*model.Response, error) {
	return s.mutate(ctx, id, func(response *model.Response) error {
		template, err := s.templates.GetTemplate(ctx, response.TemplateID)
		if err != nil {
			return err
		}
		if _, ok := template.Question(questionID); !ok {
			return util.ErrQuestionNotFound
		}

		if value.Kind() == model.KindEmpty {
			delete(response.Answers, questionID)
		} else {
			response.Answers[questionID] = value
		}
		if response.Status == model.StatusDraft {
			response.Status = model.StatusInProgress
		}
		return nil
	})
}

func (s *ResponseService) SaveDraft(ctx context.Context, id string) (*model.Response, error) {
	response, err := s.mutate(ctx, id, func(response *model.Response) error {
		response.Status = model.StatusDraft
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Log.Debug("Response saved as draft", zap.String("responseId", id))
	return response, nil
}

func (s *ResponseService) VisibleQuestions(ctx context.Context, id, sectionID string) ([]model.Question, error) {
	response, template, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	section, ok := template.Section(sectionID)
	if !ok {
		return nil, util.ErrSectionNotFound
	}
	return engine.VisibleQuestions(section.Questions, response.Answers), nil
}

// ValidateSection 只校验当前可见的题目
func (s *ResponseService) ValidateSection(ctx context.Context, id, sectionID string) (engine.FormResult, error) {
	response, template, err := s.load(ctx, id)
	if err != nil {
		return engine.FormResult{}, err
	}
	section, ok := template.Section(sectionID)
	if !ok {
		return engine.FormResult{}, util.ErrSectionNotFound
	}
	visible := engine.VisibleQuestions(section.Questions, response.Answers)
	return engine.ValidateForm(visible, response.Answers), nil
}

// Submit 校验全部可见题目，通过后计分并标记完成
func (s *ResponseService) Submit(ctx context.Context, id string) (*model.Response, error) {
	ctx, span := tracing.StartSpan(ctx, "ResponseService.Submit")
	defer span.End()
	span.SetAttributes(attribute.String("response.id", id))

	var (
		template *model.Template
		category engine.Category
		score    engine.TemplateScore
	)
	response, err := s.mutate(ctx, id, func(response *model.Response) error {
		var err error
		template, err = s.templates.GetTemplate(ctx, response.TemplateID)
		if err != nil {
			return err
		}
		span.SetAttributes(attribute.String("template.id", template.ID))

		visible := engine.VisibleInTemplate(template, response.Answers)
		result := engine.ValidateForm(visible, response.Answers)
		if !result.IsValid {
			monitoring.ObserveValidationFailure(template.ID)
			span.SetStatus(codes.Error, "validation failed")
			logger.Log.Info("Response submission rejected",
				zap.String("responseId", id),
				zap.Int("invalidQuestions", len(result.FirstErrors())),
			)
			return &ValidationFailedError{Result: result}
		}

		_, scoreSpan := tracing.StartSpan(ctx, "engine.ScoreTemplate")
		score = engine.ScoreTemplate(template, response.Answers)
		category = engine.Categorize(score.Percentage)
		scoreSpan.SetAttributes(
			attribute.Float64("score.percentage", score.Percentage),
			attribute.String("score.category", category.Label),
		)
		scoreSpan.End()

		completedAt := s.now()
		response.Score = &model.ScoreResult{
			Score:      score.Score,
			MaxScore:   score.MaxScore,
			Percentage: score.Percentage,
			Category:   category.Label,
			Color:      category.Color,
		}
		response.Status = model.StatusCompleted
		response.CompletedAt = &completedAt
		return nil
	})
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	monitoring.ObserveSubmission(template.ID, category.Label, score.Percentage)
	logger.Log.Info("Response submitted",
		zap.String("responseId", id),
		zap.String("templateId", template.ID),
		zap.Float64("score", score.Score),
		zap.Float64("maxScore", score.MaxScore),
		zap.String("category", category.Label),
	)
	return response, nil
}

// AttachFile 上传附件并把答案设为 {url, name, size, mimeType}
func (s *ResponseService) AttachFile(ctx context.Context, id, questionID, filename string, reader io.Reader, size int64) (*model.Response, error) {
	response, template, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if response.Status == model.StatusCompleted {
		return nil, util.ErrResponseCompleted
	}
	question, ok := template.Question(questionID)
	if !ok {
		return nil, util.ErrQuestionNotFound
	}
	if !question.Type.Attachable() {
		return nil, util.ErrNotAttachable
	}
	if size > util.MaxAttachmentSize {
		return nil, fmt.Errorf("%w: file exceeds %d bytes", util.ErrInvalidAttachment, util.MaxAttachmentSize)
	}

	var head bytes.Buffer
	mimeType, err := util.ValidateMimeType(io.TeeReader(reader, &head), util.AllowedAttachmentTypes(question))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", util.ErrInvalidAttachment, err)
	}

	key := AttachmentKey(id, questionID, filename)
	url, err := s.storage.Upload(ctx, key, io.MultiReader(&head, reader), size, mimeType)
	if err != nil {
		return nil, fmt.Errorf("upload attachment: %w", err)
	}

	blob := model.Blob(map[string]any{
		"url":      url,
		"name":     filename,
		"size":     size,
		"mimeType": mimeType,
	})
	logger.Log.Info("Attachment uploaded",
		zap.String("responseId", id),
		zap.String("questionId", questionID),
		zap.String("key", key),
	)
	return s.SetAnswer(ctx, id, questionID, blob)
}
