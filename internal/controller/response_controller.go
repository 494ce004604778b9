package controller

import (
	"questionnaire_backend/internal/model"
	"questionnaire_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ResponseController struct {
	service ResponseAPI
}

func NewResponseController(s ResponseAPI) *ResponseController {
	return &ResponseController{service: s}
}

type SetAnswerRequest struct {
	Value model.AnswerValue `json:"value" swaggertype:"object"`
}

// authorize 答题人只能访问自己的答卷，作者和管理员不受限
func (c *ResponseController) authorize(ctx *gin.Context) bool {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return false
	}
	if user.Role != model.RoleRespondent {
		return true
	}

	response, err := c.service.GetResponse(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		renderError(ctx, err)
		return false
	}
	if response.RespondentID != user.Subject {
		util.Forbidden(ctx)
		return false
	}
	return true
}

// StartResponse godoc
// @Summary 开始填写问卷
// @Tags 答卷
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "模板ID"
// @Success 201 {object} util.Response{data=model.Response}
// @Router /api/templates/{id}/responses [post]
func (c *ResponseController) StartResponse(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	response, err := c.service.StartResponse(ctx.Request.Context(), ctx.Param("id"), user.Subject)
	if err != nil {
		renderError(ctx, err)
		return
	}
	util.Created(ctx, response)
}

// ListResponses godoc
// @Summary 答卷列表
// @Description 答题人只能看到自己的答卷
// @Tags 答卷
// @Produce json
// @Security ApiKeyAuth
// @Param templateId query string false "模板ID"
// @Param respondentId query string false "答题人（作者/管理员可用）"
// @Param status query string false "状态 in_progress/draft/completed"
// @Param page query int false "页码" default(1)
// @Param limit query int false "每页条数" default(20)
// @Success 200 {object} util.Response{data=util.PageResponse}
// @Router /api/responses [get]
func (c *ResponseController) ListResponses(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	respondentID := ctx.Query("respondentId")
	if user.Role == model.RoleRespondent {
		respondentID = user.Subject
	}
	page, limit := util.ParsePagination(ctx.Query("page"), ctx.Query("limit"))

	responses, total, err := c.service.ListResponses(ctx.Request.Context(),
		ctx.Query("templateId"), respondentID, model.ResponseStatus(ctx.Query("status")), page, limit)
	if err != nil {
		renderError(ctx, err)
		return
	}
	util.Success(ctx, pageList(responses, total, page, limit))
}

// GetResponse godoc
// @Summary 获取答卷
// @Tags 答卷
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "答卷ID"
// @Success 200 {object} util.Response{data=model.Response}
// @Router /api/responses/{id} [get]
func (c *ResponseController) GetResponse(ctx *gin.Context) {
	if !c.authorize(ctx) {
		return
	}
	response, err := c.service.GetResponse(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		renderError(ctx, err)
		return
	}
	util.Success(ctx, response)
}

// DeleteResponse godoc
// @Summary 删除答卷
// @Tags 答卷
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "答卷ID"
// @Success 200 {object} util.Response
// @Router /api/responses/{id} [delete]
func (c *ResponseController) DeleteResponse(ctx *gin.Context) {
	if !c.authorize(ctx) {
		return
	}
	if err := c.service.DeleteResponse(ctx.Request.Context(), ctx.Param("id")); err != nil {
		renderError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// SetAnswer godoc
// @Summary 保存单题答案
// @Description value 为 null 或缺省时清除答案
// @Tags 答卷
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "答卷ID"
// @Param questionId path string true "题目ID"
// @Param body body SetAnswerRequest true "答案"
// @Success 200 {object} util.Response{data=model.Response}
// @Router /api/responses/{id}/answers/{questionId} [put]
func (c *ResponseController) SetAnswer(ctx *gin.Context) {
	if !c.authorize(ctx) {
		return
	}

	var req SetAnswerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	response, err := c.service.SetAnswer(ctx.Request.Context(), ctx.Param("id"), ctx.Param("questionId"), req.Value)
	if err != nil {
		renderError(ctx, err)
		return
	}
	util.Success(ctx, response)
}

// SaveDraft godoc
// @Summary 保存草稿
// @Tags 答卷
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "答卷ID"
// @Success 200 {object} util.Response{data=model.Response}
// @Router /api/responses/{id}/draft [post]
func (c *ResponseController) SaveDraft(ctx *gin.Context) {
	if !c.authorize(ctx) {
		return
	}
	response, err := c.service.SaveDraft(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		renderError(ctx, err)
		return
	}
	util.Success(ctx, response)
}

// VisibleQuestions godoc
// @Summary 当前答案下某分节的可见题目
// @Tags 答卷
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "答卷ID"
// @Param sectionId path string true "分节ID"
// @Success 200 {object} util.Response{data=[]model.Question}
// @Router /api/responses/{id}/sections/{sectionId}/visible [get]
func (c *ResponseController) VisibleQuestions(ctx *gin.Context) {
	if !c.authorize(ctx) {
		return
	}
	questions, err := c.service.VisibleQuestions(ctx.Request.Context(), ctx.Param("id"), ctx.Param("sectionId"))
	if err != nil {
		renderError(ctx, err)
		return
	}
	util.Success(ctx, questions)
}

// ValidateSection godoc
// @Summary 校验某分节（翻页前调用）
// @Tags 答卷
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "答卷ID"
// @Param sectionId path string true "分节ID"
// @Success 200 {object} util.Response{data=engine.FormResult}
// @Router /api/responses/{id}/sections/{sectionId}/validate [post]
func (c *ResponseController) ValidateSection(ctx *gin.Context) {
	if !c.authorize(ctx) {
		return
	}
	result, err := c.service.ValidateSection(ctx.Request.Context(), ctx.Param("id"), ctx.Param("sectionId"))
	if err != nil {
		renderError(ctx, err)
		return
	}
	util.Success(ctx, result)
}

// Submit godoc
// @Summary 提交答卷
// @Description 校验全部可见题目，通过后计分；校验失败返回 422 及每题错误
// @Tags 答卷
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "答卷ID"
// @Success 200 {object} util.Response{data=model.Response}
// @Failure 422 {object} util.Response{data=ValidationErrorData}
// @Failure 409 {object} util.Response
// @Router /api/responses/{id}/submit [post]
func (c *ResponseController) Submit(ctx *gin.Context) {
	if !c.authorize(ctx) {
		return
	}
	response, err := c.service.Submit(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		renderError(ctx, err)
		return
	}
	util.Success(ctx, response)
}

// AttachFile godoc
// @Summary 上传附件（照片、签名、文件题）
// @Tags 答卷
// @Accept multipart/form-data
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "答卷ID"
// @Param questionId path string true "题目ID"
// @Param file formData file true "文件"
// @Success 200 {object} util.Response{data=model.Response}
// @Router /api/responses/{id}/attachments/{questionId} [post]
func (c *ResponseController) AttachFile(ctx *gin.Context) {
	if !c.authorize(ctx) {
		return
	}

	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		util.BadRequest(ctx, "file is required")
		return
	}
	if fileHeader.Size > util.MaxAttachmentSize {
		util.BadRequest(ctx, "file is too large")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	defer file.Close()

	response, err := c.service.AttachFile(ctx.Request.Context(), ctx.Param("id"), ctx.Param("questionId"), fileHeader.Filename, file, fileHeader.Size)
	if err != nil {
		renderError(ctx, err)
		return
	}
	util.Success(ctx, response)
}
