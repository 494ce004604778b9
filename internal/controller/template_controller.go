package controller

import (
	"questionnaire_backend/internal/service"
	"questionnaire_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type TemplateController struct {
	service TemplateAPI
}

func NewTemplateController(s TemplateAPI) *TemplateController {
	return &TemplateController{service: s}
}

// CreateTemplate godoc
// @Summary 创建问卷模板
// @Tags 模板
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body service.TemplateRequest true "模板内容"
// @Success 201 {object} util.Response{data=model.Template}
// @Failure 400 {object} util.Response
// @Router /api/templates [post]
func (c *TemplateController) CreateTemplate(ctx *gin.Context) {
	var req service.TemplateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	template, err := c.service.CreateTemplate(ctx.Request.Context(), &req)
	if err != nil {
		renderError(ctx, err)
		return
	}
	util.Created(ctx, template)
}

// ListTemplates godoc
// @Summary 模板列表
// @Tags 模板
// @Produce json
// @Security ApiKeyAuth
// @Param page query int false "页码" default(1)
// @Param limit query int false "每页条数" default(20)
// @Param category query string false "分类"
// @Param q query string false "按名称、描述、标签搜索"
// @Success 200 {object} util.Response{data=util.PageResponse}
// @Router /api/templates [get]
func (c *TemplateController) ListTemplates(ctx *gin.Context) {
	page, limit := util.ParsePagination(ctx.Query("page"), ctx.Query("limit"))

	templates, total, err := c.service.ListTemplates(ctx.Request.Context(), page, limit, ctx.Query("category"), ctx.Query("q"))
	if err != nil {
		renderError(ctx, err)
		return
	}
	util.Success(ctx, pageList(templates, total, page, limit))
}

// GetTemplate godoc
// @Summary 获取模板详情
// @Tags 模板
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "模板ID"
// @Success 200 {object} util.Response{data=model.Template}
// @Failure 404 {object} util.Response
// @Router /api/templates/{id} [get]
func (c *TemplateController) GetTemplate(ctx *gin.Context) {
	template, err := c.service.GetTemplate(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		renderError(ctx, err)
		return
	}
	util.Success(ctx, template)
}

// UpdateTemplate godoc
// @Summary 更新模板（版本号自动加一）
// @Tags 模板
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "模板ID"
// @Param body body service.TemplateRequest true "模板内容"
// @Success 200 {object} util.Response{data=model.Template}
// @Router /api/templates/{id} [put]
func (c *TemplateController) UpdateTemplate(ctx *gin.Context) {
	var req service.TemplateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	template, err := c.service.UpdateTemplate(ctx.Request.Context(), ctx.Param("id"), &req)
	if err != nil {
		renderError(ctx, err)
		return
	}
	util.Success(ctx, template)
}

// DeleteTemplate godoc
// @Summary 删除模板
// @Tags 模板
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "模板ID"
// @Success 200 {object} util.Response
// @Router /api/templates/{id} [delete]
func (c *TemplateController) DeleteTemplate(ctx *gin.Context) {
	if err := c.service.DeleteTemplate(ctx.Request.Context(), ctx.Param("id")); err != nil {
		renderError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// DuplicateTemplate godoc
// @Summary 复制模板
// @Tags 模板
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "模板ID"
// @Success 201 {object} util.Response{data=model.Template}
// @Router /api/templates/{id}/duplicate [post]
func (c *TemplateController) DuplicateTemplate(ctx *gin.Context) {
	template, err := c.service.DuplicateTemplate(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		renderError(ctx, err)
		return
	}
	util.Created(ctx, template)
}

// ListRevisions godoc
// @Summary 模板修订历史
// @Tags 模板
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "模板ID"
// @Success 200 {object} util.Response{data=[]model.TemplateRevision}
// @Router /api/templates/{id}/revisions [get]
func (c *TemplateController) ListRevisions(ctx *gin.Context) {
	revisions, err := c.service.ListRevisions(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		renderError(ctx, err)
		return
	}
	util.Success(ctx, revisions)
}

// SyncSampleTemplates godoc
// @Summary 导入内置示例模板（已存在的跳过）
// @Tags 模板
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response
// @Router /api/templates/sync-samples [post]
func (c *TemplateController) SyncSampleTemplates(ctx *gin.Context) {
	created, err := c.service.SyncSampleTemplates(ctx.Request.Context())
	if err != nil {
		renderError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"created": created})
}
