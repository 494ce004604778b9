package controller

import (
	"questionnaire_backend/internal/engine"
	"questionnaire_backend/internal/model"
	"questionnaire_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// EngineController 无状态的引擎接口，不读写数据库
type EngineController struct{}

func NewEngineController() *EngineController {
	return &EngineController{}
}

type EngineRequest struct {
	Template  model.Template `json:"template"`
	Answers   model.Answers  `json:"answers"`
	SectionID string         `json:"sectionId"`
}

type EngineValidationResult struct {
	engine.FormResult
	Errors map[string]string `json:"errors"`
}

func bindEngineRequest(ctx *gin.Context) (*EngineRequest, bool) {
	var req EngineRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return nil, false
	}
	if err := req.Template.Validate(); err != nil {
		util.BadRequest(ctx, "invalid template: "+err.Error())
		return nil, false
	}
	if req.Answers == nil {
		req.Answers = model.Answers{}
	}
	return &req, true
}

// Visibility godoc
// @Summary 计算可见题目
// @Description 指定 sectionId 时只返回该分节
// @Tags 引擎
// @Accept json
// @Produce json
// @Param body body EngineRequest true "模板与答案"
// @Success 200 {object} util.Response{data=[]engine.SectionVisibility}
// @Router /api/engine/visibility [post]
func (c *EngineController) Visibility(ctx *gin.Context) {
	req, ok := bindEngineRequest(ctx)
	if !ok {
		return
	}

	all := engine.VisibleByTemplate(&req.Template, req.Answers)
	if req.SectionID == "" {
		util.Success(ctx, all)
		return
	}
	for _, s := range all {
		if s.SectionID == req.SectionID {
			util.Success(ctx, []engine.SectionVisibility{s})
			return
		}
	}
	renderError(ctx, util.ErrSectionNotFound)
}

// Validate godoc
// @Summary 校验答案（仅可见题目）
// @Tags 引擎
// @Accept json
// @Produce json
// @Param body body EngineRequest true "模板与答案"
// @Success 200 {object} util.Response{data=EngineValidationResult}
// @Router /api/engine/validate [post]
func (c *EngineController) Validate(ctx *gin.Context) {
	req, ok := bindEngineRequest(ctx)
	if !ok {
		return
	}

	result, found := engine.ValidateVisible(&req.Template, req.Answers, req.SectionID)
	if !found {
		renderError(ctx, util.ErrSectionNotFound)
		return
	}
	util.Success(ctx, EngineValidationResult{FormResult: result, Errors: result.FirstErrors()})
}

// Score godoc
// @Summary 计算得分与等级
// @Tags 引擎
// @Accept json
// @Produce json
// @Param body body EngineRequest true "模板与答案"
// @Success 200 {object} util.Response{data=engine.ScoreReport}
// @Router /api/engine/score [post]
func (c *EngineController) Score(ctx *gin.Context) {
	req, ok := bindEngineRequest(ctx)
	if !ok {
		return
	}
	util.Success(ctx, engine.Report(&req.Template, req.Answers))
}
