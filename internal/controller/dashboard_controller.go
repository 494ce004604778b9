package controller

import (
	"questionnaire_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type DashboardController struct {
	service DashboardAPI
}

func NewDashboardController(s DashboardAPI) *DashboardController {
	return &DashboardController{service: s}
}

// GetDashboard godoc
// @Summary 仪表盘统计
// @Tags 仪表盘
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=service.DashboardStats}
// @Router /api/dashboard [get]
func (c *DashboardController) GetDashboard(ctx *gin.Context) {
	stats, err := c.service.Stats(ctx.Request.Context())
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, stats)
}
