package app

import (
	"questionnaire_backend/docs"
	"questionnaire_backend/internal/config"
	"questionnaire_backend/internal/middleware"
	"questionnaire_backend/internal/model"
	"questionnaire_backend/internal/util"
	"questionnaire_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func registerRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	// 1. 公共路由(无需登录)
	registerPublicRoutes(router, c)

	// 2. 需要授权的路由
	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg.JWT.Secret))
	{
		registerRespondentRoutes(authGroup, c)
		registerAuthorRoutes(authGroup, c)
	}

	// 3. 本地存储的附件，同样需要登录；<img> 等无法带请求头的场景使用 ?token=
	if cfg.Storage.Type == util.StorageLocal {
		uploads := router.Group("/uploads", middleware.AuthMiddleware(cfg.JWT.Secret))
		uploads.Static("/", cfg.Storage.LocalPath)
	}
}

func registerPublicRoutes(router *gin.Engine, c *controllers) {
	router.GET("/api/health", c.health.HealthCheck)

	engine := router.Group("/api/engine")
	{
		engine.POST("/visibility", c.engine.Visibility)
		engine.POST("/validate", c.engine.Validate)
		engine.POST("/score", c.engine.Score)
	}
}

// registerRespondentRoutes 任意已登录角色可访问
func registerRespondentRoutes(group *gin.RouterGroup, c *controllers) {
	group.GET("/templates", c.template.ListTemplates)
	group.GET("/templates/:id", c.template.GetTemplate)
	group.GET("/templates/:id/revisions", c.template.ListRevisions)
	group.POST("/templates/:id/responses", c.response.StartResponse)

	responses := group.Group("/responses")
	{
		responses.GET("", c.response.ListResponses)
		responses.GET("/:id", c.response.GetResponse)
		responses.DELETE("/:id", c.response.DeleteResponse)
		responses.PUT("/:id/answers/:questionId", c.response.SetAnswer)
		responses.POST("/:id/draft", c.response.SaveDraft)
		responses.GET("/:id/sections/:sectionId/visible", c.response.VisibleQuestions)
		responses.POST("/:id/sections/:sectionId/validate", c.response.ValidateSection)
		responses.POST("/:id/submit", c.response.Submit)
		responses.POST("/:id/attachments/:questionId", c.response.AttachFile)
	}

	group.GET("/dashboard", c.dashboard.GetDashboard)
}

// registerAuthorRoutes 模板管理，仅作者和管理员
func registerAuthorRoutes(group *gin.RouterGroup, c *controllers) {
	authors := group.Group("/templates")
	authors.Use(middleware.RoleMiddleware(model.RoleAuthor))
	{
		authors.POST("", c.template.CreateTemplate)
		authors.POST("/sync-samples", c.template.SyncSampleTemplates)
		authors.PUT("/:id", c.template.UpdateTemplate)
		authors.DELETE("/:id", c.template.DeleteTemplate)
		authors.POST("/:id/duplicate", c.template.DuplicateTemplate)
	}
}
