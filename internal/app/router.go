package app

import (
	"lingua_edu_backend/docs"
	"lingua_edu_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers) {
	docs.SwaggerInfo.BasePath = "/"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	api := router.Group("/api")
	{
		// 系统
		api.GET("/health", c.health.HealthCheck)
		api.GET("/env", c.user.GetEnv)

		// 内容
		api.GET("/catalog", c.catalog.GetCatalog)

		// 用户
		api.GET("/user", c.user.GetUser)
		api.POST("/user", c.user.UpdateUser)
		api.GET("/stats", c.user.GetStats)
		api.POST("/reset", c.user.Reset)

		// 学习
		api.GET("/items/next", c.learning.NextItem)
		api.POST("/submit", c.learning.Submit)

		// 进度
		api.GET("/lesson-progress", c.progress.LessonProgress)
		api.GET("/vocabulary-progress", c.progress.VocabularyProgress)
	}
}
