package controller

import (
	"lingua_edu_backend/internal/repository"
	"lingua_edu_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type HealthController struct {
	Catalog *repository.CatalogRepository
}

func NewHealthController(catalog *repository.CatalogRepository) *HealthController {
	return &HealthController{Catalog: catalog}
}

// @Summary 健康检查
// @Description 检查服务状态
// @Tags 系统
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /api/health [get]
func (c *HealthController) HealthCheck(ctx *gin.Context) {
	util.OK(ctx, gin.H{
		"status":   "ok",
		"subjects": len(c.Catalog.Subjects()),
	})
}
