package controller

import (
	"lingua_edu_backend/internal/model"
	"lingua_edu_backend/internal/repository"
	"lingua_edu_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type CatalogController struct {
	Catalog *repository.CatalogRepository
}

func NewCatalogController(catalog *repository.CatalogRepository) *CatalogController {
	return &CatalogController{Catalog: catalog}
}

type catalogResponse struct {
	Subjects []model.Subject `json:"subjects"`
}

// @Summary 主题目录
// @Description 重新扫描内容目录并返回全部主题，新增的内容文件会被载入
// @Tags 内容
// @Produce json
// @Success 200 {object} catalogResponse
// @Router /api/catalog [get]
func (c *CatalogController) GetCatalog(ctx *gin.Context) {
	if err := c.Catalog.Load(); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.OK(ctx, catalogResponse{Subjects: c.Catalog.Subjects()})
}
