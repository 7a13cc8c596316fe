package controller

import (
	"lingua_edu_backend/internal/config"
	"lingua_edu_backend/internal/model"
	"lingua_edu_backend/internal/service"
	"lingua_edu_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type UserController struct {
	Service *service.UserService
	Config  *config.Config
}

func NewUserController(svc *service.UserService, cfg *config.Config) *UserController {
	return &UserController{Service: svc, Config: cfg}
}

type userResponse struct {
	User model.UserProfile `json:"user"`
}

type userUpdateResponse struct {
	OK   bool              `json:"ok"`
	User model.UserProfile `json:"user"`
}

// @Summary 获取用户档案
// @Tags 用户
// @Produce json
// @Success 200 {object} userResponse
// @Router /api/user [get]
func (c *UserController) GetUser(ctx *gin.Context) {
	util.OK(ctx, userResponse{User: c.Service.Profile()})
}

// @Summary 更新用户档案
// @Description 部分更新：昵称、称呼、语法性别、偏好，缺省字段保持原值
// @Tags 用户
// @Accept json
// @Produce json
// @Param body body service.ProfileUpdate true "要更新的字段"
// @Success 200 {object} userUpdateResponse
// @Failure 400 {object} util.ErrorBody
// @Router /api/user [post]
func (c *UserController) UpdateUser(ctx *gin.Context) {
	var upd service.ProfileUpdate
	if err := ctx.ShouldBindJSON(&upd); err != nil {
		util.BadRequest(ctx, "Invalid JSON")
		return
	}
	user, err := c.Service.UpdateProfile(upd)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.OK(ctx, userUpdateResponse{OK: true, User: user})
}

// @Summary 用户统计
// @Description 用户档案、指定主题（缺省取最近使用主题）的答题统计和徽章
// @Tags 用户
// @Produce json
// @Param subjectId query string false "主题ID"
// @Success 200 {object} service.StatsView
// @Router /api/stats [get]
func (c *UserController) GetStats(ctx *gin.Context) {
	util.OK(ctx, c.Service.Stats(ctx.Query("subjectId")))
}

// @Summary 运行环境
// @Tags 系统
// @Produce json
// @Success 200 {object} map[string]string
// @Router /api/env [get]
func (c *UserController) GetEnv(ctx *gin.Context) {
	util.OK(ctx, gin.H{"env": c.Config.Server.Mode})
}

// @Summary 重置全部进度
// @Description 清空进度、复习记录、XP、课节和测验状态并立即持久化
// @Tags 用户
// @Produce json
// @Success 200 {object} map[string]bool
// @Router /api/reset [post]
func (c *UserController) Reset(ctx *gin.Context) {
	if err := c.Service.Reset(); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.OK(ctx, gin.H{"ok": true})
}
