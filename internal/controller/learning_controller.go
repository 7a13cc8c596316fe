package controller

import (
	"errors"
	"strconv"

	"lingua_edu_backend/internal/service"
	"lingua_edu_backend/internal/util"
	"lingua_edu_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
)

type LearningController struct {
	Service *service.LearningService
}

func NewLearningController(svc *service.LearningService) *LearningController {
	return &LearningController{Service: svc}
}

type nextItemResponse struct {
	Item *service.ItemView `json:"item"`
}

// @Summary 获取下一道题
// @Description 按主题和模式（learn/practice/review）选出下一道题，测验进行中时忽略模式
// @Tags 学习
// @Produce json
// @Param subjectId query string true "主题ID"
// @Param mode query string false "出题模式" default(review)
// @Success 200 {object} nextItemResponse
// @Failure 400 {object} util.ErrorBody
// @Failure 404 {object} util.ErrorBody
// @Router /api/items/next [get]
func (c *LearningController) NextItem(ctx *gin.Context) {
	subjectID := ctx.Query("subjectId")
	mode := ctx.DefaultQuery("mode", service.ModeReview)
	if subjectID == "" {
		util.BadRequest(ctx, util.ErrSubjectRequired.Error())
		return
	}

	view, err := c.Service.NextItem(subjectID, mode)
	if err != nil {
		if errors.Is(err, util.ErrNoItems) {
			util.NotFound(ctx, util.ErrNoItems.Error())
			return
		}
		util.LogInternalError(ctx, err)
		return
	}

	util.OK(ctx, nextItemResponse{Item: view})
}

// @Summary 提交答案
// @Description 判题并更新复习调度、答题统计、XP 和课节解锁状态
// @Tags 学习
// @Accept json
// @Produce json
// @Param body body service.SubmitRequest true "作答内容"
// @Success 200 {object} service.SubmitResult
// @Failure 400 {object} util.ErrorBody
// @Failure 404 {object} util.ErrorBody
// @Router /api/submit [post]
func (c *LearningController) Submit(ctx *gin.Context) {
	var req service.SubmitRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, "Invalid JSON")
		return
	}
	if req.ItemID == "" {
		util.BadRequest(ctx, util.ErrItemRequired.Error())
		return
	}

	result, err := c.Service.Submit(req)
	if err != nil {
		if errors.Is(err, util.ErrUnknownItem) {
			util.NotFound(ctx, util.ErrUnknownItem.Error())
			return
		}
		util.LogInternalError(ctx, err)
		return
	}

	monitoring.AnswerCounter.WithLabelValues(strconv.FormatBool(result.Correct)).Inc()
	util.OK(ctx, result)
}
