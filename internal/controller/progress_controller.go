package controller

import (
	"lingua_edu_backend/internal/model"
	"lingua_edu_backend/internal/service"
	"lingua_edu_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ProgressController struct {
	Lessons  *service.LessonService
	Progress *service.ProgressService
}

func NewProgressController(lessons *service.LessonService, progress *service.ProgressService) *ProgressController {
	return &ProgressController{Lessons: lessons, Progress: progress}
}

type lessonProgressResponse struct {
	Progress model.LessonProgress `json:"progress"`
}

// @Summary 课程进度
// @Description 课程已完成和已解锁的课节，第 1 课默认解锁
// @Tags 进度
// @Produce json
// @Param courseId query string true "课程ID"
// @Success 200 {object} lessonProgressResponse
// @Failure 400 {object} util.ErrorBody
// @Router /api/lesson-progress [get]
func (c *ProgressController) LessonProgress(ctx *gin.Context) {
	courseID := ctx.Query("courseId")
	if courseID == "" {
		util.BadRequest(ctx, util.ErrCourseRequired.Error())
		return
	}
	util.OK(ctx, lessonProgressResponse{Progress: c.Lessons.Progress(courseID)})
}

// @Summary 生词掌握进度
// @Description 主题的生词掌握汇总、逐词明细和是否满足进入下一课的词汇门槛
// @Tags 进度
// @Produce json
// @Param subjectId query string true "主题ID"
// @Success 200 {object} service.VocabularyReport
// @Failure 400 {object} util.ErrorBody
// @Router /api/vocabulary-progress [get]
func (c *ProgressController) VocabularyProgress(ctx *gin.Context) {
	subjectID := ctx.Query("subjectId")
	if subjectID == "" {
		util.BadRequest(ctx, util.ErrSubjectRequired.Error())
		return
	}
	util.OK(ctx, c.Progress.Report(subjectID))
}
