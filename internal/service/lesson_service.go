package service

import (
	"lingua_edu_backend/internal/model"
	"lingua_edu_backend/internal/repository"
)

const (
	// lessonAccuracyGate 进入课程测验的正确数门槛：累计答对数 / 题目总数 ≥ 0.8
	lessonAccuracyGate = 0.8

	// assessmentMinAttempts / assessmentPassRate 测验通过条件：至少 5 题且正确率 ≥ 0.8
	assessmentMinAttempts = 5
	assessmentPassRate    = 0.8
)

// LessonService 课节解锁状态机。只有属于课程的主题参与：
// 全部题目见过且累计正确率达标 → 开始测验；测验达到题数且通过率达标 →
// 完成课节并解锁下一课。测验题数够而通过率不足时保持测验进行中，
// 后续每次作答重新评估，没有显式的失败重置
type LessonService struct {
	catalog *repository.CatalogRepository
	state   *repository.StateRepository
}

func NewLessonService(catalog *repository.CatalogRepository, state *repository.StateRepository) *LessonService {
	return &LessonService{catalog: catalog, state: state}
}

// ReadyForAssessment 是否满足开始测验的条件。已在测验中时永远为 false，
// 保证同一主题不会重复触发
func (s *LessonService) ReadyForAssessment(st *model.State, subjectID string) bool {
	subject, ok := s.catalog.Subject(subjectID)
	if !ok || !subject.IsLesson() {
		return false
	}
	items := s.catalog.SubjectItems(subjectID)
	if len(items) == 0 {
		return false
	}

	for _, it := range items {
		if !st.Srs[it.ID].Seen() {
			return false
		}
	}

	progress, ok := st.Progress[subjectID]
	if !ok {
		return false
	}
	if float64(progress.Correct)/float64(len(items)) < lessonAccuracyGate {
		return false
	}

	a := st.AssessmentState[subjectID]
	return a == nil || !a.IsInAssessment
}

// StartAssessment 初始化（或重置）测验状态并置为进行中
func (s *LessonService) StartAssessment(st *model.State, subjectID string) {
	st.AssessmentState[subjectID] = &model.AssessmentState{
		IsInAssessment: true,
		StartTime:      nowMillis(),
	}
}

// CheckCompletion 测验是否通过。通过时清掉进行中标记并返回 true，
// 计数器保留以供查看，直到下一次测验开始时覆盖
func (s *LessonService) CheckCompletion(st *model.State, subjectID string) bool {
	subject, ok := s.catalog.Subject(subjectID)
	if !ok || !subject.IsLesson() {
		return false
	}
	a := st.AssessmentState[subjectID]
	if a == nil || !a.IsInAssessment {
		return false
	}
	if a.AssessmentAttempts < assessmentMinAttempts {
		return false
	}
	if float64(a.AssessmentCorrect)/float64(a.AssessmentAttempts) < assessmentPassRate {
		return false
	}
	a.IsInAssessment = false
	return true
}

// CompleteLesson 把课节标记为已完成并解锁下一课，重复调用是幂等的
func (s *LessonService) CompleteLesson(st *model.State, courseID string, lessonNumber int) {
	progress := ensureLessonProgress(st, courseID)
	progress.CompletedLessons = appendUnique(progress.CompletedLessons, lessonNumber)
	progress.UnlockedLessons = appendUnique(progress.UnlockedLessons, lessonNumber+1)
}

// Progress 课程的课节进度，没有记录时返回默认值（只解锁第 1 课）
func (s *LessonService) Progress(courseID string) model.LessonProgress {
	result := model.LessonProgress{CompletedLessons: []int{}, UnlockedLessons: []int{1}}
	s.state.View(func(st *model.State) {
		if p, ok := st.LessonProgress[courseID]; ok {
			result.CompletedLessons = append([]int{}, p.CompletedLessons...)
			result.UnlockedLessons = append([]int{}, p.UnlockedLessons...)
		}
	})
	return result
}

// IsLessonUnlocked 课节是否已解锁，第 1 课永远解锁
func (s *LessonService) IsLessonUnlocked(st *model.State, courseID string, lessonNumber int) bool {
	p, ok := st.LessonProgress[courseID]
	if !ok {
		return lessonNumber == 1
	}
	for _, n := range p.UnlockedLessons {
		if n == lessonNumber {
			return true
		}
	}
	return false
}

func ensureLessonProgress(st *model.State, courseID string) *model.LessonProgress {
	p, ok := st.LessonProgress[courseID]
	if !ok {
		p = &model.LessonProgress{CompletedLessons: []int{}, UnlockedLessons: []int{1}}
		st.LessonProgress[courseID] = p
	}
	return p
}

func appendUnique(list []int, n int) []int {
	for _, v := range list {
		if v == n {
			return list
		}
	}
	return append(list, n)
}
