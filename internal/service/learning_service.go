package service

import (
	"strings"

	"lingua_edu_backend/internal/model"
	"lingua_edu_backend/internal/repository"
	"lingua_edu_backend/internal/util"
	"lingua_edu_backend/pkg/logger"

	"go.uber.org/zap"
)

// 发放入门徽章的分类
const (
	trackSpoken      = "spoken"
	trackProgramming = "programming"
)

// ItemView items/next 接口返回的题目视图。choices/hints/data 缺省时输出 null
type ItemView struct {
	ID           string          `json:"id"`
	SubjectID    string          `json:"subjectId"`
	Track        string          `json:"track"`
	Type         string          `json:"type"`
	Prompt       string          `json:"prompt"`
	Answer       model.AnswerSet `json:"answer"`
	Choices      []string        `json:"choices"`
	Hints        []string        `json:"hints"`
	Data         map[string]any  `json:"data"`
	Due          int64           `json:"due"`
	Mode         string          `json:"mode"`
	IsNew        bool            `json:"isNew"`
	IsAssessment bool            `json:"isAssessment"`
}

// SubmitRequest submit 接口的请求体
type SubmitRequest struct {
	ItemID   string `json:"itemId"`
	Response string `json:"response"`
	HintUsed bool   `json:"hintUsed"`
}

// AssessmentProgress 测验进行中的实时进度
type AssessmentProgress struct {
	Attempts    int `json:"attempts"`
	Correct     int `json:"correct"`
	SuccessRate int `json:"successRate"` // 取整的百分比
	Remaining   int `json:"remaining"`   // 距最少题数还差几题
}

// SubmitResult submit 接口的响应体。assessmentProgress 仅在本次提交后
// 测验仍在进行中时出现
type SubmitResult struct {
	Correct            bool                `json:"correct"`
	Answer             model.AnswerSet     `json:"answer"`
	User               model.UserProfile   `json:"user"`
	LessonCompleted    bool                `json:"lessonCompleted"`
	AssessmentStarted  bool                `json:"assessmentStarted"`
	AssessmentProgress *AssessmentProgress `json:"assessmentProgress,omitempty"`
}

// LearningService 答题主流程的编排：选题、判题、更新复习调度 / 答题统计 /
// 生词掌握 / 测验计数 / XP 与徽章 / 课节解锁，最后整体落盘。
// 全部读-改-写都在 StateRepository 的单次 Update 内完成
type LearningService struct {
	catalog     *repository.CatalogRepository
	state       *repository.StateRepository
	srs         *SrsService
	selector    *SelectorService
	progress    *ProgressService
	lessons     *LessonService
	achievement *AchievementService
}

func NewLearningService(
	catalog *repository.CatalogRepository,
	state *repository.StateRepository,
	srs *SrsService,
	selector *SelectorService,
	progress *ProgressService,
	lessons *LessonService,
	achievement *AchievementService,
) *LearningService {
	return &LearningService{
		catalog:     catalog,
		state:       state,
		srs:         srs,
		selector:    selector,
		progress:    progress,
		lessons:     lessons,
		achievement: achievement,
	}
}

// NextItem 选出主题下的下一道题。选题会惰性创建复习记录，
// 因此也作为一次状态更新执行并持久化
func (s *LearningService) NextItem(subjectID, mode string) (*ItemView, error) {
	var view *ItemView
	err := s.state.Update(func(st *model.State) error {
		sel := s.selector.NextItem(st, subjectID, mode)
		if sel == nil {
			return util.ErrNoItems
		}
		rec := s.srs.Ensure(st, sel.Item.ID)
		view = &ItemView{
			ID:           sel.Item.ID,
			SubjectID:    sel.Item.SubjectID,
			Track:        sel.Item.Track,
			Type:         sel.Item.Type,
			Prompt:       sel.Item.Prompt,
			Answer:       sel.Item.Answer,
			Choices:      sel.Item.Choices,
			Hints:        sel.Item.Hints,
			Data:         sel.Item.Data,
			Due:          rec.Due,
			Mode:         sel.Mode,
			IsNew:        sel.IsNew,
			IsAssessment: sel.IsAssessment,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return view, nil
}

// Submit 处理一次作答
func (s *LearningService) Submit(req SubmitRequest) (*SubmitResult, error) {
	item, ok := s.catalog.Item(req.ItemID)
	if !ok {
		return nil, util.ErrUnknownItem
	}

	var result SubmitResult
	err := s.state.Update(func(st *model.State) error {
		correct := s.checkAnswer(st, item, req.Response)

		s.srs.Schedule(st, item.ID, correct)
		s.progress.UpdateProgress(st, item.SubjectID, correct)
		s.achievement.UpdateStreak(st)

		if item.NewWord != "" {
			s.progress.UpdateVocabulary(st, item.SubjectID, item.NewWord, correct)
		}

		if a := st.AssessmentState[item.SubjectID]; a != nil && a.IsInAssessment {
			a.AssessmentAttempts++
			if correct {
				a.AssessmentCorrect++
			}
		}

		s.applyRewards(st, item, correct, req.HintUsed)

		lessonCompleted, assessmentStarted := s.applyGating(st, item.SubjectID)

		st.AppendLog(model.LogEvent{
			Ts:        nowMillis(),
			Type:      "answer",
			ItemID:    item.ID,
			SubjectID: item.SubjectID,
			Correct:   correct,
		})

		result = SubmitResult{
			Correct:           correct,
			Answer:            item.Answer.Map(func(v string) string { return util.PersonalizeAnswer(v, &st.User) }),
			User:              st.User,
			LessonCompleted:   lessonCompleted,
			AssessmentStarted: assessmentStarted,
		}
		if a := st.AssessmentState[item.SubjectID]; a != nil && a.IsInAssessment {
			result.AssessmentProgress = assessmentProgressOf(a)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Log.Debug("answer submitted",
		zap.String("itemId", item.ID),
		zap.Bool("correct", result.Correct))
	return &result, nil
}

// applyRewards 发放 XP 和里程碑徽章，用过提示时本题不给 XP
func (s *LearningService) applyRewards(st *model.State, item *model.Item, correct, hintUsed bool) {
	if hintUsed {
		return
	}
	if !correct {
		s.achievement.AddXP(st, XPIncorrect)
		return
	}
	s.achievement.AddXP(st, XPCorrect)
	if p := st.Progress[item.SubjectID]; p != nil && p.Correct == 10 {
		s.achievement.AwardBadge(st, BadgeFirst10Correct)
	}
	switch item.Track {
	case trackSpoken:
		s.achievement.AwardBadge(st, BadgePolyglotStarter)
	case trackProgramming:
		s.achievement.AwardBadge(st, BadgeCoderStarter)
	}
}

// applyGating 每次作答后评估课节状态机，先判完成再判是否该开始测验，
// 两者互斥，同一次提交最多触发一个转移
func (s *LearningService) applyGating(st *model.State, subjectID string) (lessonCompleted, assessmentStarted bool) {
	subject, ok := s.catalog.Subject(subjectID)
	if !ok || !subject.IsLesson() {
		return false, false
	}
	if s.lessons.CheckCompletion(st, subjectID) {
		s.lessons.CompleteLesson(st, subject.CourseID, subject.LessonNumber)
		return true, false
	}
	if s.lessons.ReadyForAssessment(st, subjectID) {
		s.lessons.StartAssessment(st, subjectID)
		return false, true
	}
	return false, false
}

// checkAnswer 按题型判题
func (s *LearningService) checkAnswer(st *model.State, item *model.Item, response string) bool {
	switch item.Type {
	case model.ItemTypeMCQ:
		return item.Answer.IsSingle() && response == item.Answer.First()
	case model.ItemTypeInput, model.ItemTypeListen, model.ItemTypeGraph:
		want := normalize(response)
		for _, answer := range item.Answer.Values() {
			if normalize(util.PersonalizeAnswer(answer, &st.User)) == want {
				return true
			}
		}
		return false
	case model.ItemTypeCode:
		if len(item.CheckTokens) > 0 {
			for _, tok := range item.CheckTokens {
				if !strings.Contains(response, tok) {
					return false
				}
			}
			return true
		}
		// 没有定义检查规则时接受任何非空回答
		return response != ""
	default:
		return false
	}
}

func normalize(v string) string {
	return strings.ToLower(strings.TrimSpace(v))
}

func assessmentProgressOf(a *model.AssessmentState) *AssessmentProgress {
	rate := 0
	if a.AssessmentAttempts > 0 {
		rate = int(float64(a.AssessmentCorrect)/float64(a.AssessmentAttempts)*100 + 0.5)
	}
	remaining := assessmentMinAttempts - a.AssessmentAttempts
	if remaining < 0 {
		remaining = 0
	}
	return &AssessmentProgress{
		Attempts:    a.AssessmentAttempts,
		Correct:     a.AssessmentCorrect,
		SuccessRate: rate,
		Remaining:   remaining,
	}
}
