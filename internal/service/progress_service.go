package service

import (
	"math"

	"lingua_edu_backend/internal/model"
	"lingua_edu_backend/internal/repository"
)

const (
	// masteryMinAttempts / masteryAccuracy 生词掌握判定：至少 3 次作答且正确率 ≥ 80%
	masteryMinAttempts = 3
	masteryAccuracy    = 0.8

	// requiredVocabularyMastery 进入下一课所需的已掌握生词数，固定常量，与主题大小无关
	requiredVocabularyMastery = 8
)

// MasterySummary 主题的生词掌握汇总
type MasterySummary struct {
	Mastered   int `json:"mastered"`
	Total      int `json:"total"`
	Percentage int `json:"percentage"`
}

// VocabularyReport vocabulary-progress 接口的响应体
type VocabularyReport struct {
	Mastery            MasterySummary                      `json:"mastery"`
	Vocabulary         map[string]*model.VocabularyRecord  `json:"vocabulary"`
	ReadyForNextLesson bool                                `json:"readyForNextLesson"`
}

// ProgressService 主题答题计数与生词掌握统计
type ProgressService struct {
	state *repository.StateRepository
}

func NewProgressService(state *repository.StateRepository) *ProgressService {
	return &ProgressService{state: state}
}

// UpdateProgress 累加主题的答题计数，只增不减
func (s *ProgressService) UpdateProgress(st *model.State, subjectID string, correct bool) {
	p, ok := st.Progress[subjectID]
	if !ok {
		p = &model.ProgressRecord{}
		st.Progress[subjectID] = p
	}
	p.Attempts++
	if correct {
		p.Correct++
	}
}

// UpdateVocabulary 更新单个生词的掌握统计。mastered 每次重算而不是锁存，
// 正确率回落到阈值以下时会失去掌握状态
func (s *ProgressService) UpdateVocabulary(st *model.State, subjectID, word string, correct bool) {
	words, ok := st.VocabularyProgress[subjectID]
	if !ok {
		words = map[string]*model.VocabularyRecord{}
		st.VocabularyProgress[subjectID] = words
	}
	now := nowMillis()
	rec, ok := words[word]
	if !ok {
		rec = &model.VocabularyRecord{FirstSeen: now, LastSeen: now}
		words[word] = rec
	}
	rec.Attempts++
	if correct {
		rec.Correct++
	}
	rec.LastSeen = now
	rec.Mastered = rec.Attempts >= masteryMinAttempts &&
		float64(rec.Correct)/float64(rec.Attempts) >= masteryAccuracy
}

// Mastery 主题的掌握汇总，没有任何生词记录时为 {0,0,0}
func (s *ProgressService) Mastery(st *model.State, subjectID string) MasterySummary {
	words := st.VocabularyProgress[subjectID]
	if len(words) == 0 {
		return MasterySummary{}
	}
	mastered := 0
	for _, rec := range words {
		if rec.Mastered {
			mastered++
		}
	}
	total := len(words)
	return MasterySummary{
		Mastered:   mastered,
		Total:      total,
		Percentage: int(math.Round(float64(mastered) / float64(total) * 100)),
	}
}

// ReadyForNextLesson 已掌握生词数是否达到进入下一课的门槛
func (s *ProgressService) ReadyForNextLesson(st *model.State, subjectID string) bool {
	mastered := 0
	for _, rec := range st.VocabularyProgress[subjectID] {
		if rec.Mastered {
			mastered++
		}
	}
	return mastered >= requiredVocabularyMastery
}

// Report vocabulary-progress 接口的完整报告
func (s *ProgressService) Report(subjectID string) VocabularyReport {
	var report VocabularyReport
	s.state.View(func(st *model.State) {
		report.Mastery = s.Mastery(st, subjectID)
		report.ReadyForNextLesson = s.ReadyForNextLesson(st, subjectID)
		report.Vocabulary = map[string]*model.VocabularyRecord{}
		for word, rec := range st.VocabularyProgress[subjectID] {
			clone := *rec
			report.Vocabulary[word] = &clone
		}
	})
	return report
}
