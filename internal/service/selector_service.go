package service

import (
	"math/rand"
	"sort"

	"lingua_edu_backend/internal/model"
	"lingua_edu_backend/internal/repository"
)

// 出题模式
const (
	ModeLearn      = "learn"
	ModePractice   = "practice"
	ModeReview     = "review"
	ModeAssessment = "assessment"
)

// practiceRepsCap practice 模式关注 reps 小于该值的题目
const practiceRepsCap = 3

// Selection 选中的题目及其展示标记
type Selection struct {
	Item         *model.Item
	Mode         string
	IsNew        bool
	IsAssessment bool
}

// SelectorService 按主题和模式确定性地选出下一道题。
// 规则按优先级：测验覆盖 > learn > practice > 默认复习策略，
// 前一条不命中时落入下一条
type SelectorService struct {
	catalog *repository.CatalogRepository
	srs     *SrsService
	rng     *rand.Rand
}

// NewSelectorService rng 必须可注入种子，测验模式的随机抽题在测试中要可复现
func NewSelectorService(catalog *repository.CatalogRepository, srs *SrsService, rng *rand.Rand) *SelectorService {
	return &SelectorService{catalog: catalog, srs: srs, rng: rng}
}

// NextItem 选出下一道题，主题没有任何题目时返回 nil。
// 会惰性创建候选题目的复习记录，因此需要在持锁的状态更新中调用
func (s *SelectorService) NextItem(st *model.State, subjectID, mode string) *Selection {
	pool := s.catalog.SubjectItems(subjectID)
	if len(pool) == 0 {
		return nil
	}

	// 测验进行中时忽略请求的模式，随机抽已复习过的题
	if a := st.AssessmentState[subjectID]; a != nil && a.IsInAssessment {
		return s.pickAssessment(st, pool)
	}

	if mode == ModeLearn {
		if sel := firstUnseen(st, pool); sel != nil {
			return sel
		}
	}

	if mode == ModePractice {
		if sel := s.pickPractice(st, pool); sel != nil {
			return sel
		}
	}

	return s.pickReview(st, pool)
}

// pickAssessment 从复习过的题中均匀随机抽取，一道都没复习过时从全部题中抽
func (s *SelectorService) pickAssessment(st *model.State, pool []*model.Item) *Selection {
	reviewed := []*model.Item{}
	for _, it := range pool {
		if rec, ok := st.Srs[it.ID]; ok && rec.Reps > 0 {
			reviewed = append(reviewed, it)
		}
	}
	candidates := reviewed
	if len(candidates) == 0 {
		candidates = pool
	}
	return &Selection{
		Item:         candidates[s.rng.Intn(len(candidates))],
		Mode:         ModeAssessment,
		IsAssessment: true,
	}
}

// firstUnseen 按题库顺序取第一道从未见过的题
func firstUnseen(st *model.State, pool []*model.Item) *Selection {
	for _, it := range pool {
		if IsUnseen(st, it.ID) {
			return &Selection{Item: it, Mode: ModeLearn, IsNew: true}
		}
	}
	return nil
}

// pickPractice 在见过但尚未巩固（0 < reps < 3）的题中取最久未复习的一道
func (s *SelectorService) pickPractice(st *model.State, pool []*model.Item) *Selection {
	type cand struct {
		it  *model.Item
		rec *model.SrsRecord
	}
	candidates := []cand{}
	for _, it := range pool {
		rec := s.srs.Ensure(st, it.ID)
		if rec.Reps > 0 && rec.Reps < practiceRepsCap {
			candidates = append(candidates, cand{it, rec})
		}
	}
	if len(candidates) == 0 {
		return nil
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return lastMillis(candidates[i].rec) < lastMillis(candidates[j].rec)
	})
	return &Selection{Item: candidates[0].it, Mode: ModePractice}
}

// pickReview 默认策略：先取已到期中最早到期的，其次第一道没见过的，
// 最后取全局最早到期的
func (s *SelectorService) pickReview(st *model.State, pool []*model.Item) *Selection {
	now := nowMillis()

	type cand struct {
		it  *model.Item
		rec *model.SrsRecord
	}
	all := make([]cand, 0, len(pool))
	for _, it := range pool {
		all = append(all, cand{it, s.srs.Ensure(st, it.ID)})
	}

	due := []cand{}
	for _, c := range all {
		if c.rec.Due <= now {
			due = append(due, c)
		}
	}
	if len(due) > 0 {
		sort.SliceStable(due, func(i, j int) bool { return due[i].rec.Due < due[j].rec.Due })
		return &Selection{Item: due[0].it, Mode: ModeReview}
	}

	if sel := firstUnseen(st, pool); sel != nil {
		return sel
	}

	sort.SliceStable(all, func(i, j int) bool { return all[i].rec.Due < all[j].rec.Due })
	return &Selection{Item: all[0].it, Mode: ModeReview}
}

func lastMillis(rec *model.SrsRecord) int64 {
	if rec.Last == nil {
		return 0
	}
	return *rec.Last
}
