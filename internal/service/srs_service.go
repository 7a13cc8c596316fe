package service

import (
	"math"
	"time"

	"lingua_edu_backend/internal/model"
)

// nowFunc 统一的时间来源，测试中可替换
var nowFunc = time.Now

func nowMillis() int64 {
	return nowFunc().UnixMilli()
}

const (
	initialEF = 2.5
	minEF     = 1.3

	qualityCorrect   = 5.0 // 答对固定按满分质量计
	qualityIncorrect = 2.0 // 答错固定按 2 分质量计

	millisPerDay = int64(24 * 60 * 60 * 1000)
)

// SrsService 单个题目的复习调度，简化版 SM-2：
// 质量分只取对/错两档，EF 下限 1.3，前两次答对间隔固定 1 天和 6 天
type SrsService struct{}

func NewSrsService() *SrsService {
	return &SrsService{}
}

// Ensure 返回题目的复习状态，首次访问时惰性创建默认记录。
// 这是复习记录唯一的创建路径
func (s *SrsService) Ensure(st *model.State, itemID string) *model.SrsRecord {
	if rec, ok := st.Srs[itemID]; ok {
		return rec
	}
	rec := &model.SrsRecord{
		EF:  initialEF,
		Due: nowMillis(),
	}
	st.Srs[itemID] = rec
	return rec
}

// Schedule 根据本次回答更新复习状态。对任何 itemID 都有效（状态缺失时先创建）
func (s *SrsService) Schedule(st *model.State, itemID string, correct bool) {
	rec := s.Ensure(st, itemID)
	now := nowMillis()

	if correct {
		rec.Reps++
		rec.Streak++
		rec.EF = nextEF(rec.EF, qualityCorrect)
		switch rec.Reps {
		case 1:
			rec.IntervalDays = 1
		case 2:
			rec.IntervalDays = 6
		default:
			rec.IntervalDays = int(math.Ceil(float64(rec.IntervalDays) * rec.EF))
		}
	} else {
		rec.EF = nextEF(rec.EF, qualityIncorrect)
		rec.Reps = 0
		rec.Lapses++
		rec.Streak = 0
		rec.IntervalDays = 0 // 立即重新复习
	}

	rec.Last = &now
	rec.Due = now + int64(rec.IntervalDays)*millisPerDay
}

// nextEF SM-2 的易度因子更新，EF' = EF - 0.8 + 0.28q - 0.02q²，下限 1.3
func nextEF(ef, q float64) float64 {
	return math.Max(minEF, ef-0.8+0.28*q-0.02*q*q)
}

// IsUnseen 题目是否从未复习过（无记录，或 reps=0 且从未作答）
func IsUnseen(st *model.State, itemID string) bool {
	rec, ok := st.Srs[itemID]
	if !ok {
		return true
	}
	return rec.Reps == 0 && rec.Last == nil
}
