package service

import (
	"fmt"
	"math"
	"time"

	"lingua_edu_backend/internal/model"
)

// XP 奖励额度。使用提示时本题不给任何 XP
const (
	XPCorrect   = 10
	XPIncorrect = 2 // 答错的安慰分
)

// 里程碑徽章
const (
	BadgeStreak3         = "3-day Streak"
	BadgeStreak7         = "7-day Streak"
	BadgeFirst10Correct  = "First 10 Correct"
	BadgePolyglotStarter = "Polyglot Beginner"
	BadgeCoderStarter    = "Coder Beginner"
)

// AchievementService XP / 等级 / 徽章 / 连续活跃天数
type AchievementService struct{}

func NewAchievementService() *AchievementService {
	return &AchievementService{}
}

// XPForNextLevel 当前等级升级所需 XP，每级比上一级多 25%，向下取整
func XPForNextLevel(level int) int {
	return int(math.Floor(100 * math.Pow(1.25, float64(level-1))))
}

// AddXP 累加 XP，达到阈值就升级（可能连升多级），每次升级发放等级徽章。
// XP 在升级时扣除阈值，即每级从 0 重新累计
func (s *AchievementService) AddXP(st *model.State, amount int) {
	st.User.XP += amount
	next := XPForNextLevel(st.User.Level)
	for st.User.XP >= next {
		st.User.XP -= next
		st.User.Level++
		s.AwardBadge(st, fmt.Sprintf("Level %d", st.User.Level))
		next = XPForNextLevel(st.User.Level)
	}
}

// AwardBadge 发放徽章，同名徽章最多存一次
func (s *AchievementService) AwardBadge(st *model.State, name string) {
	for _, b := range st.User.Badges {
		if b == name {
			return
		}
	}
	st.User.Badges = append(st.User.Badges, name)
}

// UpdateStreak 按自然日维护连续活跃：同一天不变，隔一天 +1，中断则重置为 1。
// 达到 3 天和 7 天时发放徽章
func (s *AchievementService) UpdateStreak(st *model.State) {
	now := nowFunc()
	today := startOfDay(now)

	if st.User.LastActiveDate == "" {
		st.User.Streak = 1
	} else {
		last, err := time.Parse(time.RFC3339, st.User.LastActiveDate)
		if err != nil {
			st.User.Streak = 1
		} else {
			lastDay := startOfDay(last.In(now.Location()))
			diffDays := int(math.Round(today.Sub(lastDay).Hours() / 24))
			switch {
			case diffDays == 0:
				// 同一天，保持不变
			case diffDays == 1:
				st.User.Streak++
				if st.User.Streak == 3 {
					s.AwardBadge(st, BadgeStreak3)
				}
				if st.User.Streak == 7 {
					s.AwardBadge(st, BadgeStreak7)
				}
			default:
				st.User.Streak = 1
			}
		}
	}

	st.User.LastActiveDate = today.Format(time.RFC3339)
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
