package model

import "encoding/json"

// SrsRecord 单个题目的复习状态（简化 SM-2）
type SrsRecord struct {
	EF           float64 `json:"EF"`
	IntervalDays int     `json:"intervalDays"`
	Reps         int     `json:"reps"`
	Lapses       int     `json:"lapses"`
	Due          int64   `json:"due"`  // 毫秒时间戳
	Last         *int64  `json:"last"` // 毫秒时间戳，未复习过为 null
	Streak       int     `json:"streak"`
}

// Seen 是否至少复习过一次
func (r *SrsRecord) Seen() bool {
	return r != nil && (r.Reps > 0 || r.Last != nil)
}

// ProgressRecord 单个主题的累计答题统计
type ProgressRecord struct {
	Correct  int `json:"correct"`
	Attempts int `json:"attempts"`
}

// VocabularyRecord 单个生词的掌握统计
type VocabularyRecord struct {
	Attempts  int   `json:"attempts"`
	Correct   int   `json:"correct"`
	Mastered  bool  `json:"mastered"`
	FirstSeen int64 `json:"firstSeen"`
	LastSeen  int64 `json:"lastSeen"`
}

// AssessmentState 课程测验的进行状态
type AssessmentState struct {
	IsInAssessment     bool  `json:"isInAssessment"`
	AssessmentAttempts int   `json:"assessmentAttempts"`
	AssessmentCorrect  int   `json:"assessmentCorrect"`
	StartTime          int64 `json:"startTime"`
}

// LessonProgress 单个课程的课节完成/解锁记录
type LessonProgress struct {
	CompletedLessons []int `json:"completedLessons"`
	UnlockedLessons  []int `json:"unlockedLessons"`
}

// Preferences 用户最近一次使用的分类与主题
type Preferences struct {
	Track     string `json:"track"`
	SubjectID string `json:"subjectId"`
}

// UserProfile 用户档案
type UserProfile struct {
	ID                string      `json:"id"`
	Name              string      `json:"name"`
	DisplayName       string      `json:"displayName"`
	Gender            string      `json:"gender"` // male / female / neutral / 空
	IsProfileComplete bool        `json:"isProfileComplete"`
	XP                int         `json:"xp"`
	Level             int         `json:"level"`
	Streak            int         `json:"streak"`
	LastActiveDate    string      `json:"lastActiveDate"` // RFC3339，首次活跃前为空
	Badges            []string    `json:"badges"`
	Preferences       Preferences `json:"preferences"`
}

// LogEvent 事件日志条目
type LogEvent struct {
	Ts        int64  `json:"ts"`
	Type      string `json:"type"`
	ItemID    string `json:"itemId,omitempty"`
	SubjectID string `json:"subjectId,omitempty"`
	Correct   bool   `json:"correct"`
}

// MaxLogEvents 事件日志上限，超出后丢弃最旧的条目
const MaxLogEvents = 1000

// State 持久化的用户状态聚合，整体读写
type State struct {
	User               UserProfile                             `json:"user"`
	Srs                map[string]*SrsRecord                   `json:"srs"`
	Progress           map[string]*ProgressRecord              `json:"progress"`
	LessonProgress     map[string]*LessonProgress              `json:"lessonProgress"`
	AssessmentState    map[string]*AssessmentState             `json:"assessmentState"`
	VocabularyProgress map[string]map[string]*VocabularyRecord `json:"vocabularyProgress"`
	Log                []LogEvent                              `json:"log"`
}

// DefaultState 全新的用户状态
func DefaultState() *State {
	return &State{
		User: UserProfile{
			ID:     "local-user",
			Name:   "Player 1",
			Level:  1,
			Badges: []string{},
		},
		Srs:                map[string]*SrsRecord{},
		Progress:           map[string]*ProgressRecord{},
		LessonProgress:     map[string]*LessonProgress{},
		AssessmentState:    map[string]*AssessmentState{},
		VocabularyProgress: map[string]map[string]*VocabularyRecord{},
		Log:                []LogEvent{},
	}
}

// Normalize 补齐缺失的 map，旧版状态文件可能缺少部分字段
func (s *State) Normalize() {
	if s.Srs == nil {
		s.Srs = map[string]*SrsRecord{}
	}
	if s.Progress == nil {
		s.Progress = map[string]*ProgressRecord{}
	}
	if s.LessonProgress == nil {
		s.LessonProgress = map[string]*LessonProgress{}
	}
	if s.AssessmentState == nil {
		s.AssessmentState = map[string]*AssessmentState{}
	}
	if s.VocabularyProgress == nil {
		s.VocabularyProgress = map[string]map[string]*VocabularyRecord{}
	}
	if s.Log == nil {
		s.Log = []LogEvent{}
	}
	if s.User.Badges == nil {
		s.User.Badges = []string{}
	}
	if s.User.Level < 1 {
		s.User.Level = 1
	}
}

// Clone 深拷贝，通过 JSON 往返实现
func (s *State) Clone() (*State, error) {
	raw, err := json.Marshal(s)
	if err != nil {
		return nil, err
	}
	var out State
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, err
	}
	out.Normalize()
	return &out, nil
}

// AppendLog 追加事件并裁剪到上限
func (s *State) AppendLog(ev LogEvent) {
	s.Log = append(s.Log, ev)
	if len(s.Log) > MaxLogEvents {
		s.Log = s.Log[len(s.Log)-MaxLogEvents:]
	}
}
