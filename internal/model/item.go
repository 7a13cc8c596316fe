package model

import "encoding/json"

// 题目类型
const (
	ItemTypeMCQ    = "mcq"    // 选择题
	ItemTypeInput  = "input"  // 填空题
	ItemTypeListen = "listen" // 听力题
	ItemTypeCode   = "code"   // 编程题
	ItemTypeGraph  = "graph"  // 图排序题
)

// Item 单个题目，加载后不可变
type Item struct {
	ID           string         `json:"id"`
	SubjectID    string         `json:"subjectId"`
	Track        string         `json:"track"`
	LessonNumber int            `json:"lessonNumber,omitempty"`
	Type         string         `json:"type"`
	Prompt       string         `json:"prompt"`
	Answer       AnswerSet      `json:"answer"`
	Choices      []string       `json:"choices,omitempty"`
	Hints        []string       `json:"hints,omitempty"`
	Data         map[string]any `json:"data,omitempty"`
	Lang         string         `json:"lang,omitempty"`
	CheckTokens  []string       `json:"checkTokens,omitempty"`
	NewWord      string         `json:"newWord,omitempty"`
}

// AnswerSet 标准答案，内容文件中既可以写单个字符串也可以写字符串数组。
// 序列化时保持作者原始的写法（单个 vs 数组）。
type AnswerSet struct {
	values []string
	single bool
}

// NewAnswer 构造单答案
func NewAnswer(v string) AnswerSet {
	return AnswerSet{values: []string{v}, single: true}
}

// NewAnswers 构造多答案
func NewAnswers(vs ...string) AnswerSet {
	return AnswerSet{values: vs}
}

// Values 所有可接受的答案
func (a AnswerSet) Values() []string {
	return a.values
}

// First 首选答案（用于选择题比对）
func (a AnswerSet) First() string {
	if len(a.values) == 0 {
		return ""
	}
	return a.values[0]
}

// IsSingle 作者是否以单个字符串书写
func (a AnswerSet) IsSingle() bool {
	return a.single
}

// Map 对每个答案应用变换，返回新的 AnswerSet，不修改原值
func (a AnswerSet) Map(fn func(string) string) AnswerSet {
	out := AnswerSet{values: make([]string, len(a.values)), single: a.single}
	for i, v := range a.values {
		out.values[i] = fn(v)
	}
	return out
}

func (a *AnswerSet) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		a.values = []string{s}
		a.single = true
		return nil
	}
	var vs []string
	if err := json.Unmarshal(data, &vs); err != nil {
		return err
	}
	a.values = vs
	a.single = false
	return nil
}

func (a AnswerSet) MarshalJSON() ([]byte, error) {
	if a.single && len(a.values) == 1 {
		return json.Marshal(a.values[0])
	}
	if a.values == nil {
		return []byte("null"), nil
	}
	return json.Marshal(a.values)
}
