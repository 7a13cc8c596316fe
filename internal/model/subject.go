package model

// Subject 可学习单元：独立主题，或课程中的一课
type Subject struct {
	ID           string   `json:"id"`
	Title        string   `json:"title"`
	Track        string   `json:"track"`
	Description  string   `json:"description"`
	LangFrom     string   `json:"langFrom,omitempty"`
	LangTo       string   `json:"langTo,omitempty"`
	Count        int      `json:"count"`
	CourseID     string   `json:"courseId,omitempty"`
	LessonNumber int      `json:"lessonNumber,omitempty"`
	Vocabulary   []string `json:"vocabulary,omitempty"`
	Grammar      string   `json:"grammar,omitempty"`
}

// IsLesson 是否属于某个课程（参与课程解锁流程）
func (s *Subject) IsLesson() bool {
	return s.CourseID != ""
}
