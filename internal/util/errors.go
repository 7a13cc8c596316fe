package util

import "errors"

var (
	ErrSubjectRequired = errors.New("subjectId required")
	ErrCourseRequired  = errors.New("courseId required")
	ErrItemRequired    = errors.New("itemId required")
	ErrNoItems         = errors.New("No items")
	ErrUnknownItem     = errors.New("Unknown item")
)
