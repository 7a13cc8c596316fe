package util

import (
	"regexp"

	"lingua_edu_backend/internal/model"
)

var userNamePattern = regexp.MustCompile(`\{\{user\.(?:displayName|name)\}\}`)

// PersonalizeAnswer 替换答案文本中的 {{user.name}} / {{user.displayName}} 占位符。
// 纯函数，题库中的题目永远不被修改
func PersonalizeAnswer(answer string, user *model.UserProfile) string {
	name := user.DisplayName
	if name == "" {
		name = user.Name
	}
	if name == "" {
		name = "Player 1"
	}
	return userNamePattern.ReplaceAllString(answer, name)
}
