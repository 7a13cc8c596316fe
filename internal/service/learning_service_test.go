package service

import (
	"testing"
	"time"

	"lingua_edu_backend/internal/model"
	"lingua_edu_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 第一课的题目和正确答案，按题库顺序
var lessonOneAnswers = []struct {
	itemID string
	answer string
}{
	{"course1::l1::l1_1", "uno"},
	{"course1::l1::l1_2", "dos"},
	{"course1::l1::l1_3", "tres"},
	{"course1::l1::l1_4", "cuatro"},
	{"course1::l1::l1_5", "cinco"},
}

func TestSubmitUnknownItem(t *testing.T) {
	env := newTestEnv(t, map[string]string{"flat.json": flatFixture})

	_, err := env.learning.Submit(SubmitRequest{ItemID: "nope"})
	assert.ErrorIs(t, err, util.ErrUnknownItem)
}

func TestNextItemNoItems(t *testing.T) {
	env := newTestEnv(t, map[string]string{"flat.json": flatFixture})

	_, err := env.learning.NextItem("no-such-subject", ModeReview)
	assert.ErrorIs(t, err, util.ErrNoItems)
}

func TestNextItemView(t *testing.T) {
	fixNow(t, time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
	env := newTestEnv(t, map[string]string{"flat.json": flatFixture})

	view, err := env.learning.NextItem("topic1", ModeLearn)
	require.NoError(t, err)
	assert.Equal(t, "topic1::t_1", view.ID)
	assert.Equal(t, "topic1", view.SubjectID)
	assert.Equal(t, ModeLearn, view.Mode)
	assert.True(t, view.IsNew)
	assert.False(t, view.IsAssessment)
	assert.Equal(t, nowMillis(), view.Due)
}

func TestSubmitNormalizesInputAnswers(t *testing.T) {
	fixNow(t, time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
	env := newTestEnv(t, map[string]string{"course.json": courseFixture})

	result, err := env.learning.Submit(SubmitRequest{ItemID: "course1::l1::l1_1", Response: "  UNO "})
	require.NoError(t, err)
	assert.True(t, result.Correct)

	result, err = env.learning.Submit(SubmitRequest{ItemID: "course1::l1::l1_2", Response: "wrong"})
	require.NoError(t, err)
	assert.False(t, result.Correct)
}

func TestSubmitRewardsAndHints(t *testing.T) {
	fixNow(t, time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
	env := newTestEnv(t, map[string]string{"course.json": courseFixture})

	// 答对 10 XP，spoken 分类发入门徽章
	result, err := env.learning.Submit(SubmitRequest{ItemID: "course1::l1::l1_1", Response: "uno"})
	require.NoError(t, err)
	assert.Equal(t, 10, result.User.XP)
	assert.Contains(t, result.User.Badges, BadgePolyglotStarter)

	// 答错 2 XP 安慰分
	result, err = env.learning.Submit(SubmitRequest{ItemID: "course1::l1::l1_2", Response: "wrong"})
	require.NoError(t, err)
	assert.Equal(t, 12, result.User.XP)

	// 用了提示就没有任何 XP
	result, err = env.learning.Submit(SubmitRequest{ItemID: "course1::l1::l1_3", Response: "tres", HintUsed: true})
	require.NoError(t, err)
	assert.True(t, result.Correct)
	assert.Equal(t, 12, result.User.XP)
}

func TestSubmitTracksVocabulary(t *testing.T) {
	fixNow(t, time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
	env := newTestEnv(t, map[string]string{"course.json": courseFixture})

	_, err := env.learning.Submit(SubmitRequest{ItemID: "course1::l1::l1_1", Response: "uno"})
	require.NoError(t, err)

	env.state.View(func(st *model.State) {
		rec := st.VocabularyProgress["course1::l1"]["uno"]
		require.NotNil(t, rec)
		assert.Equal(t, 1, rec.Attempts)
		assert.Equal(t, 1, rec.Correct)
	})
}

func TestSubmitPersonalizesAnswer(t *testing.T) {
	fixNow(t, time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
	const fixture = `{
	  "id": "intro",
	  "title": "Introductions",
	  "items": [
	    { "id": "p_1", "type": "input", "prompt": "Say your name", "answer": "me llamo {{user.name}}" }
	  ]
	}`
	env := newTestEnv(t, map[string]string{"intro.json": fixture})

	require.NoError(t, env.state.Update(func(st *model.State) error {
		st.User.DisplayName = "Ana"
		return nil
	}))

	result, err := env.learning.Submit(SubmitRequest{ItemID: "intro::p_1", Response: "Me llamo Ana"})
	require.NoError(t, err)
	assert.True(t, result.Correct)
	assert.Equal(t, []string{"me llamo Ana"}, result.Answer.Values())
}

func TestAssessmentLifecyclePass(t *testing.T) {
	fixNow(t, time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
	env := newTestEnv(t, map[string]string{"course.json": courseFixture})

	// 逐题答对：第 5 题之后全部见过且正确率 100% → 恰好触发一次测验开始
	for i, qa := range lessonOneAnswers {
		result, err := env.learning.Submit(SubmitRequest{ItemID: qa.itemID, Response: qa.answer})
		require.NoError(t, err)
		require.True(t, result.Correct)
		if i < len(lessonOneAnswers)-1 {
			assert.False(t, result.AssessmentStarted, "第 %d 题不应触发测验", i+1)
		} else {
			assert.True(t, result.AssessmentStarted)
			require.NotNil(t, result.AssessmentProgress)
			assert.Equal(t, 0, result.AssessmentProgress.Attempts)
			assert.Equal(t, 5, result.AssessmentProgress.Remaining)
		}
		assert.False(t, result.LessonCompleted)
	}

	// 测验中：5 题答对 4 题（80%）→ 通过并解锁下一课
	answers := []struct {
		itemID   string
		response string
	}{
		{"course1::l1::l1_1", "uno"},
		{"course1::l1::l1_2", "dos"},
		{"course1::l1::l1_3", "tres"},
		{"course1::l1::l1_4", "wrong"},
		{"course1::l1::l1_5", "cinco"},
	}
	for i, qa := range answers {
		result, err := env.learning.Submit(SubmitRequest{ItemID: qa.itemID, Response: qa.response})
		require.NoError(t, err)
		assert.False(t, result.AssessmentStarted, "测验进行中不会重复触发开始")
		if i < len(answers)-1 {
			assert.False(t, result.LessonCompleted)
			require.NotNil(t, result.AssessmentProgress)
			assert.Equal(t, i+1, result.AssessmentProgress.Attempts)
		} else {
			assert.True(t, result.LessonCompleted)
			// 通过后测验不再进行中，响应里不带进度
			assert.Nil(t, result.AssessmentProgress)
		}
	}

	progress := env.lessons.Progress("course1")
	assert.Contains(t, progress.CompletedLessons, 1)
	assert.Contains(t, progress.UnlockedLessons, 1)
	assert.Contains(t, progress.UnlockedLessons, 2)
}

func TestAssessmentLifecycleFailStaysActive(t *testing.T) {
	fixNow(t, time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
	env := newTestEnv(t, map[string]string{"course.json": courseFixture})

	for _, qa := range lessonOneAnswers {
		_, err := env.learning.Submit(SubmitRequest{ItemID: qa.itemID, Response: qa.answer})
		require.NoError(t, err)
	}

	// 测验中：5 题只对 3 题（60%）→ 不通过，测验保持进行中
	responses := []string{"uno", "dos", "tres", "wrong", "wrong"}
	var last *SubmitResult
	for i, resp := range responses {
		result, err := env.learning.Submit(SubmitRequest{ItemID: lessonOneAnswers[i].itemID, Response: resp})
		require.NoError(t, err)
		assert.False(t, result.LessonCompleted)
		assert.False(t, result.AssessmentStarted)
		last = result
	}

	require.NotNil(t, last.AssessmentProgress)
	assert.Equal(t, 5, last.AssessmentProgress.Attempts)
	assert.Equal(t, 3, last.AssessmentProgress.Correct)
	assert.Equal(t, 60, last.AssessmentProgress.SuccessRate)
	assert.Equal(t, 0, last.AssessmentProgress.Remaining)

	progress := env.lessons.Progress("course1")
	assert.Empty(t, progress.CompletedLessons)
	assert.Equal(t, []int{1}, progress.UnlockedLessons)

	// 继续作答仍在同一场测验里，每次提交重新评估
	result, err := env.learning.Submit(SubmitRequest{ItemID: "course1::l1::l1_1", Response: "uno"})
	require.NoError(t, err)
	require.NotNil(t, result.AssessmentProgress)
	assert.Equal(t, 6, result.AssessmentProgress.Attempts)
}

func TestStandaloneSubjectNeverStartsAssessment(t *testing.T) {
	fixNow(t, time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
	env := newTestEnv(t, map[string]string{"flat.json": flatFixture})

	for _, qa := range []struct{ itemID, answer string }{
		{"topic1::t_1", "a"},
		{"topic1::t_2", "b"},
		{"topic1::t_3", "c"},
	} {
		result, err := env.learning.Submit(SubmitRequest{ItemID: qa.itemID, Response: qa.answer})
		require.NoError(t, err)
		assert.True(t, result.Correct)
		assert.False(t, result.AssessmentStarted)
		assert.False(t, result.LessonCompleted)
	}

	env.state.View(func(st *model.State) {
		assert.Empty(t, st.AssessmentState)
	})
}

func TestSubmitAppendsEventLog(t *testing.T) {
	fixNow(t, time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
	env := newTestEnv(t, map[string]string{"flat.json": flatFixture})

	_, err := env.learning.Submit(SubmitRequest{ItemID: "topic1::t_1", Response: "a"})
	require.NoError(t, err)

	env.state.View(func(st *model.State) {
		require.Len(t, st.Log, 1)
		assert.Equal(t, "answer", st.Log[0].Type)
		assert.Equal(t, "topic1::t_1", st.Log[0].ItemID)
		assert.True(t, st.Log[0].Correct)
	})
}

func TestCheckAnswerMCQAndCode(t *testing.T) {
	fixNow(t, time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
	const fixture = `{
	  "id": "mixed",
	  "title": "Mixed",
	  "track": "programming",
	  "items": [
	    { "id": "m_1", "type": "mcq", "prompt": "pick", "answer": "const", "choices": ["var", "const"] },
	    { "id": "m_2", "type": "code", "prompt": "write add", "answer": "function add() {}", "checkTokens": ["function", "add"] },
	    { "id": "m_3", "type": "code", "prompt": "free form", "answer": "anything" }
	  ]
	}`
	env := newTestEnv(t, map[string]string{"mixed.json": fixture})

	// mcq 精确匹配，不做大小写归一
	result, err := env.learning.Submit(SubmitRequest{ItemID: "mixed::m_1", Response: "const"})
	require.NoError(t, err)
	assert.True(t, result.Correct)
	result, err = env.learning.Submit(SubmitRequest{ItemID: "mixed::m_1", Response: "Const"})
	require.NoError(t, err)
	assert.False(t, result.Correct)

	// code 按 token 检查
	result, err = env.learning.Submit(SubmitRequest{ItemID: "mixed::m_2", Response: "function add(a,b){return a+b}"})
	require.NoError(t, err)
	assert.True(t, result.Correct)
	result, err = env.learning.Submit(SubmitRequest{ItemID: "mixed::m_2", Response: "const add = 1"})
	require.NoError(t, err)
	assert.False(t, result.Correct)

	// 没有检查规则的 code 题接受任何非空回答
	result, err = env.learning.Submit(SubmitRequest{ItemID: "mixed::m_3", Response: "whatever"})
	require.NoError(t, err)
	assert.True(t, result.Correct)
	result, err = env.learning.Submit(SubmitRequest{ItemID: "mixed::m_3", Response: ""})
	require.NoError(t, err)
	assert.False(t, result.Correct)
}
