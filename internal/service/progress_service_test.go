package service

import (
	"fmt"
	"testing"
	"time"

	"lingua_edu_backend/internal/model"

	"github.com/stretchr/testify/assert"
)

func TestUpdateProgressCounts(t *testing.T) {
	env := newTestEnv(t, map[string]string{"flat.json": flatFixture})
	st := model.DefaultState()

	env.progress.UpdateProgress(st, "topic1", true)
	env.progress.UpdateProgress(st, "topic1", false)
	env.progress.UpdateProgress(st, "topic1", true)

	p := st.Progress["topic1"]
	assert.Equal(t, 3, p.Attempts)
	assert.Equal(t, 2, p.Correct)
}

func TestMasteryEmptySubject(t *testing.T) {
	env := newTestEnv(t, map[string]string{"flat.json": flatFixture})
	st := model.DefaultState()

	assert.Equal(t, MasterySummary{}, env.progress.Mastery(st, "topic1"))
}

func TestVocabularyMasteryThreshold(t *testing.T) {
	fixNow(t, time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
	env := newTestEnv(t, map[string]string{"flat.json": flatFixture})
	st := model.DefaultState()

	// 两次全对还不够
	env.progress.UpdateVocabulary(st, "topic1", "hola", true)
	env.progress.UpdateVocabulary(st, "topic1", "hola", true)
	assert.False(t, st.VocabularyProgress["topic1"]["hola"].Mastered)

	// 第三次：3 次作答 100% → 掌握
	env.progress.UpdateVocabulary(st, "topic1", "hola", true)
	assert.True(t, st.VocabularyProgress["topic1"]["hola"].Mastered)

	// 掌握不是锁存的：连续答错拉低正确率后会失去
	env.progress.UpdateVocabulary(st, "topic1", "hola", false)
	env.progress.UpdateVocabulary(st, "topic1", "hola", false)
	rec := st.VocabularyProgress["topic1"]["hola"]
	assert.Equal(t, 5, rec.Attempts)
	assert.Equal(t, 3, rec.Correct)
	assert.False(t, rec.Mastered)
}

func TestMasterySummaryPercentage(t *testing.T) {
	fixNow(t, time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
	env := newTestEnv(t, map[string]string{"flat.json": flatFixture})
	st := model.DefaultState()

	for i := 0; i < 3; i++ {
		env.progress.UpdateVocabulary(st, "topic1", "uno", true)
		env.progress.UpdateVocabulary(st, "topic1", "dos", true)
	}
	env.progress.UpdateVocabulary(st, "topic1", "tres", false)

	summary := env.progress.Mastery(st, "topic1")
	assert.Equal(t, 2, summary.Mastered)
	assert.Equal(t, 3, summary.Total)
	assert.Equal(t, 67, summary.Percentage)
}

func TestReadyForNextLessonThreshold(t *testing.T) {
	fixNow(t, time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
	env := newTestEnv(t, map[string]string{"flat.json": flatFixture})
	st := model.DefaultState()

	// 掌握 7 个词还不够，门槛是固定的 8
	for i := 0; i < 7; i++ {
		word := fmt.Sprintf("word%d", i)
		for j := 0; j < 3; j++ {
			env.progress.UpdateVocabulary(st, "topic1", word, true)
		}
	}
	assert.False(t, env.progress.ReadyForNextLesson(st, "topic1"))

	for j := 0; j < 3; j++ {
		env.progress.UpdateVocabulary(st, "topic1", "word7", true)
	}
	assert.True(t, env.progress.ReadyForNextLesson(st, "topic1"))
}

func TestVocabularyReport(t *testing.T) {
	fixNow(t, time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
	env := newTestEnv(t, map[string]string{"flat.json": flatFixture})

	err := env.state.Update(func(st *model.State) error {
		for i := 0; i < 3; i++ {
			env.progress.UpdateVocabulary(st, "topic1", "uno", true)
		}
		return nil
	})
	assert.NoError(t, err)

	report := env.progress.Report("topic1")
	assert.Equal(t, MasterySummary{Mastered: 1, Total: 1, Percentage: 100}, report.Mastery)
	assert.False(t, report.ReadyForNextLesson)
	assert.Contains(t, report.Vocabulary, "uno")

	empty := env.progress.Report("no-such-subject")
	assert.Equal(t, MasterySummary{}, empty.Mastery)
	assert.Empty(t, empty.Vocabulary)
}
