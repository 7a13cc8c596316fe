package service

import (
	"math/rand"
	"os"
	"path/filepath"
	"testing"
	"time"

	"lingua_edu_backend/internal/repository"

	"github.com/stretchr/testify/require"
)

// courseFixture 一个课程文件：两课，第一课 5 道填空题
const courseFixture = `{
  "id": "course1",
  "title": "Test Course",
  "track": "spoken",
  "langFrom": "en",
  "langTo": "es",
  "lessons": [
    {
      "id": "l1",
      "title": "Lesson One",
      "vocabulary": ["uno", "dos"],
      "items": [
        { "id": "l1_1", "type": "input", "prompt": "one", "answer": "uno", "newWord": "uno" },
        { "id": "l1_2", "type": "input", "prompt": "two", "answer": "dos", "newWord": "dos" },
        { "id": "l1_3", "type": "input", "prompt": "three", "answer": "tres" },
        { "id": "l1_4", "type": "input", "prompt": "four", "answer": "cuatro" },
        { "id": "l1_5", "type": "input", "prompt": "five", "answer": "cinco" }
      ]
    },
    {
      "id": "l2",
      "title": "Lesson Two",
      "items": [
        { "id": "l2_1", "type": "input", "prompt": "six", "answer": "seis" }
      ]
    }
  ]
}`

// flatFixture 一个不属于课程的扁平主题，3 道题
const flatFixture = `{
  "id": "topic1",
  "title": "Standalone Topic",
  "track": "misc",
  "items": [
    { "id": "t_1", "type": "input", "prompt": "a", "answer": "A" },
    { "id": "t_2", "type": "input", "prompt": "b", "answer": "B" },
    { "id": "t_3", "type": "input", "prompt": "c", "answer": "C" }
  ]
}`

func newTestCatalog(t *testing.T, files map[string]string) *repository.CatalogRepository {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
	}
	catalog := repository.NewCatalogRepository(dir)
	require.NoError(t, catalog.Load())
	return catalog
}

func newTestState(t *testing.T) *repository.StateRepository {
	t.Helper()
	state, err := repository.NewStateRepository(filepath.Join(t.TempDir(), "state.json"))
	require.NoError(t, err)
	return state
}

// testEnv 全套服务的测试装配，随机源固定种子保证选题可复现
type testEnv struct {
	catalog  *repository.CatalogRepository
	state    *repository.StateRepository
	srs      *SrsService
	selector *SelectorService
	learning *LearningService
	lessons  *LessonService
	progress *ProgressService
}

func newTestEnv(t *testing.T, files map[string]string) *testEnv {
	t.Helper()
	catalog := newTestCatalog(t, files)
	state := newTestState(t)

	srs := NewSrsService()
	selector := NewSelectorService(catalog, srs, rand.New(rand.NewSource(1)))
	progress := NewProgressService(state)
	lessons := NewLessonService(catalog, state)
	achievement := NewAchievementService()
	learning := NewLearningService(catalog, state, srs, selector, progress, lessons, achievement)

	return &testEnv{
		catalog:  catalog,
		state:    state,
		srs:      srs,
		selector: selector,
		learning: learning,
		lessons:  lessons,
		progress: progress,
	}
}

// fixNow 固定时间来源，测试结束后恢复
func fixNow(t *testing.T, at time.Time) {
	t.Helper()
	prev := nowFunc
	nowFunc = func() time.Time { return at }
	t.Cleanup(func() { nowFunc = prev })
}
