package repository

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"sync"

	"lingua_edu_backend/internal/model"
	"lingua_edu_backend/pkg/logger"

	"go.uber.org/zap"
)

// CatalogRepository 把内容目录下的定义文件加载为内存中的主题表和题目表。
// 支持两种文件格式：带 items 的扁平主题，带 lessons 的结构化课程
type CatalogRepository struct {
	mu       sync.RWMutex
	dir      string
	subjects []model.Subject
	items    map[string]*model.Item
	pools    map[string][]*model.Item // subjectId -> 题目，按创作顺序
}

// contentFile 内容定义文件的原始结构
type contentFile struct {
	ID          string       `json:"id"`
	Title       string       `json:"title"`
	Track       string       `json:"track"`
	Description string       `json:"description"`
	LangFrom    string       `json:"langFrom"`
	LangTo      string       `json:"langTo"`
	Items       []model.Item `json:"items"`
	Lessons     []lessonDef  `json:"lessons"`
}

type lessonDef struct {
	ID         string       `json:"id"`
	Title      string       `json:"title"`
	Grammar    string       `json:"grammar"`
	Vocabulary []string     `json:"vocabulary"`
	Items      []model.Item `json:"items"`
}

func NewCatalogRepository(dir string) *CatalogRepository {
	return &CatalogRepository{
		dir:   dir,
		items: map[string]*model.Item{},
		pools: map[string][]*model.Item{},
	}
}

// Load 重新扫描内容目录。单个文件解析失败只记录日志并跳过，不影响其他文件
func (r *CatalogRepository) Load() error {
	entries, err := os.ReadDir(r.dir)
	if err != nil {
		return err
	}

	loaded := &catalogTables{
		items: map[string]*model.Item{},
		pools: map[string][]*model.Item{},
	}

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		full := filepath.Join(r.dir, entry.Name())
		raw, err := os.ReadFile(full)
		if err != nil {
			logger.Log.Warn("skipping unreadable content file", zap.String("file", full), zap.Error(err))
			continue
		}
		var cf contentFile
		if err := json.Unmarshal(raw, &cf); err != nil {
			logger.Log.Warn("skipping malformed content file", zap.String("file", full), zap.Error(err))
			continue
		}

		stem := strings.TrimSuffix(entry.Name(), ".json")
		if len(cf.Lessons) > 0 {
			loaded.addCourse(&cf, stem)
		} else {
			loaded.addFlatSubject(&cf, stem)
		}
	}

	r.mu.Lock()
	r.subjects = loaded.subjects
	r.items = loaded.items
	r.pools = loaded.pools
	r.mu.Unlock()

	logger.Log.Info("content catalog loaded",
		zap.Int("subjects", len(loaded.subjects)),
		zap.Int("items", len(loaded.items)))
	return nil
}

// catalogTables 一次加载过程的中间结果，加载完成后整体替换
type catalogTables struct {
	subjects []model.Subject
	items    map[string]*model.Item
	pools    map[string][]*model.Item
}

// addCourse 结构化课程：每个 lesson 合成一个 Subject，lessonNumber 按文件内顺序从 1 开始
func (t *catalogTables) addCourse(cf *contentFile, stem string) {
	courseID := cf.ID
	if courseID == "" {
		courseID = stem
	}
	track := cf.Track
	if track == "" {
		track = "misc"
	}

	for idx, lesson := range cf.Lessons {
		lessonSubjectID := courseID + "::" + lesson.ID
		description := lesson.Grammar
		if description == "" {
			description = cf.Description
		}
		vocabulary := lesson.Vocabulary
		if vocabulary == nil {
			vocabulary = []string{}
		}
		t.subjects = append(t.subjects, model.Subject{
			ID:           lessonSubjectID,
			Title:        cf.Title + " - " + lesson.Title,
			Track:        track,
			Description:  description,
			LangFrom:     cf.LangFrom,
			LangTo:       cf.LangTo,
			Count:        len(lesson.Items),
			CourseID:     courseID,
			LessonNumber: idx + 1,
			Vocabulary:   vocabulary,
			Grammar:      lesson.Grammar,
		})

		for i := range lesson.Items {
			it := lesson.Items[i]
			it.ID = namespacedID(lessonSubjectID, it.ID, i)
			it.SubjectID = lessonSubjectID
			it.Track = track
			it.LessonNumber = idx + 1
			t.add(&it)
		}
	}
}

// addFlatSubject 扁平主题：缺省 id 取文件名（去掉扩展名）
func (t *catalogTables) addFlatSubject(cf *contentFile, stem string) {
	subjectID := cf.ID
	if subjectID == "" {
		subjectID = stem
	}
	title := cf.Title
	if title == "" {
		title = subjectID
	}
	track := cf.Track
	if track == "" {
		track = "misc"
	}

	t.subjects = append(t.subjects, model.Subject{
		ID:          subjectID,
		Title:       title,
		Track:       track,
		Description: cf.Description,
		LangFrom:    cf.LangFrom,
		LangTo:      cf.LangTo,
		Count:       len(cf.Items),
	})

	for i := range cf.Items {
		it := cf.Items[i]
		it.ID = namespacedID(subjectID, it.ID, i)
		it.SubjectID = subjectID
		it.Track = track
		t.add(&it)
	}
}

func (t *catalogTables) add(it *model.Item) {
	t.items[it.ID] = it
	t.pools[it.SubjectID] = append(t.pools[it.SubjectID], it)
}

// namespacedID 题目 id 带主题前缀，缺省 id 用序号，保证稳定且可按末尾序号排序
func namespacedID(subjectID, itemID string, ordinal int) string {
	if itemID == "" {
		itemID = strconv.Itoa(ordinal)
	}
	return subjectID + "::" + itemID
}

// Subjects 所有主题，按加载顺序
func (r *CatalogRepository) Subjects() []model.Subject {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]model.Subject, len(r.subjects))
	copy(out, r.subjects)
	return out
}

// Subject 按 id 查找主题
func (r *CatalogRepository) Subject(id string) (model.Subject, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, s := range r.subjects {
		if s.ID == id {
			return s, true
		}
	}
	return model.Subject{}, false
}

// Item 按 id 查找题目
func (r *CatalogRepository) Item(id string) (*model.Item, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	it, ok := r.items[id]
	return it, ok
}

// SubjectItems 主题下的全部题目，按 id 末尾序号排序（l1_1, l1_2, ...），
// 序号相同或无序号时保持创作顺序
func (r *CatalogRepository) SubjectItems(subjectID string) []*model.Item {
	r.mu.RLock()
	defer r.mu.RUnlock()

	src := r.pools[subjectID]
	pool := make([]*model.Item, len(src))
	copy(pool, src)
	sort.SliceStable(pool, func(i, j int) bool {
		return trailingOrdinal(pool[i].ID) < trailingOrdinal(pool[j].ID)
	})
	return pool
}

// trailingOrdinal 取 id 中最后一个下划线之后的数字，取不到时为 0
func trailingOrdinal(id string) int {
	seg := id
	if i := strings.LastIndex(id, "_"); i >= 0 {
		seg = id[i+1:]
	}
	n, err := strconv.Atoi(seg)
	if err != nil {
		return 0
	}
	return n
}

// String 调试用
func (r *CatalogRepository) String() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return fmt.Sprintf("catalog{subjects: %d, items: %d}", len(r.subjects), len(r.items))
}
