package repository

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"lingua_edu_backend/internal/model"
	"lingua_edu_backend/pkg/logger"

	"go.uber.org/zap"
)

// StateRepository 用户状态聚合的唯一持有者。内存副本是两次落盘之间的
// 权威数据；所有读-改-写都经过同一把锁，保证 at-most-one-writer。
//
// 写入采用先写临时文件再 rename 的方式，rename 是原子提交点，写到一半
// 崩溃不会破坏上一次已提交的状态。变更先应用到克隆副本，落盘成功后才
// 替换内存中的权威状态，落盘失败时内存状态保持不变并向上返回错误。
type StateRepository struct {
	mu    sync.Mutex
	file  string
	state *model.State
}

// NewStateRepository 加载状态文件。文件不存在或无法解析时回退到默认状态；
// 首次运行会立即写出一份默认状态文件
func NewStateRepository(file string) (*StateRepository, error) {
	r := &StateRepository{file: file}

	st, err := readStateFile(file)
	if err != nil {
		if !os.IsNotExist(err) {
			logger.Log.Warn("state file unreadable, starting from defaults",
				zap.String("file", file), zap.Error(err))
		}
		st = model.DefaultState()
		if writeErr := writeStateFile(file, st); writeErr != nil {
			return nil, fmt.Errorf("create state file: %w", writeErr)
		}
		logger.Log.Info("created user state file", zap.String("file", file))
	}
	st.Normalize()
	r.state = st
	return r, nil
}

// View 在锁内对当前状态执行只读访问。fn 不得保留指针或修改状态
func (r *StateRepository) View(fn func(st *model.State)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	fn(r.state)
}

// Update 在克隆副本上执行变更，持久化成功后替换权威状态。
// fn 返回错误或落盘失败时，内存状态不变
func (r *StateRepository) Update(fn func(st *model.State) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	working, err := r.state.Clone()
	if err != nil {
		return fmt.Errorf("clone state: %w", err)
	}
	if err := fn(working); err != nil {
		return err
	}
	if err := writeStateFile(r.file, working); err != nil {
		return fmt.Errorf("persist state: %w", err)
	}
	r.state = working
	return nil
}

// Reset 清空全部用户状态并立即持久化
func (r *StateRepository) Reset() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	st := model.DefaultState()
	if err := writeStateFile(r.file, st); err != nil {
		return fmt.Errorf("persist state: %w", err)
	}
	r.state = st
	return nil
}

func readStateFile(file string) (*model.State, error) {
	raw, err := os.ReadFile(file)
	if err != nil {
		return nil, err
	}
	var st model.State
	if err := json.Unmarshal(raw, &st); err != nil {
		return nil, err
	}
	return &st, nil
}

func writeStateFile(file string, st *model.State) error {
	raw, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return err
	}
	tmp := file + ".tmp"
	if err := os.WriteFile(tmp, raw, 0644); err != nil {
		return err
	}
	return os.Rename(tmp, file)
}
