package contentwatcher

import (
	"path/filepath"
	"sync"
	"time"

	"lingua_edu_backend/pkg/logger"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// Reloader 内容目录变化后的回调（通常是题库重载）
type Reloader func()

// Watch 监听内容目录，文件写入/新增/删除后去抖 1 秒触发 reloader。
// 在独立 goroutine 中运行，watcher 创建失败时只记录日志并退出，
// 内容刷新仍可通过 catalog 接口手动触发
func Watch(contentDir string, reloader Reloader) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		logger.Log.Error("failed to create content watcher", zap.Error(err))
		return
	}
	defer watcher.Close()

	absPath, err := filepath.Abs(contentDir)
	if err != nil {
		logger.Log.Error("failed to resolve content dir", zap.Error(err))
		return
	}

	if err := watcher.Add(absPath); err != nil {
		logger.Log.Error("failed to watch content dir", zap.String("dir", absPath), zap.Error(err))
		return
	}

	logger.Log.Info("watching content dir", zap.String("dir", absPath))

	var mu sync.Mutex
	timer := time.AfterFunc(0, func() {})
	timer.Stop()

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) != 0 {
				// 防抖处理
				mu.Lock()
				timer.Stop()
				timer = time.AfterFunc(1*time.Second, func() {
					logger.Log.Info("content dir changed, reloading catalog",
						zap.String("file", event.Name))
					reloader()
				})
				mu.Unlock()
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			logger.Log.Warn("content watcher error", zap.Error(err))
		}
	}
}
