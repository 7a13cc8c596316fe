// 内容目录校验脚本
//
// 主应用启动时会跳过无法解析的内容文件，只在日志里留一条警告。
// 编辑完内容文件后用这个脚本做一次完整检查，能把所有问题一次列出来。
//
// 用法: go run scripts/validate_content.go [内容目录]
// 不带参数时读取 configs/config.yaml 里配置的目录。

package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"lingua_edu_backend/internal/config"
	"lingua_edu_backend/internal/model"
	"lingua_edu_backend/internal/repository"
)

var itemTypes = map[string]bool{
	model.ItemTypeMCQ:    true,
	model.ItemTypeInput:  true,
	model.ItemTypeListen: true,
	model.ItemTypeCode:   true,
	model.ItemTypeGraph:  true,
}

func main() {
	dir := ""
	if len(os.Args) > 1 {
		dir = os.Args[1]
	} else {
		cfg, err := config.LoadConfig("configs")
		if err != nil {
			fmt.Fprintf(os.Stderr, "读取配置失败: %v\n", err)
			os.Exit(1)
		}
		dir = cfg.Content.Dir
	}

	problems := 0
	report := func(format string, args ...any) {
		problems++
		fmt.Printf("  问题: "+format+"\n", args...)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "读取内容目录失败: %v\n", err)
		os.Exit(1)
	}

	files := 0
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		files++
		fmt.Printf("%s:\n", entry.Name())

		raw, err := os.ReadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			report("无法读取: %v", err)
			continue
		}
		var probe map[string]json.RawMessage
		if err := json.Unmarshal(raw, &probe); err != nil {
			report("JSON 解析失败: %v", err)
			continue
		}
		if _, hasItems := probe["items"]; !hasItems {
			if _, hasLessons := probe["lessons"]; !hasLessons {
				report("既没有 items 也没有 lessons")
			}
		}
	}

	if problems > 0 {
		fmt.Printf("\n%d 个文件，%d 个问题，加载结果如下\n\n", files, problems)
	}

	catalog := repository.NewCatalogRepository(dir)
	if err := catalog.Load(); err != nil {
		fmt.Fprintf(os.Stderr, "加载失败: %v\n", err)
		os.Exit(1)
	}

	for _, subject := range catalog.Subjects() {
		items := catalog.SubjectItems(subject.ID)
		fmt.Printf("%s (%d 题)\n", subject.ID, len(items))
		for _, it := range items {
			if !itemTypes[it.Type] {
				report("%s: 未知题型 %q", it.ID, it.Type)
			}
			if it.Prompt == "" {
				report("%s: 缺少 prompt", it.ID)
			}
			if len(it.Answer.Values()) == 0 && it.Type != model.ItemTypeCode {
				report("%s: 缺少标准答案", it.ID)
			}
			if it.Type == model.ItemTypeMCQ {
				if len(it.Choices) < 2 {
					report("%s: 选择题至少两个选项", it.ID)
				} else if !contains(it.Choices, it.Answer.First()) {
					report("%s: 标准答案不在选项里", it.ID)
				}
			}
		}
		if subject.IsLesson() {
			for _, word := range subject.Vocabulary {
				if !vocabularyCovered(items, word) {
					report("%s: 词表里的 %q 没有对应的 newWord 题目", subject.ID, word)
				}
			}
		}
	}

	if problems > 0 {
		fmt.Printf("\n共 %d 个问题\n", problems)
		os.Exit(1)
	}
	fmt.Println("\n全部通过")
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}

func vocabularyCovered(items []*model.Item, word string) bool {
	for _, it := range items {
		if it.NewWord == word {
			return true
		}
	}
	return false
}
