package cache

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// FileLoader 将键解释为 ContentRoot 下的相对路径并读取文件正文。
// 文件不存在时返回 os 层的原始错误（fs.ErrNotExist），便于上层区分
// "源不存在" 与其它读取失败。
func FileLoader(root string) (Loader, error) {
	if root == "" {
		return nil, errors.New("content root required")
	}

	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolve content root: %w", err)
	}

	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("content root: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("content root is not a directory: %s", abs)
	}

	return func(ctx context.Context, key string) (string, error) {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		filePath, err := contentPath(abs, key)
		if err != nil {
			return "", err
		}

		data, err := os.ReadFile(filePath)
		if err != nil {
			return "", err
		}
		return string(data), nil
	}, nil
}

// contentPath 把 URL 风格的键规范化为 root 下的文件路径，拒绝越界访问。
func contentPath(root, key string) (string, error) {
	if strings.TrimSpace(key) == "" {
		return "", errors.New("key required")
	}

	rel := path.Clean("/" + key)
	rel = strings.TrimPrefix(rel, "/")
	if rel == "" || rel == "." {
		return "", errors.New("key required")
	}

	filePath := filepath.Join(root, filepath.FromSlash(rel))
	if !strings.HasPrefix(filePath, root+string(filepath.Separator)) {
		return "", fmt.Errorf("invalid key path: %s", key)
	}
	return filePath, nil
}
