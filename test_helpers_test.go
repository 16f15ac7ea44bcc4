package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/cache-hub/cache-hub/internal/config"
)

const validConfig = `
LogLevel = "info"
ContentRoot = "./content"
`

const invalidConfig = `
Backend = "memcached"
ContentRoot = "./content"
`

const redisConfig = `
Backend = "redis"
ContentRoot = "./content"

[Redis]
Addr = "127.0.0.1:6379"
`

// writeConfigFixture 写入临时配置文件并返回路径。
func writeConfigFixture(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("写入配置失败: %v", err)
	}
	return path
}

// loadFixture 通过 config.Load 解析 fixture，失败直接终止测试。
func loadFixture(t *testing.T, path string) *config.Config {
	t.Helper()

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("加载配置失败: %v", err)
	}
	return cfg
}
