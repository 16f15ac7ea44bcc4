package config

import (
	"os"
	"path/filepath"
	"testing"
)

// loadConfig 将 TOML 内容写入临时文件并执行 Load。
func loadConfig(t *testing.T, content string) *Config {
	t.Helper()

	cfg, err := Load(writeConfig(t, content))
	if err != nil {
		t.Fatalf("加载配置失败: %v", err)
	}
	return cfg
}

// writeConfig 写入临时配置文件并返回路径。
func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("写入配置失败: %v", err)
	}
	return path
}
