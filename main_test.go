package main

import (
	"bytes"
	"strings"
	"testing"
)

func TestParseCLIFlagsPriority(t *testing.T) {
	t.Setenv("CACHE_HUB_CONFIG", "/tmp/env.toml")

	opts, err := parseCLIFlags([]string{})
	if err != nil {
		t.Fatalf("解析失败: %v", err)
	}
	if opts.configPath != "/tmp/env.toml" {
		t.Fatalf("应优先使用环境变量，得到 %s", opts.configPath)
	}

	opts, err = parseCLIFlags([]string{"--config", "/tmp/flag.toml"})
	if err != nil {
		t.Fatalf("解析失败: %v", err)
	}
	if opts.configPath != "/tmp/flag.toml" {
		t.Fatalf("flag 应高于环境变量，得到 %s", opts.configPath)
	}
}

func TestParseCLIFlagsDefaultPath(t *testing.T) {
	t.Setenv("CACHE_HUB_CONFIG", "")

	opts, err := parseCLIFlags([]string{})
	if err != nil {
		t.Fatalf("解析失败: %v", err)
	}
	if opts.configPath != "config.toml" {
		t.Fatalf("默认路径应为 config.toml，得到 %s", opts.configPath)
	}
}

func TestRunCheckConfigSuccess(t *testing.T) {
	useBufferWriters(t)
	code := run(cliOptions{configPath: writeConfigFixture(t, validConfig), checkOnly: true})
	if code != 0 {
		t.Fatalf("期望退出码 0，得到 %d", code)
	}
}

func TestRunCheckConfigFailure(t *testing.T) {
	useBufferWriters(t)
	code := run(cliOptions{configPath: writeConfigFixture(t, invalidConfig), checkOnly: true})
	if code == 0 {
		t.Fatalf("无效配置应返回非零退出码")
	}
}

func TestRunMissingConfigFile(t *testing.T) {
	useBufferWriters(t)
	code := run(cliOptions{configPath: "/nonexistent/config.toml", checkOnly: true})
	if code == 0 {
		t.Fatalf("缺失配置文件应返回非零退出码")
	}
	if !strings.Contains(stdErrBuffer().String(), "加载配置失败") {
		t.Fatalf("stderr 应包含加载失败提示，得到 %s", stdErrBuffer().String())
	}
}

func TestRunVersionOutput(t *testing.T) {
	useBufferWriters(t)
	code := run(cliOptions{showVersion: true})
	if code != 0 {
		t.Fatalf("version 模式应成功退出，得到 %d", code)
	}
	if !strings.Contains(stdOut.(*bytes.Buffer).String(), "cache-hub") {
		t.Fatalf("version 输出应包含 cache-hub 标识")
	}
}

func TestBuildStoreSelectsBackend(t *testing.T) {
	cfgPath := writeConfigFixture(t, validConfig)
	cfg := loadFixture(t, cfgPath)

	memStore, err := buildStore(cfg)
	if err != nil {
		t.Fatalf("构建 memory 后端失败: %v", err)
	}
	if string(memStore.Kind()) != "memory" {
		t.Fatalf("预期 memory 后端，得到 %s", memStore.Kind())
	}

	redisCfgPath := writeConfigFixture(t, redisConfig)
	redisCfg := loadFixture(t, redisCfgPath)

	redisStore, err := buildStore(redisCfg)
	if err != nil {
		t.Fatalf("构建 redis 后端失败: %v", err)
	}
	defer redisStore.Close()
	if string(redisStore.Kind()) != "redis" {
		t.Fatalf("预期 redis 后端，得到 %s", redisStore.Kind())
	}
}
