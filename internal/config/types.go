package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Duration 提供更灵活的反序列化能力，同时兼容纯秒整数与 Go Duration 字符串。
type Duration time.Duration

// UnmarshalText 使 Viper 可以识别诸如 "30s"、"5m" 或纯数字秒值等配置写法。
func (d *Duration) UnmarshalText(text []byte) error {
	raw := strings.TrimSpace(string(text))
	if raw == "" {
		*d = Duration(0)
		return nil
	}

	if parsed, err := time.ParseDuration(raw); err == nil {
		*d = Duration(parsed)
		return nil
	}

	if intVal, err := parseInt(raw); err == nil {
		*d = Duration(time.Duration(intVal) * time.Second)
		return nil
	}

	return fmt.Errorf("invalid duration value: %s", raw)
}

// DurationValue 返回真实的 time.Duration，便于调用方计算。
func (d Duration) DurationValue() time.Duration {
	return time.Duration(d)
}

// parseInt 支持十进制或 0x 前缀的十六进制字符串解析。
func parseInt(value string) (int64, error) {
	if strings.HasPrefix(value, "0x") || strings.HasPrefix(value, "0X") {
		return strconv.ParseInt(value, 0, 64)
	}
	return strconv.ParseInt(value, 10, 64)
}

// 支持的后端取值。memory 状态随进程消亡，redis 状态跨重启保留。
const (
	BackendMemory = "memory"
	BackendRedis  = "redis"
)

// GlobalConfig 描述全局运行时行为。
type GlobalConfig struct {
	ListenPort    int      `mapstructure:"ListenPort"`
	LogLevel      string   `mapstructure:"LogLevel"`
	LogFilePath   string   `mapstructure:"LogFilePath"`
	LogMaxSize    int      `mapstructure:"LogMaxSize"`
	LogMaxBackups int      `mapstructure:"LogMaxBackups"`
	LogCompress   bool     `mapstructure:"LogCompress"`
	Backend       string   `mapstructure:"Backend"`
	KeyPrefix     string   `mapstructure:"KeyPrefix"`
	ContentRoot   string   `mapstructure:"ContentRoot"`
	LoadTimeout   Duration `mapstructure:"LoadTimeout"`
}

// RedisConfig 描述外部 KV 服务的连接参数，仅在 Backend = "redis" 时生效。
type RedisConfig struct {
	Addr        string   `mapstructure:"Addr"`
	Password    string   `mapstructure:"Password"`
	DB          int      `mapstructure:"DB"`
	DialTimeout Duration `mapstructure:"DialTimeout"`
}

// Config 是 TOML 文件映射的整体结构。
type Config struct {
	Global GlobalConfig `mapstructure:",squash"`
	Redis  RedisConfig  `mapstructure:"Redis"`
}

// UsesRedis 表示当前配置是否选择了外部 KV 后端。
func (c *Config) UsesRedis() bool {
	return c.Global.Backend == BackendRedis
}
