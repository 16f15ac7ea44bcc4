package config

import (
	"errors"
	"strings"
)

var supportedBackends = map[string]struct{}{
	BackendMemory: {},
	BackendRedis:  {},
}

const supportedBackendList = "memory|redis"

// Validate 针对语义级别做进一步校验，防止非法配置启动服务。
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("配置为空")
	}

	g := c.Global
	if g.ListenPort <= 0 || g.ListenPort > 65535 {
		return newFieldError("Global.ListenPort", "必须在 1-65535")
	}
	if _, ok := supportedBackends[g.Backend]; !ok {
		return newFieldError("Global.Backend", "仅支持 "+supportedBackendList)
	}
	if strings.TrimSpace(g.KeyPrefix) == "" {
		return newFieldError("Global.KeyPrefix", "不能为空")
	}
	if strings.ContainsAny(g.KeyPrefix, " \t") {
		return newFieldError("Global.KeyPrefix", "不能包含空白字符")
	}
	if g.ContentRoot == "" {
		return newFieldError("Global.ContentRoot", "不能为空")
	}
	if g.LoadTimeout.DurationValue() <= 0 {
		return newFieldError("Global.LoadTimeout", "必须大于 0")
	}
	if g.LogMaxSize < 0 {
		return newFieldError("Global.LogMaxSize", "不能为负数")
	}
	if g.LogMaxBackups < 0 {
		return newFieldError("Global.LogMaxBackups", "不能为负数")
	}

	if c.UsesRedis() {
		r := c.Redis
		if strings.TrimSpace(r.Addr) == "" {
			return newFieldError(redisField("Addr"), "Backend 为 redis 时不能为空")
		}
		if r.DB < 0 {
			return newFieldError(redisField("DB"), "不能为负数")
		}
		if r.DialTimeout.DurationValue() <= 0 {
			return newFieldError(redisField("DialTimeout"), "必须大于 0")
		}
	}

	return nil
}
