package routes

import (
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/sirupsen/logrus"

	"github.com/cache-hub/cache-hub/internal/server"
	"github.com/cache-hub/cache-hub/internal/version"
)

// AdminOptions 汇总管理接口依赖，StartedAt 用于计算运行时长。
type AdminOptions struct {
	Cache     server.ContentCache
	Logger    *logrus.Logger
	KeyPrefix string
	StartedAt time.Time
}

// RegisterAdminRoutes 暴露 /-/ 管理接口：状态查询与两种清空操作。
func RegisterAdminRoutes(app *fiber.App, opts AdminOptions) {
	if app == nil || opts.Cache == nil || opts.Logger == nil {
		return
	}

	app.Get("/-/status", func(c fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"backend":        string(opts.Cache.Backend()),
			"key_prefix":     opts.KeyPrefix,
			"uptime_seconds": int64(time.Since(opts.StartedAt).Seconds()),
			"version":        version.Full(),
		})
	})

	app.Delete("/-/cache", func(c fiber.Ctx) error {
		removed, err := opts.Cache.Clear(c.Context())
		if err != nil {
			opts.Logger.WithError(err).Warn("cache clear failed")
			return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
				"error": "clear_failed",
			})
		}

		opts.Logger.WithFields(logrus.Fields{
			"action":  "cache_clear",
			"removed": removed,
		}).Info("cache cleared")

		return c.JSON(fiber.Map{
			"cleared": true,
			"removed": removed,
		})
	})

	app.Delete("/-/cache/all", func(c fiber.Ctx) error {
		if err := opts.Cache.FlushAll(c.Context()); err != nil {
			opts.Logger.WithError(err).Warn("cache flush failed")
			return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
				"error": "flush_failed",
			})
		}

		opts.Logger.WithFields(logrus.Fields{
			"action": "cache_flush_all",
		}).Info("cache flushed")

		return c.JSON(fiber.Map{
			"flushed": true,
		})
	})
}
