package server

import (
	"context"
	"errors"
	"io/fs"
	"strings"
	"time"

	"github.com/gofiber/fiber/v3"

	"github.com/cache-hub/cache-hub/internal/logging"
)

// readHandler 处理 GET /cache/<key>：命中直接返回存量内容，未命中触发加载。
// Loader 报 "源不存在" 映射为 404，其余加载/存储失败映射为 502。
func readHandler(opts AppOptions) fiber.Handler {
	return func(c fiber.Ctx) error {
		key := strings.TrimPrefix(c.Params("*"), "/")
		if strings.TrimSpace(key) == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "key_required",
			})
		}

		ctx := requestContext(c)
		if opts.LoadTimeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, opts.LoadTimeout)
			defer cancel()
		}

		start := time.Now()
		value, hit, err := opts.Cache.Read(ctx, key)

		fields := logging.RequestFields(key, string(opts.Cache.Backend()), RequestID(c), hit)
		fields["duration_ms"] = time.Since(start).Milliseconds()

		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				opts.Logger.WithFields(fields).Info("source not found")
				return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
					"error": "source_not_found",
				})
			}

			opts.Logger.WithFields(fields).WithError(err).Warn("cache read failed")
			return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
				"error": "read_failed",
			})
		}

		opts.Logger.WithFields(fields).Info("cache read")

		c.Set("X-Cache-Hit", hitLabel(hit))
		c.Set(fiber.HeaderContentType, fiber.MIMETextPlainCharsetUTF8)
		return c.SendString(value)
	}
}

func hitLabel(hit bool) string {
	if hit {
		return "hit"
	}
	return "miss"
}
