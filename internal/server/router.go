package server

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/recover"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/cache-hub/cache-hub/internal/store"
)

// ContentCache describes the read-through cache the HTTP layer depends on.
// It allows injecting fake caches during tests.
type ContentCache interface {
	Read(ctx context.Context, key string) (string, bool, error)
	Clear(ctx context.Context) (int, error)
	FlushAll(ctx context.Context) error
	Backend() store.Kind
}

// AppOptions controls how the Fiber application should behave on a specific port.
// LoadTimeout bounds a single read, covering both the store lookup and a
// loader invocation on miss; zero disables the bound.
type AppOptions struct {
	Logger      *logrus.Logger
	Cache       ContentCache
	ListenPort  int
	LoadTimeout time.Duration
}

const contextKeyRequestID = "_cachehub_request_id"

// NewApp builds a Fiber application with request-ID middleware, structured
// error handling, and the read endpoint mounted at /cache/*.
func NewApp(opts AppOptions) (*fiber.App, error) {
	if opts.Logger == nil {
		return nil, errors.New("logger is required")
	}
	if opts.Cache == nil {
		return nil, errors.New("cache is required")
	}
	if opts.ListenPort <= 0 {
		return nil, fmt.Errorf("invalid listen port: %d", opts.ListenPort)
	}

	app := fiber.New(fiber.Config{
		CaseSensitive: true,
	})

	app.Use(recover.New())
	app.Use(requestIDMiddleware())

	app.Get("/cache/*", readHandler(opts))

	return app, nil
}

// requestIDMiddleware 负责为每个请求生成 ID，并通过响应头回显。
func requestIDMiddleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		reqID := uuid.NewString()
		c.Locals(contextKeyRequestID, reqID)
		c.Set("X-Request-ID", reqID)
		return c.Next()
	}
}

// RequestID returns the request identifier stored by the middleware.
func RequestID(c fiber.Ctx) string {
	if value := c.Locals(contextKeyRequestID); value != nil {
		if reqID, ok := value.(string); ok {
			return reqID
		}
	}
	return ""
}

func requestContext(c fiber.Ctx) context.Context {
	ctx := c.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return ctx
}
