package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/cache-hub/cache-hub/internal/cache"
	"github.com/cache-hub/cache-hub/internal/config"
	"github.com/cache-hub/cache-hub/internal/logging"
	"github.com/cache-hub/cache-hub/internal/server"
	"github.com/cache-hub/cache-hub/internal/server/routes"
	"github.com/cache-hub/cache-hub/internal/store"
	"github.com/cache-hub/cache-hub/internal/version"
)

// cliOptions 汇总 CLI 标志解析后的结果，便于在测试中注入。
type cliOptions struct {
	configPath  string
	checkOnly   bool
	showVersion bool
}

var (
	stdOut io.Writer = os.Stdout
	stdErr io.Writer = os.Stderr
)

func main() {
	opts, err := parseCLIFlags(os.Args[1:])
	if err != nil {
		fmt.Fprintln(stdErr, err.Error())
		os.Exit(2)
	}
	os.Exit(run(opts))
}

// run 根据解析到的 CLI 选项执行业务流程，并返回退出码，方便测试。
func run(opts cliOptions) int {
	if opts.showVersion {
		printVersion()
		return 0
	}

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		fmt.Fprintf(stdErr, "加载配置失败: %v\n", err)
		return 1
	}

	logger, err := logging.InitLogger(cfg.Global)
	if err != nil {
		fmt.Fprintf(stdErr, "初始化日志失败: %v\n", err)
		return 1
	}

	if opts.checkOnly {
		fields := logging.BaseFields("check_config", opts.configPath)
		fields["backend"] = cfg.Global.Backend
		fields["key_prefix"] = cfg.Global.KeyPrefix
		fields["result"] = "ok"
		logger.WithFields(fields).Info("配置校验通过")
		return 0
	}

	// 启动遵循“配置 → 后端存储 → 读穿透缓存 → Fiber server”顺序，
	// 所有请求共享同一个缓存实例，后端在此处一次性选定、之后不再切换。
	backing, err := buildStore(cfg)
	if err != nil {
		fmt.Fprintf(stdErr, "初始化后端存储失败: %v\n", err)
		return 1
	}
	defer backing.Close()

	loader, err := cache.FileLoader(cfg.Global.ContentRoot)
	if err != nil {
		fmt.Fprintf(stdErr, "初始化 Loader 失败: %v\n", err)
		return 1
	}

	contentCache, err := cache.New(backing, loader)
	if err != nil {
		fmt.Fprintf(stdErr, "初始化缓存失败: %v\n", err)
		return 1
	}

	fields := logging.BaseFields("startup", opts.configPath)
	fields["backend"] = cfg.Global.Backend
	fields["content_root"] = cfg.Global.ContentRoot
	fields["listen_port"] = cfg.Global.ListenPort
	fields["version"] = version.Full()
	logger.WithFields(fields).Info("配置加载完成")

	if err := startHTTPServer(cfg, contentCache, logger); err != nil {
		fmt.Fprintf(stdErr, "HTTP 服务启动失败: %v\n", err)
		return 1
	}
	return 0
}

// buildStore 根据显式配置挑选后端，绝不做运行时探测或降级。
func buildStore(cfg *config.Config) (store.Store, error) {
	if cfg.UsesRedis() {
		client := store.NewRedisClient(
			cfg.Redis.Addr,
			cfg.Redis.Password,
			cfg.Redis.DB,
			cfg.Redis.DialTimeout.DurationValue(),
		)
		return store.NewRedis(client, cfg.Global.KeyPrefix)
	}
	return store.NewMemory(), nil
}

// parseCLIFlags 解析 CLI 参数，并结合环境变量计算最终的配置路径。
func parseCLIFlags(args []string) (cliOptions, error) {
	fs := flag.NewFlagSet("cache-hub", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var (
		configFlag string
		checkOnly  bool
		showVer    bool
	)

	fs.StringVar(&configFlag, "config", "", "配置文件路径（默认 ./config.toml，可被 CACHE_HUB_CONFIG 覆盖）")
	fs.BoolVar(&checkOnly, "check-config", false, "仅校验配置后退出")
	fs.BoolVar(&showVer, "version", false, "显示版本信息")

	if err := fs.Parse(args); err != nil {
		return cliOptions{}, fmt.Errorf("解析参数失败: %w", err)
	}

	path := os.Getenv("CACHE_HUB_CONFIG")
	if configFlag != "" {
		path = configFlag
	}
	if path == "" {
		path = "config.toml"
	}

	return cliOptions{
		configPath:  path,
		checkOnly:   checkOnly,
		showVersion: showVer,
	}, nil
}

func startHTTPServer(cfg *config.Config, contentCache server.ContentCache, logger *logrus.Logger) error {
	port := cfg.Global.ListenPort
	app, err := server.NewApp(server.AppOptions{
		Logger:      logger,
		Cache:       contentCache,
		ListenPort:  port,
		LoadTimeout: cfg.Global.LoadTimeout.DurationValue(),
	})
	if err != nil {
		return err
	}
	routes.RegisterAdminRoutes(app, routes.AdminOptions{
		Cache:     contentCache,
		Logger:    logger,
		KeyPrefix: cfg.Global.KeyPrefix,
		StartedAt: time.Now(),
	})

	logger.WithFields(logrus.Fields{
		"action": "listen",
		"port":   port,
	}).Info("Fiber 服务启动")

	return app.Listen(fmt.Sprintf(":%d", port))
}
