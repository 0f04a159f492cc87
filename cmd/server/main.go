package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata" // 确保在精简镜像中也能识别时区

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/user/blog/internal/config"
	"github.com/user/blog/internal/handler"
	"github.com/user/blog/internal/middleware"
	"github.com/user/blog/internal/repository"
	"github.com/user/blog/internal/router"
	"github.com/user/blog/internal/service"
	"github.com/user/blog/internal/utils"
)

func main() {
	// 加载环境变量
	if err := godotenv.Load(); err != nil {
		utils.LogInfo("未找到 .env 文件，使用系统环境变量")
	}

	// 加载配置
	cfg, err := config.Load()
	if err != nil {
		utils.Logger.Fatalf("配置加载失败: %v", err)
	}
	utils.SetLogLevel(cfg.LogLevel)

	// 初始化数据库
	db, err := repository.InitDB(cfg.DatabaseURL)
	if err != nil {
		utils.Logger.Fatalf("数据库连接失败: %v", err)
	}

	sqlDB, _ := db.DB()
	defer sqlDB.Close()

	if cfg.AutoMigrate {
		if err := repository.Migrate(db); err != nil {
			utils.Logger.Fatalf("%v", err)
		}
	}

	// 初始化仓库
	repos := repository.NewRepositories(db)

	// 缩略图存储
	thumbnails := service.NewThumbnailStorage(cfg.SupabaseURL, cfg.SupabaseServiceKey, cfg.StorageBucket, cfg.StoragePublicBaseURL)
	if !cfg.StorageEnabled() {
		utils.Logger.Warn("未配置 SUPABASE_SERVICE_KEY，缩略图上传不可用")
	}

	// 授权门
	var provider service.SessionProvider
	switch cfg.AuthMode {
	case config.AuthModeJWT:
		provider = service.NewJWTSessionProvider(cfg.JWTSecret)
	default:
		provider = service.NewSupabaseSessionProvider(cfg.SupabaseURL, cfg.SupabaseAnonKey, cfg.AuthTimeout)
	}
	gate := service.NewGate(provider)

	// 初始化 Handler
	h := handler.NewHandler(repos, thumbnails, cfg,
		handler.Probe{Name: "database", Check: repos.Ping},
		handler.Probe{Name: "storage", Check: func(context.Context) error { return thumbnails.Ping() }},
	)

	// 初始化 Gin
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())

	// 启用 gzip，默认压缩级别
	r.Use(gzip.Gzip(gzip.DefaultCompression))

	// 中间件
	r.Use(middleware.Logger())
	r.Use(middleware.APIVersion())
	r.Use(middleware.Security())
	r.Use(middleware.CORS(cfg.CORSOrigins))

	// 注册路由
	router.RegisterRoutes(r, h, gate)

	srv := &http.Server{
		Addr:           ":" + cfg.Port,
		Handler:        r,
		ReadTimeout:    30 * time.Second,
		WriteTimeout:   30 * time.Second,
		MaxHeaderBytes: 1 << 20,
	}

	// 在 goroutine 中启动服务器，这样我们就可以监听信号
	go func() {
		utils.LogInfo("服务器启动于 http://localhost:" + cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			utils.Logger.Fatalf("服务器启动失败: %v", err)
		}
	}()

	// 等待中断信号以优雅地关闭服务器
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	utils.LogInfo("正在关闭服务器...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		utils.LogError(err, "服务器强制关闭")
	}

	utils.LogSuccess("服务器已退出")
}
