package app

import (
	"context"
	"microhabits_backend/internal/config"
	"microhabits_backend/internal/controller"
	"microhabits_backend/internal/middleware"
	"microhabits_backend/internal/repository"
	"microhabits_backend/internal/service"
	"microhabits_backend/internal/web"
	"microhabits_backend/pkg/configwatcher"
	"microhabits_backend/pkg/database"
	"microhabits_backend/pkg/logger"
	"microhabits_backend/pkg/monitoring"
	"microhabits_backend/pkg/security"
	"microhabits_backend/pkg/tracing"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config *config.Config
	Router *gin.Engine
	DB     *gorm.DB
	Redis  *redis.Client

	limiter         security.Limiter
	tracerProvider  *sdktrace.TracerProvider
	mu              sync.Mutex
	configCallbacks []func(*config.Config)
}

type repositories struct {
	user         *repository.UserRepository
	challenge    *repository.ChallengeRepository
	progress     *repository.ProgressRepository
	gamification *repository.GamificationRepository
	community    *repository.CommunityRepository
}

type services struct {
	storage      *service.StorageService
	user         *service.UserService
	challenge    *service.ChallengeService
	progress     *service.ProgressService
	gamification *service.GamificationService
	community    *service.CommunityService
	report       *service.ReportService
}

type controllers struct {
	user         *controller.UserController
	challenge    *controller.ChallengeController
	progress     *controller.ProgressController
	gamification *controller.GamificationController
	community    *controller.CommunityController
	report       *controller.ReportController
	web          *controller.WebController
	health       *controller.HealthController
}

// RegisterConfigCallback 配置文件变更后按注册顺序回调
func (a *App) RegisterConfigCallback(callback func(*config.Config)) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.configCallbacks = append(a.configCallbacks, callback)
}

// ApplyConfig 把热更新后的配置分发给已注册的回调
func (a *App) ApplyConfig(cfg *config.Config) {
	a.mu.Lock()
	callbacks := make([]func(*config.Config), len(a.configCallbacks))
	copy(callbacks, a.configCallbacks)
	a.mu.Unlock()

	for _, callback := range callbacks {
		callback(cfg)
	}
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		user:         repository.NewUserRepository(db),
		challenge:    repository.NewChallengeRepository(db),
		progress:     repository.NewProgressRepository(db),
		gamification: repository.NewGamificationRepository(db),
		community:    repository.NewCommunityRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config) *services {
	s := &services{}

	s.storage = service.NewStorageService(&cfg.Storage)
	s.user = service.NewUserService(repos.user, s.storage)
	s.challenge = service.NewChallengeService(repos.challenge)
	s.progress = service.NewProgressService(repos.progress, repos.user, repos.challenge)
	s.gamification = service.NewGamificationService(repos.gamification, repos.user)
	s.community = service.NewCommunityService(repos.community, repos.user)
	s.report = service.NewReportService(repos.gamification, repos.user, s.storage, cfg.Report.Title, cfg.Report.Archive)

	return s
}

func (a *App) initControllers(s *services) *controllers {
	return &controllers{
		user:         controller.NewUserController(s.user, s.progress, s.gamification, s.community),
		challenge:    controller.NewChallengeController(s.challenge),
		progress:     controller.NewProgressController(s.progress),
		gamification: controller.NewGamificationController(s.gamification),
		community:    controller.NewCommunityController(s.community),
		report:       controller.NewReportController(s.report),
		web:          controller.NewWebController(s.user, s.challenge, s.community, s.report),
		health:       controller.NewHealthController(a.DB, a.Redis),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(middleware.RequestID())
	router.Use(middleware.Recovery())
	router.Use(middleware.AccessLog())
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())

	if a.Redis != nil {
		a.limiter = security.NewRedisLimiter(a.Redis, cfg.RateLimit.MaxRequests, cfg.RateLimit.Window())
	} else {
		a.limiter = security.NewMemoryLimiter(cfg.RateLimit.MaxRequests, cfg.RateLimit.Window())
	}
	router.Use(security.RateLimit(a.limiter))

	// 分布式追踪中间件
	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

// New 基于已建立的连接组装路由，rdb 可为 nil
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client) (*App, error) {
	app := &App{
		Config: cfg,
		DB:     db,
		Redis:  rdb,
	}

	repos := app.initRepositories(db)
	services := app.initServices(repos, cfg)
	controllers := app.initControllers(services)

	// 监控初始化
	monitoring.Init()

	gin.SetMode(ginMode(cfg.Server.Mode))
	router := gin.New()
	app.Router = router

	templates, err := web.Templates()
	if err != nil {
		return nil, err
	}
	router.SetHTMLTemplate(templates)

	app.setupMiddlewares(router, cfg)
	app.registerRoutes(router, controllers)

	// 按实际选用的存储挂载，远端初始化失败回退本地时同样可访问
	if services.storage.IsLocal() {
		router.Static("/uploads", services.storage.LocalRoot())
	}

	app.RegisterConfigCallback(func(newCfg *config.Config) {
		logger.SetMode(newCfg.Server.Mode)
	})
	app.RegisterConfigCallback(func(newCfg *config.Config) {
		app.limiter.SetLimit(newCfg.RateLimit.MaxRequests, newCfg.RateLimit.Window())
	})

	return app, nil
}

func ginMode(mode string) string {
	switch mode {
	case gin.ReleaseMode, gin.TestMode:
		return mode
	default:
		return gin.DebugMode
	}
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)
	logger.Log.Info("Logger initialized successfully")

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
	}

	if cfg.MigrateOnly {
		return &App{Config: cfg, DB: db}
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		logger.Log.Fatal("Failed to initialize redis", zap.Error(err))
	}

	app, err := New(cfg, db, rdb)
	if err != nil {
		logger.Log.Fatal("Failed to build application", zap.Error(err))
	}

	if cfg.Tracing.Enabled {
		serviceName := cfg.Tracing.ServiceName
		if serviceName == "" {
			serviceName = "microhabits-backend"
		}
		tp, err := tracing.InitTracer(serviceName, cfg.Tracing.CollectorEndpoint)
		if err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
		app.tracerProvider = tp
	}

	return app
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:         ":" + a.Config.Server.Port,
		Handler:      a.Router,
		ReadTimeout:  a.Config.Server.ReadTimeout,
		WriteTimeout: a.Config.Server.WriteTimeout,
	}

	if a.Config.ConfigPath != "" {
		go configwatcher.WatchConfig(a.Config.ConfigPath, a.ApplyConfig)
	}

	// 启动服务器
	go func() {
		logger.Log.Info("Server running", zap.String("port", a.Config.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Fatal("listen", zap.Error(err))
		}
	}()

	// 等待中断信号优雅地关闭服务器（设置5秒的超时时间）
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Error("Server forced to shutdown", zap.Error(err))
	}

	if a.tracerProvider != nil {
		if err := a.tracerProvider.Shutdown(ctx); err != nil {
			logger.Log.Error("Failed to shutdown tracer provider", zap.Error(err))
		}
	}
	if a.Redis != nil {
		a.Redis.Close()
	}
	if sqlDB, err := a.DB.DB(); err == nil {
		sqlDB.Close()
	}

	logger.Log.Info("Server exiting")
}
