package app

import (
	"context"
	"log"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"lingua_edu_backend/internal/config"
	"lingua_edu_backend/internal/controller"
	"lingua_edu_backend/internal/repository"
	"lingua_edu_backend/internal/service"
	"lingua_edu_backend/pkg/contentwatcher"
	"lingua_edu_backend/pkg/logger"
	"lingua_edu_backend/pkg/monitoring"
	"lingua_edu_backend/pkg/security"
	"lingua_edu_backend/pkg/tracing"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type App struct {
	Config  *config.Config
	Router  *gin.Engine
	Catalog *repository.CatalogRepository
	State   *repository.StateRepository

	services *services
}

type services struct {
	srs         *service.SrsService
	selector    *service.SelectorService
	progress    *service.ProgressService
	lessons     *service.LessonService
	achievement *service.AchievementService
	learning    *service.LearningService
	user        *service.UserService
}

type controllers struct {
	catalog  *controller.CatalogController
	learning *controller.LearningController
	progress *controller.ProgressController
	user     *controller.UserController
	health   *controller.HealthController
}

func (a *App) initServices(cfg *config.Config) *services {
	s := &services{}

	s.srs = service.NewSrsService()
	s.selector = service.NewSelectorService(a.Catalog, s.srs, rand.New(rand.NewSource(time.Now().UnixNano())))
	s.progress = service.NewProgressService(a.State)
	s.lessons = service.NewLessonService(a.Catalog, a.State)
	s.achievement = service.NewAchievementService()
	s.learning = service.NewLearningService(a.Catalog, a.State, s.srs, s.selector, s.progress, s.lessons, s.achievement)
	s.user = service.NewUserService(a.State)

	return s
}

func (a *App) initControllers(s *services) *controllers {
	return &controllers{
		catalog:  controller.NewCatalogController(a.Catalog),
		learning: controller.NewLearningController(s.learning),
		progress: controller.NewProgressController(s.lessons, s.progress),
		user:     controller.NewUserController(s.user, a.Config),
		health:   controller.NewHealthController(a.Catalog),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())

	window := time.Duration(cfg.RateLimit.WindowMinutes) * time.Minute
	if window <= 0 {
		window = time.Minute
	}
	maxRequests := cfg.RateLimit.MaxRequests
	if maxRequests <= 0 {
		maxRequests = 1000
	}
	router.Use(security.RateLimiter(maxRequests, window))

	// 分布式追踪中间件
	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

// setupStatic 托管前端静态资源。未匹配到路由且路径不带扩展名时回退到
// index.html，交给前端路由处理
func (a *App) setupStatic(router *gin.Engine, publicDir string) {
	absPublic, err := filepath.Abs(publicDir)
	if err != nil {
		logger.Log.Warn("static dir unavailable", zap.String("dir", publicDir), zap.Error(err))
		return
	}

	router.NoRoute(func(c *gin.Context) {
		if c.Request.Method != http.MethodGet && c.Request.Method != http.MethodHead {
			c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
			return
		}
		if strings.HasPrefix(c.Request.URL.Path, "/api/") {
			c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
			return
		}

		reqPath := c.Request.URL.Path
		if reqPath == "/" {
			reqPath = "/index.html"
		}
		full := filepath.Join(absPublic, filepath.Clean("/"+reqPath))
		if !strings.HasPrefix(full, absPublic) {
			c.String(http.StatusForbidden, "Forbidden")
			return
		}

		if info, err := os.Stat(full); err == nil && !info.IsDir() {
			c.File(full)
			return
		}

		// 无扩展名的路径视为前端路由
		if filepath.Ext(reqPath) == "" {
			index := filepath.Join(absPublic, "index.html")
			if _, err := os.Stat(index); err == nil {
				c.File(index)
				return
			}
		}
		c.String(http.StatusNotFound, "Not found")
	})
}

func NewApp(cfg *config.Config) (*App, error) {
	logger.InitLogger(cfg.Server.Mode)

	logger.Log.Info("Logger initialized successfully")

	catalog := repository.NewCatalogRepository(cfg.Content.Dir)
	if err := catalog.Load(); err != nil {
		return nil, err
	}

	state, err := repository.NewStateRepository(cfg.State.File)
	if err != nil {
		return nil, err
	}

	app := &App{
		Config:  cfg,
		Catalog: catalog,
		State:   state,
	}

	services := app.initServices(cfg)
	app.services = services
	controllers := app.initControllers(services)

	// 监控初始化
	monitoring.Init()

	if cfg.Server.Mode != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		if _, err := tracing.InitTracer("lingua-edu", cfg.Tracing.CollectorEndpoint); err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
	}

	app.registerRoutes(router, controllers)
	app.setupStatic(router, cfg.Static.Dir)

	// 内容目录变化时自动刷新题库
	if cfg.Content.Watch {
		go contentwatcher.Watch(cfg.Content.Dir, func() {
			if err := catalog.Load(); err != nil {
				logger.Log.Error("catalog reload failed", zap.Error(err))
			}
		})
	}

	return app, nil
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	// 启动服务器
	go func() {
		log.Printf("LinguaEdu server running at http://localhost:%s", a.Config.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// 等待中断信号优雅地关闭服务器（设置5秒的超时时间）
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exiting")
}
