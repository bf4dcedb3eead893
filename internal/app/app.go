package app

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"lab_platform_backend/internal/config"
	"lab_platform_backend/internal/controller"
	"lab_platform_backend/internal/repository"
	"lab_platform_backend/internal/service"
	"lab_platform_backend/pkg/database"
	"lab_platform_backend/pkg/logger"
	"lab_platform_backend/pkg/monitoring"
	"lab_platform_backend/pkg/security"
	"lab_platform_backend/pkg/tracing"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config   *config.Config
	Router   *gin.Engine
	DB       *gorm.DB
	Redis    *redis.Client
	services *services
}

type repositories struct {
	user           *repository.UserRepository
	lab            *repository.LabRepository
	student        *repository.StudentRepository
	labStatus      *repository.LabStatusRepository
	labProgress    *repository.LabProgressRepository
	labGrade       *repository.LabGradeRepository
	submission     *repository.SubmissionRepository
	partSubmission *repository.PartSubmissionRepository
}

type services struct {
	storage        *service.StorageService
	auth           *service.AuthService
	lab            *service.LabService
	submission     *service.SubmissionService
	partSubmission *service.PartSubmissionService
	roster         *service.RosterService
	importer       *service.ImportService
}

type controllers struct {
	auth           *controller.AuthController
	lab            *controller.LabController
	student        *controller.StudentController
	progress       *controller.ProgressController
	submission     *controller.SubmissionController
	partSubmission *controller.PartSubmissionController
	health         *controller.HealthController
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		user:           repository.NewUserRepository(db),
		lab:            repository.NewLabRepository(db),
		student:        repository.NewStudentRepository(db),
		labStatus:      repository.NewLabStatusRepository(db),
		labProgress:    repository.NewLabProgressRepository(db),
		labGrade:       repository.NewLabGradeRepository(db),
		submission:     repository.NewSubmissionRepository(db),
		partSubmission: repository.NewPartSubmissionRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config, rdb *redis.Client) (*services, error) {
	storage, err := service.NewStorageService(cfg)
	if err != nil {
		return nil, err
	}

	mailer := &service.ConsoleMailer{Logger: logger.Log}

	s := &services{storage: storage}
	s.auth = service.NewAuthService(repos.user, repos.student, rdb, mailer, cfg, logger.Log)
	s.lab = service.NewLabService(repos.lab, repos.labStatus, repos.submission, logger.Log)
	s.submission = service.NewSubmissionService(repos.submission, repos.labStatus, storage, logger.Log)
	s.partSubmission = service.NewPartSubmissionService(repos.partSubmission, repos.labProgress, repos.student, storage, logger.Log)
	s.roster = service.NewRosterService(repos.student, repos.lab, repos.labStatus, repos.labGrade, repos.labProgress, repos.submission, logger.Log)
	s.importer = service.NewImportService(repos.lab, repos.student, repos.labStatus, repos.labGrade, repos.labProgress, logger.Log)
	return s, nil
}

func (a *App) initControllers(s *services, db *gorm.DB) *controllers {
	return &controllers{
		auth:           controller.NewAuthController(s.auth),
		lab:            controller.NewLabController(s.lab),
		student:        controller.NewStudentController(s.roster),
		progress:       controller.NewProgressController(s.roster),
		submission:     controller.NewSubmissionController(s.submission),
		partSubmission: controller.NewPartSubmissionController(s.partSubmission),
		health:         controller.NewHealthController(db),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())

	maxRequests := cfg.RateLimit.MaxRequests
	if maxRequests <= 0 {
		maxRequests = 1000
	}
	window := time.Duration(cfg.RateLimit.WindowMinutes) * time.Minute
	if window <= 0 {
		window = time.Minute
	}
	router.Use(security.RateLimiter(maxRequests, window))

	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

// ImportService 供命令行导入流程使用
func (a *App) ImportService() *service.ImportService {
	return a.services.importer
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)

	logger.Log.Info("Logger initialized successfully")

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
	}

	if cfg.Server.Mode != "release" || cfg.ForceMigrate {
		if err := database.Migrate(db); err != nil {
			logger.Log.Fatal("Failed to migrate database", zap.Error(err))
		}
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		logger.Log.Fatal("Failed to initialize redis", zap.Error(err))
	}

	app := &App{
		Config: cfg,
		DB:     db,
		Redis:  rdb,
	}

	repos := app.initRepositories(db)
	services, err := app.initServices(repos, cfg, rdb)
	if err != nil {
		logger.Log.Fatal("Failed to initialize services", zap.Error(err))
	}
	app.services = services
	controllers := app.initControllers(services, db)

	monitoring.Init()

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		if _, err := tracing.InitTracer("lab-platform", cfg.Tracing.CollectorEndpoint); err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
	}

	app.registerRoutes(router, controllers, cfg)

	if cfg.Storage.Type == "local" {
		router.Static("/uploads", cfg.Storage.LocalPath)
	}

	return app
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	go func() {
		log.Printf("Server running on port %s", a.Config.Server.Port)
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
