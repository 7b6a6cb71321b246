package app

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/MuhammadUmair1152/Quiz-App-Backend/internal/config"
	"github.com/MuhammadUmair1152/Quiz-App-Backend/internal/controller"
	"github.com/MuhammadUmair1152/Quiz-App-Backend/internal/repository"
	"github.com/MuhammadUmair1152/Quiz-App-Backend/internal/service"
	"github.com/MuhammadUmair1152/Quiz-App-Backend/pkg/crypto"
	"github.com/MuhammadUmair1152/Quiz-App-Backend/pkg/database"
	"github.com/MuhammadUmair1152/Quiz-App-Backend/pkg/logger"
	"github.com/MuhammadUmair1152/Quiz-App-Backend/pkg/monitoring"
	"github.com/MuhammadUmair1152/Quiz-App-Backend/pkg/security"
	"github.com/MuhammadUmair1152/Quiz-App-Backend/pkg/tracing"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config *config.Config
	Router *gin.Engine
	DB     *gorm.DB
	Redis  *redis.Client
}

type repositories struct {
	user       *repository.UserRepository
	quiz       *repository.QuizRepository
	assignment *repository.AssignmentRepository
	result     *repository.ResultRepository
}

type services struct {
	quiz   *service.QuizService
	result *service.ResultService
}

type controllers struct {
	quiz   *controller.QuizController
	result *controller.ResultController
	health *controller.HealthController
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		user:       repository.NewUserRepository(db),
		quiz:       repository.NewQuizRepository(db),
		assignment: repository.NewAssignmentRepository(db),
		result:     repository.NewResultRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cipher *crypto.FieldCipher, rdb *redis.Client) *services {
	s := &services{}

	codec := service.NewQuestionCodec(cipher)
	s.quiz = service.NewQuizService(repos.quiz, repos.assignment, repos.result, codec, rdb)
	s.result = service.NewResultService(repos.result, repos.assignment, repos.quiz, repos.user)

	return s
}

func (a *App) initControllers(s *services, db *gorm.DB) *controllers {
	return &controllers{
		quiz:   controller.NewQuizController(s.quiz),
		result: controller.NewResultController(s.result),
		health: controller.NewHealthController(db),
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

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)

	logger.Log.Info("Logger initialized successfully")

	// 加密密钥不合法时拒绝启动，任何请求都不能在无密钥状态下处理
	cipher, err := crypto.New(cfg.Encryption.Key)
	if err != nil {
		logger.Log.Fatal("Failed to initialize field cipher", zap.Error(err))
	}

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
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
	services := app.initServices(repos, cipher, rdb)
	controllers := app.initControllers(services, db)

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		if _, err := tracing.InitTracer("quiz-app-backend", cfg.Tracing.CollectorEndpoint); err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
	}

	app.registerRoutes(router, controllers, repos, cfg)

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

	// 等待中断信号优雅地关闭服务器
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
