package main

import (
	"context"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"recruitment-platform/config"
	_ "recruitment-platform/docs" // Important for Swagger
	v1 "recruitment-platform/internal/delivery/http/v1"
	"recruitment-platform/internal/domain"
	"recruitment-platform/internal/events"
	"recruitment-platform/internal/realtime"
	"recruitment-platform/internal/repository/postgres"
	"recruitment-platform/internal/usecase"
	"recruitment-platform/pkg/database"
	"recruitment-platform/pkg/logger"
	"recruitment-platform/pkg/redis"
	"recruitment-platform/pkg/security"
	"recruitment-platform/pkg/storage"
	"recruitment-platform/pkg/token"
	"recruitment-platform/pkg/validation"
)

// @title           Recruitment Platform API
// @version         1.0
// @description     Job board backend: accounts, companies, jobs, applications, resumes and chat.
// @host            localhost:8080
// @BasePath        /api
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 2. Setup Loggers
	logger.Init()
	logger.Log.Info("Starting recruitment platform", "port", cfg.Port, "env", cfg.AppEnv)
	secLogger := security.InitSecurityLogger("recruitment-platform", cfg.AppEnv)
	defer secLogger.Sync()

	zapLogger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to build zap logger: %v", err)
	}
	defer zapLogger.Sync()

	rootCtx, stop := context.WithCancel(context.Background())
	defer stop()

	// 3. Setup Database
	dbPool, err := database.NewPostgresConnection(rootCtx, cfg.DBUrl)
	if err != nil {
		logger.Log.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer dbPool.Close()

	// 4. Setup Redis (optional)
	var redisClient *goredis.Client
	if cfg.RedisURL != "" {
		rc, err := redis.New(rootCtx, redis.Config{URL: cfg.RedisURL, Password: cfg.RedisPassword})
		if err != nil {
			logger.Log.Warn("Redis unavailable - running single instance", "error", err)
		} else {
			redisClient = rc
			defer redisClient.Close()
		}
	}

	// 5. Setup Token Service
	tokens, err := token.NewService(cfg.JWTSecret, cfg.JWTExpiration)
	if err != nil {
		logger.Log.Error("Invalid JWT configuration", "error", err)
		os.Exit(1)
	}

	// 6. Setup Event Publisher
	var publisher domain.EventPublisher = events.NopPublisher{}
	if len(cfg.KafkaBrokers) > 0 {
		producer := events.NewProducer(cfg.KafkaBrokers, cfg.KafkaTopic, zapLogger)
		defer producer.Close()
		publisher = producer
		logger.Log.Info("Kafka publisher enabled", "topic", cfg.KafkaTopic)
	}

	// 7. Setup Realtime Delivery
	hub := realtime.NewHub()
	var notifier domain.Notifier = hub
	if redisClient != nil {
		broker := realtime.NewRedisBroker(redisClient, hub)
		notifier = broker
		go func() {
			if err := broker.Run(rootCtx); err != nil && rootCtx.Err() == nil {
				logger.Log.Error("Chat relay stopped", "error", err)
			}
		}()
	}

	// 8. Setup Object Storage (optional)
	var objectStore domain.ObjectStore
	storageCfg := storage.Config{
		AccessKeyID:     cfg.S3AccessKeyID,
		SecretAccessKey: cfg.S3SecretKey,
		Region:          cfg.S3Region,
		Bucket:          cfg.S3Bucket,
		Endpoint:        cfg.S3Endpoint,
		PublicBaseURL:   cfg.S3PublicBaseURL,
	}
	if storageCfg.Enabled() {
		s3Client, err := storage.NewS3Client(rootCtx, storageCfg)
		if err != nil {
			logger.Log.Warn("Object storage unavailable - picture uploads disabled", "error", err)
		} else {
			objectStore = storage.NewS3Store(s3Client, storageCfg)
		}
	}

	// 9. Setup Repositories
	userRepo := postgres.NewUserRepository(dbPool)
	companyRepo := postgres.NewCompanyRepository(dbPool)
	jobRepo := postgres.NewJobRepository(dbPool)
	applicationRepo := postgres.NewApplicationRepository(dbPool)
	resumeRepo := postgres.NewResumeRepository(dbPool)
	messageRepo := postgres.NewMessageRepository(dbPool)

	// 10. Setup UseCases
	trackerCfg := security.DefaultLoginTrackerConfig()
	if cfg.FailedLoginMaxAttempts > 0 {
		trackerCfg.MaxAttempts = cfg.FailedLoginMaxAttempts
	}
	if cfg.FailedLoginBlockMinutes > 0 {
		trackerCfg.BlockDuration = time.Duration(cfg.FailedLoginBlockMinutes) * time.Minute
	}
	loginTracker := security.NewLoginTracker(trackerCfg, redisClient, secLogger)

	authUC := usecase.NewAuthUsecase(userRepo, tokens, loginTracker, secLogger)
	companyUC := usecase.NewCompanyUsecase(companyRepo)
	jobUC := usecase.NewJobUsecase(jobRepo, companyRepo, publisher)
	applicationUC := usecase.NewApplicationUsecase(applicationRepo, jobRepo, publisher)
	resumeUC := usecase.NewResumeUsecase(resumeRepo)
	messageUC := usecase.NewMessageUsecase(messageRepo, userRepo, notifier, publisher)
	profileUC := usecase.NewProfileUsecase(userRepo, objectStore)

	checks := map[string]usecase.HealthCheck{
		"database": func(ctx context.Context) error { return dbPool.Ping(ctx) },
	}
	if redisClient != nil {
		checks["redis"] = redis.HealthCheck(redisClient)
	}
	healthUC := usecase.NewHealthUsecase(checks)

	// 11. Setup Router
	validation.RegisterWithGin()
	router := v1.NewRouter(v1.RouterDeps{
		AuthUC:         authUC,
		JobUC:          jobUC,
		ApplicationUC:  applicationUC,
		CompanyUC:      companyUC,
		ResumeUC:       resumeUC,
		MessageUC:      messageUC,
		ProfileUC:      profileUC,
		HealthUC:       healthUC,
		Tokens:         tokens,
		Hub:            hub,
		Redis:          redisClient,
		SecurityLogger: secLogger,
		Config:         cfg,
	})

	// 12. Start Server
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return rootCtx },
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Error("Listen failed", "error", err)
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")

	// Cancels open chat sockets and the relay
	stop()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Error("Server forced to shutdown", "error", err)
	}

	logger.Log.Info("Server exiting")
}
