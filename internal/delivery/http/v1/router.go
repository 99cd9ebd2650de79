package v1

import (
	"time"

	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"recruitment-platform/config"
	"recruitment-platform/internal/authz"
	"recruitment-platform/internal/delivery/http/middleware"
	"recruitment-platform/internal/domain"
	"recruitment-platform/internal/realtime"
	"recruitment-platform/pkg/security"
)

type RouterDeps struct {
	AuthUC        domain.AuthUsecase
	JobUC         domain.JobUsecase
	ApplicationUC domain.ApplicationUsecase
	CompanyUC     domain.CompanyUsecase
	ResumeUC      domain.ResumeUsecase
	MessageUC     domain.MessageUsecase
	ProfileUC     domain.ProfileUsecase
	HealthUC      HealthChecker
	Tokens        middleware.TokenValidator
	Hub           *realtime.Hub
	// Redis backs the auth rate limiter when set
	Redis          *goredis.Client
	SecurityLogger *security.SecurityLogger
	Config         *config.Config
}

func NewRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()
	production := deps.Config.IsProduction()

	// Global Middlewares
	r.Use(middleware.CORSMiddleware(deps.Config.AllowedOrigins, production)) // CORS must be first!
	r.Use(gin.Recovery())
	r.Use(gin.Logger())
	r.Use(middleware.RequestID())
	r.Use(middleware.SecurityHeadersMiddleware(production))
	r.Use(middleware.ErrorHandler())

	apiLimitCfg := middleware.DefaultRateLimitConfig(deps.Redis)
	apiLimitCfg.Logger = deps.SecurityLogger

	api := r.Group("/api")
	api.Use(middleware.RateLimitMiddleware(apiLimitCfg))

	NewHealthHandler(api, deps.HealthUC)
	api.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	gate := Gate(func(op authz.Operation) gin.HandlerFunc {
		return middleware.RequirePermission(op, deps.SecurityLogger)
	})

	authLimitCfg := middleware.AuthRateLimitConfig(
		deps.Redis,
		deps.Config.RateLimitLoginThreshold,
		time.Duration(deps.Config.RateLimitWindowSeconds)*time.Second,
	)
	authLimitCfg.Logger = deps.SecurityLogger
	authLimit := middleware.RateLimitMiddleware(authLimitCfg)

	// Protected routes
	protected := api.Group("")
	protected.Use(middleware.AuthMiddleware(deps.Tokens, deps.SecurityLogger))

	NewAuthHandler(api, protected, deps.AuthUC, authLimit)
	if deps.ProfileUC != nil {
		NewProfileHandler(protected, deps.ProfileUC)
	}
	NewJobHandler(api, protected, deps.JobUC, gate)
	NewCompanyHandler(api, protected, deps.CompanyUC, gate)
	NewApplicationHandler(protected, deps.ApplicationUC, gate)
	NewResumeHandler(protected, deps.ResumeUC, gate)
	NewMessageHandler(protected, deps.MessageUC, gate)
	if deps.Hub != nil {
		NewChatHandler(protected, deps.Hub, deps.MessageUC, deps.Config.AllowedOrigins, production, gate)
	}

	return r
}
