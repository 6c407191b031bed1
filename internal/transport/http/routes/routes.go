package routes

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/CoreDX1/File-Explorer-2/internal/infra/config"
	"github.com/CoreDX1/File-Explorer-2/internal/infra/security"
	"github.com/CoreDX1/File-Explorer-2/internal/transport/http/handlers"
	"github.com/CoreDX1/File-Explorer-2/internal/transport/http/middleware"
	"github.com/CoreDX1/File-Explorer-2/internal/usecase"
)

// ServiceSet groups the services the HTTP layer depends on.
type ServiceSet struct {
	Auth          *usecase.AuthService
	Registration  *usecase.RegistrationService
	Users         *usecase.UserService
	PasswordReset *usecase.PasswordResetService
}

// Dependencies encapsulates the objects required to register routes.
type Dependencies struct {
	Config      *config.AppConfig
	Logger      *zap.Logger
	RateLimiter *middleware.RateLimiter
	Services    ServiceSet
	Tokens      *security.TokenService
	Database    DatabaseChecker
	Cache       CacheChecker
}

// DatabaseChecker exposes readiness behaviour for database connections.
type DatabaseChecker interface {
	Ping(ctx context.Context) error
}

// CacheChecker exposes readiness behaviour for cache backends.
type CacheChecker interface {
	HealthCheck(ctx context.Context) error
}

// Register configures the Gin engine with routes and middleware.
func Register(deps Dependencies) *gin.Engine {
	if deps.Config.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.CORS(deps.Config.App.AllowedOrigins))
	r.Use(middleware.EnrichContext())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(deps.Logger))

	if metrics, err := middleware.NewHTTPMetrics(nil); err == nil {
		r.Use(metrics.Handler())
	} else if deps.Logger != nil {
		deps.Logger.Warn("HTTP metrics disabled", zap.Error(err))
	}

	healthOptions := make([]handlers.HealthOption, 0, 2)
	if deps.Database != nil {
		healthOptions = append(healthOptions, handlers.WithReadinessCheck("database", deps.Database.Ping))
	}
	if deps.Cache != nil {
		healthOptions = append(healthOptions, handlers.WithReadinessCheck("redis", deps.Cache.HealthCheck))
	}
	healthHandler := handlers.NewHealthHandler(healthOptions...)

	r.GET("/healthz", healthHandler.Status)
	r.GET("/readyz", healthHandler.Readiness)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	authHandler := handlers.NewAuthHandler(deps.Services.Auth, deps.Services.Registration)
	passwordHandler := handlers.NewPasswordHandler(deps.Services.PasswordReset)
	userHandler := handlers.NewUserHandler(deps.Services.Users)
	requireAuth := middleware.RequireAuth(deps.Tokens)

	api := r.Group("/api/v1")
	authGroup := api.Group("/auth")

	loginLimit, registerLimit, resetLimit := buildRateLimits(deps)

	authGroup.POST("/login", append(loginLimit, authHandler.Login)...)
	authGroup.POST("/register", append(registerLimit, authHandler.Register)...)
	authGroup.POST("/forgot-password", append(resetLimit, passwordHandler.ForgotPassword)...)
	authGroup.POST("/reset-password", passwordHandler.ResetPassword)
	authGroup.GET("/users/:id", requireAuth, userHandler.GetUser)
	authGroup.PUT("/edit-user/:id", requireAuth, userHandler.EditUser)

	return r
}

func buildRateLimits(deps Dependencies) (login, register, reset []gin.HandlerFunc) {
	if deps.RateLimiter == nil {
		return nil, nil, nil
	}

	cfg := deps.Config.RateLimit
	ip := middleware.ClientIPIdentifier()

	login = []gin.HandlerFunc{deps.RateLimiter.RateLimit(middleware.RateLimitRule{
		Name:       "login",
		Limit:      cfg.LoginMaxAttempts,
		Window:     cfg.WindowDuration,
		Identifier: ip,
	})}
	register = []gin.HandlerFunc{deps.RateLimiter.RateLimit(middleware.RateLimitRule{
		Name:       "register",
		Limit:      cfg.RegisterMaxAttempts,
		Window:     cfg.WindowDuration,
		Identifier: ip,
	})}
	reset = []gin.HandlerFunc{deps.RateLimiter.RateLimit(middleware.RateLimitRule{
		Name:       "password_reset",
		Limit:      cfg.PasswordResetMaxAttempts,
		Window:     cfg.WindowDuration,
		Identifier: ip,
	})}
	return login, register, reset
}
