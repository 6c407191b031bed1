package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/CoreDX1/File-Explorer-2/internal/core/domain"
	"github.com/CoreDX1/File-Explorer-2/internal/core/port"
	"github.com/CoreDX1/File-Explorer-2/internal/infra/config"
	kafkainfra "github.com/CoreDX1/File-Explorer-2/internal/infra/kafka"
	"github.com/CoreDX1/File-Explorer-2/internal/infra/logger"
	redisinfra "github.com/CoreDX1/File-Explorer-2/internal/infra/redis"
	"github.com/CoreDX1/File-Explorer-2/internal/infra/security"
	"github.com/CoreDX1/File-Explorer-2/internal/infra/telemetry"
	postgresrepo "github.com/CoreDX1/File-Explorer-2/internal/repository/postgres"
	redisrepo "github.com/CoreDX1/File-Explorer-2/internal/repository/redis"
	"github.com/CoreDX1/File-Explorer-2/internal/transport/http/middleware"
	"github.com/CoreDX1/File-Explorer-2/internal/transport/http/routes"
	"github.com/CoreDX1/File-Explorer-2/internal/usecase"
)

// Application owns the wired object graph and the HTTP server lifecycle.
type Application struct {
	cfg      *config.AppConfig
	engine   *gin.Engine
	logger   *zap.Logger
	store    *postgresrepo.Store
	redis    *redisinfra.Client
	producer *kafkainfra.Producer
	tracer   *telemetry.TracerProvider
}

type securityMetrics struct {
	provider *telemetry.Provider
}

func (m securityMetrics) IncLoginFailure() { m.provider.LoginFailures().Inc() }
func (m securityMetrics) IncLockout()     { m.provider.Lockouts().Inc() }

// New wires configuration into the full application.
func New(ctx context.Context, cfg *config.AppConfig) (*Application, error) {
	log, err := logger.New(cfg.App.Env)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	provider, err := telemetry.Attach(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("init telemetry: %w", err)
	}

	var tracer *telemetry.TracerProvider
	if cfg.Telemetry.OTLPEndpoint != "" {
		tracer, err = telemetry.NewTracerProvider(ctx, cfg.Telemetry, log)
		if err != nil {
			log.Warn("tracing disabled", zap.Error(err))
			tracer = nil
		}
	}

	store, err := postgresrepo.NewStore(ctx, cfg.Postgres)
	if err != nil {
		return nil, fmt.Errorf("init postgres: %w", err)
	}

	redisClient, err := redisinfra.NewClient(ctx, cfg.Redis, log)
	if err != nil {
		store.Close()
		return nil, fmt.Errorf("init redis: %w", err)
	}

	hasher, err := security.NewPasswordHasher(security.Argon2Params{
		Memory:      cfg.Argon2.Memory,
		Iterations:  cfg.Argon2.Iterations,
		Parallelism: cfg.Argon2.Parallelism,
		SaltLength:  cfg.Argon2.SaltLength,
		KeyLength:   cfg.Argon2.KeyLength,
	})
	if err != nil {
		store.Close()
		_ = redisClient.Close()
		return nil, fmt.Errorf("init password hasher: %w", err)
	}

	tokens, err := security.NewTokenService(
		cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.Audience, cfg.JWT.AccessTokenTTL,
	)
	if err != nil {
		store.Close()
		_ = redisClient.Close()
		return nil, fmt.Errorf("init token service: %w", err)
	}

	var (
		mailer   port.ResetMailer
		producer *kafkainfra.Producer
	)
	if len(cfg.Kafka.Brokers) > 0 {
		producer, err = kafkainfra.NewProducer(cfg.Kafka, log)
		if err != nil {
			log.Warn("failed to init kafka producer, using stub mailer", zap.Error(err))
			mailer = kafkainfra.NewStubMailer(log)
		} else {
			mailer = kafkainfra.NewResetMailer(producer, cfg.App, log)
		}
	} else {
		log.Info("kafka brokers not configured, using stub mailer")
		mailer = kafkainfra.NewStubMailer(log)
	}

	users := postgresrepo.NewUserStore(store.Pool())

	attemptLog := redisrepo.NewAttemptLog(redisClient.Client(), cfg.Redis.RateLimitPrefix)
	rateLimiter := middleware.NewRateLimiter(attemptLog, log)

	lockout := domain.LockoutOptions{
		MaxFailedAccessAttempts: cfg.Lockout.MaxFailedAccessAttempts,
		DefaultLockoutTimeSpan:  cfg.Lockout.LockoutTimeSpan,
		AllowedForNewUser:       cfg.Lockout.AllowedForNewUser,
	}
	strength := security.NewStrengthChecker(cfg.Password.MinStrengthScore)

	authService := usecase.NewAuthService(users, hasher, tokens, lockout, log).
		WithMetrics(securityMetrics{provider: provider})
	registrationService := usecase.NewRegistrationService(users, hasher, tokens, strength, log)
	userService := usecase.NewUserService(users, hasher, log)
	passwordResetService := usecase.NewPasswordResetService(
		users, mailer, hasher, strength, cfg.Password.ResetTokenTTL, log,
	)

	engine := routes.Register(routes.Dependencies{
		Config:      cfg,
		Logger:      log,
		RateLimiter: rateLimiter,
		Tokens:      tokens,
		Database:    store,
		Cache:       redisClient,
		Services: routes.ServiceSet{
			Auth:          authService,
			Registration:  registrationService,
			Users:         userService,
			PasswordReset: passwordResetService,
		},
	})

	return &Application{
		cfg:      cfg,
		engine:   engine,
		logger:   log,
		store:    store,
		redis:    redisClient,
		producer: producer,
		tracer:   tracer,
	}, nil
}

// Run serves HTTP until the context is cancelled, then shuts down
// gracefully and releases every resource.
func (a *Application) Run(ctx context.Context) error {
	defer func() {
		_ = a.logger.Sync()
	}()
	defer a.store.Close()
	defer func() {
		if a.redis != nil {
			_ = a.redis.Close()
		}
	}()
	defer func() {
		if a.producer != nil {
			_ = a.producer.Close()
		}
	}()
	defer func() {
		if a.tracer != nil {
			_ = a.tracer.Shutdown(context.Background())
		}
	}()

	srv := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", a.cfg.App.Host, a.cfg.App.Port),
		Handler:           a.engine,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	a.logger.Info("starting auth API",
		zap.String("env", a.cfg.App.Env),
		zap.String("address", srv.Addr),
	)

	serverErrCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrCh <- fmt.Errorf("run server: %w", err)
		}
	}()

	select {
	case err := <-serverErrCh:
		return err
	case <-ctx.Done():
	}

	a.logger.Info("shutting down auth API")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown server: %w", err)
	}

	return nil
}
