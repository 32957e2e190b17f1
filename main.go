package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"

	"taskly-be/internal/auth"
	"taskly-be/internal/cache"
	"taskly-be/internal/config"
	"taskly-be/internal/database"
	"taskly-be/internal/jwt"
	"taskly-be/internal/logger"
	"taskly-be/internal/repository"
	"taskly-be/internal/server"
	"taskly-be/internal/service"
)

func main() {
	if err := run(); err != nil {
		slog.Error("server exited", "error", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	log := logger.New(cfg.AppEnv, cfg.LogLevel)
	slog.SetDefault(log)
	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database
	sqlDB, err := database.NewConnection(ctx, cfg.DatabaseURL, cfg.DBConnectRetries)
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	if err := database.RunMigrations(sqlDB); err != nil {
		return err
	}

	db, err := database.NewGorm(sqlDB)
	if err != nil {
		return err
	}

	// Initialize Redis cache (optional - logout cannot revoke tokens without it)
	var revoked cache.Cache
	if cfg.RedisURL == "" {
		log.Warn("REDIS_URL not set, token revocation disabled")
	} else if revoked, err = cache.NewRedisCache(cfg.RedisURL); err != nil {
		log.Warn("Failed to connect to Redis, token revocation disabled", "error", err)
		revoked = nil
	} else {
		log.Info("Connected to Redis cache")
		defer revoked.Close()
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	taskRepo := repository.NewTaskRepository(db)

	// Initialize services
	jwtService := jwt.NewJWTService(cfg.JWTSecret, cfg.JWTTTL, cfg.JWTIssuer, revoked)
	authn := service.NewAuthenticator(jwtService, userRepo)
	authService := service.NewAuthService(userRepo, jwtService, auth.NewBcryptHasher(cfg.BcryptCost))
	taskService := service.NewTaskService(taskRepo, authn)

	router := server.NewRouter(ctx, server.Deps{
		AuthService: authService,
		TaskService: taskService,
		Logger:      log,
		RateLimits: server.RateLimits{
			RPS:       cfg.RateLimitRPS,
			Burst:     cfg.RateLimitBurst,
			AuthRPS:   cfg.RateLimitAuthRPS,
			AuthBurst: cfg.RateLimitAuthBurst,
		},
	})

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("Server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
