package server

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"taskly-be/internal/controllers"
	"taskly-be/internal/middleware"
	"taskly-be/internal/service"
)

// RateLimits configures the per-IP limiters.
type RateLimits struct {
	RPS       float64
	Burst     int
	AuthRPS   float64
	AuthBurst int
}

// Deps is everything the router needs.
type Deps struct {
	AuthService service.AuthService
	TaskService service.TaskService
	Logger      *slog.Logger
	RateLimits  RateLimits
}

// NewRouter builds the HTTP routes. ctx bounds the limiters' janitors.
func NewRouter(ctx context.Context, deps Deps) *gin.Engine {
	authController := controllers.NewAuthController(deps.AuthService)
	taskController := controllers.NewTaskController(deps.TaskService)

	generalRateLimiter := middleware.NewRateLimiter(ctx, rate.Limit(deps.RateLimits.RPS), deps.RateLimits.Burst)
	authRateLimiter := middleware.NewRateLimiter(ctx, rate.Limit(deps.RateLimits.AuthRPS), deps.RateLimits.AuthBurst)

	router := gin.New()
	router.Use(gin.Recovery(), middleware.RequestLogger(deps.Logger))

	// Health check endpoint (no rate limiting)
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
		})
	})

	api := router.Group("/api")
	api.Use(generalRateLimiter.LimitMiddleware())
	{
		// Auth routes with stricter rate limiting
		auth := api.Group("/auth")
		auth.Use(authRateLimiter.LimitMiddleware())
		{
			auth.POST("/register", authController.Register)
			auth.POST("/login", authController.Login)
			auth.POST("/logout", authController.Logout)
		}

		// Bearer token is resolved by the services themselves
		api.GET("/user", authController.Me)

		tasks := api.Group("/tasks")
		{
			tasks.GET("", taskController.List)
			tasks.POST("", taskController.Create)
			tasks.GET("/:id", taskController.Show)
			tasks.PUT("/:id", taskController.Update)
			tasks.PATCH("/:id", taskController.Update)
			tasks.DELETE("/:id", taskController.Delete)
		}
	}

	return router
}
