package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	infraCache "books-api/internal/infrastructure/cache"
	"books-api/internal/shared/middleware"
	"books-api/pkg/cache"
	"books-api/pkg/container"
)

func SetupRouter(c *container.Container) *gin.Engine {
	router := gin.New()

	// Global middlewares, RequestID đứng trước để Recovery/Logger có request_id
	router.Use(
		middleware.RequestID(),
		middleware.Recovery(),
		middleware.Logger(),
	)

	router.GET("/health", healthCheckHandler(c.DB, c.Cache, c.Config.App.Version))
	setupBookRoutes(router, c)

	return router
}

// ========================================
// BOOK ROUTES
// ========================================
func setupBookRoutes(router *gin.Engine, c *container.Container) {
	books := router.Group("/books")
	{
		books.GET("", c.BookHandler.ListBooks)
		books.GET("/:isbn", c.BookHandler.GetBook)
	}

	// Write routes: cần admin token khi AUTH_ENABLED=true
	writes := router.Group("/books")
	if c.Config.Auth.Enabled {
		writes.Use(
			middleware.AuthMiddleware(c.JWTManager),
			middleware.AdminMiddleware(),
		)
	}
	{
		writes.POST("", c.BookHandler.CreateBook)
		writes.PUT("/:isbn", c.BookHandler.UpdateBook)
		writes.DELETE("/:isbn", c.BookHandler.DeleteBook)
	}
}

// ========================================
// HEALTH CHECK
// ========================================

type healthChecker interface {
	HealthCheck(ctx context.Context) error
}

// healthCheckHandler - 503 khi database down, cache down chỉ là "degraded"
func healthCheckHandler(db healthChecker, appCache cache.Cache, version string) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		status := http.StatusOK
		health := gin.H{
			"status":    "ok",
			"timestamp": time.Now().Format(time.RFC3339),
			"version":   version,
		}

		// chi tiết lỗi (host, user, port) chỉ ghi log, endpoint public
		dbStatus := "ok"
		if err := db.HealthCheck(ctx); err != nil {
			log.Warn().Err(err).Msg("health check: database unreachable")
			dbStatus = "error"
		}
		if dbStatus != "ok" {
			status = http.StatusServiceUnavailable
			health["status"] = "unavailable"
		}

		cacheStatus := "ok"
		if appCache == nil {
			cacheStatus = "disabled"
		} else if err := appCache.Ping(ctx); errors.Is(err, infraCache.ErrCacheDisabled) {
			cacheStatus = "disabled"
		} else if err != nil {
			log.Warn().Err(err).Msg("health check: cache unreachable")
			cacheStatus = "error"
			if status == http.StatusOK {
				health["status"] = "degraded"
			}
		}

		health["services"] = gin.H{
			"database": dbStatus,
			"cache":    cacheStatus,
		}

		c.JSON(status, health)
	}
}
