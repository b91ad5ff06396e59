package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"warranty-register.backend/internal/interfaces/http/handlers"
	"warranty-register.backend/internal/interfaces/http/middleware"
)

type routeDeps struct {
	authHandler      *handlers.AuthHandler
	apiKeyHandler    *handlers.ApiKeyHandler
	warrantyHandler  *handlers.WarrantyHandler
	authMiddleware   gin.HandlerFunc
	apiKeyMiddleware gin.HandlerFunc
}

func registerHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
}

func registerMetricsRoute(r *gin.Engine) {
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
}

func registerAPIV1Routes(r *gin.Engine, d routeDeps) {
	v1 := r.Group("/api/v1")
	{
		// Auth routes (public)
		auth := v1.Group("/auth")
		{
			auth.POST("/register", d.authHandler.Register)
			auth.POST("/login", d.authHandler.Login)
			auth.GET("/me", d.authMiddleware, d.authHandler.Me)
		}

		// Warranty routes. Registration is the machine-facing endpoint: API
		// key auth plus idempotent retries. Listing is public; everything
		// else requires a key.
		warranties := v1.Group("/warranties")
		{
			warranties.POST("", d.apiKeyMiddleware, middleware.IdempotencyMiddleware(), d.warrantyHandler.RegisterWarranty)
			warranties.GET("", d.warrantyHandler.ListWarranties)
			warranties.GET("/:id", d.apiKeyMiddleware, d.warrantyHandler.GetWarranty)
			warranties.PATCH("/:id", d.apiKeyMiddleware, d.warrantyHandler.UpdateWarranty)
			warranties.DELETE("/:id", d.apiKeyMiddleware, d.warrantyHandler.DeleteWarranty)
		}

		// Admin routes (operator JWT only)
		admin := v1.Group("/admin")
		admin.Use(d.authMiddleware, middleware.RequireAdmin())
		{
			admin.POST("/api-keys", d.apiKeyHandler.CreateApiKey)
			admin.GET("/api-keys", d.apiKeyHandler.ListApiKeys)
			admin.POST("/api-keys/:id/activate", d.apiKeyHandler.ActivateApiKey)
			admin.POST("/api-keys/:id/deactivate", d.apiKeyHandler.DeactivateApiKey)
			admin.DELETE("/api-keys/:id", d.apiKeyHandler.DeleteApiKey)
		}
	}
}
