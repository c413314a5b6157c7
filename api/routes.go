package api

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/opentracing/opentracing-go"

	"github.com/customeros/notestack/api/handlers"
	"github.com/customeros/notestack/api/middleware"
	"github.com/customeros/notestack/internal/tracing"
	"github.com/customeros/notestack/services"
)

const appSource = "notestack"

// RegisterRoutes sets up all API endpoints
func RegisterRoutes(ctx context.Context, r *gin.Engine, s *services.Services, jwtSecret string) {
	if s == nil {
		panic("Services cannot be nil")
	}

	// Add recovery middlewares
	r.Use(gin.Recovery())                                         // Gin's built-in recovery
	r.Use(tracing.RecoveryWithJaeger(opentracing.GlobalTracer())) // Our custom Jaeger recovery

	// setup handlers
	apiHandlers := handlers.InitHandlers(s)

	// Health check endpoint (no auth or custom context needed)
	r.GET("/health", handlers.HealthCheck)

	authMiddleware := middleware.JWTAuthMiddleware(middleware.JWTAuthConfig{
		Secret: jwtSecret,
	})

	// API group with bearer auth and custom context
	api := r.Group("/api")
	api.Use(authMiddleware)
	api.Use(middleware.CustomContextMiddleware(appSource)) // Add custom context for all /api/* endpoints
	api.Use(middleware.TracingMiddleware())                // Add tracing for all /api/* endpoints
	{
		// Note endpoints
		notes := api.Group("/notes")
		{
			notes.GET("", apiHandlers.Notes.List())
			notes.GET("/:id", apiHandlers.Notes.Get())
			notes.POST("", apiHandlers.Notes.Create())
			notes.PUT("/:id", apiHandlers.Notes.Update())
			notes.DELETE("/:id", apiHandlers.Notes.Delete())

			// Image attachment lifecycle. The remove route is a wildcard
			// because object keys carry a folder prefix.
			notes.POST("/:id/images", apiHandlers.Notes.AddImage())
			notes.DELETE("/:id/images/*publicId", apiHandlers.Notes.RemoveImage())
		}
	}
}
