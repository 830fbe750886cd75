// Package routes defines the HTTP routes for the console facade.
package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/agentdesk/console-service/internal/api/handlers"
	"github.com/agentdesk/console-service/internal/api/middleware"
)

// Config holds the dependencies for setting up routes.
type Config struct {
	HealthHandler        *handlers.HealthHandler
	AuthHandler          *handlers.AuthHandler
	SessionHandler       *handlers.SessionHandler
	BillingHandler       *handlers.RequestsHandler
	InternationalHandler *handlers.RequestsHandler
	StateHandler         *handlers.StateHandler
	SupervisorHandler    *handlers.SupervisorHandler
	Guard                *middleware.Guard
}

// Setup configures all routes on the Gin engine.
func Setup(r *gin.Engine, cfg *Config) {
	v1 := r.Group("/api/v1/console")
	{
		// Health and login require no authentication
		v1.GET("/health", cfg.HealthHandler.Health)
		v1.GET("/live", cfg.HealthHandler.Live)
		v1.POST("/auth/login", cfg.AuthHandler.Login)

		// Route-level navigation guard for everything else
		protected := v1.Group("")
		protected.Use(cfg.Guard.RequireAuth())

		protected.POST("/auth/logout", cfg.AuthHandler.Logout)
		protected.GET("/auth/me", cfg.AuthHandler.Me)

		protected.GET("/state", cfg.StateHandler.State)
		protected.POST("/state/clear-error", cfg.StateHandler.ClearError)
		protected.PUT("/state/language", cfg.StateHandler.SetLanguage)

		sessions := protected.Group("/sessions")
		{
			sessions.POST("", cfg.SessionHandler.Create)
			sessions.GET("/state", cfg.SessionHandler.State)
			sessions.POST("/:sessionId/resume", cfg.SessionHandler.Resume)
			sessions.POST("/end", cfg.SessionHandler.End)
			sessions.POST("/clear", cfg.SessionHandler.Clear)
		}

		billing := protected.Group("/billing")
		{
			billing.POST("/requests", cfg.BillingHandler.Submit)
			billing.GET("/requests", cfg.BillingHandler.List)
			billing.GET("/responses/:requestId", cfg.BillingHandler.GetResponse)
			billing.GET("/history", cfg.BillingHandler.FetchSnapshot)
			billing.GET("/plans", cfg.BillingHandler.FetchCatalog)
			billing.POST("/clear", cfg.BillingHandler.ClearCustomerData)
		}

		international := protected.Group("/international")
		{
			international.POST("/requests", cfg.InternationalHandler.Submit)
			international.GET("/requests", cfg.InternationalHandler.List)
			international.GET("/responses/:requestId", cfg.InternationalHandler.GetResponse)
			international.GET("/usage", cfg.InternationalHandler.FetchSnapshot)
			international.GET("/packages", cfg.InternationalHandler.FetchCatalog)
			international.POST("/clear", cfg.InternationalHandler.ClearCustomerData)
		}

		supervisor := protected.Group("/supervisor")
		supervisor.Use(cfg.Guard.RequireRole("supervisor"))
		{
			supervisor.GET("/overview", cfg.SupervisorHandler.Overview)
		}
	}
}

// SetupWithMiddleware sets up routes with common middleware.
func SetupWithMiddleware(r *gin.Engine, cfg *Config, loggingMw *middleware.LoggingMiddleware, errorMw *middleware.ErrorMiddleware) {
	r.Use(middleware.NewCORSMiddleware(middleware.DefaultCORSConfig()))
	r.Use(loggingMw.Logger())
	r.Use(errorMw.Recovery())
	r.Use(gin.Recovery())

	r.NoRoute(middleware.NotFound())

	Setup(r, cfg)
}
