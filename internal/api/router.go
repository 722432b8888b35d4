package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/monitool/backend/internal/api/handlers"
	"github.com/monitool/backend/internal/api/middleware"
	"github.com/monitool/backend/internal/auth"
	"github.com/monitool/backend/internal/config"
	"github.com/monitool/backend/internal/storage"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"
)

// NewRouter creates and configures the Gin router
func NewRouter(cfg *config.Config, db *gorm.DB, store *storage.Service) *gin.Engine {
	if cfg.Server.Mode == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Middleware
	router.Use(gin.Recovery())
	router.Use(loggingMiddleware())
	router.Use(corsMiddleware(cfg.CORS.AllowedOrigins()))
	router.Use(middleware.APIKey(cfg.Auth.APIKey))
	router.Use(middleware.RequestLog(db, cfg.RequestLog))

	issuer := auth.NewTokenIssuer(
		cfg.Auth.SecretKey,
		time.Duration(cfg.Auth.AccessTokenExpireMinutes)*time.Minute,
		time.Duration(cfg.Auth.RefreshTokenExpireDays)*24*time.Hour,
	)
	authSvc := auth.NewService(db, issuer)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler(cfg.API.ProjectName, cfg.API.Version)
	authHandler := handlers.NewAuthHandler(authSvc)
	userHandler := handlers.NewUserHandler(db)
	technicianHandler := handlers.NewTechnicianHandler(db)
	toolboxHandler := handlers.NewToolboxHandler(db, store)
	inventoryHandler := handlers.NewInventoryHandler(db)
	accessLogHandler := handlers.NewAccessLogHandler(db)
	dashboardHandler := handlers.NewDashboardHandler(db)
	alertHandler := handlers.NewAlertHandler(db, authSvc)
	imageHandler := handlers.NewImageHandler(db, store, cfg.Upload.MaxSize)

	// Public endpoints outside the versioned prefix
	router.GET("/up", healthHandler.Up)
	router.GET("/health", healthHandler.Health)
	router.GET("/", healthHandler.Root)
	router.GET("/uploads/:subfolder/:filename", imageHandler.Serve)

	// Versioned API, behind the API-key gate
	v1 := router.Group(cfg.API.Prefix)
	{
		v1.POST("/auth/register", authHandler.Register)
		v1.POST("/auth/login", authHandler.Login)
		v1.GET("/auth/me", authHandler.Me)

		v1.GET("/users", userHandler.List)

		v1.POST("/technicians", technicianHandler.Create)
		v1.GET("/technicians", technicianHandler.List)
		v1.GET("/technicians/by-nfc/:uid", technicianHandler.GetByNFC)
		v1.PUT("/technicians/:id", technicianHandler.Update)
		v1.DELETE("/technicians/:id", technicianHandler.Delete)

		v1.POST("/toolboxes", toolboxHandler.Create)
		v1.GET("/toolboxes", toolboxHandler.List)
		v1.GET("/toolboxes/:id", toolboxHandler.Get)
		v1.PUT("/toolboxes/:id", toolboxHandler.Update)
		v1.DELETE("/toolboxes/:id", toolboxHandler.Delete)

		v1.POST("/toolboxes/:id/items", inventoryHandler.Create)
		v1.GET("/toolboxes/:id/items", inventoryHandler.List)
		v1.PUT("/items/:id", inventoryHandler.Update)
		v1.DELETE("/items/:id", inventoryHandler.Delete)

		v1.POST("/access-logs", accessLogHandler.Create)
		v1.GET("/access-logs", accessLogHandler.List)
		v1.DELETE("/access-logs/:id", accessLogHandler.Delete)

		v1.GET("/dashboard/stats", dashboardHandler.Stats)

		v1.POST("/alerts", alertHandler.Create)
		v1.GET("/alerts", alertHandler.List)
		v1.PUT("/alerts/:id/resolve", alertHandler.Resolve)
		v1.DELETE("/alerts/:id", alertHandler.Delete)

		v1.POST("/images/upload", imageHandler.Upload)
		v1.DELETE("/images", imageHandler.Delete)
	}

	// Swagger documentation
	router.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	slog.Info("API router initialized", "mode", cfg.Server.Mode, "prefix", cfg.API.Prefix)
	return router
}

// loggingMiddleware logs HTTP requests
func loggingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		method := c.Request.Method

		c.Next()

		latency := time.Since(start)
		status := c.Writer.Status()

		slog.Info("HTTP request",
			"method", method,
			"path", path,
			"status", status,
			"latency", latency.String(),
			"ip", c.ClientIP(),
		)
	}
}

// corsMiddleware adds CORS headers for the configured origins
func corsMiddleware(origins []string) gin.HandlerFunc {
	allowed := make(map[string]bool, len(origins))
	for _, o := range origins {
		allowed[o] = true
	}

	return func(c *gin.Context) {
		if origin := c.GetHeader("Origin"); allowed[origin] {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
			c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
			c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-API-Key")
			c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS, PATCH")
			c.Writer.Header().Set("Access-Control-Max-Age", "3600")
		}

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
