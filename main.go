package main

import (
	"time"

	"snaplink/internal/config"
	"snaplink/internal/controllers"
	"snaplink/internal/jwt"
	"snaplink/internal/logger"
	"snaplink/internal/middleware"
	"snaplink/internal/service"
	"snaplink/internal/storage"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize logger with the bounded in-memory buffer
	zapLogger, logBuffer := logger.New(cfg.LogFile, cfg.LogBufferSize)
	defer zapLogger.Sync() //nolint:errcheck

	// Initialize storage (degrades to empty on a missing or corrupt blob)
	store := storage.NewFileStore(cfg.StoragePath, zapLogger)

	// Initialize JWT service
	jwtService := jwt.NewJWTService(
		cfg.JWTSecret,
		time.Duration(cfg.JWTTTL)*time.Hour,
	)

	// Initialize services
	verifier, err := service.NewStaticVerifier(cfg.AdminEmail, cfg.AdminPassword, jwtService)
	if err != nil {
		zapLogger.Fatal("Failed to initialize credential verifier", zap.Error(err))
	}
	urlService := service.NewURLService(store, service.NewMockGeoResolver(), cfg.BaseURL, zapLogger)

	// Initialize controllers
	shortenerController := controllers.NewShortenerController(urlService, cfg.BaseURL)
	authController := controllers.NewAuthController(verifier)
	qrcodeController := controllers.NewQRCodeController(urlService, cfg.BaseURL)
	logsController := controllers.NewLogsController(logBuffer)

	// Initialize rate limiters
	generalRateLimiter := middleware.NewRateLimiter(rate.Limit(cfg.RateLimitRPS), cfg.RateLimitBurst)
	authRateLimiter := middleware.NewRateLimiter(rate.Limit(cfg.RateLimitAuthRPS), cfg.RateLimitAuthBurst)
	redirectRateLimiter := middleware.NewRateLimiter(rate.Limit(cfg.RateLimitRedirectRPS), cfg.RateLimitRedirectBurst)

	// Create a Gin router
	router := gin.Default()

	// Health check endpoint (no rate limiting)
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status": "ok",
		})
	})

	// Redirect endpoint with lenient rate limiting
	router.GET("/:shortCode", redirectRateLimiter.LimitMiddleware(), shortenerController.RedirectToURL)

	// API v1 routes group with general rate limiting
	api := router.Group("/api/v1")
	api.Use(generalRateLimiter.LimitMiddleware())
	{
		// Auth routes with stricter rate limiting
		auth := api.Group("/auth")
		auth.Use(authRateLimiter.LimitMiddleware())
		{
			auth.POST("/login", authController.Login)
		}

		// Protected routes - require JWT authentication
		protected := api.Group("")
		protected.Use(middleware.AuthMiddleware(jwtService))
		{
			protected.POST("/shorten", shortenerController.CreateShortURL)
			protected.GET("/urls", shortenerController.ListURLs)
			protected.GET("/url/:shortCode", shortenerController.GetURLStats)
			protected.DELETE("/url/:id", shortenerController.DeleteURL)
			protected.GET("/logs", logsController.GetLogs)
			protected.DELETE("/logs", logsController.ClearLogs)
		}

		// Public redirect endpoint with lenient rate limiting
		api.GET("/redirect/:shortCode", redirectRateLimiter.LimitMiddleware(), shortenerController.GetOriginalURLPublic)

		// QR Code generation
		api.GET("/qrcode/:shortCode", qrcodeController.GenerateQRCode)
	}

	zapLogger.Info("Server starting", zap.String("port", cfg.Port))
	if err := router.Run(":" + cfg.Port); err != nil {
		zapLogger.Fatal("Server failed", zap.Error(err))
	}
}
