package main

import (
	"context" // context package is needed for Redis operations
	"log"     // log package is needed for logging

	"fintrack/internal/api"           // Custom package for API handlers
	"fintrack/internal/config"        // Custom package for configuration
	"fintrack/internal/middleware"    // Custom package for middleware
	"fintrack/internal/service"       // Custom package for core services
	"fintrack/internal/storage/mysql" // Custom package for the MySQL store

	"github.com/gin-gonic/gin"                                // Gin web framework
	"github.com/prometheus/client_golang/prometheus/promhttp" // Prometheus HTTP handler
	"github.com/redis/go-redis/v9"                            // Redis client
	"github.com/sirupsen/logrus"                              // Logrus for structured logging
)

// Main function to set up and run the server
func main() {
	cfg := config.LoadConfig() // Load configuration

	// Setup logger
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	// Connect to the database
	store, err := mysql.Open(cfg.DSN())
	if err != nil {
		logrus.Fatalf("failed to connect to DB: %v", err) // Fatal error if DB connection fails
	}

	// Setup Redis client
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr, // Redis server address
		Password: cfg.RedisPass, // Redis password
		DB:       cfg.RedisDB,   // Redis database number
	})

	// Test Redis connection
	_, err = redisClient.Ping(context.Background()).Result()
	if err != nil {
		logrus.Fatalf("failed to connect to Redis: %v", err)
	}

	// Build the core services on the shared store
	authSvc := service.NewAuthService(store)
	userSvc := service.NewUserService(store)
	ledgerSvc := service.NewLedgerService(store)
	reportSvc := service.NewReportService(store)

	// Set Mode to Release if in production
	if cfg.IsProd {
		gin.SetMode(gin.ReleaseMode)
	}

	// Setup Gin
	r := gin.Default() // Gin router instance

	// Set trusted proxies for Gin
	if err := r.SetTrustedProxies([]string{"127.0.0.1"}); err != nil {
		logrus.Fatalf("failed to set trusted proxies: %v", err)
	}

	// Auth routes
	r.POST("/auth/register", api.RegisterHandler(authSvc))              // Registration endpoint
	r.POST("/auth/login", api.LoginHandler(authSvc, cfg.JWTSecret))     // Login endpoint
	r.GET("/healthz", func(c *gin.Context) { c.JSON(200, gin.H{"status": "ok"}) }) // Liveness endpoint
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))                    // Prometheus metrics endpoint

	// Dashboard and listing routes (any authenticated user)
	authed := r.Group("")
	authed.Use(middleware.JWTAuthMiddleware(cfg.JWTSecret))
	authed.GET("/dashboard/stats", api.SystemStatsHandler(reportSvc, redisClient))                        // Overview totals and chart
	authed.GET("/dashboard/reports", api.FinancialReportsHandler(reportSvc, redisClient))                 // Financial reports endpoint
	authed.GET("/dashboard/transactions/recent", api.RecentTransactionsHandler(reportSvc, redisClient))   // Recent transactions widget
	authed.GET("/transactions", api.ListTransactionsHandler(reportSvc, redisClient))                      // Full ledger listing
	authed.GET("/users", api.ListUsersHandler(userSvc, redisClient))                                      // User listing

	// Admin routes (protected, admin only)
	adminGroup := authed.Group("")
	adminGroup.Use(middleware.AdminOnlyMiddleware(store))
	adminGroup.POST("/users", api.CreateUserHandler(userSvc, redisClient))                 // Create user endpoint
	adminGroup.PUT("/users/:id", api.UpdateUserHandler(userSvc, redisClient))              // Update user endpoint
	adminGroup.DELETE("/users/:id", api.DeleteUserHandler(userSvc, redisClient))           // Delete user endpoint
	adminGroup.POST("/transactions", api.CreateTransactionHandler(ledgerSvc, redisClient)) // Record transaction endpoint

	log.Println("Server running on " + cfg.AppPort) // Log server start
	r.Run(":" + cfg.AppPort)                        // Start the server on port cfg.AppPort
}
