package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"shot-ledger/internal/auth"
	"shot-ledger/internal/cache"
	"shot-ledger/internal/config"
	"shot-ledger/internal/database"
	"shot-ledger/internal/handlers"
	"shot-ledger/internal/jobs"
	"shot-ledger/internal/metrics"
	"shot-ledger/internal/services"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Connect to database
	if err := database.Connect(cfg.GetDSN()); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run migrations
	if err := database.AutoMigrate(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Optional cache for the derived views; nil disables caching
	var derived *cache.Cache
	if cfg.Cache.RedisAddr != "" {
		client, err := cache.Connect(cfg.Cache.RedisAddr)
		if err != nil {
			log.Fatalf("Failed to connect to redis: %v", err)
		}
		derived = cache.New(client, time.Duration(cfg.Cache.TTLSeconds)*time.Second)
		log.Printf("Derived-view cache enabled (redis %s, ttl %ds)", cfg.Cache.RedisAddr, cfg.Cache.TTLSeconds)
	}

	// Initialize services
	userService := services.NewUserService(database.GetDB(), derived)
	betService := services.NewBetService(database.GetDB(), derived)
	dataService := services.NewDataService(database.GetDB(), derived)

	// Initialize handlers
	userHandler := handlers.NewUserHandler(userService, dataService)
	betHandler := handlers.NewBetHandler(betService)
	dataHandler := handlers.NewDataHandler(dataService)

	// Start bet expiry job when configured
	var expirer *jobs.BetExpirer
	if cfg.App.BetExpiryDays > 0 {
		maxAge := time.Duration(cfg.App.BetExpiryDays) * 24 * time.Hour
		expirer = jobs.NewBetExpirer(database.GetDB(), derived, maxAge, time.Hour)
		go expirer.Start()
	}

	// Set up Gin router
	router := gin.Default()

	// CORS middleware
	router.Use(cors.New(cors.Config{
		AllowAllOrigins:  true,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	router.Use(metrics.Middleware())

	// Root and health endpoints
	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "Welcome to the betting API!"})
	})
	router.GET("/health", func(c *gin.Context) {
		sqlDB, err := database.GetDB().DB()
		if err == nil {
			err = sqlDB.Ping()
		}
		if err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status": "degraded",
				"error":  err.Error(),
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
			"time":   time.Now().Format(time.RFC3339),
		})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	requireKey := auth.RequireUpdateKey(cfg.App.DataUpdateKey)

	// User routes
	userRoutes := router.Group("/users")
	{
		userRoutes.POST("", userHandler.CreateUser)
		userRoutes.GET("", userHandler.ListUsers)
		userRoutes.GET("/:id", userHandler.GetUser)
		userRoutes.PUT("/:id", userHandler.UpdateUser)
		userRoutes.DELETE("/:id", requireKey, userHandler.DeleteUser)
		userRoutes.GET("/:id/shot-balances", userHandler.GetShotBalances)
		userRoutes.GET("/:id/bets-owed", userHandler.GetBetsOwed)
		userRoutes.GET("/:id/bets-owned", userHandler.GetBetsOwned)
		userRoutes.GET("/:id/bet-summary", userHandler.GetBetSummary)
		userRoutes.GET("/:id/related-users", userHandler.GetRelatedUsers)
	}

	// Bet routes
	betRoutes := router.Group("/bets")
	{
		betRoutes.POST("", betHandler.CreateBet)
		betRoutes.GET("", betHandler.ListBets)
		betRoutes.GET("/:id", betHandler.GetBet)
		betRoutes.PUT("/:id", betHandler.UpdateBet)
		betRoutes.DELETE("/:id", requireKey, betHandler.DeleteBet)
	}

	// Derived data routes
	dataRoutes := router.Group("/data")
	{
		dataRoutes.GET("/graph", dataHandler.GetRelationshipGraph)
		dataRoutes.GET("/events", dataHandler.GetEventLog)
	}

	// Create HTTP server
	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	// Start server in a goroutine
	go func() {
		log.Printf("Server starting on port %s", cfg.Server.Port)
		log.Printf("Health check: http://localhost:%s/health", cfg.Server.Port)

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	if expirer != nil {
		expirer.Stop()
	}

	// Graceful shutdown with 5 second timeout
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exited")
}
