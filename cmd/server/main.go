package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	catalogapp "github.com/podstore/backend/internal/application/catalog"
	mockupapp "github.com/podstore/backend/internal/application/mockup"
	ordersapp "github.com/podstore/backend/internal/application/orders"
	"github.com/podstore/backend/internal/domain/order"
	"github.com/podstore/backend/internal/infrastructure/cache"
	"github.com/podstore/backend/internal/infrastructure/config"
	"github.com/podstore/backend/internal/infrastructure/fulfillment"
	"github.com/podstore/backend/internal/infrastructure/logger"
	"github.com/podstore/backend/internal/infrastructure/persistence"
	"github.com/podstore/backend/internal/interfaces/http/handler"
	"github.com/podstore/backend/internal/interfaces/http/middleware"
	"github.com/podstore/backend/internal/interfaces/http/router"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting podstore backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Initialize database connection
	db, err := persistence.NewDatabase(&cfg.Database)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()

	if err := db.AutoMigrate(); err != nil {
		log.Fatal("Failed to run migrations", zap.Error(err))
	}
	log.Info("Database connected successfully")

	// Mockup contexts live in Redis so a different process can serve the
	// order creation request. Development falls back to an in-process store.
	mockupStore := newMockupStore(cfg, log)
	defer func() {
		if closer, ok := mockupStore.(interface{ Close() error }); ok {
			_ = closer.Close()
		}
	}()

	// Fulfillment provider client
	gateway, err := fulfillment.NewClient(&fulfillment.Config{
		BaseURL:        cfg.Fulfillment.BaseURL,
		APIKey:         cfg.Fulfillment.APIKey,
		StoreID:        cfg.Fulfillment.StoreID,
		TimeoutSeconds: cfg.Fulfillment.TimeoutSeconds,
	})
	if err != nil {
		log.Fatal("Failed to configure fulfillment client", zap.Error(err))
	}

	// Initialize repositories
	orderRepo := persistence.NewGormCustomOrderRepository(db.DB)
	commissionRepo := persistence.NewGormCommissionRepository(db.DB)
	accountDirectory := persistence.NewGormAccountDirectory(db.DB)
	catalogRepo := persistence.NewGormCatalogProductRepository(db.DB)

	// Initialize application services
	commissionRate, err := decimal.NewFromString(cfg.Commission.Rate)
	if err != nil {
		log.Warn("Invalid commission rate, using default",
			zap.String("rate", cfg.Commission.Rate))
		commissionRate = decimal.Zero
	}

	orchestrator := mockupapp.NewOrchestrator(gateway, log, cfg.Mockup.PollInterval, cfg.Mockup.MaxAttempts)
	quote := mockupapp.NewQuoteCalculator(gateway, log)
	mockupService := mockupapp.NewService(orchestrator, quote, catalogRepo, mockupStore, cfg.Mockup.ContextTTL, log)
	catalogService := catalogapp.NewService(gateway, catalogRepo, log)
	commissionService := ordersapp.NewCommissionService(commissionRepo, accountDirectory, orderRepo, commissionRate, log)
	orderService := ordersapp.NewService(orderRepo, mockupStore, gateway, quote, commissionService, log)
	webhookService := ordersapp.NewWebhookService(orderRepo, cfg.Webhook.Secret, cfg.App.IsProduction(), log)

	// Initialize router with middleware stack
	engine := gin.New()

	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))

	corsConfig := middleware.DefaultCORSConfig()
	if len(cfg.HTTP.CORSAllowOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	}
	if len(cfg.HTTP.CORSAllowMethods) > 0 {
		corsConfig.AllowMethods = cfg.HTTP.CORSAllowMethods
	}
	if len(cfg.HTTP.CORSAllowHeaders) > 0 {
		corsConfig.AllowHeaders = cfg.HTTP.CORSAllowHeaders
	}
	engine.Use(middleware.CORSWithConfig(corsConfig))

	// Health check endpoint, outside API versioning
	engine.GET("/health", healthHandler(db))

	// Register API routes
	router.NewRouter(engine, router.WithAPIVersion("v1")).
		Register(handler.NewMockupHandler(mockupService)).
		Register(handler.NewOrderHandler(orderService, commissionService)).
		Register(handler.NewWebhookHandler(webhookService)).
		Register(handler.NewCatalogHandler(catalogService)).
		Setup()

	// Create HTTP server
	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	// Start server in goroutine
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}

// newMockupStore connects to Redis, falling back to the in-process store
// outside production so the service can run without a Redis instance
func newMockupStore(cfg *config.Config, log *zap.Logger) order.MockupStore {
	store, err := cache.NewRedisMockupStore(cache.RedisConfig{
		Host:     cfg.Redis.Host,
		Port:     cfg.Redis.Port,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err == nil {
		log.Info("Redis mockup store connected",
			zap.String("host", cfg.Redis.Host), zap.Int("port", cfg.Redis.Port))
		return store
	}

	if cfg.App.IsProduction() {
		log.Fatal("Failed to connect to Redis", zap.Error(err))
	}

	log.Warn("Redis unavailable, using in-memory mockup store", zap.Error(err))
	return cache.NewInMemoryMockupStore()
}

// healthHandler reports service and database health
func healthHandler(db *persistence.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := db.Ping(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":   "unhealthy",
				"time":     time.Now().Format(time.RFC3339),
				"database": "error",
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":   "healthy",
			"time":     time.Now().Format(time.RFC3339),
			"database": "ok",
		})
	}
}
