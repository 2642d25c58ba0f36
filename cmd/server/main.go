package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	inventoryapp "github.com/erurang/wooyangcrm-sub010/internal/application/inventory"
	productionapp "github.com/erurang/wooyangcrm-sub010/internal/application/production"
	suggestionapp "github.com/erurang/wooyangcrm-sub010/internal/application/suggestion"
	taskapp "github.com/erurang/wooyangcrm-sub010/internal/application/task"
	"github.com/erurang/wooyangcrm-sub010/internal/infrastructure/auth"
	"github.com/erurang/wooyangcrm-sub010/internal/infrastructure/cache"
	"github.com/erurang/wooyangcrm-sub010/internal/infrastructure/config"
	"github.com/erurang/wooyangcrm-sub010/internal/infrastructure/logger"
	"github.com/erurang/wooyangcrm-sub010/internal/infrastructure/persistence"
	"github.com/erurang/wooyangcrm-sub010/internal/interfaces/http/handler"
	"github.com/erurang/wooyangcrm-sub010/internal/interfaces/http/middleware"
	"github.com/erurang/wooyangcrm-sub010/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// version is stamped at build time via -ldflags
var version = "dev"

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting inventory service",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("version", version),
		zap.String("port", cfg.App.Port),
	)

	// Create GORM logger backed by zap
	gormLogLevel := logger.MapGormLogLevel(cfg.Log.Level)
	gormLog := logger.NewGormLogger(log, gormLogLevel)

	// Initialize database connection with custom logger
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	// Initialize repositories
	productRepo := persistence.NewGormProductRepository(db.DB)
	lotRepo := persistence.NewGormLotRepository(db.DB)
	splitRepo := persistence.NewGormLotSplitRepository(db.DB)
	ledgerRepo := persistence.NewGormLotTransactionRepository(db.DB)
	recordRepo := persistence.NewGormRecordRepository(db.DB)
	consumptionRepo := persistence.NewGormConsumptionRepository(db.DB)
	taskRepo := persistence.NewGormTaskRepository(db.DB)
	auditRepo := persistence.NewGormAuditLogRepository(db.DB)
	lotNumberAllocator := persistence.NewSequenceLotNumberAllocator(db.DB)

	// Transaction scopes keep multi-aggregate writes atomic
	inventoryTxScope := persistence.NewGormInventoryTransactionScope(db.DB)
	productionTxScope := persistence.NewGormProductionTransactionScope(db.DB)

	// Initialize application services
	lotService := inventoryapp.NewLotService(inventoryTxScope, lotRepo, productRepo, lotNumberAllocator)
	splitService := inventoryapp.NewSplitService(inventoryTxScope, lotRepo, splitRepo, lotNumberAllocator)
	ledgerService := inventoryapp.NewLedgerService(lotRepo, ledgerRepo)
	flowService := inventoryapp.NewDocumentFlowService(inventoryTxScope, lotNumberAllocator)
	consumptionService := productionapp.NewConsumptionService(productionTxScope, recordRepo, consumptionRepo)

	taskService := taskapp.NewTaskService(taskRepo, log)
	taskService.SetAuditRepository(auditRepo)

	suggestionService := suggestionapp.NewSuggestionService(productRepo, ledgerRepo, log)
	suggestionService.Configure(cfg.Suggestion.WindowDays, cfg.Suggestion.TargetDays, cfg.Suggestion.CacheTTL)
	if cfg.Redis.Enabled {
		suggestionCache, err := cache.NewRedisSuggestionCache(cfg.Redis, log)
		if err != nil {
			log.Fatal("Failed to connect to redis", zap.Error(err))
		}
		suggestionService.SetCache(suggestionCache)
		log.Info("Suggestion cache backed by redis",
			zap.String("host", cfg.Redis.Host),
			zap.Int("db", cfg.Redis.DB),
		)
	} else {
		suggestionService.SetCache(cache.NewInMemorySuggestionCache())
	}

	// Initialize HTTP handlers
	lotHandler := handler.NewLotHandler(lotService)
	splitHandler := handler.NewSplitHandler(splitService)
	ledgerHandler := handler.NewLedgerHandler(ledgerService)
	stockHandler := handler.NewStockHandler(flowService)
	productionHandler := handler.NewProductionHandler(consumptionService)
	taskHandler := handler.NewTaskHandler(taskService)
	suggestionHandler := handler.NewSuggestionHandler(suggestionService)
	systemHandler := handler.NewSystemHandler(db, version)

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Setup validation
	middleware.SetupValidator()

	engine := gin.New()

	// Configure trusted proxies
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	// Apply middleware stack in order:
	// 1. RequestID - Generate/propagate request ID
	// 2. Recovery - Catch panics
	// 3. Logger - Log requests
	// 4. Security - Add security headers
	// 5. CORS - Handle cross-origin requests
	// 6. BodyLimit - Limit request body size
	// 7. Actor - Resolve the acting user from the bearer token
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.Secure())

	// Configure CORS from config
	corsConfig := middleware.CORSConfig{
		AllowOrigins:     cfg.HTTP.CORSAllowOrigins,
		AllowMethods:     cfg.HTTP.CORSAllowMethods,
		AllowHeaders:     cfg.HTTP.CORSAllowHeaders,
		ExposeHeaders:    []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	engine.Use(middleware.CORSWithConfig(corsConfig))

	// Body size limit
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	// Actor resolution. Production requires a valid token on every API
	// route; elsewhere a token is honored when present so local tooling
	// can call the API unauthenticated.
	if cfg.JWT.Secret != "" {
		verifier := auth.NewTokenVerifier(cfg.JWT)
		if cfg.App.Env == "production" {
			engine.Use(middleware.RequireActorWithConfig(middleware.DefaultActorConfig(verifier)))
		} else {
			engine.Use(middleware.OptionalActor(verifier))
		}
	} else {
		log.Warn("JWT secret not configured, requests are anonymous")
	}

	// Health probes (outside API versioning)
	engine.GET("/health", systemHandler.Health)
	engine.GET("/ready", systemHandler.Ready)

	// Setup API routes using router
	r := router.NewRouter(engine, router.WithAPIVersion("v1"))

	// LOT receiving, lookup, splitting and per-lot ledger
	lotRoutes := router.NewDomainGroup("lots", "/lots")
	lotRoutes.POST("", lotHandler.Create)
	lotRoutes.GET("", lotHandler.List)
	lotRoutes.GET("/by-number/:lot_number", lotHandler.GetByNumber)
	lotRoutes.GET("/:id", lotHandler.GetByID)
	lotRoutes.POST("/:id/split", splitHandler.Split)
	lotRoutes.GET("/:id/splits", splitHandler.History)
	lotRoutes.GET("/:id/provenance", splitHandler.Provenance)
	lotRoutes.GET("/:id/ledger", ledgerHandler.ListByLot)

	// Product-level ledger and count adjustment
	productRoutes := router.NewDomainGroup("products", "/products")
	productRoutes.GET("/:product_id/ledger", ledgerHandler.ListByProduct)
	productRoutes.POST("/:product_id/stock/adjust", stockHandler.AdjustStock)

	// Document-driven stock movement
	stockRoutes := router.NewDomainGroup("stock", "/stock")
	stockRoutes.POST("/inbound", stockHandler.ReceiveInbound)
	stockRoutes.POST("/outbound", stockHandler.DeductOutbound)

	// Production runs and material consumption
	productionRoutes := router.NewDomainGroup("production", "/production")
	productionRoutes.POST("/records", productionHandler.CreateRecord)
	productionRoutes.GET("/records", productionHandler.ListRecords)
	productionRoutes.GET("/records/:id", productionHandler.GetRecord)
	productionRoutes.POST("/records/:id/consumptions", productionHandler.Consume)
	productionRoutes.GET("/records/:id/consumptions", productionHandler.ListConsumptions)
	productionRoutes.POST("/records/:id/cancel", productionHandler.CancelRecord)

	// Inventory task workflow
	taskRoutes := router.NewDomainGroup("tasks", "/tasks")
	taskRoutes.GET("", taskHandler.List)
	taskRoutes.GET("/stats", taskHandler.Stats)
	taskRoutes.GET("/:id", taskHandler.GetByID)
	taskRoutes.POST("/:id/assign", taskHandler.Assign)
	taskRoutes.POST("/:id/complete", taskHandler.Complete)
	taskRoutes.POST("/:id/cancel", taskHandler.Cancel)
	taskRoutes.POST("/from-document", taskHandler.MaterializeFromDocument)
	taskRoutes.POST("/from-trade-record", taskHandler.MaterializeFromTradeRecord)

	// Reorder suggestions
	suggestionRoutes := router.NewDomainGroup("suggestions", "/suggestions")
	suggestionRoutes.GET("", suggestionHandler.List)

	r.Register(lotRoutes).
		Register(productRoutes).
		Register(stockRoutes).
		Register(productionRoutes).
		Register(taskRoutes).
		Register(suggestionRoutes)

	r.Setup()

	// Create HTTP server with config
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
