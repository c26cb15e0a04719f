package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	accountapp "github.com/shipbatch/backend/internal/application/account"
	shippingapp "github.com/shipbatch/backend/internal/application/shipping"
	"github.com/shipbatch/backend/internal/infrastructure/addressval"
	"github.com/shipbatch/backend/internal/infrastructure/auth"
	"github.com/shipbatch/backend/internal/infrastructure/config"
	"github.com/shipbatch/backend/internal/infrastructure/ingest"
	"github.com/shipbatch/backend/internal/infrastructure/logger"
	"github.com/shipbatch/backend/internal/infrastructure/persistence"
	"github.com/shipbatch/backend/internal/interfaces/http/handler"
	"github.com/shipbatch/backend/internal/interfaces/http/middleware"
	"github.com/shipbatch/backend/internal/interfaces/http/router"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() { _ = log.Sync() }()

	log.Info("Starting ShipBatch Backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Database with a GORM logger backed by zap
	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
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

	// Redis backs the address review cache. The chain works without it,
	// so a connection failure only disables caching.
	var redisClient *redis.Client
	if cfg.Redis.Enabled {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr(),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		pingCtx, cancelPing := context.WithTimeout(context.Background(), 2*time.Second)
		if err := redisClient.Ping(pingCtx).Err(); err != nil {
			log.Warn("Redis unavailable, address review caching disabled", zap.Error(err))
			redisClient = nil
		} else {
			log.Info("Redis connected successfully")
		}
		cancelPing()
	}
	reviewCache := addressval.NewReviewCache(redisClient, cfg.Validation.CacheTTL, log)

	// Address validation provider chain, best provider first
	chain := addressval.NewChain(
		[]addressval.Provider{
			addressval.NewSmartyProvider(cfg.Validation.Smarty),
			addressval.NewGoogleProvider(cfg.Validation.Google),
			addressval.NewUSPSProvider(cfg.Validation.USPS),
		},
		addressval.WithCache(reviewCache),
		addressval.WithTimeout(cfg.Validation.ProviderTimeout),
		addressval.WithMaxConcurrency(cfg.Validation.MaxConcurrency),
		addressval.WithLogger(log),
	)

	// Repositories
	batchRepo := persistence.NewGormBatchRepository(db.DB)
	shipmentRepo := persistence.NewGormShipmentRepository(db.DB)
	serviceRepo := persistence.NewGormServiceRepository(db.DB)
	purchaseRepo := persistence.NewGormPurchaseRepository(db.DB)
	userRepo := persistence.NewGormUserRepository(db.DB)
	savedAddressRepo := persistence.NewGormSavedAddressRepository(db.DB)
	savedPackageRepo := persistence.NewGormSavedPackageRepository(db.DB)
	uow := persistence.NewGormUnitOfWork(db.DB)

	// Application services
	parser := ingest.NewParser(cfg.Ingest.MaxRows)
	ingestionService := shippingapp.NewIngestionService(parser, uow)
	batchService := shippingapp.NewBatchService(batchRepo, shipmentRepo, uow)
	shipmentService := shippingapp.NewShipmentService(batchRepo, shipmentRepo, uow)
	addressService := shippingapp.NewAddressService(batchRepo, shipmentRepo, chain)
	pricingService := shippingapp.NewPricingService(serviceRepo, uow)
	bulkService := shippingapp.NewBulkService(uow)
	purchaseService := shippingapp.NewPurchaseService(purchaseRepo, uow)
	balanceService := accountapp.NewBalanceService(userRepo)
	presetService := accountapp.NewPresetService(savedAddressRepo, savedPackageRepo)

	jwtService := auth.NewJWTService(cfg.JWT)

	// HTTP engine
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	middleware.SetupValidator()
	engine := gin.New()
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Fatal("Invalid trusted proxies", zap.Error(err))
		}
	}
	engine.Use(middleware.RequestID())
	engine.Use(logger.GinMiddleware(log))
	engine.Use(logger.Recovery(log))
	corsCfg := middleware.DefaultCORSConfig()
	corsCfg.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	corsCfg.AllowMethods = cfg.HTTP.CORSAllowMethods
	corsCfg.AllowHeaders = cfg.HTTP.CORSAllowHeaders
	engine.Use(middleware.CORSWithConfig(corsCfg))
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))
	engine.Use(middleware.JWTAuthMiddlewareWithConfig(middleware.JWTMiddlewareConfig{
		JWTService: jwtService,
		SkipPaths:  []string{"/health", "/healthz", "/ready"},
		Logger:     log,
	}))

	engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Routes
	r := router.NewRouter(engine, router.WithAPIVersion("v1"))
	r.Register(handler.NewSystemHandler())
	r.Register(handler.NewBatchHandler(ingestionService, batchService, addressService, pricingService, purchaseService).
		WithMaxUploadBytes(cfg.Ingest.MaxUploadBytes))
	r.Register(handler.NewShipmentHandler(shipmentService, addressService, bulkService))
	r.Register(handler.NewServiceHandler(pricingService))
	r.Register(handler.NewPurchaseHandler(purchaseService))
	r.Register(handler.NewAccountHandler(balanceService, presetService))
	r.Setup()

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("HTTP server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	// Graceful shutdown on SIGINT/SIGTERM
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Forced shutdown", zap.Error(err))
	}
	log.Info("Server stopped")
}
