package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	billingapp "github.com/propman/backend/internal/application/billing"
	complaintapp "github.com/propman/backend/internal/application/complaint"
	identityapp "github.com/propman/backend/internal/application/identity"
	ledgerapp "github.com/propman/backend/internal/application/ledger"
	partyapp "github.com/propman/backend/internal/application/party"
	warehouseapp "github.com/propman/backend/internal/application/warehouse"
	"github.com/propman/backend/internal/infrastructure/auth"
	"github.com/propman/backend/internal/infrastructure/cache"
	"github.com/propman/backend/internal/infrastructure/config"
	"github.com/propman/backend/internal/infrastructure/logger"
	"github.com/propman/backend/internal/infrastructure/payment"
	"github.com/propman/backend/internal/infrastructure/persistence"
	"github.com/propman/backend/internal/infrastructure/scheduler"
	"github.com/propman/backend/internal/interfaces/http/handler"
	"github.com/propman/backend/internal/interfaces/http/middleware"
	"github.com/propman/backend/internal/interfaces/http/router"
	"go.uber.org/zap"
)

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
		_ = logger.Sync(log)
	}()

	log.Info("Starting Property Management Backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Create GORM logger backed by zap
	gormLogLevel := logger.MapGormLogLevel(cfg.Log.Level)
	gormLog := logger.NewGormLogger(log, gormLogLevel)

	// Initialize database connection with custom logger
	db, err := persistence.NewDatabaseWithCustomLogger(&cfg.Database, gormLog)
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
	landlordRepo := persistence.NewGormLandlordRepository(db.DB)
	tenantRepo := persistence.NewGormTenantRepository(db.DB)
	siteRepo := persistence.NewGormSiteRepository(db.DB)
	unitRepo := persistence.NewGormUnitRepository(db.DB)
	ledgerEntryRepo := persistence.NewGormLedgerEntryRepository(db.DB)
	paymentLedgerRepo := persistence.NewGormPaymentLedgerRepository(db.DB)
	billRepo := persistence.NewGormBillRepository(db.DB)
	billPaymentRepo := persistence.NewGormBillPaymentRepository(db.DB)
	walletTopUpRepo := persistence.NewGormWalletTopUpRepository(db.DB)
	complaintRepo := persistence.NewGormComplaintRepository(db.DB)
	stockItemRepo := persistence.NewGormStockItemRepository(db.DB)
	stockMovementRepo := persistence.NewGormStockMovementRepository(db.DB)
	userRepo := persistence.NewGormUserRepository(db.DB)

	// Payment gateway adapter
	gateway, err := payment.NewRazorpayAdapter(cfg.Gateway)
	if err != nil {
		log.Fatal("Failed to initialize payment gateway", zap.Error(err))
	}

	// Idempotency store for gateway callbacks, Redis-backed when available
	storeFactory := cache.NewIdempotencyStoreFactory(cfg.Redis, cache.WithLogger(log))
	idempotencyStore, err := storeFactory.CreateStore()
	if err != nil {
		log.Fatal("Failed to initialize idempotency store", zap.Error(err))
	}

	// Token blacklist, Redis-backed when available
	var blacklist auth.TokenBlacklist
	if redisClient, err := cache.NewRedisClient(cfg.Redis); err == nil {
		blacklist = auth.NewRedisTokenBlacklist(redisClient)
		log.Info("Using Redis token blacklist")
	} else {
		// Revocations will not survive a restart
		log.Warn("Redis unavailable, falling back to in-memory token blacklist", zap.Error(err))
		blacklist = auth.NewInMemoryTokenBlacklist()
	}

	// Initialize application services
	jwtService := auth.NewJWTService(cfg.JWT)
	authService := identityapp.NewAuthService(userRepo, jwtService, blacklist, identityapp.AuthServiceConfig{
		MaxLoginAttempts: cfg.Auth.MaxLoginAttempts,
		LockDuration:     cfg.Auth.LockDuration,
	}, log)
	userService := identityapp.NewUserService(userRepo, log)

	landlordService := partyapp.NewLandlordService(landlordRepo)
	propertyService := partyapp.NewPropertyService(siteRepo, unitRepo, landlordRepo)
	tenantService := partyapp.NewTenantService(tenantRepo, unitRepo)

	ledgerService := ledgerapp.NewLedgerService(ledgerEntryRepo, landlordRepo)
	paymentLedgerService := ledgerapp.NewPaymentLedgerService(paymentLedgerRepo)
	payableService := ledgerapp.NewConsolidatedPayableService(ledgerService, billRepo)

	billingService := billingapp.NewBillingService(billRepo, unitRepo, ledgerService, paymentLedgerService, log)
	billPaymentService := billingapp.NewBillPaymentService(
		billRepo, billPaymentRepo, gateway, ledgerService, paymentLedgerService, idempotencyStore, log,
	)
	walletService := partyapp.NewWalletService(
		walletTopUpRepo, landlordRepo, tenantRepo, gateway, paymentLedgerService, idempotencyStore, log,
	)

	complaintService := complaintapp.NewComplaintService(complaintRepo, tenantRepo)
	stockService := warehouseapp.NewStockService(stockItemRepo, stockMovementRepo, log)

	// Monthly billing scheduler (if enabled)
	var billingScheduler *scheduler.BillingScheduler
	if cfg.Billing.SchedulerEnabled {
		billingScheduler, err = scheduler.NewBillingScheduler(cfg.Billing, billingService, log)
		if err != nil {
			log.Fatal("Failed to initialize billing scheduler", zap.Error(err))
		}
		if err := billingScheduler.Start(context.Background()); err != nil {
			log.Fatal("Failed to start billing scheduler", zap.Error(err))
		}
		defer func() {
			if err := billingScheduler.Stop(context.Background()); err != nil {
				log.Error("Error stopping billing scheduler", zap.Error(err))
			}
		}()
		log.Info("Billing scheduler started",
			zap.String("schedule", cfg.Billing.CronSchedule),
			zap.Duration("job_timeout", cfg.Billing.JobTimeout),
		)
	}

	// Initialize HTTP handlers
	authHandler := handler.NewAuthHandler(authService, jwtService)
	userHandler := handler.NewUserHandler(userService)
	landlordHandler := handler.NewLandlordHandler(landlordService)
	propertyHandler := handler.NewPropertyHandler(propertyService)
	tenantHandler := handler.NewTenantHandler(tenantService)
	ledgerHandler := handler.NewLedgerHandler(ledgerService, paymentLedgerService)
	payableHandler := handler.NewPayableHandler(payableService)
	billingHandler := handler.NewBillingHandler(billingService, billingScheduler)
	paymentHandler := handler.NewPaymentHandler(billPaymentService)
	walletHandler := handler.NewWalletHandler(walletService)
	complaintHandler := handler.NewComplaintHandler(complaintService)
	stockHandler := handler.NewStockHandler(stockService)
	systemHandler := handler.NewSystemHandler(db, billingScheduler)

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Setup validation
	middleware.SetupValidator()

	// Initialize router with custom middleware
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
	// 7. RateLimit - Apply rate limiting (if enabled)
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.Secure())

	corsConfig := middleware.CORSConfig{
		AllowOrigins:     cfg.HTTP.CORSAllowOrigins,
		AllowMethods:     cfg.HTTP.CORSAllowMethods,
		AllowHeaders:     cfg.HTTP.CORSAllowHeaders,
		ExposeHeaders:    []string{"X-Request-ID", "X-RateLimit-Limit", "X-RateLimit-Remaining"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	engine.Use(middleware.CORSWithConfig(corsConfig))

	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	loginGuard := gin.HandlerFunc(func(c *gin.Context) { c.Next() })
	if cfg.HTTP.RateLimitEnabled {
		rateLimiter := middleware.NewRateLimiter(cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow)
		engine.Use(middleware.RateLimit(rateLimiter))

		// Tighter per-IP budget on credential endpoints to slow brute force
		authLimiter := middleware.NewRateLimiter(10, time.Minute)
		loginGuard = middleware.AuthRateLimit(authLimiter)

		log.Info("Rate limiting enabled",
			zap.Int("requests", cfg.HTTP.RateLimitRequests),
			zap.Duration("window", cfg.HTTP.RateLimitWindow),
		)
	}

	// Health check endpoint (outside API versioning)
	engine.GET("/health", systemHandler.Health)

	// Gateway callback endpoints (no authentication; signature-verified)
	callbackGroup := engine.Group("/api/v1")
	callbackGroup.POST("/payments/callback", paymentHandler.Callback)
	callbackGroup.POST("/wallet/callback", walletHandler.Callback)

	// Setup API routes using router
	r := router.NewRouter(engine, router.WithAPIVersion("v1"))

	// JWT authentication on API routes, with public endpoints skipped
	jwtConfig := middleware.JWTMiddlewareConfig{
		JWTService:     jwtService,
		TokenBlacklist: blacklist,
		SkipPaths: []string{
			"/api/v1/auth/login",
			"/api/v1/auth/refresh",
			"/api/v1/system/ping",
			"/api/v1/system/info",
		},
		SkipPathPrefixes: []string{
			"/api/v1/payments/callback",
			"/api/v1/wallet/callback",
		},
		Logger: log,
	}
	r.Use(middleware.JWTAuthMiddlewareWithConfig(jwtConfig))

	adminOnly := middleware.RequireRole("admin")

	// Auth routes (login and refresh are public via JWT skip paths)
	authRoutes := router.NewDomainGroup("auth", "/auth")
	authRoutes.POST("/login", loginGuard, authHandler.Login)
	authRoutes.POST("/refresh", loginGuard, authHandler.RefreshToken)
	authRoutes.POST("/logout", authHandler.Logout)
	authRoutes.GET("/me", authHandler.GetCurrentUser)
	authRoutes.PUT("/password", authHandler.ChangePassword)

	// User management (admin only)
	identityRoutes := router.NewDomainGroup("identity", "/identity")
	identityRoutes.POST("/users", adminOnly, userHandler.Create)
	identityRoutes.GET("/users", adminOnly, userHandler.List)
	identityRoutes.GET("/users/:id", adminOnly, userHandler.GetByID)
	identityRoutes.POST("/users/:id/reset-password", adminOnly, userHandler.ResetPassword)
	identityRoutes.POST("/users/:id/deactivate", adminOnly, userHandler.Deactivate)
	identityRoutes.POST("/users/:id/unlock", adminOnly, userHandler.Unlock)

	// Party domain (landlords, tenants)
	partyRoutes := router.NewDomainGroup("party", "/party")
	partyRoutes.POST("/landlords", landlordHandler.Create)
	partyRoutes.GET("/landlords", landlordHandler.List)
	partyRoutes.GET("/landlords/:id", landlordHandler.GetByID)
	partyRoutes.PUT("/landlords/:id", landlordHandler.Update)
	partyRoutes.POST("/landlords/:id/deactivate", adminOnly, landlordHandler.Deactivate)

	partyRoutes.POST("/tenants", tenantHandler.Create)
	partyRoutes.GET("/tenants/:id", tenantHandler.GetByID)
	partyRoutes.PUT("/tenants/:id", tenantHandler.Update)
	partyRoutes.POST("/tenants/:id/assign-unit", tenantHandler.AssignUnit)
	partyRoutes.POST("/tenants/:id/vacate", tenantHandler.VacateUnit)

	// Property domain (sites, units, billing configuration)
	propertyRoutes := router.NewDomainGroup("property", "/property")
	propertyRoutes.POST("/sites", propertyHandler.CreateSite)
	propertyRoutes.GET("/sites", propertyHandler.ListSites)
	propertyRoutes.GET("/sites/:id", propertyHandler.GetSite)
	propertyRoutes.GET("/sites/:id/units", propertyHandler.ListUnitsBySite)
	propertyRoutes.GET("/sites/:id/tenants", tenantHandler.ListBySite)
	propertyRoutes.POST("/units", propertyHandler.CreateUnit)
	propertyRoutes.GET("/units/:id", propertyHandler.GetUnit)
	propertyRoutes.PUT("/units/:id/billing", propertyHandler.ConfigureBilling)
	propertyRoutes.POST("/units/:id/meter-reading", propertyHandler.RecordMeterReading)

	// Ledger domain (landlord ledger, payment ledger, consolidated payable)
	ledgerRoutes := router.NewDomainGroup("ledger", "/ledger")
	ledgerRoutes.POST("/entries", adminOnly, ledgerHandler.RecordEntry)
	ledgerRoutes.GET("/landlords/:landlordId/entries", ledgerHandler.GetEntries)
	ledgerRoutes.GET("/landlords/:landlordId/balance", ledgerHandler.GetCurrentBalance)
	ledgerRoutes.GET("/landlords/:landlordId/payable", payableHandler.GetConsolidatedPayable)
	ledgerRoutes.POST("/landlords/:landlordId/payable/settle", adminOnly, payableHandler.Settle)
	ledgerRoutes.POST("/payment-entries", adminOnly, ledgerHandler.RecordPaymentEntry)
	ledgerRoutes.GET("/payment-entries", ledgerHandler.GetPaymentEntries)
	ledgerRoutes.GET("/payment-balance", ledgerHandler.GetPaymentBalance)

	// Billing domain (bill generation and lookup)
	billingRoutes := router.NewDomainGroup("billing", "/billing")
	billingRoutes.POST("/bills", billingHandler.Generate)
	billingRoutes.POST("/run", adminOnly, billingHandler.Run)
	billingRoutes.GET("/bills/:id", billingHandler.GetByID)
	billingRoutes.GET("/bills/:id/payments", paymentHandler.ListByBill)
	billingRoutes.GET("/landlords/:landlordId/bills", billingHandler.ListByLandlord)
	billingRoutes.GET("/units/:unitId/bills", billingHandler.ListByUnit)

	// Payments domain (gateway bill payments)
	paymentRoutes := router.NewDomainGroup("payments", "/payments")
	paymentRoutes.POST("", paymentHandler.Initiate)
	paymentRoutes.GET("/:id", paymentHandler.GetByID)

	// Wallet domain (top-ups)
	walletRoutes := router.NewDomainGroup("wallet", "/wallet")
	walletRoutes.POST("/topups", walletHandler.InitiateTopUp)

	// Complaint domain
	complaintRoutes := router.NewDomainGroup("complaints", "/complaints")
	complaintRoutes.POST("", complaintHandler.Create)
	complaintRoutes.GET("/:id", complaintHandler.GetByID)
	complaintRoutes.POST("/:id/transition", complaintHandler.Transition)
	complaintRoutes.POST("/:id/resolve", complaintHandler.Resolve)
	complaintRoutes.GET("/tenants/:tenantId", complaintHandler.ListByTenant)
	complaintRoutes.GET("/sites/:siteId", complaintHandler.ListBySite)

	// Warehouse domain (site stock)
	warehouseRoutes := router.NewDomainGroup("warehouse", "/warehouse")
	warehouseRoutes.POST("/items", stockHandler.CreateItem)
	warehouseRoutes.GET("/items/:id", stockHandler.GetItem)
	warehouseRoutes.GET("/items/:id/movements", stockHandler.ListMovements)
	warehouseRoutes.GET("/sites/:siteId/items", stockHandler.ListItemsBySite)
	warehouseRoutes.GET("/sites/:siteId/items/low-stock", stockHandler.ListLowStock)
	warehouseRoutes.POST("/movements", stockHandler.RecordMovement)

	// System routes
	systemRoutes := router.NewDomainGroup("system", "/system")
	systemRoutes.GET("/info", systemHandler.GetSystemInfo)
	systemRoutes.GET("/ping", systemHandler.Ping)

	// Register all domain groups
	r.Register(authRoutes).
		Register(identityRoutes).
		Register(partyRoutes).
		Register(propertyRoutes).
		Register(ledgerRoutes).
		Register(billingRoutes).
		Register(paymentRoutes).
		Register(walletRoutes).
		Register(complaintRoutes).
		Register(warehouseRoutes).
		Register(systemRoutes)

	// Setup routes
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
