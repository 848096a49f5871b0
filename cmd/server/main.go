package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	billingapp "github.com/smartbill/backend/internal/application/billing"
	catalogapp "github.com/smartbill/backend/internal/application/catalog"
	partnerapp "github.com/smartbill/backend/internal/application/partner"
	printingapp "github.com/smartbill/backend/internal/application/printing"
	reportapp "github.com/smartbill/backend/internal/application/report"
	"github.com/smartbill/backend/internal/infrastructure/config"
	"github.com/smartbill/backend/internal/infrastructure/logger"
	"github.com/smartbill/backend/internal/infrastructure/persistence"
	"github.com/smartbill/backend/internal/infrastructure/printing"
	"github.com/smartbill/backend/internal/interfaces/http/handler"
	"github.com/smartbill/backend/internal/interfaces/http/middleware"
	"github.com/smartbill/backend/internal/interfaces/http/router"
)

// @title SmartBill Backend API
// @version 1.0
// @description Billing and invoicing backend for pet care services
// @BasePath /api/v1
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

	log.Info("Starting SmartBill Backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Create GORM logger backed by zap
	gormLogLevel := logger.MapGormLogLevel(cfg.Log.Level)
	gormLog := logger.NewGormLogger(log, gormLogLevel)

	// Initialize database connection with custom logger
	db, err := persistence.NewDatabase(&cfg.Database, gormLog)
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
	customerRepo := persistence.NewGormCustomerRepository(db.DB)
	serviceRepo := persistence.NewGormServiceRepository(db.DB)
	invoiceRepo := persistence.NewGormInvoiceRepository(db.DB)
	paymentRepo := persistence.NewGormPaymentRepository(db.DB)
	reportRepo := persistence.NewGormReportRepository(db.DB)

	// Initialize application services
	customerService := partnerapp.NewCustomerService(customerRepo, invoiceRepo)
	serviceService := catalogapp.NewServiceService(serviceRepo, invoiceRepo)
	invoiceService := billingapp.NewInvoiceService(invoiceRepo, customerRepo, serviceRepo)
	paymentService := billingapp.NewPaymentService(paymentRepo, invoiceRepo, reportRepo)
	reportService := reportapp.NewReportService(reportRepo)

	// PDF rendering pipeline (headless Chrome + filesystem storage)
	pdfRenderer, err := printing.NewChromedpRenderer(&printing.ChromedpConfig{
		DefaultTimeout: cfg.Documents.RenderTimeout,
		RemoteURL:      cfg.Documents.ChromeURL,
		NoSandbox:      cfg.Documents.NoSandbox,
		Scale:          cfg.Documents.Scale,
		Logger:         log,
	})
	if err != nil {
		log.Fatal("Failed to initialize PDF renderer", zap.Error(err))
	}
	defer func() {
		if err := pdfRenderer.Close(); err != nil {
			log.Error("Error closing PDF renderer", zap.Error(err))
		}
	}()

	pdfStorage, err := printing.NewFileSystemStorage(&printing.FileSystemStorageConfig{
		BasePath: cfg.Documents.StoragePath,
		BaseURL:  cfg.Documents.BaseURL,
		Logger:   log,
	})
	if err != nil {
		log.Fatal("Failed to initialize PDF storage", zap.Error(err))
	}

	documentService := printingapp.NewDocumentService(
		invoiceRepo,
		customerRepo,
		reportService,
		printing.NewTemplateEngine(),
		pdfRenderer,
		pdfStorage,
		log,
	)

	// Initialize HTTP handlers
	customerHandler := handler.NewCustomerHandler(customerService)
	serviceHandler := handler.NewServiceHandler(serviceService)
	invoiceHandler := handler.NewInvoiceHandler(invoiceService)
	paymentHandler := handler.NewPaymentHandler(paymentService)
	reportHandler := handler.NewReportHandler(reportService)
	documentHandler := handler.NewDocumentHandler(documentService)

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

	// Configure CORS from config
	corsConfig := middleware.CORSConfig{
		AllowOrigins:     cfg.HTTP.CORSAllowOrigins,
		AllowMethods:     cfg.HTTP.CORSAllowMethods,
		AllowHeaders:     cfg.HTTP.CORSAllowHeaders,
		ExposeHeaders:    []string{"X-Request-ID", "X-RateLimit-Limit", "X-RateLimit-Remaining"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	engine.Use(middleware.CORSWithConfig(corsConfig))

	// Body size limit
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	// Rate limiting (if enabled)
	if cfg.HTTP.RateLimitEnabled {
		rateLimiter := middleware.NewRateLimiter(cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow)
		engine.Use(middleware.RateLimit(rateLimiter))
		log.Info("Rate limiting enabled",
			zap.Int("requests", cfg.HTTP.RateLimitRequests),
			zap.Duration("window", cfg.HTTP.RateLimitWindow),
		)
	}

	// Health check endpoint (outside API versioning)
	engine.GET("/health", healthHandler(db, log))

	// Setup API routes using router
	r := router.NewRouter(engine, router.WithAPIVersion("v1"))

	// Partner domain (customers)
	customerRoutes := router.NewDomainGroup("customers", "/customers")
	customerRoutes.POST("", customerHandler.Create)
	customerRoutes.POST("/import", customerHandler.Import)
	customerRoutes.GET("", customerHandler.List)
	customerRoutes.GET("/:id", customerHandler.GetByID)
	customerRoutes.PUT("/:id", customerHandler.Update)
	customerRoutes.DELETE("/:id", customerHandler.Delete)
	customerRoutes.GET("/:id/history", customerHandler.History)
	customerRoutes.GET("/:id/unpaid-invoices", invoiceHandler.ListUnpaidByCustomer)
	r.Register(customerRoutes)

	// Catalog domain (services)
	serviceRoutes := router.NewDomainGroup("services", "/services")
	serviceRoutes.POST("", serviceHandler.Create)
	serviceRoutes.POST("/import", serviceHandler.Import)
	serviceRoutes.GET("", serviceHandler.List)
	serviceRoutes.GET("/:id", serviceHandler.GetByID)
	serviceRoutes.PUT("/:id", serviceHandler.Update)
	serviceRoutes.DELETE("/:id", serviceHandler.Delete)
	r.Register(serviceRoutes)

	// Billing domain (invoices, payments)
	invoiceRoutes := router.NewDomainGroup("invoices", "/invoices")
	invoiceRoutes.POST("", invoiceHandler.Create)
	invoiceRoutes.GET("", invoiceHandler.List)
	invoiceRoutes.GET("/:id", invoiceHandler.GetByID)
	invoiceRoutes.POST("/:id/pdf", documentHandler.RenderInvoice)
	r.Register(invoiceRoutes)

	paymentRoutes := router.NewDomainGroup("payments", "/payments")
	paymentRoutes.POST("", paymentHandler.Log)
	paymentRoutes.GET("", paymentHandler.List)
	r.Register(paymentRoutes)

	// Reports
	reportRoutes := router.NewDomainGroup("reports", "/reports")
	reportRoutes.GET("/revenue", reportHandler.RevenueByPeriod)
	reportRoutes.GET("/services", reportHandler.ServicePerformance)
	reportRoutes.GET("/business", reportHandler.BusinessReport)
	reportRoutes.GET("/dashboard", reportHandler.DashboardSummary)
	reportRoutes.POST("/business/pdf", documentHandler.RenderReport)
	r.Register(reportRoutes)

	// Stored documents
	documentRoutes := router.NewDomainGroup("documents", "/documents")
	documentRoutes.GET("/files/*path", documentHandler.Download)
	r.Register(documentRoutes)

	// System routes
	systemHandler := handler.NewSystemHandler()
	systemRoutes := router.NewDomainGroup("system", "/system")
	systemRoutes.GET("/info", systemHandler.GetSystemInfo)
	systemRoutes.GET("/ping", systemHandler.Ping)
	r.Register(systemRoutes)

	// Setup routes
	r.Setup()

	// Also keep a simple ping at root API level for basic health checks
	engine.GET("/api/v1/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

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

// healthHandler returns a handler for health check endpoints
func healthHandler(db *persistence.Database, _ *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		reqLog := logger.GetGinLogger(c)
		if err := db.Ping(); err != nil {
			reqLog.Warn("Health check failed", zap.Error(err))
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":   "unhealthy",
				"time":     time.Now().Format(time.RFC3339),
				"database": "error",
			})
			return
		}
		resp := gin.H{
			"status":   "healthy",
			"time":     time.Now().Format(time.RFC3339),
			"database": "ok",
		}
		if stats, err := db.Stats(); err == nil {
			resp["pool"] = stats
		}
		c.JSON(http.StatusOK, resp)
	}
}
