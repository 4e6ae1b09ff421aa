package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	echoswagger "github.com/swaggo/echo-swagger"

	_ "github.com/newalexoa/cinerental-backend/docs"
	"github.com/newalexoa/cinerental-backend/internal/cache"
	"github.com/newalexoa/cinerental-backend/internal/config"
	"github.com/newalexoa/cinerental-backend/internal/handler"
	"github.com/newalexoa/cinerental-backend/internal/middleware"
	"github.com/newalexoa/cinerental-backend/internal/repository/postgres"
	"github.com/newalexoa/cinerental-backend/internal/repository/storage"
	"github.com/newalexoa/cinerental-backend/internal/service"
)

func main() {
	// Initialize zerolog
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	if os.Getenv("ENVIRONMENT") != "production" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Connect to database
	pool, err := pgxpool.New(context.Background(), cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer pool.Close()

	// Verify database connection
	if err := pool.Ping(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("Failed to ping database")
	}
	log.Info().Msg("Connected to database")

	store := postgres.NewStore(pool)

	// Category and equipment repos are also handed to CategoryService
	// directly: it needs EquipmentRepository for equipment-count lookups
	// outside any booking/equipment write transaction.
	categoryRepo := postgres.NewCategoryRepo(pool)
	equipmentRepo := postgres.NewEquipmentRepo(pool)
	barcodeRepo := postgres.NewBarcodeRepo(pool)
	scanSessionRepo := postgres.NewScanSessionRepo(pool)

	// Redis backs the category hierarchy cache only: a connection failure
	// here never blocks startup, it just leaves the cache always-miss.
	redisClient := redis.NewClient(&redis.Options{
		Addr: cfg.RedisHost + ":" + cfg.RedisPort,
		DB:   cfg.RedisDB,
	})
	if err := redisClient.Ping(context.Background()).Err(); err != nil {
		log.Warn().Err(err).Msg("redis unavailable, category hierarchy cache disabled")
	}
	categoryCache := cache.NewCategoryCache(redisClient)

	// Initialize services
	availabilityService := service.NewAvailabilityService()
	categoryService := service.NewCategoryService(categoryRepo, equipmentRepo).WithHierarchyCache(categoryCache)
	equipmentService := service.NewEquipmentService(store)
	clientService := service.NewClientService(store)
	projectService := service.NewProjectService(store)
	bookingService := service.NewBookingService(store, availabilityService)
	documentService := service.NewDocumentService(store)
	scanSessionService := service.NewScanSessionService(scanSessionRepo)
	barcodeService := service.NewBarcodeService(store, barcodeRepo)
	subcategoryPrefixService := service.NewSubcategoryPrefixService(store, barcodeRepo)

	// Document storage is optional: without S3 credentials configured,
	// upload endpoints answer 503 instead of failing startup.
	var blobStore storage.BlobStore
	if cfg.S3.AccessKeyID != "" {
		s3Store, err := storage.NewS3DocumentStore(context.Background(), cfg.S3)
		if err != nil {
			log.Warn().Err(err).Msg("document storage unavailable, uploads will be rejected")
		} else {
			blobStore = s3Store
		}
	}

	// Initialize auth middleware and rate limiter
	authMiddleware := middleware.NewAuthMiddleware()
	rateLimiter := middleware.NewRateLimiter()
	defer rateLimiter.Stop()

	// Initialize handlers
	handlers := &handler.Handlers{
		Equipment:         handler.NewEquipmentHandler(equipmentService),
		Category:          handler.NewCategoryHandler(categoryService),
		Client:            handler.NewClientHandler(clientService),
		Booking:           handler.NewBookingHandler(bookingService),
		Project:           handler.NewProjectHandler(projectService),
		Document:          handler.NewDocumentHandler(documentService, blobStore),
		ScanSession:       handler.NewScanSessionHandler(scanSessionService, bookingService),
		Barcode:           handler.NewBarcodeHandler(barcodeService),
		SubcategoryPrefix: handler.NewSubcategoryPrefixHandler(subcategoryPrefixService),
	}

	// Create Echo instance
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// Request ID middleware
	e.Use(echomiddleware.RequestID())

	// CORS middleware
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
		AllowCredentials: true,
		MaxAge:           86400,
	}))

	// Security headers middleware (helmet-like)
	e.Use(echomiddleware.SecureWithConfig(echomiddleware.SecureConfig{
		XSSProtection:         "1; mode=block",
		ContentTypeNosniff:    "nosniff",
		XFrameOptions:         "DENY",
		HSTSMaxAge:            31536000,
		ContentSecurityPolicy: "default-src 'self'",
		ReferrerPolicy:        "strict-origin-when-cross-origin",
	}))

	// Request logging middleware with zerolog
	e.Use(zerologMiddleware())

	// Recovery middleware
	e.Use(echomiddleware.Recover())

	// Health check endpoint
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	// API documentation
	e.GET("/swagger/*", echoswagger.WrapHandler)
	e.GET("/openapi.json", handler.ServeOpenAPI3Spec)

	// Register API routes
	handler.RegisterRoutes(e, authMiddleware, rateLimiter, handlers)

	// Periodic sweep of expired scan-session carts, independent of the
	// request path so a slow purge never blocks a checkout.
	go runScanSessionSweep(scanSessionService)

	// Start server in goroutine
	go func() {
		log.Info().Str("port", cfg.Port).Msg("Starting server")
		if err := e.Start(":" + cfg.Port); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited")
}

func runScanSessionSweep(scanSessionService *service.ScanSessionService) {
	ticker := time.NewTicker(1 * time.Hour)
	defer ticker.Stop()
	for range ticker.C {
		purged, err := scanSessionService.PurgeExpiredSessions()
		if err != nil {
			log.Error().Err(err).Msg("scan session sweep failed")
			continue
		}
		if purged > 0 {
			log.Info().Int64("purged", purged).Msg("swept expired scan sessions")
		}
	}
}

// zerologMiddleware returns a middleware that logs requests using zerolog
func zerologMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)
			if err != nil {
				c.Error(err)
			}

			req := c.Request()
			res := c.Response()

			log.Info().
				Str("method", req.Method).
				Str("path", req.URL.Path).
				Int("status", res.Status).
				Dur("latency", time.Since(start)).
				Str("request_id", res.Header().Get(echo.HeaderXRequestID)).
				Msg("request")

			return nil
		}
	}
}
