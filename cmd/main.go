package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"

	"mybnb/internal/caching"
	"mybnb/internal/handlers"
	"mybnb/internal/jobs/background"
	"mybnb/internal/metrics"
	"mybnb/internal/middleware"
	"mybnb/internal/repositories"
	"mybnb/internal/services"
	"mybnb/pkg/database"
)

const version = "1.0.0"

func main() {
	// Database connection
	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		log.Fatal("DATABASE_URL environment variable is required")
	}

	pool, err := database.NewPool(databaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	// Redis configuration
	redisAddr := os.Getenv("REDIS_ADDR")
	if redisAddr == "" {
		redisAddr = "localhost:6379"
	}
	redisPassword := os.Getenv("REDIS_PASSWORD")
	redisDB := 0
	if redisDBStr := os.Getenv("REDIS_DB"); redisDBStr != "" {
		if db, err := strconv.Atoi(redisDBStr); err == nil {
			redisDB = db
		}
	}

	// MinIO configuration
	minioEndpoint := os.Getenv("MINIO_ENDPOINT")
	if minioEndpoint == "" {
		minioEndpoint = "localhost:9000"
	}
	minioAccessKey := os.Getenv("MINIO_ACCESS_KEY")
	if minioAccessKey == "" {
		minioAccessKey = "minioadmin" // Default for development
	}
	minioSecretKey := os.Getenv("MINIO_SECRET_KEY")
	if minioSecretKey == "" {
		minioSecretKey = "minioadmin" // Default for development
	}
	minioBucket := os.Getenv("MINIO_BUCKET")
	if minioBucket == "" {
		minioBucket = "mybnb-uploads"
	}
	useSSL := os.Getenv("MINIO_USE_SSL") == "true"

	storageSvc, err := services.NewMinioStorage(minioEndpoint, minioAccessKey, minioSecretKey, minioBucket, useSSL)
	if err != nil {
		log.Fatalf("Failed to initialize storage service: %v", err)
	}
	if err := storageSvc.EnsureBucketExists(context.Background()); err != nil {
		log.Fatalf("Failed to ensure storage bucket: %v", err)
	}

	// Tap Payments configuration
	tapSecretKey := os.Getenv("TAP_SECRET_KEY")
	if tapSecretKey == "" {
		log.Fatal("TAP_SECRET_KEY environment variable is required")
	}
	tapAPIURL := os.Getenv("TAP_API_URL") // empty means the production API
	appBaseURL := os.Getenv("APP_BASE_URL")
	if appBaseURL == "" {
		appBaseURL = "http://localhost:3000"
	}

	// Create repositories
	bookingRepo := repositories.NewBookingRepo(pool)
	expenseRepo := repositories.NewExpenseRepo(pool)
	propertyRepo := repositories.NewPropertyRepo(pool)
	companyRepo := repositories.NewCompanyRepo(pool)
	adminRepo := repositories.NewAdminRepo(pool)

	// Create cache service
	cacheSvc := caching.NewRedisCacheService(redisAddr, redisPassword, redisDB)

	// Create services
	metricsSvc := metrics.NewService(bookingRepo, expenseRepo, cacheSvc)
	tapSvc := services.NewTapService(tapSecretKey, tapAPIURL)
	paymentSvc := services.NewPaymentService(tapSvc, companyRepo, cacheSvc, appBaseURL)

	// Create handlers
	bookingHandlers := handlers.NewBookingHandlers(bookingRepo, cacheSvc, storageSvc)
	expenseHandlers := handlers.NewExpenseHandlers(expenseRepo, cacheSvc, storageSvc)
	propertyHandlers := handlers.NewPropertyHandlers(propertyRepo)
	companyHandlers := handlers.NewCompanyHandlers(companyRepo)
	adminHandlers := handlers.NewAdminHandlers(adminRepo)
	statsHandlers := handlers.NewStatsHandlers(metricsSvc)
	paymentHandlers := handlers.NewPaymentHandlers(paymentSvc)
	uploadHandlers := handlers.NewUploadHandlers(storageSvc)
	healthHandlers := handlers.NewHealthHandlers(pool, cacheSvc)

	// Create Echo instance
	e := echo.New()

	// Global middleware
	e.Use(echoMiddleware.Logger())
	e.Use(echoMiddleware.Recover())
	e.Use(echoMiddleware.CORS())
	e.Pre(echoMiddleware.RemoveTrailingSlash())

	// Health endpoints (no auth required)
	e.GET("/health", healthHandlers.Health)
	e.GET("/health/ready", healthHandlers.Ready)

	// API routes
	api := e.Group("/api")
	api.Use(middleware.JWTMiddleware(middleware.AuthConfig{
		JWKSURL: os.Getenv("AUTH_JWKS_URL"),
		Secret:  os.Getenv("JWT_SECRET"),
	}))

	// Reporting routes
	api.GET("/stats", statsHandlers.Stats)
	api.GET("/revenue", statsHandlers.Revenue)
	api.GET("/booking_details", statsHandlers.BookingDetails)

	// Booking routes
	api.GET("/bookings", bookingHandlers.ListBookings)
	api.POST("/bookings", bookingHandlers.CreateBooking)
	api.PATCH("/bookings/:id", bookingHandlers.UpdateBooking)
	api.DELETE("/bookings/:id", bookingHandlers.DeleteBooking)

	// Expense routes
	api.GET("/expenses", expenseHandlers.ListExpenses)
	api.POST("/expenses", expenseHandlers.CreateExpense)
	api.PATCH("/expenses/:id", expenseHandlers.UpdateExpense)
	api.DELETE("/expenses/:id", expenseHandlers.DeleteExpense)

	// Property routes
	api.GET("/properties", propertyHandlers.ListProperties)
	api.POST("/properties", propertyHandlers.CreateProperty)
	api.PATCH("/properties/:id", propertyHandlers.UpdateProperty)
	api.DELETE("/properties/:id", propertyHandlers.DeleteProperty)

	// Company routes
	api.GET("/companies", companyHandlers.ListCompanies)
	api.GET("/companies/:id", companyHandlers.GetCompany)
	api.POST("/companies", companyHandlers.CreateCompany)
	api.PATCH("/companies/:id", companyHandlers.UpdateCompany)
	api.DELETE("/companies/:id", companyHandlers.DeleteCompany)

	// Admin routes
	api.GET("/admins/:uid", adminHandlers.GetAdmin)
	api.POST("/admins", adminHandlers.CreateAdmin)
	api.PATCH("/admins/:uid", adminHandlers.UpdateAdmin)
	api.DELETE("/admins/:uid", adminHandlers.DeleteAdmin)

	// Payment routes
	api.POST("/payment/create-charge", paymentHandlers.CreateCharge)
	api.GET("/payment/verify", paymentHandlers.VerifyCharge)

	// Upload route
	api.POST("/uploads/receipts", uploadHandlers.Upload)

	// Background jobs
	scheduler := background.NewJobScheduler(metricsSvc, companyRepo)
	if err := scheduler.Start(); err != nil {
		log.Fatalf("Failed to start job scheduler: %v", err)
	}
	defer scheduler.Stop()

	// Start server
	portStr := os.Getenv("PORT")
	if portStr == "" {
		portStr = "8080"
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		log.Fatalf("Invalid port %s: %v", portStr, err)
	}

	log.Printf("MyBnb server v%s starting on port %d", version, port)

	e.Logger.Fatal(e.Start(fmt.Sprintf(":%d", port)))
}
