package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"clinic-management-api/config"
	deliveryHttp "clinic-management-api/internal/delivery/http"
	"clinic-management-api/internal/delivery/http/handler"
	"clinic-management-api/internal/delivery/http/middleware"
	"clinic-management-api/internal/infrastructure/cache"
	"clinic-management-api/internal/infrastructure/database"
	"clinic-management-api/internal/repository"
	"clinic-management-api/internal/service"
	"clinic-management-api/internal/usecase"
	"clinic-management-api/pkg/jwt"
	"clinic-management-api/pkg/validator"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// App holds all dependencies for the application
type App struct {
	Config      *config.Config
	DB          *gorm.DB
	RedisClient *redis.Client
	Server      *http.Server
}

// New creates a new App instance with all dependencies initialized
func New() (*App, error) {
	app := &App{}

	// Setup logger
	setupLogger()

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	app.Config = cfg
	logrus.Info("Configuration loaded successfully")

	// Apply schema migrations before taking traffic
	if err := database.RunMigrations(cfg.DB); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	// Initialize database
	db, err := database.NewPostgresConnection(cfg.DB)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	app.DB = db
	logrus.Info("Database connected successfully")

	// Initialize Redis
	redisClient, err := cache.NewRedisClient(cfg.Redis)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	app.RedisClient = redisClient
	logrus.Info("Redis connected successfully")

	// Initialize all layers
	server := initializeServer(cfg, db, redisClient)
	app.Server = server

	return app, nil
}

// setupLogger configures the logrus logger
func setupLogger() {
	logrus.SetFormatter(&logrus.JSONFormatter{})
	logrus.SetOutput(os.Stdout)
	logrus.SetLevel(logrus.InfoLevel)
}

// initializeServer creates and configures the HTTP server
func initializeServer(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) *http.Server {
	// Initialize JWT service
	jwtService := jwt.NewJWTService(cfg.JWT)

	// Initialize validator
	customValidator := validator.NewValidator()

	// Initialize repositories
	txManager := repository.NewTransactionManager(db)
	userRepo := repository.NewUserRepository()
	clinicRepo := repository.NewClinicRepository()
	planRepo := repository.NewPlanRepository()
	patientRepo := repository.NewPatientRepository()
	patientFileRepo := repository.NewPatientFileRepository()
	providerRepo := repository.NewProviderProfileRepository()
	serviceRepo := repository.NewServiceRepository()
	windowRepo := repository.NewAvailabilityWindowRepository()
	appointmentRepo := repository.NewAppointmentRepository()
	clinicalRecordRepo := repository.NewClinicalRecordRepository()
	notificationRepo := repository.NewNotificationRepository()
	credentialRepo := repository.NewCalendarCredentialRepository()
	auditRepo := repository.NewAuditLogRepository()

	// Initialize logger
	log := logrus.StandardLogger()

	// Initialize domain services
	entitlementService := service.NewEntitlementService(log, clinicRepo, userRepo, patientRepo, patientFileRepo, serviceRepo, appointmentRepo)
	calendarService := service.NewGoogleCalendarService(db, log, cfg.Google, userRepo, credentialRepo)
	notificationService := service.NewNotificationService(db, log, redisClient, notificationRepo)
	auditService := service.NewAuditService(db, log, auditRepo)

	// Initialize usecases
	authUsecase := usecase.NewAuthUsecase(db, log, txManager, userRepo, clinicRepo, planRepo, jwtService, redisClient, auditService)
	schedulingUsecase := usecase.NewSchedulingUsecase(db, log, txManager, appointmentRepo, windowRepo, providerRepo, patientRepo, serviceRepo, clinicalRecordRepo, entitlementService, calendarService, notificationService, auditService)
	availabilityUsecase := usecase.NewAvailabilityUsecase(db, log, txManager, windowRepo, providerRepo, auditService)
	patientUsecase := usecase.NewPatientUsecase(db, log, patientRepo, entitlementService, auditService)
	serviceCatalogUsecase := usecase.NewServiceCatalogUsecase(db, log, serviceRepo, entitlementService, auditService)
	providerUsecase := usecase.NewProviderUsecase(db, log, txManager, userRepo, providerRepo, entitlementService, auditService)
	auditLogUsecase := usecase.NewAuditLogUsecase(db, log, auditRepo)
	notificationUsecase := usecase.NewNotificationUsecase(db, log, notificationRepo)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authUsecase, customValidator)
	appointmentHandler := handler.NewAppointmentHandler(schedulingUsecase, customValidator)
	availabilityHandler := handler.NewAvailabilityHandler(availabilityUsecase, customValidator)
	patientHandler := handler.NewPatientHandler(patientUsecase, customValidator)
	serviceHandler := handler.NewServiceHandler(serviceCatalogUsecase, customValidator)
	providerHandler := handler.NewProviderHandler(providerUsecase, customValidator)
	auditLogHandler := handler.NewAuditLogHandler(auditLogUsecase)
	notificationHandler := handler.NewNotificationHandler(notificationUsecase)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(jwtService, redisClient)
	corsMiddleware := middleware.NewCORSMiddleware(cfg.App.AllowedOrigin)

	// Initialize router
	router := deliveryHttp.NewRouter(
		authHandler,
		appointmentHandler,
		availabilityHandler,
		patientHandler,
		serviceHandler,
		providerHandler,
		auditLogHandler,
		notificationHandler,
		authMiddleware,
		corsMiddleware,
	)
	httpRouter := router.Setup()

	// Create server
	serverAddr := fmt.Sprintf(":%s", cfg.App.Port)
	return &http.Server{
		Addr:    serverAddr,
		Handler: httpRouter,
	}
}

// Run starts the HTTP server and handles graceful shutdown
func (app *App) Run() {
	// Start server in goroutine
	go func() {
		logrus.Infof("Server starting on port %s", app.Config.App.Port)
		logrus.Infof("Environment: %s", app.Config.App.Env)
		if err := app.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal
	app.waitForShutdown()
}

// waitForShutdown blocks until an interrupt signal is received
func (app *App) waitForShutdown() {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logrus.Info("Shutting down server...")

	// Create shutdown context with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Shutdown HTTP server gracefully
	if err := app.Server.Shutdown(ctx); err != nil {
		logrus.Errorf("Server forced to shutdown: %v", err)
	}

	// Close connections
	app.Close()

	logrus.Info("Server shutdown complete")
}

// Close closes all connections (database, redis, etc.)
func (app *App) Close() {
	// Close database connection
	if app.DB != nil {
		sqlDB, err := app.DB.DB()
		if err == nil {
			sqlDB.Close()
		}
	}

	// Close Redis connection
	if app.RedisClient != nil {
		app.RedisClient.Close()
	}
}
