package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"docvault_backend/database"
	"docvault_backend/internal/auth"
	"docvault_backend/internal/config"
	"docvault_backend/internal/email"
	"docvault_backend/internal/handlers"
	"docvault_backend/internal/logger"
	"docvault_backend/internal/middleware"
	"docvault_backend/internal/models"
	"docvault_backend/internal/repositories"
	"docvault_backend/internal/routes"
	"docvault_backend/internal/services"
	"docvault_backend/internal/validator"
	"docvault_backend/internal/workers"
)

// Run boots the whole application: config, logger, database,
// services, background worker and the HTTP server.
func Run() {
	config.LoadConfig()
	cfg := config.AppConfig

	logger.Init(cfg.Server.Env)
	logger.Info("Logger initialized", "env", cfg.Server.Env)

	gormDB, err := database.ConnectGorm()
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		logger.Fatal("Failed to get *sql.DB from GORM", "error", err)
	}
	if err := sqlDB.Ping(); err != nil {
		logger.Fatal("Database unavailable", "error", err)
	}
	logger.Info("Database connected")

	if err := database.AutoMigrate(gormDB); err != nil {
		logger.Fatal("AutoMigrate failed", "error", err)
	}

	if err := seedFirstAdmin(gormDB, cfg); err != nil {
		logger.Fatal("Failed to seed first admin user", "error", err)
	}

	serviceContainer, notifRepo := initializeServices(cfg, gormDB)
	appHandlers := initializeHandlers(serviceContainer)

	worker := workers.NewExpirationWorker(
		serviceContainer.ExpirationService,
		notifRepo,
		time.Duration(cfg.Worker.ProcessIntervalMinutes)*time.Minute,
		cfg.Worker.RetentionDays,
	)
	worker.Start(context.Background())

	ginRouter := initializeGinRouter(cfg)
	routes.RegisterRoutes(ginRouter, appHandlers, cfg.JWT.Secret)

	address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info("Server starting", "address", address)
	if err := ginRouter.Run(address); err != nil {
		logger.Fatal("Server startup error", "error", err)
	}
}

func initializeServices(cfg *config.Config, gormDB *gorm.DB) (*services.ServiceContainer, repositories.UserNotificationRepository) {
	userRepo := repositories.NewUserRepository(gormDB)
	documentRepo := repositories.NewDocumentRepository(gormDB)
	scheduleRepo := repositories.NewScheduledNotificationRepository(gormDB)
	notifRepo := repositories.NewUserNotificationRepository(gormDB)

	sendTimeout := time.Duration(cfg.Email.SendTimeoutSeconds) * time.Second
	var provider email.Provider
	if cfg.Email.SMTPHost != "" {
		provider = email.NewSMTPProvider(&email.SMTPConfig{
			Host:      cfg.Email.SMTPHost,
			Port:      cfg.Email.SMTPPort,
			Username:  cfg.Email.SMTPUsername,
			Password:  cfg.Email.SMTPPassword,
			FromEmail: cfg.Email.FromEmail,
			FromName:  cfg.Email.FromName,
			Timeout:   sendTimeout,
		})
		logger.Info("SMTP email provider initialized", "host", cfg.Email.SMTPHost)
	} else {
		provider = &email.MockProvider{}
		logger.Warn("No SMTP host configured, emails will be mocked")
	}
	mailer := email.NewNotificationMailer(provider, sendTimeout)

	expirationService := services.NewExpirationService(documentRepo, scheduleRepo, notifRepo, userRepo, mailer)
	documentService := services.NewDocumentService(documentRepo, expirationService)
	notificationService := services.NewNotificationService(notifRepo)
	authService := services.NewAuthService(userRepo, cfg.JWT.Secret, time.Duration(cfg.JWT.TTLMinutes)*time.Minute)

	return &services.ServiceContainer{
		AuthService:         authService,
		DocumentService:     documentService,
		ExpirationService:   expirationService,
		NotificationService: notificationService,
	}, notifRepo
}

func initializeHandlers(container *services.ServiceContainer) *handlers.AppHandlers {
	customValidator := validator.New()
	baseHandler := handlers.NewBaseHandler(customValidator)

	return &handlers.AppHandlers{
		AuthHandler:         handlers.NewAuthHandler(baseHandler, container.AuthService),
		DocumentHandler:     handlers.NewDocumentHandler(baseHandler, container.DocumentService, container.ExpirationService),
		NotificationHandler: handlers.NewNotificationHandler(baseHandler, container.NotificationService, container.ExpirationService),
	}
}

func initializeGinRouter(cfg *config.Config) *gin.Engine {
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.CORSMiddleware())
	return router
}

func seedFirstAdmin(db *gorm.DB, cfg *config.Config) error {
	if cfg.FirstAdminEmail == "" || cfg.FirstAdminPassword == "" {
		logger.Warn("FIRST_ADMIN_EMAIL or FIRST_ADMIN_PASSWORD is not set. Skipping admin seeding.")
		return nil
	}

	var admin models.User
	result := db.Where("email = ?", cfg.FirstAdminEmail).First(&admin)
	if result.Error == nil {
		logger.Info("Admin user already exists. Skipping creation.", "email", cfg.FirstAdminEmail)
		return nil
	}
	if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return fmt.Errorf("failed to check for admin user: %w", result.Error)
	}

	hash, err := auth.HashPassword(cfg.FirstAdminPassword)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	newAdmin := &models.User{
		Email:        cfg.FirstAdminEmail,
		Name:         "Administrator",
		PasswordHash: hash,
		Role:         models.UserRoleAdmin,
		Status:       models.UserStatusActive,
	}
	if err := db.Create(newAdmin).Error; err != nil {
		return fmt.Errorf("failed to create admin user: %w", err)
	}

	logger.Info("Created first admin user", "email", cfg.FirstAdminEmail)
	return nil
}
