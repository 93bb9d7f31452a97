package app

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"settings_backend/database"
	"settings_backend/internal/audit"
	"settings_backend/internal/auth"
	"settings_backend/internal/config"
	"settings_backend/internal/handlers"
	"settings_backend/internal/logger"
	"settings_backend/internal/middleware"
	"settings_backend/internal/models"
	"settings_backend/internal/notification"
	"settings_backend/internal/otp"
	"settings_backend/internal/repositories"
	"settings_backend/internal/routes"
	"settings_backend/internal/services"
	"settings_backend/internal/validator"
)

func Run() {
	config.LoadConfig()
	cfg := config.AppConfig
	logger.Init(cfg.Server.Env)
	logger.Info("Logger initialized", "env", cfg.Server.Env)

	logger.Info("Connecting to database...")
	gormDB, err := database.ConnectGorm()
	if err != nil {
		logger.Fatal("Failed to connect to GORM", "error", err)
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		logger.Fatal("Failed to get *sql.DB from GORM", "error", err)
	}
	if err = sqlDB.Ping(); err != nil {
		logger.Fatal("Database unavailable", "error", err)
	}
	logger.Info("Database connected")

	if err := database.AutoMigrate(gormDB); err != nil {
		logger.Fatal("Failed to run migrations", "error", err)
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	ginRouter := SetupRouter(cfg, gormDB, redisClient)

	address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info(fmt.Sprintf("Server starting on %s", address))
	if err := ginRouter.Run(address); err != nil {
		logger.Fatal("Server startup error", "error", err)
	}
}

func SetupRouter(cfg *config.Config, gormDB *gorm.DB, redisClient *redis.Client) *gin.Engine {
	parser := auth.NewJWTParser(cfg.JWT.Secret)

	serviceContainer := initializeServices(cfg, gormDB, redisClient, parser)
	appHandlers := initializeHandlers(serviceContainer)

	ginRouter := initializeGinRouter(cfg)
	routes.RegisterRoutes(ginRouter, appHandlers, parser, cfg.Roles.Officer)

	return ginRouter
}

func initializeServices(cfg *config.Config, gormDB *gorm.DB, redisClient *redis.Client, parser auth.TokenParser) *services.ServiceContainer {
	// --- Репозитории ---
	settingsRepo := repositories.NewSettingsRepository(gormDB)
	channelRepo := repositories.NewChannelRepository(gormDB)
	inboxRepo := repositories.NewInboxRepository(gormDB)

	// --- Доставка кодов подтверждения ---
	dispatcher := notification.NewDispatcher(map[models.Channel]notification.Sender{
		models.ChannelEmail: notification.NewSMTPProvider(cfg),
		models.ChannelInbox: notification.NewInboxProvider(inboxRepo),
		models.ChannelDiia:  notification.NewDiiaProvider(cfg.Diia.GatewayURL, time.Duration(cfg.Diia.Timeout)*time.Second),
	})

	// --- OTP и роли ---
	otpTTL := time.Duration(cfg.Verification.OtpTTL) * time.Second
	otpStore := otp.NewRedisStore(redisClient, otpTTL)
	generator := otp.NewSecureGenerator()
	roleGate := auth.NewRoleGate(cfg.Roles.Officer, cfg.Roles.Citizen)

	// --- Аудит ---
	auditFacade := audit.NewFacade(audit.NewDBSink(gormDB))

	// --- Сервисы ---
	verificationService := services.NewVerificationService(parser, roleGate, generator, otpStore, dispatcher, otpTTL)
	activationService := services.NewActivationService(parser, roleGate, verificationService, settingsRepo, channelRepo, auditFacade)
	settingsService := services.NewSettingsService(parser, settingsRepo, channelRepo, inboxRepo)

	return &services.ServiceContainer{
		SettingsService:     settingsService,
		VerificationService: verificationService,
		ActivationService:   activationService,
	}
}

func initializeHandlers(sc *services.ServiceContainer) *handlers.AppHandlers {
	base := handlers.NewBaseHandler(validator.New())

	return &handlers.AppHandlers{
		SettingsHandler: handlers.NewSettingsHandler(base, sc.SettingsService, sc.VerificationService, sc.ActivationService),
	}
}

func initializeGinRouter(cfg *config.Config) *gin.Engine {
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	ginRouter := gin.New()
	ginRouter.Use(gin.Recovery())
	ginRouter.Use(middleware.RequestIDMiddleware())
	ginRouter.Use(middleware.LoggingMiddleware())

	return ginRouter
}
