package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"consultbr_backend/database"
	"consultbr_backend/internal/auth"
	"consultbr_backend/internal/config"
	"consultbr_backend/internal/email"
	"consultbr_backend/internal/handlers"
	"consultbr_backend/internal/logger"
	"consultbr_backend/internal/metrics"
	"consultbr_backend/internal/middleware"
	"consultbr_backend/internal/repositories"
	"consultbr_backend/internal/routes"
	"consultbr_backend/internal/services"
	"consultbr_backend/internal/storage"
	"consultbr_backend/internal/validator"
	"consultbr_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const shutdownTimeout = 10 * time.Second

func Run() {
	cfg := config.GetConfig()
	logger.Init(cfg.Server.Env)
	logger.Info("Logger initialized", "env", cfg.Server.Env)
	apperrors.SetDebug(!cfg.IsProduction())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("Connecting to database...")
	gormDB, err := database.Open(ctx, cfg)
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}
	defer database.Close(gormDB)
	logger.Info("Database connected")

	if cfg.Database.AutoMigrate {
		if err := database.Migrate(ctx, cfg.Database.DSN); err != nil {
			logger.Fatal("Failed to apply migrations", "error", err)
		}
	}

	metrics.Register()

	ginRouter, err := SetupRouter(cfg, gormDB)
	if err != nil {
		logger.Fatal("Failed to set up router", "error", err)
	}

	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      ginRouter,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	go func() {
		logger.Info("Server starting", "address", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Server startup error", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", "error", err)
	}
	logger.Info("Server stopped")
}

// SetupRouter собирает репозитории, сервисы и хендлеры и возвращает готовый роутер
func SetupRouter(cfg *config.Config, db *gorm.DB) (*gin.Engine, error) {
	store, err := storage.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}
	logger.Info("Storage initialized", "type", cfg.Storage.Type)

	mailer, err := email.NewProvider(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize email provider: %w", err)
	}
	if !mailer.Enabled() {
		logger.Warn("SMTP is not configured, email notifications are disabled")
	}

	serviceContainer := initializeServices(cfg, store, mailer)

	userRepo := repositories.NewUserRepository()
	sessions := auth.NewSessionManager(cfg.Auth.SessionSecret, cfg.SessionTTL())
	guards := handlers.NewGuards(sessions, cfg.Auth.CookieName, userRepo)

	appHandlers := initializeHandlers(cfg, serviceContainer, sessions)

	ginRouter := initializeGinRouter(cfg, db)
	routes.RegisterRoutes(ginRouter, appHandlers, guards, staticFiles(store))

	return ginRouter, nil
}

func initializeServices(cfg *config.Config, store storage.Storage, mailer email.Provider) *services.ServiceContainer {
	// --- Репозитории ---
	userRepo := repositories.NewUserRepository()
	profileRepo := repositories.NewProfileRepository()
	projectRepo := repositories.NewProjectRepository()
	proposalRepo := repositories.NewProposalRepository()
	messageRepo := repositories.NewMessageRepository()
	favoriteRepo := repositories.NewFavoriteRepository()
	portfolioRepo := repositories.NewPortfolioRepository()
	specializationRepo := repositories.NewSpecializationRepository()
	notificationRepo := repositories.NewNotificationRepository()
	transactionRepo := repositories.NewTransactionRepository()
	statsRepo := repositories.NewStatsRepository()

	// --- Сервисы ---
	notificationService := services.NewNotificationService(notificationRepo, userRepo, mailer, cfg.Server.PublicURL)

	return &services.ServiceContainer{
		UserService:           services.NewUserService(userRepo, profileRepo, statsRepo),
		ProfileService:        services.NewProfileService(userRepo, profileRepo, statsRepo),
		ProjectService:        services.NewProjectService(projectRepo, profileRepo, notificationService),
		ProposalService:       services.NewProposalService(proposalRepo, projectRepo, profileRepo, notificationService),
		MessageService:        services.NewMessageService(messageRepo, userRepo, projectRepo, notificationService),
		FavoriteService:       services.NewFavoriteService(favoriteRepo, profileRepo, projectRepo),
		PortfolioService:      services.NewPortfolioService(portfolioRepo, profileRepo),
		SpecializationService: services.NewSpecializationService(specializationRepo),
		DashboardService:      services.NewDashboardService(profileRepo, statsRepo),
		NotificationService:   notificationService,
		TransactionService:    services.NewTransactionService(transactionRepo, projectRepo, profileRepo, notificationService, cfg.Payments.CommissionRate),
		UploadService:         services.NewUploadService(store, cfg.Upload.MaxSize, cfg.Upload.AllowedTypes),
	}
}

func initializeHandlers(cfg *config.Config, svc *services.ServiceContainer, sessions *auth.SessionManager) *handlers.AppHandlers {
	baseHandler := handlers.NewBaseHandler(validator.New())
	identity := auth.NewIdentityVerifier(cfg.IdentityProvider.Secret, cfg.IdentityProvider.Issuer)

	authConfig := handlers.AuthConfig{
		LoginURL:     cfg.IdentityProvider.LoginURL,
		LogoutURL:    cfg.IdentityProvider.LogoutURL,
		PublicURL:    cfg.Server.PublicURL,
		CookieName:   cfg.Auth.CookieName,
		CookieSecure: cfg.Auth.CookieSecure,
	}

	return &handlers.AppHandlers{
		AuthHandler:           handlers.NewAuthHandler(baseHandler, svc.UserService, identity, sessions, authConfig),
		UserHandler:           handlers.NewUserHandler(baseHandler, svc.UserService),
		ProfileHandler:        handlers.NewProfileHandler(baseHandler, svc.ProfileService),
		ProjectHandler:        handlers.NewProjectHandler(baseHandler, svc.ProjectService),
		ProposalHandler:       handlers.NewProposalHandler(baseHandler, svc.ProposalService),
		MessageHandler:        handlers.NewMessageHandler(baseHandler, svc.MessageService),
		FavoriteHandler:       handlers.NewFavoriteHandler(baseHandler, svc.FavoriteService),
		PortfolioHandler:      handlers.NewPortfolioHandler(baseHandler, svc.PortfolioService),
		DashboardHandler:      handlers.NewDashboardHandler(baseHandler, svc.DashboardService),
		SpecializationHandler: handlers.NewSpecializationHandler(baseHandler, svc.SpecializationService),
		NotificationHandler:   handlers.NewNotificationHandler(baseHandler, svc.NotificationService),
		TransactionHandler:    handlers.NewTransactionHandler(baseHandler, svc.TransactionService),
		UploadHandler:         handlers.NewUploadHandler(baseHandler, svc.UploadService, cfg.Upload.MaxSize),
	}
}

func initializeGinRouter(cfg *config.Config, db *gorm.DB) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.MetricsMiddleware())
	router.Use(middleware.CORSMiddleware(cfg.CORS.AllowedOrigins))
	router.Use(middleware.DBMiddleware(db))
	return router
}

// staticFiles - локальное хранилище с относительным base_url раздаем сами
func staticFiles(store storage.Storage) *routes.StaticFiles {
	local, ok := store.(*storage.LocalStorage)
	if !ok || !strings.HasPrefix(local.BaseURL(), "/") {
		return nil
	}
	return &routes.StaticFiles{URLPrefix: local.BaseURL(), Dir: local.BasePath()}
}
