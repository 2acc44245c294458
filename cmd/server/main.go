package main

import (
	"context"
	"employee-panel/internal/api"
	"employee-panel/internal/config"
	"employee-panel/internal/handler"
	"employee-panel/internal/repository"
	"employee-panel/internal/service"
	"employee-panel/internal/storage"
	"employee-panel/pkg/telegram"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
)

func main() {
	logrus.Info("Initializing config...")
	cfg := config.GetConfig()
	logger := cfg.NewLogger()
	logger.Info("Config initialized...")

	db, err := storage.Open(cfg.DatabaseDriver, cfg.DatabaseURL, logger)
	if err != nil {
		logger.WithError(err).Fatal("Failed to connect to database")
	}
	defer func() {
		if err := storage.Close(db); err != nil {
			logger.Infof("Error closing database: %v", err)
		}
	}()

	store, err := repository.NewGormStore(db, logger)
	if err != nil {
		logger.WithError(err).Fatal("Failed to create day record store")
	}

	userRepo, err := repository.NewGormUserRepository(db)
	if err != nil {
		logger.WithError(err).Fatal("Failed to create user repository")
	}

	userService := service.NewUserService(userRepo, logger)
	attendanceService := service.NewAttendanceService(store, logger)
	payrollService := service.NewPayrollService(store, logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Инициализируем администратора из конфига
	if err := userService.InitializeAdmin(ctx, cfg.BaseAdminChatID); err != nil {
		logger.Infof("Warning: Failed to initialize admin: %v", err)
	} else if cfg.BaseAdminChatID != 0 {
		logger.Infof("Admin initialized with chat ID: %d", cfg.BaseAdminChatID)
	}

	auth := api.NewAuthenticator(cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTAudience)
	router := api.NewRouter(
		api.NewHandler(attendanceService, payrollService, logger),
		auth,
		cfg.CORSOrigins,
		logger,
	)
	server := api.NewServer(cfg.HTTPPort, router)

	go func() {
		logger.Infof("HTTP API listening on :%d", cfg.HTTPPort)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithError(err).Fatal("HTTP server failed")
		}
	}()

	if cfg.BotEnabled() {
		client, err := telegram.NewClient(cfg.TelegramToken, cfg.TelegramDebug)
		if err != nil {
			logger.WithError(err).Fatal("Failed to create Telegram client")
		}
		logger.Infof("Authorized on account %s", client.Bot.Self.UserName)

		botHandler := handler.NewHandler(
			client.Bot,
			userService,
			attendanceService,
			payrollService,
			cfg.BaseAdminChatID,
			logger,
		)

		go botHandler.HandleUpdates(ctx, client.Updates())
		defer client.Stop()

		logger.Info("Bot started")
	} else {
		logger.Info("TELEGRAM_BOT_TOKEN is not set, bot disabled")
	}

	logger.Info("Service started. Press Ctrl+C to stop.")
	<-ctx.Done()

	logger.Info("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.WithError(err).Error("Server forced to shutdown")
	}

	logger.Info("Service stopped gracefully")
}
