package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/go-telegram/bot"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/TheTurningPointBen/turning-point-app-sub000/internal/app"
	"github.com/TheTurningPointBen/turning-point-app-sub000/internal/config"
	"github.com/TheTurningPointBen/turning-point-app-sub000/internal/controller"
	"github.com/TheTurningPointBen/turning-point-app-sub000/internal/notify"
	"github.com/TheTurningPointBen/turning-point-app-sub000/internal/repository"
	"github.com/TheTurningPointBen/turning-point-app-sub000/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger := app.NewLogger(cfg.Environment)
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := pgxpool.New(ctx, cfg.DBDSN)
	if err != nil {
		logger.Fatal("Failed to create database pool", zap.Error(err))
	}
	defer pool.Close()

	migrator, err := app.NewMigrator(pool, cfg.MigrationsPath)
	if err != nil {
		logger.Fatal("Failed to create migrator", zap.Error(err))
	}
	if err := migrator.Run(ctx); err != nil {
		logger.Fatal("Failed to apply migrations", zap.Error(err))
	}
	migrator.Close()

	bookingRepo := repository.NewBookingRepository(pool)
	tutorRepo := repository.NewTutorRepository(pool)
	parentRepo := repository.NewParentRepository(pool)
	windowRepo := repository.NewUnavailabilityRepository(pool)

	var botInstance *bot.Bot
	var notifier notify.Notifier
	if cfg.TelegramToken != "" {
		botInstance, err = bot.New(cfg.TelegramToken)
		if err != nil {
			logger.Fatal("Failed to create telegram bot", zap.Error(err))
		}
		notifier = notify.NewTelegramNotifier(botInstance, cfg.AdminChatID, logger)
	} else {
		logger.Warn("TELEGRAM_TOKEN not set, notification intents will only be logged")
		notifier = notify.NewLogNotifier(logger)
	}

	bookingService := service.NewBookingService(bookingRepo, tutorRepo, windowRepo, notifier, logger)
	matchingService := service.NewMatchingService(tutorRepo, windowRepo, logger)
	tutorService := service.NewTutorService(tutorRepo, windowRepo, logger)
	billingService := service.NewBillingService(bookingRepo, logger)

	if botInstance != nil {
		adminBot := controller.NewAdminBot(
			botInstance,
			cfg.AdminChatID,
			bookingService,
			matchingService,
			tutorService,
			billingService,
			parentRepo,
			logger,
		)
		adminBot.Start(ctx)
	}

	scheduler := app.NewScheduler(bookingService, logger)
	scheduler.Start(ctx)
	defer scheduler.Stop()

	logger.Info("Booking assignment engine started",
		zap.String("environment", cfg.Environment),
	)

	<-ctx.Done()
	logger.Info("Shutting down")
}
