package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"eventreg/internal/adapters/web"
	"eventreg/internal/application"
	"eventreg/internal/config"
	"eventreg/internal/infrastructure/database"
	"eventreg/internal/infrastructure/i18n"
	"eventreg/internal/infrastructure/logging"
	"eventreg/internal/infrastructure/security"
	"eventreg/pkg/tz"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ %v", err)
	}

	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		log.Fatalf("❌ %v", err)
	}
	defer logger.Sync()

	if err := run(cfg, logger); err != nil {
		logger.Error("❌ server stopped", zap.Error(err))
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *zap.Logger) error {
	if err := tz.Set(cfg.Timezone); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.AutoMigrate {
		if err := database.RunMigrations(cfg.DatabaseURL, logger); err != nil {
			return err
		}
	}
	db, err := database.Open(ctx, cfg.DatabaseURL, logger)
	if err != nil {
		return err
	}
	defer db.Close()

	userRepo := database.NewUserRepository(db)
	eventRepo := database.NewEventRepository(db)
	registrationRepo := database.NewRegistrationRepository(db)

	server, err := web.NewServer(web.Deps{
		Logger:        logger,
		Accounts:      application.NewAccountService(userRepo, security.NewBcryptHasher(0), cfg.AdminSecretCode),
		Events:        application.NewEventService(eventRepo, registrationRepo),
		Registrations: application.NewRegistrationService(registrationRepo, eventRepo),
		Admin:         application.NewAdminService(userRepo, eventRepo, registrationRepo),
		Sessions:      security.NewSessions(cfg.SessionSecret, cfg.SessionTTL),
		Translator:    i18n.NewTranslator(cfg.DefaultLocale, logger),
		CookieSecure:  cfg.CookieSecure,
	})
	if err != nil {
		return err
	}
	return server.Run(ctx, cfg.HTTPAddr)
}
