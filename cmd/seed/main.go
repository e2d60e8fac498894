package main

import (
	"context"
	"flag"
	"log"
	"math/rand/v2"
	"os"

	"go.uber.org/zap"

	"eventreg/internal/config"
	"eventreg/internal/infrastructure/database"
	"eventreg/internal/infrastructure/logging"
	"eventreg/internal/infrastructure/security"
	"eventreg/internal/seed"
)

func main() {
	reportOnly := flag.Bool("report", false, "print the user and event report without seeding")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ %v", err)
	}
	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		log.Fatalf("❌ %v", err)
	}
	defer logger.Sync()

	ctx := context.Background()
	if err := database.RunMigrations(cfg.DatabaseURL, logger); err != nil {
		logger.Fatal("❌ migrations failed", zap.Error(err))
	}
	db, err := database.Open(ctx, cfg.DatabaseURL, logger)
	if err != nil {
		logger.Fatal("❌ database unavailable", zap.Error(err))
	}
	defer db.Close()

	seeder := seed.New(
		database.NewUserRepository(db),
		database.NewEventRepository(db),
		database.NewRegistrationRepository(db),
		security.NewBcryptHasher(0),
		rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
	)
	if !*reportOnly {
		if err := seeder.Run(ctx, os.Stdout); err != nil {
			logger.Fatal("❌ seeding failed", zap.Error(err))
		}
	}
	if err := seeder.Report(ctx, os.Stdout); err != nil {
		logger.Fatal("❌ report failed", zap.Error(err))
	}
}
