package main

import (
	"log/slog"
	"os"

	"github.com/ahmetcoskunkizilkaya/atis-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/atis-backend/internal/database"
	"github.com/ahmetcoskunkizilkaya/atis-backend/internal/logging"
	"github.com/ahmetcoskunkizilkaya/atis-backend/internal/seed"
)

func main() {
	logging.Setup()

	cfg := config.Load()
	if !cfg.IsSQLite() && cfg.DBPassword == "" {
		slog.Error("DB_PASSWORD environment variable is required")
		os.Exit(1)
	}

	if err := database.Connect(cfg); err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	defer database.Close()

	if err := database.Migrate(database.DB); err != nil {
		slog.Error("migration failed", "error", err)
		os.Exit(1)
	}

	res, err := seed.Run(database.DB)
	if err != nil {
		slog.Error("seeding failed", "error", err)
		os.Exit(1)
	}
	if res.Skipped {
		slog.Info("database already seeded, skipping")
		return
	}
	slog.Info("database seeded",
		"users", res.Users,
		"inspections", res.Inspections,
		"alerts", res.Alerts,
	)
}
