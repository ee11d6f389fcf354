package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"github.com/tuanvy6922/caketeaadmin/internal/database"
)

func main() {
	var (
		dbPath         = flag.String("db", "./data/caketea.db", "Database file path")
		migrationsPath = flag.String("migrations", "", "Migrations directory (defaults to the embedded set)")
		action         = flag.String("action", "up", "Migration action: up, down, status, validate")
		verbose        = flag.Bool("verbose", false, "Enable verbose logging")
	)
	flag.Parse()

	logger := logrus.New()
	if *verbose {
		logger.SetLevel(logrus.DebugLevel)
	}

	absDBPath, err := filepath.Abs(*dbPath)
	if err != nil {
		logger.WithError(err).Fatal("Failed to get absolute database path")
	}

	if *migrationsPath != "" {
		abs, err := filepath.Abs(*migrationsPath)
		if err != nil {
			logger.WithError(err).Fatal("Failed to get absolute migrations path")
		}
		*migrationsPath = abs
	}

	logger.WithFields(logrus.Fields{
		"db_path":         absDBPath,
		"migrations_path": *migrationsPath,
		"action":          *action,
	}).Info("Starting migration tool")

	cm := database.NewConnectionManager(&database.ConnectionConfig{
		DatabasePath:   absDBPath,
		MigrationsPath: *migrationsPath,
		SkipMigrations: true,
		MaxOpenConns:   1,
		MaxIdleConns:   1,
		Logger:         logger,
	})
	if err := cm.Connect(); err != nil {
		logger.WithError(err).Fatal("Failed to connect to database")
	}
	defer cm.Close()

	if err := run(cm.GetMigrationManager(), *action); err != nil {
		logger.WithError(err).Error("Migration tool failed")
		cm.Close()
		os.Exit(1)
	}

	logger.Info("Migration tool completed successfully")
}

func run(mm *database.MigrationManager, action string) error {
	switch action {
	case "up":
		return mm.RunMigrations()
	case "down":
		return mm.RollbackMigration()
	case "status":
		status, err := mm.GetMigrationStatus()
		if err != nil {
			return fmt.Errorf("failed to get migration status: %w", err)
		}
		fmt.Printf("Migration Status:\n")
		fmt.Printf("  Version: %d\n", status.Version)
		fmt.Printf("  Applied: %t\n", status.Applied)
		fmt.Printf("  Dirty: %t\n", status.Dirty)
		return nil
	case "validate":
		if err := mm.ValidateSchema(); err != nil {
			return fmt.Errorf("schema validation failed: %w", err)
		}
		fmt.Println("Schema validation passed successfully")
		return nil
	default:
		return fmt.Errorf("unknown action %q, use: up, down, status, validate", action)
	}
}
