package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"github.com/tuanvy6922/caketeaadmin/internal/config"
	"github.com/tuanvy6922/caketeaadmin/internal/migration"
	"github.com/tuanvy6922/caketeaadmin/internal/services"
	"github.com/tuanvy6922/caketeaadmin/pkg/server"
)

func main() {
	var (
		filePath = flag.String("file", "./data/snapshot.json", "Document store export to import")
		action   = flag.String("action", "import", "Action: check, import")
		dryRun   = flag.Bool("dry-run", false, "Convert records without writing them")
		verbose  = flag.Bool("verbose", false, "Enable verbose logging")
	)
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger := config.NewLogger(cfg)
	if *verbose {
		logger.SetLevel(logrus.DebugLevel)
	}

	absPath, err := filepath.Abs(*filePath)
	if err != nil {
		logger.WithError(err).Fatal("Failed to get absolute snapshot path")
	}

	logger.WithFields(logrus.Fields{
		"file":    absPath,
		"action":  *action,
		"dry_run": *dryRun,
	}).Info("Starting import tool")

	snap, err := readSnapshot(absPath)
	if err != nil {
		logger.WithError(err).Fatal("Failed to read snapshot")
	}

	switch *action {
	case "check":
		fmt.Printf("Snapshot %s\n", absPath)
		fmt.Printf("  Bills:    %d\n", len(snap.Bills))
		fmt.Printf("  Staffs:   %d\n", len(snap.Staffs))
		fmt.Printf("  Category: %d\n", len(snap.Categories))
		fmt.Printf("  Product:  %d\n", len(snap.Products))
		fmt.Printf("  USERS:    %d\n", len(snap.Users))
		fmt.Printf("  Vouchers: %d\n", len(snap.Vouchers))
	case "import":
		if err := runImport(cfg, logger, snap, *dryRun); err != nil {
			logger.WithError(err).Fatal("Import failed")
		}
	default:
		logger.WithField("action", *action).Fatal("Unknown action. Use: check, import")
	}

	logger.Info("Import tool completed successfully")
}

func readSnapshot(path string) (*migration.Snapshot, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return migration.ParseSnapshot(f)
}

func runImport(cfg *config.Config, logger *logrus.Logger, snap *migration.Snapshot, dryRun bool) error {
	container, err := server.NewContainerWithLogger(cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize container: %w", err)
	}
	defer container.Close()

	importer := migration.NewImporter(&services.ServiceContainer{
		OrderService:    container.OrderService,
		StaffService:    container.StaffService,
		CatalogService:  container.CatalogService,
		CustomerService: container.CustomerService,
		VoucherService:  container.VoucherService,
	}, container.Location, logger)
	result, err := importer.Import(context.Background(), snap, dryRun)
	if err != nil {
		return err
	}

	fmt.Printf("Orders imported: %d (skipped %d)\n", result.OrdersImported, result.OrdersSkipped)
	fmt.Printf("Staff imported:  %d (skipped %d)\n", result.StaffImported, result.StaffSkipped)
	fmt.Printf("Categories:      %d created\n", result.CategoriesImported)
	fmt.Printf("Products:        %d (skipped %d)\n", result.ProductsImported, result.ProductsSkipped)
	fmt.Printf("Users:           %d (skipped %d)\n", result.UsersImported, result.UsersSkipped)
	fmt.Printf("Vouchers:        %d (skipped %d)\n", result.VouchersImported, result.VouchersSkipped)
	for _, w := range result.Warnings {
		fmt.Printf("  ! %s\n", w)
	}
	return nil
}
