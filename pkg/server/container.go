package server

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/tuanvy6922/caketeaadmin/internal/adapters/storage"
	"github.com/tuanvy6922/caketeaadmin/internal/config"
	"github.com/tuanvy6922/caketeaadmin/internal/database"
	"github.com/tuanvy6922/caketeaadmin/internal/middleware"
	"github.com/tuanvy6922/caketeaadmin/internal/repositories"
	"github.com/tuanvy6922/caketeaadmin/internal/repositories/sqlite"
	"github.com/tuanvy6922/caketeaadmin/internal/services"
)

// Container holds all application dependencies
type Container struct {
	Config   *config.Config
	Logger   *logrus.Logger
	Location *time.Location

	OrderService     services.OrderService
	DashboardService services.DashboardService
	StaffService     services.StaffService
	ExportService    services.ExportService
	CatalogService   services.CatalogService
	CustomerService  services.CustomerService
	VoucherService   services.VoucherService
	AuthService      *middleware.AuthService

	Repositories repositories.RepositoryManager
	Storage      storage.FileStorage

	db *database.ConnectionManager
}

// NewContainer opens the database, runs migrations and wires the services
func NewContainer(cfg *config.Config) (*Container, error) {
	return NewContainerWithLogger(cfg, config.NewLogger(cfg))
}

// NewContainerWithLogger is NewContainer with a caller-supplied logger
func NewContainerWithLogger(cfg *config.Config, logger *logrus.Logger) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}
	if cfg.Database == nil {
		cfg.Database = config.DefaultDatabaseConfig()
	}
	if err := cfg.Database.Validate(); err != nil {
		return nil, fmt.Errorf("invalid database config: %w", err)
	}

	db := database.NewConnectionManager(cfg.Database.ToConnectionConfig(logger))
	if err := db.Connect(); err != nil {
		return nil, fmt.Errorf("failed to connect database: %w", err)
	}

	fs, err := storage.New(&storage.StorageConfig{
		Type:     cfg.Storage.Type,
		BasePath: cfg.Storage.LocalPath,
	}, storage.DefaultRetryConfig(), logger)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create file storage: %w", err)
	}

	repos := sqlite.NewSQLiteRepositoryManager(db.GetDB(), logger)
	loc := cfg.Location()

	serviceContainer, err := services.NewServiceContainer(repos, fs, &services.ServiceConfig{
		PageSize: cfg.PageSize,
		Location: loc,
		Logger:   logger,
	})
	if err != nil {
		fs.Close()
		db.Close()
		return nil, fmt.Errorf("failed to create service container: %w", err)
	}

	auth := middleware.NewAuthService(&middleware.AuthConfig{
		JWTSecret:     cfg.JWT.Secret,
		TokenDuration: time.Duration(cfg.JWT.ExpiryHours) * time.Hour,
	})

	logger.WithFields(logrus.Fields{
		"environment": cfg.Environment,
		"timezone":    loc.String(),
		"page_size":   cfg.PageSize,
		"mode":        config.GetDeploymentMode(),
	}).Info("Container initialized")

	return &Container{
		Config:           cfg,
		Logger:           logger,
		Location:         loc,
		OrderService:     serviceContainer.OrderService,
		DashboardService: serviceContainer.DashboardService,
		StaffService:     serviceContainer.StaffService,
		ExportService:    serviceContainer.ExportService,
		CatalogService:   serviceContainer.CatalogService,
		CustomerService:  serviceContainer.CustomerService,
		VoucherService:   serviceContainer.VoucherService,
		AuthService:      auth,
		Repositories:     repos,
		Storage:          fs,
		db:               db,
	}, nil
}

// Health reports database health
func (c *Container) Health(ctx context.Context) *database.HealthStatus {
	return c.db.HealthCheck(ctx)
}

// Close cleans up all resources
func (c *Container) Close() error {
	var errs []error
	if c.Storage != nil {
		if err := c.Storage.Close(); err != nil {
			errs = append(errs, fmt.Errorf("storage: %w", err))
		}
	}
	if c.db != nil {
		if err := c.db.Close(); err != nil {
			errs = append(errs, fmt.Errorf("database: %w", err))
		}
	}
	return errors.Join(errs...)
}
