package services

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/tuanvy6922/caketeaadmin/internal/adapters/storage"
	"github.com/tuanvy6922/caketeaadmin/internal/models"
	"github.com/tuanvy6922/caketeaadmin/internal/repositories"
)

// ServiceContainer holds all service instances
type ServiceContainer struct {
	OrderService     OrderService
	DashboardService DashboardService
	StaffService     StaffService
	ExportService    ExportService
	CatalogService   CatalogService
	CustomerService  CustomerService
	VoucherService   VoucherService
}

// ServiceConfig holds configuration shared by the services
type ServiceConfig struct {
	// PageSize is used when a request does not name one
	PageSize int

	// Location defines calendar days for date filters and revenue buckets
	Location *time.Location

	Logger *logrus.Logger

	// Now overrides the wall clock in tests
	Now func() time.Time
}

func (c *ServiceConfig) withDefaults() *ServiceConfig {
	out := ServiceConfig{}
	if c != nil {
		out = *c
	}
	if out.PageSize < 1 {
		out.PageSize = models.DefaultPageSize
	}
	if out.Location == nil {
		out.Location = time.Local
	}
	if out.Logger == nil {
		out.Logger = logrus.New()
	}
	if out.Now == nil {
		out.Now = time.Now
	}
	return &out
}

func (c *ServiceConfig) clock() clock {
	return clock{loc: c.Location, now: c.Now}
}

// NewServiceContainer creates a new service container with all services
func NewServiceContainer(repos repositories.RepositoryManager, fs storage.FileStorage, config *ServiceConfig) (*ServiceContainer, error) {
	if repos == nil {
		return nil, fmt.Errorf("repository manager cannot be nil")
	}
	if fs == nil {
		return nil, fmt.Errorf("file storage cannot be nil")
	}

	config = config.withDefaults()
	orderService := NewOrderService(repos, config)

	return &ServiceContainer{
		OrderService:     orderService,
		DashboardService: NewDashboardService(repos, config),
		StaffService:     NewStaffService(repos, config),
		ExportService:    NewExportService(orderService, fs, config),
		CatalogService:   NewCatalogService(repos, config),
		CustomerService:  NewCustomerService(repos, config),
		VoucherService:   NewVoucherService(repos, config),
	}, nil
}

// Validate validates that all services are properly initialized
func (sc *ServiceContainer) Validate() error {
	if sc.OrderService == nil {
		return fmt.Errorf("order service is nil")
	}
	if sc.DashboardService == nil {
		return fmt.Errorf("dashboard service is nil")
	}
	if sc.StaffService == nil {
		return fmt.Errorf("staff service is nil")
	}
	if sc.ExportService == nil {
		return fmt.Errorf("export service is nil")
	}
	if sc.CatalogService == nil {
		return fmt.Errorf("catalog service is nil")
	}
	if sc.CustomerService == nil {
		return fmt.Errorf("customer service is nil")
	}
	if sc.VoucherService == nil {
		return fmt.Errorf("voucher service is nil")
	}
	return nil
}
