package services

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/tuanvy6922/caketeaadmin/internal/billing"
	"github.com/tuanvy6922/caketeaadmin/internal/models"
	"github.com/tuanvy6922/caketeaadmin/internal/repositories"
)

// dashboardService implements the DashboardService interface
type dashboardService struct {
	repos  repositories.RepositoryManager
	logger *logrus.Logger
	clock  clock
}

// NewDashboardService creates a new dashboard service instance
func NewDashboardService(repos repositories.RepositoryManager, config *ServiceConfig) DashboardService {
	config = config.withDefaults()
	return &dashboardService{
		repos:  repos,
		logger: config.Logger,
		clock:  config.clock(),
	}
}

// GetDashboard summarizes every order regardless of any list filter
func (s *dashboardService) GetDashboard(ctx context.Context) (*models.Dashboard, error) {
	var (
		orders []*models.Order
		staff  []*models.Staff
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		orders, err = s.repos.Orders().List(gctx)
		if err != nil {
			return fmt.Errorf("failed to list orders: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		staff, err = s.repos.Staff().List(gctx)
		if err != nil {
			return fmt.Errorf("failed to list staff: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	now := s.clock.Now()
	dashboard := &models.Dashboard{
		GeneratedAt:  now,
		Revenue:      billing.Aggregate(orders, now),
		Last7Days:    billing.DailySeries(orders, now, 7),
		Last30Days:   billing.DailySeries(orders, now, 30),
		TopProducts:  billing.TopProducts(orders, models.DashboardTopProducts),
		StatusCounts: billing.StatusCounts(orders),
		TotalOrders:  len(orders),
		TotalStaff:   len(staff),
	}
	for _, member := range staff {
		if member.IsActive() {
			dashboard.ActiveStaff++
		}
	}

	if dashboard.Revenue.Excluded > 0 {
		s.logger.WithField("excluded", dashboard.Revenue.Excluded).Warn("Completed orders left out of dashboard revenue")
	}

	return dashboard, nil
}
