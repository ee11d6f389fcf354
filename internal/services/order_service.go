package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"

	"github.com/tuanvy6922/caketeaadmin/internal/billing"
	"github.com/tuanvy6922/caketeaadmin/internal/models"
	"github.com/tuanvy6922/caketeaadmin/internal/repositories"
)

// clock yields the current time in the shop's time zone
type clock struct {
	loc *time.Location
	now func() time.Time
}

func (c clock) Now() time.Time {
	return c.now().In(c.loc)
}

// orderService implements the OrderService interface
type orderService struct {
	repos     repositories.RepositoryManager
	validator *validator.Validate
	logger    *logrus.Logger
	clock     clock
	pageSize  int
}

// NewOrderService creates a new order service instance
func NewOrderService(repos repositories.RepositoryManager, config *ServiceConfig) OrderService {
	config = config.withDefaults()
	return &orderService{
		repos:     repos,
		validator: validator.New(),
		logger:    config.Logger,
		clock:     config.clock(),
		pageSize:  config.PageSize,
	}
}

// ListOrders returns one page of the orders matching the request criteria
// together with the revenue summary of every matching order.
func (s *orderService) ListOrders(ctx context.Context, req *ListOrdersRequest) (*models.OrderPage, error) {
	view, err := s.newView(req)
	if err != nil {
		return nil, err
	}

	return s.snapshot(ctx, view, requestedPage(req))
}

// GetOrder retrieves an order by ID
func (s *orderService) GetOrder(ctx context.Context, id string) (*models.Order, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: order ID cannot be empty", ErrValidation)
	}

	order, err := s.repos.Orders().GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get order: %w", err)
	}
	return order, nil
}

// FilterOrders returns every order matching criteria and their revenue
func (s *orderService) FilterOrders(ctx context.Context, criteria models.FilterCriteria) ([]*models.Order, models.RevenueSummary, error) {
	criteria = criteria.Normalize()
	if err := criteria.Validate(); err != nil {
		return nil, models.RevenueSummary{}, fmt.Errorf("%w: %w", ErrValidation, err)
	}

	orders, err := s.repos.Orders().List(ctx)
	if err != nil {
		return nil, models.RevenueSummary{}, fmt.Errorf("failed to list orders: %w", err)
	}

	now := s.clock.Now()
	filtered := billing.Filter(orders, criteria, now)
	summary := billing.Aggregate(filtered, now)
	s.warnExcluded(summary)
	return filtered, summary, nil
}

// UpdateStatus moves an order to a new status unless its current status is final
func (s *orderService) UpdateStatus(ctx context.Context, id string, req *UpdateStatusRequest) (*models.Order, error) {
	if req == nil {
		return nil, fmt.Errorf("%w: update status request cannot be nil", ErrValidation)
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrValidation, err)
	}

	order, err := s.GetOrder(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := billing.CheckStatusChange(order.Status, req.Status); err != nil {
		s.rejected(order, req.Actor, "status", string(req.Status), err)
		return nil, gateError(err)
	}

	if err := s.repos.Orders().UpdateStatus(ctx, id, req.Status, req.Actor); err != nil {
		return nil, writeError("update order status", err, billing.ErrTerminalStatus)
	}

	s.logger.WithFields(logrus.Fields{
		"order_id": id,
		"from":     order.Status,
		"to":       req.Status,
		"actor":    req.Actor,
	}).Info("Order status updated")

	return s.GetOrder(ctx, id)
}

// UpdateDeliveryStatus changes the delivery status unless the order is cancelled
func (s *orderService) UpdateDeliveryStatus(ctx context.Context, id string, req *UpdateDeliveryRequest) (*models.Order, error) {
	if req == nil {
		return nil, fmt.Errorf("%w: update delivery request cannot be nil", ErrValidation)
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrValidation, err)
	}

	order, err := s.GetOrder(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := billing.CheckDeliveryChange(order.Status, req.DeliveryStatus); err != nil {
		s.rejected(order, req.Actor, "delivery", string(req.DeliveryStatus), err)
		return nil, gateError(err)
	}

	if err := s.repos.Orders().UpdateDeliveryStatus(ctx, id, req.DeliveryStatus, req.Actor); err != nil {
		return nil, writeError("update delivery status", err, billing.ErrDeliveryLocked)
	}

	return s.GetOrder(ctx, id)
}

// AssignStaff hands an open order to an active staff member
func (s *orderService) AssignStaff(ctx context.Context, id string, req *AssignStaffRequest) (*models.Order, error) {
	if req == nil {
		return nil, fmt.Errorf("%w: assign request cannot be nil", ErrValidation)
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrValidation, err)
	}

	order, err := s.GetOrder(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := billing.CheckAssignment(order.Status); err != nil {
		s.rejected(order, req.Actor, "assignee", req.StaffID, err)
		return nil, err
	}

	staffName := ""
	if req.StaffID != "" {
		staff, err := s.repos.Staff().GetByID(ctx, req.StaffID)
		if err != nil {
			return nil, fmt.Errorf("failed to get staff: %w", err)
		}
		if !staff.IsActive() {
			return nil, fmt.Errorf("%w: %s", ErrStaffInactive, staff.ID)
		}
		staffName = staff.FullName
	}

	if err := s.repos.Orders().AssignStaff(ctx, id, req.StaffID, staffName, req.Actor); err != nil {
		return nil, writeError("assign staff", err, billing.ErrTerminalStatus)
	}

	return s.GetOrder(ctx, id)
}

// ImportOrders validates and upserts orders in a single transaction
func (s *orderService) ImportOrders(ctx context.Context, orders []*models.Order) (int, error) {
	for _, o := range orders {
		if o.DeliveryStatus == "" {
			o.DeliveryStatus = models.DeliveryStatusPending
		}
		if err := o.Validate(); err != nil {
			return 0, fmt.Errorf("%w: order %s: %v", ErrValidation, o.ID, err)
		}
	}

	var written int
	err := s.repos.WithTransaction(ctx, func(ctx context.Context) error {
		var err error
		written, err = s.repos.Orders().Upsert(ctx, orders)
		return err
	})
	if err != nil {
		return 0, fmt.Errorf("failed to import orders: %w", err)
	}

	s.logger.WithField("count", written).Info("Orders imported")
	return written, nil
}

// Subscribe implements OrderService.Subscribe. After a change the page is
// kept when it still exists and pulled back to the last page otherwise.
func (s *orderService) Subscribe(ctx context.Context, req *ListOrdersRequest) (<-chan *models.OrderPage, error) {
	view, err := s.newView(req)
	if err != nil {
		return nil, err
	}

	changes, cancel := s.repos.Changes().Subscribe()

	first, err := s.snapshot(ctx, view, requestedPage(req))
	if err != nil {
		cancel()
		return nil, err
	}

	out := make(chan *models.OrderPage, 1)
	out <- first

	go func() {
		defer close(out)
		defer cancel()

		for {
			select {
			case <-ctx.Done():
				return
			case _, ok := <-changes:
				if !ok {
					return
				}
				page, err := s.snapshot(ctx, view, 0)
				if err != nil {
					if ctx.Err() != nil {
						return
					}
					s.logger.WithError(err).Warn("Failed to reload orders for subscriber")
					continue
				}
				offerLatest(out, page)
			}
		}
	}()

	return out, nil
}

// snapshot reloads the orders into view. A positive page is applied after
// the reload so an explicit request is not clamped.
func (s *orderService) snapshot(ctx context.Context, view *billing.View, page int) (*models.OrderPage, error) {
	orders, err := s.repos.Orders().List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	now := s.clock.Now()
	view.Refresh(orders, now)
	if page > 0 {
		view.SetPage(page)
	}
	return s.render(view, now), nil
}

func requestedPage(req *ListOrdersRequest) int {
	if req == nil {
		return 0
	}
	return req.Page
}

func (s *orderService) newView(req *ListOrdersRequest) (*billing.View, error) {
	if req == nil {
		req = &ListOrdersRequest{}
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrValidation, err)
	}

	criteria := req.Criteria.Normalize()
	if err := criteria.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrValidation, err)
	}

	size := req.PageSize
	if size == 0 {
		size = s.pageSize
	}
	view := billing.NewView(size)
	view.SetCriteria(criteria)
	return view, nil
}

func (s *orderService) render(view *billing.View, now time.Time) *models.OrderPage {
	res := view.Result(now)
	s.warnExcluded(res.Revenue)
	return &models.OrderPage{
		Orders:     res.Orders,
		Page:       res.Page,
		PageSize:   res.PageSize,
		TotalPages: res.TotalPages,
		TotalCount: res.TotalCount,
		Revenue:    res.Revenue,
	}
}

func (s *orderService) warnExcluded(summary models.RevenueSummary) {
	if summary.Excluded > 0 {
		s.logger.WithField("excluded", summary.Excluded).Warn("Completed orders left out of revenue: missing date or unreadable amount")
	}
}

func (s *orderService) rejected(order *models.Order, actor, field, value string, err error) {
	s.logger.WithFields(logrus.Fields{
		"order_id": order.ID,
		"status":   order.Status,
		"field":    field,
		"value":    value,
		"actor":    actor,
	}).WithError(err).Warn("Order change rejected")
}

// offerLatest sends page, replacing an unread one
func offerLatest(out chan *models.OrderPage, page *models.OrderPage) {
	select {
	case out <- page:
		return
	default:
	}
	select {
	case <-out:
	default:
	}
	out <- page
}

// gateError marks unknown statuses as request errors; policy errors pass through
func gateError(err error) error {
	if errors.Is(err, billing.ErrInvalidStatus) {
		return fmt.Errorf("%w: %w", ErrValidation, err)
	}
	return err
}

// writeError maps a conditional write that lost a race to the gate error
func writeError(op string, err error, policy error) error {
	if repositories.IsConflict(err) {
		return fmt.Errorf("%w: %v", policy, err)
	}
	return fmt.Errorf("failed to %s: %w", op, err)
}
