package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"

	"github.com/tuanvy6922/caketeaadmin/internal/billing"
	"github.com/tuanvy6922/caketeaadmin/internal/models"
	"github.com/tuanvy6922/caketeaadmin/internal/repositories"
)

// customerService implements the CustomerService interface
type customerService struct {
	repos     repositories.RepositoryManager
	validator *validator.Validate
	logger    *logrus.Logger
}

// NewCustomerService creates a new user directory service instance
func NewCustomerService(repos repositories.RepositoryManager, config *ServiceConfig) CustomerService {
	config = config.withDefaults()
	return &customerService{
		repos:     repos,
		validator: validator.New(),
		logger:    config.Logger,
	}
}

// SearchCustomers matches the query against name, email and phone number
func (s *customerService) SearchCustomers(ctx context.Context, req *SearchCustomersRequest) (*models.CustomerPage, error) {
	if req == nil {
		req = &SearchCustomersRequest{}
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrValidation, err)
	}

	all, err := s.repos.Customers().List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list customers: %w", err)
	}

	query := strings.ToLower(strings.TrimSpace(req.Query))
	matched := make([]*models.Customer, 0, len(all))
	for _, customer := range all {
		if req.State != "" && customer.State != req.State {
			continue
		}
		if query != "" && !customerMatches(customer, query) {
			continue
		}
		matched = append(matched, customer)
	}

	number, size := pageBounds(req.Page, req.PageSize, models.CustomerPageSize)
	page, err := billing.Paginate(matched, size, number)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrValidation, err)
	}

	return &models.CustomerPage{
		Customers:  page.Items,
		Page:       page.Page,
		PageSize:   page.PageSize,
		TotalPages: page.TotalPages,
		TotalCount: page.TotalCount,
	}, nil
}

func customerMatches(customer *models.Customer, query string) bool {
	return strings.Contains(strings.ToLower(customer.GetSearchableText()), query) ||
		strings.Contains(customer.PhoneNumber, query)
}

// GetCustomer retrieves a user by ID
func (s *customerService) GetCustomer(ctx context.Context, id string) (*models.Customer, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: customer ID cannot be empty", ErrValidation)
	}

	customer, err := s.repos.Customers().GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get customer: %w", err)
	}
	return customer, nil
}

// UpdateCustomer edits a user's profile. Administrator accounts are read-only.
func (s *customerService) UpdateCustomer(ctx context.Context, id string, req *UpdateCustomerRequest) (*models.Customer, error) {
	if req == nil {
		return nil, fmt.Errorf("%w: update customer request cannot be nil", ErrValidation)
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrValidation, err)
	}

	customer, err := s.editable(ctx, id)
	if err != nil {
		return nil, err
	}

	customer.FullName = strings.TrimSpace(req.FullName)
	customer.Email = strings.ToLower(strings.TrimSpace(req.Email))
	customer.PhoneNumber = strings.TrimSpace(req.PhoneNumber)
	customer.Address = strings.TrimSpace(req.Address)
	customer.Role = req.Role

	if err := customer.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrValidation, err)
	}

	if err := s.repos.Customers().Upsert(ctx, customer); err != nil {
		return nil, fmt.Errorf("failed to update customer: %w", err)
	}

	s.logger.WithField("customer_id", customer.ID).Info("Customer updated")
	return customer, nil
}

// SetCustomerState blocks or unblocks a user. Administrator accounts are read-only.
func (s *customerService) SetCustomerState(ctx context.Context, id string, req *SetCustomerStateRequest) (*models.Customer, error) {
	if req == nil {
		return nil, fmt.Errorf("%w: set state request cannot be nil", ErrValidation)
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrValidation, err)
	}

	if _, err := s.editable(ctx, id); err != nil {
		return nil, err
	}

	if err := s.repos.Customers().SetState(ctx, id, req.State); err != nil {
		return nil, fmt.Errorf("failed to set customer state: %w", err)
	}

	s.logger.WithFields(logrus.Fields{
		"customer_id": id,
		"state":       req.State,
	}).Info("Customer state changed")

	return s.GetCustomer(ctx, id)
}

func (s *customerService) editable(ctx context.Context, id string) (*models.Customer, error) {
	customer, err := s.GetCustomer(ctx, id)
	if err != nil {
		return nil, err
	}
	if customer.IsAdmin() {
		return nil, fmt.Errorf("%w: %s", ErrProtectedAccount, id)
	}
	return customer, nil
}

// ImportCustomers validates and upserts users in a single transaction
func (s *customerService) ImportCustomers(ctx context.Context, customers []*models.Customer) (int, error) {
	for _, customer := range customers {
		if customer.State == "" {
			customer.State = models.CustomerAvailable
		}
		if customer.Role == "" {
			customer.Role = models.CustomerRoleUser
		}
		if err := customer.Validate(); err != nil {
			return 0, fmt.Errorf("%w: customer %s: %v", ErrValidation, customer.ID, err)
		}
	}

	err := s.repos.WithTransaction(ctx, func(ctx context.Context) error {
		for _, customer := range customers {
			if err := s.repos.Customers().Upsert(ctx, customer); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("failed to import customers: %w", err)
	}

	s.logger.WithField("count", len(customers)).Info("Customers imported")
	return len(customers), nil
}
