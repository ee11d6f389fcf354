package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/tuanvy6922/caketeaadmin/internal/billing"
	"github.com/tuanvy6922/caketeaadmin/internal/models"
	"github.com/tuanvy6922/caketeaadmin/internal/repositories"
)

var hundred = decimal.NewFromInt(100)

// voucherService implements the VoucherService interface
type voucherService struct {
	repos     repositories.RepositoryManager
	validator *validator.Validate
	logger    *logrus.Logger
	clock     clock
}

// NewVoucherService creates a new voucher service instance
func NewVoucherService(repos repositories.RepositoryManager, config *ServiceConfig) VoucherService {
	config = config.withDefaults()
	return &voucherService{
		repos:     repos,
		validator: validator.New(),
		logger:    config.Logger,
		clock:     config.clock(),
	}
}

// SearchVouchers matches the query against voucher codes. Each page carries
// how often its codes were used on orders that were not cancelled.
func (s *voucherService) SearchVouchers(ctx context.Context, req *SearchVouchersRequest) (*models.VoucherPage, error) {
	if req == nil {
		req = &SearchVouchersRequest{}
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrValidation, err)
	}

	all, err := s.repos.Vouchers().List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list vouchers: %w", err)
	}

	query := strings.ToLower(strings.TrimSpace(req.Query))
	matched := make([]*models.Voucher, 0, len(all))
	for _, voucher := range all {
		if query != "" && !strings.Contains(strings.ToLower(voucher.Code), query) {
			continue
		}
		matched = append(matched, voucher)
	}

	number, size := pageBounds(req.Page, req.PageSize, models.VoucherPageSize)
	page, err := billing.Paginate(matched, size, number)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrValidation, err)
	}

	orders, err := s.repos.Orders().List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	tally := billing.VoucherUsage(orders)

	usage := make(map[string]models.VoucherUsage, len(page.Items))
	for _, voucher := range page.Items {
		usage[voucher.Code] = tally[billing.VoucherKey(voucher.Code)]
	}

	return &models.VoucherPage{
		Vouchers:   page.Items,
		Usage:      usage,
		Page:       page.Page,
		PageSize:   page.PageSize,
		TotalPages: page.TotalPages,
		TotalCount: page.TotalCount,
	}, nil
}

// GetVoucher retrieves a voucher by ID
func (s *voucherService) GetVoucher(ctx context.Context, id string) (*models.Voucher, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: voucher ID cannot be empty", ErrValidation)
	}

	voucher, err := s.repos.Vouchers().GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get voucher: %w", err)
	}
	return voucher, nil
}

// CreateVoucher creates an active voucher. The percent discount is stored as a fraction.
func (s *voucherService) CreateVoucher(ctx context.Context, req *CreateVoucherRequest) (*models.Voucher, error) {
	if req == nil {
		return nil, fmt.Errorf("%w: create voucher request cannot be nil", ErrValidation)
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrValidation, err)
	}

	voucher := models.NewVoucher(req.Code, req.DiscountPercent.Div(hundred), req.StartDate, req.EndDate)
	voucher.MinimumAmount = req.MinimumAmount
	if err := voucher.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrValidation, err)
	}

	if err := s.repos.Vouchers().Upsert(ctx, voucher); err != nil {
		return nil, fmt.Errorf("failed to create voucher: %w", err)
	}

	s.logger.WithFields(logrus.Fields{
		"voucher_id": voucher.ID,
		"code":       voucher.Code,
		"discount":   voucher.Discount.String(),
	}).Info("Voucher created")
	return voucher, nil
}

// SetVoucherActive enables or disables a voucher
func (s *voucherService) SetVoucherActive(ctx context.Context, id string, req *SetVoucherActiveRequest) (*models.Voucher, error) {
	if req == nil {
		return nil, fmt.Errorf("%w: set active request cannot be nil", ErrValidation)
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrValidation, err)
	}
	if id == "" {
		return nil, fmt.Errorf("%w: voucher ID cannot be empty", ErrValidation)
	}

	if err := s.repos.Vouchers().SetActive(ctx, id, *req.Active); err != nil {
		return nil, fmt.Errorf("failed to set voucher state: %w", err)
	}

	s.logger.WithFields(logrus.Fields{
		"voucher_id": id,
		"active":     *req.Active,
	}).Info("Voucher state changed")

	return s.GetVoucher(ctx, id)
}

// DeleteVoucher removes a voucher. Orders keep the code they were placed with.
func (s *voucherService) DeleteVoucher(ctx context.Context, id string) error {
	if id == "" {
		return fmt.Errorf("%w: voucher ID cannot be empty", ErrValidation)
	}

	if err := s.repos.Vouchers().Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete voucher: %w", err)
	}

	s.logger.WithField("voucher_id", id).Info("Voucher deleted")
	return nil
}

// QuoteVoucher applies a voucher code to a subtotal at the current time
func (s *voucherService) QuoteVoucher(ctx context.Context, req *QuoteVoucherRequest) (*models.VoucherQuote, error) {
	if req == nil {
		return nil, fmt.Errorf("%w: quote request cannot be nil", ErrValidation)
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrValidation, err)
	}
	if !models.IsVoucherCode(req.Code) {
		return nil, fmt.Errorf("%w: voucher code is required", ErrValidation)
	}

	voucher, err := s.repos.Vouchers().GetByCode(ctx, req.Code)
	if err != nil {
		return nil, fmt.Errorf("failed to get voucher: %w", err)
	}

	quote, err := billing.Quote(voucher, s.clock.Now(), req.Subtotal)
	if err != nil {
		return nil, err
	}
	return &quote, nil
}

// ImportVouchers validates and upserts vouchers in a single transaction
func (s *voucherService) ImportVouchers(ctx context.Context, vouchers []*models.Voucher) (int, error) {
	for _, voucher := range vouchers {
		if err := voucher.Validate(); err != nil {
			return 0, fmt.Errorf("%w: voucher %s: %v", ErrValidation, voucher.Code, err)
		}
	}

	err := s.repos.WithTransaction(ctx, func(ctx context.Context) error {
		for _, voucher := range vouchers {
			if err := s.repos.Vouchers().Upsert(ctx, voucher); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("failed to import vouchers: %w", err)
	}

	s.logger.WithField("count", len(vouchers)).Info("Vouchers imported")
	return len(vouchers), nil
}
