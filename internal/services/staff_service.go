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

// staffService implements the StaffService interface
type staffService struct {
	repos     repositories.RepositoryManager
	validator *validator.Validate
	logger    *logrus.Logger
	pageSize  int
}

// NewStaffService creates a new staff service instance
func NewStaffService(repos repositories.RepositoryManager, config *ServiceConfig) StaffService {
	config = config.withDefaults()
	return &staffService{
		repos:     repos,
		validator: validator.New(),
		logger:    config.Logger,
		pageSize:  config.PageSize,
	}
}

// SearchStaff matches the query against name, email and phone number
func (s *staffService) SearchStaff(ctx context.Context, req *SearchStaffRequest) (*models.StaffPage, error) {
	if req == nil {
		req = &SearchStaffRequest{}
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrValidation, err)
	}

	all, err := s.repos.Staff().List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list staff: %w", err)
	}

	query := strings.ToLower(strings.TrimSpace(req.Query))
	matched := make([]*models.Staff, 0, len(all))
	for _, member := range all {
		if req.State != "" && member.State != req.State {
			continue
		}
		if query != "" && !staffMatches(member, query) {
			continue
		}
		matched = append(matched, member)
	}

	size := req.PageSize
	if size == 0 {
		size = s.pageSize
	}
	number := req.Page
	if number == 0 {
		number = 1
	}

	page, err := billing.Paginate(matched, size, number)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrValidation, err)
	}

	return &models.StaffPage{
		Staff:      page.Items,
		Page:       page.Page,
		PageSize:   page.PageSize,
		TotalPages: page.TotalPages,
		TotalCount: page.TotalCount,
	}, nil
}

func staffMatches(member *models.Staff, query string) bool {
	return strings.Contains(strings.ToLower(member.FullName), query) ||
		strings.Contains(strings.ToLower(member.Email), query) ||
		strings.Contains(member.PhoneNumber, query)
}

// GetStaff retrieves a staff member by ID
func (s *staffService) GetStaff(ctx context.Context, id string) (*models.Staff, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: staff ID cannot be empty", ErrValidation)
	}

	staff, err := s.repos.Staff().GetByID(ctx, normalizeStaffID(id))
	if err != nil {
		return nil, fmt.Errorf("failed to get staff: %w", err)
	}
	return staff, nil
}

// SaveStaff creates the staff member keyed by id or updates the existing one
func (s *staffService) SaveStaff(ctx context.Context, id string, req *SaveStaffRequest) (*models.Staff, error) {
	if req == nil {
		return nil, fmt.Errorf("%w: save staff request cannot be nil", ErrValidation)
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrValidation, err)
	}

	id = normalizeStaffID(id)
	staff, err := s.repos.Staff().GetByID(ctx, id)
	switch {
	case repositories.IsNotFound(err):
		staff = models.NewStaff(req.FullName, id)
	case err != nil:
		return nil, fmt.Errorf("failed to get staff: %w", err)
	}

	staff.FullName = req.FullName
	staff.PhoneNumber = req.PhoneNumber
	staff.StartActivityTime = req.StartActivityTime
	staff.EndActivityTime = req.EndActivityTime
	if req.Role != "" {
		staff.Role = req.Role
	}

	if err := staff.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrValidation, err)
	}

	if err := s.repos.Staff().Upsert(ctx, staff); err != nil {
		return nil, fmt.Errorf("failed to save staff: %w", err)
	}

	s.logger.WithField("staff_id", staff.ID).Info("Staff saved")
	return staff, nil
}

// SetStaffState activates or deactivates a staff member
func (s *staffService) SetStaffState(ctx context.Context, id string, req *SetStaffStateRequest) (*models.Staff, error) {
	if req == nil {
		return nil, fmt.Errorf("%w: set state request cannot be nil", ErrValidation)
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrValidation, err)
	}

	id = normalizeStaffID(id)
	if err := s.repos.Staff().SetState(ctx, id, req.State); err != nil {
		return nil, fmt.Errorf("failed to set staff state: %w", err)
	}

	s.logger.WithFields(logrus.Fields{
		"staff_id": id,
		"state":    req.State,
	}).Info("Staff state changed")

	return s.GetStaff(ctx, id)
}

// ImportStaff validates and upserts staff members in a single transaction
func (s *staffService) ImportStaff(ctx context.Context, staff []*models.Staff) (int, error) {
	for _, member := range staff {
		if member.ID == "" {
			member.ID = normalizeStaffID(member.Email)
		}
		if member.State == "" {
			member.State = models.StaffActive
		}
		if member.Role == "" {
			member.Role = models.RoleStaff
		}
		if err := member.Validate(); err != nil {
			return 0, fmt.Errorf("%w: staff %s: %v", ErrValidation, member.ID, err)
		}
	}

	err := s.repos.WithTransaction(ctx, func(ctx context.Context) error {
		for _, member := range staff {
			if err := s.repos.Staff().Upsert(ctx, member); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("failed to import staff: %w", err)
	}

	s.logger.WithField("count", len(staff)).Info("Staff imported")
	return len(staff), nil
}

func normalizeStaffID(id string) string {
	return strings.ToLower(strings.TrimSpace(id))
}
