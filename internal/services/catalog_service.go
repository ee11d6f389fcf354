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

// catalogService implements the CatalogService interface
type catalogService struct {
	repos     repositories.RepositoryManager
	validator *validator.Validate
	logger    *logrus.Logger
}

// NewCatalogService creates a new catalog service instance
func NewCatalogService(repos repositories.RepositoryManager, config *ServiceConfig) CatalogService {
	config = config.withDefaults()
	return &catalogService{
		repos:     repos,
		validator: validator.New(),
		logger:    config.Logger,
	}
}

// pageBounds fills in the page number and size a request left at zero
func pageBounds(page, size, fallback int) (int, int) {
	if size == 0 {
		size = fallback
	}
	if page == 0 {
		page = 1
	}
	return page, size
}

// ListCategories returns a page of categories, newest first
func (s *catalogService) ListCategories(ctx context.Context, req *ListCategoriesRequest) (*models.CategoryPage, error) {
	if req == nil {
		req = &ListCategoriesRequest{}
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrValidation, err)
	}

	all, err := s.repos.Categories().List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}

	number, size := pageBounds(req.Page, req.PageSize, models.CategoryPageSize)
	page, err := billing.Paginate(all, size, number)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrValidation, err)
	}

	return &models.CategoryPage{
		Categories: page.Items,
		Page:       page.Page,
		PageSize:   page.PageSize,
		TotalPages: page.TotalPages,
		TotalCount: page.TotalCount,
	}, nil
}

// GetCategory retrieves a category by ID
func (s *catalogService) GetCategory(ctx context.Context, id string) (*models.Category, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: category ID cannot be empty", ErrValidation)
	}

	category, err := s.repos.Categories().GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get category: %w", err)
	}
	return category, nil
}

// CreateCategory creates a category with a unique name
func (s *catalogService) CreateCategory(ctx context.Context, req *SaveCategoryRequest) (*models.Category, error) {
	if err := s.validateCategory(req); err != nil {
		return nil, err
	}

	category := models.NewCategory(req.Name)
	if err := s.repos.Categories().Create(ctx, category); err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}

	s.logger.WithFields(logrus.Fields{
		"category_id": category.ID,
		"name":        category.Name,
	}).Info("Category created")
	return category, nil
}

// RenameCategory renames a category and the products filed under it
func (s *catalogService) RenameCategory(ctx context.Context, id string, req *SaveCategoryRequest) (*models.Category, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: category ID cannot be empty", ErrValidation)
	}
	if err := s.validateCategory(req); err != nil {
		return nil, err
	}

	if err := s.repos.Categories().Rename(ctx, id, req.Name); err != nil {
		return nil, fmt.Errorf("failed to rename category: %w", err)
	}

	s.logger.WithFields(logrus.Fields{
		"category_id": id,
		"name":        strings.TrimSpace(req.Name),
	}).Info("Category renamed")
	return s.GetCategory(ctx, id)
}

// DeleteCategory removes a category no product is filed under
func (s *catalogService) DeleteCategory(ctx context.Context, id string) error {
	if id == "" {
		return fmt.Errorf("%w: category ID cannot be empty", ErrValidation)
	}

	if err := s.repos.Categories().Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}

	s.logger.WithField("category_id", id).Info("Category deleted")
	return nil
}

func (s *catalogService) validateCategory(req *SaveCategoryRequest) error {
	if req == nil {
		return fmt.Errorf("%w: category request cannot be nil", ErrValidation)
	}
	req.Name = strings.TrimSpace(req.Name)
	if err := s.validator.Struct(req); err != nil {
		return fmt.Errorf("%w: %w", ErrValidation, err)
	}
	return nil
}

// SearchProducts matches the query against product name and category
func (s *catalogService) SearchProducts(ctx context.Context, req *SearchProductsRequest) (*models.ProductPage, error) {
	if req == nil {
		req = &SearchProductsRequest{}
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrValidation, err)
	}

	all, err := s.repos.Products().List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}

	query := strings.ToLower(strings.TrimSpace(req.Query))
	category := strings.TrimSpace(req.Category)
	matched := make([]*models.Product, 0, len(all))
	for _, product := range all {
		if req.Status != "" && product.Status != req.Status {
			continue
		}
		if category != "" && !strings.EqualFold(product.Category, category) {
			continue
		}
		if query != "" && !strings.Contains(strings.ToLower(product.GetSearchableText()), query) {
			continue
		}
		matched = append(matched, product)
	}

	number, size := pageBounds(req.Page, req.PageSize, models.ProductPageSize)
	page, err := billing.Paginate(matched, size, number)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrValidation, err)
	}

	return &models.ProductPage{
		Products:   page.Items,
		Page:       page.Page,
		PageSize:   page.PageSize,
		TotalPages: page.TotalPages,
		TotalCount: page.TotalCount,
	}, nil
}

// GetProduct retrieves a product by ID
func (s *catalogService) GetProduct(ctx context.Context, id string) (*models.Product, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: product ID cannot be empty", ErrValidation)
	}

	product, err := s.repos.Products().GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	return product, nil
}

// CreateProduct creates an active product in an existing category
func (s *catalogService) CreateProduct(ctx context.Context, req *CreateProductRequest) (*models.Product, error) {
	if req == nil {
		return nil, fmt.Errorf("%w: create product request cannot be nil", ErrValidation)
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrValidation, err)
	}

	category, err := s.resolveCategory(ctx, req.Category)
	if err != nil {
		return nil, err
	}

	product := models.NewProduct(req.Name, category, req.Prices)
	product.Description = strings.TrimSpace(req.Description)
	product.ImageLink = strings.TrimSpace(req.ImageLink)
	product.Ingredients = strings.TrimSpace(req.Ingredients)
	product.SpecialIngredient = strings.TrimSpace(req.SpecialIngredient)
	product.Type = strings.TrimSpace(req.Type)

	if err := product.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrValidation, err)
	}

	if err := s.repos.Products().Create(ctx, product); err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	s.logger.WithFields(logrus.Fields{
		"product_id": product.ID,
		"name":       product.Name,
		"category":   product.Category,
	}).Info("Product created")
	return product, nil
}

// UpdateProduct applies the fields set in req
func (s *catalogService) UpdateProduct(ctx context.Context, id string, req *UpdateProductRequest) (*models.Product, error) {
	if req == nil {
		return nil, fmt.Errorf("%w: update product request cannot be nil", ErrValidation)
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrValidation, err)
	}

	product, err := s.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		product.Name = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		product.Description = strings.TrimSpace(*req.Description)
	}
	if req.Category != nil {
		category, err := s.resolveCategory(ctx, *req.Category)
		if err != nil {
			return nil, err
		}
		product.Category = category
	}
	if req.Prices != nil {
		product.Prices = *req.Prices
	}
	if req.ImageLink != nil {
		product.ImageLink = strings.TrimSpace(*req.ImageLink)
	}
	if req.Ingredients != nil {
		product.Ingredients = strings.TrimSpace(*req.Ingredients)
	}
	if req.SpecialIngredient != nil {
		product.SpecialIngredient = strings.TrimSpace(*req.SpecialIngredient)
	}
	if req.Type != nil {
		product.Type = strings.TrimSpace(*req.Type)
	}
	if req.Status != nil {
		product.Status = *req.Status
	}

	if err := product.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrValidation, err)
	}

	if err := s.repos.Products().Update(ctx, product); err != nil {
		return nil, fmt.Errorf("failed to update product: %w", err)
	}

	s.logger.WithField("product_id", product.ID).Info("Product updated")
	return product, nil
}

// DeleteProduct removes a product
func (s *catalogService) DeleteProduct(ctx context.Context, id string) error {
	if id == "" {
		return fmt.Errorf("%w: product ID cannot be empty", ErrValidation)
	}

	if err := s.repos.Products().Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}

	s.logger.WithField("product_id", id).Info("Product deleted")
	return nil
}

// resolveCategory returns the stored spelling of an existing category name
func (s *catalogService) resolveCategory(ctx context.Context, name string) (string, error) {
	category, err := s.repos.Categories().GetByName(ctx, name)
	if err != nil {
		if repositories.IsNotFound(err) || repositories.IsValidation(err) {
			return "", fmt.Errorf("%w: unknown category %q", ErrValidation, strings.TrimSpace(name))
		}
		return "", fmt.Errorf("failed to get category: %w", err)
	}
	return category.Name, nil
}

// ImportCatalog creates missing categories, then creates or updates each
// product by ID, all in one transaction
func (s *catalogService) ImportCatalog(ctx context.Context, categories []*models.Category, products []*models.Product) (int, int, error) {
	for _, category := range categories {
		if err := category.Validate(); err != nil {
			return 0, 0, fmt.Errorf("%w: category %s: %v", ErrValidation, category.ID, err)
		}
	}
	for _, product := range products {
		if err := product.Validate(); err != nil {
			return 0, 0, fmt.Errorf("%w: product %s: %v", ErrValidation, product.ID, err)
		}
	}

	var createdCategories int
	err := s.repos.WithTransaction(ctx, func(ctx context.Context) error {
		known := make(map[string]bool)
		existing, err := s.repos.Categories().List(ctx)
		if err != nil {
			return err
		}
		for _, c := range existing {
			known[strings.ToLower(c.Name)] = true
		}

		// products may name categories the export did not list
		wanted := append([]*models.Category{}, categories...)
		for _, p := range products {
			wanted = append(wanted, &models.Category{Name: p.Category})
		}
		for _, c := range wanted {
			key := strings.ToLower(strings.TrimSpace(c.Name))
			if known[key] {
				continue
			}
			fresh := models.NewCategory(c.Name)
			if c.ID != "" {
				fresh.ID = c.ID
			}
			if !c.CreatedAt.IsZero() {
				fresh.CreatedAt = c.CreatedAt
			}
			if err := s.repos.Categories().Create(ctx, fresh); err != nil {
				return err
			}
			known[key] = true
			createdCategories++
		}

		for _, p := range products {
			_, err := s.repos.Products().GetByID(ctx, p.ID)
			switch {
			case err == nil:
				err = s.repos.Products().Update(ctx, p)
			case repositories.IsNotFound(err):
				err = s.repos.Products().Create(ctx, p)
			}
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return 0, 0, fmt.Errorf("failed to import catalog: %w", err)
	}

	s.logger.WithFields(logrus.Fields{
		"categories": createdCategories,
		"products":   len(products),
	}).Info("Catalog imported")
	return createdCategories, len(products), nil
}
