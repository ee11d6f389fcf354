package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Category groups products on the menu. Products refer to it by name.
type Category struct {
	ID        string    `json:"id" db:"id"`
	Name      string    `json:"name" db:"name" validate:"required,max=100"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// NewCategory creates a category with a generated ID
func NewCategory(name string) *Category {
	now := time.Now()
	return &Category{
		ID:        uuid.New().String(),
		Name:      strings.TrimSpace(name),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Validate validates the category data
func (c *Category) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return fmt.Errorf("category name is required")
	}
	if len(c.Name) > 100 {
		return fmt.Errorf("category name cannot exceed 100 characters")
	}
	return nil
}

// ProductStatus controls whether a product is offered
type ProductStatus string

const (
	ProductActive   ProductStatus = "active"
	ProductInactive ProductStatus = "inactive"
)

// IsValid reports whether s is a known product status
func (s ProductStatus) IsValid() bool {
	return s == ProductActive || s == ProductInactive
}

// SizePrices holds the price of each cup size. Zero means the size is not sold.
type SizePrices struct {
	S int64 `json:"S"`
	M int64 `json:"M"`
	L int64 `json:"L"`
}

// For returns the price of size, reporting false when the size is not sold
func (p SizePrices) For(size string) (int64, bool) {
	var price int64
	switch strings.ToUpper(strings.TrimSpace(size)) {
	case "S":
		price = p.S
	case "M", "":
		price = p.M
	case "L":
		price = p.L
	default:
		return 0, false
	}
	return price, price > 0
}

// Product is a menu item
type Product struct {
	ID                string        `json:"id" db:"id"`
	Name              string        `json:"name" db:"name" validate:"required,max=255"`
	Description       string        `json:"description,omitempty" db:"description"`
	Category          string        `json:"category" db:"category" validate:"required"`
	Prices            SizePrices    `json:"prices"`
	ImageLink         string        `json:"imagelink_square,omitempty" db:"image_link"`
	Ingredients       string        `json:"ingredients,omitempty" db:"ingredients"`
	SpecialIngredient string        `json:"special_ingredient,omitempty" db:"special_ingredient"`
	Type              string        `json:"type,omitempty" db:"type"`
	Index             int           `json:"index" db:"sort_index"`
	Status            ProductStatus `json:"status" db:"status"`
	CreatedAt         time.Time     `json:"created_at" db:"created_at"`
	UpdatedAt         time.Time     `json:"updated_at" db:"updated_at"`
}

// NewProduct creates an active product with a generated ID
func NewProduct(name, category string, prices SizePrices) *Product {
	now := time.Now()
	return &Product{
		ID:        uuid.New().String(),
		Name:      strings.TrimSpace(name),
		Category:  strings.TrimSpace(category),
		Prices:    prices,
		Status:    ProductActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Validate validates the product data
func (p *Product) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("product name is required")
	}

	if len(p.Name) > 255 {
		return fmt.Errorf("product name cannot exceed 255 characters")
	}

	if strings.TrimSpace(p.Category) == "" {
		return fmt.Errorf("product category is required")
	}

	if p.Prices.M <= 0 {
		return fmt.Errorf("size M price is required")
	}

	if p.Prices.S < 0 || p.Prices.L < 0 {
		return fmt.Errorf("prices cannot be negative")
	}

	if !p.Status.IsValid() {
		return fmt.Errorf("invalid product status: %s", p.Status)
	}

	return nil
}

// GetSearchableText returns the text matched by product search
func (p *Product) GetSearchableText() string {
	return p.Name + " " + p.Category
}

// ProductPage is one page of the product listing
type ProductPage struct {
	Products   []*Product `json:"products"`
	Page       int        `json:"page"`
	PageSize   int        `json:"page_size"`
	TotalPages int        `json:"total_pages"`
	TotalCount int        `json:"total_count"`
}

// CategoryPage is one page of the category listing
type CategoryPage struct {
	Categories []*Category `json:"categories"`
	Page       int         `json:"page"`
	PageSize   int         `json:"page_size"`
	TotalPages int         `json:"total_pages"`
	TotalCount int         `json:"total_count"`
}
