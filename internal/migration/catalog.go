package migration

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tuanvy6922/caketeaadmin/internal/billing"
	"github.com/tuanvy6922/caketeaadmin/internal/models"
)

// CategoryDocument is one menu category
type CategoryDocument struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt Timestamp `json:"createdAt"`
}

// ProductDocument is one menu item. Prices are keyed by cup size.
type ProductDocument struct {
	ID                string                   `json:"id"`
	Name              string                   `json:"name"`
	Description       string                   `json:"description"`
	Category          string                   `json:"category"`
	Price             map[string]models.Amount `json:"price"`
	ImageLink         string                   `json:"imagelink_square"`
	Ingredients       string                   `json:"ingredients"`
	SpecialIngredient string                   `json:"special_ingredient"`
	Type              string                   `json:"type"`
	Index             int                      `json:"index"`
	Status            string                   `json:"status"`
	CreatedAt         Timestamp                `json:"createdAt"`
}

// UserDocument is one account of the ordering app
type UserDocument struct {
	ID          string `json:"id"`
	FullName    string `json:"fullName"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phoneNumber"`
	Address     string `json:"address"`
	Role        string `json:"role"`
	State       string `json:"state"`
}

// VoucherDocument is one discount code. Discount is a fraction, dates are
// epoch milliseconds.
type VoucherDocument struct {
	ID            string          `json:"id"`
	Code          string          `json:"code"`
	Discount      decimal.Decimal `json:"discount"`
	StartDate     Timestamp       `json:"startDate"`
	EndDate       Timestamp       `json:"endDate"`
	MinimumAmount models.Amount   `json:"minimumAmount"`
	IsActive      *bool           `json:"isActive"`
}

func documentID(id string) string {
	if id = strings.TrimSpace(id); id != "" {
		return id
	}
	return uuid.NewString()
}

// ConvertCategory maps a category document to a category
func ConvertCategory(doc CategoryDocument) (*models.Category, error) {
	category := models.NewCategory(doc.Name)
	category.ID = documentID(doc.ID)
	if doc.CreatedAt.Valid {
		category.CreatedAt = doc.CreatedAt.Time
	}
	if err := category.Validate(); err != nil {
		return nil, err
	}
	return category, nil
}

// ConvertProduct maps a product document to a product. A missing status
// means active.
func ConvertProduct(doc ProductDocument) (*models.Product, error) {
	var prices models.SizePrices
	for size, raw := range doc.Price {
		if raw == (models.Amount{}) {
			continue
		}
		price, ok := billing.NormalizeAmount(raw)
		if !ok {
			return nil, fmt.Errorf("size %s has invalid price %q", size, raw.String())
		}
		switch strings.ToUpper(strings.TrimSpace(size)) {
		case "S":
			prices.S = price
		case "M":
			prices.M = price
		case "L":
			prices.L = price
		default:
			return nil, fmt.Errorf("unknown size %q", size)
		}
	}

	product := models.NewProduct(doc.Name, doc.Category, prices)
	product.ID = documentID(doc.ID)
	product.Description = strings.TrimSpace(doc.Description)
	product.ImageLink = strings.TrimSpace(doc.ImageLink)
	product.Ingredients = strings.TrimSpace(doc.Ingredients)
	product.SpecialIngredient = strings.TrimSpace(doc.SpecialIngredient)
	product.Type = strings.TrimSpace(doc.Type)
	product.Index = doc.Index
	if status := strings.ToLower(strings.TrimSpace(doc.Status)); status != "" {
		product.Status = models.ProductStatus(status)
	}
	if doc.CreatedAt.Valid {
		product.CreatedAt = doc.CreatedAt.Time
	}

	if err := product.Validate(); err != nil {
		return nil, err
	}
	return product, nil
}

// ConvertUser maps an app account to a directory entry. Roles are
// lowercased and any state other than Blocked counts as Available.
func ConvertUser(doc UserDocument) (*models.Customer, error) {
	state := models.CustomerAvailable
	if strings.EqualFold(strings.TrimSpace(doc.State), string(models.CustomerBlocked)) {
		state = models.CustomerBlocked
	}

	role := strings.ToLower(strings.TrimSpace(doc.Role))
	if role == "" {
		role = models.CustomerRoleUser
	}

	customer := &models.Customer{
		ID:          documentID(doc.ID),
		FullName:    strings.TrimSpace(doc.FullName),
		Email:       strings.ToLower(strings.TrimSpace(doc.Email)),
		PhoneNumber: strings.TrimSpace(doc.PhoneNumber),
		Address:     strings.TrimSpace(doc.Address),
		Role:        role,
		State:       state,
	}
	if err := customer.Validate(); err != nil {
		return nil, err
	}
	return customer, nil
}

// ConvertVoucher maps a voucher document to a voucher. A missing isActive
// flag means active.
func ConvertVoucher(doc VoucherDocument) (*models.Voucher, error) {
	if !doc.StartDate.Valid || !doc.EndDate.Valid {
		return nil, fmt.Errorf("start and end dates are required")
	}

	voucher := models.NewVoucher(doc.Code, doc.Discount, doc.StartDate.Time, doc.EndDate.Time)
	voucher.ID = documentID(doc.ID)
	if doc.IsActive != nil {
		voucher.IsActive = *doc.IsActive
	}
	if doc.MinimumAmount != (models.Amount{}) {
		minimum, ok := billing.NormalizeAmount(doc.MinimumAmount)
		if !ok {
			return nil, fmt.Errorf("invalid minimum amount %q", doc.MinimumAmount.String())
		}
		voucher.MinimumAmount = minimum
	}

	if err := voucher.Validate(); err != nil {
		return nil, err
	}
	return voucher, nil
}
