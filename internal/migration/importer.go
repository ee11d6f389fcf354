package migration

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/tuanvy6922/caketeaadmin/internal/billing"
	"github.com/tuanvy6922/caketeaadmin/internal/models"
	"github.com/tuanvy6922/caketeaadmin/internal/services"
)

// Result summarizes an import run
type Result struct {
	OrdersImported     int
	StaffImported      int
	CategoriesImported int
	ProductsImported   int
	UsersImported      int
	VouchersImported   int
	OrdersSkipped      int
	StaffSkipped       int
	ProductsSkipped    int
	UsersSkipped       int
	VouchersSkipped    int
	Warnings           []string
}

// Importer loads a document store snapshot through the services
type Importer struct {
	orders    services.OrderService
	staff     services.StaffService
	catalog   services.CatalogService
	customers services.CustomerService
	vouchers  services.VoucherService
	loc       *time.Location
	logger    *logrus.Logger
}

// NewImporter creates an importer over the container's services. Activity
// times are converted to clock times in loc.
func NewImporter(svc *services.ServiceContainer, loc *time.Location, logger *logrus.Logger) *Importer {
	if loc == nil {
		loc = time.Local
	}
	if logger == nil {
		logger = logrus.New()
	}
	return &Importer{
		orders:    svc.OrderService,
		staff:     svc.StaffService,
		catalog:   svc.CatalogService,
		customers: svc.CustomerService,
		vouchers:  svc.VoucherService,
		loc:       loc,
		logger:    logger,
	}
}

// converted holds the records of a snapshot that passed conversion
type converted struct {
	staff      []*models.Staff
	orders     []*models.Order
	categories []*models.Category
	products   []*models.Product
	users      []*models.Customer
	vouchers   []*models.Voucher
}

func (i *Importer) convert(snap *Snapshot, result *Result) *converted {
	out := &converted{}
	warn := func(format string, args ...interface{}) {
		result.Warnings = append(result.Warnings, fmt.Sprintf(format, args...))
	}

	for n, doc := range snap.Staffs {
		member, err := ConvertStaff(doc, i.loc)
		if err != nil {
			result.StaffSkipped++
			warn("staff #%d (%s): %v", n, doc.Email, err)
			continue
		}
		out.staff = append(out.staff, member)
	}

	for n, doc := range snap.Bills {
		order, note, err := ConvertBill(doc)
		if err != nil {
			result.OrdersSkipped++
			warn("bill #%d (%s): %v", n, doc.ID, err)
			continue
		}
		if note != "" {
			warn("bill %s: %s", order.ID, note)
		}
		out.orders = append(out.orders, order)
	}

	for n, doc := range snap.Categories {
		category, err := ConvertCategory(doc)
		if err != nil {
			warn("category #%d (%s): %v", n, doc.ID, err)
			continue
		}
		out.categories = append(out.categories, category)
	}

	for n, doc := range snap.Products {
		product, err := ConvertProduct(doc)
		if err != nil {
			result.ProductsSkipped++
			warn("product #%d (%s): %v", n, doc.ID, err)
			continue
		}
		out.products = append(out.products, product)
	}

	for n, doc := range snap.Users {
		user, err := ConvertUser(doc)
		if err != nil {
			result.UsersSkipped++
			warn("user #%d (%s): %v", n, doc.Email, err)
			continue
		}
		out.users = append(out.users, user)
	}

	for n, doc := range snap.Vouchers {
		voucher, err := ConvertVoucher(doc)
		if err != nil {
			result.VouchersSkipped++
			warn("voucher #%d (%s): %v", n, doc.Code, err)
			continue
		}
		out.vouchers = append(out.vouchers, voucher)
	}

	return out
}

// Import converts and stores every record of the snapshot. With dryRun the
// records are converted and counted but nothing is written.
func (i *Importer) Import(ctx context.Context, snap *Snapshot, dryRun bool) (*Result, error) {
	result := &Result{}
	records := i.convert(snap, result)

	for _, w := range result.Warnings {
		i.logger.Warn(w)
	}

	if dryRun {
		result.StaffImported = len(records.staff)
		result.OrdersImported = len(records.orders)
		result.CategoriesImported = len(records.categories)
		result.ProductsImported = len(records.products)
		result.UsersImported = len(records.users)
		result.VouchersImported = len(records.vouchers)
		i.logger.WithFields(logrus.Fields{
			"orders":   result.OrdersImported,
			"staff":    result.StaffImported,
			"products": result.ProductsImported,
			"users":    result.UsersImported,
			"vouchers": result.VouchersImported,
		}).Info("Dry run complete, nothing written")
		return result, nil
	}

	if len(records.staff) > 0 {
		n, err := i.staff.ImportStaff(ctx, records.staff)
		if err != nil {
			return result, fmt.Errorf("failed to import staff: %w", err)
		}
		result.StaffImported = n
	}

	if len(records.orders) > 0 {
		n, err := i.orders.ImportOrders(ctx, records.orders)
		if err != nil {
			return result, fmt.Errorf("failed to import orders: %w", err)
		}
		result.OrdersImported = n
	}

	if len(records.categories) > 0 || len(records.products) > 0 {
		cats, prods, err := i.catalog.ImportCatalog(ctx, records.categories, records.products)
		if err != nil {
			return result, fmt.Errorf("failed to import catalog: %w", err)
		}
		result.CategoriesImported = cats
		result.ProductsImported = prods
	}

	if len(records.users) > 0 {
		n, err := i.customers.ImportCustomers(ctx, records.users)
		if err != nil {
			return result, fmt.Errorf("failed to import users: %w", err)
		}
		result.UsersImported = n
	}

	if len(records.vouchers) > 0 {
		n, err := i.vouchers.ImportVouchers(ctx, records.vouchers)
		if err != nil {
			return result, fmt.Errorf("failed to import vouchers: %w", err)
		}
		result.VouchersImported = n
	}

	i.logger.WithFields(logrus.Fields{
		"orders":           result.OrdersImported,
		"staff":            result.StaffImported,
		"categories":       result.CategoriesImported,
		"products":         result.ProductsImported,
		"users":            result.UsersImported,
		"vouchers":         result.VouchersImported,
		"orders_skipped":   result.OrdersSkipped,
		"staff_skipped":    result.StaffSkipped,
		"products_skipped": result.ProductsSkipped,
		"users_skipped":    result.UsersSkipped,
		"vouchers_skipped": result.VouchersSkipped,
	}).Info("Import complete")

	return result, nil
}

// ConvertBill maps a bill document to an order. A non-empty warning reports
// a repaired field.
func ConvertBill(doc BillDocument) (*models.Order, string, error) {
	var warnings []string

	id := strings.TrimSpace(doc.ID)
	if id == "" {
		id = uuid.NewString()
		warnings = append(warnings, "missing id, generated "+id)
	}

	status := models.OrderStatus(strings.ToLower(strings.TrimSpace(doc.Status)))
	if status == "" {
		status = models.OrderStatusPending
	}
	if !status.IsValid() {
		return nil, "", fmt.Errorf("unknown status %q", doc.Status)
	}

	delivery := models.DeliveryStatus(strings.ToLower(strings.TrimSpace(doc.DeliveryStatus)))
	if delivery == "" {
		delivery = models.DeliveryStatusPending
	}
	if !delivery.IsValid() {
		return nil, "", fmt.Errorf("unknown delivery status %q", doc.DeliveryStatus)
	}

	items := make([]models.LineItem, 0, len(doc.Items))
	for n, item := range doc.Items {
		if strings.TrimSpace(item.Name) == "" {
			return nil, "", fmt.Errorf("item %d has no name", n)
		}
		price, ok := billing.NormalizeAmount(item.Price)
		if !ok || price < 0 {
			return nil, "", fmt.Errorf("item %d has invalid price %q", n, item.Price.String())
		}
		quantity := item.Quantity
		if quantity < 1 {
			quantity = 1
			warnings = append(warnings, fmt.Sprintf("item %d quantity %d set to 1", n, item.Quantity))
		}
		items = append(items, models.LineItem{
			ProductName: item.Name,
			Size:        item.Size,
			UnitPrice:   price,
			Quantity:    quantity,
		})
	}

	order := &models.Order{
		ID:             id,
		CustomerName:   doc.FullName,
		CustomerID:     doc.User,
		Address:        doc.Address,
		PaymentMethod:  doc.PaymentMethod,
		Items:          items,
		Status:         status,
		DeliveryStatus: delivery,
		TotalAmount:    doc.TotalAmount,
		StaffID:        strings.ToLower(strings.TrimSpace(doc.StaffID)),
		StaffName:      doc.StaffName,
	}

	if doc.Date.Valid {
		date := doc.Date.Time
		order.Date = &date
	} else {
		warnings = append(warnings, "no order date")
	}

	if code := strings.TrimSpace(doc.VoucherCode); models.IsVoucherCode(code) {
		order.VoucherCode = &code
		if discount, ok := billing.NormalizeAmount(doc.VoucherDiscount); ok {
			order.VoucherDiscount = discount
		}
	}

	return order, strings.Join(warnings, "; "), nil
}

// ConvertStaff maps a staff document to a staff member
func ConvertStaff(doc StaffDocument, loc *time.Location) (*models.Staff, error) {
	email := strings.ToLower(strings.TrimSpace(doc.Email))
	if email == "" {
		return nil, fmt.Errorf("missing email")
	}

	start, err := clockValue(doc.StartActivityTime, loc)
	if err != nil {
		return nil, fmt.Errorf("start activity time: %w", err)
	}
	end, err := clockValue(doc.EndActivityTime, loc)
	if err != nil {
		return nil, fmt.Errorf("end activity time: %w", err)
	}

	state := models.StaffActive
	if strings.EqualFold(strings.TrimSpace(doc.State), string(models.StaffInactive)) {
		state = models.StaffInactive
	}

	member := &models.Staff{
		ID:                email,
		FullName:          strings.TrimSpace(doc.FullName),
		Email:             email,
		PhoneNumber:       strings.TrimSpace(doc.PhoneNumber),
		StartActivityTime: start,
		EndActivityTime:   end,
		State:             state,
		Role:              strings.ToLower(strings.TrimSpace(doc.Role)),
	}
	if member.Role == "" {
		member.Role = models.RoleStaff
	}

	if err := member.Validate(); err != nil {
		return nil, err
	}
	return member, nil
}
