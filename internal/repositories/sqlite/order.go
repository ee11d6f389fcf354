package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/tuanvy6922/caketeaadmin/internal/models"
	"github.com/tuanvy6922/caketeaadmin/internal/repositories"
)

const orderColumns = `id, customer_name, customer_id, address, payment_method, order_date,
	status, delivery_status, total_amount, total_amount_text, voucher_code, voucher_discount,
	staff_id, staff_name, updated_by, updated_at`

const (
	insertOrderSQL = `INSERT INTO orders (` + orderColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	replaceOrderSQL = `INSERT OR REPLACE INTO orders (` + orderColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	insertItemSQL = `INSERT INTO order_items (order_id, position, product_name, size, unit_price, quantity)
		VALUES (?, ?, ?, ?, ?, ?)`
)

// OrderRepository implements repositories.OrderRepository for SQLite
type OrderRepository struct {
	*BaseRepository[models.Order]
}

// NewOrderRepository creates a new SQLite order repository
func NewOrderRepository(db *sql.DB, feed *repositories.ChangeFeed, logger *logrus.Logger) *OrderRepository {
	return &OrderRepository{
		BaseRepository: NewBaseRepository[models.Order](db, "orders", feed, logger),
	}
}

// Create inserts an order and its line items
func (r *OrderRepository) Create(ctx context.Context, order *models.Order) error {
	if err := r.validateID(order.ID); err != nil {
		return err
	}
	if err := order.Validate(); err != nil {
		return repositories.ValidationError("order", order.ID, err)
	}

	err := r.inTx(ctx, "create", func(q querier) error {
		if _, err := r.executeExec(ctx, q, "create", insertOrderSQL, orderArgs(order)...); err != nil {
			if isUniqueViolation(err) {
				return repositories.DuplicateError("order", "id", order.ID)
			}
			return err
		}
		return r.insertItems(ctx, q, order)
	})
	if err != nil {
		return err
	}

	r.notify(ctx, models.OrderChange{Kind: models.OrderCreated, OrderID: order.ID, Actor: order.UpdatedBy})
	return nil
}

// Upsert inserts or replaces orders by ID in one transaction
func (r *OrderRepository) Upsert(ctx context.Context, orders []*models.Order) (int, error) {
	if len(orders) == 0 {
		return 0, nil
	}

	for _, order := range orders {
		if err := r.validateID(order.ID); err != nil {
			return 0, err
		}
		if err := order.Validate(); err != nil {
			return 0, repositories.ValidationError("order", order.ID, err)
		}
	}

	err := r.inTx(ctx, "upsert", func(q querier) error {
		for _, order := range orders {
			if _, err := r.executeExec(ctx, q, "upsert", `DELETE FROM order_items WHERE order_id = ?`, order.ID); err != nil {
				return err
			}
			if _, err := r.executeExec(ctx, q, "upsert", replaceOrderSQL, orderArgs(order)...); err != nil {
				return err
			}
			if err := r.insertItems(ctx, q, order); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	r.notify(ctx, models.OrderChange{Kind: models.OrdersImported})
	return len(orders), nil
}

func (r *OrderRepository) insertItems(ctx context.Context, q querier, order *models.Order) error {
	for i, item := range order.Items {
		_, err := r.executeExec(ctx, q, "create_item", insertItemSQL,
			order.ID, i, item.ProductName, item.Size, item.UnitPrice, item.Quantity)
		if err != nil {
			return err
		}
	}
	return nil
}

// GetByID retrieves an order with its line items
func (r *OrderRepository) GetByID(ctx context.Context, id string) (*models.Order, error) {
	if err := r.validateID(id); err != nil {
		return nil, err
	}

	q := r.conn(ctx)
	row := r.executeQueryRow(ctx, q, "get", `SELECT `+orderColumns+` FROM orders WHERE id = ?`, id)
	order, err := scanOrder(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repositories.NotFoundError("order", id)
		}
		return nil, repositories.NewRepositoryError("get", "order", id, err)
	}

	rows, err := r.executeQuery(ctx, q, "get_items",
		`SELECT order_id, product_name, size, unit_price, quantity FROM order_items WHERE order_id = ? ORDER BY position`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if err := attachItems(rows, map[string]*models.Order{order.ID: order}); err != nil {
		return nil, repositories.NewRepositoryError("get_items", "order", id, err)
	}
	return order, nil
}

// List returns every order, newest first with undated orders last
func (r *OrderRepository) List(ctx context.Context) ([]*models.Order, error) {
	q := r.conn(ctx)
	rows, err := r.executeQuery(ctx, q, "list",
		`SELECT `+orderColumns+` FROM orders ORDER BY order_date IS NULL, order_date DESC, id`)
	if err != nil {
		return nil, err
	}

	var orders []*models.Order
	byID := make(map[string]*models.Order)
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			rows.Close()
			return nil, repositories.NewRepositoryError("list", "order", "", err)
		}
		orders = append(orders, order)
		byID[order.ID] = order
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, repositories.NewRepositoryError("list", "order", "", err)
	}
	rows.Close()

	itemRows, err := r.executeQuery(ctx, q, "list_items",
		`SELECT order_id, product_name, size, unit_price, quantity FROM order_items ORDER BY order_id, position`)
	if err != nil {
		return nil, err
	}
	defer itemRows.Close()

	if err := attachItems(itemRows, byID); err != nil {
		return nil, repositories.NewRepositoryError("list_items", "order", "", err)
	}

	if orders == nil {
		orders = []*models.Order{}
	}
	return orders, nil
}

// UpdateStatus sets the status of a non-final order
func (r *OrderRepository) UpdateStatus(ctx context.Context, id string, status models.OrderStatus, actor string) error {
	if err := r.validateID(id); err != nil {
		return err
	}

	return r.conditionalUpdate(ctx, "update_status", id,
		`UPDATE orders SET status = ?, updated_by = ?, updated_at = ?
		 WHERE id = ? AND status NOT IN ('completed', 'cancelled')`,
		models.OrderChange{Kind: models.OrderStatusChanged, OrderID: id, Actor: actor},
		status, actor, time.Now().UTC(), id)
}

// UpdateDeliveryStatus sets the delivery status of an order that is not cancelled
func (r *OrderRepository) UpdateDeliveryStatus(ctx context.Context, id string, status models.DeliveryStatus, actor string) error {
	if err := r.validateID(id); err != nil {
		return err
	}

	return r.conditionalUpdate(ctx, "update_delivery", id,
		`UPDATE orders SET delivery_status = ?, updated_by = ?, updated_at = ?
		 WHERE id = ? AND status <> 'cancelled'`,
		models.OrderChange{Kind: models.OrderDeliveryChanged, OrderID: id, Actor: actor},
		status, actor, time.Now().UTC(), id)
}

// AssignStaff sets the assignee of a non-final order
func (r *OrderRepository) AssignStaff(ctx context.Context, id, staffID, staffName, actor string) error {
	if err := r.validateID(id); err != nil {
		return err
	}

	return r.conditionalUpdate(ctx, "assign_staff", id,
		`UPDATE orders SET staff_id = ?, staff_name = ?, updated_by = ?, updated_at = ?
		 WHERE id = ? AND status NOT IN ('completed', 'cancelled')`,
		models.OrderChange{Kind: models.OrderAssigned, OrderID: id, Actor: actor},
		staffID, staffName, actor, time.Now().UTC(), id)
}

// conditionalUpdate runs an UPDATE guarded by a status condition. When no
// row changes it tells a missing order apart from one in a locked state.
func (r *OrderRepository) conditionalUpdate(ctx context.Context, op, id, query string, change models.OrderChange, args ...interface{}) error {
	q := r.conn(ctx)
	result, err := r.executeExec(ctx, q, op, query, args...)
	if err != nil {
		return err
	}

	n, err := r.rowsAffected(result, op, id)
	if err != nil {
		return err
	}

	if n == 0 {
		var status string
		row := r.executeQueryRow(ctx, q, op, `SELECT status FROM orders WHERE id = ?`, id)
		if err := row.Scan(&status); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return repositories.NotFoundError("order", id)
			}
			return repositories.NewRepositoryError(op, "order", id, err)
		}
		return repositories.ConflictError(op, "order", id, status)
	}

	r.notify(ctx, change)
	return nil
}

// Count returns the number of stored orders
func (r *OrderRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	row := r.executeQueryRow(ctx, r.conn(ctx), "count", `SELECT COUNT(*) FROM orders`)
	if err := row.Scan(&count); err != nil {
		return 0, repositories.NewRepositoryError("count", "order", "", err)
	}
	return count, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func orderArgs(o *models.Order) []interface{} {
	var amount sql.NullInt64
	var amountText sql.NullString
	if o.TotalAmount.IsText() {
		amountText = sql.NullString{String: o.TotalAmount.Text, Valid: true}
	} else {
		amount = sql.NullInt64{Int64: o.TotalAmount.Value, Valid: true}
	}

	var voucher sql.NullString
	if o.VoucherCode != nil {
		voucher = sql.NullString{String: *o.VoucherCode, Valid: true}
	}

	deliveryStatus := o.DeliveryStatus
	if deliveryStatus == "" {
		deliveryStatus = models.DeliveryStatusPending
	}

	return []interface{}{
		o.ID, o.CustomerName, o.CustomerID, o.Address, o.PaymentMethod, nullTime(o.Date),
		string(o.Status), string(deliveryStatus), amount, amountText, voucher, o.VoucherDiscount,
		o.StaffID, o.StaffName, o.UpdatedBy, nullTime(o.UpdatedAt),
	}
}

func scanOrder(s rowScanner) (*models.Order, error) {
	var (
		o                   models.Order
		status, delivery    string
		date, updatedAt     sql.NullTime
		amount              sql.NullInt64
		amountText, voucher sql.NullString
	)

	err := s.Scan(
		&o.ID, &o.CustomerName, &o.CustomerID, &o.Address, &o.PaymentMethod, &date,
		&status, &delivery, &amount, &amountText, &voucher, &o.VoucherDiscount,
		&o.StaffID, &o.StaffName, &o.UpdatedBy, &updatedAt,
	)
	if err != nil {
		return nil, err
	}

	o.Status = models.OrderStatus(status)
	o.DeliveryStatus = models.DeliveryStatus(delivery)
	o.Date = timePtr(date)
	o.UpdatedAt = timePtr(updatedAt)
	if amountText.Valid {
		o.TotalAmount = models.AmountText(amountText.String)
	} else {
		o.TotalAmount = models.AmountOf(amount.Int64)
	}
	if voucher.Valid {
		code := voucher.String
		o.VoucherCode = &code
	}
	o.Items = []models.LineItem{}

	return &o, nil
}

func attachItems(rows *sql.Rows, byID map[string]*models.Order) error {
	for rows.Next() {
		var orderID string
		var item models.LineItem
		if err := rows.Scan(&orderID, &item.ProductName, &item.Size, &item.UnitPrice, &item.Quantity); err != nil {
			return err
		}
		if order, ok := byID[orderID]; ok {
			order.Items = append(order.Items, item)
		}
	}
	return rows.Err()
}
