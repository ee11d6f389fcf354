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

const customerColumns = `id, full_name, email, phone_number, address, role, state, created_at, updated_at`

// CustomerRepository implements repositories.CustomerRepository for SQLite
type CustomerRepository struct {
	*BaseRepository[models.Customer]
}

// NewCustomerRepository creates a new SQLite user directory repository
func NewCustomerRepository(db *sql.DB, logger *logrus.Logger) *CustomerRepository {
	return &CustomerRepository{
		BaseRepository: NewBaseRepository[models.Customer](db, "customers", nil, logger),
	}
}

// List returns every user ordered by name
func (r *CustomerRepository) List(ctx context.Context) ([]*models.Customer, error) {
	rows, err := r.executeQuery(ctx, r.conn(ctx), "list",
		`SELECT `+customerColumns+` FROM customers ORDER BY full_name COLLATE NOCASE, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	customers := []*models.Customer{}
	for rows.Next() {
		customer, err := scanCustomer(rows)
		if err != nil {
			return nil, repositories.NewRepositoryError("list", "customer", "", err)
		}
		customers = append(customers, customer)
	}
	if err := rows.Err(); err != nil {
		return nil, repositories.NewRepositoryError("list", "customer", "", err)
	}

	return customers, nil
}

// GetByID retrieves a user by ID
func (r *CustomerRepository) GetByID(ctx context.Context, id string) (*models.Customer, error) {
	if err := r.validateID(id); err != nil {
		return nil, err
	}

	row := r.executeQueryRow(ctx, r.conn(ctx), "get", `SELECT `+customerColumns+` FROM customers WHERE id = ?`, id)
	customer, err := scanCustomer(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repositories.NotFoundError("customer", id)
		}
		return nil, repositories.NewRepositoryError("get", "customer", id, err)
	}
	return customer, nil
}

// Upsert inserts a user or updates every field but created_at
func (r *CustomerRepository) Upsert(ctx context.Context, customer *models.Customer) error {
	if err := r.validateID(customer.ID); err != nil {
		return err
	}
	if err := customer.Validate(); err != nil {
		return repositories.ValidationError("customer", customer.ID, err)
	}

	now := time.Now()
	if customer.CreatedAt.IsZero() {
		customer.CreatedAt = now
	}
	customer.UpdatedAt = now

	_, err := r.executeExec(ctx, r.conn(ctx), "upsert", `
		INSERT INTO customers (`+customerColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			full_name = excluded.full_name,
			email = excluded.email,
			phone_number = excluded.phone_number,
			address = excluded.address,
			role = excluded.role,
			state = excluded.state,
			updated_at = excluded.updated_at`,
		customer.ID, customer.FullName, customer.Email, customer.PhoneNumber, customer.Address,
		customer.Role, string(customer.State), customer.CreatedAt.UTC(), customer.UpdatedAt.UTC(),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return repositories.DuplicateError("customer", "email", customer.Email)
		}
		return err
	}
	return nil
}

// SetState switches a user between Available and Blocked
func (r *CustomerRepository) SetState(ctx context.Context, id string, state models.CustomerState) error {
	if err := r.validateID(id); err != nil {
		return err
	}
	if !state.IsValid() {
		return repositories.ValidationError("customer", id, errors.New("invalid state "+string(state)))
	}

	result, err := r.executeExec(ctx, r.conn(ctx), "set_state",
		`UPDATE customers SET state = ?, updated_at = ? WHERE id = ?`, string(state), time.Now().UTC(), id)
	if err != nil {
		return err
	}
	return r.checkRowsAffected(result, "set_state", id)
}

func scanCustomer(s rowScanner) (*models.Customer, error) {
	var customer models.Customer
	var state string
	err := s.Scan(
		&customer.ID, &customer.FullName, &customer.Email, &customer.PhoneNumber, &customer.Address,
		&customer.Role, &state, &customer.CreatedAt, &customer.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	customer.State = models.CustomerState(state)
	return &customer, nil
}
