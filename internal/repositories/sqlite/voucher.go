package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/tuanvy6922/caketeaadmin/internal/models"
	"github.com/tuanvy6922/caketeaadmin/internal/repositories"
)

const voucherColumns = `id, code, discount, start_date, end_date, minimum_amount, is_active, created_at`

// VoucherRepository implements repositories.VoucherRepository for SQLite
type VoucherRepository struct {
	*BaseRepository[models.Voucher]
}

// NewVoucherRepository creates a new SQLite voucher repository
func NewVoucherRepository(db *sql.DB, logger *logrus.Logger) *VoucherRepository {
	return &VoucherRepository{
		BaseRepository: NewBaseRepository[models.Voucher](db, "vouchers", nil, logger),
	}
}

// List returns every voucher, latest end date first
func (r *VoucherRepository) List(ctx context.Context) ([]*models.Voucher, error) {
	rows, err := r.executeQuery(ctx, r.conn(ctx), "list",
		`SELECT `+voucherColumns+` FROM vouchers ORDER BY end_date DESC, code COLLATE NOCASE`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	vouchers := []*models.Voucher{}
	for rows.Next() {
		voucher, err := scanVoucher(rows)
		if err != nil {
			return nil, repositories.NewRepositoryError("list", "voucher", "", err)
		}
		vouchers = append(vouchers, voucher)
	}
	if err := rows.Err(); err != nil {
		return nil, repositories.NewRepositoryError("list", "voucher", "", err)
	}

	return vouchers, nil
}

// GetByID retrieves a voucher by ID
func (r *VoucherRepository) GetByID(ctx context.Context, id string) (*models.Voucher, error) {
	if err := r.validateID(id); err != nil {
		return nil, err
	}
	return r.getOne(ctx, "get", `SELECT `+voucherColumns+` FROM vouchers WHERE id = ?`, id)
}

// GetByCode retrieves a voucher by code, ignoring ASCII case
func (r *VoucherRepository) GetByCode(ctx context.Context, code string) (*models.Voucher, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, repositories.ValidationError("voucher", "", errors.New("code is required"))
	}
	return r.getOne(ctx, "get_by_code", `SELECT `+voucherColumns+` FROM vouchers WHERE code = ?`, code)
}

func (r *VoucherRepository) getOne(ctx context.Context, op, query, key string) (*models.Voucher, error) {
	voucher, err := scanVoucher(r.executeQueryRow(ctx, r.conn(ctx), op, query, key))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repositories.NotFoundError("voucher", key)
		}
		return nil, repositories.NewRepositoryError(op, "voucher", key, err)
	}
	return voucher, nil
}

// Upsert inserts a voucher or replaces the one with the same ID. Codes are
// unique ignoring ASCII case.
func (r *VoucherRepository) Upsert(ctx context.Context, voucher *models.Voucher) error {
	if err := r.validateID(voucher.ID); err != nil {
		return err
	}
	voucher.Code = strings.TrimSpace(voucher.Code)
	if err := voucher.Validate(); err != nil {
		return repositories.ValidationError("voucher", voucher.ID, err)
	}
	if voucher.CreatedAt.IsZero() {
		voucher.CreatedAt = time.Now()
	}

	_, err := r.executeExec(ctx, r.conn(ctx), "upsert", `
		INSERT INTO vouchers (`+voucherColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			code = excluded.code,
			discount = excluded.discount,
			start_date = excluded.start_date,
			end_date = excluded.end_date,
			minimum_amount = excluded.minimum_amount,
			is_active = excluded.is_active`,
		voucher.ID, voucher.Code, voucher.Discount.String(), voucher.StartDate.UTC(), voucher.EndDate.UTC(),
		voucher.MinimumAmount, voucher.IsActive, voucher.CreatedAt.UTC(),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return repositories.DuplicateError("voucher", "code", voucher.Code)
		}
		return err
	}
	return nil
}

// SetActive enables or disables a voucher
func (r *VoucherRepository) SetActive(ctx context.Context, id string, active bool) error {
	if err := r.validateID(id); err != nil {
		return err
	}

	result, err := r.executeExec(ctx, r.conn(ctx), "set_active", `UPDATE vouchers SET is_active = ? WHERE id = ?`, active, id)
	if err != nil {
		return err
	}
	return r.checkRowsAffected(result, "set_active", id)
}

// Delete removes a voucher
func (r *VoucherRepository) Delete(ctx context.Context, id string) error {
	if err := r.validateID(id); err != nil {
		return err
	}

	result, err := r.executeExec(ctx, r.conn(ctx), "delete", `DELETE FROM vouchers WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return r.checkRowsAffected(result, "delete", id)
}

func scanVoucher(s rowScanner) (*models.Voucher, error) {
	var voucher models.Voucher
	err := s.Scan(
		&voucher.ID, &voucher.Code, &voucher.Discount, &voucher.StartDate, &voucher.EndDate,
		&voucher.MinimumAmount, &voucher.IsActive, &voucher.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &voucher, nil
}
