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

const staffColumns = `id, full_name, email, phone_number, start_activity_time, end_activity_time, state, role, created_at`

// StaffRepository implements repositories.StaffRepository for SQLite
type StaffRepository struct {
	*BaseRepository[models.Staff]
}

// NewStaffRepository creates a new SQLite staff repository
func NewStaffRepository(db *sql.DB, logger *logrus.Logger) *StaffRepository {
	return &StaffRepository{
		BaseRepository: NewBaseRepository[models.Staff](db, "staff", nil, logger),
	}
}

// List returns every staff member ordered by name
func (r *StaffRepository) List(ctx context.Context) ([]*models.Staff, error) {
	rows, err := r.executeQuery(ctx, r.conn(ctx), "list",
		`SELECT `+staffColumns+` FROM staff ORDER BY full_name COLLATE NOCASE, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	staff := []*models.Staff{}
	for rows.Next() {
		s, err := scanStaff(rows)
		if err != nil {
			return nil, repositories.NewRepositoryError("list", "staff", "", err)
		}
		staff = append(staff, s)
	}
	if err := rows.Err(); err != nil {
		return nil, repositories.NewRepositoryError("list", "staff", "", err)
	}

	return staff, nil
}

// GetByID retrieves a staff member by ID
func (r *StaffRepository) GetByID(ctx context.Context, id string) (*models.Staff, error) {
	if err := r.validateID(id); err != nil {
		return nil, err
	}

	row := r.executeQueryRow(ctx, r.conn(ctx), "get", `SELECT `+staffColumns+` FROM staff WHERE id = ?`, id)
	s, err := scanStaff(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repositories.NotFoundError("staff", id)
		}
		return nil, repositories.NewRepositoryError("get", "staff", id, err)
	}
	return s, nil
}

// Upsert inserts a staff member or updates every field but created_at
func (r *StaffRepository) Upsert(ctx context.Context, staff *models.Staff) error {
	if err := r.validateID(staff.ID); err != nil {
		return err
	}
	if err := staff.Validate(); err != nil {
		return repositories.ValidationError("staff", staff.ID, err)
	}
	if staff.CreatedAt.IsZero() {
		staff.CreatedAt = time.Now()
	}

	_, err := r.executeExec(ctx, r.conn(ctx), "upsert", `
		INSERT INTO staff (`+staffColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			full_name = excluded.full_name,
			email = excluded.email,
			phone_number = excluded.phone_number,
			start_activity_time = excluded.start_activity_time,
			end_activity_time = excluded.end_activity_time,
			state = excluded.state,
			role = excluded.role`,
		staff.ID, staff.FullName, staff.Email, staff.PhoneNumber,
		staff.StartActivityTime, staff.EndActivityTime, string(staff.State), staff.Role, staff.CreatedAt.UTC(),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return repositories.DuplicateError("staff", "email", staff.Email)
		}
		return err
	}
	return nil
}

// SetState switches a staff member between Active and Inactive
func (r *StaffRepository) SetState(ctx context.Context, id string, state models.StaffState) error {
	if err := r.validateID(id); err != nil {
		return err
	}
	if !state.IsValid() {
		return repositories.ValidationError("staff", id, errors.New("invalid state "+string(state)))
	}

	result, err := r.executeExec(ctx, r.conn(ctx), "set_state", `UPDATE staff SET state = ? WHERE id = ?`, string(state), id)
	if err != nil {
		return err
	}
	return r.checkRowsAffected(result, "set_state", id)
}

func scanStaff(s rowScanner) (*models.Staff, error) {
	var staff models.Staff
	var state string
	err := s.Scan(
		&staff.ID, &staff.FullName, &staff.Email, &staff.PhoneNumber,
		&staff.StartActivityTime, &staff.EndActivityTime, &state, &staff.Role, &staff.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	staff.State = models.StaffState(state)
	return &staff, nil
}
