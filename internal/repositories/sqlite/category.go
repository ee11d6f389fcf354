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

const categoryColumns = `id, name, created_at, updated_at`

// CategoryRepository implements repositories.CategoryRepository for SQLite
type CategoryRepository struct {
	*BaseRepository[models.Category]
}

// NewCategoryRepository creates a new SQLite category repository
func NewCategoryRepository(db *sql.DB, logger *logrus.Logger) *CategoryRepository {
	return &CategoryRepository{
		BaseRepository: NewBaseRepository[models.Category](db, "categories", nil, logger),
	}
}

// List returns every category, newest first
func (r *CategoryRepository) List(ctx context.Context) ([]*models.Category, error) {
	rows, err := r.executeQuery(ctx, r.conn(ctx), "list",
		`SELECT `+categoryColumns+` FROM categories ORDER BY created_at DESC, name COLLATE NOCASE`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	categories := []*models.Category{}
	for rows.Next() {
		category, err := scanCategory(rows)
		if err != nil {
			return nil, repositories.NewRepositoryError("list", "category", "", err)
		}
		categories = append(categories, category)
	}
	if err := rows.Err(); err != nil {
		return nil, repositories.NewRepositoryError("list", "category", "", err)
	}

	return categories, nil
}

// GetByID retrieves a category by ID
func (r *CategoryRepository) GetByID(ctx context.Context, id string) (*models.Category, error) {
	if err := r.validateID(id); err != nil {
		return nil, err
	}

	row := r.executeQueryRow(ctx, r.conn(ctx), "get", `SELECT `+categoryColumns+` FROM categories WHERE id = ?`, id)
	category, err := scanCategory(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repositories.NotFoundError("category", id)
		}
		return nil, repositories.NewRepositoryError("get", "category", id, err)
	}
	return category, nil
}

// GetByName retrieves a category by name, ignoring ASCII case
func (r *CategoryRepository) GetByName(ctx context.Context, name string) (*models.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, repositories.ValidationError("category", "", errors.New("name is required"))
	}

	row := r.executeQueryRow(ctx, r.conn(ctx), "get_by_name", `SELECT `+categoryColumns+` FROM categories WHERE name = ?`, name)
	category, err := scanCategory(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repositories.NotFoundError("category", name)
		}
		return nil, repositories.NewRepositoryError("get_by_name", "category", name, err)
	}
	return category, nil
}

// Create inserts a category
func (r *CategoryRepository) Create(ctx context.Context, category *models.Category) error {
	if err := r.validateID(category.ID); err != nil {
		return err
	}
	category.Name = strings.TrimSpace(category.Name)
	if err := category.Validate(); err != nil {
		return repositories.ValidationError("category", category.ID, err)
	}

	now := time.Now()
	if category.CreatedAt.IsZero() {
		category.CreatedAt = now
	}
	if category.UpdatedAt.IsZero() {
		category.UpdatedAt = category.CreatedAt
	}

	_, err := r.executeExec(ctx, r.conn(ctx), "create",
		`INSERT INTO categories (`+categoryColumns+`) VALUES (?, ?, ?, ?)`,
		category.ID, category.Name, category.CreatedAt.UTC(), category.UpdatedAt.UTC(),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return repositories.DuplicateError("category", "name", category.Name)
		}
		return err
	}
	return nil
}

// Rename changes a category name. Products filed under the old name move with it.
func (r *CategoryRepository) Rename(ctx context.Context, id, name string) error {
	if err := r.validateID(id); err != nil {
		return err
	}
	renamed := models.Category{Name: strings.TrimSpace(name)}
	if err := renamed.Validate(); err != nil {
		return repositories.ValidationError("category", id, err)
	}

	return r.inTx(ctx, "rename", func(q querier) error {
		var oldName string
		row := r.executeQueryRow(ctx, q, "rename", `SELECT name FROM categories WHERE id = ?`, id)
		if err := row.Scan(&oldName); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return repositories.NotFoundError("category", id)
			}
			return repositories.NewRepositoryError("rename", "category", id, err)
		}

		_, err := r.executeExec(ctx, q, "rename",
			`UPDATE categories SET name = ?, updated_at = ? WHERE id = ?`,
			renamed.Name, time.Now().UTC(), id,
		)
		if err != nil {
			if isUniqueViolation(err) {
				return repositories.DuplicateError("category", "name", renamed.Name)
			}
			return err
		}

		_, err = r.executeExec(ctx, q, "rename",
			`UPDATE products SET category = ?, updated_at = ? WHERE category = ?`,
			renamed.Name, time.Now().UTC(), oldName,
		)
		return err
	})
}

// Delete removes a category. A category that products are filed under is a conflict.
func (r *CategoryRepository) Delete(ctx context.Context, id string) error {
	if err := r.validateID(id); err != nil {
		return err
	}

	return r.inTx(ctx, "delete", func(q querier) error {
		var inUse int64
		row := r.executeQueryRow(ctx, q, "delete", `
			SELECT COUNT(*) FROM products
			WHERE category = (SELECT name FROM categories WHERE id = ?)`, id)
		if err := row.Scan(&inUse); err != nil {
			return repositories.NewRepositoryError("delete", "category", id, err)
		}
		if inUse > 0 {
			return repositories.ConflictError("delete", "category", id, "products are filed under it")
		}

		result, err := r.executeExec(ctx, q, "delete", `DELETE FROM categories WHERE id = ?`, id)
		if err != nil {
			return err
		}
		return r.checkRowsAffected(result, "delete", id)
	})
}

func scanCategory(s rowScanner) (*models.Category, error) {
	var category models.Category
	if err := s.Scan(&category.ID, &category.Name, &category.CreatedAt, &category.UpdatedAt); err != nil {
		return nil, err
	}
	return &category, nil
}
