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

const productColumns = `id, name, description, category, price_s, price_m, price_l, image_link,
	ingredients, special_ingredient, type, sort_index, status, created_at, updated_at`

// ProductRepository implements repositories.ProductRepository for SQLite
type ProductRepository struct {
	*BaseRepository[models.Product]
}

// NewProductRepository creates a new SQLite product repository
func NewProductRepository(db *sql.DB, logger *logrus.Logger) *ProductRepository {
	return &ProductRepository{
		BaseRepository: NewBaseRepository[models.Product](db, "products", nil, logger),
	}
}

// List returns every product, newest first
func (r *ProductRepository) List(ctx context.Context) ([]*models.Product, error) {
	rows, err := r.executeQuery(ctx, r.conn(ctx), "list",
		`SELECT `+productColumns+` FROM products ORDER BY created_at DESC, sort_index DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	products := []*models.Product{}
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, repositories.NewRepositoryError("list", "product", "", err)
		}
		products = append(products, product)
	}
	if err := rows.Err(); err != nil {
		return nil, repositories.NewRepositoryError("list", "product", "", err)
	}

	return products, nil
}

// GetByID retrieves a product by ID
func (r *ProductRepository) GetByID(ctx context.Context, id string) (*models.Product, error) {
	if err := r.validateID(id); err != nil {
		return nil, err
	}

	row := r.executeQueryRow(ctx, r.conn(ctx), "get", `SELECT `+productColumns+` FROM products WHERE id = ?`, id)
	product, err := scanProduct(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repositories.NotFoundError("product", id)
		}
		return nil, repositories.NewRepositoryError("get", "product", id, err)
	}
	return product, nil
}

// Create inserts a product and assigns it the next menu index
func (r *ProductRepository) Create(ctx context.Context, product *models.Product) error {
	if err := r.validateID(product.ID); err != nil {
		return err
	}
	if err := product.Validate(); err != nil {
		return repositories.ValidationError("product", product.ID, err)
	}

	now := time.Now()
	if product.CreatedAt.IsZero() {
		product.CreatedAt = now
	}
	if product.UpdatedAt.IsZero() {
		product.UpdatedAt = product.CreatedAt
	}

	return r.inTx(ctx, "create", func(q querier) error {
		var last int
		row := r.executeQueryRow(ctx, q, "create", `SELECT COALESCE(MAX(sort_index), 0) FROM products`)
		if err := row.Scan(&last); err != nil {
			return repositories.NewRepositoryError("create", "product", product.ID, err)
		}
		product.Index = last + 1

		_, err := r.executeExec(ctx, q, "create", `
			INSERT INTO products (`+productColumns+`)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			product.ID, product.Name, product.Description, product.Category,
			product.Prices.S, product.Prices.M, product.Prices.L, product.ImageLink,
			product.Ingredients, product.SpecialIngredient, product.Type, product.Index,
			string(product.Status), product.CreatedAt.UTC(), product.UpdatedAt.UTC(),
		)
		if err != nil {
			if isUniqueViolation(err) {
				return repositories.DuplicateError("product", "id", product.ID)
			}
			return err
		}
		return nil
	})
}

// Update replaces every field but created_at and the menu index
func (r *ProductRepository) Update(ctx context.Context, product *models.Product) error {
	if err := r.validateID(product.ID); err != nil {
		return err
	}
	if err := product.Validate(); err != nil {
		return repositories.ValidationError("product", product.ID, err)
	}
	product.UpdatedAt = time.Now()

	result, err := r.executeExec(ctx, r.conn(ctx), "update", `
		UPDATE products SET
			name = ?, description = ?, category = ?, price_s = ?, price_m = ?, price_l = ?,
			image_link = ?, ingredients = ?, special_ingredient = ?, type = ?, status = ?, updated_at = ?
		WHERE id = ?`,
		product.Name, product.Description, product.Category,
		product.Prices.S, product.Prices.M, product.Prices.L,
		product.ImageLink, product.Ingredients, product.SpecialIngredient, product.Type,
		string(product.Status), product.UpdatedAt.UTC(), product.ID,
	)
	if err != nil {
		return err
	}
	return r.checkRowsAffected(result, "update", product.ID)
}

// Delete removes a product
func (r *ProductRepository) Delete(ctx context.Context, id string) error {
	if err := r.validateID(id); err != nil {
		return err
	}

	result, err := r.executeExec(ctx, r.conn(ctx), "delete", `DELETE FROM products WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return r.checkRowsAffected(result, "delete", id)
}

// CountByCategory returns how many products are filed under a category, ignoring ASCII case
func (r *ProductRepository) CountByCategory(ctx context.Context, category string) (int64, error) {
	var count int64
	row := r.executeQueryRow(ctx, r.conn(ctx), "count", `SELECT COUNT(*) FROM products WHERE category = ?`,
		strings.TrimSpace(category))
	if err := row.Scan(&count); err != nil {
		return 0, repositories.NewRepositoryError("count", "product", "", err)
	}
	return count, nil
}

func scanProduct(s rowScanner) (*models.Product, error) {
	var product models.Product
	var status string
	err := s.Scan(
		&product.ID, &product.Name, &product.Description, &product.Category,
		&product.Prices.S, &product.Prices.M, &product.Prices.L, &product.ImageLink,
		&product.Ingredients, &product.SpecialIngredient, &product.Type, &product.Index,
		&status, &product.CreatedAt, &product.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	product.Status = models.ProductStatus(status)
	return &product, nil
}
