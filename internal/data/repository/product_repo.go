package repository

import (
	"context"
	"fmt"

	"github.com/C4ndyFl4mes/dt207g-project/internal/data/entity"
	"github.com/C4ndyFl4mes/dt207g-project/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Product, error)
	FindByCategoryAndName(ctx context.Context, categoryID uuid.UUID, name string) (*entity.Product, error)
	FindAll(ctx context.Context, limit, offset int) ([]*entity.Product, error)
	FindByCategoryID(ctx context.Context, categoryID uuid.UUID, limit, offset int) ([]*entity.Product, error)
	FindIDsByCategoryID(ctx context.Context, categoryID uuid.UUID) ([]uuid.UUID, error)
	CountAll(ctx context.Context) (int64, error)
	CountByCategoryID(ctx context.Context, categoryID uuid.UUID) (int64, error)
	Update(ctx context.Context, product *entity.Product) error
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteByCategoryID(ctx context.Context, categoryID uuid.UUID) (int64, error)
}

type productRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewProductRepository(db database.PgxIface, log *zap.Logger) ProductRepository {
	return &productRepository{
		db:  db,
		log: log.With(zap.String("repository", "product")),
	}
}

const productColumns = `id, name, slug, price, description, on_sale, sale,
	       category_id, created_by, updated_by, created_at, updated_at`

func scanProduct(row pgx.Row) (*entity.Product, error) {
	var product entity.Product
	err := row.Scan(
		&product.ID,
		&product.Name,
		&product.Slug,
		&product.Price,
		&product.Description,
		&product.OnSale,
		&product.Sale,
		&product.CategoryID,
		&product.CreatedBy,
		&product.UpdatedBy,
		&product.CreatedAt,
		&product.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (pr *productRepository) Create(ctx context.Context, product *entity.Product) error {
	query := `
		INSERT INTO products (id, name, slug, price, description, on_sale, sale,
		                      category_id, created_by, updated_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`

	_, err := pr.db.Exec(ctx, query,
		product.ID,
		product.Name,
		product.Slug,
		product.Price,
		product.Description,
		product.OnSale,
		product.Sale,
		product.CategoryID,
		product.CreatedBy,
		product.UpdatedBy,
		product.CreatedAt,
		product.UpdatedAt,
	)

	if err != nil {
		pr.log.Error("Failed to create product",
			zap.Error(err),
			zap.String("name", product.Name),
			zap.String("category_id", product.CategoryID.String()),
		)
		return fmt.Errorf("create product %s: %w", product.Name, err)
	}

	return nil
}

func (pr *productRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`

	product, err := scanProduct(pr.db.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		pr.log.Error("Failed to find product by ID",
			zap.Error(err),
			zap.String("product_id", id.String()),
		)
		return nil, fmt.Errorf("find product by ID %s: %w", id.String(), err)
	}

	return product, nil
}

// FindByCategoryAndName matches either the display name or the slug
// within a category.
func (pr *productRepository) FindByCategoryAndName(ctx context.Context, categoryID uuid.UUID, name string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + `
		FROM products
		WHERE category_id = $1 AND (name = $2 OR slug = $2)
		LIMIT 1`

	product, err := scanProduct(pr.db.QueryRow(ctx, query, categoryID, name))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		pr.log.Error("Failed to find product by category and name",
			zap.Error(err),
			zap.String("category_id", categoryID.String()),
			zap.String("name", name),
		)
		return nil, fmt.Errorf("find product by category %s and name %s: %w",
			categoryID.String(), name, err)
	}

	return product, nil
}

func (pr *productRepository) FindAll(ctx context.Context, limit, offset int) ([]*entity.Product, error) {
	query := `SELECT ` + productColumns + `
		FROM products
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2`

	rows, err := pr.db.Query(ctx, query, limit, offset)
	if err != nil {
		pr.log.Error("Failed to get all products",
			zap.Error(err),
			zap.Int("limit", limit),
			zap.Int("offset", offset),
		)
		return nil, fmt.Errorf("find all products limit %d offset %d: %w", limit, offset, err)
	}
	defer rows.Close()

	return pr.collect(rows)
}

func (pr *productRepository) FindByCategoryID(ctx context.Context, categoryID uuid.UUID, limit, offset int) ([]*entity.Product, error) {
	query := `SELECT ` + productColumns + `
		FROM products
		WHERE category_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`

	rows, err := pr.db.Query(ctx, query, categoryID, limit, offset)
	if err != nil {
		pr.log.Error("Failed to find products by category",
			zap.Error(err),
			zap.String("category_id", categoryID.String()),
		)
		return nil, fmt.Errorf("find products by category %s: %w", categoryID.String(), err)
	}
	defer rows.Close()

	return pr.collect(rows)
}

// FindIDsByCategoryID lists product ids for cascade deletion.
func (pr *productRepository) FindIDsByCategoryID(ctx context.Context, categoryID uuid.UUID) ([]uuid.UUID, error) {
	query := `SELECT id FROM products WHERE category_id = $1`

	rows, err := pr.db.Query(ctx, query, categoryID)
	if err != nil {
		pr.log.Error("Failed to find product IDs by category",
			zap.Error(err),
			zap.String("category_id", categoryID.String()),
		)
		return nil, fmt.Errorf("find product IDs by category %s: %w", categoryID.String(), err)
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			pr.log.Error("Failed to scan product ID", zap.Error(err))
			return nil, fmt.Errorf("scan product ID: %w", err)
		}
		ids = append(ids, id)
	}

	if err := rows.Err(); err != nil {
		pr.log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("iterate product ID rows: %w", err)
	}

	return ids, nil
}

func (pr *productRepository) CountAll(ctx context.Context) (int64, error) {
	query := `SELECT COUNT(*) FROM products`

	var count int64
	err := pr.db.QueryRow(ctx, query).Scan(&count)
	if err != nil {
		pr.log.Error("Failed to count products", zap.Error(err))
		return 0, fmt.Errorf("count all products: %w", err)
	}

	return count, nil
}

func (pr *productRepository) CountByCategoryID(ctx context.Context, categoryID uuid.UUID) (int64, error) {
	query := `SELECT COUNT(*) FROM products WHERE category_id = $1`

	var count int64
	err := pr.db.QueryRow(ctx, query, categoryID).Scan(&count)
	if err != nil {
		pr.log.Error("Failed to count products by category",
			zap.Error(err),
			zap.String("category_id", categoryID.String()),
		)
		return 0, fmt.Errorf("count products by category %s: %w", categoryID.String(), err)
	}

	return count, nil
}

func (pr *productRepository) Update(ctx context.Context, product *entity.Product) error {
	query := `
		UPDATE products
		SET name = $2, slug = $3, price = $4, description = $5, on_sale = $6,
		    sale = $7, category_id = $8, updated_by = $9, updated_at = $10
		WHERE id = $1
	`

	result, err := pr.db.Exec(ctx, query,
		product.ID,
		product.Name,
		product.Slug,
		product.Price,
		product.Description,
		product.OnSale,
		product.Sale,
		product.CategoryID,
		product.UpdatedBy,
		product.UpdatedAt,
	)

	if err != nil {
		pr.log.Error("Failed to update product",
			zap.Error(err),
			zap.String("product_id", product.ID.String()),
		)
		return fmt.Errorf("update product %s: %w", product.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("product %s not found", product.ID.String())
	}

	return nil
}

func (pr *productRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM products WHERE id = $1`

	result, err := pr.db.Exec(ctx, query, id)
	if err != nil {
		pr.log.Error("Failed to delete product",
			zap.Error(err),
			zap.String("product_id", id.String()),
		)
		return fmt.Errorf("delete product %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("product %s not found", id.String())
	}

	pr.log.Info("Product deleted", zap.String("product_id", id.String()))
	return nil
}

// DeleteByCategoryID removes every product in a category and returns
// how many went.
func (pr *productRepository) DeleteByCategoryID(ctx context.Context, categoryID uuid.UUID) (int64, error) {
	query := `DELETE FROM products WHERE category_id = $1`

	result, err := pr.db.Exec(ctx, query, categoryID)
	if err != nil {
		pr.log.Error("Failed to delete products by category",
			zap.Error(err),
			zap.String("category_id", categoryID.String()),
		)
		return 0, fmt.Errorf("delete products by category %s: %w", categoryID.String(), err)
	}

	return result.RowsAffected(), nil
}

func (pr *productRepository) collect(rows pgx.Rows) ([]*entity.Product, error) {
	var products []*entity.Product
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			pr.log.Error("Failed to scan product row", zap.Error(err))
			return nil, fmt.Errorf("scan product row: %w", err)
		}
		products = append(products, product)
	}

	if err := rows.Err(); err != nil {
		pr.log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("iterate products rows: %w", err)
	}

	return products, nil
}
