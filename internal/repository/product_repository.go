package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/shop-service/internal/domain"
)

// ProductRepository defines persistence access for catalog products.
type ProductRepository interface {
	Create(ctx context.Context, product *domain.Product) error
	Update(ctx context.Context, product *domain.Product) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*domain.Product, error)
	List(ctx context.Context, offset, limit int) ([]domain.Product, error)
	ListByCategory(ctx context.Context, categoryID string, offset, limit int) ([]domain.Product, error)
	ListFeatured(ctx context.Context, limit int) ([]domain.Product, error)
	Count(ctx context.Context) (int64, error)
	CountByCategory(ctx context.Context, categoryID string) (int64, error)
}

type productRepository struct {
	pool *pgxpool.Pool
}

// NewProductRepository returns a Postgres-backed implementation.
func NewProductRepository(pool *pgxpool.Pool) ProductRepository {
	return &productRepository{pool: pool}
}

const productColumns = `id, name, description, rich_description, image, images, brand, price, category_id, count_in_stock, rating, num_reviews, is_featured, created_at`

func (r *productRepository) Create(ctx context.Context, product *domain.Product) error {
	const query = `
        INSERT INTO products (name, description, rich_description, image, images, brand, price, category_id, count_in_stock, rating, num_reviews, is_featured)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
        RETURNING id, created_at`

	return r.pool.QueryRow(ctx, query,
		product.Name,
		product.Description,
		product.RichDescription,
		product.Image,
		product.Images,
		product.Brand,
		product.Price,
		product.CategoryID,
		product.CountInStock,
		product.Rating,
		product.NumReviews,
		product.IsFeatured,
	).Scan(&product.ID, &product.CreatedAt)
}

func (r *productRepository) Update(ctx context.Context, product *domain.Product) error {
	const query = `
        UPDATE products SET name=$1, description=$2, rich_description=$3, image=$4, images=$5,
            brand=$6, price=$7, category_id=$8, count_in_stock=$9, rating=$10, num_reviews=$11, is_featured=$12
        WHERE id=$13`

	cmd, err := r.pool.Exec(ctx, query,
		product.Name,
		product.Description,
		product.RichDescription,
		product.Image,
		product.Images,
		product.Brand,
		product.Price,
		product.CategoryID,
		product.CountInStock,
		product.Rating,
		product.NumReviews,
		product.IsFeatured,
		product.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *productRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM products WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *productRepository) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	const query = `SELECT ` + productColumns + ` FROM products WHERE id=$1`

	row := r.pool.QueryRow(ctx, query, id)
	product, err := scanProduct(row)
	if err != nil {
		return nil, err
	}
	return product, nil
}

func (r *productRepository) List(ctx context.Context, offset, limit int) ([]domain.Product, error) {
	const query = `SELECT ` + productColumns + ` FROM products ORDER BY created_at DESC OFFSET $1 LIMIT $2`
	return r.queryProducts(ctx, query, offset, limit)
}

func (r *productRepository) ListByCategory(ctx context.Context, categoryID string, offset, limit int) ([]domain.Product, error) {
	const query = `SELECT ` + productColumns + ` FROM products WHERE category_id=$1 ORDER BY created_at DESC OFFSET $2 LIMIT $3`
	return r.queryProducts(ctx, query, categoryID, offset, limit)
}

func (r *productRepository) ListFeatured(ctx context.Context, limit int) ([]domain.Product, error) {
	const query = `SELECT ` + productColumns + ` FROM products WHERE is_featured ORDER BY created_at DESC LIMIT $1`
	return r.queryProducts(ctx, query, limit)
}

func (r *productRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM products`).Scan(&count)
	return count, err
}

func (r *productRepository) CountByCategory(ctx context.Context, categoryID string) (int64, error) {
	var count int64
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM products WHERE category_id=$1`, categoryID).Scan(&count)
	return count, err
}

func (r *productRepository) queryProducts(ctx context.Context, query string, args ...any) ([]domain.Product, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	products := make([]domain.Product, 0)
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, *product)
	}
	return products, rows.Err()
}

func scanProduct(row pgx.Row) (*domain.Product, error) {
	var product domain.Product
	if err := row.Scan(
		&product.ID,
		&product.Name,
		&product.Description,
		&product.RichDescription,
		&product.Image,
		&product.Images,
		&product.Brand,
		&product.Price,
		&product.CategoryID,
		&product.CountInStock,
		&product.Rating,
		&product.NumReviews,
		&product.IsFeatured,
		&product.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &product, nil
}
