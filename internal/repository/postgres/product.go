package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/avasquez/furniture-store-api/internal/model"
)

var _ model.ProductStore = (*ProductRepository)(nil)

type ProductRepository struct {
	db *Connection
}

func NewProductRepository(db *Connection) *ProductRepository {
	return &ProductRepository{db: db}
}

func (r *ProductRepository) Create(ctx context.Context, product model.Product) (model.Product, error) {
	const query = `
        INSERT INTO products (id, name, price, category_id, image_object, created_at)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING id, name, price, category_id, image_object, created_at
    `
	var saved model.Product
	err := r.db.QueryRow(ctx, query,
		product.ID, product.Name, product.Price, product.CategoryID,
		product.ImageObject, product.CreatedAt,
	).Scan(
		&saved.ID, &saved.Name, &saved.Price, &saved.CategoryID,
		&saved.ImageObject, &saved.CreatedAt,
	)
	if err != nil {
		return model.Product{}, fmt.Errorf("failed to create product: %w", err)
	}
	return saved, nil
}

func (r *ProductRepository) GetByID(ctx context.Context, id uuid.UUID) (model.Product, error) {
	const query = `
        SELECT id, name, price, category_id, image_object, created_at
        FROM products WHERE id = $1
    `
	var product model.Product
	err := r.db.QueryRow(ctx, query, id).Scan(
		&product.ID, &product.Name, &product.Price, &product.CategoryID,
		&product.ImageObject, &product.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Product{}, model.ErrNotFound
		}
		return model.Product{}, fmt.Errorf("failed to get product by id: %w", err)
	}
	return product, nil
}

func (r *ProductRepository) GetAll(ctx context.Context) ([]model.Product, error) {
	const query = `
        SELECT id, name, price, category_id, image_object, created_at
        FROM products ORDER BY created_at
    `
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	defer rows.Close()

	return scanProducts(rows)
}

func (r *ProductRepository) GetByCategory(ctx context.Context, categoryID uuid.UUID) ([]model.Product, error) {
	const query = `
        SELECT id, name, price, category_id, image_object, created_at
        FROM products WHERE category_id = $1 ORDER BY created_at
    `
	rows, err := r.db.Query(ctx, query, categoryID)
	if err != nil {
		return nil, fmt.Errorf("failed to list products by category: %w", err)
	}
	defer rows.Close()

	return scanProducts(rows)
}

func (r *ProductRepository) Update(ctx context.Context, product model.Product) error {
	const query = `
        UPDATE products SET name = $2, price = $3, category_id = $4 WHERE id = $1
    `
	tag, err := r.db.Exec(ctx, query, product.ID, product.Name, product.Price, product.CategoryID)
	if err != nil {
		return fmt.Errorf("failed to update product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrNotFound
	}
	return nil
}

func (r *ProductRepository) SetImageObject(ctx context.Context, id uuid.UUID, objectKey string) error {
	const query = `UPDATE products SET image_object = $2 WHERE id = $1`

	tag, err := r.db.Exec(ctx, query, id, objectKey)
	if err != nil {
		return fmt.Errorf("failed to set product image object: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrNotFound
	}
	return nil
}

func (r *ProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrNotFound
	}
	return nil
}

func scanProducts(rows pgx.Rows) ([]model.Product, error) {
	var products []model.Product
	for rows.Next() {
		var p model.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Price, &p.CategoryID, &p.ImageObject, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate products: %w", err)
	}
	return products, nil
}
