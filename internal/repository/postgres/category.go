package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/avasquez/furniture-store-api/internal/model"
)

var _ model.ProductCategoryStore = (*CategoryRepository)(nil)

type CategoryRepository struct {
	db *Connection
}

func NewCategoryRepository(db *Connection) *CategoryRepository {
	return &CategoryRepository{db: db}
}

func (r *CategoryRepository) Create(ctx context.Context, category model.ProductCategory) (model.ProductCategory, error) {
	const query = `
        INSERT INTO product_categories (id, name) VALUES ($1, $2)
        RETURNING id, name
    `
	var saved model.ProductCategory
	err := r.db.QueryRow(ctx, query, category.ID, category.Name).Scan(&saved.ID, &saved.Name)
	if err != nil {
		return model.ProductCategory{}, fmt.Errorf("failed to create category: %w", err)
	}
	return saved, nil
}

func (r *CategoryRepository) GetByID(ctx context.Context, id uuid.UUID) (model.ProductCategory, error) {
	const query = `SELECT id, name FROM product_categories WHERE id = $1`

	var category model.ProductCategory
	err := r.db.QueryRow(ctx, query, id).Scan(&category.ID, &category.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.ProductCategory{}, model.ErrNotFound
		}
		return model.ProductCategory{}, fmt.Errorf("failed to get category by id: %w", err)
	}
	return category, nil
}

func (r *CategoryRepository) GetAll(ctx context.Context) ([]model.ProductCategory, error) {
	rows, err := r.db.Query(ctx, `SELECT id, name FROM product_categories ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	defer rows.Close()

	var categories []model.ProductCategory
	for rows.Next() {
		var c model.ProductCategory
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate categories: %w", err)
	}
	return categories, nil
}

func (r *CategoryRepository) Update(ctx context.Context, category model.ProductCategory) error {
	tag, err := r.db.Exec(ctx, `UPDATE product_categories SET name = $2 WHERE id = $1`,
		category.ID, category.Name)
	if err != nil {
		return fmt.Errorf("failed to update category: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrNotFound
	}
	return nil
}

func (r *CategoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM product_categories WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrNotFound
	}
	return nil
}
