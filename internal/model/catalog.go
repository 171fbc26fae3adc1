package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// ProductCategoryStore defines persistence operations for product categories.
type ProductCategoryStore interface {
	Create(ctx context.Context, category ProductCategory) (ProductCategory, error)
	GetByID(ctx context.Context, id uuid.UUID) (ProductCategory, error)
	GetAll(ctx context.Context) ([]ProductCategory, error)
	Update(ctx context.Context, category ProductCategory) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// ProductStore defines persistence operations for products.
type ProductStore interface {
	Create(ctx context.Context, product Product) (Product, error)
	GetByID(ctx context.Context, id uuid.UUID) (Product, error)
	GetAll(ctx context.Context) ([]Product, error)
	GetByCategory(ctx context.Context, categoryID uuid.UUID) ([]Product, error)
	Update(ctx context.Context, product Product) error
	SetImageObject(ctx context.Context, id uuid.UUID, objectKey string) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// ProductCategory groups products in the catalog.
type ProductCategory struct {
	ID   uuid.UUID
	Name string
}

// Product is a catalog item.
type Product struct {
	ID          uuid.UUID
	Name        string
	Price       float64
	CategoryID  uuid.UUID
	ImageObject *string
	CreatedAt   time.Time
}
