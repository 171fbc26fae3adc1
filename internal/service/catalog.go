package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"

	"github.com/avasquez/furniture-store-api/internal/logger"
	"github.com/avasquez/furniture-store-api/internal/model"
)

// Catalog provides product and category operations. Plain persistence:
// the only rule enforced is referential existence of the category.
type Catalog struct {
	products   model.ProductStore
	categories model.ProductCategoryStore
	images     model.Storage
	logger     *logger.Logger
}

func NewCatalog(
	products model.ProductStore,
	categories model.ProductCategoryStore,
	images model.Storage,
	logger *logger.Logger,
) *Catalog {
	return &Catalog{
		products:   products,
		categories: categories,
		images:     images,
		logger:     logger,
	}
}

func (c *Catalog) CreateProduct(ctx context.Context, product model.Product) (model.Product, error) {
	if _, err := c.categories.GetByID(ctx, product.CategoryID); err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.Product{}, model.ErrNotFound
		}
		return model.Product{}, fmt.Errorf("failed to check category: %w", err)
	}

	product.ID = uuid.New()
	product.CreatedAt = time.Now()

	created, err := c.products.Create(ctx, product)
	if err != nil {
		return model.Product{}, fmt.Errorf("failed to create product: %w", err)
	}
	return created, nil
}

func (c *Catalog) GetProduct(ctx context.Context, id uuid.UUID) (model.Product, error) {
	return c.products.GetByID(ctx, id)
}

func (c *Catalog) ListProducts(ctx context.Context) ([]model.Product, error) {
	return c.products.GetAll(ctx)
}

func (c *Catalog) ListProductsByCategory(ctx context.Context, categoryID uuid.UUID) ([]model.Product, error) {
	return c.products.GetByCategory(ctx, categoryID)
}

func (c *Catalog) UpdateProduct(ctx context.Context, product model.Product) error {
	if _, err := c.products.GetByID(ctx, product.ID); err != nil {
		return err
	}
	return c.products.Update(ctx, product)
}

func (c *Catalog) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	product, err := c.products.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if product.ImageObject != nil {
		if err := c.images.Delete(ctx, *product.ImageObject); err != nil {
			c.logger.Error("Catalog service: failed to delete product image",
				"product_id", id,
				"error", err.Error())
		}
	}
	return c.products.Delete(ctx, id)
}

// UploadProductImage stores the image in object storage and records the
// object key on the product.
func (c *Catalog) UploadProductImage(ctx context.Context, id uuid.UUID, reader io.Reader) error {
	if _, err := c.products.GetByID(ctx, id); err != nil {
		return err
	}

	key := fmt.Sprintf("products/%s", id)
	if err := c.images.Upload(ctx, key, reader); err != nil {
		return fmt.Errorf("failed to upload product image: %w", err)
	}

	if err := c.products.SetImageObject(ctx, id, key); err != nil {
		return fmt.Errorf("failed to record product image: %w", err)
	}

	c.logger.Info("Catalog service: product image uploaded",
		"product_id", id,
		"object_key", key)

	return nil
}

// DownloadProductImage streams the product's stored image.
func (c *Catalog) DownloadProductImage(ctx context.Context, id uuid.UUID) (io.ReadCloser, error) {
	product, err := c.products.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product.ImageObject == nil {
		return nil, model.ErrNotFound
	}
	return c.images.Download(ctx, *product.ImageObject)
}

func (c *Catalog) CreateCategory(ctx context.Context, category model.ProductCategory) (model.ProductCategory, error) {
	category.ID = uuid.New()
	created, err := c.categories.Create(ctx, category)
	if err != nil {
		return model.ProductCategory{}, fmt.Errorf("failed to create category: %w", err)
	}
	return created, nil
}

func (c *Catalog) GetCategory(ctx context.Context, id uuid.UUID) (model.ProductCategory, error) {
	return c.categories.GetByID(ctx, id)
}

func (c *Catalog) ListCategories(ctx context.Context) ([]model.ProductCategory, error) {
	return c.categories.GetAll(ctx)
}

func (c *Catalog) UpdateCategory(ctx context.Context, category model.ProductCategory) error {
	if _, err := c.categories.GetByID(ctx, category.ID); err != nil {
		return err
	}
	return c.categories.Update(ctx, category)
}

func (c *Catalog) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	if _, err := c.categories.GetByID(ctx, id); err != nil {
		return err
	}
	return c.categories.Delete(ctx, id)
}
