package service

import (
	"context"
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/avasquez/furniture-store-api/internal/logger"
	servermocks "github.com/avasquez/furniture-store-api/internal/mocks"
	"github.com/avasquez/furniture-store-api/internal/model"
)

func TestCatalog_CreateProduct(t *testing.T) {
	ctx := context.Background()
	categoryID := uuid.New()

	products := &servermocks.ProductStore{}
	categories := &servermocks.ProductCategoryStore{}
	images := &servermocks.Storage{}

	categories.On("GetByID", ctx, categoryID).Return(model.ProductCategory{ID: categoryID, Name: "Chairs"}, nil).Once()
	products.On("Create", ctx, mock.MatchedBy(func(p model.Product) bool {
		return p.ID != uuid.Nil && p.Name == "Armchair" && !p.CreatedAt.IsZero()
	})).Return(func(_ context.Context, p model.Product) (model.Product, error) {
		return p, nil
	}).Once()

	svc := NewCatalog(products, categories, images, logger.New(0))

	created, err := svc.CreateProduct(ctx, model.Product{Name: "Armchair", Price: 199.99, CategoryID: categoryID})
	require.NoError(t, err)
	assert.Equal(t, "Armchair", created.Name)
	assert.NotEqual(t, uuid.Nil, created.ID)
}

func TestCatalog_CreateProduct_UnknownCategory(t *testing.T) {
	ctx := context.Background()
	categoryID := uuid.New()

	products := &servermocks.ProductStore{}
	categories := &servermocks.ProductCategoryStore{}
	images := &servermocks.Storage{}

	categories.On("GetByID", ctx, categoryID).Return(model.ProductCategory{}, model.ErrNotFound).Once()

	svc := NewCatalog(products, categories, images, logger.New(0))

	_, err := svc.CreateProduct(ctx, model.Product{Name: "Armchair", CategoryID: categoryID})
	assert.ErrorIs(t, err, model.ErrNotFound)
	products.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCatalog_UploadProductImage(t *testing.T) {
	ctx := context.Background()
	productID := uuid.New()
	key := fmt.Sprintf("products/%s", productID)

	products := &servermocks.ProductStore{}
	categories := &servermocks.ProductCategoryStore{}
	images := &servermocks.Storage{}

	products.On("GetByID", ctx, productID).Return(model.Product{ID: productID}, nil).Once()
	images.On("Upload", ctx, key, mock.Anything).Return(nil).Once()
	products.On("SetImageObject", ctx, productID, key).Return(nil).Once()

	svc := NewCatalog(products, categories, images, logger.New(0))

	err := svc.UploadProductImage(ctx, productID, strings.NewReader("image bytes"))
	require.NoError(t, err)

	products.AssertExpectations(t)
	images.AssertExpectations(t)
}

func TestCatalog_UploadProductImage_UnknownProduct(t *testing.T) {
	ctx := context.Background()
	productID := uuid.New()

	products := &servermocks.ProductStore{}
	categories := &servermocks.ProductCategoryStore{}
	images := &servermocks.Storage{}

	products.On("GetByID", ctx, productID).Return(model.Product{}, model.ErrNotFound).Once()

	svc := NewCatalog(products, categories, images, logger.New(0))

	err := svc.UploadProductImage(ctx, productID, strings.NewReader("image bytes"))
	assert.ErrorIs(t, err, model.ErrNotFound)
	images.AssertNotCalled(t, "Upload", mock.Anything, mock.Anything, mock.Anything)
}

func TestCatalog_DownloadProductImage(t *testing.T) {
	ctx := context.Background()
	productID := uuid.New()
	key := fmt.Sprintf("products/%s", productID)

	products := &servermocks.ProductStore{}
	categories := &servermocks.ProductCategoryStore{}
	images := &servermocks.Storage{}

	products.On("GetByID", ctx, productID).Return(model.Product{ID: productID, ImageObject: &key}, nil).Once()
	images.On("Download", ctx, key).Return(io.NopCloser(strings.NewReader("image bytes")), nil).Once()

	svc := NewCatalog(products, categories, images, logger.New(0))

	rc, err := svc.DownloadProductImage(ctx, productID)
	require.NoError(t, err)
	defer rc.Close()

	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "image bytes", string(data))
}

func TestCatalog_DownloadProductImage_NoImage(t *testing.T) {
	ctx := context.Background()
	productID := uuid.New()

	products := &servermocks.ProductStore{}
	categories := &servermocks.ProductCategoryStore{}
	images := &servermocks.Storage{}

	products.On("GetByID", ctx, productID).Return(model.Product{ID: productID}, nil).Once()

	svc := NewCatalog(products, categories, images, logger.New(0))

	_, err := svc.DownloadProductImage(ctx, productID)
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestCatalog_DeleteProduct_RemovesImage(t *testing.T) {
	ctx := context.Background()
	productID := uuid.New()
	key := fmt.Sprintf("products/%s", productID)

	products := &servermocks.ProductStore{}
	categories := &servermocks.ProductCategoryStore{}
	images := &servermocks.Storage{}

	products.On("GetByID", ctx, productID).Return(model.Product{ID: productID, ImageObject: &key}, nil).Once()
	images.On("Delete", ctx, key).Return(nil).Once()
	products.On("Delete", ctx, productID).Return(nil).Once()

	svc := NewCatalog(products, categories, images, logger.New(0))

	require.NoError(t, svc.DeleteProduct(ctx, productID))
	images.AssertExpectations(t)
}

func TestCatalog_DeleteProduct_ImageDeleteFailureIsNotFatal(t *testing.T) {
	ctx := context.Background()
	productID := uuid.New()
	key := fmt.Sprintf("products/%s", productID)

	products := &servermocks.ProductStore{}
	categories := &servermocks.ProductCategoryStore{}
	images := &servermocks.Storage{}

	products.On("GetByID", ctx, productID).Return(model.Product{ID: productID, ImageObject: &key}, nil).Once()
	images.On("Delete", ctx, key).Return(assert.AnError).Once()
	products.On("Delete", ctx, productID).Return(nil).Once()

	svc := NewCatalog(products, categories, images, logger.New(0))

	require.NoError(t, svc.DeleteProduct(ctx, productID))
}

func TestCatalog_UpdateCategory_UnknownCategory(t *testing.T) {
	ctx := context.Background()
	categoryID := uuid.New()

	products := &servermocks.ProductStore{}
	categories := &servermocks.ProductCategoryStore{}
	images := &servermocks.Storage{}

	categories.On("GetByID", ctx, categoryID).Return(model.ProductCategory{}, model.ErrNotFound).Once()

	svc := NewCatalog(products, categories, images, logger.New(0))

	err := svc.UpdateCategory(ctx, model.ProductCategory{ID: categoryID, Name: "Tables"})
	assert.ErrorIs(t, err, model.ErrNotFound)
	categories.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}
