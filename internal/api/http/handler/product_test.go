package handler

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avasquez/furniture-store-api/internal/model"
	"github.com/avasquez/furniture-store-api/internal/testutil"
)

// catalogStub implements CatalogService through optional function fields.
type catalogStub struct {
	createProduct  func(ctx context.Context, product model.Product) (model.Product, error)
	getProduct     func(ctx context.Context, id uuid.UUID) (model.Product, error)
	listProducts   func(ctx context.Context) ([]model.Product, error)
	listByCategory func(ctx context.Context, categoryID uuid.UUID) ([]model.Product, error)
	downloadImage  func(ctx context.Context, id uuid.UUID) (io.ReadCloser, error)
}

func (s *catalogStub) CreateProduct(ctx context.Context, product model.Product) (model.Product, error) {
	return s.createProduct(ctx, product)
}

func (s *catalogStub) GetProduct(ctx context.Context, id uuid.UUID) (model.Product, error) {
	return s.getProduct(ctx, id)
}

func (s *catalogStub) ListProducts(ctx context.Context) ([]model.Product, error) {
	return s.listProducts(ctx)
}

func (s *catalogStub) ListProductsByCategory(ctx context.Context, categoryID uuid.UUID) ([]model.Product, error) {
	return s.listByCategory(ctx, categoryID)
}

func (s *catalogStub) UpdateProduct(ctx context.Context, product model.Product) error { return nil }
func (s *catalogStub) DeleteProduct(ctx context.Context, id uuid.UUID) error          { return nil }

func (s *catalogStub) UploadProductImage(ctx context.Context, id uuid.UUID, reader io.Reader) error {
	return nil
}

func (s *catalogStub) DownloadProductImage(ctx context.Context, id uuid.UUID) (io.ReadCloser, error) {
	return s.downloadImage(ctx, id)
}

func (s *catalogStub) CreateCategory(ctx context.Context, category model.ProductCategory) (model.ProductCategory, error) {
	return category, nil
}

func (s *catalogStub) GetCategory(ctx context.Context, id uuid.UUID) (model.ProductCategory, error) {
	return model.ProductCategory{}, nil
}

func (s *catalogStub) ListCategories(ctx context.Context) ([]model.ProductCategory, error) {
	return nil, nil
}

func (s *catalogStub) UpdateCategory(ctx context.Context, category model.ProductCategory) error {
	return nil
}

func (s *catalogStub) DeleteCategory(ctx context.Context, id uuid.UUID) error { return nil }

func TestProduct_Create(t *testing.T) {
	t.Parallel()

	categoryID := uuid.New()
	stub := &catalogStub{
		createProduct: func(_ context.Context, p model.Product) (model.Product, error) {
			p.ID = uuid.New()
			return p, nil
		},
	}

	h := NewProduct(stub, testutil.MakeNoopLogger())

	req := httptest.NewRequest(http.MethodPost, "/api/products",
		strings.NewReader(`{"name":"Armchair","price":199.99,"categoryId":"`+categoryID.String()+`"}`))
	rec := httptest.NewRecorder()
	h.Create(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)

	var out productResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&out))
	assert.Equal(t, "Armchair", out.Name)
	assert.Equal(t, categoryID.String(), out.CategoryID)
	assert.False(t, out.HasImage)
}

func TestProduct_Create_BadCategoryID(t *testing.T) {
	t.Parallel()

	h := NewProduct(&catalogStub{}, testutil.MakeNoopLogger())

	req := httptest.NewRequest(http.MethodPost, "/api/products",
		strings.NewReader(`{"name":"Armchair","price":199.99,"categoryId":"nope"}`))
	rec := httptest.NewRecorder()
	h.Create(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestProduct_Get_NotFound(t *testing.T) {
	t.Parallel()

	stub := &catalogStub{
		getProduct: func(context.Context, uuid.UUID) (model.Product, error) {
			return model.Product{}, model.ErrNotFound
		},
	}
	h := NewProduct(stub, testutil.MakeNoopLogger())

	req := httptest.NewRequest(http.MethodGet, "/api/products/"+uuid.NewString(), nil)
	req.SetPathValue("id", uuid.NewString())
	rec := httptest.NewRecorder()
	h.Get(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestProduct_Get_BadID(t *testing.T) {
	t.Parallel()

	h := NewProduct(&catalogStub{}, testutil.MakeNoopLogger())

	req := httptest.NewRequest(http.MethodGet, "/api/products/nope", nil)
	req.SetPathValue("id", "nope")
	rec := httptest.NewRecorder()
	h.Get(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestProduct_List(t *testing.T) {
	t.Parallel()

	key := "products/some-object"
	stub := &catalogStub{
		listProducts: func(context.Context) ([]model.Product, error) {
			return []model.Product{
				{ID: uuid.New(), Name: "Armchair", Price: 199.99, CategoryID: uuid.New(), ImageObject: &key},
				{ID: uuid.New(), Name: "Sofa", Price: 899.50, CategoryID: uuid.New()},
			}, nil
		},
	}
	h := NewProduct(stub, testutil.MakeNoopLogger())

	req := httptest.NewRequest(http.MethodGet, "/api/products", nil)
	rec := httptest.NewRecorder()
	h.List(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var out []productResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&out))
	require.Len(t, out, 2)
	assert.True(t, out[0].HasImage)
	assert.False(t, out[1].HasImage)
}

func TestProduct_DownloadImage(t *testing.T) {
	t.Parallel()

	stub := &catalogStub{
		downloadImage: func(context.Context, uuid.UUID) (io.ReadCloser, error) {
			return io.NopCloser(strings.NewReader("image bytes")), nil
		},
	}
	h := NewProduct(stub, testutil.MakeNoopLogger())

	id := uuid.NewString()
	req := httptest.NewRequest(http.MethodGet, "/api/products/"+id+"/image", nil)
	req.SetPathValue("id", id)
	rec := httptest.NewRecorder()
	h.DownloadImage(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image bytes", rec.Body.String())
	assert.Equal(t, "application/octet-stream", rec.Header().Get("Content-Type"))
}
