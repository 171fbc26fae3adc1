package handler

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/avasquez/furniture-store-api/internal/logger"
	"github.com/avasquez/furniture-store-api/internal/model"
)

// CatalogService defines product and category operations.
type CatalogService interface {
	CreateProduct(ctx context.Context, product model.Product) (model.Product, error)
	GetProduct(ctx context.Context, id uuid.UUID) (model.Product, error)
	ListProducts(ctx context.Context) ([]model.Product, error)
	ListProductsByCategory(ctx context.Context, categoryID uuid.UUID) ([]model.Product, error)
	UpdateProduct(ctx context.Context, product model.Product) error
	DeleteProduct(ctx context.Context, id uuid.UUID) error
	UploadProductImage(ctx context.Context, id uuid.UUID, reader io.Reader) error
	DownloadProductImage(ctx context.Context, id uuid.UUID) (io.ReadCloser, error)

	CreateCategory(ctx context.Context, category model.ProductCategory) (model.ProductCategory, error)
	GetCategory(ctx context.Context, id uuid.UUID) (model.ProductCategory, error)
	ListCategories(ctx context.Context) ([]model.ProductCategory, error)
	UpdateCategory(ctx context.Context, category model.ProductCategory) error
	DeleteCategory(ctx context.Context, id uuid.UUID) error
}

type productRequest struct {
	Name       string  `json:"name"`
	Price      float64 `json:"price"`
	CategoryID string  `json:"categoryId"`
}

type productResponse struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Price      float64   `json:"price"`
	CategoryID string    `json:"categoryId"`
	HasImage   bool      `json:"hasImage"`
	CreatedAt  time.Time `json:"createdAt"`
}

// Product handles catalog endpoints.
type Product struct {
	catalog CatalogService
	logger  *logger.Logger
}

func NewProduct(catalog CatalogService, logger *logger.Logger) *Product {
	return &Product{catalog: catalog, logger: logger}
}

func (h *Product) Create(w http.ResponseWriter, r *http.Request) {
	var req productRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Name == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid payload"})
		return
	}
	categoryID, err := uuid.Parse(req.CategoryID)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid category id"})
		return
	}

	created, err := h.catalog.CreateProduct(r.Context(), model.Product{
		Name:       req.Name,
		Price:      req.Price,
		CategoryID: categoryID,
	})
	if err != nil {
		h.logger.Error("Product handler: create failed", "error", err.Error())
		handleError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toProductResponse(created))
}

func (h *Product) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	product, err := h.catalog.GetProduct(r.Context(), id)
	if err != nil {
		handleError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toProductResponse(product))
}

func (h *Product) List(w http.ResponseWriter, r *http.Request) {
	products, err := h.catalog.ListProducts(r.Context())
	if err != nil {
		h.logger.Error("Product handler: list failed", "error", err.Error())
		handleError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toProductResponses(products))
}

func (h *Product) ListByCategory(w http.ResponseWriter, r *http.Request) {
	categoryID, err := uuid.Parse(r.PathValue("categoryId"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid id"})
		return
	}

	products, err := h.catalog.ListProductsByCategory(r.Context(), categoryID)
	if err != nil {
		handleError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toProductResponses(products))
}

func (h *Product) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	var req productRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid payload"})
		return
	}
	categoryID, err := uuid.Parse(req.CategoryID)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid category id"})
		return
	}

	err = h.catalog.UpdateProduct(r.Context(), model.Product{
		ID:         id,
		Name:       req.Name,
		Price:      req.Price,
		CategoryID: categoryID,
	})
	if err != nil {
		handleError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Product) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	if err := h.catalog.DeleteProduct(r.Context(), id); err != nil {
		handleError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// UploadImage stores the request body as the product's image.
func (h *Product) UploadImage(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	defer r.Body.Close()

	if err := h.catalog.UploadProductImage(r.Context(), id, r.Body); err != nil {
		h.logger.Error("Product handler: image upload failed",
			"product_id", id,
			"error", err.Error())
		handleError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// DownloadImage streams the product's stored image.
func (h *Product) DownloadImage(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	rc, err := h.catalog.DownloadProductImage(r.Context(), id)
	if err != nil {
		handleError(w, err)
		return
	}
	defer rc.Close()

	w.Header().Set("Content-Type", "application/octet-stream")
	if _, err := io.Copy(w, rc); err != nil {
		h.logger.Error("Product handler: image stream failed",
			"product_id", id,
			"error", err.Error())
	}
}

func parseID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid id"})
		return uuid.Nil, false
	}
	return id, true
}

func toProductResponse(p model.Product) productResponse {
	return productResponse{
		ID:         p.ID.String(),
		Name:       p.Name,
		Price:      p.Price,
		CategoryID: p.CategoryID.String(),
		HasImage:   p.ImageObject != nil,
		CreatedAt:  p.CreatedAt,
	}
}

func toProductResponses(products []model.Product) []productResponse {
	out := make([]productResponse, 0, len(products))
	for _, p := range products {
		out = append(out, toProductResponse(p))
	}
	return out
}
