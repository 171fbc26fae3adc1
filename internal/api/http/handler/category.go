package handler

import (
	"encoding/json"
	"net/http"

	"github.com/avasquez/furniture-store-api/internal/logger"
	"github.com/avasquez/furniture-store-api/internal/model"
)

type categoryRequest struct {
	Name string `json:"name"`
}

type categoryResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Category handles product category endpoints.
type Category struct {
	catalog CatalogService
	logger  *logger.Logger
}

func NewCategory(catalog CatalogService, logger *logger.Logger) *Category {
	return &Category{catalog: catalog, logger: logger}
}

func (h *Category) Create(w http.ResponseWriter, r *http.Request) {
	var req categoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Name == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid payload"})
		return
	}

	created, err := h.catalog.CreateCategory(r.Context(), model.ProductCategory{Name: req.Name})
	if err != nil {
		h.logger.Error("Category handler: create failed", "error", err.Error())
		handleError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toCategoryResponse(created))
}

func (h *Category) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	category, err := h.catalog.GetCategory(r.Context(), id)
	if err != nil {
		handleError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toCategoryResponse(category))
}

func (h *Category) List(w http.ResponseWriter, r *http.Request) {
	categories, err := h.catalog.ListCategories(r.Context())
	if err != nil {
		h.logger.Error("Category handler: list failed", "error", err.Error())
		handleError(w, err)
		return
	}

	out := make([]categoryResponse, 0, len(categories))
	for _, c := range categories {
		out = append(out, toCategoryResponse(c))
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *Category) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	var req categoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Name == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid payload"})
		return
	}

	if err := h.catalog.UpdateCategory(r.Context(), model.ProductCategory{ID: id, Name: req.Name}); err != nil {
		handleError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Category) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	if err := h.catalog.DeleteCategory(r.Context(), id); err != nil {
		handleError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func toCategoryResponse(c model.ProductCategory) categoryResponse {
	return categoryResponse{
		ID:   c.ID.String(),
		Name: c.Name,
	}
}
