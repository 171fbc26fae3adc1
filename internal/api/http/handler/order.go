package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/avasquez/furniture-store-api/internal/logger"
	"github.com/avasquez/furniture-store-api/internal/model"
)

// OrderService defines order operations.
type OrderService interface {
	Create(ctx context.Context, order model.Order) (model.Order, error)
	Get(ctx context.Context, id uuid.UUID) (model.Order, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]model.Order, error)
	Update(ctx context.Context, order model.Order) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type orderDetailRequest struct {
	ProductID string  `json:"productId"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
}

type orderRequest struct {
	Details []orderDetailRequest `json:"details"`
}

type orderDetailResponse struct {
	ProductID string  `json:"productId"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
}

type orderResponse struct {
	ID          string                `json:"id"`
	OrderNumber string                `json:"orderNumber"`
	Details     []orderDetailResponse `json:"details"`
	CreatedAt   time.Time             `json:"createdAt"`
}

// Order handles order endpoints. The acting user is taken from the
// request context set by the authentication middleware.
type Order struct {
	orderService   OrderService
	contextManager model.ContextManager
	logger         *logger.Logger
}

func NewOrder(orderService OrderService, contextManager model.ContextManager, logger *logger.Logger) *Order {
	return &Order{
		orderService:   orderService,
		contextManager: contextManager,
		logger:         logger,
	}
}

func (h *Order) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.contextManager.GetUserIDFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "unauthorized"})
		return
	}

	var req orderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || len(req.Details) == 0 {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid payload"})
		return
	}

	details := make([]model.OrderDetail, 0, len(req.Details))
	for _, d := range req.Details {
		productID, err := uuid.Parse(d.ProductID)
		if err != nil || d.Quantity <= 0 {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid order detail"})
			return
		}
		details = append(details, model.OrderDetail{
			ProductID: productID,
			Quantity:  d.Quantity,
			Price:     d.Price,
		})
	}

	created, err := h.orderService.Create(r.Context(), model.Order{
		UserID:  userID,
		Details: details,
	})
	if err != nil {
		h.logger.Error("Order handler: create failed",
			"user_id", userID,
			"error", err.Error())
		handleError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toOrderResponse(created))
}

func (h *Order) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.contextManager.GetUserIDFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "unauthorized"})
		return
	}

	id, ok := parseID(w, r)
	if !ok {
		return
	}

	order, err := h.orderService.Get(r.Context(), id)
	if err != nil {
		handleError(w, err)
		return
	}
	// Orders are visible only to their owner.
	if order.UserID != userID {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "not found"})
		return
	}
	writeJSON(w, http.StatusOK, toOrderResponse(order))
}

func (h *Order) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.contextManager.GetUserIDFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "unauthorized"})
		return
	}

	orders, err := h.orderService.ListByUser(r.Context(), userID)
	if err != nil {
		h.logger.Error("Order handler: list failed",
			"user_id", userID,
			"error", err.Error())
		handleError(w, err)
		return
	}

	out := make([]orderResponse, 0, len(orders))
	for _, o := range orders {
		out = append(out, toOrderResponse(o))
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *Order) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.contextManager.GetUserIDFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "unauthorized"})
		return
	}

	id, ok := parseID(w, r)
	if !ok {
		return
	}

	existing, err := h.orderService.Get(r.Context(), id)
	if err != nil {
		handleError(w, err)
		return
	}
	if existing.UserID != userID {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "not found"})
		return
	}

	var req orderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || len(req.Details) == 0 {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid payload"})
		return
	}

	details := make([]model.OrderDetail, 0, len(req.Details))
	for _, d := range req.Details {
		productID, err := uuid.Parse(d.ProductID)
		if err != nil || d.Quantity <= 0 {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid order detail"})
			return
		}
		details = append(details, model.OrderDetail{
			ProductID: productID,
			Quantity:  d.Quantity,
			Price:     d.Price,
		})
	}

	if err := h.orderService.Update(r.Context(), model.Order{ID: id, Details: details}); err != nil {
		handleError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Order) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.contextManager.GetUserIDFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "unauthorized"})
		return
	}

	id, ok := parseID(w, r)
	if !ok {
		return
	}

	existing, err := h.orderService.Get(r.Context(), id)
	if err != nil {
		handleError(w, err)
		return
	}
	if existing.UserID != userID {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "not found"})
		return
	}

	if err := h.orderService.Delete(r.Context(), id); err != nil {
		handleError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func toOrderResponse(o model.Order) orderResponse {
	details := make([]orderDetailResponse, 0, len(o.Details))
	for _, d := range o.Details {
		details = append(details, orderDetailResponse{
			ProductID: d.ProductID.String(),
			Quantity:  d.Quantity,
			Price:     d.Price,
		})
	}
	return orderResponse{
		ID:          o.ID.String(),
		OrderNumber: o.OrderNumber,
		Details:     details,
		CreatedAt:   o.CreatedAt,
	}
}
