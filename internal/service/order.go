package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/avasquez/furniture-store-api/internal/logger"
	"github.com/avasquez/furniture-store-api/internal/model"
)

// Order provides order operations. The order row and its details are
// persisted atomically by the store.
type Order struct {
	orders   model.OrderStore
	products model.ProductStore
	logger   *logger.Logger
}

func NewOrder(orders model.OrderStore, products model.ProductStore, logger *logger.Logger) *Order {
	return &Order{
		orders:   orders,
		products: products,
		logger:   logger,
	}
}

func (o *Order) Create(ctx context.Context, order model.Order) (model.Order, error) {
	if len(order.Details) == 0 {
		return model.Order{}, fmt.Errorf("order has no details: %w", model.ErrNotFound)
	}

	for _, d := range order.Details {
		if _, err := o.products.GetByID(ctx, d.ProductID); err != nil {
			if errors.Is(err, model.ErrNotFound) {
				return model.Order{}, model.ErrNotFound
			}
			return model.Order{}, fmt.Errorf("failed to check product: %w", err)
		}
	}

	order.ID = uuid.New()
	order.CreatedAt = time.Now()
	if order.OrderNumber == "" {
		order.OrderNumber = fmt.Sprintf("ORD-%d", order.CreatedAt.UnixNano())
	}
	for i := range order.Details {
		order.Details[i].OrderID = order.ID
	}

	created, err := o.orders.Create(ctx, order)
	if err != nil {
		return model.Order{}, fmt.Errorf("failed to create order: %w", err)
	}

	o.logger.Info("Order service: order created",
		"order_id", created.ID,
		"user_id", created.UserID,
		"details", len(created.Details))

	return created, nil
}

func (o *Order) Get(ctx context.Context, id uuid.UUID) (model.Order, error) {
	return o.orders.GetByID(ctx, id)
}

func (o *Order) ListByUser(ctx context.Context, userID uuid.UUID) ([]model.Order, error) {
	return o.orders.GetByUserID(ctx, userID)
}

func (o *Order) Update(ctx context.Context, order model.Order) error {
	existing, err := o.orders.GetByID(ctx, order.ID)
	if err != nil {
		return err
	}
	order.UserID = existing.UserID
	for i := range order.Details {
		order.Details[i].OrderID = order.ID
	}
	return o.orders.Update(ctx, order)
}

func (o *Order) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := o.orders.GetByID(ctx, id); err != nil {
		return err
	}
	return o.orders.Delete(ctx, id)
}
