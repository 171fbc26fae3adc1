package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// OrderStore defines persistence operations for orders. Order and details
// are written atomically in a single transaction.
type OrderStore interface {
	Create(ctx context.Context, order Order) (Order, error)
	GetByID(ctx context.Context, id uuid.UUID) (Order, error)
	GetByUserID(ctx context.Context, userID uuid.UUID) ([]Order, error)
	Update(ctx context.Context, order Order) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// Order is a placed order with its line items.
type Order struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	OrderNumber string
	Details     []OrderDetail
	CreatedAt   time.Time
}

// OrderDetail is a single line item of an order.
type OrderDetail struct {
	OrderID   uuid.UUID
	ProductID uuid.UUID
	Quantity  int
	Price     float64
}
