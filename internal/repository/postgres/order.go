package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/avasquez/furniture-store-api/internal/model"
)

var _ model.OrderStore = (*OrderRepository)(nil)

type OrderRepository struct {
	db *Connection
}

func NewOrderRepository(db *Connection) *OrderRepository {
	return &OrderRepository{db: db}
}

// Create writes the order row and its details in one transaction.
func (r *OrderRepository) Create(ctx context.Context, order model.Order) (model.Order, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return model.Order{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	const orderQuery = `
        INSERT INTO orders (id, user_id, order_number, created_at)
        VALUES ($1, $2, $3, $4)
    `
	if _, err := tx.Exec(ctx, orderQuery,
		order.ID, order.UserID, order.OrderNumber, order.CreatedAt); err != nil {
		return model.Order{}, fmt.Errorf("failed to create order: %w", err)
	}

	if err := insertDetails(ctx, tx, order.ID, order.Details); err != nil {
		return model.Order{}, err
	}

	if err := tx.Commit(ctx); err != nil {
		return model.Order{}, fmt.Errorf("failed to commit order: %w", err)
	}
	return order, nil
}

func (r *OrderRepository) GetByID(ctx context.Context, id uuid.UUID) (model.Order, error) {
	const query = `SELECT id, user_id, order_number, created_at FROM orders WHERE id = $1`

	var order model.Order
	err := r.db.QueryRow(ctx, query, id).Scan(
		&order.ID, &order.UserID, &order.OrderNumber, &order.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Order{}, model.ErrNotFound
		}
		return model.Order{}, fmt.Errorf("failed to get order by id: %w", err)
	}

	details, err := r.getDetails(ctx, id)
	if err != nil {
		return model.Order{}, err
	}
	order.Details = details

	return order, nil
}

func (r *OrderRepository) GetByUserID(ctx context.Context, userID uuid.UUID) ([]model.Order, error) {
	const query = `
        SELECT id, user_id, order_number, created_at
        FROM orders WHERE user_id = $1 ORDER BY created_at
    `
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders by user: %w", err)
	}
	defer rows.Close()

	var orders []model.Order
	for rows.Next() {
		var o model.Order
		if err := rows.Scan(&o.ID, &o.UserID, &o.OrderNumber, &o.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate orders: %w", err)
	}

	for i := range orders {
		details, err := r.getDetails(ctx, orders[i].ID)
		if err != nil {
			return nil, err
		}
		orders[i].Details = details
	}

	return orders, nil
}

// Update rewrites the order row and replaces its details transactionally.
func (r *OrderRepository) Update(ctx context.Context, order model.Order) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx, `UPDATE orders SET order_number = $2 WHERE id = $1`,
		order.ID, order.OrderNumber)
	if err != nil {
		return fmt.Errorf("failed to update order: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrNotFound
	}

	if _, err := tx.Exec(ctx, `DELETE FROM order_details WHERE order_id = $1`, order.ID); err != nil {
		return fmt.Errorf("failed to clear order details: %w", err)
	}
	if err := insertDetails(ctx, tx, order.ID, order.Details); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit order update: %w", err)
	}
	return nil
}

func (r *OrderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM order_details WHERE order_id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete order details: %w", err)
	}

	tag, err := tx.Exec(ctx, `DELETE FROM orders WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete order: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrNotFound
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit order delete: %w", err)
	}
	return nil
}

func (r *OrderRepository) getDetails(ctx context.Context, orderID uuid.UUID) ([]model.OrderDetail, error) {
	const query = `
        SELECT order_id, product_id, quantity, price
        FROM order_details WHERE order_id = $1
    `
	rows, err := r.db.Query(ctx, query, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to get order details: %w", err)
	}
	defer rows.Close()

	var details []model.OrderDetail
	for rows.Next() {
		var d model.OrderDetail
		if err := rows.Scan(&d.OrderID, &d.ProductID, &d.Quantity, &d.Price); err != nil {
			return nil, fmt.Errorf("failed to scan order detail: %w", err)
		}
		details = append(details, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate order details: %w", err)
	}
	return details, nil
}

func insertDetails(ctx context.Context, tx pgx.Tx, orderID uuid.UUID, details []model.OrderDetail) error {
	const query = `
        INSERT INTO order_details (order_id, product_id, quantity, price)
        VALUES ($1, $2, $3, $4)
    `
	for _, d := range details {
		if _, err := tx.Exec(ctx, query, orderID, d.ProductID, d.Quantity, d.Price); err != nil {
			return fmt.Errorf("failed to insert order detail: %w", err)
		}
	}
	return nil
}
