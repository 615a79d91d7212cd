package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"storefront/internal/domain"
)

var (
	ErrOrderNotFound = errors.New("order not found")
)

// OrderRepository defines the interface for recorded checkout orders
type OrderRepository interface {
	CreateBatch(ctx context.Context, orders []*domain.Order) error
	FindByOrderNumber(ctx context.Context, orderNumber string) ([]*domain.Order, error)
}

type orderRepository struct {
	db *sql.DB
}

// NewOrderRepository creates a new instance of OrderRepository
func NewOrderRepository(db *sql.DB) OrderRepository {
	return &orderRepository{db: db}
}

// CreateBatch inserts all lines of one checkout in a single transaction
func (r *orderRepository) CreateBatch(ctx context.Context, orders []*domain.Order) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO orders (id, session_id, order_number, product_id, product_name, product_price,
		                    quantity, size, color, total_amount, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`

	for _, order := range orders {
		_, err := tx.ExecContext(
			ctx,
			query,
			order.ID,
			order.SessionID,
			order.OrderNumber,
			order.ProductID,
			order.ProductName,
			order.ProductPrice,
			order.Quantity,
			order.Size,
			order.Color,
			order.TotalAmount,
			string(order.Status),
			order.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to create order: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit orders: %w", err)
	}

	return nil
}

// FindByOrderNumber retrieves every line recorded under an order number
func (r *orderRepository) FindByOrderNumber(ctx context.Context, orderNumber string) ([]*domain.Order, error) {
	query := `
		SELECT id, session_id, order_number, product_id, product_name, product_price,
		       quantity, size, color, total_amount, status, created_at
		FROM orders
		WHERE order_number = $1
		ORDER BY created_at ASC, id ASC
	`

	rows, err := r.db.QueryContext(ctx, query, orderNumber)
	if err != nil {
		return nil, fmt.Errorf("failed to find orders: %w", err)
	}
	defer rows.Close()

	orders := []*domain.Order{}
	for rows.Next() {
		order := &domain.Order{}
		err := rows.Scan(
			&order.ID,
			&order.SessionID,
			&order.OrderNumber,
			&order.ProductID,
			&order.ProductName,
			&order.ProductPrice,
			&order.Quantity,
			&order.Size,
			&order.Color,
			&order.TotalAmount,
			&order.Status,
			&order.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		orders = append(orders, order)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating orders: %w", err)
	}

	if len(orders) == 0 {
		return nil, ErrOrderNotFound
	}

	return orders, nil
}
