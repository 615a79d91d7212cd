package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"storefront/internal/domain"

	"github.com/google/uuid"
)

var (
	ErrCartItemNotFound = errors.New("cart item not found")
)

// CartRepository defines the interface for cart line item data access. All
// operations are scoped to a session.
type CartRepository interface {
	ListBySession(ctx context.Context, sessionID uuid.UUID) ([]domain.CartItem, error)
	AddOrIncrement(ctx context.Context, item *domain.CartItem) (*domain.CartItem, error)
	UpdateQuantity(ctx context.Context, sessionID, id uuid.UUID, quantity int) error
	Delete(ctx context.Context, sessionID, id uuid.UUID) error
	DeleteBySession(ctx context.Context, sessionID uuid.UUID) error
}

type cartRepository struct {
	db *sql.DB
}

// NewCartRepository creates a new instance of CartRepository
func NewCartRepository(db *sql.DB) CartRepository {
	return &cartRepository{db: db}
}

const cartItemColumns = `id, session_id, product_id, product_name, product_price, product_image_url,
		quantity, size, color, created_at, updated_at`

func scanCartItem(row rowScanner) (domain.CartItem, error) {
	var item domain.CartItem
	err := row.Scan(
		&item.ID,
		&item.SessionID,
		&item.ProductID,
		&item.Name,
		&item.Price,
		&item.ImageURL,
		&item.Quantity,
		&item.Size,
		&item.Color,
		&item.CreatedAt,
		&item.UpdatedAt,
	)
	return item, err
}

// ListBySession retrieves a session's line items in insertion order
func (r *cartRepository) ListBySession(ctx context.Context, sessionID uuid.UUID) ([]domain.CartItem, error) {
	query := `SELECT ` + cartItemColumns + `
		FROM cart_items
		WHERE session_id = $1
		ORDER BY created_at ASC, id ASC
	`

	rows, err := r.db.QueryContext(ctx, query, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to list cart items: %w", err)
	}
	defer rows.Close()

	items := []domain.CartItem{}
	for rows.Next() {
		item, err := scanCartItem(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan cart item: %w", err)
		}
		items = append(items, item)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating cart items: %w", err)
	}

	return items, nil
}

// AddOrIncrement inserts the line item, or adds its quantity to the existing
// line for the same (session, product, size, color). The stored row is returned.
func (r *cartRepository) AddOrIncrement(ctx context.Context, item *domain.CartItem) (*domain.CartItem, error) {
	query := `
		INSERT INTO cart_items (` + cartItemColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (session_id, product_id, size, color)
		DO UPDATE SET quantity = cart_items.quantity + EXCLUDED.quantity,
		              updated_at = EXCLUDED.updated_at
		RETURNING ` + cartItemColumns

	stored, err := scanCartItem(r.db.QueryRowContext(
		ctx,
		query,
		item.ID,
		item.SessionID,
		item.ProductID,
		item.Name,
		item.Price,
		item.ImageURL,
		item.Quantity,
		item.Size,
		item.Color,
		item.CreatedAt,
		item.UpdatedAt,
	))
	if err != nil {
		return nil, fmt.Errorf("failed to add cart item: %w", err)
	}

	return &stored, nil
}

// UpdateQuantity sets the quantity of a line item
func (r *cartRepository) UpdateQuantity(ctx context.Context, sessionID, id uuid.UUID, quantity int) error {
	query := `
		UPDATE cart_items
		SET quantity = $3, updated_at = $4
		WHERE session_id = $1 AND id = $2
	`

	result, err := r.db.ExecContext(ctx, query, sessionID, id, quantity, time.Now())
	if err != nil {
		return fmt.Errorf("failed to update cart item: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return ErrCartItemNotFound
	}

	return nil
}

// Delete removes a line item
func (r *cartRepository) Delete(ctx context.Context, sessionID, id uuid.UUID) error {
	query := `DELETE FROM cart_items WHERE session_id = $1 AND id = $2`

	result, err := r.db.ExecContext(ctx, query, sessionID, id)
	if err != nil {
		return fmt.Errorf("failed to delete cart item: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return ErrCartItemNotFound
	}

	return nil
}

// DeleteBySession removes every line item of a session
func (r *cartRepository) DeleteBySession(ctx context.Context, sessionID uuid.UUID) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM cart_items WHERE session_id = $1`, sessionID); err != nil {
		return fmt.Errorf("failed to clear cart: %w", err)
	}
	return nil
}
