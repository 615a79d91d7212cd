package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"storefront/internal/domain"

	"github.com/google/uuid"
)

var (
	ErrWishlistEntryNotFound = errors.New("wishlist entry not found")
	ErrWishlistEntryExists   = errors.New("product is already in the wishlist")
)

// WishlistRepository defines the interface for wishlist data access
type WishlistRepository interface {
	ListBySession(ctx context.Context, sessionID uuid.UUID) ([]domain.WishlistEntry, error)
	Create(ctx context.Context, entry *domain.WishlistEntry) error
	Delete(ctx context.Context, sessionID, productID uuid.UUID) error
	DeleteBySession(ctx context.Context, sessionID uuid.UUID) error
}

type wishlistRepository struct {
	db *sql.DB
}

// NewWishlistRepository creates a new instance of WishlistRepository
func NewWishlistRepository(db *sql.DB) WishlistRepository {
	return &wishlistRepository{db: db}
}

// ListBySession retrieves a session's wishlist, oldest first
func (r *wishlistRepository) ListBySession(ctx context.Context, sessionID uuid.UUID) ([]domain.WishlistEntry, error) {
	query := `
		SELECT id, session_id, product_id, created_at
		FROM wishlist_items
		WHERE session_id = $1
		ORDER BY created_at ASC
	`

	rows, err := r.db.QueryContext(ctx, query, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to list wishlist: %w", err)
	}
	defer rows.Close()

	entries := []domain.WishlistEntry{}
	for rows.Next() {
		var entry domain.WishlistEntry
		if err := rows.Scan(&entry.ID, &entry.SessionID, &entry.ProductID, &entry.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan wishlist entry: %w", err)
		}
		entries = append(entries, entry)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating wishlist: %w", err)
	}

	return entries, nil
}

// Create inserts a wishlist entry
func (r *wishlistRepository) Create(ctx context.Context, entry *domain.WishlistEntry) error {
	query := `
		INSERT INTO wishlist_items (id, session_id, product_id, created_at)
		VALUES ($1, $2, $3, $4)
	`

	_, err := r.db.ExecContext(ctx, query, entry.ID, entry.SessionID, entry.ProductID, entry.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrWishlistEntryExists
		}
		return fmt.Errorf("failed to create wishlist entry: %w", err)
	}

	return nil
}

// Delete removes the entry for (session, product)
func (r *wishlistRepository) Delete(ctx context.Context, sessionID, productID uuid.UUID) error {
	query := `DELETE FROM wishlist_items WHERE session_id = $1 AND product_id = $2`

	result, err := r.db.ExecContext(ctx, query, sessionID, productID)
	if err != nil {
		return fmt.Errorf("failed to delete wishlist entry: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return ErrWishlistEntryNotFound
	}

	return nil
}

// DeleteBySession removes a session's whole wishlist
func (r *wishlistRepository) DeleteBySession(ctx context.Context, sessionID uuid.UUID) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM wishlist_items WHERE session_id = $1`, sessionID); err != nil {
		return fmt.Errorf("failed to clear wishlist: %w", err)
	}
	return nil
}
